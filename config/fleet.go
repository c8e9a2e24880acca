// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package config

import (
	"fmt"

	"gopkg.in/ini.v1"
)

// LoadFleet reads an .ini file mapping section names to DeviceID
// strings under a "device" key, for operators who want a static
// multi-outstation fleet file instead of constructing DeviceIDs
// programmatically:
//
//	[substation-a]
//	device = 10.0.0.1|2404|1|12|8|30|15|10|20|20|60|1:10:13:c,100:1:45:p
//
// The returned map is keyed by section name.
func LoadFleet(path string) (map[string]DeviceID, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("config: load fleet %s: %w", path, err)
	}

	fleet := make(map[string]DeviceID)
	for _, section := range cfg.Sections() {
		if section.Name() == ini.DefaultSection {
			continue
		}
		key := section.Key("device")
		if key.String() == "" {
			return nil, fmt.Errorf("config: fleet %s: section %q has no device key", path, section.Name())
		}
		d, err := ParseDeviceID(key.String())
		if err != nil {
			return nil, fmt.Errorf("config: fleet %s: section %q: %w", path, section.Name(), err)
		}
		fleet[section.Name()] = d
	}
	return fleet, nil
}
