// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

// Command iec104poll dials one outstation described by a DeviceID
// string (or a fleet file of them) and logs every spontaneous and
// periodic data report it receives.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/gridedge/iec104master/adapter"
	"github.com/gridedge/iec104master/config"
	"github.com/gridedge/iec104master/driver"
	"github.com/gridedge/iec104master/reader"
	"github.com/sirupsen/logrus"
)

func main() {
	deviceID := flag.String("device", "", "DeviceID string: IP|Port|COA|K|W|T0|T1|T2|T3|InterrogationType|InterrogationInterval|Blocks")
	fleet := flag.String("fleet", "", "path to an .ini fleet file, mutually exclusive with -device")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	log := logrus.NewEntry(logrus.StandardLogger())
	if *debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	devices := map[string]config.DeviceID{}
	switch {
	case *fleet != "":
		f, err := config.LoadFleet(*fleet)
		if err != nil {
			log.Fatal(err)
		}
		devices = f
	case *deviceID != "":
		d, err := config.ParseDeviceID(*deviceID)
		if err != nil {
			log.Fatal(err)
		}
		devices["default"] = d
	default:
		log.Fatal("one of -device or -fleet is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	drv := driver.New(log)
	readers := make([]*reader.DeviceReader, 0, len(devices))

	for name, d := range devices {
		id, err := drv.Add(ctx, d, nil, 0)
		if err != nil {
			log.WithField("device", name).Errorf("connect failed: %v", err)
			continue
		}
		a, _ := drv.Get(id)
		r := reader.New(a, reader.FromDeviceID(d), log.WithField("device", name))
		r.Sink = func(obj adapter.InformationObject) {
			log.WithFields(logrus.Fields{
				"device": name,
				"coa":    obj.Coa,
				"ioa":    obj.Ioa,
				"type":   obj.Type,
			}).Infof("value=%v", obj.Value)
		}
		r.Start(ctx)
		readers = append(readers, r)
	}

	<-ctx.Done()
	for _, r := range readers {
		r.Stop()
	}
	for _, id := range drv.IDs() {
		_ = drv.Remove(id, 0)
	}
}
