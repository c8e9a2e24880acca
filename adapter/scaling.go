// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package adapter

import (
	"sync"

	"github.com/gridedge/iec104master/asdu"
)

// normalizeRange is the [min, max] engineering-unit span a normalized
// value's wire fraction (asdu.Normalize) is stretched across.
type normalizeRange struct{ min, max float64 }

// scaleFactor is a scaled value's linear engineering-unit conversion:
// real = raw×factor + offset.
type scaleFactor struct{ factor, offset float64 }

// scaling is a ClientAdapter's per-IOA engineering-unit metadata. It
// has no wire representation of its own — a point database or config
// file supplies it — and is consulted only to turn the raw Normalize/
// int16 values asdu decodes into readings a caller can graph or alarm
// on directly, and back again for set-point commands expressed in
// engineering units rather than wire units.
type scaling struct {
	mu         sync.RWMutex
	normalized map[asdu.InfoObjAddr]normalizeRange
	scaled     map[asdu.InfoObjAddr]scaleFactor
}

func newScaling() *scaling {
	return &scaling{
		normalized: make(map[asdu.InfoObjAddr]normalizeRange),
		scaled:     make(map[asdu.InfoObjAddr]scaleFactor),
	}
}

// SetNormalizeRange registers the engineering-unit span [min, max]
// that ioa's normalized measured values (M_ME_NA_1 family) are
// stretched across, so ProcessSpontaneous's InformationObjects for it
// carry an EngineeringValue and SendSetpointEngineering can target it.
func (a *ClientAdapter) SetNormalizeRange(ioa asdu.InfoObjAddr, min, max float64) {
	a.scaling.mu.Lock()
	defer a.scaling.mu.Unlock()
	a.scaling.normalized[ioa] = normalizeRange{min, max}
}

// SetScaleFactor registers the factor/offset ioa's scaled measured
// values (M_ME_NB_1 family) convert through: real = raw×factor +
// offset.
func (a *ClientAdapter) SetScaleFactor(ioa asdu.InfoObjAddr, factor, offset float64) {
	a.scaling.mu.Lock()
	defer a.scaling.mu.Unlock()
	a.scaling.scaled[ioa] = scaleFactor{factor, offset}
}

func (s *scaling) normalizedToFloat64(ioa asdu.InfoObjAddr, raw asdu.Normalize) (float64, bool) {
	s.mu.RLock()
	r, ok := s.normalized[ioa]
	s.mu.RUnlock()
	if !ok {
		return 0, false
	}
	return raw.Float64InRange(r.min, r.max), true
}

func (s *scaling) scaledToFloat64(ioa asdu.InfoObjAddr, raw int16) (float64, bool) {
	s.mu.RLock()
	f, ok := s.scaled[ioa]
	s.mu.RUnlock()
	if !ok {
		return 0, false
	}
	return asdu.ScaledValueToFloat64(raw, f.factor, f.offset), true
}

func (s *scaling) normalizedFromFloat64(ioa asdu.InfoObjAddr, real float64) (asdu.Normalize, bool) {
	s.mu.RLock()
	r, ok := s.normalized[ioa]
	s.mu.RUnlock()
	if !ok {
		return 0, false
	}
	return asdu.NormalizeFromFloat64(real, r.min, r.max), true
}

func (s *scaling) scaledFromFloat64(ioa asdu.InfoObjAddr, real float64) (int16, bool) {
	s.mu.RLock()
	f, ok := s.scaled[ioa]
	s.mu.RUnlock()
	if !ok {
		return 0, false
	}
	return asdu.ScaledValueFromFloat64(real, f.factor, f.offset), true
}
