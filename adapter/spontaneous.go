// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package adapter

import (
	"time"

	"github.com/gridedge/iec104master/asdu"
)

// InformationObject is the adapter-level, type-erased view of one
// information object out of a monitoring-direction ASDU: enough for a
// DeviceReader to shelve into a tag database without knowing the wire
// TypeID's encoding.
type InformationObject struct {
	Coa        asdu.CommonAddr
	Ioa        asdu.InfoObjAddr
	Type       asdu.TypeID
	Value      interface{}
	Quality    byte // QualityDescriptor, or QDSGood (0) for types that carry none
	Timestamp  time.Time
	ReceivedAt time.Time

	// EngineeringValue is Value rescaled to real-world units via
	// ClientAdapter.SetNormalizeRange/SetScaleFactor. nil for types
	// that don't carry a normalized or scaled measured value, or for
	// an IOA no range/factor has been registered for.
	EngineeringValue *float64
}

// decodeInformationObjects turns one monitoring-direction ASDU into its
// constituent InformationObjects. Unrecognized TypeIDs yield ErrTypeIdentifier
// so the caller can count them as protocol errors without losing the ASDU.
// scale supplies the optional engineering-unit conversion for
// normalized and scaled measured values; a nil scale leaves
// EngineeringValue unset for every object.
func decodeInformationObjects(a *asdu.ASDU, now time.Time, scale *scaling) ([]InformationObject, error) {
	coa := a.CommonAddr
	switch a.Type {
	case asdu.M_SP_NA_1, asdu.M_SP_TA_1, asdu.M_SP_TB_1:
		pts := a.GetSinglePoint()
		out := make([]InformationObject, len(pts))
		for i, p := range pts {
			out[i] = InformationObject{Coa: coa, Ioa: p.Ioa, Type: a.Type, Value: p.Value, Quality: byte(p.Qds), Timestamp: p.Time, ReceivedAt: now}
		}
		return out, nil

	case asdu.M_DP_NA_1, asdu.M_DP_TA_1, asdu.M_DP_TB_1:
		pts := a.GetDoublePoint()
		out := make([]InformationObject, len(pts))
		for i, p := range pts {
			out[i] = InformationObject{Coa: coa, Ioa: p.Ioa, Type: a.Type, Value: p.Value, Quality: byte(p.Qds), Timestamp: p.Time, ReceivedAt: now}
		}
		return out, nil

	case asdu.M_ST_NA_1, asdu.M_ST_TA_1, asdu.M_ST_TB_1:
		pts := a.GetStepPosition()
		out := make([]InformationObject, len(pts))
		for i, p := range pts {
			out[i] = InformationObject{Coa: coa, Ioa: p.Ioa, Type: a.Type, Value: p.Value, Quality: byte(p.Qds), Timestamp: p.Time, ReceivedAt: now}
		}
		return out, nil

	case asdu.M_BO_NA_1, asdu.M_BO_TA_1, asdu.M_BO_TB_1:
		pts := a.GetBitString32()
		out := make([]InformationObject, len(pts))
		for i, p := range pts {
			out[i] = InformationObject{Coa: coa, Ioa: p.Ioa, Type: a.Type, Value: p.Value, Quality: byte(p.Qds), Timestamp: p.Time, ReceivedAt: now}
		}
		return out, nil

	case asdu.M_ME_NA_1, asdu.M_ME_TA_1, asdu.M_ME_TD_1, asdu.M_ME_ND_1:
		pts := a.GetMeasuredValueNormal()
		out := make([]InformationObject, len(pts))
		for i, p := range pts {
			out[i] = InformationObject{Coa: coa, Ioa: p.Ioa, Type: a.Type, Value: p.Value, Quality: byte(p.Qds), Timestamp: p.Time, ReceivedAt: now}
			if scale != nil {
				if eng, ok := scale.normalizedToFloat64(p.Ioa, p.Value); ok {
					out[i].EngineeringValue = &eng
				}
			}
		}
		return out, nil

	case asdu.M_ME_NB_1, asdu.M_ME_TB_1, asdu.M_ME_TE_1:
		pts := a.GetMeasuredValueScaled()
		out := make([]InformationObject, len(pts))
		for i, p := range pts {
			out[i] = InformationObject{Coa: coa, Ioa: p.Ioa, Type: a.Type, Value: p.Value, Quality: byte(p.Qds), Timestamp: p.Time, ReceivedAt: now}
			if scale != nil {
				if eng, ok := scale.scaledToFloat64(p.Ioa, p.Value); ok {
					out[i].EngineeringValue = &eng
				}
			}
		}
		return out, nil

	case asdu.M_ME_NC_1, asdu.M_ME_TC_1, asdu.M_ME_TF_1:
		pts := a.GetMeasuredValueFloat()
		out := make([]InformationObject, len(pts))
		for i, p := range pts {
			out[i] = InformationObject{Coa: coa, Ioa: p.Ioa, Type: a.Type, Value: p.Value, Quality: byte(p.Qds), Timestamp: p.Time, ReceivedAt: now}
		}
		return out, nil

	case asdu.M_IT_NA_1, asdu.M_IT_TA_1, asdu.M_IT_TB_1:
		pts := a.GetIntegratedTotals()
		out := make([]InformationObject, len(pts))
		for i, p := range pts {
			out[i] = InformationObject{Coa: coa, Ioa: p.Ioa, Type: a.Type, Value: p.Value, Timestamp: p.Time, ReceivedAt: now}
		}
		return out, nil

	case asdu.M_EI_NA_1:
		ioa, coi := a.GetEndOfInitialization()
		return []InformationObject{{Coa: coa, Ioa: ioa, Type: a.Type, Value: coi, ReceivedAt: now}}, nil

	default:
		return nil, asdu.ErrTypeIdentifier
	}
}

// spontaneousQueue is a bounded FIFO of decoded InformationObjects.
// Overflow drops the oldest entry and counts it rather than blocking
// the handler goroutine that feeds it.
type spontaneousQueue struct {
	ch       chan InformationObject
	overflow func()
}

func newSpontaneousQueue(capacity int, overflow func()) *spontaneousQueue {
	return &spontaneousQueue{ch: make(chan InformationObject, capacity), overflow: overflow}
}

func (q *spontaneousQueue) push(obj InformationObject) {
	select {
	case q.ch <- obj:
	default:
		select {
		case <-q.ch:
		default:
		}
		select {
		case q.ch <- obj:
		default:
		}
		q.overflow()
	}
}

// drain removes and returns every object currently queued, without
// blocking. This is ProcessSpontaneous's underlying mechanism.
func (q *spontaneousQueue) drain() []InformationObject {
	out := make([]InformationObject, 0, len(q.ch))
	for {
		select {
		case obj := <-q.ch:
			out = append(out, obj)
		default:
			return out
		}
	}
}
