package asdu

import (
	"encoding/binary"
	"math"
	"time"
)

func (this *ASDU) AppendBytes(b ...byte) *ASDU {
	this.infoObj = append(this.infoObj, b...)
	return this
}
func (this *ASDU) DecodeByte() byte {
	v := this.infoObj[0]
	this.infoObj = this.infoObj[1:]
	return v
}
func (this *ASDU) AppendInfoObjAddr(addr InfoObjAddr) error {
	switch this.InfoObjAddrSize {
	case 1:
		if addr > 255 {
			return ErrInfoObjAddrFit
		}
		this.infoObj = append(this.infoObj, byte(addr))
	case 2:
		if addr > 65535 {
			return ErrInfoObjAddrFit
		}
		this.infoObj = append(this.infoObj, byte(addr), byte(addr>>8))
	case 3:
		if addr > 16777215 {
			return ErrInfoObjAddrFit
		}
		this.infoObj = append(this.infoObj, byte(addr), byte(addr>>8), byte(addr>>16))
	default:
		return ErrParam
	}
	return nil
}

func (this *ASDU) DecodeInfoObjAddr() InfoObjAddr {
	var ioa InfoObjAddr
	switch this.InfoObjAddrSize {
	case 1:
		ioa = InfoObjAddr(this.infoObj[0])
		this.infoObj = this.infoObj[1:]
	case 2:
		ioa = InfoObjAddr(this.infoObj[0]) | (InfoObjAddr(this.infoObj[1]) << 8)
		this.infoObj = this.infoObj[2:]
	case 3:
		ioa = InfoObjAddr(this.infoObj[0]) | (InfoObjAddr(this.infoObj[1]) << 8) | (InfoObjAddr(this.infoObj[2]) << 16)
		this.infoObj = this.infoObj[3:]
	default:
		panic(ErrParam)
	}
	return ioa
}

func (this *ASDU) AppendNormalize(n Normalize) *ASDU {
	this.infoObj = append(this.infoObj, byte(n), byte(n>>8))
	return this
}

func (this *ASDU) DecodeNormalize() Normalize {
	n := Normalize(binary.LittleEndian.Uint16(this.infoObj))
	this.infoObj = this.infoObj[2:]
	return n
}

func (this *ASDU) AppendScaled(i int16) *ASDU {
	this.infoObj = append(this.infoObj, byte(i), byte(i>>8))
	return this
}

func (this *ASDU) DecodeScaled() int16 {
	s := int16(binary.LittleEndian.Uint16(this.infoObj))
	this.infoObj = this.infoObj[2:]
	return s
}

func (this *ASDU) AppendFloat32(f float32) *ASDU {
	bits := math.Float32bits(f)
	this.infoObj = append(this.infoObj, byte(bits), byte(bits>>8), byte(bits>>16), byte(bits>>24))
	return this
}

func (this *ASDU) DecodeFloat32() float32 {
	f := math.Float32frombits(binary.LittleEndian.Uint32(this.infoObj))
	this.infoObj = this.infoObj[4:]
	return f
}

func (this *ASDU) AppendUint16(v uint16) *ASDU {
	this.infoObj = append(this.infoObj, byte(v), byte(v>>8))
	return this
}

func (this *ASDU) DecodeUint16() uint16 {
	v := binary.LittleEndian.Uint16(this.infoObj)
	this.infoObj = this.infoObj[2:]
	return v
}

func (this *ASDU) AppendBitsString32(v uint32) *ASDU {
	this.infoObj = append(this.infoObj, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
	return this
}

func (this *ASDU) DecodeBitsString32() uint32 {
	v := binary.LittleEndian.Uint32(this.infoObj)
	this.infoObj = this.infoObj[4:]
	return v
}

func (this *ASDU) AppendCP56Time2a(t time.Time, loc *time.Location) *ASDU {
	this.infoObj = append(this.infoObj, CP56Time2a(t, loc)...)
	return this
}

func (this *ASDU) DecodeCP56Time2a() time.Time {
	t := ParseCP56Time2a(this.infoObj, this.Params.InfoObjTimeZone)
	this.infoObj = this.infoObj[7:]
	return t
}

func (this *ASDU) AppendCP24Time2a(t time.Time, loc *time.Location) *ASDU {
	this.infoObj = append(this.infoObj, CP24Time2a(t, loc)...)
	return this
}

func (this *ASDU) DecodeCP24Time2a() time.Time {
	t := ParseCP24Time2a(this.infoObj, this.Params.InfoObjTimeZone)
	this.infoObj = this.infoObj[3:]
	return t
}

func (this *ASDU) AppendCP16Time2a(msec uint16) *ASDU {
	this.infoObj = append(this.infoObj, CP16Time2a(msec)...)
	return this
}

func (this *ASDU) DecodeCP16Time2a() uint16 {
	msec := ParseCP16Time2a(this.infoObj)
	this.infoObj = this.infoObj[2:]
	return msec
}

// AppendBinaryCounterReading appends a 5-byte binary counter reading:
// a little-endian int32 count followed by a status byte packing the
// sequence number (bits 0-4), carry (bit 5), adjusted (bit 6) and
// invalid (bit 7) flags.
func (this *ASDU) AppendBinaryCounterReading(v BinaryCounterReading) *ASDU {
	cr := uint32(v.CounterReading)
	status := v.SeqNumber & 0x1f
	if v.HasCarry {
		status |= 0x20
	}
	if v.IsAdjusted {
		status |= 0x40
	}
	if v.IsInvalid {
		status |= 0x80
	}
	this.infoObj = append(this.infoObj, byte(cr), byte(cr>>8), byte(cr>>16), byte(cr>>24), status)
	return this
}

func (this *ASDU) DecodeBinaryCounterReading() BinaryCounterReading {
	cr := int32(binary.LittleEndian.Uint32(this.infoObj))
	status := this.infoObj[4]
	this.infoObj = this.infoObj[5:]
	return BinaryCounterReading{
		CounterReading: cr,
		SeqNumber:      status & 0x1f,
		HasCarry:       status&0x20 != 0,
		IsAdjusted:     status&0x40 != 0,
		IsInvalid:      status&0x80 != 0,
	}
}

// AppendStatusAndStatusChangeDetection appends the 4-byte status and
// change-detection bitfield (16 status bits followed by 16 change-
// detection bits), little-endian.
func (this *ASDU) AppendStatusAndStatusChangeDetection(v StatusAndStatusChangeDetection) *ASDU {
	scd := uint32(v)
	this.infoObj = append(this.infoObj, byte(scd), byte(scd>>8), byte(scd>>16), byte(scd>>24))
	return this
}

func (this *ASDU) DecodeStatusAndStatusChangeDetection() StatusAndStatusChangeDetection {
	v := StatusAndStatusChangeDetection(binary.LittleEndian.Uint32(this.infoObj))
	this.infoObj = this.infoObj[4:]
	return v
}