package adapter

import (
	"testing"
	"time"

	"github.com/gridedge/iec104master/asdu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestASDU(t *testing.T, typeID asdu.TypeID, cause asdu.Cause, neg bool, ca asdu.CommonAddr, build func(*asdu.ASDU)) *asdu.ASDU {
	t.Helper()
	u := asdu.NewASDU(asdu.ParamsWide, asdu.Identifier{
		Type:       typeID,
		Variable:   asdu.VariableStruct{IsSequence: false, Number: 1},
		Coa:        asdu.CauseOfTransmission{Cause: cause, IsNegative: neg},
		CommonAddr: ca,
	})
	build(u)
	return u
}

func TestPendingKeyUniqueness(t *testing.T) {
	k1 := pendingKey(10, asdu.C_SC_NA_1)
	k2 := pendingKey(10, asdu.C_DC_NA_1)
	k3 := pendingKey(11, asdu.C_SC_NA_1)
	assert.NotEqual(t, k1, k2)
	assert.NotEqual(t, k1, k3)
}

func TestRegisterRejectsDuplicate(t *testing.T) {
	a := &ClientAdapter{pending: make(map[string]*pendingCommand)}
	_, err := a.register("1.45", phaseExecute)
	require.NoError(t, err)

	_, err = a.register("1.45", phaseExecute)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestResolvePendingPositiveActivationConSelectPhase(t *testing.T) {
	a := &ClientAdapter{pending: make(map[string]*pendingCommand)}
	p, err := a.register(pendingKey(5, asdu.C_SC_NA_1), phaseSelect)
	require.NoError(t, err)

	u := newTestASDU(t, asdu.C_SC_NA_1, asdu.ActivationCon, false, 1, func(u *asdu.ASDU) {
		_ = u.AppendInfoObjAddr(5)
		u.AppendBytes(asdu.QualifierOfCommand{InSelect: true}.Value() | 0x01)
	})

	require.NoError(t, a.resolvePending(u, time.Now()))
	select {
	case err := <-p.result:
		assert.NoError(t, err)
	default:
		t.Fatal("expected select phase to resolve on positive ActCon")
	}
}

func TestResolvePendingNegativeActivationConRejects(t *testing.T) {
	a := &ClientAdapter{pending: make(map[string]*pendingCommand)}
	p, err := a.register(pendingKey(5, asdu.C_SC_NA_1), phaseExecute)
	require.NoError(t, err)

	u := newTestASDU(t, asdu.C_SC_NA_1, asdu.ActivationCon, true, 1, func(u *asdu.ASDU) {
		_ = u.AppendInfoObjAddr(5)
		u.AppendBytes(0x01)
	})

	require.NoError(t, a.resolvePending(u, time.Now()))
	select {
	case err := <-p.result:
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrRejected)
	default:
		t.Fatal("expected execute phase to reject on negative ActCon")
	}
}

func TestResolvePendingExecutePhaseWaitsForActTerm(t *testing.T) {
	a := &ClientAdapter{pending: make(map[string]*pendingCommand)}
	p, err := a.register(pendingKey(5, asdu.C_SC_NA_1), phaseExecute)
	require.NoError(t, err)

	actCon := newTestASDU(t, asdu.C_SC_NA_1, asdu.ActivationCon, false, 1, func(u *asdu.ASDU) {
		_ = u.AppendInfoObjAddr(5)
		u.AppendBytes(0x01)
	})
	require.NoError(t, a.resolvePending(actCon, time.Now()))
	select {
	case <-p.result:
		t.Fatal("execute phase must not resolve on ActCon alone")
	default:
	}

	actTerm := newTestASDU(t, asdu.C_SC_NA_1, asdu.ActivationTerm, false, 1, func(u *asdu.ASDU) {
		_ = u.AppendInfoObjAddr(5)
		u.AppendBytes(0x01)
	})
	require.NoError(t, a.resolvePending(actTerm, time.Now()))
	select {
	case err := <-p.result:
		assert.NoError(t, err)
	default:
		t.Fatal("expected execute phase to resolve on ActTerm")
	}
}

func TestSpontaneousQueueOverflowDropsOldest(t *testing.T) {
	var overflowed int
	q := newSpontaneousQueue(2, func() { overflowed++ })
	q.push(InformationObject{Ioa: 1})
	q.push(InformationObject{Ioa: 2})
	q.push(InformationObject{Ioa: 3})

	got := q.drain()
	assert.Equal(t, 1, overflowed)
	require.Len(t, got, 2)
	assert.EqualValues(t, 2, got[0].Ioa)
	assert.EqualValues(t, 3, got[1].Ioa)
}

func TestDecodeInformationObjectsUnknownType(t *testing.T) {
	u := newTestASDU(t, asdu.TypeID(200), asdu.Spontaneous, false, 1, func(u *asdu.ASDU) {})
	_, err := decodeInformationObjects(u, time.Now(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, asdu.ErrTypeIdentifier)
}

func TestDecodeInformationObjectsSinglePoint(t *testing.T) {
	u := newTestASDU(t, asdu.M_SP_NA_1, asdu.Spontaneous, false, 7, func(u *asdu.ASDU) {
		_ = u.AppendInfoObjAddr(100)
		u.AppendBytes(0x01) // value=1, QDSGood
	})
	objs, err := decodeInformationObjects(u, time.Now(), nil)
	require.NoError(t, err)
	require.Len(t, objs, 1)
	assert.EqualValues(t, 100, objs[0].Ioa)
	assert.Equal(t, true, objs[0].Value)
	assert.EqualValues(t, 7, objs[0].Coa)
}

func TestDecodeInformationObjectsNormalizedAppliesRegisteredRange(t *testing.T) {
	u := newTestASDU(t, asdu.M_ME_NA_1, asdu.Spontaneous, false, 7, func(u *asdu.ASDU) {
		_ = u.AppendInfoObjAddr(42)
		u.AppendNormalize(asdu.NormalizeFromFloat64(1.0, -1, 1)).AppendBytes(0x00)
	})

	s := newScaling()
	s.normalized[42] = normalizeRange{min: -1, max: 1}

	objs, err := decodeInformationObjects(u, time.Now(), s)
	require.NoError(t, err)
	require.Len(t, objs, 1)
	require.NotNil(t, objs[0].EngineeringValue)
	assert.InDelta(t, 1.0, *objs[0].EngineeringValue, 1e-3)
}

func TestDecodeInformationObjectsNormalizedWithoutRangeLeavesEngineeringValueNil(t *testing.T) {
	u := newTestASDU(t, asdu.M_ME_NA_1, asdu.Spontaneous, false, 7, func(u *asdu.ASDU) {
		_ = u.AppendInfoObjAddr(42)
		u.AppendNormalize(asdu.NormalizeFromFloat64(1.0, -1, 1)).AppendBytes(0x00)
	})

	objs, err := decodeInformationObjects(u, time.Now(), newScaling())
	require.NoError(t, err)
	require.Len(t, objs, 1)
	assert.Nil(t, objs[0].EngineeringValue)
}
