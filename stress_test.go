package monica

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOxygenDeficiencyFactor_QuantisedQuarters(t *testing.T) {
	// Reproduces the source's integer-division quantisation: the anoxia
	// counter only ever contributes 0 or 1 quarter given the 4-day cap
	// (see DESIGN.md open question 1 — preserved intentionally).
	factor, newTime := oxygenDeficiencyFactor(0.05, 0.1, 3, 0.2)
	require.Equal(t, 4, newTime)
	assert.InDelta(t, 0.2, factor, 1e-9, "time-under-anoxia=4 must apply the full maxDeficit penalty, not a fraction of it")

	factor2, newTime2 := oxygenDeficiencyFactor(0.05, 0.1, 2, 0.2)
	require.Equal(t, 3, newTime2)
	assert.Equal(t, 1.0, factor2, "time-under-anoxia=3 still quantises to zero quarters and applies no penalty")
}

func TestOxygenDeficiencyFactor_RecoversWhenAboveCritical(t *testing.T) {
	_, newTime := oxygenDeficiencyFactor(0.3, 0.1, 4, 0.2)
	assert.Equal(t, 0, newTime, "air-filled pore volume above the critical content resets the anoxia counter")
}

func TestApplyHeatStress_MonotonicNonIncreasing(t *testing.T) {
	acc := &StressAccumulators{CropHeatRedux: 1}
	cv := newTestCultivar()

	applyHeatStress(acc, 100, cv, 38)
	afterFirst := acc.CropHeatRedux
	applyHeatStress(acc, 120, cv, 20) // mild day: must not undo prior damage
	assert.LessOrEqual(t, acc.CropHeatRedux, afterFirst+1e-9, "heat redux must never increase once damaged (§8 invariant 3)")
}

func TestApplyHeatStress_OutsideWindowIsNoOp(t *testing.T) {
	acc := &StressAccumulators{CropHeatRedux: 1}
	cv := newTestCultivar()
	applyHeatStress(acc, 500, cv, 45) // past EndSensitivePhaseHeatStress
	assert.Equal(t, 1.0, acc.CropHeatRedux)
}

func TestUpdateFrostState_LT50NeverExceedsCeiling(t *testing.T) {
	acc := &StressAccumulators{LT50: -2, CropFrostRedux: 1}
	cv := newTestCultivar()
	for i := 0; i < 10; i++ {
		updateFrostState(acc, 10, cv, -4, 0, false) // warm, dehardening days
	}
	assert.LessOrEqual(t, acc.LT50, minLT50+1e-9, "§8 invariant 5: LT50 must never rise above -3.0C")
}

func TestUpdateFrostState_ReduxNeverReachesZero(t *testing.T) {
	acc := &StressAccumulators{LT50: -5, CropFrostRedux: 1}
	cv := newTestCultivar()
	for i := 0; i < 20; i++ {
		updateFrostState(acc, -30, cv, -4, 0, false)
	}
	assert.Greater(t, acc.CropFrostRedux, 0.0, "§8 invariant 4: frost redux stays strictly positive, even after repeated kill events")
}

func TestDroughtFertilityFactor_ZeroWhenWaterlogged(t *testing.T) {
	f := droughtFertilityFactor(0.1, 0.8, 0.5, 0.2, true)
	assert.Equal(t, 0.0, f)
}

func TestDroughtFertilityFactor_OneWhenNoStorageAllocation(t *testing.T) {
	f := droughtFertilityFactor(0.9, 0.8, 0.5, 0, false)
	assert.Equal(t, 1.0, f, "a crop not yet allocating to storage organs is unaffected by drought-fertility coupling")
}
