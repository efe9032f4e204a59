package monica

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestInvariant_FrostReduxNeverHitsZero is §8 invariant 4: CropFrostRedux
// must remain in (0,1] across arbitrarily many frost events.
func TestInvariant_FrostReduxNeverHitsZero(t *testing.T) {
	acc := &StressAccumulators{LT50: -5, CropFrostRedux: 1}
	cv := newTestCultivar()
	for i := 0; i < 100; i++ {
		updateFrostState(acc, -40, cv, -4, 0, false)
		assert.Greater(t, acc.CropFrostRedux, 0.0)
		assert.LessOrEqual(t, acc.CropFrostRedux, 1.0)
	}
}

// TestInvariant_LT50NeverExceedsMinusThree is §8 invariant 5.
func TestInvariant_LT50NeverExceedsMinusThree(t *testing.T) {
	acc := &StressAccumulators{LT50: -1, CropFrostRedux: 1}
	cv := newTestCultivar()
	for i := 0; i < 50; i++ {
		updateFrostState(acc, 15, cv, -4, 0, false)
		assert.LessOrEqual(t, acc.LT50, minLT50+1e-9)
	}
}

// TestInvariant_HeatReduxMonotonicNonIncreasing is §8 invariant 3.
func TestInvariant_HeatReduxMonotonicNonIncreasing(t *testing.T) {
	acc := &StressAccumulators{CropHeatRedux: 1}
	cv := newTestCultivar()
	temps := []float64{38, 41, 30, 39, 25, 42}
	prev := 1.0
	for _, temp := range temps {
		applyHeatStress(acc, 100, cv, temp)
		assert.LessOrEqual(t, acc.CropHeatRedux, prev+1e-9)
		prev = acc.CropHeatRedux
	}
}

// TestInvariant_CO2ResponseNonDecreasing is §8 invariant 11.
func TestInvariant_CO2ResponseNonDecreasing(t *testing.T) {
	prevC3, prevC4 := -1.0, -1.0
	for _, ppm := range []float64{250, 350, 450, 600, 800} {
		c3 := co2AssimilationResponse(ppm, C3)
		c4 := co2AssimilationResponse(ppm, C4)
		assert.GreaterOrEqual(t, c3, prevC3)
		assert.GreaterOrEqual(t, c4, prevC4)
		prevC3, prevC4 = c3, c4
	}
}

// TestInvariant_LAINeverBelowFloor is the canopy-side companion to §8's
// "no NaN/negative state" requirement.
func TestInvariant_LAINeverBelowFloor(t *testing.T) {
	crop := newTestCropModule()
	soil := newMemSoilColumn(8, 0.2)
	date := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC) // harsh late-season conditions
	for day := 0; day < 30; day++ {
		weather := newTestWeather(date.AddDate(0, 0, day), -5, 2)
		crop.Step(soil, weather, weather.Date)
		assert.GreaterOrEqual(t, crop.Canopy.LAI, minLAI)
	}
}

// TestInvariant_StageIndexStaysInRangeOrFlagsSticky covers §8's
// "development stage is always a valid index, or the sticky error is
// set" requirement (invariant 7 in spec.md).
func TestInvariant_StageIndexStaysInRangeOrFlagsSticky(t *testing.T) {
	crop := newTestCropModule()
	soil := newMemSoilColumn(8, 0.2)
	date := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for day := 0; day < 365; day++ {
		weather := newTestWeather(date.AddDate(0, 0, day), 15, 30)
		crop.Step(soil, weather, weather.Date)
		if crop.Error() == nil {
			assert.GreaterOrEqual(t, int(crop.Phenology.Stage), 0)
			assert.LessOrEqual(t, crop.Phenology.Stage, crop.FinalStage)
		}
	}
}

// TestInvariant_NoNaNEscapesDailyState is the blanket "never let NaN
// reach output" guard (§7, §9).
func TestInvariant_NoNaNEscapesDailyState(t *testing.T) {
	crop := newTestCropModule()
	soil := newMemSoilColumn(8, 0.2)
	date := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	for day := 0; day < 60; day++ {
		weather := newTestWeather(date.AddDate(0, 0, day), 16, 30)
		crop.Step(soil, weather, weather.Date)

		assert.False(t, isNaNFloat(crop.Canopy.LAI))
		assert.False(t, isNaNFloat(crop.Water.ActualTranspirationMM))
		assert.False(t, isNaNFloat(crop.Nitrogen.CropNRedux))
		assert.False(t, isNaNFloat(crop.Stress.LT50))
	}
}
