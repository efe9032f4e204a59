package monica

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeLeafKinetics_ScalesWithTemperature(t *testing.T) {
	p := FvCBLeafParams{
		Kc25: 260, Ko25: 179000, Vcmax25: 90,
		AEKc: 79430, AEKo: 36380, AEVc: 65330,
		JmaxToVcmaxRatio: 1.67, AEJmax: 43540, AERd: 46390, Rd25ToVcmax25Ratio: 0.015,
	}
	at25 := computeLeafKinetics(p, 25)
	at35 := computeLeafKinetics(p, 35)

	assert.InDelta(t, p.Vcmax25, at25.Vcmax, 0.5, "Vcmax at 25C must match the unscaled input")
	assert.Greater(t, at35.Vcmax, at25.Vcmax, "Vcmax must rise with leaf temperature below its thermal optimum")
}

func TestSolveYinStruikCubic_PicksSmallestNonNegativeRoot(t *testing.T) {
	// A coefficient set known to produce three real roots, only one of
	// which is physically meaningful (non-negative and smallest).
	root := solveYinStruikCubic(yinStruikCoefficients{p: -3, q: 1})
	assert.GreaterOrEqual(t, root, 0.0)
}

func TestLeafAssimilation_NeverNegativeAfterGuard(t *testing.T) {
	k := leafKinetics{Vcmax: 90, Jmax: 150, Kc: 280, Ko: 180000, Rd: 1, GammaStar: 4}
	a := leafAssimilation(k, 0, 40, 1, 1) // zero light: Rd dominates, net goes negative before the NaN guard
	require.False(t, isNaNFloat(a))
}

func TestLeafAssimilation_O3ReducesWcBranch(t *testing.T) {
	k := leafKinetics{Vcmax: 90, Jmax: 150, Kc: 280, Ko: 180000, Rd: 1, GammaStar: 4}
	undamaged := leafAssimilation(k, 800, 30, 1, 1)
	damaged := leafAssimilation(k, 800, 30, 0.5, 1)
	assert.Less(t, damaged, undamaged, "halving the short-term ozone multiplier must reduce net assimilation")
}

func TestSunlitShadedLAI_SplitsToFullShadeAtNight(t *testing.T) {
	sunlit, shaded := sunlitShadedLAI(3.0, 0)
	assert.Equal(t, 0.0, sunlit)
	assert.Equal(t, 3.0, shaded)
}

func TestHourlyFvCBCanopyAssimilation_NonNegativeDailyTotal(t *testing.T) {
	w := newTestWeather(dateFixture(), 12, 26)
	geom := computeRadiationGeometry(w, 0.9, 80)
	leaf := FvCBLeafParams{
		Kc25: 260, Ko25: 179000, Vcmax25: 90,
		AEKc: 79430, AEKo: 36380, AEVc: 65330,
		JmaxToVcmaxRatio: 1.67, AEJmax: 43540, AERd: 46390, Rd25ToVcmax25Ratio: 0.015,
	}
	daily, hours := hourlyFvCBCanopyAssimilation(w, geom, 3.0, leaf, 400, 1, 1)
	assert.GreaterOrEqual(t, daily, 0.0)
	assert.Len(t, hours, 24)
}
