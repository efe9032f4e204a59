package monica

import "math"

// O3Params are the species-level ozone-damage shape parameters (§4.2).
type O3Params struct {
	Gamma1 float64 // uptake threshold numerator
	Gamma2 float64 // uptake-to-damage slope
	Gamma3 float64 // long-term senescence acceleration rate
}

// o3UptakeRate implements §4.2: O3_uptake = O3a * gsc * f_WS * 0.93.
func o3UptakeRate(o3AmbientNmolMol, stomatalConductance, waterStressClosure float64) float64 {
	return o3AmbientNmolMol * stomatalConductance * waterStressClosure * 0.93
}

// hourlyReductionAc implements the piecewise short-term assimilation
// reduction of §4.2.
func hourlyReductionAc(cumulativeUptake float64, p O3Params) float64 {
	lowerBound := safeDiv(p.Gamma1, p.Gamma2, 0, "o3LowerBound")
	upperBound := safeDiv(1+p.Gamma1, p.Gamma2, 0, "o3UpperBound")
	switch {
	case cumulativeUptake <= lowerBound:
		return 1
	case cumulativeUptake < upperBound:
		return clampUnit(1 + p.Gamma1 - p.Gamma2*cumulativeUptake)
	default:
		return 0
	}
}

// leafAgeRecoveryFactor partially restores the short-term damage factor
// at the start of each new day (hour 0), representing leaf-age recovery.
func leafAgeRecoveryFactor(daysSinceDamage float64) float64 {
	return clampUnit(0.1 + 0.9*math.Exp(-daysSinceDamage/5))
}

// longTermSenescenceFactor implements §4.2's fO3l, floored at 0.5.
func longTermSenescenceFactor(cumulativeUptake float64, gamma3 float64) float64 {
	return math.Max(0.5, 1-gamma3*cumulativeUptake)
}

// maxSenescenceImpact is the cap on how much the critical relative
// development point for senescence onset can be brought forward (§4.2).
const maxSenescenceImpact = 0.4

// senescenceOnsetShift brings the critical relative-development point
// for senescence forward by fO3l, capped at maxSenescenceImpact.
func senescenceOnsetShift(criticalRelDev, fO3l float64) float64 {
	shift := criticalRelDev * (1 - fO3l)
	if shift > maxSenescenceImpact {
		shift = maxSenescenceImpact
	}
	return criticalRelDev - shift
}

// waterStressStomatalClosure is an AquaCrop-like depletion curve: the
// stomata close as 1 - x^p once the fraction of available water
// depleted exceeds an ET0-adjusted upper threshold, x being the
// depletion beyond that threshold scaled to [0,1].
func waterStressStomatalClosure(depletionFraction, upperThresholdET0Adjusted, shapeP float64) float64 {
	if depletionFraction <= upperThresholdET0Adjusted {
		return 1
	}
	x := safeDiv(depletionFraction-upperThresholdET0Adjusted, 1-upperThresholdET0Adjusted, 1, "o3WaterStressClosure")
	x = clampUnit(x)
	return clampUnit(1 - math.Pow(x, shapeP))
}

// applyDailyO3Uptake adds one day's O3 uptake to the running total in
// StressAccumulators and sets the short-term damage factor from that
// day's uptake and the long-term senescence factor from the total.
// CropModule.Step calls it once per day, before the day's assimilation.
func applyDailyO3Uptake(acc *StressAccumulators, hourlyUptakeSum float64, p O3Params) {
	acc.O3CumulativeUptake += hourlyUptakeSum
	acc.O3ShortTermDamage = hourlyReductionAc(hourlyUptakeSum, p)
	acc.O3LongTermDamage = longTermSenescenceFactor(acc.O3CumulativeUptake, p.Gamma3)
}
