package monica

import "math"

// --- Oxygen deficit (§4.1 step 2) ---------------------------------------

// oxygenDeficiencyFactor implements fc_OxygenDeficiency. The source uses
// integer division (int(vc_TimeUnderAnoxia / 4)) when computing the
// anoxia-time contribution, which only ever yields 0 or 1 for an anoxia
// counter in {0..4}; spec.md flags this as an unresolved ambiguity
// (bug vs. intentional quantisation) and instructs not to guess intent,
// so the integer-division behavior is reproduced exactly here (see
// DESIGN.md open question 1).
func oxygenDeficiencyFactor(meanAirFilledPoreVolume, criticalContent float64, timeUnderAnoxia int, maxDeficit float64) (factor float64, newTimeUnderAnoxia int) {
	if meanAirFilledPoreVolume < criticalContent {
		newTimeUnderAnoxia = timeUnderAnoxia + 1
	} else {
		newTimeUnderAnoxia = 0
	}
	if newTimeUnderAnoxia > 4 {
		newTimeUnderAnoxia = 4
	}
	quantisedQuarters := newTimeUnderAnoxia / 4 // integer division, see above
	factor = 1 - float64(quantisedQuarters)*(1-maxDeficit)
	return clampUnit(factor), newTimeUnderAnoxia
}

// --- Heat stress (§4.1 step 12) -----------------------------------------

// floweringRate is the sigmoidal daily flowering progress used to weight
// the heat-impact factor.
func floweringRate(daysAfterBeginFlowering, floweringDurationDays float64) float64 {
	midpoint := floweringDurationDays / 2
	steepness := 0.3
	return clampUnit(1 / (1 + math.Exp(-steepness*(midpoint-math.Abs(daysAfterBeginFlowering-midpoint)))))
}

// heatImpactFactor linearly decreases from 1 at criticalT to 0 at
// limitingT, within the degree-day sensitive window.
func heatImpactFactor(tmax, criticalT, limitingT float64) float64 {
	if tmax <= criticalT {
		return 1
	}
	if tmax >= limitingT {
		return 0
	}
	return clampUnit(safeDiv(limitingT-tmax, limitingT-criticalT, 1, "heatImpactFactor"))
}

// applyHeatStress updates crop_heat_redux monotonically (non-increasing)
// during the degree-day sensitive window post-anthesis (§4.1 step 12,
// §8 invariant 3).
func applyHeatStress(acc *StressAccumulators, degreeDaysAfterAnthesis float64, cv *CultivarParameters, tmax float64) {
	if degreeDaysAfterAnthesis < cv.BeginSensitivePhaseHeatStress || degreeDaysAfterAnthesis > cv.EndSensitivePhaseHeatStress {
		return
	}
	window := cv.EndSensitivePhaseHeatStress - cv.BeginSensitivePhaseHeatStress
	relative := degreeDaysAfterAnthesis - cv.BeginSensitivePhaseHeatStress
	rate := floweringRate(relative, window)
	impact := heatImpactFactor(tmax, cv.CriticalTemperatureHeatStress, cv.LimitingTemperatureHeatStress)

	weightedImpact := 1 - rate*(1-impact)
	acc.TotalHeatImpact += 1 - weightedImpact
	if weightedImpact < acc.CropHeatRedux {
		acc.CropHeatRedux = weightedImpact
	}
}

// --- Frost kill (§4.1 step 13, Fowler et al. 2014) ----------------------

// crownTemperatureC derives the crown temperature from available
// signals, per §4.1 step 13: soil-surface/top-layer temperature during
// early stages, else 0.8x night temperature, overridden by the
// snow-insulated temperature when snow is present.
func crownTemperatureC(stage DevelopmentStage, earlyStageThreshold DevelopmentStage, soilSurfaceTempC, nightTempC float64, snowDepthMM float64, tempUnderSnowC float64, hasSnow bool) float64 {
	if hasSnow && snowDepthMM > 0 {
		return tempUnderSnowC
	}
	if stage <= earlyStageThreshold {
		return soilSurfaceTempC
	}
	return 0.8 * nightTempC
}

// frostHardeningRate is proportional to (threshold-crown)*(LT50-cultivarLT50)
// and only applies while the crop is unvernalised (§4.1 step 13).
func frostHardeningRate(crownTempC, hardeningThreshold, currentLT50, cultivarLT50, hardeningCoeff float64, vernalised bool) float64 {
	if vernalised {
		return 0
	}
	if crownTempC >= hardeningThreshold {
		return 0
	}
	return hardeningCoeff * (hardeningThreshold - crownTempC) * (currentLT50 - cultivarLT50)
}

// frostDeharderningRate implements pc_FrostDehardening/(1+exp(4.35-0.28*crown)).
func frostDeharderningRate(crownTempC, deharderningCoeff float64) float64 {
	return deharderningCoeff / (1 + math.Exp(4.35-0.28*crownTempC))
}

// respiratoryStressLoss implements (exp(0.84+0.051*crown)-2)/1.85,
// damped by snow insulation (min(snowDepthMM/125,1)).
func respiratoryStressLoss(crownTempC, snowDepthMM float64) float64 {
	raw := (math.Exp(0.84+0.051*crownTempC) - 2) / 1.85
	snowDamping := math.Min(snowDepthMM/125, 1)
	return raw * snowDamping
}

const minLT50 = -3.0 // §8 invariant 5: LT50 <= -3.0 always holds (lower is hardier)

// updateFrostState advances LT50 and the frost-kill redux by one day,
// implementing §4.1 step 13 end-to-end and §8 invariant 5.
func updateFrostState(acc *StressAccumulators, crownTempC float64, cv *CultivarParameters, hardeningThreshold, snowDepthMM float64, vernalised bool) {
	harden := frostHardeningRate(crownTempC, hardeningThreshold, acc.LT50, cv.LT50Cultivar, cv.FrostHardening, vernalised)
	deharden := frostDeharderningRate(crownTempC, cv.FrostDehardening)
	respiratory := respiratoryStressLoss(crownTempC, snowDepthMM)

	next := acc.LT50 - harden + deharden + respiratory
	if next > minLT50 {
		next = minLT50
	}
	acc.LT50 = next

	if crownTempC < acc.LT50 {
		acc.CropFrostRedux *= 0.5
	}
	if acc.CropFrostRedux <= 0 {
		acc.CropFrostRedux = 1e-6 // (0,1]: never exactly zero (§8 invariant 4)
	}
}

// --- Drought-fertility (§4.1 step 14) -----------------------------------

// droughtFertilityFactor implements §4.1 step 14: applies only when the
// partition coefficient to the storage organ exceeds zero and the
// transpiration deficit falls below droughtFertilityFactor*threshold.
func droughtFertilityFactor(transpirationDeficit, droughtFertilityCoeff, droughtThreshold, storagePartitionCoeff float64, waterlogged bool) float64 {
	if waterlogged {
		return 0
	}
	if storagePartitionCoeff <= 0 {
		return 1
	}
	gate := droughtFertilityCoeff * droughtThreshold
	if transpirationDeficit >= gate {
		return 1
	}
	ratio := safeDiv(transpirationDeficit, droughtThreshold, 1, "droughtFertilityRatio")
	return clampUnit(1 - (1-ratio)*(1-ratio))
}
