package monica

import "math"

const minLAI = 0.001

// cropHeightM implements the sigmoid height response of §4.1 step 7.
func cropHeightM(maxHeight, p1, p2, relDevToMaxHeightStage float64) float64 {
	return maxHeight / (1 + math.Exp(-p1*(relDevToMaxHeightStage-p2)))
}

// cropDiameterM is linear to maxDiameter over the relative development
// toward the diameter stage (§4.1 step 7).
func cropDiameterM(maxDiameter, relDevToMaxDiameterStage float64) float64 {
	return clampMax(maxDiameter*clampUnit(relDevToMaxDiameterStage), maxDiameter)
}

// relativeDevelopment returns currentStage-fraction / targetStage as a
// [0,1]-ish ratio used by the sigmoid/linear crop-size responses, based
// on accumulated temperature sum relative to the sum needed through the
// target stage.
func relativeDevelopment(cumulativeTempSum, targetStageCumulativeSum float64) float64 {
	return safeDiv(cumulativeTempSum, targetStageCumulativeSum, 0, "relativeDevelopment")
}

// wangEngelResponse is the bell-shaped temperature response used
// (optionally) to modulate leaf expansion rate (§4.1 step 8).
func wangEngelResponse(t, tMin, tOpt, tMax float64) float64 {
	if t <= tMin || t >= tMax {
		return 0
	}
	alpha := math.Log(2) / math.Log(safeDiv(tMax-tMin, tOpt-tMin, 1, "wangEngelAlpha"))
	num := 2*math.Pow(t-tMin, alpha)*math.Pow(tOpt-tMin, alpha) - math.Pow(t-tMin, 2*alpha)
	den := math.Pow(tOpt-tMin, 2*alpha)
	return clampUnit(safeDiv(num, den, 0, "wangEngelResponse"))
}

// updateLAI implements §4.1 step 8: LAI grows by growth*SLA(stage) and
// shrinks by senescence*SLA(earlyStage), floored at minLAI.
func updateLAI(currentLAI, growthBiomass, senescenceBiomass, slaCurrentStage, slaEarlyStage float64) float64 {
	next := currentLAI + growthBiomass*slaCurrentStage - senescenceBiomass*slaEarlyStage
	return clampMin(next, minLAI)
}

// soilCoverageFraction implements §4.1 step 9.
func soilCoverageFraction(lai float64) float64 {
	return clampUnit(1 - math.Exp(-0.5*lai))
}
