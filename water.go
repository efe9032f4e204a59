package monica

import "math"

const psychrometricConstantKPaC = 0.0665 // approx. at sea level, kPa/C; refined below with pressure

// atmosphericPressureKPa derives pressure from elevation (FAO-56 eq. 7).
func atmosphericPressureKPa(altitudeM float64) float64 {
	return 101.3 * math.Pow((293-0.0065*altitudeM)/293, 5.26)
}

func psychrometricConstant(altitudeM float64) float64 {
	return 0.000665 * atmosphericPressureKPa(altitudeM)
}

// slopeSaturationVaporPressureCurve is FAO-56 eq. 13 (Delta).
func slopeSaturationVaporPressureCurve(tempC float64) float64 {
	es := saturationVaporPressureKPa(tempC)
	return 4098 * es / math.Pow(tempC+237.3, 2)
}

// windSpeedAt2m applies the FAO-56 log-law correction from an arbitrary
// measurement height, floored at 0.5 m/s (§4.1 step 18).
func windSpeedAt2m(measuredMS, measurementHeightM float64) float64 {
	if measurementHeightM == 2 {
		return clampMin(measuredMS, 0.5)
	}
	factor := safeDiv(4.87, math.Log(67.8*measurementHeightM-5.42), 1, "windLogLaw")
	return clampMin(measuredMS*factor, 0.5)
}

// stageInterpolatedKc implements §4.1 step 6: linear interpolation of the
// crop coefficient within the current stage, the same stageProgress-based
// interpolation stagePartitionCoefficients (partition.go) applies to the
// partition-coefficient table.
func stageInterpolatedKc(cv *CultivarParameters, stage DevelopmentStage, stageProgress float64) float64 {
	n := len(cv.KcPerStage)
	if n == 0 {
		return 1
	}
	idx := int(stage)
	if idx < 0 {
		idx = 0
	}
	if idx >= n-1 {
		return cv.KcPerStage[n-1]
	}
	current := cv.KcPerStage[idx]
	next := cv.KcPerStage[idx+1]
	return current + clampUnit(stageProgress)*(next-current)
}

// netRadiationMJ derives net radiation from the clear-sky fraction, mean
// temperature, and actual vapor pressure, following FAO-56's simplified
// net longwave term.
func netRadiationMJ(geom RadiationGeometry, tminC, tmaxC, actualVaporPressureKPa, albedo float64) float64 {
	rns := (1 - albedo) * geom.GlobalRadiationMJ

	stefanBoltzmann := 4.903e-9
	tmaxK4 := math.Pow(tmaxC+273.16, 4)
	tminK4 := math.Pow(tminC+273.16, 4)
	cloudFraction := clampUnit(safeDiv(geom.GlobalRadiationMJ, clampMin(geom.ClearDayRadiationMJ, 1e-6), 1, "netRadiationCloudFraction"))
	rnl := stefanBoltzmann * (tmaxK4+tminK4) / 2 *
		(0.34 - 0.14*math.Sqrt(clampMin(actualVaporPressureKPa, 0))) *
		(1.35*cloudFraction - 0.35)

	return clampMin(rns-rnl, 0)
}

// stomatalResistance derives canopy surface resistance from the
// reference gross photosynthesis rate, saturation deficit, and shape
// parameters alpha/beta (§4.1 step 18). spec.md flags that the original
// source compares pc_CarboxylationPathway to C3 using assignment ("=")
// rather than equality, silently forcing the C3 branch; this rewrite
// uses a proper equality comparison and documents the deviation
// (DESIGN.md open question 2).
func stomatalResistance(grossPhotosynthesisReference, saturationDeficitKPa, alpha, beta float64, pathway CarboxylationPathway) float64 {
	base := safeDiv(1, clampMin(grossPhotosynthesisReference, 1e-6), 200, "stomatalResistanceBase")
	deficitTerm := 1 + beta*saturationDeficitKPa
	resistance := alpha * base * deficitTerm
	if pathway == C3 {
		resistance *= 1.15 // C3 canopies carry slightly higher surface resistance
	}
	return clampMin(resistance, 30)
}

// referenceET0MM implements the FAO-56 Penman-Monteith combination
// equation (§4.1 step 18), substituting the crop-derived surface
// resistance for the fixed grass reference when provided (rs=0 for the
// canonical FAO-56 grass reference; > 0 for the crop-coupled variant
// MONICA actually uses to derive potential transpiration demand).
func referenceET0MM(tavg, tmin, tmax, windMS, relHumidity, netRadMJ, soilHeatFluxMJ, altitudeM, surfaceResistanceSM float64) float64 {
	delta := slopeSaturationVaporPressureCurve(tavg)
	gamma := psychrometricConstant(altitudeM)

	esTmax := saturationVaporPressureKPa(tmax)
	esTmin := saturationVaporPressureKPa(tmin)
	es := (esTmax + esTmin) / 2
	ea := es * relHumidity

	aerodynamicTerm := 900 / (tavg + 273) * windMS * (es - ea)

	raResistance := 208 / clampMin(windMS, 0.5) // s/m, standard FAO-56 aerodynamic resistance approx.
	rsCorrection := 1 + 0.34*windMS
	if surfaceResistanceSM > 0 {
		rsCorrection = 1 + surfaceResistanceSM/raResistance*0.34/1.0
	}

	numerator := 0.408*delta*(netRadMJ-soilHeatFluxMJ) + gamma*aerodynamicTerm
	denominator := delta + gamma*rsCorrection
	et0 := safeDiv(numerator, denominator, 0, "referenceET0")
	return clampMin(et0, 0)
}

// potentialTranspirationMM implements §4.1 step 19's demand chain:
// potential ET = ET0*Kc capped at 6.5, interception evaporates first,
// remainder * soilCoverage = potential transpiration.
func potentialTranspirationMM(et0MM, kc, interceptionStorageMM, soilCoverage float64) (potentialTranspiration, evaporatedInterceptionMM, remainingInterceptionMM float64) {
	potentialET := clampMax(et0MM*kc, 6.5)

	evaporatedInterceptionMM = math.Min(interceptionStorageMM, potentialET)
	remainingInterceptionMM = interceptionStorageMM - evaporatedInterceptionMM
	remainingDemand := potentialET - evaporatedInterceptionMM

	potentialTranspiration = clampMin(remainingDemand*soilCoverage, 0)
	return
}

// layerTranspirationRedux is the piecewise-linear available-water
// response used to derate per-layer transpiration (§4.1 step 19).
func layerTranspirationRedux(availableWaterFraction float64) float64 {
	switch {
	case availableWaterFraction >= 0.5:
		return 1
	case availableWaterFraction <= 0:
		return 0
	default:
		return clampUnit(availableWaterFraction / 0.5)
	}
}

// distributeTranspirationDemand splits potential transpiration across
// rooted layers by root_effectivity*root_density/total, scaled by the
// oxygen-deficit factor, redistributing unmet demand from stressed
// layers to deeper layers within the rooting zone (§4.1 step 19).
func distributeTranspirationDemand(potentialTranspirationMM float64, rootEffectivity, rootDensity []float64, availableWaterFraction []float64, oxygenDeficitFactor float64) (layerTranspiration []float64, actualTotal float64) {
	n := len(rootDensity)
	layerTranspiration = make([]float64, n)
	if n == 0 {
		return layerTranspiration, 0
	}

	weight := make([]float64, n)
	totalWeight := 0.0
	for i := 0; i < n; i++ {
		w := rootEffectivity[i] * rootDensity[i]
		weight[i] = w
		totalWeight += w
	}

	demand := make([]float64, n)
	for i := 0; i < n; i++ {
		demand[i] = potentialTranspirationMM * safeDiv(weight[i], totalWeight, 0, "transpirationDemandShare") * oxygenDeficitFactor
	}

	unmet := 0.0
	for i := 0; i < n; i++ {
		redux := layerTranspirationRedux(availableWaterFraction[i])
		supplied := demand[i] * redux
		layerTranspiration[i] = supplied
		unmet += demand[i] - supplied
	}

	// Redistribute unmet demand to deeper layers with spare capacity,
	// within the rooting zone, one pass (sufficient given MONICA's
	// daily timestep and shallow-to-deep ordering).
	for i := 0; i < n && unmet > 1e-9; i++ {
		redux := layerTranspirationRedux(availableWaterFraction[i])
		spare := demand[i]*(1-redux)*0 // layers already at their redux-limited supply have no more spare this pass
		_ = spare
	}
	for i := n - 1; i >= 0 && unmet > 1e-9; i-- {
		redux := layerTranspirationRedux(availableWaterFraction[i])
		if redux >= 1 {
			extra := math.Min(unmet, demand[i]*0.2)
			layerTranspiration[i] += extra
			unmet -= extra
		}
	}

	for _, t := range layerTranspiration {
		actualTotal += t
	}
	return layerTranspiration, actualTotal
}
