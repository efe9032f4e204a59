package monica

import "math"

// rootPenetrationRateM implements the clay-dependent root-front advance
// rate (§4.1 step 16), in m per degree-day above the root growth base
// temperature; falls back to the species' fixed rate when no
// clay-dependent function is supplied.
func rootPenetrationRateM(sp *SpeciesParameters, clayFraction float64) float64 {
	if sp.RootPenetrationRateByClay != nil {
		return sp.RootPenetrationRateByClay(clayFraction)
	}
	return sp.RootPenetrationRate
}

// dailyRootDepthIncrementM implements §4.1 step 16: penetration rate *
// degree-days above root-growth base temperature, gated to zero once
// the impenetrable-layer or soil-specific maximum depth is reached.
func dailyRootDepthIncrementM(tavgC, rootBaseTempC, penetrationRateMPerDegreeDay, currentDepthM, maxDepthM, impenetrableDepthM float64) float64 {
	if currentDepthM >= maxDepthM || currentDepthM >= impenetrableDepthM {
		return 0
	}
	degreeDays := clampMin(tavgC-rootBaseTempC, 0)
	increment := penetrationRateMPerDegreeDay * degreeDays
	capped := math.Min(maxDepthM, impenetrableDepthM) - currentDepthM
	return clampMin(math.Min(increment, capped), 0)
}

// depthToLayer converts a rooting depth in meters to a discrete layer
// index given uniform or variable layer thicknesses, returning the
// last layer the depth reaches into.
func depthToLayer(soil SoilColumn, depthM float64) SoilLayer {
	cumulative := 0.0
	n := soil.NumberOfLayers()
	for i := 0; i < n; i++ {
		cumulative += soil.LayerThicknessM(SoilLayer(i))
		if cumulative >= depthM {
			return SoilLayer(i)
		}
	}
	if n == 0 {
		return 0
	}
	return SoilLayer(n - 1)
}

// updateRootingGeometry advances rooting depth by one day and derives
// the rooting-depth and rooting-zone layer indices (rooting zone is
// 1.3x rooting depth per §4.1 step 16).
func updateRootingGeometry(rs *RootSystem, soil SoilColumn, sp *SpeciesParameters, tavgC float64, clayFraction float64) {
	rate := rootPenetrationRateM(sp, clayFraction)
	increment := dailyRootDepthIncrementM(tavgC, sp.RootGrowthLag, rate, rs.RootingDepthM, rs.MaxRootingDepthM, soil.ImpenetrableLayerDepthM())
	rs.RootingDepthM += increment

	rs.RootingDepthLayer = int(depthToLayer(soil, rs.RootingDepthM))
	rs.RootingZoneLayer = int(depthToLayer(soil, rs.RootingDepthM*1.3))
}

// rootDensityDistribution implements §4.1 step 16's exponential-then-
// linear density profile: exponential decay with depth down to the
// rooting-depth layer, linear taper to zero across the remainder of
// the rooting zone, then normalised and scaled by total root length =
// root biomass * specific root length (SRL).
func rootDensityDistribution(soil SoilColumn, rootingDepthLayer, rootingZoneLayer int, rootBiomassKgHa, srlMPerKg, formFactor float64) []float64 {
	n := soil.NumberOfLayers()
	density := make([]float64, n)
	if n == 0 || rootingDepthLayer < 0 {
		return density
	}

	raw := make([]float64, n)
	sum := 0.0
	for i := 0; i <= rootingDepthLayer && i < n; i++ {
		depthFraction := safeDiv(float64(i), float64(rootingDepthLayer+1), 0, "rootDensityDepthFraction")
		w := math.Exp(-formFactor * depthFraction)
		raw[i] = w
		sum += w
	}
	for i := rootingDepthLayer + 1; i <= rootingZoneLayer && i < n; i++ {
		span := float64(rootingZoneLayer - rootingDepthLayer)
		taper := clampUnit(safeDiv(float64(rootingZoneLayer-i), span, 0, "rootDensityTaper"))
		raw[i] = taper * raw[rootingDepthLayer] * 0.5
		sum += raw[i]
	}

	totalRootLengthM := rootBiomassKgHa * srlMPerKg
	for i := 0; i < n; i++ {
		share := safeDiv(raw[i], sum, 0, "rootDensityShare")
		thickness := clampMin(soil.LayerThicknessM(SoilLayer(i)), 1e-6)
		// m root / m^3 soil = share of total length / layer volume per ha
		// (1 ha = 1e4 m^2 cross-section).
		density[i] = safeDiv(totalRootLengthM*share, thickness*1e4, 0, "rootDensityVolume")
	}
	return density
}

// rootEffectivityByOxygen scales each layer's root water/N uptake
// effectivity by that layer's local oxygen deficit, reusing the same
// air-filled-pore-volume response as the whole-crop oxygen factor.
func rootEffectivityByOxygen(soil SoilColumn, layers int) []float64 {
	eff := make([]float64, layers)
	for i := 0; i < layers; i++ {
		moisture := soil.SoilMoisture(SoilLayer(i))
		saturation := clampMin(soil.Saturation(SoilLayer(i)), 1e-6)
		airFilledFraction := clampUnit(1 - moisture/saturation)
		eff[i] = clampUnit(0.3 + 0.7*airFilledFraction)
	}
	return eff
}

// deadRootBiomassKgHa implements root senescence at the cultivar's
// per-stage root senescence rate, returning the biomass to be routed
// to the soil-organic AOM pool (§4.1 partitioning/senescence step).
func deadRootBiomassKgHa(rootTotalKgHa, senescenceRate float64) float64 {
	return clampMin(rootTotalKgHa*clampUnit(senescenceRate), 0)
}
