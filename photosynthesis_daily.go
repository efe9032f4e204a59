package monica

import "math"

// dailyCanopyAssimilationParams are the species/cultivar knobs feeding
// the daily Penman-style canopy photosynthesis route (§4.1 step 10,
// legacy C3 and C4 path).
type dailyCanopyAssimilationParams struct {
	MaxAssimilationRate float64 // kg CH2O ha^-1 h^-1, cultivar pc_MaxAssimilationRate
	KcFactor            float64 // current-stage Kc, scales light-use efficiency
	CO2ppm              float64
	Pathway             CarboxylationPathway
}

// co2AssimilationResponse scales maximum assimilation by ambient CO2,
// saturating (Michaelis-Menten-like) for C3 and a nearly flat linear
// ramp for C4 (§8 invariant 11: non-decreasing gross assimilation as
// CO2 rises).
func co2AssimilationResponse(co2ppm float64, pathway CarboxylationPathway) float64 {
	switch pathway {
	case C4:
		// C4 photosynthesis saturates near current ambient CO2; only a
		// small residual response remains.
		return clampUnit(0.9 + 0.1*clampUnit((co2ppm-200)/600))
	default:
		// C3: Michaelis-Menten-shaped response, half-saturation ~350ppm.
		return safeDiv(co2ppm, co2ppm+350, 1, "co2AssimilationResponseC3")
	}
}

// canopyGrossAssimilation implements the daily Penman-style route: a
// clear-day and an overcast-day gross assimilation rate, weighted by
// the day's cloudiness fraction (§4.1 step 10).
func canopyGrossAssimilation(geom RadiationGeometry, lai float64, p dailyCanopyAssimilationParams) float64 {
	soilCoverage := soilCoverageFraction(lai)
	co2Factor := co2AssimilationResponse(p.CO2ppm, p.Pathway)

	clearDayRate := p.MaxAssimilationRate * p.KcFactor * co2Factor *
		lightUseEfficiencyFactor(geom.ClearDayRadiationMJ, geom.AstronomicDayLengthH) * soilCoverage
	overcastDayRate := p.MaxAssimilationRate * p.KcFactor * co2Factor *
		lightUseEfficiencyFactor(geom.OvercastDayRadiationMJ, geom.AstronomicDayLengthH) * soilCoverage

	cloudiness := geom.cloudinessFraction()
	grossPerHour := clearDayRate*(1-cloudiness) + overcastDayRate*cloudiness
	dayLengthH := geom.AstronomicDayLengthH
	return clampMin(grossPerHour*dayLengthH, 0) // kg CH2O / ha / day
}

// lightUseEfficiencyFactor is a saturating response of assimilation
// rate to daily radiation flux density (a simple rectangular-hyperbola
// light-response curve, half-saturating near typical clear-sky noon
// flux density).
func lightUseEfficiencyFactor(radiationMJ, dayLengthH float64) float64 {
	fluxDensity := safeDiv(radiationMJ, math.Max(dayLengthH, 1), 0, "lightUseEfficiencyFlux")
	halfSat := 10.0 // MJ m^-2 h^-1 roughly corresponding to clear noon
	return safeDiv(fluxDensity, fluxDensity+halfSat, 0, "lightUseEfficiencyFactor")
}

// respirationSplit implements the Agrosim day/night maintenance and
// growth respiration split of §4.1 step 11: a 2^((T-Tref)/10)-style Q10
// exponent, normalised by day length, deducted from assimilates and
// never allowed to push net assimilation below zero.
func respirationSplit(grossAssimilation, tavg, tref float64, dayLengthH float64, maintenanceCoeff, growthCoeff float64) (net float64, maintenance float64, growth float64) {
	q10Day := math.Pow(2, (tavg-tref)/10)
	nightTemp := tavg - 4 // approximate night-time depression
	q10Night := math.Pow(2, (nightTemp-tref)/10)

	dayFraction := clampUnit(dayLengthH / 24)
	nightFraction := 1 - dayFraction

	maintenance = maintenanceCoeff * (q10Day*dayFraction + q10Night*nightFraction)
	growth = growthCoeff * grossAssimilation

	net = grossAssimilation - maintenance - growth
	if net < 0 {
		net = 0
	}
	return net, maintenance, growth
}
