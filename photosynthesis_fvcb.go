package monica

import "math"

const (
	gasConstant          = 8.314 // J mol^-1 K^-1
	vomaxToVcmaxRatio    = 0.21  // Rubisco specificity-derived Vomax/Vcmax ratio (C3)
	oxygenPartialKPa     = 21.0  // kPa, atmospheric O2
)

// bernacchiScale implements the Bernacchi et al. temperature-response
// scaling shared by Vcmax, Jmax, Kc, Ko, Rd (§4.4): a plain Arrhenius
// function normalised to 25C, with no high-temperature deactivation peak.
func bernacchiScale(leafTempC, activationEnergyJMol float64) float64 {
	tk := leafTempC + 273.15
	tref := 298.15
	return math.Exp(activationEnergyJMol * (tk - tref) / (tref * gasConstant * tk))
}

// FvCBLeafParams are the species-level enzyme-kinetics constants (§3,§6).
type FvCBLeafParams struct {
	Kc25, Ko25, Vcmax25 float64
	AEKc, AEKo, AEVc    float64
	JmaxToVcmaxRatio    float64 // species-specific Jmax25/Vcmax25 ratio
	AEJmax              float64
	AERd                float64
	Rd25ToVcmax25Ratio  float64
}

// leafKinetics holds one fraction's (sunlit or shaded) temperature-
// scaled enzyme kinetics for one hour.
type leafKinetics struct {
	Vcmax, Jmax, Kc, Ko, Rd, GammaStar float64
}

func computeLeafKinetics(p FvCBLeafParams, leafTempC float64) leafKinetics {
	vcmax := p.Vcmax25 * bernacchiScale(leafTempC, p.AEVc)
	jmax := p.Vcmax25 * p.JmaxToVcmaxRatio * bernacchiScale(leafTempC, p.AEJmax)
	kc := p.Kc25 * bernacchiScale(leafTempC, p.AEKc)
	ko := p.Ko25 * bernacchiScale(leafTempC, p.AEKo)
	rd := p.Vcmax25 * p.Rd25ToVcmax25Ratio * bernacchiScale(leafTempC, p.AERd)
	vomax := vcmax * vomaxToVcmaxRatio
	gammaStar := safeDiv(0.5*vomax*kc*oxygenPartialKPa, vcmax*ko, 0, "gammaStar")
	return leafKinetics{Vcmax: vcmax, Jmax: jmax, Kc: kc, Ko: ko, Rd: rd, GammaStar: gammaStar}
}

// spitterDiffuseFraction splits global radiation into direct-beam and
// diffuse components via a Spitter-like clearness-index regression.
func spitterDiffuseFraction(globalMJ, extraterrestrialMJ float64) float64 {
	kt := clampUnit(safeDiv(globalMJ, extraterrestrialMJ, 0, "clearnessIndex"))
	switch {
	case kt <= 0.07:
		return 1.0
	case kt <= 0.35:
		return clampUnit(1 - 2.3*(kt-0.07)*(kt-0.07))
	case kt <= 0.75:
		return clampUnit(1.33 - 1.46*kt)
	default:
		return 0.23
	}
}

// sunlitShadedLAI splits canopy LAI into sunlit/shaded fractions given
// the solar elevation (radians) and extinction coefficient form
// kb = 0.5/sin(elevation) (§4.4).
func sunlitShadedLAI(lai, solarElevationRad float64) (sunlit, shaded float64) {
	sinElev := math.Sin(solarElevationRad)
	if sinElev <= 0.01 {
		return 0, lai
	}
	kb := 0.5 / sinElev
	sunlit = safeDiv(1-math.Exp(-kb*lai), kb, 0, "sunlitLAI")
	if sunlit > lai {
		sunlit = lai
	}
	shaded = lai - sunlit
	return sunlit, shaded
}

// hourlyLeafTemperatureC peaks mid-afternoon, following the diurnal
// temperature envelope between Tmin and Tmax (§4.1 step 10).
func hourlyLeafTemperatureC(hour int, tmin, tmax float64) float64 {
	// Peak at hour 16 (4pm), trough at hour 4 (pre-dawn).
	phase := 2 * math.Pi * (float64(hour) - 4) / 24
	frac := 0.5 - 0.5*math.Cos(phase)
	return tmin + (tmax-tmin)*frac
}

// hourlyVPDkPa derives vapor pressure deficit from the same diurnal
// envelope plus the day's mean relative humidity (§4.1 step 10).
func hourlyVPDkPa(leafTempC, relHumidity float64) float64 {
	es := saturationVaporPressureKPa(leafTempC)
	return clampMin(es*(1-relHumidity), 0)
}

func saturationVaporPressureKPa(tempC float64) float64 {
	return 0.6108 * math.Exp(17.27*tempC/(tempC+237.3))
}

// yinStruikCoefficients are the lumped p, Q, psi coefficients of the
// Yin & Struik (2009) cubic coupling photosynthesis and stomatal
// conductance for one leaf fraction and one hour.
type yinStruikCoefficients struct {
	p, q, psi float64
}

// solveYinStruikCubic solves the depressed cubic x^3 + p x + q = 0 via
// the trigonometric (Cardano, three-real-roots) form, returning the
// physically meaningful (smallest non-negative) root for net
// assimilation An, given the lumped coefficients. When the discriminant
// indicates a single real root, it falls back to Cardano's formula.
func solveYinStruikCubic(c yinStruikCoefficients) float64 {
	// Normalize x^3 + a2 x^2 + a1 x + a0 = 0 form is assumed pre-lumped
	// into depressed form t^3 + p t + q = 0 by the caller (coefficients
	// already centered), matching Yin-Struik's published lumped form.
	p, q := c.p, c.q
	discriminant := (q*q)/4 + (p*p*p)/27

	if discriminant > 0 {
		sqrtDisc := math.Sqrt(discriminant)
		u := cubeRoot(-q/2 + sqrtDisc)
		v := cubeRoot(-q/2 - sqrtDisc)
		return u + v
	}

	// Three real roots: trigonometric form.
	if p >= 0 {
		p = -1e-9 // guard against a degenerate non-negative p under this branch
	}
	r := 2 * math.Sqrt(-p/3)
	arg := clampAsinArg(3*q/(p*r), "yinStruikCubicArg")
	theta := math.Acos(arg) / 3
	roots := [3]float64{
		r * math.Cos(theta),
		r * math.Cos(theta-2*math.Pi/3),
		r * math.Cos(theta-4*math.Pi/3),
	}
	// Smallest non-negative root is the physically meaningful one.
	best := math.Inf(1)
	for _, root := range roots {
		if root >= 0 && root < best {
			best = root
		}
	}
	if math.IsInf(best, 1) {
		return 0
	}
	return best
}

func cubeRoot(x float64) float64 {
	if x < 0 {
		return -math.Cbrt(-x)
	}
	return math.Cbrt(x)
}

// leafAssimilation computes one fraction's (sunlit or shaded) net CO2
// assimilation rate (per second) for one hour as the minimum of the
// Rubisco- and electron-transport-limited rates minus dark respiration,
// with the ozone multipliers applied to the Rubisco-limited rate before
// the minimum is taken (§4.4, §4.1 step 10). It does not use the
// Yin-Struik cubic (solveYinStruikCubic) or any stomatal-conductance
// coupling.
func leafAssimilation(k leafKinetics, absorbedPARmicromol, ci, o3ShortTerm, o3Senescence float64) (netAssimilationMicromol float64) {
	// Rubisco-limited rate (Farquhar-von Caemmerer-Berry).
	wc := safeDiv(k.Vcmax*(ci-k.GammaStar), ci+k.Kc*(1+oxygenPartialKPa/k.Ko), 0, "wc")
	wc *= o3ShortTerm * o3Senescence

	// Electron-transport-limited rate, using a smoothed J from
	// absorbed PAR via the standard non-rectangular hyperbola with
	// curvature 0.7 and quantum efficiency 0.3.
	alpha, theta := 0.3, 0.7
	j := nonRectangularHyperbola(alpha*absorbedPARmicromol, k.Jmax, theta)
	wj := safeDiv(j*(ci-k.GammaStar), 4*(ci+2*k.GammaStar), 0, "wj")

	grossAssimilation := math.Min(wc, wj)
	netAssimilationMicromol = grossAssimilation - k.Rd
	return guardNaN(netAssimilationMicromol, 0, "leafAssimilation")
}

func nonRectangularHyperbola(x, max, theta float64) float64 {
	if theta <= 0 {
		return math.Min(x, max)
	}
	sum := x + max
	disc := sum*sum - 4*theta*x*max
	if disc < 0 {
		disc = 0
	}
	return safeDiv(sum-math.Sqrt(disc), 2*theta, 0, "nonRectangularHyperbola")
}

// HourlyFvCBResult is one hour's sunlit+shaded aggregated assimilation.
type HourlyFvCBResult struct {
	Hour                  int
	NetAssimilationMicromol float64 // sunlit+shaded, umol CO2 m^-2 ground h^-1 equivalent (per-hour sum)
}

// hourlyFvCBCanopyAssimilation runs the 24-hour loop of §4.4 and
// aggregates to kg CO2/ha/day, returning both the aggregate and the
// per-hour trace (CropModule.Step uses only the aggregate).
func hourlyFvCBCanopyAssimilation(w WeatherRecord, geom RadiationGeometry, lai float64, leaf FvCBLeafParams, ca float64, o3ShortTerm, o3Senescence float64) (dailyKgCO2Ha float64, hours []HourlyFvCBResult) {
	hours = make([]HourlyFvCBResult, 0, 24)
	total := 0.0
	for h := 0; h < 24; h++ {
		// Solar elevation approximated from the astronomic day length,
		// zero outside daylight hours.
		midDay := 12.0
		halfDay := geom.AstronomicDayLengthH / 2
		if float64(h) < midDay-halfDay || float64(h) > midDay+halfDay {
			hours = append(hours, HourlyFvCBResult{Hour: h, NetAssimilationMicromol: 0})
			continue
		}
		elevFraction := 1 - math.Abs(float64(h)-midDay)/halfDay
		solarElev := elevFraction * math.Pi / 2 * 0.9

		leafTemp := hourlyLeafTemperatureC(h, w.TminC, w.TmaxC)
		kinetics := computeLeafKinetics(leaf, leafTemp)

		sunlitLAI, shadedLAI := sunlitShadedLAI(lai, solarElev)
		diffuseFrac := spitterDiffuseFraction(geom.GlobalRadiationMJ, geom.ExtraterrestrialRadiationMJ)
		hourlyGlobalMJ := geom.GlobalRadiationMJ * elevFraction / math.Max(geom.AstronomicDayLengthH, 1)
		hourlyParMicromol := hourlyGlobalMJ * 0.45 * 4.6 * 1e6 / 3600

		ci := 0.7 * ca * (0.9 + 0.1*elevFraction)

		sunPAR := hourlyParMicromol * (1 - diffuseFrac)
		shadePAR := hourlyParMicromol * diffuseFrac

		sunA := leafAssimilation(kinetics, sunPAR, ci, o3ShortTerm, o3Senescence) * sunlitLAI
		shadeA := leafAssimilation(kinetics, shadePAR, ci, o3ShortTerm, o3Senescence) * shadedLAI

		// Leaf rates are per second (PAR above is per second); scale to
		// the hour.
		hourTotal := clampMin(sunA+shadeA, 0) * 3600
		hours = append(hours, HourlyFvCBResult{Hour: h, NetAssimilationMicromol: hourTotal})
		total += hourTotal
	}

	// umol CO2 m^-2 ground h^-1, summed over 24h, to kg CO2/ha/day:
	// umol -> mol (1e-6), mol CO2 -> g (44.01), g -> kg (1e-3), m^2 -> ha (1e4).
	dailyKgCO2Ha = total * 1e-6 * 44.01 * 1e-3 * 1e4
	return dailyKgCO2Ha, hours
}
