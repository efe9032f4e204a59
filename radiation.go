package monica

import "math"

const solarConstantMJ = 0.0820 // MJ m^-2 min^-1 (Gsc)

// dayOfYear returns the 1-based Julian day of the weather record's date.
func dayOfYear(w WeatherRecord) int {
	return w.Date.YearDay()
}

// solarDeclinationRad is the FAO-56 solar declination for a Julian day.
func solarDeclinationRad(julianDay int) float64 {
	return 0.409 * math.Sin(2*math.Pi/365*float64(julianDay)-1.39)
}

// inverseRelativeDistance is the inverse relative Earth-Sun distance.
func inverseRelativeDistance(julianDay int) float64 {
	return 1 + 0.033*math.Cos(2*math.Pi/365*float64(julianDay))
}

// sunsetHourAngleRad clamps its asin/acos argument into [-1,1] (§2 step 1).
func sunsetHourAngleRad(latitudeRad, declinationRad float64) float64 {
	arg := -math.Tan(latitudeRad) * math.Tan(declinationRad)
	arg = clampAsinArg(arg, "sunsetHourAngle")
	return math.Acos(arg)
}

// RadiationGeometry bundles the day's computed astronomic quantities.
type RadiationGeometry struct {
	JulianDay             int
	DeclinationRad        float64
	AstronomicDayLengthH  float64 // sunrise-to-sunset, hours
	EffectiveDayLengthH   float64 // with civil-twilight correction
	PhotoperiodicDayLengthH float64 // used for day-length response
	ExtraterrestrialRadiationMJ float64
	ClearDayRadiationMJ   float64
	OvercastDayRadiationMJ float64
	GlobalRadiationMJ     float64
	MeanPARMicromol       float64
}

// computeRadiationGeometry performs §4.1 step 1 (radiation geometry).
// latitudeRad is the site latitude in radians, altitudeM its elevation.
func computeRadiationGeometry(w WeatherRecord, latitudeRad, altitudeM float64) RadiationGeometry {
	jd := dayOfYear(w)
	decl := solarDeclinationRad(jd)
	dr := inverseRelativeDistance(jd)
	omegaS := sunsetHourAngleRad(latitudeRad, decl)

	astronomic := 24.0 / math.Pi * omegaS

	// Effective day length: civil twilight adds ~two 50-minute sunrise/
	// sunset bands, modelled as a small additive correction on the
	// sunset hour angle using a sun-elevation offset of -6 degrees.
	twilightArg := clampAsinArg((math.Sin(-6*math.Pi/180)-math.Sin(latitudeRad)*math.Sin(decl))/(math.Cos(latitudeRad)*math.Cos(decl)), "effectiveDayLength")
	omegaEff := math.Acos(twilightArg)
	effective := 24.0 / math.Pi * omegaEff

	// Photoperiodic day length: effective day length plus a further
	// correction for atmospheric refraction, used by the day-length
	// phenology response (§4.1 step 4).
	photoperiodic := effective + 1.0

	ra := (24 * 60 / math.Pi) * solarConstantMJ * dr *
		(omegaS*math.Sin(latitudeRad)*math.Sin(decl) + math.Cos(latitudeRad)*math.Cos(decl)*math.Sin(omegaS))
	ra = guardNaN(ra, 0, "extraterrestrialRadiation")

	rso := (0.75 + 2e-5*altitudeM) * ra // clear-sky (FAO-56 eq. 37)
	overcast := 0.33 * rso              // heavily overcast fraction of clear-sky

	rs := 0.0
	if w.GlobalRadiationMJ != nil {
		rs = *w.GlobalRadiationMJ
	} else if w.SunshineHours != nil {
		n := astronomic
		as, bs := 0.25, 0.5
		rs = (as + bs*safeDiv(*w.SunshineHours, n, 0, "sunshineFraction")) * ra
	} else {
		// Hargreaves-style fallback from temperature range when neither
		// measured radiation nor sunshine hours are available.
		rs = 0.16 * math.Sqrt(clampMin(w.TmaxC-w.TminC, 0)) * ra
	}
	rs = clampMin(rs, 0)

	// Mean daytime PAR in umol m^-2 s^-1: ~0.45 fraction PAR of global,
	// 4.6 umol/J conversion, spread over the astronomic day length.
	meanPAR := rs * 1e6 * 0.45 * 4.6 / (math.Max(astronomic, 1) * 3600)

	return RadiationGeometry{
		JulianDay:                    jd,
		DeclinationRad:               decl,
		AstronomicDayLengthH:         astronomic,
		EffectiveDayLengthH:          effective,
		PhotoperiodicDayLengthH:      photoperiodic,
		ExtraterrestrialRadiationMJ:  ra,
		ClearDayRadiationMJ:          rso,
		OvercastDayRadiationMJ:       overcast,
		GlobalRadiationMJ:            rs,
		MeanPARMicromol:              meanPAR,
	}
}

// cloudinessFraction is how much of the clear-sky radiation is missing
// today, used to weight clear-day vs. overcast-day photosynthesis
// (§4.1 step 10).
func (g RadiationGeometry) cloudinessFraction() float64 {
	if g.ClearDayRadiationMJ <= 0 {
		return 0
	}
	return clampUnit(1 - g.GlobalRadiationMJ/g.ClearDayRadiationMJ)
}
