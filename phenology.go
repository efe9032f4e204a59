package monica

import "math"

// PhenologyState is the crop's stage machine state (§3, §4.1 step 3).
type PhenologyState struct {
	Stage              DevelopmentStage
	CurrentTempSum     float64 // accumulated effective temperature sum in the current stage
	VernalisationDays  float64
	IsWinterCrop       bool
	lastEvents         []string
}

// dayLengthFactor implements §4.1 step 4.
func dayLengthFactor(req, base, photoperiodicH, effectiveH float64) float64 {
	if req == 0 {
		return 1
	}
	if req > 0 {
		// long-day
		f := safeDiv(photoperiodicH-base, req-base, 1, "dayLengthFactorLong")
		return clampUnit(f)
	}
	// short-day: compares effective to critical/maximum (req, base both
	// negative in this branch; |req| is the critical day length, |base|
	// the maximum beyond which the factor is zero).
	critical := -req
	maximum := -base
	if effectiveH <= critical {
		return 1
	}
	if effectiveH >= maximum {
		return 0
	}
	f := safeDiv(maximum-effectiveH, maximum-critical, 1, "dayLengthFactorShort")
	return clampUnit(f)
}

// effectiveVernalisationPerDegree implements §4.1 step 5's piecewise
// per-day vernalisation effectiveness as a function of mean temperature.
func effectiveVernalisationPerDegree(tempC float64) float64 {
	switch {
	case tempC < -4 || tempC > 18:
		return 0
	case tempC >= 0 && tempC <= 3:
		return 1.0
	case tempC < 0:
		// -4..0 ramps up linearly to the 0..3 plateau
		return clampUnit((tempC + 4) / 4)
	default:
		// 3..18 ramps back down to zero
		return clampUnit((18 - tempC) / 15)
	}
}

// vernalisationFactor implements §4.1 step 5.
func vernalisationFactor(accumulatedDays, requirementDays float64) float64 {
	if requirementDays <= 0 {
		return 1
	}
	threshold := math.Min(requirementDays, 9) - 1
	if threshold < 1 {
		return 1
	}
	f := safeDiv(accumulatedDays-threshold, requirementDays-threshold, 1, "vernalisationFactor")
	return clampUnit(f)
}

// stressAccelerationFactor is max(N-stress accel, water-stress accel),
// applied only when the storage-organ partition coefficient exceeds 0.9
// (§4.1 step 3).
func stressAccelerationFactor(nStressAccel, waterStressAccel, storagePartitionCoeff float64) float64 {
	if storagePartitionCoeff <= 0.9 {
		return 1
	}
	accel := math.Max(nStressAccel, waterStressAccel)
	return clampMin(accel, 1)
}

// dailyTemperatureSumIncrement computes the bounded-base-and-optimum
// daily temperature contribution toward the current stage's sum
// (post-emergence branch of §4.1 step 3).
func dailyTemperatureSumIncrement(tavg, base, optimum, vernFactor, dayLenFactor, stressAccel float64) float64 {
	t := tavg
	if t < base {
		t = base
	}
	if t > optimum {
		t = optimum
	}
	delta := t - base
	if delta < 0 {
		delta = 0
	}
	return delta * vernFactor * dayLenFactor * stressAccel
}

// advanceStage integrates one day's temperature-sum contribution into
// the current stage, carrying any excess into the next stage, updates
// ps in place (including the stage), and returns the event tags fired.
// finalStage is the species' last stage index (post-maturity).
func advanceStage(ps *PhenologyState, increment float64, stageSums []float64, finalStage DevelopmentStage, lifeform *Lifeform) []string {
	var events []string
	ps.CurrentTempSum += increment

	for {
		if int(ps.Stage) < 0 || int(ps.Stage) >= len(stageSums) {
			// IrregularDevelopmentalStage: caller sets the sticky error
			// and retains the last valid stage (§7).
			break
		}
		needed := stageSums[ps.Stage]
		if needed <= 0 || ps.CurrentTempSum < needed {
			break
		}
		excess := ps.CurrentTempSum - needed
		ps.Stage++
		ps.CurrentTempSum = excess

		if ps.Stage >= finalStage {
			ps.Stage = finalStage
			events = append(events, stageEventTag(ps.Stage))
			if lifeform != nil && lifeform.Kind == Perennial {
				events = append(events, "maturity")
				ps.Stage = 0
				ps.CurrentTempSum = 0
				ps.VernalisationDays = 0
				lifeform.resetToJuvenile()
				events = append(events, stageEventTag(ps.Stage))
			}
			break
		}
		events = append(events, stageEventTag(ps.Stage))
		switch int(ps.Stage) {
		case 1:
			events = append(events, "emergence")
		}
	}
	return events
}

func stageEventTag(stage DevelopmentStage) string {
	return "Stage-" + itoa(int(stage))
}

// itoa avoids pulling in strconv for one tiny integer-to-string call
// site used only for event tags; kept local since it's used nowhere
// else and strconv.Itoa would be the idiomatic equivalent import.
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// isAnthesisDay / isMaturityDay detect stage-boundary crossings (§4.1).
func isAnthesisDay(oldStage, newStage, anthesisStage DevelopmentStage) bool {
	return oldStage < anthesisStage && newStage >= anthesisStage
}

func isMaturityDay(oldStage, newStage, finalStage DevelopmentStage) bool {
	return oldStage < finalStage && newStage >= finalStage
}

// preEmergenceConditionsMet implements the annual pre-emergence gate of
// §4.1 step 3: soil temperature sum with optional moisture/flooding
// control.
func preEmergenceConditionsMet(soilMoistureTopLayer, fieldCapacity, permanentWiltingPoint, capillaryWaterAbovePWP float64, surfaceWaterStorageMM float64, requireMoisture, requireNoFlooding bool) bool {
	if requireMoisture {
		lower := 0.2*capillaryWaterAbovePWP + permanentWiltingPoint
		if soilMoistureTopLayer < lower || soilMoistureTopLayer > fieldCapacity {
			return false
		}
	}
	if requireNoFlooding && surfaceWaterStorageMM > 0 {
		return false
	}
	return true
}
