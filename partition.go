package monica

import "math"

// stagePartitionCoefficients linearly interpolates the cultivar's
// per-stage, per-organ partition coefficient table across the current
// stage's fractional progress (§4.1 partitioning step).
func stagePartitionCoefficients(cv *CultivarParameters, stage DevelopmentStage, stageProgress float64) []float64 {
	n := len(cv.PartitionCoefficients)
	if n == 0 {
		return nil
	}
	idx := int(stage)
	if idx < 0 {
		idx = 0
	}
	if idx >= n-1 {
		return append([]float64(nil), cv.PartitionCoefficients[n-1]...)
	}
	current := cv.PartitionCoefficients[idx]
	next := cv.PartitionCoefficients[idx+1]
	out := make([]float64, len(current))
	for i := range current {
		nextVal := current[i]
		if i < len(next) {
			nextVal = next[i]
		}
		out[i] = current[i] + stageProgress*(nextVal-current[i])
	}
	return out
}

// storageOrganPartitionCoefficient derates the storage organ's raw
// partition coefficient by heat and drought stress multiplicatively
// (§4.1 step 14, step 12): the raw coefficient times both factors,
// clamped to [0,1].
func storageOrganPartitionCoefficient(rawCoeff, heatRedux, droughtFertility float64) float64 {
	return clampUnit(rawCoeff * heatRedux * droughtFertility)
}

// assimilatePartitioning distributes the day's net assimilate pool
// (kg DM/ha) across organs by the interpolated partition coefficients,
// renormalising so the vector sums to at most 1 after the storage-organ
// derating. When the derated coefficients sum to less than 1, the
// unallocated part of the pool is not distributed or returned.
func assimilatePartitioning(netAssimilateKgHa float64, coeffs []float64, storageOrganIndex int, storageCoeff float64) []float64 {
	out := make([]float64, len(coeffs))
	if len(coeffs) == 0 {
		return out
	}
	adjusted := append([]float64(nil), coeffs...)
	if storageOrganIndex >= 0 && storageOrganIndex < len(adjusted) {
		adjusted[storageOrganIndex] = storageCoeff
	}
	sum := 0.0
	for _, c := range adjusted {
		sum += c
	}
	if sum <= 0 {
		return out
	}
	scale := math.Min(1, sum)
	for i, c := range adjusted {
		out[i] = netAssimilateKgHa * safeDiv(c, sum, 0, "assimilatePartitioningShare") * scale
	}
	return out
}

// organSenescenceKgHa applies the cultivar's per-stage, per-organ
// senescence rate to green biomass, returning dead-biomass increments
// to add to OrganBiomass.Dead.
func organSenescenceKgHa(organ *OrganBiomass, cv *CultivarParameters, stage DevelopmentStage) []float64 {
	n := organCount
	out := make([]float64, n)
	idx := int(stage)
	if idx < 0 || idx >= len(cv.OrganSenescenceRate) {
		return out
	}
	rates := cv.OrganSenescenceRate[idx]
	for i := 0; i < n && i < len(rates); i++ {
		out[i] = clampMin(organ.Green(i)*clampUnit(rates[i]), 0)
	}
	return out
}

// assimilateReallocationKgHa splits senescing leaf and shoot biomass
// into a reallocated share (§4's "assimilate reallocation fraction")
// and the share that dies; applyPartitioningStep moves the reallocated
// share to the storage organ.
func assimilateReallocationKgHa(senescedKgHa float64, reallocationFraction float64) (reallocated, netDead float64) {
	reallocated = senescedKgHa * clampUnit(reallocationFraction)
	netDead = senescedKgHa - reallocated
	return reallocated, netDead
}

// applyPartitioningStep runs one day's full partitioning pass: builds
// stage-interpolated coefficients, derates the storage organ, splits
// the assimilate pool, applies organ senescence with reallocation, and
// updates OrganBiomass in place. It returns the per-organ growth, the
// biomass newly retired to OrganBiomass.Dead this day, the biomass
// reallocated from leaf and shoot to the storage organ, and the root
// biomass that senesced (routed to the soil-organic AOM pool by the
// caller).
func applyPartitioningStep(organ *OrganBiomass, cv *CultivarParameters, sp *SpeciesParameters, stage DevelopmentStage, stageProgress float64, netAssimilateKgHa, heatRedux, droughtFertility float64, rootSenescenceRate float64) (grown []float64, deadIncrement []float64, reallocatedKgHa float64, deadRootKgHa float64) {
	coeffs := stagePartitionCoefficients(cv, stage, stageProgress)
	storageIdx := OrganStorage
	rawStorageCoeff := 0.0
	if storageIdx < len(coeffs) {
		rawStorageCoeff = coeffs[storageIdx]
	}
	storageCoeff := storageOrganPartitionCoefficient(rawStorageCoeff, heatRedux, droughtFertility)

	grown = assimilatePartitioning(netAssimilateKgHa, coeffs, storageIdx, storageCoeff)
	for i, g := range grown {
		if i < organCount {
			organ.Total[i] += g
		}
	}

	senesced := organSenescenceKgHa(organ, cv, stage)
	deadIncrement = make([]float64, organCount)
	for i := 0; i < organCount && i < len(senesced); i++ {
		if i == OrganLeaf || i == OrganShoot {
			realloc, net := assimilateReallocationKgHa(senesced[i], sp.AssimilateReallocation)
			reallocatedKgHa += realloc
			organ.Total[i] -= realloc
			organ.Total[OrganStorage] += realloc
			organ.Dead[i] += net
			deadIncrement[i] = net
		} else {
			organ.Dead[i] += senesced[i]
			deadIncrement[i] = senesced[i]
		}
	}

	deadRootKgHa = deadRootBiomassKgHa(organ.Total[OrganRoot], rootSenescenceRate)
	organ.Dead[OrganRoot] += deadRootKgHa

	return grown, deadIncrement, reallocatedKgHa, deadRootKgHa
}
