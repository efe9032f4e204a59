package monica

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDayLengthFactor_LongDayCrop(t *testing.T) {
	assert.Equal(t, 1.0, dayLengthFactor(14, 8, 16, 16), "full day length past requirement saturates at 1")
	f := dayLengthFactor(14, 8, 10, 10)
	assert.Less(t, f, 1.0, "short days below requirement must reduce the factor")
	assert.GreaterOrEqual(t, f, 0.0)
}

func TestDayLengthFactor_ShortDayCrop(t *testing.T) {
	// req<0, base<0 signals a short-day crop.
	assert.Equal(t, 1.0, dayLengthFactor(-10, -14, 9, 9), "below the critical day length, factor saturates at 1")
	assert.Equal(t, 0.0, dayLengthFactor(-10, -14, 20, 20), "beyond the maximum day length, factor floors at 0")
}

func TestDayLengthFactor_NoRequirement(t *testing.T) {
	assert.Equal(t, 1.0, dayLengthFactor(0, 0, 10, 10), "a stage with no day-length sensitivity is never penalised")
}

func TestEffectiveVernalisationPerDegree_Plateau(t *testing.T) {
	assert.Equal(t, 1.0, effectiveVernalisationPerDegree(1))
	assert.Equal(t, 1.0, effectiveVernalisationPerDegree(3))
	assert.Equal(t, 0.0, effectiveVernalisationPerDegree(-10))
	assert.Equal(t, 0.0, effectiveVernalisationPerDegree(25))
}

func TestVernalisationFactor_NoRequirementAlwaysSatisfied(t *testing.T) {
	assert.Equal(t, 1.0, vernalisationFactor(0, 0))
}

func TestAdvanceStage_CarriesExcessIntoNextStage(t *testing.T) {
	ps := &PhenologyState{Stage: 0, CurrentTempSum: 0}
	stageSums := []float64{10, 20, 30}
	events := advanceStage(ps, 15, stageSums, 2, nil)

	assert.Equal(t, DevelopmentStage(1), ps.Stage)
	assert.InDelta(t, 5.0, ps.CurrentTempSum, 1e-9, "the 5 degree-day excess over stage 0's requirement carries forward")
	assert.NotEmpty(t, events)
}

func TestAdvanceStage_PerennialResetsOnMaturity(t *testing.T) {
	lifeform := Lifeform{Kind: Perennial, Active: newTestCultivar()}
	lifeform.Juvenile = lifeform.Active
	ps := &PhenologyState{Stage: 2, CurrentTempSum: 290}
	stageSums := []float64{120, 400, 300}

	events := advanceStage(ps, 50, stageSums, 2, &lifeform)

	assert.Equal(t, DevelopmentStage(0), ps.Stage, "a perennial resets to stage 0 after completing its final stage")
	assert.Contains(t, events, "maturity")
}

func TestPreEmergenceConditionsMet_RespectsFlooding(t *testing.T) {
	ok := preEmergenceConditionsMet(0.25, 0.30, 0.10, 0.15, 5, true, true)
	assert.False(t, ok, "standing surface water must block emergence when flooding control is required")
}
