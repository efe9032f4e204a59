package monica

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsopreneEmissionGuenther_ZeroInDarkness(t *testing.T) {
	p := vocParamsFromSpecies(newTestSpecies())
	e := isopreneEmissionGuenther(p, 25, 0, 3.0)
	assert.Equal(t, 0.0, e, "zero PAR must produce zero light-dependent isoprene emission")
}

func TestIsopreneEmissionGuenther_RisesWithLight(t *testing.T) {
	p := vocParamsFromSpecies(newTestSpecies())
	low := isopreneEmissionGuenther(p, 25, 200, 3.0)
	high := isopreneEmissionGuenther(p, 25, 1200, 3.0)
	assert.Greater(t, high, low)
}

func TestMonoterpeneEmissionJJV_RisesWithTemperature(t *testing.T) {
	p := vocParamsFromSpecies(newTestSpecies())
	cool := monoterpeneEmissionJJV(p, 20, 3.0)
	warm := monoterpeneEmissionJJV(p, 35, 3.0)
	assert.Greater(t, warm, cool, "the JJV pool-emitter response rises with leaf temperature even without added light")
}

func TestDailyVOCEmissions_NonNegative(t *testing.T) {
	p := vocParamsFromSpecies(newTestSpecies())
	w := newTestWeather(dateFixture(), 14, 27)
	geom := computeRadiationGeometry(w, 0.9, 80)
	emissions := dailyVOCEmissions(p, geom, w.TavgC, 3.0)
	assert.GreaterOrEqual(t, emissions.IsopreneKgHa, 0.0)
	assert.GreaterOrEqual(t, emissions.MonoterpeneKgHa, 0.0)
}
