package monica

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCO2AssimilationResponse_NonDecreasingWithCO2(t *testing.T) {
	low := co2AssimilationResponse(300, C3)
	high := co2AssimilationResponse(700, C3)
	assert.LessOrEqual(t, low, high, "§8 invariant 11: gross assimilation response must not decrease as CO2 rises")

	lowC4 := co2AssimilationResponse(300, C4)
	highC4 := co2AssimilationResponse(700, C4)
	assert.LessOrEqual(t, lowC4, highC4)
}

func TestCanopyGrossAssimilation_PositiveUnderDaylight(t *testing.T) {
	w := newTestWeather(dateFixture(), 14, 27)
	geom := computeRadiationGeometry(w, 0.9, 80)
	params := dailyCanopyAssimilationParams{MaxAssimilationRate: 45, KcFactor: 1.0, CO2ppm: 400, Pathway: C3}
	assimilation := canopyGrossAssimilation(geom, 3.0, params)
	assert.Greater(t, assimilation, 0.0)
}

func TestRespirationSplit_NetNeverNegative(t *testing.T) {
	net, maintenance, growth := respirationSplit(0, 35, 20, 14, 0.05, 0.3)
	assert.Equal(t, 0.0, net, "when respiration exceeds a near-zero gross assimilate, net must floor at zero")
	assert.Greater(t, maintenance, 0.0)
	assert.Equal(t, 0.0, growth)
}

func TestRespirationSplit_PositiveNetUnderGoodConditions(t *testing.T) {
	net, _, _ := respirationSplit(200, 20, 20, 14, 0.015, 0.25)
	assert.Greater(t, net, 0.0)
}
