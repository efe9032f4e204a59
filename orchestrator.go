package monica

import (
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
)

// MonicaModel is the top-level daily orchestrator (§5 concurrency
// model): it owns the soil column and, when a crop is present, the
// CropModule, wiring them through the fixed daily ordering. No
// goroutines or locks are used — the model is strictly single-threaded,
// one Step() per simulated day.
type MonicaModel struct {
	Soil          SoilColumn
	SoilOrganic   SoilOrganic
	SoilTransport SoilTransport
	Snow          SnowCover
	InterCrop     InterCropSync

	Crop *CropModule

	RunID uuid.UUID

	currentDate time.Time

	_currentDaysEvents  []string
	_previousDaysEvents []string
	pendingClear        bool
}

// NewMonicaModel wires a soil column (and its organic/transport
// collaborators) into a fresh orchestrator with no crop present.
func NewMonicaModel(soil SoilColumn, organic SoilOrganic, transport SoilTransport, snow SnowCover, interCrop InterCropSync) *MonicaModel {
	if interCrop == nil {
		interCrop = NoopInterCropSync{}
	}
	return &MonicaModel{
		Soil:          soil,
		SoilOrganic:   organic,
		SoilTransport: transport,
		Snow:          snow,
		InterCrop:     interCrop,
		RunID:         uuid.New(),
	}
}

// fireEvent records an event tag for today, surfaced via
// PreviousDaysEvents() the following Step (§5: events never interrupt
// the current day's integration).
func (m *MonicaModel) fireEvent(tag string) {
	m._currentDaysEvents = append(m._currentDaysEvents, tag)
}

// PreviousDaysEvents returns the event tags fired on the day before the
// most recent Step call, matching the teacher's one-day-lagged event
// visibility convention for cross-module coordination.
func (m *MonicaModel) PreviousDaysEvents() []string {
	return m._previousDaysEvents
}

// dailyReset rolls the event buffers and, per SPEC_FULL.md §9 ("current
// crop" ownership) and spec.md invariant 9, clears a harvested/
// incorporated crop that was marked for removal earlier in the previous
// day rather than removing it synchronously at the call site.
func (m *MonicaModel) dailyReset() {
	m._previousDaysEvents = m._currentDaysEvents
	m._currentDaysEvents = nil
	if m.pendingClear {
		m.Crop = nil
		m.pendingClear = false
	}
}

// Step advances the whole coupled system by one simulated day: crop
// step first (if a crop is planted), then the general soil/atmosphere
// chain, in the ordering SPEC_FULL.md §5 fixes.
func (m *MonicaModel) Step(weather WeatherRecord) {
	m.currentDate = weather.Date
	m.dailyReset()

	m.cropStep(weather)
	m.generalStep(weather)

	m.InterCrop.Sync(m.currentDate)
}

func (m *MonicaModel) cropStep(weather WeatherRecord) {
	if m.Crop == nil {
		return
	}
	m.Crop.SoilOrganic = m.SoilOrganic
	m.Crop.events = m.fireEvent
	m.Crop.Step(m.Soil, weather, m.currentDate)

	if err := m.Crop.Error(); err != nil {
		slog.Warn("crop sticky error", "run_id", m.RunID, "date", m.currentDate, "error", err)
	}
}

// generalStep runs the non-crop daily chain in a fixed order:
// groundwater table (logged only) -> atmospheric CO2 -> automatic
// fertilising -> read-out of the transport collaborator's leached NO3.
// It does not run soil-organic AOM decay, soil temperature, soil
// moisture or soil-organic daily steps.
func (m *MonicaModel) generalStep(weather WeatherRecord) {
	m.updateGroundwater()

	co2 := atmosphericCO2ppm(weather, m.currentDate)
	_ = co2 // not passed on: the crop step has already run and uses weather.CO2ppm, or 380 ppm when that is unset

	m.applyAutomaticFertilising(weather)

	if m.SoilTransport != nil {
		leached := m.SoilTransport.LeachedNO3KgHa()
		if leached > 0 {
			slog.Debug("nitrate leached below profile", "kg_ha", leached, "date", m.currentDate)
		}
	}
}

// updateGroundwater is a placeholder hook for a groundwater-table
// collaborator; MONICA's groundwater submodel sits outside this core's
// scope (SPEC_FULL.md §1), so this only logs the fixed layer the
// soil column already reports.
func (m *MonicaModel) updateGroundwater() {
	layer := m.Soil.GroundwaterTableLayer()
	slog.Debug("groundwater table", "layer", layer, "date", m.currentDate)
}

// applyAutomaticFertilising triggers a single fixed-date nitrogen
// application when SimulationParameters.JulianDayAutomaticFertilising
// matches today, crediting the whole dose to the topsoil layer.
func (m *MonicaModel) applyAutomaticFertilising(weather WeatherRecord) {
	if m.Crop == nil || m.Crop.Sim == nil {
		return
	}
	jd := weather.Date.YearDay()
	if m.Crop.Sim.JulianDayAutomaticFertilising <= 0 || jd != m.Crop.Sim.JulianDayAutomaticFertilising {
		return
	}
	const doseKgHaN = 40.0
	current := m.Soil.SoilNO3KgM3(0)
	m.Soil.SetSoilNO3KgM3(0, current+doseKgHaN/1000)
	m.fireEvent("fertilising")
}

// atmosphericCO2ppm is the analytic fallback CO2 trajectory used when
// no measured ppm accompanies the weather record, following the
// standard decimal-date sinusoid-plus-exponential trend approximation.
func atmosphericCO2ppm(weather WeatherRecord, date time.Time) float64 {
	if weather.CO2ppm != nil {
		return *weather.CO2ppm
	}
	decimalDate := float64(date.Year()) + float64(date.YearDay())/365.25
	return 222 + math.Exp(0.01467*(decimalDate-1650)) + 2.5*math.Sin((decimalDate-0.5)/0.1592)
}

// PlantCrop replaces the orchestrator's current crop (if any) with a
// freshly constructed one, sharing this model's run identity for log
// correlation.
func (m *MonicaModel) PlantCrop(identity CropIdentity, species *SpeciesParameters, cultivar *CultivarParameters, residue *ResidueParameters, sim *SimulationParameters, site SiteParameters, o3 O3Params, finalStage, anthesisStage, earlyStageMax DevelopmentStage, lifeform CropLifeform) {
	m.Crop = NewCropModule(m.RunID, identity, species, cultivar, residue, sim, site, o3, finalStage, anthesisStage, earlyStageMax, lifeform, m.fireEvent)
	m.pendingClear = false // a freshly planted crop supersedes any removal pending from a same-day harvest/incorporation
}

// HarvestCrop harvests the current crop (if any), returning the yield
// totals. The crop is marked for removal rather than nilled immediately;
// CropModule is actually removed by the next day's dailyReset (spec.md
// invariant 9).
func (m *MonicaModel) HarvestCrop() (primaryYieldKgHa, secondaryYieldKgHa float64) {
	if m.Crop == nil {
		return 0, 0
	}
	primaryYieldKgHa, secondaryYieldKgHa = m.Crop.harvestCurrentCrop(m.SoilOrganic)
	m.pendingClear = true
	return primaryYieldKgHa, secondaryYieldKgHa
}

// IncorporateCrop plows the current crop (if any) into the soil as green
// manure. As with HarvestCrop, removal is deferred to the next day's
// dailyReset rather than applied synchronously.
func (m *MonicaModel) IncorporateCrop() {
	if m.Crop == nil {
		return
	}
	m.Crop.incorporateCurrentCrop(m.SoilOrganic)
	m.pendingClear = true
}

// CutCrop applies a forage cutting event to the current crop, if any.
func (m *MonicaModel) CutCrop() (cutKgHa float64) {
	if m.Crop == nil {
		return 0
	}
	return m.Crop.applyCutting(m.SoilOrganic)
}
