package monica

import (
	"time"

	"github.com/google/uuid"
)

// newTestSpecies returns a minimal, internally consistent C3 annual
// species parameter set sized for a 4-stage crop (pre-emergence,
// vegetative, reproductive, maturity), used as the shared baseline
// across the test suite.
func newTestSpecies() *SpeciesParameters {
	return &SpeciesParameters{
		BaseTemperature:       []float64{0, 5, 5, 5},
		OptimumTemperature:    []float64{25, 25, 25, 25},
		StageTemperatureSum:   []float64{120, 400, 500, 300},
		NumberOfOrgans:        organCount,
		AbovegroundOrgan:      []bool{false, true, true, true, true, true},
		StorageOrgan:          []bool{false, false, false, true, false, false},
		OrganGrowthRespiration:      []float64{0.3, 0.3, 0.3, 0.3, 0.3, 0.3},
		OrganMaintenanceRespiration: []float64{0.02, 0.02, 0.02, 0.02, 0.02, 0.02},
		AssimilateReallocation: 0.3,
		CarboxylationPathway:   C3,
		InitialOrganBiomass:    []float64{5, 2, 1, 0, 0, 0},
		CriticalOxygenContent:  []float64{0.1, 0.1, 0.1, 0.1},
		PlantDensity:           60,
		RootFormFactor:         2.0,
		RootGrowthLag:          3,
		RootPenetrationRate:    0.02,
		SpecificRootLength:     80,
		Kc25:                   260,
		Ko25:                   179000,
		Vcmax25:                90,
		AEKc:                   79430,
		AEKo:                   36380,
		AEVc:                   65330,
		EFIsoprene:             5,
		EFMonoterpene:          1,
		EFMonoterpeneStorage:   0.2,
		MonoterpeneBeta:        0.09,
		FoliarDensityGPerM2:    40,
		NitrogenFixationFraction: 0,
	}
}

// newTestCultivar returns the per-cultivar knobs paired with
// newTestSpecies's 4-stage layout.
func newTestCultivar() *CultivarParameters {
	return &CultivarParameters{
		StageTemperatureSum: []float64{120, 400, 500, 300},
		SpecificLeafArea:    []float64{0.022, 0.020, 0.018, 0.016},
		KcPerStage:          []float64{0.3, 0.7, 1.1, 0.6},
		MaxAssimilationRate: 45,
		MaxCropHeight:       1.2,
		CropHeightP1:         6,
		CropHeightP2:         0.5,
		StageAtMaxHeight:    2,
		MaxCropDiameter:     0.3,
		StageAtMaxDiameter:  2,
		DroughtStressThreshold: []float64{0.3, 0.5, 0.6, 0.5},
		DayLengthRequirement:   []float64{0, 14, 0, 0},
		BaseDaylength:          []float64{0, 8, 0, 0},
		VernalisationRequirement: []float64{0, 0, 0, 0},
		OrganSenescenceRate: [][]float64{
			{0, 0, 0, 0, 0, 0},
			{0.002, 0.002, 0.001, 0, 0, 0},
			{0.004, 0.004, 0.002, 0, 0, 0},
			{0.01, 0.01, 0.005, 0, 0, 0},
		},
		PartitionCoefficients: [][]float64{
			{0.7, 0.3, 0, 0, 0, 0},
			{0.2, 0.5, 0.3, 0, 0, 0},
			{0.1, 0.2, 0.2, 0.5, 0, 0},
			{0.05, 0.05, 0.1, 0.8, 0, 0},
		},
		LT50Cultivar:     -18,
		FrostHardening:   0.1,
		FrostDehardening: 0.05,
		BeginSensitivePhaseHeatStress: 50,
		EndSensitivePhaseHeatStress:   250,
		CriticalTemperatureHeatStress: 32,
		LimitingTemperatureHeatStress: 40,
		OrganIDsPrimaryYield:   []int{OrganStorage},
		OrganIDsSecondaryYield: []int{OrganShoot},
		OrganIDsCutting:        []int{OrganLeaf, OrganShoot},
		DroughtFertilityFactor: 0.8,
		MinRootNConcentration:  0.01,
		LuxuryNCoefficient:     1.2,
		NcDilutionNpn:          5.5,
		NcDilutionNb0:          0.3,
		StageAfterCut:    1,
		CuttingDelayDays: 5,
	}
}

func newTestResidue() *ResidueParameters {
	return &ResidueParameters{
		ExportFraction: []float64{0, 0.1, 1, 1, 0.5, 0},
		ResidueNRatio:  0.6,
	}
}

func newTestSimParams() *SimulationParameters {
	return &SimulationParameters{
		PhotosynthesisMethod: PhotosynthesisDailyPenman,
		FrostKillEnabled:      true,
		OzoneEnabled:          false,
		VOCEnabled:            false,
		JulianDayAutomaticFertilising: 0,
	}
}

func newTestSite() SiteParameters {
	return SiteParameters{
		LatitudeRad:  0.9, // ~51.5N
		AltitudeM:    80,
		AlbedoCrop:   0.23,
		ClayFraction: 0.25,
	}
}

// dateFixture is a fixed mid-summer calendar date shared by tests that
// don't care about the specific day, only that it's a plausible
// growing-season date.
func dateFixture() time.Time {
	return time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC)
}

// newTestWeather builds a plausible weather record for the given date,
// leaving global radiation and sunshine hours nil so the Hargreaves
// temperature-range radiation fallback is exercised.
func newTestWeather(date time.Time, tmin, tmax float64) WeatherRecord {
	return WeatherRecord{
		Date:                   date,
		TminC:                  tmin,
		TmaxC:                  tmax,
		TavgC:                  (tmin + tmax) / 2,
		RelHumidity:            0.65,
		WindSpeedMS:            2.5,
		WindMeasurementHeightM: 2,
		PrecipitationMM:        0,
	}
}

// newTestCropModule wires the fixtures above into a ready-to-step
// CropModule for unit and scenario tests.
func newTestCropModule() *CropModule {
	species := newTestSpecies()
	cultivar := newTestCultivar()
	residue := newTestResidue()
	sim := newTestSimParams()
	site := newTestSite()
	o3 := O3Params{Gamma1: 0.06, Gamma2: 0.0045, Gamma3: 0.002}

	return NewCropModule(uuid.New(), CropIdentity{Species: "testwheat", Cultivar: "baseline"}, species, cultivar, residue, sim, site, o3, 3, 2, 0, Annual, nil)
}
