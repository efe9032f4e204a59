package monica

import "github.com/google/uuid"

// Organ indices into the OrganBiomass vector. Species may carry fewer
// than all of these; unused trailing organs stay at zero biomass.
const (
	OrganRoot = iota
	OrganLeaf
	OrganShoot
	OrganStorage // primary yield organ (grain, tuber, fruit)
	OrganStruct
	OrganSugar
	organCount
)

// DevelopmentStage is an index in [0, N-1], N species-specific. Stage 0
// is pre-emergence, the final stage is post-maturity.
type DevelopmentStage int

// developmentalPhase buckets a numeric stage for dispatch; the numeric
// stage itself remains the source of truth (see invariant 7 in spec.md).
type developmentalPhase int

const (
	phasePreEmergence developmentalPhase = iota
	phaseGrowing
	phaseMature
)

func phaseForStage(stage DevelopmentStage, finalStage DevelopmentStage) developmentalPhase {
	switch {
	case stage <= 0:
		return phasePreEmergence
	case stage >= finalStage:
		return phaseMature
	default:
		return phaseGrowing
	}
}

// CropLifeform distinguishes annuals from perennials. A perennial
// reloads its juvenile parameter set (Lifeform.Juvenile) on each
// stage-0 reset; NewCropModule sets no mature set.
type CropLifeform int

const (
	Annual CropLifeform = iota
	Perennial
)

// OrganBiomass is the per-organ total/dead biomass vector, kg DM/ha.
type OrganBiomass struct {
	Total [organCount]float64 `json:"total"`
	Dead  [organCount]float64 `json:"dead"`
}

// Green returns the green (living) biomass of organ i.
func (o *OrganBiomass) Green(i int) float64 {
	g := o.Total[i] - o.Dead[i]
	if g < 0 {
		return 0
	}
	return g
}

// AbovegroundTotal sums the organs flagged aboveground.
func (o *OrganBiomass) AbovegroundTotal(aboveground []bool) float64 {
	sum := 0.0
	for i, isAbove := range aboveground {
		if i >= organCount {
			break
		}
		if isAbove {
			sum += o.Total[i]
		}
	}
	return sum
}

// CanopyState is the crop's above-surface geometry.
type CanopyState struct {
	LAI             float64 `json:"lai"`              // ha leaf / ha ground
	Height          float64 `json:"height_m"`          // m
	Diameter        float64 `json:"diameter_m"`        // m
	SoilCoverage    float64 `json:"soil_coverage"`     // [0,1]
}

// RootSystem is the crop's root geometry and per-layer distribution.
type RootSystem struct {
	MaxRootingDepthM   float64   `json:"max_rooting_depth_m"`
	RootingDepthM      float64   `json:"rooting_depth_m"`
	RootingDepthLayer  int       `json:"rooting_depth_layer"`
	RootingZoneLayer   int       `json:"rooting_zone_layer"` // 1.3x rooting depth, in layers
	RootDensity        []float64 `json:"root_density"`       // m root / m^3 soil, per layer
	RootDiameterM      float64   `json:"root_diameter_m"`
	RootEffectivity    []float64 `json:"root_effectivity"` // [0,1], per layer
}

// WaterState is the crop-owned view of the day's water fluxes.
type WaterState struct {
	LayerTranspirationMM []float64 `json:"layer_transpiration_mm"`
	LayerTranspirationRedux []float64 `json:"layer_transpiration_redux"` // [0,1]
	InterceptionStorageMM float64  `json:"interception_storage_mm"`
	TranspirationDeficit  float64  `json:"transpiration_deficit"` // actual/potential, [0,1]
	ActualTranspirationMM float64  `json:"actual_transpiration_mm"`
	PotentialTranspirationMM float64 `json:"potential_transpiration_mm"`
}

// NitrogenState is the crop-owned nitrogen bookkeeping.
type NitrogenState struct {
	AbovegroundConcentration float64   `json:"aboveground_n_conc"` // kg N / kg DM
	RootConcentration        float64   `json:"root_n_conc"`
	TotalContentKgHa         float64   `json:"total_n_content_kg_ha"`
	CriticalConcentration    float64   `json:"critical_n_conc"`
	TargetConcentration      float64   `json:"target_n_conc"`
	LayerUptakeKgHa          []float64 `json:"layer_uptake_kg_ha"`
}

// StressAccumulators collects the crop's multiplicative stress state.
type StressAccumulators struct {
	LT50                 float64 `json:"lt50_c"`
	CropFrostRedux        float64 `json:"crop_frost_redux"` // (0,1], non-increasing
	CropHeatRedux         float64 `json:"crop_heat_redux"`  // [0,1], non-increasing over a crop's life
	TotalHeatImpact       float64 `json:"total_heat_impact"`
	DaysAfterBeginFlowering int   `json:"days_after_begin_flowering"`
	O3ShortTermDamage     float64 `json:"o3_short_term_damage"`
	O3LongTermDamage      float64 `json:"o3_long_term_damage"` // senescence acceleration factor
	O3CumulativeUptake    float64 `json:"o3_cumulative_uptake_umol_m2"`
	CropNRedux            float64 `json:"crop_n_redux"`
	RootNRedux            float64 `json:"root_n_redux"`
	DroughtFertility      float64 `json:"drought_fertility"`
	OxygenDeficitFactor   float64 `json:"oxygen_deficit_factor"`
	TimeUnderAnoxia       int     `json:"time_under_anoxia"`
}

// CropIdentity names the (species, cultivar) pair a CropModule embodies.
type CropIdentity struct {
	Species  string `json:"species"`
	Cultivar string `json:"cultivar"`
}

// RunIdentity stamps a simulation entity for log correlation only; it is
// never compared for simulation logic (see SPEC_FULL.md §3).
type RunIdentity struct {
	RunID      uuid.UUID `json:"run_id"`
	InstanceID uuid.UUID `json:"instance_id"`
}

func newRunIdentity(runID uuid.UUID) RunIdentity {
	return RunIdentity{RunID: runID, InstanceID: uuid.New()}
}
