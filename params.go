package monica

// CarboxylationPathway selects the C3/C4 photosynthesis route.
type CarboxylationPathway int

const (
	C3 CarboxylationPathway = 1
	C4 CarboxylationPathway = 2
)

// PhotosynthesisMethod selects the daily-canopy vs. hourly-FvCB strategy
// (see SPEC_FULL.md §4, CanopyPhotosynthesis).
type PhotosynthesisMethod int

const (
	PhotosynthesisDailyPenman PhotosynthesisMethod = iota
	PhotosynthesisHourlyFvCB
)

// SpeciesParameters are inherent to a crop species (§6 parameter surface).
type SpeciesParameters struct {
	BaseTemperature          []float64 `json:"base_temperature"`
	OptimumTemperature       []float64 `json:"optimum_temperature"`
	StageTemperatureSum      []float64 `json:"stage_temperature_sum"`
	NumberOfOrgans           int       `json:"number_of_organs"`
	AbovegroundOrgan         []bool    `json:"aboveground_organ"`
	StorageOrgan             []bool    `json:"storage_organ"`
	OrganGrowthRespiration   []float64 `json:"organ_growth_respiration"`
	OrganMaintenanceRespiration []float64 `json:"organ_maintenance_respiration"`
	AssimilateReallocation   float64   `json:"assimilate_reallocation"`
	CarboxylationPathway     CarboxylationPathway `json:"carboxylation_pathway"`
	InitialOrganBiomass      []float64 `json:"initial_organ_biomass"`
	CriticalOxygenContent    []float64 `json:"critical_oxygen_content"` // per stage
	MinTemperatureForAssimilation float64 `json:"min_temperature_for_assimilation"`
	PlantDensity             float64   `json:"plant_density"`
	RootFormFactor           float64   `json:"root_form_factor"`
	RootGrowthLag            float64   `json:"root_growth_lag"`
	RootPenetrationRate      float64   `json:"root_penetration_rate"`
	SpecificRootLength       float64   `json:"specific_root_length"` // SRL, m/kg
	Kc25                     float64   `json:"kc25"`
	Ko25                     float64   `json:"ko25"`
	Vcmax25                  float64   `json:"vcmax25"`
	AEKc                     float64   `json:"ae_kc"`
	AEKo                     float64   `json:"ae_ko"`
	AEVc                     float64   `json:"ae_vc"`
	EFIsoprene               float64   `json:"ef_iso"`
	EFMonoterpene            float64   `json:"ef_mono"`
	EFMonoterpeneStorage     float64   `json:"ef_monos"`
	MonoterpeneBeta          float64   `json:"monoterpene_beta"`   // JJV temperature-response exponent
	FoliarDensityGPerM2      float64   `json:"foliar_density_g_m2"` // dry foliar mass per LAI unit
	NitrogenFixationFraction float64   `json:"n_fixation_fraction"` // max species-specific fraction of deficit covered by BNF
	RootPenetrationRateByClay func(clayFraction float64) float64 `json:"-"`
}

// CultivarParameters are the tunable per-cultivar knobs.
type CultivarParameters struct {
	StageTemperatureSum      []float64   `json:"stage_temperature_sum"`
	SpecificLeafArea         []float64   `json:"specific_leaf_area"` // per stage, ha/kg
	KcPerStage               []float64   `json:"kc_per_stage"`
	MaxAssimilationRate      float64     `json:"max_assimilation_rate"`
	MaxCropHeight            float64     `json:"max_crop_height"`
	CropHeightP1             float64     `json:"crop_height_p1"`
	CropHeightP2             float64     `json:"crop_height_p2"`
	StageAtMaxHeight         DevelopmentStage `json:"stage_at_max_height"`
	MaxCropDiameter          float64     `json:"max_crop_diameter"`
	StageAtMaxDiameter       DevelopmentStage `json:"stage_at_max_diameter"`
	DroughtStressThreshold   []float64   `json:"drought_stress_threshold"` // per stage
	DayLengthRequirement     []float64   `json:"day_length_requirement"`   // per stage; >0 long-day, <0 short-day
	BaseDaylength            []float64   `json:"base_daylength"`
	VernalisationRequirement []float64   `json:"vernalisation_requirement"` // per stage, days
	OrganSenescenceRate      [][]float64 `json:"organ_senescence_rate"`     // [stage][organ]
	PartitionCoefficients    [][]float64 `json:"partition_coefficients"`    // [stage][organ]
	LT50Cultivar             float64     `json:"lt50_cultivar"`
	FrostHardening           float64     `json:"frost_hardening"`
	FrostDehardening         float64     `json:"frost_dehardening"`
	BeginSensitivePhaseHeatStress float64 `json:"begin_sensitive_phase_heat_stress"` // degree-days after anthesis
	EndSensitivePhaseHeatStress   float64 `json:"end_sensitive_phase_heat_stress"`
	CriticalTemperatureHeatStress float64 `json:"critical_temperature_heat_stress"`
	LimitingTemperatureHeatStress float64 `json:"limiting_temperature_heat_stress"`
	OrganIDsPrimaryYield     []int       `json:"organ_ids_primary_yield"`
	OrganIDsSecondaryYield   []int       `json:"organ_ids_secondary_yield"`
	OrganIDsCutting          []int       `json:"organ_ids_cutting"`
	DroughtFertilityFactor   float64     `json:"drought_fertility_factor"`
	MinRootNConcentration    float64     `json:"min_root_n_concentration"`
	LuxuryNCoefficient       float64     `json:"luxury_n_coefficient"`
	NcDilutionNpn            float64     `json:"nc_dilution_npn"` // Npn in Nc = Npn*(1+Nb0*exp(...))/100
	NcDilutionNb0            float64     `json:"nc_dilution_nb0"`

	// post-cut phenology reset
	StageAfterCut    DevelopmentStage `json:"stage_after_cut"`
	CuttingDelayDays int              `json:"cutting_delay_days"`
}

// ResidueParameters describe how a crop's biomass is routed at harvest.
type ResidueParameters struct {
	ExportFraction   []float64 `json:"export_fraction"`    // per organ, fraction leaving the field
	ResidueNRatio    float64   `json:"residue_n_ratio"`    // N conc in residues relative to primary yield
	OptimizeHumusBalance bool  `json:"optimize_humus_balance"`
}

// SimulationParameters are the per-run knobs not tied to a species.
type SimulationParameters struct {
	PhotosynthesisMethod PhotosynthesisMethod `json:"photosynthesis_method"`
	FrostKillEnabled     bool                 `json:"frost_kill_enabled"`
	OzoneEnabled         bool                 `json:"ozone_enabled"`
	VOCEnabled           bool                 `json:"voc_enabled"`
	LeafTemperatureResponseEnabled bool       `json:"leaf_temperature_response_enabled"`
	JulianDayAutomaticFertilising  int        `json:"julian_day_automatic_fertilising"`
}

// Lifeform bundles the cultivar set(s) a CropModule uses, handling the
// perennial juvenile/mature swap described in SPEC_FULL.md §9.
type Lifeform struct {
	Kind     CropLifeform
	Active   *CultivarParameters
	Juvenile *CultivarParameters // only set when Kind == Perennial
	Mature   *CultivarParameters // only set when Kind == Perennial
}

// resetToJuvenile swaps the active cultivar parameter set back to the
// juvenile/initial one, used on a perennial's stage-0 reset.
func (l *Lifeform) resetToJuvenile() {
	if l.Kind == Perennial && l.Juvenile != nil {
		l.Active = l.Juvenile
	}
}

// promoteToMature swaps in the mature parameter set when one is set.
// Nothing in the package calls it, and NewCropModule leaves Mature nil.
func (l *Lifeform) promoteToMature() {
	if l.Kind == Perennial && l.Mature != nil {
		l.Active = l.Mature
	}
}
