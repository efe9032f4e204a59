package monica

import "time"

// WeatherRecord is the daily driving record the core consumes (§6).
// Optional fields are nil pointers meaning "derive it", mirroring the
// teacher's use of *time.Time for optional fields
// (models/irrigation.go: InstallDate *time.Time).
type WeatherRecord struct {
	Date                time.Time `json:"date"`
	TminC               float64   `json:"tmin_c"`
	TmaxC               float64   `json:"tmax_c"`
	TavgC               float64   `json:"tavg_c"`
	GlobalRadiationMJ   *float64  `json:"global_radiation_mj,omitempty"` // MJ/m^2/day
	SunshineHours       *float64  `json:"sunshine_hours,omitempty"`
	RelHumidity         float64   `json:"rel_humidity"` // [0,1]
	WindSpeedMS         float64   `json:"wind_speed_ms"`
	WindMeasurementHeightM float64 `json:"wind_measurement_height_m"`
	PrecipitationMM     float64   `json:"precipitation_mm"`
	ET0MM               *float64  `json:"et0_mm,omitempty"`
	CO2ppm              *float64  `json:"co2_ppm,omitempty"`
	O3nmolMol           *float64  `json:"o3_nmol_mol,omitempty"`
}

// SoilLayer indexes a discretised soil layer.
type SoilLayer int

// SoilColumn is the external, layered soil-state collaborator (§6).
// The orchestrator owns the concrete value and hands it to
// CropModule.Step; no soil implementation may hold a crop back-reference
// (SPEC_FULL.md §9 ownership inversion).
type SoilColumn interface {
	NumberOfLayers() int
	LayerThicknessM(layer SoilLayer) float64

	SoilMoisture(layer SoilLayer) float64 // m^3/m^3
	SetSoilMoisture(layer SoilLayer, value float64)

	FieldCapacity(layer SoilLayer) float64
	PermanentWiltingPoint(layer SoilLayer) float64
	Saturation(layer SoilLayer) float64

	SoilTemperatureC(layer SoilLayer) float64
	SoilNO3KgM3(layer SoilLayer) float64
	SetSoilNO3KgM3(layer SoilLayer, value float64)

	SandFraction(layer SoilLayer) float64
	ClayFraction(layer SoilLayer) float64
	BulkDensityKgM3(layer SoilLayer) float64
	OrganicCarbonFraction(layer SoilLayer) float64

	SurfaceWaterStorageMM() float64
	SnowDepthMM() float64
	GroundwaterTableLayer() SoilLayer
	SoilSurfaceTemperatureC() float64

	// ImpenetrableLayerDepthM returns the depth of an impenetrable
	// layer, or a value >= MaxRootingDepth if there is none.
	ImpenetrableLayerDepthM() float64
}

// SnowCover is the external daily snow water-balance collaborator.
type SnowCover interface {
	DepthMM() float64
	TemperatureUnderSnowC() (float64, bool) // ok=false if no snow
}

// FrostLayer tracks frost/thaw depth per soil layer.
type FrostLayer interface {
	FrostDepthM() float64
	LambdaReduction(layer SoilLayer) float64
}

// SoilOrganic is the external AOM/mineralisation collaborator. The core
// calls IngestResidues for dead roots, harvest residues, and fully
// incorporated crops (§6 "Crop residue submission").
type SoilOrganic interface {
	IngestResidues(layerToAmountKgHa map[SoilLayer]float64, nConcentrationKgKg float64)
}

// SoilTransport is the external NO3 advection/leaching collaborator.
type SoilTransport interface {
	LeachedNO3KgHa() float64
}

// EventSink receives string event tags with no suspension allowed
// (§5 concurrency model); the default implementation just appends.
type EventSink func(tag string)

// InterCropSync is the out-of-scope multi-process coupling hook
// (SPEC_FULL.md §9); NoopInterCropSync is the default, a no-op.
type InterCropSync interface {
	Sync(date time.Time)
}

// NoopInterCropSync implements InterCropSync as a no-op.
type NoopInterCropSync struct{}

// Sync does nothing.
func (NoopInterCropSync) Sync(time.Time) {}
