package monica

// memSoilColumn is an in-memory, fixed-layer-thickness SoilColumn used
// across the test suite, grounded on the per-cell soil-property fields
// (SoilNutrients, WaterLevel, SoilCompaction, OrganicMatter) that
// GoCodeAlone-EvoSim's world.go GridCell tracks per grid cell, adapted
// here to a one-dimensional layered profile.
type memSoilColumn struct {
	thicknessM     []float64
	moisture       []float64
	fieldCapacity  []float64
	wiltingPoint   []float64
	saturation     []float64
	temperatureC   []float64
	no3KgM3        []float64
	sand           []float64
	clay           []float64
	bulkDensity    []float64
	organicCarbon  []float64
	surfaceWaterMM float64
	snowDepthMM    float64
	groundwater    SoilLayer
	surfaceTempC   float64
	impenetrableM  float64
}

// newMemSoilColumn builds a uniform n-layer column with the given
// per-layer thickness and sane defaults; tests override individual
// layers by assigning the struct's unexported fields directly.
func newMemSoilColumn(layers int, thicknessM float64) *memSoilColumn {
	s := &memSoilColumn{
		thicknessM:    make([]float64, layers),
		moisture:      make([]float64, layers),
		fieldCapacity: make([]float64, layers),
		wiltingPoint:  make([]float64, layers),
		saturation:    make([]float64, layers),
		temperatureC:  make([]float64, layers),
		no3KgM3:       make([]float64, layers),
		sand:          make([]float64, layers),
		clay:          make([]float64, layers),
		bulkDensity:   make([]float64, layers),
		organicCarbon: make([]float64, layers),
		groundwater:   SoilLayer(layers - 1),
		impenetrableM: 999,
	}
	for i := 0; i < layers; i++ {
		s.thicknessM[i] = thicknessM
		s.fieldCapacity[i] = 0.30
		s.wiltingPoint[i] = 0.10
		s.saturation[i] = 0.45
		s.moisture[i] = 0.20
		s.temperatureC[i] = 15
		s.sand[i] = 0.4
		s.clay[i] = 0.25
		s.bulkDensity[i] = 1300
		s.organicCarbon[i] = 0.02
	}
	return s
}

func (s *memSoilColumn) NumberOfLayers() int                       { return len(s.thicknessM) }
func (s *memSoilColumn) LayerThicknessM(l SoilLayer) float64       { return s.thicknessM[l] }
func (s *memSoilColumn) SoilMoisture(l SoilLayer) float64          { return s.moisture[l] }
func (s *memSoilColumn) SetSoilMoisture(l SoilLayer, v float64)    { s.moisture[l] = v }
func (s *memSoilColumn) FieldCapacity(l SoilLayer) float64         { return s.fieldCapacity[l] }
func (s *memSoilColumn) PermanentWiltingPoint(l SoilLayer) float64 { return s.wiltingPoint[l] }
func (s *memSoilColumn) Saturation(l SoilLayer) float64            { return s.saturation[l] }
func (s *memSoilColumn) SoilTemperatureC(l SoilLayer) float64      { return s.temperatureC[l] }
func (s *memSoilColumn) SoilNO3KgM3(l SoilLayer) float64           { return s.no3KgM3[l] }
func (s *memSoilColumn) SetSoilNO3KgM3(l SoilLayer, v float64)     { s.no3KgM3[l] = v }
func (s *memSoilColumn) SandFraction(l SoilLayer) float64          { return s.sand[l] }
func (s *memSoilColumn) ClayFraction(l SoilLayer) float64          { return s.clay[l] }
func (s *memSoilColumn) BulkDensityKgM3(l SoilLayer) float64       { return s.bulkDensity[l] }
func (s *memSoilColumn) OrganicCarbonFraction(l SoilLayer) float64 { return s.organicCarbon[l] }
func (s *memSoilColumn) SurfaceWaterStorageMM() float64            { return s.surfaceWaterMM }
func (s *memSoilColumn) SnowDepthMM() float64                      { return s.snowDepthMM }
func (s *memSoilColumn) GroundwaterTableLayer() SoilLayer          { return s.groundwater }
func (s *memSoilColumn) SoilSurfaceTemperatureC() float64          { return s.surfaceTempC }
func (s *memSoilColumn) ImpenetrableLayerDepthM() float64          { return s.impenetrableM }

// memSoilOrganic is a trivial SoilOrganic recorder: it accumulates
// every residue ingestion call so tests can assert on totals routed
// back to the soil.
type memSoilOrganic struct {
	ingested []residueIngestion
}

type residueIngestion struct {
	layerToAmount map[SoilLayer]float64
	nConcKgKg     float64
}

func (m *memSoilOrganic) IngestResidues(layerToAmount map[SoilLayer]float64, nConcentrationKgKg float64) {
	m.ingested = append(m.ingested, residueIngestion{layerToAmount: layerToAmount, nConcKgKg: nConcentrationKgKg})
}

func (m *memSoilOrganic) totalIngestedKgHa() float64 {
	total := 0.0
	for _, e := range m.ingested {
		for _, v := range e.layerToAmount {
			total += v
		}
	}
	return total
}

// memSoilTransport is a fixed-value SoilTransport stub.
type memSoilTransport struct {
	leachedKgHa float64
}

func (m *memSoilTransport) LeachedNO3KgHa() float64 { return m.leachedKgHa }
