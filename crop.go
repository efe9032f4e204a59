package monica

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// SiteParameters are the fixed, non-daily site properties the crop
// module needs but that belong to the point location rather than to
// the species/cultivar (latitude drives radiation geometry, albedo and
// clay content feed the water and root routines).
type SiteParameters struct {
	LatitudeRad  float64
	AltitudeM    float64
	AlbedoCrop   float64
	ClayFraction float64 // topsoil clay fraction, used by root penetration rate
}

// CropModule is the sole writer of crop-derived state during its daily
// step (SPEC_FULL.md §9 ownership inversion); the orchestrator owns the
// soil collaborator and hands it in by reference each day.
type CropModule struct {
	RunIdentity
	CropIdentity

	Species  *SpeciesParameters
	Residue  *ResidueParameters
	Sim      *SimulationParameters
	Site     SiteParameters
	Lifeform Lifeform
	O3       O3Params

	FinalStage    DevelopmentStage
	AnthesisStage DevelopmentStage
	EarlyStageMax DevelopmentStage // stages at/below this use soil-surface temp for crown temperature

	Phenology PhenologyState
	Organ     OrganBiomass
	Canopy    CanopyState
	Roots     RootSystem
	Water     WaterState
	Nitrogen  NitrogenState
	Stress    StressAccumulators

	TotalGPPKgHa float64
	TotalNPPKgHa float64

	// SoilOrganic receives dead-root residue ingested during Step itself
	// (harvest/cutting/incorporation pass their own collaborator
	// explicitly since those are orchestrator-invoked, not daily).
	SoilOrganic SoilOrganic

	events      EventSink
	stickyError *StickyError
}

// NewCropModule constructs a CropModule at stage zero, with the
// cultivar's juvenile parameter set active for perennials.
func NewCropModule(runID uuid.UUID, identity CropIdentity, species *SpeciesParameters, cultivar *CultivarParameters, residue *ResidueParameters, sim *SimulationParameters, site SiteParameters, o3 O3Params, finalStage, anthesisStage, earlyStageMax DevelopmentStage, lifeform CropLifeform, events EventSink) *CropModule {
	lf := Lifeform{Kind: lifeform, Active: cultivar}
	if lifeform == Perennial {
		lf.Juvenile = cultivar
	}

	n := species.NumberOfOrgans
	if n <= 0 || n > organCount {
		n = organCount
	}
	organ := OrganBiomass{}
	for i := 0; i < n && i < len(species.InitialOrganBiomass); i++ {
		organ.Total[i] = species.InitialOrganBiomass[i]
	}

	if events == nil {
		events = func(string) {}
	}

	return &CropModule{
		RunIdentity:   newRunIdentity(runID),
		CropIdentity:  identity,
		Species:       species,
		Residue:       residue,
		Sim:           sim,
		Site:          site,
		Lifeform:      lf,
		O3:            o3,
		FinalStage:    finalStage,
		AnthesisStage: anthesisStage,
		EarlyStageMax: earlyStageMax,
		Organ:         organ,
		Canopy:        CanopyState{LAI: minLAI},
		Roots:         RootSystem{MaxRootingDepthM: 1.5, RootDiameterM: 0.001},
		Stress:        StressAccumulators{LT50: cultivar.LT50Cultivar, CropFrostRedux: 1, CropHeatRedux: 1, OxygenDeficitFactor: 1},
		events:        events,
	}
}

func (c *CropModule) cultivar() *CultivarParameters { return c.Lifeform.Active }

// Step runs one simulated day for this crop against the given soil and
// weather, in the fixed ordering SPEC_FULL.md §4.1 specifies. It never
// returns an error; anomalies set the sticky error flag (§7) and the
// crop continues at its last valid stage.
func (c *CropModule) Step(soil SoilColumn, weather WeatherRecord, date time.Time) {
	cv := c.cultivar()
	if cv == nil {
		c.setStickyError("MissingCultivar", "no active cultivar parameter set", c.Phenology.Stage)
		return
	}

	// Step 1: radiation geometry.
	geom := computeRadiationGeometry(weather, c.Site.LatitudeRad, c.Site.AltitudeM)

	// Step 2: oxygen deficiency, from the topsoil layer under the crop.
	idx := int(c.Phenology.Stage)
	criticalContent := 0.1
	if idx >= 0 && idx < len(c.Species.CriticalOxygenContent) {
		criticalContent = c.Species.CriticalOxygenContent[idx]
	}
	airFilled := clampUnit(1 - safeDiv(soil.SoilMoisture(0), clampMin(soil.Saturation(0), 1e-6), 1, "airFilledPoreVolume"))
	oxygenFactor, newAnoxiaTime := oxygenDeficiencyFactor(airFilled, criticalContent, c.Stress.TimeUnderAnoxia, 0.2)
	c.Stress.OxygenDeficitFactor = oxygenFactor
	c.Stress.TimeUnderAnoxia = newAnoxiaTime

	if phaseForStage(c.Phenology.Stage, c.FinalStage) == phasePreEmergence {
		c.stepPreEmergence(soil, weather, geom)
		return
	}

	stageIdx := int(c.Phenology.Stage)
	base, optimum := 0.0, 30.0
	if stageIdx >= 0 && stageIdx < len(c.Species.BaseTemperature) {
		base = c.Species.BaseTemperature[stageIdx]
	}
	if stageIdx >= 0 && stageIdx < len(c.Species.OptimumTemperature) {
		optimum = c.Species.OptimumTemperature[stageIdx]
	}

	dayLenReq, dayLenBase := 0.0, 0.0
	if stageIdx >= 0 && stageIdx < len(cv.DayLengthRequirement) {
		dayLenReq = cv.DayLengthRequirement[stageIdx]
	}
	if stageIdx >= 0 && stageIdx < len(cv.BaseDaylength) {
		dayLenBase = cv.BaseDaylength[stageIdx]
	}
	dlFactor := dayLengthFactor(dayLenReq, dayLenBase, geom.PhotoperiodicDayLengthH, geom.EffectiveDayLengthH)

	vernReqDays := 0.0
	if stageIdx >= 0 && stageIdx < len(cv.VernalisationRequirement) {
		vernReqDays = cv.VernalisationRequirement[stageIdx]
	}
	c.Phenology.VernalisationDays += effectiveVernalisationPerDegree(weather.TavgC)
	vernFactor := vernalisationFactor(c.Phenology.VernalisationDays, vernReqDays)

	storageCoeffRaw := 0.0
	if stageIdx >= 0 && stageIdx < len(cv.PartitionCoefficients) && OrganStorage < len(cv.PartitionCoefficients[stageIdx]) {
		storageCoeffRaw = cv.PartitionCoefficients[stageIdx][OrganStorage]
	}
	accel := stressAccelerationFactor(c.Nitrogen.CropNRedux, c.Water.TranspirationDeficit, storageCoeffRaw)

	increment := dailyTemperatureSumIncrement(weather.TavgC, base, optimum, vernFactor, dlFactor, accel)

	oldStage := c.Phenology.Stage
	tags := advanceStage(&c.Phenology, increment, cv.StageTemperatureSum, c.FinalStage, &c.Lifeform)
	for _, tag := range tags {
		c.events(tag)
	}
	if int(c.Phenology.Stage) >= len(cv.StageTemperatureSum) && c.Phenology.Stage != c.FinalStage {
		c.setStickyError("IrregularDevelopmentalStage", "stage index ran past the cultivar's stage table", c.Phenology.Stage)
	}
	newStage := c.Phenology.Stage
	if isAnthesisDay(oldStage, newStage, c.AnthesisStage) {
		c.Stress.DaysAfterBeginFlowering = 0
	} else if newStage >= c.AnthesisStage {
		c.Stress.DaysAfterBeginFlowering++
	}

	// Step 7-9: canopy geometry.
	stageSumTarget := 1.0
	if stageIdx >= 0 && stageIdx < len(cv.StageTemperatureSum) {
		stageSumTarget = clampMin(cv.StageTemperatureSum[stageIdx], 1e-6)
	}
	relDev := relativeDevelopment(c.Phenology.CurrentTempSum, stageSumTarget)
	c.Canopy.Height = cropHeightM(cv.MaxCropHeight, cv.CropHeightP1, cv.CropHeightP2, relDev)
	c.Canopy.Diameter = cropDiameterM(cv.MaxCropDiameter, relDev)

	// Step 16: root depth geometry, ahead of water/N uptake.
	updateRootingGeometry(&c.Roots, soil, c.Species, weather.TavgC, c.Site.ClayFraction)
	layers := soil.NumberOfLayers()
	c.Roots.RootEffectivity = rootEffectivityByOxygen(soil, layers)
	c.Roots.RootDensity = rootDensityDistribution(soil, c.Roots.RootingDepthLayer, c.Roots.RootingZoneLayer, c.Organ.Total[OrganRoot], c.Species.SpecificRootLength, c.Species.RootFormFactor)

	// Step 18-19: reference ET0, potential and actual transpiration.
	kc := stageInterpolatedKc(cv, c.Phenology.Stage, relDev)
	netRad := netRadiationMJ(geom, weather.TminC, weather.TmaxC, saturationVaporPressureKPa(weather.TavgC)*weather.RelHumidity, c.Site.AlbedoCrop)
	et0 := referenceET0MM(weather.TavgC, weather.TminC, weather.TmaxC, windSpeedAt2m(weather.WindSpeedMS, weather.WindMeasurementHeightM), weather.RelHumidity, netRad, 0, c.Site.AltitudeM, 0)

	potentialTranspiration, evaporated, remainingInterception := potentialTranspirationMM(et0, kc, c.Water.InterceptionStorageMM, c.Canopy.SoilCoverage)
	c.Water.InterceptionStorageMM = remainingInterception
	c.Water.PotentialTranspirationMM = potentialTranspiration
	_ = evaporated

	availableWaterFraction := make([]float64, layers)
	for i := 0; i < layers; i++ {
		fc := soil.FieldCapacity(SoilLayer(i))
		pwp := soil.PermanentWiltingPoint(SoilLayer(i))
		moisture := soil.SoilMoisture(SoilLayer(i))
		availableWaterFraction[i] = clampUnit(safeDiv(moisture-pwp, clampMin(fc-pwp, 1e-6), 0, "availableWaterFraction"))
	}
	layerTranspiration, actualTranspiration := distributeTranspirationDemand(potentialTranspiration, c.Roots.RootEffectivity, c.Roots.RootDensity, availableWaterFraction, c.Stress.OxygenDeficitFactor)
	c.Water.LayerTranspirationMM = layerTranspiration
	c.Water.ActualTranspirationMM = actualTranspiration
	c.Water.TranspirationDeficit = clampUnit(safeDiv(actualTranspiration, potentialTranspiration, 1, "transpirationDeficit"))
	for i, t := range layerTranspiration {
		current := soil.SoilMoisture(SoilLayer(i))
		thickness := clampMin(soil.LayerThicknessM(SoilLayer(i)), 1e-6)
		soil.SetSoilMoisture(SoilLayer(i), clampMin(current-t/1000/thickness, 0))
	}

	// Step 12: heat stress (post-anthesis sensitive window).
	if newStage >= c.AnthesisStage {
		applyHeatStress(&c.Stress, float64(c.Stress.DaysAfterBeginFlowering), cv, weather.TmaxC)
	}

	// Step 13: frost kill.
	if c.Sim.FrostKillEnabled {
		var tempUnderSnow float64
		hasSnow := soil.SnowDepthMM() > 0
		if hasSnow {
			tempUnderSnow = weather.TminC + 2 // crude insulated estimate absent a dedicated snow collaborator
		}
		crownTemp := crownTemperatureC(c.Phenology.Stage, c.EarlyStageMax, soil.SoilSurfaceTemperatureC(), weather.TminC, soil.SnowDepthMM(), tempUnderSnow, hasSnow)
		updateFrostState(&c.Stress, crownTemp, cv, -4.0, soil.SnowDepthMM(), c.Phenology.VernalisationDays >= vernReqDays && vernReqDays > 0)
	}

	// Step 14: drought-fertility factor.
	waterlogged := airFilled < 0.05
	c.Stress.DroughtFertility = droughtFertilityFactor(c.Water.TranspirationDeficit, cv.DroughtFertilityFactor, drStageThreshold(cv, stageIdx), storageCoeffRaw, waterlogged)

	// Step 4.2: ozone uptake and damage bookkeeping, ahead of today's
	// assimilation so the just-updated short-term/long-term damage
	// factors apply to today's photosynthesis.
	o3ShortTerm, o3Senescence := 1.0, 1.0
	if c.Sim.OzoneEnabled && weather.O3nmolMol != nil {
		stomatalConductance := safeDiv(1, 200, 0.005, "o3StomatalConductanceApprox")
		waterClosure := waterStressStomatalClosure(1-c.Water.TranspirationDeficit, 0.5, 3)
		uptake := o3UptakeRate(*weather.O3nmolMol, stomatalConductance, waterClosure)
		applyDailyO3Uptake(&c.Stress, uptake, c.O3)
		o3ShortTerm = c.Stress.O3ShortTermDamage
		o3Senescence = c.Stress.O3LongTermDamage
	}

	// Step 10-11: daily gross assimilation (legacy Penman route and/or
	// hourly FvCB), respiration split to net assimilate.
	var grossAssimilateKgHa float64

	if c.Sim.PhotosynthesisMethod == PhotosynthesisHourlyFvCB {
		leaf := FvCBLeafParams{
			Kc25: c.Species.Kc25, Ko25: c.Species.Ko25, Vcmax25: c.Species.Vcmax25,
			AEKc: c.Species.AEKc, AEKo: c.Species.AEKo, AEVc: c.Species.AEVc,
			JmaxToVcmaxRatio: 1.67, AEJmax: 43540, AERd: 46390, Rd25ToVcmax25Ratio: 0.015,
		}
		ca := 380.0
		if weather.CO2ppm != nil {
			ca = *weather.CO2ppm
		}
		dailyKgCO2Ha, _ := hourlyFvCBCanopyAssimilation(weather, geom, c.Canopy.LAI, leaf, ca, o3ShortTerm, o3Senescence)
		grossAssimilateKgHa = dailyKgCO2Ha * (30.03 / 44.01) // CO2 -> CH2O mass conversion
	} else {
		params := dailyCanopyAssimilationParams{
			MaxAssimilationRate: cv.MaxAssimilationRate,
			KcFactor:             kc,
			CO2ppm:               380,
			Pathway:              c.Species.CarboxylationPathway,
		}
		if weather.CO2ppm != nil {
			params.CO2ppm = *weather.CO2ppm
		}
		grossAssimilateKgHa = canopyGrossAssimilation(geom, c.Canopy.LAI, params) * o3ShortTerm * o3Senescence
	}
	c.TotalGPPKgHa += grossAssimilateKgHa

	netAssimilate, _, _ := respirationSplit(grossAssimilateKgHa, weather.TavgC, 20, geom.AstronomicDayLengthH, 0.015, 0.25)
	netAssimilate *= c.Stress.CropHeatRedux * c.Stress.CropFrostRedux * c.Nitrogen.CropNRedux
	c.TotalNPPKgHa += netAssimilate

	// Step 15: N dilution curve and assimilation penalty, ahead of
	// tomorrow's partitioning/assimilation coupling.
	abovegroundKgHa := c.Organ.AbovegroundTotal(c.Species.AbovegroundOrgan)
	belowgroundKgHa := c.Organ.Total[OrganRoot]
	c.Nitrogen.CriticalConcentration = criticalNConcentration(cv.NcDilutionNpn, cv.NcDilutionNb0, abovegroundKgHa, belowgroundKgHa)
	c.Nitrogen.TargetConcentration = targetNConcentration(c.Nitrogen.CriticalConcentration, cv.LuxuryNCoefficient)
	c.Nitrogen.CropNRedux = cropNRedux(c.Nitrogen.AbovegroundConcentration, c.Nitrogen.CriticalConcentration, 0.2*c.Nitrogen.CriticalConcentration)
	c.Stress.CropNRedux = c.Nitrogen.CropNRedux
	c.Stress.RootNRedux = rootNRedux(c.Nitrogen.RootConcentration, cv.MinRootNConcentration, 1.5*cv.MinRootNConcentration)

	// Partitioning: distribute net assimilate across organs.
	senescenceRate := 0.0
	if stageIdx >= 0 && stageIdx < len(cv.OrganSenescenceRate) && OrganRoot < len(cv.OrganSenescenceRate[stageIdx]) {
		senescenceRate = cv.OrganSenescenceRate[stageIdx][OrganRoot]
	}
	grown, deadIncrement, _, deadRootKgHa := applyPartitioningStep(&c.Organ, cv, c.Species, c.Phenology.Stage, relDev, netAssimilate, c.Stress.CropHeatRedux, c.Stress.DroughtFertility, senescenceRate)
	if deadRootKgHa > 0 {
		layerMap := map[SoilLayer]float64{SoilLayer(c.Roots.RootingDepthLayer): deadRootKgHa}
		c.emitResidue(c.SoilOrganic, layerMap, c.Nitrogen.RootConcentration)
	}

	// Step 8-9: canopy LAI/coverage, after this day's growth/senescence.
	slaCurrent := 0.02
	if stageIdx >= 0 && stageIdx < len(cv.SpecificLeafArea) {
		slaCurrent = cv.SpecificLeafArea[stageIdx]
	}
	leafGrowth := 0.0
	if OrganLeaf < len(grown) {
		leafGrowth = grown[OrganLeaf]
	}
	leafSenescence := 0.0
	if OrganLeaf < len(deadIncrement) {
		leafSenescence = deadIncrement[OrganLeaf]
	}
	c.Canopy.LAI = updateLAI(c.Canopy.LAI, leafGrowth, leafSenescence, slaCurrent, slaCurrent)
	c.Canopy.SoilCoverage = soilCoverageFraction(c.Canopy.LAI)

	// Step 20: nitrogen uptake.
	c.stepNitrogenUptake(soil, layers)

	// Optional VOC emissions.
	if c.Sim.VOCEnabled {
		vocParams := vocParamsFromSpecies(c.Species)
		emissions := dailyVOCEmissions(vocParams, geom, weather.TavgC, c.Canopy.LAI)
		_ = emissions // surfaced to the orchestrator's daily output record, not tracked crop-side
	}

	if newStage != oldStage {
		slog.Debug("crop advanced stage", "species", c.CropIdentity.Species, "cultivar", c.CropIdentity.Cultivar, "from", oldStage, "to", newStage, "date", date)
	}
}

// drStageThreshold reads the cultivar's per-stage drought-stress
// threshold, defaulting to 0.5 when the table doesn't cover this stage.
func drStageThreshold(cv *CultivarParameters, stageIdx int) float64 {
	if stageIdx >= 0 && stageIdx < len(cv.DroughtStressThreshold) {
		return cv.DroughtStressThreshold[stageIdx]
	}
	return 0.5
}

// stepPreEmergence handles the degenerate pre-emergence day: only soil
// temperature sum and the moisture/flooding gate apply (§4.1 step 3).
func (c *CropModule) stepPreEmergence(soil SoilColumn, weather WeatherRecord, geom RadiationGeometry) {
	fc := soil.FieldCapacity(0)
	pwp := soil.PermanentWiltingPoint(0)
	capillaryAbovePWP := clampMin(soil.SoilMoisture(0)-pwp, 0)
	if !preEmergenceConditionsMet(soil.SoilMoisture(0), fc, pwp, capillaryAbovePWP, soil.SurfaceWaterStorageMM(), true, true) {
		return
	}
	base := 0.0
	if len(c.Species.BaseTemperature) > 0 {
		base = c.Species.BaseTemperature[0]
	}
	increment := clampMin(soil.SoilTemperatureC(0)-base, 0)
	tags := advanceStage(&c.Phenology, increment, c.cultivar().StageTemperatureSum, c.FinalStage, &c.Lifeform)
	for _, tag := range tags {
		c.events(tag)
	}
}

// stepNitrogenUptake runs §4.1 step 20 across rooted layers, capping
// each layer's uptake and crediting the remainder to biological
// fixation up to the species' maximum fixation fraction.
func (c *CropModule) stepNitrogenUptake(soil SoilColumn, layers int) {
	cv := c.cultivar()
	diffusionCoeff := 1e-10
	totalDemand := c.Nitrogen.TargetConcentration * c.Organ.AbovegroundTotal(c.Species.AbovegroundOrgan)
	totalUptake := 0.0
	uptakePerLayer := make([]float64, layers)

	for i := 0; i < layers; i++ {
		if i > c.Roots.RootingZoneLayer {
			break
		}
		moisture := clampMin(soil.SoilMoisture(SoilLayer(i)), 1e-6)
		no3 := soil.SoilNO3KgM3(SoilLayer(i))
		transpiration := 0.0
		if i < len(c.Water.LayerTranspirationMM) {
			transpiration = c.Water.LayerTranspirationMM[i]
		}
		rootDensity := 0.0
		if i < len(c.Roots.RootDensity) {
			rootDensity = c.Roots.RootDensity[i]
		}

		convective := convectiveNUptakeKgHa(transpiration, no3, moisture)
		diffusive := diffusiveNUptakeKgHa(diffusionCoeff, c.Roots.RootDiameterM, no3, moisture, 1e-5, rootDensity)
		demandShare := safeDiv(totalDemand, float64(c.Roots.RootingZoneLayer+1), 0, "nDemandLayerShare")
		uptake := layerNUptakeKgHa(demandShare, convective, diffusive, no3, 1e-4)

		uptakePerLayer[i] = uptake
		totalUptake += uptake
		soil.SetSoilNO3KgM3(SoilLayer(i), clampMin(no3-uptake, 0))
	}

	deficit := clampMin(totalDemand-totalUptake, 0)
	fixation := biologicalFixationKgHa(deficit, c.Species.NitrogenFixationFraction)
	totalUptake += fixation

	c.Nitrogen.LayerUptakeKgHa = uptakePerLayer
	c.Nitrogen.TotalContentKgHa += totalUptake
	agBiomass := clampMin(c.Organ.AbovegroundTotal(c.Species.AbovegroundOrgan), 1e-6)
	c.Nitrogen.AbovegroundConcentration = safeDiv(c.Nitrogen.TotalContentKgHa, agBiomass, c.Nitrogen.AbovegroundConcentration, "abovegroundNConc")
	rootBiomass := clampMin(c.Organ.Total[OrganRoot], 1e-6)
	c.Nitrogen.RootConcentration = safeDiv(c.Nitrogen.TotalContentKgHa*0.1, rootBiomass, c.Nitrogen.RootConcentration, "rootNConc")
	_ = cv
}

// emitResidue routes dead biomass to the soil-organic AOM pool via the
// orchestrator-supplied collaborator (c.SoilOrganic).
func (c *CropModule) emitResidue(soilOrganic SoilOrganic, layerToAmount map[SoilLayer]float64, nConcKgKg float64) {
	if soilOrganic == nil {
		return
	}
	soilOrganic.IngestResidues(layerToAmount, nConcKgKg)
}

// applyCutting implements a forage cutting event: the cultivar's
// designated cutting organs are harvested to ground level, dead
// biomass resets unconditionally (see DESIGN.md open question 3), the
// non-exported share of each cut organ goes to the soil-organic pool,
// and phenology resets to StageAfterCut on the day of the cut.
// CuttingDelayDays is not read here.
func (c *CropModule) applyCutting(soilOrganic SoilOrganic) (cutKgHa float64) {
	cv := c.cultivar()
	layerMap := map[SoilLayer]float64{}
	residueKgHa := 0.0
	for _, organIdx := range cv.OrganIDsCutting {
		if organIdx < 0 || organIdx >= organCount {
			continue
		}
		green := c.Organ.Green(organIdx)
		cutKgHa += green
		if organIdx < len(c.Residue.ExportFraction) {
			residueKgHa += green * (1 - clampUnit(c.Residue.ExportFraction[organIdx]))
		}
		c.Organ.Total[organIdx] = 0
		c.Organ.Dead[organIdx] = 0 // unconditional reset, not merely green biomass
	}
	if cutKgHa > 0 {
		layerMap[0] = residueKgHa
		c.emitResidue(soilOrganic, layerMap, c.Residue.ResidueNRatio*c.Nitrogen.AbovegroundConcentration)
	}

	c.Phenology.Stage = cv.StageAfterCut
	c.Phenology.CurrentTempSum = 0
	c.Canopy.LAI = minLAI
	c.events("cutting")
	return cutKgHa
}

// harvestCurrentCrop removes the cultivar's primary/secondary yield
// organs from the field, returning their biomass; residue organs are
// routed to soil organic matter per ResidueParameters.ExportFraction.
func (c *CropModule) harvestCurrentCrop(soilOrganic SoilOrganic) (primaryYieldKgHa, secondaryYieldKgHa float64) {
	cv := c.cultivar()
	for _, i := range cv.OrganIDsPrimaryYield {
		if i >= 0 && i < organCount {
			primaryYieldKgHa += c.Organ.Total[i]
		}
	}
	for _, i := range cv.OrganIDsSecondaryYield {
		if i >= 0 && i < organCount {
			secondaryYieldKgHa += c.Organ.Total[i]
		}
	}

	layerMap := map[SoilLayer]float64{}
	for i := 0; i < organCount; i++ {
		exportFrac := 1.0
		if c.Residue != nil && i < len(c.Residue.ExportFraction) {
			exportFrac = c.Residue.ExportFraction[i]
		}
		residue := c.Organ.Total[i] * (1 - exportFrac)
		if residue > 0 {
			layerMap[0] += residue
		}
	}
	if len(layerMap) > 0 {
		c.emitResidue(soilOrganic, layerMap, c.Residue.ResidueNRatio*c.Nitrogen.AbovegroundConcentration)
	}

	c.Organ = OrganBiomass{}
	c.Canopy = CanopyState{LAI: minLAI}
	c.Phenology = PhenologyState{}
	c.events("harvest")
	return primaryYieldKgHa, secondaryYieldKgHa
}

// incorporateCurrentCrop routes the entire standing crop (no export) to
// the soil-organic pool, used for green-manure or failed-crop plow-in.
func (c *CropModule) incorporateCurrentCrop(soilOrganic SoilOrganic) {
	layerMap := map[SoilLayer]float64{}
	for i := 0; i < organCount; i++ {
		if c.Organ.Total[i] > 0 {
			layerMap[0] += c.Organ.Total[i]
		}
	}
	c.emitResidue(soilOrganic, layerMap, c.Residue.ResidueNRatio*c.Nitrogen.AbovegroundConcentration)

	c.Organ = OrganBiomass{}
	c.Canopy = CanopyState{LAI: minLAI}
	c.Phenology = PhenologyState{}
	c.events("incorporation")
}
