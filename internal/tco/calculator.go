package tco

import "math"

// Calculator evaluates the cost components with a fixed set of tariffs.
// It holds no mutable state and is safe for concurrent use.
type Calculator struct {
	rates Rates
}

// NewCalculator returns a Calculator bound to r.
func NewCalculator(r Rates) (*Calculator, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &Calculator{rates: r}, nil
}

var defaultCalculator = &Calculator{rates: DefaultRates()}

// Default returns the Calculator using DefaultRates.
func Default() *Calculator {
	return defaultCalculator
}

// Rates returns a copy of the tariffs in use.
func (c *Calculator) Rates() Rates {
	return c.rates
}

// Acquisition returns Ca.
func (c *Calculator) Acquisition(a AcquisitionCost) (float64, error) {
	if err := a.Validate(); err != nil {
		return 0, err
	}
	return a.ListPriceEUR, nil
}

// Commissioning returns Cc. Training is a flat fee, never prorated.
func (c *Calculator) Commissioning(cc CommissioningCost) (float64, error) {
	if err := cc.Validate(); err != nil {
		return 0, err
	}
	return c.commissioning(cc), nil
}

func (c *Calculator) commissioning(cc CommissioningCost) float64 {
	cost := c.rates.CommissioningPerKg * cc.TotalWeightKg
	if cc.NeedsTraining {
		cost += c.rates.TrainingFee
	}
	return cost
}

// EnergyMultiplier returns the drive and efficiency adjustment applied to
// energy use. The flat-belt and IE3+ adjustments are independent, so a
// flat-belt IE3+ machine nets out at 1.0.
func (c *Calculator) EnergyMultiplier(d DriveType, e EfficiencyClass) float64 {
	m := 1.0
	if d == DriveFlatBelt {
		m += c.rates.FlatBeltEnergyAdjustment
	}
	if e == EfficiencyPremium {
		m -= c.rates.PremiumEfficiencyEnergyAdjustment
	}
	return m
}

// Operating returns Co over the duty cycle of o.
func (c *Calculator) Operating(o OperatingCost) (float64, error) {
	if err := o.Validate(); err != nil {
		return 0, err
	}
	return c.operating(o, o.Hours()), nil
}

func (c *Calculator) operating(o OperatingCost, hours float64) float64 {
	energy := o.PowerKW * hours * c.EnergyMultiplier(o.DriveType, o.MotorEfficiencyClass) * o.EnergyPrice

	pricePerLiter := o.WaterPrice / LitersPerCubicMeter
	flow := o.WaterLitersPerSecond * SecondsPerHour * hours * pricePerLiter
	ejection := o.WaterPerEjectionLiters * o.NumberOfEjectionsPerHour * hours * pricePerLiter

	return energy + flow + ejection
}

// ServiceTier returns the base cost of one service for a bowl diameter.
func (c *Calculator) ServiceTier(bowlDiameterMM float64) float64 {
	switch {
	case bowlDiameterMM < c.rates.SmallBowlLimitMM:
		return c.rates.ServiceTierSmall
	case bowlDiameterMM <= c.rates.MediumBowlLimitMM:
		return c.rates.ServiceTierMedium
	default:
		return c.rates.ServiceTierLarge
	}
}

// ServicesPerYear returns the service frequency for the given annual hours,
// floored at MinServicesPerYear.
func (c *Calculator) ServicesPerYear(hours float64) float64 {
	return math.Max(hours/c.rates.ServiceIntervalHours, c.rates.MinServicesPerYear)
}

// Maintenance returns Cm using m.OperatingHoursPerYear.
func (c *Calculator) Maintenance(m MaintenanceCost) (float64, error) {
	if err := m.Validate(); err != nil {
		return 0, err
	}
	return c.maintenance(m, m.OperatingHoursPerYear), nil
}

func (c *Calculator) maintenance(m MaintenanceCost, hours float64) float64 {
	base := c.ServiceTier(m.BowlDiameterMM)
	if m.DriveType == DriveFlatBelt {
		base += c.rates.FlatBeltServiceAdder
	}
	return base * c.ServicesPerYear(hours)
}

// ProductionImpact returns Cp for the given annual operating hours.
func (c *Calculator) ProductionImpact(p ProductionImpactCost, operatingHours float64) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	if err := nonNegative("operating_hours", operatingHours); err != nil {
		return 0, err
	}
	return c.productionImpact(p, operatingHours), nil
}

func (c *Calculator) productionImpact(p ProductionImpactCost, hours float64) float64 {
	lossPerHour := p.ThroughputLitersPerHour * p.ProductValuePerLiter

	cleanings := hours/p.CleaningIntervalHours + p.PlannedShutdownsPerYear
	agent := p.BowlVolumeLiters * cleanings * p.CleaningMediaPrice
	cleaningLoss := cleanings * p.CleaningTimeHours * lossPerHour

	unplannedEvents := hours * p.UnplannedDowntimeRate
	unplannedLoss := unplannedEvents * p.MTTRHours * lossPerHour

	return agent + cleaningLoss + unplannedLoss
}

// Disposal returns Cd.
func (c *Calculator) Disposal(d DisposalCost) (float64, error) {
	if err := d.Validate(); err != nil {
		return 0, err
	}
	return c.rates.DisposalPerKg * d.TotalWeightKg, nil
}

// EndOfLife returns Ve, the scrap credit.
func (c *Calculator) EndOfLife(v EndOfLifeValue) (float64, error) {
	if err := v.Validate(); err != nil {
		return 0, err
	}
	return v.ResidualWeightKg * v.ScrapValueRate, nil
}

// Comprehensive aggregates all seven components of m. The duty cycle from
// m.Operating is computed once and drives operating, maintenance and
// production impact alike; m.Maintenance.OperatingHoursPerYear is ignored.
func (c *Calculator) Comprehensive(m ComprehensiveMachine) (TCOComponents, error) {
	if err := m.Validate(); err != nil {
		return TCOComponents{}, err
	}
	hours := m.Operating.Hours()

	out := TCOComponents{
		Acquisition:      m.Acquisition.ListPriceEUR,
		Commissioning:    c.commissioning(m.Commissioning),
		Operating:        c.operating(m.Operating, hours),
		Maintenance:      c.maintenance(m.Maintenance, hours),
		ProductionImpact: c.productionImpact(m.ProductionImpact, hours),
		Disposal:         c.rates.DisposalPerKg * m.Disposal.TotalWeightKg,
		EndOfLife:        m.EndOfLife.ResidualWeightKg * m.EndOfLife.ScrapValueRate,
	}

	out.TotalBeforeDiscount = out.Acquisition + out.Commissioning + out.Operating +
		out.Maintenance + out.ProductionImpact + out.Disposal - out.EndOfLife
	out.DiscountAmount = out.TotalBeforeDiscount * m.Acquisition.DiscountRate
	out.TotalAfterDiscount = out.TotalBeforeDiscount - out.DiscountAmount
	return out, nil
}

// CalculateAcquisitionCost returns Ca with the default tariffs.
func CalculateAcquisitionCost(a AcquisitionCost) (float64, error) {
	return defaultCalculator.Acquisition(a)
}

// CalculateCommissioningCost returns Cc with the default tariffs.
func CalculateCommissioningCost(c CommissioningCost) (float64, error) {
	return defaultCalculator.Commissioning(c)
}

// CalculateOperatingCost returns Co with the default tariffs.
func CalculateOperatingCost(o OperatingCost) (float64, error) {
	return defaultCalculator.Operating(o)
}

// CalculateMaintenanceCost returns Cm with the default tariffs.
func CalculateMaintenanceCost(m MaintenanceCost) (float64, error) {
	return defaultCalculator.Maintenance(m)
}

// CalculateProductionImpactCost returns Cp with the default tariffs.
func CalculateProductionImpactCost(p ProductionImpactCost, operatingHours float64) (float64, error) {
	return defaultCalculator.ProductionImpact(p, operatingHours)
}

// CalculateDisposalCost returns Cd with the default tariffs.
func CalculateDisposalCost(d DisposalCost) (float64, error) {
	return defaultCalculator.Disposal(d)
}

// CalculateEndOfLifeValue returns Ve with the default tariffs.
func CalculateEndOfLifeValue(v EndOfLifeValue) (float64, error) {
	return defaultCalculator.EndOfLife(v)
}

// CalculateComprehensiveTCO aggregates m with the default tariffs.
func CalculateComprehensiveTCO(m ComprehensiveMachine) (TCOComponents, error) {
	return defaultCalculator.Comprehensive(m)
}
