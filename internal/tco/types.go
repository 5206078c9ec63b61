package tco

import "fmt"

// DriveType is the separator drive arrangement.
type DriveType string

const (
	DriveStandard DriveType = "standard"
	DriveFlatBelt DriveType = "flat-belt"
)

func (d DriveType) valid() bool {
	return d == DriveStandard || d == DriveFlatBelt
}

// EfficiencyClass is the IEC motor efficiency class.
type EfficiencyClass string

const (
	EfficiencyIE1     EfficiencyClass = "IE1"
	EfficiencyIE2     EfficiencyClass = "IE2"
	EfficiencyIE3     EfficiencyClass = "IE3"
	EfficiencyPremium EfficiencyClass = "IE3+"
)

func (e EfficiencyClass) valid() bool {
	switch e {
	case EfficiencyIE1, EfficiencyIE2, EfficiencyIE3, EfficiencyPremium:
		return true
	}
	return false
}

// EjectionSystem describes how solids are discharged from the bowl.
type EjectionSystem string

const (
	EjectionStandard EjectionSystem = "standard"
	EjectionAdvanced EjectionSystem = "advanced"
)

func (e EjectionSystem) valid() bool {
	return e == "" || e == EjectionStandard || e == EjectionAdvanced
}

func checkDrive(field string, d DriveType) error {
	if !d.valid() {
		return invalid(field, fmt.Sprintf("unknown drive type %q", d))
	}
	return nil
}

// AcquisitionCost holds the purchase inputs (Ca) and the deal discount.
type AcquisitionCost struct {
	ListPriceEUR float64 `json:"list_price_eur" yaml:"list_price_eur"`
	DiscountRate float64 `json:"discount_rate" yaml:"discount_rate"`
}

// Validate checks the acquisition inputs.
func (a AcquisitionCost) Validate() error {
	return firstErr(
		nonNegative("list_price_eur", a.ListPriceEUR),
		unitRate("discount_rate", a.DiscountRate),
	)
}

// CommissioningCost holds installation inputs (Cc).
type CommissioningCost struct {
	TotalWeightKg float64 `json:"total_weight_kg" yaml:"total_weight_kg"`
	NeedsTraining bool    `json:"needs_training" yaml:"needs_training"`
}

// Validate checks the commissioning inputs.
func (c CommissioningCost) Validate() error {
	return nonNegative("total_weight_kg", c.TotalWeightKg)
}

// OperatingCost holds energy, water and duty-cycle inputs (Co).
// WaterPrice is per cubic meter.
type OperatingCost struct {
	PowerKW                  float64         `json:"power_kW" yaml:"power_kW"`
	EnergyPrice              float64         `json:"energy_price" yaml:"energy_price"`
	WaterLitersPerSecond     float64         `json:"op_water_L_per_s" yaml:"op_water_L_per_s"`
	WaterPerEjectionLiters   float64         `json:"op_water_per_ejection_L" yaml:"op_water_per_ejection_L"`
	WaterPrice               float64         `json:"water_price" yaml:"water_price"`
	HoursPerDay              float64         `json:"hours_per_day" yaml:"hours_per_day"`
	DaysPerWeek              float64         `json:"days_per_week" yaml:"days_per_week"`
	WeeksPerYear             float64         `json:"weeks_per_year" yaml:"weeks_per_year"`
	DriveType                DriveType       `json:"drive_type" yaml:"drive_type"`
	MotorEfficiencyClass     EfficiencyClass `json:"motor_efficiency_class" yaml:"motor_efficiency_class"`
	NumberOfEjectionsPerHour float64         `json:"number_of_ejections_per_hour" yaml:"number_of_ejections_per_hour"`
}

// Hours returns the annual duty cycle.
func (o OperatingCost) Hours() float64 {
	return o.HoursPerDay * o.DaysPerWeek * o.WeeksPerYear
}

// Validate checks the operating inputs.
func (o OperatingCost) Validate() error {
	if err := firstErr(
		nonNegative("power_kW", o.PowerKW),
		nonNegative("energy_price", o.EnergyPrice),
		nonNegative("op_water_L_per_s", o.WaterLitersPerSecond),
		nonNegative("op_water_per_ejection_L", o.WaterPerEjectionLiters),
		nonNegative("water_price", o.WaterPrice),
		nonNegative("hours_per_day", o.HoursPerDay),
		nonNegative("days_per_week", o.DaysPerWeek),
		nonNegative("weeks_per_year", o.WeeksPerYear),
		nonNegative("number_of_ejections_per_hour", o.NumberOfEjectionsPerHour),
		checkDrive("drive_type", o.DriveType),
	); err != nil {
		return err
	}
	if !o.MotorEfficiencyClass.valid() {
		return invalid("motor_efficiency_class", fmt.Sprintf("unknown efficiency class %q", o.MotorEfficiencyClass))
	}
	return nil
}

// MaintenanceCost holds service inputs (Cm).
type MaintenanceCost struct {
	BowlDiameterMM        float64   `json:"bowl_diameter_mm" yaml:"bowl_diameter_mm"`
	DriveType             DriveType `json:"drive_type" yaml:"drive_type"`
	OperatingHoursPerYear float64   `json:"operating_hours_per_year" yaml:"operating_hours_per_year"`
}

// Validate checks the maintenance inputs.
func (m MaintenanceCost) Validate() error {
	return firstErr(
		nonNegative("bowl_diameter_mm", m.BowlDiameterMM),
		checkDrive("drive_type", m.DriveType),
		nonNegative("operating_hours_per_year", m.OperatingHoursPerYear),
	)
}

// ProductionImpactCost holds cleaning and downtime inputs (Cp).
type ProductionImpactCost struct {
	CleaningIntervalHours   float64        `json:"cleaning_interval_h" yaml:"cleaning_interval_h"`
	CleaningTimeHours       float64        `json:"cleaning_time_h" yaml:"cleaning_time_h"`
	BowlVolumeLiters        float64        `json:"bowl_volume_L" yaml:"bowl_volume_L"`
	CleaningMediaPrice      float64        `json:"cleaning_media_price" yaml:"cleaning_media_price"`
	PlannedShutdownsPerYear float64        `json:"planned_shutdowns_per_year" yaml:"planned_shutdowns_per_year"`
	ThroughputLitersPerHour float64        `json:"throughput_L_per_h" yaml:"throughput_L_per_h"`
	ProductValuePerLiter    float64        `json:"product_value_per_L" yaml:"product_value_per_L"`
	UnplannedDowntimeRate   float64        `json:"unplanned_downtime_rate" yaml:"unplanned_downtime_rate"`
	MTTRHours               float64        `json:"mttr_hours" yaml:"mttr_hours"`
	EjectionSystem          EjectionSystem `json:"ejection_system,omitempty" yaml:"ejection_system,omitempty"`
}

// Validate checks the production impact inputs.
func (p ProductionImpactCost) Validate() error {
	if err := firstErr(
		positive("cleaning_interval_h", p.CleaningIntervalHours),
		nonNegative("cleaning_time_h", p.CleaningTimeHours),
		nonNegative("bowl_volume_L", p.BowlVolumeLiters),
		nonNegative("cleaning_media_price", p.CleaningMediaPrice),
		nonNegative("planned_shutdowns_per_year", p.PlannedShutdownsPerYear),
		nonNegative("throughput_L_per_h", p.ThroughputLitersPerHour),
		nonNegative("product_value_per_L", p.ProductValuePerLiter),
		unitRate("unplanned_downtime_rate", p.UnplannedDowntimeRate),
		nonNegative("mttr_hours", p.MTTRHours),
	); err != nil {
		return err
	}
	if !p.EjectionSystem.valid() {
		return invalid("ejection_system", fmt.Sprintf("unknown ejection system %q", p.EjectionSystem))
	}
	return nil
}

// DisposalCost holds decommissioning inputs (Cd).
type DisposalCost struct {
	TotalWeightKg float64 `json:"total_weight_kg" yaml:"total_weight_kg"`
}

// Validate checks the disposal inputs.
func (d DisposalCost) Validate() error {
	return nonNegative("total_weight_kg", d.TotalWeightKg)
}

// EndOfLifeValue holds the scrap recovery inputs (Ve). ScrapValueRate is
// currency per kilogram.
type EndOfLifeValue struct {
	ResidualWeightKg float64 `json:"residual_weight_kg" yaml:"residual_weight_kg"`
	ScrapValueRate   float64 `json:"scrap_value_rate" yaml:"scrap_value_rate"`
}

// Validate checks the end-of-life inputs.
func (v EndOfLifeValue) Validate() error {
	return firstErr(
		nonNegative("residual_weight_kg", v.ResidualWeightKg),
		nonNegative("scrap_value_rate", v.ScrapValueRate),
	)
}

// TCOComponents is the breakdown record produced by the aggregator.
type TCOComponents struct {
	Acquisition         float64 `json:"Ca_acquisition" yaml:"Ca_acquisition"`
	Commissioning       float64 `json:"Cc_commissioning" yaml:"Cc_commissioning"`
	Operating           float64 `json:"Co_operating" yaml:"Co_operating"`
	Maintenance         float64 `json:"Cm_maintenance" yaml:"Cm_maintenance"`
	ProductionImpact    float64 `json:"Cp_production_impact" yaml:"Cp_production_impact"`
	Disposal            float64 `json:"Cd_disposal" yaml:"Cd_disposal"`
	EndOfLife           float64 `json:"Ve_end_of_life" yaml:"Ve_end_of_life"`
	TotalBeforeDiscount float64 `json:"total_before_discount" yaml:"total_before_discount"`
	DiscountAmount      float64 `json:"discount_amount" yaml:"discount_amount"`
	TotalAfterDiscount  float64 `json:"total_after_discount" yaml:"total_after_discount"`
}

// ComprehensiveMachine bundles every parameter struct for one machine.
type ComprehensiveMachine struct {
	ID               string               `json:"id" yaml:"id"`
	ProjectID        string               `json:"projectId" yaml:"project_id"`
	Name             string               `json:"name" yaml:"name"`
	Acquisition      AcquisitionCost      `json:"acquisition" yaml:"acquisition"`
	Commissioning    CommissioningCost    `json:"commissioning" yaml:"commissioning"`
	Operating        OperatingCost        `json:"operating" yaml:"operating"`
	Maintenance      MaintenanceCost      `json:"maintenance" yaml:"maintenance"`
	ProductionImpact ProductionImpactCost `json:"production_impact" yaml:"production_impact"`
	Disposal         DisposalCost         `json:"disposal" yaml:"disposal"`
	EndOfLife        EndOfLifeValue       `json:"end_of_life" yaml:"end_of_life"`
	Components       *TCOComponents       `json:"tco_components,omitempty" yaml:"tco_components,omitempty"`
}

// Validate checks every parameter struct, stopping at the first error.
// Field names are qualified by their struct, e.g. "disposal.total_weight_kg".
func (m ComprehensiveMachine) Validate() error {
	return firstErr(
		within("acquisition", m.Acquisition.Validate()),
		within("commissioning", m.Commissioning.Validate()),
		within("operating", m.Operating.Validate()),
		within("maintenance", m.Maintenance.Validate()),
		within("production_impact", m.ProductionImpact.Validate()),
		within("disposal", m.Disposal.Validate()),
		within("end_of_life", m.EndOfLife.Validate()),
	)
}
