package tco

import (
	"fmt"

	"separator-tco-backend/internal/catalog"
)

// Reference site assumptions used when a catalog entry is costed without
// project-specific figures.
const (
	DefaultEnergyPrice             = 0.156
	DefaultWaterPricePerM3         = 1.60
	DefaultHoursPerDay             = 16.0
	DefaultDaysPerWeek             = 5.0
	DefaultWeeksPerYear            = 50.0
	DefaultEjectionsPerHour        = 60.0
	DefaultCleaningIntervalHours   = 10.0
	DefaultCleaningTimeHours       = 2.0
	DefaultCleaningMediaPrice      = 1.5
	DefaultPlannedShutdownsPerYear = 12.0
	DefaultProductValuePerLiter    = 0.5
	DefaultUnplannedDowntimeRate   = 0.002
	DefaultMTTRHours               = 4.0
	DefaultScrapValueRate          = 0.60

	weeksPerYearCalendar = 52.0
)

// Assumptions describes the site a catalog entry is costed for.
type Assumptions struct {
	EnergyPrice             float64 `json:"energy_price" yaml:"energy_price"`
	WaterPricePerM3         float64 `json:"water_price" yaml:"water_price"`
	HoursPerDay             float64 `json:"hours_per_day" yaml:"hours_per_day"`
	DaysPerWeek             float64 `json:"days_per_week" yaml:"days_per_week"`
	WeeksPerYear            float64 `json:"weeks_per_year" yaml:"weeks_per_year"`
	EjectionsPerHour        float64 `json:"number_of_ejections_per_hour" yaml:"number_of_ejections_per_hour"`
	CleaningIntervalHours   float64 `json:"cleaning_interval_h" yaml:"cleaning_interval_h"`
	CleaningTimeHours       float64 `json:"cleaning_time_h" yaml:"cleaning_time_h"`
	CleaningMediaPrice      float64 `json:"cleaning_media_price" yaml:"cleaning_media_price"`
	PlannedShutdownsPerYear float64 `json:"planned_shutdowns_per_year" yaml:"planned_shutdowns_per_year"`
	ProductValuePerLiter    float64 `json:"product_value_per_L" yaml:"product_value_per_L"`
	UnplannedDowntimeRate   float64 `json:"unplanned_downtime_rate" yaml:"unplanned_downtime_rate"`
	MTTRHours               float64 `json:"mttr_hours" yaml:"mttr_hours"`
	ScrapValueRate          float64 `json:"scrap_value_rate" yaml:"scrap_value_rate"`
	DiscountRate            float64 `json:"discount_rate" yaml:"discount_rate"`
	NeedsTraining           bool    `json:"needs_training" yaml:"needs_training"`
}

// DefaultAssumptions returns the reference site.
func DefaultAssumptions() Assumptions {
	return Assumptions{
		EnergyPrice:             DefaultEnergyPrice,
		WaterPricePerM3:         DefaultWaterPricePerM3,
		HoursPerDay:             DefaultHoursPerDay,
		DaysPerWeek:             DefaultDaysPerWeek,
		WeeksPerYear:            DefaultWeeksPerYear,
		EjectionsPerHour:        DefaultEjectionsPerHour,
		CleaningIntervalHours:   DefaultCleaningIntervalHours,
		CleaningTimeHours:       DefaultCleaningTimeHours,
		CleaningMediaPrice:      DefaultCleaningMediaPrice,
		PlannedShutdownsPerYear: DefaultPlannedShutdownsPerYear,
		ProductValuePerLiter:    DefaultProductValuePerLiter,
		UnplannedDowntimeRate:   DefaultUnplannedDowntimeRate,
		MTTRHours:               DefaultMTTRHours,
		ScrapValueRate:          DefaultScrapValueRate,
	}
}

// FromSpecification builds the full parameter set for a catalog entry.
// Throughput is taken as the entry's maximum capacity and the residual
// scrap weight as bowl plus motor weight. Unknown efficiency text counts
// as IE2, which carries no energy adjustment.
func FromSpecification(s catalog.Specification, a Assumptions) ComprehensiveMachine {
	drive := DriveStandard
	if s.FlatBelt() {
		drive = DriveFlatBelt
	}
	class := EfficiencyClass(s.EfficiencyClass())
	if !class.valid() {
		class = EfficiencyIE2
	}
	hours := a.HoursPerDay * a.DaysPerWeek * a.WeeksPerYear

	return ComprehensiveMachine{
		Name: s.ModelNumber,
		Acquisition: AcquisitionCost{
			ListPriceEUR: s.ListPrice,
			DiscountRate: a.DiscountRate,
		},
		Commissioning: CommissioningCost{
			TotalWeightKg: s.TotalWeightKg,
			NeedsTraining: a.NeedsTraining,
		},
		Operating: OperatingCost{
			PowerKW:                  s.PowerKW(),
			EnergyPrice:              a.EnergyPrice,
			WaterLitersPerSecond:     s.WaterFlowLs,
			WaterPerEjectionLiters:   s.WaterPerEjectionL,
			WaterPrice:               a.WaterPricePerM3,
			HoursPerDay:              a.HoursPerDay,
			DaysPerWeek:              a.DaysPerWeek,
			WeeksPerYear:             a.WeeksPerYear,
			DriveType:                drive,
			MotorEfficiencyClass:     class,
			NumberOfEjectionsPerHour: a.EjectionsPerHour,
		},
		Maintenance: MaintenanceCost{
			BowlDiameterMM:        s.BowlDiameterMM,
			DriveType:             drive,
			OperatingHoursPerYear: hours,
		},
		ProductionImpact: ProductionImpactCost{
			CleaningIntervalHours:   a.CleaningIntervalHours,
			CleaningTimeHours:       a.CleaningTimeHours,
			BowlVolumeLiters:        s.BowlVolumeL,
			CleaningMediaPrice:      a.CleaningMediaPrice,
			PlannedShutdownsPerYear: a.PlannedShutdownsPerYear,
			ThroughputLitersPerHour: s.CapacityMax,
			ProductValuePerLiter:    a.ProductValuePerLiter,
			UnplannedDowntimeRate:   a.UnplannedDowntimeRate,
			MTTRHours:               a.MTTRHours,
			EjectionSystem:          EjectionStandard,
		},
		Disposal: DisposalCost{
			TotalWeightKg: s.TotalWeightKg,
		},
		EndOfLife: EndOfLifeValue{
			ResidualWeightKg: s.BowlWeightKg + s.MotorWeightKg,
			ScrapValueRate:   a.ScrapValueRate,
		},
	}
}

// HoursFromThroughput derives annual operating hours from the daily volume a
// project must process. Daily hours are capped at maxHoursPerDay when it is
// positive, and a calendar of 52 weeks is assumed.
func HoursFromThroughput(throughputPerDay, capacityMax, maxHoursPerDay, workdaysPerWeek float64) (float64, error) {
	if err := firstErr(
		nonNegative("throughput_per_day", throughputPerDay),
		positive("capacity_max", capacityMax),
		nonNegative("max_hours_per_day", maxHoursPerDay),
		nonNegative("workdays_per_week", workdaysPerWeek),
	); err != nil {
		return 0, err
	}
	if workdaysPerWeek > 7 {
		return 0, invalid("workdays_per_week", fmt.Sprintf("must be at most 7, got %g", workdaysPerWeek))
	}

	perDay := throughputPerDay / capacityMax
	if maxHoursPerDay > 0 && perDay > maxHoursPerDay {
		perDay = maxHoursPerDay
	}
	return perDay * workdaysPerWeek * weeksPerYearCalendar, nil
}
