package tco

import "fmt"

// Reference tariffs used by the calculators. Hosts override them per market
// through Rates.
const (
	DefaultTrainingFee        = 10000.0
	DefaultCommissioningPerKg = 5.0
	DefaultDisposalPerKg      = 3.0

	DefaultServiceTierSmall     = 10000.0
	DefaultServiceTierMedium    = 15000.0
	DefaultServiceTierLarge     = 20000.0
	DefaultSmallBowlLimitMM     = 400.0
	DefaultMediumBowlLimitMM    = 700.0
	DefaultFlatBeltServiceAdder = 2000.0
	DefaultServiceIntervalHours = 8000.0
	DefaultMinServicesPerYear   = 0.5

	DefaultFlatBeltEnergyAdjustment          = 0.01
	DefaultPremiumEfficiencyEnergyAdjustment = 0.01

	// Unit conversions.
	LitersPerCubicMeter = 1000.0
	SecondsPerHour      = 3600.0
)

// Rates gathers the tunable tariffs of every calculator.
type Rates struct {
	TrainingFee        float64 `json:"training_fee" yaml:"training_fee"`
	CommissioningPerKg float64 `json:"commissioning_per_kg" yaml:"commissioning_per_kg"`
	DisposalPerKg      float64 `json:"disposal_per_kg" yaml:"disposal_per_kg"`

	ServiceTierSmall     float64 `json:"service_tier_small" yaml:"service_tier_small"`
	ServiceTierMedium    float64 `json:"service_tier_medium" yaml:"service_tier_medium"`
	ServiceTierLarge     float64 `json:"service_tier_large" yaml:"service_tier_large"`
	SmallBowlLimitMM     float64 `json:"small_bowl_limit_mm" yaml:"small_bowl_limit_mm"`
	MediumBowlLimitMM    float64 `json:"medium_bowl_limit_mm" yaml:"medium_bowl_limit_mm"`
	FlatBeltServiceAdder float64 `json:"flat_belt_service_adder" yaml:"flat_belt_service_adder"`
	ServiceIntervalHours float64 `json:"service_interval_hours" yaml:"service_interval_hours"`
	MinServicesPerYear   float64 `json:"min_services_per_year" yaml:"min_services_per_year"`

	FlatBeltEnergyAdjustment          float64 `json:"flat_belt_energy_adjustment" yaml:"flat_belt_energy_adjustment"`
	PremiumEfficiencyEnergyAdjustment float64 `json:"premium_efficiency_energy_adjustment" yaml:"premium_efficiency_energy_adjustment"`
}

// DefaultRates returns the reference tariffs.
func DefaultRates() Rates {
	return Rates{
		TrainingFee:                       DefaultTrainingFee,
		CommissioningPerKg:                DefaultCommissioningPerKg,
		DisposalPerKg:                     DefaultDisposalPerKg,
		ServiceTierSmall:                  DefaultServiceTierSmall,
		ServiceTierMedium:                 DefaultServiceTierMedium,
		ServiceTierLarge:                  DefaultServiceTierLarge,
		SmallBowlLimitMM:                  DefaultSmallBowlLimitMM,
		MediumBowlLimitMM:                 DefaultMediumBowlLimitMM,
		FlatBeltServiceAdder:              DefaultFlatBeltServiceAdder,
		ServiceIntervalHours:              DefaultServiceIntervalHours,
		MinServicesPerYear:                DefaultMinServicesPerYear,
		FlatBeltEnergyAdjustment:          DefaultFlatBeltEnergyAdjustment,
		PremiumEfficiencyEnergyAdjustment: DefaultPremiumEfficiencyEnergyAdjustment,
	}
}

// Validate rejects tariffs that would make a calculator divide by zero or
// produce negative components.
func (r Rates) Validate() error {
	err := firstErr(
		nonNegative("training_fee", r.TrainingFee),
		nonNegative("commissioning_per_kg", r.CommissioningPerKg),
		nonNegative("disposal_per_kg", r.DisposalPerKg),
		nonNegative("service_tier_small", r.ServiceTierSmall),
		nonNegative("service_tier_medium", r.ServiceTierMedium),
		nonNegative("service_tier_large", r.ServiceTierLarge),
		nonNegative("small_bowl_limit_mm", r.SmallBowlLimitMM),
		nonNegative("medium_bowl_limit_mm", r.MediumBowlLimitMM),
		nonNegative("flat_belt_service_adder", r.FlatBeltServiceAdder),
		positive("service_interval_hours", r.ServiceIntervalHours),
		nonNegative("min_services_per_year", r.MinServicesPerYear),
		unitRate("flat_belt_energy_adjustment", r.FlatBeltEnergyAdjustment),
		unitRate("premium_efficiency_energy_adjustment", r.PremiumEfficiencyEnergyAdjustment),
	)
	if err != nil {
		return err
	}
	if r.SmallBowlLimitMM > r.MediumBowlLimitMM {
		return invalid("medium_bowl_limit_mm", fmt.Sprintf("must not be below small_bowl_limit_mm (%g), got %g", r.SmallBowlLimitMM, r.MediumBowlLimitMM))
	}
	return nil
}
