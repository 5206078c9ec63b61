// Package projection spreads a machine's lifecycle costs over time as a
// month-by-month cumulative series.
package projection

import (
	"fmt"
	"math"
	"sort"

	"separator-tco-backend/internal/tco"
)

// ServiceIntervalMonths forces a service after this many months even when
// the hour threshold has not been reached.
const ServiceIntervalMonths = 24

// Series is the cumulative cost of one machine. Months[0] holds the upfront
// costs and Months[i] the running total after month i.
type Series struct {
	Label         string    `json:"label"`
	Months        []float64 `json:"months"`
	Acquisition   float64   `json:"Ca"`
	Commissioning float64   `json:"Cc"`
	Operating     float64   `json:"Co"`
	Maintenance   float64   `json:"Cm"`
	Services      int       `json:"services"`
	Cleanings     int       `json:"cleanings"`
}

// Total returns the cumulative cost at the end of the series.
func (s Series) Total() float64 {
	if len(s.Months) == 0 {
		return 0
	}
	return s.Months[len(s.Months)-1]
}

// Project builds the series for m over the given number of years.
//
// Each month accrues cleaning cycles every CleaningIntervalHours of running
// time; every cycle costs bowl volume times media price and takes
// CleaningTimeHours off the productive hours. Energy and water are charged
// on the remaining hours. A service is charged once the accumulated
// productive hours reach the service interval or ServiceIntervalMonths have
// passed, whichever comes first.
func Project(c *tco.Calculator, m tco.ComprehensiveMachine, years int) (Series, error) {
	if err := m.Validate(); err != nil {
		return Series{}, err
	}
	if years <= 0 {
		return Series{}, &tco.ValidationError{Field: "years", Reason: fmt.Sprintf("must be greater than zero, got %d", years)}
	}

	rates := c.Rates()
	op := m.Operating
	pi := m.ProductionImpact

	perLiter := op.WaterPrice / tco.LitersPerCubicMeter
	hourlyRunning := op.PowerKW*c.EnergyMultiplier(op.DriveType, op.MotorEfficiencyClass)*op.EnergyPrice +
		op.WaterLitersPerSecond*tco.SecondsPerHour*perLiter +
		op.WaterPerEjectionLiters*op.NumberOfEjectionsPerHour*perLiter
	cleaningCycle := pi.BowlVolumeLiters * pi.CleaningMediaPrice
	service := c.ServiceTier(m.Maintenance.BowlDiameterMM)
	if m.Maintenance.DriveType == tco.DriveFlatBelt {
		service += rates.FlatBeltServiceAdder
	}

	s := Series{
		Label:         m.Name,
		Months:        make([]float64, 0, years*12+1),
		Acquisition:   m.Acquisition.ListPriceEUR,
		Commissioning: rates.CommissioningPerKg * m.Commissioning.TotalWeightKg,
	}
	if m.Commissioning.NeedsTraining {
		s.Commissioning += rates.TrainingFee
	}
	s.Months = append(s.Months, s.Acquisition+s.Commissioning)

	hoursPerMonth := op.Hours() / 12
	var sinceCleaning, sinceService float64
	monthsSinceService := 0

	for month := 1; month <= years*12; month++ {
		productive := hoursPerMonth

		sinceCleaning += hoursPerMonth
		for sinceCleaning >= pi.CleaningIntervalHours {
			s.Operating += cleaningCycle
			s.Cleanings++
			sinceCleaning -= pi.CleaningIntervalHours
			productive -= pi.CleaningTimeHours
		}
		productive = math.Max(productive, 0)

		s.Operating += hourlyRunning * productive

		sinceService += productive
		monthsSinceService++
		if sinceService >= rates.ServiceIntervalHours || monthsSinceService >= ServiceIntervalMonths {
			s.Maintenance += service
			s.Services++
			sinceService = 0
			monthsSinceService = 0
		}

		s.Months = append(s.Months, s.Acquisition+s.Commissioning+s.Operating+s.Maintenance)
	}
	return s, nil
}

// Rank orders series by ascending final total, ties broken by label.
func Rank(series []Series) []Series {
	out := append([]Series(nil), series...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Total() != out[j].Total() {
			return out[i].Total() < out[j].Total()
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// BreakEven returns the first month from which a stays at or below b for
// the rest of the horizon. ok is false when a ends above b.
func BreakEven(a, b Series) (month int, ok bool) {
	n := len(a.Months)
	if len(b.Months) < n {
		n = len(b.Months)
	}
	if n == 0 || a.Months[n-1] > b.Months[n-1] {
		return 0, false
	}
	month = n - 1
	for month > 0 && a.Months[month-1] <= b.Months[month-1] {
		month--
	}
	return month, true
}
