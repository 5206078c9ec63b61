package projection

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"separator-tco-backend/internal/tco"
)

func machine() tco.ComprehensiveMachine {
	return tco.ComprehensiveMachine{
		Name:          "GFA 40-87-600",
		Acquisition:   tco.AcquisitionCost{ListPriceEUR: 45000},
		Commissioning: tco.CommissioningCost{TotalWeightKg: 1000},
		Operating: tco.OperatingCost{
			PowerKW:                  15,
			EnergyPrice:              0.156,
			WaterLitersPerSecond:     0.5,
			WaterPerEjectionLiters:   2,
			WaterPrice:               1.60,
			HoursPerDay:              10,
			DaysPerWeek:              6,
			WeeksPerYear:             52,
			DriveType:                tco.DriveStandard,
			MotorEfficiencyClass:     tco.EfficiencyIE3,
			NumberOfEjectionsPerHour: 60,
		},
		Maintenance: tco.MaintenanceCost{BowlDiameterMM: 500, DriveType: tco.DriveStandard},
		ProductionImpact: tco.ProductionImpactCost{
			CleaningIntervalHours: 10,
			CleaningTimeHours:     2,
			BowlVolumeLiters:      50,
			CleaningMediaPrice:    1.5,
		},
		Disposal:  tco.DisposalCost{TotalWeightKg: 1000},
		EndOfLife: tco.EndOfLifeValue{ResidualWeightKg: 500, ScrapValueRate: 0.6},
	}
}

func TestProject(t *testing.T) {
	s, err := Project(tco.Default(), machine(), 2)
	require.NoError(t, err)

	require.Len(t, s.Months, 25)
	assert.Equal(t, "GFA 40-87-600", s.Label)
	assert.InDelta(t, 50000, s.Months[0], 1e-6)

	// 260 h per month, 26 cleanings leave 208 productive hours.
	monthly := 26*75 + 208*(15*0.156+0.5*3600*0.0016+2*60*0.0016)
	assert.InDelta(t, 50000+monthly, s.Months[1], 1e-6)

	assert.Equal(t, 624, s.Cleanings)
	assert.Equal(t, 1, s.Services, "the 24 month trigger fires before 8000 h")
	assert.InDelta(t, 15000, s.Maintenance, 1e-6)
	assert.InDelta(t, 50000+24*monthly+15000, s.Total(), 1e-6)
	assert.InDelta(t, s.Acquisition+s.Commissioning+s.Operating+s.Maintenance, s.Total(), 1e-6)

	for i := 1; i < len(s.Months); i++ {
		assert.GreaterOrEqual(t, s.Months[i], s.Months[i-1])
	}
}

func TestProject_HourTriggeredService(t *testing.T) {
	m := machine()
	m.Operating.HoursPerDay = 24
	m.Operating.DaysPerWeek = 7
	m.ProductionImpact.CleaningIntervalHours = 8
	m.ProductionImpact.CleaningTimeHours = 1
	m.Maintenance.DriveType = tco.DriveFlatBelt
	m.Operating.DriveType = tco.DriveFlatBelt

	s, err := Project(tco.Default(), m, 2)
	require.NoError(t, err)

	// 637 productive hours a month reach 8000 h during month 13.
	assert.Equal(t, 1, s.Services)
	assert.InDelta(t, 17000, s.Maintenance, 1e-6)
	step := func(i int) float64 { return s.Months[i] - s.Months[i-1] }
	assert.InDelta(t, 17000, step(13)-step(12), 1e-6)
}

func TestProject_MatchesAnnualOperatingCost(t *testing.T) {
	m := machine()
	m.ProductionImpact.CleaningIntervalHours = 1e6

	s, err := Project(tco.Default(), m, 1)
	require.NoError(t, err)
	annual, err := tco.CalculateOperatingCost(m.Operating)
	require.NoError(t, err)

	assert.Equal(t, 0, s.Cleanings)
	assert.InDelta(t, annual, s.Operating, 1e-6)
	assert.InDelta(t, annual/12, s.Months[1]-s.Months[0], 1e-6)
}

func TestProject_Errors(t *testing.T) {
	_, err := Project(tco.Default(), machine(), 0)
	var verr *tco.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "years", verr.Field)

	m := machine()
	m.ProductionImpact.CleaningIntervalHours = 0
	_, err = Project(tco.Default(), m, 1)
	assert.ErrorIs(t, err, tco.ErrValidation)
}

func TestRankAndBreakEven(t *testing.T) {
	cheapUpfront := Series{Label: "cheap", Months: []float64{100, 200, 300, 400}}
	efficient := Series{Label: "efficient", Months: []float64{250, 280, 310, 340}}
	same := Series{Label: "alpha", Months: []float64{0, 340}}

	ranked := Rank([]Series{cheapUpfront, efficient, same})
	assert.Equal(t, []string{"alpha", "efficient", "cheap"}, []string{ranked[0].Label, ranked[1].Label, ranked[2].Label})

	month, ok := BreakEven(efficient, cheapUpfront)
	require.True(t, ok)
	assert.Equal(t, 3, month)

	_, ok = BreakEven(cheapUpfront, efficient)
	assert.False(t, ok)

	month, ok = BreakEven(cheapUpfront, cheapUpfront)
	require.True(t, ok)
	assert.Equal(t, 0, month)
}
