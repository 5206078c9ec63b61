package present

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"separator-tco-backend/internal/model"
	"separator-tco-backend/internal/projection"
	"separator-tco-backend/internal/tco"
)

func TestMoney(t *testing.T) {
	assert.Equal(t, "11428.56", Money(18.5*4000*0.99*0.156).String())
	assert.Equal(t, "0.1", Money(0.1).String())
	assert.Equal(t, "-12.35", Money(-12.345678).String())
}

func TestBreakdown(t *testing.T) {
	view := Breakdown("GFA 40-87-600", tco.TCOComponents{
		Acquisition:         45000,
		Commissioning:       5000,
		Operating:           21648,
		Maintenance:         7500,
		ProductionImpact:    458900,
		Disposal:            3000,
		EndOfLife:           300,
		TotalBeforeDiscount: 540748,
		DiscountAmount:      27037.4,
		TotalAfterDiscount:  513710.6,
	})

	require.Len(t, view.Rows, 7)
	codes := make([]string, len(view.Rows))
	for i, r := range view.Rows {
		codes[i] = r.Code
	}
	assert.Equal(t, []string{"Ca", "Cc", "Co", "Cm", "Cp", "Cd", "Ve"}, codes)

	assert.Equal(t, "8.3", view.Rows[0].Share.String())
	assert.Equal(t, "84.8", view.Rows[4].Share.String())
	assert.True(t, view.Rows[6].Credit)
	assert.True(t, view.Rows[6].Share.IsZero())
	assert.Equal(t, "513710.6", view.TotalAfterDiscount.String())

	raw, err := json.Marshal(view)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"totalBeforeDiscount":"540748"`)
}

func TestBreakdown_NoCosts(t *testing.T) {
	view := Breakdown("", tco.TCOComponents{EndOfLife: 10, TotalBeforeDiscount: -10, TotalAfterDiscount: -10})
	for _, r := range view.Rows {
		assert.True(t, r.Share.IsZero())
	}
	assert.Equal(t, "-10", view.TotalAfterDiscount.String())
}

func TestShortlist(t *testing.T) {
	rows := Shortlist([]model.Machine{
		{Name: "GFA 10-50-645", ListPrice: 79612, TotalOperationCosts: 3744, TotalMaintenanceCosts: 6369, TCO: 89725, Estimated: true},
		{ID: "m-1", Name: "GFA 10-43-210", ListPrice: 90000, TotalOperationCosts: 5000, TotalMaintenanceCosts: 7000, TCO: 102000},
	})

	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].Rank)
	assert.True(t, rows[0].DeltaToBest.IsZero())
	assert.Equal(t, 2, rows[1].Rank)
	assert.Equal(t, "12275", rows[1].DeltaToBest.String())
	assert.Equal(t, "m-1", rows[1].ID)
	assert.False(t, rows[1].Estimated)

	assert.Empty(t, Shortlist(nil))
}

func TestComparison(t *testing.T) {
	cheap := projection.Series{Label: "cheap", Months: []float64{100, 200, 300, 400}}
	efficient := projection.Series{Label: "efficient", Months: []float64{250, 280, 310, 340}}

	views := Comparison([]projection.Series{cheap, efficient})

	require.Len(t, views, 2)
	assert.Equal(t, "efficient", views[0].Label)
	require.NotNil(t, views[0].BreakEven)
	assert.Equal(t, 3, *views[0].BreakEven)
	assert.Nil(t, views[1].BreakEven)
	assert.Equal(t, "340", views[0].Total.String())

	assert.Empty(t, Comparison(nil))
}
