// Package present turns engine results into display-ready records with
// amounts rounded to cents.
package present

import (
	"github.com/shopspring/decimal"

	"separator-tco-backend/internal/model"
	"separator-tco-backend/internal/projection"
	"separator-tco-backend/internal/tco"
)

var hundred = decimal.NewFromInt(100)

// Money rounds an amount to cents.
func Money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

// Row is one line of a cost breakdown.
type Row struct {
	Code   string          `json:"code"`
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
	Credit bool            `json:"credit,omitempty"`
	// Share is the percentage of the sum of all cost rows. Credits have none.
	Share decimal.Decimal `json:"share"`
}

// BreakdownView is a TCO breakdown ready for display.
type BreakdownView struct {
	Name                string          `json:"name,omitempty"`
	Rows                []Row           `json:"rows"`
	TotalBeforeDiscount decimal.Decimal `json:"totalBeforeDiscount"`
	DiscountAmount      decimal.Decimal `json:"discountAmount"`
	TotalAfterDiscount  decimal.Decimal `json:"totalAfterDiscount"`
}

// Breakdown lays out the seven components in lifecycle order.
func Breakdown(name string, c tco.TCOComponents) BreakdownView {
	rows := []Row{
		{Code: "Ca", Label: "Acquisition", Amount: Money(c.Acquisition)},
		{Code: "Cc", Label: "Commissioning", Amount: Money(c.Commissioning)},
		{Code: "Co", Label: "Operating", Amount: Money(c.Operating)},
		{Code: "Cm", Label: "Maintenance", Amount: Money(c.Maintenance)},
		{Code: "Cp", Label: "Production impact", Amount: Money(c.ProductionImpact)},
		{Code: "Cd", Label: "Disposal", Amount: Money(c.Disposal)},
		{Code: "Ve", Label: "End-of-life value", Amount: Money(c.EndOfLife), Credit: true},
	}

	costs := decimal.Zero
	for _, r := range rows {
		if !r.Credit {
			costs = costs.Add(r.Amount)
		}
	}
	for i := range rows {
		rows[i].Share = decimal.Zero
		if !rows[i].Credit && costs.IsPositive() {
			rows[i].Share = rows[i].Amount.Mul(hundred).Div(costs).Round(1)
		}
	}

	return BreakdownView{
		Name:                name,
		Rows:                rows,
		TotalBeforeDiscount: Money(c.TotalBeforeDiscount),
		DiscountAmount:      Money(c.DiscountAmount),
		TotalAfterDiscount:  Money(c.TotalAfterDiscount),
	}
}

// ShortlistRow is one ranked machine.
type ShortlistRow struct {
	Rank                  int             `json:"rank"`
	ID                    string          `json:"id,omitempty"`
	Name                  string          `json:"name"`
	ListPrice             decimal.Decimal `json:"listPrice"`
	TotalOperationCosts   decimal.Decimal `json:"totalOperationCosts"`
	TotalMaintenanceCosts decimal.Decimal `json:"totalMaintenanceCosts"`
	TCO                   decimal.Decimal `json:"tco"`
	DeltaToBest           decimal.Decimal `json:"deltaToBest"`
	Estimated             bool            `json:"estimated"`
}

// Shortlist numbers an already ordered shortlist and adds each machine's
// distance to the first one.
func Shortlist(ms []model.Machine) []ShortlistRow {
	rows := make([]ShortlistRow, 0, len(ms))
	best := decimal.Zero
	for i, m := range ms {
		tcoAmount := Money(m.TCO)
		if i == 0 {
			best = tcoAmount
		}
		rows = append(rows, ShortlistRow{
			Rank:                  i + 1,
			ID:                    m.ID,
			Name:                  m.Name,
			ListPrice:             Money(m.ListPrice),
			TotalOperationCosts:   Money(m.TotalOperationCosts),
			TotalMaintenanceCosts: Money(m.TotalMaintenanceCosts),
			TCO:                   tcoAmount,
			DeltaToBest:           tcoAmount.Sub(best),
			Estimated:             m.Estimated,
		})
	}
	return rows
}

// SeriesView is a projection with rounded monthly totals.
type SeriesView struct {
	Label         string            `json:"label"`
	Months        []decimal.Decimal `json:"months"`
	Total         decimal.Decimal   `json:"total"`
	Acquisition   decimal.Decimal   `json:"Ca"`
	Commissioning decimal.Decimal   `json:"Cc"`
	Operating     decimal.Decimal   `json:"Co"`
	Maintenance   decimal.Decimal   `json:"Cm"`
	Services      int               `json:"services"`
	BreakEven     *int              `json:"breakEvenMonth,omitempty"`
}

// Series rounds a projection for display.
func Series(s projection.Series) SeriesView {
	months := make([]decimal.Decimal, len(s.Months))
	for i, v := range s.Months {
		months[i] = Money(v)
	}
	return SeriesView{
		Label:         s.Label,
		Months:        months,
		Total:         Money(s.Total()),
		Acquisition:   Money(s.Acquisition),
		Commissioning: Money(s.Commissioning),
		Operating:     Money(s.Operating),
		Maintenance:   Money(s.Maintenance),
		Services:      s.Services,
	}
}

// Comparison ranks projections and marks, for every other machine, the
// month from which it stays below the machine with the lowest upfront cost.
func Comparison(series []projection.Series) []SeriesView {
	ranked := projection.Rank(series)
	if len(ranked) == 0 {
		return []SeriesView{}
	}

	cheapestUpfront := ranked[0]
	for _, s := range ranked[1:] {
		if len(s.Months) > 0 && len(cheapestUpfront.Months) > 0 && s.Months[0] < cheapestUpfront.Months[0] {
			cheapestUpfront = s
		}
	}

	views := make([]SeriesView, len(ranked))
	for i, s := range ranked {
		views[i] = Series(s)
		if s.Label == cheapestUpfront.Label {
			continue
		}
		if month, ok := projection.BreakEven(s, cheapestUpfront); ok {
			m := month
			views[i].BreakEven = &m
		}
	}
	return views
}
