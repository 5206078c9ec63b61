// Package ranking builds cost-ordered machine shortlists for a project.
package ranking

import (
	"math"
	"sort"

	"separator-tco-backend/internal/catalog"
	"separator-tco-backend/internal/model"
	"separator-tco-backend/internal/parse"
)

// Reference figures used to estimate catalog candidates that have no
// project-specific cost history.
const (
	DefaultEnergyRatePerKWh = 0.156
	DefaultAnnualHours      = 4000.0
	DefaultMaintenanceShare = 0.08
)

// DefaultPreferredApplications is the order in which application tags are
// represented in a shortlist.
var DefaultPreferredApplications = []string{"Wine", "Tea", "Citrus", "Beer", "Fruit Juice"}

// Heuristics configures candidate synthesis and diversity seeding.
type Heuristics struct {
	EnergyRatePerKWh      float64  `json:"energy_rate_per_kwh" yaml:"energy_rate_per_kwh"`
	AnnualHours           float64  `json:"annual_hours" yaml:"annual_hours"`
	MaintenanceShare      float64  `json:"maintenance_share" yaml:"maintenance_share"`
	PreferredApplications []string `json:"preferred_applications" yaml:"preferred_applications"`
}

// DefaultHeuristics returns the reference heuristics.
func DefaultHeuristics() Heuristics {
	return Heuristics{
		EnergyRatePerKWh:      DefaultEnergyRatePerKWh,
		AnnualHours:           DefaultAnnualHours,
		MaintenanceShare:      DefaultMaintenanceShare,
		PreferredApplications: append([]string(nil), DefaultPreferredApplications...),
	}
}

// Synthesize estimates annual costs for a catalog entry.
func (h Heuristics) Synthesize(s catalog.Specification) model.Machine {
	m := model.Machine{
		Name:                  s.ModelNumber,
		ListPrice:             s.ListPrice,
		TotalOperationCosts:   math.Round(s.PowerKW() * h.EnergyRatePerKWh * h.AnnualHours),
		TotalMaintenanceCosts: math.Round(h.MaintenanceShare * s.ListPrice),
		Estimated:             true,
	}
	return m.Recomputed()
}

// SelectTopN returns at most n machines ordered by ascending TCO, ties
// broken by name. Catalog entries already quoted for the project are left
// out, one entry per preferred application is considered before the rest of
// the catalog, and the project's own machines compete with their TCO
// recomputed. Catalog entries sharing a model number count once, as the
// cheapest of them. Names never repeat and the result is never padded.
//
// SelectTopN does not modify its inputs and returns the same result for the
// same arguments.
func SelectTopN(project model.Project, specs []catalog.Specification, n int, h Heuristics) []model.Machine {
	if n <= 0 {
		return []model.Machine{}
	}

	candidates := candidatesFor(specs, project.Machines, h)
	picked := backfill(seed(candidates, h.PreferredApplications), len(candidates), n)

	merged := make([]model.Machine, 0, len(picked)+len(project.Machines))
	for _, i := range picked {
		estimate := h.Synthesize(candidates[i])
		estimate.ProjectID = project.ID
		merged = append(merged, estimate)
	}
	for _, m := range project.Machines {
		merged = append(merged, m.Recomputed())
	}

	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].TCO != merged[j].TCO {
			return merged[i].TCO < merged[j].TCO
		}
		return merged[i].Name < merged[j].Name
	})

	return firstUnique(merged, n)
}

// SelectTopNDefault runs SelectTopN with DefaultHeuristics.
func SelectTopNDefault(project model.Project, specs []catalog.Specification, n int) []model.Machine {
	return SelectTopN(project, specs, n, DefaultHeuristics())
}

// candidatesFor drops catalog entries already quoted for the project and
// keeps one entry per model number, at the position of its first
// occurrence. Of several entries with the same model number the one with
// the lowest estimated TCO wins, the earlier one on a tie.
func candidatesFor(specs []catalog.Specification, quoted []model.Machine, h Heuristics) []catalog.Specification {
	names := make(map[string]struct{}, len(quoted))
	for _, m := range quoted {
		names[m.Name] = struct{}{}
	}
	at := make(map[string]int, len(specs))
	out := make([]catalog.Specification, 0, len(specs))
	for _, s := range specs {
		if _, ok := names[s.ModelNumber]; ok {
			continue
		}
		if i, dup := at[s.ModelNumber]; dup {
			if h.Synthesize(s).TCO < h.Synthesize(out[i]).TCO {
				out[i] = s
			}
			continue
		}
		at[s.ModelNumber] = len(out)
		out = append(out, s)
	}
	return out
}

// seed picks, in preference order, the first candidate of each application.
// Tags without a candidate are skipped.
func seed(candidates []catalog.Specification, preferred []string) []int {
	picked := []int{}
	for _, app := range preferred {
		if i, ok := firstOfApplication(candidates, app, picked); ok {
			picked = appendIndex(picked, i)
		}
	}
	return picked
}

func firstOfApplication(candidates []catalog.Specification, app string, picked []int) (int, bool) {
	want := parse.Header(app)
	for i, s := range candidates {
		if parse.Header(s.Application) == want && !contains(picked, i) {
			return i, true
		}
	}
	return 0, false
}

// backfill tops picked up to n with the remaining candidates in catalog order.
func backfill(picked []int, total, n int) []int {
	for i := 0; i < total && len(picked) < n; i++ {
		if !contains(picked, i) {
			picked = appendIndex(picked, i)
		}
	}
	return picked
}

func firstUnique(sorted []model.Machine, n int) []model.Machine {
	seen := make(map[string]struct{}, len(sorted))
	out := make([]model.Machine, 0, n)
	for _, m := range sorted {
		if len(out) == n {
			break
		}
		if _, dup := seen[m.Name]; dup {
			continue
		}
		seen[m.Name] = struct{}{}
		out = append(out, m)
	}
	return out
}

// appendIndex returns a new slice, leaving picked untouched.
func appendIndex(picked []int, i int) []int {
	out := make([]int, len(picked), len(picked)+1)
	copy(out, picked)
	return append(out, i)
}

func contains(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
