package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"separator-tco-backend/internal/catalog"
	"separator-tco-backend/internal/model"
)

func names(ms []model.Machine) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.Name
	}
	return out
}

func assertShortlist(t *testing.T, got []model.Machine) {
	t.Helper()
	seen := map[string]bool{}
	for i, m := range got {
		assert.False(t, seen[m.Name], "duplicate name %q", m.Name)
		seen[m.Name] = true
		assert.Equal(t, m.ComputeTCO(), m.TCO, "stale tco for %q", m.Name)
		if i > 0 {
			assert.LessOrEqual(t, got[i-1].TCO, m.TCO)
		}
	}
}

func TestSynthesize(t *testing.T) {
	testCases := []struct {
		model       string
		operation   float64
		maintenance float64
		tco         float64
	}{
		{model: "GFA 10-50-645", operation: 3744, maintenance: 6369, tco: 89725},
		{model: "GFA 10-43-210", operation: 3744, maintenance: 6672, tco: 93813},
		{model: "GFA 100-69-357", operation: 22464, maintenance: 18726, tco: 275260},
		{model: "GFA 200-98-270", operation: 27456, maintenance: 24570, tco: 359154},
		{model: "GFA 200-69-517", operation: 27456, maintenance: 27113, tco: 393486},
		{model: "GFA 200-30-820", operation: 27456, maintenance: 27541, tco: 399258},
	}

	h := DefaultHeuristics()
	for _, tc := range testCases {
		t.Run(tc.model, func(t *testing.T) {
			spec, ok := catalog.Find(catalog.Default(), tc.model)
			require.True(t, ok)

			m := h.Synthesize(spec)
			assert.Equal(t, tc.model, m.Name)
			assert.Equal(t, tc.operation, m.TotalOperationCosts)
			assert.Equal(t, tc.maintenance, m.TotalMaintenanceCosts)
			assert.Equal(t, tc.tco, m.TCO)
			assert.True(t, m.Estimated)
		})
	}
}

func TestSelectTopN_ExcludesQuotedModel(t *testing.T) {
	project := model.Project{
		ID:   "p-1",
		Name: "Sparkling line",
		Machines: []model.Machine{
			{ID: "m-1", ProjectID: "p-1", Name: "GFA 10-43-210", ListPrice: 90000, TotalOperationCosts: 5000, TotalMaintenanceCosts: 7000},
		},
	}

	got := SelectTopNDefault(project, catalog.Default(), 3)

	require.Len(t, got, 3)
	assertShortlist(t, got)
	assert.Equal(t, []string{"GFA 10-50-645", "GFA 10-43-210", "GFA 200-98-270"}, names(got))

	quoted := got[1]
	assert.False(t, quoted.Estimated, "the quoted machine is the project's own, not a catalog estimate")
	assert.Equal(t, "m-1", quoted.ID)
	assert.Equal(t, 102000.0, quoted.TCO)

	for _, m := range got {
		if m.Estimated {
			assert.NotEqual(t, "GFA 10-43-210", m.Name)
			assert.Equal(t, "p-1", m.ProjectID)
		}
	}
}

func TestSelectTopN_SeedsBeforeBackfill(t *testing.T) {
	got := SelectTopNDefault(model.Project{}, catalog.Default(), 6)

	require.Len(t, got, 6)
	assertShortlist(t, got)
	assert.Equal(t, []string{
		"GFA 10-50-645",
		"GFA 10-43-210",
		"GFA 100-69-357",
		"GFA 200-98-270",
		"GFA 200-69-517",
		"GFA 200-30-820",
	}, names(got))

	// Five application seeds exceed n, so the second Citrus model never
	// competes even though it is cheaper than three of the seeds.
	got = SelectTopNDefault(model.Project{}, catalog.Default(), 4)
	assert.Equal(t, []string{"GFA 10-50-645", "GFA 10-43-210", "GFA 200-98-270", "GFA 200-69-517"}, names(got))
}

func TestSelectTopN_Boundaries(t *testing.T) {
	project := model.Project{Machines: []model.Machine{{Name: "Own", ListPrice: 10}}}

	testCases := []struct {
		name    string
		project model.Project
		specs   []catalog.Specification
		n       int
		length  int
	}{
		{name: "Zero n", project: project, specs: catalog.Default(), n: 0, length: 0},
		{name: "Negative n", project: project, specs: catalog.Default(), n: -2, length: 0},
		{name: "Nothing available", project: model.Project{}, specs: nil, n: 3, length: 0},
		{name: "Only project machines", project: project, specs: nil, n: 3, length: 1},
		{name: "More requested than available", project: project, specs: catalog.Default(), n: 50, length: 7},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := SelectTopNDefault(tc.project, tc.specs, tc.n)
			require.NotNil(t, got)
			assert.Len(t, got, tc.length)
			assertShortlist(t, got)
		})
	}
}

func TestSelectTopN_RecomputesStaleMachines(t *testing.T) {
	project := model.Project{Machines: []model.Machine{
		{Name: "Stale", ListPrice: 1000, TotalOperationCosts: 100, TotalMaintenanceCosts: 10, TCO: 1},
		{Name: "Fresh", ListPrice: 500, TCO: 500},
	}}

	got := SelectTopNDefault(project, nil, 2)

	require.Len(t, got, 2)
	assert.Equal(t, []string{"Fresh", "Stale"}, names(got))
	assert.Equal(t, 1110.0, got[1].TCO)
	assert.Equal(t, 1.0, project.Machines[0].TCO, "input must not be modified")
}

func TestSelectTopN_TieBreakAndDedupe(t *testing.T) {
	specs := []catalog.Specification{
		{ModelNumber: "B", Application: "Wine", ListPrice: 1000},
		{ModelNumber: "A", Application: "Tea", ListPrice: 1000},
		{ModelNumber: "A", Application: "Beer", ListPrice: 5000},
		{ModelNumber: "C", Application: "Other", ListPrice: 100},
	}

	got := SelectTopNDefault(model.Project{}, specs, 10)

	assert.Equal(t, []string{"C", "A", "B"}, names(got))
	assert.Equal(t, 1080.0, got[1].TCO, "the cheaper duplicate wins")
	assertShortlist(t, got)
}

func TestSelectTopN_DuplicateModelsFillShortlist(t *testing.T) {
	tieFixture := []catalog.Specification{
		{ModelNumber: "B", Application: "Wine", ListPrice: 1000},
		{ModelNumber: "A", Application: "Tea", ListPrice: 1000},
		{ModelNumber: "A", Application: "Beer", ListPrice: 5000},
		{ModelNumber: "C", Application: "Other", ListPrice: 100},
	}

	testCases := []struct {
		name  string
		specs []catalog.Specification
		n     int
		want  []string
		tco   map[string]float64
	}{
		{
			name:  "Seeded duplicate",
			specs: tieFixture,
			n:     3,
			want:  []string{"C", "A", "B"},
			tco:   map[string]float64{"A": 1080},
		},
		{
			name:  "Backfilled duplicate",
			specs: []catalog.Specification{{ModelNumber: "X", ListPrice: 10}, {ModelNumber: "X", ListPrice: 20}, {ModelNumber: "Y", ListPrice: 30}},
			n:     2,
			want:  []string{"X", "Y"},
			tco:   map[string]float64{"X": 11},
		},
		{
			name:  "Cheaper duplicate later in the catalog",
			specs: []catalog.Specification{{ModelNumber: "X", ListPrice: 5000}, {ModelNumber: "Y", ListPrice: 3000}, {ModelNumber: "X", ListPrice: 1000}},
			n:     2,
			want:  []string{"X", "Y"},
			tco:   map[string]float64{"X": 1080, "Y": 3240},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := SelectTopNDefault(model.Project{}, tc.specs, tc.n)
			assert.Equal(t, tc.want, names(got))
			assertShortlist(t, got)
			for _, m := range got {
				if want, ok := tc.tco[m.Name]; ok {
					assert.InDelta(t, want, m.TCO, 1e-9, m.Name)
				}
			}
		})
	}
}

func TestSelectTopN_Idempotent(t *testing.T) {
	project := model.Project{Machines: []model.Machine{{Name: "GFA 200-30-820", ListPrice: 300000}}}
	specs := catalog.Default()

	first := SelectTopNDefault(project, specs, 3)
	second := SelectTopNDefault(project, specs, 3)
	assert.Equal(t, first, second)
	assert.Equal(t, catalog.Default(), specs, "catalog must not be modified")
}

func TestSelectTopN_CustomHeuristics(t *testing.T) {
	h := Heuristics{
		EnergyRatePerKWh:      0.30,
		AnnualHours:           1000,
		MaintenanceShare:      0,
		PreferredApplications: []string{"fruit-juice"},
	}
	specs := catalog.Default()

	got := SelectTopN(model.Project{}, specs, 1, h)

	require.Len(t, got, 1)
	assert.Equal(t, "GFA 200-69-517", got[0].Name, "the only seed is the Fruit Juice model")
	assert.Equal(t, 13200.0, got[0].TotalOperationCosts)
	assert.Equal(t, 0.0, got[0].TotalMaintenanceCosts)
}
