package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"separator-tco-backend/config"
	"separator-tco-backend/internal/catalog"
	"separator-tco-backend/internal/db"
	"separator-tco-backend/internal/model"
	"separator-tco-backend/internal/present"
	"separator-tco-backend/internal/ranking"
	"separator-tco-backend/internal/refresh"
	"separator-tco-backend/internal/store"
	"separator-tco-backend/internal/tco"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupRouter(t *testing.T) *gin.Engine {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.Migrate(gormDB))

	st := store.NewGormStore(gormDB)
	specs := catalog.Default()
	shortlists := refresh.NewService(config.RefreshConfig{Interval: time.Hour, Workers: 1}, st, specs, ranking.DefaultHeuristics(), 3)
	handler := NewHandler(st, shortlists, tco.Default(), specs, tco.DefaultAssumptions())
	return NewRouter(t.Context(), handler, config.ServerConfig{RateLimitPerSec: 1000, RateLimitBurst: 1000, CacheTTL: time.Minute})
}

func do(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		_ = json.NewEncoder(&buf).Encode(b)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func referenceMachine() tco.ComprehensiveMachine {
	return tco.ComprehensiveMachine{
		Name:          "GFA 40-87-600",
		Acquisition:   tco.AcquisitionCost{ListPriceEUR: 45000},
		Commissioning: tco.CommissioningCost{TotalWeightKg: 1000},
		Operating: tco.OperatingCost{
			PowerKW:              15,
			EnergyPrice:          0.156,
			WaterPrice:           1.60,
			HoursPerDay:          10,
			DaysPerWeek:          5,
			WeeksPerYear:         50,
			DriveType:            tco.DriveStandard,
			MotorEfficiencyClass: tco.EfficiencyIE2,
		},
		Maintenance:      tco.MaintenanceCost{BowlDiameterMM: 500, DriveType: tco.DriveStandard},
		ProductionImpact: tco.ProductionImpactCost{CleaningIntervalHours: 10},
		Disposal:         tco.DisposalCost{TotalWeightKg: 1000},
	}
}

func TestHealth(t *testing.T) {
	r := setupRouter(t)
	w := do(r, http.MethodGet, "/api/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","catalogEntries":6}`, w.Body.String())
}

func TestCalculateTCO(t *testing.T) {
	r := setupRouter(t)

	w := do(r, http.MethodPost, "/api/tco", referenceMachine())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp breakdownResponse
	decode(t, w, &resp)
	// 2500 h: energy 5850, maintenance max(2500/8000, 0.5) x 15000.
	assert.InDelta(t, 45000, resp.Components.Acquisition, 1e-9)
	assert.InDelta(t, 5000, resp.Components.Commissioning, 1e-9)
	assert.InDelta(t, 5850, resp.Components.Operating, 1e-9)
	assert.InDelta(t, 7500, resp.Components.Maintenance, 1e-9)
	assert.Len(t, resp.Breakdown.Rows, 7)
	assert.Equal(t, "GFA 40-87-600", resp.Breakdown.Name)
	assert.True(t, present.Money(resp.Components.TotalAfterDiscount).Equal(resp.Breakdown.TotalAfterDiscount))
}

func TestCalculateTCO_Rejects(t *testing.T) {
	r := setupRouter(t)

	negative := referenceMachine()
	negative.Acquisition.ListPriceEUR = -1
	badDrive := referenceMachine()
	badDrive.Operating.DriveType = "belt"

	testCases := []struct {
		name  string
		body  interface{}
		field string
	}{
		{name: "Empty body", body: nil},
		{name: "Malformed JSON", body: `{"name":`},
		{name: "Unknown field", body: `{"name":"x","colour":"red"}`},
		{name: "Negative price", body: negative, field: "acquisition.list_price_eur"},
		{name: "Unknown drive", body: badDrive, field: "operating.drive_type"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(r, http.MethodPost, "/api/tco", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			var resp map[string]string
			decode(t, w, &resp)
			assert.NotEmpty(t, resp["error"])
			assert.Equal(t, tc.field, resp["field"])
		})
	}
}

func TestCatalog(t *testing.T) {
	r := setupRouter(t)

	var all struct {
		Items []catalog.Specification `json:"items"`
		Total int                     `json:"total"`
	}
	w := do(r, http.MethodGet, "/api/catalog", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &all)
	assert.Equal(t, 6, all.Total)

	w = do(r, http.MethodGet, "/api/catalog?application=CITRUS", nil)
	decode(t, w, &all)
	assert.Equal(t, 2, all.Total)

	w = do(r, http.MethodGet, "/api/catalog/GFA%2010-43-210/breakdown?energy_price=0.2&training=true", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp breakdownResponse
	decode(t, w, &resp)
	assert.Equal(t, "GFA 10-43-210", resp.Breakdown.Name)
	spec, _ := catalog.Find(catalog.Default(), "GFA 10-43-210")
	assert.InDelta(t, 5*spec.TotalWeightKg+10000, resp.Components.Commissioning, 1e-9)

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/api/catalog/GFA%2010-43-210/breakdown?energy_price=abc", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/api/catalog/GFA%2010-43-210/breakdown?discount_rate=2", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/api/catalog/GFA%209/breakdown", nil).Code)
}

func TestProjectWorkflow(t *testing.T) {
	r := setupRouter(t)

	var projects []model.Project
	decode(t, do(r, http.MethodGet, "/api/projects", nil), &projects)
	assert.Empty(t, projects)

	w := do(r, http.MethodPost, "/api/projects", map[string]interface{}{
		"projectName":     "Riesling line",
		"application":     "Wine",
		"capacityPerDay":  20000,
		"workdaysPerWeek": 5,
		"years":           5,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var project model.Project
	decode(t, w, &project)
	require.NotEmpty(t, project.ID)

	// The cached empty list must not survive the write.
	decode(t, do(r, http.MethodGet, "/api/projects", nil), &projects)
	assert.Len(t, projects, 1)

	assert.Equal(t, http.StatusConflict, do(r, http.MethodPost, "/api/projects", map[string]string{"projectName": "Riesling line"}).Code)
	w = do(r, http.MethodPost, "/api/projects", map[string]string{"projectName": " "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"projectName"`)

	base := "/api/projects/" + project.ID
	w = do(r, http.MethodPost, base+"/machines", map[string]interface{}{
		"name":                  "GFA 10-43-210",
		"listPrice":             90000,
		"totalOperationCosts":   5000,
		"totalMaintenanceCosts": 7000,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var machine model.Machine
	decode(t, w, &machine)
	assert.Equal(t, 102000.0, machine.TCO)

	var shortlist struct {
		Items []present.ShortlistRow `json:"items"`
	}
	w = do(r, http.MethodGet, base+"/shortlist", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decode(t, w, &shortlist)
	require.Len(t, shortlist.Items, 3)
	assert.Equal(t, "GFA 10-50-645", shortlist.Items[0].Name)
	assert.Equal(t, "GFA 10-43-210", shortlist.Items[1].Name)
	assert.False(t, shortlist.Items[1].Estimated)
	assert.Equal(t, "12275", shortlist.Items[1].DeltaToBest.String())

	var stored struct {
		Items      []present.ShortlistRow `json:"items"`
		ComputedAt time.Time              `json:"computedAt"`
	}
	w = do(r, http.MethodGet, base+"/shortlist/stored", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decode(t, w, &stored)
	require.Len(t, stored.Items, len(shortlist.Items))
	for i, row := range stored.Items {
		assert.Equal(t, shortlist.Items[i].Name, row.Name)
		assert.True(t, shortlist.Items[i].TCO.Equal(row.TCO), row.Name)
	}
	assert.False(t, stored.ComputedAt.IsZero())

	decode(t, do(r, http.MethodGet, base+"/shortlist?n=0", nil), &shortlist)
	assert.Empty(t, shortlist.Items)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, base+"/shortlist?n=many", nil).Code)

	w = do(r, http.MethodGet, base+"/compare", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var compare struct {
		Years   int                  `json:"years"`
		Series  []present.SeriesView `json:"series"`
		Skipped []string             `json:"skipped"`
	}
	decode(t, w, &compare)
	assert.Equal(t, 5, compare.Years)
	require.Len(t, compare.Series, 3)
	assert.Empty(t, compare.Skipped)
	for _, s := range compare.Series {
		assert.Len(t, s.Months, 61)
	}
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, base+"/compare?years=0", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, base+"/compare?years=31", nil).Code)

	w = do(r, http.MethodPost, base+"/refresh", nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, http.StatusNoContent, do(r, http.MethodDelete, base+"/machines/"+machine.ID, nil).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodDelete, base+"/machines/"+machine.ID, nil).Code)

	decode(t, do(r, http.MethodGet, base+"/shortlist", nil), &shortlist)
	for _, row := range shortlist.Items {
		assert.True(t, row.Estimated, row.Name)
	}

	assert.Equal(t, http.StatusNoContent, do(r, http.MethodDelete, base, nil).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, base, nil).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, base+"/shortlist", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, base+"/shortlist/stored", nil).Code)
}

func TestUnknownProject(t *testing.T) {
	r := setupRouter(t)
	base := "/api/projects/" + uuid.NewString()

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, base, nil).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, base+"/compare", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodPost, base+"/machines", map[string]interface{}{"name": "X", "listPrice": 1}).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, base+"/machines", map[string]interface{}{"name": "", "listPrice": 1}).Code)
}

func TestWriteError(t *testing.T) {
	testCases := []struct {
		err  error
		code int
	}{
		{err: &tco.ValidationError{Field: "x", Reason: "bad"}, code: http.StatusBadRequest},
		{err: fmt.Errorf("wrapped: %w", store.ErrNotFound), code: http.StatusNotFound},
		{err: store.ErrDuplicate, code: http.StatusConflict},
		{err: context.DeadlineExceeded, code: http.StatusInternalServerError},
	}
	for _, tc := range testCases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		writeError(c, tc.err)
		assert.Equal(t, tc.code, w.Code, tc.err.Error())
	}
}
