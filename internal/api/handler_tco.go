package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"separator-tco-backend/internal/catalog"
	"separator-tco-backend/internal/parse"
	"separator-tco-backend/internal/present"
	"separator-tco-backend/internal/tco"
)

type breakdownResponse struct {
	Components tco.TCOComponents     `json:"components"`
	Breakdown  present.BreakdownView `json:"breakdown"`
}

// CalculateTCO handles POST /api/tco. The body is a full machine parameter
// set; unknown fields are rejected.
func (h *Handler) CalculateTCO(c *gin.Context) {
	var m tco.ComprehensiveMachine
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&m); err != nil {
		msg := err.Error()
		if errors.Is(err, io.EOF) {
			msg = "request body is empty"
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	comps, err := h.calc.Comprehensive(m)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, breakdownResponse{
		Components: comps,
		Breakdown:  present.Breakdown(m.Name, comps),
	})
}

// ListCatalog handles GET /api/catalog, optionally filtered by application.
func (h *Handler) ListCatalog(c *gin.Context) {
	app := parse.Header(c.Query("application"))
	items := make([]catalog.Specification, 0, len(h.specs))
	for _, s := range h.specs {
		if app == "" || parse.Header(s.Application) == app {
			items = append(items, s)
		}
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": len(items)})
}

// CatalogBreakdown handles GET /api/catalog/:model/breakdown. Site
// assumptions may be overridden through query parameters.
func (h *Handler) CatalogBreakdown(c *gin.Context) {
	spec, ok := catalog.Find(h.specs, c.Param("model"))
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "unknown model " + c.Param("model")})
		return
	}

	a := h.assumptions
	overrides := []struct {
		key string
		dst *float64
	}{
		{"energy_price", &a.EnergyPrice},
		{"water_price", &a.WaterPricePerM3},
		{"hours_per_day", &a.HoursPerDay},
		{"days_per_week", &a.DaysPerWeek},
		{"weeks_per_year", &a.WeeksPerYear},
		{"discount_rate", &a.DiscountRate},
	}
	for _, o := range overrides {
		if !queryFloat(c, o.key, o.dst) {
			return
		}
	}
	a.NeedsTraining = c.Query("training") == "true"

	m := tco.FromSpecification(spec, a)
	comps, err := h.calc.Comprehensive(m)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, breakdownResponse{
		Components: comps,
		Breakdown:  present.Breakdown(m.Name, comps),
	})
}
