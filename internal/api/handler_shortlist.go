package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"separator-tco-backend/internal/catalog"
	"separator-tco-backend/internal/model"
	"separator-tco-backend/internal/present"
	"separator-tco-backend/internal/projection"
	"separator-tco-backend/internal/tco"
)

const (
	defaultProjectionYears = 10
	maxProjectionYears     = 30
	maxHoursPerDay         = 24
)

// GetShortlist handles GET /api/projects/:id/shortlist?n=.
func (h *Handler) GetShortlist(c *gin.Context) {
	n, ok := queryInt(c, "n", h.shortlists.Size())
	if !ok {
		return
	}
	machines, err := h.shortlists.Shortlist(c.Request.Context(), c.Param("id"), n)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": present.Shortlist(machines)})
}

// GetStoredShortlist handles GET /api/projects/:id/shortlist/stored. It
// returns the rows the background refresh last persisted.
func (h *Handler) GetStoredShortlist(c *gin.Context) {
	machines, computedAt, err := h.shortlists.Stored(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": present.Shortlist(machines), "computedAt": computedAt})
}

// RefreshShortlist handles POST /api/projects/:id/refresh.
func (h *Handler) RefreshShortlist(c *gin.Context) {
	machines, err := h.shortlists.RefreshProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": present.Shortlist(machines)})
}

// CompareShortlist handles GET /api/projects/:id/compare?n=&years=. Every
// shortlisted machine found in the catalog is projected month by month
// under the project's site conditions.
func (h *Handler) CompareShortlist(c *gin.Context) {
	ctx := c.Request.Context()
	project, err := h.store.GetProject(ctx, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	fallbackYears := project.Years
	if fallbackYears <= 0 {
		fallbackYears = defaultProjectionYears
	}
	years, ok := queryInt(c, "years", fallbackYears)
	if !ok {
		return
	}
	if years > maxProjectionYears {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "years must not exceed 30", "field": "years"})
		return
	}
	n, ok := queryInt(c, "n", h.shortlists.Size())
	if !ok {
		return
	}

	machines, err := h.shortlists.Shortlist(ctx, project.ID, n)
	if err != nil {
		writeError(c, err)
		return
	}

	series := make([]projection.Series, 0, len(machines))
	skipped := []string{}
	for _, m := range machines {
		spec, found := catalog.Find(h.specs, m.Name)
		if !found {
			skipped = append(skipped, m.Name)
			continue
		}
		params, err := h.machineFor(project, spec, m)
		if err != nil {
			writeError(c, err)
			return
		}
		s, err := projection.Project(h.calc, params, years)
		if err != nil {
			writeError(c, err)
			return
		}
		series = append(series, s)
	}

	c.JSON(http.StatusOK, gin.H{
		"years":   years,
		"series":  present.Comparison(series),
		"skipped": skipped,
	})
}

// machineFor costs a catalog entry under the project's site figures. The
// quoted list price wins over the catalog price.
func (h *Handler) machineFor(p model.Project, spec catalog.Specification, quoted model.Machine) (tco.ComprehensiveMachine, error) {
	a := h.assumptions
	if p.EnergyPriceEurPerKWh > 0 {
		a.EnergyPrice = p.EnergyPriceEurPerKWh
	}
	if p.WaterPriceEurPerM3 > 0 {
		a.WaterPricePerM3 = p.WaterPriceEurPerM3
	}
	if p.WorkdaysPerWeek > 0 {
		a.DaysPerWeek = float64(p.WorkdaysPerWeek)
	}
	if p.CapacityPerDay > 0 && spec.CapacityMax > 0 && a.DaysPerWeek > 0 {
		hours, err := tco.HoursFromThroughput(p.CapacityPerDay, spec.CapacityMax, maxHoursPerDay, a.DaysPerWeek)
		if err != nil {
			return tco.ComprehensiveMachine{}, err
		}
		a.WeeksPerYear = 52
		a.HoursPerDay = hours / (a.DaysPerWeek * a.WeeksPerYear)
	}

	m := tco.FromSpecification(spec, a)
	m.ID = quoted.ID
	m.ProjectID = p.ID
	if quoted.ListPrice > 0 {
		m.Acquisition.ListPriceEUR = quoted.ListPrice
	}
	return m, nil
}
