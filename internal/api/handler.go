package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"separator-tco-backend/internal/catalog"
	"separator-tco-backend/internal/model"
	"separator-tco-backend/internal/store"
	"separator-tco-backend/internal/tco"
)

// Shortlister ranks and caches project shortlists.
type Shortlister interface {
	Size() int
	Shortlist(ctx context.Context, projectID string, n int) ([]model.Machine, error)
	RefreshProject(ctx context.Context, projectID string) ([]model.Machine, error)
	Stored(ctx context.Context, projectID string) ([]model.Machine, time.Time, error)
	Invalidate(projectID string)
}

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store       store.Store
	shortlists  Shortlister
	calc        *tco.Calculator
	specs       []catalog.Specification
	assumptions tco.Assumptions
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, sl Shortlister, calc *tco.Calculator, specs []catalog.Specification, a tco.Assumptions) *Handler {
	return &Handler{
		store:       s,
		shortlists:  sl,
		calc:        calc,
		specs:       specs,
		assumptions: a,
	}
}

// Health handles GET /api/healthz.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "catalogEntries": len(h.specs)})
}

// writeError maps domain errors onto HTTP status codes.
func writeError(c *gin.Context, err error) {
	var verr *tco.ValidationError
	switch {
	case errors.As(err, &verr):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "field": verr.Field})
	case errors.Is(err, store.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrDuplicate):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Printf("Error handling %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// queryInt reads an optional integer query parameter.
func queryInt(c *gin.Context, key string, fallback int) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid " + key, "field": key})
		return 0, false
	}
	return v, true
}

// queryFloat overwrites *dst with an optional numeric query parameter.
func queryFloat(c *gin.Context, key string, dst *float64) bool {
	raw := c.Query(key)
	if raw == "" {
		return true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid " + key, "field": key})
		return false
	}
	*dst = v
	return true
}
