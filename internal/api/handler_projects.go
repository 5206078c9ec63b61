package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"separator-tco-backend/internal/model"
)

// ListProjects handles GET /api/projects.
func (h *Handler) ListProjects(c *gin.Context) {
	projects, err := h.store.ListProjects(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	if projects == nil {
		projects = []model.Project{}
	}
	c.JSON(http.StatusOK, projects)
}

// CreateProject handles POST /api/projects.
func (h *Handler) CreateProject(c *gin.Context) {
	var p model.Project
	if err := c.ShouldBindJSON(&p); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p.ID = ""
	for i := range p.Machines {
		p.Machines[i].ID = ""
		p.Machines[i].ProjectID = ""
	}

	if err := h.store.CreateProject(c.Request.Context(), &p); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// GetProject handles GET /api/projects/:id.
func (h *Handler) GetProject(c *gin.Context) {
	p, err := h.store.GetProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DeleteProject handles DELETE /api/projects/:id.
func (h *Handler) DeleteProject(c *gin.Context) {
	id := c.Param("id")
	if err := h.store.DeleteProject(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	h.shortlists.Invalidate(id)
	c.Status(http.StatusNoContent)
}

// AddMachine handles POST /api/projects/:id/machines.
func (h *Handler) AddMachine(c *gin.Context) {
	var m model.Machine
	if err := c.ShouldBindJSON(&m); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	m.ID = ""
	m.Estimated = false

	id := c.Param("id")
	if err := h.store.AddMachine(c.Request.Context(), id, &m); err != nil {
		writeError(c, err)
		return
	}
	h.shortlists.Invalidate(id)
	c.JSON(http.StatusCreated, m)
}

// DeleteMachine handles DELETE /api/projects/:id/machines/:machine_id.
func (h *Handler) DeleteMachine(c *gin.Context) {
	id := c.Param("id")
	if err := h.store.DeleteMachine(c.Request.Context(), id, c.Param("machine_id")); err != nil {
		writeError(c, err)
		return
	}
	h.shortlists.Invalidate(id)
	c.Status(http.StatusNoContent)
}
