package model

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"separator-tco-backend/internal/tco"
)

// Machine is a machine quoted for a project, with its annual cost figures.
type Machine struct {
	ID                    string    `gorm:"primaryKey;size:36" json:"id"`
	ProjectID             string    `gorm:"index;size:36;not null" json:"projectId"`
	Name                  string    `gorm:"size:128;not null" json:"name"`
	ListPrice             float64   `gorm:"not null" json:"listPrice"`
	TotalOperationCosts   float64   `gorm:"not null" json:"totalOperationCosts"`
	TotalMaintenanceCosts float64   `gorm:"not null" json:"totalMaintenanceCosts"`
	TCO                   float64   `gorm:"column:tco;not null" json:"tco"`
	CreatedAt             time.Time `json:"-"`
	UpdatedAt             time.Time `json:"-"`

	// Estimated marks a candidate synthesized from catalog data.
	Estimated bool `gorm:"-" json:"estimated,omitempty"`
}

// ComputeTCO returns list price plus operation and maintenance costs.
func (m Machine) ComputeTCO() float64 {
	return m.ListPrice + m.TotalOperationCosts + m.TotalMaintenanceCosts
}

// Validate checks that the machine is named and its costs are finite and
// not negative.
func (m Machine) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return &tco.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	for _, f := range []struct {
		field string
		v     float64
	}{
		{"listPrice", m.ListPrice},
		{"totalOperationCosts", m.TotalOperationCosts},
		{"totalMaintenanceCosts", m.TotalMaintenanceCosts},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) || f.v < 0 {
			return &tco.ValidationError{Field: f.field, Reason: fmt.Sprintf("must be a non-negative number, got %g", f.v)}
		}
	}
	return nil
}

// Stale reports whether the stored TCO disagrees with the cost fields.
func (m Machine) Stale() bool {
	return m.TCO != m.ComputeTCO()
}

// Recomputed returns a copy of m with TCO brought up to date.
func (m Machine) Recomputed() Machine {
	m.TCO = m.ComputeTCO()
	return m
}

// BeforeCreate assigns a random ID when none is set.
func (m *Machine) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// BeforeSave keeps the stored TCO consistent with the cost fields.
func (m *Machine) BeforeSave(tx *gorm.DB) error {
	m.TCO = m.ComputeTCO()
	return nil
}
