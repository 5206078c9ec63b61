package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"separator-tco-backend/internal/tco"
)

// Project is a customer enquiry that machines are quoted against.
type Project struct {
	ID                   string    `gorm:"primaryKey;size:36" json:"id"`
	Name                 string    `gorm:"uniqueIndex;size:128;not null" json:"projectName"`
	Company              string    `gorm:"size:128" json:"company"`
	Application          string    `gorm:"size:64" json:"application"`
	SubApplication       string    `gorm:"size:128" json:"subApplication"`
	CapacityPerDay       float64   `json:"capacityPerDay"`
	Years                int       `json:"years"`
	WorkdaysPerWeek      int       `json:"workdaysPerWeek"`
	EnergyPriceEurPerKWh float64   `gorm:"column:energy_price_eur_per_kwh" json:"energyPriceEurPerKwh"`
	WaterPriceEurPerM3   float64   `gorm:"column:water_price_eur_per_m3" json:"waterPriceEurPerM3"`
	CreatedAt            time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt            time.Time `gorm:"not null" json:"updatedAt"`

	// Associations
	Machines  []Machine        `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"machines"`
	Shortlist []ShortlistEntry `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"-"`
}

// BeforeCreate assigns a random ID when none is set.
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Validate checks the fields a shortlist or projection depends on. Zero
// values of the optional figures are allowed.
func (p Project) Validate() error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return &tco.ValidationError{Field: "projectName", Reason: "must not be empty"}
	case p.CapacityPerDay < 0:
		return &tco.ValidationError{Field: "capacityPerDay", Reason: "must not be negative"}
	case p.Years < 0:
		return &tco.ValidationError{Field: "years", Reason: "must not be negative"}
	case p.WorkdaysPerWeek < 0 || p.WorkdaysPerWeek > 7:
		return &tco.ValidationError{Field: "workdaysPerWeek", Reason: "must be within [0,7]"}
	case p.EnergyPriceEurPerKWh < 0:
		return &tco.ValidationError{Field: "energyPriceEurPerKwh", Reason: "must not be negative"}
	case p.WaterPriceEurPerM3 < 0:
		return &tco.ValidationError{Field: "waterPriceEurPerM3", Reason: "must not be negative"}
	}
	return nil
}

// MachineNames returns the names of the project's machines in order.
func (p Project) MachineNames() []string {
	names := make([]string, len(p.Machines))
	for i, m := range p.Machines {
		names[i] = m.Name
	}
	return names
}
