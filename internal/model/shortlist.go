package model

import "time"

// ShortlistEntry is one row of the last computed shortlist of a project.
// The refresh workers replace a project's rows on every run.
type ShortlistEntry struct {
	ProjectID             string    `gorm:"primaryKey;size:36" json:"projectId"`
	Rank                  int       `gorm:"primaryKey;autoIncrement:false" json:"rank"`
	Name                  string    `gorm:"size:128;not null" json:"name"`
	ListPrice             float64   `gorm:"not null" json:"listPrice"`
	TotalOperationCosts   float64   `gorm:"not null" json:"totalOperationCosts"`
	TotalMaintenanceCosts float64   `gorm:"not null" json:"totalMaintenanceCosts"`
	TCO                   float64   `gorm:"column:tco;not null" json:"tco"`
	Estimated             bool      `gorm:"not null" json:"estimated"`
	ComputedAt            time.Time `gorm:"not null;index" json:"computedAt"`
}

// Machine converts the entry back into a ranked machine.
func (e ShortlistEntry) Machine() Machine {
	return Machine{
		ProjectID:             e.ProjectID,
		Name:                  e.Name,
		ListPrice:             e.ListPrice,
		TotalOperationCosts:   e.TotalOperationCosts,
		TotalMaintenanceCosts: e.TotalMaintenanceCosts,
		TCO:                   e.TCO,
		Estimated:             e.Estimated,
	}
}
