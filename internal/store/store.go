package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"separator-tco-backend/internal/model"
)

var (
	// ErrNotFound is returned when a project or machine does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a project name is already taken.
	ErrDuplicate = errors.New("already exists")
)

// Store defines the interface for all database operations.
type Store interface {
	ListProjects(ctx context.Context) ([]model.Project, error)
	ListProjectIDs(ctx context.Context) ([]string, error)
	GetProject(ctx context.Context, id string) (model.Project, error)
	CreateProject(ctx context.Context, p *model.Project) error
	DeleteProject(ctx context.Context, id string) error
	AddMachine(ctx context.Context, projectID string, m *model.Machine) error
	DeleteMachine(ctx context.Context, projectID, machineID string) error
	RecalculateStale(ctx context.Context, projectID string) (int, error)
	SaveShortlist(ctx context.Context, projectID string, at time.Time, ms []model.Machine) error
	LoadShortlist(ctx context.Context, projectID string) ([]model.ShortlistEntry, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func orderedMachines(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC, name ASC")
}

// ListProjects returns all projects with their machines, ordered by name.
func (s *gormStore) ListProjects(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	if err := s.db.WithContext(ctx).Preload("Machines", orderedMachines).Order("name ASC").Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// ListProjectIDs returns the IDs of all projects, ordered by name.
func (s *gormStore) ListProjectIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := s.db.WithContext(ctx).Model(&model.Project{}).Order("name ASC").Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list project ids: %w", err)
	}
	return ids, nil
}

// GetProject loads a project and its machines.
func (s *gormStore) GetProject(ctx context.Context, id string) (model.Project, error) {
	var p model.Project
	err := s.db.WithContext(ctx).Preload("Machines", orderedMachines).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Project{}, fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to load project %s: %w", id, err)
	}
	return p, nil
}

// CreateProject inserts the project together with any machines it carries.
func (s *gormStore) CreateProject(ctx context.Context, p *model.Project) error {
	if err := p.Validate(); err != nil {
		return err
	}
	for _, m := range p.Machines {
		if err := m.Validate(); err != nil {
			return err
		}
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var taken int64
		if err := tx.Model(&model.Project{}).Where("name = ?", p.Name).Count(&taken).Error; err != nil {
			return fmt.Errorf("failed to check project name: %w", err)
		}
		if taken > 0 {
			return fmt.Errorf("project %q: %w", p.Name, ErrDuplicate)
		}
		if err := tx.Create(p).Error; err != nil {
			return fmt.Errorf("failed to create project %q: %w", p.Name, err)
		}
		return nil
	})
}

// DeleteProject removes a project with its machines and shortlist.
func (s *gormStore) DeleteProject(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&model.ShortlistEntry{}).Error; err != nil {
			return fmt.Errorf("failed to delete shortlist of project %s: %w", id, err)
		}
		if err := tx.Where("project_id = ?", id).Delete(&model.Machine{}).Error; err != nil {
			return fmt.Errorf("failed to delete machines of project %s: %w", id, err)
		}
		res := tx.Delete(&model.Project{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete project %s: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("project %s: %w", id, ErrNotFound)
		}
		return nil
	})
}

// AddMachine quotes a machine for an existing project.
func (s *gormStore) AddMachine(ctx context.Context, projectID string, m *model.Machine) error {
	if err := m.Validate(); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Project{}).Where("id = ?", projectID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to look up project %s: %w", projectID, err)
		}
		if count == 0 {
			return fmt.Errorf("project %s: %w", projectID, ErrNotFound)
		}

		m.ProjectID = projectID
		if err := tx.Create(m).Error; err != nil {
			return fmt.Errorf("failed to add machine %q to project %s: %w", m.Name, projectID, err)
		}
		return nil
	})
}

// DeleteMachine removes a machine from a project.
func (s *gormStore) DeleteMachine(ctx context.Context, projectID, machineID string) error {
	res := s.db.WithContext(ctx).Where("project_id = ?", projectID).Delete(&model.Machine{}, "id = ?", machineID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete machine %s: %w", machineID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("machine %s in project %s: %w", machineID, projectID, ErrNotFound)
	}
	return nil
}

// RecalculateStale rewrites the stored TCO of every machine of the project
// whose cost fields changed since it was last saved. It returns the number
// of machines updated.
func (s *gormStore) RecalculateStale(ctx context.Context, projectID string) (int, error) {
	updated := 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var machines []model.Machine
		if err := tx.Where("project_id = ?", projectID).Find(&machines).Error; err != nil {
			return fmt.Errorf("failed to load machines of project %s: %w", projectID, err)
		}
		for i := range machines {
			if !machines[i].Stale() {
				continue
			}
			if err := tx.Save(&machines[i]).Error; err != nil {
				return fmt.Errorf("failed to update tco of machine %s: %w", machines[i].ID, err)
			}
			updated++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	if updated > 0 {
		log.Printf("Recalculated TCO of %d machines in project %s", updated, projectID)
	}
	return updated, nil
}

// SaveShortlist replaces the stored shortlist of a project.
func (s *gormStore) SaveShortlist(ctx context.Context, projectID string, at time.Time, ms []model.Machine) error {
	entries := make([]model.ShortlistEntry, len(ms))
	for i, m := range ms {
		entries[i] = model.ShortlistEntry{
			ProjectID:             projectID,
			Rank:                  i + 1,
			Name:                  m.Name,
			ListPrice:             m.ListPrice,
			TotalOperationCosts:   m.TotalOperationCosts,
			TotalMaintenanceCosts: m.TotalMaintenanceCosts,
			TCO:                   m.TCO,
			Estimated:             m.Estimated,
			ComputedAt:            at,
		}
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", projectID).Delete(&model.ShortlistEntry{}).Error; err != nil {
			return fmt.Errorf("failed to clear shortlist of project %s: %w", projectID, err)
		}
		if len(entries) == 0 {
			return nil
		}
		if err := tx.Create(&entries).Error; err != nil {
			return fmt.Errorf("failed to save shortlist of project %s: %w", projectID, err)
		}
		return nil
	})
}

// LoadShortlist returns the stored shortlist of a project in rank order.
func (s *gormStore) LoadShortlist(ctx context.Context, projectID string) ([]model.ShortlistEntry, error) {
	var entries []model.ShortlistEntry
	if err := s.db.WithContext(ctx).Where("project_id = ?", projectID).Order("rank ASC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to load shortlist of project %s: %w", projectID, err)
	}
	return entries, nil
}
