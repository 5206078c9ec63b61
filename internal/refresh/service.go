// Package refresh keeps every project's shortlist current. A background
// loop recomputes stale machine totals, reranks each project against the
// catalog and stores the result for the API.
package refresh

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"separator-tco-backend/config"
	"separator-tco-backend/internal/catalog"
	"separator-tco-backend/internal/model"
	"separator-tco-backend/internal/ranking"
	"separator-tco-backend/internal/store"
)

// Service recomputes and caches project shortlists.
type Service struct {
	cfg        config.RefreshConfig
	store      store.Store
	specs      []catalog.Specification
	heuristics ranking.Heuristics
	size       int
	cache      *cache.Cache
	workerPool *WorkerPool
	now        func() time.Time

	// generations counts invalidations per project. A refresh that started
	// under an older generation must not publish its result.
	mu          sync.Mutex
	generations map[string]uint64
}

// NewService creates a refresh service that ranks size machines per
// project.
func NewService(cfg config.RefreshConfig, st store.Store, specs []catalog.Specification, h ranking.Heuristics, size int) *Service {
	s := &Service{
		cfg:        cfg,
		store:      st,
		specs:      specs,
		heuristics: h,
		size:       size,
		cache:      cache.New(2*cfg.Interval, 4*cfg.Interval),
		now:        func() time.Time { return time.Now().UTC() },

		generations: make(map[string]uint64),
	}
	s.workerPool = NewWorkerPool(cfg.Workers, func(ctx context.Context, projectID string) {
		if _, err := s.RefreshProject(ctx, projectID); err != nil {
			log.Printf("Error refreshing project %s: %v", projectID, err)
		}
	})
	return s
}

// Size is the shortlist length kept for every project.
func (s *Service) Size() int {
	return s.size
}

// Run starts the refresh loop.
func (s *Service) Run(ctx context.Context) {
	if !s.cfg.Enabled {
		log.Println("Shortlist refresh is disabled. Not starting.")
		return
	}
	log.Println("Starting shortlist refresh service...")

	s.workerPool.Start(ctx)

	s.RefreshOnce(ctx)

	timer := time.NewTimer(s.cfg.Interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Shortlist refresh service shutting down.")
			return
		case <-timer.C:
			s.RefreshOnce(ctx)
			timer.Reset(s.cfg.Interval)
		}
	}
}

// RefreshOnce dispatches every project to the worker pool and waits for
// the round to finish. The pool must have been started.
func (s *Service) RefreshOnce(ctx context.Context) {
	log.Println("Executing refresh cycle...")
	ids, err := s.store.ListProjectIDs(ctx)
	if err != nil {
		log.Printf("Refresh cycle aborted: %v", err)
		return
	}

	dispatched := 0
	for _, id := range ids {
		if !s.workerPool.Dispatch(ctx, id) {
			break
		}
		dispatched++
	}
	if err := s.workerPool.Wait(ctx); err != nil {
		log.Printf("Refresh cycle interrupted: %v", err)
		return
	}
	log.Printf("Refresh cycle finished: %d projects.", dispatched)
}

// RefreshProject recomputes one project's shortlist, stores it and
// refreshes the cache. When the project is invalidated while the shortlist
// is being computed, the result is returned but neither stored nor cached.
func (s *Service) RefreshProject(ctx context.Context, projectID string) ([]model.Machine, error) {
	gen := s.generation(projectID)
	if _, err := s.store.RecalculateStale(ctx, projectID); err != nil {
		return nil, err
	}
	project, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	shortlist := ranking.SelectTopN(project, s.specs, s.size, s.heuristics)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generations[projectID] != gen {
		log.Printf("Discarding shortlist of project %s: changed during refresh", projectID)
		return shortlist, nil
	}
	if err := s.store.SaveShortlist(ctx, projectID, s.now(), shortlist); err != nil {
		return nil, err
	}
	s.cache.Set(projectID, shortlist, cache.DefaultExpiration)
	return shortlist, nil
}

func (s *Service) generation(projectID string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generations[projectID]
}

// Shortlist returns the n best machines for a project. The configured size
// is served from the cache when possible; other sizes are ranked on demand
// without being stored.
func (s *Service) Shortlist(ctx context.Context, projectID string, n int) ([]model.Machine, error) {
	if n == s.size {
		if cached, found := s.cache.Get(projectID); found {
			return cached.([]model.Machine), nil
		}
		return s.RefreshProject(ctx, projectID)
	}

	project, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return ranking.SelectTopN(project, s.specs, n, s.heuristics), nil
}

// Stored returns the last persisted shortlist of a project.
func (s *Service) Stored(ctx context.Context, projectID string) ([]model.Machine, time.Time, error) {
	entries, err := s.store.LoadShortlist(ctx, projectID)
	if err != nil {
		return nil, time.Time{}, err
	}
	if len(entries) == 0 {
		return nil, time.Time{}, fmt.Errorf("shortlist of project %s: %w", projectID, store.ErrNotFound)
	}
	out := make([]model.Machine, len(entries))
	for i, e := range entries {
		out[i] = e.Machine()
	}
	return out, entries[0].ComputedAt, nil
}

// Invalidate drops the cached shortlist of a project and voids any
// refresh of it still in flight.
func (s *Service) Invalidate(projectID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generations[projectID]++
	s.cache.Delete(projectID)
}
