// FilePath: internal/poller/manager.go
package poller

import (
	"context"
	"sync"

	"github.com/photodream/hub/internal/errors"
	"github.com/photodream/hub/internal/hubservice"
	"github.com/photodream/hub/internal/repository"
	nuts "github.com/vaudience/go-nuts"
)

// Manager runs one Coordinator per configured source, following sources as
// they are created and deleted at runtime.
type Manager struct {
	sources  repository.SourceRepository
	profiles repository.ProfileRepository
	hub      *hubservice.HubService
	opts     Options

	mu     sync.Mutex
	runCtx context.Context
	coords map[string]*Coordinator
}

// NewManager creates a poller manager.
func NewManager(
	sources repository.SourceRepository,
	profiles repository.ProfileRepository,
	hub *hubservice.HubService,
	opts Options,
) *Manager {
	return &Manager{
		sources:  sources,
		profiles: profiles,
		hub:      hub,
		opts:     opts,
		runCtx:   context.Background(),
		coords:   make(map[string]*Coordinator),
	}
}

// Start spins up coordinators for every source already configured. The
// context bounds the lifetime of all coordinators, including those added
// later through Ensure.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	m.runCtx = ctx
	m.mu.Unlock()

	sources, err := m.sources.List(ctx)
	if err != nil {
		return err
	}
	for _, source := range sources {
		m.Ensure(source.ID)
	}
	nuts.L.Infof("[Poller] Started count polling for %d source(s)", len(sources))
	return nil
}

// Ensure makes sure a coordinator is running for a source.
func (m *Manager) Ensure(sourceID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.coords[sourceID]; ok {
		return
	}
	coord := NewCoordinator(sourceID, m.sources, m.profiles, m.hub, m.opts)
	m.coords[sourceID] = coord
	go coord.Run(m.runCtx)
}

// Remove stops and drops a source's coordinator.
func (m *Manager) Remove(sourceID string) {
	m.mu.Lock()
	coord, ok := m.coords[sourceID]
	delete(m.coords, sourceID)
	m.mu.Unlock()

	if ok {
		coord.Stop()
	}
}

// Refresh runs one on-demand cycle for a source, bypassing the timer. The
// same change detection and staggered refresh apply.
func (m *Manager) Refresh(ctx context.Context, sourceID string) error {
	m.mu.Lock()
	coord, ok := m.coords[sourceID]
	m.mu.Unlock()

	if !ok {
		return errors.NewNotFoundError("no poller for source", nil)
	}
	nuts.L.Infof("[Poller] Manual refresh triggered for source %s", sourceID)
	return coord.RunCycle(ctx)
}

// Counts returns the latest cycle results for a source.
func (m *Manager) Counts(sourceID string) ([]ProfileCount, error) {
	m.mu.Lock()
	coord, ok := m.coords[sourceID]
	m.mu.Unlock()

	if !ok {
		return nil, errors.NewNotFoundError("no poller for source", nil)
	}
	return coord.Counts(), nil
}

// Stop ends all coordinators.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, coord := range m.coords {
		coord.Stop()
		delete(m.coords, id)
	}
}
