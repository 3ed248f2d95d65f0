// FilePath: internal/hubservice/hubservice.fakes_test.go
package hubservice

import (
	"context"
	"sync"
	"time"

	"github.com/photodream/hub/internal/database"
	"github.com/photodream/hub/internal/deviceclient"
	"github.com/photodream/hub/internal/models"
	"github.com/photodream/hub/internal/registry"
	"github.com/photodream/hub/internal/repository"
)

// In-memory repository stand-ins. They preserve insertion order because the
// resolver's fallback depends on it.

type memSources struct {
	mu    sync.Mutex
	items []*models.Source
}

func (m *memSources) BeginTx(ctx context.Context) (database.Transaction, error) { return nil, nil }

func (m *memSources) Create(ctx context.Context, source *models.Source) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, source)
	return nil
}

func (m *memSources) Get(ctx context.Context, id string) (*models.Source, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.items {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memSources) Update(ctx context.Context, source *models.Source) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, s := range m.items {
		if s.ID == source.ID {
			m.items[i] = source
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memSources) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, s := range m.items {
		if s.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memSources) List(ctx context.Context) ([]*models.Source, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.Source, len(m.items))
	copy(out, m.items)
	return out, nil
}

type memProfiles struct {
	mu    sync.Mutex
	items []*models.Profile
}

func (m *memProfiles) BeginTx(ctx context.Context) (database.Transaction, error) { return nil, nil }

func (m *memProfiles) Create(ctx context.Context, profile *models.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, profile)
	return nil
}

func (m *memProfiles) Get(ctx context.Context, sourceID, name string) (*models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.items {
		if p.SourceID == sourceID && p.Name == name {
			return p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memProfiles) Update(ctx context.Context, profile *models.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, p := range m.items {
		if p.SourceID == profile.SourceID && p.Name == profile.Name {
			m.items[i] = profile
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memProfiles) Delete(ctx context.Context, sourceID, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, p := range m.items {
		if p.SourceID == sourceID && p.Name == name {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memProfiles) ListBySource(ctx context.Context, sourceID string) ([]*models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Profile
	for _, p := range m.items {
		if p.SourceID == sourceID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memProfiles) DeleteBySource(ctx context.Context, sourceID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.items[:0]
	for _, p := range m.items {
		if p.SourceID != sourceID {
			kept = append(kept, p)
		}
	}
	m.items = kept
	return nil
}

type memDevices struct {
	mu    sync.Mutex
	items []*models.Device
}

func (m *memDevices) BeginTx(ctx context.Context) (database.Transaction, error) { return nil, nil }

func (m *memDevices) Create(ctx context.Context, device *models.Device) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, device)
	return nil
}

func (m *memDevices) Get(ctx context.Context, id string) (*models.Device, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.items {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memDevices) Update(ctx context.Context, device *models.Device) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, d := range m.items {
		if d.ID == device.ID {
			m.items[i] = device
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memDevices) UpdateProfile(ctx context.Context, id, profile string, updatedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.items {
		if d.ID == id {
			d.Profile = profile
			d.UpdatedAt = updatedAt
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memDevices) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, d := range m.items {
		if d.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memDevices) List(ctx context.Context, offset, limit int) ([]*models.Device, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if offset >= len(m.items) {
		return nil, nil
	}
	end := offset + limit
	if end > len(m.items) {
		end = len(m.items)
	}
	out := make([]*models.Device, end-offset)
	copy(out, m.items[offset:end])
	return out, nil
}

type testEnv struct {
	svc      *HubService
	sources  *memSources
	profiles *memProfiles
	devices  *memDevices
}

func newTestEnv() *testEnv {
	sources := &memSources{}
	profiles := &memProfiles{}
	devices := &memDevices{}
	svc := New(
		sources,
		profiles,
		devices,
		registry.New(),
		deviceclient.New(),
		nil,
		"http://hub.local:8099",
	)
	return &testEnv{svc: svc, sources: sources, profiles: profiles, devices: devices}
}

func (e *testEnv) addSource(id, name string) *models.Source {
	source := &models.Source{
		ID:      id,
		Name:    name,
		BaseURL: "http://immich.local:2283",
		APIKey:  "test-key",
	}
	_ = e.sources.Create(context.Background(), source)
	return source
}

func (e *testEnv) addProfile(sourceID, name string) *models.Profile {
	profile := &models.Profile{
		ID:           "prf_" + name,
		SourceID:     sourceID,
		Name:         name,
		SearchFilter: models.JSON{},
		ExcludePaths: models.StringList{},
	}
	_ = e.profiles.Create(context.Background(), profile)
	return profile
}
