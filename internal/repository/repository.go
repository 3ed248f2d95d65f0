// FilePath: internal/repository/repository.go
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/photodream/hub/internal/database"
	"github.com/photodream/hub/internal/models"
)

var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("resource not found")
	// ErrDuplicate indicates that a resource already exists
	ErrDuplicate = errors.New("resource already exists")
	// ErrInvalidInput indicates that the input data is invalid
	ErrInvalidInput = errors.New("invalid input")
)

// SourceRepository defines the interface for Immich source operations.
// List returns sources in creation order; the oldest source is the
// "first configured source" the profile resolver falls back to.
type SourceRepository interface {
	database.Repository
	Create(ctx context.Context, source *models.Source) error
	Get(ctx context.Context, id string) (*models.Source, error)
	Update(ctx context.Context, source *models.Source) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*models.Source, error)
}

// ProfileRepository defines the interface for profile operations.
// ListBySource returns profiles in creation order within their source.
type ProfileRepository interface {
	database.Repository
	Create(ctx context.Context, profile *models.Profile) error
	Get(ctx context.Context, sourceID, name string) (*models.Profile, error)
	Update(ctx context.Context, profile *models.Profile) error
	Delete(ctx context.Context, sourceID, name string) error
	ListBySource(ctx context.Context, sourceID string) ([]*models.Profile, error)
	DeleteBySource(ctx context.Context, sourceID string) error
}

// DeviceRepository defines the interface for device record operations
type DeviceRepository interface {
	database.Repository
	Create(ctx context.Context, device *models.Device) error
	Get(ctx context.Context, id string) (*models.Device, error)
	Update(ctx context.Context, device *models.Device) error
	UpdateProfile(ctx context.Context, id, profile string, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, offset, limit int) ([]*models.Device, error)
}
