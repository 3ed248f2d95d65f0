// FilePath: internal/hubservice/hubservice.source.go
package hubservice

import (
	"context"
	"time"

	"github.com/photodream/hub/internal/errors"
	"github.com/photodream/hub/internal/immich"
	"github.com/photodream/hub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// CreateSource registers a new Immich connection after validating it.
func (s *HubService) CreateSource(ctx context.Context, source *models.Source) error {
	if source.Name == "" {
		return errors.NewValidationError("source name is required", nil)
	}
	if source.BaseURL == "" || source.APIKey == "" {
		return errors.NewValidationError("source base_url and api_key are required", nil)
	}

	if source.ID == "" {
		source.ID = nuts.NID("src", 12)
	}

	now := time.Now()
	source.CreatedAt = now
	source.UpdatedAt = now

	nuts.L.Infof("[SourceService] Creating source %q (%s)", source.Name, source.ID)
	return s.Sources.Create(ctx, source)
}

// UpdateSource updates a source's name or credentials.
func (s *HubService) UpdateSource(ctx context.Context, source *models.Source) error {
	existing, err := s.Sources.Get(ctx, source.ID)
	if err != nil {
		return err
	}
	if source.Name == "" {
		source.Name = existing.Name
	}
	if source.BaseURL == "" {
		source.BaseURL = existing.BaseURL
	}
	if source.APIKey == "" {
		source.APIKey = existing.APIKey
	}
	source.UpdatedAt = time.Now()

	return s.Sources.Update(ctx, source)
}

// DeleteSource removes a source and all profiles under it. Devices keep
// their profile identifiers; the resolver handles the dangling references.
func (s *HubService) DeleteSource(ctx context.Context, id string) error {
	if _, err := s.Sources.Get(ctx, id); err != nil {
		return err
	}
	return s.Cleanup.DeleteSource(ctx, id)
}

// TestSource validates a source's connectivity and credentials against the
// Immich ping endpoint.
func (s *HubService) TestSource(ctx context.Context, id string) error {
	source, err := s.Sources.Get(ctx, id)
	if err != nil {
		return err
	}
	return immich.New(source.BaseURL, source.APIKey).Ping(ctx)
}

// CreateProfile adds a profile under a source.
func (s *HubService) CreateProfile(ctx context.Context, profile *models.Profile) error {
	if profile.Name == "" {
		return errors.NewValidationError("profile name is required", nil)
	}
	if _, err := s.Sources.Get(ctx, profile.SourceID); err != nil {
		return err
	}

	if profile.ID == "" {
		profile.ID = nuts.NID("prf", 12)
	}
	if profile.SearchFilter == nil {
		profile.SearchFilter = models.JSON{}
	}
	if profile.ExcludePaths == nil {
		profile.ExcludePaths = models.StringList{}
	}

	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	nuts.L.Infof("[SourceService] Creating profile %q under source %s", profile.Name, profile.SourceID)
	return s.Profiles.Create(ctx, profile)
}

// UpdateProfile updates a profile's search filter and exclusions.
func (s *HubService) UpdateProfile(ctx context.Context, profile *models.Profile) error {
	profile.UpdatedAt = time.Now()
	return s.Profiles.Update(ctx, profile)
}

// DeleteProfile removes a profile. Deletion does not cascade to devices.
func (s *HubService) DeleteProfile(ctx context.Context, sourceID, name string) error {
	return s.Cleanup.DeleteProfile(ctx, sourceID, name)
}
