// FilePath: internal/hubservice/hubservice.resolver.go
package hubservice

import (
	"context"
	"strings"

	"github.com/photodream/hub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// ResolveProfile maps a device's profile identifier to a concrete source and
// profile. Identifiers come in two formats: the current compound form
// "{source_id}_{name}" and the legacy bare profile name from before sources
// existed. Precedence, in order:
//
//  1. compound identifier match across all sources
//  2. bare profile name match across all sources
//  3. first profile of the first configured source, with a warning
//
// The compound pass runs to completion before the bare-name pass so that a
// legacy name in an earlier source can never shadow an exact compound match
// in a later one. When no source has any profile the result is empty
// (nil source, nil profile) with no error.
func (s *HubService) ResolveProfile(ctx context.Context, profileID string) (*models.Source, *models.Profile, error) {
	wanted := strings.ToLower(strings.TrimSpace(profileID))

	sources, err := s.Sources.List(ctx)
	if err != nil {
		return nil, nil, err
	}

	profilesBySource := make([][]*models.Profile, len(sources))
	for i, source := range sources {
		profiles, err := s.Profiles.ListBySource(ctx, source.ID)
		if err != nil {
			return nil, nil, err
		}
		profilesBySource[i] = profiles
	}

	if wanted != "" {
		for i, source := range sources {
			for _, profile := range profilesBySource[i] {
				if profile.CompoundID() == wanted {
					return source, profile, nil
				}
			}
		}

		for i, source := range sources {
			for _, profile := range profilesBySource[i] {
				if strings.EqualFold(profile.Name, wanted) {
					return source, profile, nil
				}
			}
		}
	}

	// Any fallback is logged, including the one for a device that never had
	// a profile assigned.
	for i, source := range sources {
		if len(profilesBySource[i]) > 0 {
			fallback := profilesBySource[i][0]
			nuts.L.Warnf("[Resolver] Profile %q not found, falling back to %q on source %s",
				profileID, fallback.Name, source.ID)
			return source, fallback, nil
		}
	}

	return nil, nil, nil
}
