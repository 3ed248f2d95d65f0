// FilePath: internal/cleanup/cleanup.go
package cleanup

import (
	"context"
	"fmt"

	"github.com/photodream/hub/internal/registry"
	"github.com/photodream/hub/internal/repository"
	nuts "github.com/vaudience/go-nuts"
)

// CleanupService coordinates deletion of dependent data. Profile deletion
// deliberately does not touch devices: a dangling profile reference falls
// back to the resolver's default at assembly time.
type CleanupService struct {
	sources  repository.SourceRepository
	profiles repository.ProfileRepository
	devices  repository.DeviceRepository
	registry *registry.Registry
	events   *nuts.EventEmitter
}

// New creates a new CleanupService
func New(
	sources repository.SourceRepository,
	profiles repository.ProfileRepository,
	devices repository.DeviceRepository,
	reg *registry.Registry,
) *CleanupService {
	return &CleanupService{
		sources:  sources,
		profiles: profiles,
		devices:  devices,
		registry: reg,
		events:   nuts.NewEventEmitter(),
	}
}

// DeleteSource deletes a source and all profiles under it.
func (s *CleanupService) DeleteSource(ctx context.Context, sourceID string) error {
	if err := s.profiles.DeleteBySource(ctx, sourceID); err != nil {
		return fmt.Errorf("failed to delete profiles: %w", err)
	}

	if err := s.sources.Delete(ctx, sourceID); err != nil {
		return fmt.Errorf("failed to delete source: %w", err)
	}

	s.events.Emit("source.deleted", sourceID)
	return nil
}

// DeleteProfile deletes a single profile. Devices still referencing it keep
// their identifier; the resolver handles the dangling reference.
func (s *CleanupService) DeleteProfile(ctx context.Context, sourceID, name string) error {
	if err := s.profiles.Delete(ctx, sourceID, name); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	s.events.Emit("profile.deleted", sourceID+"/"+name)
	return nil
}

// DeleteDevice deletes a device record together with its ephemeral state.
func (s *CleanupService) DeleteDevice(ctx context.Context, deviceID string) error {
	if err := s.devices.Delete(ctx, deviceID); err != nil {
		return fmt.Errorf("failed to delete device: %w", err)
	}

	s.registry.RemoveStatus(deviceID)
	s.registry.RemovePending(deviceID)

	nuts.L.Infof("[Cleanup] Device %s deleted", deviceID)
	s.events.Emit("device.deleted", deviceID)
	return nil
}

// OnCleanup registers a callback for cleanup events
func (s *CleanupService) OnCleanup(event string, handler func(id string)) {
	s.events.On(event, "cleanup_handler", func(args ...interface{}) {
		if len(args) > 0 {
			if id, ok := args[0].(string); ok {
				handler(id)
			}
		}
	})
}
