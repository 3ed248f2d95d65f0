// FilePath: internal/hubservice/hubservice.device.go
package hubservice

import (
	"context"
	"time"

	"github.com/photodream/hub/internal/errors"
	"github.com/photodream/hub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// DeviceState bundles a device record with its last reported runtime status.
type DeviceState struct {
	Device *models.Device       `json:"device"`
	Status *models.DeviceStatus `json:"status,omitempty"`
	Online bool                 `json:"online"`
}

// GetDevice retrieves a device record.
func (s *HubService) GetDevice(ctx context.Context, id string) (*models.Device, error) {
	return s.Devices.Get(ctx, id)
}

// ListDevices retrieves a paginated list of devices.
func (s *HubService) ListDevices(ctx context.Context, offset, limit int) ([]*models.Device, error) {
	if limit <= 0 || limit > 100 {
		limit = 50 // Default limit
	}
	if offset < 0 {
		offset = 0
	}
	return s.Devices.List(ctx, offset, limit)
}

// UpdateDevice updates a device record's name, address, profile and display
// preferences. Fields left empty keep their stored value; an approved device
// must never lose its address or profile through a partial update.
func (s *HubService) UpdateDevice(ctx context.Context, device *models.Device) error {
	existing, err := s.Devices.Get(ctx, device.ID)
	if err != nil {
		return err
	}
	if device.Name == "" {
		device.Name = existing.Name
	}
	if device.IP == "" {
		device.IP = existing.IP
	}
	if device.Port == 0 {
		device.Port = existing.Port
	}
	if device.Profile == "" {
		device.Profile = existing.Profile
	}
	device.CreatedAt = existing.CreatedAt
	device.UpdatedAt = time.Now()

	nuts.L.Infof("[DeviceService] Updating device %s", device.ID)
	return s.Devices.Update(ctx, device)
}

// DeleteDevice removes a device and its ephemeral state. Devices are never
// deleted implicitly; this is only reachable through an explicit operator
// action.
func (s *HubService) DeleteDevice(ctx context.Context, id string) error {
	if _, err := s.Devices.Get(ctx, id); err != nil {
		return err
	}
	return s.Cleanup.DeleteDevice(ctx, id)
}

// GetDeviceState returns a device together with its runtime status and the
// staleness-corrected online verdict.
func (s *HubService) GetDeviceState(ctx context.Context, id string) (*DeviceState, error) {
	device, err := s.Devices.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	state := &DeviceState{
		Device: device,
		Online: s.Registry.Online(id),
	}
	if status, ok := s.Registry.Status(id); ok {
		state.Status = &status
	}
	return state, nil
}

// SetDeviceProfile assigns a profile to a device and pushes the updated
// configuration immediately.
func (s *HubService) SetDeviceProfile(ctx context.Context, id, profile string) error {
	if profile == "" {
		return errors.NewValidationError("missing profile", nil)
	}
	if err := s.Devices.UpdateProfile(ctx, id, profile, time.Now()); err != nil {
		return err
	}

	nuts.L.Infof("[DeviceService] Device %s switched to profile %q", id, profile)
	s.PushConfig(ctx, id)
	return nil
}
