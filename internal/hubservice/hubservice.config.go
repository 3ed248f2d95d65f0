// FilePath: internal/hubservice/hubservice.config.go
package hubservice

import (
	"context"

	"github.com/photodream/hub/internal/errors"
	"github.com/photodream/hub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// BuildDeviceConfig assembles the complete configuration document for a
// device: resolved profile, display preferences with defaults applied,
// source credentials and the status callback URL. Pure relative to its
// inputs except for the live weather lookup.
func (s *HubService) BuildDeviceConfig(ctx context.Context, deviceID string) (*models.DeviceConfig, error) {
	device, err := s.Devices.Get(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	return s.buildConfig(ctx, device)
}

func (s *HubService) buildConfig(ctx context.Context, device *models.Device) (*models.DeviceConfig, error) {
	source, profile, err := s.ResolveProfile(ctx, device.Profile)
	if err != nil {
		return nil, err
	}
	if source == nil || profile == nil {
		nuts.L.Errorf("[Config] No profile available for device %s (profile %q)", device.ID, device.Profile)
		return nil, errors.NewNotFoundError("no profile available for device", nil)
	}

	display := device.ResolvedDisplay()
	if entity := device.Display.WeatherEntity; entity != "" && s.weather != nil {
		// Live read; an unreadable weather entity just omits the block.
		if obs, err := s.weather.Current(ctx, entity); err == nil && obs != nil {
			display.Weather = obs
		}
	}

	return &models.DeviceConfig{
		DeviceID: device.ID,
		Immich: models.ImmichAccess{
			BaseURL: source.BaseURL,
			APIKey:  source.APIKey,
		},
		Display: display,
		Profile: models.ProfileConfig{
			Name:         profile.Name,
			SearchFilter: profile.SearchFilter,
			ExcludePaths: profile.ExcludePaths,
		},
		WebhookURL: s.webhookURL + "/api/v1/webhook/status",
	}, nil
}

// PushConfig assembles and transmits a device's configuration. Returns
// whether the device accepted it. Connection failures and HTTP rejections
// are logged distinctly but look the same to the caller; there is no retry.
func (s *HubService) PushConfig(ctx context.Context, deviceID string) bool {
	device, err := s.Devices.Get(ctx, deviceID)
	if err != nil {
		nuts.L.Errorf("[Config] Cannot push to unknown device %s: %v", deviceID, err)
		return false
	}
	if device.IP == "" {
		nuts.L.Errorf("[Config] No IP for device %s", deviceID)
		return false
	}

	cfg, err := s.buildConfig(ctx, device)
	if err != nil {
		nuts.L.Errorf("[Config] No config for device %s: %v", deviceID, err)
		return false
	}

	if err := s.devices.PushConfig(ctx, device.IP, device.Port, cfg); err != nil {
		switch {
		case errors.IsUnreachable(err):
			nuts.L.Errorf("[Config] Device %s unreachable: %v", deviceID, err)
		case errors.IsRejected(err):
			nuts.L.Errorf("[Config] Device %s rejected config: %v", deviceID, err)
		default:
			nuts.L.Errorf("[Config] Failed to push config to %s: %v", deviceID, err)
		}
		return false
	}

	nuts.L.Infof("[Config] Config pushed to device %s", deviceID)
	return true
}

// SendCommand sends a one-shot command to a device, e.g. "next". At most
// one attempt; success is solely a 2xx answer.
func (s *HubService) SendCommand(ctx context.Context, deviceID, command string, payload interface{}) bool {
	device, err := s.Devices.Get(ctx, deviceID)
	if err != nil {
		nuts.L.Errorf("[Command] Device %s not found", deviceID)
		return false
	}
	if device.IP == "" {
		nuts.L.Errorf("[Command] No IP configured for device %s", deviceID)
		return false
	}

	if err := s.devices.SendCommand(ctx, device.IP, device.Port, command, payload); err != nil {
		nuts.L.Errorf("[Command] Failed to send %q to device %s: %v", command, deviceID, err)
		return false
	}
	return true
}
