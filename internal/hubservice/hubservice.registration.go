// FilePath: internal/hubservice/hubservice.registration.go
package hubservice

import (
	"context"
	"time"

	"github.com/photodream/hub/internal/errors"
	"github.com/photodream/hub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// RegisterDevice handles the registration webhook: both first-contact
// announcements and the poll requests a waiting device sends afterwards.
//
// State machine per device identifier: unknown devices announcing themselves
// become pending and wait for operator approval; approved devices receive
// their full configuration document. Registration is idempotent - an already
// configured device announcing itself again just gets its configuration.
func (s *HubService) RegisterDevice(ctx context.Context, req *models.RegisterRequest) (*models.RegisterResponse, error) {
	if req.DeviceID == "" {
		return nil, errors.NewValidationError("missing device_id", nil)
	}

	if req.Action == "poll" {
		return s.pollRegistration(ctx, req.DeviceID)
	}

	if req.DeviceIP == "" {
		return nil, errors.NewValidationError("missing device_ip", nil)
	}
	port := req.Port
	if port == 0 {
		port = models.DefaultPort
	}

	nuts.L.Infof("[Registration] Device registration request: %s at %s:%d", req.DeviceID, req.DeviceIP, port)

	// Already approved: short-circuit with the current configuration.
	if _, err := s.Devices.Get(ctx, req.DeviceID); err == nil {
		cfg, err := s.BuildDeviceConfig(ctx, req.DeviceID)
		if err != nil {
			return nil, err
		}
		return &models.RegisterResponse{Status: models.RegistrationConfigured, Config: cfg}, nil
	}

	// Without a configured source there is nothing a device could ever be
	// approved into; reject instead of queueing silently.
	sources, err := s.Sources.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, errors.NewValidationError("hub not configured: no photo server source", nil)
	}

	s.Registry.AddPending(req.DeviceID, req.DeviceIP, port)

	return &models.RegisterResponse{
		Status:  models.RegistrationPending,
		Message: "waiting for approval",
	}, nil
}

// pollRegistration answers a device asking whether it has been approved yet.
func (s *HubService) pollRegistration(ctx context.Context, deviceID string) (*models.RegisterResponse, error) {
	if _, err := s.Devices.Get(ctx, deviceID); err == nil {
		cfg, err := s.BuildDeviceConfig(ctx, deviceID)
		if err != nil {
			return nil, err
		}
		return &models.RegisterResponse{Status: models.RegistrationConfigured, Config: cfg}, nil
	}

	if _, ok := s.Registry.Pending(deviceID); ok {
		return &models.RegisterResponse{Status: models.RegistrationPending}, nil
	}

	return &models.RegisterResponse{Status: models.RegistrationUnknown}, nil
}

// ApproveDevice moves a pending device into the configured fleet, assigning
// it a display name and a profile. The freshly approved device gets its
// configuration pushed in the background; it would pick it up on its next
// poll anyway.
func (s *HubService) ApproveDevice(ctx context.Context, deviceID, name, profile string) (*models.Device, error) {
	pending, ok := s.Registry.Pending(deviceID)
	if !ok {
		return nil, errors.NewNotFoundError("device is not pending approval", nil)
	}

	if name == "" {
		name = deviceID
	}

	now := time.Now()
	device := &models.Device{
		ID:        deviceID,
		Name:      name,
		IP:        pending.IP,
		Port:      pending.Port,
		Profile:   profile,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Devices.Create(ctx, device); err != nil {
		return nil, err
	}

	s.Registry.RemovePending(deviceID)
	s.Registry.NotifyApproved(deviceID)
	nuts.L.Infof("[Registration] Device %s approved as %q with profile %q", deviceID, name, profile)

	go func() {
		pushCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		s.PushConfig(pushCtx, deviceID)
	}()

	return device, nil
}

// ReportStatus ingests a device status report, overwriting the previous
// runtime record wholesale.
func (s *HubService) ReportStatus(report *models.StatusReport) error {
	if report.DeviceID == "" {
		return errors.NewValidationError("missing device_id", nil)
	}

	online := true
	if report.Online != nil {
		online = *report.Online
	}

	lastSeen := time.Now()
	if report.LastRefresh != "" {
		if ts, err := time.Parse(time.RFC3339, report.LastRefresh); err == nil {
			lastSeen = ts
		}
	}

	s.Registry.UpdateStatus(report.DeviceID, models.DeviceStatus{
		Online:          online,
		Active:          report.Active,
		CurrentImage:    report.CurrentImage,
		CurrentImageURL: report.CurrentImageURL,
		Profile:         report.Profile,
		LastSeen:        lastSeen,
		MACAddress:      report.MACAddress,
		IPAddress:       report.IPAddress,
		DisplayWidth:    report.DisplayWidth,
		DisplayHeight:   report.DisplayHeight,
		AppVersion:      report.AppVersion,
	})

	nuts.L.Debugf("[Registration] Status report from %s (online=%v)", report.DeviceID, online)
	return nil
}
