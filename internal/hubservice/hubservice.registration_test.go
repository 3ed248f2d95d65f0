// FilePath: internal/hubservice/hubservice.registration_test.go
package hubservice

import (
	"context"
	"testing"
	"time"

	"github.com/photodream/hub/internal/errors"
	"github.com/photodream/hub/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterDeviceMissingID(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.RegisterDevice(context.Background(), &models.RegisterRequest{})
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestRegisterDeviceMissingIP(t *testing.T) {
	env := newTestEnv()
	env.addSource("src_a", "Home")

	_, err := env.svc.RegisterDevice(context.Background(), &models.RegisterRequest{
		DeviceID: "frame-01",
	})
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestRegisterDeviceWithoutSources(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.RegisterDevice(context.Background(), &models.RegisterRequest{
		DeviceID: "frame-01",
		DeviceIP: "192.168.1.40",
	})
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestRegisterDeviceBecomesPending(t *testing.T) {
	env := newTestEnv()
	env.addSource("src_a", "Home")
	env.addProfile("src_a", "Family")

	resp, err := env.svc.RegisterDevice(context.Background(), &models.RegisterRequest{
		DeviceID: "frame-01",
		DeviceIP: "192.168.1.40",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RegistrationPending, resp.Status)
	assert.Nil(t, resp.Config)

	pending, ok := env.svc.Registry.Pending("frame-01")
	require.True(t, ok)
	assert.Equal(t, "192.168.1.40", pending.IP)
	assert.Equal(t, models.DefaultPort, pending.Port)
}

func TestRegisterDevicePollStates(t *testing.T) {
	env := newTestEnv()
	env.addSource("src_a", "Home")
	env.addProfile("src_a", "Family")
	ctx := context.Background()

	// Never seen before
	resp, err := env.svc.RegisterDevice(ctx, &models.RegisterRequest{
		Action:   "poll",
		DeviceID: "frame-01",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RegistrationUnknown, resp.Status)

	// Announced but not approved
	_, err = env.svc.RegisterDevice(ctx, &models.RegisterRequest{
		DeviceID: "frame-01",
		DeviceIP: "192.168.1.40",
	})
	require.NoError(t, err)

	resp, err = env.svc.RegisterDevice(ctx, &models.RegisterRequest{
		Action:   "poll",
		DeviceID: "frame-01",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RegistrationPending, resp.Status)
}

func TestApproveDevice(t *testing.T) {
	env := newTestEnv()
	env.addSource("src_a", "Home")
	env.addProfile("src_a", "Family")
	ctx := context.Background()

	_, err := env.svc.RegisterDevice(ctx, &models.RegisterRequest{
		DeviceID: "frame-01",
		DeviceIP: "127.0.0.1",
		Port:     1,
	})
	require.NoError(t, err)

	device, err := env.svc.ApproveDevice(ctx, "frame-01", "Kitchen Frame", "src_a_family")
	require.NoError(t, err)
	assert.Equal(t, "Kitchen Frame", device.Name)
	assert.Equal(t, "127.0.0.1", device.IP)
	assert.Equal(t, 1, device.Port)
	assert.Equal(t, "src_a_family", device.Profile)

	// Pending entry is consumed by the approval.
	_, ok := env.svc.Registry.Pending("frame-01")
	assert.False(t, ok)

	// Polling now yields the full configuration.
	resp, err := env.svc.RegisterDevice(ctx, &models.RegisterRequest{
		Action:   "poll",
		DeviceID: "frame-01",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RegistrationConfigured, resp.Status)
	require.NotNil(t, resp.Config)
	assert.Equal(t, "frame-01", resp.Config.DeviceID)
	assert.Equal(t, "Family", resp.Config.Profile.Name)
}

func TestApproveDeviceNotPending(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.ApproveDevice(context.Background(), "frame-99", "Name", "profile")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

// Registration is idempotent: an approved device announcing itself again
// receives its configuration instead of becoming pending a second time.
func TestRegisterDeviceAlreadyConfigured(t *testing.T) {
	env := newTestEnv()
	env.addSource("src_a", "Home")
	env.addProfile("src_a", "Family")
	ctx := context.Background()

	_, err := env.svc.RegisterDevice(ctx, &models.RegisterRequest{
		DeviceID: "frame-01",
		DeviceIP: "127.0.0.1",
		Port:     1,
	})
	require.NoError(t, err)
	_, err = env.svc.ApproveDevice(ctx, "frame-01", "", "src_a_family")
	require.NoError(t, err)

	resp, err := env.svc.RegisterDevice(ctx, &models.RegisterRequest{
		DeviceID: "frame-01",
		DeviceIP: "127.0.0.1",
		Port:     1,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RegistrationConfigured, resp.Status)
	require.NotNil(t, resp.Config)

	_, ok := env.svc.Registry.Pending("frame-01")
	assert.False(t, ok)
}

func TestApproveDeviceDefaultsNameToID(t *testing.T) {
	env := newTestEnv()
	env.addSource("src_a", "Home")
	env.addProfile("src_a", "Family")
	ctx := context.Background()

	_, err := env.svc.RegisterDevice(ctx, &models.RegisterRequest{
		DeviceID: "frame-01",
		DeviceIP: "127.0.0.1",
		Port:     1,
	})
	require.NoError(t, err)

	device, err := env.svc.ApproveDevice(ctx, "frame-01", "", "src_a_family")
	require.NoError(t, err)
	assert.Equal(t, "frame-01", device.Name)
}

func TestReportStatusDefaults(t *testing.T) {
	env := newTestEnv()

	err := env.svc.ReportStatus(&models.StatusReport{
		DeviceID: "frame-01",
		Profile:  "src_a_family",
	})
	require.NoError(t, err)

	status, ok := env.svc.Registry.Status("frame-01")
	require.True(t, ok)
	assert.True(t, status.Online)
	assert.False(t, status.Active)
	assert.WithinDuration(t, time.Now(), status.LastSeen, 5*time.Second)
}

func TestReportStatusParsesLastRefresh(t *testing.T) {
	env := newTestEnv()
	refreshed := time.Now().Add(-2 * time.Minute).Truncate(time.Second)

	offline := false
	err := env.svc.ReportStatus(&models.StatusReport{
		DeviceID:    "frame-01",
		Online:      &offline,
		LastRefresh: refreshed.Format(time.RFC3339),
	})
	require.NoError(t, err)

	status, ok := env.svc.Registry.Status("frame-01")
	require.True(t, ok)
	assert.False(t, status.Online)
	assert.True(t, status.LastSeen.Equal(refreshed))
}

func TestReportStatusMissingID(t *testing.T) {
	env := newTestEnv()

	err := env.svc.ReportStatus(&models.StatusReport{})
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}
