// FilePath: internal/hubservice/hubservice.device_test.go
package hubservice

import (
	"context"
	"testing"
	"time"

	"github.com/photodream/hub/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A partial update must never strip an approved device of its address or
// profile: fields the body leaves empty keep their stored value.
func TestUpdateDevicePartialKeepsAddressAndProfile(t *testing.T) {
	env := newTestEnv()
	env.addSource("src_a", "Home")
	env.addProfile("src_a", "Family")
	ctx := context.Background()

	created := time.Now().Add(-time.Hour)
	require.NoError(t, env.devices.Create(ctx, &models.Device{
		ID:        "frame-01",
		Name:      "Kitchen",
		IP:        "192.168.1.40",
		Port:      8080,
		Profile:   "src_a_family",
		CreatedAt: created,
	}))

	require.NoError(t, env.svc.UpdateDevice(ctx, &models.Device{
		ID:   "frame-01",
		Name: "Hallway",
	}))

	device, err := env.svc.GetDevice(ctx, "frame-01")
	require.NoError(t, err)
	assert.Equal(t, "Hallway", device.Name)
	assert.Equal(t, "192.168.1.40", device.IP)
	assert.Equal(t, 8080, device.Port)
	assert.Equal(t, "src_a_family", device.Profile)
	assert.True(t, device.CreatedAt.Equal(created))
	assert.True(t, device.UpdatedAt.After(created))
}

func TestUpdateDeviceOverridesProvidedFields(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	require.NoError(t, env.devices.Create(ctx, &models.Device{
		ID:      "frame-01",
		Name:    "Kitchen",
		IP:      "192.168.1.40",
		Port:    8080,
		Profile: "src_a_family",
	}))

	require.NoError(t, env.svc.UpdateDevice(ctx, &models.Device{
		ID:      "frame-01",
		IP:      "192.168.1.77",
		Port:    8081,
		Profile: "src_a_holiday",
	}))

	device, err := env.svc.GetDevice(ctx, "frame-01")
	require.NoError(t, err)
	assert.Equal(t, "Kitchen", device.Name)
	assert.Equal(t, "192.168.1.77", device.IP)
	assert.Equal(t, 8081, device.Port)
	assert.Equal(t, "src_a_holiday", device.Profile)
}

func TestUpdateDeviceUnknownID(t *testing.T) {
	env := newTestEnv()

	err := env.svc.UpdateDevice(context.Background(), &models.Device{ID: "frame-99"})
	assert.Error(t, err)
}
