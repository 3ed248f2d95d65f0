// FilePath: internal/registry/registry_test.go
package registry

import (
	"testing"
	"time"

	"github.com/photodream/hub/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateStatusOverwritesWholesale(t *testing.T) {
	r := New()

	r.UpdateStatus("frame-01", models.DeviceStatus{
		Online:       true,
		CurrentImage: "img-1",
		AppVersion:   "1.2.0",
	})
	r.UpdateStatus("frame-01", models.DeviceStatus{
		Online: true,
	})

	status, ok := r.Status("frame-01")
	require.True(t, ok)
	// The second report carried no image; nothing from the first survives.
	assert.Empty(t, status.CurrentImage)
	assert.Empty(t, status.AppVersion)
}

func TestUpdateStatusFillsLastSeen(t *testing.T) {
	r := New()

	r.UpdateStatus("frame-01", models.DeviceStatus{Online: true})

	status, ok := r.Status("frame-01")
	require.True(t, ok)
	assert.WithinDuration(t, time.Now(), status.LastSeen, 5*time.Second)
}

func TestOnline(t *testing.T) {
	r := New()

	assert.False(t, r.Online("never-seen"))

	r.UpdateStatus("frame-01", models.DeviceStatus{Online: true, LastSeen: time.Now()})
	assert.True(t, r.Online("frame-01"))

	r.UpdateStatus("frame-02", models.DeviceStatus{Online: false, LastSeen: time.Now()})
	assert.False(t, r.Online("frame-02"))
}

// A device that claimed to be online but has been silent past the threshold
// is reported offline.
func TestOnlineStaleReportIsOffline(t *testing.T) {
	r := New()

	r.UpdateStatus("frame-01", models.DeviceStatus{
		Online:   true,
		LastSeen: time.Now().Add(-OfflineThreshold - time.Minute),
	})

	assert.False(t, r.Online("frame-01"))
}

func TestRemoveStatus(t *testing.T) {
	r := New()

	r.UpdateStatus("frame-01", models.DeviceStatus{Online: true})
	r.RemoveStatus("frame-01")

	_, ok := r.Status("frame-01")
	assert.False(t, ok)
	assert.False(t, r.Online("frame-01"))
}

func TestAddPending(t *testing.T) {
	r := New()

	assert.True(t, r.AddPending("frame-01", "192.168.1.40", 8080))

	pending, ok := r.Pending("frame-01")
	require.True(t, ok)
	assert.Equal(t, "192.168.1.40", pending.IP)
	assert.Equal(t, 8080, pending.Port)
	assert.False(t, pending.FirstSeen.IsZero())
}

// A re-announcing device refreshes its address but keeps its original
// FirstSeen timestamp, and is not reported as newly discovered.
func TestAddPendingReannounce(t *testing.T) {
	r := New()

	require.True(t, r.AddPending("frame-01", "192.168.1.40", 8080))
	first, _ := r.Pending("frame-01")

	assert.False(t, r.AddPending("frame-01", "192.168.1.77", 8081))

	pending, ok := r.Pending("frame-01")
	require.True(t, ok)
	assert.Equal(t, "192.168.1.77", pending.IP)
	assert.Equal(t, 8081, pending.Port)
	assert.True(t, pending.FirstSeen.Equal(first.FirstSeen))
}

func TestRemovePending(t *testing.T) {
	r := New()

	r.AddPending("frame-01", "192.168.1.40", 8080)

	removed, ok := r.RemovePending("frame-01")
	require.True(t, ok)
	assert.Equal(t, "192.168.1.40", removed.IP)

	_, ok = r.Pending("frame-01")
	assert.False(t, ok)

	_, ok = r.RemovePending("frame-01")
	assert.False(t, ok)
}

func TestListPending(t *testing.T) {
	r := New()

	r.AddPending("frame-01", "192.168.1.40", 8080)
	r.AddPending("frame-02", "192.168.1.41", 8080)

	list := r.ListPending()
	assert.Len(t, list, 2)

	ids := map[string]bool{}
	for _, p := range list {
		ids[p.ID] = true
	}
	assert.True(t, ids["frame-01"])
	assert.True(t, ids["frame-02"])
}

func TestDiscoveredEventFiresOnce(t *testing.T) {
	r := New()

	discovered := make(chan string, 4)
	r.On(EventDeviceDiscovered, func(deviceID string) {
		discovered <- deviceID
	})

	r.AddPending("frame-01", "192.168.1.40", 8080)
	r.AddPending("frame-01", "192.168.1.40", 8080)

	select {
	case id := <-discovered:
		assert.Equal(t, "frame-01", id)
	case <-time.After(time.Second):
		t.Fatal("discovered event never fired")
	}

	select {
	case <-discovered:
		t.Fatal("re-announce must not fire a second discovery event")
	case <-time.After(100 * time.Millisecond):
	}
}
