// FilePath: internal/registry/registry.go
package registry

import (
	"sync"
	"time"

	"github.com/photodream/hub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// OfflineThreshold is how long a device may stay silent before it is reported
// offline regardless of the online flag in its last report.
const OfflineThreshold = 5 * time.Minute

// Events emitted by the registry.
const (
	EventDeviceDiscovered = "device.discovered"
	EventDeviceUpdated    = "device.updated"
	EventDeviceApproved   = "device.approved"
)

// Registry owns the ephemeral fleet state: the last runtime status reported
// by each device and the set of devices waiting for approval. Both are
// process-local and start empty after a restart. All mutation goes through
// this service; interested parties subscribe to its events instead of
// watching shared state.
type Registry struct {
	mu       sync.RWMutex
	statuses map[string]models.DeviceStatus
	pending  map[string]models.PendingDevice
	events   *nuts.EventEmitter
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		statuses: make(map[string]models.DeviceStatus),
		pending:  make(map[string]models.PendingDevice),
		events:   nuts.NewEventEmitter(),
	}
}

// UpdateStatus overwrites a device's runtime status with the latest report
// and notifies subscribers. No history is kept.
func (r *Registry) UpdateStatus(deviceID string, status models.DeviceStatus) {
	if status.LastSeen.IsZero() {
		status.LastSeen = time.Now()
	}

	r.mu.Lock()
	r.statuses[deviceID] = status
	r.mu.Unlock()

	r.events.Emit(EventDeviceUpdated, deviceID)
}

// Status returns the last reported status for a device.
func (r *Registry) Status(deviceID string) (models.DeviceStatus, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	status, ok := r.statuses[deviceID]
	return status, ok
}

// Online reports whether a device is considered online: its last report must
// claim so and must be recent enough.
func (r *Registry) Online(deviceID string) bool {
	r.mu.RLock()
	status, ok := r.statuses[deviceID]
	r.mu.RUnlock()

	if !ok || !status.Online {
		return false
	}
	return time.Since(status.LastSeen) <= OfflineThreshold
}

// RemoveStatus drops a device's runtime status, e.g. after deletion.
func (r *Registry) RemoveStatus(deviceID string) {
	r.mu.Lock()
	delete(r.statuses, deviceID)
	r.mu.Unlock()
}

// AddPending records an unapproved device. Returns true if the device was
// not pending before; a re-announcing device just has its address refreshed.
func (r *Registry) AddPending(deviceID, ip string, port int) bool {
	r.mu.Lock()
	prev, existed := r.pending[deviceID]
	firstSeen := time.Now()
	if existed {
		firstSeen = prev.FirstSeen
	}
	r.pending[deviceID] = models.PendingDevice{
		ID:        deviceID,
		IP:        ip,
		Port:      port,
		FirstSeen: firstSeen,
	}
	r.mu.Unlock()

	if !existed {
		nuts.L.Infof("[Registry] New pending device %s at %s:%d", deviceID, ip, port)
		r.events.Emit(EventDeviceDiscovered, deviceID)
	}
	return !existed
}

// Pending returns a pending device entry.
func (r *Registry) Pending(deviceID string) (models.PendingDevice, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pending, ok := r.pending[deviceID]
	return pending, ok
}

// RemovePending drops a device from the pending set, returning its entry.
// Used when a device is approved or explicitly denied.
func (r *Registry) RemovePending(deviceID string) (models.PendingDevice, bool) {
	r.mu.Lock()
	pending, ok := r.pending[deviceID]
	delete(r.pending, deviceID)
	r.mu.Unlock()
	return pending, ok
}

// ListPending returns all devices waiting for approval.
func (r *Registry) ListPending() []models.PendingDevice {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.PendingDevice, 0, len(r.pending))
	for _, pending := range r.pending {
		list = append(list, pending)
	}
	return list
}

// NotifyApproved emits the approval event for a device.
func (r *Registry) NotifyApproved(deviceID string) {
	r.events.Emit(EventDeviceApproved, deviceID)
}

// On registers a callback for a registry event. The handler receives the
// device ID.
func (r *Registry) On(event string, handler func(deviceID string)) {
	r.events.On(event, "registry_handler", func(deviceID string) {
		handler(deviceID)
	})
}
