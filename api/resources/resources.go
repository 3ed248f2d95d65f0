// FilePath: api/resources/resources.go
package resources

import (
	"net/http"

	"github.com/photodream/hub/internal/hubservice"
	"github.com/photodream/hub/internal/monitoring"
	"github.com/photodream/hub/internal/poller"
	nuts "github.com/vaudience/go-nuts"
)

// Resources holds all HTTP resource handlers
type Resources struct {
	Webhooks *WebhookHandlers
	Devices  *DeviceHandlers
	Sources  *SourceHandlers
	Profiles *ProfileHandlers

	monitoring *monitoring.Service
}

// NewResources creates a new Resources instance
func NewResources(svc *hubservice.HubService, pollers *poller.Manager, mon *monitoring.Service) *Resources {
	return &Resources{
		Webhooks:   &WebhookHandlers{hubservice: svc},
		Devices:    &DeviceHandlers{hubservice: svc},
		Sources:    &SourceHandlers{hubservice: svc, pollers: pollers},
		Profiles:   &ProfileHandlers{hubservice: svc},
		monitoring: mon,
	}
}

// HealthCheck reports service liveness plus the monitoring event counters.
func (r *Resources) HealthCheck(w http.ResponseWriter, req *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"version": nuts.GetVersion(),
		"events":  r.monitoring.EventCounts(),
	})
}
