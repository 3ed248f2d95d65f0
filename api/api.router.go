// FilePath: api/api.router.go
package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/photodream/hub/api/middleware"
	"github.com/photodream/hub/api/resources"
	"github.com/photodream/hub/internal/hubservice"
	"github.com/photodream/hub/internal/monitoring"
	"github.com/photodream/hub/internal/poller"
)

type Router struct {
	router    *mux.Router
	auth      *middleware.APIKeyMiddleware
	resources *resources.Resources
}

func NewRouter(svc *hubservice.HubService, pollers *poller.Manager, mon *monitoring.Service, apiKey string) *Router {
	r := &Router{
		router:    mux.NewRouter(),
		auth:      middleware.NewAPIKeyMiddleware(apiKey),
		resources: resources.NewResources(svc, pollers, mon),
	}

	r.setupRoutes()
	return r
}

func (r *Router) setupRoutes() {
	// API version prefix
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/health", r.resources.HealthCheck).Methods(http.MethodGet)

	// Device-facing webhooks. Frames call these from the LAN without
	// credentials; everything else requires the admin API key.
	api.HandleFunc("/webhook/register", r.resources.Webhooks.Register).Methods(http.MethodPost)
	api.HandleFunc("/webhook/status", r.resources.Webhooks.Status).Methods(http.MethodPost)

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(r.auth.Authenticate)

	// Sources
	sources := protected.PathPrefix("/sources").Subrouter()
	sources.HandleFunc("", r.resources.Sources.ListSources).Methods(http.MethodGet)
	sources.HandleFunc("", r.resources.Sources.CreateSource).Methods(http.MethodPost)
	sources.HandleFunc("/{id}", r.resources.Sources.GetSource).Methods(http.MethodGet)
	sources.HandleFunc("/{id}", r.resources.Sources.UpdateSource).Methods(http.MethodPut)
	sources.HandleFunc("/{id}", r.resources.Sources.DeleteSource).Methods(http.MethodDelete)
	sources.HandleFunc("/{id}/test", r.resources.Sources.TestSource).Methods(http.MethodPost)
	sources.HandleFunc("/{id}/refresh", r.resources.Sources.RefreshSource).Methods(http.MethodPost)
	sources.HandleFunc("/{id}/counts", r.resources.Sources.GetCounts).Methods(http.MethodGet)

	// Profiles, nested under their source
	sources.HandleFunc("/{id}/profiles", r.resources.Profiles.ListProfiles).Methods(http.MethodGet)
	sources.HandleFunc("/{id}/profiles", r.resources.Profiles.CreateProfile).Methods(http.MethodPost)
	sources.HandleFunc("/{id}/profiles/{name}", r.resources.Profiles.GetProfile).Methods(http.MethodGet)
	sources.HandleFunc("/{id}/profiles/{name}", r.resources.Profiles.UpdateProfile).Methods(http.MethodPut)
	sources.HandleFunc("/{id}/profiles/{name}", r.resources.Profiles.DeleteProfile).Methods(http.MethodDelete)

	// Devices
	devices := protected.PathPrefix("/devices").Subrouter()
	devices.HandleFunc("", r.resources.Devices.ListDevices).Methods(http.MethodGet)
	devices.HandleFunc("/pending", r.resources.Devices.ListPending).Methods(http.MethodGet)
	devices.HandleFunc("/{id}", r.resources.Devices.GetDevice).Methods(http.MethodGet)
	devices.HandleFunc("/{id}", r.resources.Devices.UpdateDevice).Methods(http.MethodPut)
	devices.HandleFunc("/{id}", r.resources.Devices.DeleteDevice).Methods(http.MethodDelete)
	devices.HandleFunc("/{id}/status", r.resources.Devices.GetDeviceStatus).Methods(http.MethodGet)
	devices.HandleFunc("/{id}/approve", r.resources.Devices.ApproveDevice).Methods(http.MethodPost)
	devices.HandleFunc("/{id}/refresh", r.resources.Devices.RefreshDevice).Methods(http.MethodPost)
	devices.HandleFunc("/{id}/next", r.resources.Devices.NextImage).Methods(http.MethodPost)
	devices.HandleFunc("/{id}/profile", r.resources.Devices.SetProfile).Methods(http.MethodPost)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}
