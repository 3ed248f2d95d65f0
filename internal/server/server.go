// FilePath: internal/server/server.go
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	gorilla "github.com/gorilla/handlers"
	"github.com/photodream/hub/api"
	"github.com/photodream/hub/internal/config"
	"github.com/photodream/hub/internal/database"
	"github.com/photodream/hub/internal/deviceclient"
	"github.com/photodream/hub/internal/hubservice"
	"github.com/photodream/hub/internal/monitoring"
	"github.com/photodream/hub/internal/poller"
	"github.com/photodream/hub/internal/registry"
	"github.com/photodream/hub/internal/repository/postgres"
	"github.com/photodream/hub/internal/weather"
	nuts "github.com/vaudience/go-nuts"
)

// Server represents our HTTP server
type Server struct {
	config     *config.Config
	srv        *http.Server
	db         database.DB
	hubservice *hubservice.HubService
	pollers    *poller.Manager
	monitoring *monitoring.Service

	cancelPollers context.CancelFunc
}

// New creates a new server instance
func New(cfg *config.Config) *Server {
	return &Server{config: cfg}
}

// Start wires everything together and begins listening for requests. It
// blocks until SIGINT or SIGTERM.
func (s *Server) Start() error {
	if err := s.initializeServices(); err != nil {
		return err
	}

	s.monitoring = monitoring.NewService()
	s.setupEventHandlers()

	router := api.NewRouter(s.hubservice, s.pollers, s.monitoring, s.config.Auth.APIKey)
	s.srv = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port),
		Handler:      gorilla.CombinedLoggingHandler(os.Stdout, router),
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
	}

	// Count polling runs for the lifetime of the process, not of a request.
	pollCtx, cancel := context.WithCancel(context.Background())
	s.cancelPollers = cancel
	if err := s.pollers.Start(pollCtx); err != nil {
		nuts.L.Errorf("[Server] Failed to start pollers: %v", err)
	}

	go func() {
		nuts.L.Infof("[Server] Starting server on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			nuts.L.Errorf("[Server] Error starting server: %v", err)
			os.Exit(1)
		}
	}()

	return s.waitForShutdown()
}

// waitForShutdown waits for interrupt signal and gracefully shuts down the server
func (s *Server) waitForShutdown() error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	nuts.L.Infof("[Server] Shutting down server...")

	s.cancelPollers()
	s.pollers.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}

	if err := s.db.Close(); err != nil {
		nuts.L.Errorf("[Server] Error closing database: %v", err)
	}

	nuts.L.Infof("[Server] Server shut down successfully")
	return nil
}

// initializeServices connects the database and builds the service graph.
func (s *Server) initializeServices() error {
	db, err := database.NewPostgresDB(s.config.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	if err := database.EnsureSchema(ctx, db); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	s.db = db

	sources := postgres.NewSourceRepository(db)
	profiles := postgres.NewProfileRepository(db)
	devices := postgres.NewDeviceRepository(db)

	var weatherProvider weather.Provider
	if s.config.Weather.BaseURL != "" {
		weatherProvider = weather.NewHomeAssistant(s.config.Weather.BaseURL, s.config.Weather.Token)
	}

	s.hubservice = hubservice.New(
		sources,
		profiles,
		devices,
		registry.New(),
		deviceclient.New(),
		weatherProvider,
		s.config.Webhook.ExternalURL,
	)
	if err := s.hubservice.Validate(); err != nil {
		return err
	}

	s.pollers = poller.NewManager(sources, profiles, s.hubservice, poller.Options{
		Interval:    s.config.Poller.Interval,
		Stagger:     s.config.Poller.Stagger,
		StaggerStep: s.config.Poller.StaggerStep,
	})

	return nil
}

func (s *Server) setupEventHandlers() {
	// Device lifecycle events from the registry
	s.hubservice.Registry.On(registry.EventDeviceDiscovered, func(id string) {
		nuts.L.Infof("[Server] New device %s discovered, awaiting approval", id)
		s.monitoring.RecordEvent("device_discovered", map[string]string{
			"device_id": id,
		})
	})

	s.hubservice.Registry.On(registry.EventDeviceApproved, func(id string) {
		s.monitoring.RecordEvent("device_approved", map[string]string{
			"device_id": id,
		})
	})

	// Cleanup events
	s.hubservice.Cleanup.OnCleanup("source.deleted", func(id string) {
		nuts.L.Infof("[Cleanup] Source %s and all its profiles deleted", id)
		s.monitoring.RecordEvent("source_deletion", map[string]string{
			"source_id": id,
		})
	})

	s.hubservice.Cleanup.OnCleanup("profile.deleted", func(id string) {
		nuts.L.Infof("[Cleanup] Profile %s deleted", id)
		s.monitoring.RecordEvent("profile_deletion", map[string]string{
			"profile_id": id,
		})
	})

	s.hubservice.Cleanup.OnCleanup("device.deleted", func(id string) {
		nuts.L.Infof("[Cleanup] Device %s and its runtime state deleted", id)
		s.monitoring.RecordEvent("device_deletion", map[string]string{
			"device_id": id,
		})
	})
}
