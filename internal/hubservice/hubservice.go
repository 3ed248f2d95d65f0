// FilePath: internal/hubservice/hubservice.go
package hubservice

import (
	"strings"

	"github.com/photodream/hub/internal/cleanup"
	"github.com/photodream/hub/internal/deviceclient"
	"github.com/photodream/hub/internal/errors"
	"github.com/photodream/hub/internal/registry"
	"github.com/photodream/hub/internal/repository"
	"github.com/photodream/hub/internal/weather"
)

// HubService contains all repositories and service-wide dependencies
type HubService struct {
	Sources  repository.SourceRepository
	Profiles repository.ProfileRepository
	Devices  repository.DeviceRepository
	Registry *registry.Registry
	Cleanup  *cleanup.CleanupService

	devices    *deviceclient.Client
	weather    weather.Provider
	webhookURL string
}

// New creates a new HubService instance. The weather provider may be nil;
// weather blocks are then omitted from assembled configurations.
func New(
	sources repository.SourceRepository,
	profiles repository.ProfileRepository,
	devices repository.DeviceRepository,
	reg *registry.Registry,
	devClient *deviceclient.Client,
	weatherProvider weather.Provider,
	webhookBaseURL string,
) *HubService {
	svc := &HubService{
		Sources:    sources,
		Profiles:   profiles,
		Devices:    devices,
		Registry:   reg,
		devices:    devClient,
		weather:    weatherProvider,
		webhookURL: strings.TrimRight(webhookBaseURL, "/"),
	}
	svc.Cleanup = cleanup.New(sources, profiles, devices, reg)
	return svc
}

// Validate checks if all required dependencies are initialized
func (s *HubService) Validate() error {
	if s.Sources == nil {
		return ErrMissingDependency("sources")
	}
	if s.Profiles == nil {
		return ErrMissingDependency("profiles")
	}
	if s.Devices == nil {
		return ErrMissingDependency("devices")
	}
	if s.Registry == nil {
		return ErrMissingDependency("registry")
	}
	if s.devices == nil {
		return ErrMissingDependency("device client")
	}
	return nil
}

func ErrMissingDependency(name string) error {
	return errors.NewInternalError("missing dependency: "+name, nil)
}
