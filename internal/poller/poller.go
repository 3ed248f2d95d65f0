// FilePath: internal/poller/poller.go
package poller

import (
	"context"
	"sync"
	"time"

	"github.com/photodream/hub/internal/errors"
	"github.com/photodream/hub/internal/hubservice"
	"github.com/photodream/hub/internal/immich"
	"github.com/photodream/hub/internal/models"
	"github.com/photodream/hub/internal/repository"
	nuts "github.com/vaudience/go-nuts"
)

// ProfileCount is the outcome of one profile's count check within a cycle.
type ProfileCount struct {
	ProfileID  string    `json:"profile_id"`
	Name       string    `json:"name"`
	ImageCount *int      `json:"image_count"`
	Error      string    `json:"error,omitempty"`
	CheckedAt  time.Time `json:"checked_at"`
}

// Options tune cycle timing. Zero values fall back to the production
// defaults: hourly polls, refreshes staggered 25s apart growing by 5s.
type Options struct {
	Interval    time.Duration
	Stagger     time.Duration
	StaggerStep time.Duration
}

func (o *Options) withDefaults() Options {
	out := *o
	if out.Interval <= 0 {
		out.Interval = time.Hour
	}
	if out.Stagger <= 0 {
		out.Stagger = 25 * time.Second
	}
	if out.StaggerStep <= 0 {
		out.StaggerStep = 5 * time.Second
	}
	return out
}

// Coordinator polls one source's profiles for image-count changes. When any
// profile's count moves, the whole fleet gets a configuration refresh: the
// first device immediately, every further device on a growing delay so the
// Immich server is not hammered by simultaneous reloads.
//
// Previous counts live only in memory; the first observation of a profile
// never counts as a change. Manual and scheduled cycles may overlap - a
// duplicate push is harmless.
type Coordinator struct {
	sourceID string
	sources  repository.SourceRepository
	profiles repository.ProfileRepository
	hub      *hubservice.HubService
	opts     Options

	// Replaceable scheduling hook; production uses time.AfterFunc.
	afterFunc func(d time.Duration, f func())

	mu       sync.Mutex
	previous map[string]int
	last     []ProfileCount
	stop     chan struct{}
	stopOnce sync.Once
}

// NewCoordinator creates a coordinator for one source.
func NewCoordinator(
	sourceID string,
	sources repository.SourceRepository,
	profiles repository.ProfileRepository,
	hub *hubservice.HubService,
	opts Options,
) *Coordinator {
	return &Coordinator{
		sourceID: sourceID,
		sources:  sources,
		profiles: profiles,
		hub:      hub,
		opts:     opts.withDefaults(),
		afterFunc: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
		previous: make(map[string]int),
		stop:     make(chan struct{}),
	}
}

// Run polls on the configured interval until Stop is called or the context
// ends. The first cycle runs immediately.
func (c *Coordinator) Run(ctx context.Context) {
	if err := c.RunCycle(ctx); err != nil {
		nuts.L.Errorf("[Poller] Initial count cycle for source %s failed: %v", c.sourceID, err)
	}

	ticker := time.NewTicker(c.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.stop:
			return
		case <-ticker.C:
			if err := c.RunCycle(ctx); err != nil {
				nuts.L.Errorf("[Poller] Count cycle for source %s failed: %v", c.sourceID, err)
			}
		}
	}
}

// Stop ends the polling loop. Already scheduled staggered refreshes still
// fire; they cannot be cancelled.
func (c *Coordinator) Stop() {
	c.stopOnce.Do(func() { close(c.stop) })
}

// RunCycle checks every profile's image count once and triggers a fleet
// refresh when any count changed. A single profile failing is recorded and
// skipped; a source without URL or key aborts the whole cycle.
func (c *Coordinator) RunCycle(ctx context.Context) error {
	source, err := c.sources.Get(ctx, c.sourceID)
	if err != nil {
		return err
	}
	if source.BaseURL == "" || source.APIKey == "" {
		return errors.NewValidationError("source URL or API key not configured", nil)
	}

	profiles, err := c.profiles.ListBySource(ctx, c.sourceID)
	if err != nil {
		return err
	}

	client := immich.New(source.BaseURL, source.APIKey)
	results := make([]ProfileCount, 0, len(profiles))
	changed := false
	now := time.Now()

	for _, profile := range profiles {
		entry := ProfileCount{
			ProfileID: profile.CompoundID(),
			Name:      profile.Name,
			CheckedAt: now,
		}

		count, err := client.CountAssets(ctx, profile.SearchFilter)
		if err != nil {
			nuts.L.Errorf("[Poller] Failed to count images for profile %q: %v", profile.Name, err)
			entry.Error = err.Error()
			results = append(results, entry)
			continue
		}
		entry.ImageCount = &count
		results = append(results, entry)

		c.mu.Lock()
		old, seen := c.previous[profile.Name]
		c.previous[profile.Name] = count
		c.mu.Unlock()

		if seen && old != count {
			nuts.L.Infof("[Poller] Profile %q image count changed: %d -> %d", profile.Name, old, count)
			changed = true
		}
	}

	c.mu.Lock()
	c.last = results
	c.mu.Unlock()

	if changed {
		c.refreshFleet(ctx)
	}
	return nil
}

// Counts returns the results of the most recent cycle.
func (c *Coordinator) Counts() []ProfileCount {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]ProfileCount, len(c.last))
	copy(out, c.last)
	return out
}

// refreshPageSize is the device list page size used while collecting the
// fleet for a refresh.
const refreshPageSize = 100

// refreshFleet pushes fresh configuration to every device: the first one
// right away, the rest staggered. The whole fleet is collected page by page
// so fleets larger than one page still refresh completely.
func (c *Coordinator) refreshFleet(ctx context.Context) {
	var devices []*models.Device
	for offset := 0; ; offset += refreshPageSize {
		page, err := c.hub.ListDevices(ctx, offset, refreshPageSize)
		if err != nil {
			nuts.L.Errorf("[Poller] Cannot list devices for fleet refresh: %v", err)
			return
		}
		devices = append(devices, page...)
		if len(page) < refreshPageSize {
			break
		}
	}
	if len(devices) == 0 {
		return
	}

	nuts.L.Infof("[Poller] Image count changed - refreshing %d device(s)", len(devices))

	for i, device := range devices {
		if i == 0 {
			c.hub.PushConfig(ctx, device.ID)
			continue
		}

		delay := c.opts.Stagger + time.Duration(i-1)*c.opts.StaggerStep
		deviceID := device.ID
		nuts.L.Debugf("[Poller] Scheduling refresh for %s in %s", deviceID, delay)
		c.afterFunc(delay, func() {
			pushCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			c.hub.PushConfig(pushCtx, deviceID)
		})
	}
}
