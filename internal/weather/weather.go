// FilePath: internal/weather/weather.go
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/photodream/hub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

const lookupTimeout = 5 * time.Second

// Provider resolves a weather entity reference to a current observation.
// A nil observation with a nil error means the entity could not be resolved;
// the config assembler simply omits the weather block in that case.
type Provider interface {
	Current(ctx context.Context, entity string) (*models.WeatherInfo, error)
}

// HomeAssistantProvider reads entity state from a Home Assistant compatible
// states API using a long-lived access token.
type HomeAssistantProvider struct {
	baseURL string
	token   string
}

// NewHomeAssistant creates a provider against a Home Assistant instance.
func NewHomeAssistant(baseURL, token string) *HomeAssistantProvider {
	return &HomeAssistantProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
	}
}

type haState struct {
	State      string `json:"state"`
	Attributes struct {
		Temperature     float64 `json:"temperature"`
		TemperatureUnit string  `json:"temperature_unit"`
	} `json:"attributes"`
}

// Current performs a live read of the entity's state. Lookup failures are
// logged and reported as an absent observation, never as a hard error: a
// missing weather entity must not block a configuration push.
func (p *HomeAssistantProvider) Current(ctx context.Context, entity string) (*models.WeatherInfo, error) {
	url := fmt.Sprintf("%s/api/states/%s", p.baseURL, entity)

	resp, err := resty.New().
		SetTimeout(lookupTimeout).
		R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+p.token).
		Get(url)
	if err != nil || resp.IsError() {
		nuts.L.Warnf("[Weather] Could not read entity %s: %v", entity, err)
		return nil, nil
	}

	var state haState
	if err := json.Unmarshal(resp.Body(), &state); err != nil {
		nuts.L.Warnf("[Weather] Unexpected state payload for %s: %v", entity, err)
		return nil, nil
	}

	return &models.WeatherInfo{
		Entity:      entity,
		Condition:   state.State,
		Temperature: state.Attributes.Temperature,
		Unit:        state.Attributes.TemperatureUnit,
	}, nil
}
