// FilePath: internal/deviceclient/deviceclient.go
package deviceclient

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/photodream/hub/internal/errors"
	"github.com/photodream/hub/internal/models"
)

// Timeouts per call class. Config documents are larger and tablets can be
// slow to apply them; plain commands should answer immediately.
const (
	ConfigureTimeout = 10 * time.Second
	CommandTimeout   = 5 * time.Second
)

// Client talks to the HTTP endpoint the PhotoDream Android app exposes on
// every frame. Calls are fire and forget: one attempt, own timeout, no
// connection reuse across calls.
type Client struct{}

// New creates a device client.
func New() *Client {
	return &Client{}
}

// PushConfig POSTs a configuration document to a device's /configure
// endpoint. A transport failure and a non-2xx answer are reported as
// distinct error types.
func (c *Client) PushConfig(ctx context.Context, ip string, port int, cfg *models.DeviceConfig) error {
	url := fmt.Sprintf("http://%s:%d/configure", ip, port)

	resp, err := resty.New().
		SetTimeout(ConfigureTimeout).
		R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(cfg).
		Post(url)
	if err != nil {
		return errors.NewUnreachableError(fmt.Sprintf("cannot reach device at %s:%d", ip, port), err)
	}
	if resp.IsError() {
		return errors.NewRejectedError(fmt.Sprintf("device at %s:%d rejected configuration", ip, port), resp.StatusCode())
	}
	return nil
}

// SendCommand POSTs a command to a device, e.g. "next" or "set-profile".
// Payload may be nil for bare commands. Success is solely a 2xx answer.
func (c *Client) SendCommand(ctx context.Context, ip string, port int, command string, payload interface{}) error {
	url := fmt.Sprintf("http://%s:%d/%s", ip, port, command)

	req := resty.New().
		SetTimeout(CommandTimeout).
		R().
		SetContext(ctx)
	if payload != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(payload)
	}

	resp, err := req.Post(url)
	if err != nil {
		return errors.NewUnreachableError(fmt.Sprintf("cannot reach device at %s:%d", ip, port), err)
	}
	if resp.IsError() {
		return errors.NewRejectedError(fmt.Sprintf("device at %s:%d rejected command %q", ip, port, command), resp.StatusCode())
	}
	return nil
}
