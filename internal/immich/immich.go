// FilePath: internal/immich/immich.go
package immich

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/photodream/hub/internal/errors"
	"github.com/photodream/hub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

const (
	searchTimeout = 30 * time.Second
	pingTimeout   = 10 * time.Second

	// Immich caps search pages at 1000 items.
	pageSize = 1000
	// Hard ceiling so a misbehaving server cannot keep us paginating forever.
	maxPages = 100
)

// Client calls one Immich instance's search and server APIs. Every call
// carries its own timeout and connection scope.
type Client struct {
	baseURL string
	apiKey  string
}

// New creates a client for a source.
func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}
}

type searchResponse struct {
	Assets struct {
		Items    []json.RawMessage `json:"items"`
		NextPage json.RawMessage   `json:"nextPage"`
	} `json:"assets"`
}

// CountAssets returns the number of images matching a search filter. Immich
// does not expose a total count, so pages are summed until the server stops
// paginating. The smart endpoint is used when the filter carries a semantic
// query, metadata search otherwise.
func (c *Client) CountAssets(ctx context.Context, filter models.JSON) (int, error) {
	endpoint := "metadata"
	if q, ok := filter["query"]; ok && q != nil && q != "" {
		endpoint = "smart"
	}
	url := fmt.Sprintf("%s/api/search/%s", c.baseURL, endpoint)

	total := 0
	for page := 1; ; page++ {
		payload := make(map[string]interface{}, len(filter)+3)
		for k, v := range filter {
			payload[k] = v
		}
		payload["size"] = pageSize
		payload["page"] = page
		if _, ok := payload["type"]; !ok {
			payload["type"] = "IMAGE"
		}

		resp, err := resty.New().
			SetTimeout(searchTimeout).
			R().
			SetContext(ctx).
			SetHeader("x-api-key", c.apiKey).
			SetHeader("Content-Type", "application/json").
			SetBody(payload).
			Post(url)
		if err != nil {
			return 0, errors.NewUnreachableError("cannot connect to Immich", err)
		}
		if resp.IsError() {
			return 0, errors.NewRejectedError("Immich search request failed", resp.StatusCode())
		}

		var result searchResponse
		if err := json.Unmarshal(resp.Body(), &result); err != nil {
			return 0, errors.NewInternalError("failed to decode Immich search response", err)
		}

		count := len(result.Assets.Items)
		total += count
		nuts.L.Debugf("[Immich] Count page %d: %d items, total %d", page, count, total)

		if !hasNextPage(result.Assets.NextPage) || count == 0 {
			break
		}
		if page >= maxPages {
			nuts.L.Warnf("[Immich] Pagination ceiling reached counting assets for %s", c.baseURL)
			break
		}
	}

	return total, nil
}

// Ping validates the base URL and API key against /api/server/ping.
func (c *Client) Ping(ctx context.Context) error {
	url := c.baseURL + "/api/server/ping"

	resp, err := resty.New().
		SetTimeout(pingTimeout).
		R().
		SetContext(ctx).
		SetHeader("x-api-key", c.apiKey).
		Get(url)
	if err != nil {
		return errors.NewUnreachableError("cannot connect to Immich", err)
	}
	if resp.IsError() {
		return errors.NewRejectedError("Immich ping failed", resp.StatusCode())
	}

	var pong struct {
		Res string `json:"res"`
	}
	if err := json.Unmarshal(resp.Body(), &pong); err != nil || pong.Res != "pong" {
		return errors.NewRejectedError("unexpected Immich ping response", resp.StatusCode())
	}
	return nil
}

// hasNextPage tolerates the two shapes Immich has used for nextPage: a
// string page token or a number, with null/absent meaning no further pages.
func hasNextPage(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	s := strings.TrimSpace(string(raw))
	return s != "null" && s != `""` && s != "0"
}
