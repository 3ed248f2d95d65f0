// FilePath: internal/immich/immich_test.go
package immich

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/photodream/hub/internal/errors"
	"github.com/photodream/hub/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type searchBody struct {
	Page  int    `json:"page"`
	Size  int    `json:"size"`
	Type  string `json:"type"`
	Query string `json:"query"`
}

func itemsPayload(count int, nextPage interface{}) []byte {
	items := make([]map[string]string, count)
	for i := range items {
		items[i] = map[string]string{"id": fmt.Sprintf("asset-%d", i)}
	}
	out, _ := json.Marshal(map[string]interface{}{
		"assets": map[string]interface{}{
			"items":    items,
			"nextPage": nextPage,
		},
	})
	return out
}

// Immich has no count endpoint, so pages are summed: here 1000 + 1000 + 500.
func TestCountAssetsPaginates(t *testing.T) {
	var pages []int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/search/metadata", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))

		var body searchBody
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		pages = append(pages, body.Page)
		assert.Equal(t, 1000, body.Size)
		assert.Equal(t, "IMAGE", body.Type)

		switch body.Page {
		case 1, 2:
			w.Write(itemsPayload(1000, "2"))
		default:
			w.Write(itemsPayload(500, nil))
		}
	}))
	defer srv.Close()

	count, err := New(srv.URL, "test-key").CountAssets(context.Background(), models.JSON{})
	require.NoError(t, err)
	assert.Equal(t, 2500, count)
	assert.Equal(t, []int{1, 2, 3}, pages)
}

func TestCountAssetsSinglePage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(itemsPayload(42, nil))
	}))
	defer srv.Close()

	count, err := New(srv.URL, "k").CountAssets(context.Background(), models.JSON{})
	require.NoError(t, err)
	assert.Equal(t, 42, count)
}

// A filter carrying a semantic query goes to the smart search endpoint.
func TestCountAssetsSmartEndpoint(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		var body searchBody
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "beach sunset", body.Query)
		w.Write(itemsPayload(3, nil))
	}))
	defer srv.Close()

	count, err := New(srv.URL, "k").CountAssets(context.Background(), models.JSON{"query": "beach sunset"})
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Equal(t, "/api/search/smart", path)
}

// A numeric nextPage with an empty page must not loop forever.
func TestCountAssetsStopsOnEmptyPage(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write(itemsPayload(0, 2))
	}))
	defer srv.Close()

	count, err := New(srv.URL, "k").CountAssets(context.Background(), models.JSON{})
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Equal(t, 1, calls)
}

func TestCountAssetsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := New(srv.URL, "bad-key").CountAssets(context.Background(), models.JSON{})
	require.Error(t, err)
	assert.True(t, errors.IsRejected(err))
}

func TestCountAssetsUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := New(srv.URL, "k").CountAssets(context.Background(), models.JSON{})
	require.Error(t, err)
	assert.True(t, errors.IsUnreachable(err))
}

func TestPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/server/ping", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		w.Write([]byte(`{"res":"pong"}`))
	}))
	defer srv.Close()

	assert.NoError(t, New(srv.URL, "test-key").Ping(context.Background()))
}

func TestPingUnexpectedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"res":"what"}`))
	}))
	defer srv.Close()

	err := New(srv.URL, "k").Ping(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsRejected(err))
}

func TestPingRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	err := New(srv.URL, "k").Ping(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsRejected(err))
}

func TestHasNextPage(t *testing.T) {
	assert.False(t, hasNextPage(nil))
	assert.False(t, hasNextPage(json.RawMessage(`null`)))
	assert.False(t, hasNextPage(json.RawMessage(`""`)))
	assert.False(t, hasNextPage(json.RawMessage(`0`)))
	assert.True(t, hasNextPage(json.RawMessage(`"2"`)))
	assert.True(t, hasNextPage(json.RawMessage(`2`)))
}
