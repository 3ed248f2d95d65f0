// FilePath: internal/deviceclient/deviceclient_test.go
package deviceclient

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/photodream/hub/internal/errors"
	"github.com/photodream/hub/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hostPort(t *testing.T, srv *httptest.Server) (string, int) {
	t.Helper()
	host, portStr, err := net.SplitHostPort(srv.Listener.Addr().String())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)
	return host, port
}

func TestPushConfig(t *testing.T) {
	var received models.DeviceConfig
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/configure", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ip, port := hostPort(t, srv)
	err := New().PushConfig(context.Background(), ip, port, &models.DeviceConfig{
		DeviceID:   "frame-01",
		WebhookURL: "http://hub.local/api/v1/webhook/status",
	})
	require.NoError(t, err)
	assert.Equal(t, "frame-01", received.DeviceID)
	assert.Equal(t, "http://hub.local/api/v1/webhook/status", received.WebhookURL)
}

func TestPushConfigRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ip, port := hostPort(t, srv)
	err := New().PushConfig(context.Background(), ip, port, &models.DeviceConfig{})
	require.Error(t, err)
	assert.True(t, errors.IsRejected(err))
	assert.False(t, errors.IsUnreachable(err))
}

func TestPushConfigUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ip, port := hostPort(t, srv)
	srv.Close()

	err := New().PushConfig(context.Background(), ip, port, &models.DeviceConfig{})
	require.Error(t, err)
	assert.True(t, errors.IsUnreachable(err))
	assert.False(t, errors.IsRejected(err))
}

func TestSendCommand(t *testing.T) {
	var path string
	var bodyLen int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		bodyLen = r.ContentLength
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ip, port := hostPort(t, srv)
	err := New().SendCommand(context.Background(), ip, port, "next", nil)
	require.NoError(t, err)
	assert.Equal(t, "/next", path)
	assert.LessOrEqual(t, bodyLen, int64(0))
}

func TestSendCommandWithPayload(t *testing.T) {
	var received map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/set-profile", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ip, port := hostPort(t, srv)
	err := New().SendCommand(context.Background(), ip, port, "set-profile", map[string]string{"profile": "src_a_family"})
	require.NoError(t, err)
	assert.Equal(t, "src_a_family", received["profile"])
}

func TestSendCommandRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	ip, port := hostPort(t, srv)
	err := New().SendCommand(context.Background(), ip, port, "next", nil)
	require.Error(t, err)
	assert.True(t, errors.IsRejected(err))
}
