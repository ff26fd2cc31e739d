package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fixturecheck/internal/core/ports"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObservabilityServer_HealthAndMetrics(t *testing.T) {
	health := newHealthState()
	server := NewObservabilityServer("127.0.0.1:0", health)
	require.NoError(t, server.Start(context.Background()))
	t.Cleanup(func() { _ = server.Stop(context.Background()) })

	base := "http://" + server.Addr()

	status, body := get(t, base+"/health")
	assert.Equal(t, http.StatusOK, status)
	var h healthStatus
	require.NoError(t, json.Unmarshal(body, &h))
	assert.Equal(t, "up", h.Status)
	assert.Equal(t, 0, h.Runs)

	health.Record(ports.CheckResult{Files: []ports.FileReport{{Path: "a.py"}}}, nil)
	_, body = get(t, base+"/health")
	require.NoError(t, json.Unmarshal(body, &h))
	assert.Equal(t, 1, h.Runs)
	assert.Equal(t, 1, h.Files)

	health.Record(ports.CheckResult{}, errors.New("boom"))
	status, body = get(t, base+"/health")
	assert.Equal(t, http.StatusServiceUnavailable, status)
	require.NoError(t, json.Unmarshal(body, &h))
	assert.Equal(t, "degraded", h.Status)
	assert.Equal(t, "boom", h.LastError)
	assert.Equal(t, 1, h.Files, "failed runs keep the last good counts")

	status, body = get(t, base+"/metrics")
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, bytes.Contains(body, []byte("fixturecheck_files_checked_total")))
}

func TestObservabilityServer_BindError(t *testing.T) {
	first := NewObservabilityServer("127.0.0.1:0", newHealthState())
	require.NoError(t, first.Start(context.Background()))
	t.Cleanup(func() { _ = first.Stop(context.Background()) })

	second := NewObservabilityServer(first.Addr(), newHealthState())
	require.Error(t, second.Start(context.Background()))
	assert.NoError(t, second.Stop(context.Background()))
}

func get(t *testing.T, url string) (int, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}
