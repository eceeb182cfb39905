package health

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/puck-savant/internal/metrics"
)

func newTestServer() *Server {
	l := logrus.New()
	l.SetLevel(logrus.ErrorLevel)
	return NewServer(Config{ServiceName: "backtest", Version: "1.2.3", Commit: "abc", Address: "127.0.0.1:0", Logger: l})
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer()

	rec := get(t, s.Handler(), "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var body HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "backtest", body.Service)
	assert.Equal(t, "1.2.3", body.Version)
}

func TestReadyEndpoint(t *testing.T) {
	s := newTestServer()
	h := s.Handler()

	rec := get(t, h, "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	s.SetReady(true)
	s.AddCheck("dataset", CheckFunc(func(context.Context) error { return nil }))
	rec = get(t, h, "/ready")
	require.Equal(t, http.StatusOK, rec.Code)

	var body ReadyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Checks["dataset"])

	s.AddCheck("engine", CheckFunc(func(context.Context) error { return errors.New("no teams") }))
	rec = get(t, h, "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not_ready", body.Status)
	assert.Equal(t, "error: no teams", body.Checks["engine"])
}

func TestMetricsEndpoint(t *testing.T) {
	metrics.RecordOpportunity("A+")
	s := newTestServer()

	rec := get(t, s.Handler(), "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "puck_savant_opportunities_total")
}

func TestStartAndShutdown(t *testing.T) {
	s := newTestServer()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, s.Start(ctx))
	defer s.Shutdown()

	resp, err := http.Get("http://" + s.Addr() + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
