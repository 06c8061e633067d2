package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"l1board/config"
	"l1board/models"
)

func statsClientFor(url string) *StatsClient {
	cfg := &config.Config{}
	cfg.StatsAPI.BaseURL = url
	cfg.StatsAPI.Timeout = 5
	return NewStatsClient(cfg)
}

func TestStatsClientFetchMetrics(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stats", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "f01234", q.Get("filAddress"))
		assert.Equal(t, "hour", q.Get("step"))
		assert.NotEmpty(t, q.Get("startDate"))
		assert.NotEmpty(t, q.Get("endDate"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"earnings": [{"fil_amount": 0.5, "timestamp": "2024-01-01T01:00:00Z"}],
			"metrics": [{"num_bytes": 1024, "num_requests": 7, "timestamp": "2024-01-01T01:00:00Z"}],
			"nodes": {"active": 4, "inactive": 1, "down": 0}
		}`))
	}))
	defer srv.Close()

	client := statsClientFor(srv.URL)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	result, err := client.FetchMetrics(context.Background(), "f01234", start, start.Add(24*time.Hour), models.UnitHour)
	require.NoError(t, err)

	require.Len(t, result.Earnings, 1)
	assert.Equal(t, 0.5, result.Earnings[0].FilAmount)
	require.Len(t, result.Metrics, 1)
	assert.Equal(t, int64(1024), result.Metrics[0].NumBytes)
	assert.Equal(t, models.NodeStateSummary{Active: 4, Inactive: 1, Down: 0}, result.Nodes)
}

func TestStatsClientFetchNodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/nodes", r.URL.Path)
		assert.Equal(t, "f01234", r.URL.Query().Get("filAddress"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"nodes": [{"id": "node-1", "ip": "1.2.3.4", "state": "active", "version": "0.5.1"}]}`))
	}))
	defer srv.Close()

	client := statsClientFor(srv.URL)

	nodes, err := client.FetchNodes(context.Background(), "f01234")
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "node-1", nodes[0].ID)
	assert.Equal(t, "1.2.3.4", nodes[0].IP)
}

func TestStatsClientNon200IsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := statsClientFor(srv.URL)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := client.FetchMetrics(context.Background(), "f01234", start, start.Add(time.Hour), models.UnitHour)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestStatsClientSingleAttempt(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := statsClientFor(srv.URL)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := client.FetchMetrics(context.Background(), "f01234", start, start.Add(time.Hour), models.UnitHour)
	require.Error(t, err)
	assert.Equal(t, 1, hits)
}

func TestStatsClientRespectsContextCancellation(t *testing.T) {
	started := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer srv.Close()

	client := statsClientFor(srv.URL)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := client.FetchMetrics(ctx, "f01234", start, start.Add(time.Hour), models.UnitHour)
	assert.ErrorIs(t, err, context.Canceled)
}
