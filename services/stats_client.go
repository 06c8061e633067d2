package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"l1board/config"
	"l1board/models"
)

// StatsClient talks to the network's stats API. It is a plain transport: one
// attempt per call, no retries. Cancellation comes in through the request
// context; a cancelled request is abandoned, not repeated.
type StatsClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewStatsClient(cfg *config.Config) *StatsClient {
	timeout := 10 * time.Second
	if d := cfg.StatsAPITimeoutDuration(); d > 0 && d <= 30*time.Second {
		timeout = d
	}

	return &StatsClient{
		baseURL: cfg.StatsAPI.BaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     30 * time.Second,
				DialContext: (&net.Dialer{
					Timeout:   5 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
			},
		},
	}
}

// statsResponse is the wire shape of GET /stats.
type statsResponse struct {
	Earnings []models.EarningRecord  `json:"earnings"`
	Metrics  []models.TrafficRecord  `json:"metrics"`
	Nodes    models.NodeStateSummary `json:"nodes"`
}

// FetchMetrics implements MetricsFetcher against the stats API.
func (c *StatsClient) FetchMetrics(ctx context.Context, address string, start, end time.Time, bucket models.TimeUnit) (*models.MetricsResult, error) {
	q := url.Values{}
	q.Set("filAddress", address)
	q.Set("startDate", strconv.FormatInt(start.UnixMilli(), 10))
	q.Set("endDate", strconv.FormatInt(end.UnixMilli(), 10))
	q.Set("step", string(bucket))

	var wire statsResponse
	if err := c.getJSON(ctx, "/stats", q, &wire); err != nil {
		return nil, err
	}

	return &models.MetricsResult{
		Earnings: wire.Earnings,
		Metrics:  wire.Metrics,
		Nodes:    wire.Nodes,
	}, nil
}

// nodesResponse is the wire shape of GET /nodes.
type nodesResponse struct {
	Nodes []models.Node `json:"nodes"`
}

// FetchNodes returns the operator's node list.
func (c *StatsClient) FetchNodes(ctx context.Context, address string) ([]models.Node, error) {
	q := url.Values{}
	q.Set("filAddress", address)

	var wire nodesResponse
	if err := c.getJSON(ctx, "/nodes", q, &wire); err != nil {
		return nil, err
	}
	return wire.Nodes, nil
}

func (c *StatsClient) getJSON(ctx context.Context, path string, query url.Values, dest interface{}) error {
	reqURL := c.baseURL + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("stats api error %d for %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
