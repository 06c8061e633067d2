package models

import "time"

// EarningRecord is one per-bucket earnings sample.
type EarningRecord struct {
	FilAmount float64   `json:"fil_amount"`
	Timestamp time.Time `json:"timestamp"`
}

// TrafficRecord is one per-bucket retrieval traffic sample.
type TrafficRecord struct {
	NumBytes    int64     `json:"num_bytes"`
	NumRequests int64     `json:"num_requests"`
	Timestamp   time.Time `json:"timestamp"`
}

// NodeStateSummary counts the operator's nodes by state at fetch time.
type NodeStateSummary struct {
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
	Down     int `json:"down"`
}

// MetricsResult is one stats API response for an address and date range.
// Earnings and Metrics are independent sequences aligned only by timestamp,
// never by index. A result is always replaced wholesale, never patched.
type MetricsResult struct {
	Earnings []EarningRecord  `json:"earnings"`
	Metrics  []TrafficRecord  `json:"metrics"`
	Nodes    NodeStateSummary `json:"nodes"`
}
