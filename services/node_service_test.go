package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"l1board/utils"
)

func TestNodeServiceEnrichesVersionStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"nodes": [
			{"id": "node-1", "state": "active", "version": "0.5.1"},
			{"id": "node-2", "state": "active", "version": "0.4.0"},
			{"id": "node-3", "state": "down", "version": ""}
		]}`))
	}))
	defer srv.Close()

	cfg := &utils.VersionConfig{CurrentStable: "0.5.1", MinSupported: "0.5.0"}
	// nil geo resolver: no IPs in the fixture, so nothing to look up anyway
	ns := NewNodeService(statsClientFor(srv.URL), nil, cfg)

	nodes, err := ns.Nodes(context.Background(), "f01234")
	require.NoError(t, err)
	require.Len(t, nodes, 3)

	assert.Equal(t, "current", nodes[0].VersionStatus)
	assert.False(t, nodes[0].IsUpgradeNeeded)
	assert.Empty(t, nodes[0].UpgradeMessage)

	assert.Equal(t, "unsupported", nodes[1].VersionStatus)
	assert.True(t, nodes[1].IsUpgradeNeeded)
	assert.NotEmpty(t, nodes[1].UpgradeMessage)

	assert.Equal(t, "unknown", nodes[2].VersionStatus)
	assert.False(t, nodes[2].IsUpgradeNeeded)
}

func TestNodeServiceRequiresAddress(t *testing.T) {
	ns := NewNodeService(statsClientFor("http://127.0.0.1:0"), nil, nil)

	_, err := ns.Nodes(context.Background(), "")
	assert.Error(t, err)
}
