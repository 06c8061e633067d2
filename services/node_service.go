package services

import (
	"context"
	"fmt"

	"l1board/models"
	"l1board/utils"
)

// NodeService serves the operator's node list, enriched with geo estimation
// and software version status on the way out.
type NodeService struct {
	client     *StatsClient
	geo        *utils.GeoResolver
	versionCfg *utils.VersionConfig
}

func NewNodeService(client *StatsClient, geo *utils.GeoResolver, versionCfg *utils.VersionConfig) *NodeService {
	return &NodeService{
		client:     client,
		geo:        geo,
		versionCfg: versionCfg,
	}
}

// Nodes fetches and enriches the node list for an operator address.
func (ns *NodeService) Nodes(ctx context.Context, address string) ([]models.Node, error) {
	if address == "" {
		return nil, fmt.Errorf("address is required")
	}

	nodes, err := ns.client.FetchNodes(ctx, address)
	if err != nil {
		return nil, err
	}

	for i := range nodes {
		node := &nodes[i]

		if node.IP != "" {
			loc := ns.geo.Lookup(node.IP)
			node.Country = loc.Country
			node.City = loc.City
			node.Lat = loc.Lat
			node.Lon = loc.Lon
		}

		status, needsUpgrade := utils.CheckVersionStatus(node.Version, ns.versionCfg)
		node.VersionStatus = status
		node.IsUpgradeNeeded = needsUpgrade
		node.UpgradeMessage = utils.UpgradeMessage(node.Version, ns.versionCfg)
	}

	return nodes, nil
}
