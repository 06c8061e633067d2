package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"l1board/services"
)

// NodeHandlers serves the operator's node list.
type NodeHandlers struct {
	nodeService *services.NodeService
}

func NewNodeHandlers(nodeService *services.NodeService) *NodeHandlers {
	return &NodeHandlers{
		nodeService: nodeService,
	}
}

// GetNodes godoc
func (nh *NodeHandlers) GetNodes(c echo.Context) error {
	address := c.Param("address")
	if address == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "address is required"})
	}

	nodes, err := nh.nodeService.Nodes(c.Request().Context(), address)
	if err != nil {
		return c.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, nodes)
}
