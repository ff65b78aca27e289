package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/westbrown1/ripple/internal/core/ports/services"
	"github.com/westbrown1/ripple/internal/dto"
	"github.com/westbrown1/ripple/internal/middleware"
)

// nodeHandler handles HTTP requests related to nodes.
type nodeHandler struct {
	nodeService portssvc.NodeSvcFacade
}

// newNodeHandler creates a new nodeHandler.
func newNodeHandler(ns portssvc.NodeSvcFacade) *nodeHandler {
	return &nodeHandler{
		nodeService: ns,
	}
}

// registerNodeRoutes registers routes related to nodes.
func registerNodeRoutes(rg *gin.RouterGroup, nodeService portssvc.NodeSvcFacade) {
	h := newNodeHandler(nodeService)

	nodes := rg.Group("/nodes")
	{
		nodes.POST("", h.createNode)
		nodes.GET("", h.listNodes)
		nodes.GET("/:name", h.getNode)
		nodes.PUT("/:name", h.updateNode)
		nodes.DELETE("/:name", h.deleteNode)
	}
}

// createNode handles POST /nodes.
func (h *nodeHandler) createNode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateNodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateNode", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	node, err := h.nodeService.CreateNode(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, logger, "create node", err)
		return
	}

	logger.Info("Node created successfully", slog.String("name", node.Name))
	c.JSON(http.StatusCreated, dto.ToNodeResponse(node))
}

// listNodes handles GET /nodes. Supports filtering by owning client.
func (h *nodeHandler) listNodes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ListNodesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		logger.Warn("Failed to bind query for ListNodes", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	nodes, err := h.nodeService.ListNodes(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, logger, "list nodes", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListNodeResponse(nodes))
}

// getNode handles GET /nodes/:name.
func (h *nodeHandler) getNode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	name := c.Param("name")

	node, err := h.nodeService.GetNode(c.Request.Context(), name)
	if err != nil {
		respondWithError(c, logger, "get node", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToNodeResponse(node))
}

// updateNode handles PUT /nodes/:name.
func (h *nodeHandler) updateNode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	name := c.Param("name")
	var req dto.UpdateNodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateNode", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	node, err := h.nodeService.UpdateNode(c.Request.Context(), name, req)
	if err != nil {
		respondWithError(c, logger, "update node", err)
		return
	}

	logger.Info("Node updated successfully", slog.String("name", node.Name))
	c.JSON(http.StatusOK, dto.ToNodeResponse(node))
}

// deleteNode handles DELETE /nodes/:name.
func (h *nodeHandler) deleteNode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	name := c.Param("name")

	if err := h.nodeService.DeleteNode(c.Request.Context(), name); err != nil {
		respondWithError(c, logger, "delete node", err)
		return
	}

	logger.Info("Node deleted successfully", slog.String("name", name))
	c.Status(http.StatusNoContent)
}
