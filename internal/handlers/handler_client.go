package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/westbrown1/ripple/internal/core/ports/services"
	"github.com/westbrown1/ripple/internal/dto"
	"github.com/westbrown1/ripple/internal/middleware"
)

// clientHandler handles HTTP requests related to clients.
type clientHandler struct {
	clientService portssvc.ClientSvcFacade
}

// newClientHandler creates a new clientHandler.
func newClientHandler(cs portssvc.ClientSvcFacade) *clientHandler {
	return &clientHandler{
		clientService: cs,
	}
}

// registerClientRoutes registers routes related to clients.
func registerClientRoutes(rg *gin.RouterGroup, clientService portssvc.ClientSvcFacade) {
	h := newClientHandler(clientService)

	clients := rg.Group("/clients")
	{
		clients.POST("", h.createClient)
		clients.GET("", h.listClients)
		clients.GET("/:name", h.getClient)
		clients.PUT("/:name", h.updateClient)
		clients.DELETE("/:name", h.deleteClient)
	}
}

// createClient handles POST /clients.
func (h *clientHandler) createClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateClient", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, logger, "create client", err)
		return
	}

	logger.Info("Client created successfully", slog.String("name", client.Name))
	c.JSON(http.StatusCreated, dto.ToClientResponse(client))
}

// listClients handles GET /clients.
func (h *clientHandler) listClients(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	clients, err := h.clientService.ListClients(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, "list clients", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListClientResponse(clients))
}

// getClient handles GET /clients/:name.
func (h *clientHandler) getClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	name := c.Param("name")

	client, err := h.clientService.GetClient(c.Request.Context(), name)
	if err != nil {
		respondWithError(c, logger, "get client", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToClientResponse(client))
}

// updateClient handles PUT /clients/:name.
func (h *clientHandler) updateClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	name := c.Param("name")
	var req dto.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateClient", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	client, err := h.clientService.UpdateClient(c.Request.Context(), name, req)
	if err != nil {
		respondWithError(c, logger, "update client", err)
		return
	}

	logger.Info("Client updated successfully", slog.String("name", client.Name))
	c.JSON(http.StatusOK, dto.ToClientResponse(client))
}

// deleteClient handles DELETE /clients/:name.
func (h *clientHandler) deleteClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	name := c.Param("name")

	if err := h.clientService.DeleteClient(c.Request.Context(), name); err != nil {
		respondWithError(c, logger, "delete client", err)
		return
	}

	logger.Info("Client deleted successfully", slog.String("name", name))
	c.Status(http.StatusNoContent)
}
