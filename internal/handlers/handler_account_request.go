package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/westbrown1/ripple/internal/core/ports/services"
	"github.com/westbrown1/ripple/internal/dto"
	"github.com/westbrown1/ripple/internal/middleware"
)

// accountRequestHandler handles HTTP requests related to account requests.
type accountRequestHandler struct {
	accountRequestService portssvc.AccountRequestSvcFacade
}

// newAccountRequestHandler creates a new accountRequestHandler.
func newAccountRequestHandler(ars portssvc.AccountRequestSvcFacade) *accountRequestHandler {
	return &accountRequestHandler{
		accountRequestService: ars,
	}
}

// registerAccountRequestRoutes registers routes related to account requests.
// A request is addressed by the relationship it is pending on.
func registerAccountRequestRoutes(rg *gin.RouterGroup, accountRequestService portssvc.AccountRequestSvcFacade) {
	h := newAccountRequestHandler(accountRequestService)

	requests := rg.Group("/account-requests")
	{
		requests.POST("", h.createAccountRequest)
		requests.GET("", h.listAccountRequests)
		requests.GET("/:relationship", h.getAccountRequest)
		requests.PUT("/:relationship", h.updateAccountRequest)
		requests.DELETE("/:relationship", h.deleteAccountRequest)
	}
}

// createAccountRequest handles POST /account-requests.
func (h *accountRequestHandler) createAccountRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAccountRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAccountRequest", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	ar, err := h.accountRequestService.CreateAccountRequest(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, logger, "create account request", err)
		return
	}

	logger.Info("Account request created successfully", slog.String("relationship_id", ar.RelationshipID))
	c.JSON(http.StatusCreated, dto.ToAccountRequestResponse(ar))
}

// listAccountRequests handles GET /account-requests. Supports filtering by
// source and destination address.
func (h *accountRequestHandler) listAccountRequests(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ListAccountRequestsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		logger.Warn("Failed to bind query for ListAccountRequests", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	ars, err := h.accountRequestService.ListAccountRequests(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, logger, "list account requests", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListAccountRequestResponse(ars))
}

// getAccountRequest handles GET /account-requests/:relationship.
func (h *accountRequestHandler) getAccountRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	relationshipID := c.Param("relationship")

	ar, err := h.accountRequestService.GetAccountRequest(c.Request.Context(), relationshipID)
	if err != nil {
		respondWithError(c, logger, "get account request", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountRequestResponse(ar))
}

// updateAccountRequest handles PUT /account-requests/:relationship.
func (h *accountRequestHandler) updateAccountRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	relationshipID := c.Param("relationship")
	var req dto.UpdateAccountRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateAccountRequest", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	ar, err := h.accountRequestService.UpdateAccountRequest(c.Request.Context(), relationshipID, req)
	if err != nil {
		respondWithError(c, logger, "update account request", err)
		return
	}

	logger.Info("Account request updated successfully", slog.String("relationship_id", ar.RelationshipID))
	c.JSON(http.StatusOK, dto.ToAccountRequestResponse(ar))
}

// deleteAccountRequest handles DELETE /account-requests/:relationship.
func (h *accountRequestHandler) deleteAccountRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	relationshipID := c.Param("relationship")

	if err := h.accountRequestService.DeleteAccountRequest(c.Request.Context(), relationshipID); err != nil {
		respondWithError(c, logger, "delete account request", err)
		return
	}

	logger.Info("Account request deleted successfully", slog.String("relationship_id", relationshipID))
	c.Status(http.StatusNoContent)
}
