package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/westbrown1/ripple/internal/core/ports/services"
	"github.com/westbrown1/ripple/internal/dto"
	"github.com/westbrown1/ripple/internal/middleware"
)

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{
		accountService: as,
	}
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:name", h.getAccount)
		accounts.PUT("/:name", h.updateAccount)
		accounts.DELETE("/:name", h.deleteAccount)
		accounts.GET("/:name/limits", h.listAccountLimits)
	}
}

// createAccount handles POST /accounts. Limit fields in the body write the
// first limit version together with the account row.
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	acct, err := h.accountService.CreateAccount(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, logger, "create account", err)
		return
	}

	logger.Info("Account created successfully", slog.String("name", acct.Name))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(acct))
}

// listAccounts handles GET /accounts. Supports filtering by relationship,
// node and active flag.
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ListAccountsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		logger.Warn("Failed to bind query for ListAccounts", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	accts, err := h.accountService.ListAccounts(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, logger, "list accounts", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListAccountResponse(accts))
}

// getAccount handles GET /accounts/:name.
func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	name := c.Param("name")

	acct, err := h.accountService.GetAccount(c.Request.Context(), name)
	if err != nil {
		respondWithError(c, logger, "get account", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(acct))
}

// updateAccount handles PUT /accounts/:name. Limit fields in the body
// rotate the active limit version.
func (h *accountHandler) updateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	name := c.Param("name")
	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	acct, err := h.accountService.UpdateAccount(c.Request.Context(), name, req)
	if err != nil {
		respondWithError(c, logger, "update account", err)
		return
	}

	logger.Info("Account updated successfully", slog.String("name", acct.Name))
	c.JSON(http.StatusOK, dto.ToAccountResponse(acct))
}

// deleteAccount handles DELETE /accounts/:name.
func (h *accountHandler) deleteAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	name := c.Param("name")

	if err := h.accountService.DeleteAccount(c.Request.Context(), name); err != nil {
		respondWithError(c, logger, "delete account", err)
		return
	}

	logger.Info("Account deleted successfully", slog.String("name", name))
	c.Status(http.StatusNoContent)
}

// listAccountLimits handles GET /accounts/:name/limits, the audit view of
// every limit version ever written for the account.
func (h *accountHandler) listAccountLimits(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	name := c.Param("name")

	limits, err := h.accountService.ListAccountLimits(c.Request.Context(), name)
	if err != nil {
		respondWithError(c, logger, "list account limits", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListVersionResponse(limits))
}
