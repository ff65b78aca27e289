package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/westbrown1/ripple/internal/core/ports/services"
	"github.com/westbrown1/ripple/internal/dto"
	"github.com/westbrown1/ripple/internal/middleware"
)

// exchangeHandler handles HTTP requests related to exchanges.
type exchangeHandler struct {
	exchangeService portssvc.ExchangeSvcFacade
}

// newExchangeHandler creates a new exchangeHandler.
func newExchangeHandler(es portssvc.ExchangeSvcFacade) *exchangeHandler {
	return &exchangeHandler{
		exchangeService: es,
	}
}

// registerExchangeRoutes registers routes related to exchanges. An exchange
// is addressed by its account pair.
func registerExchangeRoutes(rg *gin.RouterGroup, exchangeService portssvc.ExchangeSvcFacade) {
	h := newExchangeHandler(exchangeService)

	exchanges := rg.Group("/exchanges")
	{
		exchanges.POST("", h.createExchange)
		exchanges.GET("", h.listExchanges)
		exchanges.GET("/:source/:target", h.getExchange)
		exchanges.PUT("/:source/:target", h.updateExchange)
		exchanges.DELETE("/:source/:target", h.deleteExchange)
		exchanges.GET("/:source/:target/rates", h.listAssignedRates)
	}
}

// createExchange handles POST /exchanges. A rate name in the body assigns
// it together with the row.
func (h *exchangeHandler) createExchange(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateExchange", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	ex, err := h.exchangeService.CreateExchange(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, logger, "create exchange", err)
		return
	}

	logger.Info("Exchange created successfully",
		slog.String("source_account", ex.SourceAccount),
		slog.String("target_account", ex.TargetAccount))
	c.JSON(http.StatusCreated, dto.ToExchangeResponse(ex))
}

// listExchanges handles GET /exchanges.
func (h *exchangeHandler) listExchanges(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	exs, err := h.exchangeService.ListExchanges(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, "list exchanges", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListExchangeResponse(exs))
}

// getExchange handles GET /exchanges/:source/:target.
func (h *exchangeHandler) getExchange(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	source := c.Param("source")
	target := c.Param("target")

	ex, err := h.exchangeService.GetExchange(c.Request.Context(), source, target)
	if err != nil {
		respondWithError(c, logger, "get exchange", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToExchangeResponse(ex))
}

// updateExchange handles PUT /exchanges/:source/:target, reassigning the
// exchange's rate.
func (h *exchangeHandler) updateExchange(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	source := c.Param("source")
	target := c.Param("target")
	var req dto.UpdateExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateExchange", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	ex, err := h.exchangeService.UpdateExchange(c.Request.Context(), source, target, req)
	if err != nil {
		respondWithError(c, logger, "update exchange", err)
		return
	}

	logger.Info("Exchange rate reassigned successfully",
		slog.String("source_account", ex.SourceAccount),
		slog.String("target_account", ex.TargetAccount),
		slog.String("rate", req.Rate))
	c.JSON(http.StatusOK, dto.ToExchangeResponse(ex))
}

// deleteExchange handles DELETE /exchanges/:source/:target.
func (h *exchangeHandler) deleteExchange(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	source := c.Param("source")
	target := c.Param("target")

	if err := h.exchangeService.DeleteExchange(c.Request.Context(), source, target); err != nil {
		respondWithError(c, logger, "delete exchange", err)
		return
	}

	logger.Info("Exchange deleted successfully",
		slog.String("source_account", source),
		slog.String("target_account", target))
	c.Status(http.StatusNoContent)
}

// listAssignedRates handles GET /exchanges/:source/:target/rates, the audit
// view of every rate assignment ever made for the exchange.
func (h *exchangeHandler) listAssignedRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	source := c.Param("source")
	target := c.Param("target")

	rates, err := h.exchangeService.ListAssignedRates(c.Request.Context(), source, target)
	if err != nil {
		respondWithError(c, logger, "list assigned rates", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListVersionResponse(rates))
}
