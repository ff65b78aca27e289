package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/westbrown1/ripple/internal/core/ports/services"
	"github.com/westbrown1/ripple/internal/dto"
	"github.com/westbrown1/ripple/internal/middleware"
)

// exchangeRateHandler handles HTTP requests related to named exchange rates.
type exchangeRateHandler struct {
	exchangeRateService portssvc.ExchangeRateSvcFacade
}

// newExchangeRateHandler creates a new exchangeRateHandler.
func newExchangeRateHandler(ers portssvc.ExchangeRateSvcFacade) *exchangeRateHandler {
	return &exchangeRateHandler{
		exchangeRateService: ers,
	}
}

// registerExchangeRateRoutes registers routes related to exchange rates.
func registerExchangeRateRoutes(rg *gin.RouterGroup, exchangeRateService portssvc.ExchangeRateSvcFacade) {
	h := newExchangeRateHandler(exchangeRateService)

	rates := rg.Group("/exchange-rates")
	{
		rates.POST("", h.createExchangeRate)
		rates.GET("", h.listExchangeRates)
		rates.GET("/:name", h.getExchangeRate)
		rates.PUT("/:name", h.updateExchangeRate)
		rates.DELETE("/:name", h.deleteExchangeRate)
		rates.GET("/:name/values", h.listExchangeRateValues)
	}
}

// createExchangeRate handles POST /exchange-rates. A rate value in the body
// writes the first value version together with the row.
func (h *exchangeRateHandler) createExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateExchangeRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	rate, err := h.exchangeRateService.CreateExchangeRate(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, logger, "create exchange rate", err)
		return
	}

	logger.Info("Exchange rate created successfully", slog.String("name", rate.Name))
	c.JSON(http.StatusCreated, dto.ToExchangeRateResponse(rate))
}

// listExchangeRates handles GET /exchange-rates. Supports filtering by
// owning client.
func (h *exchangeRateHandler) listExchangeRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ListExchangeRatesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		logger.Warn("Failed to bind query for ListExchangeRates", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	rates, err := h.exchangeRateService.ListExchangeRates(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, logger, "list exchange rates", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListExchangeRateResponse(rates))
}

// getExchangeRate handles GET /exchange-rates/:name.
func (h *exchangeRateHandler) getExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	name := c.Param("name")

	rate, err := h.exchangeRateService.GetExchangeRate(c.Request.Context(), name)
	if err != nil {
		respondWithError(c, logger, "get exchange rate", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}

// updateExchangeRate handles PUT /exchange-rates/:name. A rate value in the
// body rotates the active value version.
func (h *exchangeRateHandler) updateExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	name := c.Param("name")
	var req dto.UpdateExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateExchangeRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	rate, err := h.exchangeRateService.UpdateExchangeRate(c.Request.Context(), name, req)
	if err != nil {
		respondWithError(c, logger, "update exchange rate", err)
		return
	}

	logger.Info("Exchange rate updated successfully", slog.String("name", rate.Name))
	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}

// deleteExchangeRate handles DELETE /exchange-rates/:name.
func (h *exchangeRateHandler) deleteExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	name := c.Param("name")

	if err := h.exchangeRateService.DeleteExchangeRate(c.Request.Context(), name); err != nil {
		respondWithError(c, logger, "delete exchange rate", err)
		return
	}

	logger.Info("Exchange rate deleted successfully", slog.String("name", name))
	c.Status(http.StatusNoContent)
}

// listExchangeRateValues handles GET /exchange-rates/:name/values, the audit
// view of every value version ever written for the rate.
func (h *exchangeRateHandler) listExchangeRateValues(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	name := c.Param("name")

	values, err := h.exchangeRateService.ListExchangeRateValues(c.Request.Context(), name)
	if err != nil {
		respondWithError(c, logger, "list exchange rate values", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListVersionResponse(values))
}
