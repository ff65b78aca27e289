package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/westbrown1/ripple/internal/core/ports/services"
	"github.com/westbrown1/ripple/internal/dto"
	"github.com/westbrown1/ripple/internal/middleware"
)

// addressHandler handles HTTP requests related to addresses.
type addressHandler struct {
	addressService portssvc.AddressSvcFacade
}

// newAddressHandler creates a new addressHandler.
func newAddressHandler(as portssvc.AddressSvcFacade) *addressHandler {
	return &addressHandler{
		addressService: as,
	}
}

// registerAddressRoutes registers routes related to addresses.
func registerAddressRoutes(rg *gin.RouterGroup, addressService portssvc.AddressSvcFacade) {
	h := newAddressHandler(addressService)

	addresses := rg.Group("/addresses")
	{
		addresses.POST("", h.createAddress)
		addresses.GET("", h.listAddresses)
		addresses.GET("/:address", h.getAddress)
		addresses.PUT("/:address", h.updateAddress)
		addresses.DELETE("/:address", h.deleteAddress)
	}
}

// createAddress handles POST /addresses.
func (h *addressHandler) createAddress(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAddress", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	addr, err := h.addressService.CreateAddress(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, logger, "create address", err)
		return
	}

	logger.Info("Address created successfully", slog.String("address", addr.Address))
	c.JSON(http.StatusCreated, dto.ToAddressResponse(addr))
}

// listAddresses handles GET /addresses. Supports filtering by owning client.
func (h *addressHandler) listAddresses(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ListAddressesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		logger.Warn("Failed to bind query for ListAddresses", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	addrs, err := h.addressService.ListAddresses(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, logger, "list addresses", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListAddressResponse(addrs))
}

// getAddress handles GET /addresses/:address.
func (h *addressHandler) getAddress(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	address := c.Param("address")

	addr, err := h.addressService.GetAddress(c.Request.Context(), address)
	if err != nil {
		respondWithError(c, logger, "get address", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAddressResponse(addr))
}

// updateAddress handles PUT /addresses/:address.
func (h *addressHandler) updateAddress(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	address := c.Param("address")
	var req dto.UpdateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateAddress", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	addr, err := h.addressService.UpdateAddress(c.Request.Context(), address, req)
	if err != nil {
		respondWithError(c, logger, "update address", err)
		return
	}

	logger.Info("Address updated successfully", slog.String("address", addr.Address))
	c.JSON(http.StatusOK, dto.ToAddressResponse(addr))
}

// deleteAddress handles DELETE /addresses/:address.
func (h *addressHandler) deleteAddress(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	address := c.Param("address")

	if err := h.addressService.DeleteAddress(c.Request.Context(), address); err != nil {
		respondWithError(c, logger, "delete address", err)
		return
	}

	logger.Info("Address deleted successfully", slog.String("address", address))
	c.Status(http.StatusNoContent)
}
