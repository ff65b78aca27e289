package handlers

import (
	"github.com/gin-gonic/gin"

	portssvc "github.com/westbrown1/ripple/internal/core/ports/services"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
) {

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Setup API v1 routes, passing service interfaces
	setupAPIV1Routes(r, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1")

	// Delegate route registration to specific handlers, passing required services
	registerClientRoutes(v1, services.Client)
	registerRelationshipRoutes(v1, services.Relationship)
	registerNodeRoutes(v1, services.Node)
	registerAddressRoutes(v1, services.Address)
	registerAccountRoutes(v1, services.Account)
	registerAccountRequestRoutes(v1, services.AccountRequest)
	registerExchangeRateRoutes(v1, services.ExchangeRate)
	registerExchangeRoutes(v1, services.Exchange)
}
