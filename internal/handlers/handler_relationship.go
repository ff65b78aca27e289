package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/westbrown1/ripple/internal/core/ports/services"
	"github.com/westbrown1/ripple/internal/dto"
	"github.com/westbrown1/ripple/internal/middleware"
)

// relationshipHandler handles HTTP requests related to relationships.
type relationshipHandler struct {
	relationshipService portssvc.RelationshipSvcFacade
}

// newRelationshipHandler creates a new relationshipHandler.
func newRelationshipHandler(rs portssvc.RelationshipSvcFacade) *relationshipHandler {
	return &relationshipHandler{
		relationshipService: rs,
	}
}

// registerRelationshipRoutes registers routes related to relationships.
func registerRelationshipRoutes(rg *gin.RouterGroup, relationshipService portssvc.RelationshipSvcFacade) {
	h := newRelationshipHandler(relationshipService)

	relationships := rg.Group("/relationships")
	{
		relationships.POST("", h.createRelationship)
		relationships.GET("", h.listRelationships)
		relationships.GET("/:id", h.getRelationship)
		relationships.DELETE("/:id", h.deleteRelationship)
	}
}

// createRelationship handles POST /relationships. The body is empty; the
// server generates the id.
func (h *relationshipHandler) createRelationship(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rel, err := h.relationshipService.CreateRelationship(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, "create relationship", err)
		return
	}

	logger.Info("Relationship created successfully", slog.String("relationship_id", rel.RelationshipID))
	c.JSON(http.StatusCreated, dto.ToRelationshipResponse(rel))
}

// listRelationships handles GET /relationships.
func (h *relationshipHandler) listRelationships(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rels, err := h.relationshipService.ListRelationships(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, "list relationships", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListRelationshipResponse(rels))
}

// getRelationship handles GET /relationships/:id.
func (h *relationshipHandler) getRelationship(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id := c.Param("id")

	rel, err := h.relationshipService.GetRelationship(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, logger, "get relationship", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRelationshipResponse(rel))
}

// deleteRelationship handles DELETE /relationships/:id.
func (h *relationshipHandler) deleteRelationship(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id := c.Param("id")

	if err := h.relationshipService.DeleteRelationship(c.Request.Context(), id); err != nil {
		respondWithError(c, logger, "delete relationship", err)
		return
	}

	logger.Info("Relationship deleted successfully", slog.String("relationship_id", id))
	c.Status(http.StatusNoContent)
}
