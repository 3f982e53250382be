// Package handler provides the HTTP handlers for favorites and wishlist.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authdto "estate_backend/internal/feature/auth/transport/http/dto"
	propentity "estate_backend/internal/feature/property/domain/entity"
	propdto "estate_backend/internal/feature/property/transport/http/dto"
	"estate_backend/internal/feature/relation/domain/entity"
	"estate_backend/internal/feature/relation/usecase"
	"estate_backend/internal/platform/http/respond"
)

// RelationUsecase defines the relation operations the handler needs.
type RelationUsecase interface {
	Add(ctx context.Context, userID string, kind entity.Kind, propertyID string) (*usecase.ExpandedUser, error)
	Remove(ctx context.Context, userID string, kind entity.Kind, propertyID string) (*usecase.ExpandedUser, error)
	List(ctx context.Context, userID string, kind entity.Kind) ([]propentity.Property, error)
}

// RelationHandler serves both relation kinds; the kind is fixed per route.
type RelationHandler struct {
	relations RelationUsecase
}

func NewRelationHandler(relations RelationUsecase) *RelationHandler {
	return &RelationHandler{relations: relations}
}

// Add handles POST /users/:userId/<kind>/:propertyId.
func (h *RelationHandler) Add(kind entity.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		userID, propertyID := c.Param("userId"), c.Param("propertyId")

		e, err := h.relations.Add(ctx, userID, kind, propertyID)
		if err != nil {
			slog.InfoContext(ctx, "relation add rejected",
				"relation", kind, "user_id", userID, "property_id", propertyID, "error", err)
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, expandedRes(e))
	}
}

// Remove handles DELETE /users/:userId/<kind>/:propertyId.
func (h *RelationHandler) Remove(kind entity.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		e, err := h.relations.Remove(c.Request.Context(), c.Param("userId"), kind, c.Param("propertyId"))
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, expandedRes(e))
	}
}

// List handles GET /users/:userId/<kind>.
func (h *RelationHandler) List(kind entity.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		props, err := h.relations.List(c.Request.Context(), c.Param("userId"), kind)
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, propdto.NewPropertyResList(props))
	}
}

// expandedRes renders the user with the touched relation as property objects.
func expandedRes(e *usecase.ExpandedUser) authdto.UserRes {
	res := authdto.NewUserRes(e.User)
	props := propdto.NewPropertyResList(e.Properties)
	switch e.Kind {
	case entity.Favorites:
		res.Favorites = props
	case entity.Wishlist:
		res.Wishlist = props
	}
	return res
}
