// Package handler provides the HTTP handlers for the property feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authdto "estate_backend/internal/feature/auth/transport/http/dto"
	"estate_backend/internal/feature/property/domain/entity"
	"estate_backend/internal/feature/property/transport/http/dto"
	"estate_backend/internal/feature/property/usecase"
	"estate_backend/internal/platform/http/respond"
)

// PropertyUsecase defines the property operations the handler needs.
type PropertyUsecase interface {
	ListProperties(ctx context.Context) ([]entity.Property, error)
	GetProperty(ctx context.Context, id string) (*entity.Property, error)
	AddProperty(ctx context.Context, ownerID string, in usecase.PropertyInput) (*usecase.Owner, error)
	UpdateProperty(ctx context.Context, id string, in usecase.PropertyInput) (*entity.Property, error)
	DeleteProperty(ctx context.Context, id string) error
	ListOwnedProperties(ctx context.Context, userID string) ([]entity.Property, error)
}

type PropertyHandler struct {
	props PropertyUsecase
}

func NewPropertyHandler(props PropertyUsecase) *PropertyHandler {
	return &PropertyHandler{props: props}
}

// List handles GET /property.
func (h *PropertyHandler) List(c *gin.Context) {
	props, err := h.props.ListProperties(c.Request.Context())
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPropertyResList(props))
}

// Get handles GET /property/:id.
func (h *PropertyHandler) Get(c *gin.Context) {
	p, err := h.props.GetProperty(c.Request.Context(), c.Param("id"))
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPropertyRes(p))
}

// Add handles POST /property/add-property/:id, where id is the owner.
// The response is the owner with ownedResidencies resolved to {id, title}.
func (h *PropertyHandler) Add(c *gin.Context) {
	ctx := c.Request.Context()
	ownerID := c.Param("id")

	in, ok := bindInput(c)
	if !ok {
		return
	}
	owner, err := h.props.AddProperty(ctx, ownerID, in)
	if err != nil {
		respond.Error(c, err)
		return
	}
	slog.InfoContext(ctx, "property listed", "owner_id", ownerID, "title", in.Title())

	res := authdto.NewUserRes(owner.User)
	res.OwnedResidencies = make([]authdto.ResidencyRes, 0, len(owner.Residencies))
	for _, p := range owner.Residencies {
		res.OwnedResidencies = append(res.OwnedResidencies, authdto.ResidencyRes{ID: p.ID, Title: p.Title})
	}
	c.JSON(http.StatusOK, res)
}

// Update handles PUT /property/:id. Every listing field is replaced.
func (h *PropertyHandler) Update(c *gin.Context) {
	in, ok := bindInput(c)
	if !ok {
		return
	}
	p, err := h.props.UpdateProperty(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPropertyRes(p))
}

// Delete handles DELETE /property/:id.
func (h *PropertyHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	if err := h.props.DeleteProperty(ctx, id); err != nil {
		respond.Error(c, err)
		return
	}
	slog.InfoContext(ctx, "property deleted", "property_id", id)
	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}

// ListOwned handles GET /users/:userId/properties.
func (h *PropertyHandler) ListOwned(c *gin.Context) {
	props, err := h.props.ListOwnedProperties(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPropertyResList(props))
}

// bindInput decodes and validates the body. On failure the response is already written.
func bindInput(c *gin.Context) (usecase.PropertyInput, bool) {
	var req dto.PropertyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(c.Request.Context(), "property body rejected", "error", err)
		respond.BadRequest(c, "invalid request body")
		return usecase.PropertyInput{}, false
	}
	in, err := usecase.ParsePropertyInput(req.Raw())
	if err != nil {
		respond.Error(c, err)
		return usecase.PropertyInput{}, false
	}
	return in, true
}
