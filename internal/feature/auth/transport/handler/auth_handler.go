// Package handler provides the HTTP handlers for the auth feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"estate_backend/internal/feature/auth/domain/entity"
	"estate_backend/internal/feature/auth/transport/http/dto"
	"estate_backend/internal/platform/http/respond"
	jwtmw "estate_backend/internal/platform/jwt"
)

// AuthUsecase defines the use case for authentication operations.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type AuthUsecase interface {
	Register(ctx context.Context, name, email, password string) (*entity.User, error)
	Login(ctx context.Context, email, password string) (string, *entity.User, error)
	ListUsers(ctx context.Context) ([]entity.User, error)
	GetUser(ctx context.Context, id string) (*entity.User, error)
}

// AuthHandler handles HTTP requests for user accounts.
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Signup handles POST /users/signup.
// Binding failures and business-rule failures (duplicate email) are 400; success is 201 with the user.
func (h *AuthHandler) Signup(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "signup validation failed", "error", err, "remote_addr", c.ClientIP())
		respond.BadRequest(c, err.Error())
		return
	}
	user, err := h.auth.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		slog.WarnContext(ctx, "signup failed", "error", err, "remote_addr", c.ClientIP())
		respond.Error(c, err)
		return
	}
	slog.InfoContext(ctx, "user signup successful", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.NewUserRes(user))
}

// Login handles POST /users/login.
// Unknown email and wrong password produce the same 400 response.
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "login validation failed", "error", err, "remote_addr", c.ClientIP())
		respond.BadRequest(c, err.Error())
		return
	}
	token, user, err := h.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		slog.WarnContext(ctx, "login failed", "error", err, "remote_addr", c.ClientIP())
		respond.Error(c, err)
		return
	}
	slog.InfoContext(ctx, "user login successful", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.LoginRes{
		Token: token,
		User:  dto.LoginUser{ID: user.ID, Name: user.Name, Email: user.Email},
	})
}

// ListUsers handles GET /users.
func (h *AuthHandler) ListUsers(c *gin.Context) {
	users, err := h.auth.ListUsers(c.Request.Context())
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResList(users))
}

// Me handles GET /users/me. It must run behind jwtmw.AuthRequired.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
		return
	}
	user, err := h.auth.GetUser(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserRes(user))
}
