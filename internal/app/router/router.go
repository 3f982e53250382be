// Package router wires every HTTP route of the API.
package router

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	sloggin "github.com/samber/slog-gin"

	authhandler "estate_backend/internal/feature/auth/transport/handler"
	propertyhandler "estate_backend/internal/feature/property/transport/handler"
	relationentity "estate_backend/internal/feature/relation/domain/entity"
	relationhandler "estate_backend/internal/feature/relation/transport/handler"
	"estate_backend/internal/platform/http/handler"
	"estate_backend/internal/platform/http/middleware"
	jwtmw "estate_backend/internal/platform/jwt"
)

// Options are the switches that change the route table.
type Options struct {
	// CORSOrigins empty or ["*"] allows every origin.
	CORSOrigins []string
	// AuthRequiredForWrites guards every mutating property and relation route with a Bearer token.
	AuthRequiredForWrites bool
}

// Handlers groups the feature handlers the router mounts.
type Handlers struct {
	Auth      *authhandler.AuthHandler
	Property  *propertyhandler.PropertyHandler
	Relation  *relationhandler.RelationHandler
	Readiness *handler.Readiness
}

func NewRouter(logger *slog.Logger, h Handlers, verifier jwtmw.Verifier, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())
	r.Use(corsMiddleware(opts.CORSOrigins))

	authMW := jwtmw.AuthRequired(verifier)

	// writes are open unless AuthRequiredForWrites is set
	write := []gin.HandlerFunc{}
	if opts.AuthRequiredForWrites {
		write = append(write, authMW)
	}
	guard := func(hf gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, write...), hf)
	}

	// health
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	if h.Readiness != nil {
		r.GET("/readyz", h.Readiness.Handle)
	}

	users := r.Group("/users")
	{
		users.POST("/signup", h.Auth.Signup)
		users.POST("/login", h.Auth.Login)
		users.GET("", h.Auth.ListUsers)
		users.GET("/me", authMW, h.Auth.Me)
		users.GET("/:userId/properties", h.Property.ListOwned)

		for _, kind := range relationentity.Kinds {
			users.POST("/:userId/"+kind.String()+"/:propertyId", guard(h.Relation.Add(kind))...)
			users.DELETE("/:userId/"+kind.String()+"/:propertyId", guard(h.Relation.Remove(kind))...)
			users.GET("/:userId/"+kind.String(), h.Relation.List(kind))
		}
	}

	property := r.Group("/property")
	{
		property.GET("", h.Property.List)
		property.GET("/:id", h.Property.Get)
		property.POST("/add-property/:id", guard(h.Property.Add)...)
		property.PUT("/:id", guard(h.Property.Update)...)
		property.DELETE("/:id", guard(h.Property.Delete)...)
	}

	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cors.New(cfg)
}
