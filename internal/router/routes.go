package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/udmdigital/lead-crm-api/internal/auth"
	"github.com/udmdigital/lead-crm-api/internal/config"
	"github.com/udmdigital/lead-crm-api/internal/handler"
	middlewarepkg "github.com/udmdigital/lead-crm-api/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Auth          *handler.AuthHandler
	Leads         *handler.LeadsHandler
	Conversations *handler.ConversationsHandler
	Attachments   *handler.AttachmentsHandler
}

// Register wires all HTTP routes for the API.
func Register(e *echo.Echo, cfg *config.Config, jwtManager *auth.JWTManager, handlers Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return handler.Success(c, http.StatusOK, "service healthy", map[string]any{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.POST("/auth/register", handlers.Auth.Register)
	e.POST("/auth/login", handlers.Auth.Login)
	e.POST("/auth/reset-password", handlers.Auth.ResetPassword)
	e.POST("/auth/reset-password/complete", handlers.Auth.CompleteReset)

	secured := e.Group("")
	secured.Use(middlewarepkg.JWT(jwtManager))

	secured.GET("/auth/me", handlers.Auth.Me)

	secured.GET("/leads", handlers.Leads.List)
	secured.GET("/leads/search", handlers.Leads.Search, middlewarepkg.SearchRateLimiter(cfg.RateLimitSearch))
	secured.POST("/leads", handlers.Leads.Create)
	secured.GET("/leads/:id", handlers.Leads.Get)
	secured.PATCH("/leads/:id", handlers.Leads.Update)
	secured.PATCH("/leads/:id/stage", handlers.Leads.UpdateStage)
	secured.PATCH("/leads/:id/status", handlers.Leads.UpdateStatus)
	secured.DELETE("/leads/:id", handlers.Leads.Delete, middlewarepkg.RequireRole("admin"))

	secured.GET("/leads/:id/conversations", handlers.Conversations.List)
	secured.POST("/leads/:id/conversations", handlers.Conversations.Create)

	secured.GET("/leads/:id/attachments", handlers.Attachments.List)
	secured.POST("/leads/:id/attachments", handlers.Attachments.Create)
	secured.DELETE("/attachments/:id", handlers.Attachments.Delete)
}
