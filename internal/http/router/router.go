package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecoconnect/ecoconnect-backend/internal/config"
	"github.com/ecoconnect/ecoconnect-backend/internal/http/handlers"
	"github.com/ecoconnect/ecoconnect-backend/internal/http/middleware"
	"github.com/ecoconnect/ecoconnect-backend/internal/service"
)

func SetupRouter(
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	eventHandler *handlers.EventHandler,
	reviewHandler *handlers.ReviewHandler,
	reportHandler *handlers.ReportHandler,
	adminHandler *handlers.AdminHandler,
	mediaHandler *handlers.MediaHandler,
	notificationHandler *handlers.NotificationHandler,
	wsHandler *handlers.WSHandler,
	healthHandler *handlers.HealthHandler,
	seedHandler *handlers.SeedHandler,
	tokenManager *service.TokenManager,
	policy *service.Policy,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", healthHandler.Health)
	r.StaticFS("/media", http.Dir(cfg.MediaStoragePath))

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod))
	{
		authGroup.POST("/zalo", authHandler.LoginZalo)
		authGroup.POST("/admin", authHandler.LoginAdmin)
	}

	// Публичные маршруты
	api.GET("/events", eventHandler.List)
	api.GET("/events/:id", middleware.UUIDValidator("id"), eventHandler.Get)
	api.GET("/events/:id/reviews", middleware.UUIDValidator("id"), reviewHandler.ListByEvent)
	api.GET("/users/:id", middleware.UUIDValidator("id"), userHandler.PublicProfile)
	api.GET("/ws", wsHandler.Handle)

	// Защищённые маршруты
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(tokenManager))
	{
		protected.GET("/auth/me", authHandler.Me)
		protected.PUT("/users/me", userHandler.UpdateProfile)
		protected.GET("/users/me/badges", userHandler.MyBadges)
		protected.GET("/users/me/history", userHandler.History)

		protected.POST("/events", eventHandler.Create)
		protected.GET("/events/my", eventHandler.MyEvents)
		protected.PUT("/events/:id", middleware.UUIDValidator("id"), eventHandler.Update)
		protected.DELETE("/events/:id", middleware.UUIDValidator("id"), eventHandler.Delete)
		protected.POST("/events/:id/join", middleware.UUIDValidator("id"), eventHandler.Join)
		protected.POST("/events/:id/leave", middleware.UUIDValidator("id"), eventHandler.Leave)
		protected.POST("/events/:id/complete", middleware.UUIDValidator("id"), eventHandler.Complete)
		protected.POST("/events/:id/reviews", middleware.UUIDValidator("id"), reviewHandler.Create)

		protected.POST("/reports", reportHandler.Create)

		protected.POST("/media/images", mediaHandler.Upload)

		protected.GET("/notifications", notificationHandler.List)
		protected.POST("/notifications/read-all", notificationHandler.MarkAllAsRead)
		protected.POST("/notifications/:id/read", middleware.UUIDValidator("id"), notificationHandler.MarkAsRead)
	}

	if seedHandler != nil && cfg.Env == "development" {
		api.POST("/seed", seedHandler.Seed)
	}

	// Маршруты модерации
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(tokenManager), middleware.RequireAdmin(policy))
	{
		admin.GET("/events", adminHandler.ListEvents)
		admin.POST("/events/:id/approve", middleware.UUIDValidator("id"), adminHandler.ApproveEvent)
		admin.POST("/events/:id/reject", middleware.UUIDValidator("id"), adminHandler.RejectEvent)
		admin.GET("/reports", adminHandler.ListTickets)
		admin.GET("/reports/:id", middleware.UUIDValidator("id"), adminHandler.GetTicket)
		admin.PUT("/reports/:id", middleware.UUIDValidator("id"), adminHandler.UpdateTicketStatus)
	}

	return r
}
