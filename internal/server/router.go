package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/yungbote/studydeck-backend/internal/handlers"
	"github.com/yungbote/studydeck-backend/internal/middleware"
)

type RouterConfig struct {
	AuthHandler     *handlers.AuthHandler
	AuthMiddleware  *middleware.AuthMiddleware
	DocumentHandler *handlers.DocumentHandler
	SignalHandler   *handlers.SignalHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()
	router.Use(otelgin.Middleware("studydeck"))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:80", "http://localhost:3000", "http://localhost:5174"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/register", cfg.AuthHandler.Register)
	router.POST("/login", cfg.AuthHandler.Login)
	router.POST("/refresh", cfg.AuthHandler.Refresh)

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	{
		protected.POST("/logout", cfg.AuthHandler.Logout)

		protected.GET("/courses", cfg.DocumentHandler.ListCourses)
		protected.GET("/courses/:slug", cfg.DocumentHandler.GetCourse)
		protected.PUT("/courses/:slug", cfg.DocumentHandler.SaveCourse)
		protected.DELETE("/courses/:slug", cfg.DocumentHandler.DeleteCourse)

		if cfg.SignalHandler != nil {
			protected.POST("/signal/sessions", cfg.SignalHandler.CreateSession)
			protected.POST("/signal/sessions/:session_id/offer", cfg.SignalHandler.PostOffer)
			protected.GET("/signal/sessions/:session_id/offer", cfg.SignalHandler.GetOffer)
			protected.POST("/signal/sessions/:session_id/answer", cfg.SignalHandler.PostAnswer)
			protected.GET("/signal/sessions/:session_id/answer", cfg.SignalHandler.GetAnswer)
			protected.POST("/signal/sessions/:session_id/candidates/:role", cfg.SignalHandler.PostCandidate)
			protected.GET("/signal/sessions/:session_id/candidates/:role", cfg.SignalHandler.ListCandidates)
		}
	}

	return router
}
