package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"blog-backend/internal/shared/middleware"
	"blog-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupPostRoutes(v1, c)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.AuthorHandler.Register)
		auth.POST("/login", c.AuthorHandler.Login)
		auth.GET("/me", middleware.RequireAuthor(c.IdentityResolver), c.AuthorHandler.Me)
	}
}

// ========================================
// POST ROUTES
// ========================================
func setupPostRoutes(v1 *gin.RouterGroup, c *container.Container) {
	requireAuthor := middleware.RequireAuthor(c.IdentityResolver)

	posts := v1.Group("/posts")
	{
		// Public
		posts.GET("", c.PostHandler.List)
		posts.GET("/published", c.PostHandler.ListPublished)
		posts.GET("/:id", c.PostHandler.Get)

		// Authenticated; ownership is checked by the post guard
		posts.POST("", requireAuthor, c.PostHandler.Create)
		posts.PATCH("/:id", requireAuthor, c.PostHandler.Update)
		posts.DELETE("/:id", requireAuthor, c.PostHandler.Delete)
	}
}

// ========================================
// HEALTH
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		dbStatus := "ok"
		if appCtx.DB == nil {
			dbStatus = "disabled"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = "error"
				health["status"] = "degraded"
			}
		}

		cacheStatus := "ok"
		if appCtx.Cache != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				cacheStatus = "error"
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"cache":    cacheStatus,
		}

		statusCode := http.StatusOK
		if dbStatus == "error" {
			statusCode = http.StatusServiceUnavailable
		}
		c.JSON(statusCode, health)
	}
}
