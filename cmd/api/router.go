package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bookmarketplace-backend/internal/shared/middleware"
	"bookmarketplace-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.Logger(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthorRoutes(v1, c)
		setupBookRoutes(v1, c)
		setupGenreRoutes(v1, c)
		setupPublisherRoutes(v1, c)
		setupSellerRoutes(v1, c)
	}

	return router
}

func setupAuthorRoutes(v1 *gin.RouterGroup, c *container.Container) {
	authors := v1.Group("/authors")
	{
		authors.POST("", c.AuthorHandler.Create)
		authors.GET("", c.AuthorHandler.GetAll)
		authors.GET("/:id", c.AuthorHandler.GetByID)
		authors.PUT("/:id", c.AuthorHandler.Update)
		authors.DELETE("/:id", c.AuthorHandler.Delete)
	}
}

func setupBookRoutes(v1 *gin.RouterGroup, c *container.Container) {
	books := v1.Group("/books")
	{
		books.POST("", c.BookHandler.Create)
		books.GET("", c.BookHandler.GetAll)
		books.GET("/:id", c.BookHandler.GetByID)
		books.PUT("/:id", c.BookHandler.Update)
		books.DELETE("/:id", c.BookHandler.Delete)
	}
}

func setupGenreRoutes(v1 *gin.RouterGroup, c *container.Container) {
	genres := v1.Group("/genres")
	{
		genres.POST("", c.GenreHandler.Create)
		genres.GET("", c.GenreHandler.GetAll)
		genres.GET("/:id", c.GenreHandler.GetByID)
		genres.PUT("/:id", c.GenreHandler.Update)
		genres.DELETE("/:id", c.GenreHandler.Delete)
	}
}

func setupPublisherRoutes(v1 *gin.RouterGroup, c *container.Container) {
	publishers := v1.Group("/publishers")
	{
		publishers.POST("", c.PublisherHandler.Create)
		publishers.GET("", c.PublisherHandler.GetAll)
		publishers.GET("/:id", c.PublisherHandler.GetByID)
		publishers.PUT("/:id", c.PublisherHandler.Update)
		publishers.DELETE("/:id", c.PublisherHandler.Delete)
	}
}

func setupSellerRoutes(v1 *gin.RouterGroup, c *container.Container) {
	sellers := v1.Group("/sellers")
	{
		sellers.POST("", c.SellerHandler.Create)
		sellers.GET("", c.SellerHandler.GetAll)
		sellers.GET("/:id", c.SellerHandler.GetByID)
		sellers.PUT("/:id", c.SellerHandler.Update)
		sellers.DELETE("/:id", c.SellerHandler.Delete)
	}
}

func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		dbStatus := "ok"
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := appCtx.DB.HealthCheck(ctx); err != nil {
			dbStatus = fmt.Sprintf("error: %v", err)
			health["status"] = "degraded"
		}

		redisStatus := "disabled"
		if appCtx.Cache != nil {
			redisStatus = "ok"
			if err := appCtx.Cache.Ping(ctx); err != nil {
				redisStatus = fmt.Sprintf("error: %v", err)
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}
		c.JSON(statusCode, health)
	}
}
