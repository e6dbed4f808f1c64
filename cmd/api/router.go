package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"shop-backend/internal/shared/metrics"
	"shop-backend/internal/shared/middleware"
	"shop-backend/pkg/container"
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

	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupCountryRoutes(v1, c)
		setupAddressRoutes(v1, c)
		setupBrandRoutes(v1, c)
		setupFeedbackRoutes(v1, c)
		setupCacheRoutes(v1, c)
	}

	return router
}

func authenticated(c *container.Container) gin.HandlerFunc {
	return middleware.AuthMiddleware(c.JWTManager)
}

// ========================================
// COUNTRY + PROVINCE ROUTES (admin)
// ========================================
func setupCountryRoutes(v1 *gin.RouterGroup, c *container.Container) {
	countries := v1.Group("/countries")
	countries.Use(authenticated(c), middleware.AdminMiddleware())
	{
		countries.POST("/grid", c.CountryHandler.Grid)
		countries.GET("", c.CountryHandler.ListAll)
		countries.GET("/:id", c.CountryHandler.Get)
		countries.POST("", c.CountryHandler.Create)
		countries.PUT("/:id", c.CountryHandler.Update)
		countries.DELETE("/:id", c.CountryHandler.Delete)
	}

	provinces := countries.Group("/provinces")
	{
		provinces.POST("/grid/:countryId", c.ProvinceHandler.Grid)
		provinces.GET("/tree/:countryId", c.ProvinceHandler.Tree)
		provinces.GET("/:id", c.ProvinceHandler.Get)
		provinces.POST("/:countryId", c.ProvinceHandler.Create)
		provinces.PUT("/:id", c.ProvinceHandler.Update)
		provinces.DELETE("/:id", c.ProvinceHandler.Delete)
	}
}

// ========================================
// USER ADDRESS ROUTES
// ========================================
func setupAddressRoutes(v1 *gin.RouterGroup, c *container.Container) {
	addresses := v1.Group("/user-addresses")
	addresses.Use(authenticated(c))
	{
		addresses.GET("/provinces", c.ProvinceHandler.LocationLists)
		addresses.GET("", c.AddressHandler.List)
		addresses.GET("/:id", c.AddressHandler.Get)
		addresses.POST("", c.AddressHandler.Create)
		addresses.PUT("/:id", c.AddressHandler.Update)
		addresses.DELETE("/:id", c.AddressHandler.Delete)
	}
}

// ========================================
// BRAND ROUTES
// ========================================
func setupBrandRoutes(v1 *gin.RouterGroup, c *container.Container) {
	brands := v1.Group("/brands")
	brands.GET("", c.BrandHandler.ListPublished)

	admin := brands.Group("")
	admin.Use(authenticated(c), middleware.AdminMiddleware())
	{
		admin.POST("/grid", c.BrandHandler.Grid)
		admin.POST("/clear-cache", c.BrandHandler.ClearCache)
		admin.GET("/:id", c.BrandHandler.Get)
		admin.POST("", c.BrandHandler.Create)
		admin.PUT("/:id", c.BrandHandler.Update)
		admin.DELETE("/:id", c.BrandHandler.Delete)
	}
}

// ========================================
// FEEDBACK ROUTES
// ========================================
func setupFeedbackRoutes(v1 *gin.RouterGroup, c *container.Container) {
	feedbacks := v1.Group("/feedbacks")
	feedbacks.Use(authenticated(c))
	{
		feedbacks.POST("", c.FeedbackHandler.Submit)
		feedbacks.POST("/grid", middleware.AdminMiddleware(), c.FeedbackHandler.Grid)
		feedbacks.DELETE("/:id", middleware.AdminMiddleware(), c.FeedbackHandler.Delete)
	}
}

// ========================================
// CACHE ADMIN ROUTES
// ========================================
func setupCacheRoutes(v1 *gin.RouterGroup, c *container.Container) {
	caches := v1.Group("/caches")
	caches.Use(authenticated(c), middleware.AdminMiddleware())
	{
		caches.DELETE("/clear", c.CacheHandler.ClearAll)
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		// Check database
		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
		} else if err := appCtx.DB.HealthCheck(ctx); err != nil {
			dbStatus = "error: " + err.Error()
		}
		if dbStatus != "ok" {
			health["status"] = "degraded"
		}

		// Check cache
		cacheStatus := "ok"
		if err := appCtx.Cache.Ping(ctx); err != nil {
			cacheStatus = "error: " + err.Error()
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"cache":    cacheStatus,
			"queue":    appCtx.AsynqClient != nil,
		}
		if appCtx.DB != nil {
			if stats, err := appCtx.DB.Stats(); err == nil {
				health["pool"] = stats
			}
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}
		c.JSON(statusCode, health)
	}
}
