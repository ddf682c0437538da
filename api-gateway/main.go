package main

import (
	"log"
	"net/http"
	"strings"

	"paddock-backend/api-gateway/middleware"
	"paddock-backend/api-gateway/routes"
	"paddock-backend/shared/config"

	_ "paddock-backend/docs/swagger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Paddock API
// @version 1.0
// @description API documentation for the Paddock animal care platform

// @contact.name API Support
// @contact.email support@paddock.app

// @host localhost:8000
// @BasePath /api
// @schemes http https

// @tag.name auth
// @tag.description Authentication operations

// @tag.name organizations
// @tag.description Organization lifecycle operations

// @tag.name members
// @tag.description Organization membership operations

// @tag.name invites
// @tag.description Invitation lifecycle operations

// @tag.name org-requests
// @tag.description Organization creation request operations

// @tag.name enclosures
// @tag.description Enclosure management operations

// @tag.name species
// @tag.description Species management operations

// @tag.name tasks
// @tag.description Caretaking task operations

// @tag.name notifications
// @tag.description Notification operations

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT token.

func main() {
	// Load configuration
	config.LoadConfig()

	// Global rate limit configuration from environment variables
	rateConfig := middleware.NewRateLimitConfig()

	router := gin.Default()

	// CORS for the frontend
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{config.GetConfig().FrontendURL}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	// Redis-backed rate limiting
	router.Use(middleware.RateLimitMiddleware(rateConfig))

	// Unified response envelope for all proxied responses
	router.Use(middleware.UnifiedResponseMiddleware())

	// Health check endpoint
	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "API Gateway is running"})
	})

	// Auth routes, the auth service validates tokens itself
	router.Any("/api/auth/*path", routes.ProxyToService("auth"))

	// Organization lifecycle, membership, invites and requests
	router.Any("/api/orgs", routes.ProxyToService("org"))
	router.Any("/api/invites", routes.ProxyToService("org"))
	router.Any("/api/invites/*path", routes.ProxyToService("org"))
	router.Any("/api/org-requests", routes.ProxyToService("org"))
	router.Any("/api/org-requests/*path", routes.ProxyToService("org"))

	// Org-scoped routes split between the org and care services. The
	// care service owns enclosures, species and tasks; everything else
	// under /api/orgs/:id belongs to the org service.
	router.Any("/api/orgs/*path", func(ctx *gin.Context) {
		path := ctx.Param("path")
		if isCareRoute(path) {
			routes.ProxyToService("care")(ctx)
			return
		}
		routes.ProxyToService("org")(ctx)
	})

	// Notification routes
	router.Any("/api/notifications", routes.ProxyToService("notification"))
	router.Any("/api/notifications/*path", routes.ProxyToService("notification"))
	router.GET("/api/ws", routes.ProxyToService("notification"))
	router.GET("/api/ws/status", routes.ProxyToService("notification"))

	// Swagger documentation UI, development only
	router.GET("/swagger/*any", func(c *gin.Context) {
		if gin.Mode() == gin.DebugMode {
			ginSwagger.WrapHandler(swaggerFiles.Handler)(c)
		} else {
			c.JSON(http.StatusNotFound, gin.H{
				"message": "Swagger documentation not available in production",
			})
		}
	})

	// Server Start
	port := strings.Split(config.GetConfig().APIGatewayURL, ":")[2]
	log.Printf("API Gateway is running on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// isCareRoute reports whether an /api/orgs/:id subpath belongs to the
// care service. The path looks like "/<orgID>/<section>/...".
func isCareRoute(path string) bool {
	parts := strings.SplitN(strings.TrimPrefix(path, "/"), "/", 3)
	if len(parts) < 2 {
		return false
	}
	switch parts[1] {
	case "enclosures", "species", "tasks":
		return true
	}
	return false
}
