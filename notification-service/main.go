package main

import (
	"log"
	"net/http"
	"strings"

	"paddock-backend/notification-service/handlers"
	"paddock-backend/shared/config"
	"paddock-backend/shared/database"
	"paddock-backend/shared/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func main() {
	// Load configuration
	config.LoadConfig()

	// Initialize database
	if err := database.InitDatabase(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.CloseDatabase()

	// Initialize email service
	handlers.InitServices()

	router := gin.Default()

	// Internal endpoints called by other services, not exposed through
	// the gateway
	router.POST("/api/notify/email/invite", handlers.SendInviteEmail)
	router.POST("/api/notify/email/request-reviewed", handlers.SendRequestReviewedEmail)
	router.POST("/api/notify/in-app", handlers.CreateInAppNotification)

	// User-facing endpoints
	authed := router.Group("/", middleware.AuthMiddleware())
	authed.GET("/api/notifications", handlers.ListNotifications)
	authed.PUT("/api/notifications/:id/read", handlers.MarkNotificationRead)
	authed.PUT("/api/notifications/read-all", handlers.MarkAllNotificationsRead)
	authed.GET("/api/ws", handlers.HandleWebSocket)

	// WebSocket status
	router.GET("/api/ws/status", handlers.GetWebSocketStatus)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "notification",
		})
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Parse port from config URL
	port := strings.Split(config.GetConfig().NotificationServiceURL, ":")[2]
	log.Printf("Notification Service starting on port %s...", port)
	router.Run(":" + port)
}
