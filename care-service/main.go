package main

import (
	"log"
	"net/http"
	"strings"

	"paddock-backend/care-service/handlers"
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

	// Initialize image storage
	handlers.InitServices()

	router := gin.Default()

	authed := router.Group("/", middleware.AuthMiddleware())

	// Enclosure routes
	enclosures := authed.Group("/api/orgs/:orgID/enclosures")
	enclosures.GET("", handlers.ListEnclosures)
	enclosures.POST("", handlers.CreateEnclosure)
	enclosures.GET("/:enclosureID", handlers.GetEnclosure)
	enclosures.PUT("/:enclosureID", handlers.UpdateEnclosure)
	enclosures.DELETE("/:enclosureID", handlers.DeleteEnclosure)
	enclosures.GET("/:enclosureID/tasks", handlers.ListTaskTemplates)
	enclosures.POST("/:enclosureID/tasks", handlers.CreateTaskTemplate)

	// Species routes
	species := authed.Group("/api/orgs/:orgID/species")
	species.GET("", handlers.ListSpecies)
	species.POST("", handlers.CreateSpecies)
	species.PUT("/:speciesID", handlers.UpdateSpecies)
	species.DELETE("/:speciesID", handlers.DeleteSpecies)
	species.POST("/:speciesID/image", handlers.UploadSpeciesImage)
	species.GET("/:speciesID/image", handlers.GetSpeciesImage)

	// Task routes
	tasks := authed.Group("/api/orgs/:orgID/tasks")
	tasks.GET("/overview", handlers.GetTaskOverview)
	tasks.DELETE("/:templateID", handlers.DeleteTaskTemplate)
	tasks.POST("/:templateID/complete", handlers.CompleteTask)
	tasks.GET("/:templateID/completions", handlers.ListTaskCompletions)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "care",
		})
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Parse port from config URL
	port := strings.Split(config.GetConfig().CareServiceURL, ":")[2]
	log.Printf("Care Service starting on port %s...", port)
	router.Run(":" + port)
}
