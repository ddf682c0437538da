package main

import (
	"log"
	"net/http"
	"strings"

	"paddock-backend/org-service/handlers"
	"paddock-backend/shared/config"
	"paddock-backend/shared/database"
	"paddock-backend/shared/middleware"
	"paddock-backend/shared/utils/cache"

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

	// Redis access-level cache; the service degrades to the database when unavailable
	if err := cache.InitCacheManager(); err != nil {
		log.Printf("Warning: cache unavailable, access levels resolve from database: %v", err)
	}

	handlers.InitServices()

	router := gin.Default()

	authed := router.Group("/", middleware.AuthMiddleware())

	// Organization routes
	authed.GET("/api/orgs", handlers.GetMyOrganizations)
	authed.POST("/api/orgs", middleware.RequireSuperadmin(), handlers.CreateOrganization)
	authed.GET("/api/orgs/:id", handlers.GetOrganization)
	authed.DELETE("/api/orgs/:id", handlers.DeleteOrganization)

	// Membership routes
	authed.GET("/api/orgs/:id/members", handlers.GetMembers)
	authed.POST("/api/orgs/:id/leave", handlers.LeaveOrganization)
	authed.DELETE("/api/orgs/:id/members/:userID", handlers.KickMember)

	// Invite routes
	authed.GET("/api/orgs/:id/invites", handlers.GetOrgInvites)
	authed.POST("/api/orgs/:id/invites", handlers.CreateInvite)
	authed.GET("/api/invites", handlers.GetMyInvites)
	authed.POST("/api/invites/:id/accept", handlers.AcceptInvite)
	authed.POST("/api/invites/:id/reject", handlers.RejectInvite)
	authed.POST("/api/invites/:id/retract", handlers.RetractInvite)

	// Org request routes
	authed.POST("/api/org-requests", handlers.CreateOrgRequest)
	authed.GET("/api/org-requests", handlers.GetMyOrgRequests)
	authed.GET("/api/org-requests/pending", middleware.RequireSuperadmin(), handlers.GetPendingOrgRequests)
	authed.POST("/api/org-requests/:id/approve", middleware.RequireSuperadmin(), handlers.ApproveOrgRequest)
	authed.POST("/api/org-requests/:id/reject", middleware.RequireSuperadmin(), handlers.RejectOrgRequest)
	authed.POST("/api/org-requests/:id/retract", handlers.RetractOrgRequest)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "org",
		})
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Parse port from config URL
	port := strings.Split(config.GetConfig().OrgServiceURL, ":")[2]
	log.Printf("Org Service starting on port %s...", port)
	router.Run(":" + port)
}
