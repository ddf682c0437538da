// Package docs Paddock API documentation
package docs

// Swagger documentation info
// @title Paddock API
// @version 1.0
// @description Central API documentation - For all Paddock microservices

// @contact.name API Support
// @contact.email support@paddock.app

// @host localhost:8000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT token.

// Auth Service Endpoints
// @tag.name auth
// @tag.description Authentication and profile management

// Org Service Endpoints
// @tag.name organizations
// @tag.description Organization lifecycle
// @tag.name members
// @tag.description Organization membership
// @tag.name invites
// @tag.description Invitation lifecycle
// @tag.name org-requests
// @tag.description Organization creation requests

// Care Service Endpoints
// @tag.name enclosures
// @tag.description Enclosure management
// @tag.name species
// @tag.description Species management
// @tag.name tasks
// @tag.description Caretaking tasks

// Notification Service Endpoints
// @tag.name notifications
// @tag.description In-app notifications and websocket delivery
// @tag.name email
// @tag.description Internal email delivery
