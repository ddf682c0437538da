package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"paddock-backend/care-service/services"
	"paddock-backend/shared/database"
	"paddock-backend/shared/middleware"
	"paddock-backend/shared/utils/access"
	"paddock-backend/shared/utils/cache"
)

var imageSvc *services.ImageService

// InitServices wires the care-service collaborators. Image storage is
// optional: without MinIO the species endpoints still work, minus images.
func InitServices() {
	svc, err := services.NewImageService()
	if err != nil {
		log.Printf("Warning: image storage unavailable: %v", err)
		return
	}
	imageSvc = svc
}

// requireLevel resolves the caller's access level for the org in the
// :orgID path param and aborts unless it meets the threshold. Returns
// the org id and whether the request may proceed.
func requireLevel(ctx *gin.Context, threshold int) (uuid.UUID, bool) {
	orgUUID, err := uuid.Parse(ctx.Param("orgID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid organization ID format",
			"message": err.Error(),
		})
		return uuid.Nil, false
	}

	userID := middleware.CurrentUserID(ctx)
	level := access.ResolveLevel(database.DB, cache.GetCacheManager(), userID, orgUUID)
	if level < threshold && !ctx.GetBool("isSuperadmin") {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Insufficient access level"})
		return uuid.Nil, false
	}

	return orgUUID, true
}
