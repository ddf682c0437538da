package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"paddock-backend/org-service/services"
	"paddock-backend/shared/clients"
	"paddock-backend/shared/database"
	"paddock-backend/shared/utils/cache"
)

var (
	membershipSvc *services.MembershipService
	inviteSvc     *services.InviteService
	requestSvc    *services.OrgRequestService
	orgSvc        *services.OrgService
)

// InitServices wires the org-service business logic. Must be called after
// the database is initialized.
func InitServices() {
	db := database.GetDB()
	cm := cache.GetCacheManager()
	notifier := clients.NewNotificationClient()

	membershipSvc = services.NewMembershipService(db, cm)
	inviteSvc = services.NewInviteService(db, membershipSvc, notifier)
	requestSvc = services.NewOrgRequestService(db, membershipSvc, notifier)
	orgSvc = services.NewOrgService(db, membershipSvc, cm)
}

// respondServiceError maps domain errors to HTTP responses. Validation
// failures are expected outcomes and carry their own message; anything
// unmatched is an unexpected storage failure.
func respondServiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEmptyName),
		errors.Is(err, services.ErrSelfInvite):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrDuplicateMembership),
		errors.Is(err, services.ErrAlreadyMember),
		errors.Is(err, services.ErrDuplicatePendingInvite),
		errors.Is(err, services.ErrDuplicatePendingRequest):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInviteNotFound),
		errors.Is(err, services.ErrRequestNotFound),
		errors.Is(err, services.ErrOrgNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInviteExpired):
		ctx.JSON(http.StatusGone, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotAllowed):
		ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Unexpected error",
			"message": err.Error(),
		})
	}
}
