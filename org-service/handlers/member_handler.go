package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"paddock-backend/shared/middleware"
	"paddock-backend/shared/utils/access"
)

// GetMembers lists the members of an organization
// @Summary List organization members
// @Description Get the member list of an organization with profile data and role names
// @Tags members
// @Accept json
// @Produce json
// @Param id path string true "Organization ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid organization ID format"
// @Failure 403 {object} map[string]string "Not a member"
// @Router /orgs/{id}/members [get]
func GetMembers(ctx *gin.Context) {
	orgUUID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid organization ID format",
			"message": err.Error(),
		})
		return
	}

	userID := middleware.CurrentUserID(ctx)
	if membershipSvc.AccessLevel(userID, orgUUID) == access.LevelNone && !ctx.GetBool("isSuperadmin") {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Not a member of this organization"})
		return
	}

	members, err := membershipSvc.ListMembers(orgUUID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"items": members},
	})
}

// LeaveOrganization removes the caller's own membership
// @Summary Leave an organization
// @Description Remove the authenticated user's membership. Leaving an organization you are not a member of is not an error.
// @Tags members
// @Accept json
// @Produce json
// @Param id path string true "Organization ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid organization ID format"
// @Router /orgs/{id}/leave [post]
func LeaveOrganization(ctx *gin.Context) {
	orgUUID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid organization ID format",
			"message": err.Error(),
		})
		return
	}

	if err := membershipSvc.Leave(orgUUID, middleware.CurrentUserID(ctx)); err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Left organization",
	})
}

// KickMember removes another member from an organization
// @Summary Kick a member
// @Description Remove another user's membership. The acting user must hold level 3 in the organization and cannot kick themselves.
// @Tags members
// @Accept json
// @Produce json
// @Param id path string true "Organization ID" format(uuid)
// @Param userID path string true "Target user ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid ID format"
// @Failure 403 {object} map[string]string "Not allowed"
// @Router /orgs/{id}/members/{userID} [delete]
func KickMember(ctx *gin.Context) {
	orgUUID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid organization ID format",
			"message": err.Error(),
		})
		return
	}

	targetUUID, err := uuid.Parse(ctx.Param("userID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid user ID format",
			"message": err.Error(),
		})
		return
	}

	if err := membershipSvc.KickMember(orgUUID, middleware.CurrentUserID(ctx), targetUUID); err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Member removed",
	})
}
