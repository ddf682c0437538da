package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"paddock-backend/shared/database"
	"paddock-backend/shared/database/models"
	"paddock-backend/shared/middleware"
)

// UpdateProfileRequest represents the self-service profile edit body.
// Only the name fields are editable; email and the superadmin flag are
// owned by the auth subsystem.
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

// UpdateProfile edits the caller's own name fields
// @Summary Update my profile
// @Description Self-service edit of first and last name
// @Tags auth
// @Accept json
// @Produce json
// @Param profile body UpdateProfileRequest true "Name fields to update"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Updated profile"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Profile not found"
// @Router /auth/profile [put]
func UpdateProfile(ctx *gin.Context) {
	var req UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}

	var profile models.Profile
	if err := database.DB.First(&profile, middleware.CurrentUserID(ctx)).Error; err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	if req.FirstName != nil {
		profile.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		profile.LastName = strings.TrimSpace(*req.LastName)
	}

	if err := database.DB.Save(&profile).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to update profile",
			"message": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile updated successfully",
		"data":    profileResponse(&profile),
	})
}
