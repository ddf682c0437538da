package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"paddock-backend/notification-service/services"
	"paddock-backend/shared/config"
)

var emailService *services.EmailService

// InitServices wires the notification-service collaborators
func InitServices() {
	emailService = services.NewEmailService(config.GetConfig())
}

// SendInviteEmail mails an organization invitation
// @Summary Send an invitation email
// @Description Internal endpoint used by the org service when an invitation is created
// @Tags email
// @Accept json
// @Produce json
// @Param request body map[string]string true "Invite email data"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid request"
// @Router /notify/email/invite [post]
func SendInviteEmail(ctx *gin.Context) {
	var req struct {
		Email       string `json:"email" binding:"required,email"`
		OrgName     string `json:"org_name" binding:"required"`
		InviterName string `json:"inviter_name"`
		RoleName    string `json:"role_name"`
		ExpiresAt   string `json:"expires_at"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	response, err := emailService.SendInviteEmail(
		req.Email, req.OrgName, req.InviterName, req.RoleName, req.ExpiresAt)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to send email",
			"message": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    response,
	})
}

// SendRequestReviewedEmail mails an org-request review outcome
// @Summary Send a request-reviewed email
// @Description Internal endpoint used by the org service after an organization request is approved or rejected
// @Tags email
// @Accept json
// @Produce json
// @Param request body map[string]interface{} true "Review outcome data"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid request"
// @Router /notify/email/request-reviewed [post]
func SendRequestReviewedEmail(ctx *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Name     string `json:"name"`
		OrgName  string `json:"org_name" binding:"required"`
		Approved bool   `json:"approved"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	response, err := emailService.SendRequestReviewedEmail(
		req.Email, req.Name, req.OrgName, req.Approved)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to send email",
			"message": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    response,
	})
}
