package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"paddock-backend/shared/middleware"
	"paddock-backend/shared/utils/access"
)

// CreateInviteRequest represents request body for creating an invite
type CreateInviteRequest struct {
	Email     string `json:"email" binding:"required"`
	AccessLvl int    `json:"access_lvl" binding:"required"`
}

// GetOrgInvites lists the pending invites of an organization
// @Summary List pending invites
// @Description Get the actionable (pending, non-expired) invites of an organization. Expired invites are filtered, not deleted.
// @Tags invites
// @Accept json
// @Produce json
// @Param id path string true "Organization ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid organization ID format"
// @Failure 403 {object} map[string]string "Insufficient access level"
// @Router /orgs/{id}/invites [get]
func GetOrgInvites(ctx *gin.Context) {
	orgUUID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid organization ID format",
			"message": err.Error(),
		})
		return
	}

	userID := middleware.CurrentUserID(ctx)
	if !access.CanManageMembers(membershipSvc.AccessLevel(userID, orgUUID)) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Insufficient access level"})
		return
	}

	invites, err := inviteSvc.ListPending(orgUUID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"items": invites},
	})
}

// CreateInvite creates a pending invite for an email address
// @Summary Invite a user by email
// @Description Create a pending invite. Fails on self-invites, already-member emails and duplicate pending invites.
// @Tags invites
// @Accept json
// @Produce json
// @Param id path string true "Organization ID" format(uuid)
// @Param invite body CreateInviteRequest true "Invite information"
// @Security BearerAuth
// @Success 201 {object} map[string]interface{} "Created invite"
// @Failure 400 {object} map[string]string "Invalid request data or self-invite"
// @Failure 403 {object} map[string]string "Insufficient access level"
// @Failure 409 {object} map[string]string "Already a member or duplicate pending invite"
// @Router /orgs/{id}/invites [post]
func CreateInvite(ctx *gin.Context) {
	orgUUID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid organization ID format",
			"message": err.Error(),
		})
		return
	}

	var req CreateInviteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}

	userID := middleware.CurrentUserID(ctx)
	if !access.CanManageMembers(membershipSvc.AccessLevel(userID, orgUUID)) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Insufficient access level"})
		return
	}

	invite, err := inviteSvc.Create(orgUUID, userID, req.Email, req.AccessLvl)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Invite created successfully",
		"data":    invite,
	})
}

// GetMyInvites lists invites addressed to the caller's email
// @Summary List my invites
// @Description Get the actionable invites addressed to the authenticated user's email
// @Tags invites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /invites [get]
func GetMyInvites(ctx *gin.Context) {
	invites, err := inviteSvc.ListForEmail(ctx.GetString("userEmail"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"items": invites},
	})
}

// AcceptInvite accepts a pending invite and joins the organization
// @Summary Accept an invite
// @Description Accept a pending invite. Creates the membership row and marks the invite accepted as one atomic unit.
// @Tags invites
// @Accept json
// @Produce json
// @Param id path string true "Invite ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid invite ID format"
// @Failure 404 {object} map[string]string "Invite not found or no longer pending"
// @Failure 409 {object} map[string]string "Already a member"
// @Failure 410 {object} map[string]string "Invite expired"
// @Router /invites/{id}/accept [post]
func AcceptInvite(ctx *gin.Context) {
	inviteUUID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid invite ID format",
			"message": err.Error(),
		})
		return
	}

	invite, err := inviteSvc.Accept(inviteUUID, middleware.CurrentUserID(ctx))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Invite accepted",
		"data":    invite,
	})
}

// RejectInvite rejects a pending invite
// @Summary Reject an invite
// @Description Reject a pending invite. The acting user must be the invitee or an owner of the organization.
// @Tags invites
// @Accept json
// @Produce json
// @Param id path string true "Invite ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid invite ID format"
// @Failure 403 {object} map[string]string "Not allowed"
// @Failure 404 {object} map[string]string "Invite not found or no longer pending"
// @Router /invites/{id}/reject [post]
func RejectInvite(ctx *gin.Context) {
	inviteUUID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid invite ID format",
			"message": err.Error(),
		})
		return
	}

	if err := inviteSvc.Reject(inviteUUID, middleware.CurrentUserID(ctx)); err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Invite rejected",
	})
}

// RetractInvite cancels a pending invite
// @Summary Retract an invite
// @Description Cancel a pending invite. The caller must be the inviter or an org manager. A row no longer pending is a silent no-op, meaning only that the invite is no longer actionable.
// @Tags invites
// @Accept json
// @Produce json
// @Param id path string true "Invite ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid invite ID format"
// @Failure 403 {object} map[string]string "Insufficient access level"
// @Router /invites/{id}/retract [post]
func RetractInvite(ctx *gin.Context) {
	inviteUUID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid invite ID format",
			"message": err.Error(),
		})
		return
	}

	if err := inviteSvc.Retract(inviteUUID, middleware.CurrentUserID(ctx)); err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Invite is no longer actionable",
	})
}
