package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"paddock-backend/shared/middleware"
)

// CreateOrgRequestBody represents request body for requesting a new organization
type CreateOrgRequestBody struct {
	Name string `json:"name" binding:"required"`
}

// CreateOrgRequest files a request for a new organization
// @Summary Request a new organization
// @Description File a request for a superadmin to create an organization on the caller's behalf
// @Tags org-requests
// @Accept json
// @Produce json
// @Param request body CreateOrgRequestBody true "Requested organization name"
// @Security BearerAuth
// @Success 201 {object} map[string]interface{} "Created request"
// @Failure 400 {object} map[string]string "Empty name"
// @Failure 409 {object} map[string]string "Duplicate pending request"
// @Router /org-requests [post]
func CreateOrgRequest(ctx *gin.Context) {
	var req CreateOrgRequestBody
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}

	request, err := requestSvc.Create(middleware.CurrentUserID(ctx), req.Name)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Organization request created",
		"data":    request,
	})
}

// GetMyOrgRequests lists the caller's recent requests
// @Summary List my recent requests
// @Description Get the caller's pending requests plus reviewed ones inside the trailing recent-history window
// @Tags org-requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /org-requests [get]
func GetMyOrgRequests(ctx *gin.Context) {
	requests, err := requestSvc.ListRecent(middleware.CurrentUserID(ctx))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"items": requests},
	})
}

// GetPendingOrgRequests lists all pending requests for review
// @Summary List pending requests
// @Description Get every pending organization request. Superadmin only.
// @Tags org-requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]string "Superadmin access required"
// @Router /org-requests/pending [get]
func GetPendingOrgRequests(ctx *gin.Context) {
	requests, err := requestSvc.ListPendingAll()
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"items": requests},
	})
}

// ApproveOrgRequest approves a pending request
// @Summary Approve a request
// @Description Create the organization, add the requester at level 3 and mark the request approved as one atomic unit. Superadmin only. A request no longer pending is a no-op.
// @Tags org-requests
// @Accept json
// @Produce json
// @Param id path string true "Request ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid request ID format"
// @Failure 403 {object} map[string]string "Superadmin access required"
// @Router /org-requests/{id}/approve [post]
func ApproveOrgRequest(ctx *gin.Context) {
	requestUUID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request ID format",
			"message": err.Error(),
		})
		return
	}

	org, err := requestSvc.Approve(requestUUID, middleware.CurrentUserID(ctx))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	if org == nil {
		ctx.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Request is no longer pending",
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Request approved",
		"data":    org,
	})
}

// RejectOrgRequest rejects a pending request
// @Summary Reject a request
// @Description Mark a pending request rejected with reviewer metadata. Superadmin only. A request no longer pending is a silent no-op.
// @Tags org-requests
// @Accept json
// @Produce json
// @Param id path string true "Request ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid request ID format"
// @Failure 403 {object} map[string]string "Superadmin access required"
// @Router /org-requests/{id}/reject [post]
func RejectOrgRequest(ctx *gin.Context) {
	requestUUID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request ID format",
			"message": err.Error(),
		})
		return
	}

	if err := requestSvc.Reject(requestUUID, middleware.CurrentUserID(ctx)); err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Request rejected",
	})
}

// RetractOrgRequest cancels the caller's own pending request
// @Summary Retract a request
// @Description Cancel a pending request. Only the requester's own pending request is affected; anything else is a silent no-op.
// @Tags org-requests
// @Accept json
// @Produce json
// @Param id path string true "Request ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid request ID format"
// @Router /org-requests/{id}/retract [post]
func RetractOrgRequest(ctx *gin.Context) {
	requestUUID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request ID format",
			"message": err.Error(),
		})
		return
	}

	if err := requestSvc.Retract(requestUUID, middleware.CurrentUserID(ctx)); err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Request is no longer actionable",
	})
}
