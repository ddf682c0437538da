package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"paddock-backend/shared/middleware"
	"paddock-backend/shared/utils/access"
)

// CreateOrgBody represents request body for creating an organization
type CreateOrgBody struct {
	Name string `json:"name" binding:"required"`
}

// GetMyOrganizations lists the organizations the caller belongs to
// @Summary List my organizations
// @Description Get the organizations the authenticated user is a member of, with their access level
// @Tags organizations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Server error"
// @Router /orgs [get]
func GetMyOrganizations(ctx *gin.Context) {
	userID := middleware.CurrentUserID(ctx)

	orgs, err := orgSvc.ListForUser(userID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	items := make([]gin.H, 0, len(orgs))
	for _, org := range orgs {
		level := membershipSvc.AccessLevel(userID, org.ID)
		items = append(items, gin.H{
			"id":         org.ID,
			"name":       org.Name,
			"created_at": org.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			"access_lvl": level,
			"role_name":  access.LevelName(level),
		})
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"items": items},
	})
}

// GetOrganization retrieves a single organization by ID
// @Summary Get organization by ID
// @Description Get one organization; the caller must be a member
// @Tags organizations
// @Accept json
// @Produce json
// @Param id path string true "Organization ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid organization ID format"
// @Failure 403 {object} map[string]string "Not a member"
// @Failure 404 {object} map[string]string "Organization not found"
// @Router /orgs/{id} [get]
func GetOrganization(ctx *gin.Context) {
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

	org, err := orgSvc.Get(orgUUID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    org,
	})
}

// CreateOrganization creates a new organization
// @Summary Create a new organization
// @Description Create an organization; the creator becomes its level-3 member. Superadmin only — regular users go through org requests.
// @Tags organizations
// @Accept json
// @Produce json
// @Param organization body CreateOrgBody true "Organization information"
// @Security BearerAuth
// @Success 201 {object} map[string]interface{} "Created organization"
// @Failure 400 {object} map[string]string "Invalid request data"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Server error"
// @Router /orgs [post]
func CreateOrganization(ctx *gin.Context) {
	var req CreateOrgBody
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}

	org, err := orgSvc.Create(req.Name, middleware.CurrentUserID(ctx))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Organization created successfully",
		"data":    org,
	})
}

// DeleteOrganization deletes an organization and cascades its dependents
// @Summary Delete an organization
// @Description Delete an organization with its memberships, pending invites and care data. Requires level 3 in the organization.
// @Tags organizations
// @Accept json
// @Produce json
// @Param id path string true "Organization ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Success message"
// @Failure 400 {object} map[string]string "Invalid organization ID format"
// @Failure 403 {object} map[string]string "Insufficient access level"
// @Failure 404 {object} map[string]string "Organization not found"
// @Router /orgs/{id} [delete]
func DeleteOrganization(ctx *gin.Context) {
	orgUUID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid organization ID format",
			"message": err.Error(),
		})
		return
	}

	userID := middleware.CurrentUserID(ctx)
	level := membershipSvc.AccessLevel(userID, orgUUID)
	if !access.CanDeleteOrg(level) && !ctx.GetBool("isSuperadmin") {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Insufficient access level to delete this organization"})
		return
	}

	if err := orgSvc.Delete(orgUUID); err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Organization deleted successfully",
	})
}
