package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"paddock-backend/shared/database"
	"paddock-backend/shared/database/models/care"
	"paddock-backend/shared/utils/access"
	"paddock-backend/shared/utils/query"
)

// ListEnclosures lists the enclosures of an organization
// @Summary List enclosures
// @Description Get the enclosures of an organization with pagination and search
// @Tags enclosures
// @Accept json
// @Produce json
// @Param orgID path string true "Organization ID" format(uuid)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Param search query string false "Search in name and location"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]string "Not a member"
// @Router /orgs/{orgID}/enclosures [get]
func ListEnclosures(ctx *gin.Context) {
	orgUUID, ok := requireLevel(ctx, access.LevelCaretaker)
	if !ok {
		return
	}

	params := query.ParseQueryParams(ctx)
	db := database.DB.Model(&care.Enclosure{}).Where("org_id = ?", orgUUID)
	db = query.ApplyFilters(db, params.Filters, map[string]string{
		"location": "location",
	})
	db = query.ApplySearch(db, params.Search, []string{"name", "location"})
	db = query.ApplySort(db, params.Sort, map[string]string{
		"name":       "name",
		"location":   "location",
		"created_at": "created_at",
	})

	var total int64
	db.Count(&total)

	var enclosures []care.Enclosure
	if err := query.ApplyPagination(db, params.Page, params.Limit).
		Find(&enclosures).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list enclosures"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       gin.H{"items": enclosures},
		"pagination": query.BuildPaginationResponse(params.Page, params.Limit, total),
	})
}

// CreateEnclosure adds an enclosure to an organization
// @Summary Create an enclosure
// @Description Create a new enclosure. Requires level 2 or higher.
// @Tags enclosures
// @Accept json
// @Produce json
// @Param orgID path string true "Organization ID" format(uuid)
// @Param request body map[string]string true "Enclosure data"
// @Security BearerAuth
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 403 {object} map[string]string "Insufficient access level"
// @Router /orgs/{orgID}/enclosures [post]
func CreateEnclosure(ctx *gin.Context) {
	orgUUID, ok := requireLevel(ctx, access.LevelOwner)
	if !ok {
		return
	}

	var req struct {
		Name     string `json:"name" binding:"required"`
		Location string `json:"location"`
		Notes    string `json:"notes"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	enclosure := care.Enclosure{
		OrgID:    orgUUID,
		Name:     req.Name,
		Location: req.Location,
		Notes:    req.Notes,
	}
	if err := database.DB.Create(&enclosure).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create enclosure"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Enclosure created",
		"data":    enclosure,
	})
}

// GetEnclosure returns one enclosure
// @Summary Get an enclosure
// @Description Get a single enclosure by ID
// @Tags enclosures
// @Accept json
// @Produce json
// @Param orgID path string true "Organization ID" format(uuid)
// @Param enclosureID path string true "Enclosure ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "Enclosure not found"
// @Router /orgs/{orgID}/enclosures/{enclosureID} [get]
func GetEnclosure(ctx *gin.Context) {
	orgUUID, ok := requireLevel(ctx, access.LevelCaretaker)
	if !ok {
		return
	}

	enclosure, ok := loadEnclosure(ctx, orgUUID)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    enclosure,
	})
}

// UpdateEnclosure updates an enclosure's fields
// @Summary Update an enclosure
// @Description Update name, location or notes. Requires level 2 or higher.
// @Tags enclosures
// @Accept json
// @Produce json
// @Param orgID path string true "Organization ID" format(uuid)
// @Param enclosureID path string true "Enclosure ID" format(uuid)
// @Param request body map[string]string true "Fields to update"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "Enclosure not found"
// @Router /orgs/{orgID}/enclosures/{enclosureID} [put]
func UpdateEnclosure(ctx *gin.Context) {
	orgUUID, ok := requireLevel(ctx, access.LevelOwner)
	if !ok {
		return
	}

	enclosure, ok := loadEnclosure(ctx, orgUUID)
	if !ok {
		return
	}

	var req struct {
		Name     *string `json:"name"`
		Location *string `json:"location"`
		Notes    *string `json:"notes"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	if req.Name != nil {
		enclosure.Name = *req.Name
	}
	if req.Location != nil {
		enclosure.Location = *req.Location
	}
	if req.Notes != nil {
		enclosure.Notes = *req.Notes
	}

	if err := database.DB.Save(&enclosure).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update enclosure"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Enclosure updated",
		"data":    enclosure,
	})
}

// DeleteEnclosure removes an enclosure and its task history
// @Summary Delete an enclosure
// @Description Delete an enclosure together with its task templates and completions. Requires level 2 or higher.
// @Tags enclosures
// @Accept json
// @Produce json
// @Param orgID path string true "Organization ID" format(uuid)
// @Param enclosureID path string true "Enclosure ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "Enclosure not found"
// @Router /orgs/{orgID}/enclosures/{enclosureID} [delete]
func DeleteEnclosure(ctx *gin.Context) {
	orgUUID, ok := requireLevel(ctx, access.LevelOwner)
	if !ok {
		return
	}

	enclosure, ok := loadEnclosure(ctx, orgUUID)
	if !ok {
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("template_id IN (?)",
			tx.Model(&care.TaskTemplate{}).Select("id").Where("enclosure_id = ?", enclosure.ID),
		).Delete(&care.TaskCompletion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("enclosure_id = ?", enclosure.ID).
			Delete(&care.TaskTemplate{}).Error; err != nil {
			return err
		}
		return tx.Delete(&enclosure).Error
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete enclosure"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Enclosure deleted",
	})
}

// loadEnclosure fetches the :enclosureID enclosure scoped to the org,
// writing the error response itself when it cannot.
func loadEnclosure(ctx *gin.Context, orgID uuid.UUID) (care.Enclosure, bool) {
	var enclosure care.Enclosure

	enclosureUUID, err := uuid.Parse(ctx.Param("enclosureID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid enclosure ID format",
			"message": err.Error(),
		})
		return enclosure, false
	}

	if err := database.DB.Where("id = ? AND org_id = ?", enclosureUUID, orgID).
		First(&enclosure).Error; err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Enclosure not found"})
		return enclosure, false
	}

	return enclosure, true
}
