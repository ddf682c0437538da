package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"paddock-backend/care-service/services"
	"paddock-backend/shared/database"
	"paddock-backend/shared/database/models/care"
	"paddock-backend/shared/utils/access"
	"paddock-backend/shared/utils/query"
)

// ListSpecies lists the species of an organization
// @Summary List species
// @Description Get the species of an organization with pagination and search
// @Tags species
// @Accept json
// @Produce json
// @Param orgID path string true "Organization ID" format(uuid)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Param search query string false "Search in name"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]string "Not a member"
// @Router /orgs/{orgID}/species [get]
func ListSpecies(ctx *gin.Context) {
	orgUUID, ok := requireLevel(ctx, access.LevelCaretaker)
	if !ok {
		return
	}

	params := query.ParseQueryParams(ctx)
	db := database.DB.Model(&care.Species{}).Where("org_id = ?", orgUUID)
	db = query.ApplySearch(db, params.Search, []string{"name"})
	db = query.ApplySort(db, params.Sort, map[string]string{
		"name":       "name",
		"created_at": "created_at",
	})

	var total int64
	db.Count(&total)

	var species []care.Species
	if err := query.ApplyPagination(db, params.Page, params.Limit).
		Find(&species).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list species"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       gin.H{"items": species},
		"pagination": query.BuildPaginationResponse(params.Page, params.Limit, total),
	})
}

// CreateSpecies adds a species to an organization
// @Summary Create a species
// @Description Create a new species entry. Requires level 2 or higher.
// @Tags species
// @Accept json
// @Produce json
// @Param orgID path string true "Organization ID" format(uuid)
// @Param request body map[string]string true "Species data"
// @Security BearerAuth
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 403 {object} map[string]string "Insufficient access level"
// @Router /orgs/{orgID}/species [post]
func CreateSpecies(ctx *gin.Context) {
	orgUUID, ok := requireLevel(ctx, access.LevelOwner)
	if !ok {
		return
	}

	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	species := care.Species{
		OrgID:       orgUUID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := database.DB.Create(&species).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create species"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Species created",
		"data":    species,
	})
}

// UpdateSpecies updates a species entry
// @Summary Update a species
// @Description Update name or description. Requires level 2 or higher.
// @Tags species
// @Accept json
// @Produce json
// @Param orgID path string true "Organization ID" format(uuid)
// @Param speciesID path string true "Species ID" format(uuid)
// @Param request body map[string]string true "Fields to update"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "Species not found"
// @Router /orgs/{orgID}/species/{speciesID} [put]
func UpdateSpecies(ctx *gin.Context) {
	orgUUID, ok := requireLevel(ctx, access.LevelOwner)
	if !ok {
		return
	}

	species, ok := loadSpecies(ctx, orgUUID)
	if !ok {
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	if req.Name != nil {
		species.Name = *req.Name
	}
	if req.Description != nil {
		species.Description = *req.Description
	}

	if err := database.DB.Save(&species).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update species"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Species updated",
		"data":    species,
	})
}

// DeleteSpecies removes a species entry and its stored image
// @Summary Delete a species
// @Description Delete a species entry. Its uploaded image is removed from storage. Requires level 2 or higher.
// @Tags species
// @Accept json
// @Produce json
// @Param orgID path string true "Organization ID" format(uuid)
// @Param speciesID path string true "Species ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "Species not found"
// @Router /orgs/{orgID}/species/{speciesID} [delete]
func DeleteSpecies(ctx *gin.Context) {
	orgUUID, ok := requireLevel(ctx, access.LevelOwner)
	if !ok {
		return
	}

	species, ok := loadSpecies(ctx, orgUUID)
	if !ok {
		return
	}

	if err := database.DB.Delete(&species).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete species"})
		return
	}

	if imageSvc != nil && species.ImageObject != "" {
		// Best effort, the row is already gone
		_ = imageSvc.Remove(ctx.Request.Context(), species.ImageObject)
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Species deleted",
	})
}

// UploadSpeciesImage attaches an image to a species
// @Summary Upload a species image
// @Description Upload an image file for a species. Replaces any previous image. Requires level 2 or higher.
// @Tags species
// @Accept multipart/form-data
// @Produce json
// @Param orgID path string true "Organization ID" format(uuid)
// @Param speciesID path string true "Species ID" format(uuid)
// @Param file formData file true "Image file"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid file"
// @Failure 413 {object} map[string]string "File too large"
// @Failure 503 {object} map[string]string "Image storage unavailable"
// @Router /orgs/{orgID}/species/{speciesID}/image [post]
func UploadSpeciesImage(ctx *gin.Context) {
	orgUUID, ok := requireLevel(ctx, access.LevelOwner)
	if !ok {
		return
	}

	if imageSvc == nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "Image storage unavailable"})
		return
	}

	species, ok := loadSpecies(ctx, orgUUID)
	if !ok {
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "No file provided",
			"message": err.Error(),
		})
		return
	}

	if !services.AllowedImageType(fileHeader.Filename) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "File type not allowed"})
		return
	}
	if fileHeader.Size > services.MaxImageSize() {
		ctx.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}
	defer file.Close()

	objectKey, err := imageSvc.Upload(ctx.Request.Context(), orgUUID, species.ID,
		fileHeader.Filename, file, fileHeader.Size, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}

	previous := species.ImageObject
	species.ImageObject = objectKey
	if err := database.DB.Save(&species).Error; err != nil {
		_ = imageSvc.Remove(ctx.Request.Context(), objectKey)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image reference"})
		return
	}

	if previous != "" {
		_ = imageSvc.Remove(ctx.Request.Context(), previous)
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Image uploaded",
		"data":    species,
	})
}

// GetSpeciesImage returns a download URL for a species image
// @Summary Get a species image URL
// @Description Get a short-lived presigned URL for the species image
// @Tags species
// @Accept json
// @Produce json
// @Param orgID path string true "Organization ID" format(uuid)
// @Param speciesID path string true "Species ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "No image for this species"
// @Router /orgs/{orgID}/species/{speciesID}/image [get]
func GetSpeciesImage(ctx *gin.Context) {
	orgUUID, ok := requireLevel(ctx, access.LevelCaretaker)
	if !ok {
		return
	}

	if imageSvc == nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "Image storage unavailable"})
		return
	}

	species, ok := loadSpecies(ctx, orgUUID)
	if !ok {
		return
	}

	if species.ImageObject == "" {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "No image for this species"})
		return
	}

	downloadURL, err := imageSvc.PresignedURL(ctx.Request.Context(), species.ImageObject)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate download URL"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"url": downloadURL},
	})
}

func loadSpecies(ctx *gin.Context, orgID uuid.UUID) (care.Species, bool) {
	var species care.Species

	speciesUUID, err := uuid.Parse(ctx.Param("speciesID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid species ID format",
			"message": err.Error(),
		})
		return species, false
	}

	if err := database.DB.Where("id = ? AND org_id = ?", speciesUUID, orgID).
		First(&species).Error; err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Species not found"})
		return species, false
	}

	return species, true
}
