package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"paddock-backend/shared/database"
	"paddock-backend/shared/database/models/care"
	"paddock-backend/shared/middleware"
	"paddock-backend/shared/utils/access"
)

// ListTaskTemplates lists the task templates of an enclosure
// @Summary List task templates
// @Description Get the recurring task templates defined for an enclosure
// @Tags tasks
// @Accept json
// @Produce json
// @Param orgID path string true "Organization ID" format(uuid)
// @Param enclosureID path string true "Enclosure ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]string "Not a member"
// @Router /orgs/{orgID}/enclosures/{enclosureID}/tasks [get]
func ListTaskTemplates(ctx *gin.Context) {
	orgUUID, ok := requireLevel(ctx, access.LevelCaretaker)
	if !ok {
		return
	}

	enclosure, ok := loadEnclosure(ctx, orgUUID)
	if !ok {
		return
	}

	var templates []care.TaskTemplate
	if err := database.DB.Where("enclosure_id = ?", enclosure.ID).
		Order("created_at ASC").Find(&templates).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list task templates"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"items": templates},
	})
}

// CreateTaskTemplate defines a recurring task for an enclosure
// @Summary Create a task template
// @Description Define a recurring caretaking task with its form fields. Requires level 2 or higher.
// @Tags tasks
// @Accept json
// @Produce json
// @Param orgID path string true "Organization ID" format(uuid)
// @Param enclosureID path string true "Enclosure ID" format(uuid)
// @Param request body map[string]interface{} true "Template data"
// @Security BearerAuth
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid request"
// @Router /orgs/{orgID}/enclosures/{enclosureID}/tasks [post]
func CreateTaskTemplate(ctx *gin.Context) {
	orgUUID, ok := requireLevel(ctx, access.LevelOwner)
	if !ok {
		return
	}

	enclosure, ok := loadEnclosure(ctx, orgUUID)
	if !ok {
		return
	}

	var req struct {
		Title        string           `json:"title" binding:"required"`
		Description  string           `json:"description"`
		Fields       []care.TaskField `json:"fields"`
		IntervalDays int              `json:"interval_days"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	if req.IntervalDays < 1 {
		req.IntervalDays = 1
	}
	fieldsJSON, err := json.Marshal(req.Fields)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid field definition"})
		return
	}

	template := care.TaskTemplate{
		OrgID:        orgUUID,
		EnclosureID:  enclosure.ID,
		Title:        req.Title,
		Description:  req.Description,
		Fields:       fieldsJSON,
		IntervalDays: req.IntervalDays,
	}
	if err := database.DB.Create(&template).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task template"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Task template created",
		"data":    template,
	})
}

// DeleteTaskTemplate removes a template and its completion history
// @Summary Delete a task template
// @Description Delete a task template together with its completions. Requires level 2 or higher.
// @Tags tasks
// @Accept json
// @Produce json
// @Param orgID path string true "Organization ID" format(uuid)
// @Param templateID path string true "Template ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "Template not found"
// @Router /orgs/{orgID}/tasks/{templateID} [delete]
func DeleteTaskTemplate(ctx *gin.Context) {
	orgUUID, ok := requireLevel(ctx, access.LevelOwner)
	if !ok {
		return
	}

	template, ok := loadTemplate(ctx, orgUUID)
	if !ok {
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("template_id = ?", template.ID).
			Delete(&care.TaskCompletion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&template).Error
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task template"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Task template deleted",
	})
}

// CompleteTask records one execution of a task template
// @Summary Complete a task
// @Description Record a completion of a task template with the filled-in field values. Required fields of the template must be present.
// @Tags tasks
// @Accept json
// @Produce json
// @Param orgID path string true "Organization ID" format(uuid)
// @Param templateID path string true "Template ID" format(uuid)
// @Param request body map[string]interface{} true "Field values"
// @Security BearerAuth
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Missing required field"
// @Failure 404 {object} map[string]string "Template not found"
// @Router /orgs/{orgID}/tasks/{templateID}/complete [post]
func CompleteTask(ctx *gin.Context) {
	orgUUID, ok := requireLevel(ctx, access.LevelCaretaker)
	if !ok {
		return
	}

	template, ok := loadTemplate(ctx, orgUUID)
	if !ok {
		return
	}

	var req struct {
		Values map[string]interface{} `json:"values"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	if err := validateTaskValues(template.Fields, req.Values); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	valuesJSON, err := json.Marshal(req.Values)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid field values"})
		return
	}

	completion := care.TaskCompletion{
		TemplateID:  template.ID,
		CompletedBy: middleware.CurrentUserID(ctx),
		Values:      valuesJSON,
	}
	if err := database.DB.Create(&completion).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record completion"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Task completed",
		"data":    completion,
	})
}

// ListTaskCompletions lists the completion history of a template
// @Summary List task completions
// @Description Get the completion history of a task template, newest first
// @Tags tasks
// @Accept json
// @Produce json
// @Param orgID path string true "Organization ID" format(uuid)
// @Param templateID path string true "Template ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "Template not found"
// @Router /orgs/{orgID}/tasks/{templateID}/completions [get]
func ListTaskCompletions(ctx *gin.Context) {
	orgUUID, ok := requireLevel(ctx, access.LevelCaretaker)
	if !ok {
		return
	}

	template, ok := loadTemplate(ctx, orgUUID)
	if !ok {
		return
	}

	var completions []care.TaskCompletion
	if err := database.DB.Where("template_id = ?", template.ID).
		Order("completed_at DESC").Limit(100).Find(&completions).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list completions"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"items": completions},
	})
}

// TaskOverviewEntry is one template's due status in the org-wide overview
type TaskOverviewEntry struct {
	Template      care.TaskTemplate `json:"template"`
	LastCompleted *time.Time        `json:"last_completed"`
	DueAt         time.Time         `json:"due_at"`
	Overdue       bool              `json:"overdue"`
}

// GetTaskOverview reports the due status of every template in the org
// @Summary Organization task overview
// @Description Get every task template of the organization with its last completion and due status
// @Tags tasks
// @Accept json
// @Produce json
// @Param orgID path string true "Organization ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]string "Not a member"
// @Router /orgs/{orgID}/tasks/overview [get]
func GetTaskOverview(ctx *gin.Context) {
	orgUUID, ok := requireLevel(ctx, access.LevelCaretaker)
	if !ok {
		return
	}

	var templates []care.TaskTemplate
	if err := database.DB.Where("org_id = ?", orgUUID).
		Order("created_at ASC").Find(&templates).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load task templates"})
		return
	}

	now := time.Now().UTC()
	overview := make([]TaskOverviewEntry, 0, len(templates))
	for _, template := range templates {
		entry := TaskOverviewEntry{Template: template}

		var last care.TaskCompletion
		err := database.DB.Where("template_id = ?", template.ID).
			Order("completed_at DESC").First(&last).Error
		if err == nil {
			completedAt := last.CompletedAt
			entry.LastCompleted = &completedAt
			entry.DueAt = completedAt.AddDate(0, 0, template.IntervalDays)
		} else {
			// Never completed, due since creation
			entry.DueAt = template.CreatedAt
		}
		entry.Overdue = !entry.DueAt.After(now)

		overview = append(overview, entry)
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"items": overview},
	})
}

// validateTaskValues checks submitted values against the template's field
// definition. Unknown keys are allowed; missing required keys are not.
func validateTaskValues(fieldsJSON json.RawMessage, values map[string]interface{}) error {
	if len(fieldsJSON) == 0 {
		return nil
	}

	var fields []care.TaskField
	if err := json.Unmarshal(fieldsJSON, &fields); err != nil {
		// Broken definition should not block completion
		return nil
	}

	for _, field := range fields {
		if !field.Required {
			continue
		}
		if _, present := values[field.Key]; !present {
			return fmt.Errorf("missing required field: %s", field.Key)
		}
	}
	return nil
}

func loadTemplate(ctx *gin.Context, orgID uuid.UUID) (care.TaskTemplate, bool) {
	var template care.TaskTemplate

	templateUUID, err := uuid.Parse(ctx.Param("templateID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid template ID format",
			"message": err.Error(),
		})
		return template, false
	}

	if err := database.DB.Where("id = ? AND org_id = ?", templateUUID, orgID).
		First(&template).Error; err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Task template not found"})
		return template, false
	}

	return template, true
}
