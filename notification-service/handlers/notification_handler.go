package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"paddock-backend/notification-service/services"
	"paddock-backend/shared/database"
	"paddock-backend/shared/database/models/notification"
	"paddock-backend/shared/middleware"
	"paddock-backend/shared/utils/query"
)

// CreateInAppNotification stores a notification and pushes it over websocket
// @Summary Create an in-app notification
// @Description Internal endpoint used by other services. Stores the notification and pushes it to the user's websocket if connected.
// @Tags notifications
// @Accept json
// @Produce json
// @Param request body map[string]interface{} true "Notification data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid request"
// @Router /notify/in-app [post]
func CreateInAppNotification(ctx *gin.Context) {
	var req struct {
		UserID   uuid.UUID `json:"user_id" binding:"required"`
		Type     string    `json:"type" binding:"required"`
		Level    string    `json:"level"`
		Title    string    `json:"title" binding:"required"`
		Message  string    `json:"message" binding:"required"`
		EntityID uuid.UUID `json:"entity_id"`
		Entity   string    `json:"entity"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	level := notification.NotificationLevel(req.Level)
	switch level {
	case notification.NotificationLevelSuccess, notification.NotificationLevelError,
		notification.NotificationLevelWarning, notification.NotificationLevelInfo:
	default:
		level = notification.NotificationLevelInfo
	}

	record := notification.Notification{
		UserID:  &req.UserID,
		Type:    req.Type,
		Level:   level,
		Title:   req.Title,
		Message: req.Message,
		Entity:  req.Entity,
	}
	if req.EntityID != uuid.Nil {
		record.EntityID = &req.EntityID
	}

	if err := database.DB.Create(&record).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store notification"})
		return
	}

	// Push is best effort, the stored row is the source of truth
	wsMessage := &notification.WebSocketMessage{
		Type:      record.Type,
		Level:     record.Level,
		Title:     record.Title,
		Message:   record.Message,
		Timestamp: time.Now().UTC(),
		EntityID:  record.EntityID,
		Entity:    record.Entity,
		UserID:    record.UserID,
	}
	_ = services.GetWebSocketManager().SendToUser(req.UserID.String(), wsMessage)

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    record,
	})
}

// ListNotifications lists the caller's notifications
// @Summary List notifications
// @Description Get the authenticated user's notifications, newest first. Supports unread-only filtering.
// @Tags notifications
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Param unread query bool false "Only unread notifications"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /notifications [get]
func ListNotifications(ctx *gin.Context) {
	userID := middleware.CurrentUserID(ctx)

	params := query.ParseQueryParams(ctx)
	db := database.DB.Model(&notification.Notification{}).Where("user_id = ?", userID)
	if ctx.Query("unread") == "true" {
		db = db.Where("is_read = ?", false)
	}
	db = db.Order("created_at DESC")

	var total int64
	db.Count(&total)

	var notifications []notification.Notification
	if err := query.ApplyPagination(db, params.Page, params.Limit).
		Find(&notifications).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list notifications"})
		return
	}

	var unreadCount int64
	database.DB.Model(&notification.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).Count(&unreadCount)

	ctx.JSON(http.StatusOK, gin.H{
		"success":      true,
		"data":         gin.H{"items": notifications},
		"unread_count": unreadCount,
		"pagination":   query.BuildPaginationResponse(params.Page, params.Limit, total),
	})
}

// MarkNotificationRead marks one notification as read
// @Summary Mark a notification as read
// @Description Mark the caller's notification as read. Marking an already-read notification is a no-op.
// @Tags notifications
// @Accept json
// @Produce json
// @Param id path string true "Notification ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "Notification not found"
// @Router /notifications/{id}/read [put]
func MarkNotificationRead(ctx *gin.Context) {
	notificationUUID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid notification ID format",
			"message": err.Error(),
		})
		return
	}

	userID := middleware.CurrentUserID(ctx)
	now := time.Now().UTC()

	result := database.DB.Model(&notification.Notification{}).
		Where("id = ? AND user_id = ?", notificationUUID, userID).
		Updates(map[string]interface{}{"is_read": true, "read_at": now})
	if result.Error != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notification"})
		return
	}
	if result.RowsAffected == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Notification marked as read",
	})
}

// MarkAllNotificationsRead marks every unread notification of the caller as read
// @Summary Mark all notifications as read
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /notifications/read-all [put]
func MarkAllNotificationsRead(ctx *gin.Context) {
	userID := middleware.CurrentUserID(ctx)
	now := time.Now().UTC()

	result := database.DB.Model(&notification.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": now})
	if result.Error != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notifications"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "All notifications marked as read",
		"data":    gin.H{"updated": result.RowsAffected},
	})
}
