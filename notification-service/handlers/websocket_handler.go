package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"paddock-backend/notification-service/services"
	"paddock-backend/shared/middleware"
)

// HandleWebSocket upgrades the request to a websocket connection
// @Summary WebSocket endpoint
// @Description Upgrade to a websocket connection for live notification delivery. The user identity comes from the JWT, not the URL.
// @Tags notifications
// @Security BearerAuth
// @Success 101
// @Router /ws [get]
func HandleWebSocket(ctx *gin.Context) {
	userID := middleware.CurrentUserID(ctx)
	services.GetWebSocketManager().HandleConnection(ctx, userID)
}

// GetWebSocketStatus reports the number of live connections
// @Summary WebSocket status
// @Tags notifications
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /ws/status [get]
func GetWebSocketStatus(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"connections": services.GetWebSocketManager().ConnectionCount(),
		},
	})
}
