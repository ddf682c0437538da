package services

import (
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"paddock-backend/shared/config"
	"paddock-backend/shared/database/models/notification"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// WebSocketManager tracks one live connection per user and pushes
// notification messages to them.
type WebSocketManager struct {
	clients    map[string]*websocket.Conn // userID -> connection
	mutex      sync.RWMutex
	upgrader   websocket.Upgrader
	register   chan *clientConnection
	unregister chan *clientConnection
}

type clientConnection struct {
	userID string
	conn   *websocket.Conn
}

var (
	wsManager *WebSocketManager
	wsOnce    sync.Once
)

// GetWebSocketManager returns the singleton WebSocket manager
func GetWebSocketManager() *WebSocketManager {
	wsOnce.Do(func() {
		wsManager = &WebSocketManager{
			clients: make(map[string]*websocket.Conn),
			upgrader: websocket.Upgrader{
				CheckOrigin: func(r *http.Request) bool {
					origin := r.Header.Get("Origin")
					if origin == config.GetConfig().FrontendURL {
						return true
					}
					log.Printf("🚫 WebSocket connection rejected from origin: %s", origin)
					return false
				},
			},
			register:   make(chan *clientConnection, 100),
			unregister: make(chan *clientConnection, 100),
		}
		go wsManager.run()
	})
	return wsManager
}

func (wsm *WebSocketManager) run() {
	for {
		select {
		case client := <-wsm.register:
			wsm.registerClient(client)
		case client := <-wsm.unregister:
			wsm.unregisterClient(client)
		}
	}
}

func (wsm *WebSocketManager) registerClient(client *clientConnection) {
	wsm.mutex.Lock()
	defer wsm.mutex.Unlock()

	// One connection per user, newest wins
	if existing, ok := wsm.clients[client.userID]; ok {
		existing.Close()
	}

	wsm.clients[client.userID] = client.conn
	log.Printf("🔌 WebSocket client connected: %s (total: %d)", client.userID, len(wsm.clients))
}

func (wsm *WebSocketManager) unregisterClient(client *clientConnection) {
	wsm.mutex.Lock()
	defer wsm.mutex.Unlock()

	if current, ok := wsm.clients[client.userID]; ok && current == client.conn {
		delete(wsm.clients, client.userID)
		log.Printf("🔌 WebSocket client disconnected: %s (total: %d)", client.userID, len(wsm.clients))
	}
	client.conn.Close()
}

// SendToUser pushes a message to one connected user. Returns an error
// when the user has no live connection.
func (wsm *WebSocketManager) SendToUser(userID string, message *notification.WebSocketMessage) error {
	wsm.mutex.RLock()
	conn, exists := wsm.clients[userID]
	wsm.mutex.RUnlock()

	if !exists {
		return fmt.Errorf("user %s not connected", userID)
	}

	if err := conn.WriteJSON(message); err != nil {
		go func() {
			wsm.unregister <- &clientConnection{userID: userID, conn: conn}
		}()
		return err
	}

	return nil
}

// BroadcastToAll pushes a message to every connected user
func (wsm *WebSocketManager) BroadcastToAll(message *notification.WebSocketMessage) {
	wsm.mutex.RLock()
	defer wsm.mutex.RUnlock()

	for userID, conn := range wsm.clients {
		if err := conn.WriteJSON(message); err != nil {
			log.Printf("❌ Failed to push to user %s: %v", userID, err)
			go func(uid string, c *websocket.Conn) {
				wsm.unregister <- &clientConnection{userID: uid, conn: c}
			}(userID, conn)
		}
	}
}

// ConnectionCount returns the number of live connections
func (wsm *WebSocketManager) ConnectionCount() int {
	wsm.mutex.RLock()
	defer wsm.mutex.RUnlock()
	return len(wsm.clients)
}

// HandleConnection upgrades the HTTP request and serves the connection
// until the client goes away. The caller must have authenticated the
// user; userID is taken from the verified token, not the URL.
func (wsm *WebSocketManager) HandleConnection(c *gin.Context, userID uuid.UUID) {
	conn, err := wsm.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ Failed to upgrade WebSocket: %v", err)
		return
	}

	client := &clientConnection{userID: userID.String(), conn: conn}
	wsm.register <- client
	defer func() {
		wsm.unregister <- client
	}()

	welcome := &notification.WebSocketMessage{
		Type:      "connection",
		Level:     notification.NotificationLevelInfo,
		Title:     "Connected",
		Message:   "WebSocket connection established",
		Timestamp: time.Now().UTC(),
		UserID:    &userID,
	}
	_ = wsm.SendToUser(client.userID, welcome)

	for {
		var message map[string]interface{}
		if err := conn.ReadJSON(&message); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("❌ WebSocket error for user %s: %v", client.userID, err)
			}
			break
		}

		if msgType, ok := message["type"].(string); ok && msgType == "ping" {
			pong := &notification.WebSocketMessage{
				Type:      "pong",
				Level:     notification.NotificationLevelInfo,
				Message:   "pong",
				Timestamp: time.Now().UTC(),
				UserID:    &userID,
			}
			_ = wsm.SendToUser(client.userID, pong)
		}
	}
}
