package clients

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"paddock-backend/shared/config"
)

// NotificationClient handles communication with notification service.
// All sends are best effort: a failed notification never fails the
// operation that triggered it.
type NotificationClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewNotificationClient creates a new notification client
func NewNotificationClient() *NotificationClient {
	cfg := config.GetConfig()
	return &NotificationClient{
		baseURL: cfg.NotificationServiceURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// InviteEmailRequest asks the notification service to mail an invitation
type InviteEmailRequest struct {
	Email       string `json:"email"`
	OrgName     string `json:"org_name"`
	InviterName string `json:"inviter_name"`
	RoleName    string `json:"role_name"`
	ExpiresAt   string `json:"expires_at"`
}

// RequestReviewedEmailRequest notifies a requester about a review outcome
type RequestReviewedEmailRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	OrgName  string `json:"org_name"`
	Approved bool   `json:"approved"`
}

// InAppNotificationRequest creates an in-app notification for one user
type InAppNotificationRequest struct {
	UserID   uuid.UUID `json:"user_id"`
	Type     string    `json:"type"`
	Level    string    `json:"level"`
	Title    string    `json:"title"`
	Message  string    `json:"message"`
	EntityID uuid.UUID `json:"entity_id,omitempty"`
	Entity   string    `json:"entity,omitempty"`
}

// SendInviteEmail sends the invitation email
func (nc *NotificationClient) SendInviteEmail(req InviteEmailRequest) {
	nc.post("/api/notify/email/invite", req)
}

// SendRequestReviewedEmail sends the org-request review outcome email
func (nc *NotificationClient) SendRequestReviewedEmail(req RequestReviewedEmailRequest) {
	nc.post("/api/notify/email/request-reviewed", req)
}

// SendInAppNotification creates an in-app notification and pushes it over websocket
func (nc *NotificationClient) SendInAppNotification(req InAppNotificationRequest) {
	nc.post("/api/notify/in-app", req)
}

func (nc *NotificationClient) post(path string, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("❌ Failed to marshal notification payload: %v", err)
		return
	}

	url := fmt.Sprintf("%s%s", nc.baseURL, path)
	resp, err := nc.httpClient.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		log.Printf("❌ Failed to reach notification service at %s: %v", path, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		log.Printf("❌ Notification service returned %d for %s", resp.StatusCode, path)
	}
}
