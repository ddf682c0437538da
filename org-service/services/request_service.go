package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"paddock-backend/shared/clients"
	"paddock-backend/shared/config"
	"paddock-backend/shared/database/models"
	"paddock-backend/shared/utils/access"
)

// OrgRequestService drives the org-request lifecycle:
//
//	pending -> approved | rejected | cancelled
//
// A request is a proposal from a non-privileged user to have an
// organization created on their behalf; a superadmin reviews it.
type OrgRequestService struct {
	db          *gorm.DB
	memberships *MembershipService
	notifier    *clients.NotificationClient
}

// NewOrgRequestService creates an org-request service
func NewOrgRequestService(db *gorm.DB, memberships *MembershipService, notifier *clients.NotificationClient) *OrgRequestService {
	return &OrgRequestService{db: db, memberships: memberships, notifier: notifier}
}

// Create inserts a pending request for the trimmed name. At most one
// pending request per (requester, name) exists at any time, enforced by
// the partial unique index.
func (s *OrgRequestService) Create(requesterID uuid.UUID, orgName string) (*models.OrgRequest, error) {
	orgName = strings.TrimSpace(orgName)
	if orgName == "" {
		return nil, ErrEmptyName
	}

	var pending int64
	s.db.Model(&models.OrgRequest{}).
		Where("requester_id = ? AND org_name = ? AND status = ?",
			requesterID, orgName, models.RequestStatusPending).
		Count(&pending)
	if pending > 0 {
		return nil, ErrDuplicatePendingRequest
	}

	request := models.OrgRequest{
		RequesterID: requesterID,
		OrgName:     orgName,
		Status:      models.RequestStatusPending,
	}

	if err := s.db.Create(&request).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicatePendingRequest
		}
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	return &request, nil
}

// Approve claims a pending request, creates the organization and adds the
// requester at level 3 as one atomic unit. A request that is no longer
// pending is a silent no-op: nothing is created and nil is returned for
// both values. The claim-first conditional update is what resolves two
// racing reviewers; the loser affects zero rows.
func (s *OrgRequestService) Approve(requestID, reviewerID uuid.UUID) (*models.Organization, error) {
	var org *models.Organization

	err := s.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		result := tx.Model(&models.OrgRequest{}).
			Where("id = ? AND status = ?", requestID, models.RequestStatusPending).
			Updates(map[string]interface{}{
				"status":      models.RequestStatusApproved,
				"reviewed_by": reviewerID,
				"reviewed_at": now,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to claim request: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			// Already reviewed or cancelled
			return nil
		}

		var request models.OrgRequest
		if err := tx.First(&request, requestID).Error; err != nil {
			return fmt.Errorf("failed to load claimed request: %w", err)
		}

		created := models.Organization{Name: request.OrgName}
		if err := tx.Create(&created).Error; err != nil {
			return fmt.Errorf("failed to create organization: %w", err)
		}

		if err := s.memberships.WithTx(tx).AddMember(created.ID, request.RequesterID, access.LevelSuperadmin); err != nil {
			return err
		}

		org = &created
		return nil
	})
	if err != nil {
		return nil, err
	}

	if org != nil {
		s.notifyReviewed(requestID, true)
	}
	return org, nil
}

// Reject marks a pending request rejected with reviewer metadata. A row
// no longer pending is a silent no-op.
func (s *OrgRequestService) Reject(requestID, reviewerID uuid.UUID) error {
	result := s.db.Model(&models.OrgRequest{}).
		Where("id = ? AND status = ?", requestID, models.RequestStatusPending).
		Updates(map[string]interface{}{
			"status":      models.RequestStatusRejected,
			"reviewed_by": reviewerID,
			"reviewed_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to reject request: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		s.notifyReviewed(requestID, false)
	}
	return nil
}

// Retract marks a pending request cancelled. Only the requester may
// retract their own request; a row no longer pending is a silent no-op.
func (s *OrgRequestService) Retract(requestID, requesterID uuid.UUID) error {
	result := s.db.Model(&models.OrgRequest{}).
		Where("id = ? AND requester_id = ? AND status = ?",
			requestID, requesterID, models.RequestStatusPending).
		Update("status", models.RequestStatusCancelled)
	if result.Error != nil {
		return fmt.Errorf("failed to retract request: %w", result.Error)
	}
	return nil
}

// ListRecent returns the requester's pending requests plus reviewed or
// cancelled ones that were created or reviewed within the trailing
// recent-history window. Rows past the window age out of the view only;
// nothing is deleted.
func (s *OrgRequestService) ListRecent(requesterID uuid.UUID) ([]models.OrgRequest, error) {
	windowDays := config.GetConfig().GetRequestRecentWindowDays()
	cutoff := time.Now().UTC().Add(-time.Duration(windowDays) * 24 * time.Hour)

	var requests []models.OrgRequest
	err := s.db.Where("requester_id = ?", requesterID).
		Where("status = ? OR created_at > ? OR reviewed_at > ?",
			models.RequestStatusPending, cutoff, cutoff).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	return requests, nil
}

// ListPendingAll returns every pending request, for the superadmin review queue
func (s *OrgRequestService) ListPendingAll() ([]models.OrgRequest, error) {
	var requests []models.OrgRequest
	err := s.db.Where("status = ?", models.RequestStatusPending).
		Order("created_at ASC").
		Find(&requests).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pending requests: %w", err)
	}
	return requests, nil
}

func (s *OrgRequestService) notifyReviewed(requestID uuid.UUID, approved bool) {
	if s.notifier == nil {
		return
	}

	var request models.OrgRequest
	if err := s.db.First(&request, requestID).Error; err != nil {
		return
	}
	var requester models.Profile
	if err := s.db.First(&requester, request.RequesterID).Error; err != nil {
		return
	}

	s.notifier.SendRequestReviewedEmail(clients.RequestReviewedEmailRequest{
		Email:    requester.Email,
		Name:     requester.FullName(),
		OrgName:  request.OrgName,
		Approved: approved,
	})

	outcome := "approved"
	level := "success"
	if !approved {
		outcome = "rejected"
		level = "warning"
	}
	s.notifier.SendInAppNotification(clients.InAppNotificationRequest{
		UserID:   request.RequesterID,
		Type:     "org_request_reviewed",
		Level:    level,
		Title:    "Organization request " + outcome,
		Message:  fmt.Sprintf("Your request for %q was %s", request.OrgName, outcome),
		EntityID: request.ID,
		Entity:   "org_request",
	})
}
