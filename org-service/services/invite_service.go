package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"paddock-backend/shared/clients"
	"paddock-backend/shared/config"
	"paddock-backend/shared/database/models"
	"paddock-backend/shared/utils/access"
	utils "paddock-backend/shared/utils/auth"
)

// InviteService drives the invitation lifecycle:
//
//	pending -> accepted | rejected | cancelled
//
// All three target states are terminal. Every transition is a conditional
// update guarded on status='pending', so two racing callers resolve at
// the database: the loser sees zero rows affected.
type InviteService struct {
	db          *gorm.DB
	memberships *MembershipService
	notifier    *clients.NotificationClient
}

// NewInviteService creates an invite service. The notifier may be nil;
// notifications are best effort and never fail a transition.
func NewInviteService(db *gorm.DB, memberships *MembershipService, notifier *clients.NotificationClient) *InviteService {
	return &InviteService{db: db, memberships: memberships, notifier: notifier}
}

// Create inserts a pending invite for the given email at the given access
// level. The expiry is a fixed offset from creation (INVITE_EXPIRE_DAYS,
// default 7 days).
func (s *InviteService) Create(orgID, inviterID uuid.UUID, inviteeEmail string, accessLvl int) (*models.Invite, error) {
	inviteeEmail = utils.NormalizeEmail(inviteeEmail)
	if err := utils.ValidateEmail(inviteeEmail); err != nil {
		return nil, err
	}
	if accessLvl < access.LevelCaretaker || accessLvl > access.LevelSuperadmin {
		accessLvl = access.LevelCaretaker
	}

	var org models.Organization
	if err := s.db.First(&org, orgID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrgNotFound
		}
		return nil, fmt.Errorf("failed to load organization: %w", err)
	}

	var inviter models.Profile
	if err := s.db.First(&inviter, inviterID).Error; err != nil {
		return nil, fmt.Errorf("failed to load inviter profile: %w", err)
	}
	if utils.NormalizeEmail(inviter.Email) == inviteeEmail {
		return nil, ErrSelfInvite
	}

	// If the email already belongs to a member, refuse up front
	var invitee models.Profile
	if err := s.db.Where("email = ?", inviteeEmail).First(&invitee).Error; err == nil {
		if s.memberships.AccessLevel(invitee.ID, orgID) > access.LevelNone {
			return nil, ErrAlreadyMember
		}
	}

	// Fast-path duplicate check; the partial unique index below is the
	// authoritative guard against concurrent creates
	now := time.Now().UTC()
	var pending int64
	s.db.Model(&models.Invite{}).
		Where("org_id = ? AND invitee_email = ? AND status = ? AND expires_at > ?",
			orgID, inviteeEmail, models.InviteStatusPending, now).
		Count(&pending)
	if pending > 0 {
		return nil, ErrDuplicatePendingInvite
	}

	// An expired row still occupies the pending slot in the unique index.
	// Retire it so the fresh invite can take its place; the status and
	// expiry guards leave a live or already-resolved row untouched.
	retire := s.db.Model(&models.Invite{}).
		Where("org_id = ? AND invitee_email = ? AND status = ? AND expires_at <= ?",
			orgID, inviteeEmail, models.InviteStatusPending, now).
		Update("status", models.InviteStatusCancelled)
	if retire.Error != nil {
		return nil, fmt.Errorf("failed to retire expired invite: %w", retire.Error)
	}

	invite := models.Invite{
		OrgID:        orgID,
		InviterID:    inviterID,
		InviteeEmail: inviteeEmail,
		AccessLvl:    accessLvl,
		Status:       models.InviteStatusPending,
		ExpiresAt:    now.Add(time.Duration(config.GetConfig().GetInviteExpireDays()) * 24 * time.Hour),
	}

	if err := s.db.Create(&invite).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicatePendingInvite
		}
		return nil, fmt.Errorf("failed to create invite: %w", err)
	}

	if s.notifier != nil {
		s.notifier.SendInviteEmail(clients.InviteEmailRequest{
			Email:       inviteeEmail,
			OrgName:     org.Name,
			InviterName: inviter.FullName(),
			RoleName:    access.LevelName(accessLvl),
			ExpiresAt:   invite.ExpiresAt.Format(time.RFC3339),
		})
		if invitee.ID != uuid.Nil {
			s.notifier.SendInAppNotification(clients.InAppNotificationRequest{
				UserID:   invitee.ID,
				Type:     "invite_received",
				Level:    "info",
				Title:    "New invitation",
				Message:  fmt.Sprintf("%s invited you to join %s", inviter.FullName(), org.Name),
				EntityID: invite.ID,
				Entity:   "invite",
			})
		}
	}

	return &invite, nil
}

// Accept transitions a pending invite to accepted and creates the
// membership row as one atomic unit. If the membership insert fails the
// transaction rolls back and the invite stays pending.
//
// The accepting user's email is deliberately not matched against the
// invitee email: whoever holds the invite id may claim it.
func (s *InviteService) Accept(inviteID, userID uuid.UUID) (*models.Invite, error) {
	var invite models.Invite

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND status = ?", inviteID, models.InviteStatusPending).
			First(&invite).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInviteNotFound
			}
			return fmt.Errorf("failed to load invite: %w", err)
		}

		// Expiry is re-checked at the moment of the transition, not just
		// at list-rendering time
		if invite.IsExpired(time.Now().UTC()) {
			return ErrInviteExpired
		}

		if err := s.memberships.WithTx(tx).AddMember(invite.OrgID, userID, invite.AccessLvl); err != nil {
			if errors.Is(err, ErrDuplicateMembership) {
				return ErrAlreadyMember
			}
			return err
		}

		result := tx.Model(&models.Invite{}).
			Where("id = ? AND status = ?", inviteID, models.InviteStatusPending).
			Update("status", models.InviteStatusAccepted)
		if result.Error != nil {
			return fmt.Errorf("failed to accept invite: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrInviteNotFound
		}

		invite.Status = models.InviteStatusAccepted
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &invite, nil
}

// Reject transitions a pending invite to rejected. The actor must be the
// invitee (by email) or hold owner level or above in the organization.
func (s *InviteService) Reject(inviteID, actorID uuid.UUID) error {
	var invite models.Invite
	if err := s.db.Where("id = ? AND status = ?", inviteID, models.InviteStatusPending).
		First(&invite).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInviteNotFound
		}
		return fmt.Errorf("failed to load invite: %w", err)
	}

	var actor models.Profile
	if err := s.db.First(&actor, actorID).Error; err != nil {
		return fmt.Errorf("failed to load actor profile: %w", err)
	}

	isInvitee := utils.NormalizeEmail(actor.Email) == invite.InviteeEmail
	isOrgManager := access.CanManageMembers(s.memberships.AccessLevel(actorID, invite.OrgID))
	if !isInvitee && !isOrgManager && !actor.IsSuperadmin {
		return ErrNotAllowed
	}

	result := s.db.Model(&models.Invite{}).
		Where("id = ? AND status = ?", inviteID, models.InviteStatusPending).
		Update("status", models.InviteStatusRejected)
	if result.Error != nil {
		return fmt.Errorf("failed to reject invite: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrInviteNotFound
	}
	return nil
}

// Retract transitions a pending invite to cancelled. The actor must be
// the inviter or hold owner level or above in the organization. When the
// row is no longer pending this is a silent no-op: the invite is simply
// no longer actionable, which is all the caller may conclude.
func (s *InviteService) Retract(inviteID, actorID uuid.UUID) error {
	var invite models.Invite
	if err := s.db.Where("id = ? AND status = ?", inviteID, models.InviteStatusPending).
		First(&invite).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to load invite: %w", err)
	}

	var actor models.Profile
	if err := s.db.First(&actor, actorID).Error; err != nil {
		return fmt.Errorf("failed to load actor profile: %w", err)
	}

	isInviter := invite.InviterID == actorID
	isOrgManager := access.CanManageMembers(s.memberships.AccessLevel(actorID, invite.OrgID))
	if !isInviter && !isOrgManager && !actor.IsSuperadmin {
		return ErrNotAllowed
	}

	result := s.db.Model(&models.Invite{}).
		Where("id = ? AND status = ?", inviteID, models.InviteStatusPending).
		Update("status", models.InviteStatusCancelled)
	if result.Error != nil {
		return fmt.Errorf("failed to retract invite: %w", result.Error)
	}
	return nil
}

// ListPending returns the actionable invites of an organization. Expired
// rows are filtered at read time; they stay in the table until acted upon.
func (s *InviteService) ListPending(orgID uuid.UUID) ([]models.Invite, error) {
	var invites []models.Invite
	err := s.db.Where("org_id = ? AND status = ? AND expires_at > ?",
		orgID, models.InviteStatusPending, time.Now().UTC()).
		Order("created_at DESC").
		Find(&invites).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list invites: %w", err)
	}
	return invites, nil
}

// ListForEmail returns the actionable invites addressed to an email
func (s *InviteService) ListForEmail(email string) ([]models.Invite, error) {
	var invites []models.Invite
	err := s.db.Where("invitee_email = ? AND status = ? AND expires_at > ?",
		utils.NormalizeEmail(email), models.InviteStatusPending, time.Now().UTC()).
		Order("created_at DESC").
		Find(&invites).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list invites: %w", err)
	}
	return invites, nil
}
