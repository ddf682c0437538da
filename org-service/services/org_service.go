package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"paddock-backend/shared/database/models"
	"paddock-backend/shared/database/models/care"
	"paddock-backend/shared/utils/access"
	"paddock-backend/shared/utils/cache"
)

// OrgService owns organization lifecycle: creation with the creator as
// level 3, and deletion with its cascade.
type OrgService struct {
	db          *gorm.DB
	memberships *MembershipService
	cache       *cache.CacheManager
}

// NewOrgService creates an org service
func NewOrgService(db *gorm.DB, memberships *MembershipService, cm *cache.CacheManager) *OrgService {
	return &OrgService{db: db, memberships: memberships, cache: cm}
}

// Create inserts an organization and the creator's level-3 membership as
// one transaction. If the membership insert fails the organization is
// rolled back with it; no orphan org row survives.
func (s *OrgService) Create(name string, creatorID uuid.UUID) (*models.Organization, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	var org models.Organization
	err := s.db.Transaction(func(tx *gorm.DB) error {
		org = models.Organization{Name: name}
		if err := tx.Create(&org).Error; err != nil {
			return fmt.Errorf("failed to create organization: %w", err)
		}
		return s.memberships.WithTx(tx).AddMember(org.ID, creatorID, access.LevelSuperadmin)
	})
	if err != nil {
		return nil, err
	}

	return &org, nil
}

// Get returns one organization
func (s *OrgService) Get(orgID uuid.UUID) (*models.Organization, error) {
	var org models.Organization
	if err := s.db.First(&org, orgID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrgNotFound
		}
		return nil, fmt.Errorf("failed to load organization: %w", err)
	}
	return &org, nil
}

// ListForUser returns the organizations the user is a member of
func (s *OrgService) ListForUser(userID uuid.UUID) ([]models.Organization, error) {
	var orgs []models.Organization
	err := s.db.
		Joins("JOIN user_org_role ON user_org_role.org_id = orgs.id").
		Where("user_org_role.user_id = ?", userID).
		Order("orgs.created_at ASC").
		Find(&orgs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	return orgs, nil
}

// Delete removes an organization and everything that hangs off it:
// membership rows, pending invites (cancelled, terminal rows kept for
// history), care data, and finally the org row itself. One transaction.
func (s *OrgService) Delete(orgID uuid.UUID) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Organization{}, orgID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrgNotFound
			}
			return fmt.Errorf("failed to load organization: %w", err)
		}

		if err := tx.Where("org_id = ?", orgID).Delete(&models.Membership{}).Error; err != nil {
			return fmt.Errorf("failed to delete memberships: %w", err)
		}

		if err := tx.Model(&models.Invite{}).
			Where("org_id = ? AND status = ?", orgID, models.InviteStatusPending).
			Update("status", models.InviteStatusCancelled).Error; err != nil {
			return fmt.Errorf("failed to cancel invites: %w", err)
		}

		// Care cascade: completions hang off templates, templates off the org
		templateIDs := tx.Model(&care.TaskTemplate{}).Select("id").Where("org_id = ?", orgID)
		if err := tx.Where("template_id IN (?)", templateIDs).
			Delete(&care.TaskCompletion{}).Error; err != nil {
			return fmt.Errorf("failed to delete task completions: %w", err)
		}
		if err := tx.Where("org_id = ?", orgID).Delete(&care.TaskTemplate{}).Error; err != nil {
			return fmt.Errorf("failed to delete task templates: %w", err)
		}
		if err := tx.Where("org_id = ?", orgID).Delete(&care.Species{}).Error; err != nil {
			return fmt.Errorf("failed to delete species: %w", err)
		}
		if err := tx.Where("org_id = ?", orgID).Delete(&care.Enclosure{}).Error; err != nil {
			return fmt.Errorf("failed to delete enclosures: %w", err)
		}

		if err := tx.Delete(&models.Organization{}, orgID).Error; err != nil {
			return fmt.Errorf("failed to delete organization: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.cache.InvalidateOrgAccessLevels(orgID)
	return nil
}
