package services

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"paddock-backend/shared/database/models"
	"paddock-backend/shared/utils/access"
	"paddock-backend/shared/utils/cache"
)

// MembershipService owns the user_org_role table, the single source of
// truth for who can do what in which organization. Invites and org
// requests are proposals that go through this service when they resolve;
// they never write membership rows themselves.
type MembershipService struct {
	db    *gorm.DB
	cache *cache.CacheManager
}

// NewMembershipService creates a membership service. The cache may be nil
// (tests, cache outage); every cache call degrades to the database.
func NewMembershipService(db *gorm.DB, cm *cache.CacheManager) *MembershipService {
	return &MembershipService{db: db, cache: cm}
}

// WithTx returns a copy of the service bound to the given transaction
func (s *MembershipService) WithTx(tx *gorm.DB) *MembershipService {
	return &MembershipService{db: tx, cache: s.cache}
}

// MemberInfo is one row of an organization's member list
type MemberInfo struct {
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	AccessLvl int       `json:"access_lvl"`
	RoleName  string    `json:"role_name"`
	CreatedAt string    `json:"created_at"`
}

// AddMember inserts a membership row. Fails with ErrDuplicateMembership
// when the (user, org) pair already exists; the composite primary key
// enforces this even against concurrent callers.
func (s *MembershipService) AddMember(orgID, userID uuid.UUID, accessLvl int) error {
	membership := models.Membership{
		UserID:    userID,
		OrgID:     orgID,
		AccessLvl: accessLvl,
	}

	if err := s.db.Create(&membership).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateMembership
		}
		return fmt.Errorf("failed to add member: %w", err)
	}

	s.cache.InvalidateAccessLevel(userID, orgID)
	return nil
}

// RemoveMember deletes a membership row. Idempotent: removing a
// non-member is not an error. Both "leave" and "kick" reduce to this.
func (s *MembershipService) RemoveMember(orgID, userID uuid.UUID) error {
	if err := s.db.Where("org_id = ? AND user_id = ?", orgID, userID).
		Delete(&models.Membership{}).Error; err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	s.cache.InvalidateAccessLevel(userID, orgID)
	return nil
}

// Leave removes the calling user's own membership
func (s *MembershipService) Leave(orgID, userID uuid.UUID) error {
	return s.RemoveMember(orgID, userID)
}

// KickMember removes another user's membership. The actor must hold
// level 3 in the organization and may not kick themselves.
func (s *MembershipService) KickMember(orgID, actorID, targetID uuid.UUID) error {
	if actorID == targetID {
		return ErrNotAllowed
	}
	if s.AccessLevel(actorID, orgID) < access.LevelSuperadmin {
		return ErrNotAllowed
	}
	return s.RemoveMember(orgID, targetID)
}

// AccessLevel returns the user's access level in the organization, or 0
// for a non-member. 0 is the safe default used for gating everywhere.
func (s *MembershipService) AccessLevel(userID, orgID uuid.UUID) int {
	return access.ResolveLevel(s.db, s.cache, userID, orgID)
}

// ListMembers returns the member list of an organization with profile data
func (s *MembershipService) ListMembers(orgID uuid.UUID) ([]MemberInfo, error) {
	var memberships []models.Membership
	if err := s.db.Where("org_id = ?", orgID).Order("created_at ASC").
		Find(&memberships).Error; err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	members := make([]MemberInfo, 0, len(memberships))
	for _, m := range memberships {
		info := MemberInfo{
			UserID:    m.UserID,
			AccessLvl: m.AccessLvl,
			RoleName:  access.LevelName(m.AccessLvl),
			CreatedAt: m.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}

		var profile models.Profile
		if err := s.db.First(&profile, m.UserID).Error; err == nil {
			info.Email = profile.Email
			info.FullName = profile.FullName()
		}

		members = append(members, info)
	}

	return members, nil
}
