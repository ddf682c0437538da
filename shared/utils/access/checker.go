package access

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"paddock-backend/shared/database/models"
	"paddock-backend/shared/utils/cache"
)

// ResolveLevel returns the user's access level in an organization, or 0
// for a non-member. Cached per (user, org); the cache may be nil, in
// which case every lookup hits the database. Storage errors gate as
// non-member.
func ResolveLevel(db *gorm.DB, cm *cache.CacheManager, userID, orgID uuid.UUID) int {
	if level, ok := cm.GetAccessLevel(userID, orgID); ok {
		return level
	}

	var membership models.Membership
	err := db.Where("user_id = ? AND org_id = ?", userID, orgID).First(&membership).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			_ = cm.SetAccessLevel(userID, orgID, LevelNone)
		}
		return LevelNone
	}

	_ = cm.SetAccessLevel(userID, orgID, membership.AccessLvl)
	return membership.AccessLvl
}
