package models

import (
	"time"

	"github.com/google/uuid"
)

// Membership is the authoritative (user, org, access level) association.
// The composite primary key enforces at most one row per (user, org) pair.
type Membership struct {
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;primaryKey"`
	OrgID     uuid.UUID `json:"org_id" gorm:"type:uuid;primaryKey"`
	AccessLvl int       `json:"access_lvl" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (Membership) TableName() string {
	return "user_org_role"
}
