package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Invite statuses. Pending is the only non-terminal state.
const (
	InviteStatusPending   = "pending"
	InviteStatusAccepted  = "accepted"
	InviteStatusRejected  = "rejected"
	InviteStatusCancelled = "cancelled"
)

// Invite is a proposal to grant membership to an email address. It never
// grants access directly; accepting one produces a Membership row.
type Invite struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	OrgID        uuid.UUID `json:"org_id" gorm:"type:uuid;not null;index"`
	InviterID    uuid.UUID `json:"inviter_id" gorm:"type:uuid;not null"`
	InviteeEmail string    `json:"invitee_email" gorm:"size:255;not null"`
	AccessLvl    int       `json:"access_lvl" gorm:"not null"`
	Status       string    `json:"status" gorm:"size:20;not null;default:'pending';index"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `json:"expires_at" gorm:"not null"`
}

func (Invite) TableName() string {
	return "invites"
}

func (i *Invite) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// IsExpired reports whether the invite is past its expiry at the given time.
// Expiry is evaluated at read time; expired rows stay in the table until
// acted upon.
func (i *Invite) IsExpired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}
