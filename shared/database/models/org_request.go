package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Org request statuses. Pending is the only non-terminal state.
const (
	RequestStatusPending   = "pending"
	RequestStatusApproved  = "approved"
	RequestStatusRejected  = "rejected"
	RequestStatusCancelled = "cancelled"
)

// OrgRequest is a proposal from a non-privileged user to have a new
// organization created on their behalf, reviewed by a superadmin.
type OrgRequest struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	RequesterID uuid.UUID  `json:"requester_id" gorm:"type:uuid;not null;index"`
	OrgName     string     `json:"org_name" gorm:"size:200;not null"`
	Status      string     `json:"status" gorm:"size:20;not null;default:'pending';index"`
	CreatedAt   time.Time  `json:"created_at"`
	ReviewedBy  *uuid.UUID `json:"reviewed_by,omitempty" gorm:"type:uuid"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
}

func (OrgRequest) TableName() string {
	return "org_requests"
}

func (r *OrgRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
