package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Domain errors surfaced by the membership, invite and org-request
// services. Handlers translate these to HTTP statuses; anything else is
// an unexpected storage failure and passes through wrapped.
var (
	ErrEmptyName               = errors.New("organization name cannot be empty")
	ErrDuplicateMembership     = errors.New("user is already a member of this organization")
	ErrAlreadyMember           = errors.New("invitee is already a member of this organization")
	ErrSelfInvite              = errors.New("cannot invite yourself")
	ErrDuplicatePendingInvite  = errors.New("a pending invite already exists for this email")
	ErrInviteNotFound          = errors.New("invite not found or no longer pending")
	ErrInviteExpired           = errors.New("invite has expired")
	ErrDuplicatePendingRequest = errors.New("a pending request with this name already exists")
	ErrRequestNotFound         = errors.New("request not found or no longer pending")
	ErrOrgNotFound             = errors.New("organization not found")
	ErrNotAllowed              = errors.New("not allowed to perform this action")
)

// isUniqueViolation reports whether err is a unique-constraint failure.
// The partial unique indexes make duplicate inserts fail atomically; this
// recognizes that failure across the postgres and sqlite drivers.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
