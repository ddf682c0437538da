package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"paddock-backend/shared/database/models"
	"paddock-backend/shared/utils/access"
)

type inviteFixture struct {
	db          *gorm.DB
	memberships *MembershipService
	invites     *InviteService
	org         *models.Organization
	inviter     *models.Profile
}

func newInviteFixture(t *testing.T) *inviteFixture {
	db := newTestDB(t)
	memberships := NewMembershipService(db, nil)
	invites := NewInviteService(db, memberships, nil)

	org := createOrgRow(t, db, "North Zoo")
	inviter := createProfile(t, db, "owner@example.com")
	require.NoError(t, memberships.AddMember(org.ID, inviter.ID, access.LevelOwner))

	return &inviteFixture{
		db:          db,
		memberships: memberships,
		invites:     invites,
		org:         org,
		inviter:     inviter,
	}
}

func TestCreateInvite(t *testing.T) {
	f := newInviteFixture(t)

	invite, err := f.invites.Create(f.org.ID, f.inviter.ID, "  New@Example.COM ", access.LevelCaretaker)
	require.NoError(t, err)

	assert.Equal(t, models.InviteStatusPending, invite.Status)
	assert.Equal(t, "new@example.com", invite.InviteeEmail)
	assert.WithinDuration(t, time.Now().UTC().Add(7*24*time.Hour), invite.ExpiresAt, time.Minute)
}

func TestCreateInviteRejectsSelfInvite(t *testing.T) {
	f := newInviteFixture(t)

	// Case-insensitive, trimmed comparison against the inviter's own email
	_, err := f.invites.Create(f.org.ID, f.inviter.ID, " OWNER@example.com ", access.LevelCaretaker)
	assert.ErrorIs(t, err, ErrSelfInvite)
}

func TestCreateInviteRejectsExistingMember(t *testing.T) {
	f := newInviteFixture(t)

	member := createProfile(t, f.db, "member@example.com")
	require.NoError(t, f.memberships.AddMember(f.org.ID, member.ID, access.LevelCaretaker))

	_, err := f.invites.Create(f.org.ID, f.inviter.ID, "member@example.com", access.LevelCaretaker)
	assert.ErrorIs(t, err, ErrAlreadyMember)
}

func TestCreateInviteRejectsDuplicatePending(t *testing.T) {
	f := newInviteFixture(t)

	_, err := f.invites.Create(f.org.ID, f.inviter.ID, "a@x.com", access.LevelCaretaker)
	require.NoError(t, err)

	// A second pending invite for the same (org, email) must fail even
	// with a different access level
	_, err = f.invites.Create(f.org.ID, f.inviter.ID, "a@x.com", access.LevelOwner)
	assert.ErrorIs(t, err, ErrDuplicatePendingInvite)

	assert.EqualValues(t, 1, countRows(t, f.db, &models.Invite{},
		"org_id = ? AND invitee_email = ? AND status = ?",
		f.org.ID, "a@x.com", models.InviteStatusPending))
}

func TestCreateInviteAfterExpiry(t *testing.T) {
	f := newInviteFixture(t)

	first, err := f.invites.Create(f.org.ID, f.inviter.ID, "a@x.com", access.LevelCaretaker)
	require.NoError(t, err)
	require.NoError(t, f.db.Model(&models.Invite{}).Where("id = ?", first.ID).
		Update("expires_at", time.Now().UTC().Add(-time.Hour)).Error)

	// An expired row is merely non-actionable; it must not hold the
	// pending slot against a fresh invite for the same email
	second, err := f.invites.Create(f.org.ID, f.inviter.ID, "a@x.com", access.LevelOwner)
	require.NoError(t, err)
	assert.Equal(t, models.InviteStatusPending, second.Status)

	// The stale row was retired, not deleted
	var stored models.Invite
	require.NoError(t, f.db.First(&stored, first.ID).Error)
	assert.Equal(t, models.InviteStatusCancelled, stored.Status)
}

func TestPendingInviteUniqueIndexHoldsWithoutFastPath(t *testing.T) {
	f := newInviteFixture(t)

	_, err := f.invites.Create(f.org.ID, f.inviter.ID, "a@x.com", access.LevelCaretaker)
	require.NoError(t, err)

	// Insert directly, bypassing the application-level duplicate check,
	// the way a concurrent caller would slip past it
	dup := models.Invite{
		OrgID:        f.org.ID,
		InviterID:    f.inviter.ID,
		InviteeEmail: "a@x.com",
		AccessLvl:    access.LevelCaretaker,
		Status:       models.InviteStatusPending,
		ExpiresAt:    time.Now().UTC().Add(24 * time.Hour),
	}
	err = f.db.Create(&dup).Error
	require.Error(t, err)
	assert.True(t, isUniqueViolation(err))
}

func TestAcceptInvite(t *testing.T) {
	f := newInviteFixture(t)

	invite, err := f.invites.Create(f.org.ID, f.inviter.ID, "a@x.com", access.LevelCaretaker)
	require.NoError(t, err)

	user := createProfile(t, f.db, "a@x.com")
	accepted, err := f.invites.Accept(invite.ID, user.ID)
	require.NoError(t, err)

	assert.Equal(t, models.InviteStatusAccepted, accepted.Status)
	assert.Equal(t, access.LevelCaretaker, f.memberships.AccessLevel(user.ID, f.org.ID))
}

func TestAcceptInviteDoesNotRevalidateEmail(t *testing.T) {
	f := newInviteFixture(t)

	invite, err := f.invites.Create(f.org.ID, f.inviter.ID, "a@x.com", access.LevelCaretaker)
	require.NoError(t, err)

	// Whoever holds the invite id may claim it, regardless of their email
	other := createProfile(t, f.db, "someone-else@x.com")
	_, err = f.invites.Accept(invite.ID, other.ID)
	require.NoError(t, err)

	assert.Equal(t, access.LevelCaretaker, f.memberships.AccessLevel(other.ID, f.org.ID))
}

func TestAcceptInviteIsTerminal(t *testing.T) {
	f := newInviteFixture(t)

	invite, err := f.invites.Create(f.org.ID, f.inviter.ID, "a@x.com", access.LevelCaretaker)
	require.NoError(t, err)

	user := createProfile(t, f.db, "a@x.com")
	_, err = f.invites.Accept(invite.ID, user.ID)
	require.NoError(t, err)

	// The losing side of a race on the same invite observes not-found,
	// never a duplicate membership row
	second := createProfile(t, f.db, "b@x.com")
	_, err = f.invites.Accept(invite.ID, second.ID)
	assert.ErrorIs(t, err, ErrInviteNotFound)
	assert.Equal(t, access.LevelNone, f.memberships.AccessLevel(second.ID, f.org.ID))
}

func TestAcceptExpiredInvite(t *testing.T) {
	f := newInviteFixture(t)

	invite, err := f.invites.Create(f.org.ID, f.inviter.ID, "a@x.com", access.LevelCaretaker)
	require.NoError(t, err)

	require.NoError(t, f.db.Model(&models.Invite{}).Where("id = ?", invite.ID).
		Update("expires_at", time.Now().UTC().Add(-time.Hour)).Error)

	user := createProfile(t, f.db, "a@x.com")
	_, err = f.invites.Accept(invite.ID, user.ID)
	assert.ErrorIs(t, err, ErrInviteExpired)

	// No membership row is created and the invite stays pending
	assert.Equal(t, access.LevelNone, f.memberships.AccessLevel(user.ID, f.org.ID))

	var stored models.Invite
	require.NoError(t, f.db.First(&stored, invite.ID).Error)
	assert.Equal(t, models.InviteStatusPending, stored.Status)
}

func TestAcceptInviteRollsBackOnDuplicateMembership(t *testing.T) {
	f := newInviteFixture(t)

	invite, err := f.invites.Create(f.org.ID, f.inviter.ID, "a@x.com", access.LevelCaretaker)
	require.NoError(t, err)

	// The accepting user joined through another path in the meantime
	user := createProfile(t, f.db, "a@x.com")
	require.NoError(t, f.memberships.AddMember(f.org.ID, user.ID, access.LevelCaretaker))

	_, err = f.invites.Accept(invite.ID, user.ID)
	assert.ErrorIs(t, err, ErrAlreadyMember)

	// No partial state: the invite must remain pending
	var stored models.Invite
	require.NoError(t, f.db.First(&stored, invite.ID).Error)
	assert.Equal(t, models.InviteStatusPending, stored.Status)
}

func TestRejectInviteAuthorization(t *testing.T) {
	f := newInviteFixture(t)

	invite, err := f.invites.Create(f.org.ID, f.inviter.ID, "a@x.com", access.LevelCaretaker)
	require.NoError(t, err)

	stranger := createProfile(t, f.db, "stranger@x.com")
	assert.ErrorIs(t, f.invites.Reject(invite.ID, stranger.ID), ErrNotAllowed)

	invitee := createProfile(t, f.db, "a@x.com")
	require.NoError(t, f.invites.Reject(invite.ID, invitee.ID))

	var stored models.Invite
	require.NoError(t, f.db.First(&stored, invite.ID).Error)
	assert.Equal(t, models.InviteStatusRejected, stored.Status)
}

func TestRejectInviteByOrgManager(t *testing.T) {
	f := newInviteFixture(t)

	invite, err := f.invites.Create(f.org.ID, f.inviter.ID, "a@x.com", access.LevelCaretaker)
	require.NoError(t, err)

	require.NoError(t, f.invites.Reject(invite.ID, f.inviter.ID))
}

func TestRetractInvite(t *testing.T) {
	f := newInviteFixture(t)

	invite, err := f.invites.Create(f.org.ID, f.inviter.ID, "a@x.com", access.LevelCaretaker)
	require.NoError(t, err)

	require.NoError(t, f.invites.Retract(invite.ID, f.inviter.ID))

	var stored models.Invite
	require.NoError(t, f.db.First(&stored, invite.ID).Error)
	assert.Equal(t, models.InviteStatusCancelled, stored.Status)

	// Retracting a non-pending invite is a silent no-op
	require.NoError(t, f.invites.Retract(invite.ID, f.inviter.ID))
	require.NoError(t, f.invites.Retract(newUUID(), f.inviter.ID))
}

func TestRetractInviteAuthorization(t *testing.T) {
	f := newInviteFixture(t)

	invite, err := f.invites.Create(f.org.ID, f.inviter.ID, "a@x.com", access.LevelCaretaker)
	require.NoError(t, err)

	// Holding the invite id is not enough to cancel someone else's invite
	stranger := createProfile(t, f.db, "stranger@x.com")
	assert.ErrorIs(t, f.invites.Retract(invite.ID, stranger.ID), ErrNotAllowed)

	var stored models.Invite
	require.NoError(t, f.db.First(&stored, invite.ID).Error)
	assert.Equal(t, models.InviteStatusPending, stored.Status)

	// Another owner of the organization may retract it
	manager := createProfile(t, f.db, "manager@x.com")
	require.NoError(t, f.memberships.AddMember(f.org.ID, manager.ID, access.LevelOwner))
	require.NoError(t, f.invites.Retract(invite.ID, manager.ID))
}

func TestListPendingFiltersExpired(t *testing.T) {
	f := newInviteFixture(t)

	live, err := f.invites.Create(f.org.ID, f.inviter.ID, "live@x.com", access.LevelCaretaker)
	require.NoError(t, err)

	expired, err := f.invites.Create(f.org.ID, f.inviter.ID, "old@x.com", access.LevelCaretaker)
	require.NoError(t, err)
	require.NoError(t, f.db.Model(&models.Invite{}).Where("id = ?", expired.ID).
		Update("expires_at", time.Now().UTC().Add(-time.Hour)).Error)

	pending, err := f.invites.ListPending(f.org.ID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, live.ID, pending[0].ID)

	// The expired row is filtered, not deleted
	assert.EqualValues(t, 2, countRows(t, f.db, &models.Invite{}, "org_id = ?", f.org.ID))
}
