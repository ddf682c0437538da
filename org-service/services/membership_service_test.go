package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paddock-backend/shared/database/models"
	"paddock-backend/shared/utils/access"
)

func TestAddMemberRejectsDuplicate(t *testing.T) {
	db := newTestDB(t)
	svc := NewMembershipService(db, nil)

	org := createOrgRow(t, db, "North Zoo")
	user := createProfile(t, db, "carer@example.com")

	require.NoError(t, svc.AddMember(org.ID, user.ID, access.LevelCaretaker))

	err := svc.AddMember(org.ID, user.ID, access.LevelOwner)
	assert.ErrorIs(t, err, ErrDuplicateMembership)

	// Never two rows for the same (user, org)
	assert.EqualValues(t, 1, countRows(t, db, &models.Membership{},
		"org_id = ? AND user_id = ?", org.ID, user.ID))
}

func TestRemoveMemberIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewMembershipService(db, nil)

	org := createOrgRow(t, db, "North Zoo")
	user := createProfile(t, db, "carer@example.com")

	require.NoError(t, svc.AddMember(org.ID, user.ID, access.LevelCaretaker))
	require.NoError(t, svc.RemoveMember(org.ID, user.ID))

	// Removing a non-member is not an error
	require.NoError(t, svc.RemoveMember(org.ID, user.ID))
	require.NoError(t, svc.RemoveMember(org.ID, newUUID()))
}

func TestAccessLevelDefaultsToZero(t *testing.T) {
	db := newTestDB(t)
	svc := NewMembershipService(db, nil)

	org := createOrgRow(t, db, "North Zoo")
	member := createProfile(t, db, "member@example.com")
	outsider := createProfile(t, db, "outsider@example.com")

	require.NoError(t, svc.AddMember(org.ID, member.ID, access.LevelOwner))

	assert.Equal(t, access.LevelOwner, svc.AccessLevel(member.ID, org.ID))
	assert.Equal(t, access.LevelNone, svc.AccessLevel(outsider.ID, org.ID))
}

func TestKickMemberRequiresLevelThreeActor(t *testing.T) {
	db := newTestDB(t)
	svc := NewMembershipService(db, nil)

	org := createOrgRow(t, db, "North Zoo")
	admin := createProfile(t, db, "admin@example.com")
	owner := createProfile(t, db, "owner@example.com")
	carer := createProfile(t, db, "carer@example.com")

	require.NoError(t, svc.AddMember(org.ID, admin.ID, access.LevelSuperadmin))
	require.NoError(t, svc.AddMember(org.ID, owner.ID, access.LevelOwner))
	require.NoError(t, svc.AddMember(org.ID, carer.ID, access.LevelCaretaker))

	// Level 2 may not kick
	assert.ErrorIs(t, svc.KickMember(org.ID, owner.ID, carer.ID), ErrNotAllowed)

	// Self-kick is not a kick
	assert.ErrorIs(t, svc.KickMember(org.ID, admin.ID, admin.ID), ErrNotAllowed)

	require.NoError(t, svc.KickMember(org.ID, admin.ID, carer.ID))
	assert.Equal(t, access.LevelNone, svc.AccessLevel(carer.ID, org.ID))
}

func TestListMembersIncludesProfileData(t *testing.T) {
	db := newTestDB(t)
	svc := NewMembershipService(db, nil)

	org := createOrgRow(t, db, "North Zoo")
	user := createProfile(t, db, "carer@example.com")
	require.NoError(t, svc.AddMember(org.ID, user.ID, access.LevelCaretaker))

	members, err := svc.ListMembers(org.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)

	assert.Equal(t, "carer@example.com", members[0].Email)
	assert.Equal(t, "Caretaker", members[0].RoleName)
	assert.Equal(t, access.LevelCaretaker, members[0].AccessLvl)
}
