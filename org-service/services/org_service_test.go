package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"paddock-backend/shared/database/models"
	"paddock-backend/shared/database/models/care"
	"paddock-backend/shared/utils/access"
)

func TestCreateOrgRejectsEmptyName(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrgService(db, NewMembershipService(db, nil), nil)
	creator := createProfile(t, db, "creator@example.com")

	for _, name := range []string{"", "   ", "\t\n"} {
		_, err := svc.Create(name, creator.ID)
		assert.ErrorIs(t, err, ErrEmptyName)
	}

	// No writes happened
	assert.EqualValues(t, 0, countRows(t, db, &models.Organization{}, ""))
	assert.EqualValues(t, 0, countRows(t, db, &models.Membership{}, ""))
}

func TestCreateOrgMakesCreatorLevelThree(t *testing.T) {
	db := newTestDB(t)
	memberships := NewMembershipService(db, nil)
	svc := NewOrgService(db, memberships, nil)
	creator := createProfile(t, db, "creator@example.com")

	org, err := svc.Create("  North Zoo  ", creator.ID)
	require.NoError(t, err)

	assert.Equal(t, "North Zoo", org.Name)
	assert.Equal(t, access.LevelSuperadmin, memberships.AccessLevel(creator.ID, org.ID))
}

func TestCreateOrgRollsBackWhenMembershipInsertFails(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrgService(db, NewMembershipService(db, nil), nil)
	creator := createProfile(t, db, "creator@example.com")

	// Simulate the membership insert failing after the org insert
	require.NoError(t, db.Callback().Create().Before("gorm:create").
		Register("fail_membership_insert", func(tx *gorm.DB) {
			if tx.Statement.Table == "user_org_role" {
				tx.AddError(errors.New("simulated membership insert failure"))
			}
		}))

	_, err := svc.Create("Zoo", creator.ID)
	require.Error(t, err)

	// Zero organization rows remain
	assert.EqualValues(t, 0, countRows(t, db, &models.Organization{}, ""))
}

func TestListOrgsForUser(t *testing.T) {
	db := newTestDB(t)
	memberships := NewMembershipService(db, nil)
	svc := NewOrgService(db, memberships, nil)

	member := createProfile(t, db, "member@example.com")
	outsider := createProfile(t, db, "outsider@example.com")

	first, err := svc.Create("North Zoo", member.ID)
	require.NoError(t, err)
	_, err = svc.Create("South Zoo", outsider.ID)
	require.NoError(t, err)

	orgs, err := svc.ListForUser(member.ID)
	require.NoError(t, err)
	require.Len(t, orgs, 1)
	assert.Equal(t, first.ID, orgs[0].ID)
}

func TestDeleteOrgCascades(t *testing.T) {
	db := newTestDB(t)
	memberships := NewMembershipService(db, nil)
	svc := NewOrgService(db, memberships, nil)
	invites := NewInviteService(db, memberships, nil)

	owner := createProfile(t, db, "owner@example.com")
	org, err := svc.Create("North Zoo", owner.ID)
	require.NoError(t, err)

	invite, err := invites.Create(org.ID, owner.ID, "a@x.com", access.LevelCaretaker)
	require.NoError(t, err)

	enclosure := care.Enclosure{OrgID: org.ID, Name: "Savannah"}
	require.NoError(t, db.Create(&enclosure).Error)
	template := care.TaskTemplate{OrgID: org.ID, EnclosureID: enclosure.ID, Title: "Feed", IntervalDays: 1}
	require.NoError(t, db.Create(&template).Error)
	completion := care.TaskCompletion{TemplateID: template.ID, CompletedBy: owner.ID}
	require.NoError(t, db.Create(&completion).Error)

	require.NoError(t, svc.Delete(org.ID))

	assert.EqualValues(t, 0, countRows(t, db, &models.Organization{}, ""))
	assert.EqualValues(t, 0, countRows(t, db, &models.Membership{}, "org_id = ?", org.ID))
	assert.EqualValues(t, 0, countRows(t, db, &care.Enclosure{}, ""))
	assert.EqualValues(t, 0, countRows(t, db, &care.TaskTemplate{}, ""))
	assert.EqualValues(t, 0, countRows(t, db, &care.TaskCompletion{}, ""))

	// The pending invite flips to cancelled; its row is kept
	var stored models.Invite
	require.NoError(t, db.First(&stored, invite.ID).Error)
	assert.Equal(t, models.InviteStatusCancelled, stored.Status)
}

func TestDeleteMissingOrg(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrgService(db, NewMembershipService(db, nil), nil)

	assert.ErrorIs(t, svc.Delete(newUUID()), ErrOrgNotFound)
}
