package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paddock-backend/shared/database/models"
	"paddock-backend/shared/utils/access"
)

func TestCreateRequestTrimsAndValidatesName(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrgRequestService(db, NewMembershipService(db, nil), nil)
	requester := createProfile(t, db, "requester@example.com")

	_, err := svc.Create(requester.ID, "   ")
	assert.ErrorIs(t, err, ErrEmptyName)

	request, err := svc.Create(requester.ID, "  South Zoo  ")
	require.NoError(t, err)
	assert.Equal(t, "South Zoo", request.OrgName)
	assert.Equal(t, models.RequestStatusPending, request.Status)
}

func TestCreateRequestRejectsDuplicatePending(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrgRequestService(db, NewMembershipService(db, nil), nil)
	requester := createProfile(t, db, "requester@example.com")

	_, err := svc.Create(requester.ID, "South Zoo")
	require.NoError(t, err)

	_, err = svc.Create(requester.ID, " South Zoo ")
	assert.ErrorIs(t, err, ErrDuplicatePendingRequest)

	// A different requester may ask for the same name
	other := createProfile(t, db, "other@example.com")
	_, err = svc.Create(other.ID, "South Zoo")
	require.NoError(t, err)
}

func TestApproveRequest(t *testing.T) {
	db := newTestDB(t)
	memberships := NewMembershipService(db, nil)
	svc := NewOrgRequestService(db, memberships, nil)

	requester := createProfile(t, db, "requester@example.com")
	reviewer := createProfile(t, db, "admin@example.com")

	request, err := svc.Create(requester.ID, "South Zoo")
	require.NoError(t, err)

	org, err := svc.Approve(request.ID, reviewer.ID)
	require.NoError(t, err)
	require.NotNil(t, org)
	assert.Equal(t, "South Zoo", org.Name)

	// Requester becomes level 3 in the new org
	assert.Equal(t, access.LevelSuperadmin, memberships.AccessLevel(requester.ID, org.ID))

	var stored models.OrgRequest
	require.NoError(t, db.First(&stored, request.ID).Error)
	assert.Equal(t, models.RequestStatusApproved, stored.Status)
	require.NotNil(t, stored.ReviewedBy)
	assert.Equal(t, reviewer.ID, *stored.ReviewedBy)
	assert.NotNil(t, stored.ReviewedAt)
}

func TestApproveNonPendingRequestIsNoOp(t *testing.T) {
	db := newTestDB(t)
	memberships := NewMembershipService(db, nil)
	svc := NewOrgRequestService(db, memberships, nil)

	requester := createProfile(t, db, "requester@example.com")
	reviewer := createProfile(t, db, "admin@example.com")

	request, err := svc.Create(requester.ID, "South Zoo")
	require.NoError(t, err)
	require.NoError(t, svc.Retract(request.ID, requester.ID))

	org, err := svc.Approve(request.ID, reviewer.ID)
	require.NoError(t, err)
	assert.Nil(t, org)

	// No organization and no membership were created
	assert.EqualValues(t, 0, countRows(t, db, &models.Organization{}, ""))
	assert.EqualValues(t, 0, countRows(t, db, &models.Membership{}, ""))
}

func TestApproveTwiceCreatesOneOrg(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrgRequestService(db, NewMembershipService(db, nil), nil)

	requester := createProfile(t, db, "requester@example.com")
	reviewer := createProfile(t, db, "admin@example.com")

	request, err := svc.Create(requester.ID, "South Zoo")
	require.NoError(t, err)

	org, err := svc.Approve(request.ID, reviewer.ID)
	require.NoError(t, err)
	require.NotNil(t, org)

	// The second reviewer loses the conditional claim
	again, err := svc.Approve(request.ID, reviewer.ID)
	require.NoError(t, err)
	assert.Nil(t, again)

	assert.EqualValues(t, 1, countRows(t, db, &models.Organization{}, ""))
}

func TestRejectRequest(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrgRequestService(db, NewMembershipService(db, nil), nil)

	requester := createProfile(t, db, "requester@example.com")
	reviewer := createProfile(t, db, "admin@example.com")

	request, err := svc.Create(requester.ID, "South Zoo")
	require.NoError(t, err)
	require.NoError(t, svc.Reject(request.ID, reviewer.ID))

	var stored models.OrgRequest
	require.NoError(t, db.First(&stored, request.ID).Error)
	assert.Equal(t, models.RequestStatusRejected, stored.Status)
	require.NotNil(t, stored.ReviewedBy)
	assert.Equal(t, reviewer.ID, *stored.ReviewedBy)

	// Rejecting again is a silent no-op and does not create an org
	require.NoError(t, svc.Reject(request.ID, reviewer.ID))
	assert.EqualValues(t, 0, countRows(t, db, &models.Organization{}, ""))
}

func TestRetractRequestOnlyByRequester(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrgRequestService(db, NewMembershipService(db, nil), nil)

	requester := createProfile(t, db, "requester@example.com")
	other := createProfile(t, db, "other@example.com")

	request, err := svc.Create(requester.ID, "South Zoo")
	require.NoError(t, err)

	// Someone else's retract affects nothing
	require.NoError(t, svc.Retract(request.ID, other.ID))
	var stored models.OrgRequest
	require.NoError(t, db.First(&stored, request.ID).Error)
	assert.Equal(t, models.RequestStatusPending, stored.Status)

	require.NoError(t, svc.Retract(request.ID, requester.ID))
	require.NoError(t, db.First(&stored, request.ID).Error)
	assert.Equal(t, models.RequestStatusCancelled, stored.Status)
}

func TestListRecentAgesOutReviewedRequests(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrgRequestService(db, NewMembershipService(db, nil), nil)

	requester := createProfile(t, db, "requester@example.com")
	reviewer := createProfile(t, db, "admin@example.com")

	pending, err := svc.Create(requester.ID, "Zoo A")
	require.NoError(t, err)

	recentRejected, err := svc.Create(requester.ID, "Zoo B")
	require.NoError(t, err)
	require.NoError(t, svc.Reject(recentRejected.ID, reviewer.ID))

	oldRejected, err := svc.Create(requester.ID, "Zoo C")
	require.NoError(t, err)
	require.NoError(t, svc.Reject(oldRejected.ID, reviewer.ID))
	longAgo := time.Now().UTC().Add(-30 * 24 * time.Hour)
	require.NoError(t, db.Model(&models.OrgRequest{}).Where("id = ?", oldRejected.ID).
		Updates(map[string]interface{}{"created_at": longAgo, "reviewed_at": longAgo}).Error)

	requests, err := svc.ListRecent(requester.ID)
	require.NoError(t, err)
	require.Len(t, requests, 2)

	ids := []interface{}{requests[0].ID, requests[1].ID}
	assert.Contains(t, ids, pending.ID)
	assert.Contains(t, ids, recentRejected.ID)

	// Aged-out rows are hidden from the view, not deleted
	assert.EqualValues(t, 3, countRows(t, db, &models.OrgRequest{}, ""))
}
