package services

import (
	"context"
	"testing"

	"github.com/SierraFuelsDev/fuelwarden/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProfile(userID string) *models.UserProfile {
	return &models.UserProfile{
		UserID:       userID,
		Age:          28,
		Sex:          models.SexMale,
		WeightPounds: 180,
		HeightInches: 70,
		WakeupTime:   "06:30",
		BedTime:      "22:30",
		Goals:        []string{"muscle gain"},
		Activities:   []string{"lifting", "cycling"},
	}
}

func TestCreateAndGetProfileRoundTrip(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.CreateUserProfile(ctx, testProfile("user-1"))
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := svc.GetUserProfile(ctx, "user-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, 28, got.Age)
	assert.Equal(t, models.SexMale, got.Sex)
	assert.Equal(t, 180.0, got.WeightPounds)
	assert.Equal(t, []string{"lifting", "cycling"}, got.Activities)
	assert.Equal(t, "06:30", got.WakeupTime)
}

func TestGetProfileMissingIsNilNotError(t *testing.T) {
	svc, _ := newTestService()

	got, err := svc.GetUserProfile(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetProfileEmptyUserID(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.GetUserProfile(context.Background(), "")
	assert.ErrorIs(t, err, models.ErrNotAuthenticated)
}

func TestCreateProfileRejectsSecond(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.CreateUserProfile(ctx, testProfile("user-1"))
	require.NoError(t, err)

	_, err = svc.CreateUserProfile(ctx, testProfile("user-1"))
	var dup *models.DuplicateError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "user-1", dup.UserID)
}

func TestCreateProfileValidates(t *testing.T) {
	svc, fs := newTestService()

	p := testProfile("user-1")
	p.Age = 9
	_, err := svc.CreateUserProfile(context.Background(), p)
	var ve *models.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, 0, fs.count(CollectionUserProfiles), "no write on validation failure")
}

func TestUpdateProfilePartial(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.CreateUserProfile(ctx, testProfile("user-1"))
	require.NoError(t, err)

	weight := 175.5
	updated, err := svc.UpdateUserProfile(ctx, created.ID, &models.UserProfileUpdate{WeightPounds: &weight})
	require.NoError(t, err)
	assert.Equal(t, 175.5, updated.WeightPounds)
	assert.Equal(t, 28, updated.Age, "untouched fields keep their values")
}

func TestUpdateProfileUnknownID(t *testing.T) {
	svc, _ := newTestService()

	weight := 175.5
	_, err := svc.UpdateUserProfile(context.Background(), "missing", &models.UserProfileUpdate{WeightPounds: &weight})
	var nf *models.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestDeleteProfileTwice(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.CreateUserProfile(ctx, testProfile("user-1"))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUserProfile(ctx, created.ID, "user-1"))

	err = svc.DeleteUserProfile(ctx, created.ID, "user-1")
	var nf *models.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestUpsertProfileCreatesThenUpdates(t *testing.T) {
	svc, fs := newTestService()
	ctx := context.Background()

	first, err := svc.UpsertUserProfile(ctx, testProfile("user-1"))
	require.NoError(t, err)

	second := testProfile("user-1")
	second.Age = 29
	upserted, err := svc.UpsertUserProfile(ctx, second)
	require.NoError(t, err)

	assert.Equal(t, first.ID, upserted.ID, "upsert reuses the existing document")
	assert.Equal(t, 29, upserted.Age)
	assert.Equal(t, 1, fs.count(CollectionUserProfiles))
}

func TestSexRoundTripThroughStore(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	p := testProfile("user-1")
	p.Sex = models.SexOther
	_, err := svc.CreateUserProfile(ctx, p)
	require.NoError(t, err)

	got, err := svc.GetUserProfile(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, models.SexOther, got.Sex)
}

func TestSingletonAnomalyPicksFirst(t *testing.T) {
	svc, fs := newTestService()
	ctx := context.Background()

	// Two profile documents for one user, written out-of-band.
	_, err := fs.CreateDocument(ctx, "fuelwarden", CollectionUserProfiles, "doc-a",
		profileData(testProfile("user-1")), nil)
	require.NoError(t, err)
	_, err = fs.CreateDocument(ctx, "fuelwarden", CollectionUserProfiles, "doc-b",
		profileData(testProfile("user-1")), nil)
	require.NoError(t, err)

	got, err := svc.GetUserProfile(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "doc-a", got.ID)
}
