package services

import (
	"context"
	"testing"

	"github.com/SierraFuelsDev/fuelwarden/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testScheduleItem(activity string) models.ActivityScheduleItem {
	return models.ActivityScheduleItem{
		DayOfWeek:       models.Wednesday,
		TimeOfDay:       models.Evening,
		Activity:        activity,
		Intensity:       models.IntensityLight,
		DurationMinutes: 30,
	}
}

func TestUpsertScheduleDropsBlankRows(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	sched := &models.ActivitySchedule{
		UserID: "user-1",
		Schedule: []models.ActivityScheduleItem{
			testScheduleItem("run"),
			testScheduleItem(""),
			testScheduleItem("swim"),
		},
	}

	saved, err := svc.UpsertActivitySchedule(ctx, sched)
	require.NoError(t, err)
	require.Len(t, saved.Schedule, 2)
	assert.Equal(t, "run", saved.Schedule[0].Activity)
	assert.Equal(t, "swim", saved.Schedule[1].Activity)

	got, err := svc.GetActivitySchedule(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, got.Schedule, 2)
}

func TestUpsertScheduleCreateThenUpdate(t *testing.T) {
	svc, fs := newTestService()
	ctx := context.Background()

	first, err := svc.UpsertActivitySchedule(ctx, &models.ActivitySchedule{
		UserID:   "user-1",
		Schedule: []models.ActivityScheduleItem{testScheduleItem("run")},
	})
	require.NoError(t, err)

	second, err := svc.UpsertActivitySchedule(ctx, &models.ActivitySchedule{
		UserID:   "user-1",
		Schedule: []models.ActivityScheduleItem{testScheduleItem("run"), testScheduleItem("yoga")},
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, second.Schedule, 2)
	assert.Equal(t, 1, fs.count(CollectionActivitySchedule))
}

func TestUpsertScheduleValidatesItems(t *testing.T) {
	svc, fs := newTestService()

	bad := testScheduleItem("run")
	bad.Intensity = "extreme"
	_, err := svc.UpsertActivitySchedule(context.Background(), &models.ActivitySchedule{
		UserID:   "user-1",
		Schedule: []models.ActivityScheduleItem{bad},
	})
	var ve *models.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, 0, fs.count(CollectionActivitySchedule))
}

func TestGetScheduleMissingIsNil(t *testing.T) {
	svc, _ := newTestService()

	got, err := svc.GetActivitySchedule(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDeleteSchedule(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	saved, err := svc.UpsertActivitySchedule(ctx, &models.ActivitySchedule{
		UserID:   "user-1",
		Schedule: []models.ActivityScheduleItem{testScheduleItem("run")},
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteActivitySchedule(ctx, saved.ID, "user-1"))

	err = svc.DeleteActivitySchedule(ctx, saved.ID, "user-1")
	var nf *models.NotFoundError
	assert.ErrorAs(t, err, &nf)
}
