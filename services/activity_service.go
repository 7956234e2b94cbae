package services

import (
	"context"

	"github.com/SierraFuelsDev/fuelwarden/models"
	"github.com/SierraFuelsDev/fuelwarden/store"
)

func scheduleData(sched *models.ActivitySchedule) map[string]any {
	return map[string]any{
		"userId":   sched.UserID,
		"schedule": encodeItems(sched.Schedule),
	}
}

func scheduleFromDoc(d *store.Document) *models.ActivitySchedule {
	return &models.ActivitySchedule{
		ID:        d.ID,
		UserID:    docString(d, "userId"),
		Schedule:  decodeItems[models.ActivityScheduleItem](docStrings(d, "schedule")),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// GetActivitySchedule returns the user's weekly schedule, nil when none
// exists. Like the profile, this is a singleton document.
func (s *DatabaseService) GetActivitySchedule(ctx context.Context, userID string) (*models.ActivitySchedule, error) {
	if userID == "" {
		return nil, models.ErrNotAuthenticated
	}
	list, err := s.store.ListDocuments(ctx, s.databaseID, CollectionActivitySchedule,
		[]string{store.QueryEqual("userId", userID)})
	if err != nil {
		return nil, mapStoreErr("get activity schedule", CollectionActivitySchedule, "", err)
	}
	doc := s.singletonDoc(CollectionActivitySchedule, userID, list)
	if doc == nil {
		return nil, nil
	}
	return scheduleFromDoc(doc), nil
}

// UpsertActivitySchedule reconciles the weekly schedule. Blank rows (empty
// activity) are dropped quietly before validation and persistence.
func (s *DatabaseService) UpsertActivitySchedule(ctx context.Context, sched *models.ActivitySchedule) (*models.ActivitySchedule, error) {
	pruned := &models.ActivitySchedule{
		ID:       sched.ID,
		UserID:   sched.UserID,
		Schedule: models.PruneBlank(sched.Schedule),
	}
	if err := pruned.Validate(); err != nil {
		return nil, err
	}

	mu := s.locks.forUser(pruned.UserID)
	mu.Lock()
	defer mu.Unlock()

	existing, err := s.GetActivitySchedule(ctx, pruned.UserID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		doc, err := s.store.CreateDocument(ctx, s.databaseID, CollectionActivitySchedule,
			newDocumentID(), scheduleData(pruned), store.OwnerPermissions(pruned.UserID))
		if err != nil {
			return nil, mapStoreErr("create activity schedule", CollectionActivitySchedule, "", err)
		}
		created := scheduleFromDoc(doc)
		s.publish("document.created", CollectionActivitySchedule, pruned.UserID, created)
		return created, nil
	}

	doc, err := s.store.UpdateDocument(ctx, s.databaseID, CollectionActivitySchedule, existing.ID, scheduleData(pruned))
	if err != nil {
		return nil, mapStoreErr("update activity schedule", CollectionActivitySchedule, existing.ID, err)
	}
	updated := scheduleFromDoc(doc)
	s.publish("document.updated", CollectionActivitySchedule, pruned.UserID, updated)
	return updated, nil
}

func (s *DatabaseService) DeleteActivitySchedule(ctx context.Context, scheduleID, userID string) error {
	if userID == "" {
		return models.ErrNotAuthenticated
	}
	if err := s.store.DeleteDocument(ctx, s.databaseID, CollectionActivitySchedule, scheduleID); err != nil {
		return mapStoreErr("delete activity schedule", CollectionActivitySchedule, scheduleID, err)
	}
	s.publish("document.deleted", CollectionActivitySchedule, userID, scheduleID)
	return nil
}
