package services

import (
	"context"

	"github.com/SierraFuelsDev/fuelwarden/models"
	"github.com/SierraFuelsDev/fuelwarden/store"
)

func profileData(p *models.UserProfile) map[string]any {
	data := map[string]any{
		"userId":       p.UserID,
		"age":          p.Age,
		"sex":          p.Sex.Stored(),
		"weightPounds": p.WeightPounds,
		"heightInches": p.HeightInches,
		"restrictions": emptyIfNil(p.Restrictions),
		"preferences":  emptyIfNil(p.Preferences),
		"goals":        emptyIfNil(p.Goals),
		"activities":   emptyIfNil(p.Activities),
	}
	if p.WakeupTime != "" {
		data["wakeupTime"] = p.WakeupTime
	}
	if p.BedTime != "" {
		data["bedTime"] = p.BedTime
	}
	if p.Supplements != nil {
		data["supplements"] = p.Supplements
	}
	return data
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func profileFromDoc(d *store.Document) *models.UserProfile {
	return &models.UserProfile{
		ID:           d.ID,
		UserID:       docString(d, "userId"),
		Age:          docInt(d, "age"),
		Sex:          models.SexFromStored(docString(d, "sex")),
		WeightPounds: docFloat(d, "weightPounds"),
		HeightInches: docInt(d, "heightInches"),
		WakeupTime:   docString(d, "wakeupTime"),
		BedTime:      docString(d, "bedTime"),
		Restrictions: docStrings(d, "restrictions"),
		Preferences:  docStrings(d, "preferences"),
		Goals:        docStrings(d, "goals"),
		Activities:   docStrings(d, "activities"),
		Supplements:  docStrings(d, "supplements"),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// CreateUserProfile persists a new profile document, owner-scoped. Exactly
// one profile per user: an existing one fails the call with DuplicateError.
func (s *DatabaseService) CreateUserProfile(ctx context.Context, p *models.UserProfile) (*models.UserProfile, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.GetUserProfile(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &models.DuplicateError{Collection: CollectionUserProfiles, UserID: p.UserID}
	}

	doc, err := s.store.CreateDocument(ctx, s.databaseID, CollectionUserProfiles,
		newDocumentID(), profileData(p), store.OwnerPermissions(p.UserID))
	if err != nil {
		return nil, mapStoreErr("create user profile", CollectionUserProfiles, "", err)
	}

	created := profileFromDoc(doc)
	s.publish("document.created", CollectionUserProfiles, p.UserID, created)
	return created, nil
}

// GetUserProfile returns the user's profile, or nil without error when none
// exists.
func (s *DatabaseService) GetUserProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	if userID == "" {
		return nil, models.ErrNotAuthenticated
	}
	list, err := s.store.ListDocuments(ctx, s.databaseID, CollectionUserProfiles,
		[]string{store.QueryEqual("userId", userID)})
	if err != nil {
		return nil, mapStoreErr("get user profile", CollectionUserProfiles, "", err)
	}
	doc := s.singletonDoc(CollectionUserProfiles, userID, list)
	if doc == nil {
		return nil, nil
	}
	return profileFromDoc(doc), nil
}

// UpdateUserProfile applies a partial update; only the present fields are
// re-validated. Ownership is enforced by the store's permission check.
func (s *DatabaseService) UpdateUserProfile(ctx context.Context, profileID string, upd *models.UserProfileUpdate) (*models.UserProfile, error) {
	if err := upd.Validate(); err != nil {
		return nil, err
	}

	data := map[string]any{}
	if upd.Age != nil {
		data["age"] = *upd.Age
	}
	if upd.Sex != nil {
		data["sex"] = upd.Sex.Stored()
	}
	if upd.WeightPounds != nil {
		data["weightPounds"] = *upd.WeightPounds
	}
	if upd.HeightInches != nil {
		data["heightInches"] = *upd.HeightInches
	}
	if upd.WakeupTime != nil {
		data["wakeupTime"] = *upd.WakeupTime
	}
	if upd.BedTime != nil {
		data["bedTime"] = *upd.BedTime
	}
	if upd.Restrictions != nil {
		data["restrictions"] = *upd.Restrictions
	}
	if upd.Preferences != nil {
		data["preferences"] = *upd.Preferences
	}
	if upd.Goals != nil {
		data["goals"] = *upd.Goals
	}
	if upd.Activities != nil {
		data["activities"] = *upd.Activities
	}
	if upd.Supplements != nil {
		data["supplements"] = *upd.Supplements
	}

	doc, err := s.store.UpdateDocument(ctx, s.databaseID, CollectionUserProfiles, profileID, data)
	if err != nil {
		return nil, mapStoreErr("update user profile", CollectionUserProfiles, profileID, err)
	}

	updated := profileFromDoc(doc)
	s.publish("document.updated", CollectionUserProfiles, updated.UserID, updated)
	return updated, nil
}

// DeleteUserProfile removes the profile document. Deleting a nonexistent id
// fails with NotFoundError; the identity itself is untouched.
func (s *DatabaseService) DeleteUserProfile(ctx context.Context, profileID, userID string) error {
	if userID == "" {
		return models.ErrNotAuthenticated
	}
	if err := s.store.DeleteDocument(ctx, s.databaseID, CollectionUserProfiles, profileID); err != nil {
		return mapStoreErr("delete user profile", CollectionUserProfiles, profileID, err)
	}
	s.publish("document.deleted", CollectionUserProfiles, userID, profileID)
	return nil
}

// UpsertUserProfile reconciles by reading first: update when a profile
// exists, create otherwise. Serialized per user in-process.
func (s *DatabaseService) UpsertUserProfile(ctx context.Context, p *models.UserProfile) (*models.UserProfile, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	mu := s.locks.forUser(p.UserID)
	mu.Lock()
	defer mu.Unlock()

	existing, err := s.GetUserProfile(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		doc, err := s.store.CreateDocument(ctx, s.databaseID, CollectionUserProfiles,
			newDocumentID(), profileData(p), store.OwnerPermissions(p.UserID))
		if err != nil {
			return nil, mapStoreErr("create user profile", CollectionUserProfiles, "", err)
		}
		created := profileFromDoc(doc)
		s.publish("document.created", CollectionUserProfiles, p.UserID, created)
		return created, nil
	}

	doc, err := s.store.UpdateDocument(ctx, s.databaseID, CollectionUserProfiles, existing.ID, profileData(p))
	if err != nil {
		return nil, mapStoreErr("update user profile", CollectionUserProfiles, existing.ID, err)
	}
	updated := profileFromDoc(doc)
	s.publish("document.updated", CollectionUserProfiles, p.UserID, updated)
	return updated, nil
}
