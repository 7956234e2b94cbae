package services

import (
	"context"
	"encoding/json"

	"github.com/SierraFuelsDev/fuelwarden/models"
	"github.com/SierraFuelsDev/fuelwarden/store"
)

// Nested records (foods, planned meals) are persisted as string arrays of
// per-item JSON, matching the collections' string-array attributes.

func encodeItems[T any](items []T) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		b, _ := json.Marshal(it)
		out = append(out, string(b))
	}
	return out
}

func decodeItems[T any](raw []string) []T {
	out := make([]T, 0, len(raw))
	for _, s := range raw {
		var it T
		if err := json.Unmarshal([]byte(s), &it); err == nil {
			out = append(out, it)
		}
	}
	return out
}

func userDateQueries(userID, date string) []string {
	queries := []string{store.QueryEqual("userId", userID)}
	if date != "" {
		queries = append(queries, store.QueryEqual("date", date))
	}
	return queries
}

func mealLogData(m *models.MealLog) map[string]any {
	data := map[string]any{
		"userId":        m.UserID,
		"date":          m.Date,
		"mealType":      string(m.MealType),
		"foods":         encodeItems(m.Foods),
		"totalCalories": m.TotalCalories,
		"totalProtein":  m.TotalProtein,
		"totalCarbs":    m.TotalCarbs,
		"totalFat":      m.TotalFat,
	}
	if m.Notes != "" {
		data["notes"] = m.Notes
	}
	return data
}

func mealLogFromDoc(d *store.Document) *models.MealLog {
	return &models.MealLog{
		ID:            d.ID,
		UserID:        docString(d, "userId"),
		Date:          docString(d, "date"),
		MealType:      models.MealType(docString(d, "mealType")),
		Foods:         decodeItems[models.Food](docStrings(d, "foods")),
		TotalCalories: docFloat(d, "totalCalories"),
		TotalProtein:  docFloat(d, "totalProtein"),
		TotalCarbs:    docFloat(d, "totalCarbs"),
		TotalFat:      docFloat(d, "totalFat"),
		Notes:         docString(d, "notes"),
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func (s *DatabaseService) CreateMealLog(ctx context.Context, m *models.MealLog) (*models.MealLog, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	doc, err := s.store.CreateDocument(ctx, s.databaseID, CollectionMealLogs,
		newDocumentID(), mealLogData(m), nil)
	if err != nil {
		return nil, mapStoreErr("create meal log", CollectionMealLogs, "", err)
	}
	created := mealLogFromDoc(doc)
	s.publish("document.created", CollectionMealLogs, m.UserID, created)
	return created, nil
}

// GetUserMealLogs lists the user's logs, optionally narrowed to one date.
// No results is an empty slice, never an error.
func (s *DatabaseService) GetUserMealLogs(ctx context.Context, userID, date string) ([]models.MealLog, error) {
	if userID == "" {
		return nil, models.ErrNotAuthenticated
	}
	list, err := s.store.ListDocuments(ctx, s.databaseID, CollectionMealLogs, userDateQueries(userID, date))
	if err != nil {
		return nil, mapStoreErr("get meal logs", CollectionMealLogs, "", err)
	}
	logs := make([]models.MealLog, 0, len(list.Documents))
	for i := range list.Documents {
		logs = append(logs, *mealLogFromDoc(&list.Documents[i]))
	}
	return logs, nil
}

// MealLogUpdate is a partial payload for a logged meal.
type MealLogUpdate struct {
	MealType *models.MealType `json:"mealType,omitempty"`
	Foods    *[]models.Food   `json:"foods,omitempty"`
	Notes    *string          `json:"notes,omitempty"`

	TotalCalories *float64 `json:"totalCalories,omitempty"`
	TotalProtein  *float64 `json:"totalProtein,omitempty"`
	TotalCarbs    *float64 `json:"totalCarbs,omitempty"`
	TotalFat      *float64 `json:"totalFat,omitempty"`
}

func (u *MealLogUpdate) validate() error {
	if u.MealType != nil && !u.MealType.Valid() {
		return &models.ValidationError{Field: "mealType", Message: "must be breakfast, lunch, dinner or snack"}
	}
	if u.Foods != nil {
		tmp := models.MealLog{UserID: "-", Date: "2000-01-01", MealType: models.MealSnack, Foods: *u.Foods}
		if err := tmp.Validate(); err != nil {
			return err
		}
	}
	for _, n := range []struct {
		field string
		value *float64
	}{
		{"totalCalories", u.TotalCalories},
		{"totalProtein", u.TotalProtein},
		{"totalCarbs", u.TotalCarbs},
		{"totalFat", u.TotalFat},
	} {
		if n.value != nil && *n.value < 0 {
			return &models.ValidationError{Field: n.field, Message: "must not be negative"}
		}
	}
	return nil
}

func (s *DatabaseService) UpdateMealLog(ctx context.Context, logID string, upd *MealLogUpdate) (*models.MealLog, error) {
	if err := upd.validate(); err != nil {
		return nil, err
	}
	data := map[string]any{}
	if upd.MealType != nil {
		data["mealType"] = string(*upd.MealType)
	}
	if upd.Foods != nil {
		data["foods"] = encodeItems(*upd.Foods)
	}
	if upd.Notes != nil {
		data["notes"] = *upd.Notes
	}
	if upd.TotalCalories != nil {
		data["totalCalories"] = *upd.TotalCalories
	}
	if upd.TotalProtein != nil {
		data["totalProtein"] = *upd.TotalProtein
	}
	if upd.TotalCarbs != nil {
		data["totalCarbs"] = *upd.TotalCarbs
	}
	if upd.TotalFat != nil {
		data["totalFat"] = *upd.TotalFat
	}

	doc, err := s.store.UpdateDocument(ctx, s.databaseID, CollectionMealLogs, logID, data)
	if err != nil {
		return nil, mapStoreErr("update meal log", CollectionMealLogs, logID, err)
	}
	updated := mealLogFromDoc(doc)
	s.publish("document.updated", CollectionMealLogs, updated.UserID, updated)
	return updated, nil
}

func (s *DatabaseService) DeleteMealLog(ctx context.Context, logID, userID string) error {
	if userID == "" {
		return models.ErrNotAuthenticated
	}
	if err := s.store.DeleteDocument(ctx, s.databaseID, CollectionMealLogs, logID); err != nil {
		return mapStoreErr("delete meal log", CollectionMealLogs, logID, err)
	}
	s.publish("document.deleted", CollectionMealLogs, userID, logID)
	return nil
}

func mealPlanData(p *models.MealPlan) map[string]any {
	return map[string]any{
		"userId":        p.UserID,
		"date":          p.Date,
		"meals":         encodeItems(p.Meals),
		"totalCalories": p.TotalCalories,
		"totalProtein":  p.TotalProtein,
		"totalCarbs":    p.TotalCarbs,
		"totalFat":      p.TotalFat,
	}
}

func mealPlanFromDoc(d *store.Document) *models.MealPlan {
	return &models.MealPlan{
		ID:            d.ID,
		UserID:        docString(d, "userId"),
		Date:          docString(d, "date"),
		Meals:         decodeItems[models.PlannedMeal](docStrings(d, "meals")),
		TotalCalories: docFloat(d, "totalCalories"),
		TotalProtein:  docFloat(d, "totalProtein"),
		TotalCarbs:    docFloat(d, "totalCarbs"),
		TotalFat:      docFloat(d, "totalFat"),
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func (s *DatabaseService) CreateMealPlan(ctx context.Context, p *models.MealPlan) (*models.MealPlan, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	doc, err := s.store.CreateDocument(ctx, s.databaseID, CollectionMealPlans,
		newDocumentID(), mealPlanData(p), nil)
	if err != nil {
		return nil, mapStoreErr("create meal plan", CollectionMealPlans, "", err)
	}
	created := mealPlanFromDoc(doc)
	s.publish("document.created", CollectionMealPlans, p.UserID, created)
	return created, nil
}

func (s *DatabaseService) GetUserMealPlans(ctx context.Context, userID, date string) ([]models.MealPlan, error) {
	if userID == "" {
		return nil, models.ErrNotAuthenticated
	}
	list, err := s.store.ListDocuments(ctx, s.databaseID, CollectionMealPlans, userDateQueries(userID, date))
	if err != nil {
		return nil, mapStoreErr("get meal plans", CollectionMealPlans, "", err)
	}
	plans := make([]models.MealPlan, 0, len(list.Documents))
	for i := range list.Documents {
		plans = append(plans, *mealPlanFromDoc(&list.Documents[i]))
	}
	return plans, nil
}

// MealPlanUpdate is a partial payload for a planned day.
type MealPlanUpdate struct {
	Date  *string               `json:"date,omitempty"`
	Meals *[]models.PlannedMeal `json:"meals,omitempty"`

	TotalCalories *float64 `json:"totalCalories,omitempty"`
	TotalProtein  *float64 `json:"totalProtein,omitempty"`
	TotalCarbs    *float64 `json:"totalCarbs,omitempty"`
	TotalFat      *float64 `json:"totalFat,omitempty"`
}

func (u *MealPlanUpdate) validate() error {
	if u.Date != nil {
		tmp := models.MealPlan{UserID: "-", Date: *u.Date}
		if err := tmp.Validate(); err != nil {
			return err
		}
	}
	if u.Meals != nil {
		tmp := models.MealPlan{UserID: "-", Date: "2000-01-01", Meals: *u.Meals}
		if err := tmp.Validate(); err != nil {
			return err
		}
	}
	for _, n := range []struct {
		field string
		value *float64
	}{
		{"totalCalories", u.TotalCalories},
		{"totalProtein", u.TotalProtein},
		{"totalCarbs", u.TotalCarbs},
		{"totalFat", u.TotalFat},
	} {
		if n.value != nil && *n.value < 0 {
			return &models.ValidationError{Field: n.field, Message: "must not be negative"}
		}
	}
	return nil
}

func (s *DatabaseService) UpdateMealPlan(ctx context.Context, planID string, upd *MealPlanUpdate) (*models.MealPlan, error) {
	if err := upd.validate(); err != nil {
		return nil, err
	}
	data := map[string]any{}
	if upd.Date != nil {
		data["date"] = *upd.Date
	}
	if upd.Meals != nil {
		data["meals"] = encodeItems(*upd.Meals)
	}
	if upd.TotalCalories != nil {
		data["totalCalories"] = *upd.TotalCalories
	}
	if upd.TotalProtein != nil {
		data["totalProtein"] = *upd.TotalProtein
	}
	if upd.TotalCarbs != nil {
		data["totalCarbs"] = *upd.TotalCarbs
	}
	if upd.TotalFat != nil {
		data["totalFat"] = *upd.TotalFat
	}

	doc, err := s.store.UpdateDocument(ctx, s.databaseID, CollectionMealPlans, planID, data)
	if err != nil {
		return nil, mapStoreErr("update meal plan", CollectionMealPlans, planID, err)
	}
	updated := mealPlanFromDoc(doc)
	s.publish("document.updated", CollectionMealPlans, updated.UserID, updated)
	return updated, nil
}

func (s *DatabaseService) DeleteMealPlan(ctx context.Context, planID, userID string) error {
	if userID == "" {
		return models.ErrNotAuthenticated
	}
	if err := s.store.DeleteDocument(ctx, s.databaseID, CollectionMealPlans, planID); err != nil {
		return mapStoreErr("delete meal plan", CollectionMealPlans, planID, err)
	}
	s.publish("document.deleted", CollectionMealPlans, userID, planID)
	return nil
}
