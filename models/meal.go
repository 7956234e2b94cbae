package models

import (
	"fmt"
	"time"
)

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

func (m MealType) Valid() bool {
	switch m {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return true
	}
	return false
}

// Food is one logged or planned food with its nutrition snapshot.
type Food struct {
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

func (f *Food) validate(prefix string) error {
	if f.Name == "" {
		return &ValidationError{Field: prefix + ".name", Message: "must not be empty"}
	}
	for _, n := range []struct {
		field string
		value float64
	}{
		{"calories", f.Calories},
		{"protein", f.Protein},
		{"carbs", f.Carbs},
		{"fat", f.Fat},
		{"quantity", f.Quantity},
	} {
		if n.value < 0 {
			return &ValidationError{Field: fmt.Sprintf("%s.%s", prefix, n.field), Message: "must not be negative"}
		}
	}
	return nil
}

// MealLog is one logged meal. Many logs per user per day are allowed.
type MealLog struct {
	ID            string    `json:"id,omitempty"`
	UserID        string    `json:"userId"`
	Date          string    `json:"date"` // "YYYY-MM-DD"
	MealType      MealType  `json:"mealType"`
	Foods         []Food    `json:"foods"`
	TotalCalories float64   `json:"totalCalories"`
	TotalProtein  float64   `json:"totalProtein"`
	TotalCarbs    float64   `json:"totalCarbs"`
	TotalFat      float64   `json:"totalFat"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"createdAt,omitempty"`
	UpdatedAt     time.Time `json:"updatedAt,omitempty"`
}

func validateDate(date string) error {
	if date == "" {
		return &ValidationError{Field: "date", Message: "must not be empty"}
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return &ValidationError{Field: "date", Message: "must look like YYYY-MM-DD"}
	}
	return nil
}

func validateTotals(calories, protein, carbs, fat float64) error {
	for _, n := range []struct {
		field string
		value float64
	}{
		{"totalCalories", calories},
		{"totalProtein", protein},
		{"totalCarbs", carbs},
		{"totalFat", fat},
	} {
		if n.value < 0 {
			return &ValidationError{Field: n.field, Message: "must not be negative"}
		}
	}
	return nil
}

func (m *MealLog) Validate() error {
	if m.UserID == "" {
		return ErrNotAuthenticated
	}
	if err := validateDate(m.Date); err != nil {
		return err
	}
	if !m.MealType.Valid() {
		return &ValidationError{Field: "mealType", Message: "must be breakfast, lunch, dinner or snack"}
	}
	for i := range m.Foods {
		if err := m.Foods[i].validate(fmt.Sprintf("foods[%d]", i)); err != nil {
			return err
		}
	}
	return validateTotals(m.TotalCalories, m.TotalProtein, m.TotalCarbs, m.TotalFat)
}

// PlannedMeal groups the foods planned for one meal slot of the day.
type PlannedMeal struct {
	MealType MealType `json:"mealType"`
	Foods    []Food   `json:"foods"`
}

// MealPlan is a per-date plan. Like logs, plans are scoped by user only, not
// unique per day.
type MealPlan struct {
	ID            string        `json:"id,omitempty"`
	UserID        string        `json:"userId"`
	Date          string        `json:"date"`
	Meals         []PlannedMeal `json:"meals"`
	TotalCalories float64       `json:"totalCalories"`
	TotalProtein  float64       `json:"totalProtein"`
	TotalCarbs    float64       `json:"totalCarbs"`
	TotalFat      float64       `json:"totalFat"`
	CreatedAt     time.Time     `json:"createdAt,omitempty"`
	UpdatedAt     time.Time     `json:"updatedAt,omitempty"`
}

func (p *MealPlan) Validate() error {
	if p.UserID == "" {
		return ErrNotAuthenticated
	}
	if err := validateDate(p.Date); err != nil {
		return err
	}
	for i, meal := range p.Meals {
		if !meal.MealType.Valid() {
			return &ValidationError{Field: fmt.Sprintf("meals[%d].mealType", i), Message: "must be breakfast, lunch, dinner or snack"}
		}
		for j := range meal.Foods {
			if err := p.Meals[i].Foods[j].validate(fmt.Sprintf("meals[%d].foods[%d]", i, j)); err != nil {
				return err
			}
		}
	}
	return validateTotals(p.TotalCalories, p.TotalProtein, p.TotalCarbs, p.TotalFat)
}
