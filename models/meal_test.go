package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validMealLog() *MealLog {
	return &MealLog{
		UserID:   "user-1",
		Date:     "2026-09-01",
		MealType: MealLunch,
		Foods: []Food{
			{Name: "chicken breast", Calories: 230, Protein: 43, Quantity: 1, Unit: "serving"},
		},
		TotalCalories: 230,
		TotalProtein:  43,
	}
}

func TestMealLogValidate(t *testing.T) {
	require.NoError(t, validMealLog().Validate())

	m := validMealLog()
	m.UserID = ""
	assert.ErrorIs(t, m.Validate(), ErrNotAuthenticated)

	m = validMealLog()
	m.Date = "09/01/2026"
	assert.Error(t, m.Validate())

	m = validMealLog()
	m.Date = ""
	assert.Error(t, m.Validate())

	m = validMealLog()
	m.MealType = "brunch"
	assert.Error(t, m.Validate())

	m = validMealLog()
	m.Foods[0].Name = ""
	assert.Error(t, m.Validate())

	m = validMealLog()
	m.TotalFat = -1
	assert.Error(t, m.Validate())
}

func TestMealLogAllowsNoFoods(t *testing.T) {
	m := validMealLog()
	m.Foods = nil
	assert.NoError(t, m.Validate())
}

func TestFoodNegativeNutrition(t *testing.T) {
	m := validMealLog()
	m.Foods[0].Protein = -0.5
	err := m.Validate()
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "foods[0].protein", ve.Field)
}

func TestMealPlanValidate(t *testing.T) {
	p := &MealPlan{
		UserID: "user-1",
		Date:   "2026-09-02",
		Meals: []PlannedMeal{
			{MealType: MealBreakfast, Foods: []Food{{Name: "oats", Calories: 150, Quantity: 1, Unit: "cup"}}},
		},
		TotalCalories: 150,
	}
	require.NoError(t, p.Validate())

	p.Meals[0].MealType = "midnight"
	assert.Error(t, p.Validate())

	p.Meals[0].MealType = MealBreakfast
	p.Meals[0].Foods[0].Calories = -10
	assert.Error(t, p.Validate())
}
