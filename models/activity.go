package models

import (
	"fmt"
	"time"
)

type DayOfWeek string

const (
	Monday    DayOfWeek = "Monday"
	Tuesday   DayOfWeek = "Tuesday"
	Wednesday DayOfWeek = "Wednesday"
	Thursday  DayOfWeek = "Thursday"
	Friday    DayOfWeek = "Friday"
	Saturday  DayOfWeek = "Saturday"
	Sunday    DayOfWeek = "Sunday"
)

func (d DayOfWeek) Valid() bool {
	switch d {
	case Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday:
		return true
	}
	return false
}

type TimeOfDay string

const (
	Morning   TimeOfDay = "morning"
	Afternoon TimeOfDay = "afternoon"
	Evening   TimeOfDay = "evening"
)

func (t TimeOfDay) Valid() bool {
	switch t {
	case Morning, Afternoon, Evening:
		return true
	}
	return false
}

type Intensity string

const (
	IntensityLight    Intensity = "light"
	IntensityModerate Intensity = "moderate"
	IntensityIntense  Intensity = "intense"
)

func (i Intensity) Valid() bool {
	switch i {
	case IntensityLight, IntensityModerate, IntensityIntense:
		return true
	}
	return false
}

const (
	MinDurationMinutes = 15
	MaxDurationMinutes = 300
)

// ActivityScheduleItem is one recurring weekly slot. An item with an empty
// Activity is treated as a blank row and dropped before persistence rather
// than rejected.
type ActivityScheduleItem struct {
	DayOfWeek       DayOfWeek `json:"dayOfWeek"`
	TimeOfDay       TimeOfDay `json:"timeOfDay"`
	Activity        string    `json:"activity"`
	Intensity       Intensity `json:"intensity"`
	DurationMinutes int       `json:"durationMinutes,omitempty"` // 0 = unset
	Notes           string    `json:"notes,omitempty"`
}

func (it *ActivityScheduleItem) Validate(prefix string) error {
	if !it.DayOfWeek.Valid() {
		return &ValidationError{Field: prefix + ".dayOfWeek", Message: "must be a weekday name Monday through Sunday"}
	}
	if !it.TimeOfDay.Valid() {
		return &ValidationError{Field: prefix + ".timeOfDay", Message: "must be morning, afternoon or evening"}
	}
	if !it.Intensity.Valid() {
		return &ValidationError{Field: prefix + ".intensity", Message: "must be light, moderate or intense"}
	}
	if it.DurationMinutes != 0 && (it.DurationMinutes < MinDurationMinutes || it.DurationMinutes > MaxDurationMinutes) {
		return &ValidationError{
			Field:   prefix + ".durationMinutes",
			Message: fmt.Sprintf("must be between %d and %d", MinDurationMinutes, MaxDurationMinutes),
		}
	}
	return nil
}

// ActivitySchedule is the singleton per-user weekly schedule document.
type ActivitySchedule struct {
	ID        string                 `json:"id,omitempty"`
	UserID    string                 `json:"userId"`
	Schedule  []ActivityScheduleItem `json:"schedule"`
	CreatedAt time.Time              `json:"createdAt,omitempty"`
	UpdatedAt time.Time              `json:"updatedAt,omitempty"`
}

// Validate checks every non-blank item. Callers are expected to have dropped
// blank rows already; PruneBlank does that.
func (s *ActivitySchedule) Validate() error {
	if s.UserID == "" {
		return ErrNotAuthenticated
	}
	for i := range s.Schedule {
		if s.Schedule[i].Activity == "" {
			return &ValidationError{Field: fmt.Sprintf("schedule[%d].activity", i), Message: "must not be empty"}
		}
		if err := s.Schedule[i].Validate(fmt.Sprintf("schedule[%d]", i)); err != nil {
			return err
		}
	}
	return nil
}

// PruneBlank returns the schedule items with empty activities removed. Order
// of the remaining items is preserved.
func PruneBlank(items []ActivityScheduleItem) []ActivityScheduleItem {
	kept := make([]ActivityScheduleItem, 0, len(items))
	for _, it := range items {
		if it.Activity != "" {
			kept = append(kept, it)
		}
	}
	return kept
}
