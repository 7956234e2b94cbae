package models

import (
	"fmt"
	"regexp"
	"time"
)

// Sex is the domain enum the UI works with.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
	SexOther  Sex = "other"
)

// Stored representations in the hosted collection. The stored value space is
// a strict superset of the domain one: StoredNonBinary can appear in
// documents written by other clients but is never produced here, and it folds
// back to SexOther on read. That round-trip loss is intentional and must not
// be "fixed".
const (
	storedMale      = "Male"
	storedFemale    = "Female"
	storedOther     = "Other"
	storedNonBinary = "Non-Binary"
)

func (s Sex) Valid() bool {
	switch s {
	case SexMale, SexFemale, SexOther:
		return true
	}
	return false
}

// Stored maps the domain value to the collection's enum casing.
func (s Sex) Stored() string {
	switch s {
	case SexMale:
		return storedMale
	case SexFemale:
		return storedFemale
	default:
		return storedOther
	}
}

// SexFromStored folds the stored enum back into the domain enum. Non-Binary
// (and anything else unexpected) becomes SexOther deterministically.
func SexFromStored(v string) Sex {
	switch v {
	case storedMale:
		return SexMale
	case storedFemale:
		return SexFemale
	default:
		return SexOther
	}
}

// Profile field bounds, mirrored by the hosted collection's attribute schema.
const (
	MinAge          = 13
	MaxAge          = 120
	MinWeightPounds = 50
	MaxWeightPounds = 500
	MinHeightInches = 48
	MaxHeightInches = 96
)

var timeOfDayRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// UserProfile is the singleton per-user profile document. ID and the
// timestamps are store-assigned.
type UserProfile struct {
	ID           string    `json:"id,omitempty"`
	UserID       string    `json:"userId"`
	Age          int       `json:"age"`
	Sex          Sex       `json:"sex"`
	WeightPounds float64   `json:"weightPounds"`
	HeightInches int       `json:"heightInches"`
	WakeupTime   string    `json:"wakeupTime,omitempty"` // "HH:MM"
	BedTime      string    `json:"bedTime,omitempty"`
	Restrictions []string  `json:"restrictions"`
	Preferences  []string  `json:"preferences"`
	Goals        []string  `json:"goals"`
	Activities   []string  `json:"activities"`
	Supplements  []string  `json:"supplements,omitempty"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt,omitempty"`
}

func ValidateAge(age int) error {
	if age < MinAge || age > MaxAge {
		return &ValidationError{Field: "age", Message: fmt.Sprintf("must be between %d and %d", MinAge, MaxAge)}
	}
	return nil
}

func ValidateWeightPounds(w float64) error {
	if w < MinWeightPounds || w > MaxWeightPounds {
		return &ValidationError{Field: "weightPounds", Message: fmt.Sprintf("must be between %d and %d", MinWeightPounds, MaxWeightPounds)}
	}
	return nil
}

func ValidateHeightInches(h int) error {
	if h < MinHeightInches || h > MaxHeightInches {
		return &ValidationError{Field: "heightInches", Message: fmt.Sprintf("must be between %d and %d", MinHeightInches, MaxHeightInches)}
	}
	return nil
}

func ValidateSex(s Sex) error {
	if !s.Valid() {
		return &ValidationError{Field: "sex", Message: "must be male, female or other"}
	}
	return nil
}

// ValidateClockTime checks the loose "HH:MM" shape used by wakeup/bed times.
// Empty is fine; the fields are optional.
func ValidateClockTime(field, v string) error {
	if v == "" {
		return nil
	}
	if !timeOfDayRe.MatchString(v) {
		return &ValidationError{Field: field, Message: "must look like HH:MM"}
	}
	return nil
}

// Validate runs the full field check used before a create.
func (p *UserProfile) Validate() error {
	if p.UserID == "" {
		return ErrNotAuthenticated
	}
	if err := ValidateAge(p.Age); err != nil {
		return err
	}
	if err := ValidateSex(p.Sex); err != nil {
		return err
	}
	if err := ValidateWeightPounds(p.WeightPounds); err != nil {
		return err
	}
	if err := ValidateHeightInches(p.HeightInches); err != nil {
		return err
	}
	if err := ValidateClockTime("wakeupTime", p.WakeupTime); err != nil {
		return err
	}
	return ValidateClockTime("bedTime", p.BedTime)
}

// UserProfileUpdate is a partial payload; nil fields are left untouched and
// only the present ones are re-validated.
type UserProfileUpdate struct {
	Age          *int      `json:"age,omitempty"`
	Sex          *Sex      `json:"sex,omitempty"`
	WeightPounds *float64  `json:"weightPounds,omitempty"`
	HeightInches *int      `json:"heightInches,omitempty"`
	WakeupTime   *string   `json:"wakeupTime,omitempty"`
	BedTime      *string   `json:"bedTime,omitempty"`
	Restrictions *[]string `json:"restrictions,omitempty"`
	Preferences  *[]string `json:"preferences,omitempty"`
	Goals        *[]string `json:"goals,omitempty"`
	Activities   *[]string `json:"activities,omitempty"`
	Supplements  *[]string `json:"supplements,omitempty"`
}

func (u *UserProfileUpdate) Validate() error {
	if u.Age != nil {
		if err := ValidateAge(*u.Age); err != nil {
			return err
		}
	}
	if u.Sex != nil {
		if err := ValidateSex(*u.Sex); err != nil {
			return err
		}
	}
	if u.WeightPounds != nil {
		if err := ValidateWeightPounds(*u.WeightPounds); err != nil {
			return err
		}
	}
	if u.HeightInches != nil {
		if err := ValidateHeightInches(*u.HeightInches); err != nil {
			return err
		}
	}
	if u.WakeupTime != nil {
		if err := ValidateClockTime("wakeupTime", *u.WakeupTime); err != nil {
			return err
		}
	}
	if u.BedTime != nil {
		if err := ValidateClockTime("bedTime", *u.BedTime); err != nil {
			return err
		}
	}
	return nil
}
