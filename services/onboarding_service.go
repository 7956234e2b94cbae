package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/SierraFuelsDev/fuelwarden/models"

	"go.uber.org/zap"
)

// Wizard steps, in order.
const (
	StepBasicInfo = iota + 1
	StepSleepSchedule
	StepActivities
	StepGoals
	StepRestrictions
	StepPreferences
	StepWeeklySchedule

	stepCount = StepWeeklySchedule
)

// OnboardingDraft carries the answers collected so far. Pointer and slice
// fields distinguish "not provided" from zero values so merges stay partial.
type OnboardingDraft struct {
	Age          *int        `json:"age,omitempty"`
	Sex          *models.Sex `json:"sex,omitempty"`
	WeightPounds *float64    `json:"weightPounds,omitempty"`
	HeightInches *int        `json:"heightInches,omitempty"`

	WakeupTime *string `json:"wakeupTime,omitempty"`
	BedTime    *string `json:"bedTime,omitempty"`

	Activities   []string `json:"activities,omitempty"`
	Goals        []string `json:"goals,omitempty"`
	Restrictions []string `json:"restrictions,omitempty"`
	Preferences  []string `json:"preferences,omitempty"`
	Supplements  []string `json:"supplements,omitempty"`

	Schedule []models.ActivityScheduleItem `json:"schedule,omitempty"`
}

// OnboardingForm drives the seven-step setup wizard for one session. Each
// step validates only its own fields; the full draft is re-checked at submit.
type OnboardingForm struct {
	mu          sync.Mutex
	auth        *AuthContext
	log         *zap.SugaredLogger
	step        int
	draft       OnboardingDraft
	fieldErrors map[string]string
	submitting  bool
	completed   bool
}

func NewOnboardingForm(auth *AuthContext, logger *zap.SugaredLogger) *OnboardingForm {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &OnboardingForm{
		auth:        auth,
		log:         logger,
		step:        StepBasicInfo,
		fieldErrors: map[string]string{},
	}
}

func (f *OnboardingForm) Step() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

func (f *OnboardingForm) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

func (f *OnboardingForm) Completed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.completed
}

func (f *OnboardingForm) Draft() OnboardingDraft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// FieldErrors returns a copy of the per-field messages from the last failed
// validation.
func (f *OnboardingForm) FieldErrors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string, len(f.fieldErrors))
	for k, v := range f.fieldErrors {
		out[k] = v
	}
	return out
}

// Merge folds the provided answers into the draft. Only present fields are
// touched, so a step submission never clobbers earlier answers.
func (f *OnboardingForm) Merge(in *OnboardingDraft) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if in.Age != nil {
		f.draft.Age = in.Age
	}
	if in.Sex != nil {
		f.draft.Sex = in.Sex
	}
	if in.WeightPounds != nil {
		f.draft.WeightPounds = in.WeightPounds
	}
	if in.HeightInches != nil {
		f.draft.HeightInches = in.HeightInches
	}
	if in.WakeupTime != nil {
		f.draft.WakeupTime = in.WakeupTime
	}
	if in.BedTime != nil {
		f.draft.BedTime = in.BedTime
	}
	if in.Activities != nil {
		f.draft.Activities = in.Activities
	}
	if in.Goals != nil {
		f.draft.Goals = in.Goals
	}
	if in.Restrictions != nil {
		f.draft.Restrictions = in.Restrictions
	}
	if in.Preferences != nil {
		f.draft.Preferences = in.Preferences
	}
	if in.Supplements != nil {
		f.draft.Supplements = in.Supplements
	}
	if in.Schedule != nil {
		f.draft.Schedule = in.Schedule
	}
}

// Next validates the current step only and advances on success. On the last
// step it is a no-op; submission is explicit.
func (f *OnboardingForm) Next() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.fieldErrors = f.validateStep(f.step)
	if len(f.fieldErrors) > 0 {
		return false
	}
	if f.step < stepCount {
		f.step++
	}
	return true
}

// Previous steps back without validating. At the first step it does nothing.
func (f *OnboardingForm) Previous() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step > StepBasicInfo {
		f.step--
	}
}

func (f *OnboardingForm) validateStep(step int) map[string]string {
	errs := map[string]string{}
	record := func(field string, err error) {
		if err == nil {
			return
		}
		var ve *models.ValidationError
		if errors.As(err, &ve) {
			errs[ve.Field] = ve.Message
			return
		}
		errs[field] = err.Error()
	}

	switch step {
	case StepBasicInfo:
		if f.draft.Age == nil {
			errs["age"] = "age is required"
		} else {
			record("age", models.ValidateAge(*f.draft.Age))
		}
		if f.draft.Sex == nil {
			errs["sex"] = "sex is required"
		} else {
			record("sex", models.ValidateSex(*f.draft.Sex))
		}
		if f.draft.WeightPounds == nil {
			errs["weightPounds"] = "weight is required"
		} else {
			record("weightPounds", models.ValidateWeightPounds(*f.draft.WeightPounds))
		}
		if f.draft.HeightInches == nil {
			errs["heightInches"] = "height is required"
		} else {
			record("heightInches", models.ValidateHeightInches(*f.draft.HeightInches))
		}
	case StepSleepSchedule:
		if f.draft.WakeupTime != nil && *f.draft.WakeupTime != "" {
			record("wakeupTime", models.ValidateClockTime("wakeupTime", *f.draft.WakeupTime))
		}
		if f.draft.BedTime != nil && *f.draft.BedTime != "" {
			record("bedTime", models.ValidateClockTime("bedTime", *f.draft.BedTime))
		}
	case StepActivities:
		if len(nonBlank(f.draft.Activities)) == 0 {
			errs["activities"] = "select at least one activity"
		}
	case StepGoals:
		if len(nonBlank(f.draft.Goals)) == 0 {
			errs["goals"] = "select at least one goal"
		}
	case StepRestrictions, StepPreferences:
		// Optional answers, nothing to enforce.
	case StepWeeklySchedule:
		for i, item := range models.PruneBlank(f.draft.Schedule) {
			if err := item.Validate(fmt.Sprintf("schedule[%d]", i)); err != nil {
				record("schedule", err)
			}
		}
	}
	return errs
}

func nonBlank(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

func (f *OnboardingForm) profileFromDraft(userID string) *models.UserProfile {
	p := &models.UserProfile{
		UserID:       userID,
		Activities:   nonBlank(f.draft.Activities),
		Goals:        nonBlank(f.draft.Goals),
		Restrictions: nonBlank(f.draft.Restrictions),
		Preferences:  nonBlank(f.draft.Preferences),
		Supplements:  nonBlank(f.draft.Supplements),
	}
	if f.draft.Age != nil {
		p.Age = *f.draft.Age
	}
	if f.draft.Sex != nil {
		p.Sex = *f.draft.Sex
	}
	if f.draft.WeightPounds != nil {
		p.WeightPounds = *f.draft.WeightPounds
	}
	if f.draft.HeightInches != nil {
		p.HeightInches = *f.draft.HeightInches
	}
	if f.draft.WakeupTime != nil {
		p.WakeupTime = *f.draft.WakeupTime
	}
	if f.draft.BedTime != nil {
		p.BedTime = *f.draft.BedTime
	}
	return p
}

// Submit persists the full draft: the profile first, then the weekly
// schedule when any real rows were entered. The onboarding probe is held off
// for the duration so it cannot observe a half-written state, and the form is
// marked complete only after every write lands.
func (f *OnboardingForm) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return nil
	}
	for step := StepBasicInfo; step <= stepCount; step++ {
		if errs := f.validateStep(step); len(errs) > 0 {
			f.fieldErrors = errs
			f.step = step
			f.mu.Unlock()
			return &models.ValidationError{Field: "form", Message: "fix the highlighted fields"}
		}
	}
	f.fieldErrors = map[string]string{}
	f.submitting = true
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.submitting = false
		f.mu.Unlock()
	}()

	user := f.auth.User()
	db := f.auth.DB()
	if user == nil || db == nil {
		return models.ErrNotAuthenticated
	}

	f.auth.SuppressOnboardingProbe(true)
	defer f.auth.SuppressOnboardingProbe(false)

	f.mu.Lock()
	profile := f.profileFromDraft(user.ID)
	schedule := models.PruneBlank(f.draft.Schedule)
	f.mu.Unlock()

	if _, err := db.UpsertUserProfile(ctx, profile); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	if len(schedule) > 0 {
		sched := &models.ActivitySchedule{UserID: user.ID, Schedule: schedule}
		if _, err := db.UpsertActivitySchedule(ctx, sched); err != nil {
			return fmt.Errorf("failed to save activity schedule: %w", err)
		}
	}

	f.auth.setOnboarded(true)
	f.mu.Lock()
	f.completed = true
	f.mu.Unlock()
	f.log.Infow("onboarding completed", "userId", user.ID)
	return nil
}
