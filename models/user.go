package models

import "time"

// AuthUser is the cached read-only view of the identity provider's account.
// The provider owns the account; we hold this for the lifetime of a session
// and re-fetch it on initialization and after sign-in/out.
type AuthUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// UserStats is the aggregate of the four per-entity reads for one user.
type UserStats struct {
	TotalMealLogs   int  `json:"totalMealLogs"`
	TotalMealPlans  int  `json:"totalMealPlans"`
	TotalActivities int  `json:"totalActivities"`
	ProfileComplete bool `json:"profileComplete"`
}
