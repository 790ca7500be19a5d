// Package models defines client-side data models used by the GymTracker CLI.
package models

import "time"

// Goal is the training objective selected by the user.
type Goal string

const (
	GoalLoseWeight   Goal = "emagrecer"
	GoalGainMass     Goal = "ganhar_massa"
	GoalConditioning Goal = "condicionamento"
	GoalStrength     Goal = "forca"
	GoalOther        Goal = "outros"
)

// Gender as captured on the profile form.
type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
	GenderOther  Gender = "outro"
)

// PlanStatus reflects the user's membership plan standing.
type PlanStatus string

const (
	PlanActive   PlanStatus = "active"
	PlanLate     PlanStatus = "late"
	PlanInactive PlanStatus = "inactive"
)

// UserProfile holds the optional attributes attached to a User. The zero
// value of every field means "unset"; profiles are replaced wholesale on
// edit, there is no field-level merge.
type UserProfile struct {
	// BirthDate is an ISO date (YYYY-MM-DD).
	BirthDate string `json:"birthDate,omitempty"`

	// HeightCm is the user's height in centimeters.
	HeightCm float64 `json:"height,omitempty"`

	Goal   Goal   `json:"goal,omitempty"`
	Gender Gender `json:"gender,omitempty"`

	AvatarURL  string     `json:"avatarUrl,omitempty"`
	PlanStatus PlanStatus `json:"planStatus,omitempty"`

	// WeightGoalKg is the target body weight in kilograms.
	WeightGoalKg float64 `json:"weightGoal,omitempty"`

	// WeeklyFrequency is the planned training sessions per week (0–7).
	WeeklyFrequency int `json:"weeklyFrequency,omitempty"`

	Notes    string   `json:"notes,omitempty"`
	Injuries []string `json:"injuries,omitempty"`
}

// User is the authenticated identity. ID is provider-issued in external
// mode and generated locally in mock mode; Email is unique within whichever
// backend is active.
type User struct {
	ID        string       `json:"id"`
	Email     string       `json:"email"`
	Name      string       `json:"name"`
	CreatedAt time.Time    `json:"createdAt"`
	Profile   *UserProfile `json:"profile,omitempty"`
}
