// Package provider wraps the third-party identity and row-storage service
// used in external mode. The service is consumed as an opaque collaborator:
// password sign-in, sign-up with user metadata, session retrieval,
// session-change notifications, sign-out, and row CRUD against the profiles
// and anamnesis tables.
package provider

import (
	"context"
	"time"
)

// SessionUser is the provider's view of an account.
type SessionUser struct {
	ID        string         `json:"id"`
	Email     string         `json:"email"`
	CreatedAt time.Time      `json:"created_at"`
	Metadata  map[string]any `json:"user_metadata"`
}

// Session is a provider-issued authenticated session. The access token is a
// JWT minted by the provider; its lifetime is the provider's business.
type Session struct {
	AccessToken string      `json:"access_token"`
	User        SessionUser `json:"user"`
}

// SignUpResult carries the outcome of a sign-up call. Session is nil when
// the provider requires out-of-band email confirmation before the first
// login.
type SignUpResult struct {
	User    SessionUser
	Session *Session
}

// ProfileRow mirrors one row of the profiles table (snake_case columns).
// Nullable columns are pointers so an update can explicitly unset them:
// absent/empty maps to "unset" in both directions.
type ProfileRow struct {
	ID              string   `json:"id,omitempty"`
	Email           *string  `json:"email"`
	Name            string   `json:"name,omitempty"`
	BirthDate       *string  `json:"birth_date"`
	HeightCm        *float64 `json:"height_cm"`
	Goal            *string  `json:"goal"`
	Gender          *string  `json:"gender"`
	AvatarURL       *string  `json:"avatar_url"`
	PlanStatus      *string  `json:"plan_status"`
	WeightGoalKg    *float64 `json:"weight_goal_kg"`
	WeeklyFrequency *int     `json:"weekly_frequency"`
	Notes           *string  `json:"notes"`
	Injuries        []string `json:"injuries"`
}

// AnamnesisRow mirrors one row of the anamnesis table, keyed by user id.
type AnamnesisRow struct {
	UserID    string         `json:"user_id"`
	Answers   map[string]any `json:"answers"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Provider is the surface the external auth adapter consumes.
//
// Contract:
//   - SignInWithPassword / SignUp: provider errors carry the provider's own
//     message; callers map known messages to domain errors.
//   - Session: current session or (nil, nil) when signed out.
//   - OnAuthStateChange: fn is invoked with the new session (nil on sign-out)
//     after every auth state transition; the returned cancel is idempotent.
//   - SelectProfile / SelectAnamnesis: common.ErrNotFound when no row.
type Provider interface {
	SignInWithPassword(ctx context.Context, email, password string) (*Session, error)
	SignUp(ctx context.Context, email, password string, metadata map[string]any) (*SignUpResult, error)
	Session(ctx context.Context) (*Session, error)
	SignOut(ctx context.Context) error
	OnAuthStateChange(fn func(*Session)) (cancel func())

	SelectProfile(ctx context.Context, id string) (*ProfileRow, error)
	UpdateProfile(ctx context.Context, id string, row ProfileRow) error
	UpsertAnamnesis(ctx context.Context, row AnamnesisRow) error
	SelectAnamnesis(ctx context.Context, userID string) (*AnamnesisRow, error)
}

// Error is a failure reported by the provider. Message is surfaced as-is
// unless the adapter maps it to a domain error.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}
