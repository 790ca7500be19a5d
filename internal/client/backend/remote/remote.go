// Package remote implements the auth backend over the external identity
// provider. Provider sessions and the profiles table are normalized into
// the domain User shape; the provider itself stays an opaque collaborator.
package remote

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/gymtracker/internal/client/models"
	"github.com/dmitrijs2005/gymtracker/internal/client/provider"
	"github.com/dmitrijs2005/gymtracker/internal/common"
	"github.com/dmitrijs2005/gymtracker/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

// placeholderToken stands in for the provider-managed token in the
// synthesized AuthSession: the real access token never leaves the adapter.
const placeholderToken = "provider"

// invalidCredentialsMessage is the provider's known wording for a failed
// password sign-in; it is mapped to the domain error, everything else is
// forwarded as-is.
const invalidCredentialsMessage = "Invalid login credentials"

// Backend adapts the external provider to the Backend contract.
type Backend struct {
	provider provider.Provider
	logger   logging.Logger
}

func New(p provider.Provider, logger logging.Logger) *Backend {
	return &Backend{provider: p, logger: logger}
}

// buildUser assembles the domain User from a provider session user plus the
// matching profiles row. A missing row means "no profile yet"; any other
// fetch error is logged as a warning and the user is returned bare.
func (b *Backend) buildUser(ctx context.Context, su provider.SessionUser) *models.User {
	name, _ := su.Metadata["name"].(string)
	if name == "" {
		name = su.Email
	}
	createdAt := su.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	user := &models.User{
		ID:        su.ID,
		Email:     su.Email,
		Name:      name,
		CreatedAt: createdAt,
	}

	row, err := b.provider.SelectProfile(ctx, su.ID)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			b.logger.Warn(ctx, "failed to fetch profile row", "user_id", su.ID, "error", err)
		}
		return user
	}
	user.Profile = rowToProfile(row)
	return user
}

// Login delegates to the provider's password sign-in and assembles the
// composite User.
func (b *Backend) Login(ctx context.Context, form models.LoginForm) (*models.User, error) {
	sess, err := b.provider.SignInWithPassword(ctx, form.Email, form.Password)
	if err != nil {
		var perr *provider.Error
		if errors.As(err, &perr) && perr.Message == invalidCredentialsMessage {
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}
	if sess.User.Email == "" {
		return nil, common.ErrInvalidSession
	}
	return b.buildUser(ctx, sess.User), nil
}

// Register delegates to the provider's sign-up, attaching name and the
// optional goal as provider-side metadata. When the provider requires email
// confirmation the call fails with ErrConfirmationRequired; a supplied goal
// is additionally patched onto the profiles row best-effort.
func (b *Backend) Register(ctx context.Context, form models.RegisterForm) (*models.User, error) {
	metadata := map[string]any{"name": form.Name}
	var goal models.Goal
	if form.Profile != nil && form.Profile.Goal != "" {
		goal = form.Profile.Goal
		metadata["goal"] = string(goal)
	}

	res, err := b.provider.SignUp(ctx, form.Email, form.Password, metadata)
	if err != nil {
		var perr *provider.Error
		if errors.As(err, &perr) &&
			(strings.Contains(perr.Message, "already registered") ||
				strings.Contains(perr.Message, "already exists")) {
			return nil, common.ErrEmailAlreadyInUse
		}
		return nil, err
	}
	if res.User.Email == "" {
		return nil, common.ErrInvalidSession
	}
	if res.Session == nil {
		return nil, common.ErrConfirmationRequired
	}

	user := b.buildUser(ctx, res.User)
	if goal != "" {
		if user.Profile == nil {
			user.Profile = &models.UserProfile{}
		}
		user.Profile.Goal = goal
		b.patchGoal(res.User.ID, goal)
	}
	return user, nil
}

// patchGoal pushes the registration goal onto the profiles row.
// Best-effort and non-blocking: a failure is logged, never surfaced.
func (b *Backend) patchGoal(id string, goal models.Goal) {
	go func() {
		ctx := context.Background()
		g := string(goal)
		err := b.provider.UpdateProfile(ctx, id, provider.ProfileRow{Goal: &g})
		if err != nil {
			b.logger.Warn(ctx, "best-effort goal patch failed", "user_id", id, "error", err)
		}
	}()
}

// CurrentUser reads the provider's current session, returning nil when it
// is absent or carries no email.
func (b *Backend) CurrentUser(ctx context.Context) (*models.User, error) {
	sess, err := b.provider.Session(ctx)
	if err != nil {
		return nil, err
	}
	if sess == nil || sess.User.Email == "" {
		return nil, nil
	}
	return b.buildUser(ctx, sess.User), nil
}

// Session synthesizes the AuthSession shape from the provider session: a
// constant placeholder token plus the expiry carried in the access token's
// exp claim (zero when the token is not a parsable JWT).
func (b *Backend) Session(ctx context.Context) (*models.AuthSession, error) {
	sess, err := b.provider.Session(ctx)
	if err != nil {
		return nil, err
	}
	if sess == nil || sess.User.Email == "" {
		return nil, nil
	}
	user := b.buildUser(ctx, sess.User)
	return &models.AuthSession{
		User:      *user,
		Token:     placeholderToken,
		ExpiresAt: tokenExpiry(sess.AccessToken),
	}, nil
}

// tokenExpiry extracts the exp claim without verifying the signature; the
// adapter only displays it, the provider enforces it.
func tokenExpiry(accessToken string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}

// Logout triggers provider sign-out without awaiting confirmation; errors
// are swallowed.
func (b *Backend) Logout(ctx context.Context) {
	go func() {
		if err := b.provider.SignOut(context.Background()); err != nil {
			b.logger.Warn(context.Background(), "provider sign-out failed", "error", err)
		}
	}()
}

// UpdateUser pushes every profile field onto the profiles row keyed by the
// user id. Last write wins; there is no concurrency check.
func (b *Backend) UpdateUser(ctx context.Context, user models.User) error {
	return b.provider.UpdateProfile(ctx, user.ID, userToRow(user))
}

// Subscribe relays provider session changes as resolved Users. Assembly
// runs through the same profile-fetch path as login.
func (b *Backend) Subscribe(fn func(*models.User)) (cancel func()) {
	return b.provider.OnAuthStateChange(func(sess *provider.Session) {
		if sess == nil || sess.User.Email == "" {
			fn(nil)
			return
		}
		fn(b.buildUser(context.Background(), sess.User))
	})
}

// SaveAnamnesis upserts the questionnaire row keyed by user id.
func (b *Backend) SaveAnamnesis(ctx context.Context, a models.Anamnesis) error {
	updatedAt := a.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}
	return b.provider.UpsertAnamnesis(ctx, provider.AnamnesisRow{
		UserID:    a.UserID,
		Answers:   a.Answers,
		UpdatedAt: updatedAt,
	})
}

// AnamnesisCompleted reports whether an anamnesis row exists for the user.
func (b *Backend) AnamnesisCompleted(ctx context.Context, userID string) (bool, error) {
	_, err := b.provider.SelectAnamnesis(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
