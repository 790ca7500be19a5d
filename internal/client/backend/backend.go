// Package backend defines the capability interface the auth orchestrator
// drives. Exactly one implementation — the local mock registry or the
// external provider adapter — is selected at startup and never switched at
// runtime.
package backend

import (
	"context"

	"github.com/dmitrijs2005/gymtracker/internal/client/models"
)

// Backend is the uniform contract over both auth backends.
//
// Contract:
//   - Login / Register: return the resolved User or a domain error
//     (common.ErrInvalidCredentials, common.ErrEmailAlreadyInUse,
//     common.ErrInvalidSession, common.ErrConfirmationRequired).
//     Forms are validated by the caller; validation failures never reach
//     these methods.
//   - CurrentUser: restores the signed-in user on startup; (nil, nil) when
//     no valid session exists.
//   - Session: the active AuthSession, synthesized client-side in external
//     mode; (nil, nil) when signed out.
//   - Logout: best-effort, never blocks the caller on backend failures.
//   - UpdateUser: persists the user (profile replaced wholesale) before the
//     caller updates any reactive state.
//   - Subscribe: push-based session-change notifications. The local backend
//     never pushes; cancel is always idempotent.
type Backend interface {
	Login(ctx context.Context, form models.LoginForm) (*models.User, error)
	Register(ctx context.Context, form models.RegisterForm) (*models.User, error)
	CurrentUser(ctx context.Context) (*models.User, error)
	Session(ctx context.Context) (*models.AuthSession, error)
	Logout(ctx context.Context)
	UpdateUser(ctx context.Context, user models.User) error
	Subscribe(fn func(*models.User)) (cancel func())

	SaveAnamnesis(ctx context.Context, a models.Anamnesis) error
	AnamnesisCompleted(ctx context.Context, userID string) (bool, error)
}
