// Package local implements the mock auth backend used when no external
// provider is configured: a user registry and the current session, both
// kept in local durable storage. Passwords are stored in plaintext — this
// registry is a demo stand-in for a real credential backend.
package local

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/dmitrijs2005/gymtracker/internal/client/models"
	"github.com/dmitrijs2005/gymtracker/internal/client/repositories/kv"
	"github.com/dmitrijs2005/gymtracker/internal/client/session"
	"github.com/dmitrijs2005/gymtracker/internal/common"
	"github.com/dmitrijs2005/gymtracker/internal/dbx"
	"github.com/google/uuid"
)

// UsersKey is the fixed key the serialized []StoredUser registry lives
// under. Like the session record, it carries no version field.
const UsersKey = "gymtracker_demo_users"

// anamnesisCompletedKey marks the questionnaire as done for a user id.
const anamnesisCompletedKey = "anamnesis_completed"

// Backend is the local credential store.
type Backend struct {
	db  *sql.DB
	now func() time.Time
}

func New(db *sql.DB) *Backend {
	return &Backend{db: db, now: time.Now}
}

func (b *Backend) sessions(tx dbx.DBTX) *session.Store {
	return session.NewStore(kv.NewSQLiteRepository(tx))
}

// loadUsers reads the whole registry as a unit. A missing or unparsable
// record yields an empty registry.
func loadUsers(ctx context.Context, repo kv.Repository) ([]models.StoredUser, error) {
	data, err := repo.Get(ctx, UsersKey)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	var users []models.StoredUser
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, nil
	}
	return users, nil
}

func saveUsers(ctx context.Context, repo kv.Repository, users []models.StoredUser) error {
	data, err := json.Marshal(users)
	if err != nil {
		return err
	}
	return repo.Set(ctx, UsersKey, data)
}

// Login looks up a registry entry by exact email match and compares the
// password. The session store is not touched on failure.
func (b *Backend) Login(ctx context.Context, form models.LoginForm) (*models.User, error) {
	repo := kv.NewSQLiteRepository(b.db)

	users, err := loadUsers(ctx, repo)
	if err != nil {
		return nil, err
	}

	for _, su := range users {
		if su.User.Email != form.Email {
			continue
		}
		if subtle.ConstantTimeCompare([]byte(su.Password), []byte(form.Password)) != 1 {
			return nil, common.ErrInvalidCredentials
		}
		st := b.sessions(b.db)
		sess := st.NewSession(su.User)
		if err := st.Persist(ctx, sess); err != nil {
			return nil, err
		}
		user := su.User
		return &user, nil
	}
	return nil, common.ErrInvalidCredentials
}

// Register creates a new user unless the email is already taken, appends it
// to the registry, and persists a fresh session. Registry and session are
// written as a unit.
func (b *Backend) Register(ctx context.Context, form models.RegisterForm) (*models.User, error) {
	user := models.User{
		ID:        uuid.NewString(),
		Email:     form.Email,
		Name:      form.Name,
		CreatedAt: b.now(),
		Profile:   form.Profile,
	}

	err := dbx.WithTx(ctx, b.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := kv.NewSQLiteRepository(tx)

		users, err := loadUsers(ctx, repo)
		if err != nil {
			return err
		}
		for _, su := range users {
			if su.User.Email == form.Email {
				return common.ErrEmailAlreadyInUse
			}
		}

		users = append(users, models.StoredUser{User: user, Password: form.Password})
		if err := saveUsers(ctx, repo, users); err != nil {
			return err
		}

		st := session.NewStore(repo)
		return st.Persist(ctx, st.NewSession(user))
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CurrentUser restores the user embedded in the stored session, if any.
func (b *Backend) CurrentUser(ctx context.Context) (*models.User, error) {
	sess, err := b.sessions(b.db).Read(ctx)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, nil
	}
	user := sess.User
	return &user, nil
}

// Session returns the stored session, nil when signed out or expired.
func (b *Backend) Session(ctx context.Context) (*models.AuthSession, error) {
	return b.sessions(b.db).Read(ctx)
}

// Logout clears the stored session. The registry entry survives so the user
// can log back in.
func (b *Backend) Logout(ctx context.Context) {
	_ = b.sessions(b.db).Clear(ctx)
}

// UpdateUser replaces the registry entry matching the user by id or email
// (first match wins) and re-persists the session with the updated user
// embedded. Without an active session this is a no-op.
func (b *Backend) UpdateUser(ctx context.Context, user models.User) error {
	sess, err := b.sessions(b.db).Read(ctx)
	if err != nil {
		return err
	}
	if sess == nil {
		return nil
	}

	return dbx.WithTx(ctx, b.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := kv.NewSQLiteRepository(tx)

		users, err := loadUsers(ctx, repo)
		if err != nil {
			return err
		}
		for i := range users {
			if users[i].User.ID == user.ID || users[i].User.Email == user.Email {
				users[i].User = user // password untouched
				if err := saveUsers(ctx, repo, users); err != nil {
					return err
				}
				break
			}
		}

		sess.User = user
		return session.NewStore(repo).Persist(ctx, *sess)
	})
}

// Subscribe is a no-op: the local backend never pushes session changes.
func (b *Backend) Subscribe(fn func(*models.User)) (cancel func()) {
	return func() {}
}

// SaveAnamnesis records a completion marker for the user. Local mode keeps
// no answer payload; the full questionnaire only persists externally.
func (b *Backend) SaveAnamnesis(ctx context.Context, a models.Anamnesis) error {
	repo := kv.NewSQLiteRepository(b.db)
	return repo.Set(ctx, anamnesisCompletedKey, []byte(a.UserID))
}

// AnamnesisCompleted reports whether the marker matches the given user.
func (b *Backend) AnamnesisCompleted(ctx context.Context, userID string) (bool, error) {
	repo := kv.NewSQLiteRepository(b.db)
	data, err := repo.Get(ctx, anamnesisCompletedKey)
	if err != nil {
		return false, err
	}
	return string(data) == userID && userID != "", nil
}
