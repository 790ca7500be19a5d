// Package session persists the current AuthSession in local durable
// storage. Used in local mode only; in external mode the provider owns the
// session lifecycle.
package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dmitrijs2005/gymtracker/internal/client/models"
	"github.com/dmitrijs2005/gymtracker/internal/client/repositories/kv"
	"github.com/google/uuid"
)

// StorageKey is the fixed key the serialized AuthSession lives under.
// The record carries no version field; schema changes require a reset.
const StorageKey = "gymtracker_session"

// Validity is the fixed session window, computed once at creation and
// stored verbatim.
const Validity = 7 * 24 * time.Hour

// Store reads and writes the serialized session record.
type Store struct {
	repo kv.Repository
	now  func() time.Time
}

func NewStore(repo kv.Repository) *Store {
	return &Store{repo: repo, now: time.Now}
}

// NewSession mints a fresh session for user with a random token and the
// standard validity window.
func (s *Store) NewSession(user models.User) models.AuthSession {
	return models.AuthSession{
		User:      user,
		Token:     uuid.NewString(),
		ExpiresAt: s.now().Add(Validity),
	}
}

// Persist serializes and stores the session, overwriting any prior value.
func (s *Store) Persist(ctx context.Context, session models.AuthSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.repo.Set(ctx, StorageKey, data)
}

// Read returns the stored session, or nil if none is stored. A record that
// fails to parse or whose expiry has passed is treated as absent and cleared
// as a side effect (lazy expiry; there is no background eviction).
func (s *Store) Read(ctx context.Context) (*models.AuthSession, error) {
	data, err := s.repo.Get(ctx, StorageKey)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var sess models.AuthSession
	if err := json.Unmarshal(data, &sess); err != nil {
		_ = s.Clear(ctx)
		return nil, nil
	}
	if sess.Expired(s.now()) {
		if err := s.Clear(ctx); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return &sess, nil
}

// Clear removes the stored session unconditionally.
func (s *Store) Clear(ctx context.Context) error {
	return s.repo.Delete(ctx, StorageKey)
}
