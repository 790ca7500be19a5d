package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/gymtracker/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL, "anon-key", 0)
}

func TestSignInWithPassword_Success(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/v1/token", r.URL.Path)
		require.Equal(t, "password", r.URL.Query().Get("grant_type"))
		require.Equal(t, "anon-key", r.Header.Get("apikey"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "ana@x.com", body["email"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "jwt-token",
			"user": map[string]any{
				"id":         "u-1",
				"email":      "ana@x.com",
				"created_at": "2025-05-20T08:00:00Z",
			},
		})
	})

	sess, err := c.SignInWithPassword(context.Background(), "ana@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", sess.AccessToken)
	assert.Equal(t, "u-1", sess.User.ID)
	assert.Equal(t, "ana@x.com", sess.User.Email)

	current, err := c.Session(context.Background())
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "jwt-token", current.AccessToken)
}

func TestSignInWithPassword_ErrorMessageForwarded(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"error_description": "Invalid login credentials",
		})
	})

	_, err := c.SignInWithPassword(context.Background(), "ana@x.com", "wrong")
	require.Error(t, err)

	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "Invalid login credentials", perr.Message)
	assert.Equal(t, http.StatusBadRequest, perr.Status)
}

func TestSignUp_WithSession(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/v1/signup", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		meta, ok := body["data"].(map[string]any)
		require.True(t, ok)
		require.Equal(t, "Ana", meta["name"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "jwt-token",
			"user": map[string]any{
				"id":    "u-1",
				"email": "ana@x.com",
			},
		})
	})

	res, err := c.SignUp(context.Background(), "ana@x.com", "secret1", map[string]any{"name": "Ana"})
	require.NoError(t, err)
	require.NotNil(t, res.Session)
	assert.Equal(t, "u-1", res.User.ID)
}

func TestSignUp_ConfirmationPending_NoSession(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// Provider returns a bare user when email confirmation is required.
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":    "u-2",
			"email": "bob@x.com",
		})
	})

	res, err := c.SignUp(context.Background(), "bob@x.com", "secret1", nil)
	require.NoError(t, err)
	assert.Nil(t, res.Session)
	assert.Equal(t, "u-2", res.User.ID)

	current, err := c.Session(context.Background())
	require.NoError(t, err)
	assert.Nil(t, current, "pending sign-up must not establish a session")
}

func TestSignOut_ClearsSessionAndNotifies(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/v1/token":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"access_token": "jwt-token",
				"user":         map[string]any{"id": "u-1", "email": "ana@x.com"},
			})
		case "/auth/v1/logout":
			w.WriteHeader(http.StatusNoContent)
		}
	})

	var events []*Session
	cancel := c.OnAuthStateChange(func(s *Session) { events = append(events, s) })
	defer cancel()

	_, err := c.SignInWithPassword(context.Background(), "ana@x.com", "secret1")
	require.NoError(t, err)
	require.NoError(t, c.SignOut(context.Background()))

	require.Len(t, events, 2)
	assert.NotNil(t, events[0])
	assert.Nil(t, events[1])

	current, err := c.Session(context.Background())
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestOnAuthStateChange_CancelIsIdempotent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "jwt-token",
			"user":         map[string]any{"id": "u-1", "email": "ana@x.com"},
		})
	})

	calls := 0
	cancel := c.OnAuthStateChange(func(*Session) { calls++ })
	cancel()
	cancel() // second cancel must be a no-op

	_, err := c.SignInWithPassword(context.Background(), "ana@x.com", "secret1")
	require.NoError(t, err)
	assert.Zero(t, calls, "cancelled observer must not be notified")
}

func TestSelectProfile_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotAcceptable)
	})

	_, err := c.SelectProfile(context.Background(), "u-404")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestSelectProfile_DecodesRow(t *testing.T) {
	goal := "ganhar_massa"
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/rest/v1/profiles", r.URL.Path)
		require.Equal(t, "eq.u-1", r.URL.Query().Get("id"))
		require.Equal(t, "application/vnd.pgrst.object+json", r.Header.Get("Accept"))
		_ = json.NewEncoder(w).Encode(ProfileRow{ID: "u-1", Name: "Ana", Goal: &goal})
	})

	row, err := c.SelectProfile(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", row.Name)
	require.NotNil(t, row.Goal)
	assert.Equal(t, "ganhar_massa", *row.Goal)
}

func TestUpdateProfile_SendsPatch(t *testing.T) {
	var gotMethod, gotPrefer string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPrefer = r.Header.Get("Prefer")
		w.WriteHeader(http.StatusNoContent)
	})

	err := c.UpdateProfile(context.Background(), "u-1", ProfileRow{Name: "Ana"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "return=minimal", gotPrefer)
}

func TestUpsertAnamnesis_OnConflictUserID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/rest/v1/anamnesis", r.URL.Path)
		require.Equal(t, "user_id", r.URL.Query().Get("on_conflict"))
		var row AnamnesisRow
		require.NoError(t, json.NewDecoder(r.Body).Decode(&row))
		require.Equal(t, "u-1", row.UserID)
		w.WriteHeader(http.StatusCreated)
	})

	err := c.UpsertAnamnesis(context.Background(), AnamnesisRow{
		UserID:  "u-1",
		Answers: map[string]any{"mainGoal": "saude"},
	})
	require.NoError(t, err)
}

func TestAuthorizationHeader_UsesAccessTokenWhenSignedIn(t *testing.T) {
	var lastAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		lastAuth = r.Header.Get("Authorization")
		switch r.URL.Path {
		case "/auth/v1/token":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"access_token": "jwt-token",
				"user":         map[string]any{"id": "u-1", "email": "ana@x.com"},
			})
		default:
			_ = json.NewEncoder(w).Encode(ProfileRow{ID: "u-1"})
		}
	})

	_, err := c.SelectProfile(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, "Bearer anon-key", lastAuth)

	_, err = c.SignInWithPassword(context.Background(), "ana@x.com", "secret1")
	require.NoError(t, err)

	_, err = c.SelectProfile(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, "Bearer jwt-token", lastAuth)
}
