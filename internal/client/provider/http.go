package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/dmitrijs2005/gymtracker/internal/common"
)

// HTTPClient talks to the provider's REST surface: the auth endpoints under
// /auth/v1 and the row CRUD endpoints under /rest/v1. It also owns the
// in-process notion of "current session" and pushes session changes to
// subscribed observers.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client

	mu        sync.Mutex
	current   *Session
	observers map[int]func(*Session)
	nextObsID int
}

// NewHTTPClient constructs a client for the provider at baseURL,
// authenticating with the public API key. A zero timeout means no timeout.
func NewHTTPClient(baseURL, apiKey string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL:   baseURL,
		apiKey:    apiKey,
		client:    &http.Client{Timeout: timeout},
		observers: make(map[int]func(*Session)),
	}
}

// errorResponse covers the provider's error body variants.
type errorResponse struct {
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	ErrorDescription string `json:"error_description"`
}

func (e *errorResponse) text() string {
	switch {
	case e.ErrorDescription != "":
		return e.ErrorDescription
	case e.Msg != "":
		return e.Msg
	default:
		return e.Message
	}
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, headers map[string]string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.bearerToken())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusNotAcceptable {
			return common.ErrNotFound
		}
		var er errorResponse
		data, _ := io.ReadAll(resp.Body)
		_ = json.Unmarshal(data, &er)
		msg := er.text()
		if msg == "" {
			msg = fmt.Sprintf("provider returned status %d", resp.StatusCode)
		}
		return &Error{Status: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// bearerToken returns the current access token when signed in, falling back
// to the public API key.
func (c *HTTPClient) bearerToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current != nil && c.current.AccessToken != "" {
		return c.current.AccessToken
	}
	return c.apiKey
}

// setSession replaces the current session and notifies every observer.
// Observers are called outside the lock.
func (c *HTTPClient) setSession(s *Session) {
	c.mu.Lock()
	c.current = s
	fns := make([]func(*Session), 0, len(c.observers))
	for _, fn := range c.observers {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn(s)
	}
}

func (c *HTTPClient) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	var sess Session
	err := c.doJSON(ctx, http.MethodPost, "/auth/v1/token?grant_type=password",
		nil, map[string]string{"email": email, "password": password}, &sess)
	if err != nil {
		return nil, err
	}
	c.setSession(&sess)
	return &sess, nil
}

// signUpResponse handles both shapes the provider returns: a full session
// when auto-confirm is on, or a bare user when email confirmation is
// pending.
type signUpResponse struct {
	AccessToken string       `json:"access_token"`
	User        *SessionUser `json:"user"`
	SessionUser
}

func (c *HTTPClient) SignUp(ctx context.Context, email, password string, metadata map[string]any) (*SignUpResult, error) {
	body := map[string]any{"email": email, "password": password}
	if metadata != nil {
		body["data"] = metadata
	}

	var resp signUpResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/v1/signup", nil, body, &resp); err != nil {
		return nil, err
	}

	result := &SignUpResult{}
	if resp.User != nil {
		result.User = *resp.User
	} else {
		result.User = resp.SessionUser
	}
	if resp.AccessToken != "" {
		sess := &Session{AccessToken: resp.AccessToken, User: result.User}
		result.Session = sess
		c.setSession(sess)
	}
	return result, nil
}

func (c *HTTPClient) Session(ctx context.Context) (*Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current, nil
}

func (c *HTTPClient) SignOut(ctx context.Context) error {
	err := c.doJSON(ctx, http.MethodPost, "/auth/v1/logout", nil, nil, nil)
	c.setSession(nil)
	return err
}

// OnAuthStateChange registers fn to be called after every session change.
// The returned cancel removes the registration and is safe to call more
// than once.
func (c *HTTPClient) OnAuthStateChange(fn func(*Session)) (cancel func()) {
	c.mu.Lock()
	id := c.nextObsID
	c.nextObsID++
	c.observers[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.observers, id)
		c.mu.Unlock()
	}
}

// singleObjectHeader asks the row API to return one object instead of an
// array, failing with 406 when no row matches.
var singleObjectHeader = map[string]string{"Accept": "application/vnd.pgrst.object+json"}

func (c *HTTPClient) SelectProfile(ctx context.Context, id string) (*ProfileRow, error) {
	var row ProfileRow
	path := "/rest/v1/profiles?select=*&id=eq." + url.QueryEscape(id)
	if err := c.doJSON(ctx, http.MethodGet, path, singleObjectHeader, nil, &row); err != nil {
		return nil, err
	}
	return &row, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, id string, row ProfileRow) error {
	path := "/rest/v1/profiles?id=eq." + url.QueryEscape(id)
	headers := map[string]string{"Prefer": "return=minimal"}
	return c.doJSON(ctx, http.MethodPatch, path, headers, row, nil)
}

func (c *HTTPClient) UpsertAnamnesis(ctx context.Context, row AnamnesisRow) error {
	path := "/rest/v1/anamnesis?on_conflict=user_id"
	headers := map[string]string{"Prefer": "resolution=merge-duplicates,return=minimal"}
	return c.doJSON(ctx, http.MethodPost, path, headers, row, nil)
}

func (c *HTTPClient) SelectAnamnesis(ctx context.Context, userID string) (*AnamnesisRow, error) {
	var row AnamnesisRow
	path := "/rest/v1/anamnesis?select=*&user_id=eq." + url.QueryEscape(userID)
	if err := c.doJSON(ctx, http.MethodGet, path, singleObjectHeader, nil, &row); err != nil {
		return nil, err
	}
	return &row, nil
}
