// Package services contains application services for the GymTracker client.
// This file defines the auth orchestrator: the single state machine every UI
// surface renders from. It owns the anonymous/loading/authenticated
// transitions and drives exactly one backend underneath.
package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gymtracker/internal/client/backend"
	"github.com/dmitrijs2005/gymtracker/internal/client/models"
	"github.com/dmitrijs2005/gymtracker/internal/common"
	"github.com/dmitrijs2005/gymtracker/internal/logging"
)

// StateKind enumerates the orchestrator states.
type StateKind string

const (
	StateAnonymous     StateKind = "anonymous"
	StateLoading       StateKind = "loading"
	StateAuthenticated StateKind = "authenticated"
)

// State is the externally visible auth state. User is set exactly when
// Kind is StateAuthenticated.
type State struct {
	Kind StateKind
	User *models.User
}

// Orchestrator coordinates the auth flows against the selected backend and
// publishes state transitions to subscribers. Overlapping operations are
// last-write-wins; the mutex only guards state consistency, it does not
// serialize backend calls.
type Orchestrator struct {
	backend backend.Backend
	logger  logging.Logger

	mu         sync.Mutex
	state      State
	observers  map[int]func(State)
	nextObsID  int
	cancelPush func()

	settled    chan struct{}
	settleOnce sync.Once
	closeOnce  sync.Once
}

func NewOrchestrator(b backend.Backend, logger logging.Logger) *Orchestrator {
	return &Orchestrator{
		backend:   b,
		logger:    logger,
		state:     State{Kind: StateLoading},
		observers: make(map[int]func(State)),
		settled:   make(chan struct{}),
	}
}

// Start brings the orchestrator out of its initial loading state: it wires
// the backend's push notifications and restores the persisted user. Push
// updates and the initial read funnel through the same transition, so a
// push arriving first simply wins.
func (o *Orchestrator) Start(ctx context.Context) {
	o.mu.Lock()
	o.cancelPush = o.backend.Subscribe(o.setUser)
	o.mu.Unlock()

	user, err := o.backend.CurrentUser(ctx)
	if err != nil {
		o.logger.Warn(ctx, "session restore failed", "error", err)
		o.setUser(nil)
		return
	}
	o.setUser(user)
}

// Close cancels the backend subscription. Safe to call more than once.
func (o *Orchestrator) Close() {
	o.closeOnce.Do(func() {
		o.mu.Lock()
		cancel := o.cancelPush
		o.cancelPush = nil
		o.mu.Unlock()
		if cancel != nil {
			cancel()
		}
	})
}

// State returns the current state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// WaitReady blocks until the state has settled out of the initial loading
// phase, then returns it. Returns the current state early when the context
// is done.
func (o *Orchestrator) WaitReady(ctx context.Context) State {
	select {
	case <-o.settled:
	case <-ctx.Done():
	}
	return o.State()
}

// Subscribe registers an observer for state transitions. The current state
// is delivered immediately so subscribers never start blind. Cancel is
// idempotent.
func (o *Orchestrator) Subscribe(fn func(State)) (cancel func()) {
	o.mu.Lock()
	id := o.nextObsID
	o.nextObsID++
	o.observers[id] = fn
	current := o.state
	o.mu.Unlock()

	fn(current)

	return func() {
		o.mu.Lock()
		delete(o.observers, id)
		o.mu.Unlock()
	}
}

// setUser is the single transition point: nil means anonymous, non-nil
// means authenticated. Observers are notified outside the lock.
func (o *Orchestrator) setUser(user *models.User) {
	state := State{Kind: StateAnonymous}
	if user != nil {
		state = State{Kind: StateAuthenticated, User: user}
	}
	o.setState(state)
	o.settleOnce.Do(func() { close(o.settled) })
}

func (o *Orchestrator) setState(state State) {
	o.mu.Lock()
	o.state = state
	fns := make([]func(State), 0, len(o.observers))
	for _, fn := range o.observers {
		fns = append(fns, fn)
	}
	o.mu.Unlock()

	for _, fn := range fns {
		fn(state)
	}
}

// Login validates the form and authenticates against the backend. The state
// passes through loading and lands on authenticated, or reverts to
// anonymous with the error returned, never swallowed.
func (o *Orchestrator) Login(ctx context.Context, form models.LoginForm) error {
	if err := form.Validate(); err != nil {
		return err
	}

	o.setState(State{Kind: StateLoading})
	user, err := o.backend.Login(ctx, form)
	if err != nil {
		o.setUser(nil)
		return err
	}
	o.setUser(user)
	return nil
}

// Register validates the form and creates the account. Same transition
// discipline as Login.
func (o *Orchestrator) Register(ctx context.Context, form models.RegisterForm) error {
	if err := form.Validate(); err != nil {
		return err
	}

	o.setState(State{Kind: StateLoading})
	user, err := o.backend.Register(ctx, form)
	if err != nil {
		o.setUser(nil)
		return err
	}
	o.setUser(user)
	return nil
}

// Logout transitions to anonymous immediately; the backend call is
// best-effort and never blocks the transition.
func (o *Orchestrator) Logout(ctx context.Context) {
	o.setUser(nil)
	o.backend.Logout(ctx)
}

// UpdateUser persists the user through the backend first and updates the
// published state only after the write confirms.
func (o *Orchestrator) UpdateUser(ctx context.Context, user models.User) error {
	if err := o.backend.UpdateUser(ctx, user); err != nil {
		return err
	}
	o.setUser(&user)
	return nil
}

// CompleteAnamnesis stores the questionnaire answers for the signed-in
// user. Fails with ErrInvalidSession when nobody is signed in.
func (o *Orchestrator) CompleteAnamnesis(ctx context.Context, answers map[string]any) error {
	state := o.State()
	if state.Kind != StateAuthenticated {
		return common.ErrInvalidSession
	}
	return o.backend.SaveAnamnesis(ctx, models.Anamnesis{
		UserID:  state.User.ID,
		Answers: answers,
	})
}

// AnamnesisCompleted reports whether the signed-in user has finished the
// questionnaire. False without an authenticated user.
func (o *Orchestrator) AnamnesisCompleted(ctx context.Context) (bool, error) {
	state := o.State()
	if state.Kind != StateAuthenticated {
		return false, nil
	}
	return o.backend.AnamnesisCompleted(ctx, state.User.ID)
}
