package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/gymtracker/internal/client/backend"
	"github.com/dmitrijs2005/gymtracker/internal/client/backend/local"
	"github.com/dmitrijs2005/gymtracker/internal/client/backend/remote"
	"github.com/dmitrijs2005/gymtracker/internal/client/config"
	"github.com/dmitrijs2005/gymtracker/internal/client/provider"
	"github.com/dmitrijs2005/gymtracker/internal/client/services"
	"github.com/dmitrijs2005/gymtracker/internal/client/storage"
	"github.com/dmitrijs2005/gymtracker/internal/logging"

	_ "modernc.org/sqlite"
)

// Mode names which auth backend the client runs against.
type Mode string

const (
	ModeLocal    Mode = "local"
	ModeExternal Mode = "external"
)

type App struct {
	config       *config.Config
	orchestrator *services.Orchestrator
	avatars      *services.AvatarService
	logger       logging.Logger
	Mode         Mode
	reader       *bufio.Reader
}

// NewApp wires storage, backend selection, and the auth orchestrator.
// External mode requires both the provider URL and API key; anything less
// falls back to the local demo registry with a logged warning.
func NewApp(c *config.Config, logger logging.Logger) (*App, error) {
	ctx := context.Background()

	db, err := storage.InitDatabase(ctx, c.DatabaseDSN)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	var (
		b    backend.Backend
		mode Mode
	)
	if c.ExternalConfigured() {
		pc := provider.NewHTTPClient(c.ProviderBaseURL, c.ProviderAPIKey, c.HTTPTimeout)
		b = remote.New(pc, logger)
		mode = ModeExternal
	} else {
		logger.Warn(ctx, "auth provider not configured, using local demo registry")
		b = local.New(db)
		mode = ModeLocal
	}

	return &App{
		config:       c,
		orchestrator: services.NewOrchestrator(b, logger),
		avatars:      services.NewAvatarService(c),
		logger:       logger,
		Mode:         mode,
		reader:       bufio.NewReader(os.Stdin),
	}, nil
}

// Run restores the session and drops into the REPL, blocking until the user
// exits.
func (a *App) Run(ctx context.Context) {
	a.orchestrator.Start(ctx)
	defer a.orchestrator.Close()

	fmt.Printf("Welcome to GymTracker CLI, %s mode (type 'help' for commands)\n", a.Mode)

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) isLoggedIn() bool {
	return a.orchestrator.State().Kind == services.StateAuthenticated
}

// getStatus renders the prompt decoration: the signed-in email, or the
// loading marker while the session is being restored.
func (a *App) getStatus() string {
	state := a.orchestrator.State()
	switch state.Kind {
	case services.StateLoading:
		return "(...)"
	case services.StateAuthenticated:
		return fmt.Sprintf("(%s)", state.User.Email)
	default:
		return ""
	}
}

// requireAuth gates account commands on the auth state: a loading state is
// waited out, an anonymous user is sent through the login flow and the
// attempted command re-dispatched on success.
func (a *App) requireAuth(ctx context.Context, next func(context.Context) error) error {
	state := a.orchestrator.State()

	if state.Kind == services.StateLoading {
		printlnFn("Restoring session...")
		waitCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		state = a.orchestrator.WaitReady(waitCtx)
		cancel()
	}

	if state.Kind == services.StateAnonymous {
		printlnFn("You need to sign in first.")
		if err := a.Login(ctx); err != nil {
			return err
		}
		if a.orchestrator.State().Kind != services.StateAuthenticated {
			return nil
		}
	}

	return next(ctx)
}
