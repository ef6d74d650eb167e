// env.go wires the stores, API client, and logger shared by every
// command. Stores are constructed here and injected; nothing holds
// ambient global state.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/shopverse-dev/shopverse/internal/api"
	"github.com/shopverse-dev/shopverse/internal/basket"
	"github.com/shopverse-dev/shopverse/internal/config"
	"github.com/shopverse-dev/shopverse/internal/guard"
	"github.com/shopverse-dev/shopverse/internal/log"
	"github.com/shopverse-dev/shopverse/internal/session"
)

type env struct {
	cfg      *config.Config
	root     string
	sessions *session.Store
	baskets  *basket.Store
	client   *api.Client
	logger   *log.Logger
}

// newEnv builds the command environment from the working directory's
// .shopverse state. The session store is hydrated before any command
// logic runs, so guard decisions never see a loading session here.
func newEnv() (*env, error) {
	root, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.ReadConfig(root)
	if err != nil {
		// Config not found or invalid, use defaults
		cfg = config.DefaultConfig()
	}

	dbPath, err := config.StateDBPath(root, cfg)
	if err != nil {
		return nil, err
	}

	sessions, err := session.NewStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	if err := sessions.Hydrate(); err != nil {
		_ = sessions.Close()
		return nil, fmt.Errorf("hydrate session: %w", err)
	}

	baskets, err := basket.NewStore(dbPath)
	if err != nil {
		_ = sessions.Close()
		return nil, fmt.Errorf("open basket store: %w", err)
	}

	logger, err := log.NewLogger(root)
	if err != nil {
		_ = sessions.Close()
		_ = baskets.Close()
		return nil, err
	}

	client := api.NewClient(cfg.API.BaseURL, time.Duration(cfg.API.Timeout)*time.Second, sessions)

	return &env{
		cfg:      cfg,
		root:     root,
		sessions: sessions,
		baskets:  baskets,
		client:   client,
		logger:   logger,
	}, nil
}

// Close releases the stores.
func (e *env) Close() {
	_ = e.sessions.Close()
	_ = e.baskets.Close()
}

// requireRole runs the route guard for a role-restricted command and
// turns a redirect into actionable guidance instead of an error dump.
func (e *env) requireRole(required session.Role) error {
	decision := guard.Decide(guard.FromStore(e.sessions), required)
	switch decision.Kind {
	case guard.Allow:
		return nil
	case guard.Wait:
		return fmt.Errorf("session still loading, try again")
	default:
		return fmt.Errorf("%s", redirectHint(decision.Target))
	}
}

// redirectHint translates a guard redirect target into the command the
// user should run instead.
func redirectHint(target guard.Route) string {
	switch target {
	case guard.RouteShopperLogin:
		return "not logged in; run: shopverse login"
	case guard.RouteAdminLogin:
		return "admin access required; run: shopverse login --admin"
	case guard.RouteAdminDashboard:
		return "you are logged in as admin; this is a shopper command"
	case guard.RouteProducts:
		return "this command needs an admin session; you are a shopper"
	default:
		return "access denied for the current session"
	}
}
