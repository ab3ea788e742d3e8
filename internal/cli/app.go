package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/bloodbuddy/internal/auth"
	"github.com/dmitrijs2005/bloodbuddy/internal/config"
	"github.com/dmitrijs2005/bloodbuddy/internal/dialer"
	"github.com/dmitrijs2005/bloodbuddy/internal/geo"
	"github.com/dmitrijs2005/bloodbuddy/internal/locator"
	"github.com/dmitrijs2005/bloodbuddy/internal/logging"
	"github.com/dmitrijs2005/bloodbuddy/internal/models"
	"github.com/dmitrijs2005/bloodbuddy/internal/registry"
	"github.com/dmitrijs2005/bloodbuddy/internal/state"
	"github.com/dmitrijs2005/bloodbuddy/internal/storage"
	"github.com/dmitrijs2005/bloodbuddy/internal/validation"
)

// redisPrefix namespaces BloodBuddy keys in a shared Redis database.
const redisPrefix = "bb:"

type authService interface {
	Signup(ctx context.Context, f validation.Form) (models.User, error)
	Login(ctx context.Context, phone, password string, loc *geo.Location) (models.User, error)
	Logout(ctx context.Context) error
	Current() (models.User, bool)
	UpdateLocation(ctx context.Context, loc geo.Location) (models.User, error)
}

type requestRegistry interface {
	Create(ctx context.Context, u models.User) (models.BloodRequest, error)
	ListMine(userID string) []models.BloodRequest
	ListNearby(viewer models.User) []models.NearbyRequest
	DonorsNear(req models.BloodRequest) []models.User
	Get(id string) (models.BloodRequest, error)
	Accept(ctx context.Context, id string, donor models.User) (models.BloodRequest, error)
	Decline(ctx context.Context, id string) error
	RadiusKm() float64
}

type locationSource interface {
	Locate(ctx context.Context) locator.Result
}

type App struct {
	config   *config.Config
	store    storage.Store
	auth     authService
	registry requestRegistry
	locator  locationSource
	dialer   dialer.Dialer
	logger   logging.Logger

	reader *bufio.Reader
	out    io.Writer

	// pendingLoc is a location captured before signup or login.
	pendingLoc *geo.Location
}

// NewApp opens the configured store and builds an App reading from stdin.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(os.Stderr, c.LogLevel)

	store, err := storage.Open(ctx, storage.Options{
		Backend:     c.Storage,
		SQLitePath:  c.DatabasePath,
		PostgresDSN: c.DatabaseDSN,
		RedisURL:    c.RedisURL,
		RedisPrefix: redisPrefix,
	})
	if err != nil {
		logger.Error(ctx, "error opening storage", "backend", c.Storage, "error", err)
		return nil, err
	}

	app, err := New(ctx, c, store, logger, os.Stdin, os.Stdout)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return app, nil
}

// New loads state from store and wires the services around it.
func New(ctx context.Context, c *config.Config, store storage.Store, logger logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	st := state.New(store, logger)
	if err := st.Load(ctx); err != nil && !errors.Is(err, state.ErrPersist) {
		return nil, fmt.Errorf("load state: %w", err)
	}

	a := &App{
		config:   c,
		store:    store,
		auth:     auth.NewService(st, logger),
		registry: registry.New(st, logger, registry.WithRadius(c.NearbyRadiusKm)),
		dialer:   dialer.NewURIDialer(out, c.OpenDialer),
		logger:   logger,
		reader:   bufio.NewReader(in),
		out:      out,
	}

	prompt := locator.Prompt{Read: func(p string) (string, error) {
		return getSimpleText(a.reader, p, a.out)
	}}
	a.locator = locator.NewFallback(locator.Chain{locator.Static{Loc: c.Location}, prompt}, c.LocationTimeout)

	return a, nil
}

// Run starts the REPL and blocks until the user exits. The store is closed
// on return.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.store.Close(); err != nil {
			a.logger.Error(ctx, "error closing storage", "error", err)
		}
	}()

	printlnFn("BloodBuddy (type 'help' for commands)")
	if u, ok := a.auth.Current(); ok {
		printlnFn(fmt.Sprintf("Welcome back, %s!", u.Name))
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	_, ok := a.auth.Current()
	return ok
}

func (a *App) getStatus() string {
	u, ok := a.auth.Current()
	if !ok {
		return ""
	}
	return fmt.Sprintf("(%s %s)", u.Name, u.BloodType)
}

// saved drops a persistence failure: it is already logged and the
// in-memory state remains valid for this session.
func (a *App) saved(err error) error {
	if errors.Is(err, state.ErrPersist) {
		return nil
	}
	return err
}
