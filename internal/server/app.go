// Package server wires configuration, storage, the authorization pipeline and
// the gRPC transport together and runs them until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/adminvote/internal/logging"
	"github.com/dmitrijs2005/adminvote/internal/server/auth"
	"github.com/dmitrijs2005/adminvote/internal/server/authorization"
	"github.com/dmitrijs2005/adminvote/internal/server/config"
	"github.com/dmitrijs2005/adminvote/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/adminvote/internal/server/services"
	"github.com/dmitrijs2005/adminvote/internal/server/voter"

	gs "github.com/dmitrijs2005/adminvote/internal/server/grpc"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	userService *services.UserService
	checker     *authorization.AccessDecisionManager
}

// NewApp connects to the database, applies migrations and assembles services.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	level, err := parseLogLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := logging.NewJSONLogger(os.Stdout, level)

	checker, err := newDecisionManager(c, logger)
	if err != nil {
		return nil, err
	}

	db, err := repomanager.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return &App{
		config:      c,
		logger:      logger,
		db:          db,
		userService: services.NewUserService(db, rm, c),
		checker:     checker,
	}, nil
}

// parseLogLevel accepts slog level names, case-insensitively. An empty name
// means info.
func parseLogLevel(name string) (slog.Level, error) {
	var level slog.Level
	if name == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", name, err)
	}
	return level, nil
}

// newDecisionManager builds the voter pipeline. The environment tag is read
// here, once, and fixed inside the admin voter.
func newDecisionManager(c *config.Config, logger logging.Logger) (*authorization.AccessDecisionManager, error) {
	strategy, err := authorization.ParseStrategy(c.DecisionStrategy)
	if err != nil {
		return nil, err
	}

	voters := []voter.Voter{
		voter.NewAdminVoter(c.AppEnv),
	}

	return authorization.NewAccessDecisionManager(voters,
		authorization.WithStrategy(strategy),
		authorization.WithAllowIfAllAbstain(c.AllowIfAllAbstain),
		authorization.WithLogger(logger),
	), nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves gRPC until the process is signalled or the server fails.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	defer app.db.Close()

	app.logger.Info(ctx, "Starting app...", "env", app.config.AppEnv, "strategy", app.config.DecisionStrategy)

	app.initSignalHandler(cancelFunc)

	resolver := auth.NewIdentityResolver(app.userService, app.config.SecretKey)
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.userService, resolver, app.checker)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		return err
	}
	return nil
}
