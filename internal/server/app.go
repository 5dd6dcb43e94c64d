// Package server initializes and runs the application server: it wires the
// database, the one-time share store, the application services and the HTTP
// API, and handles graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/securepass/internal/logging"
	"github.com/dmitrijs2005/securepass/internal/server/config"
	"github.com/dmitrijs2005/securepass/internal/server/health"
	"github.com/dmitrijs2005/securepass/internal/server/httpapi"
	"github.com/dmitrijs2005/securepass/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/securepass/internal/server/secrets"
	"github.com/dmitrijs2005/securepass/internal/server/services"
	"github.com/redis/go-redis/v9"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	repoManager repomanager.RepositoryManager
	shareStore  secrets.Store
	handler     *httpapi.Handler
	sweeper     *secrets.Sweeper
}

func NewApp(cfg *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout)

	rm, err := repomanager.NewPostgresRepositoryManager(cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	store, err := newShareStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("share store init error: %w", err)
	}

	us := services.NewUserService(rm.Users(), cfg)
	es := services.NewEntryService(rm.Entries(), cfg)
	ss := secrets.NewService(store, logger)
	pwned := health.NewPwnedChecker(logger)

	handler := httpapi.NewHandler(us, es, ss, pwned, cfg, logger)

	return &App{
		config:      cfg,
		logger:      logger,
		repoManager: rm,
		shareStore:  store,
		handler:     handler,
		sweeper:     secrets.NewSweeper(store, cfg.SweepInterval, logger),
	}, nil
}

func newShareStore(cfg *config.Config) (secrets.Store, error) {
	switch cfg.SecretStoreType {
	case "redis":
		return secrets.NewRedisStore(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	case "memory":
		return secrets.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown secret store type: %s", cfg.SecretStoreType)
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	srv := &http.Server{
		Addr:    app.config.EndpointAddr,
		Handler: app.handler.SetupRouter(),
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(shutdownCtx, "shutdown error", "error", err.Error())
		}
	}()

	app.logger.Info(ctx, "starting http server", "addr", app.config.EndpointAddr, "store", app.config.SecretStoreType)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, "http server error", "error", err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.sweeper.Run(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.shareStore.Close(); err != nil {
		app.logger.Error(ctx, "share store close error", "error", err.Error())
	}
	if err := app.repoManager.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err.Error())
	}
}
