package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/foyerapp/foyer-backend/internal/adapter/expo"
	"github.com/foyerapp/foyer-backend/internal/adapter/postgres"
	eventrepo "github.com/foyerapp/foyer-backend/internal/adapter/postgres/event"
	foyerrepo "github.com/foyerapp/foyer-backend/internal/adapter/postgres/foyer"
	reciperepo "github.com/foyerapp/foyer-backend/internal/adapter/postgres/recipe"
	shoppingrepo "github.com/foyerapp/foyer-backend/internal/adapter/postgres/shopping"
	taskrepo "github.com/foyerapp/foyer-backend/internal/adapter/postgres/task"
	tokenrepo "github.com/foyerapp/foyer-backend/internal/adapter/postgres/token"
	travelrepo "github.com/foyerapp/foyer-backend/internal/adapter/postgres/travel"
	userrepo "github.com/foyerapp/foyer-backend/internal/adapter/postgres/user"
	jwtauth "github.com/foyerapp/foyer-backend/internal/auth"
	"github.com/foyerapp/foyer-backend/internal/config"
	"github.com/foyerapp/foyer-backend/internal/migrations"
	authsvc "github.com/foyerapp/foyer-backend/internal/service/auth"
	calendarsvc "github.com/foyerapp/foyer-backend/internal/service/calendar"
	foyersvc "github.com/foyerapp/foyer-backend/internal/service/foyer"
	recipesvc "github.com/foyerapp/foyer-backend/internal/service/recipe"
	shoppingsvc "github.com/foyerapp/foyer-backend/internal/service/shopping"
	tasksvc "github.com/foyerapp/foyer-backend/internal/service/task"
	travelsvc "github.com/foyerapp/foyer-backend/internal/service/travel"
	uploadsvc "github.com/foyerapp/foyer-backend/internal/service/upload"
	"github.com/foyerapp/foyer-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, initializes
// the logger, connects to PostgreSQL, runs migrations, wires the services,
// and serves HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.MigrateOnStart {
		if err := migrations.Up(ctx, pool, logger); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
	}

	if err := os.MkdirAll(cfg.Upload.Dir, 0o755); err != nil {
		return fmt.Errorf("create upload dir: %w", err)
	}

	txManager := postgres.NewTxManager(pool)

	users := userrepo.New(pool)
	tokens := tokenrepo.New(pool)
	foyers := foyerrepo.New(pool)
	events := eventrepo.New(pool)
	tasks := taskrepo.New(pool)
	shopping := shoppingrepo.New(pool)
	recipes := reciperepo.New(pool)
	travel := travelrepo.New(pool)

	jwtManager := jwtauth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	var notifier calendarsvc.Notifier
	if cfg.Expo.Enabled {
		notifier = expo.NewClient(cfg.Expo, logger)
	} else {
		notifier = expo.NopClient{}
	}

	authService := authsvc.NewService(logger, users, tokens, txManager, jwtManager, cfg.Auth)
	foyerService := foyersvc.NewService(logger, foyers, users, txManager)
	calendarService := calendarsvc.NewService(logger, events, foyers, txManager, notifier)
	taskService := tasksvc.NewService(logger, tasks, users, foyers, txManager, notifier)
	shoppingService := shoppingsvc.NewService(logger, shopping, foyers, notifier)
	recipeService := recipesvc.NewService(logger, recipes)
	travelService := travelsvc.NewService(logger, travel)
	uploadService := uploadsvc.NewService(logger, cfg.Upload)

	router := rest.NewRouter(rest.Deps{
		Logger:   logger,
		Cfg:      cfg,
		DB:       pool,
		Auth:     authService,
		Foyer:    foyerService,
		Calendar: calendarService,
		Task:     taskService,
		Shopping: shoppingService,
		Recipe:   recipeService,
		Travel:   travelService,
		Upload:   uploadService,
		Notifier: notifier,
		Version:  BuildVersion(),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}
