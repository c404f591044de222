package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cmlabs-hris/roster-backend-go/internal/config"
	"github.com/cmlabs-hris/roster-backend-go/internal/pkg/cron"
	appHTTP "github.com/cmlabs-hris/roster-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/roster-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/roster-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/roster-backend-go/internal/pkg/oauth"
	"github.com/cmlabs-hris/roster-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/roster-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/roster-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/cmlabs-hris/roster-backend-go/internal/service/auth"
	"github.com/cmlabs-hris/roster-backend-go/internal/service/file"
	serviceNotification "github.com/cmlabs-hris/roster-backend-go/internal/service/notification"
	serviceRoster "github.com/cmlabs-hris/roster-backend-go/internal/service/roster"
	serviceUser "github.com/cmlabs-hris/roster-backend-go/internal/service/user"
	"github.com/go-chi/httplog/v3"
	"golang.org/x/sync/errgroup"
)

// stale refresh tokens are kept this long for session auditing
const refreshTokenRetention = 7 * 24 * time.Hour

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := newLogger(cfg.App)
	slog.SetDefault(logger)

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), database.PoolConfig{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	transactor := postgresql.NewTransactor(db)
	userRepo := postgresql.NewUserRepository(db)
	JWTRepository := postgresql.NewJWTRepository(db)
	scheduleRepo := postgresql.NewScheduleRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	secureCookies := cfg.App.Env == "production"
	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration, secureCookies)
	if err != nil {
		return fmt.Errorf("configure jwt: %w", err)
	}

	var googleService oauth.GoogleService
	if cfg.OAuth2Google.Enabled() {
		googleService = oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	} else {
		slog.Warn("google sign-in disabled, CLIENT_ID/CLIENT_SECRET/REDIRECT_URL not set")
	}

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		return fmt.Errorf("initialize local storage: %w", err)
	}
	fileService := file.NewFileService(fileStorage)
	hub := sse.NewHub()

	parseOpts := serviceRoster.ParseOptions{
		NameColumnIndex:   cfg.Roster.NameColumnIndex,
		DropLeadingColumn: cfg.Roster.DropLeadingColumn,
		BannerLabels:      cfg.Roster.BannerLabels,
	}

	authService := serviceAuth.NewAuthService(transactor, userRepo, JWTService, JWTRepository)
	userService := serviceUser.NewUserService(userRepo)
	notificationService := serviceNotification.NewNotificationService(notificationRepo, serviceNotification.Config{})
	defer notificationService.Stop()
	rosterService := serviceRoster.NewRosterService(transactor, scheduleRepo, userRepo, fileService, hub, notificationService, parseOpts)

	scheduler := cron.NewScheduler()
	cron.NewTokenJobs(JWTRepository, JWTService, refreshTokenRetention).RegisterJobs(scheduler)

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{Logger: logger, AllowedOrigins: cfg.App.CORSAllowedOrigins},
		JWTService,
		appHTTP.NewAuthHandler(JWTService, authService, googleService, cfg.App.FrontendURL, secureCookies),
		appHTTP.NewScheduleHandler(rosterService, JWTService, cfg.Roster.MaxUploadMB),
		appHTTP.NewUserHandler(userService),
		appHTTP.NewNotificationHandler(notificationService),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		// open event streams end with the signal instead of holding Shutdown
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("server listening", "addr", srv.Addr, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return scheduler.Run(gCtx)
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		slog.Info("shutting down server")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func newLogger(app config.AppConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(app.LogLevel))); err != nil {
		level = slog.LevelInfo
	}

	logFormat := httplog.SchemaECS.Concise(app.Env != "production")
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "roster-backend"),
		slog.String("env", app.Env),
	)
}
