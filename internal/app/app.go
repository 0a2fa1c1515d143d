package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/simp-lee/logger"

	"github.com/mpetrov/usersvc/internal/config"
	"github.com/mpetrov/usersvc/internal/domain"
	"github.com/mpetrov/usersvc/internal/middleware"
	"github.com/mpetrov/usersvc/internal/module/submission"
	"github.com/mpetrov/usersvc/internal/module/user"
	"github.com/mpetrov/usersvc/web"
)

// App holds the core application dependencies and the HTTP server.
type App struct {
	engine  *gin.Engine
	logger  *logger.Logger
	cfg     *config.Config
	closeDB func() error
}

type httpServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

var newHTTPServer = func(addr string, handler http.Handler) httpServer {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

var notifyContext = func(parent context.Context, signals ...os.Signal) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, signals...)
}

// NewAPI creates and wires the JSON user API service.
//
// It sets up logging, a pooled database handle, the users table schema,
// the user repository, service, handler, middleware, and routes.
func NewAPI(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	success := false

	log, err := config.SetupLogger(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}
	defer closeLoggerOnFailure(&success, log)

	db, err := config.OpenSQL(&cfg.Database, log.Logger)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	defer func() {
		if success {
			return
		}
		if err := db.Close(); err != nil {
			slog.Error("database close error", slog.Any("error", err))
		}
	}()

	repo := user.NewUserRepository(db, cfg.Database.Driver)

	// Ensure the users table exists before serving traffic.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	log.Info("users table ensured")

	svc := user.NewUserService(repo)
	handler := user.NewUserHandler(svc)

	engine, err := buildEngine(cfg, log)
	if err != nil {
		return nil, err
	}

	if err := RegisterRoutes(engine, &RouteDeps{
		Modules: []Module{user.NewModule(handler)},
		Mode:    cfg.Server.Mode,
	}); err != nil {
		return nil, fmt.Errorf("register routes: %w", err)
	}

	success = true
	return &App{
		engine:  engine,
		logger:  log,
		cfg:     cfg,
		closeDB: db.Close,
	}, nil
}

// NewForm creates and wires the HTML submission form service.
//
// It sets up logging, the ORM database, the submissions table schema,
// the submission repository, service, handler, template rendering,
// middleware, static assets, and routes.
func NewForm(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	success := false

	log, err := config.SetupLogger(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}
	defer closeLoggerOnFailure(&success, log)

	db, err := config.SetupDatabase(&cfg.Database, log.Logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}
	closeDB := func() error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	defer func() {
		if success {
			return
		}
		if err := closeDB(); err != nil {
			slog.Error("database close error", slog.Any("error", err))
		}
	}()

	// Ensure the submissions table exists before serving traffic.
	if err := db.AutoMigrate(&domain.Submission{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	log.Info("submissions table ensured")

	repo := submission.NewSubmissionRepository(db)
	svc := submission.NewSubmissionService(repo)
	handler := submission.NewSubmissionHandler(svc)

	engine, err := buildEngine(cfg, log)
	if err != nil {
		return nil, err
	}

	// Template renderer: hot reload from disk in debug mode, embedded in release.
	var fsys fs.FS
	if cfg.Server.Mode == gin.DebugMode {
		fsys, err = resolveDebugWebFS()
		if err != nil {
			return nil, fmt.Errorf("resolve debug template fs: %w", err)
		}
	} else {
		fsys = web.EmbeddedFS
	}

	renderer, err := NewTemplateRenderer(fsys, cfg.Server.Mode == gin.DebugMode)
	if err != nil {
		return nil, fmt.Errorf("setup template renderer: %w", err)
	}
	engine.HTMLRender = renderer

	if err := RegisterRoutes(engine, &RouteDeps{
		Modules: []Module{submission.NewModule(handler)},
		Mode:    cfg.Server.Mode,
		Static:  true,
	}); err != nil {
		return nil, fmt.Errorf("register routes: %w", err)
	}

	success = true
	return &App{
		engine:  engine,
		logger:  log,
		cfg:     cfg,
		closeDB: closeDB,
	}, nil
}

// buildEngine creates a Gin engine with the shared middleware chain.
func buildEngine(cfg *config.Config, log *logger.Logger) (*gin.Engine, error) {
	if err := validateGinMode(cfg.Server.Mode); err != nil {
		return nil, err
	}
	if cfg.Server.Mode == gin.DebugMode && cfg.Server.Host == "0.0.0.0" {
		log.Warn("insecure server config: debug mode on 0.0.0.0 may expose debug behavior and permissive CORS")
	}
	gin.SetMode(cfg.Server.Mode)
	engine := gin.New()

	// In release mode, when no allowlist is configured, deny cross-origin requests.
	corsConfig := resolveCORSConfig(cfg.Server.Mode, cfg.Server.CORS.AllowOrigins)

	engine.Use(
		middleware.Recovery(log.Logger),
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{
			TrustUpstream: false,
		}),
		middleware.Logger(log.Logger),
		middleware.CORSWithConfig(corsConfig),
	)

	return engine, nil
}

func closeLoggerOnFailure(success *bool, log *logger.Logger) {
	if *success {
		return
	}
	if err := log.Close(); err != nil {
		slog.Error("logger close error", slog.Any("error", err))
	}
}

func resolveCORSConfig(mode string, configuredAllowOrigins []string) middleware.CORSConfig {
	corsConfig := middleware.DefaultCORSConfig()

	if len(configuredAllowOrigins) > 0 {
		corsConfig.AllowOrigins = configuredAllowOrigins
		return corsConfig
	}

	if mode == gin.ReleaseMode {
		corsConfig.AllowOrigins = []string{}
	}

	return corsConfig
}

func validateGinMode(mode string) error {
	switch mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		return nil
	default:
		return fmt.Errorf("invalid server.mode %q: must be one of %q, %q, %q", mode, gin.DebugMode, gin.ReleaseMode, gin.TestMode)
	}
}

func resolveDebugWebFS() (fs.FS, error) {
	if _, file, _, ok := runtime.Caller(0); ok {
		webDir := filepath.Clean(filepath.Join(filepath.Dir(file), "..", "..", "web"))
		if stat, err := os.Stat(webDir); err == nil && stat.IsDir() {
			return os.DirFS(webDir), nil
		}
	}

	exePath, err := os.Executable()
	if err == nil {
		webDir := filepath.Join(filepath.Dir(exePath), "web")
		if stat, err := os.Stat(webDir); err == nil && stat.IsDir() {
			return os.DirFS(webDir), nil
		}
	}

	return nil, errors.New("debug web directory not found")
}

// Run starts the HTTP server and blocks until a shutdown signal is received.
// It performs graceful shutdown with a 5-second timeout and closes the
// database connection.
func (a *App) Run() error {
	if a == nil {
		return errors.New("app is nil")
	}
	if a.cfg == nil {
		return errors.New("app config is nil")
	}
	if a.engine == nil {
		return errors.New("app engine is nil")
	}

	addr := fmt.Sprintf("%s:%d", a.cfg.Server.Host, a.cfg.Server.Port)
	srv := newHTTPServer(addr, a.engine)

	// Listen for SIGINT / SIGTERM.
	ctx, stop := notifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server in a goroutine.
	errCh := make(chan error, 1)
	go func() {
		a.logInfo("server started", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var runErr error

	// Wait for shutdown signal or server error.
	select {
	case <-ctx.Done():
		a.logInfo("shutdown signal received")
	case err := <-errCh:
		runErr = fmt.Errorf("server error: %w", err)
	}

	if runErr == nil {
		// Graceful shutdown with 5-second deadline.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.logError("server shutdown error", slog.Any("error", err))
		}
	}

	if a.closeDB != nil {
		if err := a.closeDB(); err != nil {
			a.logError("database close error", slog.Any("error", err))
		} else {
			a.logInfo("database connection closed")
		}
	}

	a.logInfo("server stopped")
	if a.logger != nil {
		if err := a.logger.Close(); err != nil {
			slog.Error("logger close error", slog.Any("error", err))
		}
	}

	return runErr
}

func (a *App) logInfo(msg string, args ...any) {
	if a.logger != nil {
		a.logger.Info(msg, args...)
		return
	}
	slog.Info(msg, args...)
}

func (a *App) logError(msg string, args ...any) {
	if a.logger != nil {
		a.logger.Error(msg, args...)
		return
	}
	slog.Error(msg, args...)
}
