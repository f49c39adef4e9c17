package app

import (
	"fmt"
	"os"

	"gorm.io/gorm"

	"github.com/ymorita/studylog/internal/data/repos/journal"
	"github.com/ymorita/studylog/internal/db"
	httpx "github.com/ymorita/studylog/internal/http"
	"github.com/ymorita/studylog/internal/http/handlers"
	"github.com/ymorita/studylog/internal/http/middleware"
	"github.com/ymorita/studylog/internal/identity"
	"github.com/ymorita/studylog/internal/pkg/logger"
	"github.com/ymorita/studylog/internal/services"
)

type Repos struct {
	Themes journal.ThemeRepo
	Logs   journal.LogRepo
	Notes  journal.NoteRepo
}

type Services struct {
	Themes services.ThemeService
	Logs   services.LogService
	Notes  services.NoteService
}

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Server   *httpx.Server
	Cfg      Config
	Repos    Repos
	Services Services
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg, err := LoadConfig(log)
	if err != nil {
		log.Sync()
		return nil, err
	}

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	theDB := pg.DB()

	reposet := wireRepos(theDB, log)
	serviceset := wireServices(theDB, log, cfg, reposet)

	resolver, err := identity.New(cfg.AuthMode, cfg.JWTSecretKey)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init identity resolver: %w", err)
	}

	server := httpx.NewServer(httpx.RouterConfig{
		Log:            log,
		AuthMiddleware: middleware.NewAuthMiddleware(log, resolver),
		CORSOrigins:    cfg.CORSOrigins,
		HealthHandler:  handlers.NewHealthHandler(),
		SessionHandler: handlers.NewSessionHandler(),
		ThemeHandler:   handlers.NewThemeHandler(serviceset.Themes, log),
		LogHandler:     handlers.NewLogHandler(serviceset.Logs, log),
		NoteHandler:    handlers.NewNoteHandler(serviceset.Notes, log),
	})

	return &App{
		Log:      log,
		DB:       theDB,
		Server:   server,
		Cfg:      cfg,
		Repos:    reposet,
		Services: serviceset,
	}, nil
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Themes: journal.NewThemeRepo(db, log),
		Logs:   journal.NewLogRepo(db, log),
		Notes:  journal.NewNoteRepo(db, log),
	}
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos) Services {
	log.Info("Wiring services...")
	return Services{
		Themes: services.NewThemeService(db, log, r.Themes, r.Logs, r.Notes),
		Logs:   services.NewLogService(db, log, r.Logs),
		Notes:  services.NewNoteService(db, log, r.Notes, cfg.NoteLocation),
	}
}

func (a *App) Run() error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Server.Run(":" + a.Cfg.Port)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
