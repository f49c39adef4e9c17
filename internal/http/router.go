package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/ymorita/studylog/internal/http/handlers"
	httpMW "github.com/ymorita/studylog/internal/http/middleware"
	"github.com/ymorita/studylog/internal/pkg/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	AuthMiddleware *httpMW.AuthMiddleware
	CORSOrigins    []string

	HealthHandler  *httpH.HealthHandler
	SessionHandler *httpH.SessionHandler
	ThemeHandler   *httpH.ThemeHandler
	LogHandler     *httpH.LogHandler
	NoteHandler    *httpH.NoteHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.Log != nil {
		r.Use(httpMW.RequestLogger(cfg.Log))
	}
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health (public)
	if cfg.HealthHandler != nil {
		r.GET("/health", cfg.HealthHandler.Check)
	}

	protected := r.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Session
		if cfg.SessionHandler != nil {
			protected.GET("/auth/session", cfg.SessionHandler.Get)
		}

		// Themes
		if cfg.ThemeHandler != nil {
			protected.GET("/themes", cfg.ThemeHandler.List)
			protected.POST("/themes", cfg.ThemeHandler.Create)
			protected.GET("/themes/:id", cfg.ThemeHandler.Get)
			protected.PATCH("/themes/:id", cfg.ThemeHandler.Update)
			protected.DELETE("/themes/:id", cfg.ThemeHandler.Delete)
		}

		// Learning log entries
		if cfg.LogHandler != nil {
			protected.GET("/logs", cfg.LogHandler.List)
			protected.POST("/logs", cfg.LogHandler.Create)
			protected.GET("/logs/:id", cfg.LogHandler.Get)
			protected.PATCH("/logs/:id", cfg.LogHandler.Update)
			protected.DELETE("/logs/:id", cfg.LogHandler.Delete)
		}

		// Meta notes
		if cfg.NoteHandler != nil {
			protected.GET("/notes", cfg.NoteHandler.List)
			protected.POST("/notes", cfg.NoteHandler.Create)
			protected.GET("/notes/:id", cfg.NoteHandler.Get)
			protected.PATCH("/notes/:id", cfg.NoteHandler.Update)
			protected.DELETE("/notes/:id", cfg.NoteHandler.Delete)
		}
	}

	return r
}
