package server

import (
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"bugbounty-tracker/internal/config"
	"bugbounty-tracker/internal/handlers"
	"bugbounty-tracker/internal/middleware"
	"bugbounty-tracker/internal/store"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func NewRouter(cfg *config.Config, s *store.Store, logger *zap.Logger) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))

	r.Static("/static", "./web/static")

	r.SetFuncMap(template.FuncMap{
		"upper": strings.ToUpper,
		"pct":   func(f float64) string { return fmt.Sprintf("%.2f", f) },
	})
	r.LoadHTMLGlob("web/templates/*.html")

	sessionStore := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("bb_session", sessionStore))

	h := handlers.New(s, logger)

	// DASHBOARD
	r.GET("/", h.Dashboard)
	r.GET("/dashboard", h.Dashboard)

	// PROJECTS
	r.GET("/projects", h.ListProjects)
	r.GET("/projects/:id", h.ShowProject)
	r.POST("/projects", h.CreateProject)
	r.POST("/projects/:id/update", h.UpdateProject)
	r.POST("/projects/:id/delete", h.DeleteProject)

	// TARGETS
	r.GET("/targets", h.ListTargets)
	r.GET("/targets/:id", h.ShowTarget)
	r.POST("/targets", h.CreateTarget)
	r.POST("/targets/:id/update", h.UpdateTarget)
	r.POST("/targets/:id/delete", h.DeleteTarget)

	// AGGREGATED NOTES VIEW
	r.GET("/targets/:id/notes", h.ShowNotes)
	r.GET("/targets/:id/notes/export", h.ExportNotes)
	r.POST("/targets/:id/notes/export", h.ExportNotes)

	// CATEGORIES
	r.GET("/categories", h.ListCategories)
	r.POST("/categories", h.CreateCategory)
	r.POST("/categories/:id/update", h.UpdateCategory)
	r.POST("/categories/:id/delete", h.DeleteCategory)
	r.POST("/categories/:id/move-up", h.MoveCategory)
	r.POST("/categories/:id/move-down", h.MoveCategory)

	// CHECKLIST TEMPLATES
	r.GET("/checklist", h.ListChecklistItems)
	r.POST("/checklist", h.CreateChecklistItem)
	r.POST("/checklist/:id/update", h.UpdateChecklistItemTemplate)
	r.POST("/checklist/:id/delete", h.DeleteChecklistItem)
	r.POST("/checklist/:id/move-up", h.MoveChecklistItem)
	r.POST("/checklist/:id/move-down", h.MoveChecklistItem)

	// JSON API
	api := r.Group("/api")
	{
		api.GET("/projects", h.APIListProjects)
		api.POST("/projects", h.APICreateProject)
		api.GET("/projects/:id", h.APIGetProject)
		api.PUT("/projects/:id", h.APIUpdateProject)
		api.DELETE("/projects/:id", h.APIDeleteProject)

		api.GET("/targets", h.APIListTargets)
		api.POST("/targets", h.APICreateTarget)
		api.GET("/targets/:id", h.APIGetTarget)
		api.PUT("/targets/:id", h.APIUpdateTarget)
		api.DELETE("/targets/:id", h.APIDeleteTarget)

		api.POST("/targets/:id/checklist/:itemID/toggle", h.APIToggleChecklistEntry)
		api.POST("/targets/:id/checklist/:itemID/notes", h.APIUpdateChecklistEntryNotes)

		api.GET("/targets/:id/notes", h.APIGetNotes)
		api.GET("/targets/:id/notes/by-category", h.APINotesByCategory)
		api.GET("/targets/:id/notes/by-severity", h.APINotesBySeverity)
		api.GET("/targets/:id/notes/history", h.APINotesHistory)
		api.GET("/targets/:id/notes/export", h.ExportNotes)
		api.POST("/targets/:id/notes/export", h.ExportNotes)

		api.GET("/categories", h.APIListCategories)
		api.POST("/categories", h.APICreateCategory)
		api.PUT("/categories/:id", h.APIUpdateCategory)
		api.DELETE("/categories/:id", h.APIDeleteCategory)
		api.POST("/categories/:id/move-up", h.APIMoveCategoryUp)
		api.POST("/categories/:id/move-down", h.APIMoveCategoryDown)

		api.GET("/checklist", h.APIListChecklistItems)
		api.POST("/checklist", h.APICreateChecklistItem)
		api.PUT("/checklist/:id", h.APIUpdateChecklistItem)
		api.DELETE("/checklist/:id", h.APIDeleteChecklistItem)
		api.POST("/checklist/:id/move-up", h.APIMoveChecklistItemUp)
		api.POST("/checklist/:id/move-down", h.APIMoveChecklistItemDown)
	}

	// HEALTHCHECK
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return r
}
