// Package site serves the portfolio: the single page, its lazily
// revealed sections, the project overlay, the contact form, and the
// admin dashboard.
package site

import (
	"context"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/pm-portfolio/internal/config"
	"github.com/Zachkp/pm-portfolio/internal/content"
	"github.com/Zachkp/pm-portfolio/internal/store"
)

// Store is the persistence the site needs.
type Store interface {
	RecordVisit(ctx context.Context, v store.Visit) error
	PruneVisits(ctx context.Context, cutoff time.Time) (int64, error)
	Stats(ctx context.Context, now time.Time) (*store.Stats, error)
	RecentSubmissions(ctx context.Context, limit int) ([]store.Submission, error)
	RecentVisits(ctx context.Context, limit int) ([]store.Visit, error)
	Submission(ctx context.Context, id string) (*store.Submission, error)
	Ping(ctx context.Context) error
}

type Server struct {
	cfg          config.Config
	content      *content.Content
	contact      Submitter
	store        Store
	tmpl         *template.Template
	bio          template.HTML
	imageFormats []string
	tracker      *visitTracker
	clock        func() time.Time
}

func New(cfg config.Config, c *content.Content, submitter Submitter, st Store) (*Server, error) {
	tmpl, err := parseTemplates(cfg.ImageDomains)
	if err != nil {
		return nil, err
	}
	bio, err := renderMarkdown(c.Profile.Bio)
	if err != nil {
		return nil, fmt.Errorf("profile bio: %w", err)
	}
	s := &Server{
		cfg:          cfg,
		content:      c,
		contact:      submitter,
		store:        st,
		tmpl:         tmpl,
		bio:          bio,
		imageFormats: cfg.ImageFormats,
	}
	s.tracker = newVisitTracker(st, s.now)
	return s, nil
}

// Prune drops expired visit records; called once at start.
func (s *Server) Prune(ctx context.Context) {
	s.tracker.prune(ctx)
}

// Drain waits for background visit writes. Call it after the HTTP server
// has shut down and before closing the store.
func (s *Server) Drain() {
	s.tracker.drain()
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := gin.Default()
	r.SetHTMLTemplate(s.tmpl)

	r.StaticFS("/static", http.FS(staticFiles()))

	defaultTheme, ok := parseTheme(s.cfg.Theme)
	if !ok {
		defaultTheme = ThemeLight
	}
	r.Use(themeMiddleware(defaultTheme))
	r.Use(s.tracker.middleware())

	r.GET("/", s.handlePage)
	r.GET("/sections/:name", s.handleSection)
	r.GET("/projects/:id", s.handleOpenProject)
	r.DELETE("/projects/overlay", s.handleCloseProject)
	r.POST("/contact", s.handleContact)
	r.POST("/theme", s.handleToggleTheme)
	r.GET("/healthz", s.handleHealth)
	r.GET("/privacy", s.handlePrivacy)

	if s.cfg.AdminEnabled() {
		a := &admin{
			username: s.cfg.AdminUsername,
			password: s.cfg.AdminPassword,
			token:    randomToken(),
			server:   s,
		}
		a.routes(r)
		log.Printf("Admin access available at: /admin/login")
	}

	r.NoRoute(func(c *gin.Context) {
		c.HTML(http.StatusNotFound, "not-found", gin.H{"Theme": ThemeFrom(c)})
	})
	return r
}

// handlePrivacy describes what the visit tracking stores and for how long.
func (s *Server) handlePrivacy(c *gin.Context) {
	c.HTML(http.StatusOK, "privacy", gin.H{
		"Title":           "Privacy Policy",
		"Theme":           ThemeFrom(c),
		"Profile":         s.content.Profile,
		"RetentionMonths": visitRetentionMonths,
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := s.store.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
