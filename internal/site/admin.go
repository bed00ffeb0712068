package site

import (
	"crypto/subtle"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/pm-portfolio/internal/store"
)

const (
	adminCookie      = "admin_token"
	recentSubmission = 20
	recentVisitors   = 200
)

type admin struct {
	username string
	password string
	token    string
	server   *Server
}

func equalConstantTime(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func (a *admin) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || !equalConstantTime(token, a.token) {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (a *admin) routes(r *gin.Engine) {
	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login", gin.H{"Title": "Admin Login"})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		userOK := equalConstantTime(c.PostForm("username"), a.username)
		passOK := equalConstantTime(c.PostForm("password"), a.password)
		if !userOK || !passOK {
			log.Printf("Failed admin login attempt from %s", a.server.tracker.hashIP(c.ClientIP()))
			c.HTML(http.StatusUnauthorized, "admin-login", gin.H{
				"Title": "Admin Login",
				"Error": "Invalid credentials",
			})
			return
		}
		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie(adminCookie, a.token, 3600*24, "/admin", "", false, true)
		log.Printf("Admin login successful from %s", a.server.tracker.hashIP(c.ClientIP()))
		c.Redirect(http.StatusFound, "/admin/dashboard")
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", false, true)
		log.Printf("Admin logout from %s", a.server.tracker.hashIP(c.ClientIP()))
		c.Redirect(http.StatusFound, "/admin/login")
	})

	group := r.Group("/admin")
	group.Use(a.authMiddleware())
	group.GET("/dashboard", a.handleDashboard)
	group.GET("/submissions/:id", a.handleSubmission)
	group.GET("/visitors", a.handleVisitors)
	group.GET("/api/stats", a.handleStatsJSON)
	group.GET("/export/stats", a.handleExportStats)
	group.POST("/privacy/delete-visitor-data", a.handleDeleteVisitorData)
}

func (a *admin) handleDashboard(c *gin.Context) {
	ctx := c.Request.Context()
	stats, err := a.server.store.Stats(ctx, a.server.now())
	if err != nil {
		log.Printf("Error loading admin stats: %v", err)
		a.renderError(c, http.StatusInternalServerError, "Failed to load statistics")
		return
	}
	subs, err := a.server.store.RecentSubmissions(ctx, recentSubmission)
	if err != nil {
		log.Printf("Error loading submissions: %v", err)
		a.renderError(c, http.StatusInternalServerError, "Failed to load submissions")
		return
	}
	c.HTML(http.StatusOK, "admin-dashboard", gin.H{
		"Title":       "Dashboard",
		"Stats":       stats,
		"Submissions": subs,
	})
}

func (a *admin) handleSubmission(c *gin.Context) {
	sub, err := a.server.store.Submission(c.Request.Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		a.renderError(c, http.StatusNotFound, "Submission not found")
		return
	}
	if err != nil {
		log.Printf("Error loading submission: %v", err)
		a.renderError(c, http.StatusInternalServerError, "Failed to load submission")
		return
	}
	c.HTML(http.StatusOK, "admin-submission", gin.H{
		"Title":      "Submission",
		"Submission": sub,
	})
}

func (a *admin) handleVisitors(c *gin.Context) {
	visits, err := a.server.store.RecentVisits(c.Request.Context(), recentVisitors)
	if err != nil {
		log.Printf("Error loading visitors: %v", err)
		a.renderError(c, http.StatusInternalServerError, "Failed to load visitors")
		return
	}
	c.HTML(http.StatusOK, "admin-visitors", gin.H{
		"Title":  "Visitors",
		"Visits": visits,
	})
}

func statsJSON(stats *store.Stats) gin.H {
	return gin.H{
		"total_visits":       stats.TotalVisits,
		"unique_visitors":    stats.UniqueVisitors,
		"visits_today":       stats.VisitsToday,
		"visits_this_week":   stats.VisitsThisWeek,
		"submissions":        stats.Submissions,
		"failed_submissions": stats.FailedSubmissions,
	}
}

func (a *admin) handleStatsJSON(c *gin.Context) {
	stats, err := a.server.store.Stats(c.Request.Context(), a.server.now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, statsJSON(stats))
}

// handleExportStats serves the same totals as a downloadable file.
func (a *admin) handleExportStats(c *gin.Context) {
	now := a.server.now()
	stats, err := a.server.store.Stats(c.Request.Context(), now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	body := statsJSON(stats)
	body["exported_at"] = now.UTC().Format(time.RFC3339)

	c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
	log.Printf("Admin stats exported by %s", a.server.tracker.hashIP(c.ClientIP()))
	c.JSON(http.StatusOK, body)
}

// handleDeleteVisitorData prunes visits past the retention window now
// instead of waiting for the next start.
func (a *admin) handleDeleteVisitorData(c *gin.Context) {
	removed, err := a.server.tracker.prune(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete visitor data"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Visitor data older than the retention window deleted",
		"removed": removed,
	})
}

func (a *admin) renderError(c *gin.Context, status int, msg string) {
	c.HTML(status, "admin-error", gin.H{"Title": "Error", "Error": msg})
}
