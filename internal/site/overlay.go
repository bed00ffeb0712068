package site

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/pm-portfolio/internal/content"
)

// Overlay is the project detail modal. It shows at most one project;
// opening another replaces the selection.
type Overlay struct {
	open     bool
	selected *content.Project
}

func (o *Overlay) Open(p *content.Project) {
	o.open = true
	o.selected = p
}

// Close clears both the open flag and the selection.
func (o *Overlay) Close() {
	o.open = false
	o.selected = nil
}

// Visible reports whether there is anything to show.
func (o *Overlay) Visible() bool { return o.open && o.selected != nil }

// Project returns the selected project, or nil when nothing is shown.
func (o *Overlay) Project() *content.Project {
	if !o.Visible() {
		return nil
	}
	return o.selected
}

// overlayView adds what the overlay template needs beyond the selection.
type overlayView struct {
	*Overlay
	ImageFormats []string
}

func (s *Server) handleOpenProject(c *gin.Context) {
	p, ok := s.content.Project(c.Param("id"))
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}
	var o Overlay
	o.Open(p)
	c.HTML(http.StatusOK, "overlay", overlayView{Overlay: &o, ImageFormats: s.imageFormats})
}

func (s *Server) handleCloseProject(c *gin.Context) {
	var o Overlay
	o.Close()
	c.HTML(http.StatusOK, "overlay", overlayView{Overlay: &o})
}
