package site

import (
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/pm-portfolio/internal/contact"
	"github.com/Zachkp/pm-portfolio/internal/content"
)

// sectionData is shared by every section template.
type sectionData struct {
	Profile      content.Profile
	Bio          template.HTML
	Skills       []content.SkillCategory
	Experience   []content.ExperienceEntry
	Projects     []content.Project
	Contact      *contact.View
	ImageFormats []string
	Nav          []sectionDef
	Year         int
}

func (s *Server) sectionData() sectionData {
	return sectionData{
		Profile:      s.content.Profile,
		Bio:          s.bio,
		Skills:       s.content.Skills,
		Experience:   s.content.Experience,
		Projects:     s.content.FeaturedProjects(),
		Contact:      &contact.View{},
		ImageFormats: s.imageFormats,
		Nav:          navSections(),
		Year:         s.now().Year(),
	}
}

func navSections() []sectionDef {
	var out []sectionDef
	for _, def := range pageSections {
		if def.InNav {
			out = append(out, def)
		}
	}
	return out
}

type pageView struct {
	Title    string
	Profile  content.Profile
	Theme    Theme
	Nav      []sectionDef
	Sections []sectionView
}

// handlePage renders the whole page. Lazy sections start pending unless
// ?full=1 asks for everything up front (used by the noscript link).
func (s *Server) handlePage(c *gin.Context) {
	full := c.Query("full") == "1"

	view := pageView{
		Title:   s.content.Profile.Name + " · " + s.content.Profile.Role,
		Profile: s.content.Profile,
		Theme:   ThemeFrom(c),
		Nav:     navSections(),
	}
	for _, def := range pageSections {
		state := Ready
		if def.Lazy && !full {
			state = Pending
		}
		sv, err := s.compose(def, state)
		if err != nil {
			log.Printf("page: %v", err)
			c.String(http.StatusInternalServerError, "Internal Server Error")
			return
		}
		view.Sections = append(view.Sections, sv)
	}
	c.HTML(http.StatusOK, "page", view)
}

// handleSection returns one section in its ready state, for the reveal
// trigger of a pending placeholder.
func (s *Server) handleSection(c *gin.Context) {
	def, ok := lookupSection(c.Param("name"))
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}
	sv, err := s.compose(def, Ready)
	if err != nil {
		log.Printf("section: %v", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.HTML(http.StatusOK, "section", sv)
}

func (s *Server) now() time.Time {
	if s.clock != nil {
		return s.clock()
	}
	return time.Now()
}
