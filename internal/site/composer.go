package site

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

// RenderState tells whether a section's content is in the page yet.
type RenderState int

const (
	// Pending sections render as a hidden placeholder that loads its
	// content the first time it scrolls into view.
	Pending RenderState = iota
	// Ready sections carry their content and no reveal trigger, so once
	// swapped in they stay visible.
	Ready
)

func (s RenderState) String() string {
	if s == Ready {
		return "ready"
	}
	return "pending"
}

const (
	revealDuration = 600 * time.Millisecond
	revealOffset   = 24 // px
)

type sectionDef struct {
	Name  string
	Title string
	// Lazy sections start Pending on a full page load.
	Lazy  bool
	InNav bool
}

// pageSections is the page in display order.
var pageSections = []sectionDef{
	{Name: "hero", Title: "Home", InNav: true},
	{Name: "about", Title: "About", Lazy: true, InNav: true},
	{Name: "projects", Title: "Projects", Lazy: true, InNav: true},
	{Name: "experience", Title: "Experience", Lazy: true, InNav: true},
	{Name: "contact", Title: "Contact", Lazy: true, InNav: true},
	{Name: "footer", Title: "Footer"},
}

func lookupSection(name string) (sectionDef, bool) {
	for _, s := range pageSections {
		if s.Name == name {
			return s, true
		}
	}
	return sectionDef{}, false
}

// sectionView is the wrapper rendered by the "section" template.
type sectionView struct {
	Name  string
	Title string
	State RenderState
	Body  template.HTML
}

func (v sectionView) Ready() bool { return v.State == Ready }

func (v sectionView) Duration() string {
	return fmt.Sprintf("%dms", revealDuration.Milliseconds())
}

func (v sectionView) Offset() string {
	return fmt.Sprintf("%dpx", revealOffset)
}

// compose wraps a section. Pending sections are not rendered at all
// beyond their placeholder.
func (s *Server) compose(def sectionDef, state RenderState) (sectionView, error) {
	view := sectionView{Name: def.Name, Title: def.Title, State: state}
	if state == Pending {
		return view, nil
	}
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, "section-"+def.Name, s.sectionData()); err != nil {
		return sectionView{}, fmt.Errorf("render section %s: %w", def.Name, err)
	}
	view.Body = template.HTML(buf.String())
	return view, nil
}
