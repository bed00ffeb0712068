// Package content holds the static portfolio data: the profile, skill
// categories, work experience and projects. Content is decoded once at
// start and never mutated afterwards.
package content

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrDuplicateID is returned when two records of a table share an id.
	ErrDuplicateID = errors.New("duplicate id")
	// ErrImageDomain is returned when an image URL is not on the allow-list.
	ErrImageDomain = errors.New("image domain not allowed")
)

//go:embed content.yaml
var builtin []byte

type Link struct {
	Label string `yaml:"label"`
	Href  string `yaml:"href"`
}

type Profile struct {
	Name     string `yaml:"name"`
	Role     string `yaml:"role"`
	Tagline  string `yaml:"tagline"`
	Bio      string `yaml:"bio"` // markdown
	Location string `yaml:"location"`
	Email    string `yaml:"email"`
	Phone    string `yaml:"phone"`
	Avatar   string `yaml:"avatar"`
	Resume   string `yaml:"resume"` // downloadable CV, absolute or site-relative URL
	Links    []Link `yaml:"links"`
}

type SkillCategory struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Skills      []string `yaml:"skills"`
	Icon        string   `yaml:"icon"`
}

type ExperienceEntry struct {
	ID           string   `yaml:"id"`
	Company      string   `yaml:"company"`
	Position     string   `yaml:"position"`
	Period       string   `yaml:"period"`
	Location     string   `yaml:"location"`
	Description  string   `yaml:"description"`
	Achievements []string `yaml:"achievements"`
	Technologies []string `yaml:"technologies"`
}

// Metric is a single headline number shown on a project card.
type Metric struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
}

type Project struct {
	ID           string   `yaml:"id"`
	Title        string   `yaml:"title"`
	Description  string   `yaml:"description"`
	Image        string   `yaml:"image"`
	Problem      string   `yaml:"problem"`
	Solution     string   `yaml:"solution"`
	Results      []string `yaml:"results"`
	Technologies []string `yaml:"technologies"`
	Metrics      []Metric `yaml:"metrics"`
	Featured     bool     `yaml:"featured"`
}

// Content is the full set of tables rendered by the site.
type Content struct {
	Profile    Profile           `yaml:"profile"`
	Skills     []SkillCategory   `yaml:"skills"`
	Experience []ExperienceEntry `yaml:"experience"`
	Projects   []Project         `yaml:"projects"`
}

// Default decodes the content compiled into the binary.
func Default(imageDomains []string) (*Content, error) {
	return Parse(builtin, imageDomains)
}

// LoadFile decodes a YAML content document from disk.
func LoadFile(path string, imageDomains []string) (*Content, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open content: %w", err)
	}
	defer f.Close()
	return Load(f, imageDomains)
}

func Load(r io.Reader, imageDomains []string) (*Content, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}
	return Parse(data, imageDomains)
}

// Parse decodes and validates a YAML content document. Unknown fields
// are rejected so typos in the document surface at start.
func Parse(data []byte, imageDomains []string) (*Content, error) {
	var c Content
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}
	if err := c.Validate(imageDomains); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate enforces unique ids per table and the image allow-list.
func (c *Content) Validate(imageDomains []string) error {
	seen := make(map[string]bool, len(c.Experience))
	for _, e := range c.Experience {
		if e.ID == "" {
			return fmt.Errorf("experience %q: missing id", e.Company)
		}
		if seen[e.ID] {
			return fmt.Errorf("experience %q: %w", e.ID, ErrDuplicateID)
		}
		seen[e.ID] = true
	}

	clear(seen)
	for _, p := range c.Projects {
		if p.ID == "" {
			return fmt.Errorf("project %q: missing id", p.Title)
		}
		if seen[p.ID] {
			return fmt.Errorf("project %q: %w", p.ID, ErrDuplicateID)
		}
		seen[p.ID] = true
		if p.Image != "" {
			if err := checkImage(p.Image, imageDomains); err != nil {
				return fmt.Errorf("project %q image: %w", p.ID, err)
			}
		}
	}

	if c.Profile.Avatar != "" {
		if err := checkImage(c.Profile.Avatar, imageDomains); err != nil {
			return fmt.Errorf("profile avatar: %w", err)
		}
	}
	return nil
}

// PhoneHref turns a display number such as "+1 (555) 123-4567" into a
// tel: link.
func (p Profile) PhoneHref() string {
	var b strings.Builder
	b.WriteString("tel:")
	for i, r := range p.Phone {
		if (r >= '0' && r <= '9') || (r == '+' && i == 0) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func checkImage(raw string, domains []string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("parse %q: %w", raw, err)
	}
	// Relative URLs are served by this site.
	if u.Host == "" {
		return nil
	}
	if !slices.Contains(domains, u.Hostname()) {
		return fmt.Errorf("%s: %w", u.Hostname(), ErrImageDomain)
	}
	return nil
}

// FeaturedProjects returns the projects flagged for the summary grid in
// declared order.
func (c *Content) FeaturedProjects() []Project {
	var out []Project
	for _, p := range c.Projects {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out
}

// Project looks up a project by id. The returned pointer refers into the
// shared table and must not be modified.
func (c *Content) Project(id string) (*Project, bool) {
	for i := range c.Projects {
		if c.Projects[i].ID == id {
			return &c.Projects[i], true
		}
	}
	return nil, false
}
