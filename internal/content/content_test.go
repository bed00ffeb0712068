package content

import (
	"errors"
	"strings"
	"testing"
)

var testDomains = []string{"images.unsplash.com"}

func TestDefaultContentLoads(t *testing.T) {
	c, err := Default(testDomains)
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if c.Profile.Name == "" {
		t.Fatal("profile name is empty")
	}
	if len(c.Skills) == 0 || len(c.Experience) == 0 || len(c.Projects) == 0 {
		t.Fatalf("tables not populated: skills=%d experience=%d projects=%d",
			len(c.Skills), len(c.Experience), len(c.Projects))
	}
}

func TestFeaturedProjectsKeepsOrder(t *testing.T) {
	c := &Content{Projects: []Project{
		{ID: "a", Featured: true},
		{ID: "b"},
		{ID: "c", Featured: true},
		{ID: "d", Featured: true},
	}}

	got := c.FeaturedProjects()
	var ids []string
	for _, p := range got {
		ids = append(ids, p.ID)
	}
	if strings.Join(ids, ",") != "a,c,d" {
		t.Fatalf("featured = %v, want [a c d]", ids)
	}
}

func TestProjectLookup(t *testing.T) {
	c := &Content{Projects: []Project{{ID: "a", Title: "A"}, {ID: "b", Title: "B"}}}

	p, ok := c.Project("b")
	if !ok || p.Title != "B" {
		t.Fatalf("Project(b) = %v, %v", p, ok)
	}
	if _, ok := c.Project("missing"); ok {
		t.Fatal("Project(missing) found a record")
	}
}

func TestParseRejectsInvalidContent(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{
			name: "duplicate project id",
			doc: `
projects:
  - id: x
    title: One
  - id: x
    title: Two
`,
			want: ErrDuplicateID,
		},
		{
			name: "duplicate experience id",
			doc: `
experience:
  - id: acme
    company: Acme
  - id: acme
    company: Acme again
`,
			want: ErrDuplicateID,
		},
		{
			name: "avatar off allow-list",
			doc: `
profile:
  name: Someone
  avatar: https://cdn.example.com/me.png
`,
			want: ErrImageDomain,
		},
		{
			name: "project image off allow-list",
			doc: `
projects:
  - id: x
    title: One
    image: https://cdn.example.com/shot.png
`,
			want: ErrImageDomain,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc), testDomains)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Parse error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("projects:\n  - id: a\n    titel: typo\n"), testDomains)
	if err == nil {
		t.Fatal("Parse accepted an unknown field")
	}
}

func TestParseAllowsRelativeAvatar(t *testing.T) {
	c, err := Load(strings.NewReader("profile:\n  name: Me\n  avatar: /static/me.webp\n"), testDomains)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Profile.Avatar != "/static/me.webp" {
		t.Fatalf("avatar = %q", c.Profile.Avatar)
	}
}

func TestDefaultContentContactDetails(t *testing.T) {
	c, err := Default(testDomains)
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if c.Profile.Resume == "" || c.Profile.Phone == "" {
		t.Fatalf("resume = %q phone = %q", c.Profile.Resume, c.Profile.Phone)
	}
	var withImage int
	for _, p := range c.Projects {
		if p.Image != "" {
			withImage++
		}
	}
	if withImage == 0 {
		t.Fatal("no project carries an image")
	}
}

func TestPhoneHref(t *testing.T) {
	tests := []struct {
		phone string
		want  string
	}{
		{"+1 (555) 123-4567", "tel:+15551234567"},
		{"555.123.4567", "tel:5551234567"},
		{"1+2", "tel:12"},
	}
	for _, tt := range tests {
		if got := (Profile{Phone: tt.phone}).PhoneHref(); got != tt.want {
			t.Errorf("PhoneHref(%q) = %q, want %q", tt.phone, got, tt.want)
		}
	}
}
