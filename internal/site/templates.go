package site

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/Zachkp/pm-portfolio/internal/content"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// staggerStep is the entrance delay added per list position.
const staggerStep = 100 * time.Millisecond

func staticFiles() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

func parseTemplates(imageDomains []string) (*template.Template, error) {
	funcs := template.FuncMap{
		"delay": func(i int) string {
			return fmt.Sprintf("%dms", (time.Duration(i) * staggerStep).Milliseconds())
		},
		"imageVariant": func(src, mime string) string {
			return imageVariant(src, mime, imageDomains)
		},
		"ago": func(t time.Time) string {
			return humanize.Time(t)
		},
		"comma": func(n int64) string {
			return humanize.Comma(n)
		},
		"fieldError": func(errs map[string]string, field string) string {
			return errs[field]
		},
		"dict": dict,
		// html/template only trusts http(s) and mailto hrefs.
		"tel": func(p content.Profile) template.URL {
			return template.URL(p.PhoneHref())
		},
	}
	t, err := template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return t, nil
}

// dict builds a map from alternating keys and values so partials can
// take more than one argument.
func dict(kv ...any) (map[string]any, error) {
	if len(kv)%2 != 0 {
		return nil, fmt.Errorf("dict: odd number of arguments")
	}
	m := make(map[string]any, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", kv[i])
		}
		m[key] = kv[i+1]
	}
	return m, nil
}

// imageVariant asks an allow-listed image host for a specific encoding.
// Relative and unknown sources are returned unchanged.
func imageVariant(src, mime string, domains []string) string {
	u, err := url.Parse(src)
	if err != nil || u.Host == "" || !slices.Contains(domains, u.Hostname()) {
		return src
	}
	q := u.Query()
	q.Set("fm", strings.TrimPrefix(mime, "image/"))
	u.RawQuery = q.Encode()
	return u.String()
}

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.Typographer, extension.Linkify),
)

// renderMarkdown converts trusted content markdown to HTML. Raw HTML in
// the source is dropped by goldmark's default renderer.
func renderMarkdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}
