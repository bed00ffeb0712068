package site

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

const (
	themeCookie = "theme"
	themeKey    = "site.theme"
)

func parseTheme(s string) (Theme, bool) {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return Theme(s), true
	}
	return "", false
}

func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// themeMiddleware resolves the visitor's theme once per request.
func themeMiddleware(fallback Theme) gin.HandlerFunc {
	return func(c *gin.Context) {
		theme := fallback
		if v, err := c.Cookie(themeCookie); err == nil {
			if t, ok := parseTheme(v); ok {
				theme = t
			}
		}
		c.Set(themeKey, theme)
		c.Next()
	}
}

// ThemeFrom returns the theme resolved for this request.
func ThemeFrom(c *gin.Context) Theme {
	if t, ok := c.Get(themeKey); ok {
		return t.(Theme)
	}
	return ThemeLight
}

func setTheme(c *gin.Context, t Theme) {
	c.Set(themeKey, t)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(themeCookie, string(t), 365*24*3600, "/", "", false, true)
}

func (s *Server) handleToggleTheme(c *gin.Context) {
	setTheme(c, ThemeFrom(c).Toggle())
	if isHTMX(c) {
		c.Header("HX-Refresh", "true")
		c.Status(http.StatusNoContent)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func isHTMX(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}
