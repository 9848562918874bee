package middleware

import (
	"context"
	"net/http"
)

const themeKey contextKey = "theme"

var validThemes = map[string]bool{
	"light": true,
	"dark":  true,
}

// ThemeMiddleware injects the user's theme preference into the request context
func ThemeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Get theme from cookie, default to "light"
		theme := "light"
		if cookie, err := r.Cookie("theme_preference"); err == nil && validThemes[cookie.Value] {
			theme = cookie.Value
		}

		ctx := context.WithValue(r.Context(), themeKey, theme)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ThemeFromContext returns the theme chosen by ThemeMiddleware
func ThemeFromContext(ctx context.Context) string {
	if theme, ok := ctx.Value(themeKey).(string); ok {
		return theme
	}
	return "light"
}
