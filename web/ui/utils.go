package ui

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"
)

//go:embed templates
var templateFS embed.FS

var funcMap = template.FuncMap{
	"split": func(s string, sep string) []string {
		return strings.Split(s, sep)
	},
	"mod": func(a, b int) int {
		return a % b
	},
	// seq returns 0..n-1 for placeholder loops
	"seq": func(n int) []int {
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out
	},
	"initial": func(s string) string {
		s = strings.TrimSpace(s)
		if s == "" {
			return "?"
		}
		return strings.ToUpper(string([]rune(s)[0]))
	},
	"contains": func(list []string, item string) bool {
		for _, v := range list {
			if v == item {
				return true
			}
		}
		return false
	},
}

// renderer holds one template set per page, each built from the base
// layout plus the shared partials.
type renderer struct {
	pages    map[string]*template.Template
	partials *template.Template
}

func newRenderer() (*renderer, error) {
	partials, err := template.New("partials").Funcs(funcMap).ParseFS(templateFS, "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse partials: %w", err)
	}

	pageFiles, err := fs.Glob(templateFS, "templates/pages/*.html")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template, len(pageFiles))
	for _, file := range pageFiles {
		t, err := partials.Clone()
		if err != nil {
			return nil, err
		}
		if t, err = t.ParseFS(templateFS, "templates/layouts/base.html", file); err != nil {
			return nil, fmt.Errorf("failed to parse page %s: %w", file, err)
		}
		pages[path.Base(file)] = t
	}

	return &renderer{pages: pages, partials: partials}, nil
}

// RenderTemplate renders a page inside the base layout
func (rd *renderer) RenderTemplate(w http.ResponseWriter, page string, data map[string]interface{}, statusCode ...int) error {
	t, ok := rd.pages[page]
	if !ok {
		err := fmt.Errorf("unknown page %q", page)
		http.Error(w, "Error loading template: "+err.Error(), http.StatusInternalServerError)
		return err
	}
	return execute(w, t, "base", data, statusCode...)
}

// RenderPartial renders one named fragment (for HTMX responses)
func (rd *renderer) RenderPartial(w http.ResponseWriter, name string, data map[string]interface{}, statusCode ...int) error {
	return execute(w, rd.partials, name, data, statusCode...)
}

func execute(w http.ResponseWriter, t *template.Template, name string, data map[string]interface{}, statusCode ...int) error {
	// render to a buffer so a template error does not leave half a page
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		http.Error(w, "Error rendering template: "+err.Error(), http.StatusInternalServerError)
		return err
	}

	code := http.StatusOK
	if len(statusCode) > 0 {
		code = statusCode[0]
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	_, err := buf.WriteTo(w)
	return err
}

const flashCookie = "flash_message"

// setFlash stores a one-shot message shown on the next page load
func setFlash(w http.ResponseWriter, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(message),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash reads and clears the flash message
func popFlash(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(flashCookie)
	if err != nil {
		return ""
	}
	http.SetCookie(w, &http.Cookie{
		Name:   flashCookie,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
	message, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return ""
	}
	return message
}
