package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/callmefred/thebestapp/pkg/session"
)

//go:embed templates
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// pageData is what every view receives.
type pageData struct {
	Flashes []session.Flash
	User    *viewUser
	Data    map[string]any
}

// viewUser is the minimal identity the layout needs.
type viewUser struct {
	ID       int64
	Username string
	Email    string
}

// renderer holds one parsed template set per page, each sharing the layout.
type renderer struct {
	pages map[string]*template.Template
}

func newRenderer() (*renderer, error) {
	entries, err := fs.ReadDir(templatesFS, "templates/pages")
	if err != nil {
		return nil, fmt.Errorf("failed to read templates: %w", err)
	}

	pages := make(map[string]*template.Template, len(entries))
	for _, entry := range entries {
		name := strings.TrimSuffix(entry.Name(), ".html")
		tmpl, err := template.ParseFS(templatesFS,
			"templates/layout.html",
			"templates/pages/"+entry.Name(),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", entry.Name(), err)
		}
		pages[name] = tmpl
	}

	return &renderer{pages: pages}, nil
}

func (r *renderer) render(w http.ResponseWriter, status int, page string, data pageData) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	if data.Data == nil {
		data.Data = map[string]any{}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	return tmpl.ExecuteTemplate(w, "layout", data)
}
