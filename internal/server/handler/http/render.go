// Package http provides the HTTP handlers and routing for the facts site.
package http

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/akulikov/facthub/internal/middleware"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer executes the embedded page templates. Every page gets the current
// year and, when the visitor is logged in, the username injected into its
// data map.
type Renderer struct {
	tmpl *template.Template
	log  *zap.Logger
}

// NewRenderer parses the embedded templates.
func NewRenderer(log *zap.Logger) (*Renderer, error) {
	tmpl, err := template.New("").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl, log: log}, nil
}

// Render writes the named page template with the given data. A nil data map
// is allowed.
func (rn *Renderer) Render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	data["CurrentYear"] = time.Now().Year()
	if s := middleware.SessionFromContext(r.Context()); s != nil {
		if user, ok := s.User(); ok {
			data["Username"] = user
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := rn.tmpl.ExecuteTemplate(w, name, data); err != nil {
		rn.log.Error("render template", zap.String("template", name), zap.Error(err))
	}
}
