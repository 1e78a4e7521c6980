// Package render implements the HTML rendering service: an echo.Renderer
// over embedded html/template views plus the navigation provider. Every view
// receives a Data bag carrying at least a title, the nav model, and a
// nullable errors slot.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/csemotors/dealership/internal/core/domain"
)

//go:embed templates/*.html templates/*/*.html
var templatesFS embed.FS

// NavItem is a single entry in the site navigation bar.
type NavItem struct {
	Label string
	URL   string
}

// Data is the bag handed to every view.
type Data struct {
	Title    string
	Nav      []NavItem
	Errors   []string
	Notice   string
	Message  string
	LoggedIn bool
	Account  *domain.Profile
	Form     map[string]string
	Page     any
}

// Renderer satisfies echo.Renderer over the embedded template set. Views are
// looked up by their defined name (e.g. "account/login").
type Renderer struct {
	templates *template.Template
}

func New() (*Renderer, error) {
	t, err := template.ParseFS(templatesFS, "templates/*.html", "templates/*/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{templates: t}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data any, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
