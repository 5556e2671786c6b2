package render

import (
	"fmt"
	"html/template"
	"io"
	"path/filepath"

	"github.com/labstack/echo/v4"
)

// Renderer implements echo.Renderer over html/template. Templates are named
// after their files, so handlers render "index.html", "post.html" and so on.
type Renderer struct {
	templates *template.Template
}

// New parses every template under dir.
func New(dir string) (*Renderer, error) {
	tpls, err := template.ParseGlob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{templates: tpls}, nil
}

// Render executes the named template.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
