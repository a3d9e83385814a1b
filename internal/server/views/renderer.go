// Package views renders the HTML pages from templates embedded in the binary.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"time"
)

//go:embed templates
var templateFS embed.FS

// Renderer turns a named view and its data into a document.
type Renderer interface {
	Render(name string, data map[string]any) ([]byte, error)
}

// TemplateRenderer keeps one parsed set per page, each combining the shared
// layout with the page body.
type TemplateRenderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"datetime": func(t time.Time) string {
		return t.Format("Mon Jan 2 2006, 3:04 PM")
	},
}

func NewTemplateRenderer() (*TemplateRenderer, error) {
	return newTemplateRenderer(templateFS)
}

func newTemplateRenderer(fsys fs.FS) (*TemplateRenderer, error) {
	layout, err := template.New("").Funcs(funcs).ParseFS(fsys, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("error parsing layout: %w", err)
	}

	r := &TemplateRenderer{pages: make(map[string]*template.Template)}

	err = fs.WalkDir(fsys, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Base(p) == "layout.html" || path.Ext(p) != ".html" {
			return nil
		}

		page, err := layout.Clone()
		if err != nil {
			return err
		}
		if _, err := page.ParseFS(fsys, p); err != nil {
			return fmt.Errorf("error parsing %s: %w", p, err)
		}

		name := strings.TrimSuffix(strings.TrimPrefix(p, "templates/"), ".html")
		r.pages[name] = page
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r, nil
}

// Render executes the page registered as name, e.g. "users/list".
func (r *TemplateRenderer) Render(name string, data map[string]any) ([]byte, error) {
	page, ok := r.pages[name]
	if !ok {
		return nil, fmt.Errorf("unknown view %q", name)
	}

	var buf bytes.Buffer
	if err := page.ExecuteTemplate(&buf, "layout", data); err != nil {
		return nil, fmt.Errorf("error rendering %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
