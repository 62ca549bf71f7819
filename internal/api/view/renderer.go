// Package view renders the site's HTML. Templates are compiled in at build
// time; each page template defines a "content" block slotted into the shared
// layout.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cse-motors/dealership/internal/core/domain"
)

//go:embed templates
var templateFS embed.FS

// Page is the data context every template receives.
type Page struct {
	Title       string
	Nav         []domain.Classification
	Identity    domain.Identity
	Messages    []string
	Errors      []string
	FieldErrors map[string]string
	Content     any
}

// FieldError returns the message for a form field, or "".
func (p Page) FieldError(field string) string {
	return p.FieldErrors[field]
}

// Renderer implements echo.Renderer over the embedded templates.
type Renderer struct {
	pages map[string]*template.Template
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"price":   FormatPrice,
		"mileage": FormatMileage,
	}
}

// NewRenderer parses the layout and every page template. Page names mirror
// their path under templates/, without the .tmpl suffix (e.g.
// "account/login").
func NewRenderer() (*Renderer, error) {
	layout, err := template.New("layout").Funcs(funcMap()).ParseFS(templateFS, "templates/layout.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	pages := make(map[string]*template.Template)
	err = fs.WalkDir(templateFS, "templates", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".tmpl") || path == "templates/layout.tmpl" {
			return nil
		}

		clone, err := layout.Clone()
		if err != nil {
			return fmt.Errorf("clone layout: %w", err)
		}
		if _, err := clone.ParseFS(templateFS, path); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}

		name := strings.TrimSuffix(strings.TrimPrefix(path, "templates/"), ".tmpl")
		pages[name] = clone
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &Renderer{pages: pages}, nil
}

// Render satisfies echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("view: unknown template %q", name)
	}
	return tmpl.ExecuteTemplate(w, "layout", data)
}

// FormatPrice renders a dollar amount with thousands separators, e.g.
// "$24,500".
func FormatPrice(v float64) string {
	return "$" + groupDigits(strconv.FormatInt(int64(v+0.5), 10))
}

// FormatMileage renders a mileage figure with thousands separators.
func FormatMileage(v int) string {
	return groupDigits(strconv.Itoa(v))
}

func groupDigits(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
