// Package render turns recipes into HTML. Every recipe field goes through
// html/template, so titles, ingredients and the like are always escaped.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"

	"github.com/pageza/recipebox/frontend/internal/types"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// FormValues are the values shown in the creation form
type FormValues struct {
	Title        string
	Ingredients  string
	Instructions string
	Category     string
}

// EditForm is the inline edit form for one recipe
type EditForm struct {
	ID           types.RecipeID
	Title        string
	Ingredients  string
	Instructions string
}

// PageData is everything the full page template needs
type PageData struct {
	Query      string
	Categories []string
	Alerts     []string
	Form       FormValues
	Editing    *EditForm
	Cards      template.HTML
}

// funcs are available to every template
var funcs = template.FuncMap{
	// pathEscape makes a value safe as a single URL path segment
	"pathEscape": func(v interface{}) string {
		return url.PathEscape(fmt.Sprint(v))
	},
}

// Renderer executes the embedded templates
type Renderer struct {
	tmpl *template.Template
}

// New parses the embedded templates
func New() (*Renderer, error) {
	tmpl, err := template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Cards renders one card per recipe, in order, into a single fragment
func (r *Renderer) Cards(recipes []types.Recipe) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "cards", recipes); err != nil {
		return "", fmt.Errorf("failed to render recipe cards: %w", err)
	}
	// Output of html/template is already escaped.
	return template.HTML(buf.String()), nil
}

// Page renders the full page. The page is buffered so a template error
// never leaves a half-written response.
func (r *Renderer) Page(w io.Writer, data PageData) error {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "page", data); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}
