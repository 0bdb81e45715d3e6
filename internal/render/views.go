package render

import (
	"bytes"
	"html/template"
	"io"

	"github.com/pkg/errors"

	"solar-wind-forecast/web"
)

const (
	pageTemplate   = "index.html"
	tablesTemplate = "tables"
)

// PageData is everything the full page needs.
type PageData struct {
	Title   string
	Theme   string
	Input   string
	Label   string
	Loading bool
	Error   string
	Chart   *ChartSpec
	Tables  []Table
}

// Views renders the embedded page and table templates.
type Views struct {
	templates *template.Template
}

func NewViews() (*Views, error) {
	t, err := template.ParseFS(web.Templates, "templates/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "parse templates")
	}
	return &Views{templates: t}, nil
}

func (v *Views) Page(w io.Writer, data PageData) error {
	return errors.Wrap(v.templates.ExecuteTemplate(w, pageTemplate, data), "render page")
}

func (v *Views) Tables(w io.Writer, tables []Table) error {
	return errors.Wrap(v.templates.ExecuteTemplate(w, tablesTemplate, tables), "render tables")
}

// TablesHTML renders the tables fragment to a string.
func (v *Views) TablesHTML(tables []Table) (string, error) {
	var buf bytes.Buffer
	if err := v.Tables(&buf, tables); err != nil {
		return "", err
	}
	return buf.String(), nil
}
