package dashboard

import (
	"fmt"
	htmltemplate "html/template"
	"io"
	"text/template"

	"github.com/at-ishikawa/workoutlog/internal/assets"
)

// HTMLRenderer writes the dashboard page inside the shared layout
type HTMLRenderer struct {
	tmpl *htmltemplate.Template
}

func NewHTMLRenderer(templatePath string) (*HTMLRenderer, error) {
	tmpl, err := assets.ParseHTMLPage(assets.PageDashboard, templatePath)
	if err != nil {
		return nil, fmt.Errorf("assets.ParseHTMLPage() > %w", err)
	}
	return &HTMLRenderer{tmpl: tmpl}, nil
}

func (renderer *HTMLRenderer) Render(w io.Writer, view View) error {
	if err := renderer.tmpl.ExecuteTemplate(w, "layout", view); err != nil {
		return fmt.Errorf("tmpl.ExecuteTemplate() > %w", err)
	}
	return nil
}

// MarkdownRenderer writes the dashboard as a Markdown report
type MarkdownRenderer struct {
	tmpl *template.Template
}

func NewMarkdownRenderer(templatePath string) (*MarkdownRenderer, error) {
	tmpl, err := assets.ParseDashboardMarkdownTemplate(templatePath)
	if err != nil {
		return nil, fmt.Errorf("assets.ParseDashboardMarkdownTemplate() > %w", err)
	}
	return &MarkdownRenderer{tmpl: tmpl}, nil
}

func (renderer *MarkdownRenderer) Render(w io.Writer, view View) error {
	if err := renderer.tmpl.Execute(w, view); err != nil {
		return fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return nil
}
