package assets

import (
	"embed"
	"fmt"
	htmltemplate "html/template"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

const (
	PageDashboard = "dashboard.html.go.tmpl"
	PageLog       = "log.html.go.tmpl"

	layoutTemplate            = "layout.html.go.tmpl"
	dashboardMarkdownTemplate = "dashboard.md.go.tmpl"
)

//go:embed templates/*.go.tmpl
var fallbackTemplates embed.FS

// ParseDashboardMarkdownTemplate parses the Markdown dashboard template from
// templatePath, falling back to the embedded one
func ParseDashboardMarkdownTemplate(templatePath string) (*template.Template, error) {
	return parseTemplateWithFallback(templatePath, dashboardMarkdownTemplate)
}

func parseTemplateWithFallback(templatePath string, fallbackName string) (*template.Template, error) {
	funcMap := template.FuncMap{
		"join": strings.Join,
	}

	// First, try to read from the filesystem
	if content, ok := readOverride(templatePath); ok {
		tmpl, err := template.New(filepath.Base(templatePath)).
			Funcs(funcMap).
			Parse(content)
		if err == nil {
			return tmpl, nil
		}
		slog.Default().Warn("failed to parse a templatePath",
			slog.String("templatePath", templatePath),
			slog.Any("error", err),
		)
	}

	fallback, err := fallbackTemplates.ReadFile("templates/" + fallbackName)
	if err != nil {
		return nil, fmt.Errorf("fallbackTemplates.ReadFile(%s) > %w", fallbackName, err)
	}
	tmpl, err := template.New(fallbackName).
		Funcs(funcMap).
		Parse(string(fallback))
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded template: %w", err)
	}
	return tmpl, nil
}

// ParseHTMLPage parses the shared layout and the named page on top of it.
// The page is read from overridePath when that file exists and parses.
// Execute the result with ExecuteTemplate(w, "layout", data).
func ParseHTMLPage(page string, overridePath string) (*htmltemplate.Template, error) {
	layout, err := fallbackTemplates.ReadFile("templates/" + layoutTemplate)
	if err != nil {
		return nil, fmt.Errorf("fallbackTemplates.ReadFile(%s) > %w", layoutTemplate, err)
	}
	base, err := htmltemplate.New("base").Funcs(htmlFuncMap()).Parse(string(layout))
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded layout: %w", err)
	}

	if content, ok := readOverride(overridePath); ok {
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("base.Clone() > %w", err)
		}
		_, parseErr := clone.Parse(content)
		if parseErr == nil {
			return clone, nil
		}
		slog.Default().Warn("failed to parse a templatePath",
			slog.String("templatePath", overridePath),
			slog.Any("error", parseErr),
		)
	}

	fallback, err := fallbackTemplates.ReadFile("templates/" + page)
	if err != nil {
		return nil, fmt.Errorf("fallbackTemplates.ReadFile(%s) > %w", page, err)
	}
	if _, err := base.Parse(string(fallback)); err != nil {
		return nil, fmt.Errorf("failed to parse embedded template %s: %w", page, err)
	}
	return base, nil
}

func htmlFuncMap() htmltemplate.FuncMap {
	return htmltemplate.FuncMap{
		"join": strings.Join,
		"derefInt": func(p *int) int {
			if p == nil {
				return 0
			}
			return *p
		},
		"derefFloat": func(p *float64) float64 {
			if p == nil {
				return 0
			}
			return *p
		},
	}
}

func readOverride(templatePath string) (string, bool) {
	if templatePath == "" {
		return "", false
	}
	content, err := os.ReadFile(templatePath)
	if err != nil {
		return "", false
	}
	return string(content), true
}
