// Package tmpl renders user-supplied output templates for CLI commands.
package tmpl

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/dustin/go-humanize"
)

func orDefault(def, s string) string {
	if s != "" {
		return s
	}
	return def
}

var funcs = template.FuncMap{
	"join":    strings.Join,
	"upper":   strings.ToUpper,
	"default": orDefault,
	"comma":   humanize.Comma,
	"ago":     humanize.Time,
	"clock":   func(t time.Time) string { return t.Format(time.Kitchen) },
	"rfc3339": func(t time.Time) string { return t.Format(time.RFC3339) },
}

// Parse compiles a template once for repeated rendering. Unknown keys are an
// error at execution time.
func Parse(text string) (*template.Template, error) {
	t, err := template.New("").Funcs(funcs).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}
	return t, nil
}

// Execute runs a parsed template against data.
func Execute(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}
	return buf.String(), nil
}

// Render parses and executes tmpl with data.
//
// Available template functions:
//   - comma: group an int64 with commas (1234 -> 1,234)
//   - ago: relative time for a time.Time ("3 minutes ago")
//   - clock, rfc3339: time formatting
//   - join, upper, default: string helpers
func Render(tmpl string, data any) (string, error) {
	t, err := Parse(tmpl)
	if err != nil {
		return "", err
	}
	return Execute(t, data)
}
