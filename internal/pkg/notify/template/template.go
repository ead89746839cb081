// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package template

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Template is a named subject and body pair rendered with text/template.
type Template struct {
	ID      string
	Subject string
	Content string
}

// TemplateEngine handles template rendering
type TemplateEngine struct {
	funcMap template.FuncMap
}

func NewTemplateEngine() *TemplateEngine {
	titleCaser := cases.Title(language.English)
	return &TemplateEngine{
		funcMap: template.FuncMap{
			"upper": strings.ToUpper,
			"lower": strings.ToLower,
			"title": titleCaser.String,
			"trim":  strings.TrimSpace,
		},
	}
}

// Render renders a template with the given data
func (e *TemplateEngine) Render(tmplContent string, data any) (string, error) {
	tmpl, err := template.New("notification").Funcs(e.funcMap).Option("missingkey=error").Parse(tmplContent)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// RenderTemplate renders both subject and body of t.
func (e *TemplateEngine) RenderTemplate(t *Template, data any) (subject, body string, err error) {
	if subject, err = e.Render(t.Subject, data); err != nil {
		return "", "", err
	}
	if body, err = e.Render(t.Content, data); err != nil {
		return "", "", err
	}
	return subject, body, nil
}
