// Package templater renders the initial content of new notes and journal entries.
package templater

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"
)

//go:embed templates
var embeddedTemplates embed.FS

const (
	Note    = "note"
	Journal = "journal"
)

type SingleTemplate struct {
	FilePath string
	Content  string
}

type TemplateMap map[string]SingleTemplate

// Templater manages a collection of templates.
type Templater struct {
	templates TemplateMap
}

// TemplateData is passed to templates during rendering.
type TemplateData struct {
	Title string
	Date  time.Time
}

// NewTemplater loads templates from userDir, when it exists, and fills the
// gaps with the embedded defaults.
func NewTemplater(userDir string) (*Templater, error) {
	tmplMap := make(TemplateMap)

	if userDir != "" {
		if _, err := os.Stat(userDir); err == nil {
			if err := tmplMap.loadTemplates(userDir); err != nil {
				return nil, err
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	if err := tmplMap.loadEmbeddedTemplates(embeddedTemplates); err != nil {
		return nil, err
	}

	return &Templater{templates: tmplMap}, nil
}

// Execute finds the template by name and renders it with data.
func (t *Templater) Execute(templateName string, data TemplateData) (string, error) {
	tmplData, ok := t.templates[templateName]
	if !ok {
		return "", fmt.Errorf("template %q not found", templateName)
	}

	tmpl, err := template.New(templateName).Parse(tmplData.Content)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", tmplData.FilePath, err)
	}

	var rendered bytes.Buffer
	if err := tmpl.Execute(&rendered, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", templateName, err)
	}

	return rendered.String(), nil
}

func (m TemplateMap) loadEmbeddedTemplates(embeddedFS embed.FS) error {
	return fs.WalkDir(
		embeddedFS,
		"templates",
		func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}

			name := strings.TrimSuffix(d.Name(), filepath.Ext(d.Name()))
			if _, exists := m[name]; exists {
				return nil
			}

			data, err := fs.ReadFile(embeddedFS, path)
			if err != nil {
				return err
			}
			m[name] = SingleTemplate{FilePath: path, Content: string(data)}
			return nil
		},
	)
}

func (m TemplateMap) loadTemplates(dirPath string) error {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".tmpl" {
			continue
		}

		path := filepath.Join(dirPath, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		name := strings.TrimSuffix(entry.Name(), ".tmpl")
		m[name] = SingleTemplate{FilePath: path, Content: string(data)}
	}

	return nil
}
