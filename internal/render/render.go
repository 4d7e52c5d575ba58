// Package render turns notes into standalone HTML documents.
package render

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Paintersrp/nt/internal/constants"
	"github.com/Paintersrp/nt/internal/pathutil"
	"github.com/Paintersrp/nt/internal/tools"
)

//go:embed assets
var embeddedAssets embed.FS

const (
	stylesheetName = "style.css"
	linkFilterName = "links.lua"
)

// Renderer converts one note into a standalone document at outputPath.
type Renderer interface {
	Render(ctx context.Context, inputPath, outputPath string) error
}

// OutputPath is the rendered sibling of a note.
func OutputPath(notePath string) string {
	return strings.TrimSuffix(notePath, filepath.Ext(notePath)) + constants.RenderedExt
}

// Title derives the document title from the input filename.
func Title(inputPath string) string {
	return pathutil.Title(inputPath)
}

// Assets locates the stylesheet and link filter handed to the converter.
type Assets struct {
	Stylesheet string
	LinkFilter string
}

// EnsureAssets writes the embedded stylesheet and link filter into dir unless
// files with those names already exist there. Existing files are left alone so
// they can be customized.
func EnsureAssets(dir string) (Assets, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Assets{}, fmt.Errorf("failed to create assets directory: %w", err)
	}

	assets := Assets{
		Stylesheet: filepath.Join(dir, stylesheetName),
		LinkFilter: filepath.Join(dir, linkFilterName),
	}

	for _, name := range []string{stylesheetName, linkFilterName} {
		target := filepath.Join(dir, name)
		if _, err := os.Stat(target); err == nil {
			continue
		} else if !errors.Is(err, fs.ErrNotExist) {
			return Assets{}, err
		}

		data, err := embeddedAssets.ReadFile("assets/" + name)
		if err != nil {
			return Assets{}, err
		}
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return Assets{}, fmt.Errorf("failed to write %s: %w", name, err)
		}
	}

	return assets, nil
}

// Pandoc renders through the external pandoc converter.
type Pandoc struct {
	exec    tools.Executor
	command string
	assets  Assets
}

func NewPandoc(x tools.Executor, command string, assets Assets) *Pandoc {
	return &Pandoc{exec: x, command: command, assets: assets}
}

func (p *Pandoc) Render(ctx context.Context, inputPath, outputPath string) error {
	return p.exec.Run(ctx, tools.Command{
		Name: p.command,
		Args: p.args(inputPath, outputPath),
	})
}

func (p *Pandoc) args(inputPath, outputPath string) []string {
	return []string{
		inputPath,
		"--toc",
		"--standalone",
		"--css=" + p.assets.Stylesheet,
		"--lua-filter=" + p.assets.LinkFilter,
		"--metadata=title:" + Title(inputPath),
		"--output=" + outputPath,
	}
}
