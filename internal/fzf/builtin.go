package fzf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/erikgeiser/promptkit"
	"github.com/erikgeiser/promptkit/selection"
	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/muesli/termenv"
)

// Builtin is the in-process picker. Since go-fuzzyfinder has no notion of
// accept keys, the action is chosen in a second prompt.
type Builtin struct {
	root   string
	choose func(path string) (Action, error)
}

func NewBuiltin(root string) *Builtin {
	return &Builtin{root: root, choose: chooseAction}
}

func (b *Builtin) Pick(
	_ context.Context,
	candidates []string,
	query, header string,
) (Selection, error) {
	var path string
	if len(candidates) > 0 {
		idx, err := b.find(candidates, query, header)
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return Selection{Action: Exit}, nil
		}
		if err != nil {
			return Selection{}, fmt.Errorf("error selecting note: %w", err)
		}
		path = candidates[idx]
	}

	action, err := b.choose(path)
	if errors.Is(err, promptkit.ErrAborted) {
		return Selection{Action: Exit}, nil
	}
	if err != nil {
		return Selection{}, err
	}

	return Selection{Action: action, Path: path, Key: string(action)}, nil
}

func (b *Builtin) MultiSelect(
	_ context.Context,
	dir string,
	files []string,
) ([]string, error) {
	if len(files) == 0 {
		return nil, nil
	}

	idxs, err := fuzzyfinder.FindMulti(
		files,
		func(i int) string { return files[i] },
		fuzzyfinder.WithHeader("attach from "+dir),
	)
	if errors.Is(err, fuzzyfinder.ErrAbort) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error selecting files: %w", err)
	}

	selected := make([]string, 0, len(idxs))
	for _, i := range idxs {
		selected = append(selected, files[i])
	}
	return selected, nil
}

func (b *Builtin) find(candidates []string, query, header string) (int, error) {
	options := []fuzzyfinder.Option{
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			return b.preview(candidates[i], w)
		}),
	}
	if query != "" {
		options = append(options, fuzzyfinder.WithQuery(query))
	}
	if header != "" {
		options = append(options, fuzzyfinder.WithHeader(header))
	}

	labels := make([]string, len(candidates))
	for i, rel := range candidates {
		labels[i] = b.label(rel)
	}

	return fuzzyfinder.Find(candidates, func(i int) string {
		return labels[i]
	}, options...)
}

// label shows the front matter title and tags next to the path when a note
// carries them.
func (b *Builtin) label(rel string) string {
	content, err := os.ReadFile(filepath.Join(b.root, filepath.FromSlash(rel)))
	if err != nil {
		return rel
	}

	fm := ParseFrontMatter(content)
	var extra []string
	if fm.Title != "" {
		extra = append(extra, fm.Title)
	}
	if len(fm.Tags) > 0 {
		extra = append(extra, "["+strings.Join(fm.Tags, ", ")+"]")
	}
	if len(extra) == 0 {
		return rel
	}
	return rel + "  " + strings.Join(extra, " ")
}

func (b *Builtin) preview(rel string, width int) string {
	content, err := os.ReadFile(filepath.Join(b.root, filepath.FromSlash(rel)))
	if err != nil {
		return "Error reading file"
	}

	wrap := width - 4
	if wrap < 20 {
		wrap = 20
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dracula"),
		glamour.WithWordWrap(wrap),
		glamour.WithColorProfile(termenv.ANSI256),
	)
	if err != nil {
		return string(content)
	}

	markdown, err := r.Render(string(content))
	if err != nil {
		return "Error rendering markdown"
	}
	return markdown
}

func chooseAction(path string) (Action, error) {
	prompt := "Action"
	if path != "" {
		prompt = "Action for " + path
	}

	sel := selection.New(prompt, Actions)
	sel.Filter = nil

	return sel.RunPrompt()
}
