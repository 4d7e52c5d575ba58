// Package fzf picks notes and files. The default backend drives the fzf
// executable; the builtin backend uses go-fuzzyfinder in process.
package fzf

import (
	"context"
	"strings"

	"github.com/Paintersrp/nt/internal/config"
)

// Action is what the user asked the session to do with the selection.
type Action string

const (
	Edit    Action = config.ActionEdit
	Render  Action = config.ActionRender
	Create  Action = config.ActionCreate
	Filter  Action = config.ActionFilter
	Shell   Action = config.ActionShell
	Journal Action = config.ActionJournal
	Attach  Action = config.ActionAttach
	Yank    Action = config.ActionYank
	Help    Action = config.ActionHelp
	Exit    Action = config.ActionExit
	Unknown Action = ""
)

// Actions in the order they are offered to the user.
var Actions = []Action{Edit, Render, Create, Filter, Shell, Journal, Attach, Yank, Help, Exit}

// Selection is the outcome of a single pick. Path is relative to the notes
// root and empty when nothing was highlighted.
type Selection struct {
	Action Action
	Path   string
	Key    string
}

// Picker is the selection collaborator of the interactive session.
type Picker interface {
	Pick(ctx context.Context, candidates []string, query, header string) (Selection, error)
	MultiSelect(ctx context.Context, dir string, files []string) ([]string, error)
}

// keyActions inverts the configured bindings.
func keyActions(keys map[string]string) map[string]Action {
	m := make(map[string]Action, len(keys))
	for action, key := range keys {
		m[key] = Action(action)
	}
	return m
}

// parseOutput reads fzf's --expect output: the pressed key on the first line
// (empty for the default accept key) followed by the selected line, if any.
func parseOutput(out []byte, keys map[string]Action) Selection {
	text := strings.TrimRight(string(out), "\n")
	if text == "" {
		return Selection{Action: Edit}
	}

	lines := strings.Split(text, "\n")
	key := strings.TrimSpace(lines[0])

	var path string
	if len(lines) > 1 {
		path = strings.TrimSpace(lines[1])
	}

	sel := Selection{Path: path, Key: key}
	switch {
	case key == "":
		sel.Action = Edit
	default:
		action, ok := keys[key]
		if !ok {
			action = Unknown
		}
		sel.Action = action
	}
	return sel
}

func splitLines(out []byte) []string {
	var lines []string
	for _, line := range strings.Split(string(out), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
