// Package session runs the interactive notes loop: search, pick, act, repeat.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/Paintersrp/nt/internal/constants"
	"github.com/Paintersrp/nt/internal/exitcode"
	"github.com/Paintersrp/nt/internal/fzf"
	"github.com/Paintersrp/nt/internal/note"
	"github.com/Paintersrp/nt/internal/prompt"
	"github.com/Paintersrp/nt/internal/render"
	"github.com/Paintersrp/nt/internal/services/journal"
	"github.com/Paintersrp/nt/internal/templater"
	"github.com/Paintersrp/nt/internal/tools"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrUnknownAction = errors.New("unknown command")
)

// State is everything carried from one round of the loop to the next.
type State struct {
	Filter   string
	Query    string
	Selected string
	Header   string
}

// NewState returns the state a session starts in.
func NewState(query string) State {
	return State{Filter: constants.MatchAll, Query: query}
}

type Searcher interface {
	Search(pattern string) ([]string, error)
}

// Launcher hands a file to an external program and waits for it.
type Launcher interface {
	Open(ctx context.Context, path string) error
}

type Journal interface {
	Today() time.Time
	Open(ctx context.Context, day time.Time) (journal.Entry, error)
}

// Session wires the collaborators of the loop. Every field except Logger
// and Clipboard is required.
type Session struct {
	Root      string
	AttachDir string
	Shell     string
	Keys      map[string]string

	Search    Searcher
	Picker    fzf.Picker
	Prompt    prompt.Prompter
	Editor    Launcher
	Viewer    Launcher
	Renderer  render.Renderer
	Templater *templater.Templater
	Journal   Journal
	Exec      tools.Executor
	Clipboard func(text string) error

	Out    io.Writer
	Logger *slog.Logger
	Now    func() time.Time

	State State
}

// Run loops until the user exits or an action fails.
func (s *Session) Run(ctx context.Context) error {
	for {
		done, err := s.Step(ctx)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// Step performs a single search, pick and transition. It reports true once
// the user asked to leave.
func (s *Session) Step(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return true, err
	}

	candidates, err := s.Search.Search(s.State.Filter)
	if err != nil {
		return true, err
	}

	sel, err := s.Picker.Pick(ctx, candidates, s.State.Query, s.State.Header)
	if err != nil {
		return true, err
	}
	s.State.Selected = sel.Path

	s.log().Debug("picked",
		slog.String("action", string(sel.Action)),
		slog.String("path", sel.Path),
		slog.String("key", sel.Key),
	)

	switch sel.Action {
	case fzf.Exit:
		return true, nil
	case fzf.Edit:
		return false, s.edit(ctx)
	case fzf.Render:
		return false, s.render(ctx)
	case fzf.Create:
		return false, s.create(ctx)
	case fzf.Filter:
		return false, s.filter()
	case fzf.Shell:
		return false, s.shell(ctx)
	case fzf.Journal:
		return false, s.journal(ctx)
	case fzf.Attach:
		return false, s.attach(ctx)
	case fzf.Yank:
		return false, s.yank()
	case fzf.Help:
		return false, s.help()
	default:
		key := sel.Key
		if key == "" {
			key = string(sel.Action)
		}
		return true, exitcode.New(
			exitcode.UnknownAction,
			fmt.Errorf("%w: %q", ErrUnknownAction, key),
		)
	}
}

// selected resolves the highlighted note, failing when there is none or it
// vanished from disk.
func (s *Session) selected() (note.Note, error) {
	if s.State.Selected == "" {
		return note.Note{}, exitcode.New(
			exitcode.NoteNotFound,
			fmt.Errorf("%w: no note selected", ErrNotFound),
		)
	}

	n := note.New(s.Root, s.State.Selected)
	ok, err := n.Exists()
	if err != nil {
		return note.Note{}, err
	}
	if !ok {
		return note.Note{}, exitcode.New(
			exitcode.NoteNotFound,
			fmt.Errorf("%w: %s", ErrNotFound, s.State.Selected),
		)
	}
	return n, nil
}

func (s *Session) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Session) printf(format string, args ...interface{}) {
	if s.Out != nil {
		fmt.Fprintf(s.Out, format, args...)
	}
}

func (s *Session) log() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
