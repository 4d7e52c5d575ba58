package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mitchellh/go-homedir"

	"github.com/Paintersrp/nt/internal/attach"
	"github.com/Paintersrp/nt/internal/constants"
	"github.com/Paintersrp/nt/internal/handler"
	"github.com/Paintersrp/nt/internal/note"
	"github.com/Paintersrp/nt/internal/pathutil"
	"github.com/Paintersrp/nt/internal/prompt"
	"github.com/Paintersrp/nt/internal/render"
	"github.com/Paintersrp/nt/internal/templater"
	"github.com/Paintersrp/nt/internal/tools"
)

func (s *Session) edit(ctx context.Context) error {
	n, err := s.selected()
	if err != nil {
		return err
	}

	if err := s.Editor.Open(ctx, n.Path()); err != nil {
		return err
	}
	s.State.Query = n.Rel
	return nil
}

func (s *Session) render(ctx context.Context) error {
	n, err := s.selected()
	if err != nil {
		return err
	}

	out := render.OutputPath(n.Path())
	if err := s.Renderer.Render(ctx, n.Path(), out); err != nil {
		return fmt.Errorf("failed to render %s: %w", n.Rel, err)
	}
	return s.Viewer.Open(ctx, out)
}

func (s *Session) create(ctx context.Context) error {
	dir := pathutil.RelativeDir(s.State.Selected)

	for {
		title, err := s.Prompt.Input("New note title", "")
		if errors.Is(err, prompt.ErrAborted) {
			return nil
		}
		if err != nil {
			return err
		}
		if title == "" {
			return nil
		}

		path := pathutil.FromRoot(s.Root, pathutil.JoinRelative(dir, title+constants.NoteExt))
		if !pathutil.WithinRoot(s.Root, path) {
			s.printf("%q is outside the notes directory, choose another title\n", title)
			continue
		}
		rel, err := pathutil.VaultRelative(s.Root, path)
		if err != nil {
			return err
		}

		n := note.New(s.Root, rel)
		exists, err := n.Exists()
		if err != nil {
			return err
		}
		if exists {
			s.printf("%s already exists, choose another title\n", n.Rel)
			continue
		}

		content, err := s.Templater.Execute(templater.Note, templater.TemplateData{
			Title: n.Title(),
			Date:  s.now(),
		})
		if err != nil {
			return err
		}
		if err := n.Create(content); err != nil {
			return fmt.Errorf("failed to create %s: %w", n.Rel, err)
		}

		s.log().Debug("created note", slog.String("path", n.Rel))
		if err := s.Editor.Open(ctx, n.Path()); err != nil {
			return err
		}
		s.State.Query = n.Rel
		return nil
	}
}

func (s *Session) filter() error {
	initial := s.State.Filter
	if initial == constants.MatchAll {
		initial = ""
	}

	for {
		pattern, err := s.Prompt.Input("Filter (regex)", initial)
		if errors.Is(err, prompt.ErrAborted) {
			return nil
		}
		if err != nil {
			return err
		}

		if pattern == "" {
			s.State.Filter = constants.MatchAll
			s.State.Header = ""
			return nil
		}

		if _, err := handler.CompileFilter(pattern); err != nil {
			s.printf("%v\n", err)
			initial = pattern
			continue
		}

		s.State.Filter = pattern
		s.State.Header = "filter: " + pattern
		return nil
	}
}

func (s *Session) shell(ctx context.Context) error {
	dir := s.Root
	if s.State.Selected != "" {
		dir = note.New(s.Root, s.State.Selected).Dir()
	}

	shell := s.Shell
	if shell == "" {
		shell = "/bin/sh"
	}

	err := s.Exec.Run(ctx, tools.Command{
		Name: shell,
		Dir:  dir,
		Env:  []string{"PS1=" + constants.ShellPrompt, "NT_SHELL=1"},
	})

	// The status of the last command typed in the shell is not ours to report.
	var exited interface{ ExitCode() int }
	if errors.As(err, &exited) {
		s.log().Debug("shell exited", slog.Int("status", exited.ExitCode()))
		return nil
	}
	return err
}

func (s *Session) journal(ctx context.Context) error {
	entry, err := s.Journal.Open(ctx, s.Journal.Today())
	if err != nil {
		return err
	}
	if entry.Created {
		s.log().Debug("created journal entry", slog.String("path", entry.Path))
	}
	return nil
}

func (s *Session) attach(ctx context.Context) error {
	n, err := s.selected()
	if err != nil {
		return err
	}

	fallback := s.AttachDir
	if fallback == "" {
		fallback = "~/Downloads"
	}
	initial := fallback

	var dir string
	for {
		answer, err := s.Prompt.Input("Attach from directory", initial)
		if errors.Is(err, prompt.ErrAborted) {
			return nil
		}
		if err != nil {
			return err
		}

		if answer == "" {
			answer = fallback
		}

		dir, err = homedir.Expand(answer)
		if err != nil {
			return err
		}
		if handler.IsDir(dir) {
			break
		}
		s.printf("%s is not a directory\n", answer)
		initial = answer
	}

	files, err := handler.ListFiles(dir)
	if err != nil {
		return err
	}

	selected, err := s.Picker.MultiSelect(ctx, dir, files)
	if err != nil {
		return err
	}

	if err := attach.Files(n, dir, selected); err != nil {
		return err
	}
	s.State.Query = n.Rel
	return nil
}

func (s *Session) yank() error {
	if s.State.Selected == "" {
		s.printf("nothing selected\n")
		return nil
	}
	if s.Clipboard == nil {
		return errors.New("clipboard is not available")
	}

	if err := s.Clipboard(s.State.Selected); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	s.printf("copied %s\n", s.State.Selected)
	return nil
}

func (s *Session) help() error {
	s.printf("%s\n", HelpText(s.Keys))
	return s.Prompt.Wait("Press enter to continue")
}
