package state

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/mitchellh/go-homedir"

	"github.com/Paintersrp/nt/internal/config"
	"github.com/Paintersrp/nt/internal/constants"
	"github.com/Paintersrp/nt/internal/exitcode"
	"github.com/Paintersrp/nt/internal/fzf"
	"github.com/Paintersrp/nt/internal/handler"
	"github.com/Paintersrp/nt/internal/note"
	"github.com/Paintersrp/nt/internal/prompt"
	"github.com/Paintersrp/nt/internal/render"
	"github.com/Paintersrp/nt/internal/services/journal"
	"github.com/Paintersrp/nt/internal/session"
	"github.com/Paintersrp/nt/internal/templater"
	"github.com/Paintersrp/nt/internal/tools"
)

// State holds the configuration and collaborators shared by every command.
// Commands receive it unprepared; Prepare fills it in before they run.
type State struct {
	Verbose bool
	Home    string
	Stdout  io.Writer
	Stderr  io.Writer

	Config    *config.Config
	Logger    *slog.Logger
	Runner    *tools.Runner
	Handler   *handler.FileHandler
	Templater *templater.Templater
	Editor    *note.Editor
	Opener    *note.Opener
	Renderer  render.Renderer
	Picker    fzf.Picker
	Prompter  prompt.Prompter
	Journal   *journal.Service

	prepared bool
}

func NewState() *State {
	return &State{Stdout: os.Stdout, Stderr: os.Stderr}
}

// Prepare loads the configuration, verifies the external tools it names and
// builds the collaborators. It is safe to call more than once.
func (s *State) Prepare() error {
	if s.prepared {
		return nil
	}
	if err := s.Load(); err != nil {
		return err
	}
	if err := s.CheckTools(); err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	s.prepared = true
	return nil
}

// Load reads the configuration and sets up logging and process execution.
func (s *State) Load() error {
	if s.Home == "" {
		home, err := GetHomeDir()
		if err != nil {
			return err
		}
		s.Home = home
	}

	cfg, err := config.Load(s.Home)
	if err != nil {
		return err
	}
	s.Config = cfg

	s.Logger = NewLogger(s.Stderr, s.Verbose)
	s.Runner = tools.NewRunner(s.Logger)
	s.Runner.Stdout = s.Stdout
	s.Runner.Stderr = s.Stderr

	s.Logger.Debug("configuration loaded",
		slog.String("notes", cfg.NotesDir),
		slog.String("journal", cfg.JournalDir),
		slog.String("picker", cfg.Picker),
		slog.String("renderer", cfg.Renderer),
	)
	return nil
}

// CheckTools fails with the missing-prerequisite status when a configured
// executable is not on PATH.
func (s *State) CheckTools() error {
	return exitcode.New(exitcode.MissingTool, tools.Check(s.Config.RequiredTools()))
}

// Init creates the note directories and builds every collaborator.
func (s *State) Init() error {
	cfg := s.Config

	for _, dir := range []string{cfg.BaseDir, cfg.NotesDir, cfg.JournalDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	t, err := templater.NewTemplater(filepath.Join(cfg.BaseDir, constants.TemplatesDir))
	if err != nil {
		return fmt.Errorf("failed to create templater: %w", err)
	}
	s.Templater = t

	r, err := s.newRenderer()
	if err != nil {
		return err
	}
	s.Renderer = r

	s.Handler = handler.NewFileHandler(cfg.NotesDir)
	s.Editor = note.NewEditor(s.Runner, cfg.Editor)
	s.Opener = note.NewOpener(s.Runner, cfg.Opener)
	s.Journal = journal.NewService(cfg.JournalDir, t, s.Editor)
	s.Prompter = prompt.New()

	switch cfg.Picker {
	case config.PickerBuiltin:
		s.Picker = fzf.NewBuiltin(cfg.NotesDir)
	default:
		s.Picker = fzf.NewExternal(s.Runner, cfg)
	}

	return nil
}

func (s *State) newRenderer() (render.Renderer, error) {
	if s.Config.Renderer == config.RendererBuiltin {
		g, err := render.NewGoldmark()
		if err != nil {
			return nil, fmt.Errorf("failed to create renderer: %w", err)
		}
		return g, nil
	}

	assets, err := render.EnsureAssets(s.Config.AssetsDir())
	if err != nil {
		return nil, fmt.Errorf("failed to write render assets: %w", err)
	}
	return render.NewPandoc(s.Runner, s.Config.Converter, assets), nil
}

// Session builds the interactive loop, starting with query pre-filled.
func (s *State) Session(query string) *session.Session {
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}

	return &session.Session{
		Root:      s.Config.NotesDir,
		AttachDir: s.Config.AttachDir,
		Shell:     shell,
		Keys:      s.Config.Keys,
		Search:    s.Handler,
		Picker:    s.Picker,
		Prompt:    s.Prompter,
		Editor:    s.Editor,
		Viewer:    s.Opener,
		Renderer:  s.Renderer,
		Templater: s.Templater,
		Journal:   s.Journal,
		Exec:      s.Runner,
		Clipboard: clipboard.WriteAll,
		Out:       s.Stdout,
		Logger:    s.Logger,
		State:     session.NewState(query),
	}
}

// Batch builds the renderer for the html command.
func (s *State) Batch(force bool) *render.Batch {
	return &render.Batch{
		Handler:  s.Handler,
		Renderer: s.Renderer,
		Out:      s.Stdout,
		Logger:   s.Logger,
		Force:    force,
	}
}

// NewLogger writes text records to w, at debug level when verbose is set.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func GetHomeDir() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return home, nil
}
