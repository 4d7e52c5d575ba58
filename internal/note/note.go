// Package note provides the on-disk note model and the editor/viewer launchers.
package note

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/Paintersrp/nt/internal/constants"
	"github.com/Paintersrp/nt/internal/pathutil"
	"github.com/Paintersrp/nt/internal/tools"
)

// Note is a markdown file identified by its path relative to the notes root.
type Note struct {
	Root string
	Rel  string
}

// New returns the note at rel under root.
func New(root, rel string) Note {
	return Note{Root: root, Rel: filepath.ToSlash(rel)}
}

// Path returns the absolute file path of the note.
func (n Note) Path() string {
	return pathutil.FromRoot(n.Root, n.Rel)
}

// Title is the filename without its extension.
func (n Note) Title() string {
	return pathutil.Title(n.Rel)
}

// Dir returns the absolute directory holding the note.
func (n Note) Dir() string {
	return filepath.Dir(n.Path())
}

// AttachmentDirName is the sibling directory attachments are copied into.
// It is derived from the title, so renaming the note orphans it.
func (n Note) AttachmentDirName() string {
	return n.Title() + constants.AttachSuffix
}

// Exists checks whether the note file is present.
func (n Note) Exists() (bool, error) {
	_, err := os.Stat(n.Path())
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// EnsurePath creates the directory structure for the note file.
func (n Note) EnsurePath() (string, error) {
	path := n.Path()
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return "", err
	}
	return path, nil
}

// Create writes a new note holding content. It refuses to overwrite.
func (n Note) Create(content string) error {
	path, err := n.EnsurePath()
	if err != nil {
		return err
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	if _, err := file.WriteString(content); err != nil {
		return fmt.Errorf("failed to write to file: %w", err)
	}
	return nil
}

// Append adds content to the end of the note.
func (n Note) Append(content string) error {
	file, err := os.OpenFile(n.Path(), os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = file.WriteString(content)
	return err
}

// Editor opens files in the configured text editor and waits for it to exit.
type Editor struct {
	exec    tools.Executor
	command []string
}

func NewEditor(x tools.Executor, editor string) *Editor {
	return &Editor{exec: x, command: strings.Fields(editor)}
}

// Open blocks until the editor closes path.
func (e *Editor) Open(ctx context.Context, path string) error {
	if len(e.command) == 0 {
		return fmt.Errorf("editor not configured")
	}

	args := append(append([]string{}, e.command[1:]...), path)
	if err := e.exec.Run(ctx, tools.Command{Name: e.command[0], Args: args}); err != nil {
		return fmt.Errorf("error opening %s in editor: %w", path, err)
	}
	return nil
}

// Opener hands a file to the platform's default viewer.
type Opener struct {
	exec    tools.Executor
	command string
	goos    string
}

func NewOpener(x tools.Executor, command string) *Opener {
	return &Opener{exec: x, command: command, goos: runtime.GOOS}
}

// Open launches the viewer for path.
func (o *Opener) Open(ctx context.Context, path string) error {
	cmd, err := o.build(path)
	if err != nil {
		return err
	}
	return o.exec.Run(ctx, cmd)
}

func (o *Opener) build(path string) (tools.Command, error) {
	if fields := strings.Fields(o.command); len(fields) > 0 {
		return tools.Command{Name: fields[0], Args: append(fields[1:], path)}, nil
	}

	switch o.goos {
	case "darwin":
		return tools.Command{Name: "open", Args: []string{path}}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return tools.Command{Name: "xdg-open", Args: []string{path}}, nil
	case "windows":
		return tools.Command{Name: "cmd", Args: []string{"/c", "start", "", path}}, nil
	default:
		return tools.Command{}, fmt.Errorf("unsupported operating system: %s", o.goos)
	}
}
