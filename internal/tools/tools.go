// Package tools runs the external programs nt is built on and verifies they
// are installed.
package tools

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/Paintersrp/nt/internal/config"
)

// MissingError reports every prerequisite that could not be found on PATH.
type MissingError struct {
	Tools []config.Tool
}

func (e *MissingError) Error() string {
	parts := make([]string, 0, len(e.Tools))
	for _, tool := range e.Tools {
		parts = append(parts, fmt.Sprintf("%s (%s)", tool.Name, tool.Role))
	}
	return "required tools are not installed: " + strings.Join(parts, ", ")
}

// LookPath is swapped in tests.
var LookPath = exec.LookPath

// Check verifies that each tool resolves on PATH.
func Check(required []config.Tool) error {
	var missing []config.Tool
	for _, tool := range required {
		if _, err := LookPath(tool.Name); err != nil {
			missing = append(missing, tool)
		}
	}

	if len(missing) > 0 {
		return &MissingError{Tools: missing}
	}
	return nil
}

// Command describes one external process invocation.
type Command struct {
	Name  string
	Args  []string
	Dir   string
	Env   []string
	Stdin io.Reader
}

func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Executor starts external processes and blocks until they exit.
type Executor interface {
	Run(ctx context.Context, c Command) error
	Output(ctx context.Context, c Command) ([]byte, error)
}

// Runner is the Executor attached to the user's terminal.
type Runner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

func NewRunner(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Logger: logger,
	}
}

// Run executes c with the terminal attached.
func (r *Runner) Run(ctx context.Context, c Command) error {
	cmd := r.build(ctx, c)
	cmd.Stdout = r.Stdout

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s failed: %w", c.Name, err)
	}
	return nil
}

// Output executes c and captures its standard output. Standard error stays on
// the terminal so interactive programs can draw their interface.
func (r *Runner) Output(ctx context.Context, c Command) ([]byte, error) {
	var stdout bytes.Buffer

	cmd := r.build(ctx, c)
	cmd.Stdout = &stdout

	err := cmd.Run()
	if err != nil {
		return stdout.Bytes(), fmt.Errorf("%s failed: %w", c.Name, err)
	}
	return stdout.Bytes(), nil
}

func (r *Runner) build(ctx context.Context, c Command) *exec.Cmd {
	r.Logger.Debug("running external command",
		slog.String("cmd", c.String()),
		slog.String("dir", c.Dir),
	)

	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), c.Env...)
	}

	cmd.Stdin = c.Stdin
	if cmd.Stdin == nil {
		cmd.Stdin = r.Stdin
	}
	cmd.Stderr = r.Stderr
	return cmd
}
