// Package prompt asks the user for single lines of input between picker
// rounds.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/erikgeiser/promptkit"
	"github.com/erikgeiser/promptkit/textinput"
	"golang.org/x/term"
)

// ErrAborted is returned when the user cancels a prompt.
var ErrAborted = errors.New("prompt aborted")

type Prompter interface {
	// Input asks for one line, pre-filled with initial where the terminal
	// allows editing. An empty answer is returned as is.
	Input(label, initial string) (string, error)
	// Wait blocks until the user acknowledges msg.
	Wait(msg string) error
}

// New returns the interactive prompter when stdin is a terminal and a line
// reader otherwise.
func New() Prompter {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return &Terminal{}
	}
	return NewReader(os.Stdin, os.Stdout)
}

// Terminal prompts with promptkit.
type Terminal struct{}

func (Terminal) Input(label, initial string) (string, error) {
	input := textinput.New(label)
	input.InitialValue = initial
	input.Validate = nil

	value, err := input.RunPrompt()
	if errors.Is(err, promptkit.ErrAborted) {
		return "", ErrAborted
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(value), nil
}

func (t Terminal) Wait(msg string) error {
	_, err := t.Input(msg, "")
	if errors.Is(err, ErrAborted) {
		return nil
	}
	return err
}

// Reader prompts over plain streams.
type Reader struct {
	in  *bufio.Reader
	out io.Writer
}

func NewReader(in io.Reader, out io.Writer) *Reader {
	return &Reader{in: bufio.NewReader(in), out: out}
}

func (r *Reader) Input(label, initial string) (string, error) {
	if initial != "" {
		fmt.Fprintf(r.out, "%s [%s]: ", label, initial)
	} else {
		fmt.Fprintf(r.out, "%s: ", label)
	}

	line, err := r.in.ReadString('\n')
	if errors.Is(err, io.EOF) && line == "" {
		return "", ErrAborted
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}

	return strings.TrimSpace(line), nil
}

func (r *Reader) Wait(msg string) error {
	fmt.Fprintln(r.out, msg)
	_, err := r.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
