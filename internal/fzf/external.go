package fzf

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Paintersrp/nt/internal/config"
	"github.com/Paintersrp/nt/internal/tools"
)

const (
	exitNoMatch   = 1
	exitInterrupt = 130
)

// External drives the fzf executable.
type External struct {
	x    tools.Executor
	root string
	cfg  *config.Config
	keys map[string]Action
}

func NewExternal(x tools.Executor, cfg *config.Config) *External {
	return &External{
		x:    x,
		root: cfg.NotesDir,
		cfg:  cfg,
		keys: keyActions(cfg.Keys),
	}
}

func (f *External) Pick(
	ctx context.Context,
	candidates []string,
	query, header string,
) (Selection, error) {
	out, err := f.x.Output(ctx, tools.Command{
		Name:  f.cfg.PickerCmd,
		Args:  f.pickArgs(query, header),
		Dir:   f.root,
		Stdin: strings.NewReader(strings.Join(candidates, "\n")),
	})
	if err != nil {
		switch exitStatus(err) {
		case exitInterrupt:
			return Selection{Action: Exit}, nil
		case exitNoMatch:
		default:
			return Selection{}, err
		}
	}

	return parseOutput(out, f.keys), nil
}

// MultiSelect lets the user mark any number of files inside dir.
func (f *External) MultiSelect(
	ctx context.Context,
	dir string,
	files []string,
) ([]string, error) {
	args := append([]string{"--multi"}, f.cfg.PickerOpts...)
	args = append(args, fmt.Sprintf("--header=attach from %s", dir))
	if preview := f.preview(); preview != "" {
		args = append(args, "--preview="+preview)
	}

	out, err := f.x.Output(ctx, tools.Command{
		Name:  f.cfg.PickerCmd,
		Args:  args,
		Dir:   dir,
		Stdin: strings.NewReader(strings.Join(files, "\n")),
	})
	if err != nil {
		switch exitStatus(err) {
		case exitInterrupt, exitNoMatch:
			return nil, nil
		default:
			return nil, err
		}
	}

	return splitLines(out), nil
}

func (f *External) pickArgs(query, header string) []string {
	args := append([]string{}, f.cfg.PickerOpts...)
	for _, bind := range f.cfg.PickerBinds {
		args = append(args, "--bind="+bind)
	}

	if expect := f.expectKeys(); expect != "" {
		args = append(args, "--expect="+expect)
	}
	args = append(args, "--query="+query)
	if header != "" {
		args = append(args, "--header="+header)
	}
	if preview := f.preview(); preview != "" {
		args = append(args, "--preview="+preview)
	}
	if f.cfg.HistoryFile != "" {
		args = append(args,
			"--history="+f.cfg.HistoryFile,
			fmt.Sprintf("--history-size=%d", f.cfg.HistorySize),
		)
	}
	return args
}

// expectKeys lists every bound key except enter, which fzf reports as an
// empty first line.
func (f *External) expectKeys() string {
	keys := make([]string, 0, len(f.keys))
	for key := range f.keys {
		if key == "enter" {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return strings.Join(keys, ",")
}

func (f *External) preview() string {
	if f.cfg.Previewer == "" {
		return ""
	}
	parts := append([]string{f.cfg.Previewer}, f.cfg.PreviewOpts...)
	return strings.Join(append(parts, "{}"), " ")
}

// exitStatus extracts the exit code of a finished process, or -1.
func exitStatus(err error) int {
	var coder interface{ ExitCode() int }
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return -1
}
