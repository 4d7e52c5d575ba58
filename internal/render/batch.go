package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/gosuri/uitable"

	"github.com/Paintersrp/nt/internal/handler"
	"github.com/Paintersrp/nt/internal/pathutil"
)

const (
	StatusRendered = "rendered"
	StatusUpToDate = "up to date"
)

// Result records what the batch did for one note.
type Result struct {
	Note   string
	Output string
	Status string
}

// Batch re-renders every note whose document is missing or stale.
type Batch struct {
	Handler  *handler.FileHandler
	Renderer Renderer
	Out      io.Writer
	Logger   *slog.Logger
	Force    bool
}

// Run walks the notes once, sequentially. The first failing render aborts the
// batch.
func (b *Batch) Run(ctx context.Context) ([]Result, error) {
	notes, err := b.Handler.WalkNotes()
	if err != nil {
		return nil, fmt.Errorf("error listing notes: %w", err)
	}

	results := make([]Result, 0, len(notes))
	for _, rel := range notes {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		result, err := b.One(ctx, rel)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}

	return results, nil
}

// One renders a single root-relative note when its document is stale.
func (b *Batch) One(ctx context.Context, rel string) (Result, error) {
	input := pathutil.FromRoot(b.Handler.Root(), rel)
	output := OutputPath(input)
	result := Result{Note: rel, Output: output, Status: StatusUpToDate}

	stale := b.Force
	if !stale {
		var err error
		stale, err = NeedsRender(input, output)
		if err != nil {
			return result, err
		}
	}

	if !stale {
		b.log().Debug("render skipped", slog.String("note", rel))
		b.printf("%s is up to date\n", rel)
		return result, nil
	}

	b.printf("rendering %s\n", rel)
	if err := b.Renderer.Render(ctx, input, output); err != nil {
		return result, fmt.Errorf("failed to render %s: %w", rel, err)
	}

	result.Status = StatusRendered
	return result, nil
}

// NeedsRender reports whether output is missing or older than input.
func NeedsRender(input, output string) (bool, error) {
	in, err := os.Stat(input)
	if err != nil {
		return false, err
	}

	out, err := os.Stat(output)
	if errors.Is(err, fs.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, err
	}

	return out.ModTime().Before(in.ModTime()), nil
}

// Summary formats results as a table.
func Summary(results []Result) string {
	table := uitable.New()
	table.MaxColWidth = 80
	table.AddRow("STATUS", "NOTE")

	rendered := 0
	for _, r := range results {
		table.AddRow(r.Status, r.Note)
		if r.Status == StatusRendered {
			rendered++
		}
	}

	return fmt.Sprintf("%s\n%d rendered, %d up to date", table, rendered, len(results)-rendered)
}

func (b *Batch) printf(format string, args ...interface{}) {
	if b.Out != nil {
		fmt.Fprintf(b.Out, format, args...)
	}
}

func (b *Batch) log() *slog.Logger {
	if b.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return b.Logger
}
