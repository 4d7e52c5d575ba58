package render

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Paintersrp/nt/internal/handler"
)

type fakeRenderer struct {
	rendered []string
	err      error
}

func (f *fakeRenderer) Render(_ context.Context, input, output string) error {
	if f.err != nil {
		return f.err
	}
	f.rendered = append(f.rendered, input)
	return os.WriteFile(output, []byte("<html></html>"), 0o644)
}

func writeWithTime(t *testing.T, path string, mod time.Time) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte("# x\n"), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	if err := os.Chtimes(path, mod, mod); err != nil {
		t.Fatalf("failed to set times on %s: %v", path, err)
	}
}

func TestBatchRendersOnlyStaleNotes(t *testing.T) {
	root := t.TempDir()
	now := time.Now()

	writeWithTime(t, filepath.Join(root, "newer.md"), now)
	writeWithTime(t, filepath.Join(root, "newer.html"), now.Add(-time.Hour))

	writeWithTime(t, filepath.Join(root, "older.md"), now.Add(-time.Hour))
	writeWithTime(t, filepath.Join(root, "older.html"), now)

	writeWithTime(t, filepath.Join(root, "sub", "missing.md"), now)

	fake := &fakeRenderer{}
	var out bytes.Buffer
	b := &Batch{Handler: handler.NewFileHandler(root), Renderer: fake, Out: &out}

	results, err := b.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	want := []string{
		filepath.Join(root, "newer.md"),
		filepath.Join(root, "sub", "missing.md"),
	}
	if strings.Join(fake.rendered, ",") != strings.Join(want, ",") {
		t.Fatalf("rendered %v, want %v", fake.rendered, want)
	}

	statuses := map[string]string{}
	for _, r := range results {
		statuses[r.Note] = r.Status
	}
	if statuses["older.md"] != StatusUpToDate {
		t.Fatalf("expected older.md to be skipped, got %q", statuses["older.md"])
	}
	if !strings.Contains(out.String(), "older.md is up to date") {
		t.Fatalf("expected up to date report, got %q", out.String())
	}

	summary := Summary(results)
	if !strings.Contains(summary, "2 rendered, 1 up to date") {
		t.Fatalf("unexpected summary %q", summary)
	}
}

func TestBatchForceRendersEverything(t *testing.T) {
	root := t.TempDir()
	now := time.Now()
	writeWithTime(t, filepath.Join(root, "a.md"), now.Add(-time.Hour))
	writeWithTime(t, filepath.Join(root, "a.html"), now)

	fake := &fakeRenderer{}
	b := &Batch{Handler: handler.NewFileHandler(root), Renderer: fake, Force: true}

	if _, err := b.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(fake.rendered) != 1 {
		t.Fatalf("expected forced render, got %v", fake.rendered)
	}
}

func TestBatchStopsAtFirstFailure(t *testing.T) {
	root := t.TempDir()
	writeWithTime(t, filepath.Join(root, "a.md"), time.Now())
	writeWithTime(t, filepath.Join(root, "b.md"), time.Now())

	boom := errors.New("pandoc exploded")
	b := &Batch{Handler: handler.NewFileHandler(root), Renderer: &fakeRenderer{err: boom}}

	results, err := b.Run(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected render failure, got %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no completed results, got %v", results)
	}
	if _, statErr := os.Stat(filepath.Join(root, "b.html")); !os.IsNotExist(statErr) {
		t.Fatalf("expected batch to abort before b.md")
	}
}

func TestNeedsRenderEqualTimesSkips(t *testing.T) {
	root := t.TempDir()
	now := time.Now()
	writeWithTime(t, filepath.Join(root, "a.md"), now)
	writeWithTime(t, filepath.Join(root, "a.html"), now)

	stale, err := NeedsRender(filepath.Join(root, "a.md"), filepath.Join(root, "a.html"))
	if err != nil {
		t.Fatalf("NeedsRender returned error: %v", err)
	}
	if stale {
		t.Fatal("expected equal timestamps to count as up to date")
	}
}
