package journal

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Paintersrp/nt/internal/templater"
)

type recordingEditor struct {
	opened []string
}

func (r *recordingEditor) Open(_ context.Context, path string) error {
	r.opened = append(r.opened, path)
	return nil
}

func newService(t *testing.T, dir string, editor Editor, now time.Time) *Service {
	t.Helper()
	tmpl, err := templater.NewTemplater("")
	if err != nil {
		t.Fatalf("failed to create templater: %v", err)
	}
	return NewService(dir, tmpl, editor).WithClock(func() time.Time { return now })
}

func TestOpenCreatesEntryWithHeading(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "journal")
	day := time.Date(2026, 10, 19, 8, 30, 0, 0, time.Local)
	editor := &recordingEditor{}
	svc := newService(t, dir, editor, day)

	entry, err := svc.Open(context.Background(), svc.Today())
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}

	if entry.Path != filepath.Join(dir, "2026-10-19.md") {
		t.Fatalf("unexpected entry path %q", entry.Path)
	}
	if !entry.Created {
		t.Fatal("expected entry to be created")
	}

	content, err := os.ReadFile(entry.Path)
	if err != nil {
		t.Fatalf("failed to read entry: %v", err)
	}
	if string(content) != "# Monday, 19 October 2026\n" {
		t.Fatalf("unexpected heading %q", content)
	}

	if len(editor.opened) != 1 || editor.opened[0] != entry.Path {
		t.Fatalf("expected editor to open the entry, got %v", editor.opened)
	}
}

func TestOpenTwiceSameDayIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	day := time.Date(2026, 10, 19, 8, 30, 0, 0, time.Local)
	editor := &recordingEditor{}
	svc := newService(t, dir, editor, day)

	first, err := svc.Open(context.Background(), svc.Today())
	if err != nil {
		t.Fatalf("first Open returned error: %v", err)
	}

	if err := os.WriteFile(first.Path, []byte("# Monday, 19 October 2026\n\nwrote things\n"), 0o644); err != nil {
		t.Fatalf("failed to edit entry: %v", err)
	}
	before, _ := os.ReadFile(first.Path)

	later := newService(t, dir, editor, day.Add(10*time.Hour))
	second, err := later.Open(context.Background(), later.Today())
	if err != nil {
		t.Fatalf("second Open returned error: %v", err)
	}

	if second.Path != first.Path || second.Created {
		t.Fatalf("expected the same existing entry, got %+v", second)
	}

	after, _ := os.ReadFile(second.Path)
	if string(after) != string(before) {
		t.Fatalf("expected content to be untouched, got %q", after)
	}
	if len(editor.opened) != 2 {
		t.Fatalf("expected both calls to open the editor, got %v", editor.opened)
	}
}

func TestListReturnsSortedEntries(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.Local)
	svc := newService(t, dir, &recordingEditor{}, now)

	for i := 0; i < 3; i++ {
		if _, err := svc.EnsureEntry(now.AddDate(0, 0, -i)); err != nil {
			t.Fatalf("EnsureEntry returned error: %v", err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "ideas.md"), []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to write stray note: %v", err)
	}

	entries, err := svc.List()
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected three entries, got %d", len(entries))
	}
	if entries[0].Date.Before(entries[1].Date) {
		t.Fatalf("expected entries to be sorted descending by date")
	}
}

func TestParseDay(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	cases := map[string]string{
		"":           "2026-10-19",
		"-1":         "2026-10-18",
		"+2":         "2026-10-21",
		"2026-01-05": "2026-01-05",
		"03/14/2025": "2025-03-14",
	}

	for in, want := range cases {
		day, err := ParseDay(in, now)
		if err != nil {
			t.Fatalf("ParseDay(%q) returned error: %v", in, err)
		}
		if got := day.Format("2006-01-02"); got != want {
			t.Fatalf("ParseDay(%q) = %s, want %s", in, got, want)
		}
	}

	if _, err := ParseDay("someday", now); err == nil {
		t.Fatal("expected error for unparseable date")
	}
}
