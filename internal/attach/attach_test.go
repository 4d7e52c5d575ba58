package attach

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Paintersrp/nt/internal/note"
)

func setup(t *testing.T) (note.Note, string) {
	t.Helper()
	root := t.TempDir()
	src := t.TempDir()

	n := note.New(root, "sub/trip.md")
	if err := n.Create("# trip\n"); err != nil {
		t.Fatalf("failed to create note: %v", err)
	}

	for name, body := range map[string]string{
		"photo.PNG": "png bytes",
		"notes.zip": "zip bytes",
	} {
		if err := os.WriteFile(filepath.Join(src, name), []byte(body), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return n, src
}

func TestFilesCopiesAndLinks(t *testing.T) {
	n, src := setup(t)

	if err := Files(n, src, []string{"photo.PNG", "notes.zip"}); err != nil {
		t.Fatalf("Files returned error: %v", err)
	}

	dir := filepath.Join(n.Dir(), "trip_attachments")
	for name, want := range map[string]string{
		"photo.PNG": "png bytes",
		"notes.zip": "zip bytes",
	} {
		got, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("expected %s to be copied: %v", name, err)
		}
		if string(got) != want {
			t.Fatalf("unexpected content for %s: %q", name, got)
		}
	}

	content, err := os.ReadFile(n.Path())
	if err != nil {
		t.Fatalf("failed to read note: %v", err)
	}
	want := "# trip\n" +
		"![photo.PNG](trip_attachments/photo.PNG)\n" +
		"[notes.zip](trip_attachments/notes.zip)\n" +
		"\n"
	if string(content) != want {
		t.Fatalf("unexpected note content:\n%q\nwant:\n%q", content, want)
	}
}

func TestFilesEmptySelectionIsNoop(t *testing.T) {
	n, src := setup(t)

	if err := Files(n, src, nil); err != nil {
		t.Fatalf("Files returned error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(n.Dir(), "trip_attachments")); !os.IsNotExist(err) {
		t.Fatalf("expected no attachment directory, got %v", err)
	}
	content, _ := os.ReadFile(n.Path())
	if string(content) != "# trip\n" {
		t.Fatalf("expected note to be untouched, got %q", content)
	}
}

func TestFilesRejectsPaths(t *testing.T) {
	n, src := setup(t)

	if err := Files(n, src, []string{"../etc/passwd"}); err == nil {
		t.Fatal("expected error for a path outside the source directory")
	}
}

func TestLink(t *testing.T) {
	cases := map[string]string{
		"a.jpeg":     "![a.jpeg](x_attachments/a.jpeg)",
		"b.SVG":      "![b.SVG](x_attachments/b.SVG)",
		"c.webp":     "![c.webp](x_attachments/c.webp)",
		"d.pdf":      "[d.pdf](x_attachments/d.pdf)",
		"README":     "[README](x_attachments/README)",
		"archive.gz": "[archive.gz](x_attachments/archive.gz)",
	}
	for file, want := range cases {
		if got := Link("x_attachments", file); got != want {
			t.Errorf("Link(%q) = %q, want %q", file, got, want)
		}
	}
}
