package note

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/Paintersrp/nt/internal/tools"
)

type recordingExec struct {
	commands []tools.Command
	err      error
}

func (r *recordingExec) Run(_ context.Context, c tools.Command) error {
	r.commands = append(r.commands, c)
	return r.err
}

func (r *recordingExec) Output(_ context.Context, c tools.Command) ([]byte, error) {
	r.commands = append(r.commands, c)
	return nil, r.err
}

func TestNotePaths(t *testing.T) {
	n := New("/notes", "sub/Foo.md")

	if n.Path() != filepath.Join("/notes", "sub", "Foo.md") {
		t.Fatalf("unexpected path %q", n.Path())
	}
	if n.Title() != "Foo" {
		t.Fatalf("unexpected title %q", n.Title())
	}
	if n.Dir() != filepath.Join("/notes", "sub") {
		t.Fatalf("unexpected dir %q", n.Dir())
	}
	if n.AttachmentDirName() != "Foo_attachments" {
		t.Fatalf("unexpected attachment dir %q", n.AttachmentDirName())
	}
}

func TestCreateRefusesToOverwrite(t *testing.T) {
	root := t.TempDir()
	n := New(root, "deep/dir/Note.md")

	if err := n.Create("# Note\n"); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	content, err := os.ReadFile(n.Path())
	if err != nil {
		t.Fatalf("failed to read note: %v", err)
	}
	if string(content) != "# Note\n" {
		t.Fatalf("unexpected content %q", content)
	}

	if err := n.Create("other"); err == nil {
		t.Fatal("expected second Create to fail")
	}

	exists, err := n.Exists()
	if err != nil || !exists {
		t.Fatalf("expected note to exist, got %v %v", exists, err)
	}
}

func TestAppend(t *testing.T) {
	root := t.TempDir()
	n := New(root, "a.md")
	if err := n.Create("# a\n"); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if err := n.Append("line\n"); err != nil {
		t.Fatalf("Append returned error: %v", err)
	}

	content, _ := os.ReadFile(n.Path())
	if string(content) != "# a\nline\n" {
		t.Fatalf("unexpected content %q", content)
	}
}

func TestEditorPassesArgumentsBeforePath(t *testing.T) {
	rec := &recordingExec{}
	e := NewEditor(rec, "nvim -u NONE")

	if err := e.Open(context.Background(), "/notes/a.md"); err != nil {
		t.Fatalf("Open returned error: %v", err)
	}

	want := tools.Command{Name: "nvim", Args: []string{"-u", "NONE", "/notes/a.md"}}
	if len(rec.commands) != 1 || !reflect.DeepEqual(rec.commands[0], want) {
		t.Fatalf("unexpected commands %#v", rec.commands)
	}
}

func TestEditorWithoutCommand(t *testing.T) {
	if err := NewEditor(&recordingExec{}, "  ").Open(context.Background(), "x"); err == nil {
		t.Fatal("expected error for empty editor")
	}
}

func TestOpenerPlatformDefaults(t *testing.T) {
	cases := map[string]tools.Command{
		"linux":  {Name: "xdg-open", Args: []string{"/n/a.html"}},
		"darwin": {Name: "open", Args: []string{"/n/a.html"}},
	}

	for goos, want := range cases {
		rec := &recordingExec{}
		o := NewOpener(rec, "")
		o.goos = goos

		if err := o.Open(context.Background(), "/n/a.html"); err != nil {
			t.Fatalf("%s: Open returned error: %v", goos, err)
		}
		if !reflect.DeepEqual(rec.commands[0], want) {
			t.Fatalf("%s: unexpected command %#v", goos, rec.commands[0])
		}
	}
}

func TestOpenerConfiguredCommand(t *testing.T) {
	rec := &recordingExec{}
	o := NewOpener(rec, "firefox --new-tab")

	if err := o.Open(context.Background(), "/n/a.html"); err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	want := tools.Command{Name: "firefox", Args: []string{"--new-tab", "/n/a.html"}}
	if !reflect.DeepEqual(rec.commands[0], want) {
		t.Fatalf("unexpected command %#v", rec.commands[0])
	}
}
