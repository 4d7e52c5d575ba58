package tools

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Paintersrp/nt/internal/config"
)

func stubBinary(t *testing.T, dir, name, script string) {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755); err != nil {
		t.Fatalf("failed to create %s stub: %v", name, err)
	}
}

func TestCheckReportsEveryMissingTool(t *testing.T) {
	binDir := t.TempDir()
	stubBinary(t, binDir, "fzf", "exit 0")
	t.Setenv("PATH", binDir)

	err := Check([]config.Tool{
		{Role: "fuzzy picker", Name: "fzf"},
		{Role: "file previewer", Name: "bat-missing"},
		{Role: "document converter", Name: "pandoc-missing"},
	})

	var missing *MissingError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingError, got %v", err)
	}
	if len(missing.Tools) != 2 {
		t.Fatalf("expected two missing tools, got %#v", missing.Tools)
	}
	if !strings.Contains(err.Error(), "bat-missing (file previewer)") {
		t.Fatalf("expected diagnostic to name the previewer, got %q", err.Error())
	}
}

func TestCheckPassesWhenAllPresent(t *testing.T) {
	binDir := t.TempDir()
	stubBinary(t, binDir, "nvim", "exit 0")
	t.Setenv("PATH", binDir)

	if err := Check([]config.Tool{{Role: "text editor", Name: "nvim"}}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestRunnerOutputCapturesStdout(t *testing.T) {
	r := NewRunner(nil)
	r.Stderr = &bytes.Buffer{}

	out, err := r.Output(context.Background(), Command{
		Name:  "sh",
		Args:  []string{"-c", "cat; echo done"},
		Stdin: strings.NewReader("input\n"),
	})
	if err != nil {
		t.Fatalf("Output returned error: %v", err)
	}
	if string(out) != "input\ndone\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRunnerRunPassesDirAndEnv(t *testing.T) {
	dir := t.TempDir()
	var stdout bytes.Buffer

	r := NewRunner(nil)
	r.Stdout = &stdout
	r.Stdin = strings.NewReader("")

	err := r.Run(context.Background(), Command{
		Name: "sh",
		Args: []string{"-c", `printf "%s|%s" "$(pwd)" "$NT_SHELL"`},
		Dir:  dir,
		Env:  []string{"NT_SHELL=1"},
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	resolved, _ := filepath.EvalSymlinks(dir)
	got := stdout.String()
	if got != dir+"|1" && got != resolved+"|1" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestRunnerRunWrapsFailure(t *testing.T) {
	r := NewRunner(nil)
	r.Stdout = &bytes.Buffer{}
	r.Stderr = &bytes.Buffer{}
	r.Stdin = strings.NewReader("")

	err := r.Run(context.Background(), Command{Name: "sh", Args: []string{"-c", "exit 3"}})
	if err == nil {
		t.Fatal("expected failure")
	}
	if !strings.HasPrefix(err.Error(), "sh failed") {
		t.Fatalf("unexpected error %q", err)
	}
}
