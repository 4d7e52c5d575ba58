package handler

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/Paintersrp/nt/internal/constants"
	"github.com/Paintersrp/nt/internal/pathutil"
)

type FileHandler struct {
	root string
}

func NewFileHandler(root string) *FileHandler {
	return &FileHandler{root: root}
}

// Root returns the notes root the handler walks.
func (h *FileHandler) Root() string {
	return h.root
}

// WalkNotes returns the root-relative paths of every note, sorted. Hidden
// files and directories are skipped.
func (h *FileHandler) WalkNotes() ([]string, error) {
	var notes []string

	err := filepath.WalkDir(h.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		name := d.Name()
		if strings.HasPrefix(name, ".") && path != h.root {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() || filepath.Ext(name) != constants.NoteExt {
			return nil
		}

		rel, err := pathutil.VaultRelative(h.root, path)
		if err != nil {
			return err
		}
		notes = append(notes, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(notes)
	return notes, nil
}

// Search returns the sorted notes whose content matches pattern,
// case-insensitively. An empty pattern matches every note.
func (h *FileHandler) Search(pattern string) ([]string, error) {
	if pattern == "" {
		pattern = constants.MatchAll
	}

	re, err := CompileFilter(pattern)
	if err != nil {
		return nil, err
	}

	notes, err := h.WalkNotes()
	if err != nil {
		return nil, fmt.Errorf("error listing notes: %w", err)
	}

	matches := notes[:0]
	for _, rel := range notes {
		content, err := os.ReadFile(pathutil.FromRoot(h.root, rel))
		if err != nil {
			return nil, fmt.Errorf("error reading %s: %w", rel, err)
		}
		if re.Match(content) {
			matches = append(matches, rel)
		}
	}

	return matches, nil
}

// CompileFilter compiles a search filter as a case-insensitive, multi-line
// regular expression.
func CompileFilter(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile("(?im)" + pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid filter %q: %w", pattern, err)
	}
	return re, nil
}

// ListFiles returns the names of the regular files directly inside dir, sorted.
func ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			files = append(files, entry.Name())
		}
	}

	sort.Strings(files)
	return files, nil
}

// IsDir reports whether path names an existing directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
