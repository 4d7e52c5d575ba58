package render

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/Paintersrp/nt/internal/constants"
	"github.com/Paintersrp/nt/internal/pathutil"
)

// Watcher reports notes that change under a root directory.
type Watcher struct {
	watcher *fsnotify.Watcher
	root    string
}

func NewWatcher(root string) (*Watcher, error) {
	normalized := pathutil.NormalizePath(root)
	if normalized == "" {
		return nil, errors.New("notes directory cannot be empty")
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	watcher := &Watcher{watcher: w, root: normalized}
	if err := watcher.addRecursive(normalized); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	return watcher, nil
}

// Run calls onChange with the root-relative path of every note that is
// created or written, one at a time, until ctx is done or onChange fails.
func (w *Watcher) Run(ctx context.Context, onChange func(rel string) error) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}

			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = w.addRecursive(event.Name)
					continue
				}
			}

			rel, ok := w.relevant(event)
			if !ok {
				continue
			}
			if err := onChange(rel); err != nil {
				return err
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			if err != nil {
				return err
			}
		}
	}
}

func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(pathutil.NormalizePath(root), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrPermission) {
				return filepath.SkipDir
			}
			return err
		}

		if !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && path != w.root {
			return filepath.SkipDir
		}

		return w.watcher.Add(path)
	})
}

func (w *Watcher) relevant(event fsnotify.Event) (string, bool) {
	if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return "", false
	}
	if filepath.Ext(event.Name) != constants.NoteExt {
		return "", false
	}

	rel, err := pathutil.VaultRelative(w.root, event.Name)
	if err != nil || rel == "." || rel == "" || strings.HasPrefix(rel, "..") {
		return "", false
	}

	return rel, true
}
