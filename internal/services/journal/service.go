package journal

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/Paintersrp/nt/internal/constants"
	"github.com/Paintersrp/nt/internal/templater"
)

type Entry struct {
	Path    string
	Title   string
	Date    time.Time
	Created bool
}

// Editor opens a file and blocks until the user is done with it.
type Editor interface {
	Open(ctx context.Context, path string) error
}

type Service struct {
	dir       string
	templater *templater.Templater
	editor    Editor
	now       func() time.Time
}

func NewService(dir string, t *templater.Templater, editor Editor) *Service {
	return &Service{
		dir:       dir,
		templater: t,
		editor:    editor,
		now:       time.Now,
	}
}

// WithClock replaces the clock used to determine "today".
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Today returns the current calendar day in local time.
func (s *Service) Today() time.Time {
	return s.now()
}

// EntryPath is the file backing the entry for day.
func (s *Service) EntryPath(day time.Time) string {
	return filepath.Join(s.dir, day.Format(constants.JournalLayout)+constants.NoteExt)
}

// EnsureEntry creates the entry for day with its heading if it does not exist
// yet. An existing entry is never modified.
func (s *Service) EnsureEntry(day time.Time) (Entry, error) {
	if s == nil || s.templater == nil {
		return Entry{}, errors.New("journal service is not configured")
	}

	entry := Entry{
		Path:  s.EntryPath(day),
		Title: day.Format(constants.JournalTitle),
		Date:  day,
	}

	if _, err := os.Stat(entry.Path); err == nil {
		return entry, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return Entry{}, err
	}

	content, err := s.templater.Execute(templater.Journal, templater.TemplateData{
		Title: entry.Title,
		Date:  day,
	})
	if err != nil {
		return Entry{}, err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return Entry{}, fmt.Errorf("failed to create journal directory: %w", err)
	}

	file, err := os.OpenFile(entry.Path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return entry, nil
	}
	if err != nil {
		return Entry{}, err
	}
	defer file.Close()

	if _, err := file.WriteString(content); err != nil {
		return Entry{}, fmt.Errorf("failed to write journal entry: %w", err)
	}

	entry.Created = true
	return entry, nil
}

// Open ensures the entry for day exists and opens it in the editor.
func (s *Service) Open(ctx context.Context, day time.Time) (Entry, error) {
	entry, err := s.EnsureEntry(day)
	if err != nil {
		return Entry{}, err
	}
	if err := s.editor.Open(ctx, entry.Path); err != nil {
		return entry, err
	}
	return entry, nil
}

// List returns the existing entries, newest first.
func (s *Service) List() ([]Entry, error) {
	files, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []Entry{}, nil
	}
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(files))
	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != constants.NoteExt {
			continue
		}

		name := strings.TrimSuffix(file.Name(), constants.NoteExt)
		date, err := time.ParseInLocation(constants.JournalLayout, name, time.Local)
		if err != nil {
			continue
		}

		entries = append(entries, Entry{
			Path:  filepath.Join(s.dir, file.Name()),
			Title: date.Format(constants.JournalTitle),
			Date:  date,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})

	return entries, nil
}

// ParseDay resolves the optional journal parameter relative to now. An empty
// value is today, an integer is a day offset and anything else is handed to
// dateparse.
func ParseDay(value string, now time.Time) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return now, nil
	}

	if offset, err := strconv.Atoi(value); err == nil {
		return now.AddDate(0, 0, offset), nil
	}

	day, err := dateparse.ParseIn(value, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid journal date %q: %w", value, err)
	}
	return day, nil
}
