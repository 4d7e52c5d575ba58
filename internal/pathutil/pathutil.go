package pathutil

import (
	"path"
	"path/filepath"
	"strings"
)

// JoinRelative joins a possibly empty base directory with a relative segment.
// An empty base yields the segment unchanged instead of a rooted path.
func JoinRelative(base, segment string) string {
	if base == "" {
		return segment
	}
	return base + "/" + segment
}

// NormalizePath converts Windows-style separators to the current platform's separator
// and cleans the resulting path.
func NormalizePath(p string) string {
	if p == "" {
		return ""
	}

	replaced := strings.ReplaceAll(p, "\\", "/")
	return filepath.Clean(filepath.FromSlash(replaced))
}

// VaultRelative returns the path to target relative to the provided notes root.
// The returned path always uses forward slashes.
func VaultRelative(root, target string) (string, error) {
	base := NormalizePath(root)
	cleanedTarget := NormalizePath(target)

	rel, err := filepath.Rel(base, cleanedTarget)
	if err != nil {
		return "", err
	}

	return filepath.ToSlash(rel), nil
}

// RelativeDir returns the directory part of a root-relative note path, or ""
// when the note lives directly in the root.
func RelativeDir(rel string) string {
	if rel == "" {
		return ""
	}
	dir := path.Dir(filepath.ToSlash(rel))
	if dir == "." || dir == "/" {
		return ""
	}
	return dir
}

// Title strips the directory and extension from a note path.
func Title(p string) string {
	base := filepath.Base(filepath.FromSlash(p))
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// FromRoot resolves a forward-slash relative path against root.
func FromRoot(root, rel string) string {
	return filepath.Join(root, filepath.FromSlash(rel))
}

// WithinRoot reports whether target resolves to a path strictly inside root.
func WithinRoot(root, target string) bool {
	rel, err := VaultRelative(root, target)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		return false
	}
	return !filepath.IsAbs(rel)
}
