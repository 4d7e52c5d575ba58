// Package attach copies files next to a note and links them from it.
package attach

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Paintersrp/nt/internal/constants"
	"github.com/Paintersrp/nt/internal/note"
)

// IsImage reports whether name has an image extension, ignoring case.
func IsImage(name string) bool {
	return constants.ImageExts[strings.ToLower(filepath.Ext(name))]
}

// Link is the markdown line referencing an attachment. Images are embedded.
func Link(dirName, file string) string {
	link := fmt.Sprintf("[%s](%s/%s)", file, dirName, file)
	if IsImage(file) {
		return "!" + link
	}
	return link
}

// Files copies each named file from srcDir into the note's attachment
// directory and appends one link per file followed by a blank line. An empty
// list leaves the note untouched.
func Files(n note.Note, srcDir string, files []string) error {
	if len(files) == 0 {
		return nil
	}

	dirName := n.AttachmentDirName()
	dest := filepath.Join(n.Dir(), dirName)
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return fmt.Errorf("failed to create attachment directory: %w", err)
	}

	var links strings.Builder
	for _, file := range files {
		name, err := safeName(file)
		if err != nil {
			return err
		}

		if err := copyFile(filepath.Join(srcDir, name), filepath.Join(dest, name)); err != nil {
			return err
		}
		links.WriteString(Link(dirName, name))
		links.WriteString("\n")
	}
	links.WriteString("\n")

	if err := n.Append(links.String()); err != nil {
		return fmt.Errorf("failed to link attachments in %s: %w", n.Rel, err)
	}
	return nil
}

// safeName accepts plain file names only.
func safeName(name string) (string, error) {
	cleaned := filepath.Clean(name)
	if name == "" || cleaned != filepath.Base(cleaned) || cleaned == ".." || cleaned == "." {
		return "", fmt.Errorf("invalid attachment name: %q", name)
	}
	return cleaned, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open attachment: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create attachment copy: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy %s: %w", filepath.Base(src), err)
	}
	return out.Close()
}
