package session

import (
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/charmbracelet/lipgloss"

	"github.com/Paintersrp/nt/internal/fzf"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	keyStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#04B575")).Width(10)
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#874BFD")).
			Padding(0, 1)
)

var descriptions = map[fzf.Action]string{
	fzf.Edit:    "open the highlighted note in the editor",
	fzf.Render:  "render the note to HTML and open it",
	fzf.Create:  "create a note next to the highlighted one",
	fzf.Filter:  "restrict the list to notes matching a regex",
	fzf.Shell:   "start a shell in the note's directory",
	fzf.Journal: "open today's journal entry",
	fzf.Attach:  "copy files next to the note and link them",
	fzf.Yank:    "copy the note's path to the clipboard",
	fzf.Help:    "show this help",
	fzf.Exit:    "leave (also esc / ctrl-c)",
}

var intro = heredoc.Doc(`
	Type to narrow the list, then press a key to act on the
	highlighted note. Searches are kept in the history file.
`)

// HelpText lists every action with the key it is bound to.
func HelpText(keys map[string]string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("nt key bindings"))
	b.WriteString("\n\n")
	b.WriteString(intro)
	b.WriteString("\n")

	for _, action := range fzf.Actions {
		key := keys[string(action)]
		if key == "" {
			key = "-"
		}
		fmt.Fprintf(&b, "%s %s\n", keyStyle.Render(key), descriptions[action])
	}

	return boxStyle.Render(strings.TrimRight(b.String(), "\n"))
}
