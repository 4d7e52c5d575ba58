package root

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/nt/internal/constants"
	"github.com/Paintersrp/nt/internal/state"
	"github.com/Paintersrp/nt/pkg/cmd/html"
	"github.com/Paintersrp/nt/pkg/cmd/journal"
	"github.com/Paintersrp/nt/pkg/cmd/notes"
)

func NewCmdRoot(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "nt <command> [parameter]",
		Short:   "Search, write and render plain markdown notes from the terminal.",
		Version: constants.Version,
		Long: heredoc.Doc(`
			nt keeps markdown notes in a directory tree and drives fzf, bat,
			pandoc and your editor to search, edit, render and attach files to them.

			Configuration is read from ~/.config/nt/config as KEY=VALUE lines.
			Every key can be overridden with an NT_ prefixed environment variable.

			Examples:
			  nt notes
			  nt journal
			  nt html --watch
		`),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&s.Verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(
		notes.NewCmdNotes(s),
		journal.NewCmdJournal(s),
		html.NewCmdHTML(s),
	)

	return cmd
}
