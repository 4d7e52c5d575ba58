package notes

import (
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/nt/internal/state"
)

func NewCmdNotes(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notes [query]",
		Aliases: []string{"n"},
		Short:   "Search, create, edit and render notes interactively.",
		Long: heredoc.Doc(`
			Opens the note picker over every note under the notes directory.
			Keys act on the highlighted note; press the help key (f1 by
			default) inside the picker to list them.

			The optional query pre-fills the picker.

			Examples:
			  nt notes
			  nt notes meeting
		`),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return s.Prepare()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.Session(strings.Join(args, " ")).Run(cmd.Context())
		},
	}

	return cmd
}
