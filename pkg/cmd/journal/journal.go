package journal

import (
	"fmt"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	jsvc "github.com/Paintersrp/nt/internal/services/journal"
	"github.com/Paintersrp/nt/internal/state"
)

func NewCmdJournal(s *state.State) *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:     "journal [date]",
		Aliases: []string{"j"},
		Short:   "Open the journal entry for today or a given day.",
		Long: heredoc.Doc(`
			Creates the entry for the day if it does not exist yet, with the long
			form date as its heading, and opens it in the editor.

			The optional date is a day offset or any common date format.

			Examples:
			  nt journal               // today
			  nt journal -- -1         // yesterday
			  nt journal 2024-03-05
			  nt journal "March 5, 2024"
		`),
		Args: cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return s.Prepare()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				return runList(cmd, s.Journal)
			}

			var param string
			if len(args) > 0 {
				param = args[0]
			}
			return run(cmd, s.Journal, param)
		},
	}

	cmd.Flags().BoolVarP(&list, "list", "l", false, "List existing entries, newest first")
	return cmd
}

func run(cmd *cobra.Command, svc *jsvc.Service, param string) error {
	day, err := jsvc.ParseDay(param, svc.Today())
	if err != nil {
		return err
	}

	entry, err := svc.Open(cmd.Context(), day)
	if err != nil {
		return err
	}
	if entry.Created {
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", entry.Path)
	}
	return nil
}

func runList(cmd *cobra.Command, svc *jsvc.Service) error {
	entries, err := svc.List()
	if err != nil {
		return err
	}
	for _, entry := range entries {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", entry.Date.Format(time.DateOnly), entry.Title)
	}
	return nil
}
