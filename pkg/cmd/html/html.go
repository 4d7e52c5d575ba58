package html

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/nt/internal/render"
	"github.com/Paintersrp/nt/internal/state"
)

func NewCmdHTML(s *state.State) *cobra.Command {
	var (
		force bool
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "html",
		Short: "Render every stale note to HTML.",
		Long: heredoc.Doc(`
			Renders each note whose HTML document is missing or older than the
			note, next to the note. Notes are processed one at a time and the
			first failure stops the run.

			Examples:
			  nt html
			  nt html --force
			  nt html --watch
		`),
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return s.Prepare()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			batch := s.Batch(force)

			results, err := batch.Run(cmd.Context())
			if len(results) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), render.Summary(results))
			}
			if err != nil || !watch {
				return err
			}

			return runWatch(cmd, s, batch)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Render every note, even up to date ones")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Keep rendering notes as they change")
	return cmd
}

func runWatch(cmd *cobra.Command, s *state.State, batch *render.Batch) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	w, err := render.NewWatcher(s.Config.NotesDir)
	if err != nil {
		return err
	}
	defer w.Close()

	fmt.Fprintf(cmd.OutOrStdout(), "Watching %s for changes. Press Ctrl-C to stop.\n", s.Config.NotesDir)

	return w.Run(ctx, func(rel string) error {
		result, err := batch.One(ctx, rel)
		if err != nil {
			return err
		}
		s.Logger.Debug("watched note", slog.String("note", rel), slog.String("status", result.Status))
		return nil
	})
}
