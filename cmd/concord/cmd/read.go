package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmhobbs/concord/internal/engine"
	"github.com/jmhobbs/concord/internal/ui"
)

func newReadCmd() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "read <reference>",
		Short: "Read a passage in a scrollable pager",
		Long: `Read a chapter, chapter range, or whole book in a full-screen
pager with chapter headings.

  concord read "Ps 23"
  concord read "Gen 1-3"
  concord read Jude --plain`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := strings.Join(args, " ")
			return runRead(cmd, ref, plain)
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Print the passage instead of paging")

	return cmd
}

func runRead(cmd *cobra.Command, ref string, plain bool) error {
	return runWithApp(cmd, func(ctx context.Context, a *app) error {
		if a.cfg.General.Watch {
			if err := a.engine.Watch(ctx, engine.DefaultDebounce); err != nil {
				return err
			}
		}

		set, err := a.engine.Lookup(ctx, a.cfg.General.Translation, ref)
		if err != nil {
			return err
		}

		if plain || !stdoutIsTerminal() {
			a.renderer.Verses(set)
			return nil
		}

		rng, err := a.engine.Resolve(a.cfg.General.Translation, ref)
		if err != nil {
			return err
		}
		styles := ui.GetStyles(noColor || a.cfg.General.NoColor)
		return ui.Page(rng.String(), set, styles)
	})
}
