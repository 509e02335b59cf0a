package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
)

func newLookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <reference>",
		Short: "Look up verses by reference",
		Long: `Look up verses by structured reference.

Accepted forms:

  concord lookup "John 3:16"        single verse
  concord lookup "Gen 1:1-3"        verse range
  concord lookup "Ps 23"            whole chapter
  concord lookup "Gen 1-3"          chapter range
  concord lookup Jude               whole book

Book names may be full names, abbreviations, or close misspellings.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(cmd, strings.Join(args, " "))
		},
	}
}

func runLookup(cmd *cobra.Command, ref string) error {
	return runWithApp(cmd, func(ctx context.Context, a *app) error {
		set, err := a.engine.Lookup(ctx, a.cfg.General.Translation, ref)
		if err != nil {
			return err
		}
		a.renderer.Verses(set)
		return nil
	})
}
