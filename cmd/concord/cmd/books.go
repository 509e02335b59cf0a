package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

func newBooksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "books",
		Short: "List the books available in a translation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWithApp(cmd, func(ctx context.Context, a *app) error {
				books, err := a.engine.Books(a.cfg.General.Translation)
				if err != nil {
					return err
				}
				a.renderer.Books(books)
				return nil
			})
		},
	}
}
