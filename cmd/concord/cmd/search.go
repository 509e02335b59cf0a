package cmd

import (
	"context"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
)

// searchOptions holds CLI flags for search.
type searchOptions struct {
	limit  int
	scores bool
}

func newSearchCmd() *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:     "search <query>",
		Aliases: []string{"s"},
		Short:   "Search verse text",
		Long: `Search the full verse text with ranked results.

Examples:

  concord search "still small voice"
  concord s shepherd --limit 5
  concord search faith -t asv --scores`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			return runSearch(cmd, query, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 0, "Maximum number of results (default from config)")
	cmd.Flags().BoolVar(&opts.scores, "scores", false, "Show relevance scores")

	return cmd
}

func runSearch(cmd *cobra.Command, query string, opts searchOptions) error {
	return runWithApp(cmd, func(ctx context.Context, a *app) error {
		limit := opts.limit
		if limit <= 0 {
			limit = a.cfg.Search.MaxResults
		}

		slog.Info("search_started",
			slog.String("query", query),
			slog.String("translation", a.cfg.General.Translation),
			slog.Int("limit", limit))

		set, err := a.engine.Search(ctx, a.cfg.General.Translation, query, limit)
		if err != nil {
			return err
		}

		a.renderer.ShowScores = opts.scores
		a.renderer.Verses(set)
		return nil
	})
}
