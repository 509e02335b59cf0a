package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmhobbs/concord/internal/config"
	"github.com/jmhobbs/concord/internal/corpus"
	"github.com/jmhobbs/concord/internal/index"
	"github.com/jmhobbs/concord/internal/output"
)

func newIndexCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Build or refresh the search indexes",
		Long: `Build the per-translation search indexes and cache them on disk.

Indexes are rebuilt automatically when a corpus file changes, so this
command is only needed to warm the cache ahead of time or to force a
rebuild with --force.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runIndex(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Discard cached indexes and rebuild")

	return cmd
}

func runIndex(cmd *cobra.Command, force bool) error {
	out := output.New(cmd.OutOrStdout())

	if force {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		for _, code := range corpus.KnownTranslations {
			path := index.CachePath(cfg.Paths.CacheDir, code)
			if err := os.Remove(path); err == nil {
				out.Statusf("→", "removed cached index for %s", code)
			}
		}
	}

	return runWithApp(cmd, func(ctx context.Context, a *app) error {
		for _, st := range a.engine.Stats() {
			out.Successf("%s: %d verses, %d terms", st.Translation, st.Verses, st.Terms)
		}
		return nil
	})
}
