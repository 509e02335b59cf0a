package cmd

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/jmhobbs/concord/internal/config"
	"github.com/jmhobbs/concord/internal/engine"
	"github.com/jmhobbs/concord/internal/search"
	"github.com/jmhobbs/concord/internal/ui"
)

// app bundles the loaded configuration, the query engine, and the
// renderer for one command invocation.
type app struct {
	cfg      *config.Config
	engine   *engine.Engine
	renderer *ui.Renderer
}

// newApp loads configuration, applies flag overrides, and builds the
// engine. Callers must close the returned app.
func newApp(ctx context.Context, cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if translation != "" {
		cfg.General.Translation = translation
	}

	backend, err := search.ParseBackend(cfg.Search.Backend)
	if err != nil {
		return nil, err
	}

	eng, err := engine.New(ctx, engine.Options{
		CorpusDir: cfg.Paths.CorpusDir,
		CacheDir:  cfg.Paths.CacheDir,
		Stemming:  cfg.Text.Stemming,
		Backend:   backend,
		Params:    search.Params{K1: cfg.Search.K1, B: cfg.Search.B},
	})
	if err != nil {
		return nil, err
	}

	plain := noColor || cfg.General.NoColor || !stdoutIsTerminal()
	renderer := ui.NewRenderer(cmd.OutOrStdout(), ui.GetStyles(plain))

	return &app{cfg: cfg, engine: eng, renderer: renderer}, nil
}

func (a *app) close() {
	_ = a.engine.Close()
}

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// runWithApp wraps a command body with app setup, teardown, and
// user-facing error rendering.
func runWithApp(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	ctx := cmd.Context()
	a, err := newApp(ctx, cmd)
	if err != nil {
		renderer := ui.NewRenderer(cmd.ErrOrStderr(), ui.GetStyles(true))
		renderer.Error(err)
		return err
	}
	defer a.close()

	if err := fn(ctx, a); err != nil {
		a.renderer.Error(err)
		return err
	}
	return nil
}
