package commands

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"git.home.luguber.info/inful/booktoc/internal/config"
	"git.home.luguber.info/inful/booktoc/internal/globaltoc"
	"git.home.luguber.info/inful/booktoc/internal/logfields"
	"git.home.luguber.info/inful/booktoc/internal/pipeline"
	"git.home.luguber.info/inful/booktoc/internal/watch"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Watch    bool          `short:"w" help:"Rebuild when the manifest or pages change"`
	Debounce time.Duration `help:"Quiet period before a watch rebuild" default:"300ms"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if !b.Watch {
		return RunBuild(ctx, g, cfg)
	}

	if err := RunBuild(ctx, g, cfg); err != nil {
		g.Logger.Warn("Initial build failed; watching for changes", logfields.Error(err))
	}
	roots := []string{cfg.SourcePath()}
	if cfg.Enabled() {
		roots = append(roots, filepath.Dir(cfg.ManifestPath()))
	}
	w := watch.New(roots,
		watch.WithDebounce(b.Debounce),
		watch.WithIgnoredDirs(cfg.OutputPath()),
		watch.WithIgnoredPaths(cfg.MetricsPath()),
		watch.WithLogger(g.Logger))
	return w.Run(ctx, func(ctx context.Context) error { return RunBuild(ctx, g, cfg) })
}

// RunBuild performs one build with a fresh session.
func RunBuild(ctx context.Context, g *Global, cfg *config.Config) error {
	recorder, flush := newRecorder(cfg)

	session, err := globaltoc.OnConfigLoaded(ctx, cfg,
		globaltoc.WithLogger(g.Logger),
		globaltoc.WithRecorder(recorder))
	if err != nil {
		return err
	}

	report, err := pipeline.Run(session.Context(ctx), cfg, session, recorder)
	if flushErr := flush(); flushErr != nil {
		g.Logger.Warn("Failed to write metrics textfile", logfields.Path(cfg.MetricsPath()), logfields.Error(flushErr))
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(g.Stdout, "Processed %d pages (%d with navigation) in %s; wrote %d, %d unchanged\n",
		report.Pages, report.Injected, report.Duration.Round(time.Millisecond), report.Written, report.Skipped)
	return nil
}
