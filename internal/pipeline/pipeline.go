package pipeline

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/booktoc/internal/config"
	ferrors "git.home.luguber.info/inful/booktoc/internal/foundation/errors"
	"git.home.luguber.info/inful/booktoc/internal/logfields"
	"git.home.luguber.info/inful/booktoc/internal/metrics"
	"git.home.luguber.info/inful/booktoc/internal/observability"
)

// PageHook is called with each page's source before it is written.
// globaltoc.Session implements it.
type PageHook interface {
	OnPageSource(ctx context.Context, docPath string, source *[]byte) (metrics.PageResult, error)
}

// Report summarizes one run.
type Report struct {
	Pages     int
	Injected  int
	Unchanged int
	// Written counts output files created or replaced; Skipped those whose
	// content fingerprint already matched.
	Written  int
	Skipped  int
	Duration time.Duration
}

// Run processes every page under cfg's source directory. The first error
// aborts the run; pages already written stay on disk.
func Run(ctx context.Context, cfg *config.Config, hook PageHook, recorder metrics.Recorder) (*Report, error) {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	start := time.Now()
	report, err := run(ctx, cfg, hook)
	report.Duration = time.Since(start)

	outcome := metrics.BuildSuccess
	if err != nil {
		outcome = metrics.BuildFailed
	}
	recorder.ObserveBuild(report.Duration, outcome)
	return report, err
}

func run(ctx context.Context, cfg *config.Config, hook PageHook) (*Report, error) {
	report := &Report{}
	if cfg == nil || hook == nil {
		return report, ferrors.InternalError("pipeline requires a config and a page hook").Build()
	}
	start := time.Now()
	ctx = observability.WithStage(ctx, "pages")
	log := observability.Logger(ctx, nil)

	src, out := cfg.SourcePath(), cfg.OutputPath()
	pages, err := Discover(src, cfg.ExcludePatterns, out)
	if err != nil {
		return report, err
	}
	log.InfoContext(ctx, "Processing pages", logfields.Dir(src), slog.Int("pages", len(pages)))

	for _, rel := range pages {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Pages++

		data, err := os.ReadFile(filepath.Join(src, filepath.FromSlash(rel)))
		if err != nil {
			return report, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to read page").
				Fatal().
				WithContext("page", rel).
				Build()
		}

		res, err := hook.OnPageSource(ctx, rel, &data)
		if err != nil {
			log.ErrorContext(ctx, "Page failed", logfields.Path(rel), logfields.Error(err))
			return report, err
		}
		if res == metrics.PageInjected {
			report.Injected++
		} else {
			report.Unchanged++
		}

		written, err := writeIfChanged(filepath.Join(out, filepath.FromSlash(rel)), rel, data)
		if err != nil {
			return report, err
		}
		if written {
			report.Written++
		} else {
			report.Skipped++
		}
		log.DebugContext(ctx, "Page processed", logfields.Path(rel), logfields.Result(string(res)), slog.Bool("written", written))
	}

	log.InfoContext(ctx, "Pages processed",
		slog.Int("injected", report.Injected),
		slog.Int("unchanged", report.Unchanged),
		slog.Int("written", report.Written),
		slog.Int("skipped", report.Skipped),
		logfields.Since(start))
	return report, nil
}

func writeIfChanged(dest, rel string, data []byte) (bool, error) {
	if existing, err := os.ReadFile(dest); err == nil && Fingerprint(existing) == Fingerprint(data) {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return false, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to create output directory").
			Fatal().
			WithContext("dir", filepath.Dir(dest)).
			Build()
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return false, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write page").
			Fatal().
			WithContext("page", rel).
			Build()
	}
	return true, nil
}
