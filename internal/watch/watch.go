// Package watch reruns a build when files under the watched roots change.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	ferrors "git.home.luguber.info/inful/booktoc/internal/foundation/errors"
	"git.home.luguber.info/inful/booktoc/internal/logfields"
	"git.home.luguber.info/inful/booktoc/internal/util/sets"
)

// DefaultDebounce is how long the tree must be quiet before a rebuild.
const DefaultDebounce = 300 * time.Millisecond

// BuildFunc runs one build. Errors are logged and watching continues.
type BuildFunc func(ctx context.Context) error

// Watcher watches directory trees recursively.
type Watcher struct {
	roots    []string
	ignore   sets.Set[string]
	files    sets.Set[string]
	debounce time.Duration
	logger   *slog.Logger
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before a rebuild.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithIgnoredDirs excludes directories (and everything below them), typically
// the build output so writing it does not retrigger the build.
func WithIgnoredDirs(dirs ...string) Option {
	return func(w *Watcher) {
		for _, d := range dirs {
			if d == "" {
				continue
			}
			if abs, err := filepath.Abs(d); err == nil {
				w.ignore.Add(abs)
			}
		}
	}
}

// WithIgnoredPaths excludes files the build itself writes inside a watched
// root, such as the metrics textfile. Siblings whose name starts with the
// file name are excluded too, covering write-then-rename temp files.
func WithIgnoredPaths(paths ...string) Option {
	return func(w *Watcher) {
		for _, p := range paths {
			if p == "" {
				continue
			}
			if abs, err := filepath.Abs(p); err == nil {
				w.files.Add(abs)
			}
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// New returns a Watcher for roots. Duplicate roots are collapsed.
func New(roots []string, opts ...Option) *Watcher {
	w := &Watcher{
		ignore:   sets.New[string](),
		files:    sets.New[string](),
		debounce: DefaultDebounce,
		logger:   slog.Default(),
	}
	seen := sets.New[string]()
	for _, r := range roots {
		abs, err := filepath.Abs(r)
		if err != nil {
			abs = r
		}
		if seen.Add(abs) {
			w.roots = append(w.roots, abs)
		}
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run calls build on every debounced change until ctx is canceled. Builds run
// one at a time; changes during a build queue one more run.
func (w *Watcher) Run(ctx context.Context, build BuildFunc) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryRuntime, "failed to create file watcher").Fatal().Build()
	}
	defer func() { _ = fw.Close() }()

	for _, root := range w.roots {
		if err := w.addDirsRecursive(fw, root); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to watch directory").
				Fatal().
				WithContext("dir", root).
				Build()
		}
	}
	w.logger.InfoContext(ctx, "Watching for changes", slog.Any("roots", w.roots))

	rebuildReq, trigger, stop := debouncer(w.debounce)
	defer stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(fw, ev, trigger)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.WarnContext(ctx, "Watcher error", logfields.Error(err))
		case <-rebuildReq:
			w.logger.InfoContext(ctx, "Change detected; rebuilding")
			if err := build(ctx); err != nil {
				w.logger.WarnContext(ctx, "Rebuild failed", logfields.Error(err))
			}
		}
	}
}

func (w *Watcher) handleEvent(fw *fsnotify.Watcher, ev fsnotify.Event, trigger func()) {
	if shouldIgnoreEvent(ev.Name) || w.ignored(ev.Name) {
		return
	}
	if ev.Op&fsnotify.Create == fsnotify.Create {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = w.addDirsRecursive(fw, ev.Name)
		}
	}
	if ev.Op == fsnotify.Chmod {
		return
	}
	w.logger.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	trigger()
}

func (w *Watcher) ignored(p string) bool {
	abs, err := filepath.Abs(p)
	if err != nil {
		return false
	}
	for dir := range w.ignore {
		if abs == dir || strings.HasPrefix(abs, dir+string(filepath.Separator)) {
			return true
		}
	}
	dir, base := filepath.Split(abs)
	for f := range w.files {
		fdir, fbase := filepath.Split(f)
		if dir == fdir && strings.HasPrefix(base, fbase) {
			return true
		}
	}
	return false
}

func (w *Watcher) addDirsRecursive(fw *fsnotify.Watcher, root string) error {
	fi, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !fi.IsDir() {
		return fmt.Errorf("%s is not a directory", root)
	}
	return filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if p != root && (shouldIgnoreEvent(p) || w.ignored(p)) {
			return filepath.SkipDir
		}
		if err := fw.Add(p); err != nil {
			w.logger.Warn("Watch add failed", logfields.Dir(p), logfields.Error(err))
		}
		return nil
	})
}

// debouncer returns a channel that receives once the trigger has been quiet
// for d, the trigger itself and a stop function.
func debouncer(d time.Duration) (<-chan struct{}, func(), func()) {
	var mu sync.Mutex
	var timer *time.Timer
	req := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(d, func() {
			select {
			case req <- struct{}{}:
			default:
			}
		})
	}
	stop := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
	}
	return req, trigger, stop
}

// shouldIgnoreEvent skips hidden files, notebook checkpoints and editor
// temp files.
func shouldIgnoreEvent(p string) bool {
	base := filepath.Base(p)
	switch {
	case strings.HasPrefix(base, "."):
		return true
	case strings.Contains(base, "ipynb_checkpoints"):
		return true
	case strings.HasSuffix(base, "~"), strings.HasSuffix(base, ".swp"), strings.HasSuffix(base, ".swx"):
		return true
	case strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#"):
		return true
	}
	return false
}
