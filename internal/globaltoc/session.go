package globaltoc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/booktoc/internal/config"
	"git.home.luguber.info/inful/booktoc/internal/directive"
	ferrors "git.home.luguber.info/inful/booktoc/internal/foundation/errors"
	"git.home.luguber.info/inful/booktoc/internal/frontmatter"
	"git.home.luguber.info/inful/booktoc/internal/inject"
	"git.home.luguber.info/inful/booktoc/internal/logfields"
	"git.home.luguber.info/inful/booktoc/internal/markdown"
	"git.home.luguber.info/inful/booktoc/internal/metrics"
	"git.home.luguber.info/inful/booktoc/internal/observability"
	"git.home.luguber.info/inful/booktoc/internal/pathkey"
	"git.home.luguber.info/inful/booktoc/internal/toc"
	terrors "git.home.luguber.info/inful/booktoc/internal/toc/errors"
)

// ErrAlreadyInjected is returned when the same page is passed to
// OnPageSource twice within one session.
var ErrAlreadyInjected = errors.New("navigation already injected into page")

// Session is the per-build state of the global TOC.
type Session struct {
	id       string
	manifest string
	tree     *toc.Tree
	root     pathkey.Key
	logger   *slog.Logger
	recorder metrics.Recorder

	mu   sync.Mutex
	seen map[pathkey.Key]string
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the base logger; the session adds its build_id.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(s *Session) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithBuildID overrides the generated build id.
func WithBuildID(id string) Option {
	return func(s *Session) {
		if id != "" {
			s.id = id
		}
	}
}

func newSession(opts []Option) *Session {
	s := &Session{
		id:       uuid.NewString(),
		logger:   slog.Default(),
		recorder: metrics.NoopRecorder{},
		seen:     make(map[pathkey.Key]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logfields.BuildID(s.id))
	return s
}

// OnConfigLoaded is the configuration hook. It loads the manifest named by
// cfg and derives the root document. When cfg names no manifest the returned
// session is disabled and every page passes through untouched.
func OnConfigLoaded(ctx context.Context, cfg *config.Config, opts ...Option) (*Session, error) {
	if cfg == nil {
		return nil, ferrors.ConfigError("configuration required").Build()
	}
	s := newSession(opts)
	if !cfg.Enabled() {
		s.logger.DebugContext(ctx, "Global TOC disabled; no manifest configured")
		return s, nil
	}

	s.manifest = cfg.ManifestPath()
	start := time.Now()
	tree, err := toc.LoadFile(s.manifest)
	s.recorder.ObserveManifestLoad(time.Since(start))
	if err != nil {
		return nil, err
	}
	return s.attach(ctx, tree)
}

// FromTree builds an enabled session around an already loaded tree.
func FromTree(ctx context.Context, tree *toc.Tree, opts ...Option) (*Session, error) {
	if tree == nil || tree.Root == nil {
		return nil, ferrors.InternalError("nil TOC tree").Build()
	}
	s := newSession(opts)
	s.manifest = tree.Source
	return s.attach(ctx, tree)
}

func (s *Session) attach(ctx context.Context, tree *toc.Tree) (*Session, error) {
	root, err := tree.RootDocument()
	if err != nil {
		return nil, err
	}
	s.tree = tree
	s.root = root
	s.logger = s.logger.With(logfields.Manifest(s.manifest))

	for _, dup := range tree.Duplicates() {
		s.logger.WarnContext(ctx, "Path declared more than once in TOC; only the first entry is used",
			logfields.DocName(dup.String()))
	}
	s.logger.InfoContext(ctx, "Loaded global TOC",
		slog.String("root", root.String()),
		slog.Int("pages", len(tree.Keys())))
	return s, nil
}

// ID is the build id attached to every log record of the session.
func (s *Session) ID() string { return s.id }

// Enabled reports whether a manifest was loaded.
func (s *Session) Enabled() bool { return s.tree != nil }

// Tree returns the loaded tree, nil when disabled.
func (s *Session) Tree() *toc.Tree { return s.tree }

// Manifest is the manifest path the tree was read from.
func (s *Session) Manifest() string { return s.manifest }

// RootDocument is the build's landing page. ok is false when disabled.
func (s *Session) RootDocument() (pathkey.Key, bool) {
	return s.root, s.Enabled()
}

// Context returns ctx annotated with the session's build values for
// observability.Logger.
func (s *Session) Context(ctx context.Context) context.Context {
	ctx = observability.WithBuildID(ctx, s.id)
	if s.manifest != "" {
		ctx = observability.WithManifest(ctx, s.manifest)
	}
	return ctx
}

// Result is what OnPageSource did to a page.
type Result = metrics.PageResult

// OnPageSource is the per-page hook. docPath identifies the page relative to
// the source root, suffix included; source is replaced when a directive is
// appended. A page missing from the manifest is an error.
func (s *Session) OnPageSource(ctx context.Context, docPath string, source *[]byte) (Result, error) {
	if !s.Enabled() {
		return metrics.PageUnchanged, nil
	}
	if source == nil {
		return metrics.PageFailed, ferrors.InternalError("nil page source").WithContext("page", docPath).Build()
	}

	key := pathkey.Normalize(docPath)
	log := s.logger.With(logfields.DocName(key.String()))

	node, ok := s.tree.Find(key)
	if !ok {
		s.recorder.IncPage(metrics.PageFailed)
		return metrics.PageFailed, terrors.PageNotInToc(docPath, s.manifest)
	}
	if !node.HasSections() {
		s.recorder.IncPage(metrics.PageUnchanged)
		log.DebugContext(ctx, "Page has no children in TOC")
		return metrics.PageUnchanged, nil
	}
	block := directive.Synthesize(node)
	if block.Empty() {
		s.recorder.IncPage(metrics.PageUnchanged)
		log.DebugContext(ctx, "Page children have no paths to link")
		return metrics.PageUnchanged, nil
	}
	f, err := inject.ForPath(docPath)
	if err != nil {
		s.recorder.IncPage(metrics.PageFailed)
		return metrics.PageFailed, err
	}
	log = log.With(logfields.Format(f.Name()))

	if err := s.markInjected(key, docPath); err != nil {
		s.recorder.IncPage(metrics.PageFailed)
		return metrics.PageFailed, err
	}

	if f == inject.Markdown {
		s.warnExistingToctree(ctx, log, *source)
	}

	out, err := inject.Inject(docPath, *source, block)
	if err != nil {
		s.recorder.IncPage(metrics.PageFailed)
		return metrics.PageFailed, err
	}
	*source = out
	s.recorder.IncPage(metrics.PageInjected)
	log.DebugContext(ctx, "Injected toctree", logfields.Children(len(block.Entries)))
	return metrics.PageInjected, nil
}

// markInjected records the page claiming key. Two source files that
// normalize to the same key (chapter/index.md and chapter/index.ipynb)
// would both receive the entry's navigation.
func (s *Session) markInjected(key pathkey.Key, docPath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	first, ok := s.seen[key]
	if !ok {
		s.seen[key] = docPath
		return nil
	}
	msg := fmt.Sprintf("page %q was already processed in this build", docPath)
	if first != docPath {
		msg = fmt.Sprintf("pages %q and %q both resolve to TOC entry %q", first, docPath, key)
	}
	return ferrors.TocError(msg).
		WithCause(ErrAlreadyInjected).
		WithContext("page", docPath).
		WithContext("first_page", first).
		WithContext("docname", key.String()).
		Build()
}

// warnExistingToctree flags pages that still carry a hand-written toctree;
// the rendered navigation would list their children twice.
func (s *Session) warnExistingToctree(ctx context.Context, log *slog.Logger, source []byte) {
	doc, err := frontmatter.Split(source)
	if err != nil {
		return
	}
	for _, d := range markdown.FindDirectives(doc.Body) {
		if d.Name == "toctree" {
			log.WarnContext(ctx, "Page already contains a toctree directive; navigation will be duplicated",
				logfields.Line(d.Line+doc.BodyOffset()))
			return
		}
	}
}
