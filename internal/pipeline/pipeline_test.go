package pipeline

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/booktoc/internal/config"
	"git.home.luguber.info/inful/booktoc/internal/globaltoc"
	"git.home.luguber.info/inful/booktoc/internal/metrics"
	terrors "git.home.luguber.info/inful/booktoc/internal/toc/errors"
)

const manifest = `- path: intro
- path: chapter/index
  sections:
    - path: chapter/a
`

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	}
}

func book(t *testing.T) *config.Config {
	t.Helper()
	src := t.TempDir()
	writeFiles(t, src, map[string]string{
		"_toc.yml":            manifest,
		"intro.md":            "# Intro\n",
		"chapter/index.md":    "# Chapter\n",
		"chapter/a.md":        "---\ntitle: A\n---\n# A\n",
		"README.md":           "# Readme\n",
		"notes.txt":           "not a page\n",
		".github/template.md": "# hidden\n",
		"chapter/.ipynb_checkpoints/a-checkpoint.md": "# old\n",
	})
	cfg := config.Default()
	cfg.SourceDir = src
	cfg.OutputDir = filepath.Join(src, "_build", "source")
	cfg.GlobalTocPath = filepath.Join(src, "_toc.yml")
	cfg.ExcludePatterns = []string{"README.md"}
	return cfg
}

func session(t *testing.T, cfg *config.Config) *globaltoc.Session {
	t.Helper()
	s, err := globaltoc.OnConfigLoaded(context.Background(), cfg,
		globaltoc.WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))))
	require.NoError(t, err)
	return s
}

type buildRecorder struct {
	metrics.NoopRecorder
	outcomes []metrics.BuildOutcome
}

func (b *buildRecorder) ObserveBuild(_ time.Duration, o metrics.BuildOutcome) {
	b.outcomes = append(b.outcomes, o)
}

func TestRunInjectsAndWrites(t *testing.T) {
	cfg := book(t)
	rec := &buildRecorder{}

	report, err := Run(context.Background(), cfg, session(t, cfg), rec)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Pages)
	assert.Equal(t, 2, report.Injected)
	assert.Equal(t, 1, report.Unchanged)
	assert.Equal(t, 3, report.Written)
	assert.Equal(t, 0, report.Skipped)
	assert.Equal(t, []metrics.BuildOutcome{metrics.BuildSuccess}, rec.outcomes)

	out, err := os.ReadFile(filepath.Join(cfg.OutputPath(), "chapter", "index.md"))
	require.NoError(t, err)
	assert.Contains(t, string(out), "```{toctree}\n:hidden:\n:titlesonly:\n\na\n```\n")

	leaf, err := os.ReadFile(filepath.Join(cfg.OutputPath(), "chapter", "a.md"))
	require.NoError(t, err)
	assert.Equal(t, "---\ntitle: A\n---\n# A\n", string(leaf))

	_, err = os.Stat(filepath.Join(cfg.OutputPath(), "README.md"))
	assert.True(t, os.IsNotExist(err))
}

func TestRunSkipsUnchangedOutput(t *testing.T) {
	cfg := book(t)
	_, err := Run(context.Background(), cfg, session(t, cfg), nil)
	require.NoError(t, err)

	report, err := Run(context.Background(), cfg, session(t, cfg), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Written)
	assert.Equal(t, 3, report.Skipped)

	writeFiles(t, cfg.SourcePath(), map[string]string{"chapter/a.md": "---\ntitle: A2\n---\n# A\n"})
	report, err = Run(context.Background(), cfg, session(t, cfg), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Written)
}

func TestRunWritesFingerprintOnlyEdit(t *testing.T) {
	cfg := book(t)
	_, err := Run(context.Background(), cfg, session(t, cfg), nil)
	require.NoError(t, err)

	edited := "---\ntitle: A\nfingerprint: 0123abcd\n---\n# A\n"
	writeFiles(t, cfg.SourcePath(), map[string]string{"chapter/a.md": edited})
	report, err := Run(context.Background(), cfg, session(t, cfg), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Written)

	got, err := os.ReadFile(filepath.Join(cfg.OutputPath(), "chapter", "a.md"))
	require.NoError(t, err)
	assert.Equal(t, edited, string(got))
}

func TestRunPageNotInToc(t *testing.T) {
	cfg := book(t)
	writeFiles(t, cfg.SourcePath(), map[string]string{"stray.md": "# Stray\n"})
	rec := &buildRecorder{}

	_, err := Run(context.Background(), cfg, session(t, cfg), rec)
	require.ErrorIs(t, err, terrors.ErrPageNotInToc)
	assert.Equal(t, []metrics.BuildOutcome{metrics.BuildFailed}, rec.outcomes)
}

func TestRunDisabledSessionCopiesPages(t *testing.T) {
	cfg := book(t)
	cfg.GlobalTocPath = ""
	writeFiles(t, cfg.SourcePath(), map[string]string{"stray.md": "# Stray\n"})

	report, err := Run(context.Background(), cfg, session(t, cfg), nil)
	require.NoError(t, err)
	assert.Equal(t, 4, report.Pages)
	assert.Equal(t, 0, report.Injected)
}

func TestRunCanceled(t *testing.T) {
	cfg := book(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, cfg, session(t, cfg), nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunRequiresHook(t *testing.T) {
	_, err := Run(context.Background(), config.Default(), nil, nil)
	require.Error(t, err)
}
