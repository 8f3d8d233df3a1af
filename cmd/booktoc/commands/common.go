package commands

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/booktoc/internal/config"
	"git.home.luguber.info/inful/booktoc/internal/metrics"
)

// Global carries process-wide state shared by the subcommands.
type Global struct {
	Logger *slog.Logger
	Stdout io.Writer
	Stderr io.Writer
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"booktoc.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build   BuildCmd   `cmd:"" help:"Inject TOC navigation into every page and write the results"`
	Autotoc AutotocCmd `cmd:"" help:"Draft a TOC manifest from a content directory"`
	Tree    TreeCmd    `cmd:"" help:"Print the TOC tree declared by the manifest"`
	Init    InitCmd    `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing and installs the default logger.
// Commands that load a config replace it with the configured one.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply(g *Global) error {
	if g.Stderr == nil {
		g.Stderr = os.Stderr
	}
	if g.Stdout == nil {
		g.Stdout = os.Stdout
	}
	g.Logger = config.LoggingConfig{}.NewLogger(g.Stderr, c.Verbose)
	slog.SetDefault(g.Logger)
	return nil
}

// loadConfig reads the configuration and switches the logger to its settings.
func loadConfig(g *Global, root *CLI) (*config.Config, error) {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return nil, err
	}
	g.Logger = cfg.Logging.NewLogger(g.Stderr, root.Verbose)
	slog.SetDefault(g.Logger)
	return cfg, nil
}

// loadOptionalConfig is loadConfig for commands that work without a config
// file; a missing file yields the defaults.
func loadOptionalConfig(g *Global, root *CLI) (*config.Config, error) {
	if _, err := os.Stat(root.Config); errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	return loadConfig(g, root)
}

// newRecorder returns a Prometheus recorder when a metrics textfile is
// configured.
func newRecorder(cfg *config.Config) (metrics.Recorder, func() error) {
	path := cfg.MetricsPath()
	if path == "" {
		return metrics.NoopRecorder{}, func() error { return nil }
	}
	pr := metrics.NewPrometheusRecorder(nil)
	return pr, func() error { return pr.WriteTextfile(path) }
}
