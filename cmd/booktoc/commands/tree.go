package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/booktoc/internal/globaltoc"
	"git.home.luguber.info/inful/booktoc/internal/toc"
	terrors "git.home.luguber.info/inful/booktoc/internal/toc/errors"
)

// TreeCmd implements the 'tree' command.
type TreeCmd struct {
	Manifest string `arg:"" optional:"" help:"Manifest to print (defaults to globaltoc_path from the config)" type:"path"`
}

func (t *TreeCmd) Run(g *Global, root *CLI) error {
	path := t.Manifest
	if path == "" {
		cfg, err := loadConfig(g, root)
		if err != nil {
			return err
		}
		if !cfg.Enabled() {
			return terrors.ManifestFormat(cfg.File(), "no globaltoc_path configured", nil)
		}
		path = cfg.ManifestPath()
	}

	tree, err := toc.LoadFile(path)
	if err != nil {
		return err
	}
	session, err := globaltoc.FromTree(context.Background(), tree, globaltoc.WithLogger(g.Logger))
	if err != nil {
		return err
	}
	rootDoc, _ := session.RootDocument()
	fmt.Fprintf(g.Stdout, "root: %s\n", rootDoc)
	return session.Tree().Print(g.Stdout)
}
