package commands

import (
	"git.home.luguber.info/inful/booktoc/internal/autotoc"
	"git.home.luguber.info/inful/booktoc/internal/logfields"
)

// AutotocCmd implements the 'autotoc' command.
type AutotocCmd struct {
	Dir       string `arg:"" help:"Content directory to scan" type:"path"`
	Output    string `short:"o" help:"Write the manifest to this file instead of stdout" type:"path"`
	Force     bool   `help:"Overwrite an existing output file"`
	SplitChar string `name:"split-char" help:"Character separating words in folder names (defaults to filename_split_char)"`
}

func (a *AutotocCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadOptionalConfig(g, root)
	if err != nil {
		return err
	}
	split := a.SplitChar
	if split == "" {
		split = cfg.FilenameSplitChar
	}

	records, err := autotoc.Scan(a.Dir, split)
	if err != nil {
		return err
	}
	data, err := autotoc.Serialize(records)
	if err != nil {
		return err
	}

	recorder, flush := newRecorder(cfg)
	recorder.AddAutotocRecords(len(records))

	if a.Output == "" {
		if _, err := g.Stdout.Write(data); err != nil {
			return err
		}
	} else {
		if err := autotoc.WriteFile(a.Output, data, a.Force); err != nil {
			return err
		}
		g.Logger.Info("Wrote draft TOC; review it before building",
			logfields.Path(a.Output), logfields.Records(len(records)))
	}
	return flush()
}
