package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/booktoc/cmd/booktoc/commands"
	ferrors "git.home.luguber.info/inful/booktoc/internal/foundation/errors"
	"git.home.luguber.info/inful/booktoc/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, os.Exit))
}

func run(args []string, stdout, stderr io.Writer, exit func(int)) int {
	cli := &commands.CLI{}
	global := &commands.Global{Stdout: stdout, Stderr: stderr}

	parser, err := kong.New(cli,
		kong.Name("booktoc"),
		kong.Description("Global table of contents for documentation books."),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
		kong.Exit(exit),
		kong.Vars{"version": version.String()},
		kong.Bind(global),
	)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	err = kctx.Run(global, cli)
	return ferrors.NewCLIErrorAdapter(cli.Verbose, global.Logger).WithOutput(stderr).HandleError(err)
}
