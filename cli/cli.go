package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/randl/cli/cmd"
	"github.com/ardnew/randl/pkg"
)

// CLI is the top-level command-line interface for randl.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Apply   cmd.Apply   `cmd:"" help:"Randomize a param file"`
	Check   cmd.Check   `cmd:"" help:"Validate documents"`
	Targets cmd.Targets `cmd:"" help:"List the files documents edit"`
	Fmt     cmd.Fmt     `cmd:"" help:"Print a document"`
	Init    cmd.Init    `cmd:"" help:"Write a starter document"`

	Version kong.VersionFlag `help:"Print version and exit" short:"V"`
}

// Run executes the randl CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	vars := kong.Vars{
		"version":                 pkg.Version(),
		cmd.DocumentDirIdentifier: pkg.DocumentDir(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Logger flags are applied before kong parses so that parse errors are
	// reported in the requested format.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configPath(".json")),
		kong.Configuration(loadConfig, configPath(pkg.DocumentExt)),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	defer cli.Log.start(ctx)()

	// no-op unless built with tag pprof and a mode is selected
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}
