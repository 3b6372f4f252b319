package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"componentengine/internal/compiler"
	"componentengine/internal/formatter"
	"componentengine/internal/watch"
	"github.com/rs/zerolog"
	cli "github.com/urfave/cli/v2"
)

func newCheckCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Type checks a module and everything it imports.",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "types",
				Usage: "Print the resolved type of every node.",
			},
			&cli.BoolFlag{
				Name:  "watch",
				Usage: "Check again whenever a loaded module changes.",
			},
		},
		Action: runCheck,
	}
}

func runCheck(cliCtx *cli.Context) error {
	if err := requireArgs(cliCtx, 1, "[--types] [--watch] <file>"); err != nil {
		return err
	}
	ctx, cfg, err := setup(cliCtx, "check")
	if err != nil {
		return err
	}
	c, err := newCompiler(cfg)
	if err != nil {
		return err
	}

	entry := cliCtx.Args().First()
	showTypes := cliCtx.Bool("types")

	if !cliCtx.Bool("watch") {
		return check(ctx, cliCtx, c, entry, showTypes)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	return watchAndCheck(ctx, cliCtx, c, entry, showTypes)
}

func check(ctx context.Context, cliCtx *cli.Context, c *compiler.Compiler, entry string, showTypes bool) error {
	mod, err := c.Check(ctx, entry)
	if err != nil {
		return err
	}
	if showTypes {
		fmt.Fprint(cliCtx.App.Writer, formatter.New().AnnotateModuleTypes(mod))
		return nil
	}
	fmt.Fprintf(cliCtx.App.Writer, "%s: ok\n", entry)
	return nil
}

func watchAndCheck(ctx context.Context, cliCtx *cli.Context, c *compiler.Compiler, entry string, showTypes bool) error {
	logger := zerolog.Ctx(ctx)

	w, err := watch.New()
	if err != nil {
		return err
	}
	defer w.Close()

	recheck := func(ctx context.Context, changed string) error {
		if changed != "" {
			logger.Info().Str("path", changed).Msg("rechecking")
		}
		c.Reset()
		err := check(ctx, cliCtx, c, entry, showTypes)
		// modules loaded before a failure are watched too
		paths := []string{entry}
		for path := range c.Modules {
			paths = append(paths, path)
		}
		if addErr := w.Add(paths...); addErr != nil {
			logger.Warn().Err(addErr).Msg("watch modules")
		}
		return err
	}

	if err := recheck(ctx, ""); err != nil {
		logger.Error().Err(err).Msg("check failed")
	}
	logger.Info().Str("entry", entry).Msg("watching for changes")
	return w.Run(ctx, recheck)
}
