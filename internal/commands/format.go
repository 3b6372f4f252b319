package commands

import (
	"fmt"
	"os"

	"componentengine/internal/formatter"
	"github.com/rs/zerolog"
	cli "github.com/urfave/cli/v2"
)

func newFormatCommand() *cli.Command {
	return &cli.Command{
		Name:      "format",
		Usage:     "Prints modules in canonical layout.",
		ArgsUsage: "<file>...",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "write",
				Usage: "Overwrite each file instead of printing it.",
			},
		},
		Action: runFormat,
	}
}

func runFormat(cliCtx *cli.Context) error {
	if err := requireArgs(cliCtx, 1, "[--write] <file>..."); err != nil {
		return err
	}
	ctx, _, err := setup(cliCtx, "format")
	if err != nil {
		return err
	}
	logger := zerolog.Ctx(ctx)

	for _, file := range cliCtx.Args().Slice() {
		src, err := os.ReadFile(file)
		if err != nil {
			return err
		}

		formatted, err := formatter.New().Format(file, string(src))
		if err != nil {
			return err
		}

		if !cliCtx.Bool("write") {
			fmt.Fprint(cliCtx.App.Writer, formatted)
			continue
		}
		if formatted == string(src) {
			logger.Debug().Str("path", file).Msg("already formatted")
			continue
		}
		if err := os.WriteFile(file, []byte(formatted), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", file, err)
		}
		logger.Info().Str("path", file).Msg("formatted")
	}
	return nil
}
