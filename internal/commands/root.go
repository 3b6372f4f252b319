package commands

import (
	"context"
	"fmt"
	"os"

	"componentengine/internal/compiler"
	"componentengine/internal/config"
	"github.com/rs/zerolog"
	cli "github.com/urfave/cli/v2"
)

func NewApp() *cli.App {
	return &cli.App{
		Name:  "afx",
		Usage: "Parse, type check and format component modules.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "Path to the project configuration file.",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level: trace, debug, info, warn or error. Overrides AFX_LOG_LEVEL.",
			},
		},
		Commands: []*cli.Command{
			newInitCommand(),
			newParseCommand(),
			newCheckCommand(),
			newFormatCommand(),
		},
	}
}

// setup reads the configuration and puts a logger for the command on the
// returned context.
func setup(cliCtx *cli.Context, command string) (context.Context, *config.Config, error) {
	cfg, err := config.Read(cliCtx, os.Getenv)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: cliCtx.App.ErrWriter, NoColor: true}).
		Level(cfg.LogLevel).
		With().Timestamp().Str("command", command).Logger()

	if cfg.ConfigFilePath != "" {
		logger.Debug().Str("path", cfg.ConfigFilePath).Msg("loaded config")
	}

	return logger.WithContext(cliCtx.Context), cfg, nil
}

func newCompiler(cfg *config.Config) (*compiler.Compiler, error) {
	globals, err := cfg.Scope()
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	c := compiler.New()
	c.Extension = cfg.Extension
	c.Globals = globals
	return c, nil
}

func requireArgs(cliCtx *cli.Context, min int, usage string) error {
	if cliCtx.NArg() < min {
		return fmt.Errorf("usage: afx %s %s", cliCtx.Command.Name, usage)
	}
	return nil
}
