package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"componentengine/internal/config"
	cli "github.com/urfave/cli/v2"
)

func newInitCommand() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Writes a default project configuration file.",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite an existing configuration file.",
			},
		},
		Action: runInit,
	}
}

// runInit writes to the --config path, or afx.json in the working
// directory. It skips setup, which would read that file.
func runInit(cliCtx *cli.Context) error {
	path := cliCtx.String("config")
	if path == "" {
		path = config.DefaultFile
	}

	if !cliCtx.Bool("force") {
		_, err := os.Stat(path)
		if err == nil {
			return fmt.Errorf("%s already exists, use --force to overwrite it", path)
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("stat config file: %w", err)
		}
	}

	if err := config.SaveFile(path, config.Default()); err != nil {
		return err
	}

	fmt.Fprintf(cliCtx.App.Writer, "wrote %s\n", path)
	return nil
}
