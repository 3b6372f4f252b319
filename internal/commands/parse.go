package commands

import (
	"fmt"
	"os"

	"componentengine/internal/ast"
	"componentengine/internal/parser"
	"github.com/kr/pretty"
	cli "github.com/urfave/cli/v2"
)

func newParseCommand() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "Prints the syntax tree of a module.",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "expr",
				Usage: "Treat the argument as an expression instead of a file.",
			},
		},
		Action: runParse,
	}
}

func runParse(cliCtx *cli.Context) error {
	if err := requireArgs(cliCtx, 1, "[--expr] <file>"); err != nil {
		return err
	}
	_, _, err := setup(cliCtx, "parse")
	if err != nil {
		return err
	}

	arg := cliCtx.Args().First()

	var tree interface{}
	if cliCtx.Bool("expr") {
		var expr ast.Expr
		expr, err = parser.ParseExpressionString(arg)
		tree = expr
	} else {
		src, readErr := os.ReadFile(arg)
		if readErr != nil {
			return readErr
		}
		var mod *ast.Module
		mod, err = parser.ParseModule(arg, string(src))
		tree = mod
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cliCtx.App.Writer, "%# v\n", pretty.Formatter(tree))
	return nil
}
