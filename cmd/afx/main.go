package main

import (
	"fmt"
	"os"

	"componentengine/internal/commands"
)

func main() {
	app := commands.NewApp()

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
