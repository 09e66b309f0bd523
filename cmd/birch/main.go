package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/Aval1099/birch-lounge-app-sub000/internal/cli"
)

func main() {
	root := cli.NewRootCommand()
	if err := root.Execute(); err != nil {
		// Commands render their own errors; only usage and setup
		// failures reach stderr here.
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
