package main

import (
	"fmt"
	"os"

	"github.com/mitchellh/cli"
	"github.com/umbracle/scorecard/internal/cmd"
	"github.com/umbracle/scorecard/internal/version"

	// cases registered in this binary
	_ "github.com/umbracle/scorecard/suites/selfcheck"
)

func main() {
	os.Exit(Run(os.Args[1:]))
}

// Run starts the cli
func Run(args []string) int {
	commands := cmd.Commands()

	app := &cli.CLI{
		Name:     "scorecard",
		Args:     args,
		Commands: commands,
		Version:  version.GetVersion(),
	}

	exitCode, err := app.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error executing CLI: %s\n", err.Error())
		return 1
	}
	return exitCode
}
