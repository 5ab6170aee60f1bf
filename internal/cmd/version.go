package cmd

import (
	"fmt"
	"runtime"

	"github.com/mitchellh/cli"
	"github.com/umbracle/scorecard/internal/version"
)

// VersionCommand is the command to show the version of the binary
type VersionCommand struct {
	UI cli.Ui
}

// Help implements the cli.Command interface
func (c *VersionCommand) Help() string {
	return `Usage: scorecard version

  Display the scorecard version`
}

// Synopsis implements the cli.Command interface
func (c *VersionCommand) Synopsis() string {
	return "Display the scorecard version"
}

// Run implements the cli.Command interface
func (c *VersionCommand) Run(args []string) int {
	c.UI.Output(formatKV([]string{
		fmt.Sprintf("Version|%s", version.GetVersion()),
		fmt.Sprintf("Go|%s", runtime.Version()),
	}))
	return 0
}
