package cmd

import (
	"fmt"

	"github.com/umbracle/scorecard/framework"
)

// ListCommand is the command to list the registered cases
type ListCommand struct {
	*Meta
}

// Help implements the cli.Command interface
func (c *ListCommand) Help() string {
	return `Usage: scorecard list

  List the registered cases in execution order.`
}

// Synopsis implements the cli.Command interface
func (c *ListCommand) Synopsis() string {
	return "List the registered cases"
}

// Run implements the cli.Command interface
func (c *ListCommand) Run(args []string) int {
	flags := c.FlagSet("list")

	if err := flags.Parse(args); err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	c.UI.Output(formatCases(c.Registry.Cases()))
	return 0
}

func formatCases(cases []*framework.Case) string {
	if len(cases) == 0 {
		return "No cases found"
	}

	rows := make([]string, len(cases)+1)
	rows[0] = "Order|Name|Weight"
	for i, tc := range cases {
		rows[i+1] = fmt.Sprintf("%d|%s|%g",
			i+1,
			tc.Name(),
			tc.Weight(),
		)
	}
	return formatList(rows)
}
