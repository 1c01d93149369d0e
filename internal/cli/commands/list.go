package commands

import (
	"github.com/spf13/cobra"
)

// ListCommand handles the list command
type ListCommand struct {
	env *env
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	flags := lc.env.config.Flags
	ws := lc.env.workspace()

	routes, err := lc.env.discover(cmd.Context(), lc.env.router(ws), !flags.View)
	if err != nil {
		return err
	}

	var stories []string
	if flags.Stories {
		if stories, err = lc.env.stories(); err != nil {
			return err
		}
		stories = lc.env.filter.FilterByName(stories, flags.NameFilter)
	}

	if len(routes) == 0 && len(stories) == 0 {
		lc.env.formatter.PrintWarning("No tests found")
		return nil
	}

	if flags.View {
		return lc.env.viewer.View(ws, routes, stories)
	}

	lc.env.formatter.PrintTestList(ws, routes, stories, flags.TestCases)
	return nil
}
