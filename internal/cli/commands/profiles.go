package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ProfilesCommand handles the profiles command
type ProfilesCommand struct {
	env *env
}

// Execute runs the command
func (pc *ProfilesCommand) Execute(cmd *cobra.Command, args []string) error {
	ws := pc.env.workspace()
	if pc.env.config.Flags.Saved {
		saved, err := pc.env.storage.Load()
		if err != nil {
			return fmt.Errorf("no exported workspace, run 'testenv export' first: %w", err)
		}
		ws = saved
	}

	pc.env.formatter.PrintProfiles(ws)
	return nil
}
