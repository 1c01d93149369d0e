package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"testenv/internal/storage"
)

// ExportCommand handles the export command
type ExportCommand struct {
	env *env
}

// Execute runs the command
func (ec *ExportCommand) Execute(cmd *cobra.Command, args []string) error {
	flags := ec.env.config.Flags
	format, err := storage.ParseFormat(flags.Format)
	if err != nil {
		return err
	}
	ws := ec.env.workspace()

	switch flags.Out {
	case "":
		if format != storage.FormatJSON {
			return fmt.Errorf("--out is required for format %q", format)
		}
		if err := ec.env.storage.Save(ws); err != nil {
			return err
		}
		ec.env.formatter.PrintSuccess("Workspace saved to %s", ec.env.config.GetOutputPath())
		return nil
	case "-":
		return ec.env.storage.Export(ws, format, cmd.OutOrStdout())
	}

	if err := os.MkdirAll(filepath.Dir(flags.Out), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	file, err := os.Create(flags.Out)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := ec.env.storage.Export(ws, format, file); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}
	ec.env.formatter.PrintSuccess("Workspace written to %s", flags.Out)
	return nil
}
