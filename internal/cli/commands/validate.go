package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"testenv/internal/discovery"
	"testenv/internal/preflight"
	"testenv/internal/workspace"
)

// ErrInvalidWorkspace is returned when validation finds at least one problem
var ErrInvalidWorkspace = errors.New("workspace is invalid")

// catalogServerOwner names the storybook server in port problems
const catalogServerOwner = "storybook server"

// ValidateCommand handles the validate command
type ValidateCommand struct {
	env *env
}

// Execute runs the command
func (vc *ValidateCommand) Execute(cmd *cobra.Command, args []string) error {
	cfg := vc.env.config
	ctx := cmd.Context()
	ws := vc.env.workspace()

	// Profile checks still run without a test root; only file routing is skipped
	routes, err := vc.env.discover(ctx, vc.env.router(ws), false)
	switch {
	case errors.Is(err, discovery.ErrTestPathNotFound):
		vc.env.logger.Warn("test path missing, skipping file checks",
			zap.String("path", cfg.GetTestPath()))
		routes = nil
	case err != nil:
		return err
	}

	report := workspace.Validate(ws, workspace.ValidateOptions{
		CatalogServerPort: cfg.CatalogServerPort,
		Routes:            routes,
	})

	if cfg.Flags.Probe || cfg.Flags.Catalog {
		checker := preflight.NewChecker(vc.env.logger)
		if cfg.Flags.Probe {
			problems, err := checker.CheckPorts(ctx, preflight.Claims(ws, catalogServerOwner, cfg.CatalogServerPort))
			if err != nil {
				return fmt.Errorf("probe ports: %w", err)
			}
			report.Problems = append(report.Problems, problems...)
		}
		if cfg.Flags.Catalog {
			if problem := checker.CheckCatalog(ctx, workspace.ProfileStorybook, cfg.GetCatalogURL()); problem != nil {
				report.Problems = append(report.Problems, *problem)
			}
		}
	}

	vc.env.formatter.PrintReport(report)
	vc.env.logger.Debug("validation finished",
		zap.Int("profiles", report.Profiles),
		zap.Int("files", report.Files),
		zap.Int("problems", len(report.Problems)),
		zap.Error(report.Err()))

	if !report.OK() {
		return fmt.Errorf("%w: %d problem(s)", ErrInvalidWorkspace, len(report.Problems))
	}
	return nil
}
