package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"testenv/internal/domain"
)

// RouteCommand handles the route command
type RouteCommand struct {
	env *env
}

// Execute runs the command
func (rc *RouteCommand) Execute(cmd *cobra.Command, args []string) error {
	router := rc.env.router(rc.env.workspace())

	routes := make([]domain.Route, 0, len(args))
	for _, path := range args {
		route := router.Route(path)
		rc.env.logger.Debug("routed file",
			zap.String("path", path),
			zap.String("relative", router.Relative(path)),
			zap.String("owner", route.Owner))
		routes = append(routes, route)
	}

	rc.env.formatter.PrintRoutes(routes, rc.env.config.Flags.All)
	return nil
}
