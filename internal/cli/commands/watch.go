package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"testenv/internal/domain"
	"testenv/internal/watch"
)

// WatchCommand handles the watch command
type WatchCommand struct {
	env *env
}

// Execute runs the command until interrupted
func (wc *WatchCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := wc.env.config.GetTestPath()
	watcher := watch.NewWatcher(wc.env.router(wc.env.workspace()), wc.env.scanner(), wc.env.logger)
	err := watcher.Start(ctx, root, func(route domain.Route) {
		wc.env.formatter.PrintRoute(route)
	})
	if err != nil {
		return err
	}

	wc.env.formatter.PrintInfo("Watching %s (Ctrl+C to stop)", root)
	<-watcher.Done()
	wc.env.logger.Debug("watcher stopped", zap.String("root", root))
	return nil
}
