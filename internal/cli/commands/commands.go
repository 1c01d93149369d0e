package commands

import (
	"context"
	"fmt"

	"testenv/internal/cli"
	"testenv/internal/config"
	"testenv/internal/discovery"
	"testenv/internal/domain"
	"testenv/internal/logging"
	"testenv/internal/storage"
	"testenv/internal/ui"
	"testenv/internal/workspace"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Commands holds all CLI commands
type Commands struct {
	env *env

	Profiles *ProfilesCommand
	Route    *RouteCommand
	List     *ListCommand
	Validate *ValidateCommand
	Export   *ExportCommand
	Watch    *WatchCommand
}

// env carries what every command needs once flags are parsed
type env struct {
	config    *config.Config
	logger    *zap.Logger
	filter    *discovery.Filter
	parser    *discovery.Parser
	formatter *ui.Formatter
	storage   storage.Storage
	viewer    ui.Viewer
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	parser := discovery.NewParser()
	e := &env{
		config:    cfg,
		logger:    zap.NewNop(),
		filter:    discovery.NewFilter(),
		parser:    parser,
		formatter: ui.NewFormatter(cfg, parser),
		storage:   storage.NewJSONStorage(cfg),
		viewer:    ui.NewRouteViewer(cfg),
	}

	return &Commands{
		env:      e,
		Profiles: &ProfilesCommand{env: e},
		Route:    &RouteCommand{env: e},
		List:     &ListCommand{env: e},
		Validate: &ValidateCommand{env: e},
		Export:   &ExportCommand{env: e},
		Watch:    &WatchCommand{env: e},
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	rootCmd.SilenceUsage = true
	rootCmd.PersistentFlags().StringVar(&flags.ConfigFile, "config", "", "Path to a testenv.yaml config file (default: <project>/testenv.yaml)")
	rootCmd.PersistentFlags().StringVarP(&flags.ProjectPath, "project", "C", "", "Project root the workspace belongs to")
	rootCmd.PersistentFlags().BoolVar(&flags.Debug, "debug", false, "Print diagnostic logs to stderr")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// Update config with flags after parsing
		configFlags := flags.ToConfigFlags()
		if f := cmd.Flags().Lookup("processors"); f == nil || !f.Changed {
			configFlags.Processors = 0
		}
		if err := cfg.Apply(configFlags); err != nil {
			return err
		}

		logger, err := logging.New(flags.Debug)
		if err != nil {
			return err
		}
		c.env.logger = logger
		logger.Debug("configuration loaded",
			zap.String("project", cfg.ProjectPath),
			zap.String("workspace_dir", cfg.GetWorkspaceDir()),
			zap.String("test_path", cfg.GetTestPath()))
		return nil
	}
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		_ = c.env.logger.Sync()
	}

	// Profiles command
	profilesCmd := &cobra.Command{
		Use:   "profiles",
		Short: "Show the test profiles",
		Long:  "Print every profile with its runtime, browser settings and include globs",
		Args:  cobra.NoArgs,
		RunE:  c.Profiles.Execute,
	}
	profilesCmd.Flags().BoolVar(&flags.Saved, "saved", false, "Show the last exported workspace instead of the configured one")
	rootCmd.AddCommand(profilesCmd)

	// Route command
	routeCmd := &cobra.Command{
		Use:   "route <file>...",
		Short: "Show which profile runs a file",
		Long:  "Route each file to the profile that claims it. Server-side wins over real-browser, which wins over the default profile.",
		Args:  cobra.MinimumNArgs(1),
		RunE:  c.Route.Execute,
	}
	routeCmd.Flags().BoolVarP(&flags.All, "all", "a", false, "Show every profile whose include rule matches")
	rootCmd.AddCommand(routeCmd)

	// List command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List discovered tests by profile",
		Long:  "Scan the test path and list every test file under the profile that runs it",
		Args:  cobra.NoArgs,
		RunE:  c.List.Execute,
	}
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter tests by name pattern (supports wildcards, e.g., '*.node.test.ts' or '*Button*')")
	listCmd.Flags().StringVarP(&flags.TestPath, "test-path", "t", "", "Path to the folder where test detection should start")
	listCmd.Flags().BoolVarP(&flags.TestCases, "test-cases", "c", false, "List test cases (and stories) under each file")
	listCmd.Flags().BoolVarP(&flags.Stories, "stories", "s", false, "Also discover story files for the storybook profile")
	listCmd.Flags().BoolVar(&flags.View, "view", false, "Browse the result in an interactive viewer")
	listCmd.Flags().IntVarP(&flags.Processors, "processors", "p", config.DefaultProcessors, "Number of routing workers")
	rootCmd.AddCommand(listCmd)

	// Validate command
	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the workspace for conflicts",
		Long:  "Check profile names, ports and globs, and make sure every discovered test file runs under exactly one profile",
		Args:  cobra.NoArgs,
		RunE:  c.Validate.Execute,
	}
	validateCmd.Flags().StringVarP(&flags.TestPath, "test-path", "t", "", "Path to the folder where test detection should start")
	validateCmd.Flags().BoolVar(&flags.Probe, "probe", false, "Also check that every profile port is free")
	validateCmd.Flags().BoolVar(&flags.Catalog, "catalog", false, "Also check that the storybook server answers")
	validateCmd.Flags().IntVarP(&flags.Processors, "processors", "p", config.DefaultProcessors, "Number of routing workers")
	rootCmd.AddCommand(validateCmd)

	// Export command
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write the workspace definition",
		Long:  "Write the profiles as JSON or as a workspace file for the test runner. Without --out the JSON is saved to the configured output path.",
		Args:  cobra.NoArgs,
		RunE:  c.Export.Execute,
	}
	exportCmd.Flags().StringVar(&flags.Format, "format", "json", "Output format: json or ts")
	exportCmd.Flags().StringVarP(&flags.Out, "out", "o", "", "Output file ('-' for stdout)")
	rootCmd.AddCommand(exportCmd)

	// Watch command
	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Route test files as they are created",
		Long:  "Watch the test path and print the profile of every test file that is created or changed",
		Args:  cobra.NoArgs,
		RunE:  c.Watch.Execute,
	}
	watchCmd.Flags().StringVarP(&flags.TestPath, "test-path", "t", "", "Path to the folder to watch")
	rootCmd.AddCommand(watchCmd)
}

func (e *env) workspace() *domain.Workspace {
	return workspace.Build(e.config)
}

func (e *env) router(ws *domain.Workspace) *workspace.Router {
	return workspace.NewRouter(ws, e.config.GetWorkspaceDir(), e.logger)
}

func (e *env) scanner() *discovery.Scanner {
	return discovery.NewScanner(e.config.PathsToIgnore)
}

// discover scans the test path and routes every test file found
func (e *env) discover(ctx context.Context, router *workspace.Router, showProgress bool) ([]domain.Route, error) {
	testPath := e.config.GetTestPath()
	files, err := e.scanner().Scan(testPath)
	if err != nil {
		return nil, err
	}
	files = e.filter.FilterByName(files, e.config.Flags.NameFilter)
	e.logger.Debug("discovered test files", zap.String("path", testPath), zap.Int("count", len(files)))

	var progress workspace.Progress
	if showProgress && len(files) > 0 {
		progress = ui.NewProgressBar(len(files))
	}
	routes, err := router.RouteAll(ctx, files, e.config.Processors, progress)
	if err != nil {
		return nil, fmt.Errorf("route test files: %w", err)
	}
	return routes, nil
}

// stories finds the catalog's story files under the workspace dir
func (e *env) stories() ([]string, error) {
	return e.scanner().ScanStories(e.config.GetWorkspaceDir(), e.config.StoryPatterns)
}
