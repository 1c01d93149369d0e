package config

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultWorkspaceDir holds the workspace file; include globs are relative to it
	DefaultWorkspaceDir = "frontend"
	// DefaultTestPath is where test discovery starts, relative to the project
	DefaultTestPath = "tests/unit"
	// DefaultBaseConfig is the shared config every profile extends
	DefaultBaseConfig = "./vite.config.ts"
	// DefaultOutputJSONFile is the default output JSON file name
	DefaultOutputJSONFile = "workspace.json"
	// DefaultOutputJSONDir is the default output directory
	DefaultOutputJSONDir = ".testenv"
	// DefaultConfigFile is looked up in the project path when --config is not given
	DefaultConfigFile = "testenv.yaml"
	// DefaultProcessors is the default number of routing workers
	DefaultProcessors = 4

	// DefaultBrowserPort is the API port of the real-browser profile
	DefaultBrowserPort = 7158
	// DefaultCatalogPort is the API port of the storybook profile
	DefaultCatalogPort = 7159
	// DefaultCatalogServerPort is where the storybook server listens
	DefaultCatalogServerPort = 7160

	// DefaultBrowserEngine is the only browser instance profiles launch
	DefaultBrowserEngine = "chromium"
	// DefaultBrowserProvider drives the browser
	DefaultBrowserProvider = "playwright"
)

// Default glob sets, relative to the workspace dir
var (
	DefaultNodePatterns    = []string{"../tests/unit/**/*.node.{test,spec}.ts"}
	DefaultBrowserPatterns = []string{"../tests/unit/**/*.browser.{test,spec}.ts"}
	DefaultAllPatterns     = []string{"../tests/unit/**/*.{test,spec}.ts"}
	DefaultStoryPatterns   = []string{"**/*.stories.{ts,tsx,js,jsx,mdx}"}
	DefaultSetupFiles      = []string{"./.storybook/vitest.setup.ts"}
	DefaultAliases         = map[string]string{"vue": "vue/dist/vue.esm-bundler.js"}
)

// DefaultPathsToIgnore are the default directories to ignore when scanning for tests
var DefaultPathsToIgnore = []string{
	"node_modules",
	"dist",
	"coverage",
	"storybook-static",
}
