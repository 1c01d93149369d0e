package config

import (
	"errors"
	"fmt"
	"maps"
	"path/filepath"
)

// ErrInvalidPort is returned when a configured port is outside 1-65535
var ErrInvalidPort = errors.New("invalid port")

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath  string
	WorkspaceDir string
	TestPath     string
	BaseConfig   string

	// Routing globs, relative to WorkspaceDir
	NodePatterns    []string
	BrowserPatterns []string
	AllPatterns     []string
	StoryPatterns   []string

	// Browser automation
	BrowserEngine     string
	BrowserProvider   string
	Headless          bool
	BrowserPort       int
	CatalogPort       int
	CatalogServerPort int

	// Catalog profile
	SetupFiles []string
	Aliases    map[string]string

	// Output settings
	OutputJSONFile string
	OutputJSONDir  string

	// Execution settings
	Processors int

	// Paths to ignore when scanning
	PathsToIgnore []string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	ConfigFile  string
	ProjectPath string
	Processors  int
	TestPath    string
	NameFilter  string
	Debug       bool
	All         bool
	Stories     bool
	TestCases   bool
	View        bool
	Probe       bool
	Catalog     bool
	Format      string
	Out         string
	Saved       bool
}

// New creates a new Config with defaults
func New() *Config {
	return &Config{
		ProjectPath:       DefaultProjectPath,
		WorkspaceDir:      DefaultWorkspaceDir,
		TestPath:          DefaultTestPath,
		BaseConfig:        DefaultBaseConfig,
		NodePatterns:      clone(DefaultNodePatterns),
		BrowserPatterns:   clone(DefaultBrowserPatterns),
		AllPatterns:       clone(DefaultAllPatterns),
		StoryPatterns:     clone(DefaultStoryPatterns),
		BrowserEngine:     DefaultBrowserEngine,
		BrowserProvider:   DefaultBrowserProvider,
		Headless:          true,
		BrowserPort:       DefaultBrowserPort,
		CatalogPort:       DefaultCatalogPort,
		CatalogServerPort: DefaultCatalogServerPort,
		SetupFiles:        clone(DefaultSetupFiles),
		Aliases:           maps.Clone(DefaultAliases),
		OutputJSONFile:    DefaultOutputJSONFile,
		OutputJSONDir:     DefaultOutputJSONDir,
		Processors:        DefaultProcessors,
		PathsToIgnore:     clone(DefaultPathsToIgnore),
		Flags:             Flags{Processors: DefaultProcessors},
	}
}

// Load creates a config and applies every configuration source
func Load(flags Flags) (*Config, error) {
	cfg := New()
	if err := cfg.Apply(flags); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Apply layers .env, environment, the YAML file and finally flags over the current values.
// Precedence: flags > YAML > environment > defaults
func (c *Config) Apply(flags Flags) error {
	c.Flags = flags
	if flags.ProjectPath != "" {
		c.ProjectPath = flags.ProjectPath
	}

	loadDotEnv(c.ProjectPath)
	applyEnv(c)

	if path, explicit := c.configFilePath(); path != "" {
		fc, err := loadFile(path, explicit)
		if err != nil {
			return fmt.Errorf("load config file: %w", err)
		}
		if fc != nil {
			fc.apply(c)
		}
	}

	if flags.Processors > 0 {
		c.Processors = flags.Processors
	}

	return c.Validate()
}

// Validate checks values that would make the generated workspace unusable
func (c *Config) Validate() error {
	ports := []struct {
		name string
		port int
	}{
		{"browser_port", c.BrowserPort},
		{"catalog_port", c.CatalogPort},
		{"catalog_server_port", c.CatalogServerPort},
	}
	for _, p := range ports {
		if p.port < 1 || p.port > 65535 {
			return fmt.Errorf("%s %d: %w", p.name, p.port, ErrInvalidPort)
		}
	}
	if c.Processors <= 0 {
		return fmt.Errorf("processors must be positive, got %d", c.Processors)
	}
	if len(c.AllPatterns) == 0 {
		return errors.New("at least one catch-all pattern is required")
	}
	return nil
}

// configFilePath returns the YAML file to read and whether the user asked for it explicitly
func (c *Config) configFilePath() (string, bool) {
	if c.Flags.ConfigFile != "" {
		return c.Flags.ConfigFile, true
	}
	return filepath.Join(c.ProjectPath, DefaultConfigFile), false
}

// GetTestPath returns the test path, using flag if provided
func (c *Config) GetTestPath() string {
	if c.Flags.TestPath != "" {
		if filepath.IsAbs(c.Flags.TestPath) {
			return c.Flags.TestPath
		}
		return filepath.Join(c.ProjectPath, c.Flags.TestPath)
	}

	return filepath.Join(c.ProjectPath, c.TestPath)
}

// GetWorkspaceDir returns the absolute directory include globs are resolved against
func (c *Config) GetWorkspaceDir() string {
	p := c.WorkspaceDir
	if !filepath.IsAbs(p) {
		p = filepath.Join(c.ProjectPath, p)
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetOutputPath returns the full path to the output JSON file.
// Resolves to an absolute path so export and later reads agree regardless of cwd.
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.ProjectPath, c.OutputJSONDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetCatalogURL returns the address the storybook server is expected on
func (c *Config) GetCatalogURL() string {
	return fmt.Sprintf("http://localhost:%d", c.CatalogServerPort)
}

// GetCatalogScript returns the command that starts the storybook server
func (c *Config) GetCatalogScript() string {
	return fmt.Sprintf("storybook --ci --port %d", c.CatalogServerPort)
}

func clone(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
