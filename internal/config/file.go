package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// fileConfig represents the testenv.yaml file structure
type fileConfig struct {
	WorkspaceDir  string       `yaml:"workspace_dir"`
	TestPath      string       `yaml:"test_path"`
	BaseConfig    string       `yaml:"base_config"`
	Patterns      filePatterns `yaml:"patterns"`
	Browser       fileBrowser  `yaml:"browser"`
	Catalog       fileCatalog  `yaml:"catalog"`
	Output        string       `yaml:"output"`
	Processors    int          `yaml:"processors"`
	PathsToIgnore []string     `yaml:"ignore"`
}

type filePatterns struct {
	Node    []string `yaml:"node"`
	Browser []string `yaml:"browser"`
	All     []string `yaml:"all"`
	Stories []string `yaml:"stories"`
}

type fileBrowser struct {
	Engine   string `yaml:"engine"`
	Provider string `yaml:"provider"`
	Headless *bool  `yaml:"headless"`
	Port     int    `yaml:"port"`
}

type fileCatalog struct {
	Port       int               `yaml:"port"`
	ServerPort int               `yaml:"server_port"`
	SetupFiles []string          `yaml:"setup_files"`
	Aliases    map[string]string `yaml:"aliases"`
}

// loadFile reads a YAML config file; a missing implicit file is not an error
func loadFile(path string, explicit bool) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse YAML %s: %w", path, err)
	}
	return &fc, nil
}

// apply copies every set value onto cfg
func (fc *fileConfig) apply(cfg *Config) {
	if fc.WorkspaceDir != "" {
		cfg.WorkspaceDir = fc.WorkspaceDir
	}
	if fc.TestPath != "" {
		cfg.TestPath = fc.TestPath
	}
	if fc.BaseConfig != "" {
		cfg.BaseConfig = fc.BaseConfig
	}
	if len(fc.Patterns.Node) > 0 {
		cfg.NodePatterns = fc.Patterns.Node
	}
	if len(fc.Patterns.Browser) > 0 {
		cfg.BrowserPatterns = fc.Patterns.Browser
	}
	if len(fc.Patterns.All) > 0 {
		cfg.AllPatterns = fc.Patterns.All
	}
	if len(fc.Patterns.Stories) > 0 {
		cfg.StoryPatterns = fc.Patterns.Stories
	}
	if fc.Browser.Engine != "" {
		cfg.BrowserEngine = fc.Browser.Engine
	}
	if fc.Browser.Provider != "" {
		cfg.BrowserProvider = fc.Browser.Provider
	}
	if fc.Browser.Headless != nil {
		cfg.Headless = *fc.Browser.Headless
	}
	if fc.Browser.Port != 0 {
		cfg.BrowserPort = fc.Browser.Port
	}
	if fc.Catalog.Port != 0 {
		cfg.CatalogPort = fc.Catalog.Port
	}
	if fc.Catalog.ServerPort != 0 {
		cfg.CatalogServerPort = fc.Catalog.ServerPort
	}
	if len(fc.Catalog.SetupFiles) > 0 {
		cfg.SetupFiles = fc.Catalog.SetupFiles
	}
	if len(fc.Catalog.Aliases) > 0 {
		cfg.Aliases = fc.Catalog.Aliases
	}
	if fc.Output != "" {
		cfg.OutputJSONDir, cfg.OutputJSONFile = filepath.Split(fc.Output)
	}
	if fc.Processors > 0 {
		cfg.Processors = fc.Processors
	}
	if len(fc.PathsToIgnore) > 0 {
		cfg.PathsToIgnore = fc.PathsToIgnore
	}
}

// loadDotEnv loads the project's .env file if present; variables already set win
func loadDotEnv(projectPath string) {
	envPath := filepath.Join(projectPath, ".env")
	if err := godotenv.Load(envPath); err != nil {
		// .env file might not exist, that's okay - use environment variables
		_ = err
	}
}

// applyEnv reads TESTENV_* variables
func applyEnv(cfg *Config) {
	if v := env("TESTENV_WORKSPACE_DIR"); v != "" {
		cfg.WorkspaceDir = v
	}
	if v := env("TESTENV_TEST_PATH"); v != "" {
		cfg.TestPath = v
	}
	if v := env("TESTENV_BASE_CONFIG"); v != "" {
		cfg.BaseConfig = v
	}
	if v := env("TESTENV_BROWSER_ENGINE"); v != "" {
		cfg.BrowserEngine = v
	}
	if v := env("TESTENV_HEADLESS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Headless = b
		}
	}
	envInt("TESTENV_BROWSER_PORT", &cfg.BrowserPort)
	envInt("TESTENV_CATALOG_PORT", &cfg.CatalogPort)
	envInt("TESTENV_CATALOG_SERVER_PORT", &cfg.CatalogServerPort)
	envInt("TESTENV_PROCESSORS", &cfg.Processors)
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func envInt(key string, dst *int) {
	if v := env(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
