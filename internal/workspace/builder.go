package workspace

import (
	"maps"

	"testenv/internal/config"
	"testenv/internal/domain"
)

// Profile names as the orchestrator knows them
const (
	ProfileNode      = "node"
	ProfileUnit      = "unit"
	ProfileBrowser   = "browser"
	ProfileStorybook = "storybook"

	catalogPluginName = "storybook-test"
)

// Build constructs the four profiles from cfg. The result is meant to be read-only.
func Build(cfg *config.Config) *domain.Workspace {
	return &domain.Workspace{
		Profiles: []domain.Profile{
			nodeProfile(cfg),
			unitProfile(cfg),
			browserProfile(cfg),
			storybookProfile(cfg),
		},
	}
}

// Partition returns the default profile's include set: everything in all,
// minus the server and browser globs
func Partition(server, browser, all []string) []string {
	include := make([]string, 0, len(all)+len(server)+len(browser))
	include = append(include, all...)
	include = append(include, negate(server)...)
	include = append(include, negate(browser)...)
	return include
}

func negate(globs []string) []string {
	out := make([]string, 0, len(globs))
	for _, g := range globs {
		out = append(out, "!"+g)
	}
	return out
}

func nodeProfile(cfg *config.Config) domain.Profile {
	return domain.Profile{
		Name:        ProfileNode,
		Extends:     cfg.BaseConfig,
		Environment: domain.EnvironmentNode,
		Include:     append([]string(nil), cfg.NodePatterns...),
		Globals:     true,
		Category:    domain.CategoryServer,
	}
}

func unitProfile(cfg *config.Config) domain.Profile {
	return domain.Profile{
		Name:        ProfileUnit,
		Extends:     cfg.BaseConfig,
		Environment: domain.EnvironmentHappyDOM,
		Include:     Partition(cfg.NodePatterns, cfg.BrowserPatterns, cfg.AllPatterns),
		Globals:     true,
		Plugins:     []domain.Plugin{},
		Category:    domain.CategoryDefault,
	}
}

func browserProfile(cfg *config.Config) domain.Profile {
	return domain.Profile{
		Name:     ProfileBrowser,
		Extends:  cfg.BaseConfig,
		Include:  append([]string(nil), cfg.BrowserPatterns...),
		Globals:  true,
		Browser:  browserSettings(cfg, cfg.BrowserPort),
		Category: domain.CategoryBrowser,
	}
}

func storybookProfile(cfg *config.Config) domain.Profile {
	isolate := false
	return domain.Profile{
		Name:    ProfileStorybook,
		Extends: cfg.BaseConfig,
		Globals: true,
		Browser: browserSettings(cfg, cfg.CatalogPort),
		Isolate: &isolate,
		// stories are discovered by the catalog itself, never by include globs
		Include:    []string{},
		SetupFiles: append([]string(nil), cfg.SetupFiles...),
		Plugins: []domain.Plugin{{
			Name:   catalogPluginName,
			Script: cfg.GetCatalogScript(),
			URL:    cfg.GetCatalogURL(),
		}},
		Resolve:  &domain.Resolve{Alias: maps.Clone(cfg.Aliases)},
		Category: domain.CategoryCatalog,
	}
}

func browserSettings(cfg *config.Config, port int) *domain.BrowserSettings {
	return &domain.BrowserSettings{
		Enabled:   true,
		Instances: []domain.BrowserInstance{{Browser: cfg.BrowserEngine}},
		Provider:  cfg.BrowserProvider,
		Headless:  cfg.Headless,
		Port:      port,
		UI:        false,
	}
}

// Classify restores routing categories on profiles that were decoded from JSON
func Classify(ws *domain.Workspace) {
	for i := range ws.Profiles {
		p := &ws.Profiles[i]
		if p.Category != "" {
			continue
		}
		switch p.Name {
		case ProfileNode:
			p.Category = domain.CategoryServer
		case ProfileBrowser:
			p.Category = domain.CategoryBrowser
		case ProfileStorybook:
			p.Category = domain.CategoryCatalog
		default:
			p.Category = domain.CategoryDefault
		}
	}
}
