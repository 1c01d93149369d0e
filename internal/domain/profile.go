package domain

import "strings"

// Environment is the runtime a profile's tests execute in
type Environment string

const (
	// EnvironmentNode runs tests server-side with no DOM
	EnvironmentNode Environment = "node"
	// EnvironmentHappyDOM runs tests against an emulated DOM
	EnvironmentHappyDOM Environment = "happy-dom"
	// EnvironmentBrowser runs tests inside a real browser engine
	EnvironmentBrowser Environment = "browser"
)

// Valid reports whether e is one of the known environments
func (e Environment) Valid() bool {
	switch e {
	case EnvironmentNode, EnvironmentHappyDOM, EnvironmentBrowser:
		return true
	}
	return false
}

// Profile is a named bundle of test execution settings
type Profile struct {
	Name        string           `json:"name"`
	Extends     string           `json:"extends,omitempty"`
	Environment Environment      `json:"environment,omitempty"`
	Include     []string         `json:"include"`
	Globals     bool             `json:"globals"`
	Browser     *BrowserSettings `json:"browser,omitempty"`
	Isolate     *bool            `json:"isolate,omitempty"`
	SetupFiles  []string         `json:"setupFiles,omitempty"`
	Plugins     []Plugin         `json:"plugins,omitempty"`
	Resolve     *Resolve         `json:"resolve,omitempty"`
	Category    Category         `json:"-"`
}

// BrowserSettings configures the browser automation backend of a profile
type BrowserSettings struct {
	Enabled   bool              `json:"enabled"`
	Instances []BrowserInstance `json:"instances"`
	Provider  string            `json:"provider"`
	Headless  bool              `json:"headless"`
	Port      int               `json:"port"`
	UI        bool              `json:"ui"`
}

// Engine returns the browser engine of the first instance
func (b *BrowserSettings) Engine() string {
	if b == nil || len(b.Instances) == 0 {
		return ""
	}
	return b.Instances[0].Browser
}

// BrowserInstance selects one browser engine
type BrowserInstance struct {
	Browser string `json:"browser"`
}

// Plugin starts the component catalog before the profile's tests run
type Plugin struct {
	Name   string `json:"name"`
	Script string `json:"storybookScript"`
	URL    string `json:"storybookUrl"`
}

// Resolve overrides module resolution for a profile
type Resolve struct {
	Alias map[string]string `json:"alias"`
}

// IsBrowser reports whether the profile runs in a real browser
func (p *Profile) IsBrowser() bool {
	return p.Browser != nil && p.Browser.Enabled
}

// Runtime returns the effective environment, treating enabled browser settings as the browser runtime
func (p *Profile) Runtime() Environment {
	if p.IsBrowser() {
		return EnvironmentBrowser
	}
	return p.Environment
}

// Positive returns the include globs that claim files
func (p *Profile) Positive() []string {
	var out []string
	for _, g := range p.Include {
		if !strings.HasPrefix(g, "!") {
			out = append(out, g)
		}
	}
	return out
}

// Negated returns the include globs that exclude files, without the leading "!"
func (p *Profile) Negated() []string {
	var out []string
	for _, g := range p.Include {
		if strings.HasPrefix(g, "!") {
			out = append(out, strings.TrimPrefix(g, "!"))
		}
	}
	return out
}

// Workspace is the ordered set of profiles handed to the test orchestrator
type Workspace struct {
	Profiles []Profile `json:"profiles"`
}

// Profile returns the profile with the given name
func (w *Workspace) Profile(name string) (*Profile, bool) {
	for i := range w.Profiles {
		if w.Profiles[i].Name == name {
			return &w.Profiles[i], true
		}
	}
	return nil, false
}

// Names returns profile names in declaration order
func (w *Workspace) Names() []string {
	names := make([]string, 0, len(w.Profiles))
	for _, p := range w.Profiles {
		names = append(names, p.Name)
	}
	return names
}
