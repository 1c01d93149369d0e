package cli

import "testenv/internal/config"

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

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		ConfigFile:  f.ConfigFile,
		ProjectPath: f.ProjectPath,
		Processors:  f.Processors,
		TestPath:    f.TestPath,
		NameFilter:  f.NameFilter,
		Debug:       f.Debug,
		All:         f.All,
		Stories:     f.Stories,
		TestCases:   f.TestCases,
		View:        f.View,
		Probe:       f.Probe,
		Catalog:     f.Catalog,
		Format:      f.Format,
		Out:         f.Out,
		Saved:       f.Saved,
	}
}
