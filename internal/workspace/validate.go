package workspace

import (
	"fmt"
	"strings"

	"testenv/internal/domain"
)

// ValidateOptions carries inputs that live outside the profiles themselves
type ValidateOptions struct {
	// CatalogServerPort is the port the storybook server binds; it must not collide with browser API ports
	CatalogServerPort int
	// Routes are discovered files already routed; when set, overlaps and orphans are reported
	Routes []domain.Route
}

// Validate checks ws for the problems the orchestrator would only surface at run
// time. Every problem is collected; validation never stops early.
func Validate(ws *domain.Workspace, opts ValidateOptions) *domain.Report {
	report := &domain.Report{Profiles: len(ws.Profiles), Files: len(opts.Routes)}

	checkNames(ws, report)
	checkRuntimes(ws, report)
	checkPorts(ws, opts.CatalogServerPort, report)
	checkGlobs(ws, report)
	checkCatalogOnly(ws, report)
	checkRoutes(opts.Routes, report)

	return report
}

func checkNames(ws *domain.Workspace, report *domain.Report) {
	seen := make(map[string]int)
	for i, p := range ws.Profiles {
		if p.Name == "" {
			report.Add(domain.ProblemDuplicateName, "", fmt.Sprintf("#%d", i), "profile #%d has no name", i)
			continue
		}
		seen[p.Name]++
		if seen[p.Name] == 2 {
			report.Add(domain.ProblemDuplicateName, p.Name, p.Name, "profile name %q is declared more than once", p.Name)
		}
	}
}

func checkRuntimes(ws *domain.Workspace, report *domain.Report) {
	for _, p := range ws.Profiles {
		switch {
		case p.Environment != "" && !p.Environment.Valid():
			report.Add(domain.ProblemEnvironment, p.Name, string(p.Environment), "unknown environment %q", p.Environment)
		case p.IsBrowser() && p.Environment != "" && p.Environment != domain.EnvironmentBrowser:
			report.Add(domain.ProblemEnvironment, p.Name, string(p.Environment),
				"declares environment %q and browser mode; a profile may have only one runtime", p.Environment)
		case !p.IsBrowser() && p.Environment == "":
			report.Add(domain.ProblemEnvironment, p.Name, "", "no runtime environment declared")
		case !p.IsBrowser() && p.Browser != nil:
			report.Add(domain.ProblemEnvironment, p.Name, "", "browser settings present but browser mode is disabled")
		}
	}
}

func checkPorts(ws *domain.Workspace, catalogServerPort int, report *domain.Report) {
	owners := make(map[int]string)
	claim := func(owner string, port int) {
		if port < 1 || port > 65535 {
			report.Add(domain.ProblemInvalidPort, owner, fmt.Sprint(port), "port %d is out of range", port)
			return
		}
		if prev, ok := owners[port]; ok {
			report.Add(domain.ProblemPortCollision, owner, fmt.Sprint(port), "port %d is already used by %s", port, prev)
			return
		}
		owners[port] = owner
	}

	for _, p := range ws.Profiles {
		if p.IsBrowser() {
			claim(p.Name, p.Browser.Port)
		}
	}
	if catalogServerPort != 0 {
		claim(ProfileStorybook+" server", catalogServerPort)
	}
}

func checkGlobs(ws *domain.Workspace, report *domain.Report) {
	for i := range ws.Profiles {
		p := &ws.Profiles[i]
		for _, g := range invalidGlobs(p) {
			report.Add(domain.ProblemInvalidGlob, p.Name, g, "invalid glob %q", g)
		}
	}
}

// checkCatalogOnly enforces that setup hooks and shared state stay on the catalog profile
func checkCatalogOnly(ws *domain.Workspace, report *domain.Report) {
	for _, p := range ws.Profiles {
		if p.Category == domain.CategoryCatalog {
			continue
		}
		if len(p.SetupFiles) > 0 {
			report.Add(domain.ProblemMisplacedSetting, p.Name, strings.Join(p.SetupFiles, ","),
				"setup files are only attached to the catalog profile")
		}
		if p.Isolate != nil && !*p.Isolate {
			report.Add(domain.ProblemMisplacedSetting, p.Name, "isolate",
				"only the catalog profile may disable isolation")
		}
	}
}

func checkRoutes(routes []domain.Route, report *domain.Report) {
	for _, route := range routes {
		switch {
		case route.Orphan():
			report.Add(domain.ProblemOrphan, "", route.Path, "%s is not claimed by any profile", route.Path)
		case route.Conflict():
			report.Add(domain.ProblemOverlap, route.Owner, route.Path,
				"%s is claimed by %s; %s wins", route.Path, strings.Join(route.Matched, ", "), route.Owner)
		}
	}
}
