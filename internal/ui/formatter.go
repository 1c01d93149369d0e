package ui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"testenv/internal/config"
	"testenv/internal/discovery"
	"testenv/internal/domain"
	"testenv/internal/workspace"
)

var (
	cyan   = color.New(color.FgCyan)
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed)
	faint  = color.New(color.Faint)
)

// Formatter formats and displays output
type Formatter struct {
	config *config.Config
	parser *discovery.Parser
	out    io.Writer
}

// NewFormatter creates a new Formatter writing to stdout
func NewFormatter(cfg *config.Config, parser *discovery.Parser) *Formatter {
	return &Formatter{
		config: cfg,
		parser: parser,
		out:    os.Stdout,
	}
}

// SetOutput redirects all output to w
func (f *Formatter) SetOutput(w io.Writer) {
	f.out = w
}

// PrintProfiles prints one row per profile
func (f *Formatter) PrintProfiles(ws *domain.Workspace) {
	cyan.Fprintf(f.out, "Workspace: %d profile(s)\n\n", len(ws.Profiles))

	tw := tabwriter.NewWriter(f.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tRUNTIME\tENGINE\tPORT\tISOLATE\tSETUP")
	for _, p := range ws.Profiles {
		engine, port := "-", "-"
		if p.IsBrowser() {
			engine = fmt.Sprintf("%s/%s", p.Browser.Engine(), p.Browser.Provider)
			if p.Browser.Headless {
				engine += " (headless)"
			}
			port = fmt.Sprint(p.Browser.Port)
		}
		isolate := "yes"
		if p.Isolate != nil && !*p.Isolate {
			isolate = "no"
		}
		setup := "-"
		if len(p.SetupFiles) > 0 {
			setup = strings.Join(p.SetupFiles, ", ")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", p.Name, p.Runtime(), engine, port, isolate, setup)
	}
	tw.Flush()

	fmt.Fprintln(f.out)
	for _, p := range ws.Profiles {
		cyan.Fprintf(f.out, "%s\n", p.Name)
		if len(p.Include) == 0 {
			faint.Fprintln(f.out, "  (stories discovered by the catalog)")
		}
		for _, g := range p.Include {
			if strings.HasPrefix(g, "!") {
				red.Fprintf(f.out, "  - %s\n", g)
			} else {
				green.Fprintf(f.out, "  + %s\n", g)
			}
		}
		for _, plugin := range p.Plugins {
			yellow.Fprintf(f.out, "  catalog: %s (%s)\n", plugin.URL, plugin.Script)
		}
	}
}

// PrintRoutes prints the owner of each file; with all set every matching profile is shown
func (f *Formatter) PrintRoutes(routes []domain.Route, all bool) {
	for _, route := range routes {
		path := f.relative(route.Path)
		switch {
		case route.Orphan():
			red.Fprintf(f.out, "%s -> (no profile)\n", path)
		case route.Conflict():
			yellow.Fprintf(f.out, "%s -> %s", path, route.Owner)
			faint.Fprintf(f.out, " (also matched: %s)\n", strings.Join(others(route), ", "))
		case all:
			fmt.Fprintf(f.out, "%s -> %s (matched: %s)\n", path, green.Sprint(route.Owner), strings.Join(route.Matched, ", "))
		default:
			fmt.Fprintf(f.out, "%s -> %s\n", path, green.Sprint(route.Owner))
		}
	}
}

// PrintTestList prints discovered files grouped by owning profile, optionally with test cases.
// Story files are listed under the catalog profile.
func (f *Formatter) PrintTestList(ws *domain.Workspace, routes []domain.Route, stories []string, showTestCases bool) {
	groups := workspace.Group(routes)

	green.Fprintf(f.out, "Found %d test file(s)", len(routes))
	if len(stories) > 0 {
		green.Fprintf(f.out, " and %d story file(s)", len(stories))
	}
	fmt.Fprintln(f.out, ":")

	for _, p := range ws.Profiles {
		files := paths(groups[p.Name])
		isCatalog := p.Category == domain.CategoryCatalog
		if isCatalog {
			files = stories
		}
		if len(files) == 0 {
			continue
		}
		fmt.Fprintln(f.out)
		cyan.Fprintf(f.out, "%s (%s, %d)\n", p.Name, p.Runtime(), len(files))
		f.printFiles(files, showTestCases, isCatalog)
	}

	if orphans := groups[""]; len(orphans) > 0 {
		fmt.Fprintln(f.out)
		red.Fprintf(f.out, "unclaimed (%d)\n", len(orphans))
		f.printFiles(paths(orphans), false, false)
	}
}

func (f *Formatter) printFiles(files []string, showCases, stories bool) {
	sorted := append([]string(nil), files...)
	sort.Strings(sorted)

	for i, file := range sorted {
		isLastFile := i == len(sorted)-1
		branch, indent := "├── ", "│   "
		if isLastFile {
			branch, indent = "└── ", "    "
		}
		fmt.Fprintf(f.out, "%s%s\n", branch, f.relative(file))

		if !showCases {
			continue
		}
		var cases []string
		var err error
		if stories {
			cases, err = f.parser.FindStories(file)
		} else {
			cases, err = f.parser.FindTestCases(file)
		}
		if err != nil {
			red.Fprintf(f.out, "%s└── error reading file: %v\n", indent, err)
			continue
		}
		if len(cases) == 0 {
			red.Fprintf(f.out, "%s└── (no test cases found)\n", indent)
			continue
		}
		for j, c := range cases {
			prefix := indent + "├── "
			if j == len(cases)-1 {
				prefix = indent + "└── "
			}
			fmt.Fprintf(f.out, "%s%s\n", prefix, yellow.Sprint(c))
		}
	}
}

// PrintReport prints validation results
func (f *Formatter) PrintReport(report *domain.Report) {
	fmt.Fprintf(f.out, "Checked %d profile(s)", report.Profiles)
	if report.Files > 0 {
		fmt.Fprintf(f.out, " and %d file(s)", report.Files)
	}
	fmt.Fprintln(f.out)

	if report.OK() {
		green.Fprintln(f.out, "✓ Workspace is valid")
		return
	}

	red.Fprintf(f.out, "✗ %d problem(s) found\n", len(report.Problems))
	for _, p := range report.Problems {
		where := ""
		if p.Profile != "" {
			where = "[" + p.Profile + "] "
		}
		fmt.Fprintf(f.out, "  %s %s%s\n", yellow.Sprint(p.Kind), where, p.Message)
	}
}

// PrintSuccess prints a green status line
func (f *Formatter) PrintSuccess(format string, args ...any) {
	green.Fprintf(f.out, format+"\n", args...)
}

// PrintWarning prints a yellow status line
func (f *Formatter) PrintWarning(format string, args ...any) {
	yellow.Fprintf(f.out, format+"\n", args...)
}

// PrintInfo prints a cyan status line
func (f *Formatter) PrintInfo(format string, args ...any) {
	cyan.Fprintf(f.out, format+"\n", args...)
}

// PrintRoute prints a single routing event from the watcher
func (f *Formatter) PrintRoute(route domain.Route) {
	f.PrintRoutes([]domain.Route{route}, false)
}

func (f *Formatter) relative(path string) string {
	return relativeTo(f.config.ProjectPath, path)
}

// relativeTo shortens path for display when it lies under base
func relativeTo(base, path string) string {
	absBase, err := filepath.Abs(base)
	if err != nil {
		return path
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	if rel, err := filepath.Rel(absBase, absPath); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}

func paths(routes []domain.Route) []string {
	out := make([]string, 0, len(routes))
	for _, route := range routes {
		out = append(out, route.Path)
	}
	return out
}

func others(route domain.Route) []string {
	var out []string
	for _, name := range route.Matched {
		if name != route.Owner {
			out = append(out, name)
		}
	}
	return out
}
