package ui

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"testenv/internal/config"
	"testenv/internal/domain"
)

// Viewer displays routed files in an interactive TUI
type Viewer interface {
	View(ws *domain.Workspace, routes []domain.Route, stories []string) error
}

// RouteViewer browses profiles and the files each one claims
type RouteViewer struct {
	config *config.Config
}

// NewRouteViewer creates a new RouteViewer
func NewRouteViewer(cfg *config.Config) *RouteViewer {
	return &RouteViewer{config: cfg}
}

// viewEntry is one row of the profile list
type viewEntry struct {
	profile *domain.Profile // nil for the unclaimed bucket
	files   []string
}

func buildEntries(ws *domain.Workspace, routes []domain.Route, stories []string) []viewEntry {
	groups := make(map[string][]string)
	conflicts := 0
	for _, route := range routes {
		groups[route.Owner] = append(groups[route.Owner], route.Path)
		if route.Conflict() {
			conflicts++
		}
	}

	entries := make([]viewEntry, 0, len(ws.Profiles)+1)
	for i := range ws.Profiles {
		p := &ws.Profiles[i]
		files := groups[p.Name]
		if p.Category == domain.CategoryCatalog {
			files = stories
		}
		sorted := append([]string(nil), files...)
		sort.Strings(sorted)
		entries = append(entries, viewEntry{profile: p, files: sorted})
	}
	if orphans := groups[""]; len(orphans) > 0 {
		sort.Strings(orphans)
		entries = append(entries, viewEntry{files: orphans})
	}
	return entries
}

// View runs the TUI until the user exits
func (rv *RouteViewer) View(ws *domain.Workspace, routes []domain.Route, stories []string) error {
	entries := buildEntries(ws, routes, stories)

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	for _, entry := range entries {
		list.AddItem(entryTitle(entry), "", 0, nil)
	}
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	settingsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)

	filesView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(settingsView, 9, 0, false).
		AddItem(filesView, 0, 1, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 3, false)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true).
		SetText(fmt.Sprintf(" Test workspace (%d profiles, %d files) | ↑↓ to navigate, → to scroll files, ← to go back, q to exit ",
			len(ws.Profiles), len(routes)))

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index < 0 || index >= len(entries) {
			return
		}
		settingsView.SetText(rv.formatSettings(entries[index]))
		filesView.SetText(rv.formatFiles(entries[index])).ScrollToBeginning()
	}

	list.SetChangedFunc(func(int, string, string, rune) {
		updateDetails()
	})

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(filesView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'q' {
				app.Stop()
				return nil
			}
		}
		return event
	})

	filesView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	updateDetails()

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func entryTitle(entry viewEntry) string {
	if entry.profile == nil {
		return fmt.Sprintf("[red]unclaimed[white] (%d)", len(entry.files))
	}
	return fmt.Sprintf("[yellow]%s[white] (%d)", entry.profile.Name, len(entry.files))
}

// formatSettings renders a profile's runtime settings using tview color tags
func (rv *RouteViewer) formatSettings(entry viewEntry) string {
	if entry.profile == nil {
		return "[red]Files no profile claims[white]\nThese tests would never run.\n"
	}
	p := entry.profile

	var builder strings.Builder
	w := tabwriter.NewWriter(&builder, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "[cyan]Profile:[white]\t%s\n", p.Name)
	fmt.Fprintf(w, "[cyan]Runtime:[white]\t%s\n", p.Runtime())
	fmt.Fprintf(w, "[cyan]Extends:[white]\t%s\n", p.Extends)
	if p.IsBrowser() {
		fmt.Fprintf(w, "[cyan]Browser:[white]\t%s via %s, headless=%t, port %d\n",
			p.Browser.Engine(), p.Browser.Provider, p.Browser.Headless, p.Browser.Port)
	}
	if p.Isolate != nil && !*p.Isolate {
		fmt.Fprintf(w, "[cyan]Isolation:[white]\t[yellow]disabled[white]\n")
	}
	if len(p.SetupFiles) > 0 {
		fmt.Fprintf(w, "[cyan]Setup:[white]\t%s\n", strings.Join(p.SetupFiles, ", "))
	}
	for _, plugin := range p.Plugins {
		fmt.Fprintf(w, "[cyan]Catalog:[white]\t%s\n", plugin.URL)
	}
	for _, g := range p.Include {
		fmt.Fprintf(w, "[cyan]Include:[white]\t%s\n", tview.Escape(g))
	}
	w.Flush()
	return builder.String()
}

func (rv *RouteViewer) formatFiles(entry viewEntry) string {
	if len(entry.files) == 0 {
		return "[gray](no files)[white]"
	}
	var builder strings.Builder
	for _, file := range entry.files {
		builder.WriteString(tview.Escape(relativeTo(rv.config.ProjectPath, file)))
		builder.WriteString("\n")
	}
	return builder.String()
}
