package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"testenv/internal/config"
	"testenv/internal/domain"
	"testenv/internal/workspace"
)

func TestBuildEntries(t *testing.T) {
	ws := workspace.Build(config.New())
	routes := []domain.Route{
		{Path: "/r/b.test.ts", Owner: "unit", Matched: []string{"unit"}},
		{Path: "/r/a.test.ts", Owner: "unit", Matched: []string{"unit"}},
		{Path: "/r/c.node.test.ts", Owner: "node", Matched: []string{"node"}},
		{Path: "/r/orphan.test.ts"},
	}

	entries := buildEntries(ws, routes, []string{"/r/Button.stories.ts"})
	require.Len(t, entries, 5)

	assert.Equal(t, "node", entries[0].profile.Name)
	assert.Equal(t, []string{"/r/a.test.ts", "/r/b.test.ts"}, entries[1].files, "files are sorted")
	assert.Empty(t, entries[2].files)
	assert.Equal(t, []string{"/r/Button.stories.ts"}, entries[3].files)
	assert.Nil(t, entries[4].profile)
	assert.Equal(t, "[red]unclaimed[white] (1)", entryTitle(entries[4]))
	assert.Equal(t, "[yellow]unit[white] (2)", entryTitle(entries[1]))
}

func TestBuildEntries_NoOrphans(t *testing.T) {
	entries := buildEntries(workspace.Build(config.New()), nil, nil)
	assert.Len(t, entries, 4)
}

func TestRouteViewer_FormatSettings(t *testing.T) {
	cfg := config.New()
	rv := NewRouteViewer(cfg)
	ws := workspace.Build(cfg)
	sb, _ := ws.Profile(workspace.ProfileStorybook)

	out := rv.formatSettings(viewEntry{profile: sb})
	assert.Contains(t, out, "chromium via playwright, headless=true, port 7159")
	assert.Contains(t, out, "[yellow]disabled[white]")
	assert.Contains(t, out, "http://localhost:7160")

	assert.Contains(t, rv.formatSettings(viewEntry{}), "would never run")
	assert.Equal(t, "[gray](no files)[white]", rv.formatFiles(viewEntry{}))
}
