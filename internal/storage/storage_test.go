package storage

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"testenv/internal/config"
	"testenv/internal/workspace"
)

func newTestStorage(t *testing.T) (*JSONStorage, *config.Config) {
	t.Helper()
	cfg := config.New()
	cfg.ProjectPath = t.TempDir()
	return NewJSONStorage(cfg), cfg
}

func TestJSONStorage_SaveLoad(t *testing.T) {
	st, cfg := newTestStorage(t)
	ws := workspace.Build(cfg)

	require.NoError(t, st.Save(ws))
	loaded, err := st.Load()
	require.NoError(t, err)

	if diff := cmp.Diff(ws, loaded, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("workspace changed across save/load (-want +got):\n%s", diff)
	}
}

func TestJSONStorage_LoadMissing(t *testing.T) {
	st, _ := newTestStorage(t)
	_, err := st.Load()
	assert.Error(t, err)
}

func TestExport_JSONShape(t *testing.T) {
	st, cfg := newTestStorage(t)
	var buf bytes.Buffer
	require.NoError(t, st.Export(workspace.Build(cfg), FormatJSON, &buf))

	var raw struct {
		Profiles []map[string]any `json:"profiles"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	require.Len(t, raw.Profiles, 4)

	node := raw.Profiles[0]
	assert.Equal(t, "node", node["name"])
	assert.Equal(t, "node", node["environment"])
	assert.Equal(t, true, node["globals"])
	assert.NotContains(t, node, "browser")
	assert.NotContains(t, node, "isolate")

	sb := raw.Profiles[3]
	assert.Equal(t, false, sb["isolate"])
	assert.NotContains(t, sb, "environment")
	browser := sb["browser"].(map[string]any)
	assert.Equal(t, float64(7159), browser["port"])
	assert.Equal(t, false, browser["ui"])
	assert.Equal(t, true, browser["headless"])
}

func TestExport_TS(t *testing.T) {
	st, cfg := newTestStorage(t)
	var buf bytes.Buffer
	require.NoError(t, st.Export(workspace.Build(cfg), FormatTS, &buf))
	out := buf.String()

	for _, want := range []string{
		`import { defineWorkspace } from "vitest/config";`,
		`name: "node",`,
		`environment: "node",`,
		`include: ["../tests/unit/**/*.node.{test,spec}.ts"],`,
		`include: ["../tests/unit/**/*.{test,spec}.ts", "!../tests/unit/**/*.node.{test,spec}.ts", "!../tests/unit/**/*.browser.{test,spec}.ts"],`,
		`environment: "happy-dom",`,
		`plugins: [],`,
		`instances: [{ browser: "chromium" }],`,
		`api: 7158,`,
		`api: 7159,`,
		`storybookScript: "storybook --ci --port 7160",`,
		`storybookUrl: "http://localhost:7160",`,
		`"vue": "vue/dist/vue.esm-bundler.js",`,
		`isolate: false,`,
		`setupFiles: ["./.storybook/vitest.setup.ts"],`,
	} {
		assert.Contains(t, out, want)
	}
	assert.Equal(t, 4, strings.Count(out, `extends: "./vite.config.ts",`))
	assert.Equal(t, 1, strings.Count(out, "isolate:"))
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "]);"))
}

func TestExport_UnknownFormat(t *testing.T) {
	st, cfg := newTestStorage(t)
	err := st.Export(workspace.Build(cfg), Format("yaml"), &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "", want: FormatJSON},
		{in: "json", want: FormatJSON},
		{in: " TS ", want: FormatTS},
		{in: "xml", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

var _ Storage = (*JSONStorage)(nil)
