package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"testenv/internal/config"
	"testenv/internal/domain"
)

func TestValidate_DefaultWorkspace(t *testing.T) {
	cfg := config.New()
	report := Validate(Build(cfg), ValidateOptions{CatalogServerPort: cfg.CatalogServerPort})

	assert.True(t, report.OK(), "unexpected problems: %v", report.Problems)
	assert.NoError(t, report.Err())
	assert.Equal(t, 4, report.Profiles)
}

func TestValidate_Problems(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(ws *domain.Workspace)
		kind   domain.ProblemKind
	}{
		{
			name: "duplicate names",
			mutate: func(ws *domain.Workspace) {
				ws.Profiles[1].Name = ProfileNode
			},
			kind: domain.ProblemDuplicateName,
		},
		{
			name: "port collision between browser profiles",
			mutate: func(ws *domain.Workspace) {
				sb, _ := ws.Profile(ProfileStorybook)
				sb.Browser.Port = 7158
			},
			kind: domain.ProblemPortCollision,
		},
		{
			name: "browser port collides with catalog server",
			mutate: func(ws *domain.Workspace) {
				b, _ := ws.Profile(ProfileBrowser)
				b.Browser.Port = 7160
			},
			kind: domain.ProblemPortCollision,
		},
		{
			name: "port out of range",
			mutate: func(ws *domain.Workspace) {
				b, _ := ws.Profile(ProfileBrowser)
				b.Browser.Port = 0
			},
			kind: domain.ProblemInvalidPort,
		},
		{
			name: "two runtimes",
			mutate: func(ws *domain.Workspace) {
				b, _ := ws.Profile(ProfileBrowser)
				b.Environment = domain.EnvironmentHappyDOM
			},
			kind: domain.ProblemEnvironment,
		},
		{
			name: "no runtime",
			mutate: func(ws *domain.Workspace) {
				n, _ := ws.Profile(ProfileNode)
				n.Environment = ""
			},
			kind: domain.ProblemEnvironment,
		},
		{
			name: "unknown environment",
			mutate: func(ws *domain.Workspace) {
				n, _ := ws.Profile(ProfileNode)
				n.Environment = "jsdom-ish"
			},
			kind: domain.ProblemEnvironment,
		},
		{
			name: "malformed glob",
			mutate: func(ws *domain.Workspace) {
				n, _ := ws.Profile(ProfileNode)
				n.Include = append(n.Include, "../tests/[unit/*.ts")
			},
			kind: domain.ProblemInvalidGlob,
		},
		{
			name: "setup files outside catalog",
			mutate: func(ws *domain.Workspace) {
				u, _ := ws.Profile(ProfileUnit)
				u.SetupFiles = []string{"./setup.ts"}
			},
			kind: domain.ProblemMisplacedSetting,
		},
		{
			name: "isolation disabled outside catalog",
			mutate: func(ws *domain.Workspace) {
				u, _ := ws.Profile(ProfileUnit)
				off := false
				u.Isolate = &off
			},
			kind: domain.ProblemMisplacedSetting,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			ws := Build(cfg)
			tt.mutate(ws)

			report := Validate(ws, ValidateOptions{CatalogServerPort: cfg.CatalogServerPort})
			require.False(t, report.OK())
			assert.Equal(t, 1, report.Count(tt.kind), "problems: %v", report.Problems)
			assert.Error(t, report.Err())
		})
	}
}

func TestValidate_CollectsEverything(t *testing.T) {
	cfg := config.New()
	ws := Build(cfg)
	ws.Profiles[1].Name = ProfileNode
	b, _ := ws.Profile(ProfileBrowser)
	b.Browser.Port = 7159

	report := Validate(ws, ValidateOptions{CatalogServerPort: cfg.CatalogServerPort})
	assert.Equal(t, 1, report.Count(domain.ProblemDuplicateName))
	assert.Equal(t, 1, report.Count(domain.ProblemPortCollision))
}

func TestValidate_Routes(t *testing.T) {
	cfg := config.New()
	cfg.BrowserPatterns = []string{"../tests/**/*.ts"}
	router := NewRouter(Build(cfg), wsDir, nil)

	routes := []domain.Route{
		router.Route("/repo/tests/unit/a.test.ts"),
		router.Route("/repo/tests/unit/b.node.test.ts"),
		router.Route("/repo/src/c.test.ts"),
	}
	report := Validate(router.Workspace(), ValidateOptions{Routes: routes})

	assert.Equal(t, 3, report.Files)
	assert.Equal(t, 1, report.Count(domain.ProblemOverlap), "node and browser both claim b.node.test.ts")
	assert.Equal(t, 1, report.Count(domain.ProblemOrphan))
	for _, p := range report.Problems {
		if p.Kind == domain.ProblemOrphan {
			assert.Equal(t, "/repo/src/c.test.ts", p.Subject)
		}
	}
}
