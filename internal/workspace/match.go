package workspace

import (
	"github.com/bmatcuk/doublestar/v4"

	"testenv/internal/domain"
)

// Matches reports whether the profile's include rule claims rel, a slash-separated
// path relative to the workspace dir. A file is claimed when at least one positive
// glob matches and no negated glob does. Malformed globs never match.
func Matches(p *domain.Profile, rel string) bool {
	claimed := false
	for _, g := range p.Positive() {
		if ok, err := doublestar.Match(g, rel); err == nil && ok {
			claimed = true
			break
		}
	}
	if !claimed {
		return false
	}
	for _, g := range p.Negated() {
		if ok, err := doublestar.Match(g, rel); err == nil && ok {
			return false
		}
	}
	return true
}

// invalidGlobs returns every include glob of p that doublestar rejects
func invalidGlobs(p *domain.Profile) []string {
	var bad []string
	for _, g := range p.Include {
		if len(g) > 0 && g[0] == '!' {
			g = g[1:]
		}
		if g == "" || !doublestar.ValidatePattern(g) {
			bad = append(bad, g)
		}
	}
	return bad
}
