package domain

// Category is the routing class of a profile
type Category string

const (
	CategoryServer  Category = "server-only"
	CategoryBrowser Category = "browser-only"
	CategoryDefault Category = "default"
	CategoryCatalog Category = "catalog"
)

// Precedence orders the file-based categories; a lower value wins when a file matches more than one
func (c Category) Precedence() int {
	switch c {
	case CategoryServer:
		return 0
	case CategoryBrowser:
		return 1
	case CategoryDefault:
		return 2
	}
	return -1
}

// Route is the routing result of a single file
type Route struct {
	Path    string   `json:"path"`
	Owner   string   `json:"owner,omitempty"`  // profile that runs the file, empty when none claims it
	Matched []string `json:"matched,omitempty"` // every profile whose include rule matched
}

// Orphan reports whether no profile claims the file
func (r Route) Orphan() bool {
	return r.Owner == ""
}

// Conflict reports whether more than one profile claims the file
func (r Route) Conflict() bool {
	return len(r.Matched) > 1
}
