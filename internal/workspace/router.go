package workspace

import (
	"context"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"testenv/internal/domain"
)

// Progress receives routing progress
type Progress interface {
	Update(done, conflicts int)
	Finish()
}

// Router decides which profile runs a given test file
type Router struct {
	ws     *domain.Workspace
	dir    string
	logger *zap.Logger
}

// NewRouter creates a Router resolving paths against the workspace dir
func NewRouter(ws *domain.Workspace, dir string, logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{ws: ws, dir: dir, logger: logger}
}

// Workspace returns the profiles the router routes to
func (r *Router) Workspace() *domain.Workspace {
	return r.ws
}

// Relative converts path to the slash-separated form include globs are written against
func (r *Router) Relative(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(r.dir, abs)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// Route reports every profile claiming path and picks the owner.
// Server-side wins over real-browser, which wins over the default profile.
func (r *Router) Route(path string) domain.Route {
	return r.RouteRelative(path, r.Relative(path))
}

// RouteRelative routes a path already expressed relative to the workspace dir
func (r *Router) RouteRelative(path, rel string) domain.Route {
	route := domain.Route{Path: path}
	best := -1
	for i := range r.ws.Profiles {
		p := &r.ws.Profiles[i]
		if p.Category == domain.CategoryCatalog || !Matches(p, rel) {
			continue
		}
		route.Matched = append(route.Matched, p.Name)
		prec := p.Category.Precedence()
		if prec < 0 {
			continue
		}
		if best < 0 || prec < best {
			best = prec
			route.Owner = p.Name
		}
	}
	if route.Conflict() {
		r.logger.Debug("file claimed by several profiles",
			zap.String("path", path),
			zap.Strings("matched", route.Matched),
			zap.String("owner", route.Owner))
	}
	return route
}

// RouteAll routes paths with a pool of workers. Results keep the input order.
func (r *Router) RouteAll(ctx context.Context, paths []string, workers int, progress Progress) ([]domain.Route, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	if workers <= 0 {
		workers = 1
	}

	queue := make(chan int, len(paths))
	for i := range paths {
		queue <- i
	}
	close(queue)

	routes := make([]domain.Route, len(paths))
	var mu sync.Mutex
	var done, conflicts int

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range queue {
				if ctx.Err() != nil {
					return
				}
				route := r.Route(paths[i])
				routes[i] = route
				mu.Lock()
				done++
				if route.Conflict() {
					conflicts++
				}
				if progress != nil {
					progress.Update(done, conflicts)
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if progress != nil {
		progress.Finish()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return routes, nil
}

// Group buckets routes by owner; orphans are keyed by the empty string
func Group(routes []domain.Route) map[string][]domain.Route {
	groups := make(map[string][]domain.Route)
	for _, route := range routes {
		groups[route.Owner] = append(groups[route.Owner], route)
	}
	return groups
}
