// Package preflight detects, before the orchestrator starts, the failures it
// would otherwise only report at run time: busy ports and an unreachable
// component catalog.
package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"testenv/internal/domain"
)

const (
	defaultTimeout     = 2 * time.Second
	defaultParallelism = 4
)

// PortClaim is a port a profile expects to bind
type PortClaim struct {
	Owner string
	Port  int
}

// Claims lists the ports the workspace will bind: every browser API port plus
// the catalog server port
func Claims(ws *domain.Workspace, catalogOwner string, catalogServerPort int) []PortClaim {
	var claims []PortClaim
	for _, p := range ws.Profiles {
		if p.IsBrowser() {
			claims = append(claims, PortClaim{Owner: p.Name, Port: p.Browser.Port})
		}
	}
	if catalogServerPort != 0 {
		claims = append(claims, PortClaim{Owner: catalogOwner, Port: catalogServerPort})
	}
	return claims
}

// Checker probes local resources the workspace depends on
type Checker struct {
	hosts   []string
	timeout time.Duration
	client  *http.Client
	logger  *zap.Logger
}

// NewChecker creates a Checker probing both loopback addresses. Dev servers
// that bind "localhost" may end up on either one.
func NewChecker(logger *zap.Logger) *Checker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Checker{
		hosts:   []string{"127.0.0.1", "::1"},
		timeout: defaultTimeout,
		logger:  logger,
		client: &http.Client{
			Timeout:   defaultTimeout,
			Transport: &http.Transport{DisableKeepAlives: true},
		},
	}
}

// CheckPorts tries to bind every claimed port concurrently and reports the busy
// ones in claim order
func (c *Checker) CheckPorts(ctx context.Context, claims []PortClaim) ([]domain.Problem, error) {
	found := make([]*domain.Problem, len(claims))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(defaultParallelism)
	for i, claim := range claims {
		i, claim := i, claim
		g.Go(func() error {
			if err := c.probePort(gctx, claim.Port); err != nil {
				c.logger.Debug("port unavailable", zap.String("owner", claim.Owner), zap.Int("port", claim.Port), zap.Error(err))
				found[i] = &domain.Problem{
					Kind:    domain.ProblemPortInUse,
					Profile: claim.Owner,
					Subject: fmt.Sprint(claim.Port),
					Message: fmt.Sprintf("port %d is already in use", claim.Port),
				}
			}
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var problems []domain.Problem
	for _, p := range found {
		if p != nil {
			problems = append(problems, *p)
		}
	}
	return problems, nil
}

// probePort binds port on every loopback host. A host the machine does not
// have (no IPv6) is skipped.
func (c *Checker) probePort(ctx context.Context, port int) error {
	var lc net.ListenConfig
	for _, host := range c.hosts {
		ln, err := lc.Listen(ctx, "tcp", net.JoinHostPort(host, fmt.Sprint(port)))
		if err != nil {
			if hostUnavailable(err) {
				c.logger.Debug("loopback host unavailable", zap.String("host", host), zap.Error(err))
				continue
			}
			return err
		}
		if err := ln.Close(); err != nil {
			return err
		}
	}
	return nil
}

func hostUnavailable(err error) bool {
	return errors.Is(err, syscall.EADDRNOTAVAIL) || errors.Is(err, syscall.EAFNOSUPPORT)
}

// CheckCatalog reports a problem when nothing answers at the catalog URL
func (c *Checker) CheckCatalog(ctx context.Context, owner, url string) *domain.Problem {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &domain.Problem{Kind: domain.ProblemCatalogDown, Profile: owner, Subject: url, Message: err.Error()}
	}
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Debug("catalog probe failed", zap.String("url", url), zap.Error(err))
		return &domain.Problem{
			Kind:    domain.ProblemCatalogDown,
			Profile: owner,
			Subject: url,
			Message: fmt.Sprintf("no catalog server at %s", url),
		}
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusInternalServerError {
		return &domain.Problem{
			Kind:    domain.ProblemCatalogDown,
			Profile: owner,
			Subject: url,
			Message: fmt.Sprintf("catalog server at %s answered %s", url, resp.Status),
		}
	}
	return nil
}
