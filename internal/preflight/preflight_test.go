package preflight

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"testenv/internal/config"
	"testenv/internal/domain"
	"testenv/internal/workspace"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func freePort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())
	return port
}

func TestClaims(t *testing.T) {
	cfg := config.New()
	claims := Claims(workspace.Build(cfg), "storybook server", cfg.CatalogServerPort)

	assert.Equal(t, []PortClaim{
		{Owner: workspace.ProfileBrowser, Port: 7158},
		{Owner: workspace.ProfileStorybook, Port: 7159},
		{Owner: "storybook server", Port: 7160},
	}, claims)
}

func TestChecker_CheckPorts(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()
	busyPort := busy.Addr().(*net.TCPAddr).Port

	checker := NewChecker(nil)
	problems, err := checker.CheckPorts(context.Background(), []PortClaim{
		{Owner: "browser", Port: busyPort},
		{Owner: "storybook", Port: freePort(t)},
	})
	require.NoError(t, err)
	require.Len(t, problems, 1)
	assert.Equal(t, domain.ProblemPortInUse, problems[0].Kind)
	assert.Equal(t, "browser", problems[0].Profile)
}

func TestChecker_CheckPorts_IPv6Loopback(t *testing.T) {
	busy, err := net.Listen("tcp", "[::1]:0")
	if err != nil {
		t.Skipf("IPv6 loopback unavailable: %v", err)
	}
	defer busy.Close()
	port := busy.Addr().(*net.TCPAddr).Port

	problems, err := NewChecker(nil).CheckPorts(context.Background(), []PortClaim{{Owner: "storybook server", Port: port}})
	require.NoError(t, err)
	require.Len(t, problems, 1)
	assert.Equal(t, domain.ProblemPortInUse, problems[0].Kind)
	assert.Equal(t, strconv.Itoa(port), problems[0].Subject)
}

func TestChecker_CheckPorts_KeepsClaimOrder(t *testing.T) {
	var ports []int
	for i := 0; i < 3; i++ {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		defer ln.Close()
		ports = append(ports, ln.Addr().(*net.TCPAddr).Port)
	}

	claims := []PortClaim{
		{Owner: "storybook server", Port: ports[2]},
		{Owner: "browser", Port: ports[0]},
		{Owner: "storybook", Port: ports[1]},
	}
	problems, err := NewChecker(nil).CheckPorts(context.Background(), claims)
	require.NoError(t, err)
	require.Len(t, problems, 3)
	for i, claim := range claims {
		assert.Equal(t, claim.Owner, problems[i].Profile)
		assert.Equal(t, strconv.Itoa(claim.Port), problems[i].Subject)
	}
}

func TestHostUnavailable(t *testing.T) {
	assert.True(t, hostUnavailable(&net.OpError{Op: "listen", Err: os.NewSyscallError("bind", syscall.EADDRNOTAVAIL)}))
	assert.True(t, hostUnavailable(&net.OpError{Op: "listen", Err: os.NewSyscallError("socket", syscall.EAFNOSUPPORT)}))
	assert.False(t, hostUnavailable(&net.OpError{Op: "listen", Err: os.NewSyscallError("bind", syscall.EADDRINUSE)}))
}

func TestChecker_CheckPorts_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewChecker(nil).CheckPorts(ctx, []PortClaim{{Owner: "browser", Port: freePort(t)}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestChecker_CheckCatalog(t *testing.T) {
	checker := NewChecker(nil)

	t.Run("reachable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		assert.Nil(t, checker.CheckCatalog(context.Background(), "storybook", srv.URL))
	})

	t.Run("server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		problem := checker.CheckCatalog(context.Background(), "storybook", srv.URL)
		require.NotNil(t, problem)
		assert.Equal(t, domain.ProblemCatalogDown, problem.Kind)
	})

	t.Run("nothing listening", func(t *testing.T) {
		url := "http://127.0.0.1:" + strconv.Itoa(freePort(t))
		problem := checker.CheckCatalog(context.Background(), "storybook", url)
		require.NotNil(t, problem)
		assert.Equal(t, url, problem.Subject)
	})
}
