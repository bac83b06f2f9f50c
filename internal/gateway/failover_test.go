package gateway

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"medibook/pkg/client"
	"medibook/pkg/config"
	"medibook/pkg/logger"
)

func gatewayTestConfig() *config.Config {
	return &config.Config{
		ProbeTimeout: 500 * time.Millisecond,
		Log:          logger.New(logger.Config{Output: io.Discard}),
	}
}

type recordedRequest struct {
	path string
	auth string
}

// echoBackend records the path and Authorization header of every
// request it serves. healthy controls the /health answer.
func echoBackend(t *testing.T, healthy bool, requests *[]recordedRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			if healthy {
				w.WriteHeader(http.StatusOK)
			} else {
				w.WriteHeader(http.StatusServiceUnavailable)
			}
			return
		}
		*requests = append(*requests, recordedRequest{
			path: r.URL.Path,
			auth: r.Header.Get("Authorization"),
		})
		w.WriteHeader(http.StatusOK)
	}))
}

func newFailover(t *testing.T, cfg *config.Config, primaryURL, backupURL string) *FailoverRouter {
	t.Helper()
	primaryProxy, err := NewServiceProxy(primaryURL, AuthPrefix, "/userauth", cfg)
	if err != nil {
		t.Fatalf("primary proxy: %v", err)
	}
	backupProxy, err := NewServiceProxy(backupURL, AuthPrefix, "/api/backup", cfg)
	if err != nil {
		t.Fatalf("backup proxy: %v", err)
	}
	probe := client.NewHttpClient(primaryURL, cfg.ProbeTimeout)
	return NewFailoverRouter(probe, primaryProxy, backupProxy, cfg)
}

func TestFailoverHealthyPrimaryGetsRequest(t *testing.T) {
	var primaryReqs, backupReqs []recordedRequest
	primary := echoBackend(t, true, &primaryReqs)
	defer primary.Close()
	backup := echoBackend(t, true, &backupReqs)
	defer backup.Close()

	cfg := gatewayTestConfig()
	failover := newFailover(t, cfg, primary.URL, backup.URL)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.Header.Set("Authorization", "Bearer token-123")
	rec := httptest.NewRecorder()
	failover.ServeHTTP(rec, req)

	if len(primaryReqs) != 1 {
		t.Fatalf("expected primary to serve the request, got %d hits", len(primaryReqs))
	}
	if len(backupReqs) != 0 {
		t.Fatalf("backup must not be hit when primary is healthy, got %d hits", len(backupReqs))
	}
	if primaryReqs[0].path != "/userauth/login" {
		t.Errorf("expected path rewritten to /userauth/login, got %s", primaryReqs[0].path)
	}
	if primaryReqs[0].auth != "Bearer token-123" {
		t.Errorf("Authorization header not forwarded, got %q", primaryReqs[0].auth)
	}
}

func TestFailoverUnhealthyPrimaryDivertsToBackup(t *testing.T) {
	var primaryReqs, backupReqs []recordedRequest
	primary := echoBackend(t, false, &primaryReqs)
	defer primary.Close()
	backup := echoBackend(t, true, &backupReqs)
	defer backup.Close()

	cfg := gatewayTestConfig()
	failover := newFailover(t, cfg, primary.URL, backup.URL)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.Header.Set("Authorization", "Bearer token-123")
	rec := httptest.NewRecorder()
	failover.ServeHTTP(rec, req)

	if len(primaryReqs) != 0 {
		t.Fatalf("primary must not serve while unhealthy, got %d hits", len(primaryReqs))
	}
	if len(backupReqs) != 1 {
		t.Fatalf("expected backup to serve the request, got %d hits", len(backupReqs))
	}
	if backupReqs[0].path != "/api/backup/login" {
		t.Errorf("expected path rewritten to /api/backup/login, got %s", backupReqs[0].path)
	}
	if backupReqs[0].auth != "Bearer token-123" {
		t.Errorf("Authorization header not forwarded, got %q", backupReqs[0].auth)
	}
}

func TestFailoverDeadPrimaryDivertsToBackup(t *testing.T) {
	var backupReqs []recordedRequest
	// A closed server: connection refused, not just unhealthy.
	var primaryReqs []recordedRequest
	primary := echoBackend(t, true, &primaryReqs)
	primary.Close()
	backup := echoBackend(t, true, &backupReqs)
	defer backup.Close()

	cfg := gatewayTestConfig()
	failover := newFailover(t, cfg, primary.URL, backup.URL)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	rec := httptest.NewRecorder()
	failover.ServeHTTP(rec, req)

	if len(backupReqs) != 1 {
		t.Fatalf("expected backup to serve the request, got %d hits", len(backupReqs))
	}
}

func TestFailoverRecoveredPrimaryUsedAgain(t *testing.T) {
	var primaryReqs, backupReqs []recordedRequest
	healthy := false
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			if healthy {
				w.WriteHeader(http.StatusOK)
			} else {
				w.WriteHeader(http.StatusServiceUnavailable)
			}
			return
		}
		primaryReqs = append(primaryReqs, recordedRequest{path: r.URL.Path})
		w.WriteHeader(http.StatusOK)
	}))
	defer primary.Close()
	backup := echoBackend(t, true, &backupReqs)
	defer backup.Close()

	cfg := gatewayTestConfig()
	failover := newFailover(t, cfg, primary.URL, backup.URL)

	rec := httptest.NewRecorder()
	failover.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/login", nil))
	if len(backupReqs) != 1 {
		t.Fatalf("expected backup hit while primary down, got %d", len(backupReqs))
	}

	healthy = true
	rec = httptest.NewRecorder()
	failover.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/login", nil))
	if len(primaryReqs) != 1 {
		t.Fatalf("expected primary hit after recovery, got %d", len(primaryReqs))
	}
}

func TestRewritePath(t *testing.T) {
	cases := []struct {
		path, from, to, want string
	}{
		{"/auth/login", "/auth", "/userauth", "/userauth/login"},
		{"/auth/login", "/auth", "/api/backup", "/api/backup/login"},
		{"/auth", "/auth", "/userauth", "/userauth"},
		{"/doctors/availability/abc/2026-09-14", "/doctors", "", "/availability/abc/2026-09-14"},
		{"/consults/api", "/consults", "/api/consults", "/api/consults/api"},
	}

	for _, tc := range cases {
		if got := rewritePath(tc.path, tc.from, tc.to); got != tc.want {
			t.Errorf("rewritePath(%q, %q, %q) = %q, want %q", tc.path, tc.from, tc.to, got, tc.want)
		}
	}
}
