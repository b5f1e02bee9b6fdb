package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestSessionMetrics(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.RecordLogin(LoginSuccess)
	m.RecordLogin(LoginForbiddenRole)
	m.RecordLogin(LoginForbiddenRole)
	m.RecordRevalidation(RevalidationRejected)
	m.RecordLogout()

	if got := testutil.ToFloat64(m.LoginAttempts.WithLabelValues(LoginSuccess)); got != 1 {
		t.Errorf("LoginAttempts success = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.LoginAttempts.WithLabelValues(LoginForbiddenRole)); got != 2 {
		t.Errorf("LoginAttempts forbidden_role = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.SessionRevalidations.WithLabelValues(RevalidationRejected)); got != 1 {
		t.Errorf("SessionRevalidations rejected = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.Logouts); got != 1 {
		t.Errorf("Logouts = %v, want 1", got)
	}
}

func TestPermissionMetrics(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.RecordPermissionCheck("users:edit", false)
	m.RecordPermissionCheck("users:view", true)

	if got := testutil.ToFloat64(m.PermissionChecks.WithLabelValues("users:edit", "false")); got != 1 {
		t.Errorf("PermissionChecks users:edit/false = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.PermissionChecks.WithLabelValues("users:view", "true")); got != 1 {
		t.Errorf("PermissionChecks users:view/true = %v, want 1", got)
	}
}

func TestAPIMetrics(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.RecordAPIRequest("GET", "/api/auth/me", 200, 20*time.Millisecond)
	m.RecordAPIRequest("GET", "/api/auth/me", 0, time.Second)

	if got := testutil.ToFloat64(m.APIRequests.WithLabelValues("GET", "/api/auth/me", "200")); got != 1 {
		t.Errorf("APIRequests 200 = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.APIRequests.WithLabelValues("GET", "/api/auth/me", "error")); got != 1 {
		t.Errorf("APIRequests error = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(m.APIRequestDuration); got != 1 {
		t.Errorf("APIRequestDuration series = %d, want 1", got)
	}
}

func TestCommandErrorMetrics(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.RecordCommandError("users list", "PERM-001")
	m.RecordCommandError("users list", "")

	if got := testutil.ToFloat64(m.CommandErrors.WithLabelValues("users list", "PERM-001")); got != 1 {
		t.Errorf("CommandErrors PERM-001 = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.CommandErrors.WithLabelValues("users list", "unknown")); got != 1 {
		t.Errorf("CommandErrors unknown = %v, want 1", got)
	}
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics

	// None of these may panic.
	m.RecordLogin(LoginSuccess)
	m.RecordRevalidation(RevalidationValid)
	m.RecordLogout()
	m.RecordPermissionCheck("users:view", true)
	m.RecordAPIRequest("GET", "/", 200, time.Millisecond)
	m.RecordCommandError("auth login", "AUTH-001")
}

func TestWriteTextfile(t *testing.T) {
	r := NewRecorder()
	r.RecordLogin(LoginRejected)
	r.RecordLogout()

	path := filepath.Join(t.TempDir(), "nested", "adminctl.prom")
	if err := r.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read textfile: %v", err)
	}
	out := string(data)

	for _, want := range []string{
		`adminctl_login_attempts_total{outcome="rejected"} 1`,
		"adminctl_logouts_total 1",
		"# TYPE adminctl_logouts_total counter",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("textfile missing %q\n%s", want, out)
		}
	}
}

func TestWriteTextfile_NoPath(t *testing.T) {
	var r *Recorder
	if err := r.WriteTextfile("/unused"); err != nil {
		t.Errorf("nil recorder should be a no-op, got %v", err)
	}
	if err := NewRecorder().WriteTextfile(""); err != nil {
		t.Errorf("empty path should be a no-op, got %v", err)
	}
}
