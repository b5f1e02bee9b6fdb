package health

import (
	"context"
	stderrors "errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vantagedating/adminctl/internal/auth"
	"github.com/vantagedating/adminctl/internal/domain"
)

func fixed(name string, r *Result) Checker {
	return NewCheckFunc(name, func(context.Context) *Result { return r })
}

func TestResultConstructors(t *testing.T) {
	tests := []struct {
		result *Result
		want   Status
	}{
		{Healthy("ok"), StatusHealthy},
		{Degraded("meh"), StatusDegraded},
		{Unhealthy("down"), StatusUnhealthy},
	}
	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.result.Status)
			assert.NotNil(t, tt.result.Details)
		})
	}

	r := Healthy("ok").WithDetail("a", "1").WithDetail("b", "2")
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, r.Details)
}

func TestManager_WorstStatusWins(t *testing.T) {
	tests := []struct {
		name    string
		results []*Result
		want    Status
	}{
		{"empty", nil, StatusHealthy},
		{"all healthy", []*Result{Healthy("a"), Healthy("b")}, StatusHealthy},
		{"one degraded", []*Result{Healthy("a"), Degraded("b")}, StatusDegraded},
		{"unhealthy beats degraded", []*Result{Degraded("a"), Unhealthy("b"), Healthy("c")}, StatusUnhealthy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager(time.Second)
			for i, r := range tt.results {
				m.Add(fixed(string(rune('a'+i)), r))
			}
			assert.Equal(t, tt.want, m.Run(context.Background()).Status)
		})
	}
}

func TestManager_KeepsRegistrationOrder(t *testing.T) {
	m := NewManager(0)
	m.Add(NewCheckFunc("slow", func(ctx context.Context) *Result {
		time.Sleep(20 * time.Millisecond)
		return Healthy("slow")
	}))
	m.Add(fixed("fast", Healthy("fast")))

	report := m.Run(context.Background())
	require.Len(t, report.Checks, 2)
	assert.Equal(t, "slow", report.Checks[0].Name)
	assert.Equal(t, "fast", report.Checks[1].Name)
	assert.Equal(t, []string{"slow", "fast"}, m.Names())
	assert.Positive(t, report.Checks[0].Latency)
}

func TestManager_RunsInParallel(t *testing.T) {
	var running, peak atomic.Int32
	check := func(ctx context.Context) *Result {
		n := running.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(30 * time.Millisecond)
		running.Add(-1)
		return Healthy("done")
	}

	m := NewManager(time.Second)
	m.Add(NewCheckFunc("a", check))
	m.Add(NewCheckFunc("b", check))
	m.Add(NewCheckFunc("c", check))
	m.Run(context.Background())

	assert.Greater(t, peak.Load(), int32(1))
}

func TestManager_Timeout(t *testing.T) {
	m := NewManager(10 * time.Millisecond)
	m.Add(NewCheckFunc("hang", func(ctx context.Context) *Result {
		<-ctx.Done()
		return Unhealthy("timed out").WithDetail("error", ctx.Err().Error())
	}))

	report := m.Run(context.Background())
	require.Len(t, report.Checks, 1)
	assert.Equal(t, StatusUnhealthy, report.Checks[0].Status)
	assert.Equal(t, context.DeadlineExceeded.Error(), report.Checks[0].Details["error"])
}

func TestManager_NilResult(t *testing.T) {
	m := NewManager(time.Second)
	m.Add(NewCheckFunc("broken", func(context.Context) *Result { return nil }))

	report := m.Run(context.Background())
	assert.Equal(t, StatusUnhealthy, report.Status)
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }
func (p fakePinger) BaseURL() string            { return "http://backend.test" }

func TestBackendChecker(t *testing.T) {
	r := NewBackendChecker(fakePinger{}).Check(context.Background())
	assert.Equal(t, StatusHealthy, r.Status)
	assert.Equal(t, "http://backend.test", r.Details["api_url"])

	r = NewBackendChecker(fakePinger{err: stderrors.New("connection refused")}).Check(context.Background())
	assert.Equal(t, StatusUnhealthy, r.Status)
	assert.Equal(t, "connection refused", r.Details["error"])
}

type fakeLoader struct {
	token string
	err   error
}

func (l fakeLoader) Load(context.Context) (string, error) { return l.token, l.err }

func TestStoreChecker(t *testing.T) {
	tests := []struct {
		name   string
		loader fakeLoader
		want   Status
	}{
		{"token stored", fakeLoader{token: "abc"}, StatusHealthy},
		{"empty store", fakeLoader{}, StatusDegraded},
		{"token not found", fakeLoader{err: auth.ErrTokenNotFound}, StatusDegraded},
		{"read error", fakeLoader{err: stderrors.New("permission denied")}, StatusUnhealthy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewStoreChecker("file", tt.loader)
			assert.Equal(t, "token-store", c.Name())
			r := c.Check(context.Background())
			assert.Equal(t, tt.want, r.Status)
			assert.Equal(t, "file", r.Details["backend"])
		})
	}
}

type fakeSession struct {
	err error
	id  *domain.Identity
}

func (s fakeSession) Initialize(context.Context) error { return s.err }
func (s fakeSession) Authenticated() bool              { return s.id != nil }
func (s fakeSession) Identity() *domain.Identity       { return s.id }

func TestSessionChecker(t *testing.T) {
	r := NewSessionChecker(fakeSession{id: &domain.Identity{Email: "ops@vantage.test", UserType: "viewer"}}).Check(context.Background())
	assert.Equal(t, StatusHealthy, r.Status)
	assert.Equal(t, "ops@vantage.test", r.Details["email"])

	r = NewSessionChecker(fakeSession{}).Check(context.Background())
	assert.Equal(t, StatusDegraded, r.Status)

	r = NewSessionChecker(fakeSession{err: stderrors.New("store offline")}).Check(context.Background())
	assert.Equal(t, StatusUnhealthy, r.Status)
}
