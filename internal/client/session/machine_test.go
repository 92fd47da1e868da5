package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/client/client"
	"github.com/dmitrijs2005/gophauth/internal/client/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuth struct {
	session    *services.SessionInfo
	sessionErr error
	verify     *client.VerifyResponse
	verifyErr  error
	logoutErr  error

	verifyCalls int
	logoutCalls int
}

func (f *fakeAuth) Verify(ctx context.Context) (*client.VerifyResponse, error) {
	f.verifyCalls++
	return f.verify, f.verifyErr
}

func (f *fakeAuth) Session(ctx context.Context) (*services.SessionInfo, error) {
	return f.session, f.sessionErr
}

func (f *fakeAuth) Logout(ctx context.Context) error {
	f.logoutCalls++
	return f.logoutErr
}

type recorder struct {
	mu        sync.Mutex
	redirects int
	messages  []string
}

func (r *recorder) ToLogin() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.redirects++
}

func (r *recorder) Notify(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
}

func (r *recorder) snapshot() (int, []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.redirects, append([]string(nil), r.messages...)
}

type fakeTimer struct {
	d       time.Duration
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

// captureTimers replaces afterFunc; captured callbacks run only when the
// test fires them.
func captureTimers(t *testing.T) *[]*fakeTimer {
	t.Helper()
	var timers []*fakeTimer
	orig := afterFunc
	afterFunc = func(d time.Duration, f func()) stopper {
		ft := &fakeTimer{d: d, f: f}
		timers = append(timers, ft)
		return ft
	}
	t.Cleanup(func() { afterFunc = orig })
	return &timers
}

var someSession = &services.SessionInfo{Email: "a@b.io"}

func TestMount_Authenticated(t *testing.T) {
	timers := captureTimers(t)
	fa := &fakeAuth{session: someSession, verify: &client.VerifyResponse{Status: true, User: "alice"}}
	rec := &recorder{}
	m := New(fa, rec, rec, Options{RedirectDelay: time.Second, FastPath: true})

	st, _ := m.State()
	assert.Equal(t, Loading, st)

	assert.Equal(t, Authenticated, m.Mount(context.Background()))
	st, user := m.State()
	assert.Equal(t, Authenticated, st)
	assert.Equal(t, "alice", user)

	redirects, msgs := rec.snapshot()
	assert.Zero(t, redirects)
	assert.Empty(t, msgs)
	assert.Empty(t, *timers)
}

func TestMount_StatusFalseSchedulesRedirect(t *testing.T) {
	timers := captureTimers(t)
	fa := &fakeAuth{session: someSession, verify: &client.VerifyResponse{Status: false}}
	rec := &recorder{}
	m := New(fa, rec, rec, Options{RedirectDelay: time.Second, FastPath: true})

	assert.Equal(t, Unauthenticated, m.Mount(context.Background()))

	redirects, msgs := rec.snapshot()
	assert.Equal(t, []string{MsgSessionExpired}, msgs)
	assert.Zero(t, redirects, "redirect waits for the delay")

	require.Len(t, *timers, 1)
	assert.Equal(t, time.Second, (*timers)[0].d)
	(*timers)[0].f()

	redirects, _ = rec.snapshot()
	assert.Equal(t, 1, redirects)
	assert.Equal(t, 1, fa.verifyCalls, "no retry")
}

func TestMount_NetworkErrorSchedulesRedirect(t *testing.T) {
	timers := captureTimers(t)
	fa := &fakeAuth{session: someSession, verifyErr: client.ErrUnavailable}
	rec := &recorder{}
	m := New(fa, rec, rec, Options{RedirectDelay: 1500 * time.Millisecond})

	assert.Equal(t, Unauthenticated, m.Mount(context.Background()))
	_, msgs := rec.snapshot()
	assert.Equal(t, []string{MsgAuthFailed}, msgs)

	require.Len(t, *timers, 1)
	assert.Equal(t, 1500*time.Millisecond, (*timers)[0].d)
	(*timers)[0].f()
	redirects, _ := rec.snapshot()
	assert.Equal(t, 1, redirects)
}

func TestMount_FastPathSkipsVerify(t *testing.T) {
	timers := captureTimers(t)
	fa := &fakeAuth{}
	rec := &recorder{}
	m := New(fa, rec, rec, Options{RedirectDelay: time.Second, FastPath: true})

	assert.Equal(t, Unauthenticated, m.Mount(context.Background()))
	assert.Zero(t, fa.verifyCalls)

	redirects, msgs := rec.snapshot()
	assert.Equal(t, 1, redirects)
	assert.Empty(t, msgs)
	assert.Empty(t, *timers)
}

func TestMount_WithoutFastPathAlwaysVerifies(t *testing.T) {
	captureTimers(t)
	fa := &fakeAuth{verify: &client.VerifyResponse{Status: false}}
	rec := &recorder{}
	m := New(fa, rec, rec, Options{RedirectDelay: time.Second, FastPath: false})

	m.Mount(context.Background())
	assert.Equal(t, 1, fa.verifyCalls)
}

func TestMount_FastPathLookupErrorFallsBackToVerify(t *testing.T) {
	captureTimers(t)
	fa := &fakeAuth{sessionErr: errors.New("disk"), verify: &client.VerifyResponse{Status: true, User: "bob"}}
	rec := &recorder{}
	m := New(fa, rec, rec, Options{FastPath: true})

	assert.Equal(t, Authenticated, m.Mount(context.Background()))
	assert.Equal(t, 1, fa.verifyCalls)
}

func TestStaleRedirectIsDropped(t *testing.T) {
	timers := captureTimers(t)
	fa := &fakeAuth{session: someSession, verify: &client.VerifyResponse{Status: false}}
	rec := &recorder{}
	m := New(fa, rec, rec, Options{RedirectDelay: time.Second})

	m.Mount(context.Background())
	require.Len(t, *timers, 1)
	first := (*timers)[0]

	// a second mount succeeds before the first redirect fires
	fa.verify = &client.VerifyResponse{Status: true, User: "alice"}
	assert.Equal(t, Authenticated, m.Mount(context.Background()))
	assert.True(t, first.stopped)

	first.f()
	redirects, _ := rec.snapshot()
	assert.Zero(t, redirects)
	st, _ := m.State()
	assert.Equal(t, Authenticated, st)
}

func TestStop_CancelsPendingRedirect(t *testing.T) {
	timers := captureTimers(t)
	fa := &fakeAuth{session: someSession, verify: &client.VerifyResponse{Status: false}}
	rec := &recorder{}
	m := New(fa, rec, rec, Options{RedirectDelay: time.Second})

	m.Mount(context.Background())
	m.Stop()
	require.Len(t, *timers, 1)
	assert.True(t, (*timers)[0].stopped)

	(*timers)[0].f()
	redirects, _ := rec.snapshot()
	assert.Zero(t, redirects)
}

func TestLogout_RedirectsImmediately(t *testing.T) {
	timers := captureTimers(t)
	fa := &fakeAuth{session: someSession, verify: &client.VerifyResponse{Status: true, User: "alice"}, logoutErr: client.ErrUnavailable}
	rec := &recorder{}
	m := New(fa, rec, rec, Options{RedirectDelay: time.Second})

	m.Mount(context.Background())

	err := m.Logout(context.Background())
	assert.ErrorIs(t, err, client.ErrUnavailable)
	assert.Equal(t, 1, fa.logoutCalls)

	st, user := m.State()
	assert.Equal(t, Unauthenticated, st)
	assert.Empty(t, user)

	redirects, msgs := rec.snapshot()
	assert.Equal(t, 1, redirects)
	assert.Empty(t, msgs)
	assert.Empty(t, *timers)
}

func TestRealTimerFires(t *testing.T) {
	fa := &fakeAuth{session: someSession, verify: &client.VerifyResponse{Status: false}}
	rec := &recorder{}
	m := New(fa, rec, rec, Options{RedirectDelay: 10 * time.Millisecond})

	m.Mount(context.Background())

	assert.Eventually(t, func() bool {
		redirects, _ := rec.snapshot()
		return redirects == 1
	}, time.Second, 5*time.Millisecond)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "loading", Loading.String())
	assert.Equal(t, "authenticated", Authenticated.String())
	assert.Equal(t, "unauthenticated", Unauthenticated.String())
	assert.Equal(t, "unknown", State(42).String())
}
