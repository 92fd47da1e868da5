// Package session is the client-side session state machine. A Machine starts
// in Loading on every Mount, then settles in Authenticated or Unauthenticated
// depending on the server's verification answer.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/client/client"
	"github.com/dmitrijs2005/gophauth/internal/client/services"
)

type State int

const (
	Loading State = iota
	Authenticated
	Unauthenticated
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Authenticated:
		return "authenticated"
	case Unauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

const (
	MsgSessionExpired = "Session expired. Please login again."
	MsgAuthFailed     = "Authentication failed. Please login again."
)

// Authenticator is the part of services.AuthService the machine drives.
type Authenticator interface {
	Verify(ctx context.Context) (*client.VerifyResponse, error)
	Session(ctx context.Context) (*services.SessionInfo, error)
	Logout(ctx context.Context) error
}

// Navigator switches the UI to the login view.
type Navigator interface {
	ToLogin()
}

// Notifier shows a one-line message to the user.
type Notifier interface {
	Notify(msg string)
}

type Options struct {
	RedirectDelay time.Duration
	FastPath      bool
}

type stopper interface {
	Stop() bool
}

// afterFunc is a seam for tests.
var afterFunc = func(d time.Duration, f func()) stopper {
	return time.AfterFunc(d, f)
}

type Machine struct {
	auth   Authenticator
	nav    Navigator
	notify Notifier
	opts   Options

	mu       sync.Mutex
	state    State
	username string
	gen      uint64
	pending  stopper
}

func New(auth Authenticator, nav Navigator, notify Notifier, opts Options) *Machine {
	return &Machine{
		auth:   auth,
		nav:    nav,
		notify: notify,
		opts:   opts,
		state:  Loading,
	}
}

// State returns the current state and, when Authenticated, the username.
func (m *Machine) State() (State, string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state, m.username
}

// Mount runs one verification cycle. On failure a message is shown and a
// single redirect to login is scheduled after RedirectDelay; it is never
// retried.
func (m *Machine) Mount(ctx context.Context) State {
	gen := m.reset()

	if m.opts.FastPath {
		info, err := m.auth.Session(ctx)
		if err == nil && info == nil {
			m.settle(gen, Unauthenticated, "")
			m.nav.ToLogin()
			return Unauthenticated
		}
	}

	res, err := m.auth.Verify(ctx)
	switch {
	case err != nil:
		m.fail(gen, MsgAuthFailed)
	case !res.Status:
		m.fail(gen, MsgSessionExpired)
	default:
		m.settle(gen, Authenticated, res.User)
	}

	st, _ := m.State()
	return st
}

// Logout moves straight to Unauthenticated, clears the session on both
// sides and redirects without delay. The returned error is informational;
// the local session is gone either way.
func (m *Machine) Logout(ctx context.Context) error {
	gen := m.reset()
	m.settle(gen, Unauthenticated, "")

	err := m.auth.Logout(ctx)
	m.nav.ToLogin()
	return err
}

// Stop cancels a pending redirect.
func (m *Machine) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gen++
	if m.pending != nil {
		m.pending.Stop()
		m.pending = nil
	}
}

func (m *Machine) reset() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gen++
	if m.pending != nil {
		m.pending.Stop()
		m.pending = nil
	}
	m.state = Loading
	m.username = ""
	return m.gen
}

func (m *Machine) settle(gen uint64, st State, username string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.gen {
		return
	}
	m.state = st
	m.username = username
}

func (m *Machine) fail(gen uint64, msg string) {
	m.settle(gen, Unauthenticated, "")
	m.notify.Notify(msg)

	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.gen {
		return
	}
	m.pending = afterFunc(m.opts.RedirectDelay, func() {
		m.mu.Lock()
		current := gen == m.gen && m.state == Unauthenticated
		if gen == m.gen {
			m.pending = nil
		}
		m.mu.Unlock()
		if current {
			m.nav.ToLogin()
		}
	})
}
