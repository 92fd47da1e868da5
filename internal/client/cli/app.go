package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/dmitrijs2005/gophauth/internal/client/client"
	"github.com/dmitrijs2005/gophauth/internal/client/config"
	"github.com/dmitrijs2005/gophauth/internal/client/services"
	"github.com/dmitrijs2005/gophauth/internal/client/session"
)

// View is the screen the terminal client is currently showing.
type View string

const (
	ViewHome  View = "home"
	ViewLogin View = "login"
)

// sessionMachine is the subset of *session.Machine the App drives.
type sessionMachine interface {
	Mount(ctx context.Context) session.State
	Logout(ctx context.Context) error
	State() (session.State, string)
	Stop()
}

type App struct {
	config  *config.Config
	auth    services.AuthService
	machine sessionMachine
	closer  io.Closer
	reader  *bufio.Reader
	out     io.Writer

	mu   sync.Mutex
	view View
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	repos, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	apiClient := client.NewHTTPClient(c.ServerURL, c.RequestTimeout)
	as := services.NewAuthService(apiClient, repos.DB)

	a := &App{
		config: c,
		auth:   as,
		closer: repos,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		view:   ViewHome,
	}
	a.machine = session.New(as, a, a, session.Options{
		RedirectDelay: c.RedirectDelay,
		FastPath:      c.FastPath,
	})

	return a, nil
}

// ToLogin switches the client to the login view. It may be called from the
// redirect timer goroutine.
func (a *App) ToLogin() {
	a.mu.Lock()
	changed := a.view != ViewLogin
	a.view = ViewLogin
	a.mu.Unlock()

	if changed {
		fmt.Fprintln(a.out, "Redirecting to login...")
	}
}

func (a *App) Notify(msg string) {
	fmt.Fprintln(a.out, msg)
}

func (a *App) setView(v View) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.view = v
}

func (a *App) currentView() View {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.view
}

func (a *App) getStatus() string {
	st, user := a.machine.State()
	s := string(a.currentView())
	switch st {
	case session.Authenticated:
		s += " " + user
	case session.Loading:
		s += " " + st.String()
	}
	return fmt.Sprintf("(%s)", s)
}

// Run mounts the home view and then serves the REPL on stdin until the user
// exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer func() {
		a.machine.Stop()
		if a.closer != nil {
			if err := a.closer.Close(); err != nil {
				log.Printf("error closing database: %s", err.Error())
			}
		}
	}()

	fmt.Fprintln(a.out, "gophauth CLI (type 'help' for commands)")
	_ = a.Home(ctx)

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))
}
