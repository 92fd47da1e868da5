package cli

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/dmitrijs2005/gophauth/internal/client/client"
	"github.com/dmitrijs2005/gophauth/internal/client/session"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Signup prompts for email, username and password and creates an account.
// On success the client is redirected to the home view.
func (a *App) Signup(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	if err := a.auth.Signup(ctx, email, string(password), username); err != nil {
		a.report(err)
		return err
	}

	fmt.Fprintln(a.out, "User created successfully")
	return a.Home(ctx)
}

// Login prompts for credentials and, on success, redirects to the home view.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	if err := a.auth.Login(ctx, email, string(password)); err != nil {
		a.report(err)
		return err
	}

	fmt.Fprintln(a.out, "User logged in successfully")
	return a.Home(ctx)
}

// Home shows the home view: the session is verified and the user greeted.
// A failed check leaves a redirect to login pending.
func (a *App) Home(ctx context.Context) error {
	a.setView(ViewHome)

	if st := a.machine.Mount(ctx); st != session.Authenticated {
		return nil
	}

	_, user := a.machine.State()
	fmt.Fprintf(a.out, "Welcome %s\n", user)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	err := a.machine.Logout(ctx)
	if err != nil {
		log.Printf("logout: %s", err.Error())
	}
	fmt.Fprintln(a.out, "Logged out")
	return err
}

// Status prints the session state and the local session marker.
func (a *App) Status(ctx context.Context) error {
	st, user := a.machine.State()
	fmt.Fprintf(a.out, "view: %s\nstate: %s\n", a.currentView(), st)
	if user != "" {
		fmt.Fprintf(a.out, "user: %s\n", user)
	}

	info, err := a.auth.Session(ctx)
	if err != nil {
		return err
	}
	if info == nil {
		fmt.Fprintln(a.out, "no saved session")
		return nil
	}
	fmt.Fprintf(a.out, "saved session: %s (%s)\n", info.Email, info.SavedAt.Local().Format("2006-01-02 15:04:05"))
	return nil
}

func (a *App) isLoggedIn() bool {
	st, _ := a.machine.State()
	return st == session.Authenticated
}

// report prints the server's refusal message as is; other errors go to the log.
func (a *App) report(err error) {
	var rej *client.RejectedError
	switch {
	case errors.As(err, &rej):
		fmt.Fprintln(a.out, rej.Message)
	case errors.Is(err, client.ErrUnavailable):
		fmt.Fprintln(a.out, "Server unavailable, try again later")
	default:
		log.Printf("error: %s", err.Error())
	}
}
