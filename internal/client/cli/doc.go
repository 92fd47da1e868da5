// Package cli provides the interactive gophauth terminal client.
//
// It wires configuration, the local session store, the HTTP API client and
// the session state machine into a small REPL with two views: login and
// home. Opening the home view verifies the session with the server; a
// failed check shows a message and redirects to login after a short delay.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
