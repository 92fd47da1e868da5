// Package client contains the CLI's building blocks for talking to the
// gophauth server and keeping local state.
//
// The package provides:
//  1. The Client interface and its JSON/HTTP implementation, HTTPClient,
//     which reads the session token from the server's "token" cookie and
//     sends it back as a cookie on Verify and Logout.
//  2. Local persistence bootstrap (InitDatabase, RunMigrations): a SQLite
//     file with embedded goose migrations holding the session marker.
//
// # Error Handling
//
// Transport failures wrap ErrUnavailable; responses the client cannot
// interpret wrap ErrUnexpectedStatus; requests the server refused with a
// message are *RejectedError values.
package client
