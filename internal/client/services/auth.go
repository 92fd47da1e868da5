// Package services contains application services for the gophauth CLI.
// This file defines the authentication service: signup, login, session
// verification, logout and the local session marker.
package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/client/client"
	"github.com/dmitrijs2005/gophauth/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gophauth/internal/dbx"
)

const (
	keyToken = "token"
	keyEmail = "email"
)

// SessionInfo describes the locally stored session marker.
type SessionInfo struct {
	Email   string
	SavedAt time.Time
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Signup / Login: call the server and store the returned token locally.
//   - Verify: ask the server whether the stored token is still good.
//   - Logout: ask the server to expire the cookie and drop local state.
//   - Session: the local marker, or nil when there is none.
type AuthService interface {
	Signup(ctx context.Context, email, password, username string) error
	Login(ctx context.Context, email, password string) error
	Verify(ctx context.Context) (*client.VerifyResponse, error)
	Logout(ctx context.Context) error
	Session(ctx context.Context) (*SessionInfo, error)
}

// authService is the concrete AuthService backed by a remote Client
// and a local SQL database for the session marker.
type authService struct {
	client client.Client
	db     *sql.DB
}

// NewAuthService constructs an AuthService bound to the given API client and DB.
func NewAuthService(client client.Client, db *sql.DB) AuthService {
	return &authService{client: client, db: db}
}

func (a *authService) getMetadataRepo() metadata.Repository {
	return metadata.NewSQLiteRepository(a.db)
}

func (a *authService) Signup(ctx context.Context, email, password, username string) error {
	token, err := a.client.Signup(ctx, email, password, username)
	if err != nil {
		return err
	}
	return a.saveSession(ctx, token, email)
}

func (a *authService) Login(ctx context.Context, email, password string) error {
	token, err := a.client.Login(ctx, email, password)
	if err != nil {
		return err
	}
	return a.saveSession(ctx, token, email)
}

// saveSession replaces the session marker in a single transaction.
func (a *authService) saveSession(ctx context.Context, token, email string) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, keyToken, []byte(token)); err != nil {
			return err
		}
		return repo.Set(ctx, keyEmail, []byte(email))
	})
}

// Verify sends the stored token (possibly none) to the server.
func (a *authService) Verify(ctx context.Context) (*client.VerifyResponse, error) {
	token, err := a.getMetadataRepo().Get(ctx, keyToken)
	if err != nil {
		return nil, err
	}
	return a.client.Verify(ctx, string(token))
}

// Logout always clears local state, even when the server cannot be reached;
// the server error is still returned.
func (a *authService) Logout(ctx context.Context) error {
	repo := a.getMetadataRepo()

	token, err := repo.Get(ctx, keyToken)
	if err != nil {
		return err
	}

	var serverErr error
	if len(token) > 0 {
		serverErr = a.client.Logout(ctx, string(token))
	}

	return errors.Join(serverErr, repo.Clear(ctx))
}

func (a *authService) Session(ctx context.Context) (*SessionInfo, error) {
	repo := a.getMetadataRepo()

	token, err := repo.Lookup(ctx, keyToken)
	if err != nil || token == nil || len(token.Value) == 0 {
		return nil, err
	}

	email, err := repo.Get(ctx, keyEmail)
	if err != nil {
		return nil, err
	}

	return &SessionInfo{Email: string(email), SavedAt: token.UpdatedAt}, nil
}
