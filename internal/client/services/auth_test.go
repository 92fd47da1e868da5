package services

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/gophauth/internal/client/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- helpers ----

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	repos, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })
	return repos.DB
}

func getMeta(t *testing.T, db *sql.DB, k string) []byte {
	t.Helper()
	var v []byte
	err := db.QueryRow(`SELECT value FROM metadata WHERE key=?`, k).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	require.NoError(t, err)
	return v
}

// ---- fake client ----

type fakeClient struct {
	SignupToken string
	SignupErr   error
	LoginToken  string
	LoginErr    error
	VerifyRet   *client.VerifyResponse
	VerifyErr   error
	LogoutErr   error

	LastVerifyToken string
	LastLogoutToken string
	LogoutCalls     int
}

func (f *fakeClient) Signup(ctx context.Context, email, password, username string) (string, error) {
	return f.SignupToken, f.SignupErr
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (string, error) {
	return f.LoginToken, f.LoginErr
}

func (f *fakeClient) Verify(ctx context.Context, token string) (*client.VerifyResponse, error) {
	f.LastVerifyToken = token
	return f.VerifyRet, f.VerifyErr
}

func (f *fakeClient) Logout(ctx context.Context, token string) error {
	f.LogoutCalls++
	f.LastLogoutToken = token
	return f.LogoutErr
}

// ---- tests ----

func TestSignup_StoresSession(t *testing.T) {
	db := setupDB(t)
	fc := &fakeClient{SignupToken: "tok-s"}
	svc := NewAuthService(fc, db)
	ctx := context.Background()

	require.NoError(t, svc.Signup(ctx, "a@b.io", "secret1", "alice"))
	assert.Equal(t, []byte("tok-s"), getMeta(t, db, "token"))
	assert.Equal(t, []byte("a@b.io"), getMeta(t, db, "email"))

	info, err := svc.Session(ctx)
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, "a@b.io", info.Email)
	assert.False(t, info.SavedAt.IsZero())
}

func TestSignup_ErrorStoresNothing(t *testing.T) {
	db := setupDB(t)
	rejected := &client.RejectedError{StatusCode: 400, Message: "User already exists"}
	svc := NewAuthService(&fakeClient{SignupErr: rejected}, db)

	err := svc.Signup(context.Background(), "a@b.io", "secret1", "alice")
	require.ErrorIs(t, err, rejected)
	assert.Nil(t, getMeta(t, db, "token"))

	info, err := svc.Session(context.Background())
	require.NoError(t, err)
	assert.Nil(t, info)
}

func TestLogin_ReplacesSession(t *testing.T) {
	db := setupDB(t)
	fc := &fakeClient{SignupToken: "old", LoginToken: "new"}
	svc := NewAuthService(fc, db)
	ctx := context.Background()

	require.NoError(t, svc.Signup(ctx, "a@b.io", "secret1", "alice"))
	require.NoError(t, svc.Login(ctx, "a@b.io", "secret1"))
	assert.Equal(t, []byte("new"), getMeta(t, db, "token"))
}

func TestLogin_ErrorPassesThrough(t *testing.T) {
	db := setupDB(t)
	svc := NewAuthService(&fakeClient{LoginErr: client.ErrUnavailable}, db)

	err := svc.Login(context.Background(), "a@b.io", "secret1")
	assert.ErrorIs(t, err, client.ErrUnavailable)
}

func TestVerify_SendsStoredToken(t *testing.T) {
	db := setupDB(t)
	fc := &fakeClient{LoginToken: "tok-v", VerifyRet: &client.VerifyResponse{Status: true, User: "alice"}}
	svc := NewAuthService(fc, db)
	ctx := context.Background()

	require.NoError(t, svc.Login(ctx, "a@b.io", "secret1"))

	res, err := svc.Verify(ctx)
	require.NoError(t, err)
	assert.True(t, res.Status)
	assert.Equal(t, "tok-v", fc.LastVerifyToken)
}

func TestVerify_WithoutSessionSendsEmptyToken(t *testing.T) {
	db := setupDB(t)
	fc := &fakeClient{VerifyRet: &client.VerifyResponse{Status: false}}
	svc := NewAuthService(fc, db)

	res, err := svc.Verify(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Status)
	assert.Equal(t, "", fc.LastVerifyToken)
}

func TestLogout_ClearsLocalEvenWhenServerFails(t *testing.T) {
	db := setupDB(t)
	fc := &fakeClient{LoginToken: "tok-l", LogoutErr: client.ErrUnavailable}
	svc := NewAuthService(fc, db)
	ctx := context.Background()

	require.NoError(t, svc.Login(ctx, "a@b.io", "secret1"))

	err := svc.Logout(ctx)
	require.ErrorIs(t, err, client.ErrUnavailable)
	assert.Equal(t, "tok-l", fc.LastLogoutToken)
	assert.Nil(t, getMeta(t, db, "token"))
	assert.Nil(t, getMeta(t, db, "email"))
}

func TestLogout_NoSessionSkipsServer(t *testing.T) {
	db := setupDB(t)
	fc := &fakeClient{}
	svc := NewAuthService(fc, db)

	require.NoError(t, svc.Logout(context.Background()))
	assert.Zero(t, fc.LogoutCalls)
}
