package client

import (
	"context"
)

// VerifyResponse is the server's answer to a session check.
type VerifyResponse struct {
	Status bool   `json:"status"`
	User   string `json:"user,omitempty"`
}

// Client talks to the auth server. Tokens are the raw value of the "token"
// cookie; the client never interprets them.
type Client interface {
	Signup(ctx context.Context, email, password, username string) (token string, err error)
	Login(ctx context.Context, email, password string) (token string, err error)
	Verify(ctx context.Context, token string) (*VerifyResponse, error)
	Logout(ctx context.Context, token string) error
}
