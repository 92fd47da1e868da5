package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
)

// HTTPClient implements Client over JSON/HTTP.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient returns a client for the server at baseURL. timeout bounds
// every request.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type messageResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

func (c *HTTPClient) Signup(ctx context.Context, email, password, username string) (string, error) {
	resp, err := c.post(ctx, "/signup", map[string]string{
		"email":    email,
		"password": password,
		"username": username,
	}, "")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var body messageResponse
	if err := decodeBody(resp, &body); err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusCreated || !body.Success {
		return "", rejected(resp.StatusCode, body.Message)
	}

	return tokenFrom(resp)
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, error) {
	resp, err := c.post(ctx, "/login", map[string]string{
		"email":    email,
		"password": password,
	}, "")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var body messageResponse
	if err := decodeBody(resp, &body); err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK || !body.Success {
		return "", rejected(resp.StatusCode, body.Message)
	}

	return tokenFrom(resp)
}

func (c *HTTPClient) Verify(ctx context.Context, token string) (*VerifyResponse, error) {
	resp, err := c.post(ctx, "/", nil, token)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var body VerifyResponse
	if err := decodeBody(resp, &body); err != nil {
		return nil, err
	}
	return &body, nil
}

func (c *HTTPClient) Logout(ctx context.Context, token string) error {
	resp, err := c.post(ctx, "/logout", nil, token)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnexpectedStatus, resp.StatusCode)
	}
	return nil
}

func (c *HTTPClient) post(ctx context.Context, path string, payload any, token string) (*http.Response, error) {
	var body io.Reader = http.NoBody
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: common.TokenCookieName, Value: token})
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return resp, nil
}

func decodeBody(resp *http.Response, v any) error {
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: status %d: %w", ErrUnexpectedStatus, resp.StatusCode, err)
	}
	return nil
}

func rejected(status int, message string) error {
	if message == "" {
		return fmt.Errorf("%w: status %d", ErrUnexpectedStatus, status)
	}
	return &RejectedError{StatusCode: status, Message: message}
}

func tokenFrom(resp *http.Response) (string, error) {
	for _, c := range resp.Cookies() {
		if c.Name == common.TokenCookieName && c.Value != "" {
			return c.Value, nil
		}
	}
	return "", ErrNoToken
}
