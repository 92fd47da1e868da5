// Package services contains server-side business logic. This file implements
// UserService: registration, login and verification of the session token.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/credentials"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

// CredentialStore is the user lookup and creation surface UserService needs.
type CredentialStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, email, password, username string) (*models.User, error)
}

// TokenManager issues and verifies session tokens.
type TokenManager interface {
	Issue(userID string) (string, error)
	Verify(token string) (userID string, ok bool)
}

// AuthResult is returned by a successful Register or Login.
type AuthResult struct {
	User  *models.User
	Token string
}

// VerifyResult is the outcome of checking a session token.
type VerifyResult struct {
	Status   bool
	Username string
}

const dummyPassword = "gophauth-dummy-password"

// UserService provides the authentication operations:
// - Register: create a user and issue a token
// - Login: check credentials and issue a token
// - Verify: resolve a token to the user it was issued for
type UserService struct {
	store  CredentialStore
	hasher credentials.Hasher
	tokens TokenManager
	logger logging.Logger

	dummyOnce sync.Once
	dummyHash []byte
}

func NewUserService(store CredentialStore, hasher credentials.Hasher, tokens TokenManager, logger logging.Logger) *UserService {
	return &UserService{
		store:  store,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
	}
}

func wrapInternal(err error) error {
	return fmt.Errorf("%w: %w", common.ErrInternal, err)
}

// Register creates a user and returns it with a freshly issued token.
// Missing fields fail with common.ErrMissingFields before the store is
// touched; validation and duplicate errors pass through unchanged.
func (s *UserService) Register(ctx context.Context, email, password, username string) (*AuthResult, error) {
	if strings.TrimSpace(email) == "" || password == "" || strings.TrimSpace(username) == "" {
		return nil, common.ErrMissingFields
	}

	// a taken email is reported before any input rule; the unique
	// constraint still settles concurrent signups
	switch _, err := s.store.FindByEmail(ctx, email); {
	case err == nil:
		return nil, common.ErrDuplicateEmail
	case !errors.Is(err, common.ErrNotFound):
		return nil, wrapInternal(err)
	}

	user, err := s.store.Create(ctx, email, password, username)
	if err != nil {
		if errors.Is(err, common.ErrValidation) || errors.Is(err, common.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, wrapInternal(err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, wrapInternal(err)
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID)
	return &AuthResult{User: user, Token: token}, nil
}

// Login checks email and password. Unknown email and wrong password both
// yield common.ErrInvalidCredentials, and both pay for one bcrypt comparison.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, common.ErrMissingFields
	}

	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.compareDummy(password)
			return nil, common.ErrInvalidCredentials
		}
		return nil, wrapInternal(err)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		if errors.Is(err, credentials.ErrMismatch) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, wrapInternal(err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, wrapInternal(err)
	}

	return &AuthResult{User: user, Token: token}, nil
}

func (s *UserService) compareDummy(password string) {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash(dummyPassword)
		if err == nil {
			s.dummyHash = hash
		}
	})
	if s.dummyHash != nil {
		_ = s.hasher.Compare(s.dummyHash, password)
	}
}

// Verify never fails: every problem with the token or its user reports
// Status false. Store errors are logged.
func (s *UserService) Verify(ctx context.Context, token string) VerifyResult {
	if token == "" {
		return VerifyResult{}
	}

	userID, ok := s.tokens.Verify(token)
	if !ok {
		return VerifyResult{}
	}

	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			s.logger.Error(ctx, "verify: user lookup failed", "error", err)
		}
		return VerifyResult{}
	}

	return VerifyResult{Status: true, Username: user.Username}
}
