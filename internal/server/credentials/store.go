// Package credentials is the credential store: it validates and hashes new
// user records and looks existing ones up by email or id.
package credentials

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/users"
	"github.com/google/uuid"
)

// Store wraps a users.Repository. The raw password only exists inside Create,
// where it is hashed exactly once.
type Store struct {
	repo   users.Repository
	hasher Hasher
	now    func() time.Time
	newID  func() string
}

func NewStore(repo users.Repository, hasher Hasher) *Store {
	return &Store{
		repo:   repo,
		hasher: hasher,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

func (s *Store) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.repo.GetByEmail(ctx, NormalizeEmail(email))
}

func (s *Store) FindByID(ctx context.Context, id string) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates the input, hashes the password and inserts the record.
// A taken email surfaces as common.ErrDuplicateEmail from the repository.
func (s *Store) Create(ctx context.Context, email, password, username string) (*models.User, error) {
	email = NormalizeEmail(email)
	username = strings.TrimSpace(username)

	if err := Validate(email, password, username); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           s.newID(),
		Email:        email,
		PasswordHash: hash,
		Username:     username,
		CreatedAt:    s.now().UTC(),
	}

	return s.repo.Create(ctx, user)
}
