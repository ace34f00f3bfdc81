package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/farhan-shop/shop-api/internal/auth"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type Service interface {
	Register(ctx context.Context, username, password, email string) (*User, error)
	Authenticate(ctx context.Context, username, password string) (*User, error)
}

type service struct {
	repo   Repository
	hasher auth.Hasher
}

// NewService builds the credential service. The password hasher is injected so
// the hashing scheme stays a deployment choice, not a code constant.
func NewService(repo Repository, hasher auth.Hasher) Service {
	return &service{repo: repo, hasher: hasher}
}

func (s *service) Register(ctx context.Context, username, password, email string) (*User, error) {
	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &User{
		Username:     username,
		PasswordHash: passwordHash,
		Email:        email,
	}

	if _, err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, ErrUserExists) {
			return nil, ErrUserExists
		}
		log.Error().Err(err).Str("username", username).Msg("failed to create user in repository")
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	return u, nil
}

func (s *service) Authenticate(ctx context.Context, username, password string) (*User, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		log.Error().Err(err).Str("username", username).Msg("failed to get user by username")
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	if !s.hasher.Compare(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	return u, nil
}
