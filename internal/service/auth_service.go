package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"sebbi-server/internal/domain"
	apperrors "sebbi-server/pkg/errors"
)

const sessionTokenBytes = 32

type authService struct {
	users  domain.UserRepository
	hasher *PasswordHasher
	logger domain.Logger
}

func NewAuthService(
	users domain.UserRepository,
	hasher *PasswordHasher,
	logger domain.Logger,
) domain.AuthService {
	return &authService{
		users:  users,
		hasher: hasher,
		logger: logger,
	}
}

// Register creates a new user with a salted password hash and returns the
// public user projection.
func (s *authService) Register(name, email, password string) (*domain.User, error) {
	existing, err := s.users.GetByEmail(email)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to look up user", err)
	}
	if existing != nil {
		return nil, apperrors.AlreadyExists("email is already registered")
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to hash password", err)
	}

	record, err := s.users.Create(name, email, hashed)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInsertFailed, "failed to register user", err)
	}

	return record.Public(), nil
}

// Authenticate verifies credentials and issues an opaque session token.
func (s *authService) Authenticate(email, password string) (*domain.Session, error) {
	record, err := s.users.GetByEmail(email)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to look up user", err)
	}
	if record == nil {
		return nil, apperrors.InvalidCredentials("invalid credentials")
	}

	ok, err := s.hasher.Verify(record.Password, password)
	if err != nil {
		s.logger.Warn("Stored credential is malformed", "email", email)
		return nil, apperrors.InvalidCredentials("invalid credentials")
	}
	if !ok {
		return nil, apperrors.InvalidCredentials("invalid credentials")
	}

	token, err := newSessionToken()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to issue session token", err)
	}

	return &domain.Session{
		AccessToken: token,
		TokenType:   "bearer",
		User:        record.Public(),
	}, nil
}

func newSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
