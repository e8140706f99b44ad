package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/inventory-app/inventory-api/internal/core/domain"
	"github.com/inventory-app/inventory-api/internal/core/ports"
	"github.com/inventory-app/inventory-api/internal/pkg/metrics"
)

const msgInvalidCredentials = "Invalid credentials"

// AuthService implements registration and login.
type AuthService struct {
	repo   ports.AuthRepository
	hasher ports.PasswordHasher
	tokens ports.TokenService
	logger zerolog.Logger
	now    func() time.Time

	// dummyHash is compared against when the email is unknown so both login
	// failure paths pay for one bcrypt comparison.
	dummyHash string
}

func NewAuthService(repo ports.AuthRepository, hasher ports.PasswordHasher, tokens ports.TokenService, logger zerolog.Logger) (*AuthService, error) {
	dummy, err := hasher.Hash(uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("auth service: placeholder hash: %w", err)
	}
	return &AuthService{
		repo:      repo,
		hasher:    hasher,
		tokens:    tokens,
		logger:    logger,
		now:       time.Now,
		dummyHash: dummy,
	}, nil
}

// Register creates a new USER account. Duplicate usernames and emails are
// reported on their own field; the repository's unique index catches the
// race between the checks and the insert.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)

	s.logger.Info().Str("username", username).Msg("registration attempt")

	taken, err := s.repo.ExistsByUsername(ctx, username)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("register: check username: %w", err)
	}
	if taken {
		metrics.RegistrationsTotal.WithLabelValues("username_taken").Inc()
		s.logger.Warn().Str("username", username).Msg("registration rejected: username in use")
		return nil, domain.NewFieldError("username", "Username is already in use")
	}

	taken, err = s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("register: check email: %w", err)
	}
	if taken {
		metrics.RegistrationsTotal.WithLabelValues("email_taken").Inc()
		s.logger.Warn().Str("email", email).Msg("registration rejected: email in use")
		return nil, domain.NewFieldError("email", "Email is already in use")
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		CreatedAt:    s.now().UTC(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		s.logger.Error().Err(err).Str("username", username).Str("email", email).Msg("failed to register user")
		if errors.Is(err, domain.ErrUserExists) {
			metrics.RegistrationsTotal.WithLabelValues("conflict").Inc()
			return nil, domain.NewFieldError(domain.GeneralField, "Username or email is already in use")
		}
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return nil, domain.NewFieldError(domain.GeneralField, "Failed to register user")
	}

	metrics.RegistrationsTotal.WithLabelValues("ok").Inc()
	s.logger.Info().Str("user_id", user.ID).Str("username", username).Msg("user registered")
	return user, nil
}

// Login verifies the credentials and returns a signed token for the user's
// email. An unknown email and a wrong password produce the same error.
func (s *AuthService) Login(ctx context.Context, input ports.LoginInput) (string, error) {
	email := strings.TrimSpace(input.Email)

	s.logger.Info().Str("email", email).Msg("login attempt")

	user, found, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("login: find user: %w", err)
	}

	if !found {
		s.hasher.Verify(input.Password, s.dummyHash)
		return "", s.loginFailed(email)
	}
	if !s.hasher.Verify(input.Password, user.PasswordHash) {
		return "", s.loginFailed(email)
	}

	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("login: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	s.logger.Info().Str("email", email).Str("user_id", user.ID).Msg("login successful")
	return token, nil
}

func (s *AuthService) loginFailed(email string) error {
	metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
	s.logger.Warn().Str("email", email).Msg("login failed")
	return domain.NewFieldError(domain.GeneralField, msgInvalidCredentials)
}
