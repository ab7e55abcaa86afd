package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"storefront/internal/auth"
	"storefront/internal/config"
	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/rs/zerolog"
)

// authService implements AuthService.
type authService struct {
	userRepo repository.UserRepository
	secret   []byte
	tokenTTL time.Duration
	logger   zerolog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(userRepo repository.UserRepository, cfg config.AuthConfig, logger zerolog.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		secret:   []byte(cfg.JWTSecret),
		tokenTTL: cfg.TokenTTL,
		logger:   logger.With().Str("service", "auth").Logger(),
	}
}

// Register creates an account and returns it with a signed token.
func (s *authService) Register(ctx context.Context, in model.RegisterInput) (*model.User, string, error) {
	if err := in.Validate(); err != nil {
		return nil, "", err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to hash password")
		return nil, "", fmt.Errorf("failed to register user: %w", err)
	}

	now := time.Now().UTC()
	user := &model.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: hash,
		Role:         model.RoleUser,
		Addresses:    []model.Address{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := auth.IssueToken(user.ID.Hex(), user.Role, s.secret, s.tokenTTL)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID.Hex()).Msg("failed to issue token")
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID.Hex()).Msg("user registered")
	return user, token, nil
}

// Login verifies credentials and returns the account with a signed token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, in model.LoginInput) (*model.User, string, error) {
	if err := in.Validate(); err != nil {
		return nil, "", err
	}

	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, "", err
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, in.Password) {
		s.logger.Warn().Str("email", in.Email).Msg("login rejected")
		return nil, "", model.ErrInvalidCredentials
	}

	token, err := auth.IssueToken(user.ID.Hex(), user.Role, s.secret, s.tokenTTL)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID.Hex()).Msg("failed to issue token")
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID.Hex()).Msg("user logged in")
	return user, token, nil
}

// Me retrieves the authenticated user's account.
func (s *authService) Me(ctx context.Context, userID string) (*model.User, error) {
	oid, ok := parseObjectID(userID)
	if !ok {
		return nil, model.ErrUserNotFound
	}

	user, err := s.userRepo.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}

	return user, nil
}

// ForgotPassword acknowledges a password reset request for a known email.
// Mail delivery is out of scope; the handler returns a generic message.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	if email == "" {
		return model.NewValidationError("Email is required")
	}

	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return err
	}
	if user == nil {
		return model.ErrUserNotFound
	}

	s.logger.Info().Str("user_id", user.ID.Hex()).Msg("password reset requested")
	return nil
}
