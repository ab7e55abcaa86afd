package service

import (
	"context"
	"strings"
	"time"

	"storefront/internal/auth"
	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// userService implements UserService.
type userService struct {
	userRepo repository.UserRepository
	logger   zerolog.Logger
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository, logger zerolog.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		logger:   logger.With().Str("service", "user").Logger(),
	}
}

func (s *userService) load(ctx context.Context, userID string) (*model.User, error) {
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

// GetProfile retrieves a user's account.
func (s *userService) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	return s.load(ctx, userID)
}

// UpdateProfile applies non-empty profile fields and returns the account.
func (s *userService) UpdateProfile(ctx context.Context, userID string, in model.UpdateProfileInput) (*model.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	user, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		user.Name = strings.TrimSpace(in.Name)
	}
	if in.Email != "" {
		user.Email = strings.ToLower(strings.TrimSpace(in.Email))
	}
	if in.Phone != "" {
		user.Phone = in.Phone
	}
	if in.Avatar != "" {
		user.Avatar = in.Avatar
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID.Hex()).Msg("profile updated")
	return user, nil
}

// UpdatePassword verifies the current password and stores a new hash.
func (s *userService) UpdatePassword(ctx context.Context, userID string, in model.UpdatePasswordInput) error {
	if err := in.Validate(); err != nil {
		return err
	}

	user, err := s.load(ctx, userID)
	if err != nil {
		return err
	}

	if !auth.CheckPassword(user.PasswordHash, in.CurrentPassword) {
		s.logger.Warn().Str("user_id", user.ID.Hex()).Msg("password change rejected")
		return model.ErrWrongPassword
	}

	hash, err := auth.HashPassword(in.NewPassword)
	if err != nil {
		return err
	}

	user.PasswordHash = hash
	user.UpdatedAt = time.Now().UTC()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", user.ID.Hex()).Msg("password updated")
	return nil
}

// AddAddress appends a shipping address to the user's address book. Marking
// the new address default clears the flag on every other address.
func (s *userService) AddAddress(ctx context.Context, userID string, in model.AddressInput) (*model.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	user, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	addr := model.Address{
		ID:        uuid.New().String(),
		Street:    in.Street,
		City:      in.City,
		State:     in.State,
		ZipCode:   in.ZipCode,
		Country:   in.Country,
		IsDefault: in.IsDefault,
	}

	if addr.IsDefault {
		for i := range user.Addresses {
			user.Addresses[i].IsDefault = false
		}
	}

	user.Addresses = append(user.Addresses, addr)
	user.UpdatedAt = time.Now().UTC()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// UpdateAddress replaces an address identified by its id.
func (s *userService) UpdateAddress(ctx context.Context, userID, addressID string, in model.AddressInput) (*model.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	user, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, a := range user.Addresses {
		if a.ID == addressID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, model.ErrAddressNotFound
	}

	if in.IsDefault {
		for i := range user.Addresses {
			user.Addresses[i].IsDefault = false
		}
	}

	user.Addresses[idx] = model.Address{
		ID:        addressID,
		Street:    in.Street,
		City:      in.City,
		State:     in.State,
		ZipCode:   in.ZipCode,
		Country:   in.Country,
		IsDefault: in.IsDefault,
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// DeleteAddress removes an address identified by its id.
func (s *userService) DeleteAddress(ctx context.Context, userID, addressID string) (*model.User, error) {
	user, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, a := range user.Addresses {
		if a.ID == addressID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, model.ErrAddressNotFound
	}

	user.Addresses = append(user.Addresses[:idx], user.Addresses[idx+1:]...)
	user.UpdatedAt = time.Now().UTC()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// List retrieves accounts newest-first with pagination.
func (s *userService) List(ctx context.Context, page, limit int) ([]model.User, model.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	users, total, err := s.userRepo.List(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, model.Pagination{}, err
	}

	return users, model.NewPagination(page, limit, total), nil
}

// Get retrieves any account by id.
func (s *userService) Get(ctx context.Context, id string) (*model.User, error) {
	return s.load(ctx, id)
}

// Delete removes an account.
func (s *userService) Delete(ctx context.Context, id string) error {
	oid, ok := parseObjectID(id)
	if !ok {
		return model.ErrUserNotFound
	}

	if err := s.userRepo.Delete(ctx, oid); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", id).Msg("user deleted")
	return nil
}
