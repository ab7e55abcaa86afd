package model

import (
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles a user account can hold.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a customer or admin account.
// PasswordHash is never serialized in API responses.
type User struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Email        string             `json:"email" bson:"email"`
	PasswordHash string             `json:"-" bson:"password"`
	Role         string             `json:"role" bson:"role"`
	Phone        string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Avatar       string             `json:"avatar,omitempty" bson:"avatar,omitempty"`
	Addresses    []Address          `json:"address" bson:"address"`
	IsVerified   bool               `json:"isVerified" bson:"isVerified"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Address is a shipping address embedded in a user document and snapshotted
// onto orders at checkout.
type Address struct {
	ID        string `json:"id,omitempty" bson:"id,omitempty"`
	Street    string `json:"street" bson:"street"`
	City      string `json:"city" bson:"city"`
	State     string `json:"state" bson:"state"`
	ZipCode   string `json:"zipCode" bson:"zipCode"`
	Country   string `json:"country" bson:"country"`
	IsDefault bool   `json:"isDefault" bson:"isDefault"`
}

// PublicUser is the trimmed account view returned by auth endpoints.
type PublicUser struct {
	ID    primitive.ObjectID `json:"id"`
	Name  string             `json:"name"`
	Email string             `json:"email"`
	Role  string             `json:"role"`
}

// Public returns the trimmed view of the user.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// RegisterInput is the request payload for account registration.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks all field constraints and aggregates every violation.
func (in *RegisterInput) Validate() error {
	var violations []string
	if strings.TrimSpace(in.Name) == "" {
		violations = append(violations, "Name is required")
	}
	if len(in.Name) > 50 {
		violations = append(violations, "Name cannot exceed 50 characters")
	}
	if !emailPattern.MatchString(in.Email) {
		violations = append(violations, "Please provide a valid email")
	}
	if len(in.Password) < 6 {
		violations = append(violations, "Password must be at least 6 characters")
	}
	if len(violations) > 0 {
		return NewValidationError(violations...)
	}
	return nil
}

// LoginInput is the request payload for login.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks all field constraints and aggregates every violation.
func (in *LoginInput) Validate() error {
	var violations []string
	if in.Email == "" {
		violations = append(violations, "Email is required")
	}
	if in.Password == "" {
		violations = append(violations, "Password is required")
	}
	if len(violations) > 0 {
		return NewValidationError(violations...)
	}
	return nil
}

// UpdateProfileInput is the request payload for profile updates. Empty
// fields are left unchanged.
type UpdateProfileInput struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Avatar string `json:"avatar"`
}

// Validate checks all field constraints and aggregates every violation.
func (in *UpdateProfileInput) Validate() error {
	var violations []string
	if len(in.Name) > 50 {
		violations = append(violations, "Name cannot exceed 50 characters")
	}
	if in.Email != "" && !emailPattern.MatchString(in.Email) {
		violations = append(violations, "Please provide a valid email")
	}
	if len(violations) > 0 {
		return NewValidationError(violations...)
	}
	return nil
}

// UpdatePasswordInput is the request payload for password changes.
type UpdatePasswordInput struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// Validate checks all field constraints and aggregates every violation.
func (in *UpdatePasswordInput) Validate() error {
	var violations []string
	if in.CurrentPassword == "" {
		violations = append(violations, "Current password is required")
	}
	if len(in.NewPassword) < 6 {
		violations = append(violations, "Password must be at least 6 characters")
	}
	if len(violations) > 0 {
		return NewValidationError(violations...)
	}
	return nil
}

// AddressInput is the request payload for adding or updating an address.
type AddressInput struct {
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
	Country   string `json:"country"`
	IsDefault bool   `json:"isDefault"`
}

// Validate checks all field constraints and aggregates every violation.
func (in *AddressInput) Validate() error {
	var violations []string
	if strings.TrimSpace(in.Street) == "" {
		violations = append(violations, "Street is required")
	}
	if strings.TrimSpace(in.City) == "" {
		violations = append(violations, "City is required")
	}
	if strings.TrimSpace(in.Country) == "" {
		violations = append(violations, "Country is required")
	}
	if len(violations) > 0 {
		return NewValidationError(violations...)
	}
	return nil
}
