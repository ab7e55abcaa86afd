package model

import (
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category is a node in the admin-managed category tree.
type Category struct {
	ID          primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Name        string              `json:"name" bson:"name"`
	Slug        string              `json:"slug" bson:"slug"`
	Description string              `json:"description,omitempty" bson:"description,omitempty"`
	Parent      *primitive.ObjectID `json:"parent" bson:"parent"`
	Image       string              `json:"image,omitempty" bson:"image,omitempty"`
	IsActive    bool                `json:"isActive" bson:"isActive"`
	CreatedAt   time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt" bson:"updatedAt"`
}

var whitespacePattern = regexp.MustCompile(`\s+`)

// Slugify derives a URL slug from a category name. It is applied as an
// explicit pre-persist transform whenever the name changes.
func Slugify(name string) string {
	return whitespacePattern.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}

// CategoryInput is the request payload for creating or updating a category.
type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Parent      string `json:"parent"`
	Image       string `json:"image"`
	IsActive    *bool  `json:"isActive"`
}

// Validate checks all field constraints and aggregates every violation.
func (in *CategoryInput) Validate() error {
	var violations []string
	if strings.TrimSpace(in.Name) == "" {
		violations = append(violations, "Category name is required")
	}
	if len(violations) > 0 {
		return NewValidationError(violations...)
	}
	return nil
}
