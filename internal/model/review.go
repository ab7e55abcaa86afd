package model

import (
	"math"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is a user's rating of a product. At most one review exists per
// (product, user) pair, enforced by a unique compound index.
type Review struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Product   primitive.ObjectID `json:"product" bson:"product"`
	User      primitive.ObjectID `json:"user" bson:"user"`
	Rating    int                `json:"rating" bson:"rating"`
	Title     string             `json:"title,omitempty" bson:"title,omitempty"`
	Comment   string             `json:"comment" bson:"comment"`
	Images    []string           `json:"images,omitempty" bson:"images,omitempty"`
	Verified  bool               `json:"verified" bson:"verified"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// AggregateRating recomputes a product's cached rating from the full set of
// its review ratings: mean rounded to one decimal, plus the count. Zero
// reviews reset the aggregate to {0, 0}.
func AggregateRating(ratings []int) Rating {
	if len(ratings) == 0 {
		return Rating{}
	}
	var sum int
	for _, r := range ratings {
		sum += r
	}
	mean := float64(sum) / float64(len(ratings))
	return Rating{
		Average: math.Round(mean*10) / 10,
		Count:   len(ratings),
	}
}

// CreateReviewInput is the request payload for creating a review.
type CreateReviewInput struct {
	ProductID string `json:"productId"`
	Rating    int    `json:"rating"`
	Title     string `json:"title"`
	Comment   string `json:"comment"`
}

// Validate checks all field constraints and aggregates every violation.
func (in *CreateReviewInput) Validate() error {
	var violations []string
	if in.ProductID == "" {
		violations = append(violations, "Product ID is required")
	}
	if in.Rating < 1 || in.Rating > 5 {
		violations = append(violations, "Rating must be between 1 and 5")
	}
	if len(in.Title) > 100 {
		violations = append(violations, "Title cannot exceed 100 characters")
	}
	if strings.TrimSpace(in.Comment) == "" {
		violations = append(violations, "Comment is required")
	}
	if len(in.Comment) > 1000 {
		violations = append(violations, "Comment cannot exceed 1000 characters")
	}
	if len(violations) > 0 {
		return NewValidationError(violations...)
	}
	return nil
}

// UpdateReviewInput is the request payload for updating a review. Zero
// fields are left unchanged, matching the partial-update behaviour of the
// write endpoint.
type UpdateReviewInput struct {
	Rating  int    `json:"rating"`
	Title   string `json:"title"`
	Comment string `json:"comment"`
}

// Validate checks all field constraints and aggregates every violation.
func (in *UpdateReviewInput) Validate() error {
	var violations []string
	if in.Rating != 0 && (in.Rating < 1 || in.Rating > 5) {
		violations = append(violations, "Rating must be between 1 and 5")
	}
	if len(in.Title) > 100 {
		violations = append(violations, "Title cannot exceed 100 characters")
	}
	if len(in.Comment) > 1000 {
		violations = append(violations, "Comment cannot exceed 1000 characters")
	}
	if len(violations) > 0 {
		return NewValidationError(violations...)
	}
	return nil
}
