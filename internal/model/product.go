package model

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product represents a catalogue product.
// Rating fields are owned exclusively by the review service.
type Product struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Description  string             `json:"description" bson:"description"`
	Price        float64            `json:"price" bson:"price"`
	ComparePrice float64            `json:"comparePrice,omitempty" bson:"comparePrice,omitempty"`
	Category     primitive.ObjectID `json:"category" bson:"category"`
	Brand        string             `json:"brand,omitempty" bson:"brand,omitempty"`
	Images       []ProductImage     `json:"images" bson:"images"`
	Inventory    Inventory          `json:"inventory" bson:"inventory"`
	Rating       Rating             `json:"rating" bson:"rating"`
	IsFeatured   bool               `json:"isFeatured" bson:"isFeatured"`
	IsActive     bool               `json:"isActive" bson:"isActive"`
	Tags         []string           `json:"tags,omitempty" bson:"tags,omitempty"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ProductImage is an externally hosted product image reference.
type ProductImage struct {
	URL      string `json:"url" bson:"url"`
	PublicID string `json:"publicId,omitempty" bson:"publicId,omitempty"`
}

// Inventory tracks stock for a product.
type Inventory struct {
	Quantity int    `json:"quantity" bson:"quantity"`
	SKU      string `json:"sku,omitempty" bson:"sku,omitempty"`
}

// Rating is the cached aggregate of a product's reviews.
type Rating struct {
	Average float64 `json:"average" bson:"average"`
	Count   int     `json:"count" bson:"count"`
}

// PrimaryImage returns the URL of the first product image, or "".
func (p *Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].URL
}

// ProductInput is the request payload for creating or updating a product.
type ProductInput struct {
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	Price        float64        `json:"price"`
	ComparePrice float64        `json:"comparePrice"`
	Category     string         `json:"category"`
	Brand        string         `json:"brand"`
	Images       []ProductImage `json:"images"`
	Inventory    Inventory      `json:"inventory"`
	IsFeatured   bool           `json:"isFeatured"`
	IsActive     *bool          `json:"isActive"`
	Tags         []string       `json:"tags"`
}

// Validate checks all field constraints and aggregates every violation.
func (in *ProductInput) Validate() error {
	var violations []string
	if strings.TrimSpace(in.Name) == "" {
		violations = append(violations, "Product name is required")
	}
	if len(in.Name) > 200 {
		violations = append(violations, "Product name cannot exceed 200 characters")
	}
	if strings.TrimSpace(in.Description) == "" {
		violations = append(violations, "Product description is required")
	}
	if in.Price < 0 {
		violations = append(violations, "Price cannot be negative")
	}
	if in.ComparePrice < 0 {
		violations = append(violations, "Compare price cannot be negative")
	}
	if in.Category == "" {
		violations = append(violations, "Category is required")
	}
	if in.Inventory.Quantity < 0 {
		violations = append(violations, "Inventory quantity cannot be negative")
	}
	if len(violations) > 0 {
		return NewValidationError(violations...)
	}
	return nil
}

// ProductFilter captures the list query parameters for the catalogue.
type ProductFilter struct {
	Category string
	Search   string
	MinPrice *float64
	MaxPrice *float64
	Page     int
	Limit    int
	Sort     string
}

// Normalize applies pagination and sort defaults in place.
func (f *ProductFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 10
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	if f.Sort == "" {
		f.Sort = "-createdAt"
	}
}

// Skip returns the number of documents to skip for the current page.
func (f *ProductFilter) Skip() int {
	return (f.Page - 1) * f.Limit
}
