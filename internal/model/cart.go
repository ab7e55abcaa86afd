package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Cart is a user's mutable item list. One active cart per user.
type Cart struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	User      primitive.ObjectID `json:"user" bson:"user"`
	Items     []CartItem         `json:"items" bson:"items"`
	Total     float64            `json:"total" bson:"total"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// CartItem is a (product reference, quantity) line in a cart.
type CartItem struct {
	Product  primitive.ObjectID `json:"product" bson:"product"`
	Quantity int                `json:"quantity" bson:"quantity"`
}

// FindItem returns the index of the line referencing the given product,
// or -1 if the product is not in the cart.
func (c *Cart) FindItem(productID primitive.ObjectID) int {
	for i, item := range c.Items {
		if item.Product == productID {
			return i
		}
	}
	return -1
}

// CartTotal recomputes the cart total from current product prices. Lines
// whose product no longer resolves contribute nothing.
func CartTotal(items []CartItem, products map[primitive.ObjectID]Product) float64 {
	var total float64
	for _, item := range items {
		if p, ok := products[item.Product]; ok {
			total += p.Price * float64(item.Quantity)
		}
	}
	return Round2(total)
}

// CartLine is a cart item with its product resolved, mirroring what the
// API returns to clients.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// CartResponse is the cart view with product snapshots resolved per line.
type CartResponse struct {
	ID        primitive.ObjectID `json:"id"`
	User      primitive.ObjectID `json:"user"`
	Items     []CartLine         `json:"items"`
	Total     float64            `json:"total"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// AddCartItemInput is the request payload for adding a product to the cart.
type AddCartItemInput struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Validate checks all field constraints and aggregates every violation.
// A zero quantity defaults to 1.
func (in *AddCartItemInput) Validate() error {
	var violations []string
	if in.ProductID == "" {
		violations = append(violations, "Product ID is required")
	}
	if in.Quantity == 0 {
		in.Quantity = 1
	}
	if in.Quantity < 1 {
		violations = append(violations, "Quantity must be at least 1")
	}
	if len(violations) > 0 {
		return NewValidationError(violations...)
	}
	return nil
}

// UpdateCartItemInput is the request payload for changing a line quantity.
type UpdateCartItemInput struct {
	Quantity int `json:"quantity"`
}

// Validate checks all field constraints and aggregates every violation.
func (in *UpdateCartItemInput) Validate() error {
	if in.Quantity < 1 {
		return NewValidationError("Quantity must be at least 1")
	}
	return nil
}
