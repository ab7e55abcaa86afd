package model

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses. Transitions are an open table: any known status may be
// set from any other by an admin.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Payment methods accepted at checkout.
const (
	PaymentMethodCard   = "card"
	PaymentMethodPaypal = "paypal"
	PaymentMethodCOD    = "cod"
)

// Checkout pricing policy. Fixed constants, not configurable inputs.
const (
	TaxRate               = 0.10
	FreeShippingThreshold = 100.0
	FlatShippingFee       = 10.0
)

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// ValidPaymentMethod reports whether m is an accepted payment method.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodCard, PaymentMethodPaypal, PaymentMethodCOD:
		return true
	}
	return false
}

// Order is an immutable snapshot of a cart at checkout time. Later product
// price changes never affect an existing order.
type Order struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	OrderNumber     string             `json:"orderNumber" bson:"orderNumber"`
	User            primitive.ObjectID `json:"user" bson:"user"`
	Items           []OrderItem        `json:"items" bson:"items"`
	ShippingAddress Address            `json:"shippingAddress" bson:"shippingAddress"`
	PaymentMethod   string             `json:"paymentMethod" bson:"paymentMethod"`
	PaymentResult   *PaymentResult     `json:"paymentResult,omitempty" bson:"paymentResult,omitempty"`
	Subtotal        float64            `json:"subtotal" bson:"subtotal"`
	Tax             float64            `json:"tax" bson:"tax"`
	ShippingFee     float64            `json:"shippingFee" bson:"shippingFee"`
	Total           float64            `json:"total" bson:"total"`
	Status          string             `json:"status" bson:"status"`
	IsPaid          bool               `json:"isPaid" bson:"isPaid"`
	PaidAt          *time.Time         `json:"paidAt,omitempty" bson:"paidAt,omitempty"`
	IsDelivered     bool               `json:"isDelivered" bson:"isDelivered"`
	DeliveredAt     *time.Time         `json:"deliveredAt,omitempty" bson:"deliveredAt,omitempty"`
	TrackingNumber  string             `json:"trackingNumber,omitempty" bson:"trackingNumber,omitempty"`
	Notes           string             `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// OrderItem is a frozen copy of a product line captured at checkout.
type OrderItem struct {
	Product  primitive.ObjectID `json:"product" bson:"product"`
	Name     string             `json:"name" bson:"name"`
	Price    float64            `json:"price" bson:"price"`
	Quantity int                `json:"quantity" bson:"quantity"`
	Image    string             `json:"image,omitempty" bson:"image,omitempty"`
}

// PaymentResult records the processor's outcome for a paid order.
type PaymentResult struct {
	ID         string `json:"id" bson:"id"`
	Status     string `json:"status" bson:"status"`
	UpdateTime string `json:"updateTime,omitempty" bson:"updateTime,omitempty"`
}

// OrderTotals holds the checkout arithmetic for an order.
type OrderTotals struct {
	Subtotal    float64
	Tax         float64
	ShippingFee float64
	Total       float64
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ComputeOrderTotals applies the checkout pricing policy to a set of order
// items: 10% tax, free shipping over the threshold, flat fee otherwise.
// Pure function, invoked before each order persist.
func ComputeOrderTotals(items []OrderItem) OrderTotals {
	var subtotal float64
	for _, item := range items {
		subtotal += item.Price * float64(item.Quantity)
	}
	subtotal = Round2(subtotal)

	tax := Round2(subtotal * TaxRate)

	shippingFee := FlatShippingFee
	if subtotal > FreeShippingThreshold {
		shippingFee = 0
	}

	return OrderTotals{
		Subtotal:    subtotal,
		Tax:         tax,
		ShippingFee: shippingFee,
		Total:       Round2(subtotal + tax + shippingFee),
	}
}

// PlaceOrderInput is the request payload for checkout.
type PlaceOrderInput struct {
	ShippingAddress Address `json:"shippingAddress"`
	PaymentMethod   string  `json:"paymentMethod"`
}

// Validate checks all field constraints and aggregates every violation.
func (in *PlaceOrderInput) Validate() error {
	var violations []string
	if in.ShippingAddress.Street == "" || in.ShippingAddress.City == "" || in.ShippingAddress.Country == "" {
		violations = append(violations, "Shipping address is incomplete")
	}
	if !ValidPaymentMethod(in.PaymentMethod) {
		violations = append(violations, "Payment method must be card, paypal or cod")
	}
	if len(violations) > 0 {
		return NewValidationError(violations...)
	}
	return nil
}

// UpdateOrderStatusInput is the request payload for admin status updates.
type UpdateOrderStatusInput struct {
	Status string `json:"status"`
}

// Validate checks the status value is a member of the known set. No
// transition graph is enforced.
func (in *UpdateOrderStatusInput) Validate() error {
	if !ValidOrderStatus(in.Status) {
		return NewValidationError("Status must be one of pending, processing, shipped, delivered, cancelled")
	}
	return nil
}
