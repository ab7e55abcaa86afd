package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(orderRepo repository.OrderRepository, cartRepo repository.CartRepository, productRepo repository.ProductRepository, logger zerolog.Logger) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		logger:      logger.With().Str("service", "order").Logger(),
	}
}

// newOrderNumber generates a unique human-readable order reference.
func newOrderNumber() string {
	return "ORD-" + strings.ToUpper(uuid.New().String()[:8])
}

// PlaceOrder converts the user's cart into an immutable order snapshot.
// Line prices, names and images are copied from the current product records
// so later catalogue edits never change the order. The persist, the
// per-line inventory decrements and the cart delete are independent writes;
// there is no cross-document transaction.
func (s *orderService) PlaceOrder(ctx context.Context, userID string, in model.PlaceOrderInput) (*model.Order, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	uid, ok := parseObjectID(userID)
	if !ok {
		return nil, model.ErrUserNotFound
	}

	cart, err := s.cartRepo.GetByUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, model.ErrEmptyCart
	}

	items := make([]model.OrderItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		product, err := s.productRepo.GetByID(ctx, line.Product)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, model.ErrProductNotFound
		}
		if line.Quantity > product.Inventory.Quantity {
			s.logger.Warn().
				Str("product_id", product.ID.Hex()).
				Int("requested", line.Quantity).
				Int("available", product.Inventory.Quantity).
				Msg("checkout exceeds inventory")
			return nil, model.ErrInsufficientInventory
		}

		items = append(items, model.OrderItem{
			Product:  product.ID,
			Name:     product.Name,
			Price:    product.Price,
			Quantity: line.Quantity,
			Image:    product.PrimaryImage(),
		})
	}

	totals := model.ComputeOrderTotals(items)

	now := time.Now().UTC()
	order := &model.Order{
		OrderNumber:     newOrderNumber(),
		User:            uid,
		Items:           items,
		ShippingAddress: in.ShippingAddress,
		PaymentMethod:   in.PaymentMethod,
		Subtotal:        totals.Subtotal,
		Tax:             totals.Tax,
		ShippingFee:     totals.ShippingFee,
		Total:           totals.Total,
		Status:          model.OrderStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	for _, item := range order.Items {
		if err := s.productRepo.DecrementInventory(ctx, item.Product, item.Quantity); err != nil {
			s.logger.Error().Err(err).
				Str("order_id", order.ID.Hex()).
				Str("product_id", item.Product.Hex()).
				Msg("inventory decrement failed after order persist")
			return nil, fmt.Errorf("failed to decrement inventory: %w", err)
		}
	}

	if err := s.cartRepo.DeleteByUser(ctx, uid); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.Hex()).Msg("cart delete failed after order persist")
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID.Hex()).
		Str("order_number", order.OrderNumber).
		Float64("total", order.Total).
		Msg("order placed")

	return order, nil
}

// ListOrders retrieves the caller's orders, or every order for admins.
func (s *orderService) ListOrders(ctx context.Context, userID, role string) ([]model.Order, error) {
	if role == model.RoleAdmin {
		return s.orderRepo.List(ctx)
	}

	uid, ok := parseObjectID(userID)
	if !ok {
		return nil, model.ErrUserNotFound
	}

	return s.orderRepo.ListByUser(ctx, uid)
}

// GetOrder retrieves an order visible to its owner or an admin.
func (s *orderService) GetOrder(ctx context.Context, userID, role, orderID string) (*model.Order, error) {
	oid, ok := parseObjectID(orderID)
	if !ok {
		return nil, model.ErrOrderNotFound
	}

	order, err := s.orderRepo.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	if role != model.RoleAdmin && order.User.Hex() != userID {
		s.logger.Warn().
			Str("order_id", orderID).
			Str("user_id", userID).
			Msg("order access denied")
		return nil, model.ErrNotAuthorized
	}

	return order, nil
}

// UpdateStatus sets an order's status. Any known status value is accepted
// from any current one. The delivered status also stamps the delivery
// fields.
func (s *orderService) UpdateStatus(ctx context.Context, orderID string, in model.UpdateOrderStatusInput) (*model.Order, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	oid, ok := parseObjectID(orderID)
	if !ok {
		return nil, model.ErrOrderNotFound
	}

	var deliveredAt *time.Time
	if in.Status == model.OrderStatusDelivered {
		now := time.Now().UTC()
		deliveredAt = &now
	}

	order, err := s.orderRepo.UpdateStatus(ctx, oid, in.Status, deliveredAt)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	s.logger.Info().Str("order_id", orderID).Str("status", in.Status).Msg("order status updated")
	return order, nil
}
