package service

import (
	"context"
	"time"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// cartService implements CartService.
type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, logger zerolog.Logger) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		logger:      logger.With().Str("service", "cart").Logger(),
	}
}

// loadOrCreate fetches the user's cart, creating an empty one on first
// access.
func (s *cartService) loadOrCreate(ctx context.Context, userID string) (*model.Cart, error) {
	oid, ok := parseObjectID(userID)
	if !ok {
		return nil, model.ErrUserNotFound
	}

	cart, err := s.cartRepo.GetByUser(ctx, oid)
	if err != nil {
		return nil, err
	}
	if cart != nil {
		return cart, nil
	}

	now := time.Now().UTC()
	cart = &model.Cart{
		User:      oid,
		Items:     []model.CartItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.cartRepo.Create(ctx, cart); err != nil {
		return nil, err
	}

	s.logger.Debug().Str("user_id", userID).Msg("cart created")
	return cart, nil
}

// resolveProducts fetches the product documents referenced by the cart lines.
func (s *cartService) resolveProducts(ctx context.Context, items []model.CartItem) (map[primitive.ObjectID]model.Product, error) {
	if len(items) == 0 {
		return map[primitive.ObjectID]model.Product{}, nil
	}

	ids := make([]primitive.ObjectID, len(items))
	for i, item := range items {
		ids[i] = item.Product
	}

	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[primitive.ObjectID]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	return byID, nil
}

// persistAndRender recomputes the cached total from current prices, stores
// the cart and returns its resolved view. Lines whose product no longer
// resolves stay in the document but render without a snapshot and contribute
// nothing to the total.
func (s *cartService) persistAndRender(ctx context.Context, cart *model.Cart) (*model.CartResponse, error) {
	products, err := s.resolveProducts(ctx, cart.Items)
	if err != nil {
		return nil, err
	}

	cart.Total = model.CartTotal(cart.Items, products)
	cart.UpdatedAt = time.Now().UTC()

	if err := s.cartRepo.Update(ctx, cart); err != nil {
		return nil, err
	}

	lines := make([]model.CartLine, 0, len(cart.Items))
	for _, item := range cart.Items {
		line := model.CartLine{Quantity: item.Quantity}
		if p, ok := products[item.Product]; ok {
			line.Product = p
		}
		lines = append(lines, line)
	}

	return &model.CartResponse{
		ID:        cart.ID,
		User:      cart.User,
		Items:     lines,
		Total:     cart.Total,
		UpdatedAt: cart.UpdatedAt,
	}, nil
}

// Get retrieves the user's cart, creating an empty one on first access. The
// read refreshes the cached total against current product prices.
func (s *cartService) Get(ctx context.Context, userID string) (*model.CartResponse, error) {
	cart, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.persistAndRender(ctx, cart)
}

// AddItem merges a product line into the cart. Inventory is checked against
// the cumulative quantity when the product already has a line.
func (s *cartService) AddItem(ctx context.Context, userID string, in model.AddCartItemInput) (*model.CartResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	productID, ok := parseObjectID(in.ProductID)
	if !ok {
		return nil, model.ErrProductNotFound
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	cart, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	quantity := in.Quantity
	idx := cart.FindItem(productID)
	if idx >= 0 {
		quantity += cart.Items[idx].Quantity
	}
	if quantity > product.Inventory.Quantity {
		s.logger.Warn().
			Str("product_id", in.ProductID).
			Int("requested", quantity).
			Int("available", product.Inventory.Quantity).
			Msg("cart add exceeds inventory")
		return nil, model.ErrInsufficientInventory
	}

	if idx >= 0 {
		cart.Items[idx].Quantity = quantity
	} else {
		cart.Items = append(cart.Items, model.CartItem{Product: productID, Quantity: quantity})
	}

	return s.persistAndRender(ctx, cart)
}

// UpdateItem sets a line's quantity, re-checking inventory.
func (s *cartService) UpdateItem(ctx context.Context, userID, productID string, in model.UpdateCartItemInput) (*model.CartResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	pid, ok := parseObjectID(productID)
	if !ok {
		return nil, model.ErrProductNotFound
	}

	cart, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := cart.FindItem(pid)
	if idx < 0 {
		return nil, model.ErrItemNotInCart
	}

	product, err := s.productRepo.GetByID(ctx, pid)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}
	if in.Quantity > product.Inventory.Quantity {
		return nil, model.ErrInsufficientInventory
	}

	cart.Items[idx].Quantity = in.Quantity

	return s.persistAndRender(ctx, cart)
}

// RemoveItem drops a line from the cart.
func (s *cartService) RemoveItem(ctx context.Context, userID, productID string) (*model.CartResponse, error) {
	pid, ok := parseObjectID(productID)
	if !ok {
		return nil, model.ErrItemNotInCart
	}

	cart, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := cart.FindItem(pid)
	if idx < 0 {
		return nil, model.ErrItemNotInCart
	}

	cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)

	return s.persistAndRender(ctx, cart)
}

// Clear removes every line from the cart.
func (s *cartService) Clear(ctx context.Context, userID string) error {
	cart, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return err
	}

	cart.Items = []model.CartItem{}
	cart.Total = 0
	cart.UpdatedAt = time.Now().UTC()

	return s.cartRepo.Update(ctx, cart)
}
