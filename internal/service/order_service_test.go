package service

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func placeOrderInput() model.PlaceOrderInput {
	return model.PlaceOrderInput{
		ShippingAddress: model.Address{
			Street:  "1 Main St",
			City:    "Springfield",
			Country: "US",
		},
		PaymentMethod: model.PaymentMethodCard,
	}
}

func TestOrderService_PlaceOrder_Success(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	productID := primitive.NewObjectID()

	cartRepo := new(MockCartRepository)
	productRepo := new(MockProductRepository)
	orderRepo := new(MockOrderRepository)

	cart := &model.Cart{
		ID:    primitive.NewObjectID(),
		User:  userID,
		Items: []model.CartItem{{Product: productID, Quantity: 3}},
	}
	product := &model.Product{
		ID:        productID,
		Name:      "Widget",
		Price:     40.00,
		Images:    []model.ProductImage{{URL: "https://img.example/widget.png"}},
		Inventory: model.Inventory{Quantity: 10},
	}

	cartRepo.On("GetByUser", ctx, userID).Return(cart, nil)
	productRepo.On("GetByID", ctx, productID).Return(product, nil)
	orderRepo.On("Create", ctx, mock.AnythingOfType("*model.Order")).Return(nil)
	productRepo.On("DecrementInventory", ctx, productID, 3).Return(nil)
	cartRepo.On("DeleteByUser", ctx, userID).Return(nil)

	svc := NewOrderService(orderRepo, cartRepo, productRepo, zerolog.Nop())

	order, err := svc.PlaceOrder(ctx, userID.Hex(), placeOrderInput())
	require.NoError(t, err)
	require.NotNil(t, order)

	// Subtotal 120 clears the free shipping threshold.
	assert.Equal(t, 120.00, order.Subtotal)
	assert.Equal(t, 12.00, order.Tax)
	assert.Equal(t, 0.00, order.ShippingFee)
	assert.Equal(t, 132.00, order.Total)

	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.False(t, order.IsPaid)
	assert.NotEmpty(t, order.OrderNumber)

	require.Len(t, order.Items, 1)
	assert.Equal(t, "Widget", order.Items[0].Name)
	assert.Equal(t, 40.00, order.Items[0].Price)
	assert.Equal(t, "https://img.example/widget.png", order.Items[0].Image)

	cartRepo.AssertExpectations(t)
	productRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestOrderService_PlaceOrder_FlatShippingUnderThreshold(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	productID := primitive.NewObjectID()

	cartRepo := new(MockCartRepository)
	productRepo := new(MockProductRepository)
	orderRepo := new(MockOrderRepository)

	cart := &model.Cart{
		User:  userID,
		Items: []model.CartItem{{Product: productID, Quantity: 2}},
	}
	product := &model.Product{
		ID:        productID,
		Name:      "Gadget",
		Price:     15.00,
		Inventory: model.Inventory{Quantity: 5},
	}

	cartRepo.On("GetByUser", ctx, userID).Return(cart, nil)
	productRepo.On("GetByID", ctx, productID).Return(product, nil)
	orderRepo.On("Create", ctx, mock.AnythingOfType("*model.Order")).Return(nil)
	productRepo.On("DecrementInventory", ctx, productID, 2).Return(nil)
	cartRepo.On("DeleteByUser", ctx, userID).Return(nil)

	svc := NewOrderService(orderRepo, cartRepo, productRepo, zerolog.Nop())

	order, err := svc.PlaceOrder(ctx, userID.Hex(), placeOrderInput())
	require.NoError(t, err)

	assert.Equal(t, 30.00, order.Subtotal)
	assert.Equal(t, 3.00, order.Tax)
	assert.Equal(t, 10.00, order.ShippingFee)
	assert.Equal(t, 43.00, order.Total)
}

func TestOrderService_PlaceOrder_EmptyCart(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()

	cartRepo := new(MockCartRepository)
	cartRepo.On("GetByUser", ctx, userID).Return(nil, nil)

	svc := NewOrderService(new(MockOrderRepository), cartRepo, new(MockProductRepository), zerolog.Nop())

	_, err := svc.PlaceOrder(ctx, userID.Hex(), placeOrderInput())
	assert.ErrorIs(t, err, model.ErrEmptyCart)
}

func TestOrderService_PlaceOrder_InsufficientInventory(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	productID := primitive.NewObjectID()

	cartRepo := new(MockCartRepository)
	productRepo := new(MockProductRepository)

	cart := &model.Cart{
		User:  userID,
		Items: []model.CartItem{{Product: productID, Quantity: 4}},
	}
	product := &model.Product{
		ID:        productID,
		Name:      "Scarce",
		Price:     9.99,
		Inventory: model.Inventory{Quantity: 2},
	}

	cartRepo.On("GetByUser", ctx, userID).Return(cart, nil)
	productRepo.On("GetByID", ctx, productID).Return(product, nil)

	svc := NewOrderService(new(MockOrderRepository), cartRepo, productRepo, zerolog.Nop())

	_, err := svc.PlaceOrder(ctx, userID.Hex(), placeOrderInput())
	assert.ErrorIs(t, err, model.ErrInsufficientInventory)
}

func TestOrderService_PlaceOrder_InvalidPaymentMethod(t *testing.T) {
	svc := NewOrderService(new(MockOrderRepository), new(MockCartRepository), new(MockProductRepository), zerolog.Nop())

	in := placeOrderInput()
	in.PaymentMethod = "bitcoin"

	_, err := svc.PlaceOrder(context.Background(), primitive.NewObjectID().Hex(), in)

	var domainErr *model.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, model.ErrCodeValidationFailed, domainErr.Code)
}

func TestOrderService_GetOrder_OwnerAndAdmin(t *testing.T) {
	ctx := context.Background()
	ownerID := primitive.NewObjectID()
	orderID := primitive.NewObjectID()
	order := &model.Order{ID: orderID, User: ownerID}

	tests := []struct {
		name    string
		userID  string
		role    string
		wantErr error
	}{
		{"Owner sees own order", ownerID.Hex(), model.RoleUser, nil},
		{"Admin sees any order", primitive.NewObjectID().Hex(), model.RoleAdmin, nil},
		{"Stranger is rejected", primitive.NewObjectID().Hex(), model.RoleUser, model.ErrNotAuthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orderRepo := new(MockOrderRepository)
			orderRepo.On("GetByID", ctx, orderID).Return(order, nil)

			svc := NewOrderService(orderRepo, new(MockCartRepository), new(MockProductRepository), zerolog.Nop())

			got, err := svc.GetOrder(ctx, tt.userID, tt.role, orderID.Hex())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, orderID, got.ID)
		})
	}
}

func TestOrderService_GetOrder_NotFound(t *testing.T) {
	ctx := context.Background()
	orderID := primitive.NewObjectID()

	orderRepo := new(MockOrderRepository)
	orderRepo.On("GetByID", ctx, orderID).Return(nil, nil)

	svc := NewOrderService(orderRepo, new(MockCartRepository), new(MockProductRepository), zerolog.Nop())

	_, err := svc.GetOrder(ctx, primitive.NewObjectID().Hex(), model.RoleUser, orderID.Hex())
	assert.ErrorIs(t, err, model.ErrOrderNotFound)
}

func TestOrderService_ListOrders_RoleScoping(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()

	orderRepo := new(MockOrderRepository)
	orderRepo.On("List", ctx).Return([]model.Order{{}, {}}, nil)
	orderRepo.On("ListByUser", ctx, userID).Return([]model.Order{{}}, nil)

	svc := NewOrderService(orderRepo, new(MockCartRepository), new(MockProductRepository), zerolog.Nop())

	all, err := svc.ListOrders(ctx, userID.Hex(), model.RoleAdmin)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	own, err := svc.ListOrders(ctx, userID.Hex(), model.RoleUser)
	require.NoError(t, err)
	assert.Len(t, own, 1)
}

func TestOrderService_UpdateStatus_DeliveredStampsDelivery(t *testing.T) {
	ctx := context.Background()
	orderID := primitive.NewObjectID()

	orderRepo := new(MockOrderRepository)
	orderRepo.On("UpdateStatus", ctx, orderID, model.OrderStatusDelivered, mock.AnythingOfType("*time.Time")).
		Return(&model.Order{ID: orderID, Status: model.OrderStatusDelivered, IsDelivered: true}, nil)

	svc := NewOrderService(orderRepo, new(MockCartRepository), new(MockProductRepository), zerolog.Nop())

	order, err := svc.UpdateStatus(ctx, orderID.Hex(), model.UpdateOrderStatusInput{Status: model.OrderStatusDelivered})
	require.NoError(t, err)
	assert.True(t, order.IsDelivered)

	orderRepo.AssertExpectations(t)
}

func TestOrderService_UpdateStatus_UnknownStatus(t *testing.T) {
	svc := NewOrderService(new(MockOrderRepository), new(MockCartRepository), new(MockProductRepository), zerolog.Nop())

	_, err := svc.UpdateStatus(context.Background(), primitive.NewObjectID().Hex(), model.UpdateOrderStatusInput{Status: "refunded"})

	var domainErr *model.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, model.ErrCodeValidationFailed, domainErr.Code)
}

func TestOrderService_PlaceOrder_RepoFailure(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	productID := primitive.NewObjectID()

	cartRepo := new(MockCartRepository)
	productRepo := new(MockProductRepository)
	orderRepo := new(MockOrderRepository)

	cart := &model.Cart{
		User:  userID,
		Items: []model.CartItem{{Product: productID, Quantity: 1}},
	}
	product := &model.Product{ID: productID, Name: "Widget", Price: 5, Inventory: model.Inventory{Quantity: 3}}

	cartRepo.On("GetByUser", ctx, userID).Return(cart, nil)
	productRepo.On("GetByID", ctx, productID).Return(product, nil)
	orderRepo.On("Create", ctx, mock.AnythingOfType("*model.Order")).Return(errors.New("write failed"))

	svc := NewOrderService(orderRepo, cartRepo, productRepo, zerolog.Nop())

	_, err := svc.PlaceOrder(ctx, userID.Hex(), placeOrderInput())
	assert.Error(t, err)

	cartRepo.AssertNotCalled(t, "DeleteByUser", mock.Anything, mock.Anything)
}
