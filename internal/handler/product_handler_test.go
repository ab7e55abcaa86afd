package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestProductHandler_List_ParsesQuery(t *testing.T) {
	svc := new(MockProductService)
	svc.On("List", testifyCtx, mock.MatchedBy(func(f model.ProductFilter) bool {
		return f.Category == "cat-1" && f.Search == "widget" &&
			f.MinPrice != nil && *f.MinPrice == 5.5 &&
			f.MaxPrice != nil && *f.MaxPrice == 20 &&
			f.Page == 2 && f.Limit == 5 && f.Sort == "price"
	})).Return([]model.Product{{Name: "Widget"}}, model.NewPagination(2, 5, 11), nil)

	h := NewProductHandler(svc, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/products?category=cat-1&search=widget&minPrice=5.5&maxPrice=20&page=2&limit=5&sort=price", nil)

	rec := httptest.NewRecorder()
	h.List(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Success    bool             `json:"success"`
		Data       []model.Product  `json:"data"`
		Pagination model.Pagination `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	assert.Len(t, envelope.Data, 1)
	assert.Equal(t, int64(11), envelope.Pagination.Total)
	assert.Equal(t, 3, envelope.Pagination.Pages)
}

func TestProductHandler_Get_NotFound(t *testing.T) {
	productID := primitive.NewObjectID().Hex()

	svc := new(MockProductService)
	svc.On("Get", testifyCtx, productID).Return(nil, model.ErrProductNotFound)

	h := NewProductHandler(svc, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/products/"+productID, nil)
	req.SetPathValue("id", productID)

	rec := httptest.NewRecorder()
	h.Get(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"Product not found"}`, rec.Body.String())
}

func TestProductHandler_Create_DuplicateSKU(t *testing.T) {
	svc := new(MockProductService)
	svc.On("Create", testifyCtx, mock.AnythingOfType("model.ProductInput")).Return(nil, model.ErrDuplicateSKU)

	h := NewProductHandler(svc, zerolog.Nop())

	body := `{"name":"Widget","description":"A widget","price":9.99,"category":"abc","inventory":{"quantity":5,"sku":"WID-1"}}`
	req := authedJSONRequest(http.MethodPost, "/api/products", body, primitive.NewObjectID().Hex(), model.RoleAdmin)

	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestProductHandler_Create_Success(t *testing.T) {
	svc := new(MockProductService)
	svc.On("Create", testifyCtx, mock.AnythingOfType("model.ProductInput")).
		Return(&model.Product{Name: "Widget", Price: 9.99}, nil)

	h := NewProductHandler(svc, zerolog.Nop())

	body := `{"name":"Widget","description":"A widget","price":9.99,"category":"abc"}`
	req := authedJSONRequest(http.MethodPost, "/api/products", body, primitive.NewObjectID().Hex(), model.RoleAdmin)

	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestProductHandler_Delete(t *testing.T) {
	productID := primitive.NewObjectID().Hex()

	svc := new(MockProductService)
	svc.On("Delete", testifyCtx, productID).Return(nil)

	h := NewProductHandler(svc, zerolog.Nop())

	req := authedJSONRequest(http.MethodDelete, "/api/products/"+productID, "", primitive.NewObjectID().Hex(), model.RoleAdmin)
	req.SetPathValue("id", productID)

	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}
