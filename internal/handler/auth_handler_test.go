package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAuthHandler_Register_Success(t *testing.T) {
	user := &model.User{
		ID:    primitive.NewObjectID(),
		Name:  "Jane",
		Email: "jane@example.com",
		Role:  model.RoleUser,
	}

	svc := new(MockAuthService)
	svc.On("Register", testifyCtx, model.RegisterInput{
		Name:     "Jane",
		Email:    "jane@example.com",
		Password: "password123",
	}).Return(user, "signed.token", nil)

	h := NewAuthHandler(svc, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
		strings.NewReader(`{"name":"Jane","email":"jane@example.com","password":"password123"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	h.Register(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Token string           `json:"token"`
			User  model.PublicUser `json:"user"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "signed.token", resp.Data.Token)
	assert.Equal(t, "jane@example.com", resp.Data.User.Email)

	svc.AssertExpectations(t)
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("Register", testifyCtx, mock.AnythingOfType("model.RegisterInput")).
		Return(nil, "", model.ErrEmailTaken)

	h := NewAuthHandler(svc, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
		strings.NewReader(`{"name":"Jane","email":"jane@example.com","password":"password123"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	h.Register(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"User already exists"}`, w.Body.String())
}

func TestAuthHandler_Register_MalformedBody(t *testing.T) {
	svc := new(MockAuthService)
	h := NewAuthHandler(svc, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(`{not json`))
	w := httptest.NewRecorder()

	h.Register(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("Login", testifyCtx, model.LoginInput{Email: "jane@example.com", Password: "wrong"}).
		Return(nil, "", model.ErrInvalidCredentials)

	h := NewAuthHandler(svc, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"jane@example.com","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	h.Login(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Invalid credentials"}`, w.Body.String())
}

func TestAuthHandler_Me(t *testing.T) {
	userID := primitive.NewObjectID()
	user := &model.User{ID: userID, Name: "Jane", Email: "jane@example.com", Role: model.RoleUser}

	svc := new(MockAuthService)
	svc.On("Me", testifyCtx, userID.Hex()).Return(user, nil)

	h := NewAuthHandler(svc, zerolog.Nop())

	req := authedJSONRequest(http.MethodGet, "/api/auth/me", "", userID.Hex(), model.RoleUser)
	w := httptest.NewRecorder()

	h.Me(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool       `json:"success"`
		Data    model.User `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "jane@example.com", resp.Data.Email)

	svc.AssertExpectations(t)
}

func TestAuthHandler_ForgotPassword(t *testing.T) {
	tests := []struct {
		name       string
		email      string
		serviceErr error
		wantStatus int
	}{
		{
			name:       "known email returns confirmation",
			email:      "jane@example.com",
			serviceErr: nil,
			wantStatus: http.StatusOK,
		},
		{
			name:       "unknown email returns 404",
			email:      "ghost@example.com",
			serviceErr: model.ErrUserNotFound,
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockAuthService)
			svc.On("ForgotPassword", testifyCtx, tt.email).Return(tt.serviceErr)

			h := NewAuthHandler(svc, zerolog.Nop())

			req := httptest.NewRequest(http.MethodPost, "/api/auth/forgot-password",
				strings.NewReader(`{"email":"`+tt.email+`"}`))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			h.ForgotPassword(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.JSONEq(t, `{"success":true,"data":{"message":"Password reset email sent"}}`, w.Body.String())
			}
		})
	}
}
