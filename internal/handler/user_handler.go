package handler

import (
	"net/http"
	"strconv"

	"storefront/internal/middleware"
	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// UserHandler handles profile, address and admin account HTTP requests.
type UserHandler struct {
	service service.UserService
	logger  zerolog.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(service service.UserService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger.With().Str("handler", "user").Logger(),
	}
}

// GetProfile handles GET /api/users/profile.
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.GetProfile(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, user)
}

// UpdateProfile handles PUT /api/users/profile.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var in model.UpdateProfileInput
	if err := decodeBody(r, &in); err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}

	user, err := h.service.UpdateProfile(r.Context(), middleware.UserID(r.Context()), in)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, user)
}

// UpdatePassword handles PUT /api/users/password.
func (h *UserHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	var in model.UpdatePasswordInput
	if err := decodeBody(r, &in); err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}

	if err := h.service.UpdatePassword(r.Context(), middleware.UserID(r.Context()), in); err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, map[string]string{"message": "Password updated"})
}

// AddAddress handles POST /api/users/address.
func (h *UserHandler) AddAddress(w http.ResponseWriter, r *http.Request) {
	var in model.AddressInput
	if err := decodeBody(r, &in); err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}

	user, err := h.service.AddAddress(r.Context(), middleware.UserID(r.Context()), in)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusCreated, user.Addresses)
}

// UpdateAddress handles PUT /api/users/address/{id}.
func (h *UserHandler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	var in model.AddressInput
	if err := decodeBody(r, &in); err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}

	user, err := h.service.UpdateAddress(r.Context(), middleware.UserID(r.Context()), r.PathValue("id"), in)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, user.Addresses)
}

// DeleteAddress handles DELETE /api/users/address/{id}.
func (h *UserHandler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.DeleteAddress(r.Context(), middleware.UserID(r.Context()), r.PathValue("id"))
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, user.Addresses)
}

// List handles GET /api/users. Admin only.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	users, pagination, err := h.service.List(r.Context(), page, limit)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writePage(w, http.StatusOK, users, pagination)
}

// Get handles GET /api/users/{id}. Admin only.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, user)
}

// Delete handles DELETE /api/users/{id}. Admin only.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, map[string]string{"message": "User deleted"})
}
