package handler

import (
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// CategoryHandler handles category tree HTTP requests.
type CategoryHandler struct {
	service service.CategoryService
	logger  zerolog.Logger
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(service service.CategoryService, logger zerolog.Logger) *CategoryHandler {
	return &CategoryHandler{
		service: service,
		logger:  logger.With().Str("handler", "category").Logger(),
	}
}

// categoryPayload is a category with its direct children resolved.
type categoryPayload struct {
	model.Category
	Subcategories []model.Category `json:"subcategories"`
}

// List handles GET /api/categories.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, categories)
}

// Get handles GET /api/categories/{id}.
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	category, subcategories, err := h.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, categoryPayload{Category: *category, Subcategories: subcategories})
}

// Create handles POST /api/categories. Admin only.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in model.CategoryInput
	if err := decodeBody(r, &in); err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}

	category, err := h.service.Create(r.Context(), in)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusCreated, category)
}

// Update handles PUT /api/categories/{id}. Admin only.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in model.CategoryInput
	if err := decodeBody(r, &in); err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}

	category, err := h.service.Update(r.Context(), r.PathValue("id"), in)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, category)
}

// Delete handles DELETE /api/categories/{id}. Admin only.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, map[string]string{"message": "Category deleted"})
}
