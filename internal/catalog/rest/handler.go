// Package rest provides HTTP handlers for the product catalog.
package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/FiatTy/Projectjannong/internal/catalog"
	"github.com/FiatTy/Projectjannong/pkg/web"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service catalog.CatalogService
	logger  *slog.Logger
}

// NewHandler creates a catalog API backed by the provided service.
func NewHandler(service catalog.CatalogService, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.With("component", "catalog_rest"),
	}
}

// RegisterRoutes registers the catalog routes. Reads are public;
// mutations sit behind the admin gate.
func (h *Handler) RegisterRoutes(r chi.Router, admin func(http.Handler) http.Handler) {
	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Group(func(r chi.Router) {
			r.Use(admin)
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	})
}

// List returns the full catalog.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.List(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Error loading catalog", "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, "Failed to fetch products.")
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, products)
}

// Get returns one product by id.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	product, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			web.RespondError(w, h.logger, http.StatusNotFound, "Product not found")
			return
		}
		h.logger.ErrorContext(r.Context(), "Error loading product", "id", id, "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, "Failed to fetch product.")
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, product)
}

// Create adds a new product to the catalog.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var product catalog.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		h.logger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.service.Create(r.Context(), product)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrMissingFields):
			web.RespondError(w, h.logger, http.StatusBadRequest, "Missing required product fields (id, name, price, type)")
		case errors.Is(err, catalog.ErrInvalidPrice):
			web.RespondError(w, h.logger, http.StatusBadRequest, "Product price must be a number.")
		case errors.Is(err, catalog.ErrDuplicateID):
			web.RespondError(w, h.logger, http.StatusConflict, "Product with this ID already exists.")
		default:
			h.logger.ErrorContext(r.Context(), "Error creating product", "error", err)
			web.RespondError(w, h.logger, http.StatusInternalServerError, "Failed to add product due to server error.")
		}
		return
	}
	h.logger.InfoContext(r.Context(), "Product created", "id", created.ID())
	web.RespondJSON(w, h.logger, http.StatusCreated, map[string]any{"success": true, "product": created})
}

// Update merges the payload over an existing product.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var partial catalog.Product
	if err := json.NewDecoder(r.Body).Decode(&partial); err != nil {
		h.logger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.service.Update(r.Context(), id, partial)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrProductNotFound):
			web.RespondError(w, h.logger, http.StatusNotFound, "Product not found.")
		case errors.Is(err, catalog.ErrInvalidPrice):
			web.RespondError(w, h.logger, http.StatusBadRequest, "Product price must be a number.")
		default:
			h.logger.ErrorContext(r.Context(), "Error updating product", "id", id, "error", err)
			web.RespondError(w, h.logger, http.StatusInternalServerError, "Failed to update product due to server error.")
		}
		return
	}
	h.logger.InfoContext(r.Context(), "Product updated", "id", id)
	web.RespondJSON(w, h.logger, http.StatusOK, map[string]any{"success": true, "product": updated})
}

// Delete removes a product from the catalog.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			web.RespondError(w, h.logger, http.StatusNotFound, "Product not found.")
			return
		}
		h.logger.ErrorContext(r.Context(), "Error deleting product", "id", id, "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, "Failed to delete product due to server error.")
		return
	}
	h.logger.InfoContext(r.Context(), "Product deleted", "id", id)
	web.RespondJSON(w, h.logger, http.StatusOK, map[string]any{"success": true, "message": "Product deleted successfully."})
}
