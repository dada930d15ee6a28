// Package rest provides HTTP handlers for cart operations.
package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/FiatTy/Projectjannong/internal/cart"
	"github.com/FiatTy/Projectjannong/internal/docstore"
	"github.com/FiatTy/Projectjannong/pkg/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

const missingIdentityMessage = "Authentication required: User email is missing."

type Handler struct {
	service  cart.CartService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewHandler creates a cart API backed by the provided service.
func NewHandler(service cart.CartService, logger *slog.Logger) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
		logger:   logger.With("component", "cart_rest"),
	}
}

// RegisterRoutes registers the cart routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/cart", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Post("/", h.Add)
		r.Post("/update-quantity", h.UpdateQuantity)
		r.Delete("/", h.Clear)
	})
}

// Get returns the caller's cart, or [] if none exists yet. A cart
// document that no longer parses is reported, unlike the silent reset
// on the write paths.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	var req identityRequest
	// The email usually arrives as a query parameter, but a body
	// carrying it is accepted too.
	_ = json.NewDecoder(r.Body).Decode(&req)
	email := identity(req.Email, r)
	if email == "" {
		web.RespondError(w, h.logger, http.StatusUnauthorized, missingIdentityMessage)
		return
	}

	items, err := h.service.Get(r.Context(), email)
	if err != nil {
		if errors.Is(err, docstore.ErrCorrupted) {
			h.logger.ErrorContext(r.Context(), "Cart document corrupted", "email", email, "error", err)
			web.RespondError(w, h.logger, http.StatusInternalServerError, "User cart data is corrupted.")
			return
		}
		h.logger.ErrorContext(r.Context(), "Error loading cart", "email", email, "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, "Failed to read cart for this user.")
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, items)
}

type addItemRequest struct {
	Email string  `json:"email"`
	ID    string  `json:"id"    validate:"required"`
	Name  string  `json:"name"  validate:"required"`
	Price float64 `json:"price"`
	Qty   int     `json:"qty"   validate:"gte=0"`
}

// Add upserts an item into the caller's cart and echoes the updated cart.
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}
	email := identity(req.Email, r)
	if email == "" {
		web.RespondError(w, h.logger, http.StatusUnauthorized, missingIdentityMessage)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.logger.WarnContext(r.Context(), "Invalid cart item", "error", err)
		web.RespondError(w, h.logger, http.StatusBadRequest, "Invalid cart item: id and name are required.")
		return
	}

	items, err := h.service.Add(r.Context(), email, cart.Item{
		ID:    req.ID,
		Name:  req.Name,
		Price: req.Price,
		Qty:   req.Qty,
	})
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Error updating cart", "email", email, "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, "Failed to update cart.")
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, map[string]any{"success": true, "cart": items})
}

type updateQuantityRequest struct {
	Email    string `json:"email"`
	ID       string `json:"id"`
	ItemName string `json:"itemName"`
	NewQty   *int   `json:"newQty" validate:"required,gte=0"`
}

// UpdateQuantity sets an item's quantity, removing matching entries
// when the new quantity is zero.
func (h *Handler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}
	email := identity(req.Email, r)
	if email == "" {
		web.RespondError(w, h.logger, http.StatusUnauthorized, missingIdentityMessage)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.logger.WarnContext(r.Context(), "Invalid quantity update", "error", err)
		web.RespondError(w, h.logger, http.StatusBadRequest, "newQty must be a number greater than or equal to 0.")
		return
	}
	if req.ID == "" && req.ItemName == "" {
		web.RespondError(w, h.logger, http.StatusBadRequest, "Item id or itemName is required.")
		return
	}

	items, removed, err := h.service.UpdateQuantity(r.Context(), email, req.ID, req.ItemName, *req.NewQty)
	if err != nil {
		if errors.Is(err, cart.ErrItemNotFound) {
			web.RespondError(w, h.logger, http.StatusNotFound, "Item not found in cart.")
			return
		}
		h.logger.ErrorContext(r.Context(), "Error updating quantity", "email", email, "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, "Failed to update cart.")
		return
	}
	if *req.NewQty == 0 && !removed {
		web.RespondJSON(w, h.logger, http.StatusOK, map[string]any{
			"success": true,
			"message": "Item was not in the cart; nothing to remove.",
			"cart":    items,
		})
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, map[string]any{"success": true, "cart": items})
}

// identityRequest carries the optional body email for the endpoints
// whose only payload is the caller's identity.
type identityRequest struct {
	Email string `json:"email"`
}

// Clear resets the caller's cart to an empty array.
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	var req identityRequest
	// DELETE bodies are optional; the query parameter is the usual carrier.
	_ = json.NewDecoder(r.Body).Decode(&req)
	email := identity(req.Email, r)
	if email == "" {
		web.RespondError(w, h.logger, http.StatusUnauthorized, missingIdentityMessage)
		return
	}

	if err := h.service.Clear(r.Context(), email); err != nil {
		h.logger.ErrorContext(r.Context(), "Error clearing cart", "email", email, "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, "Failed to clear cart.")
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, map[string]any{"success": true, "message": "Cart cleared successfully."})
}

// identity resolves the caller's email from the request body field,
// falling back to the email query parameter.
func identity(bodyEmail string, r *http.Request) string {
	if bodyEmail != "" {
		return bodyEmail
	}
	return r.URL.Query().Get("email")
}
