// Package rest provides HTTP handlers for checkout operations.
package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/FiatTy/Projectjannong/internal/cart"
	"github.com/FiatTy/Projectjannong/internal/checkout"
	"github.com/FiatTy/Projectjannong/internal/docstore"
	"github.com/FiatTy/Projectjannong/pkg/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	service  checkout.CheckoutService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewHandler creates a checkout API backed by the provided service.
func NewHandler(service checkout.CheckoutService, logger *slog.Logger) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
		logger:   logger.With("component", "checkout_rest"),
	}
}

// RegisterRoutes registers the checkout routes. The read endpoints are
// admin-gated; recording a checkout is not.
func (h *Handler) RegisterRoutes(r chi.Router, admin func(http.Handler) http.Handler) {
	r.Route("/checkout", func(r chi.Router) {
		r.Post("/", h.Create)
		r.With(admin).Get("/checkouts", h.List)
		r.With(admin).Get("/all-checkouts", h.ListAll)
	})
}

type checkoutRequest struct {
	Email       string          `json:"email"       validate:"required"`
	Cart        json.RawMessage `json:"cart"        validate:"required"`
	TotalAmount *float64        `json:"totalAmount" validate:"required"`
}

// Create appends a checkout record for the given email.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondMessage(w, h.logger, http.StatusBadRequest, "Missing required checkout data (email, cart, or totalAmount).")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.logger.WarnContext(r.Context(), "Invalid checkout payload", "error", err)
		web.RespondMessage(w, h.logger, http.StatusBadRequest, "Missing required checkout data (email, cart, or totalAmount).")
		return
	}
	// The cart field must be a JSON array; an empty one is acceptable.
	// A JSON null passes the required tag and unmarshals by setting the
	// slice to nil, so it is rejected explicitly.
	items := make([]cart.Item, 0)
	if err := json.Unmarshal(req.Cart, &items); err != nil || items == nil {
		h.logger.WarnContext(r.Context(), "Checkout cart is not an array", "error", err)
		web.RespondMessage(w, h.logger, http.StatusBadRequest, "Missing required checkout data (email, cart, or totalAmount).")
		return
	}

	if _, err := h.service.Append(r.Context(), req.Email, items, *req.TotalAmount); err != nil {
		h.logger.ErrorContext(r.Context(), "Error saving checkout", "email", req.Email, "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, "Failed to save checkout data.")
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, map[string]any{"success": true, "message": "Checkout data saved successfully."})
}

// List returns the checkout log for the email query parameter.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	targetEmail := r.URL.Query().Get("email")
	if targetEmail == "" {
		web.RespondError(w, h.logger, http.StatusBadRequest, "Email parameter is required.")
		return
	}

	records, err := h.service.List(r.Context(), targetEmail)
	if err != nil {
		if errors.Is(err, docstore.ErrCorrupted) {
			h.logger.ErrorContext(r.Context(), "Checkout log corrupted", "email", targetEmail, "error", err)
			web.RespondError(w, h.logger, http.StatusInternalServerError, "Checkout data corrupted.")
			return
		}
		h.logger.ErrorContext(r.Context(), "Error loading checkout log", "email", targetEmail, "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, "Failed to retrieve checkout data.")
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, records)
}

// ListAll returns every user's checkout records, most recent first.
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.ListAll(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Error aggregating checkout logs", "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, "Failed to retrieve all checkout data.")
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, records)
}
