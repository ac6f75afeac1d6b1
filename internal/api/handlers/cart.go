package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/campusbay/backend/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// CartHandler trusts the caller-supplied user id: the cart endpoints are not
// session-gated, matching the behavior this service replaces.
type CartHandler struct {
	cartService *service.CartService
}

func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

type AddToCartRequest struct {
	UserID    string `json:"user_id"`
	ProductID string `json:"product_id"`
}

func (h *CartHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	lines, err := h.cartService.List(r.Context(), userID)
	if err != nil {
		serviceError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, lines)
}

func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req AddToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	entry, err := h.cartService.Add(r.Context(), userID, productID)
	if err != nil {
		serviceError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, map[string]any{
		"success": true,
		"id":      entry.ID.String(),
	})
}

func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid cart entry id")
		return
	}

	if err := h.cartService.Remove(r.Context(), id); err != nil {
		serviceError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, map[string]bool{"success": true})
}
