package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/farhan-shop/shop-api/internal/cart"
)

type AddToCartRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

type UpdateCartQuantityRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  *int   `json:"quantity" validate:"required,min=0"`
}

type RemoveFromCartRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

type CartHandler struct {
	service  cart.Service
	validate *validator.Validate
}

func NewCartHandler(service cart.Service) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes expects a router that already runs the Authenticator
// middleware.
func (h *CartHandler) RegisterRoutes(router chi.Router) {
	router.Post("/add_to_cart", h.handleAddToCart)
	router.Get("/cart", h.handleGetCart)
	router.Post("/update_cart_quantity", h.handleUpdateCartQuantity)
	router.Post("/remove_from_cart", h.handleRemoveFromCart)
}

func (h *CartHandler) handleAddToCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	var requestPayload AddToCartRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&requestPayload); err != nil {
		log.Warn().Err(err).Msg("Failed to decode add_to_cart request body")
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(requestPayload); err != nil {
		respondWithValidationError(w, err)
		return
	}

	created, err := h.service.AddItem(r.Context(), userID, requestPayload.ProductID, requestPayload.Quantity)
	if err != nil {
		var clientMessage string
		switch {
		case errors.Is(err, cart.ErrProductNotFound):
			clientMessage = "Product not found"
		case errors.Is(err, cart.ErrInsufficientStock):
			clientMessage = "Insufficient stock"
		case errors.Is(err, cart.ErrInvalidQuantity):
			clientMessage = "Invalid quantity"
		default:
			log.Error().Err(err).Msg("Failed to add item to cart via service")
			clientMessage = "Failed to add item to cart"
		}

		respondWithError(w, mapErrorToStatusCode(err), clientMessage)
		return
	}

	if created {
		respondWithJSON(w, http.StatusCreated, map[string]string{"message": "Item added to cart"})
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Cart quantity updated"})
}

func (h *CartHandler) handleGetCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	items, err := h.service.ListItems(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Stringer("user_id", userID).Msg("Failed to list cart items via service")
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch cart items")
		return
	}

	respondWithJSON(w, http.StatusOK, items)
}

func (h *CartHandler) handleUpdateCartQuantity(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	var requestPayload UpdateCartQuantityRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&requestPayload); err != nil {
		log.Warn().Err(err).Msg("Failed to decode update_cart_quantity request body")
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(requestPayload); err != nil {
		respondWithValidationError(w, err)
		return
	}

	err := h.service.SetQuantity(r.Context(), userID, requestPayload.ProductID, *requestPayload.Quantity)
	if err != nil {
		var clientMessage string
		if errors.Is(err, cart.ErrInvalidQuantity) {
			clientMessage = "Invalid quantity"
		} else {
			log.Error().Err(err).Msg("Failed to update cart quantity via service")
			clientMessage = "Failed to update cart quantity"
		}

		respondWithError(w, mapErrorToStatusCode(err), clientMessage)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Cart quantity updated"})
}

func (h *CartHandler) handleRemoveFromCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	var requestPayload RemoveFromCartRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&requestPayload); err != nil {
		log.Warn().Err(err).Msg("Failed to decode remove_from_cart request body")
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(requestPayload); err != nil {
		respondWithValidationError(w, err)
		return
	}

	if err := h.service.RemoveItem(r.Context(), userID, requestPayload.ProductID); err != nil {
		log.Error().Err(err).Msg("Failed to remove cart item via service")
		respondWithError(w, http.StatusInternalServerError, "Failed to remove item from cart")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Item removed from cart"})
}
