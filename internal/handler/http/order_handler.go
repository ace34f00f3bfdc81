package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/farhan-shop/shop-api/internal/order"
)

type PlaceOrderItem struct {
	ProductID string  `json:"product_id" validate:"required"`
	Quantity  int     `json:"quantity" validate:"required,min=1"`
	Price     float64 `json:"price" validate:"required"`
}

type PlaceOrderRequest struct {
	FullName    string           `json:"full_name" validate:"required"`
	Address     string           `json:"address" validate:"required"`
	City        string           `json:"city" validate:"required"`
	ZipCode     string           `json:"zip_code" validate:"required"`
	Phone       string           `json:"phone" validate:"required"`
	Email       string           `json:"email" validate:"required,email"`
	Items       []PlaceOrderItem `json:"items" validate:"required,min=1,dive"`
	TotalAmount float64          `json:"total_amount" validate:"required"`
}

type PlaceOrderResponse struct {
	Message string `json:"message"`
	OrderID int64  `json:"order_id"`
}

type OrderHandler struct {
	service  order.Service
	validate *validator.Validate
}

func NewOrderHandler(service order.Service) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes expects a router that already runs the Authenticator
// middleware.
func (h *OrderHandler) RegisterRoutes(router chi.Router) {
	router.Post("/place_order", h.handlePlaceOrder)
	router.Get("/orders", h.handleListOrders)
}

func (h *OrderHandler) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	var requestPayload PlaceOrderRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&requestPayload); err != nil {
		log.Warn().Err(err).Msg("Failed to decode place_order request body")
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(requestPayload); err != nil {
		respondWithValidationError(w, err)
		return
	}

	placement := &order.Placement{
		FullName:    requestPayload.FullName,
		Address:     requestPayload.Address,
		City:        requestPayload.City,
		ZipCode:     requestPayload.ZipCode,
		Phone:       requestPayload.Phone,
		Email:       requestPayload.Email,
		TotalAmount: requestPayload.TotalAmount,
	}
	for _, item := range requestPayload.Items {
		placement.Items = append(placement.Items, order.PlacementItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	orderID, err := h.service.Place(r.Context(), userID, placement)
	if err != nil {
		var clientMessage string
		if errors.Is(err, order.ErrEmptyOrder) {
			clientMessage = "Order has no items"
		} else {
			log.Error().Err(err).Stringer("user_id", userID).Msg("Failed to place order via service")
			clientMessage = "Failed to place order"
		}

		respondWithError(w, mapErrorToStatusCode(err), clientMessage)
		return
	}

	respondWithJSON(w, http.StatusCreated, PlaceOrderResponse{
		Message: "Order placed successfully",
		OrderID: orderID,
	})
}

func (h *OrderHandler) handleListOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	orders, err := h.service.ListByUser(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Stringer("user_id", userID).Msg("Failed to list orders via service")
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}

	respondWithJSON(w, http.StatusOK, orders)
}
