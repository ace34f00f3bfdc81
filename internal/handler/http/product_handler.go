package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/farhan-shop/shop-api/internal/product"
)

type ProductHandler struct {
	service product.Service
}

func NewProductHandler(service product.Service) *ProductHandler {
	return &ProductHandler{service: service}
}

func (h *ProductHandler) RegisterRoutes(router chi.Router) {
	router.Get("/products", h.handleListProducts)
	router.Get("/products/{id}", h.handleGetProductByID)
}

func (h *ProductHandler) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list products via service")
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}

	respondWithJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) handleGetProductByID(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")

	p, err := h.service.GetByID(r.Context(), productID)
	if err != nil {
		var clientMessage string
		if errors.Is(err, product.ErrNotFound) {
			clientMessage = "Product not found"
		} else {
			log.Error().Err(err).Str("product_id", productID).Msg("Failed to get product via service")
			clientMessage = "Failed to fetch product"
		}

		respondWithError(w, mapErrorToStatusCode(err), clientMessage)
		return
	}

	respondWithJSON(w, http.StatusOK, p)
}
