package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/farhan-shop/shop-api/internal/auth"
	"github.com/farhan-shop/shop-api/internal/cart"
	"github.com/farhan-shop/shop-api/internal/order"
	"github.com/farhan-shop/shop-api/internal/product"
	"github.com/farhan-shop/shop-api/internal/user"
)

type ValidationErrorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details"`
}

// respondWithError отправляет JSON ошибку
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

// respondWithJSON отправляет JSON ответ
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Error().Interface("payload", payload).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		log.Error().Err(err).Msg("Failed to write JSON response")
	}
}

func respondWithValidationError(w http.ResponseWriter, err error) bool {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		respondWithJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:   "Validation failed",
			Details: formatValidationErrors(validationErrors),
		})
		return true
	}
	log.Error().Err(err).Type("validation_error_type", err).Msg("Unexpected error type during validation")
	respondWithError(w, http.StatusInternalServerError, "Internal validation error")
	return false
}

func formatValidationErrors(validationErrors validator.ValidationErrors) map[string]string {
	details := make(map[string]string, len(validationErrors))
	for _, fieldError := range validationErrors {
		switch fieldError.Tag() {
		case "required":
			details[fieldError.Field()] = "is required"
		case "email":
			details[fieldError.Field()] = "must be a valid email address"
		case "min":
			details[fieldError.Field()] = fmt.Sprintf("must be at least %s", fieldError.Param())
		default:
			details[fieldError.Field()] = fmt.Sprintf("failed validation on '%s'", fieldError.Tag())
		}
	}
	return details
}

func mapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, user.ErrUserExists):
		return http.StatusConflict
	case errors.Is(err, user.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, auth.ErrTokenMissing),
		errors.Is(err, auth.ErrTokenExpired),
		errors.Is(err, auth.ErrTokenInvalid):
		return http.StatusUnauthorized
	case errors.Is(err, product.ErrNotFound),
		errors.Is(err, cart.ErrProductNotFound),
		errors.Is(err, cart.ErrInsufficientStock):
		return http.StatusNotFound
	case errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, order.ErrEmptyOrder):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
