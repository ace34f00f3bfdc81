package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/farhan-shop/shop-api/internal/auth"
	"github.com/farhan-shop/shop-api/internal/user"
)

type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Message  string `json:"message"`
	Token    string `json:"token"`
	Username string `json:"username"`
}

type UserHandler struct {
	service  user.Service
	tokens   *auth.TokenManager
	validate *validator.Validate
}

func NewUserHandler(service user.Service, tokens *auth.TokenManager) *UserHandler {
	return &UserHandler{
		service:  service,
		tokens:   tokens,
		validate: validator.New(),
	}
}

func (h *UserHandler) RegisterRoutes(router chi.Router) {
	router.Post("/register", h.handleRegister)
	router.Post("/login", h.handleLogin)
}

func (h *UserHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var requestPayload RegisterRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&requestPayload); err != nil {
		log.Warn().Err(err).Msg("Failed to decode register request body")
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(requestPayload); err != nil {
		respondWithValidationError(w, err)
		return
	}

	_, err := h.service.Register(r.Context(), requestPayload.Username, requestPayload.Password, requestPayload.Email)
	if err != nil {
		log.Error().Err(err).Msg("Failed to register user via service")

		var clientMessage string
		if errors.Is(err, user.ErrUserExists) {
			clientMessage = "Username or email already registered"
		} else {
			clientMessage = "Failed to register user"
		}

		respondWithError(w, mapErrorToStatusCode(err), clientMessage)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]string{"message": "Registration successful"})
}

func (h *UserHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var requestPayload LoginRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&requestPayload); err != nil {
		log.Warn().Err(err).Msg("Failed to decode login request body")
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(requestPayload); err != nil {
		respondWithValidationError(w, err)
		return
	}

	u, err := h.service.Authenticate(r.Context(), requestPayload.Username, requestPayload.Password)
	if err != nil {
		var clientMessage string
		if errors.Is(err, user.ErrInvalidCredentials) {
			clientMessage = "Invalid username or password"
		} else {
			log.Error().Err(err).Msg("Failed to authenticate user via service")
			clientMessage = "Failed to log in"
		}

		respondWithError(w, mapErrorToStatusCode(err), clientMessage)
		return
	}

	token, err := h.tokens.Issue(u.ID, u.Username)
	if err != nil {
		log.Error().Err(err).Stringer("user_id", u.ID).Msg("Failed to issue token")
		respondWithError(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	respondWithJSON(w, http.StatusOK, LoginResponse{
		Message:  "Login successful",
		Token:    token,
		Username: u.Username,
	})
}
