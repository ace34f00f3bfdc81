package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/farhan-shop/shop-api/internal/auth"
	"github.com/farhan-shop/shop-api/internal/cart"
	"github.com/farhan-shop/shop-api/internal/config"
	"github.com/farhan-shop/shop-api/internal/db"
	shopHttp "github.com/farhan-shop/shop-api/internal/handler/http"
	"github.com/farhan-shop/shop-api/internal/order"
	"github.com/farhan-shop/shop-api/internal/product"
	"github.com/farhan-shop/shop-api/internal/user"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	log.Logger = log.With().Str("service", "shop-api").Logger()

	log.Info().Msg("Shop API starting...")

	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	dbConn, err := db.New(context.Background(), cfg.Postgres)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer dbConn.Close()

	if err := dbConn.RunMigrations(); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply migrations")
	}

	hasher, err := auth.NewHasher(cfg.Auth.PasswordHash)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to configure password hasher")
	}
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	userRepository := user.NewRepository(dbConn.Pool)
	userService := user.NewService(userRepository, hasher)

	productRepository := product.NewRepository(dbConn.Pool)
	productService := product.NewService(productRepository)

	cartRepository := cart.NewRepository(dbConn.Pool)
	cartService := cart.NewService(cartRepository, productRepository)

	orderRepository := order.NewRepository(dbConn.Pool)
	orderService := order.NewService(orderRepository)

	userHandler := shopHttp.NewUserHandler(userService, tokens)
	productHandler := shopHttp.NewProductHandler(productService)
	cartHandler := shopHttp.NewCartHandler(cartService)
	orderHandler := shopHttp.NewOrderHandler(orderService)

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("Welcome to the Farhan Shop API!"))
	})

	userHandler.RegisterRoutes(router)
	productHandler.RegisterRoutes(router)

	router.Group(func(r chi.Router) {
		r.Use(shopHttp.Authenticator(tokens))
		cartHandler.RegisterRoutes(r)
		orderHandler.RegisterRoutes(r)
	})

	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.App.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)
	<-stopCh

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server shutdown failed")
	}

	log.Info().Msg("Shop API stopped gracefully.")
}
