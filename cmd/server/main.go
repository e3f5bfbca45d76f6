package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/config"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/handlers"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/identity"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/middleware"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/repository"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/service"
	"github.com/Lixing-Zhang/kart-challenge/storefront/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-faster/errors"
	"google.golang.org/api/option"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting storefront api server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"log_level", cfg.LogLevel,
		"dotenv", cfg.DotEnvLoaded,
	)

	ctx := context.Background()

	// Load the product catalog
	products, err := loadCatalog(ctx, cfg.Catalog)
	if err != nil {
		log.Error("failed to load catalog", "source", cfg.Catalog.Source, "error", err)
		os.Exit(1)
	}

	productRepo, err := repository.NewInMemoryProductRepository(products)
	if err != nil {
		log.Error("invalid catalog", "source", cfg.Catalog.Source, "error", err)
		os.Exit(1)
	}
	log.Info("catalog loaded", "source", cfg.Catalog.Source, "products", len(products))

	cartRepo := repository.NewInMemoryCartRepository()

	// Initialize services
	productService := service.NewProductService(productRepo)
	cartService := service.NewCartService(cartRepo, productRepo, cfg.Cart.TaxRate, log)
	orderService := service.NewOrderService(cartRepo, cfg.Cart.TaxRate, log)

	// Initialize authentication
	verifier, err := newTokenVerifier(ctx, cfg.Auth)
	if err != nil {
		log.Error("failed to initialize firebase auth", "error", err)
		os.Exit(1)
	}
	if verifier == nil {
		log.Warn("FIREBASE_PROJECT_ID not set, checkout does not require sign-in")
	}

	provider, err := newIdentityProvider(ctx, cfg.Auth)
	if err != nil {
		log.Error("failed to initialize identity provider", "error", err)
		os.Exit(1)
	}
	if _, ok := provider.(identity.Unconfigured); ok {
		log.Warn("IDENTITY_API_KEY not set, sign-in and sign-up are disabled")
	}

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(log, cfg.Catalog.Source, len(products))
	productHandler := handlers.NewProductHandler(productService, log)
	cartHandler := handlers.NewCartHandler(cartService, log)
	orderHandler := handlers.NewOrderHandler(orderService, log)
	authHandler := handlers.NewAuthHandler(provider, log)

	// Create router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Register health check endpoint
	r.Get("/health", healthHandler.ServeHTTP)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Product endpoints
		r.Get("/product", productHandler.ListProducts)
		r.Get("/product/{productId}", productHandler.GetProduct)
		r.Get("/product/{productId}/related", productHandler.RelatedProducts)
		r.Get("/filters", productHandler.GetFilters)

		// Cart endpoints
		r.Post("/cart", cartHandler.CreateCart)
		r.Route("/cart/{cartId}", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.DeleteCart)
			r.Post("/items", cartHandler.AddItem)
			r.Delete("/items", cartHandler.ClearCart)
			r.Put("/items/{index}", cartHandler.UpdateQuantity)
			r.Delete("/items/{index}", cartHandler.RemoveItem)

			// Checkout is authenticated when firebase is configured
			r.Group(func(r chi.Router) {
				if verifier != nil {
					r.Use(middleware.RequireUser(verifier, log))
				}
				r.Post("/checkout", orderHandler.Checkout)
			})
		})

		// Auth endpoints
		r.Post("/auth/signin", authHandler.SignIn)
		r.Post("/auth/signup", authHandler.SignUp)
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...", "open_carts", cartRepo.Count())

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

// loadCatalog reads the products from the configured source
func loadCatalog(ctx context.Context, cfg config.CatalogConfig) ([]models.Product, error) {
	switch cfg.Source {
	case config.CatalogFile:
		return repository.LoadProductsFile(cfg.File)
	case config.CatalogPostgres:
		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		return repository.LoadProductsPostgres(ctx, cfg.DatabaseURL)
	case config.CatalogURL:
		return repository.LoadProductsURLs(ctx, repository.NewFeedClient(), cfg.URLs)
	default:
		return repository.SeedProducts(), nil
	}
}

// newTokenVerifier returns nil when no firebase project is configured
func newTokenVerifier(ctx context.Context, cfg config.AuthConfig) (middleware.TokenVerifier, error) {
	if cfg.FirebaseProjectID == "" {
		return nil, nil
	}

	var opts []option.ClientOption
	if cfg.FirebaseCredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.FirebaseCredentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirebaseProjectID}, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "firebase app")
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "firebase auth client")
	}
	return client, nil
}

func newIdentityProvider(ctx context.Context, cfg config.AuthConfig) (identity.Provider, error) {
	if cfg.IdentityAPIKey == "" {
		return identity.Unconfigured{}, nil
	}

	provider, err := identity.NewToolkitProvider(ctx, cfg.IdentityAPIKey)
	if err != nil {
		return nil, err
	}
	return provider, nil
}
