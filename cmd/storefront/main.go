package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/insuvit/storefront/internal/api/handlers"
	"github.com/insuvit/storefront/internal/api/middleware"
	"github.com/insuvit/storefront/internal/config"
	"github.com/insuvit/storefront/internal/health"
	"github.com/insuvit/storefront/internal/metrics"
	service "github.com/insuvit/storefront/internal/services"
	"github.com/insuvit/storefront/internal/store"
	"github.com/insuvit/storefront/internal/telemetry"
	"github.com/insuvit/storefront/pkg/sendgrid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Tracing setup
	shutdownTracing, err := telemetry.SetupTracing(context.Background(), cfg)
	if err != nil {
		slog.Error("Error setting up tracing", "error", err.Error())
		os.Exit(1)
	}

	// Store setup
	kv, err := newStore(cfg)
	if err != nil {
		slog.Error("Error initializing the store backend", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := kv.Close(); err != nil {
			slog.Error("Error closing store connection", slog.String("error", err.Error()))
		}
	}()

	emailService := sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)

	cartService := service.NewCartService(kv)
	wishlistService := service.NewWishlistService(kv)
	sessionService := service.NewSessionService(kv, emailService, cfg)
	checkoutService := service.NewCheckoutService(cartService, sessionService, cfg)

	cartHandler := handlers.NewCartHandler(cartService)
	wishlistHandler := handlers.NewWishlistHandler(wishlistService)
	userHandler := handlers.NewUserHandler(sessionService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	newsletterHandler := handlers.NewNewsletterHandler()
	sessionMiddleware := middleware.NewSessionMiddleware([]byte(cfg.Security.JWTKey))

	healthHandler, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("Error creating health handler", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("storage initialized",
		slog.String("env", cfg.Env),
		slog.String("backend", cfg.Storage.Backend))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("POST /api/v1/users/register", userHandler.Register())
	routerMux.HandleFunc("POST /api/v1/users/login", userHandler.Login())
	routerMux.HandleFunc("POST /api/v1/users/logout", userHandler.Logout())
	routerMux.HandleFunc("GET /api/v1/users/profile", sessionMiddleware.RequireAuth(userHandler.Profile()))
	routerMux.HandleFunc("PUT /api/v1/users/profile", sessionMiddleware.RequireAuth(userHandler.UpdateProfile()))
	routerMux.HandleFunc("POST /api/v1/users/password/forgot", userHandler.ForgotPassword())
	routerMux.HandleFunc("POST /api/v1/users/password/strength", userHandler.PasswordStrength())
	routerMux.HandleFunc("GET /api/v1/carts", cartHandler.GetCart())
	routerMux.HandleFunc("POST /api/v1/carts/items", cartHandler.AddItem())
	routerMux.HandleFunc("PATCH /api/v1/carts/items", cartHandler.UpdateQuantity())
	routerMux.HandleFunc("DELETE /api/v1/carts/items/{id}", cartHandler.RemoveItem())
	routerMux.HandleFunc("DELETE /api/v1/carts", cartHandler.ClearCart())
	routerMux.HandleFunc("GET /api/v1/wishlist", wishlistHandler.List())
	routerMux.HandleFunc("POST /api/v1/wishlist/toggle", wishlistHandler.Toggle())
	routerMux.HandleFunc("POST /api/v1/checkout", checkoutHandler.Submit())
	routerMux.HandleFunc("GET /api/v1/orders", sessionMiddleware.RequireAuth(checkoutHandler.OrderHistory()))
	routerMux.HandleFunc("POST /api/v1/newsletter", newsletterHandler.Subscribe())
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /healthz", healthHandler.Handler())
	routerMux.Handle("GET /readyz", healthHandler.Handler())

	// Middleware chaining. Metrics sits innermost so it observes the same
	// request the mux annotates with path values; Resolve derives a new
	// request when it attaches the owner context.
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = sessionMiddleware.Resolve(handler)
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, "storefront")

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("Server shut down gracefully. All connections closed.")
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("Tracer shutdown encountered an issue", slog.String("error", err.Error()))
	}
}

func newStore(cfg *config.Config) (store.Store, error) {

	switch cfg.Storage.Backend {
	case "postgres":
		return store.NewPostgresStore(cfg)
	case "memory":
		return store.NewMemoryStore(), nil
	default:
		client, err := store.NewRedisClient(cfg)
		if err != nil {
			return nil, err
		}

		return store.NewRedisStore(client), nil
	}
}
