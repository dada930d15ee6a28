// Package app contains the application setup for the shop backend.
package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/FiatTy/Projectjannong/internal/cart"
	cartrest "github.com/FiatTy/Projectjannong/internal/cart/rest"
	"github.com/FiatTy/Projectjannong/internal/catalog"
	catalogrest "github.com/FiatTy/Projectjannong/internal/catalog/rest"
	"github.com/FiatTy/Projectjannong/internal/checkout"
	checkoutrest "github.com/FiatTy/Projectjannong/internal/checkout/rest"
	"github.com/FiatTy/Projectjannong/internal/config"
	"github.com/FiatTy/Projectjannong/internal/docstore"
	"github.com/FiatTy/Projectjannong/pkg/server"
	"github.com/FiatTy/Projectjannong/pkg/web"
	"github.com/go-chi/chi/v5"
)

// Dependencies holds the wired services shared by the transports.
type Dependencies struct {
	CartService     cart.CartService
	CheckoutService checkout.CheckoutService
	CatalogService  catalog.CatalogService
	AdminKey        string
	Logger          *slog.Logger
}

// SetupDependencies creates the document stores and domain services.
// The three store directories are created here, once, at startup.
func SetupDependencies(cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	cartStore, err := docstore.NewFileStore(cfg.Store.CartDir)
	if err != nil {
		return nil, fmt.Errorf("cart store: %w", err)
	}
	checkoutStore, err := docstore.NewFileStore(cfg.Store.CheckoutDir)
	if err != nil {
		return nil, fmt.Errorf("checkout store: %w", err)
	}
	catalogStore, err := docstore.NewFileStore(cfg.Store.CatalogDir)
	if err != nil {
		return nil, fmt.Errorf("catalog store: %w", err)
	}

	return &Dependencies{
		CartService:     cart.NewService(cartStore),
		CheckoutService: checkout.NewService(checkoutStore, logger),
		CatalogService:  catalog.NewService(catalogStore),
		AdminKey:        cfg.Admin.Key,
		Logger:          logger,
	}, nil
}

// SetupHttpHandler initializes the router and routes for the shop
// backend. Handler tests use it to build the full middleware chain.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps)
	return mux
}

// wireRoutes registers every HTTP route of the service.
func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	admin := web.AdminOnly(deps.AdminKey, deps.Logger)

	cartrest.NewHandler(deps.CartService, deps.Logger).RegisterRoutes(mux)
	checkoutrest.NewHandler(deps.CheckoutService, deps.Logger).RegisterRoutes(mux, admin)
	catalogrest.NewHandler(deps.CatalogService, deps.Logger).RegisterRoutes(mux, admin)

	mux.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

// SetupHttpServer creates and configures the HTTP server for the shop backend.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	mux := SetupHttpHandler(deps)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, mux)
}
