package server

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/siteforge/apiserver/config"
	"github.com/siteforge/apiserver/internal/handlers"
	"github.com/siteforge/apiserver/internal/logging"
	"github.com/siteforge/apiserver/internal/schema"
	"github.com/siteforge/apiserver/internal/services"
	"github.com/siteforge/apiserver/internal/store"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	closer     io.Closer
}

// New constructs a Server with basic middleware and defaults.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	log := logging.NewSlogLogger(slog.Default())

	users, siteConfigs, closer, err := openCollections(cfg.Store)
	if err != nil {
		return nil, err
	}

	if err := schema.EnsureFile(cfg.Store.SchemaPath); err != nil {
		if closer != nil {
			_ = closer.Close()
		}
		return nil, err
	}
	gate := schema.NewGate(cfg.Store.SchemaPath)

	userRepo := store.NewUserRepository(users)
	siteConfigRepo := store.NewSiteConfigRepository(siteConfigs)

	userService := services.NewUserService(userRepo, cfg.BcryptCost)
	siteConfigService := services.NewSiteConfigService(siteConfigRepo, gate)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)
	// Development posture: all origins and methods allowed.
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		MaxAge:         300,
	}))
	router.Get("/healthz", handlers.Healthz)
	router.Route("/api", func(r chi.Router) {
		handlers.AuthRouter(r, userService, log)
		handlers.SiteConfigRouter(r, siteConfigService, log)
	})

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		closer:     closer,
	}, nil
}

// openCollections builds the users and site-config record collections
// for the configured backend. The returned closer is nil for the
// file backend.
func openCollections(cfg config.StoreConfig) (store.RecordCollection, store.RecordCollection, io.Closer, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
			return nil, nil, nil, fmt.Errorf("create data dir: %w", err)
		}
		db, err := store.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, nil, err
		}
		users, err := db.Collection("users")
		if err != nil {
			_ = db.Close()
			return nil, nil, nil, err
		}
		siteConfigs, err := db.Collection("site_configs")
		if err != nil {
			_ = db.Close()
			return nil, nil, nil, err
		}
		return users, siteConfigs, db, nil
	case config.BackendFile, "":
		users := store.NewFileCollection(filepath.Join(cfg.DataDir, "users.json"))
		siteConfigs := store.NewFileCollection(filepath.Join(cfg.DataDir, "site-configs.json"))
		return users, siteConfigs, nil, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown() error {
	if s.closer != nil {
		_ = s.closer.Close()
	}
	return s.httpServer.Close()
}
