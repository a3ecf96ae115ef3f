package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/janisto/customer-form/internal/http/health"
	"github.com/janisto/customer-form/internal/http/v1/routes"
	"github.com/janisto/customer-form/internal/platform/auth"
	"github.com/janisto/customer-form/internal/platform/config"
	"github.com/janisto/customer-form/internal/platform/firebase"
	applog "github.com/janisto/customer-form/internal/platform/logging"
	"github.com/janisto/customer-form/internal/platform/metrics"
	appmiddleware "github.com/janisto/customer-form/internal/platform/middleware"
	"github.com/janisto/customer-form/internal/platform/respond"
	customersvc "github.com/janisto/customer-form/internal/service/customer"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

const (
	apiPrefix       = "/v1"
	docsPath        = "/api-docs"
	shutdownTimeout = 10 * time.Second
)

func main() {
	defer func() { _ = applog.Sync() }()
	if err := applog.Err(); err != nil {
		applog.LogError(context.Background(), "logger init error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		applog.LogError(ctx, "invalid configuration", err)
		os.Exit(1)
	}
	if err := run(ctx, cfg); err != nil {
		applog.LogError(ctx, "server failed", err)
		os.Exit(1)
	}
	applog.LogInfo(context.Background(), "server exited")
}

type dependencies struct {
	verifier auth.Verifier
	forms    *customersvc.MemoryStore
	registry *prometheus.Registry
}

func run(ctx context.Context, cfg *config.Config) error {
	applog.SetProjectID(cfg.Firebase.ProjectID)

	authClient, err := firebase.NewAuthClient(ctx, firebase.Config{
		ProjectID:                    cfg.Firebase.ProjectID,
		GoogleApplicationCredentials: cfg.Firebase.GoogleApplicationCredentials,
	})
	if err != nil {
		return err
	}

	registry := newRegistry()
	forms := customersvc.NewMemoryStore(customersvc.StoreOptions{
		Form:             customersvc.Options{EmailDebounce: cfg.EmailDebounce},
		MaxFormsPerOwner: cfg.MaxFormsPerOwner,
		Metrics:          metrics.New(registry),
	})
	defer forms.Close()

	srv := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: newRouter(dependencies{
			verifier: auth.NewFirebaseVerifier(authClient),
			forms:    forms,
			registry: registry,
		}),
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    64 << 10,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		applog.LogInfo(gctx, "server listening",
			zap.String("addr", srv.Addr),
			zap.Duration("emailDebounce", cfg.EmailDebounce),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		applog.LogInfo(context.Background(), "shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func newRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry
}

func newRouter(deps dependencies) chi.Router {
	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())

	router.Use(
		appmiddleware.Security(apiPrefix+docsPath, apiPrefix+"/openapi", apiPrefix+"/schemas"),
		appmiddleware.Vary(),
		appmiddleware.CORS(),
		appmiddleware.RequestID(),
		// RealIP trusts X-Forwarded-For; only deploy behind a trusted proxy.
		chimiddleware.RealIP,
		chimiddleware.RequestSize(1<<20),
		applog.RequestLogger(),
		applog.AccessLogger(),
		respond.Recoverer(),
	)

	router.Get("/health", health.Handler(deps.forms))
	router.Handle("/metrics", promhttp.HandlerFor(deps.registry, promhttp.HandlerOpts{Registry: deps.registry}))

	router.Route(apiPrefix, func(r chi.Router) {
		cfg := huma.DefaultConfig("Customer Form API", Version)
		cfg.DocsPath = docsPath
		cfg.Servers = []*huma.Server{{URL: apiPrefix}}
		cfg.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
			"bearerAuth": {Type: "http", Scheme: "bearer", BearerFormat: "JWT"},
		}
		api := humachi.New(r, cfg)
		advertiseCBOR(api)
		routes.Register(api, deps.verifier, deps.forms)
	})
	return router
}

// advertiseCBOR documents application/cbor next to every JSON body.
func advertiseCBOR(api huma.API) {
	api.OpenAPI().OnAddOperation = append(api.OpenAPI().OnAddOperation,
		func(_ *huma.OpenAPI, op *huma.Operation) {
			if op.RequestBody != nil && op.RequestBody.Content != nil {
				if c, ok := op.RequestBody.Content["application/json"]; ok {
					op.RequestBody.Content["application/cbor"] = c
				}
			}
			for _, resp := range op.Responses {
				if resp.Content == nil {
					continue
				}
				if c, ok := resp.Content["application/json"]; ok {
					resp.Content["application/cbor"] = c
				}
			}
		},
	)
}
