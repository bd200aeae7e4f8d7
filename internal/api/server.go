// Package api assembles the storefront HTTP server: routes, metrics, API docs
// and middleware.
package api

import (
	_ "embed"
	"fmt"
	"net/http"
	"time"

	"domainshop/internal/api/handler/v1handler"
	"domainshop/internal/config"
	"domainshop/pkg/controller"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggest/swgui/v5emb"
)

//go:embed specs/openapi.yaml
var openAPISpec []byte

//go:embed static/style.css
var styleSheet []byte

const timeoutBody = `{"error":"request timed out"}`

// Options holds configuration for the HTTP server and its dependencies.
// It is typically created from a config.Config via NewOptions.
type Options struct {
	// SecHandlerOptions enables bearer authentication on user lookups when set.
	SecHandlerOptions *v1handler.SecHandlerOptions

	// Addr is the TCP address the server listens on, e.g. ":8080".
	Addr              string
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	// RequestTimeout bounds the handling of one request via http.TimeoutHandler.
	RequestTimeout time.Duration
	MaxHeaderBytes int
	// MetricsPath is the HTTP path at which Prometheus metrics are served.
	MetricsPath string
	// AllowedHeaders are accepted by CORS in addition to the defaults.
	AllowedHeaders []string
}

// NewOptions maps the HTTP settings of cfg to Options.
func NewOptions(cfg *config.Config) Options {
	return Options{
		SecHandlerOptions: v1handler.NewSecHandlerOptions(cfg),

		Addr:              cfg.HTTP.Addr,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		RequestTimeout:    cfg.HTTP.RequestTimeout,
		MaxHeaderBytes:    cfg.HTTP.MaxHeaderBytes,
		MetricsPath:       cfg.HTTP.MetricsPath,
		AllowedHeaders:    cfg.HTTP.AllowedHeaders,
	}
}

type Deps struct {
	v1handler.Deps

	// Gatherer backs the metrics endpoint. Nil uses the default registry.
	Gatherer prometheus.Gatherer
}

// NewServer returns a configured *http.Server serving the storefront routes,
// Prometheus metrics, the OpenAPI document with a Swagger UI, and pprof.
func NewServer(deps Deps, opts Options) (*http.Server, error) {
	secHandler, err := v1handler.NewSecHandler(opts.SecHandlerOptions)
	if err != nil {
		return nil, fmt.Errorf("could not create sec handler: %w", err)
	}

	r := chi.NewRouter()
	r.Use(controller.WithLogger)
	r.Use(middleware.Recoverer)
	r.Use(controller.WithCORS(allowedHeaders(opts.AllowedHeaders)))

	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	metricsPath := opts.MetricsPath
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	r.Method(http.MethodGet, metricsPath, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Get("/specs/openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(openAPISpec)
	})
	r.Handle("/docs/*", v5emb.New("Domain Shop", "/specs/openapi.yaml", "/docs/"))
	r.Get("/style.css", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/css; charset=utf-8")
		_, _ = w.Write(styleSheet)
	})

	r.Mount("/debug/pprof", controller.PprofMux())

	v1handler.New(deps.Deps).Register(r, secHandler)

	var handler http.Handler = r
	if opts.RequestTimeout > 0 {
		handler = http.TimeoutHandler(r, opts.RequestTimeout, timeoutBody)
	}

	return &http.Server{
		Addr:              opts.Addr,
		Handler:           handler,
		ReadTimeout:       opts.ReadTimeout,
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
		WriteTimeout:      opts.WriteTimeout,
		IdleTimeout:       opts.IdleTimeout,
		MaxHeaderBytes:    opts.MaxHeaderBytes,
	}, nil
}

// allowedHeaders merges extra into the default CORS headers, dropping
// duplicates.
func allowedHeaders(extra []string) []string {
	all := append(append([]string{}, controller.DefaultAllowedHeaders...), extra...)

	out := make([]string, 0, len(all))
	seen := map[string]bool{}
	for _, h := range all {
		c := http.CanonicalHeaderKey(h)
		if h == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, h)
	}

	return out
}
