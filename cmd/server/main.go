// Command server runs the relayout keyboard layout conversion service.
//
// Configuration is layered: built-in defaults, a YAML config file
// (RELAYOUT_CONFIG, ./config.yaml, or /etc/relayout/config.yaml), and
// RELAYOUT_* environment variable overrides. See pkg/config for the
// full set of options. RELAYOUT_LOG_LEVEL and RELAYOUT_DEBUG control
// log verbosity and per-category debug output.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/relayout-dev/relayout/pkg/auth"
	"github.com/relayout-dev/relayout/pkg/auth/apikey"
	"github.com/relayout-dev/relayout/pkg/auth/jwt"
	"github.com/relayout-dev/relayout/pkg/config"
	"github.com/relayout-dev/relayout/pkg/debug"
	"github.com/relayout-dev/relayout/pkg/engine"
	"github.com/relayout-dev/relayout/pkg/layout"
	"github.com/relayout-dev/relayout/pkg/observability"
	"github.com/relayout-dev/relayout/pkg/storage/memory"
	"github.com/relayout-dev/relayout/pkg/storage/postgres"
	"github.com/relayout-dev/relayout/pkg/transport"
	transporthttp "github.com/relayout-dev/relayout/pkg/transport/http"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	debug.Setup()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Build the keymap tables. An incomplete table set is a programming
	// error in the seed data and the server must not start.
	table, err := layout.Build()
	if err != nil {
		return fmt.Errorf("building keymap tables: %w", err)
	}

	transcoder := layout.NewTranscoder(table,
		layout.WithMissHandler(func(from, to layout.Layout) {
			observability.TableMissesTotal.WithLabelValues(from.String(), to.String()).Inc()
		}),
	)

	store, err := buildStore(cfg)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	eng, err := engine.New(transcoder, store, engine.Config{
		StoreText: cfg.Convert.StoreText,
	})
	if err != nil {
		return fmt.Errorf("creating engine: %w", err)
	}

	opts := []transporthttp.ServerOption{
		transporthttp.WithAddr(fmt.Sprintf(":%d", cfg.Server.Port)),
		transporthttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout),
		transporthttp.WithShutdownTimeout(cfg.Server.ShutdownTimeout),
		transporthttp.WithMaxTextSize(cfg.Convert.MaxTextSize),
	}

	if cfg.Observability.Metrics.Enabled {
		opts = append(opts,
			transporthttp.WithRoute(cfg.Observability.Metrics.Path, promhttp.Handler()),
			transporthttp.WithHTTPMiddleware(observability.MetricsMiddleware),
		)
	}

	authMW, err := buildAuthMiddleware(cfg)
	if err != nil {
		return err
	}
	if authMW != nil {
		opts = append(opts, transporthttp.WithHTTPMiddleware(authMW))
	}

	srv := transporthttp.NewServer(eng, store, opts...)

	slog.Info("relayout starting",
		"port", cfg.Server.Port,
		"storage", cfg.Storage.Type,
		"auth", cfg.Auth.Type,
		"layouts", len(layout.Layouts()),
	)

	return srv.ListenAndServe()
}

// buildStore creates the conversion history store, or nil when history
// is disabled.
func buildStore(cfg *config.Config) (transport.ConversionStore, error) {
	switch cfg.Storage.Type {
	case "memory":
		slog.Info("history storage enabled", "type", "memory", "max_size", cfg.Storage.MaxSize)
		return memory.New(cfg.Storage.MaxSize), nil
	case "postgres":
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		store, err := postgres.New(ctx, postgres.Config{
			DSN:            cfg.Storage.Postgres.DSN,
			MaxConns:       cfg.Storage.Postgres.MaxConns,
			MigrateOnStart: cfg.Storage.Postgres.MigrateOnStart,
		})
		if err != nil {
			return nil, fmt.Errorf("connecting to postgres: %w", err)
		}
		slog.Info("history storage enabled", "type", "postgres")
		return store, nil
	default:
		slog.Info("history storage disabled")
		return nil, nil
	}
}

// buildAuthMiddleware assembles the authentication chain from config, or
// returns nil when auth is disabled.
func buildAuthMiddleware(cfg *config.Config) (func(http.Handler) http.Handler, error) {
	if cfg.Auth.Type == "none" {
		return nil, nil
	}

	var authenticators []auth.Authenticator

	switch cfg.Auth.Type {
	case "apikey":
		entries := make([]apikey.RawKeyEntry, 0, len(cfg.Auth.APIKeys))
		for _, k := range cfg.Auth.APIKeys {
			entries = append(entries, apikey.RawKeyEntry{
				Key: k.Key,
				Identity: auth.Identity{
					Subject:     k.Subject,
					ServiceTier: k.ServiceTier,
					Metadata:    map[string]string{"tenant_id": k.TenantID},
				},
			})
		}
		authenticators = append(authenticators, apikey.New(entries))
	case "jwt":
		authn, err := jwt.New(jwt.Config{
			Secret:   cfg.Auth.JWT.Secret,
			Issuer:   cfg.Auth.JWT.Issuer,
			Audience: cfg.Auth.JWT.Audience,
		})
		if err != nil {
			return nil, fmt.Errorf("creating JWT authenticator: %w", err)
		}
		authenticators = append(authenticators, authn)
	}

	chain := &auth.Chain{
		Authenticators:  authenticators,
		DefaultDecision: auth.No,
	}

	var limiter auth.RateLimiter
	if cfg.Auth.RateLimit.Enabled {
		tiers := make(map[string]auth.TierConfig, len(cfg.Auth.RateLimit.Tiers))
		for name, rpm := range cfg.Auth.RateLimit.Tiers {
			tiers[name] = auth.TierConfig{RequestsPerMinute: rpm}
		}
		limiter = auth.NewInProcessLimiter(tiers, cfg.Auth.RateLimit.DefaultRPM)
	}

	bypass := append([]string{}, auth.DefaultBypassEndpoints...)
	if cfg.Observability.Metrics.Enabled && cfg.Observability.Metrics.Path != "/metrics" {
		bypass = append(bypass, cfg.Observability.Metrics.Path)
	}

	return auth.Middleware(chain, limiter, bypass), nil
}
