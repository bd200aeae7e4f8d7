package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"domainshop/internal/account"
	"domainshop/internal/api"
	"domainshop/internal/api/handler/v1handler"
	"domainshop/internal/config"
	"domainshop/internal/purchase"
	"domainshop/internal/worker"
	"domainshop/pkg/domain"
	"domainshop/pkg/logger"
	"domainshop/pkg/metrics"
	"domainshop/pkg/payment/stripepay"
	"domainshop/pkg/registrar/opensrs"
	"domainshop/pkg/storage/postgres"
	"domainshop/pkg/webhook"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

func setupServer(ctx context.Context, cfg *config.Config, deps api.Deps) func(ctx context.Context) {
	server, err := api.NewServer(deps, api.NewOptions(cfg))
	if err != nil {
		logger.Fatal(ctx, "could not create webserver", zap.Error(err))
	}

	go func() {
		logger.Info(ctx, "starting webserver...", zap.String("addr", cfg.HTTP.Addr))
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start webserver", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping webserver...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop webserver", zap.Error(err))
		}
	}
}

func logIntegrations(ctx context.Context, cfg *config.Config) {
	logger.Info(ctx, "integrations",
		zap.String("registrarUser", cfg.Registrar.Username),
		logger.Masked("registrarKey", cfg.Registrar.APIKey),
		logger.Masked("stripeKey", cfg.Payment.SecretKey),
		logger.Masked("shopcoKey", cfg.Webhook.ShopcoKey),
		zap.Bool("purchaseWebhook", cfg.Webhook.PurchaseURL != ""),
		zap.Bool("referralWebhook", cfg.Webhook.ReferralURL != ""),
	)
	if cfg.Registrar.APIKey == "" {
		logger.Warn(ctx, "registrar API key is not set, availability checks will report domains as taken")
	}
	if cfg.Payment.SecretKey == "" {
		logger.Warn(ctx, "payment secret key is not set, purchases will fail")
	}
}

func newServices(cfg *config.Config, strg *postgres.PgSQL, dispatcher *worker.Dispatcher) (purchase.Service, account.Service) {
	httpClient := &http.Client{}

	registrarClient := opensrs.New(httpClient, opensrs.Options{
		Credentials: opensrs.Credentials{
			Username: cfg.Registrar.Username,
			APIKey:   cfg.Registrar.APIKey,
		},
		Endpoint: cfg.Registrar.Endpoint,
		Timeout:  cfg.Registrar.Timeout,
		Registrant: domain.Registrant{
			FirstName: cfg.Registrar.Owner.FirstName,
			LastName:  cfg.Registrar.Owner.LastName,
			Country:   cfg.Registrar.Owner.Country,
		},
		Metrics: metrics.NewOutbound(prometheus.DefaultRegisterer, "registrar"),
	})

	payments := stripepay.New(httpClient, stripepay.Options{
		SecretKey: cfg.Payment.SecretKey,
		APIURL:    cfg.Payment.APIURL,
		Timeout:   cfg.Payment.Timeout,
		Metrics:   metrics.NewOutbound(prometheus.DefaultRegisterer, "payment"),
	})

	return purchase.New(registrarClient, payments, dispatcher, purchase.NewOptions(cfg)),
		account.New(strg, payments, dispatcher)
}

func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts the storefront API server and webhook workers",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			logIntegrations(ctx, cfg)

			mp, err := metrics.NewMeterProvider(prometheus.DefaultRegisterer)
			if err != nil {
				logger.Fatal(ctx, "could not create meter provider", zap.Error(err))
			}
			otel.SetMeterProvider(mp)
			tp := metrics.NewTracerProvider(logger.Get(ctx))
			otel.SetTracerProvider(tp)

			strg, closeStrg := getPostgres(ctx, cfg)
			defer closeStrg()

			poster := webhook.New(&http.Client{}, cfg.Webhook.Timeout,
				metrics.NewOutbound(prometheus.DefaultRegisterer, "webhook"))
			dispatcher, err := worker.Start(ctx, strg.Pool, poster, worker.Options{
				PurchaseURL: cfg.Webhook.PurchaseURL,
				ReferralURL: cfg.Webhook.ReferralURL,
				Workers:     cfg.Webhook.Workers,
				Timeout:     cfg.Webhook.Timeout,
			})
			if err != nil {
				logger.Fatal(ctx, "could not start webhook dispatcher", zap.Error(err))
			}

			purchases, accounts := newServices(cfg, strg, dispatcher)

			stopWebserver := setupServer(ctx, cfg, api.Deps{Deps: v1handler.Deps{
				Purchases: purchases,
				Accounts:  accounts,
				Database:  strg,
				Integrations: v1handler.Integrations{
					Registrar:       cfg.Registrar.Username != "" && cfg.Registrar.APIKey != "",
					Payment:         cfg.Payment.SecretKey != "",
					PurchaseWebhook: cfg.Webhook.PurchaseURL != "",
					ReferralWebhook: cfg.Webhook.ReferralURL != "",
					ShopcoKey:       cfg.Webhook.ShopcoKey != "",
				},
				Currency: cfg.Payment.Currency,
			}})

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			stopWebserver(shutdownCtx)
			if err := dispatcher.Stop(shutdownCtx); err != nil {
				logger.Warn(shutdownCtx, "webhook deliveries abandoned on shutdown",
					zap.Error(err), zap.Int64("dropped", dispatcher.Dropped()))
			}
			if err := tp.Shutdown(shutdownCtx); err != nil {
				logger.Warn(shutdownCtx, "could not stop tracer provider", zap.Error(err))
			}
			if err := mp.Shutdown(shutdownCtx); err != nil {
				logger.Warn(shutdownCtx, "could not stop meter provider", zap.Error(err))
			}
		},
	}

	return cmd
}
