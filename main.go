package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	appCart "github.com/yavorskyi/shopcore/internal/application/cart"
	appCatalog "github.com/yavorskyi/shopcore/internal/application/catalog"
	appOrder "github.com/yavorskyi/shopcore/internal/application/order"
	"github.com/yavorskyi/shopcore/internal/config"
	domainCatalog "github.com/yavorskyi/shopcore/internal/domain/catalog"
	"github.com/yavorskyi/shopcore/internal/infrastructure/audit"
	"github.com/yavorskyi/shopcore/internal/infrastructure/eventbus"
	httptransport "github.com/yavorskyi/shopcore/internal/infrastructure/http"
	"github.com/yavorskyi/shopcore/internal/infrastructure/id"
	"github.com/yavorskyi/shopcore/internal/infrastructure/memory"
	"github.com/yavorskyi/shopcore/internal/infrastructure/notify"
	"github.com/yavorskyi/shopcore/internal/infrastructure/observability/oteltrace"
	"github.com/yavorskyi/shopcore/internal/infrastructure/observability/prometrics"
	"github.com/yavorskyi/shopcore/internal/infrastructure/observability/telemetry"
	"github.com/yavorskyi/shopcore/internal/infrastructure/observability/zaplogger"
	"github.com/yavorskyi/shopcore/internal/observability"
	"github.com/yavorskyi/shopcore/internal/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	baseLogger := logging.MustNewLogger(cfg.ServiceName, cfg.Env)
	defer func() { _ = baseLogger.Sync() }()
	zap.ReplaceGlobals(baseLogger)

	systemLogger := logging.WithTrace(baseLogger, logging.SystemTraceID, logging.SystemSpanID)

	obsLogger := zaplogger.New(
		observability.F("service", cfg.ServiceName),
		observability.F("env", cfg.Env),
	)

	registry := prometrics.New(cfg.ServiceName, "")
	metrics := telemetry.NewMetrics(
		map[observability.MetricKey]observability.Counter{
			observability.MUsecaseRequests: registry.Counter(
				string(observability.MUsecaseRequests),
				"Total number of use case invocations.",
				"use_case", "outcome",
			),
			observability.MHTTPRequests: registry.Counter(
				string(observability.MHTTPRequests),
				"Total number of HTTP requests.",
				"method", "route", "status",
			),
			observability.MOrderEvents: registry.Counter(
				string(observability.MOrderEvents),
				"Count of order lifecycle events seen by the audit worker.",
				"event",
			),
		},
		map[observability.MetricKey]observability.Histogram{
			observability.MUsecaseDuration: registry.Histogram(
				string(observability.MUsecaseDuration),
				"Duration of use case execution in seconds.",
				prometheus.DefBuckets,
				"use_case",
			),
			observability.MHTTPRequestDuration: registry.Histogram(
				string(observability.MHTTPRequestDuration),
				"Duration of HTTP request handling in seconds.",
				prometheus.DefBuckets,
				"method", "route", "status",
			),
		},
	)
	tel := telemetry.New(oteltrace.New(cfg.ServiceName), obsLogger, metrics)

	idGenerator := id.NewUUIDGenerator()
	catalogRepo := memory.NewCatalogRepository()
	cartStore := memory.NewCartStore()
	orderRegistry := memory.NewOrderRegistry()

	catalogService := appCatalog.NewService(catalogRepo, domainCatalog.NewFilterCriteria(), nil, idGenerator)
	cartService := appCart.NewService(cartStore, catalogRepo, idGenerator)

	// Async bus only carries audit/telemetry events; order status observers
	// are notified synchronously by the order itself.
	bus := eventbus.New(tel.Logger())
	bus.Start(context.Background())
	defer bus.Stop(context.Background())

	emailObserver := notify.NewEmailObserver(notify.NewLogSender(tel.Logger()))
	orderService := appOrder.NewService(orderRegistry, idGenerator, bus, emailObserver, tel)

	auditWorker := audit.New(bus, tel)
	auditWorker.Start()

	handler := httptransport.NewHandler(catalogService, cartService, orderService, tel)
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", handler.Router())

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: mux,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		systemLogger.Info("http_server_start",
			zap.String("addr", server.Addr),
		)
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			systemLogger.Error("http_server_error",
				zap.Error(err),
			)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		systemLogger.Error("http_server_shutdown_error",
			zap.Error(err),
		)
	} else {
		systemLogger.Info("http_server_stopped")
	}
}
