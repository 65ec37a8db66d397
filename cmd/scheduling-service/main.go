package main

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/glowlabs-io/scheduling/internal/deposit"
	"github.com/glowlabs-io/scheduling/internal/directory"
	"github.com/glowlabs-io/scheduling/internal/handlers"
	"github.com/glowlabs-io/scheduling/internal/lifecycle"
	"github.com/glowlabs-io/scheduling/internal/metrics"
	"github.com/glowlabs-io/scheduling/internal/outbox"
	"github.com/glowlabs-io/scheduling/internal/payments"
	"github.com/glowlabs-io/scheduling/internal/reservation"
	"github.com/glowlabs-io/scheduling/internal/storage"
	"github.com/glowlabs-io/scheduling/internal/sweeper"
	"github.com/glowlabs-io/scheduling/libs/config"
	"github.com/glowlabs-io/scheduling/libs/db"
	"github.com/glowlabs-io/scheduling/libs/httpx"
	"github.com/glowlabs-io/scheduling/libs/kafkax"
	otelx "github.com/glowlabs-io/scheduling/libs/otel"
	"github.com/glowlabs-io/scheduling/libs/runtime"
	"github.com/glowlabs-io/scheduling/migrations"
)

func main() {
	_ = godotenv.Load()

	service := config.String("SERVICE_NAME", "scheduling-service")
	port, err := config.Port("PORT", "8080")
	if err != nil {
		panic(err)
	}
	logger := runtime.NewLogger(service)

	ctx, stop := runtime.SignalContext()
	defer stop()

	otelShutdown, err := otelx.Setup(ctx, otelx.ConfigFromEnv(service))
	if err != nil {
		logger.Error("otel setup failed", "err", err)
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = otelShutdown(shutdownCtx)
		}()
	}

	dbURL, err := config.RequiredString("DATABASE_URL")
	if err != nil {
		panic(err)
	}
	pool, err := db.Open(ctx, dbURL, db.Options{
		MaxConns: int32(config.Int("DB_MAX_CONNS", 10)),
	})
	if err != nil {
		logger.Error("db connection failed", "err", err)
		panic(err)
	}
	defer pool.Close()

	if err := migrations.Up(ctx, pool); err != nil {
		logger.Error("migrations failed", "err", err)
		panic(err)
	}

	policy, err := deposit.LoadPolicy(config.String("DEPOSIT_POLICY_FILE", ""))
	if err != nil {
		logger.Error("deposit policy load failed", "err", err)
		panic(err)
	}
	engine := deposit.NewEngine(policy)

	var gateway payments.Gateway
	if key := config.String("STRIPE_SECRET_KEY", ""); key != "" {
		gateway, err = payments.NewStripeGateway(key, policy.Currency)
		if err != nil {
			logger.Error("stripe gateway init failed", "err", err)
			panic(err)
		}
	} else {
		logger.Warn("no payment provider configured; deposit operations will fail")
		gateway = payments.Disabled()
	}

	outboxRepo := outbox.NewRepository(pool)
	apptRepo := storage.NewAppointmentRepository(pool, outboxRepo)
	scheduleRepo := storage.NewScheduleRepository(pool, apptRepo)

	outboxPublisher := outbox.NewPublisher(pool, outboxRepo, logger, outbox.PublisherConfig{
		Brokers:   config.String("KAFKA_BROKERS", ""),
		PollEvery: 2 * time.Second,
		BatchSize: 50,
	})
	go outboxPublisher.Run(ctx)

	holdSweeper := sweeper.New(apptRepo, logger, sweeper.Config{
		SweepEvery: config.Duration("HOLD_SWEEP_MINUTES", 1),
		BatchSize:  config.Int("HOLD_SWEEP_BATCH", 100),
	})
	go holdSweeper.Run(ctx)

	dirProvider, err := directory.NewProvider(config.String("STAFF_DIRECTORY_GRPC_ADDR", ""))
	if err != nil {
		logger.Error("staff directory init failed; using local names", "err", err)
		dirProvider = nil
	}

	holdTTL := config.Duration("RESERVATION_HOLD_MINUTES", 15)
	reservations := reservation.NewManager(scheduleRepo, apptRepo, engine, gateway, logger, nil, holdTTL)
	lifecycleSvc := lifecycle.NewService(apptRepo, engine, gateway, logger, nil)
	handler := handlers.NewSchedulingHandler(scheduleRepo, reservations, lifecycleSvc, apptRepo, dirProvider, logger, nil)

	mux := runtime.NewBaseMux(
		runtime.ReadyCheck{Name: "db", Check: db.ReadyCheck(pool)},
		runtime.ReadyCheck{Name: "kafka", Check: kafkax.ReadyCheck(config.String("KAFKA_BROKERS", ""))},
	)
	mux.Handle("/metrics", metrics.Handler())
	handler.Register(mux)

	limitPerMinute := config.Int("RATE_LIMIT_PER_MINUTE", 120)
	var rateLimitMW httpx.Middleware
	if addr := strings.TrimSpace(config.String("REDIS_ADDR", "")); addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: config.String("REDIS_PASSWORD", ""),
			DB:       config.Int("REDIS_DB", 0),
		})
		defer func() { _ = rdb.Close() }()

		rl := httpx.NewRedisRateLimiter(rdb, limitPerMinute, time.Minute, config.String("RATE_LIMIT_PREFIX", "rl"))
		rateLimitMW = rl.Middleware(logger, config.Bool("RATE_LIMIT_FAIL_OPEN", true))
		logger.Info("rate limiting enabled (redis)", "per_minute", limitPerMinute, "redis_addr", addr)
	} else {
		rl := httpx.NewRateLimiter(limitPerMinute, time.Minute)
		rateLimitMW = rl.Middleware()
		logger.Info("rate limiting enabled (in-memory)", "per_minute", limitPerMinute)
	}

	httpHandler := httpx.Chain(mux,
		httpx.WithCORS(httpx.CORSPolicy{
			AllowedOrigins: parseList(config.String("CORS_ALLOWED_ORIGINS", "")),
			AllowedMethods: parseList(config.String("CORS_ALLOWED_METHODS", "GET,POST,OPTIONS")),
			AllowedHeaders: parseList(config.String("CORS_ALLOWED_HEADERS", "Content-Type,X-Request-Id")),
		}),
		httpx.WithRequestID,
		httpx.WithAccessLog(logger),
		httpx.WithBodyLimit(int64(config.Int("MAX_BODY_BYTES", 1<<20))),
		httpx.WithTimeout(time.Duration(config.Int("REQUEST_TIMEOUT_SECONDS", 10))*time.Second),
		rateLimitMW,
	)
	httpHandler = otelhttp.NewHandler(httpHandler, "scheduling")

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           httpHandler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "err", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "err", err)
	}
	logger.Info("http server stopped")
}

func parseList(raw string) []string {
	items := strings.Split(raw, ",")
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
