package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"searchdesk/internal/config"
	"searchdesk/internal/httpapi"
	"searchdesk/internal/otp"
	"searchdesk/internal/store"
	"searchdesk/internal/store/memory"
	"searchdesk/internal/store/postgres"
	"searchdesk/internal/telemetry"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	shutdownTelemetry := telemetry.Setup("searchdesk")
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTelemetry(ctx)
	}()

	var st store.Store
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("db connect: %v", err)
		}
		defer pool.Close()
		st = postgres.NewStore(pool)
	} else {
		log.Printf("no DB_DSN set, state is in-memory and lost on restart")
		st = memory.NewStore()
	}

	var channel otp.Channel = otp.DisplayChannel{}
	if cfg.ResendAPIKey != "" {
		channel = otp.NewResendChannel(cfg.ResendAPIKey, cfg.OTPEmailSender)
	} else {
		log.Printf("no RESEND_API_KEY set, login codes are shown on screen")
	}

	handler := httpapi.NewHandler(st, otp.NewService(st, channel), httpapi.Options{
		DailyLimit:     cfg.DailyLimit,
		SessionTTL:     time.Duration(cfg.SessionTTLHours) * time.Hour,
		MaxUploadBytes: int64(cfg.MaxUploadMB) << 20,
	})
	limiter := httpapi.NewRateLimiter(httpapi.RateLimitConfig{
		PerMinute: cfg.RateLimitPerMinute,
		Burst:     cfg.RateLimitBurst,
	})

	otelHandler := otelhttp.NewHandler(httpapi.LoggingMiddleware(limiter.Middleware(handler.Routes())), "searchdesk")
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      otelHandler,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("searchdesk listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
