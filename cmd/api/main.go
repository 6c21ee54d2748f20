package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/lumiere-atelier/salon-bookings/internal/catalog"
	"github.com/lumiere-atelier/salon-bookings/internal/http/handlers"
	"github.com/lumiere-atelier/salon-bookings/internal/idempotency"
	"github.com/lumiere-atelier/salon-bookings/internal/mailer"
	"github.com/lumiere-atelier/salon-bookings/internal/notify"
	"github.com/lumiere-atelier/salon-bookings/internal/service"
	"github.com/lumiere-atelier/salon-bookings/internal/signature"
	"github.com/lumiere-atelier/salon-bookings/pkg/config"
	"github.com/lumiere-atelier/salon-bookings/pkg/events"
	"github.com/lumiere-atelier/salon-bookings/pkg/logger"
	mw "github.com/lumiere-atelier/salon-bookings/pkg/middleware"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	signer, err := signature.NewSigner(cfg.Link.Secret)
	if err != nil {
		logger.Error("Failed to initialize link signer", "error", err)
		os.Exit(1)
	}

	var sender mailer.Sender
	if cfg.Email.DevMode {
		sender = mailer.NewDevMailer()
	} else {
		sender = mailer.NewMailerSend(cfg.Email.MailerSendKey, cfg.Email.FromName, cfg.Email.FromEmail)
	}

	var bus events.Publisher = events.NoopBus{}
	if cfg.NATS.URL != "" {
		natsBus, err := events.NewNATSEventBus(cfg.NATS.URL)
		if err != nil {
			logger.Error("Failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer natsBus.Close()
		bus = natsBus
	}

	cat := catalog.New(cfg.Salon.CatalogPath)
	notifier := notify.New(sender, cfg.Salon.Name, cfg.Salon.OwnerName, cfg.Salon.OwnerEmail)

	bookings := service.NewBookings(signer, notifier, cat, bus, cfg.Link.BaseURL, cfg.Salon.Name, cfg.Salon.Location)
	vouchers := service.NewVouchers(signer, notifier, bus, cfg.Link.BaseURL)

	h := handlers.New(bookings, vouchers, cfg.Salon.Name)

	r := chi.NewRouter()
	r.Use(mw.RequestID)
	r.Use(mw.ServiceName("salon-bookings"))
	r.Use(mw.Logging)
	r.Use(mw.Health)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "Idempotency-Key"},
		MaxAge:         300,
	}))

	if cfg.Redis.URL != "" {
		store, err := idempotency.NewRedisStore(cfg.Redis.URL)
		if err != nil {
			logger.Error("Failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer store.Close()
		r.Use(mw.Idempotency(store))
	}

	r.Mount("/", h.Routes())

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down salon-bookings...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Shutdown error", "error", err)
		}
	}()

	logger.Info("Starting salon-bookings", "port", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
}
