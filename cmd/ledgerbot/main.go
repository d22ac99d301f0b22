package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"ledgerbot/internal/amqp"
	"ledgerbot/internal/backend"
	"ledgerbot/internal/bot"
	"ledgerbot/internal/command"
	"ledgerbot/internal/config"
	"ledgerbot/internal/linebot"
	applog "ledgerbot/internal/log"
)

func main() {
	// Load .env file for local development (ignore errors in production)
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}
	if err := cfg.ValidateWebhook(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}

	loc, err := command.Location()
	if err != nil {
		logger.Error("Failed to load reference timezone", applog.FieldError, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", applog.FieldError, err)
		os.Exit(1)
	}
	result, err := backend.NewFactory(logger.Logger).CreateBackend(ctx, backendCfg)
	if err != nil {
		logger.Error("Failed to initialize backend", applog.FieldError, err,
			"backend", cfg.DataBackend)
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer result.Cleanup()
	}

	ledgerBot := bot.New(result.Backend, loc, logger.WithComponent(applog.ComponentBot))

	// Archive publishing is optional; without AMQP the bot runs the same.
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without archive",
				applog.FieldError, err)
		} else {
			defer amqpClient.Close()
			ledgerBot.WithPublisher(amqpClient)
			logger.Info("Initialized AMQP archive publisher",
				"exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	}

	webhookHandler, err := linebot.New(cfg.LineChannelSecret, cfg.LineChannelToken,
		ledgerBot, logger.WithComponent(applog.ComponentHTTP))
	if err != nil {
		logger.Error("Failed to initialize webhook handler", applog.FieldError, err)
		os.Exit(1)
	}

	mux := http.NewServeMux()
	mux.Handle("/callback", webhookHandler)
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	srv := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        applog.Middleware(logger.WithComponent(applog.ComponentHTTP))(mux),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting ledgerbot server",
			"port", cfg.Port, "backend", cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
