package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"condenser/internal/config"
	"condenser/internal/mailer"
	"condenser/internal/provider"
	"condenser/internal/server"
	"condenser/internal/summarize"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	start := time.Now()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.ErrorContext(ctx, "Failed to load config",
			"error", err)

		os.Exit(1)
	}

	registry := provider.NewRegistry(
		provider.Config{
			Name:    provider.Groq,
			BaseURL: cfg.GroqAPIURL,
			APIKey:  cfg.GroqAPIKey,
			Model:   cfg.GroqModel,
		},
		provider.Config{
			Name:    provider.OpenAI,
			BaseURL: cfg.OpenAIAPIURL,
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.OpenAIModel,
		},
	)
	log.InfoContext(ctx, "Providers are initialized",
		"primary", provider.Groq,
		"secondary", provider.OpenAI)

	summarizer := summarize.NewService(registry, log)

	sender := mailer.NewSender(mailer.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	}, log)

	srv := server.New(fmt.Sprintf(":%d", cfg.Port), summarizer, sender, log)
	if err = srv.Start(ctx); err != nil {
		log.ErrorContext(ctx, "Failed to start HTTP server",
			"error", err,
			"port", cfg.Port)

		os.Exit(1)
	}
	log.InfoContext(ctx, "Server is started",
		"port", cfg.Port)

	<-ctx.Done()

	log.InfoContext(ctx, "Exiting...",
		"uptimeSeconds", time.Since(start).Seconds())
}
