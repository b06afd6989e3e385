package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/clawswap/clawswap-api/internal/chains"
	"github.com/clawswap/clawswap-api/internal/config"
	"github.com/clawswap/clawswap-api/internal/mayan"
	"github.com/clawswap/clawswap-api/internal/quote"
	"github.com/clawswap/clawswap-api/internal/server"
	"github.com/clawswap/clawswap-api/internal/ticket"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const version = "1.0.1"

// main is the entry point for the API server. It wires the route provider,
// the ticket store and the quote service together and runs the HTTP server
// with graceful shutdown. The process never holds keys and never broadcasts
// transactions; everything it serves is executed client-side.
func main() {
	// Initialize structured logger with custom formatting
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	logger.SetLevel(logrus.InfoLevel)

	// load .env BEFORE anything reads os.Getenv
	if err := godotenv.Load(); err != nil {
		logger.Warn("no .env file found, using system environment variables")
	}

	// Load and validate configuration; missing referral addresses are a
	// refuse-to-start condition, not a silent default.
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("invalid configuration")
	}

	referrers := chains.Referrers{
		Solana: cfg.ReferrerSolana,
		EVM:    cfg.ReferrerEVM,
		Sui:    cfg.ReferrerSui,
	}

	// Setup signal handling for graceful shutdown (Ctrl+C, SIGTERM)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	// The ticket store is owned here: created at startup, closed at
	// shutdown, passed into the services that need it. No package-level
	// singleton.
	tickets := ticket.NewStore(cfg.QuoteTTL, cfg.QuoteCacheMax)
	defer tickets.Close()

	provider := mayan.NewClient(cfg.MayanBaseURL, cfg.MayanAPIKey)
	quotes := quote.NewService(provider, tickets, referrers, logger)

	h := &server.Handlers{
		Quotes:    quotes,
		Tickets:   tickets,
		Referrers: referrers,
		Version:   version,
		DevMode:   cfg.DevMode,
		Logger:    logger,
	}

	srv, err := server.NewServer(server.ServerDeps{
		Handlers: h,
		Config: server.ServerConfig{
			Addr:            cfg.Addr,
			DevMode:         cfg.DevMode,
			APIKey:          cfg.APIKey,
			CORSOrigins:     cfg.CORSOrigins,
			QuoteRatePerMin: cfg.QuoteRatePerMin,
			SwapRatePerMin:  cfg.SwapRatePerMin,
		},
	})
	if err != nil {
		logger.WithError(err).Fatal("failed to create http server")
	}

	// Setup graceful shutdown in a separate goroutine
	go func() {
		<-sigCh
		logger.Info("shutting down")
		_ = srv.Shutdown(context.Background())
	}()

	logger.WithFields(logrus.Fields{
		"addr":     cfg.Addr,
		"cacheMax": cfg.QuoteCacheMax,
		"quoteTTL": cfg.QuoteTTL,
	}).Infof("ClawSwap API v%s starting (non-custodial: agents execute swaps client-side)", version)

	if err := srv.Start(); err != nil && err != http.ErrServerClosed {
		logger.WithError(err).Fatal("api server failed")
	}

	// Wait for server to be fully shut down
	if err := srv.WaitClosed(context.Background()); err != nil {
		fmt.Println(err)
	}
}
