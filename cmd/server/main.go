package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/Advisor/config"
	"github.com/Alias1177/Advisor/internal/chat"
	"github.com/Alias1177/Advisor/internal/database"
	"github.com/Alias1177/Advisor/internal/market"
	"github.com/Alias1177/Advisor/internal/recommend"
	"github.com/Alias1177/Advisor/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Setup logger
	lvl, _ := zerolog.ParseLevel(cfg.LogLevel)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl).With().Timestamp().Logger()

	db, err := database.New(database.ConnectionParams{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	marketClient := market.NewClient(market.ClientOptions{
		BaseURL:        cfg.MarketBaseURL,
		RequestTimeout: time.Duration(cfg.MarketRequestTimeout) * time.Second,
		RequestsPerSec: cfg.MarketRateLimit,
	})

	source := recommend.NewService(db, marketClient)
	chatService := chat.NewService(source, nil)

	srv := server.New(chatService, db, cfg.Port)
	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Block until interrupted, then drain in-flight requests.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Shutdown failed")
	}
}
