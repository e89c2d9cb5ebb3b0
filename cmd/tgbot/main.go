package main

import (
	"context"
	"os"
	"time"

	_ "github.com/lib/pq"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/Advisor/config"
	"github.com/Alias1177/Advisor/internal/chat"
	"github.com/Alias1177/Advisor/internal/database"
	"github.com/Alias1177/Advisor/internal/market"
	"github.com/Alias1177/Advisor/internal/recommend"
)

// replyTimeout bounds the work behind a single Telegram message, including
// the outbound market-data calls.
const replyTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Setup logger
	lvl, _ := zerolog.ParseLevel(cfg.LogLevel)
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl).With().Timestamp().Logger()
	log.Logger = logger

	if cfg.TelegramBotToken == "" {
		logger.Fatal().Msg("TELEGRAM_BOT_TOKEN not set in environment")
	}

	db, err := database.New(database.ConnectionParams{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	marketClient := market.NewClient(market.ClientOptions{
		BaseURL:        cfg.MarketBaseURL,
		RequestTimeout: time.Duration(cfg.MarketRequestTimeout) * time.Second,
		RequestsPerSec: cfg.MarketRateLimit,
	})

	source := recommend.NewService(db, marketClient)
	chatService := chat.NewService(source, nil)

	// Initialize Telegram bot
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize Telegram bot")
	}

	logger.Info().Str("username", bot.Self.UserName).Msg("Authorized on Telegram")

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60

	updates := bot.GetUpdatesChan(updateConfig)

	for update := range updates {
		if update.Message == nil || update.Message.Text == "" {
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), replyTimeout)
		reply := chatService.ProcessMessage(ctx, update.Message.Text)
		cancel()

		msg := tgbotapi.NewMessage(update.Message.Chat.ID, reply)
		msg.ParseMode = tgbotapi.ModeMarkdown
		if _, err := bot.Send(msg); err != nil {
			logger.Error().Err(err).Int64("chat_id", update.Message.Chat.ID).Msg("Failed to send reply")
		}
	}
}
