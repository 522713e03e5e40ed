package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
	"gopkg.in/telebot.v3/middleware"

	"github.com/LazizbekQuvondiqov/Tarjimon-bot/internal/config"
	"github.com/LazizbekQuvondiqov/Tarjimon-bot/internal/dictionary"
	"github.com/LazizbekQuvondiqov/Tarjimon-bot/internal/handler"
	"github.com/LazizbekQuvondiqov/Tarjimon-bot/internal/repository/file"
	"github.com/LazizbekQuvondiqov/Tarjimon-bot/internal/service"
	"github.com/LazizbekQuvondiqov/Tarjimon-bot/internal/translate"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Tarjimon Bot")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}
	if cfg.AdminIDsErr != nil {
		logger.Warn("Admin ID list could not be fully parsed; admin features limited",
			zap.Error(cfg.AdminIDsErr))
	}
	if len(cfg.AdminIDs) == 0 {
		logger.Warn("No admin IDs configured; admin features are disabled")
	}

	logger.Info("Configuration loaded successfully")

	// Initialize file-backed repositories
	userRepo := file.NewUserRepo(cfg.UsersFile, logger)
	if err := userRepo.Load(); err != nil {
		logger.Fatal("Failed to load user registry", zap.Error(err))
	}
	logger.Info("User registry loaded", zap.Int("users", userRepo.Count()))

	channelRepo := file.NewChannelRepo(cfg.ChannelFile, logger)
	if err := channelRepo.Load(); err != nil {
		logger.Fatal("Failed to load channel store", zap.Error(err))
	}
	if channel := channelRepo.Current(); channel != "" {
		logger.Info("Mandatory membership enabled", zap.String("channel", channel))
	} else {
		logger.Warn("Mandatory membership disabled (no channel configured)")
	}

	// Initialize external API clients
	translator := translate.NewClient(logger)
	dict := dictionary.NewClient(logger)

	// Initialize Telegram bot
	bot, err := tele.NewBot(tele.Settings{
		Token:     cfg.BotToken,
		ParseMode: tele.ModeMarkdown,
		Poller:    &tele.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c tele.Context) {
			if c != nil && c.Sender() != nil {
				logger.Error("Unhandled bot error",
					zap.Int64("user_id", c.Sender().ID),
					zap.Error(err))
				return
			}
			logger.Error("Unhandled bot error", zap.Error(err))
		},
	})
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}
	bot.Use(middleware.Recover())

	logger.Info("Telegram bot initialized")

	// Initialize services
	gate := service.NewGate(bot, channelRepo, logger)
	broadcaster := service.NewBroadcaster(bot, userRepo, logger)

	// Initialize handler
	h := handler.NewHandler(bot, userRepo, channelRepo, gate, broadcaster, translator, dict, cfg.AdminIDs, logger)
	h.RegisterHandlers()

	logger.Info("Handlers registered")

	// Start bot in background
	go func() {
		logger.Info("Bot started successfully")
		bot.Start()
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping bot...")

	// Graceful shutdown
	bot.Stop()

	logger.Info("Bot stopped gracefully")
}
