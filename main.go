package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kilnbot/bot"
	"kilnbot/bot/session"
	"kilnbot/config"
	"kilnbot/cron"
	"kilnbot/database"
	bookingRepo "kilnbot/database/repository/booking"
	"kilnbot/handlers"
	"kilnbot/routes"
	"kilnbot/services/booking"
	"kilnbot/services/notification"
	"kilnbot/services/reminder"
	"kilnbot/utils"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitSessionCache()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Telegram transport.
	api, err := tgbotapi.NewBotAPI(config.AppConfig.BotToken)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to connect to Telegram: %v", err)
	}
	logger.Sugar().Infof("Authorized as @%s", api.Self.UserName)

	// Repositories and services.
	repo := bookingRepo.NewMongoBookingRepo()
	notifier := notification.NewTelegramNotifier(
		api,
		config.AppConfig.AdminID,
		config.AppConfig.AdminUsername,
		config.AppConfig.MaxSendsPerSec,
		logger,
	)
	bookingService := booking.NewDefaultBookingService(repo, notifier, logger)
	sessions := session.NewRedisStore(utils.GetSessionClient(), session.DefaultTTL)

	// Reminder scheduler.
	scanner := reminder.NewScanner(repo, notifier, logger)
	interval := time.Duration(config.AppConfig.ReminderIntervalSeconds) * time.Second
	scheduler, err := cron.StartReminderScheduler(scanner, interval, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to start reminder scheduler: %v", err)
	}

	// Bot update loop.
	botCtx, stopBot := context.WithCancel(context.Background())
	tgBot := bot.New(api, bookingService, sessions, notifier,
		config.AppConfig.AdminID, config.AppConfig.AdminUsername, logger)
	go tgBot.Run(botCtx)

	utils.StartHealthMonitor(utils.GetSessionClient(), database.MongoClient)

	// Operations API.
	bookingHandler := handlers.NewBookingHandler(bookingService, logger)
	router := routes.SetupRoutes(bookingHandler, config.AppConfig.MaxRequestsPerMin)

	srv := &http.Server{
		Addr:    "0.0.0.0:" + config.AppConfig.AppPort,
		Handler: router,
	}
	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: shutting down...")

	stopBot()
	<-scheduler.Stop().Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: stopped gracefully")
}
