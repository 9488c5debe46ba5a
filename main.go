package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"admission-portal/cache"
	"admission-portal/config"
	"admission-portal/database"
	"admission-portal/httpServices/sms"
	"admission-portal/logger"
	"admission-portal/routes"
	"admission-portal/services/cleanup"
	"admission-portal/services/mailer"
	"admission-portal/services/marksheet_parser"
	"admission-portal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration: " + err.Error())
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration: " + err.Error())
	}

	logFile, err := logger.Init(cfg.App.LogDir)
	if err != nil {
		logger.Error("Failed to initialize file logger", err)
	} else {
		defer logFile.Close()
	}

	db, err := database.InitDB(cfg.DB)
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return
	}

	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		logger.Error("Failed to connect to redis", err)
		return
	}
	defer redisClient.Close()

	cipher, err := utils.NewCipher(cfg.Security.EncryptionKey)
	if err != nil {
		logger.Fatal("Invalid ENCRYPTION_KEY: " + err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mail := mailer.NewMailer(cfg.SMTP)
	if !mail.Enabled() {
		logger.Warning("SMTP is not configured, email OTPs will not be delivered")
	}
	smsClient := sms.NewClient(cfg.Twilio)
	if !smsClient.Enabled() {
		logger.Warning("Twilio is not configured, phone OTPs will not be delivered")
	}

	// Left nil when Gemini is not configured so the parser reports itself disabled.
	var extractor marksheet_parser.Extractor
	gemini, err := marksheet_parser.NewGeminiExtractor(ctx, cfg.Gemini)
	switch {
	case errors.Is(err, marksheet_parser.ErrParserDisabled):
		logger.Warning("GEMINI_API_KEY is not set, marksheet parsing is disabled")
	case err != nil:
		logger.Error("Failed to initialize Gemini client", err)
	default:
		extractor = gemini
	}

	asyncLogger := logger.NewAsyncLogger(db, 100)
	go asyncLogger.ProcessLog()

	deps := routes.BuildDependencies(db, cfg, routes.Collaborators{
		Counter:     cache.NewCounter(redisClient),
		EmailSender: mail,
		SMSSender:   smsClient,
		Extractor:   extractor,
		Cipher:      cipher,
	})
	deps.AsyncLogger = asyncLogger

	app := fiber.New(fiber.Config{
		ReadBufferSize:  32768,
		WriteBufferSize: 32768,
		ReadTimeout:     time.Second * 30,
		WriteTimeout:    time.Second * 30,
		BodyLimit:       12 * 1024 * 1024, // marksheet images are capped at 10MB
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.FrontendURL,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	routes.SetupRoutes(app, deps)

	if cfg.Cleanup.Interval > 0 {
		cleaner := cleanup.NewCleaner(db, cfg.Cleanup.Retention)
		go cleaner.Start(ctx, cfg.Cleanup.Interval)
	}

	go func() {
		addr := cfg.App.Host + ":" + cfg.App.Port
		logger.Success("Server is running on " + addr)
		if err := app.Listen(addr); err != nil {
			logger.Error("Server stopped", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("Server forced to shutdown", err)
	}
	asyncLogger.Close()
	logger.Success("Server exited gracefully")
}
