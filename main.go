package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/korwin-dev/citelinks-be/internal/api"
	"github.com/korwin-dev/citelinks-be/internal/config"
	"github.com/korwin-dev/citelinks-be/internal/database"
	"github.com/korwin-dev/citelinks-be/internal/logger"
	"github.com/korwin-dev/citelinks-be/internal/mailer"
	"github.com/korwin-dev/citelinks-be/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.LogLevel)

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Set up the notifier; without SMTP settings registration mail is
	// logged instead of sent.
	var notifier mailer.Notifier
	if cfg.SMTPHost != "" {
		notifier, err = mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize mailer")
		}
	} else {
		notifier = mailer.LogNotifier{}
	}

	// Set up services
	userService := services.NewUserService(db)
	tokenService := services.NewTokenService(db, userService)
	linkService := services.NewLinkService(db)
	eventService := services.NewEventService(db)

	// Set up router
	router := api.NewRouter(userService, tokenService, linkService, eventService, notifier, cfg.CORSOrigin)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
