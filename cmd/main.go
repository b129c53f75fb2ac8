package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dtroode/signup-server/internal/api/rest/router"
	"github.com/dtroode/signup-server/internal/config"
	"github.com/dtroode/signup-server/internal/i18n"
	"github.com/dtroode/signup-server/internal/logger"
	"github.com/dtroode/signup-server/internal/model"
	"github.com/dtroode/signup-server/internal/notification/ses"
	"github.com/dtroode/signup-server/internal/repository/postgres"
	"github.com/dtroode/signup-server/internal/security"
	"github.com/dtroode/signup-server/internal/server"
	"github.com/dtroode/signup-server/internal/service"
	"github.com/dtroode/signup-server/internal/validation"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	if err := i18n.Validate(); err != nil {
		logger.Fatal("message catalog incomplete", "error", err)
	}

	db, err := postgres.NewConection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)

	notifier, err := ses.NewClient(ctx, cfg.SES)
	if err != nil {
		logger.Fatal("failed to create SES client", "error", err)
	}

	validator := validation.New(userRepo)
	hasher := security.NewBcryptHasher(cfg.Security.BcryptCost)
	tokens := security.NewRandomTokenGenerator()

	registrationService := service.NewRegistration(userRepo, validator, hasher, tokens, notifier, logger)
	activationService := service.NewActivation(userRepo, logger)

	r := router.New(registrationService, activationService, userRepo, logger)
	httpServer := server.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer

	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(httpServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
