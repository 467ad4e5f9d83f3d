package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/flowcup/registration-api/internal/config"
	"github.com/flowcup/registration-api/internal/infrastructure/dynamo"
	"github.com/flowcup/registration-api/internal/infrastructure/memstore"
	"github.com/flowcup/registration-api/internal/infrastructure/smtp"
	snsinfra "github.com/flowcup/registration-api/internal/infrastructure/sns"
	"github.com/flowcup/registration-api/internal/infrastructure/telegram"
	"github.com/flowcup/registration-api/internal/pkg/credential"
	transporthttp "github.com/flowcup/registration-api/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	deps := &transporthttp.Deps{}

	// Store backend. Memory is the default: all collections reset on
	// restart, which the admin workflow accepts.
	switch cfg.StoreBackend {
	case config.StoreDynamo:
		client := dynamo.NewClient(cfg)
		dynamo.Bootstrap(context.Background(), client, cfg.DynamoTables)
		deps.VerificationRepo = dynamo.NewVerificationRepo(client, cfg.DynamoTables.VerificationRequests)
		deps.RegistrationRepo = dynamo.NewRegistrationRepo(client, cfg.DynamoTables.Registrations)
	default:
		store := memstore.New()
		deps.VerificationRepo = store.Verifications()
		deps.RegistrationRepo = store.Registrations()
	}

	// Admin notification channel.
	switch cfg.NotifyChannel {
	case config.ChannelTelegram:
		tg := telegram.NewClient(cfg)
		deps.Notifier = tg
		deps.Answerer = tg
	case config.ChannelSNS:
		if sender, err := snsinfra.NewSender(cfg); err == nil {
			deps.Notifier = sender
		} else {
			log.Printf("WARN: SNS sender not available: %v", err)
		}
	}

	if cfg.SendDecisionEmails {
		deps.Mailer = smtp.NewMailer(cfg)
	}

	if cfg.HashPasswords {
		deps.CredentialSink = credential.Bcrypt{}
	} else {
		deps.CredentialSink = credential.Verbatim{}
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s, store=%s, policy=%s)",
			cfg.AppPort, cfg.AppEnv, cfg.StoreBackend, cfg.VerificationPolicy)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
