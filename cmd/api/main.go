package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/docucare-api/internal/application/auth"
	"github.com/docucare-api/internal/application/otp"
	"github.com/docucare-api/internal/config"
	"github.com/docucare-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/docucare-api/internal/infrastructure/jwt"
	"github.com/docucare-api/internal/infrastructure/otpstore"
	"github.com/docucare-api/internal/infrastructure/smtp"
	"github.com/docucare-api/internal/infrastructure/sns"
	"github.com/docucare-api/internal/infrastructure/twilio"
	transporthttp "github.com/docucare-api/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	jwtProvider, err := jwtinfra.NewProvider(cfg)
	if err != nil {
		log.Fatalf("JWT provider: %v", err)
	}

	// OTP store backing: in-process by default, Redis when configured.
	var otpStore otp.Store
	if cfg.OTPStore == "redis" {
		otpStore = otpstore.NewRedis(cfg)
	} else {
		otpStore = otpstore.NewMemory()
	}

	mailer := smtp.NewMailer(cfg)

	// SMS sender (optional — phone-keyed logins fail with a delivery error
	// when no channel is available).
	var smsSender auth.SMSSender
	switch cfg.SMSProvider {
	case "twilio":
		if sender, err := twilio.NewSender(cfg); err == nil {
			smsSender = sender
		} else {
			logger.Warn("Twilio sender not available", "error", err)
		}
	default:
		if sender, err := sns.NewSender(cfg); err == nil {
			smsSender = sender
		} else {
			logger.Warn("SNS sender not available", "error", err)
		}
	}

	deps := &transporthttp.Deps{
		UserRepo:        dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users),
		DoctorRepo:      dynamo.NewDoctorRepo(dynamoClient, cfg.DynamoTables.Doctors),
		PatientRepo:     dynamo.NewPatientRepo(dynamoClient, cfg.DynamoTables.Patients),
		AppointmentRepo: dynamo.NewAppointmentRepo(dynamoClient, cfg.DynamoTables.Appointments),
		OTPStore:        otpStore,
		Mailer:          mailer,
		SMSSender:       smsSender,
		JWTProvider:     jwtProvider,
		Logger:          logger,
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
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
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
