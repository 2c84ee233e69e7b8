package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/airbooking-admin/config"
	"github.com/Domenick1991/airbooking-admin/internal/auth"
	"github.com/Domenick1991/airbooking-admin/internal/bootstrap"
	"github.com/Domenick1991/airbooking-admin/internal/kafka"
	"github.com/Domenick1991/airbooking-admin/internal/repository"
	"github.com/Domenick1991/airbooking-admin/internal/service/admin"
	"github.com/Domenick1991/airbooking-admin/internal/session"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	sessions := session.NewStore(cfg.Redis, time.Duration(cfg.Auth.SessionTTLMinutes)*time.Minute)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	bookingRepo := repository.NewBookingRepository(pool)
	seatRepo := repository.NewSeatRepository(pool)
	adminRepo := repository.NewAdminRepository(pool)

	adminService := admin.NewAdminService(
		bookingRepo,
		seatRepo,
		producer,
		cfg.Kafka.AdminEventsTopic,
		admin.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		admin.WithActionTimeout(time.Duration(cfg.Admin.ActionTimeoutSeconds)*time.Second),
	)

	gate := auth.NewGate(cfg.Auth, sessions, adminRepo)
	if cfg.Auth.Mode != config.AuthModeReal {
		log.Printf("WARNING: auth gate running in %s mode", cfg.Auth.Mode)
	}

	engine := bootstrap.NewEngine(cfg, gate, adminService, sessions)
	if err := bootstrap.Run(ctx, cfg, engine); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
