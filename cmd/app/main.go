package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ozdmr89/aerodesk/config"
	"github.com/ozdmr89/aerodesk/internal/bootstrap"
	"github.com/ozdmr89/aerodesk/internal/cache"
	"github.com/ozdmr89/aerodesk/internal/kafka"
	"github.com/ozdmr89/aerodesk/internal/repository"
	"github.com/ozdmr89/aerodesk/internal/service/booking"
	"github.com/ozdmr89/aerodesk/internal/service/flights"
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

	if cfg.Migrations.SchemaPath != "" {
		if err := repository.ApplySchema(ctx, pool, cfg.Migrations.SchemaPath); err != nil {
			log.Fatalf("apply schema: %v", err)
		}
	}

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.FlightsCacheTTL)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	store := repository.NewStore(pool)
	flightRepo := repository.NewFlightRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	passengerRepo := repository.NewPassengerRepository(pool)

	flightService := flights.NewFlightService(flightRepo, redisCache, time.Duration(cfg.Booking.FlightsCacheTTL)*time.Second)
	bookingService := booking.NewBookingService(
		store,
		bookingRepo,
		flightRepo,
		passengerRepo,
		producer,
		cfg.Kafka.BookingEventsTopic,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	if err := bootstrap.Run(ctx, cfg, flightService, bookingService); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
