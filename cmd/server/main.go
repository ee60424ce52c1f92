package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log"
	"net/http"

	httpapi "rentacar-backend/internal/api/http"
	"rentacar-backend/internal/asset"
	"rentacar-backend/internal/config"
	"rentacar-backend/internal/domain"
	"rentacar-backend/internal/events"
	"rentacar-backend/internal/jobs"
	"rentacar-backend/internal/logger"
	"rentacar-backend/internal/repository"
	"rentacar-backend/internal/repository/memory"
	"rentacar-backend/internal/repository/postgres"
	"rentacar-backend/internal/scheduler"
	"rentacar-backend/internal/security"
	"rentacar-backend/internal/service"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting rent-a-car custody backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())

	var (
		cars     repository.CarRepository
		rentals  repository.RentalRepository
		state    repository.ContractStateRepository
		transfer asset.TransferService
	)

	switch cfg.Database.Driver {
	case "memory":
		logger.Info("Using in-memory store")
		store := memory.New()
		cars = store.Cars()
		rentals = store.Rentals()
		state = store.ContractState()
		transfer = asset.NewMockTransferService()
	default:
		logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database)
		db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := db.Ping(); err != nil {
			log.Fatalf("Failed to ping database: %v", err)
		}
		if err := postgres.Migrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		logger.Info("Database connection established")

		store := postgres.NewStore(db)
		cars = store.CarRepository
		rentals = store.RentalRepository
		state = store.ContractStateRepository
		transfer = asset.NewPostgresTransferService(db)
	}

	tokenManager := security.NewTokenManager(cfg.JWT.Secret)
	authorizer := security.NewJWTAuthorizer(tokenManager)

	publishers := []events.Publisher{events.NewLogPublisher()}
	if cfg.Notifier.SendGridAPIKey != "" && cfg.Notifier.AdminEmail != "" {
		logger.Info("Admin event notifier enabled", "admin_email", cfg.Notifier.AdminEmail)
		publishers = append(publishers,
			events.NewAdminNotifier(cfg.Notifier.SendGridAPIKey, cfg.Notifier.FromEmail, cfg.Notifier.AdminEmail))
	}

	ledgerSvc := service.NewRentalLedgerService(
		cars,
		rentals,
		state,
		transfer,
		authorizer,
		events.Multi(publishers...),
		domain.Principal(cfg.CustodyPrincipal()),
	)

	if cfg.Contract.AutoInitialize {
		err := ledgerSvc.Initialize(context.Background(),
			domain.Principal(cfg.Contract.Admin),
			domain.Principal(cfg.Contract.PaymentToken))
		switch {
		case err == nil:
			logger.Info("Contract initialized", "admin", cfg.Contract.Admin, "payment_token", cfg.Contract.PaymentToken)
		case errors.Is(err, domain.ErrContractInitialized):
			logger.Info("Contract already initialized, skipping bootstrap")
		default:
			log.Fatalf("Failed to initialize contract: %v", err)
		}
	}

	if cfg.Scheduler.Enabled {
		jobRunner := jobs.NewJobRunner(cars, state, cfg)
		sched := scheduler.NewScheduler(jobRunner)
		sched.Start()
		defer sched.Stop()
	}

	router := mux.NewRouter()
	httpapi.RegisterRoutes(router, httpapi.NewLedgerHandler(ledgerSvc))

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		log.Fatalf("Failed to serve: %v", err)
	}
}
