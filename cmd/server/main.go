package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/cajacoop/caja-engine/internal/config"
	"github.com/cajacoop/caja-engine/internal/handler"
	"github.com/cajacoop/caja-engine/internal/repository"
	"github.com/cajacoop/caja-engine/internal/service"
	"github.com/cajacoop/caja-engine/pkg/response"
)

func main() {
	// Load .env if present, then configuration
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	redisClient := initRedis(cfg)
	defer redisClient.Close()

	// Repositories
	partnerRepo := repository.NewPartnerRepository(db)
	entryRepo := repository.NewEntryRepository(db)
	egressRepo := repository.NewEgressRepository(db)
	loanRepo := repository.NewLoanRepository(db)
	periodRepo := repository.NewPeriodRepository(db)

	// Services
	loanService := service.NewLoanService(loanRepo, redisClient, cfg)
	entryService := service.NewEntryService(entryRepo, partnerRepo, loanRepo, loanService, cfg)
	egressService := service.NewEgressService(egressRepo)
	personService := service.NewPersonService(partnerRepo, loanService, cfg)
	balanceService := service.NewBalanceService(partnerRepo, entryRepo, periodRepo)
	metricsService := service.NewMetricsService(entryRepo, egressRepo, loanRepo, periodRepo, redisClient)

	// Handlers
	entryHandler := handler.NewEntryHandler(entryService)
	egressHandler := handler.NewEgressHandler(egressService)
	loanHandler := handler.NewLoanHandler(loanService)
	partnerHandler := handler.NewPartnerHandler(personService)
	balanceHandler := handler.NewBalanceHandler(balanceService)
	metricsHandler := handler.NewMetricsHandler(metricsService)
	healthHandler := handler.NewHealthHandler(db, redisClient, cfg.HealthTimeout())

	router := setupRoutes(
		entryHandler,
		egressHandler,
		loanHandler,
		partnerHandler,
		balanceHandler,
		metricsHandler,
		healthHandler,
	)

	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      response.LoggingMiddleware(response.CORSMiddleware(router)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

func initDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

func initRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func setupRoutes(
	entryHandler *handler.EntryHandler,
	egressHandler *handler.EgressHandler,
	loanHandler *handler.LoanHandler,
	partnerHandler *handler.PartnerHandler,
	balanceHandler *handler.BalanceHandler,
	metricsHandler *handler.MetricsHandler,
	healthHandler *handler.HealthHandler,
) *mux.Router {
	router := mux.NewRouter()

	// Health check
	router.HandleFunc("/health", healthHandler.Health).Methods("GET")
	router.HandleFunc("/health/ready", healthHandler.Ready).Methods("GET")

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/partners", partnerHandler.Create).Methods("POST")
	api.HandleFunc("/partners", partnerHandler.List).Methods("GET")
	api.HandleFunc("/partners/count", partnerHandler.Count).Methods("GET")
	api.HandleFunc("/partners/{dni}", partnerHandler.Update).Methods("PUT")
	api.HandleFunc("/accounts/{account}", partnerHandler.Get).Methods("GET")
	api.HandleFunc("/accounts/{account}", partnerHandler.Disable).Methods("DELETE")
	api.HandleFunc("/accounts/{account}/charges", entryHandler.GetCharges).Methods("GET")
	api.HandleFunc("/accounts/{account}/contributions", entryHandler.ListContributions).Methods("GET")

	api.HandleFunc("/entries", entryHandler.Create).Methods("POST")
	api.HandleFunc("/entries", entryHandler.List).Methods("GET")
	api.HandleFunc("/entries/count", entryHandler.Count).Methods("GET")
	api.HandleFunc("/entries/types", entryHandler.ListTypes).Methods("GET")
	api.HandleFunc("/entries/{number}", entryHandler.GetBreakdown).Methods("GET")

	api.HandleFunc("/egresses", egressHandler.Create).Methods("POST")
	api.HandleFunc("/egresses", egressHandler.List).Methods("GET")
	api.HandleFunc("/egresses/count", egressHandler.Count).Methods("GET")

	api.HandleFunc("/loans", loanHandler.Create).Methods("POST")
	api.HandleFunc("/loans", loanHandler.List).Methods("GET")
	api.HandleFunc("/loans/count", loanHandler.Count).Methods("GET")
	api.HandleFunc("/loans/status-summary", loanHandler.StatusSummary).Methods("GET")
	api.HandleFunc("/loans/{number}/schedule", loanHandler.GetSchedule).Methods("GET")
	api.HandleFunc("/loans/restructure", loanHandler.Restructure).Methods("PUT")

	api.HandleFunc("/balances", balanceHandler.GetBalances).Methods("GET")
	api.HandleFunc("/periods", balanceHandler.ListPeriods).Methods("GET")
	api.HandleFunc("/periods/open", balanceHandler.GetOpenPeriod).Methods("GET")
	api.HandleFunc("/periods/{period}/metrics", metricsHandler.GetMetrics).Methods("GET")
	api.HandleFunc("/periods/{period}/metrics/types", metricsHandler.GetTypeMetrics).Methods("GET")

	return router
}
