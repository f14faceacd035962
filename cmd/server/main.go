package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"swap24.backend/internal/config"
	"swap24.backend/internal/domain/entities"
	"swap24.backend/internal/infrastructure/blockchain"
	"swap24.backend/internal/infrastructure/jobs"
	"swap24.backend/internal/infrastructure/mirror"
	"swap24.backend/internal/infrastructure/repositories"
	"swap24.backend/internal/interfaces/http/handlers"
	"swap24.backend/internal/interfaces/http/middleware"
	"swap24.backend/internal/usecases"
	"swap24.backend/pkg/jwt"
	"swap24.backend/pkg/logger"
	"swap24.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	newEVMClient = blockchain.NewEVMClient
	newSigner    = blockchain.NewSigner
	runServer    = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB     = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := loadCfg()

	// Initialize Logger
	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Initialize Redis
	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	// Set Gin mode
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database using GORM
	dsn := cfg.Database.URL()
	db, err := openDB(dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("⚠️ Database not available: %v (journal endpoints will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")
	}

	// Initialize JWT service
	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Initialize repositories
	journalRepo := repositories.NewTxJournalRepository(db)

	// Initialize blockchain clients
	evmClient, err := newEVMClient(cfg.Blockchain.RPCURL)
	if err != nil {
		return fmt.Errorf("failed to connect to RPC node: %w", err)
	}
	signer, err := newSigner(cfg.Blockchain.SignerPrivateKey)
	if err != nil {
		return fmt.Errorf("failed to load signer key: %w", err)
	}
	marketClient := blockchain.NewMarketClient(evmClient, signer, cfg.Blockchain.MarketAddress)
	marketClient.SetWaitTimeout(cfg.Blockchain.ReceiptTimeout)
	tokenClient := blockchain.NewERC20Client(evmClient, signer)
	logger.Info(context.Background(), "Blockchain clients initialized",
		zap.String("market", marketClient.MarketAddress()),
		zap.String("signer", marketClient.SignerAddress()),
	)

	// Initialize mirror backend client
	mirrorClient := mirror.NewClient(cfg.Mirror.BaseURL, cfg.Mirror.APIKey, cfg.Mirror.Timeout)

	// Initialize usecases
	catalog := entities.DefaultTokenCatalog()
	gate := usecases.NewAllowanceGate(tokenClient, marketClient)
	lifecycleUsecase := usecases.NewAdLifecycleUsecase(marketClient, gate, mirrorClient, journalRepo, catalog)
	queryUsecase := usecases.NewAdQueryUsecase(marketClient, mirrorClient, cfg.Market.DataSource)

	// Initialize handlers
	adHandler := handlers.NewAdHandler(lifecycleUsecase, queryUsecase)
	tokenHandler := handlers.NewTokenHandler(catalog)
	journalHandler := handlers.NewJournalHandler(journalRepo)

	// Create auth middleware (API key or JWT)
	authMiddleware := middleware.AuthMiddleware(jwtService, cfg.Security.APIKeyHash)

	// Start background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sweeperJob := jobs.NewJournalSweeperJob(journalRepo, cfg.Market.JournalMaxPendingAge)
	go sweeperJob.Start(ctx)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		adHandler:      adHandler,
		tokenHandler:   tokenHandler,
		journalHandler: journalHandler,
		authMiddleware: authMiddleware,
	})

	// Print all registered routes for debugging
	log.Println("📋 Registered Routes:")
	for _, route := range r.Routes() {
		log.Printf("   %s %s", route.Method, route.Path)
	}

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down server...")
		sweeperJob.Stop()
		cancel()
	}()

	// Start server
	log.Printf("🚀 Swap24 Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
