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

	"liberty-staking.backend/internal/config"
	"liberty-staking.backend/internal/infrastructure/blockchain"
	"liberty-staking.backend/internal/infrastructure/jobs"
	"liberty-staking.backend/internal/infrastructure/repositories"
	"liberty-staking.backend/internal/interfaces/http/handlers"
	"liberty-staking.backend/internal/interfaces/http/middleware"
	"liberty-staking.backend/internal/usecases"
	"liberty-staking.backend/pkg/jwt"
	"liberty-staking.backend/pkg/logger"
	"liberty-staking.backend/pkg/redis"
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
	runServer    = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB     = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("database not available: %v (endpoints will return errors)", err)
	} else {
		logger.Info(context.Background(), "Connected to PostgreSQL")
	}

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry)
	nonceStore := redis.NewNonceStore(cfg.Auth.NonceTTL)

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	investmentRepo := repositories.NewInvestmentRepository(db)
	referralRepo := repositories.NewReferralRepository(db)
	activityRepo := repositories.NewActivityLogRepository(db)

	// Contract reads
	evmClient, err := newEVMClient(cfg.Blockchain.RPCURL)
	if err != nil {
		return fmt.Errorf("failed to connect to chain rpc: %w", err)
	}
	defer evmClient.Close()

	contract, err := blockchain.NewStakingContract(evmClient, cfg.Blockchain.StakingContract, int32(cfg.Blockchain.TokenDecimals))
	if err != nil {
		return fmt.Errorf("failed to bind staking contract: %w", err)
	}

	// Usecases
	authUsecase := usecases.NewAuthUsecase(userRepo, referralRepo, activityRepo, nonceStore, jwtService, cfg.Auth, cfg.App.BaseURL)
	userUsecase := usecases.NewUserUsecase(userRepo, investmentRepo, referralRepo)
	investmentUsecase := usecases.NewInvestmentUsecase(investmentRepo, userRepo, referralRepo, activityRepo, cfg.Referral)
	referralUsecase := usecases.NewReferralUsecase(referralRepo, userRepo, investmentRepo, activityRepo, cfg.Referral)
	stakingUsecase := usecases.NewStakingUsecase(contract)
	adminUsecase := usecases.NewAdminUsecase(userRepo, investmentRepo, referralRepo, contract)

	// Handlers
	authHandler := handlers.NewAuthHandler(authUsecase)
	userHandler := handlers.NewUserHandler(userUsecase)
	investmentHandler := handlers.NewInvestmentHandler(investmentUsecase)
	referralHandler := handlers.NewReferralHandler(referralUsecase)
	stakingHandler := handlers.NewStakingHandler(stakingUsecase)
	adminHandler := handlers.NewAdminHandler(adminUsecase)

	// Background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	teamStatsJob := jobs.NewTeamStatsRefreshJob(userRepo, investmentRepo, referralRepo, cfg.Referral.TeamStatsInterval)
	go teamStatsJob.Start(ctx)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:       authHandler,
		userHandler:       userHandler,
		investmentHandler: investmentHandler,
		referralHandler:   referralHandler,
		stakingHandler:    stakingHandler,
		adminHandler:      adminHandler,
		authMiddleware:    middleware.AuthMiddleware(jwtService),
	})

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down server...")
		teamStatsJob.Stop()
		cancel()
	}()

	logger.Info(ctx, "Liberty staking backend starting", zap.String("port", cfg.Server.Port))

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
