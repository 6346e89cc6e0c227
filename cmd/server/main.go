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

	"finsim.backend/internal/config"
	"finsim.backend/internal/infrastructure/email"
	"finsim.backend/internal/infrastructure/jobs"
	"finsim.backend/internal/infrastructure/oauth"
	"finsim.backend/internal/infrastructure/payments"
	"finsim.backend/internal/infrastructure/repositories"
	"finsim.backend/internal/interfaces/http/handlers"
	"finsim.backend/internal/interfaces/http/middleware"
	"finsim.backend/internal/usecases"
	"finsim.backend/pkg/jwt"
	"finsim.backend/pkg/logger"
	"finsim.backend/pkg/redis"
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
	newSessionStore = redis.NewSessionStore
	runServer       = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB        = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
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

	if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
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
		log.Printf("⚠️ Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")
	}

	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	otpRepo := repositories.NewOTPChallengeRepository(db)
	adminRepo := repositories.NewAdminRepository(db)
	planRepo := repositories.NewPlanRepository(db)
	profileRepo := repositories.NewProfileRepository(db)
	ticketRepo := repositories.NewTicketRepository(db)

	sessionStore, err := newSessionStore(cfg.Security.SessionEncryptionKey)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}

	// Gateways
	mailer, err := email.NewSESMailer(cfg.Email)
	if err != nil {
		return fmt.Errorf("failed to initialize mailer: %w", err)
	}
	paymentGateway := payments.NewStripeClient(cfg.Stripe)
	googleProvider := oauth.NewGoogleProvider(cfg.Google)

	// Usecases
	authUsecase := usecases.NewAuthUsecase(userRepo, otpRepo, profileRepo, jwtService, sessionStore, mailer, googleProvider, cfg.OTP.TTL, cfg.JWT.RefreshExpiry)
	adminUsecase := usecases.NewAdminUsecase(adminRepo, userRepo, profileRepo, otpRepo, jwtService, mailer, cfg.OTP.TTL)
	planUsecase := usecases.NewPlanUsecase(planRepo)
	subscriptionUsecase := usecases.NewSubscriptionUsecase(planRepo, profileRepo, userRepo, paymentGateway)
	profileUsecase := usecases.NewProfileUsecase(profileRepo, userRepo)
	ticketUsecase := usecases.NewTicketUsecase(ticketRepo, userRepo, mailer)

	// Handlers
	authHandler := handlers.NewAuthHandler(authUsecase)
	adminHandler := handlers.NewAdminHandler(adminUsecase, subscriptionUsecase)
	planHandler := handlers.NewPlanHandler(planUsecase)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionUsecase, paymentGateway)
	profileHandler := handlers.NewProfileHandler(profileUsecase)
	ticketHandler := handlers.NewTicketHandler(ticketUsecase)

	// Background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sweeper := jobs.NewOTPExpiryJob(otpRepo, cfg.OTP.SweepInterval)
	go sweeper.Start(ctx)

	// Router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:         authHandler,
		adminHandler:        adminHandler,
		planHandler:         planHandler,
		subscriptionHandler: subscriptionHandler,
		profileHandler:      profileHandler,
		ticketHandler:       ticketHandler,
		userAuth:            middleware.AuthMiddleware(jwtService),
		adminAuth:           middleware.AdminAuthMiddleware(jwtService),
		superAdminOnly:      middleware.RequireSuperAdmin(adminRepo),
	})

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down server...")
		sweeper.Stop()
		cancel()
	}()

	log.Printf("🚀 FinSim Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
