package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"clinic-booking-server/internal/config"
	"clinic-booking-server/internal/handlers"
	"clinic-booking-server/internal/logger"
	"clinic-booking-server/internal/models"
	"clinic-booking-server/internal/notify"
	"clinic-booking-server/internal/otp"
	"clinic-booking-server/internal/repositories"
	"clinic-booking-server/internal/routes"
	"clinic-booking-server/internal/security"
	"clinic-booking-server/internal/services"
	"clinic-booking-server/internal/utils"
)

func main() {
	// Load environment variables; a missing .env falls back to the process environment
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	appLogger, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "clinic-booking-server")
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer appLogger.Sync()

	// Initialize database connection
	db, err := models.InitDB(models.DatabaseConfig{
		Driver: cfg.Database.Driver,
		DSN:    cfg.Database.DSN,
	})
	if err != nil {
		appLogger.Fatal("Error connecting to database", zap.Error(err))
	}

	accountRepo := repositories.NewAccountRepository(db)
	customerRepo := repositories.NewCustomerRepository(db)
	doctorRepo := repositories.NewDoctorRepository(db)
	appointmentRepo := repositories.NewAppointmentRepository(db)
	blogRepo := repositories.NewBlogRepository(db)

	otpStore, stopOTP := newOTPStore(cfg, appLogger)
	defer stopOTP()

	tokens := utils.NewTokenService(cfg.JWTSecret, time.Duration(cfg.JWTExpirationMinutes)*time.Minute)

	customerService := services.NewCustomerService(customerRepo, accountRepo, appLogger)
	authService := services.NewAuthService(services.AuthDependencies{
		Accounts:      accountRepo,
		Customers:     customerService,
		Transactor:    repositories.NewTransactor(db),
		Encoder:       security.NewBcryptEncoder(0),
		Tokens:        tokens,
		OTPs:          otpStore,
		SMS:           newSMSSender(cfg, appLogger),
		OTPExpiration: time.Duration(cfg.OTP.ExpirationMinutes) * time.Minute,
		Logger:        appLogger,
	})
	appointmentService := services.NewAppointmentService(appointmentRepo, customerRepo, doctorRepo, appLogger)
	blogService := services.NewBlogService(blogRepo)

	// Initialize Gin router
	router := gin.Default()

	// Configure CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Origin}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	corsConfig.ExposeHeaders = []string{"Content-Disposition"}
	router.Use(cors.New(corsConfig))

	routes.SetupRoutes(router, routes.Handlers{
		Auth:          handlers.NewAuthHandler(authService),
		Accounts:      handlers.NewAccountHandler(authService),
		Appointments:  handlers.NewAppointmentHandler(appointmentService, customerService),
		Blogs:         handlers.NewBlogHandler(blogService),
		Tokens:        tokens,
		AccountStatus: authService,
	})

	// Start server
	serverAddr := fmt.Sprintf(":%s", cfg.Port)
	appLogger.Info("Server running", zap.String("port", cfg.Port), zap.String("env", cfg.Environment))
	if err := router.Run(serverAddr); err != nil {
		appLogger.Fatal("Failed to start server", zap.Error(err))
	}
}

// newOTPStore picks Redis when REDIS_ADDR is set, else an in-process store
// swept on a schedule. The returned func releases the store's resources.
func newOTPStore(cfg *config.Config, appLogger *zap.Logger) (otp.Store, func()) {
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			appLogger.Fatal("Error connecting to redis", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}

		appLogger.Info("Using redis otp store", zap.String("addr", cfg.Redis.Addr))
		return otp.NewRedisStore(client, cfg.OTP.KeyPrefix, appLogger), func() { _ = client.Close() }
	}

	store := otp.NewMemoryStore(appLogger)
	scheduler, err := store.StartSweeper(time.Duration(cfg.OTP.SweepIntervalSeconds) * time.Second)
	if err != nil {
		appLogger.Fatal("Error starting otp sweeper", zap.Error(err))
	}
	return store, scheduler.Stop
}

func newSMSSender(cfg *config.Config, appLogger *zap.Logger) notify.SMSSender {
	if cfg.SMS.GatewayURL == "" {
		return notify.NewLogSender(appLogger)
	}
	return notify.NewGatewaySender(cfg.SMS.GatewayURL, cfg.SMS.APIKey, cfg.SMS.Sender, appLogger)
}
