package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration for our application
type Config struct {
	Port                 string
	Origin               string
	Environment          string
	JWTSecret            string
	JWTExpirationMinutes int
	Database             DatabaseConfig
	Redis                RedisConfig
	OTP                  OTPConfig
	SMS                  SMSConfig
	Log                  LogConfig
}

// DatabaseConfig holds database connection details
type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	DSN      string
}

// RedisConfig holds the Redis connection used for one-time passwords.
// An empty Addr selects the in-process store.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// OTPConfig holds one-time password settings
type OTPConfig struct {
	ExpirationMinutes    int
	SweepIntervalSeconds int
	KeyPrefix            string
}

// SMSConfig holds the SMS gateway settings. Without a URL codes are only logged.
type SMSConfig struct {
	GatewayURL string
	APIKey     string
	Sender     string
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string
	Format string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	driver := getEnv("DB_DRIVER", "mysql")
	defaultPort := "3306"
	if driver == "postgres" {
		defaultPort = "5432"
	}

	// Load database configuration
	dbConfig := DatabaseConfig{
		Driver:   driver,
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", defaultPort),
		Username: getEnv("DB_USERNAME", "root"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "clinic"),
	}
	dbConfig.DSN = getEnv("DB_DSN", buildDSN(dbConfig))

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	jwtExpMinutes, err := strconv.Atoi(getEnv("JWT_EXPIRATION_MINUTES", "1440"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRATION_MINUTES: %w", err)
	}

	otpExpMinutes, err := strconv.Atoi(getEnv("OTP_EXPIRATION_MINUTES", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid OTP_EXPIRATION_MINUTES: %w", err)
	}

	otpSweepSeconds, err := strconv.Atoi(getEnv("OTP_SWEEP_INTERVAL_SECONDS", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid OTP_SWEEP_INTERVAL_SECONDS: %w", err)
	}

	// Return complete configuration
	return &Config{
		Port:                 getEnv("PORT", "8080"),
		Origin:               getEnv("ORIGIN", "http://localhost:3000"),
		Environment:          getEnv("APP_ENV", "development"),
		JWTSecret:            getEnv("JWT_SECRET", "default_jwt_secret"),
		JWTExpirationMinutes: jwtExpMinutes,
		Database:             dbConfig,
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		OTP: OTPConfig{
			ExpirationMinutes:    otpExpMinutes,
			SweepIntervalSeconds: otpSweepSeconds,
			KeyPrefix:            getEnv("OTP_KEY_PREFIX", "otp:reset-password:"),
		},
		SMS: SMSConfig{
			GatewayURL: getEnv("SMS_GATEWAY_URL", ""),
			APIKey:     getEnv("SMS_API_KEY", ""),
			Sender:     getEnv("SMS_SENDER", "CLINIC"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}, nil
}

// buildDSN renders the Data Source Name for the configured driver.
func buildDSN(db DatabaseConfig) string {
	if db.Driver == "postgres" {
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			db.Host, db.Username, db.Password, db.Name, db.Port)
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		db.Username, db.Password, db.Host, db.Port, db.Name)
}

// Helper function to get environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
