package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	ServerPort      int
	DatabasePath    string
	SecretKey       string
	SessionDuration time.Duration
	BcryptCost      int
	MigrationsPath  string
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return duration
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	cfg := &Config{
		ServerPort:      getEnvAsInt("SERVER_PORT", 8080),
		DatabasePath:    getEnv("DATABASE_PATH", "blog.sqlite"),
		SecretKey:       getEnv("SECRET_KEY", "dev"),
		SessionDuration: parseDuration(getEnv("SESSION_DURATION", "24h"), 24*time.Hour),
		BcryptCost:      getEnvAsInt("BCRYPT_COST", bcrypt.DefaultCost),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "migrations/001_create_tables.sql"),
	}

	if cfg.SecretKey == "dev" {
		log.Println("Warning: SECRET_KEY is the development default, set it in production")
	}

	return cfg
}
