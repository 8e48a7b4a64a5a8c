package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type DBConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifeTime int // minutes
}

type Config struct {
	Environment string
	HTTPAddr    string

	// Rolling window the slot materializer keeps filled.
	SlotHorizonDays int
	// Cron spec for the nightly re-materialization run.
	MaterializeCron string

	DB DBConfig
}

// Load reads configuration from the environment, with an optional .env
// file for local development.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	cfg := &Config{
		Environment:     getEnv("ENV", "development"),
		HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
		SlotHorizonDays: getEnvInt("SLOT_HORIZON_DAYS", 30),
		MaterializeCron: getEnv("MATERIALIZE_CRON", "0 3 * * *"),
		DB: DBConfig{
			Host:            getEnv("DB_HOST", "postgres"),
			User:            getEnv("DB_USER", "booking"),
			Password:        getEnv("DB_PASSWORD", "booking"),
			Name:            getEnv("DB_NAME", "booking_db"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			TimeZone:        getEnv("DB_TIMEZONE", "UTC"),
			Port:            getEnvInt("DB_PORT", 5432),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifeTime: getEnvInt("DB_CONN_MAX_LIFETIME_MIN", 30),
		},
	}

	if cfg.DB.Host == "" || cfg.DB.User == "" || cfg.DB.Name == "" {
		return nil, fmt.Errorf("invalid DB config: host/user/name must not be empty")
	}
	if cfg.SlotHorizonDays <= 0 {
		return nil, fmt.Errorf("SLOT_HORIZON_DAYS must be positive")
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
