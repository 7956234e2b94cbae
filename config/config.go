package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything the app reads from the environment. The document
// store and identity provider are hosted services; we only carry their
// coordinates here.
type Config struct {
	Port string

	StoreEndpoint string
	StoreProject  string
	StoreAPIKey   string

	DatabaseID string

	JWTSecret string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		StoreEndpoint: getEnv("STORE_ENDPOINT", "https://nyc.cloud.appwrite.io/v1"),
		StoreProject:  os.Getenv("STORE_PROJECT_ID"),
		StoreAPIKey:   os.Getenv("STORE_API_KEY"),
		DatabaseID:    getEnv("STORE_DATABASE_ID", "fuelwarden"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
	}

	if cfg.StoreProject == "" {
		log.Fatalf("STORE_PROJECT_ID is required")
	}
	if cfg.JWTSecret == "" {
		log.Fatalf("JWT_SECRET is required")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
