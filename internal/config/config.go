package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode  string
	Port     string
	Database DatabaseConfig
	JWT      JWTConfig
	Admin    AdminConfig
	Society  SocietyConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Path string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	RefreshSecret    string
	AccessTokenMins  int
	RefreshTokenDays int
}

// AdminConfig describes the seeded administrator identity.
// The admin is an ordinary directory row provisioned at startup; the
// alias lets the login screen accept "admin" in place of the phone.
type AdminConfig struct {
	Alias    string
	Phone    string
	MPIN     string
	FullName string
	FlatID   string
}

// SocietyConfig holds society-level settings
type SocietyConfig struct {
	Name              string
	MaintenanceAmount float64
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	maintenance, _ := strconv.ParseFloat(getEnv("MAINTENANCE_AMOUNT", "2500"), 64)

	config := &Config{
		AppMode:  appMode,
		Port:     getEnv("PORT", "3000"),
		Database: DatabaseConfig{Path: getEnv("DB_PATH", "nagari.db")},
		JWT:      loadJWTConfig(appMode),
		Admin: AdminConfig{
			Alias:    getEnv("ADMIN_ALIAS", "admin"),
			Phone:    getEnv("ADMIN_PHONE", "9876543210"),
			MPIN:     getEnv("ADMIN_MPIN", "1234"),
			FullName: getEnv("ADMIN_NAME", "Society Admin"),
			FlatID:   getEnv("ADMIN_FLAT_ID", "OFFICE"),
		},
		Society: SocietyConfig{
			Name:              getEnv("SOCIETY_NAME", "Parasnath Nagari"),
			MaintenanceAmount: maintenance,
		},
	}

	// Set global config
	AppConfig = config

	log.Printf("✅ Configuration loaded successfully [MODE: %s]", appMode)
	return config, nil
}

// loadJWTConfig loads JWT config based on mode
func loadJWTConfig(mode string) JWTConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	accessMins, _ := strconv.Atoi(getEnv("ACCESS_TOKEN_MINUTES", "15"))
	refreshDays, _ := strconv.Atoi(getEnv("REFRESH_TOKEN_DAYS", "7"))

	return JWTConfig{
		Secret:           getEnv(prefix+"JWT_SECRET", "default_secret"),
		RefreshSecret:    getEnv(prefix+"JWT_REFRESH_SECRET", "default_refresh_secret"),
		AccessTokenMins:  accessMins,
		RefreshTokenDays: refreshDays,
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		return "https://nagari.example.com"
	}
	return origins
}
