package services

import (
	"testing"

	"nagari-society/internal/adapters/persistence/models"
	"nagari-society/internal/adapters/persistence/repositories"
	"nagari-society/internal/config"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func newTestConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:           "test_secret",
			RefreshSecret:    "test_refresh_secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
		Admin: config.AdminConfig{
			Alias:    "admin",
			Phone:    "9876543210",
			MPIN:     "1234",
			FullName: "Society Admin",
			FlatID:   "OFFICE",
		},
		Society: config.SocietyConfig{
			Name:              "Parasnath Nagari",
			MaintenanceAmount: 2500,
		},
	}
}

// newTestStack builds the full auth stack over an in-memory database
// with a fixed OTP code, the way the dev server runs.
func newTestStack(t *testing.T) (*AuthFlowService, *DirectoryService, *SessionService, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	cfg := newTestConfig()

	identityRepo := repositories.NewIdentityRepository(db)
	deviceRepo := repositories.NewDeviceSessionRepository(db)
	tokenRepo := repositories.NewRefreshTokenRepository(db)

	directory := NewDirectoryService(identityRepo, cfg)
	sessions := NewSessionService(deviceRepo, identityRepo, tokenRepo, cfg)
	otp := NewOTPService("1234")
	flows := NewAuthFlowService(directory, sessions, otp)

	return flows, directory, sessions, db
}

func seedAdmin(t *testing.T, db *gorm.DB) {
	t.Helper()
	if err := config.SeedAdminIdentity(db, newTestConfig()); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
}
