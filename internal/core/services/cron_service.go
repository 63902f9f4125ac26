package services

import (
	"context"
	"log"
	"time"

	"nagari-society/internal/adapters/persistence/repositories"
	"nagari-society/internal/config"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// CronService runs the scheduled society jobs: the monthly maintenance
// billing run, the daily vendor contract sweep and the hourly refresh
// token purge.
type CronService struct {
	cron      *cron.Cron
	cfg       *config.Config
	payments  *PaymentService
	vendors   *VendorService
	tokenRepo repositories.RefreshTokenRepository
}

// NewCronService creates a new cron service wired to its own
// repositories, mirroring how the server wires the HTTP side.
func NewCronService(db *gorm.DB, cfg *config.Config) *CronService {
	identityRepo := repositories.NewIdentityRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	vendorRepo := repositories.NewVendorRepository(db)
	tokenRepo := repositories.NewRefreshTokenRepository(db)

	return &CronService{
		cron:      cron.New(),
		cfg:       cfg,
		payments:  NewPaymentService(paymentRepo, identityRepo),
		vendors:   NewVendorService(vendorRepo),
		tokenRepo: tokenRepo,
	}
}

// Start registers and launches all scheduled jobs
func (s *CronService) Start() {
	// Monthly maintenance dues on the 1st at 09:00
	if _, err := s.cron.AddFunc("0 9 1 * *", s.runMonthlyBilling); err != nil {
		log.Printf("⚠️ Failed to schedule monthly billing: %v", err)
	}

	// Vendor contract sweep daily at 08:30
	if _, err := s.cron.AddFunc("30 8 * * *", s.runVendorSweep); err != nil {
		log.Printf("⚠️ Failed to schedule vendor sweep: %v", err)
	}

	// Purge expired refresh tokens hourly
	if _, err := s.cron.AddFunc("@hourly", s.runTokenPurge); err != nil {
		log.Printf("⚠️ Failed to schedule token purge: %v", err)
	}

	s.cron.Start()
	log.Println("🚀 CronService started")
}

// Stop gracefully stops the scheduler
func (s *CronService) Stop() {
	s.cron.Stop()
	log.Println("🛑 CronService stopped")
}

func (s *CronService) runMonthlyBilling() {
	ctx := context.Background()
	period := time.Now().Format("January 2006")

	created, err := s.payments.GenerateMonthlyDues(ctx, period, s.cfg.Society.MaintenanceAmount)
	if err != nil {
		log.Printf("⚠️ Monthly billing failed for %s: %v", period, err)
		return
	}
	log.Printf("✅ Monthly billing done: %d dues for %s", created, period)
}

func (s *CronService) runVendorSweep() {
	ctx := context.Background()

	expiring, err := s.vendors.ExpiringSoon(ctx)
	if err != nil {
		log.Printf("⚠️ Vendor sweep failed: %v", err)
		return
	}
	for _, vendor := range expiring {
		log.Printf("⚠️ Vendor contract expiring: %s (%s) in %d days", vendor.Name, vendor.Service, vendor.ExpiresInDays)
	}
}

func (s *CronService) runTokenPurge() {
	if err := s.tokenRepo.DeleteExpired(context.Background()); err != nil {
		log.Printf("⚠️ Token purge failed: %v", err)
	}
}
