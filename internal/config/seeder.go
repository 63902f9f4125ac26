package config

import (
	"errors"
	"log"
	"time"

	"nagari-society/internal/adapters/persistence/models"
	"nagari-society/internal/pkg/password"

	"gorm.io/gorm"
)

// SeedAdminIdentity provisions the administrator as a regular directory
// row. Login resolves the configured alias to this phone; there is no
// special-cased credential path in the auth code itself.
func SeedAdminIdentity(db *gorm.DB, cfg *Config) error {
	var existing models.Identity
	err := db.Where("phone = ?", cfg.Admin.Phone).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := password.HashMPIN(cfg.Admin.MPIN)
	if err != nil {
		return err
	}

	admin := models.Identity{
		FullName: cfg.Admin.FullName,
		Phone:    cfg.Admin.Phone,
		FlatID:   cfg.Admin.FlatID,
		Role:     models.RoleAdmin,
		MPINHash: hash,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin identity seeded: %s (%s)", admin.FullName, admin.Phone)
	return nil
}

// SeedSampleData seeds starter content so a fresh install is not empty.
// Each block is skipped when its table already has rows.
func SeedSampleData(db *gorm.DB) error {
	if err := seedNotices(db); err != nil {
		return err
	}
	if err := seedTasks(db); err != nil {
		return err
	}
	if err := seedVendors(db); err != nil {
		return err
	}
	if err := seedAGM(db); err != nil {
		return err
	}

	log.Println("✅ Sample data seeded successfully")
	return nil
}

func seedNotices(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Notice{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return db.Create(&models.Notice{
		Title:    "Water Supply Maintenance Tomorrow",
		Content:  "Water shutdown tomorrow 2am-6am.",
		Type:     models.NoticeAnnouncement,
		Tags:     "Maintenance",
		PostedBy: "Secretary",
	}).Error
}

func seedTasks(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Task{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return db.Create(&models.Task{
		Title:       "Submit Identity Proof",
		Description: "PAN/Aadhar for records.",
		DueDate:     time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC),
		Status:      models.TaskPending,
		Priority:    models.PriorityHigh,
	}).Error
}

func seedVendors(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Vendor{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return db.Create(&models.Vendor{
		Name:          "Metro Electricals",
		Service:       "Electrical",
		ContractStart: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		ContractEnd:   time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
	}).Error
}

func seedAGM(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.AGMSession{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return db.Create(&models.AGMSession{
		Year:    2024,
		Date:    "3rd March 2024",
		Time:    "10:00 AM",
		Venue:   "Clubhouse Hall",
		Status:  models.AGMCompleted,
		Quorum:  "Reached",
		Present: 54,
		Absent:  18,
	}).Error
}
