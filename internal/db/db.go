package db

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/barber-queue/internal/config"
	"github.com/BruksfildServices01/barber-queue/internal/models"
	"github.com/BruksfildServices01/barber-queue/internal/timezone"
)

func NewDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	return db, nil
}

// Migrate creates the schema plus the indexes AutoMigrate can't express.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Barbershop{},
		&models.User{},
		&models.Service{},
		&models.Product{},
		&models.QueueEntry{},
		&models.Appointment{},
		&models.ClientProfile{},
		&models.ClientPhoto{},
		&models.BarberStatus{},
		&models.Expense{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	// uma chave de ordem por barbeiro entre as entradas em espera
	if err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_queue_waiting_order
		ON queue_entries (barber_id, queue_order)
		WHERE status = 'waiting' AND queue_order IS NOT NULL
	`).Error; err != nil {
		return fmt.Errorf("create waiting order index: %w", err)
	}

	if err := db.Exec(`
		UPDATE barbershops
		SET timezone = ?
		WHERE timezone IS NULL OR timezone = ''
	`, timezone.DefaultTimezone).Error; err != nil {
		return fmt.Errorf("backfill timezone: %w", err)
	}

	return nil
}
