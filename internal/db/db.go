package db

import (
	"log"
	"time"

	"github.com/oficinaplus/oficina-api/internal/config"
	"github.com/oficinaplus/oficina-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Workshop{},
		&models.Motorist{},
		&models.Client{},
		&models.Vehicle{},
		&models.ServiceOrder{},
		&models.ServiceOrderItem{},
		&models.InventoryItem{},
		&models.Transaction{},
		&models.Appointment{},
		&models.Quote{},
		&models.Review{},
		&models.Diagnostic{},
		&models.MotoristVehicle{},
		&models.MaintenanceHistory{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	return db
}
