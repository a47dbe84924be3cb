package database

import (
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"gymcore-backend/internal/config"
	"gymcore-backend/internal/models"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("could not connect to database")
	}

	if err := Migrate(DB); err != nil {
		log.Fatal().Err(err).Msg("auto-migration failed")
	}

	log.Info().Msg("database connected, migration complete")
}

// Migrate is shared with the test setup, which runs it against SQLite.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Sale{},
		&models.Customer{},
		&models.LogEntry{},
		&models.Locker{},
		&models.Expense{},
		&models.Note{},
		&models.AuditLog{},
	)
}
