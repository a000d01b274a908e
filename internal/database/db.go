package database

import (
	"log"

	"coatops-backend/internal/config"
	"coatops-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Could not connect to the database: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	log.Println("Database connected. Migration complete.")
}

// Migrate runs AutoMigrate for every model. Split out from Init so tests can
// run it against their own (sqlite) handle.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Powder{},
		&models.PowderTransaction{},
		&models.GasLog{},
		&models.QCCheck{},
		&models.Job{},
	)
}
