package database

import (
	"vibemarket-backend/internal/domain"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open connects to the Postgres listing store. Statements go out over the simple
// protocol because transaction poolers in front of hosted Postgres reuse server
// sessions and reject duplicate prepared statement names.
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
}

// AutoMigrate brings the vibes table and its moderation event log up to the
// current record shape. vibectl migrate and vibectl seed both run it.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.Vibe{}, &domain.VibeEvent{})
}
