package persistence

import (
	"time"

	"gorm.io/gorm"
)

// GameRecordModel represents the game_records table. The whole aggregate is
// stored as a JSON document; round history is part of the document, not a
// separate table.
type GameRecordModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Document  string    `gorm:"column:document;type:text;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (GameRecordModel) TableName() string {
	return "game_records"
}

// GameLockModel represents the game_locks table backing the per-game
// advisory lock. A row existing means the game is claimed; ExpiresAt bounds
// how long a crashed holder can block others.
type GameLockModel struct {
	GameID    string    `gorm:"column:game_id;primaryKey"`
	Owner     string    `gorm:"column:owner;not null"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null"`
}

func (GameLockModel) TableName() string {
	return "game_locks"
}

// AutoMigrate creates or updates the schema for all persistence models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&GameRecordModel{}, &GameLockModel{})
}
