package models

import (
	"time"

	"gorm.io/gorm"
)

// GameRound links a Round into a Game at a fixed position. Order values are
// whatever the game owner supplied; they are not kept dense or unique.
type GameRound struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	GameID    uint           `json:"game_id" gorm:"not null;index"`
	RoundID   uint           `json:"round_id" gorm:"not null;index"`
	Order     int            `json:"order" gorm:"column:round_order;not null"`
	AddedAt   time.Time      `json:"added_at"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Game  Game  `json:"game,omitempty"`
	Round Round `json:"round,omitempty"`
}
