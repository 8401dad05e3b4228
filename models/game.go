package models

import (
	"time"

	"gorm.io/gorm"
)

type Game struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"size:200;not null"`
	GameDate  time.Time      `json:"game_date" gorm:"type:date;not null"`
	UserID    uint           `json:"user_id" gorm:"not null"`
	IsActive  bool           `json:"is_active" gorm:"not null;default:true"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	User       User        `json:"user,omitempty"`
	GameRounds []GameRound `json:"game_rounds,omitempty" gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE"`
}
