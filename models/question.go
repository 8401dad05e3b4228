package models

import (
	"time"

	"gorm.io/gorm"
)

type Question struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	RoundID   uint           `json:"round_id" gorm:"not null;index"`
	Text      string         `json:"text" gorm:"type:text;not null"`
	Answer    string         `json:"answer" gorm:"type:text;not null"`
	Number    int            `json:"number" gorm:"not null"` // 1-based position within the round
	Points    int            `json:"points" gorm:"not null;default:1"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Round Round `json:"round,omitempty"`
}
