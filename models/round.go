package models

import (
	"time"

	"gorm.io/gorm"
)

type Round struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	Title          string         `json:"title" gorm:"size:200;not null"`
	Label          string         `json:"label" gorm:"size:50;not null"` // e.g. "1".."6", "Music", "Visual"
	UserID         uint           `json:"user_id" gorm:"not null"`
	AttachmentPath string         `json:"attachment_path,omitempty" gorm:"size:500"`
	IsActive       bool           `json:"is_active" gorm:"not null;default:true"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	User       User        `json:"user,omitempty"`
	Questions  []Question  `json:"questions,omitempty" gorm:"foreignKey:RoundID;constraint:OnDelete:CASCADE"`
	GameRounds []GameRound `json:"game_rounds,omitempty" gorm:"foreignKey:RoundID;constraint:OnDelete:CASCADE"`
}
