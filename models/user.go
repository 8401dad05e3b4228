package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Username     string         `json:"username" gorm:"size:64;uniqueIndex;not null"`
	Email        string         `json:"email" gorm:"size:120;uniqueIndex;not null"`
	PasswordHash string         `json:"-" gorm:"size:128;not null"`
	IsActive     bool           `json:"is_active" gorm:"not null;default:true"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Rounds []Round `json:"rounds,omitempty" gorm:"foreignKey:UserID"`
	Games  []Game  `json:"games,omitempty" gorm:"foreignKey:UserID"`
}
