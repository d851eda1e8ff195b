package models

import (
	"time"

	"gorm.io/datatypes"
)

type Account struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"size:100;not null" json:"name"`
	Email        string         `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone        string         `gorm:"size:20" json:"phone"`
	PasswordHash string         `gorm:"size:255;not null" json:"-"`
	Status       string         `gorm:"size:20;not null;default:'active'" json:"status"`
	PhotoKey     *string        `gorm:"size:255" json:"photo_key"`
	Settings     datatypes.JSON `json:"settings"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
