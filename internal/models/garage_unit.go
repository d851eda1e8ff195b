package models

import (
	"time"

	"gorm.io/datatypes"
)

type GarageUnit struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	GarageNumber string  `gorm:"size:20;uniqueIndex;not null" json:"garage_number"`
	Location     *string `gorm:"size:255" json:"location"`
	Size         *string `gorm:"size:50" json:"size"`

	Status  string   `gorm:"size:20;not null;default:'available';index" json:"status"`
	OwnerID *uint    `gorm:"index" json:"owner_id"`
	Owner   *Account `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	AccessSettings datatypes.JSON `json:"access_settings"`
	UtilityData    datatypes.JSON `json:"utility_data"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
