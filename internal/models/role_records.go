package models

import (
	"time"

	"gorm.io/datatypes"
)

// Administrator, Manager and Member are mutually exclusive extensions of
// Account. Rows are only written through the role repository's ReplaceRole.

type Administrator struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	AccountID uint     `gorm:"uniqueIndex;not null" json:"account_id"`
	Account   *Account `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	AdminLevel        int            `gorm:"not null;default:1" json:"admin_level"`
	AccessRights      datatypes.JSON `json:"access_rights"`
	SystemPermissions datatypes.JSON `json:"system_permissions"`

	CreatedAt time.Time `json:"created_at"`
}

type Manager struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	AccountID uint     `gorm:"uniqueIndex;not null" json:"account_id"`
	Account   *Account `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	ManagementPermissions datatypes.JSON `json:"management_permissions"`
	ReportingAccess       datatypes.JSON `json:"reporting_access"`

	CreatedAt time.Time `json:"created_at"`
}

// Member is the "Default member" role record.
type Member struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	AccountID uint     `gorm:"uniqueIndex;not null" json:"account_id"`
	Account   *Account `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	MembershipID         string         `gorm:"size:36;uniqueIndex;not null" json:"membership_id"`
	PaymentBalance       Money          `gorm:"type:numeric(12,2);not null;default:0" json:"payment_balance"`
	NotificationSettings datatypes.JSON `json:"notification_settings"`

	CreatedAt time.Time `json:"created_at"`
}
