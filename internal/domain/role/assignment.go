package role

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/BruksfildServices01/garage-coop/internal/models"
)

// Assignment is the single role record that replaces whatever an account
// held before. Exactly one of the record pointers is set.
type Assignment struct {
	Role          Role
	Administrator *models.Administrator
	Manager       *models.Manager
	Member        *models.Member
}

// NewAssignment builds the record for target with its default attributes.
func NewAssignment(accountID uint, target Role) (Assignment, error) {
	a := Assignment{Role: target}

	switch target {
	case Admin:
		a.Administrator = &models.Administrator{
			AccountID:         accountID,
			AdminLevel:        1,
			AccessRights:      datatypes.JSON(`{}`),
			SystemPermissions: datatypes.JSON(`{}`),
		}
	case Manager:
		a.Manager = &models.Manager{
			AccountID:             accountID,
			ManagementPermissions: datatypes.JSON(`{}`),
			ReportingAccess:       datatypes.JSON(`{}`),
		}
	case Member:
		a.Member = &models.Member{
			AccountID:            accountID,
			MembershipID:         uuid.NewString(),
			PaymentBalance:       0,
			NotificationSettings: datatypes.JSON(`{"email":true}`),
		}
	default:
		_, err := Parse(string(target))
		return Assignment{}, err
	}

	return a, nil
}
