package purchase

import (
	"github.com/nexuscrm/backend/internal/domain/shared"
)

// Supplier is a purchasing counterpart
type Supplier struct {
	shared.BaseEntity
	Name         string `gorm:"size:255;not null"`
	VATNumber    string `gorm:"size:50"`
	Email        string `gorm:"size:255"`
	Phone        string `gorm:"size:50"`
	Address      string
	PaymentTerms string `gorm:"size:100"`
}

// NewSupplier creates a new supplier
func NewSupplier(name string) (*Supplier, error) {
	if name == "" {
		return nil, shared.NewValidationError("name", "Supplier name cannot be empty")
	}
	return &Supplier{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
	}, nil
}
