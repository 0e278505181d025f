package purchase

import (
	"time"

	"github.com/google/uuid"
	"github.com/nexuscrm/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PurchaseOrderStatus represents the status of a purchase order
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusDraft     PurchaseOrderStatus = "DRAFT"
	PurchaseOrderStatusSent      PurchaseOrderStatus = "SENT"
	PurchaseOrderStatusReceived  PurchaseOrderStatus = "RECEIVED"
	PurchaseOrderStatusCompleted PurchaseOrderStatus = "COMPLETED"
	PurchaseOrderStatusCancelled PurchaseOrderStatus = "CANCELLED"
)

// IsValid checks if the status is a valid PurchaseOrderStatus
func (s PurchaseOrderStatus) IsValid() bool {
	switch s {
	case PurchaseOrderStatusDraft, PurchaseOrderStatusSent, PurchaseOrderStatusReceived,
		PurchaseOrderStatusCompleted, PurchaseOrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of PurchaseOrderStatus
func (s PurchaseOrderStatus) String() string {
	return string(s)
}

// PurchaseOrder is an order placed with a supplier. Purchase documents carry
// externally assigned numbers; they take no part in the sales number series.
type PurchaseOrder struct {
	shared.BaseEntity
	Number      string              `gorm:"size:50;not null;uniqueIndex"`
	SupplierID  uuid.UUID           `gorm:"type:uuid;not null;index"`
	Date        time.Time           `gorm:"not null"`
	Status      PurchaseOrderStatus `gorm:"size:20;not null;default:DRAFT"`
	TotalAmount decimal.Decimal     `gorm:"type:numeric(12,2);not null"`
	Notes       string
}

// NewPurchaseOrder creates a new draft purchase order
func NewPurchaseOrder(number string, supplierID uuid.UUID, date time.Time, total decimal.Decimal) (*PurchaseOrder, error) {
	if number == "" {
		return nil, shared.NewValidationError("number", "Purchase order number cannot be empty")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewValidationError("supplier_id", "Purchase order must belong to a supplier")
	}
	if total.IsNegative() {
		return nil, shared.NewValidationError("total_amount", "Purchase order total cannot be negative")
	}

	return &PurchaseOrder{
		BaseEntity:  shared.NewBaseEntity(),
		Number:      number,
		SupplierID:  supplierID,
		Date:        date,
		Status:      PurchaseOrderStatusDraft,
		TotalAmount: total.Round(2),
	}, nil
}

// SetStatus updates the purchase order status
func (o *PurchaseOrder) SetStatus(status PurchaseOrderStatus) error {
	if !status.IsValid() {
		return shared.NewValidationError("status", "Unknown purchase order status")
	}
	o.Status = status
	o.Touch()
	return nil
}
