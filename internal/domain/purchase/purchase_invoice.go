package purchase

import (
	"time"

	"github.com/google/uuid"
	"github.com/nexuscrm/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PurchaseInvoiceStatus represents the status of a purchase invoice
type PurchaseInvoiceStatus string

const (
	PurchaseInvoiceStatusReceived PurchaseInvoiceStatus = "RECEIVED"
	PurchaseInvoiceStatusPaid     PurchaseInvoiceStatus = "PAID"
	PurchaseInvoiceStatusOverdue  PurchaseInvoiceStatus = "OVERDUE"
)

// IsValid checks if the status is a valid PurchaseInvoiceStatus
func (s PurchaseInvoiceStatus) IsValid() bool {
	switch s {
	case PurchaseInvoiceStatusReceived, PurchaseInvoiceStatusPaid, PurchaseInvoiceStatusOverdue:
		return true
	}
	return false
}

// String returns the string representation of PurchaseInvoiceStatus
func (s PurchaseInvoiceStatus) String() string {
	return string(s)
}

// PurchaseInvoice is a supplier's invoice. The number is the supplier's own
// and is not unique system-wide. When linked to a purchase order, the
// supplier must match the order's supplier.
type PurchaseInvoice struct {
	shared.BaseEntity
	Number      string                `gorm:"size:50;not null;index"`
	SupplierID  uuid.UUID             `gorm:"type:uuid;not null;index"`
	OrderID     *uuid.UUID            `gorm:"type:uuid;index"`
	Date        time.Time             `gorm:"not null"`
	DueDate     time.Time             `gorm:"not null"`
	TotalAmount decimal.Decimal       `gorm:"type:numeric(12,2);not null"`
	Status      PurchaseInvoiceStatus `gorm:"size:20;not null;default:RECEIVED"`
	Attachment  string                `gorm:"size:512"`
}

// NewPurchaseInvoice creates a new purchase invoice in the RECEIVED status
func NewPurchaseInvoice(number string, supplierID uuid.UUID, date, dueDate time.Time, total decimal.Decimal) (*PurchaseInvoice, error) {
	if number == "" {
		return nil, shared.NewValidationError("number", "Purchase invoice number cannot be empty")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewMissingParentError("supplier_id", "purchase invoice")
	}
	if total.IsNegative() {
		return nil, shared.NewValidationError("total_amount", "Purchase invoice total cannot be negative")
	}

	return &PurchaseInvoice{
		BaseEntity:  shared.NewBaseEntity(),
		Number:      number,
		SupplierID:  supplierID,
		Date:        date,
		DueDate:     dueDate,
		Status:      PurchaseInvoiceStatusReceived,
		TotalAmount: total.Round(2),
	}, nil
}

// SetStatus updates the purchase invoice status
func (inv *PurchaseInvoice) SetStatus(status PurchaseInvoiceStatus) error {
	if !status.IsValid() {
		return shared.NewValidationError("status", "Unknown purchase invoice status")
	}
	inv.Status = status
	inv.Touch()
	return nil
}

// LinkOrder attaches the invoice to a purchase order after checking that the
// order belongs to the invoice's supplier
func (inv *PurchaseInvoice) LinkOrder(order *PurchaseOrder) error {
	if order == nil {
		return shared.NewMissingParentError("order_id", "purchase invoice")
	}
	if order.SupplierID != inv.SupplierID {
		return shared.NewConflictingParentError("supplier_id", "Supplier must match the purchase order's supplier")
	}
	id := order.ID
	inv.OrderID = &id
	inv.Touch()
	return nil
}
