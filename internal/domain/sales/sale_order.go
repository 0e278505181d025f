package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/nexuscrm/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// SaleOrderStatus represents the status of a sale order
type SaleOrderStatus string

const (
	SaleOrderStatusPending   SaleOrderStatus = "PENDING"
	SaleOrderStatusConfirmed SaleOrderStatus = "CONFIRMED"
	SaleOrderStatusShipped   SaleOrderStatus = "SHIPPED"
	SaleOrderStatusDelivered SaleOrderStatus = "DELIVERED"
	SaleOrderStatusCancelled SaleOrderStatus = "CANCELLED"
)

// IsValid checks if the status is a valid SaleOrderStatus
func (s SaleOrderStatus) IsValid() bool {
	switch s {
	case SaleOrderStatusPending, SaleOrderStatusConfirmed, SaleOrderStatusShipped,
		SaleOrderStatusDelivered, SaleOrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of SaleOrderStatus
func (s SaleOrderStatus) String() string {
	return string(s)
}

// SaleOrder is a confirmed sale, always derived from an offer. At most one
// order exists per offer. Client and total default from the offer when the
// caller does not supply them explicitly.
type SaleOrder struct {
	shared.BaseEntity
	Number        string          `gorm:"size:50;not null;uniqueIndex"`
	ClientID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	OfferID       *uuid.UUID      `gorm:"type:uuid;uniqueIndex"`
	Date          time.Time       `gorm:"not null"`
	InvoicingDate *time.Time
	Status        SaleOrderStatus `gorm:"size:20;not null;default:PENDING"`
	TotalAmount   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

// NewSaleOrder creates a new pending sale order derived from an offer. An
// empty number means the repository allocates one from the ORD series on
// create.
func NewSaleOrder(number string, clientID, offerID uuid.UUID, date time.Time, total decimal.Decimal) (*SaleOrder, error) {
	if clientID == uuid.Nil {
		return nil, shared.NewValidationError("client_id", "Order must belong to a client")
	}
	if offerID == uuid.Nil {
		return nil, shared.NewMissingParentError("offer_id", "sale order")
	}
	if total.IsNegative() {
		return nil, shared.NewValidationError("total_amount", "Order total cannot be negative")
	}

	offID := offerID
	return &SaleOrder{
		BaseEntity:  shared.NewBaseEntity(),
		Number:      number,
		ClientID:    clientID,
		OfferID:     &offID,
		Date:        date,
		Status:      SaleOrderStatusPending,
		TotalAmount: total.Round(2),
	}, nil
}

// SetStatus updates the order status
func (o *SaleOrder) SetStatus(status SaleOrderStatus) error {
	if !status.IsValid() {
		return shared.NewValidationError("status", "Unknown order status")
	}
	o.Status = status
	o.Touch()
	return nil
}

// SetInvoicingDate records when the order should be invoiced
func (o *SaleOrder) SetInvoicingDate(at time.Time) {
	o.InvoicingDate = &at
	o.Touch()
}
