package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/nexuscrm/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "DRAFT"
	InvoiceStatusIssued    InvoiceStatus = "ISSUED"
	InvoiceStatusPaid      InvoiceStatus = "PAID"
	InvoiceStatusOverdue   InvoiceStatus = "OVERDUE"
	InvoiceStatusCancelled InvoiceStatus = "CANCELLED"
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusIssued, InvoiceStatusPaid,
		InvoiceStatusOverdue, InvoiceStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// InvoiceItem is a priced line owned by one invoice. Invoice lines carry their
// own schema, distinct from offer items: a per-line tax rate is stored but has
// no computed effect, and the lines do not drive the invoice total, which is
// inherited from the order or supplied explicitly.
type InvoiceItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position    int             `gorm:"not null"`
	Product     string          `gorm:"size:100"`
	Description string          `gorm:"size:255;not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	TaxRate     decimal.Decimal `gorm:"type:numeric(5,2);not null"`
}

// NewInvoiceItem creates a new invoice line
func NewInvoiceItem(product, description string, quantity int, unitPrice, taxRate decimal.Decimal) (*InvoiceItem, error) {
	if description == "" {
		return nil, shared.NewValidationError("description", "Item description cannot be empty")
	}
	if quantity < 1 {
		return nil, shared.NewValidationError("quantity", "Item quantity must be at least 1")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewValidationError("unit_price", "Item unit price cannot be negative")
	}
	if taxRate.IsNegative() || taxRate.GreaterThan(oneHundred) {
		return nil, shared.NewValidationError("tax_rate", "Item tax rate must be between 0 and 100")
	}

	return &InvoiceItem{
		ID:          uuid.New(),
		Product:     product,
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		TaxRate:     taxRate,
	}, nil
}

// LineTotal returns quantity * unit_price for rendering purposes
func (i *InvoiceItem) LineTotal() decimal.Decimal {
	return decimal.NewFromInt(int64(i.Quantity)).Mul(i.UnitPrice)
}

// Invoice bills a client for a sale order. Client and total default from the
// order when not explicitly supplied.
type Invoice struct {
	shared.BaseEntity
	Number              string          `gorm:"size:50;not null;uniqueIndex"`
	ClientID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	OrderID             *uuid.UUID      `gorm:"type:uuid;index"`
	Date                time.Time       `gorm:"not null"`
	DueDate             time.Time       `gorm:"not null"`
	Status              InvoiceStatus   `gorm:"size:20;not null;default:DRAFT"`
	TotalAmount         decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	PaymentMethod       string          `gorm:"size:100"`
	TermsAndConditions  string
	Items               []InvoiceItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
}

// NewInvoice creates a new draft invoice derived from a sale order. An empty
// number means the repository allocates one from the INV series on create.
func NewInvoice(number string, clientID, orderID uuid.UUID, date, dueDate time.Time, total decimal.Decimal) (*Invoice, error) {
	if clientID == uuid.Nil {
		return nil, shared.NewValidationError("client_id", "Invoice must belong to a client")
	}
	if orderID == uuid.Nil {
		return nil, shared.NewMissingParentError("order_id", "invoice")
	}
	if total.IsNegative() {
		return nil, shared.NewValidationError("total_amount", "Invoice total cannot be negative")
	}

	ordID := orderID
	return &Invoice{
		BaseEntity:  shared.NewBaseEntity(),
		Number:      number,
		ClientID:    clientID,
		OrderID:     &ordID,
		Date:        date,
		DueDate:     dueDate,
		Status:      InvoiceStatusDraft,
		TotalAmount: total.Round(2),
		Items:       make([]InvoiceItem, 0),
	}, nil
}

// SetStatus updates the invoice status
func (inv *Invoice) SetStatus(status InvoiceStatus) error {
	if !status.IsValid() {
		return shared.NewValidationError("status", "Unknown invoice status")
	}
	inv.Status = status
	inv.Touch()
	return nil
}

// ReplaceItems swaps the full line collection. Invoice lines exist for
// rendering and record-keeping; the total is left untouched.
func (inv *Invoice) ReplaceItems(items []InvoiceItem) {
	inv.Items = make([]InvoiceItem, len(items))
	for idx := range items {
		items[idx].InvoiceID = inv.ID
		items[idx].Position = idx
		inv.Items[idx] = items[idx]
	}
	inv.Touch()
}
