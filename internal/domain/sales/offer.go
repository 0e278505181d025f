package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/nexuscrm/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OfferStatus represents the status of an offer
type OfferStatus string

const (
	OfferStatusDraft    OfferStatus = "DRAFT"
	OfferStatusSent     OfferStatus = "SENT"
	OfferStatusAccepted OfferStatus = "ACCEPTED"
	OfferStatusRejected OfferStatus = "REJECTED"
	OfferStatusExpired  OfferStatus = "EXPIRED"
)

// IsValid checks if the status is a valid OfferStatus
func (s OfferStatus) IsValid() bool {
	switch s {
	case OfferStatusDraft, OfferStatusSent, OfferStatusAccepted, OfferStatusRejected, OfferStatusExpired:
		return true
	}
	return false
}

// String returns the string representation of OfferStatus
func (s OfferStatus) String() string {
	return string(s)
}

var oneHundred = decimal.NewFromInt(100)

// OfferItem is a priced line owned exclusively by one offer. It has no
// independent lifecycle: replacing an offer's items is always total.
type OfferItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OfferID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position    int             `gorm:"not null"`
	ProductCode string          `gorm:"size:50"`
	Description string          `gorm:"size:255;not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Discount    decimal.Decimal `gorm:"type:numeric(5,2);not null"`
}

// NewOfferItem creates a new offer line. Quantity must be at least 1 and the
// discount percentage must lie in the closed range [0,100]; out-of-range
// values are rejected, never clamped.
func NewOfferItem(productCode, description string, quantity int, unitPrice, discount decimal.Decimal) (*OfferItem, error) {
	if description == "" {
		return nil, shared.NewValidationError("description", "Item description cannot be empty")
	}
	if quantity < 1 {
		return nil, shared.NewValidationError("quantity", "Item quantity must be at least 1")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewValidationError("unit_price", "Item unit price cannot be negative")
	}
	if discount.IsNegative() || discount.GreaterThan(oneHundred) {
		return nil, shared.NewValidationError("discount", "Item discount must be between 0 and 100")
	}

	return &OfferItem{
		ID:          uuid.New(),
		ProductCode: productCode,
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Discount:    discount,
	}, nil
}

// LineTotal returns quantity * unit_price * (1 - discount/100) without
// intermediate rounding; only the aggregated offer total is rounded to the
// currency scale.
func (i *OfferItem) LineTotal() decimal.Decimal {
	gross := decimal.NewFromInt(int64(i.Quantity)).Mul(i.UnitPrice)
	factor := decimal.NewFromInt(1).Sub(i.Discount.Div(oneHundred))
	return gross.Mul(factor)
}

// Offer is a quotation for a client, always derived from an opportunity. Its
// total is the sum of its items' line totals and is never writable directly.
type Offer struct {
	shared.BaseEntity
	Number        string      `gorm:"size:50;not null;uniqueIndex"`
	ClientID      uuid.UUID   `gorm:"type:uuid;not null;index"`
	OpportunityID *uuid.UUID  `gorm:"type:uuid;index"`
	Date          time.Time   `gorm:"not null"`
	ValidUntil    time.Time   `gorm:"not null"`
	Status        OfferStatus `gorm:"size:20;not null;default:DRAFT"`
	TotalAmount   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Description   string
	Notes         string
	Items         []OfferItem `gorm:"foreignKey:OfferID;constraint:OnDelete:CASCADE"`
}

// NewOffer creates a new draft offer. The client is the one derived from the
// offer's opportunity by the caller. An empty number means the repository
// allocates one from the OFF series on create.
func NewOffer(number string, clientID, opportunityID uuid.UUID, date, validUntil time.Time) (*Offer, error) {
	if clientID == uuid.Nil {
		return nil, shared.NewValidationError("client_id", "Offer must belong to a client")
	}
	if opportunityID == uuid.Nil {
		return nil, shared.NewMissingParentError("opportunity_id", "offer")
	}

	oppID := opportunityID
	return &Offer{
		BaseEntity:    shared.NewBaseEntity(),
		Number:        number,
		ClientID:      clientID,
		OpportunityID: &oppID,
		Date:          date,
		ValidUntil:    validUntil,
		Status:        OfferStatusDraft,
		TotalAmount:   decimal.Zero,
		Items:         make([]OfferItem, 0),
	}, nil
}

// SetStatus updates the offer status
func (o *Offer) SetStatus(status OfferStatus) error {
	if !status.IsValid() {
		return shared.NewValidationError("status", "Unknown offer status")
	}
	o.Status = status
	o.Touch()
	return nil
}

// ReplaceItems swaps the full item collection and recomputes the total. The
// previous items are discarded entirely; persistence mirrors this as a
// delete-and-bulk-insert inside the enclosing transaction.
func (o *Offer) ReplaceItems(items []OfferItem) {
	o.Items = make([]OfferItem, len(items))
	for idx := range items {
		items[idx].OfferID = o.ID
		items[idx].Position = idx
		o.Items[idx] = items[idx]
	}
	o.RecalculateTotal()
	o.Touch()
}

// RecalculateTotal recomputes the stored total from the current item set,
// rounded to the currency scale. An empty item set yields zero. This is the
// only writer of TotalAmount.
func (o *Offer) RecalculateTotal() {
	total := decimal.Zero
	for idx := range o.Items {
		total = total.Add(o.Items[idx].LineTotal())
	}
	o.TotalAmount = total.Round(2)
}

// ItemCount returns the number of lines in the offer
func (o *Offer) ItemCount() int {
	return len(o.Items)
}
