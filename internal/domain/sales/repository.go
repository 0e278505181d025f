package sales

import (
	"context"

	"github.com/google/uuid"
	"github.com/nexuscrm/backend/internal/domain/shared"
)

// ClientRepository defines the interface for client persistence
type ClientRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Client, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Client, error)
	Save(ctx context.Context, client *Client) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// ContactRepository defines the interface for contact persistence
type ContactRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Contact, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Contact, error)
	FindByClient(ctx context.Context, clientID uuid.UUID) ([]Contact, error)
	Save(ctx context.Context, contact *Contact) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// OpportunityRepository defines the interface for opportunity persistence.
// Create allocates the document number inside the same transaction that
// inserts the record when the opportunity carries none.
type OpportunityRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Opportunity, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Opportunity, error)
	Create(ctx context.Context, opportunity *Opportunity) error
	Save(ctx context.Context, opportunity *Opportunity) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// OfferRepository defines the interface for offer persistence. Create and
// Update are the chain-mutation entry points: document, full line-item
// replacement and total recompute commit or roll back as one unit.
type OfferRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Offer, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Offer, error)
	// Create inserts the offer with its items, allocating the number when
	// absent and persisting the recomputed total last.
	Create(ctx context.Context, offer *Offer) error
	// Update saves the offer; when replaceItems is true the stored item set
	// is deleted and rewritten from the aggregate. The total is recomputed
	// and persisted regardless.
	Update(ctx context.Context, offer *Offer, replaceItems bool) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	CountByOpportunity(ctx context.Context, opportunityID uuid.UUID) (int64, error)
}

// SaleOrderRepository defines the interface for sale order persistence
type SaleOrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SaleOrder, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]SaleOrder, error)
	Create(ctx context.Context, order *SaleOrder) error
	Save(ctx context.Context, order *SaleOrder) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// InvoiceRepository defines the interface for invoice persistence
type InvoiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Invoice, error)
	Create(ctx context.Context, invoice *Invoice) error
	Update(ctx context.Context, invoice *Invoice, replaceItems bool) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// ContractRepository defines the interface for contract persistence
type ContractRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Contract, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Contract, error)
	Save(ctx context.Context, contract *Contract) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
