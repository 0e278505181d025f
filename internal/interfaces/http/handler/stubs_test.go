package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/nexuscrm/backend/internal/domain/sales"
	"github.com/nexuscrm/backend/internal/domain/shared"
)

// Function-field repository stubs. Unset fields fall back to empty results so
// each test only wires what it exercises.

type stubOpportunityRepo struct {
	findByID func(ctx context.Context, id uuid.UUID) (*sales.Opportunity, error)
}

func (s *stubOpportunityRepo) FindByID(ctx context.Context, id uuid.UUID) (*sales.Opportunity, error) {
	if s.findByID != nil {
		return s.findByID(ctx, id)
	}
	return nil, shared.ErrNotFound
}

func (s *stubOpportunityRepo) FindAll(ctx context.Context, filter shared.Filter) ([]sales.Opportunity, error) {
	return nil, nil
}

func (s *stubOpportunityRepo) Create(ctx context.Context, opportunity *sales.Opportunity) error {
	return nil
}

func (s *stubOpportunityRepo) Save(ctx context.Context, opportunity *sales.Opportunity) error {
	return nil
}

func (s *stubOpportunityRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (s *stubOpportunityRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return 0, nil
}

type stubOfferRepo struct {
	create   func(ctx context.Context, offer *sales.Offer) error
	findByID func(ctx context.Context, id uuid.UUID) (*sales.Offer, error)
}

func (s *stubOfferRepo) FindByID(ctx context.Context, id uuid.UUID) (*sales.Offer, error) {
	if s.findByID != nil {
		return s.findByID(ctx, id)
	}
	return nil, shared.ErrNotFound
}

func (s *stubOfferRepo) FindAll(ctx context.Context, filter shared.Filter) ([]sales.Offer, error) {
	return nil, nil
}

func (s *stubOfferRepo) Create(ctx context.Context, offer *sales.Offer) error {
	if s.create != nil {
		return s.create(ctx, offer)
	}
	return nil
}

func (s *stubOfferRepo) Update(ctx context.Context, offer *sales.Offer, replaceItems bool) error {
	return nil
}

func (s *stubOfferRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (s *stubOfferRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return 0, nil
}

func (s *stubOfferRepo) CountByOpportunity(ctx context.Context, opportunityID uuid.UUID) (int64, error) {
	return 0, nil
}

type stubInvoiceRepo struct {
	findByID func(ctx context.Context, id uuid.UUID) (*sales.Invoice, error)
}

func (s *stubInvoiceRepo) FindByID(ctx context.Context, id uuid.UUID) (*sales.Invoice, error) {
	if s.findByID != nil {
		return s.findByID(ctx, id)
	}
	return nil, shared.ErrNotFound
}

func (s *stubInvoiceRepo) FindAll(ctx context.Context, filter shared.Filter) ([]sales.Invoice, error) {
	return nil, nil
}

func (s *stubInvoiceRepo) Create(ctx context.Context, invoice *sales.Invoice) error { return nil }

func (s *stubInvoiceRepo) Update(ctx context.Context, invoice *sales.Invoice, replaceItems bool) error {
	return nil
}

func (s *stubInvoiceRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (s *stubInvoiceRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return 0, nil
}

type stubSaleOrderRepo struct{}

func (s *stubSaleOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*sales.SaleOrder, error) {
	return nil, shared.ErrNotFound
}

func (s *stubSaleOrderRepo) FindAll(ctx context.Context, filter shared.Filter) ([]sales.SaleOrder, error) {
	return nil, nil
}

func (s *stubSaleOrderRepo) Create(ctx context.Context, order *sales.SaleOrder) error { return nil }

func (s *stubSaleOrderRepo) Save(ctx context.Context, order *sales.SaleOrder) error { return nil }

func (s *stubSaleOrderRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (s *stubSaleOrderRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return 0, nil
}

type stubClientRepo struct {
	findByID func(ctx context.Context, id uuid.UUID) (*sales.Client, error)
}

func (s *stubClientRepo) FindByID(ctx context.Context, id uuid.UUID) (*sales.Client, error) {
	if s.findByID != nil {
		return s.findByID(ctx, id)
	}
	return nil, shared.ErrNotFound
}

func (s *stubClientRepo) FindAll(ctx context.Context, filter shared.Filter) ([]sales.Client, error) {
	return nil, nil
}

func (s *stubClientRepo) Save(ctx context.Context, client *sales.Client) error { return nil }

func (s *stubClientRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (s *stubClientRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return 0, nil
}
