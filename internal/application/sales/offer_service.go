package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nexuscrm/backend/internal/domain/sales"
)

// defaultOfferValidity is how long a new offer stays open when the caller
// does not set valid_until.
const defaultOfferValidity = 30 * 24 * time.Hour

// OfferService handles offers, the first derived document of the sales chain.
// The client defaults from the opportunity and the total is always the sum of
// the line items; both derivations happen here and in the aggregate, never in
// the transport layer.
type OfferService struct {
	offerRepo       sales.OfferRepository
	opportunityRepo sales.OpportunityRepository
}

// NewOfferService creates a new OfferService
func NewOfferService(offerRepo sales.OfferRepository, opportunityRepo sales.OpportunityRepository) *OfferService {
	return &OfferService{offerRepo: offerRepo, opportunityRepo: opportunityRepo}
}

// Create creates a new offer derived from an opportunity. The OFF number
// allocation, item insertion and total recompute commit atomically.
func (s *OfferService) Create(ctx context.Context, req CreateOfferRequest) (*OfferResponse, error) {
	opportunity, err := loadParent(ctx, s.opportunityRepo.FindByID, req.OpportunityID, "opportunity_id", "offer")
	if err != nil {
		return nil, err
	}

	clientID := opportunity.ClientID
	if req.ClientID != nil {
		clientID = *req.ClientID
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}
	validUntil := date.Add(defaultOfferValidity)
	if req.ValidUntil != nil {
		validUntil = *req.ValidUntil
	}

	offer, err := sales.NewOffer("", clientID, opportunity.ID, date, validUntil)
	if err != nil {
		return nil, err
	}
	offer.Description = req.Description
	offer.Notes = req.Notes

	items, err := buildOfferItems(req.Items)
	if err != nil {
		return nil, err
	}
	offer.ReplaceItems(items)

	if err := s.offerRepo.Create(ctx, offer); err != nil {
		return nil, fmt.Errorf("failed to create offer: %w", err)
	}

	resp := ToOfferResponse(offer)
	return &resp, nil
}

// GetByID retrieves an offer with its items in stored order
func (s *OfferService) GetByID(ctx context.Context, id uuid.UUID) (*OfferResponse, error) {
	offer, err := s.offerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToOfferResponse(offer)
	return &resp, nil
}

// Update applies a partial update to an offer. A non-nil Items field replaces
// the stored lines entirely; the total is recomputed either way. Number,
// client and opportunity are immutable.
func (s *OfferService) Update(ctx context.Context, id uuid.UUID, req UpdateOfferRequest) (*OfferResponse, error) {
	offer, err := s.offerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Date != nil {
		offer.Date = *req.Date
	}
	if req.ValidUntil != nil {
		offer.ValidUntil = *req.ValidUntil
	}
	if req.Status != nil {
		if err := offer.SetStatus(sales.OfferStatus(*req.Status)); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		offer.Description = *req.Description
	}
	if req.Notes != nil {
		offer.Notes = *req.Notes
	}

	replaceItems := req.Items != nil
	if replaceItems {
		items, err := buildOfferItems(*req.Items)
		if err != nil {
			return nil, err
		}
		offer.ReplaceItems(items)
	}
	offer.Touch()

	if err := s.offerRepo.Update(ctx, offer, replaceItems); err != nil {
		return nil, fmt.Errorf("failed to update offer: %w", err)
	}

	resp := ToOfferResponse(offer)
	return &resp, nil
}

// Delete removes an offer and its items
func (s *OfferService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.offerRepo.Delete(ctx, id)
}

// List retrieves offers matching the filter
func (s *OfferService) List(ctx context.Context, filter ListFilter, clientID, opportunityID *uuid.UUID, status string) ([]OfferResponse, int64, error) {
	extra := make(map[string]interface{})
	if clientID != nil {
		extra["client_id"] = *clientID
	}
	if opportunityID != nil {
		extra["opportunity_id"] = *opportunityID
	}
	if status != "" {
		extra["status"] = status
	}
	f := toSharedFilter(filter, extra)

	offers, err := s.offerRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list offers: %w", err)
	}
	total, err := s.offerRepo.Count(ctx, f)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count offers: %w", err)
	}

	responses := make([]OfferResponse, 0, len(offers))
	for i := range offers {
		responses = append(responses, ToOfferResponse(&offers[i]))
	}
	return responses, total, nil
}

func buildOfferItems(requests []OfferItemRequest) ([]sales.OfferItem, error) {
	items := make([]sales.OfferItem, 0, len(requests))
	for i, r := range requests {
		item, err := sales.NewOfferItem(r.ProductCode, r.Description, r.Quantity, r.UnitPrice, r.Discount)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		items = append(items, *item)
	}
	return items, nil
}
