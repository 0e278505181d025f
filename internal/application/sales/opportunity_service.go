package sales

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/nexuscrm/backend/internal/domain/sales"
	"github.com/nexuscrm/backend/internal/domain/shared"
)

// OpportunityService handles the sales pipeline entry point. Every downstream
// sales document ultimately hangs off an opportunity.
type OpportunityService struct {
	opportunityRepo sales.OpportunityRepository
	offerRepo       sales.OfferRepository
	clientRepo      sales.ClientRepository
}

// NewOpportunityService creates a new OpportunityService
func NewOpportunityService(
	opportunityRepo sales.OpportunityRepository,
	offerRepo sales.OfferRepository,
	clientRepo sales.ClientRepository,
) *OpportunityService {
	return &OpportunityService{
		opportunityRepo: opportunityRepo,
		offerRepo:       offerRepo,
		clientRepo:      clientRepo,
	}
}

// Create creates a new opportunity. The OPP number is allocated inside the
// same transaction that inserts the record.
func (s *OpportunityService) Create(ctx context.Context, req CreateOpportunityRequest) (*OpportunityResponse, error) {
	if _, err := s.clientRepo.FindByID(ctx, req.ClientID); err != nil {
		return nil, err
	}

	opportunity, err := sales.NewOpportunity("", req.ClientID, req.Name)
	if err != nil {
		return nil, err
	}
	opportunity.Description = req.Description
	if req.Stage != "" {
		if err := opportunity.SetStage(sales.OpportunityStage(req.Stage)); err != nil {
			return nil, err
		}
	}

	if err := s.opportunityRepo.Create(ctx, opportunity); err != nil {
		return nil, fmt.Errorf("failed to create opportunity: %w", err)
	}

	resp := ToOpportunityResponse(opportunity)
	return &resp, nil
}

// GetByID retrieves an opportunity
func (s *OpportunityService) GetByID(ctx context.Context, id uuid.UUID) (*OpportunityResponse, error) {
	opportunity, err := s.opportunityRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToOpportunityResponse(opportunity)
	return &resp, nil
}

// Update applies a partial update to an opportunity. The number and the
// client are immutable.
func (s *OpportunityService) Update(ctx context.Context, id uuid.UUID, req UpdateOpportunityRequest) (*OpportunityResponse, error) {
	opportunity, err := s.opportunityRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, shared.NewValidationError("name", "Opportunity name cannot be empty")
		}
		opportunity.Name = *req.Name
	}
	if req.Description != nil {
		opportunity.Description = *req.Description
	}
	if req.Stage != nil {
		if err := opportunity.SetStage(sales.OpportunityStage(*req.Stage)); err != nil {
			return nil, err
		}
	}
	if req.CloseDate != nil {
		opportunity.Close(*req.CloseDate)
	}
	opportunity.Touch()

	if err := s.opportunityRepo.Save(ctx, opportunity); err != nil {
		return nil, fmt.Errorf("failed to update opportunity: %w", err)
	}

	resp := ToOpportunityResponse(opportunity)
	return &resp, nil
}

// Delete removes an opportunity. Opportunities with derived offers cannot be
// deleted, the chain below them would lose its root.
func (s *OpportunityService) Delete(ctx context.Context, id uuid.UUID) error {
	count, err := s.offerRepo.CountByOpportunity(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check derived offers: %w", err)
	}
	if count > 0 {
		return shared.NewDomainError("INVALID_STATE", "Opportunity has derived offers and cannot be deleted")
	}
	return s.opportunityRepo.Delete(ctx, id)
}

// List retrieves opportunities matching the filter
func (s *OpportunityService) List(ctx context.Context, filter ListFilter, clientID *uuid.UUID, stage string) ([]OpportunityResponse, int64, error) {
	extra := make(map[string]interface{})
	if clientID != nil {
		extra["client_id"] = *clientID
	}
	if stage != "" {
		extra["stage"] = stage
	}
	f := toSharedFilter(filter, extra)

	opportunities, err := s.opportunityRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list opportunities: %w", err)
	}
	total, err := s.opportunityRepo.Count(ctx, f)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count opportunities: %w", err)
	}

	responses := make([]OpportunityResponse, 0, len(opportunities))
	for i := range opportunities {
		responses = append(responses, ToOpportunityResponse(&opportunities[i]))
	}
	return responses, total, nil
}
