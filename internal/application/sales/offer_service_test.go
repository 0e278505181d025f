package sales

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nexuscrm/backend/internal/domain/sales"
	"github.com/nexuscrm/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestClientID() uuid.UUID {
	return uuid.MustParse("11111111-1111-1111-1111-111111111111")
}

func newTestOpportunityID() uuid.UUID {
	return uuid.MustParse("22222222-2222-2222-2222-222222222222")
}

func createTestOpportunity() *sales.Opportunity {
	opportunity, _ := sales.NewOpportunity("OPP-2025-001", newTestClientID(), "Platform rollout")
	opportunity.ID = newTestOpportunityID()
	return opportunity
}

func createPersistedOffer(t *testing.T) *sales.Offer {
	t.Helper()
	offer, err := sales.NewOffer("OFF-2025-001", newTestClientID(), newTestOpportunityID(),
		time.Now(), time.Now().AddDate(0, 1, 0))
	require.NoError(t, err)
	item, err := sales.NewOfferItem("", "Setup fee", 1, decimal.NewFromInt(500), decimal.Zero)
	require.NoError(t, err)
	offer.ReplaceItems([]sales.OfferItem{*item})
	return offer
}

func TestOfferService_Create_DerivesClientFromOpportunity(t *testing.T) {
	mockOfferRepo := new(MockOfferRepository)
	mockOpportunityRepo := new(MockOpportunityRepository)
	service := NewOfferService(mockOfferRepo, mockOpportunityRepo)

	ctx := context.Background()
	opportunity := createTestOpportunity()
	req := CreateOfferRequest{
		OpportunityID: opportunity.ID,
		Items: []OfferItemRequest{
			{Description: "Widget", Quantity: 2, UnitPrice: decimal.NewFromInt(100), Discount: decimal.Zero},
			{Description: "Gadget", Quantity: 1, UnitPrice: decimal.NewFromInt(50), Discount: decimal.NewFromInt(10)},
		},
	}

	mockOpportunityRepo.On("FindByID", ctx, opportunity.ID).Return(opportunity, nil)
	mockOfferRepo.On("Create", ctx, mock.AnythingOfType("*sales.Offer")).Return(nil)

	result, err := service.Create(ctx, req)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, opportunity.ClientID, result.ClientID)
	assert.Equal(t, "245.00", result.TotalAmount.StringFixed(2))
	assert.Len(t, result.Items, 2)
	assert.Equal(t, 0, result.Items[0].Position)
	mockOfferRepo.AssertExpectations(t)
	mockOpportunityRepo.AssertExpectations(t)
}

func TestOfferService_Create_ExplicitClientWins(t *testing.T) {
	mockOfferRepo := new(MockOfferRepository)
	mockOpportunityRepo := new(MockOpportunityRepository)
	service := NewOfferService(mockOfferRepo, mockOpportunityRepo)

	ctx := context.Background()
	opportunity := createTestOpportunity()
	explicitClient := uuid.MustParse("99999999-9999-9999-9999-999999999999")
	req := CreateOfferRequest{
		OpportunityID: opportunity.ID,
		ClientID:      &explicitClient,
	}

	mockOpportunityRepo.On("FindByID", ctx, opportunity.ID).Return(opportunity, nil)
	mockOfferRepo.On("Create", ctx, mock.AnythingOfType("*sales.Offer")).Return(nil)

	result, err := service.Create(ctx, req)

	assert.NoError(t, err)
	assert.Equal(t, explicitClient, result.ClientID)
}

func TestOfferService_Create_MissingOpportunity(t *testing.T) {
	mockOfferRepo := new(MockOfferRepository)
	mockOpportunityRepo := new(MockOpportunityRepository)
	service := NewOfferService(mockOfferRepo, mockOpportunityRepo)

	ctx := context.Background()
	opportunityID := newTestOpportunityID()
	mockOpportunityRepo.On("FindByID", ctx, opportunityID).Return(nil, shared.ErrNotFound)

	result, err := service.Create(ctx, CreateOfferRequest{OpportunityID: opportunityID})

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "MISSING_PARENT_REFERENCE", domainErr.Code)
	mockOfferRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOfferService_Create_RejectsInvalidItem(t *testing.T) {
	mockOfferRepo := new(MockOfferRepository)
	mockOpportunityRepo := new(MockOpportunityRepository)
	service := NewOfferService(mockOfferRepo, mockOpportunityRepo)

	ctx := context.Background()
	opportunity := createTestOpportunity()
	req := CreateOfferRequest{
		OpportunityID: opportunity.ID,
		Items: []OfferItemRequest{
			{Description: "Bad line", Quantity: 1, UnitPrice: decimal.NewFromInt(10), Discount: decimal.NewFromInt(150)},
		},
	}

	mockOpportunityRepo.On("FindByID", ctx, opportunity.ID).Return(opportunity, nil)

	result, err := service.Create(ctx, req)

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
	mockOfferRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOfferService_Update_ReplacesItemsAndRecomputesTotal(t *testing.T) {
	mockOfferRepo := new(MockOfferRepository)
	mockOpportunityRepo := new(MockOpportunityRepository)
	service := NewOfferService(mockOfferRepo, mockOpportunityRepo)

	ctx := context.Background()
	offer := createPersistedOffer(t)
	newItems := []OfferItemRequest{
		{Description: "Replacement", Quantity: 3, UnitPrice: decimal.NewFromInt(10), Discount: decimal.Zero},
	}

	mockOfferRepo.On("FindByID", ctx, offer.ID).Return(offer, nil)
	mockOfferRepo.On("Update", ctx, mock.AnythingOfType("*sales.Offer"), true).Return(nil)

	result, err := service.Update(ctx, offer.ID, UpdateOfferRequest{Items: &newItems})

	assert.NoError(t, err)
	assert.Equal(t, "30.00", result.TotalAmount.StringFixed(2))
	assert.Len(t, result.Items, 1)
	mockOfferRepo.AssertExpectations(t)
}

func TestOfferService_Update_WithoutItemsKeepsLines(t *testing.T) {
	mockOfferRepo := new(MockOfferRepository)
	mockOpportunityRepo := new(MockOpportunityRepository)
	service := NewOfferService(mockOfferRepo, mockOpportunityRepo)

	ctx := context.Background()
	offer := createPersistedOffer(t)
	status := "SENT"

	mockOfferRepo.On("FindByID", ctx, offer.ID).Return(offer, nil)
	mockOfferRepo.On("Update", ctx, mock.AnythingOfType("*sales.Offer"), false).Return(nil)

	result, err := service.Update(ctx, offer.ID, UpdateOfferRequest{Status: &status})

	assert.NoError(t, err)
	assert.Equal(t, "SENT", result.Status)
	assert.Equal(t, "500.00", result.TotalAmount.StringFixed(2))
	assert.Len(t, result.Items, 1)
	mockOfferRepo.AssertExpectations(t)
}

func TestOfferService_Update_EmptyItemListClearsLines(t *testing.T) {
	mockOfferRepo := new(MockOfferRepository)
	mockOpportunityRepo := new(MockOpportunityRepository)
	service := NewOfferService(mockOfferRepo, mockOpportunityRepo)

	ctx := context.Background()
	offer := createPersistedOffer(t)
	empty := []OfferItemRequest{}

	mockOfferRepo.On("FindByID", ctx, offer.ID).Return(offer, nil)
	mockOfferRepo.On("Update", ctx, mock.AnythingOfType("*sales.Offer"), true).Return(nil)

	result, err := service.Update(ctx, offer.ID, UpdateOfferRequest{Items: &empty})

	assert.NoError(t, err)
	assert.Equal(t, "0.00", result.TotalAmount.StringFixed(2))
	assert.Len(t, result.Items, 0)
	mockOfferRepo.AssertExpectations(t)
}
