package sales

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/nexuscrm/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestOpportunityService_Delete_WithoutOffers(t *testing.T) {
	opportunityRepo := new(MockOpportunityRepository)
	offerRepo := new(MockOfferRepository)
	clientRepo := new(MockClientRepository)
	service := NewOpportunityService(opportunityRepo, offerRepo, clientRepo)

	id := uuid.New()
	offerRepo.On("CountByOpportunity", mock.Anything, id).Return(int64(0), nil)
	opportunityRepo.On("Delete", mock.Anything, id).Return(nil)

	err := service.Delete(context.Background(), id)

	assert.NoError(t, err)
	opportunityRepo.AssertExpectations(t)
}

func TestOpportunityService_Delete_BlockedByDerivedOffers(t *testing.T) {
	opportunityRepo := new(MockOpportunityRepository)
	offerRepo := new(MockOfferRepository)
	clientRepo := new(MockClientRepository)
	service := NewOpportunityService(opportunityRepo, offerRepo, clientRepo)

	id := uuid.New()
	offerRepo.On("CountByOpportunity", mock.Anything, id).Return(int64(2), nil)

	err := service.Delete(context.Background(), id)

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
	opportunityRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
