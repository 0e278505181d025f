package sales

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/nexuscrm/backend/internal/domain/sales"
	"github.com/nexuscrm/backend/internal/domain/shared"
)

// ContractService handles client contracts
type ContractService struct {
	contractRepo sales.ContractRepository
	clientRepo   sales.ClientRepository
}

// NewContractService creates a new ContractService
func NewContractService(contractRepo sales.ContractRepository, clientRepo sales.ClientRepository) *ContractService {
	return &ContractService{contractRepo: contractRepo, clientRepo: clientRepo}
}

// Create creates a new contract for an existing client
func (s *ContractService) Create(ctx context.Context, req CreateContractRequest) (*ContractResponse, error) {
	if _, err := s.clientRepo.FindByID(ctx, req.ClientID); err != nil {
		return nil, err
	}
	if req.EndDate.Before(req.StartDate) {
		return nil, shared.NewValidationError("end_date", "Contract end date cannot precede its start date")
	}

	contract := &sales.Contract{
		BaseEntity:   shared.NewBaseEntity(),
		ClientID:     req.ClientID,
		Title:        req.Title,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Value:        req.Value,
		Status:       sales.ContractStatusActive,
		DocumentFile: req.DocumentFile,
	}

	if err := s.contractRepo.Save(ctx, contract); err != nil {
		return nil, fmt.Errorf("failed to save contract: %w", err)
	}

	resp := ToContractResponse(contract)
	return &resp, nil
}

// GetByID retrieves a contract
func (s *ContractService) GetByID(ctx context.Context, id uuid.UUID) (*ContractResponse, error) {
	contract, err := s.contractRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToContractResponse(contract)
	return &resp, nil
}

// Update applies a partial update to a contract
func (s *ContractService) Update(ctx context.Context, id uuid.UUID, req UpdateContractRequest) (*ContractResponse, error) {
	contract, err := s.contractRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		contract.Title = *req.Title
	}
	if req.StartDate != nil {
		contract.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		contract.EndDate = *req.EndDate
	}
	if contract.EndDate.Before(contract.StartDate) {
		return nil, shared.NewValidationError("end_date", "Contract end date cannot precede its start date")
	}
	if req.Value != nil {
		contract.Value = req.Value
	}
	if req.Status != nil {
		status := sales.ContractStatus(*req.Status)
		if !status.IsValid() {
			return nil, shared.NewValidationError("status", "Unknown contract status")
		}
		contract.Status = status
	}
	if req.DocumentFile != nil {
		contract.DocumentFile = *req.DocumentFile
	}
	contract.Touch()

	if err := s.contractRepo.Save(ctx, contract); err != nil {
		return nil, fmt.Errorf("failed to update contract: %w", err)
	}

	resp := ToContractResponse(contract)
	return &resp, nil
}

// Delete removes a contract
func (s *ContractService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.contractRepo.Delete(ctx, id)
}

// List retrieves contracts matching the filter
func (s *ContractService) List(ctx context.Context, filter ListFilter, clientID *uuid.UUID, status string) ([]ContractResponse, int64, error) {
	extra := make(map[string]interface{})
	if clientID != nil {
		extra["client_id"] = *clientID
	}
	if status != "" {
		extra["status"] = status
	}
	f := toSharedFilter(filter, extra)

	contracts, err := s.contractRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list contracts: %w", err)
	}
	total, err := s.contractRepo.Count(ctx, f)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count contracts: %w", err)
	}

	responses := make([]ContractResponse, 0, len(contracts))
	for i := range contracts {
		responses = append(responses, ToContractResponse(&contracts[i]))
	}
	return responses, total, nil
}
