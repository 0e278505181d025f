package sales

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/nexuscrm/backend/internal/domain/sales"
)

// ClientService handles client lifecycle operations
type ClientService struct {
	clientRepo sales.ClientRepository
}

// NewClientService creates a new ClientService
func NewClientService(clientRepo sales.ClientRepository) *ClientService {
	return &ClientService{clientRepo: clientRepo}
}

// Create creates a new client
func (s *ClientService) Create(ctx context.Context, req CreateClientRequest) (*ClientResponse, error) {
	client, err := sales.NewClient(req.Name)
	if err != nil {
		return nil, err
	}

	client.VATNumber = req.VATNumber
	client.TaxCode = req.TaxCode
	client.Email = req.Email
	client.Phone = req.Phone
	client.Address = req.Address
	client.City = req.City
	if req.Status != "" {
		if err := client.SetStatus(sales.ClientStatus(req.Status)); err != nil {
			return nil, err
		}
	}
	if req.AssignedTo != nil {
		client.Assign(*req.AssignedTo)
	}

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to save client: %w", err)
	}

	resp := ToClientResponse(client)
	return &resp, nil
}

// GetByID retrieves a client with its contacts
func (s *ClientService) GetByID(ctx context.Context, id uuid.UUID) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToClientResponse(client)
	return &resp, nil
}

// Update applies a partial update to a client
func (s *ClientService) Update(ctx context.Context, id uuid.UUID, req UpdateClientRequest) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.VATNumber != nil {
		client.VATNumber = *req.VATNumber
	}
	if req.TaxCode != nil {
		client.TaxCode = *req.TaxCode
	}
	if req.Email != nil {
		client.Email = *req.Email
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	if req.Address != nil {
		client.Address = *req.Address
	}
	if req.City != nil {
		client.City = *req.City
	}
	if req.Status != nil {
		if err := client.SetStatus(sales.ClientStatus(*req.Status)); err != nil {
			return nil, err
		}
	}
	if req.AssignedTo != nil {
		client.Assign(*req.AssignedTo)
	}
	client.Touch()

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}

	resp := ToClientResponse(client)
	return &resp, nil
}

// Delete removes a client and its contacts
func (s *ClientService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.clientRepo.Delete(ctx, id)
}

// List retrieves clients matching the filter
func (s *ClientService) List(ctx context.Context, filter ListFilter, status, city string, assignedTo *uuid.UUID) ([]ClientResponse, int64, error) {
	extra := make(map[string]interface{})
	if status != "" {
		extra["status"] = status
	}
	if city != "" {
		extra["city"] = city
	}
	if assignedTo != nil {
		extra["assigned_to"] = *assignedTo
	}
	f := toSharedFilter(filter, extra)

	clients, err := s.clientRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list clients: %w", err)
	}
	total, err := s.clientRepo.Count(ctx, f)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count clients: %w", err)
	}

	responses := make([]ClientResponse, 0, len(clients))
	for i := range clients {
		responses = append(responses, ToClientResponse(&clients[i]))
	}
	return responses, total, nil
}
