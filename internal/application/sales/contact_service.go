package sales

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/nexuscrm/backend/internal/domain/sales"
)

// ContactService handles contact operations
type ContactService struct {
	contactRepo sales.ContactRepository
	clientRepo  sales.ClientRepository
}

// NewContactService creates a new ContactService
func NewContactService(contactRepo sales.ContactRepository, clientRepo sales.ClientRepository) *ContactService {
	return &ContactService{contactRepo: contactRepo, clientRepo: clientRepo}
}

// Create creates a new contact under an existing client
func (s *ContactService) Create(ctx context.Context, req CreateContactRequest) (*ContactResponse, error) {
	if _, err := s.clientRepo.FindByID(ctx, req.ClientID); err != nil {
		return nil, err
	}

	contact, err := sales.NewContact(req.ClientID, req.FirstName, req.LastName, req.Email)
	if err != nil {
		return nil, err
	}
	contact.Role = req.Role
	contact.Phone = req.Phone
	contact.IsPrimary = req.IsPrimary

	if err := s.contactRepo.Save(ctx, contact); err != nil {
		return nil, fmt.Errorf("failed to save contact: %w", err)
	}

	resp := ToContactResponse(contact)
	return &resp, nil
}

// GetByID retrieves a contact
func (s *ContactService) GetByID(ctx context.Context, id uuid.UUID) (*ContactResponse, error) {
	contact, err := s.contactRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToContactResponse(contact)
	return &resp, nil
}

// Update applies a partial update to a contact
func (s *ContactService) Update(ctx context.Context, id uuid.UUID, req UpdateContactRequest) (*ContactResponse, error) {
	contact, err := s.contactRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		contact.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		contact.LastName = *req.LastName
	}
	if req.Role != nil {
		contact.Role = *req.Role
	}
	if req.Email != nil {
		contact.Email = *req.Email
	}
	if req.Phone != nil {
		contact.Phone = *req.Phone
	}
	if req.IsPrimary != nil {
		contact.IsPrimary = *req.IsPrimary
	}
	contact.Touch()

	if err := s.contactRepo.Save(ctx, contact); err != nil {
		return nil, fmt.Errorf("failed to update contact: %w", err)
	}

	resp := ToContactResponse(contact)
	return &resp, nil
}

// Delete removes a contact
func (s *ContactService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.contactRepo.Delete(ctx, id)
}

// ListByClient retrieves all contacts of a client, primary first
func (s *ContactService) ListByClient(ctx context.Context, clientID uuid.UUID) ([]ContactResponse, error) {
	contacts, err := s.contactRepo.FindByClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	responses := make([]ContactResponse, 0, len(contacts))
	for i := range contacts {
		responses = append(responses, ToContactResponse(&contacts[i]))
	}
	return responses, nil
}

// List retrieves contacts matching the filter
func (s *ContactService) List(ctx context.Context, filter ListFilter, clientID *uuid.UUID) ([]ContactResponse, int64, error) {
	extra := make(map[string]interface{})
	if clientID != nil {
		extra["client_id"] = *clientID
	}
	f := toSharedFilter(filter, extra)

	contacts, err := s.contactRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list contacts: %w", err)
	}
	total, err := s.contactRepo.Count(ctx, f)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count contacts: %w", err)
	}

	responses := make([]ContactResponse, 0, len(contacts))
	for i := range contacts {
		responses = append(responses, ToContactResponse(&contacts[i]))
	}
	return responses, total, nil
}
