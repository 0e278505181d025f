package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/nexuscrm/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ClientStatus represents the lifecycle status of a client
type ClientStatus string

const (
	ClientStatusLead     ClientStatus = "LEAD"
	ClientStatusActive   ClientStatus = "ACTIVE"
	ClientStatusInactive ClientStatus = "INACTIVE"
	ClientStatusBadDebt  ClientStatus = "BAD_DEBT"
)

// IsValid checks if the status is a valid ClientStatus
func (s ClientStatus) IsValid() bool {
	switch s {
	case ClientStatusLead, ClientStatusActive, ClientStatusInactive, ClientStatusBadDebt:
		return true
	}
	return false
}

// String returns the string representation of ClientStatus
func (s ClientStatus) String() string {
	return string(s)
}

// Client represents a sales counterpart. Status transitions are deliberately
// unconstrained: any status can be set at any time.
type Client struct {
	shared.BaseEntity
	Name       string `gorm:"size:255;not null"`
	VATNumber  string `gorm:"size:50"`
	TaxCode    string `gorm:"size:50"`
	Email      string `gorm:"size:255"`
	Phone      string `gorm:"size:50"`
	Address    string
	City       string       `gorm:"size:100"`
	Status     ClientStatus `gorm:"size:20;not null;default:LEAD"`
	AssignedTo *uuid.UUID   `gorm:"type:uuid"`
	Contacts   []Contact    `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE"`
}

// NewClient creates a new client in the LEAD status
func NewClient(name string) (*Client, error) {
	if name == "" {
		return nil, shared.NewValidationError("name", "Client name cannot be empty")
	}
	return &Client{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Status:     ClientStatusLead,
	}, nil
}

// SetStatus updates the lifecycle status
func (c *Client) SetStatus(status ClientStatus) error {
	if !status.IsValid() {
		return shared.NewValidationError("status", "Unknown client status")
	}
	c.Status = status
	c.Touch()
	return nil
}

// Assign sets the internal user responsible for the client
func (c *Client) Assign(userID uuid.UUID) {
	c.AssignedTo = &userID
	c.Touch()
}

// Contact is a person attached to a client
type Contact struct {
	shared.BaseEntity
	ClientID  uuid.UUID `gorm:"type:uuid;not null;index"`
	FirstName string    `gorm:"size:100;not null"`
	LastName  string    `gorm:"size:100;not null"`
	Role      string    `gorm:"size:100"`
	Email     string    `gorm:"size:255;not null"`
	Phone     string    `gorm:"size:50"`
	IsPrimary bool      `gorm:"not null;default:false"`
}

// NewContact creates a new contact for a client
func NewContact(clientID uuid.UUID, firstName, lastName, email string) (*Contact, error) {
	if clientID == uuid.Nil {
		return nil, shared.NewValidationError("client_id", "Contact must belong to a client")
	}
	if firstName == "" || lastName == "" {
		return nil, shared.NewValidationError("name", "Contact first and last name cannot be empty")
	}
	if email == "" {
		return nil, shared.NewValidationError("email", "Contact email cannot be empty")
	}
	return &Contact{
		BaseEntity: shared.NewBaseEntity(),
		ClientID:   clientID,
		FirstName:  firstName,
		LastName:   lastName,
		Email:      email,
	}, nil
}

// FullName returns the display name of the contact
func (c *Contact) FullName() string {
	return c.FirstName + " " + c.LastName
}

// ContractStatus represents the lifecycle status of a contract
type ContractStatus string

const (
	ContractStatusActive     ContractStatus = "ACTIVE"
	ContractStatusExpired    ContractStatus = "EXPIRED"
	ContractStatusRenewed    ContractStatus = "RENEWED"
	ContractStatusTerminated ContractStatus = "TERMINATED"
)

// IsValid checks if the status is a valid ContractStatus
func (s ContractStatus) IsValid() bool {
	switch s {
	case ContractStatusActive, ContractStatusExpired, ContractStatusRenewed, ContractStatusTerminated:
		return true
	}
	return false
}

// Contract is a client agreement with its own lifecycle; it takes no part in
// the document chain.
type Contract struct {
	shared.BaseEntity
	ClientID     uuid.UUID        `gorm:"type:uuid;not null;index"`
	Title        string           `gorm:"size:255;not null"`
	StartDate    time.Time        `gorm:"not null"`
	EndDate      time.Time        `gorm:"not null"`
	Value        *decimal.Decimal `gorm:"type:numeric(12,2)"`
	Status       ContractStatus   `gorm:"size:20;not null;default:ACTIVE"`
	DocumentFile string           `gorm:"size:512"`
}
