package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/nexuscrm/backend/internal/domain/sales"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Client DTOs
// =============================================================================

// CreateClientRequest represents a request to create a new client
type CreateClientRequest struct {
	Name       string     `json:"name" binding:"required,min=1,max=255"`
	VATNumber  string     `json:"vat_number" binding:"max=50"`
	TaxCode    string     `json:"tax_code" binding:"max=50"`
	Email      string     `json:"email" binding:"omitempty,email,max=255"`
	Phone      string     `json:"phone" binding:"max=50"`
	Address    string     `json:"address" binding:"max=500"`
	City       string     `json:"city" binding:"max=100"`
	Status     string     `json:"status" binding:"omitempty,oneof=LEAD ACTIVE INACTIVE BAD_DEBT"`
	AssignedTo *uuid.UUID `json:"assigned_to"`
}

// UpdateClientRequest represents a request to update a client
type UpdateClientRequest struct {
	Name       *string    `json:"name" binding:"omitempty,min=1,max=255"`
	VATNumber  *string    `json:"vat_number" binding:"omitempty,max=50"`
	TaxCode    *string    `json:"tax_code" binding:"omitempty,max=50"`
	Email      *string    `json:"email" binding:"omitempty,email,max=255"`
	Phone      *string    `json:"phone" binding:"omitempty,max=50"`
	Address    *string    `json:"address" binding:"omitempty,max=500"`
	City       *string    `json:"city" binding:"omitempty,max=100"`
	Status     *string    `json:"status" binding:"omitempty,oneof=LEAD ACTIVE INACTIVE BAD_DEBT"`
	AssignedTo *uuid.UUID `json:"assigned_to"`
}

// ClientResponse represents a client in API responses
type ClientResponse struct {
	ID         uuid.UUID         `json:"id"`
	Name       string            `json:"name"`
	VATNumber  string            `json:"vat_number"`
	TaxCode    string            `json:"tax_code"`
	Email      string            `json:"email"`
	Phone      string            `json:"phone"`
	Address    string            `json:"address"`
	City       string            `json:"city"`
	Status     string            `json:"status"`
	AssignedTo *uuid.UUID        `json:"assigned_to"`
	Contacts   []ContactResponse `json:"contacts,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// ToClientResponse converts a domain client to its response representation
func ToClientResponse(client *sales.Client) ClientResponse {
	contacts := make([]ContactResponse, 0, len(client.Contacts))
	for i := range client.Contacts {
		contacts = append(contacts, ToContactResponse(&client.Contacts[i]))
	}
	return ClientResponse{
		ID:         client.ID,
		Name:       client.Name,
		VATNumber:  client.VATNumber,
		TaxCode:    client.TaxCode,
		Email:      client.Email,
		Phone:      client.Phone,
		Address:    client.Address,
		City:       client.City,
		Status:     client.Status.String(),
		AssignedTo: client.AssignedTo,
		Contacts:   contacts,
		CreatedAt:  client.CreatedAt,
		UpdatedAt:  client.UpdatedAt,
	}
}

// =============================================================================
// Contact DTOs
// =============================================================================

// CreateContactRequest represents a request to create a new contact
type CreateContactRequest struct {
	ClientID  uuid.UUID `json:"client_id" binding:"required"`
	FirstName string    `json:"first_name" binding:"required,min=1,max=100"`
	LastName  string    `json:"last_name" binding:"required,min=1,max=100"`
	Role      string    `json:"role" binding:"max=100"`
	Email     string    `json:"email" binding:"required,email,max=255"`
	Phone     string    `json:"phone" binding:"max=50"`
	IsPrimary bool      `json:"is_primary"`
}

// UpdateContactRequest represents a request to update a contact
type UpdateContactRequest struct {
	FirstName *string `json:"first_name" binding:"omitempty,min=1,max=100"`
	LastName  *string `json:"last_name" binding:"omitempty,min=1,max=100"`
	Role      *string `json:"role" binding:"omitempty,max=100"`
	Email     *string `json:"email" binding:"omitempty,email,max=255"`
	Phone     *string `json:"phone" binding:"omitempty,max=50"`
	IsPrimary *bool   `json:"is_primary"`
}

// ContactResponse represents a contact in API responses
type ContactResponse struct {
	ID        uuid.UUID `json:"id"`
	ClientID  uuid.UUID `json:"client_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role      string    `json:"role"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	IsPrimary bool      `json:"is_primary"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToContactResponse converts a domain contact to its response representation
func ToContactResponse(contact *sales.Contact) ContactResponse {
	return ContactResponse{
		ID:        contact.ID,
		ClientID:  contact.ClientID,
		FirstName: contact.FirstName,
		LastName:  contact.LastName,
		Role:      contact.Role,
		Email:     contact.Email,
		Phone:     contact.Phone,
		IsPrimary: contact.IsPrimary,
		CreatedAt: contact.CreatedAt,
		UpdatedAt: contact.UpdatedAt,
	}
}

// =============================================================================
// Opportunity DTOs
// =============================================================================

// CreateOpportunityRequest represents a request to create a new opportunity
type CreateOpportunityRequest struct {
	ClientID    uuid.UUID `json:"client_id" binding:"required"`
	Name        string    `json:"name" binding:"required,min=1,max=255"`
	Description string    `json:"description"`
	Stage       string    `json:"stage" binding:"omitempty,oneof=NEW QUALIFICATION PROPOSAL NEGOTIATION WON LOST"`
}

// UpdateOpportunityRequest represents a request to update an opportunity
type UpdateOpportunityRequest struct {
	Name        *string    `json:"name" binding:"omitempty,min=1,max=255"`
	Description *string    `json:"description"`
	Stage       *string    `json:"stage" binding:"omitempty,oneof=NEW QUALIFICATION PROPOSAL NEGOTIATION WON LOST"`
	CloseDate   *time.Time `json:"close_date"`
}

// OpportunityResponse represents an opportunity in API responses
type OpportunityResponse struct {
	ID           uuid.UUID  `json:"id"`
	Number       string     `json:"number"`
	ClientID     uuid.UUID  `json:"client_id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Stage        string     `json:"stage"`
	InsertedDate time.Time  `json:"inserted_date"`
	CloseDate    *time.Time `json:"close_date"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// ToOpportunityResponse converts a domain opportunity to its response representation
func ToOpportunityResponse(opportunity *sales.Opportunity) OpportunityResponse {
	return OpportunityResponse{
		ID:           opportunity.ID,
		Number:       opportunity.Number,
		ClientID:     opportunity.ClientID,
		Name:         opportunity.Name,
		Description:  opportunity.Description,
		Stage:        opportunity.Stage.String(),
		InsertedDate: opportunity.InsertedDate,
		CloseDate:    opportunity.CloseDate,
		CreatedAt:    opportunity.CreatedAt,
		UpdatedAt:    opportunity.UpdatedAt,
	}
}

// =============================================================================
// Offer DTOs
// =============================================================================

// OfferItemRequest represents one offer line in create and update requests
type OfferItemRequest struct {
	ProductCode string          `json:"product_code" binding:"max=50"`
	Description string          `json:"description" binding:"required,min=1,max=255"`
	Quantity    int             `json:"quantity" binding:"required,min=1"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Discount    decimal.Decimal `json:"discount"`
}

// CreateOfferRequest represents a request to create a new offer. The client
// is derived from the opportunity when not supplied.
type CreateOfferRequest struct {
	OpportunityID uuid.UUID          `json:"opportunity_id" binding:"required"`
	ClientID      *uuid.UUID         `json:"client_id"`
	Date          *time.Time         `json:"date"`
	ValidUntil    *time.Time         `json:"valid_until"`
	Description   string             `json:"description"`
	Notes         string             `json:"notes"`
	Items         []OfferItemRequest `json:"items" binding:"omitempty,dive"`
}

// UpdateOfferRequest represents a request to update an offer. A nil Items
// field leaves the stored lines untouched; a non-nil one, the empty list
// included, replaces them entirely.
type UpdateOfferRequest struct {
	Date        *time.Time          `json:"date"`
	ValidUntil  *time.Time          `json:"valid_until"`
	Status      *string             `json:"status" binding:"omitempty,oneof=DRAFT SENT ACCEPTED REJECTED EXPIRED"`
	Description *string             `json:"description"`
	Notes       *string             `json:"notes"`
	Items       *[]OfferItemRequest `json:"items" binding:"omitempty,dive"`
}

// OfferItemResponse represents one offer line in API responses
type OfferItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	Position    int             `json:"position"`
	ProductCode string          `json:"product_code"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Discount    decimal.Decimal `json:"discount"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// OfferResponse represents an offer in API responses
type OfferResponse struct {
	ID            uuid.UUID           `json:"id"`
	Number        string              `json:"number"`
	ClientID      uuid.UUID           `json:"client_id"`
	OpportunityID *uuid.UUID          `json:"opportunity_id"`
	Date          time.Time           `json:"date"`
	ValidUntil    time.Time           `json:"valid_until"`
	Status        string              `json:"status"`
	TotalAmount   decimal.Decimal     `json:"total_amount"`
	Description   string              `json:"description"`
	Notes         string              `json:"notes"`
	Items         []OfferItemResponse `json:"items,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// ToOfferResponse converts a domain offer to its response representation
func ToOfferResponse(offer *sales.Offer) OfferResponse {
	items := make([]OfferItemResponse, 0, len(offer.Items))
	for i := range offer.Items {
		item := &offer.Items[i]
		items = append(items, OfferItemResponse{
			ID:          item.ID,
			Position:    item.Position,
			ProductCode: item.ProductCode,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Discount:    item.Discount,
			LineTotal:   item.LineTotal().Round(2),
		})
	}
	return OfferResponse{
		ID:            offer.ID,
		Number:        offer.Number,
		ClientID:      offer.ClientID,
		OpportunityID: offer.OpportunityID,
		Date:          offer.Date,
		ValidUntil:    offer.ValidUntil,
		Status:        offer.Status.String(),
		TotalAmount:   offer.TotalAmount,
		Description:   offer.Description,
		Notes:         offer.Notes,
		Items:         items,
		CreatedAt:     offer.CreatedAt,
		UpdatedAt:     offer.UpdatedAt,
	}
}

// =============================================================================
// Sale order DTOs
// =============================================================================

// CreateSaleOrderRequest represents a request to create a sale order. Client
// and total are derived from the offer when not supplied.
type CreateSaleOrderRequest struct {
	OfferID       uuid.UUID        `json:"offer_id" binding:"required"`
	ClientID      *uuid.UUID       `json:"client_id"`
	Date          *time.Time       `json:"date"`
	InvoicingDate *time.Time       `json:"invoicing_date"`
	TotalAmount   *decimal.Decimal `json:"total_amount"`
}

// UpdateSaleOrderRequest represents a request to update a sale order
type UpdateSaleOrderRequest struct {
	Date          *time.Time       `json:"date"`
	InvoicingDate *time.Time       `json:"invoicing_date"`
	Status        *string          `json:"status" binding:"omitempty,oneof=PENDING CONFIRMED SHIPPED DELIVERED CANCELLED"`
	TotalAmount   *decimal.Decimal `json:"total_amount"`
}

// SaleOrderResponse represents a sale order in API responses
type SaleOrderResponse struct {
	ID            uuid.UUID       `json:"id"`
	Number        string          `json:"number"`
	ClientID      uuid.UUID       `json:"client_id"`
	OfferID       *uuid.UUID      `json:"offer_id"`
	Date          time.Time       `json:"date"`
	InvoicingDate *time.Time      `json:"invoicing_date"`
	Status        string          `json:"status"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ToSaleOrderResponse converts a domain sale order to its response representation
func ToSaleOrderResponse(order *sales.SaleOrder) SaleOrderResponse {
	return SaleOrderResponse{
		ID:            order.ID,
		Number:        order.Number,
		ClientID:      order.ClientID,
		OfferID:       order.OfferID,
		Date:          order.Date,
		InvoicingDate: order.InvoicingDate,
		Status:        order.Status.String(),
		TotalAmount:   order.TotalAmount,
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
	}
}

// =============================================================================
// Invoice DTOs
// =============================================================================

// InvoiceItemRequest represents one invoice line in create and update requests
type InvoiceItemRequest struct {
	Product     string          `json:"product" binding:"max=100"`
	Description string          `json:"description" binding:"required,min=1,max=255"`
	Quantity    int             `json:"quantity" binding:"required,min=1"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
}

// CreateInvoiceRequest represents a request to create an invoice. Client and
// total are derived from the sale order when not supplied.
type CreateInvoiceRequest struct {
	OrderID            uuid.UUID            `json:"order_id" binding:"required"`
	ClientID           *uuid.UUID           `json:"client_id"`
	Date               *time.Time           `json:"date"`
	DueDate            *time.Time           `json:"due_date"`
	TotalAmount        *decimal.Decimal     `json:"total_amount"`
	PaymentMethod      string               `json:"payment_method" binding:"max=100"`
	TermsAndConditions string               `json:"terms_and_conditions"`
	Items              []InvoiceItemRequest `json:"items" binding:"omitempty,dive"`
}

// UpdateInvoiceRequest represents a request to update an invoice
type UpdateInvoiceRequest struct {
	Date               *time.Time            `json:"date"`
	DueDate            *time.Time            `json:"due_date"`
	Status             *string               `json:"status" binding:"omitempty,oneof=DRAFT ISSUED PAID OVERDUE CANCELLED"`
	TotalAmount        *decimal.Decimal      `json:"total_amount"`
	PaymentMethod      *string               `json:"payment_method" binding:"omitempty,max=100"`
	TermsAndConditions *string               `json:"terms_and_conditions"`
	Items              *[]InvoiceItemRequest `json:"items" binding:"omitempty,dive"`
}

// InvoiceItemResponse represents one invoice line in API responses
type InvoiceItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	Position    int             `json:"position"`
	Product     string          `json:"product"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID                 uuid.UUID             `json:"id"`
	Number             string                `json:"number"`
	ClientID           uuid.UUID             `json:"client_id"`
	OrderID            *uuid.UUID            `json:"order_id"`
	Date               time.Time             `json:"date"`
	DueDate            time.Time             `json:"due_date"`
	Status             string                `json:"status"`
	TotalAmount        decimal.Decimal       `json:"total_amount"`
	PaymentMethod      string                `json:"payment_method"`
	TermsAndConditions string                `json:"terms_and_conditions"`
	Items              []InvoiceItemResponse `json:"items,omitempty"`
	CreatedAt          time.Time             `json:"created_at"`
	UpdatedAt          time.Time             `json:"updated_at"`
}

// ToInvoiceResponse converts a domain invoice to its response representation
func ToInvoiceResponse(invoice *sales.Invoice) InvoiceResponse {
	items := make([]InvoiceItemResponse, 0, len(invoice.Items))
	for i := range invoice.Items {
		item := &invoice.Items[i]
		items = append(items, InvoiceItemResponse{
			ID:          item.ID,
			Position:    item.Position,
			Product:     item.Product,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TaxRate:     item.TaxRate,
			LineTotal:   item.LineTotal().Round(2),
		})
	}
	return InvoiceResponse{
		ID:                 invoice.ID,
		Number:             invoice.Number,
		ClientID:           invoice.ClientID,
		OrderID:            invoice.OrderID,
		Date:               invoice.Date,
		DueDate:            invoice.DueDate,
		Status:             invoice.Status.String(),
		TotalAmount:        invoice.TotalAmount,
		PaymentMethod:      invoice.PaymentMethod,
		TermsAndConditions: invoice.TermsAndConditions,
		Items:              items,
		CreatedAt:          invoice.CreatedAt,
		UpdatedAt:          invoice.UpdatedAt,
	}
}

// =============================================================================
// Contract DTOs
// =============================================================================

// CreateContractRequest represents a request to create a contract
type CreateContractRequest struct {
	ClientID     uuid.UUID        `json:"client_id" binding:"required"`
	Title        string           `json:"title" binding:"required,min=1,max=255"`
	StartDate    time.Time        `json:"start_date" binding:"required"`
	EndDate      time.Time        `json:"end_date" binding:"required"`
	Value        *decimal.Decimal `json:"value"`
	DocumentFile string           `json:"document_file" binding:"max=512"`
}

// UpdateContractRequest represents a request to update a contract
type UpdateContractRequest struct {
	Title        *string          `json:"title" binding:"omitempty,min=1,max=255"`
	StartDate    *time.Time       `json:"start_date"`
	EndDate      *time.Time       `json:"end_date"`
	Value        *decimal.Decimal `json:"value"`
	Status       *string          `json:"status" binding:"omitempty,oneof=ACTIVE EXPIRED RENEWED TERMINATED"`
	DocumentFile *string          `json:"document_file" binding:"omitempty,max=512"`
}

// ContractResponse represents a contract in API responses
type ContractResponse struct {
	ID           uuid.UUID        `json:"id"`
	ClientID     uuid.UUID        `json:"client_id"`
	Title        string           `json:"title"`
	StartDate    time.Time        `json:"start_date"`
	EndDate      time.Time        `json:"end_date"`
	Value        *decimal.Decimal `json:"value"`
	Status       string           `json:"status"`
	DocumentFile string           `json:"document_file"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// ToContractResponse converts a domain contract to its response representation
func ToContractResponse(contract *sales.Contract) ContractResponse {
	return ContractResponse{
		ID:           contract.ID,
		ClientID:     contract.ClientID,
		Title:        contract.Title,
		StartDate:    contract.StartDate,
		EndDate:      contract.EndDate,
		Value:        contract.Value,
		Status:       string(contract.Status),
		DocumentFile: contract.DocumentFile,
		CreatedAt:    contract.CreatedAt,
		UpdatedAt:    contract.UpdatedAt,
	}
}

// =============================================================================
// List filter
// =============================================================================

// ListFilter represents common list query options
type ListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}
