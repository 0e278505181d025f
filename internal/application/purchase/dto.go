package purchase

import (
	"time"

	"github.com/google/uuid"
	"github.com/nexuscrm/backend/internal/domain/purchase"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Supplier DTOs
// =============================================================================

// CreateSupplierRequest represents a request to create a supplier
type CreateSupplierRequest struct {
	Name         string `json:"name" binding:"required,min=1,max=255"`
	VATNumber    string `json:"vat_number" binding:"max=50"`
	Email        string `json:"email" binding:"omitempty,email,max=255"`
	Phone        string `json:"phone" binding:"max=50"`
	Address      string `json:"address" binding:"max=500"`
	PaymentTerms string `json:"payment_terms" binding:"max=100"`
}

// UpdateSupplierRequest represents a request to update a supplier
type UpdateSupplierRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=1,max=255"`
	VATNumber    *string `json:"vat_number" binding:"omitempty,max=50"`
	Email        *string `json:"email" binding:"omitempty,email,max=255"`
	Phone        *string `json:"phone" binding:"omitempty,max=50"`
	Address      *string `json:"address" binding:"omitempty,max=500"`
	PaymentTerms *string `json:"payment_terms" binding:"omitempty,max=100"`
}

// SupplierResponse represents a supplier in API responses
type SupplierResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	VATNumber    string    `json:"vat_number"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	PaymentTerms string    `json:"payment_terms"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToSupplierResponse converts a domain supplier to its response representation
func ToSupplierResponse(supplier *purchase.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:           supplier.ID,
		Name:         supplier.Name,
		VATNumber:    supplier.VATNumber,
		Email:        supplier.Email,
		Phone:        supplier.Phone,
		Address:      supplier.Address,
		PaymentTerms: supplier.PaymentTerms,
		CreatedAt:    supplier.CreatedAt,
		UpdatedAt:    supplier.UpdatedAt,
	}
}

// =============================================================================
// Purchase order DTOs
// =============================================================================

// CreatePurchaseOrderRequest represents a request to create a purchase order.
// Purchase numbers are assigned externally and supplied by the caller.
type CreatePurchaseOrderRequest struct {
	Number      string          `json:"number" binding:"required,min=1,max=50"`
	SupplierID  uuid.UUID       `json:"supplier_id" binding:"required"`
	Date        *time.Time      `json:"date"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Notes       string          `json:"notes"`
}

// UpdatePurchaseOrderRequest represents a request to update a purchase order
type UpdatePurchaseOrderRequest struct {
	Date        *time.Time       `json:"date"`
	Status      *string          `json:"status" binding:"omitempty,oneof=DRAFT SENT RECEIVED COMPLETED CANCELLED"`
	TotalAmount *decimal.Decimal `json:"total_amount"`
	Notes       *string          `json:"notes"`
}

// PurchaseOrderResponse represents a purchase order in API responses
type PurchaseOrderResponse struct {
	ID          uuid.UUID       `json:"id"`
	Number      string          `json:"number"`
	SupplierID  uuid.UUID       `json:"supplier_id"`
	Date        time.Time       `json:"date"`
	Status      string          `json:"status"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Notes       string          `json:"notes"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToPurchaseOrderResponse converts a domain purchase order to its response representation
func ToPurchaseOrderResponse(order *purchase.PurchaseOrder) PurchaseOrderResponse {
	return PurchaseOrderResponse{
		ID:          order.ID,
		Number:      order.Number,
		SupplierID:  order.SupplierID,
		Date:        order.Date,
		Status:      order.Status.String(),
		TotalAmount: order.TotalAmount,
		Notes:       order.Notes,
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}
}

// =============================================================================
// Purchase invoice DTOs
// =============================================================================

// CreatePurchaseInvoiceRequest represents a request to record a supplier
// invoice. The number is the supplier's own and is not unique system-wide.
// At least one of supplier_id and order_id must be set; a missing supplier
// is taken from the linked order, and when both are set the order must
// belong to the given supplier.
type CreatePurchaseInvoiceRequest struct {
	Number      string          `json:"number" binding:"required,min=1,max=50"`
	SupplierID  uuid.UUID       `json:"supplier_id"`
	OrderID     *uuid.UUID      `json:"order_id"`
	Date        *time.Time      `json:"date"`
	DueDate     *time.Time      `json:"due_date"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Attachment  string          `json:"attachment" binding:"max=512"`
}

// UpdatePurchaseInvoiceRequest represents a request to update a purchase invoice
type UpdatePurchaseInvoiceRequest struct {
	OrderID     *uuid.UUID       `json:"order_id"`
	Date        *time.Time       `json:"date"`
	DueDate     *time.Time       `json:"due_date"`
	Status      *string          `json:"status" binding:"omitempty,oneof=RECEIVED PAID OVERDUE"`
	TotalAmount *decimal.Decimal `json:"total_amount"`
	Attachment  *string          `json:"attachment" binding:"omitempty,max=512"`
}

// PurchaseInvoiceResponse represents a purchase invoice in API responses
type PurchaseInvoiceResponse struct {
	ID          uuid.UUID       `json:"id"`
	Number      string          `json:"number"`
	SupplierID  uuid.UUID       `json:"supplier_id"`
	OrderID     *uuid.UUID      `json:"order_id"`
	Date        time.Time       `json:"date"`
	DueDate     time.Time       `json:"due_date"`
	Status      string          `json:"status"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Attachment  string          `json:"attachment"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToPurchaseInvoiceResponse converts a domain purchase invoice to its response representation
func ToPurchaseInvoiceResponse(invoice *purchase.PurchaseInvoice) PurchaseInvoiceResponse {
	return PurchaseInvoiceResponse{
		ID:          invoice.ID,
		Number:      invoice.Number,
		SupplierID:  invoice.SupplierID,
		OrderID:     invoice.OrderID,
		Date:        invoice.Date,
		DueDate:     invoice.DueDate,
		Status:      invoice.Status.String(),
		TotalAmount: invoice.TotalAmount,
		Attachment:  invoice.Attachment,
		CreatedAt:   invoice.CreatedAt,
		UpdatedAt:   invoice.UpdatedAt,
	}
}

// ListFilter represents common list query options
type ListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}
