package purchase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nexuscrm/backend/internal/domain/purchase"
	"github.com/nexuscrm/backend/internal/domain/shared"
)

// defaultPaymentTerm is the due date offset applied when the caller does not
// set one.
const defaultPaymentTerm = 30 * 24 * time.Hour

// PurchaseInvoiceService handles supplier invoices. The order link is
// optional, but a linked order must belong to the invoice's supplier.
type PurchaseInvoiceService struct {
	invoiceRepo  purchase.PurchaseInvoiceRepository
	orderRepo    purchase.PurchaseOrderRepository
	supplierRepo purchase.SupplierRepository
}

// NewPurchaseInvoiceService creates a new PurchaseInvoiceService
func NewPurchaseInvoiceService(
	invoiceRepo purchase.PurchaseInvoiceRepository,
	orderRepo purchase.PurchaseOrderRepository,
	supplierRepo purchase.SupplierRepository,
) *PurchaseInvoiceService {
	return &PurchaseInvoiceService{
		invoiceRepo:  invoiceRepo,
		orderRepo:    orderRepo,
		supplierRepo: supplierRepo,
	}
}

// Create records a new supplier invoice. The supplier may be given directly
// or left empty when an order is linked, in which case the order's supplier
// is taken over.
func (s *PurchaseInvoiceService) Create(ctx context.Context, req CreatePurchaseInvoiceRequest) (*PurchaseInvoiceResponse, error) {
	if req.SupplierID == uuid.Nil && req.OrderID == nil {
		return nil, shared.NewMissingParentError("supplier_id", "purchase invoice")
	}

	var order *purchase.PurchaseOrder
	if req.OrderID != nil {
		found, err := s.orderRepo.FindByID(ctx, *req.OrderID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewMissingParentError("order_id", "purchase invoice")
			}
			return nil, err
		}
		order = found
	}

	supplierID := req.SupplierID
	if supplierID == uuid.Nil {
		supplierID = order.SupplierID
	}
	if _, err := s.supplierRepo.FindByID(ctx, supplierID); err != nil {
		return nil, err
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}
	dueDate := date.Add(defaultPaymentTerm)
	if req.DueDate != nil {
		dueDate = *req.DueDate
	}

	invoice, err := purchase.NewPurchaseInvoice(req.Number, supplierID, date, dueDate, req.TotalAmount)
	if err != nil {
		return nil, err
	}
	invoice.Attachment = req.Attachment

	if order != nil {
		if err := invoice.LinkOrder(order); err != nil {
			return nil, err
		}
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to save purchase invoice: %w", err)
	}

	resp := ToPurchaseInvoiceResponse(invoice)
	return &resp, nil
}

// GetByID retrieves a purchase invoice
func (s *PurchaseInvoiceService) GetByID(ctx context.Context, id uuid.UUID) (*PurchaseInvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToPurchaseInvoiceResponse(invoice)
	return &resp, nil
}

// Update applies a partial update to a purchase invoice. Number and supplier
// are immutable; relinking to another order re-runs the supplier match.
func (s *PurchaseInvoiceService) Update(ctx context.Context, id uuid.UUID, req UpdatePurchaseInvoiceRequest) (*PurchaseInvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.OrderID != nil {
		if err := s.linkOrder(ctx, invoice, *req.OrderID); err != nil {
			return nil, err
		}
	}
	if req.Date != nil {
		invoice.Date = *req.Date
	}
	if req.DueDate != nil {
		invoice.DueDate = *req.DueDate
	}
	if req.Status != nil {
		if err := invoice.SetStatus(purchase.PurchaseInvoiceStatus(*req.Status)); err != nil {
			return nil, err
		}
	}
	if req.TotalAmount != nil {
		if req.TotalAmount.IsNegative() {
			return nil, shared.NewValidationError("total_amount", "Purchase invoice total cannot be negative")
		}
		invoice.TotalAmount = req.TotalAmount.Round(2)
	}
	if req.Attachment != nil {
		invoice.Attachment = *req.Attachment
	}
	invoice.Touch()

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to update purchase invoice: %w", err)
	}

	resp := ToPurchaseInvoiceResponse(invoice)
	return &resp, nil
}

// Delete removes a purchase invoice
func (s *PurchaseInvoiceService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.invoiceRepo.Delete(ctx, id)
}

// List retrieves purchase invoices matching the filter
func (s *PurchaseInvoiceService) List(ctx context.Context, filter ListFilter, supplierID, orderID *uuid.UUID, status string) ([]PurchaseInvoiceResponse, int64, error) {
	extra := make(map[string]interface{})
	if supplierID != nil {
		extra["supplier_id"] = *supplierID
	}
	if orderID != nil {
		extra["order_id"] = *orderID
	}
	if status != "" {
		extra["status"] = status
	}
	f := toSharedFilter(filter, extra)

	invoices, err := s.invoiceRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list purchase invoices: %w", err)
	}
	total, err := s.invoiceRepo.Count(ctx, f)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count purchase invoices: %w", err)
	}

	responses := make([]PurchaseInvoiceResponse, 0, len(invoices))
	for i := range invoices {
		responses = append(responses, ToPurchaseInvoiceResponse(&invoices[i]))
	}
	return responses, total, nil
}

func (s *PurchaseInvoiceService) linkOrder(ctx context.Context, invoice *purchase.PurchaseInvoice, orderID uuid.UUID) error {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewMissingParentError("order_id", "purchase invoice")
		}
		return err
	}
	return invoice.LinkOrder(order)
}
