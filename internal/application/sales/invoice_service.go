package sales

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nexuscrm/backend/internal/domain/sales"
	"github.com/nexuscrm/backend/internal/domain/shared"
)

// defaultPaymentTerm is the due date offset applied when the caller does not
// set one.
const defaultPaymentTerm = 30 * 24 * time.Hour

// InvoicePrinter renders an invoice to a PDF document
type InvoicePrinter interface {
	Render(invoice *sales.Invoice, client *sales.Client) ([]byte, error)
}

// InvoiceService handles invoices, the last document of the sales chain.
// Client and total default from the sale order; invoice lines are kept for
// rendering and never drive the total.
type InvoiceService struct {
	invoiceRepo sales.InvoiceRepository
	orderRepo   sales.SaleOrderRepository
	clientRepo  sales.ClientRepository
	printer     InvoicePrinter
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	invoiceRepo sales.InvoiceRepository,
	orderRepo sales.SaleOrderRepository,
	clientRepo sales.ClientRepository,
	printer InvoicePrinter,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		orderRepo:   orderRepo,
		clientRepo:  clientRepo,
		printer:     printer,
	}
}

// Create creates a new invoice derived from a sale order
func (s *InvoiceService) Create(ctx context.Context, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	order, err := loadParent(ctx, s.orderRepo.FindByID, req.OrderID, "order_id", "invoice")
	if err != nil {
		return nil, err
	}

	clientID := order.ClientID
	if req.ClientID != nil {
		clientID = *req.ClientID
	}
	total := order.TotalAmount
	if req.TotalAmount != nil {
		total = *req.TotalAmount
	}
	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}
	dueDate := date.Add(defaultPaymentTerm)
	if req.DueDate != nil {
		dueDate = *req.DueDate
	}

	invoice, err := sales.NewInvoice("", clientID, order.ID, date, dueDate, total)
	if err != nil {
		return nil, err
	}
	invoice.PaymentMethod = req.PaymentMethod
	invoice.TermsAndConditions = req.TermsAndConditions

	items, err := buildInvoiceItems(req.Items)
	if err != nil {
		return nil, err
	}
	invoice.ReplaceItems(items)

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	resp := ToInvoiceResponse(invoice)
	return &resp, nil
}

// GetByID retrieves an invoice with its lines in stored order
func (s *InvoiceService) GetByID(ctx context.Context, id uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToInvoiceResponse(invoice)
	return &resp, nil
}

// Update applies a partial update to an invoice. A non-nil Items field
// replaces the stored lines entirely; the total stays as it is unless the
// caller sets it explicitly. Number, client and order are immutable.
func (s *InvoiceService) Update(ctx context.Context, id uuid.UUID, req UpdateInvoiceRequest) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Date != nil {
		invoice.Date = *req.Date
	}
	if req.DueDate != nil {
		invoice.DueDate = *req.DueDate
	}
	if req.Status != nil {
		if err := invoice.SetStatus(sales.InvoiceStatus(*req.Status)); err != nil {
			return nil, err
		}
	}
	if req.TotalAmount != nil {
		if req.TotalAmount.IsNegative() {
			return nil, shared.NewValidationError("total_amount", "Invoice total cannot be negative")
		}
		invoice.TotalAmount = req.TotalAmount.Round(2)
	}
	if req.PaymentMethod != nil {
		invoice.PaymentMethod = *req.PaymentMethod
	}
	if req.TermsAndConditions != nil {
		invoice.TermsAndConditions = *req.TermsAndConditions
	}

	replaceItems := req.Items != nil
	if replaceItems {
		items, err := buildInvoiceItems(*req.Items)
		if err != nil {
			return nil, err
		}
		invoice.ReplaceItems(items)
	}
	invoice.Touch()

	if err := s.invoiceRepo.Update(ctx, invoice, replaceItems); err != nil {
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}

	resp := ToInvoiceResponse(invoice)
	return &resp, nil
}

// Delete removes an invoice and its lines
func (s *InvoiceService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.invoiceRepo.Delete(ctx, id)
}

// List retrieves invoices matching the filter
func (s *InvoiceService) List(ctx context.Context, filter ListFilter, clientID, orderID *uuid.UUID, status string) ([]InvoiceResponse, int64, error) {
	extra := make(map[string]interface{})
	if clientID != nil {
		extra["client_id"] = *clientID
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
		return nil, 0, fmt.Errorf("failed to list invoices: %w", err)
	}
	total, err := s.invoiceRepo.Count(ctx, f)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count invoices: %w", err)
	}

	responses := make([]InvoiceResponse, 0, len(invoices))
	for i := range invoices {
		responses = append(responses, ToInvoiceResponse(&invoices[i]))
	}
	return responses, total, nil
}

// RenderPDF renders the invoice to a PDF document and returns the document
// bytes with the download file name.
func (s *InvoiceService) RenderPDF(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, "", err
	}

	client, err := s.clientRepo.FindByID(ctx, invoice.ClientID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, "", err
		}
		client = nil
	}

	data, err := s.printer.Render(invoice, client)
	if err != nil {
		return nil, "", fmt.Errorf("failed to render invoice %s: %w", invoice.Number, err)
	}
	return data, fmt.Sprintf("invoice-%s.pdf", invoice.Number), nil
}

func buildInvoiceItems(requests []InvoiceItemRequest) ([]sales.InvoiceItem, error) {
	items := make([]sales.InvoiceItem, 0, len(requests))
	for i, r := range requests {
		item, err := sales.NewInvoiceItem(r.Product, r.Description, r.Quantity, r.UnitPrice, r.TaxRate)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		items = append(items, *item)
	}
	return items, nil
}
