package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nexuscrm/backend/internal/domain/sales"
	"github.com/nexuscrm/backend/internal/domain/shared"
)

// SaleOrderService handles sale orders. An order is derived from exactly one
// offer and at most one order exists per offer; client and total default from
// the offer when the caller leaves them out.
type SaleOrderService struct {
	orderRepo sales.SaleOrderRepository
	offerRepo sales.OfferRepository
}

// NewSaleOrderService creates a new SaleOrderService
func NewSaleOrderService(orderRepo sales.SaleOrderRepository, offerRepo sales.OfferRepository) *SaleOrderService {
	return &SaleOrderService{orderRepo: orderRepo, offerRepo: offerRepo}
}

// Create creates a new sale order derived from an offer
func (s *SaleOrderService) Create(ctx context.Context, req CreateSaleOrderRequest) (*SaleOrderResponse, error) {
	offer, err := loadParent(ctx, s.offerRepo.FindByID, req.OfferID, "offer_id", "sale order")
	if err != nil {
		return nil, err
	}

	existing, err := s.orderRepo.Count(ctx, shared.Filter{Filters: map[string]interface{}{"offer_id": offer.ID}})
	if err != nil {
		return nil, fmt.Errorf("failed to check existing orders: %w", err)
	}
	if existing > 0 {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Offer already has a sale order")
	}

	clientID := offer.ClientID
	if req.ClientID != nil {
		clientID = *req.ClientID
	}
	total := offer.TotalAmount
	if req.TotalAmount != nil {
		total = *req.TotalAmount
	}
	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	order, err := sales.NewSaleOrder("", clientID, offer.ID, date, total)
	if err != nil {
		return nil, err
	}
	if req.InvoicingDate != nil {
		order.SetInvoicingDate(*req.InvoicingDate)
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create sale order: %w", err)
	}

	resp := ToSaleOrderResponse(order)
	return &resp, nil
}

// GetByID retrieves a sale order
func (s *SaleOrderService) GetByID(ctx context.Context, id uuid.UUID) (*SaleOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToSaleOrderResponse(order)
	return &resp, nil
}

// Update applies a partial update to a sale order. Number, client and offer
// are immutable.
func (s *SaleOrderService) Update(ctx context.Context, id uuid.UUID, req UpdateSaleOrderRequest) (*SaleOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Date != nil {
		order.Date = *req.Date
	}
	if req.InvoicingDate != nil {
		order.SetInvoicingDate(*req.InvoicingDate)
	}
	if req.Status != nil {
		if err := order.SetStatus(sales.SaleOrderStatus(*req.Status)); err != nil {
			return nil, err
		}
	}
	if req.TotalAmount != nil {
		if req.TotalAmount.IsNegative() {
			return nil, shared.NewValidationError("total_amount", "Order total cannot be negative")
		}
		order.TotalAmount = req.TotalAmount.Round(2)
	}
	order.Touch()

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to update sale order: %w", err)
	}

	resp := ToSaleOrderResponse(order)
	return &resp, nil
}

// Delete removes a sale order
func (s *SaleOrderService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.orderRepo.Delete(ctx, id)
}

// List retrieves sale orders matching the filter
func (s *SaleOrderService) List(ctx context.Context, filter ListFilter, clientID, offerID *uuid.UUID, status string) ([]SaleOrderResponse, int64, error) {
	extra := make(map[string]interface{})
	if clientID != nil {
		extra["client_id"] = *clientID
	}
	if offerID != nil {
		extra["offer_id"] = *offerID
	}
	if status != "" {
		extra["status"] = status
	}
	f := toSharedFilter(filter, extra)

	orders, err := s.orderRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list sale orders: %w", err)
	}
	total, err := s.orderRepo.Count(ctx, f)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count sale orders: %w", err)
	}

	responses := make([]SaleOrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, ToSaleOrderResponse(&orders[i]))
	}
	return responses, total, nil
}
