package purchase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nexuscrm/backend/internal/domain/purchase"
	"github.com/nexuscrm/backend/internal/domain/shared"
)

// PurchaseOrderService handles purchase orders
type PurchaseOrderService struct {
	orderRepo    purchase.PurchaseOrderRepository
	supplierRepo purchase.SupplierRepository
}

// NewPurchaseOrderService creates a new PurchaseOrderService
func NewPurchaseOrderService(orderRepo purchase.PurchaseOrderRepository, supplierRepo purchase.SupplierRepository) *PurchaseOrderService {
	return &PurchaseOrderService{orderRepo: orderRepo, supplierRepo: supplierRepo}
}

// Create creates a new purchase order for an existing supplier
func (s *PurchaseOrderService) Create(ctx context.Context, req CreatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	if _, err := s.supplierRepo.FindByID(ctx, req.SupplierID); err != nil {
		return nil, err
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	order, err := purchase.NewPurchaseOrder(req.Number, req.SupplierID, date, req.TotalAmount)
	if err != nil {
		return nil, err
	}
	order.Notes = req.Notes

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to save purchase order: %w", err)
	}

	resp := ToPurchaseOrderResponse(order)
	return &resp, nil
}

// GetByID retrieves a purchase order
func (s *PurchaseOrderService) GetByID(ctx context.Context, id uuid.UUID) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToPurchaseOrderResponse(order)
	return &resp, nil
}

// Update applies a partial update to a purchase order. Number and supplier
// are immutable.
func (s *PurchaseOrderService) Update(ctx context.Context, id uuid.UUID, req UpdatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Date != nil {
		order.Date = *req.Date
	}
	if req.Status != nil {
		if err := order.SetStatus(purchase.PurchaseOrderStatus(*req.Status)); err != nil {
			return nil, err
		}
	}
	if req.TotalAmount != nil {
		if req.TotalAmount.IsNegative() {
			return nil, shared.NewValidationError("total_amount", "Purchase order total cannot be negative")
		}
		order.TotalAmount = req.TotalAmount.Round(2)
	}
	if req.Notes != nil {
		order.Notes = *req.Notes
	}
	order.Touch()

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to update purchase order: %w", err)
	}

	resp := ToPurchaseOrderResponse(order)
	return &resp, nil
}

// Delete removes a purchase order
func (s *PurchaseOrderService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.orderRepo.Delete(ctx, id)
}

// List retrieves purchase orders matching the filter
func (s *PurchaseOrderService) List(ctx context.Context, filter ListFilter, supplierID *uuid.UUID, status string) ([]PurchaseOrderResponse, int64, error) {
	extra := make(map[string]interface{})
	if supplierID != nil {
		extra["supplier_id"] = *supplierID
	}
	if status != "" {
		extra["status"] = status
	}
	f := toSharedFilter(filter, extra)

	orders, err := s.orderRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list purchase orders: %w", err)
	}
	total, err := s.orderRepo.Count(ctx, f)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count purchase orders: %w", err)
	}

	responses := make([]PurchaseOrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, ToPurchaseOrderResponse(&orders[i]))
	}
	return responses, total, nil
}
