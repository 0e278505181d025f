package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nexuscrm/backend/internal/domain/purchase"
	"github.com/nexuscrm/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormPurchaseInvoiceRepository implements PurchaseInvoiceRepository using GORM
type GormPurchaseInvoiceRepository struct {
	db *gorm.DB
}

// NewGormPurchaseInvoiceRepository creates a new GormPurchaseInvoiceRepository
func NewGormPurchaseInvoiceRepository(db *gorm.DB) *GormPurchaseInvoiceRepository {
	return &GormPurchaseInvoiceRepository{db: db}
}

// FindByID finds a purchase invoice by its ID
func (r *GormPurchaseInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*purchase.PurchaseInvoice, error) {
	var invoice purchase.PurchaseInvoice
	if err := r.db.WithContext(ctx).First(&invoice, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// FindAll finds all purchase invoices matching the filter
func (r *GormPurchaseInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]purchase.PurchaseInvoice, error) {
	var invoices []purchase.PurchaseInvoice
	err := r.db.WithContext(ctx).Model(&purchase.PurchaseInvoice{}).
		Scopes(r.matchScope(filter), pageScope(filter, "number", "date", "due_date", "status", "total_amount")).
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

// Save creates or updates a purchase invoice
func (r *GormPurchaseInvoiceRepository) Save(ctx context.Context, invoice *purchase.PurchaseInvoice) error {
	return r.db.WithContext(ctx).Save(invoice).Error
}

// Delete deletes a purchase invoice
func (r *GormPurchaseInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&purchase.PurchaseInvoice{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts purchase invoices matching the filter
func (r *GormPurchaseInvoiceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&purchase.PurchaseInvoice{}).
		Scopes(r.matchScope(filter)).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormPurchaseInvoiceRepository) matchScope(filter shared.Filter) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		return q.Scopes(
			searchScope(filter.Search, "number"),
			equalityScope(filter.Filters, "supplier_id", "order_id", "status"),
			dateCapScope(filter.Filters, "due_before", "due_date"),
		)
	}
}

// Ensure GormPurchaseInvoiceRepository implements PurchaseInvoiceRepository
var _ purchase.PurchaseInvoiceRepository = (*GormPurchaseInvoiceRepository)(nil)
