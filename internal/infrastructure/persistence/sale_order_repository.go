package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nexuscrm/backend/internal/domain/numbering"
	"github.com/nexuscrm/backend/internal/domain/sales"
	"github.com/nexuscrm/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormSaleOrderRepository implements SaleOrderRepository using GORM
type GormSaleOrderRepository struct {
	db        *gorm.DB
	sequences *SequenceAllocator
}

// NewGormSaleOrderRepository creates a new GormSaleOrderRepository
func NewGormSaleOrderRepository(db *gorm.DB, sequences *SequenceAllocator) *GormSaleOrderRepository {
	return &GormSaleOrderRepository{db: db, sequences: sequences}
}

// FindByID finds a sale order by its ID
func (r *GormSaleOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.SaleOrder, error) {
	var order sales.SaleOrder
	if err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAll finds all sale orders matching the filter
func (r *GormSaleOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.SaleOrder, error) {
	var orders []sales.SaleOrder
	err := r.db.WithContext(ctx).Model(&sales.SaleOrder{}).
		Scopes(r.matchScope(filter), pageScope(filter, "number", "date", "status", "total_amount")).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// Create inserts the order, allocating its number from the ORD series in the
// same transaction when none is set
func (r *GormSaleOrderRepository) Create(ctx context.Context, order *sales.SaleOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if order.Number == "" {
			number, err := r.sequences.NextInTx(tx, numbering.SeriesSaleOrder)
			if err != nil {
				return err
			}
			order.Number = number
		}
		return tx.Create(order).Error
	})
}

// Save updates an existing sale order
func (r *GormSaleOrderRepository) Save(ctx context.Context, order *sales.SaleOrder) error {
	return r.db.WithContext(ctx).Save(order).Error
}

// Delete deletes a sale order
func (r *GormSaleOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&sales.SaleOrder{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts sale orders matching the filter
func (r *GormSaleOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&sales.SaleOrder{}).
		Scopes(r.matchScope(filter)).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormSaleOrderRepository) matchScope(filter shared.Filter) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		return q.Scopes(
			searchScope(filter.Search, "number"),
			equalityScope(filter.Filters, "client_id", "offer_id", "status"),
			dateRangeScope(filter.Filters, "date"),
		)
	}
}

// Ensure GormSaleOrderRepository implements SaleOrderRepository
var _ sales.SaleOrderRepository = (*GormSaleOrderRepository)(nil)
