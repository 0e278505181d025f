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

// GormInvoiceRepository implements InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db        *gorm.DB
	sequences *SequenceAllocator
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB, sequences *SequenceAllocator) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db, sequences: sequences}
}

// FindByID finds an invoice by its ID, with items preloaded in line order
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Invoice, error) {
	var invoice sales.Invoice
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&invoice, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// FindAll finds all invoices matching the filter
func (r *GormInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.Invoice, error) {
	var invoices []sales.Invoice
	err := r.db.WithContext(ctx).Model(&sales.Invoice{}).
		Scopes(r.matchScope(filter), pageScope(filter, "number", "date", "due_date", "status", "total_amount")).
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

// Create inserts the invoice with its items, allocating the number from the
// INV series when none is set
func (r *GormInvoiceRepository) Create(ctx context.Context, invoice *sales.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if invoice.Number == "" {
			number, err := r.sequences.NextInTx(tx, numbering.SeriesInvoice)
			if err != nil {
				return err
			}
			invoice.Number = number
		}
		return tx.Create(invoice).Error
	})
}

// Update saves the invoice. When replaceItems is true the stored item set is
// deleted and rewritten from the aggregate. Invoice lines never drive the
// total, so nothing is recomputed here.
func (r *GormInvoiceRepository) Update(ctx context.Context, invoice *sales.Invoice, replaceItems bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(invoice).Error; err != nil {
			return err
		}

		if replaceItems {
			if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&sales.InvoiceItem{}).Error; err != nil {
				return err
			}
			for i := range invoice.Items {
				invoice.Items[i].InvoiceID = invoice.ID
				if err := tx.Create(&invoice.Items[i]).Error; err != nil {
					return err
				}
			}
		}

		return nil
	})
}

// Delete deletes an invoice and its items
func (r *GormInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", id).Delete(&sales.InvoiceItem{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&sales.Invoice{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts invoices matching the filter
func (r *GormInvoiceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&sales.Invoice{}).
		Scopes(r.matchScope(filter)).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormInvoiceRepository) matchScope(filter shared.Filter) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		return q.Scopes(
			searchScope(filter.Search, "number"),
			equalityScope(filter.Filters, "client_id", "order_id", "status"),
			dateRangeScope(filter.Filters, "date"),
			dateCapScope(filter.Filters, "due_before", "due_date"),
		)
	}
}

// Ensure GormInvoiceRepository implements InvoiceRepository
var _ sales.InvoiceRepository = (*GormInvoiceRepository)(nil)
