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

// GormOfferRepository implements OfferRepository using GORM. Create and
// Update run the whole chain mutation in one transaction: number allocation,
// document write, item replacement and the final total, so a failure at any
// step leaves no partial state behind.
type GormOfferRepository struct {
	db        *gorm.DB
	sequences *SequenceAllocator
}

// NewGormOfferRepository creates a new GormOfferRepository
func NewGormOfferRepository(db *gorm.DB, sequences *SequenceAllocator) *GormOfferRepository {
	return &GormOfferRepository{db: db, sequences: sequences}
}

// FindByID finds an offer by its ID, with items preloaded in line order
func (r *GormOfferRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Offer, error) {
	var offer sales.Offer
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&offer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &offer, nil
}

// FindAll finds all offers matching the filter
func (r *GormOfferRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.Offer, error) {
	var offers []sales.Offer
	err := r.db.WithContext(ctx).Model(&sales.Offer{}).
		Scopes(r.matchScope(filter), pageScope(filter, "number", "date", "valid_until", "status", "total_amount")).
		Find(&offers).Error
	if err != nil {
		return nil, err
	}
	return offers, nil
}

// Create inserts the offer with its items, allocating the number from the OFF
// series when none is set. The total is recomputed from the items before the
// insert so the stored value can never drift from the line set.
func (r *GormOfferRepository) Create(ctx context.Context, offer *sales.Offer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if offer.Number == "" {
			number, err := r.sequences.NextInTx(tx, numbering.SeriesOffer)
			if err != nil {
				return err
			}
			offer.Number = number
		}
		offer.RecalculateTotal()
		return tx.Create(offer).Error
	})
}

// Update saves the offer. When replaceItems is true the stored item set is
// deleted and rewritten from the aggregate; either way the total is
// recomputed from the aggregate's items and persisted last.
func (r *GormOfferRepository) Update(ctx context.Context, offer *sales.Offer, replaceItems bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		offer.RecalculateTotal()

		if err := tx.Omit("Items").Save(offer).Error; err != nil {
			return err
		}

		if replaceItems {
			if err := tx.Where("offer_id = ?", offer.ID).Delete(&sales.OfferItem{}).Error; err != nil {
				return err
			}
			for i := range offer.Items {
				offer.Items[i].OfferID = offer.ID
				if err := tx.Create(&offer.Items[i]).Error; err != nil {
					return err
				}
			}
		}

		return tx.Model(&sales.Offer{}).
			Where("id = ?", offer.ID).
			Update("total_amount", offer.TotalAmount).Error
	})
}

// Delete deletes an offer and its items
func (r *GormOfferRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("offer_id = ?", id).Delete(&sales.OfferItem{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&sales.Offer{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts offers matching the filter
func (r *GormOfferRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&sales.Offer{}).
		Scopes(r.matchScope(filter)).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// CountByOpportunity counts offers derived from an opportunity
func (r *GormOfferRepository) CountByOpportunity(ctx context.Context, opportunityID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&sales.Offer{}).
		Where("opportunity_id = ?", opportunityID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormOfferRepository) matchScope(filter shared.Filter) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		return q.Scopes(
			searchScope(filter.Search, "number", "description"),
			equalityScope(filter.Filters, "client_id", "opportunity_id", "status"),
			dateRangeScope(filter.Filters, "date"),
		)
	}
}

// Ensure GormOfferRepository implements OfferRepository
var _ sales.OfferRepository = (*GormOfferRepository)(nil)
