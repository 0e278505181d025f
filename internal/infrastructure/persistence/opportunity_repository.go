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

// GormOpportunityRepository implements OpportunityRepository using GORM
type GormOpportunityRepository struct {
	db        *gorm.DB
	sequences *SequenceAllocator
}

// NewGormOpportunityRepository creates a new GormOpportunityRepository
func NewGormOpportunityRepository(db *gorm.DB, sequences *SequenceAllocator) *GormOpportunityRepository {
	return &GormOpportunityRepository{db: db, sequences: sequences}
}

// FindByID finds an opportunity by its ID
func (r *GormOpportunityRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Opportunity, error) {
	var opportunity sales.Opportunity
	if err := r.db.WithContext(ctx).First(&opportunity, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &opportunity, nil
}

// FindAll finds all opportunities matching the filter
func (r *GormOpportunityRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.Opportunity, error) {
	var opportunities []sales.Opportunity
	err := r.db.WithContext(ctx).Model(&sales.Opportunity{}).
		Scopes(r.matchScope(filter), pageScope(filter, "number", "name", "stage", "inserted_date")).
		Find(&opportunities).Error
	if err != nil {
		return nil, err
	}
	return opportunities, nil
}

// Create inserts the opportunity, allocating its number from the OPP series
// in the same transaction when none is set
func (r *GormOpportunityRepository) Create(ctx context.Context, opportunity *sales.Opportunity) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if opportunity.Number == "" {
			number, err := r.sequences.NextInTx(tx, numbering.SeriesOpportunity)
			if err != nil {
				return err
			}
			opportunity.Number = number
		}
		return tx.Create(opportunity).Error
	})
}

// Save updates an existing opportunity
func (r *GormOpportunityRepository) Save(ctx context.Context, opportunity *sales.Opportunity) error {
	return r.db.WithContext(ctx).Save(opportunity).Error
}

// Delete deletes an opportunity
func (r *GormOpportunityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&sales.Opportunity{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts opportunities matching the filter
func (r *GormOpportunityRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&sales.Opportunity{}).
		Scopes(r.matchScope(filter)).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormOpportunityRepository) matchScope(filter shared.Filter) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		return q.Scopes(
			searchScope(filter.Search, "number", "name"),
			equalityScope(filter.Filters, "client_id", "stage"),
			dateRangeScope(filter.Filters, "inserted_date"),
		)
	}
}

// Ensure GormOpportunityRepository implements OpportunityRepository
var _ sales.OpportunityRepository = (*GormOpportunityRepository)(nil)
