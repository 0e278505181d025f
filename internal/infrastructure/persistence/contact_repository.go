package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nexuscrm/backend/internal/domain/sales"
	"github.com/nexuscrm/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormContactRepository implements ContactRepository using GORM
type GormContactRepository struct {
	db *gorm.DB
}

// NewGormContactRepository creates a new GormContactRepository
func NewGormContactRepository(db *gorm.DB) *GormContactRepository {
	return &GormContactRepository{db: db}
}

// FindByID finds a contact by its ID
func (r *GormContactRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Contact, error) {
	var contact sales.Contact
	if err := r.db.WithContext(ctx).First(&contact, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &contact, nil
}

// FindAll finds all contacts matching the filter
func (r *GormContactRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.Contact, error) {
	var contacts []sales.Contact
	err := r.db.WithContext(ctx).Model(&sales.Contact{}).
		Scopes(r.matchScope(filter), pageScope(filter, "first_name", "last_name", "email")).
		Find(&contacts).Error
	if err != nil {
		return nil, err
	}
	return contacts, nil
}

// FindByClient finds all contacts of a client, primary contacts first
func (r *GormContactRepository) FindByClient(ctx context.Context, clientID uuid.UUID) ([]sales.Contact, error) {
	var contacts []sales.Contact
	if err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("is_primary DESC, last_name ASC").
		Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

// Save creates or updates a contact
func (r *GormContactRepository) Save(ctx context.Context, contact *sales.Contact) error {
	return r.db.WithContext(ctx).Save(contact).Error
}

// Delete deletes a contact
func (r *GormContactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&sales.Contact{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts contacts matching the filter
func (r *GormContactRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&sales.Contact{}).
		Scopes(r.matchScope(filter)).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormContactRepository) matchScope(filter shared.Filter) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		return q.Scopes(
			searchScope(filter.Search, "first_name", "last_name", "email"),
			equalityScope(filter.Filters, "client_id", "is_primary"),
		)
	}
}

// Ensure GormContactRepository implements ContactRepository
var _ sales.ContactRepository = (*GormContactRepository)(nil)
