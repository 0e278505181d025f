package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nexuscrm/backend/internal/domain/sales"
	"github.com/nexuscrm/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormClientRepository implements ClientRepository using GORM
type GormClientRepository struct {
	db *gorm.DB
}

// NewGormClientRepository creates a new GormClientRepository
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// FindByID finds a client by its ID, with contacts preloaded
func (r *GormClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Client, error) {
	var client sales.Client
	if err := r.db.WithContext(ctx).
		Preload("Contacts").
		First(&client, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &client, nil
}

// FindAll finds all clients matching the filter
func (r *GormClientRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.Client, error) {
	var clients []sales.Client
	err := r.db.WithContext(ctx).Model(&sales.Client{}).
		Scopes(r.matchScope(filter), pageScope(filter, "name", "email", "vat_number", "city", "status")).
		Find(&clients).Error
	if err != nil {
		return nil, err
	}
	return clients, nil
}

// Save creates or updates a client
func (r *GormClientRepository) Save(ctx context.Context, client *sales.Client) error {
	return r.db.WithContext(ctx).Omit("Contacts").Save(client).Error
}

// Delete deletes a client and its contacts
func (r *GormClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("client_id = ?", id).Delete(&sales.Contact{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&sales.Client{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts clients matching the filter
func (r *GormClientRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&sales.Client{}).
		Scopes(r.matchScope(filter)).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormClientRepository) matchScope(filter shared.Filter) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		return q.Scopes(
			searchScope(filter.Search, "name", "email", "vat_number"),
			equalityScope(filter.Filters, "status", "city", "assigned_to"),
		)
	}
}

// Ensure GormClientRepository implements ClientRepository
var _ sales.ClientRepository = (*GormClientRepository)(nil)
