package sales

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nexuscrm/backend/internal/domain/shared"
)

// loadParent resolves the mandatory upstream document of a chain stage. Every
// derived document shares the same rule: the parent must exist before anything
// is written, and a missing parent is a field-scoped validation error on the
// reference, not a plain not-found.
func loadParent[T any](
	ctx context.Context,
	find func(context.Context, uuid.UUID) (*T, error),
	id uuid.UUID,
	field, document string,
) (*T, error) {
	parent, err := find(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewMissingParentError(field, document)
		}
		return nil, err
	}
	return parent, nil
}
