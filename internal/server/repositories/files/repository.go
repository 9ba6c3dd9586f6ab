// Package files stores metadata for uploaded documents. Content bytes live
// in the blob store; this repository only tracks descriptors.
package files

import (
	"context"

	"github.com/dmitrijs2005/memberhub/internal/server/models"
)

type Repository interface {
	// Create inserts a new file descriptor.
	Create(ctx context.Context, f *models.StoredFile) error

	// GetByID returns the descriptor or common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.StoredFile, error)

	// ListByOwner returns the owner's files, most recently uploaded first.
	// An empty category matches all categories.
	ListByOwner(ctx context.Context, ownerID string, category models.FileCategory) ([]*models.StoredFile, error)

	// Delete removes the descriptor by id and reports whether a removal occurred.
	Delete(ctx context.Context, id string) (bool, error)
}
