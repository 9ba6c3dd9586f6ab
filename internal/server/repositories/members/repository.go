// Package members provides the single identity-keyed member store. Both the
// authentication flow and the admin directory operate on this repository,
// each through its own projection of the Member record.
package members

import (
	"context"

	"github.com/dmitrijs2005/memberhub/internal/server/models"
)

type Repository interface {
	// Create inserts a new member. Returns common.ErrorDuplicateEmail if the
	// email is already taken; the store is left unchanged in that case.
	Create(ctx context.Context, m *models.Member) (*models.Member, error)

	// GetByID returns the member or common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.Member, error)

	// GetByEmail returns the member with the exact email or common.ErrorNotFound.
	GetByEmail(ctx context.Context, email string) (*models.Member, error)

	// List returns all members in stable store order.
	List(ctx context.Context) ([]*models.Member, error)

	// Update merges the partial update into the member with the given id and
	// returns the updated record, or common.ErrorNotFound.
	Update(ctx context.Context, id string, upd models.MemberUpdate) (*models.Member, error)

	// Delete removes the member by id and reports whether a removal occurred.
	Delete(ctx context.Context, id string) (bool, error)
}
