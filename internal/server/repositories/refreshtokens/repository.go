// Package refreshtokens stores durable session records. A refresh token row
// is the server-side equivalent of the browser's persisted session key:
// written on login/register, rotated on refresh, removed on logout.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/memberhub/internal/server/models"
)

type Repository interface {
	// Create inserts a refresh token for userID expiring after validity.
	Create(ctx context.Context, userID string, token string, validity time.Duration) error

	// Find returns the token row or common.ErrorNotFound.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	// Delete removes a token. Deleting an absent token is not an error.
	Delete(ctx context.Context, token string) error
}
