package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/memberhub/internal/dbx"
	"github.com/dmitrijs2005/memberhub/internal/server/repositories/files"
	"github.com/dmitrijs2005/memberhub/internal/server/repositories/members"
	"github.com/dmitrijs2005/memberhub/internal/server/repositories/refreshtokens"
)

// InMemoryRepositoryManager vends mock-store repositories. All accessors
// return the same instances; the DBTX argument is ignored.
type InMemoryRepositoryManager struct {
	members       *members.MemoryRepository
	files         *files.MemoryRepository
	refreshTokens *refreshtokens.MemoryRepository
}

// NewInMemoryRepositoryManager constructs the in-memory backend.
func NewInMemoryRepositoryManager() RepositoryManager {
	return &InMemoryRepositoryManager{
		members:       members.NewMemoryRepository(),
		files:         files.NewMemoryRepository(),
		refreshTokens: refreshtokens.NewMemoryRepository(),
	}
}

func (m *InMemoryRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return nil
}

func (m *InMemoryRepositoryManager) Members(db dbx.DBTX) members.Repository {
	return m.members
}

func (m *InMemoryRepositoryManager) Files(db dbx.DBTX) files.Repository {
	return m.files
}

func (m *InMemoryRepositoryManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	return m.refreshTokens
}
