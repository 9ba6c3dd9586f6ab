// Package repomanager vends repository implementations for a chosen storage
// backend. Services hold a manager plus an optional *sql.DB; the in-memory
// manager ignores the DBTX argument, so the same service code runs against
// both backends.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/memberhub/internal/dbx"
	"github.com/dmitrijs2005/memberhub/internal/server/repositories/files"
	"github.com/dmitrijs2005/memberhub/internal/server/repositories/members"
	"github.com/dmitrijs2005/memberhub/internal/server/repositories/refreshtokens"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Members(db dbx.DBTX) members.Repository
	Files(db dbx.DBTX) files.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
}
