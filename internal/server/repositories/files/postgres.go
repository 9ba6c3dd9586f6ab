package files

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/memberhub/internal/common"
	"github.com/dmitrijs2005/memberhub/internal/dbx"
	"github.com/dmitrijs2005/memberhub/internal/server/models"
)

// PostgresRepository implements file metadata storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, f *models.StoredFile) error {
	query := `
		INSERT INTO files (id, owner_id, name, size, mime_type, category, storage_key, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	if _, err := r.db.ExecContext(ctx, query, f.ID, f.OwnerID, f.Name, f.Size,
		f.MimeType, f.Category, f.StorageKey, f.UploadedAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.StoredFile, error) {
	query := `
		SELECT id, owner_id, name, size, mime_type, category, storage_key, uploaded_at
		FROM files
		WHERE id = $1
	`
	f := &models.StoredFile{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&f.ID, &f.OwnerID, &f.Name,
		&f.Size, &f.MimeType, &f.Category, &f.StorageKey, &f.UploadedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return f, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string, category models.FileCategory) ([]*models.StoredFile, error) {
	query := `
		SELECT id, owner_id, name, size, mime_type, category, storage_key, uploaded_at
		FROM files
		WHERE owner_id = $1 AND ($2 = '' OR category = $2)
		ORDER BY uploaded_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID, string(category))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.StoredFile
	for rows.Next() {
		f := &models.StoredFile{}
		if err := rows.Scan(&f.ID, &f.OwnerID, &f.Name, &f.Size, &f.MimeType,
			&f.Category, &f.StorageKey, &f.UploadedAt); err != nil {
			return nil, err
		}
		result = append(result, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM files WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}
	return n > 0, nil
}
