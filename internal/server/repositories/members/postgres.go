package members

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/memberhub/internal/common"
	"github.com/dmitrijs2005/memberhub/internal/dbx"
	"github.com/dmitrijs2005/memberhub/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgresRepository implements the member store over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const memberColumns = `id, email, name, role, password_hash, created_at, is_active,
	profile_complete, phone, address, join_date, last_active,
	documents_uploaded, verified, notes`

func scanMember(row interface{ Scan(dest ...any) error }) (*models.Member, error) {
	m := &models.Member{}
	err := row.Scan(&m.ID, &m.Email, &m.Name, &m.Role, &m.PasswordHash,
		&m.CreatedAt, &m.IsActive, &m.ProfileComplete, &m.Phone, &m.Address,
		&m.JoinDate, &m.LastActive, &m.DocumentsUploaded, &m.Verified, &m.Notes)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *PostgresRepository) Create(ctx context.Context, m *models.Member) (*models.Member, error) {
	query := `
		INSERT INTO members (id, email, name, role, password_hash, created_at, is_active,
			profile_complete, phone, address, join_date, last_active,
			documents_uploaded, verified, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err := r.db.ExecContext(ctx, query, m.ID, m.Email, m.Name, m.Role,
		m.PasswordHash, m.CreatedAt, m.IsActive, m.ProfileComplete, m.Phone,
		m.Address, m.JoinDate, m.LastActive, m.DocumentsUploaded, m.Verified, m.Notes)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, common.ErrorDuplicateEmail
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return m, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE id = $1`
	m, err := scanMember(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return m, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE email = $1`
	m, err := scanMember(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return m, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members ORDER BY join_date, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id string, upd models.MemberUpdate) (*models.Member, error) {
	// read-modify-write keeps the merge semantics in one place (MemberUpdate.Apply)
	m, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	upd.Apply(m)

	query := `
		UPDATE members SET name = $2, role = $3, is_active = $4, profile_complete = $5,
			phone = $6, address = $7, last_active = $8, documents_uploaded = $9,
			verified = $10, notes = $11
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, m.ID, m.Name, m.Role, m.IsActive,
		m.ProfileComplete, m.Phone, m.Address, m.LastActive, m.DocumentsUploaded,
		m.Verified, m.Notes)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected error: %w", err)
	}
	if n != 1 {
		return nil, common.ErrorNotFound
	}
	return m, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM members WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}
	return n > 0, nil
}
