package files

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/memberhub/internal/common"
	"github.com/dmitrijs2005/memberhub/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func sampleFile() *models.StoredFile {
	return &models.StoredFile{
		ID:         "f-1",
		OwnerID:    "m-1",
		Name:       "ktp.pdf",
		Size:       1024,
		MimeType:   "application/pdf",
		Category:   models.CategoryDocument,
		StorageKey: "members/m-1/2024/2/1/abc",
		UploadedAt: time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*INSERT\s+INTO\s+files\s*\(.*\)\s*VALUES\s*\(\$1,.*\$8\)\s*$`

	f := sampleFile()
	mock.ExpectExec(q).
		WithArgs(f.ID, f.OwnerID, f.Name, f.Size, f.MimeType, f.Category, f.StorageKey, f.UploadedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Create(context.Background(), f); err != nil {
		t.Fatalf("Create error: %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*INSERT\s+INTO\s+files\s*\(.*\)\s*VALUES\s*\(\$1,.*\$8\)\s*$`

	mock.ExpectExec(q).
		WillReturnError(errors.New("db down"))

	err := repo.Create(context.Background(), sampleFile())
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetByID_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*SELECT\s+.*\s+FROM\s+files\s+WHERE\s+id\s*=\s*\$1\s*$`

	f := sampleFile()
	rows := sqlmock.NewRows([]string{"id", "owner_id", "name", "size", "mime_type", "category", "storage_key", "uploaded_at"}).
		AddRow(f.ID, f.OwnerID, f.Name, f.Size, f.MimeType, string(f.Category), f.StorageKey, f.UploadedAt)
	mock.ExpectQuery(q).
		WithArgs("f-1").
		WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), "f-1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.ID != "f-1" || got.StorageKey != f.StorageKey {
		t.Fatalf("unexpected file: %+v", got)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*SELECT\s+.*\s+FROM\s+files\s+WHERE\s+id\s*=\s*\$1\s*$`

	mock.ExpectQuery(q).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestListByOwner_PassesFilterArgs(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*SELECT\s+.*\s+FROM\s+files\s+WHERE\s+owner_id\s*=\s*\$1.*ORDER\s+BY\s+uploaded_at\s+DESC\s*$`

	f := sampleFile()
	rows := sqlmock.NewRows([]string{"id", "owner_id", "name", "size", "mime_type", "category", "storage_key", "uploaded_at"}).
		AddRow(f.ID, f.OwnerID, f.Name, f.Size, f.MimeType, string(f.Category), f.StorageKey, f.UploadedAt)
	mock.ExpectQuery(q).
		WithArgs("m-1", "document").
		WillReturnRows(rows)

	got, err := repo.ListByOwner(context.Background(), "m-1", models.CategoryDocument)
	if err != nil {
		t.Fatalf("ListByOwner error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "f-1" {
		t.Fatalf("unexpected list: %+v", got)
	}

	// an empty category is passed through so SQL skips the filter
	mock.ExpectQuery(q).
		WithArgs("m-1", "").
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "name", "size", "mime_type", "category", "storage_key", "uploaded_at"}))

	if _, err := repo.ListByOwner(context.Background(), "m-1", ""); err != nil {
		t.Fatalf("ListByOwner error: %v", err)
	}
}

func TestDelete(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^DELETE\s+FROM\s+files\s+WHERE\s+id\s*=\s*\$1\s*$`

	mock.ExpectExec(q).
		WithArgs("f-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.Delete(context.Background(), "f-1")
	if err != nil || !ok {
		t.Fatalf("Delete = (%v, %v), want (true, nil)", ok, err)
	}

	mock.ExpectExec(q).
		WithArgs("f-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err = repo.Delete(context.Background(), "f-1")
	if err != nil || ok {
		t.Fatalf("Delete = (%v, %v), want (false, nil)", ok, err)
	}
}
