package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dmitrijs2005/memberhub/internal/common"
	"github.com/dmitrijs2005/memberhub/internal/server/blob"
	"github.com/dmitrijs2005/memberhub/internal/server/models"
	"github.com/dmitrijs2005/memberhub/internal/server/repositories/members"
	"github.com/dmitrijs2005/memberhub/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestUploadService wires an UploadService against in-memory stores with
// fast timings so tests complete in milliseconds.
func newTestUploadService(t *testing.T) (*UploadService, repomanager.RepositoryManager, *blob.MemoryStore) {
	t.Helper()

	rm := repomanager.NewInMemoryRepositoryManager()
	require.NoError(t, members.SeedDemo(context.Background(), rm.Members(nil), demoHash))

	store := blob.NewMemoryStore()

	cfg := newTestConfig()
	cfg.UploadTickInterval = time.Millisecond
	cfg.UploadFailCheckDelay = 5 * time.Millisecond
	cfg.UploadFailureRate = 0

	return NewUploadService(nil, rm, store, cfg), rm, store
}

func pdfInput(name string) UploadInput {
	content := []byte("%PDF-1.4 test")
	return UploadInput{Name: name, Size: int64(len(content)), MimeType: "application/pdf", Content: content}
}

func TestUpload_RejectsOversizeBeforeProgress(t *testing.T) {
	s, _, store := newTestUploadService(t)

	progressed := false
	in := pdfInput("big.pdf")
	in.Size = s.maxSize + 1

	_, err := s.Upload(context.Background(), "3", in, models.CategoryDocument, func(float64) { progressed = true })
	assert.ErrorIs(t, err, common.ErrorFileTooLarge)
	assert.False(t, progressed)
	assert.Equal(t, 0, store.Len())
}

func TestUpload_RejectsUnsupportedTypeBeforeProgress(t *testing.T) {
	s, _, store := newTestUploadService(t)

	progressed := false
	in := UploadInput{Name: "run.exe", Size: 10, MimeType: "application/x-msdownload", Content: []byte("MZ........")}

	_, err := s.Upload(context.Background(), "3", in, models.CategoryDocument, func(float64) { progressed = true })
	assert.ErrorIs(t, err, common.ErrorUnsupportedType)
	assert.False(t, progressed)
	assert.Equal(t, 0, store.Len())
}

func TestUpload_RejectsUnknownCategory(t *testing.T) {
	s, _, _ := newTestUploadService(t)

	_, err := s.Upload(context.Background(), "3", pdfInput("x.pdf"), models.FileCategory("selfie"), nil)
	assert.Error(t, err)
}

func TestUpload_Success(t *testing.T) {
	s, rm, store := newTestUploadService(t)
	ctx := context.Background()

	var reported []float64
	f, err := s.Upload(ctx, "3", pdfInput("ktp.pdf"), models.CategoryDocument, func(p float64) {
		reported = append(reported, p)
	})
	require.NoError(t, err)
	require.NotNil(t, f)

	assert.Equal(t, "ktp.pdf", f.Name)
	assert.Equal(t, "3", f.OwnerID)
	assert.Equal(t, models.CategoryDocument, f.Category)
	assert.NotEmpty(t, f.ID)

	// progress is monotonic and ends at exactly 100
	require.NotEmpty(t, reported)
	for i := 1; i < len(reported); i++ {
		assert.GreaterOrEqual(t, reported[i], reported[i-1])
	}
	assert.Equal(t, 100.0, reported[len(reported)-1])

	// the content landed in the blob store and the descriptor in the repo
	assert.Equal(t, 1, store.Len())
	data, err := store.Get(ctx, f.StorageKey)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4 test"), data)

	// the owner is flagged as having documents on file
	m, err := rm.Members(nil).GetByID(ctx, "3")
	require.NoError(t, err)
	assert.True(t, m.DocumentsUploaded)
}

func TestUpload_TransientFailure(t *testing.T) {
	s, _, store := newTestUploadService(t)
	s.failureRate = 1
	s.tickInterval = 20 * time.Millisecond
	s.failCheckDelay = time.Millisecond

	_, err := s.Upload(context.Background(), "3", pdfInput("x.pdf"), models.CategoryDocument, nil)
	assert.ErrorIs(t, err, common.ErrorUploadFailed)
	assert.Equal(t, 0, store.Len())
}

func TestUpload_NeverFailsAfterFullProgress(t *testing.T) {
	s, _, _ := newTestUploadService(t)
	// transfer finishes long before the scheduled failure check fires
	s.failureRate = 1
	s.failCheckDelay = time.Hour

	var reported []float64
	_, err := s.Upload(context.Background(), "3", pdfInput("x.pdf"), models.CategoryDocument, func(p float64) {
		reported = append(reported, p)
	})
	assert.ErrorIs(t, err, common.ErrorUploadFailed)

	// the doomed transfer must not have reported completion first
	for _, p := range reported {
		assert.Less(t, p, 100.0)
	}
}

func TestUpload_ContextCancellation(t *testing.T) {
	s, _, store := newTestUploadService(t)
	s.tickInterval = time.Hour
	s.failCheckDelay = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Upload(ctx, "3", pdfInput("x.pdf"), models.CategoryDocument, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, store.Len())
}

func TestUploadAll_IndependentOutcomes(t *testing.T) {
	s, _, _ := newTestUploadService(t)
	ctx := context.Background()

	inputs := []UploadInput{
		pdfInput("a.pdf"),
		{Name: "huge.pdf", Size: s.maxSize + 1, MimeType: "application/pdf"},
		pdfInput("b.pdf"),
		{Name: "bad.exe", Size: 10, MimeType: "application/octet-stream"},
	}

	results := s.UploadAll(ctx, "3", inputs, models.CategoryDocument, nil)
	require.Len(t, results, len(inputs))

	// a rejected sibling never drags down the valid ones
	require.NoError(t, results[0].Err)
	assert.Equal(t, "a.pdf", results[0].File.Name)
	assert.ErrorIs(t, results[1].Err, common.ErrorFileTooLarge)
	require.NoError(t, results[2].Err)
	assert.Equal(t, "b.pdf", results[2].File.Name)
	assert.ErrorIs(t, results[3].Err, common.ErrorUnsupportedType)
}

func TestUploadAll_ConcurrentBatchSettles(t *testing.T) {
	s, _, store := newTestUploadService(t)
	ctx := context.Background()

	const n = 8
	inputs := make([]UploadInput, n)
	for i := range inputs {
		inputs[i] = pdfInput(fmt.Sprintf("doc-%d.pdf", i))
	}

	results := s.UploadAll(ctx, "3", inputs, models.CategoryProfile, nil)
	require.Len(t, results, n)
	for i, r := range results {
		require.NoError(t, r.Err, "upload %d", i)
		assert.Equal(t, models.CategoryProfile, r.File.Category)
	}
	assert.Equal(t, n, store.Len())

	list, err := s.ListFiles(ctx, "3", models.CategoryProfile)
	require.NoError(t, err)
	assert.Len(t, list, n)
}

func TestListFiles_FiltersByOwnerAndCategory(t *testing.T) {
	s, rm, _ := newTestUploadService(t)
	ctx := context.Background()

	base := time.Now()
	seed := []*models.StoredFile{
		{ID: "f1", OwnerID: "3", Name: "old.pdf", Category: models.CategoryDocument, UploadedAt: base.Add(-2 * time.Hour)},
		{ID: "f2", OwnerID: "3", Name: "new.pdf", Category: models.CategoryDocument, UploadedAt: base},
		{ID: "f3", OwnerID: "3", Name: "avatar.png", Category: models.CategoryProfile, UploadedAt: base.Add(-time.Hour)},
		{ID: "f4", OwnerID: "4", Name: "other.pdf", Category: models.CategoryDocument, UploadedAt: base},
	}
	for _, f := range seed {
		require.NoError(t, rm.Files(nil).Create(ctx, f))
	}

	all, err := s.ListFiles(ctx, "3", "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	// most recent first, and never another owner's file
	assert.Equal(t, []string{"f2", "f3", "f1"}, []string{all[0].ID, all[1].ID, all[2].ID})

	docs, err := s.ListFiles(ctx, "3", models.CategoryDocument)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "f2", docs[0].ID)
	assert.Equal(t, "f1", docs[1].ID)

	_, err = s.ListFiles(ctx, "3", models.FileCategory("bogus"))
	assert.Error(t, err)
}

func TestDelete_ReleasesContent(t *testing.T) {
	s, _, store := newTestUploadService(t)
	ctx := context.Background()

	f, err := s.Upload(ctx, "3", pdfInput("x.pdf"), models.CategoryDocument, nil)
	require.NoError(t, err)
	require.Equal(t, 1, store.Len())

	ok, err := s.Delete(ctx, f.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0, store.Len())

	// deleting again is a no-op, not an error
	ok, err = s.Delete(ctx, f.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGetFile_DescriptorWithoutBlob(t *testing.T) {
	s, rm, store := newTestUploadService(t)
	ctx := context.Background()

	// descriptor only, no content in the blob store
	f := &models.StoredFile{
		ID:         "f9",
		OwnerID:    "3",
		Name:       "orphan.pdf",
		Size:       10,
		MimeType:   "application/pdf",
		Category:   models.CategoryDocument,
		StorageKey: "k9",
		UploadedAt: time.Now(),
	}
	require.NoError(t, rm.Files(nil).Create(ctx, f))

	got, err := s.GetFile(ctx, "f9")
	require.NoError(t, err)
	assert.Equal(t, "3", got.OwnerID)
	assert.Equal(t, 0, store.Len())

	_, err = s.GetFile(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGetContent(t *testing.T) {
	s, _, _ := newTestUploadService(t)
	ctx := context.Background()

	f, err := s.Upload(ctx, "3", pdfInput("x.pdf"), models.CategoryDocument, nil)
	require.NoError(t, err)

	got, data, err := s.GetContent(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, f.ID, got.ID)
	assert.Equal(t, []byte("%PDF-1.4 test"), data)

	_, _, err = s.GetContent(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
