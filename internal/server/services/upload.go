package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/dmitrijs2005/memberhub/internal/common"
	"github.com/dmitrijs2005/memberhub/internal/server/blob"
	"github.com/dmitrijs2005/memberhub/internal/server/config"
	"github.com/dmitrijs2005/memberhub/internal/server/models"
	"github.com/dmitrijs2005/memberhub/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// allowedMimeTypes is the upload whitelist. "image/jpg" is not a real MIME
// type but some browsers send it, so it stays accepted.
var allowedMimeTypes = map[string]struct{}{
	"image/jpeg":      {},
	"image/png":       {},
	"image/jpg":       {},
	"application/pdf": {},
}

// ProgressFunc receives the clamped transfer percentage on every tick.
// Values are monotonically non-decreasing within one upload.
type ProgressFunc func(percent float64)

// UploadInput carries one file to upload.
type UploadInput struct {
	Name     string
	Size     int64
	MimeType string
	Content  []byte
}

// UploadResult is the per-file outcome of a batch upload.
type UploadResult struct {
	File *models.StoredFile
	Err  error
}

// UploadService validates incoming documents and runs the transfer
// pipeline: progress advances by pseudo-random increments of up to 30
// percentage points per tick, and a single independently scheduled check
// fails a small fraction of transfers with ErrorUploadFailed.
//
// The failure check is always consulted before the terminal progress
// report, so a failure can never arrive after the caller has seen 100%.
type UploadService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	blobs       blob.Store

	maxSize        int64
	tickInterval   time.Duration
	failCheckDelay time.Duration
	failureRate    float64

	// randFloat is a seam for deterministic tests.
	randFloat func() float64
}

// NewUploadService constructs an UploadService using repositories, the blob
// store and server config.
func NewUploadService(db *sql.DB, m repomanager.RepositoryManager, blobs blob.Store, cfg *config.Config) *UploadService {
	return &UploadService{
		db:             db,
		repomanager:    m,
		blobs:          blobs,
		maxSize:        cfg.MaxUploadSize,
		tickInterval:   cfg.UploadTickInterval,
		failCheckDelay: cfg.UploadFailCheckDelay,
		failureRate:    cfg.UploadFailureRate,
		randFloat:      rand.Float64,
	}
}

// storageKey builds a date-partitioned blob key.
func storageKey(ownerID string) string {
	d := time.Now()
	return fmt.Sprintf("members/%s/%d/%d/%d/%v", ownerID, d.Year(), d.Month(), d.Day(), uuid.New())
}

// Upload validates the file, simulates the transfer with progress
// callbacks, stores the content and persists the descriptor. Validation
// failures are reported before the first progress callback fires.
func (s *UploadService) Upload(ctx context.Context, ownerID string, in UploadInput, category models.FileCategory, onProgress ProgressFunc) (*models.StoredFile, error) {
	if in.Size > s.maxSize {
		return nil, common.ErrorFileTooLarge
	}
	if _, ok := allowedMimeTypes[in.MimeType]; !ok {
		return nil, common.ErrorUnsupportedType
	}
	if !category.Valid() {
		return nil, fmt.Errorf("unknown file category: %q", category)
	}

	if err := s.transfer(ctx, onProgress); err != nil {
		return nil, err
	}

	key := storageKey(ownerID)
	if err := s.blobs.Put(ctx, key, in.MimeType, in.Content); err != nil {
		return nil, fmt.Errorf("storing content: %w", err)
	}

	f := &models.StoredFile{
		ID:         uuid.NewString(),
		OwnerID:    ownerID,
		Name:       in.Name,
		Size:       in.Size,
		MimeType:   in.MimeType,
		Category:   category,
		StorageKey: key,
		UploadedAt: time.Now(),
	}

	if err := s.repomanager.Files(s.db).Create(ctx, f); err != nil {
		// keep the blob store consistent with the metadata store
		_ = s.blobs.Delete(ctx, key)
		return nil, fmt.Errorf("saving file record: %w", err)
	}

	// the owner now has at least one document on file
	flag := true
	_, _ = s.repomanager.Members(s.db).Update(ctx, ownerID, models.MemberUpdate{DocumentsUploaded: &flag})

	return f, nil
}

// transfer drives the simulated pipeline until completion or failure.
func (s *UploadService) transfer(ctx context.Context, onProgress ProgressFunc) error {
	// the transient verdict is drawn once per upload
	failed := s.randFloat() < s.failureRate
	failChecked := false

	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()
	failTimer := time.NewTimer(s.failCheckDelay)
	defer failTimer.Stop()

	progress := 0.0
	for progress < 100 {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-failTimer.C:
			failChecked = true
			if failed {
				return common.ErrorUploadFailed
			}

		case <-ticker.C:
			next := progress + s.randFloat()*30
			if next >= 100 {
				// consult the verdict before the terminal report
				if !failChecked {
					failChecked = true
					if failed {
						return common.ErrorUploadFailed
					}
				}
				next = 100
			}
			progress = next
			if onProgress != nil {
				onProgress(progress)
			}
		}
	}
	return nil
}

// UploadAll runs the inputs as independent concurrent uploads. One file's
// failure never cancels its siblings; the call returns once every upload
// has settled, with a result per input in input order.
func (s *UploadService) UploadAll(ctx context.Context, ownerID string, inputs []UploadInput, category models.FileCategory, onProgress func(index int, percent float64)) []UploadResult {
	results := make([]UploadResult, len(inputs))

	var wg sync.WaitGroup
	for i, in := range inputs {
		wg.Add(1)
		go func(i int, in UploadInput) {
			defer wg.Done()
			var cb ProgressFunc
			if onProgress != nil {
				cb = func(p float64) { onProgress(i, p) }
			}
			f, err := s.Upload(ctx, ownerID, in, category, cb)
			results[i] = UploadResult{File: f, Err: err}
		}(i, in)
	}
	wg.Wait()

	return results
}

// Delete removes a stored file and releases its content. Reports whether a
// removal occurred; deleting an absent id is not an error.
func (s *UploadService) Delete(ctx context.Context, fileID string) (bool, error) {
	repo := s.repomanager.Files(s.db)

	f, err := repo.GetByID(ctx, fileID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, nil
		}
		return false, err
	}

	if err := s.blobs.Delete(ctx, f.StorageKey); err != nil {
		return false, fmt.Errorf("releasing content: %w", err)
	}

	return repo.Delete(ctx, fileID)
}

// ListFiles returns the owner's files, optionally narrowed to one category,
// most recent first.
func (s *UploadService) ListFiles(ctx context.Context, ownerID string, category models.FileCategory) ([]*models.StoredFile, error) {
	if category != "" && !category.Valid() {
		return nil, fmt.Errorf("unknown file category: %q", category)
	}
	return s.repomanager.Files(s.db).ListByOwner(ctx, ownerID, category)
}

// SignedURL returns a directly resolvable URL for the content when the
// blob store can sign one. ok is false when the caller should stream the
// content through the API instead.
func (s *UploadService) SignedURL(ctx context.Context, f *models.StoredFile) (string, bool) {
	signer, ok := s.blobs.(blob.URLSigner)
	if !ok {
		return "", false
	}
	u, err := signer.SignedGetURL(ctx, f.StorageKey)
	if err != nil {
		return "", false
	}
	return u, true
}

// GetFile returns the stored descriptor without touching the blob store.
func (s *UploadService) GetFile(ctx context.Context, fileID string) (*models.StoredFile, error) {
	return s.repomanager.Files(s.db).GetByID(ctx, fileID)
}

// GetContent returns the descriptor and raw bytes for a stored file.
func (s *UploadService) GetContent(ctx context.Context, fileID string) (*models.StoredFile, []byte, error) {
	f, err := s.repomanager.Files(s.db).GetByID(ctx, fileID)
	if err != nil {
		return nil, nil, err
	}
	data, err := s.blobs.Get(ctx, f.StorageKey)
	if err != nil {
		return nil, nil, err
	}
	return f, data, nil
}
