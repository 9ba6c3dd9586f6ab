package files

import (
	"context"
	"sort"
	"sync"

	"github.com/dmitrijs2005/memberhub/internal/common"
	"github.com/dmitrijs2005/memberhub/internal/server/models"
)

// MemoryRepository is the mock file store used when no database is configured.
type MemoryRepository struct {
	mu    sync.RWMutex
	files []*models.StoredFile
}

// NewMemoryRepository constructs an empty in-memory file store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func cloneFile(f *models.StoredFile) *models.StoredFile {
	c := *f
	return &c
}

func (r *MemoryRepository) Create(ctx context.Context, f *models.StoredFile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.files = append(r.files, cloneFile(f))
	return nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*models.StoredFile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, f := range r.files {
		if f.ID == id {
			return cloneFile(f), nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *MemoryRepository) ListByOwner(ctx context.Context, ownerID string, category models.FileCategory) ([]*models.StoredFile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*models.StoredFile
	for _, f := range r.files {
		if f.OwnerID != ownerID {
			continue
		}
		if category != "" && f.Category != category {
			continue
		}
		result = append(result, cloneFile(f))
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].UploadedAt.After(result[j].UploadedAt)
	})
	return result, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, f := range r.files {
		if f.ID == id {
			r.files = append(r.files[:i], r.files[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
