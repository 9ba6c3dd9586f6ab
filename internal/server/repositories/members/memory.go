package members

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/memberhub/internal/common"
	"github.com/dmitrijs2005/memberhub/internal/server/models"
)

// MemoryRepository is the mock member store: an ordered in-memory list
// guarded by a mutex. It is the default backend when no database DSN is
// configured.
type MemoryRepository struct {
	mu      sync.RWMutex
	members []*models.Member
}

// NewMemoryRepository constructs an empty in-memory member store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func cloneMember(m *models.Member) *models.Member {
	c := *m
	return &c
}

func (r *MemoryRepository) Create(ctx context.Context, m *models.Member) (*models.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.members {
		if existing.Email == m.Email {
			return nil, common.ErrorDuplicateEmail
		}
	}
	r.members = append(r.members, cloneMember(m))
	return m, nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*models.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.members {
		if m.ID == id {
			return cloneMember(m), nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *MemoryRepository) GetByEmail(ctx context.Context, email string) (*models.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.members {
		if m.Email == email {
			return cloneMember(m), nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *MemoryRepository) List(ctx context.Context) ([]*models.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.Member, 0, len(r.members))
	for _, m := range r.members {
		result = append(result, cloneMember(m))
	}
	return result, nil
}

func (r *MemoryRepository) Update(ctx context.Context, id string, upd models.MemberUpdate) (*models.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range r.members {
		if m.ID == id {
			upd.Apply(m)
			return cloneMember(m), nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, m := range r.members {
		if m.ID == id {
			r.members = append(r.members[:i], r.members[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
