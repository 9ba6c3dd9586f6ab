package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/dmitrijs2005/memberhub/internal/common"
	"github.com/dmitrijs2005/memberhub/internal/server/models"
	"github.com/dmitrijs2005/memberhub/internal/server/repositories/repomanager"
)

// StatusFilter narrows a member listing. Filters are mutually exclusive
// single-select.
type StatusFilter string

const (
	FilterAll        StatusFilter = "all"
	FilterActive     StatusFilter = "active"
	FilterInactive   StatusFilter = "inactive"
	FilterVerified   StatusFilter = "verified"
	FilterUnverified StatusFilter = "unverified"
	FilterIncomplete StatusFilter = "incomplete"
)

// DirectoryService is the admin view over the member store: listing,
// mutation and derived statistics.
type DirectoryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewDirectoryService constructs a DirectoryService.
func NewDirectoryService(db *sql.DB, m repomanager.RepositoryManager) *DirectoryService {
	return &DirectoryService{db: db, repomanager: m}
}

// GetMembers returns all members in stable store order.
func (s *DirectoryService) GetMembers(ctx context.Context) ([]*models.Member, error) {
	return s.repomanager.Members(s.db).List(ctx)
}

// GetMemberByID returns one member or common.ErrorNotFound.
func (s *DirectoryService) GetMemberByID(ctx context.Context, id string) (*models.Member, error) {
	return s.repomanager.Members(s.db).GetByID(ctx, id)
}

// UpdateMember merges the partial update and reports whether the id existed.
func (s *DirectoryService) UpdateMember(ctx context.Context, id string, upd models.MemberUpdate) (bool, error) {
	_, err := s.repomanager.Members(s.db).Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// DeleteMember removes a member and reports whether a removal occurred.
func (s *DirectoryService) DeleteMember(ctx context.Context, id string) (bool, error) {
	return s.repomanager.Members(s.db).Delete(ctx, id)
}

// Stats recomputes derived counts from current store state on every call.
func (s *DirectoryService) Stats(ctx context.Context) (*models.MemberStats, error) {
	list, err := s.repomanager.Members(s.db).List(ctx)
	if err != nil {
		return nil, err
	}

	stats := &models.MemberStats{Total: len(list)}
	for _, m := range list {
		if m.IsActive {
			stats.Active++
		}
		if m.Verified {
			stats.Verified++
		}
		if m.ProfileComplete {
			stats.ProfileComplete++
		}
	}
	stats.Inactive = stats.Total - stats.Active
	stats.Unverified = stats.Total - stats.Verified
	stats.ProfileIncomplete = stats.Total - stats.ProfileComplete

	return stats, nil
}

// FilterMembers applies the consumer-side text search and status filter:
// the query matches case-insensitively against name or email substrings.
func FilterMembers(list []*models.Member, query string, status StatusFilter) []*models.Member {
	q := strings.ToLower(strings.TrimSpace(query))

	result := make([]*models.Member, 0, len(list))
	for _, m := range list {
		if q != "" &&
			!strings.Contains(strings.ToLower(m.Name), q) &&
			!strings.Contains(strings.ToLower(m.Email), q) {
			continue
		}

		switch status {
		case FilterActive:
			if !m.IsActive {
				continue
			}
		case FilterInactive:
			if m.IsActive {
				continue
			}
		case FilterVerified:
			if !m.Verified {
				continue
			}
		case FilterUnverified:
			if m.Verified {
				continue
			}
		case FilterIncomplete:
			if m.ProfileComplete {
				continue
			}
		}

		result = append(result, m)
	}
	return result
}
