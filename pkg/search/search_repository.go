package search

import (
	"context"
	"errors"

	"recipe-radar/domain"
	"recipe-radar/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	SearchRepository interface {
		CreateSearchHistory(ctx context.Context, search *entities.SearchHistory) error
		GetSearchHistoryByID(ctx context.Context, id uuid.UUID) (*entities.SearchHistory, error)
		GetSearchesNeedingAttention(ctx context.Context) ([]*entities.SearchHistory, error)
		UpdateSearchStatus(ctx context.Context, id uuid.UUID, from, to domain.SearchStatus) error

		CreateCandidateURLs(ctx context.Context, candidates []*entities.CandidateURL) error
		GetPendingCandidateURLs(ctx context.Context, searchHistoryID uuid.UUID) ([]*entities.CandidateURL, error)
		GetCandidateURLByID(ctx context.Context, id uuid.UUID) (*entities.CandidateURL, error)
		UpdateCandidateStatus(ctx context.Context, id uuid.UUID, from, to domain.CandidateStatus) error
		CountCandidateURLs(ctx context.Context, searchHistoryID uuid.UUID) (terminal int64, pending int64, err error)
	}

	searchRepository struct {
		db *gorm.DB
	}
)

func NewSearchRepository(db *gorm.DB) SearchRepository {
	return &searchRepository{db: db}
}

func (r *searchRepository) CreateSearchHistory(ctx context.Context, search *entities.SearchHistory) error {
	return domain.NewStoreError("create search history", r.db.WithContext(ctx).Create(search).Error)
}

func (r *searchRepository) GetSearchHistoryByID(ctx context.Context, id uuid.UUID) (*entities.SearchHistory, error) {
	var search entities.SearchHistory
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&search).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSearchNotFound
		}
		return nil, domain.NewStoreError("get search history", err)
	}
	return &search, nil
}

func (r *searchRepository) GetSearchesNeedingAttention(ctx context.Context) ([]*entities.SearchHistory, error) {
	var searches []*entities.SearchHistory
	if err := r.db.WithContext(ctx).
		Where("status IN ?", domain.SearchAttentionStatuses).
		Order("created_at asc").
		Find(&searches).Error; err != nil {
		return nil, domain.NewStoreError("get searches needing attention", err)
	}
	return searches, nil
}

// UpdateSearchStatus performs a compare-and-set transition. The transition
// table is checked first; the conditional update then guards against a
// concurrent writer having moved the row already.
func (r *searchRepository) UpdateSearchStatus(ctx context.Context, id uuid.UUID, from, to domain.SearchStatus) error {
	if !from.CanTransitionTo(to) {
		return &domain.StateConflictError{Entity: "SearchHistory", From: string(from), To: string(to)}
	}
	res := r.db.WithContext(ctx).Model(&entities.SearchHistory{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return domain.NewStoreError("update search status", res.Error)
	}
	if res.RowsAffected == 0 {
		current, err := r.GetSearchHistoryByID(ctx, id)
		if err != nil {
			return err
		}
		return &domain.StateConflictError{Entity: "SearchHistory", From: string(current.Status), To: string(to)}
	}
	return nil
}

func (r *searchRepository) CreateCandidateURLs(ctx context.Context, candidates []*entities.CandidateURL) error {
	if len(candidates) == 0 {
		return nil
	}
	return domain.NewStoreError("create candidate urls", r.db.WithContext(ctx).Create(&candidates).Error)
}

func (r *searchRepository) GetPendingCandidateURLs(ctx context.Context, searchHistoryID uuid.UUID) ([]*entities.CandidateURL, error) {
	var candidates []*entities.CandidateURL
	if err := r.db.WithContext(ctx).
		Where("search_history_id = ? AND status IN ?", searchHistoryID, domain.CandidatePendingStatuses).
		Order("created_at asc").
		Find(&candidates).Error; err != nil {
		return nil, domain.NewStoreError("get pending candidate urls", err)
	}
	return candidates, nil
}

func (r *searchRepository) GetCandidateURLByID(ctx context.Context, id uuid.UUID) (*entities.CandidateURL, error) {
	var candidate entities.CandidateURL
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&candidate).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCandidateNotFound
		}
		return nil, domain.NewStoreError("get candidate url", err)
	}
	return &candidate, nil
}

func (r *searchRepository) UpdateCandidateStatus(ctx context.Context, id uuid.UUID, from, to domain.CandidateStatus) error {
	if !from.CanTransitionTo(to) {
		return &domain.StateConflictError{Entity: "CandidateURL", From: string(from), To: string(to)}
	}
	res := r.db.WithContext(ctx).Model(&entities.CandidateURL{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return domain.NewStoreError("update candidate status", res.Error)
	}
	if res.RowsAffected == 0 {
		current, err := r.GetCandidateURLByID(ctx, id)
		if err != nil {
			return err
		}
		return &domain.StateConflictError{Entity: "CandidateURL", From: string(current.Status), To: string(to)}
	}
	return nil
}

func (r *searchRepository) CountCandidateURLs(ctx context.Context, searchHistoryID uuid.UUID) (int64, int64, error) {
	var terminal, pending int64
	if err := r.db.WithContext(ctx).Model(&entities.CandidateURL{}).
		Where("search_history_id = ? AND status IN ?", searchHistoryID,
			[]domain.CandidateStatus{domain.CandidateStatusRejected, domain.CandidateStatusCreated}).
		Count(&terminal).Error; err != nil {
		return 0, 0, domain.NewStoreError("count terminal candidate urls", err)
	}
	if err := r.db.WithContext(ctx).Model(&entities.CandidateURL{}).
		Where("search_history_id = ? AND status IN ?", searchHistoryID, domain.CandidatePendingStatuses).
		Count(&pending).Error; err != nil {
		return 0, 0, domain.NewStoreError("count pending candidate urls", err)
	}
	return terminal, pending, nil
}
