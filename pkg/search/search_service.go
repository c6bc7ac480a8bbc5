package search

import (
	"context"
	"errors"

	"recipe-radar/domain"
	"recipe-radar/entities"
	"recipe-radar/pkg/ingredientcache"
	"recipe-radar/pkg/provider"
	"recipe-radar/pkg/recipe"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultWorkers    = 4
	DefaultMinRecipes = 1
)

type (
	SearchService interface {
		Submit(ctx context.Context, req domain.SubmitSearchRequest) (domain.SubmitSearchResponse, error)
		Run(ctx context.Context, id string) error
		Cancel(ctx context.Context, id string) error
		Progress(ctx context.Context, id string) (domain.SearchProgressResponse, error)
		NeedingAttention(ctx context.Context) ([]domain.SubmitSearchResponse, error)
	}

	searchService struct {
		searchRepository SearchRepository
		recipeRepository recipe.RecipeRepository
		recipeService    recipe.RecipeService
		cacheService     ingredientcache.CacheService
		searchProvider   provider.SearchProvider
		investigator     provider.PageInvestigator
		log              *zap.Logger
		workers          int
		minRecipes       int
	}
)

func NewSearchService(
	searchRepository SearchRepository,
	recipeRepository recipe.RecipeRepository,
	recipeService recipe.RecipeService,
	cacheService ingredientcache.CacheService,
	searchProvider provider.SearchProvider,
	investigator provider.PageInvestigator,
	log *zap.Logger,
	workers int,
	minRecipes int,
) SearchService {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if minRecipes <= 0 {
		minRecipes = DefaultMinRecipes
	}
	return &searchService{
		searchRepository: searchRepository,
		recipeRepository: recipeRepository,
		recipeService:    recipeService,
		cacheService:     cacheService,
		searchProvider:   searchProvider,
		investigator:     investigator,
		log:              log,
		workers:          workers,
		minRecipes:       minRecipes,
	}
}

func (s *searchService) Submit(ctx context.Context, req domain.SubmitSearchRequest) (domain.SubmitSearchResponse, error) {
	search := &entities.SearchHistory{
		ID:     uuid.New(),
		Query:  req.Query,
		Status: domain.SearchStatusInitial,
	}
	if err := s.searchRepository.CreateSearchHistory(ctx, search); err != nil {
		return domain.SubmitSearchResponse{}, err
	}
	return domain.SubmitSearchResponse{
		ID:     search.ID.String(),
		Query:  search.Query,
		Status: search.Status,
	}, nil
}

// Run drives one search job from discovery to a terminal status. Candidate
// URLs fan out across a bounded worker pool; each worker writes its own
// results back, and the completion check tolerates out-of-order finishes.
func (s *searchService) Run(ctx context.Context, id string) error {
	searchID, err := uuid.Parse(id)
	if err != nil {
		return domain.ErrParseUUID
	}
	search, err := s.searchRepository.GetSearchHistoryByID(ctx, searchID)
	if err != nil {
		return err
	}

	switch search.Status {
	case domain.SearchStatusInitial:
		if err := s.searchRepository.UpdateSearchStatus(ctx, searchID, domain.SearchStatusInitial, domain.SearchStatusOngoing); err != nil {
			return err
		}
	case domain.SearchStatusOngoing:
		// Resuming a run that was interrupted; pending URLs are picked up
		// where they were left.
	default:
		return &domain.StateConflictError{
			Entity: "SearchHistory",
			From:   string(search.Status),
			To:     string(domain.SearchStatusOngoing),
		}
	}

	if err := s.discoverCandidates(ctx, search); err != nil {
		s.failSearch(ctx, searchID, domain.SearchStatusOngoing)
		return err
	}

	pending, err := s.searchRepository.GetPendingCandidateURLs(ctx, searchID)
	if err != nil {
		s.failSearch(ctx, searchID, domain.SearchStatusOngoing)
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for _, candidate := range pending {
		candidate := candidate
		g.Go(func() error {
			s.processCandidate(gctx, searchID, candidate)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.failSearch(ctx, searchID, domain.SearchStatusOngoing)
		return err
	}

	return s.finishSearch(ctx, searchID)
}

func (s *searchService) discoverCandidates(ctx context.Context, search *entities.SearchHistory) error {
	existing, err := s.searchRepository.GetPendingCandidateURLs(ctx, search.ID)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	urls, err := s.searchProvider.DiscoverURLs(ctx, search.Query)
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		return domain.ErrNoCandidatesLeft
	}

	candidates := make([]*entities.CandidateURL, 0, len(urls))
	for _, u := range urls {
		candidates = append(candidates, &entities.CandidateURL{
			ID:              uuid.New(),
			URL:             u,
			SearchHistoryID: search.ID,
			Status:          domain.CandidateStatusInitial,
		})
	}
	if err := s.searchRepository.CreateCandidateURLs(ctx, candidates); err != nil {
		return err
	}
	s.log.Info("candidate urls discovered",
		zap.String("search_id", search.ID.String()),
		zap.Int("count", len(candidates)),
	)
	return nil
}

// processCandidate moves one candidate URL as far along its lifecycle as
// possible. Failures reject or park the URL; they never propagate up and
// never take the other workers down with them.
func (s *searchService) processCandidate(ctx context.Context, searchID uuid.UUID, candidate *entities.CandidateURL) {
	if s.cancelled(ctx, searchID) {
		return
	}

	status := candidate.Status
	if status == domain.CandidateStatusInitial {
		if err := s.searchRepository.UpdateCandidateStatus(ctx, candidate.ID, domain.CandidateStatusInitial, domain.CandidateStatusInvestigating); err != nil {
			s.log.Warn("candidate claim failed", zap.String("url", candidate.URL), zap.Error(err))
			return
		}
		status = domain.CandidateStatusInvestigating
	}

	var parsed *domain.ParsedRecipe
	if status == domain.CandidateStatusInvestigating {
		var err error
		parsed, err = s.investigator.Investigate(ctx, candidate.URL)
		if s.cancelled(ctx, searchID) {
			return
		}
		if err != nil || parsed == nil {
			if err != nil {
				s.log.Warn("investigation failed", zap.String("url", candidate.URL), zap.Error(err))
			}
			if err := s.searchRepository.UpdateCandidateStatus(ctx, candidate.ID, domain.CandidateStatusInvestigating, domain.CandidateStatusRejected); err != nil {
				s.log.Warn("reject transition failed", zap.String("url", candidate.URL), zap.Error(err))
			}
			return
		}
		if err := s.searchRepository.UpdateCandidateStatus(ctx, candidate.ID, domain.CandidateStatusInvestigating, domain.CandidateStatusAccepted); err != nil {
			s.log.Warn("accept transition failed", zap.String("url", candidate.URL), zap.Error(err))
			return
		}
	}

	if parsed == nil {
		// Resumed ACCEPTED candidate; the page has to be analyzed again to
		// recover the parsed content.
		var err error
		parsed, err = s.investigator.Investigate(ctx, candidate.URL)
		if err != nil || parsed == nil {
			s.log.Warn("re-investigation of accepted url failed", zap.String("url", candidate.URL), zap.Error(err))
			return
		}
	}

	if s.cancelled(ctx, searchID) {
		return
	}
	s.materializeCandidate(ctx, candidate, parsed)
}

func (s *searchService) materializeCandidate(ctx context.Context, candidate *entities.CandidateURL, parsed *domain.ParsedRecipe) {
	resolved := make([]domain.ResolvedIngredient, 0, len(parsed.Ingredients))
	for _, ingredient := range parsed.Ingredients {
		productID, err := s.cacheService.Resolve(ctx, ingredient.Description)
		if err != nil {
			// The URL stays ACCEPTED and is eligible for a later retry.
			s.log.Warn("ingredient resolution failed",
				zap.String("url", candidate.URL),
				zap.String("description", ingredient.Description),
				zap.Error(err),
			)
			return
		}
		id := productID
		resolved = append(resolved, domain.ResolvedIngredient{
			Description: ingredient.Description,
			ProductID:   &id,
			Quantity:    ingredient.Quantity,
			Unit:        ingredient.Unit,
		})
	}

	req := domain.MaterializeRequest{
		CandidateURLID:      candidate.ID,
		Title:               parsed.Title,
		Instructions:        parsed.Instructions,
		TimeEstimateMinutes: parsed.TimeEstimateMinutes,
		Ingredients:         resolved,
	}
	if parsed.ImageURL != "" {
		img := parsed.ImageURL
		req.ImageURL = &img
	}
	if _, err := s.recipeService.Materialize(ctx, req); err != nil {
		s.log.Warn("materialization failed", zap.String("url", candidate.URL), zap.Error(err))
	}
}

// cancelled reports whether work for this job should stop: the run context
// is done or the job has been moved to a terminal status (e.g. Cancel).
func (s *searchService) cancelled(ctx context.Context, searchID uuid.UUID) bool {
	if ctx.Err() != nil {
		return true
	}
	search, err := s.searchRepository.GetSearchHistoryByID(ctx, searchID)
	if err != nil {
		return true
	}
	return search.Status.Terminal()
}

func (s *searchService) finishSearch(ctx context.Context, searchID uuid.UUID) error {
	search, err := s.searchRepository.GetSearchHistoryByID(ctx, searchID)
	if err != nil {
		return err
	}
	if search.Status.Terminal() {
		return nil
	}

	_, pending, err := s.searchRepository.CountCandidateURLs(ctx, searchID)
	if err != nil {
		return err
	}
	recipes, err := s.recipeRepository.CountBySearchHistory(ctx, searchID)
	if err != nil {
		return err
	}

	if pending == 0 && recipes >= int64(s.minRecipes) {
		return s.searchRepository.UpdateSearchStatus(ctx, searchID, domain.SearchStatusOngoing, domain.SearchStatusCompleted)
	}
	s.log.Info("search did not reach completion",
		zap.String("search_id", searchID.String()),
		zap.Int64("pending_urls", pending),
		zap.Int64("recipes", recipes),
	)
	return s.searchRepository.UpdateSearchStatus(ctx, searchID, domain.SearchStatusOngoing, domain.SearchStatusFailed)
}

func (s *searchService) failSearch(ctx context.Context, searchID uuid.UUID, from domain.SearchStatus) {
	if err := s.searchRepository.UpdateSearchStatus(ctx, searchID, from, domain.SearchStatusFailed); err != nil {
		var conflict *domain.StateConflictError
		if !errors.As(err, &conflict) {
			s.log.Error("failed to mark search as failed", zap.String("search_id", searchID.String()), zap.Error(err))
		}
	}
}

// Cancel marks a job FAILED. In-flight workers observe the terminal status
// at their next suspension point and skip further transitions. A
// resubmission creates a new SearchHistory row; FAILED is absorbing.
func (s *searchService) Cancel(ctx context.Context, id string) error {
	searchID, err := uuid.Parse(id)
	if err != nil {
		return domain.ErrParseUUID
	}
	search, err := s.searchRepository.GetSearchHistoryByID(ctx, searchID)
	if err != nil {
		return err
	}
	return s.searchRepository.UpdateSearchStatus(ctx, searchID, search.Status, domain.SearchStatusFailed)
}

// NeedingAttention lists jobs that are not terminal yet, oldest first.
// Operators use this to find interrupted runs worth resuming.
func (s *searchService) NeedingAttention(ctx context.Context) ([]domain.SubmitSearchResponse, error) {
	searches, err := s.searchRepository.GetSearchesNeedingAttention(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]domain.SubmitSearchResponse, 0, len(searches))
	for _, search := range searches {
		res = append(res, domain.SubmitSearchResponse{
			ID:     search.ID.String(),
			Query:  search.Query,
			Status: search.Status,
		})
	}
	return res, nil
}

func (s *searchService) Progress(ctx context.Context, id string) (domain.SearchProgressResponse, error) {
	searchID, err := uuid.Parse(id)
	if err != nil {
		return domain.SearchProgressResponse{}, domain.ErrParseUUID
	}
	search, err := s.searchRepository.GetSearchHistoryByID(ctx, searchID)
	if err != nil {
		return domain.SearchProgressResponse{}, err
	}
	terminal, pending, err := s.searchRepository.CountCandidateURLs(ctx, searchID)
	if err != nil {
		return domain.SearchProgressResponse{}, err
	}
	recipes, err := s.recipeRepository.CountBySearchHistory(ctx, searchID)
	if err != nil {
		return domain.SearchProgressResponse{}, err
	}
	return domain.SearchProgressResponse{
		ID:           search.ID.String(),
		Query:        search.Query,
		Status:       search.Status,
		TerminalURLs: terminal,
		PendingURLs:  pending,
		Recipes:      recipes,
	}, nil
}
