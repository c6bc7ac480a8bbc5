package search

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"recipe-radar/domain"
	"recipe-radar/entities"
	"recipe-radar/pkg/ingredientcache"
	"recipe-radar/pkg/provider"
	"recipe-radar/pkg/recipe"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeSearchProvider struct {
	urls []string
	err  error
}

func (f *fakeSearchProvider) DiscoverURLs(ctx context.Context, query string) ([]string, error) {
	return f.urls, f.err
}

type fakeInvestigator struct {
	mu    sync.Mutex
	pages map[string]*domain.ParsedRecipe
	errs  map[string]error
	calls int
}

func (f *fakeInvestigator) Investigate(ctx context.Context, url string) (*domain.ParsedRecipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if err, ok := f.errs[url]; ok {
		return nil, err
	}
	return f.pages[url], nil
}

// hookInvestigator runs a callback before answering, so tests can change
// the job state while an investigation is in flight.
type hookInvestigator struct {
	hook func()
	page *domain.ParsedRecipe
}

func (f *hookInvestigator) Investigate(ctx context.Context, url string) (*domain.ParsedRecipe, error) {
	f.hook()
	return f.page, nil
}

type fakeCache struct {
	answers map[string]uuid.UUID
}

func (f *fakeCache) Resolve(ctx context.Context, description string) (uuid.UUID, error) {
	id, ok := f.answers[description]
	if !ok {
		return uuid.Nil, ingredientcache.ErrNoMatch
	}
	return id, nil
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(
		&entities.SearchHistory{},
		&entities.CandidateURL{},
		&entities.Recipe{},
		&entities.RecipeIngredient{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func pastaPage() *domain.ParsedRecipe {
	return &domain.ParsedRecipe{
		Title:               "Spaghetti Aglio e Olio",
		Instructions:        "Cook pasta. Fry garlic in oil. Toss together.",
		TimeEstimateMinutes: 20,
		Ingredients: []domain.ParsedIngredient{
			{Description: "500g spaghetti", Quantity: 500, Unit: "gram"},
			{Description: "4 cloves garlic", Quantity: 4, Unit: "piece"},
		},
	}
}

func newTestService(db *gorm.DB, searchProvider *fakeSearchProvider, investigator provider.PageInvestigator, cache *fakeCache) SearchService {
	recipeRepo := recipe.NewRecipeRepository(db)
	return NewSearchService(
		NewSearchRepository(db),
		recipeRepo,
		recipe.NewRecipeService(recipeRepo, zap.NewNop()),
		cache,
		searchProvider,
		investigator,
		zap.NewNop(),
		2,
		1,
	)
}

func TestRunCompletesWithMixedCandidates(t *testing.T) {
	db := setupTestDB(t)
	provider := &fakeSearchProvider{urls: []string{
		"https://food.example.com/aglio-e-olio",
		"https://blog.example.com/my-holiday",
	}}
	investigator := &fakeInvestigator{pages: map[string]*domain.ParsedRecipe{
		"https://food.example.com/aglio-e-olio": pastaPage(),
	}}
	cache := &fakeCache{answers: map[string]uuid.UUID{
		"500g spaghetti":  uuid.New(),
		"4 cloves garlic": uuid.New(),
	}}
	service := newTestService(db, provider, investigator, cache)
	ctx := context.Background()

	submitted, err := service.Submit(ctx, domain.SubmitSearchRequest{Query: "quick pasta"})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if submitted.Status != domain.SearchStatusInitial {
		t.Fatalf("expected INITIAL after submit, got %s", submitted.Status)
	}

	if err := service.Run(ctx, submitted.ID); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	progress, err := service.Progress(ctx, submitted.ID)
	if err != nil {
		t.Fatalf("progress failed: %v", err)
	}
	if progress.Status != domain.SearchStatusCompleted {
		t.Fatalf("expected COMPLETED, got %s", progress.Status)
	}
	if progress.TerminalURLs != 2 || progress.PendingURLs != 0 {
		t.Fatalf("expected 2 terminal and 0 pending urls, got %d/%d", progress.TerminalURLs, progress.PendingURLs)
	}
	if progress.Recipes != 1 {
		t.Fatalf("expected 1 recipe, got %d", progress.Recipes)
	}

	var created, rejected int64
	db.Model(&entities.CandidateURL{}).Where("status = ?", domain.CandidateStatusCreated).Count(&created)
	db.Model(&entities.CandidateURL{}).Where("status = ?", domain.CandidateStatusRejected).Count(&rejected)
	if created != 1 || rejected != 1 {
		t.Fatalf("expected 1 CREATED and 1 REJECTED candidate, got %d/%d", created, rejected)
	}

	var stored entities.Recipe
	if err := db.Preload("Ingredients").First(&stored).Error; err != nil {
		t.Fatalf("recipe fetch failed: %v", err)
	}
	if stored.Title != "Spaghetti Aglio e Olio" {
		t.Fatalf("unexpected recipe title: %q", stored.Title)
	}
	if stored.SourceURL != "https://food.example.com/aglio-e-olio" {
		t.Fatalf("unexpected source url: %q", stored.SourceURL)
	}
	if len(stored.Ingredients) != 2 {
		t.Fatalf("expected 2 ingredient rows, got %d", len(stored.Ingredients))
	}
}

func TestRunFailsWhenProviderEmpty(t *testing.T) {
	db := setupTestDB(t)
	service := newTestService(db, &fakeSearchProvider{}, &fakeInvestigator{}, &fakeCache{})
	ctx := context.Background()

	submitted, err := service.Submit(ctx, domain.SubmitSearchRequest{Query: "nothing"})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if err := service.Run(ctx, submitted.ID); !errors.Is(err, domain.ErrNoCandidatesLeft) {
		t.Fatalf("expected ErrNoCandidatesLeft, got %v", err)
	}

	progress, err := service.Progress(ctx, submitted.ID)
	if err != nil {
		t.Fatalf("progress failed: %v", err)
	}
	if progress.Status != domain.SearchStatusFailed {
		t.Fatalf("expected FAILED, got %s", progress.Status)
	}
}

func TestRunLeavesUnresolvedCandidateAccepted(t *testing.T) {
	db := setupTestDB(t)
	provider := &fakeSearchProvider{urls: []string{"https://food.example.com/aglio-e-olio"}}
	investigator := &fakeInvestigator{pages: map[string]*domain.ParsedRecipe{
		"https://food.example.com/aglio-e-olio": pastaPage(),
	}}
	// The cache resolves nothing, so materialization never starts.
	service := newTestService(db, provider, investigator, &fakeCache{})
	ctx := context.Background()

	submitted, err := service.Submit(ctx, domain.SubmitSearchRequest{Query: "quick pasta"})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if err := service.Run(ctx, submitted.ID); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	var candidate entities.CandidateURL
	if err := db.First(&candidate).Error; err != nil {
		t.Fatalf("candidate fetch failed: %v", err)
	}
	if candidate.Status != domain.CandidateStatusAccepted {
		t.Fatalf("unresolved candidate must stay ACCEPTED, got %s", candidate.Status)
	}

	progress, err := service.Progress(ctx, submitted.ID)
	if err != nil {
		t.Fatalf("progress failed: %v", err)
	}
	if progress.Status != domain.SearchStatusFailed {
		t.Fatalf("expected FAILED without a single recipe, got %s", progress.Status)
	}
	if progress.PendingURLs != 1 {
		t.Fatalf("ACCEPTED counts as pending, got %d", progress.PendingURLs)
	}
}

func TestRunResumesAcceptedCandidate(t *testing.T) {
	db := setupTestDB(t)
	search := &entities.SearchHistory{
		ID:     uuid.New(),
		Query:  "quick pasta",
		Status: domain.SearchStatusOngoing,
	}
	if err := db.Create(search).Error; err != nil {
		t.Fatalf("seed search failed: %v", err)
	}
	candidate := &entities.CandidateURL{
		ID:              uuid.New(),
		URL:             "https://food.example.com/aglio-e-olio",
		SearchHistoryID: search.ID,
		Status:          domain.CandidateStatusAccepted,
	}
	if err := db.Create(candidate).Error; err != nil {
		t.Fatalf("seed candidate failed: %v", err)
	}

	// The provider must not be consulted on resume: pending URLs exist.
	provider := &fakeSearchProvider{err: errors.New("provider must not be called")}
	investigator := &fakeInvestigator{pages: map[string]*domain.ParsedRecipe{
		candidate.URL: pastaPage(),
	}}
	cache := &fakeCache{answers: map[string]uuid.UUID{
		"500g spaghetti":  uuid.New(),
		"4 cloves garlic": uuid.New(),
	}}
	service := newTestService(db, provider, investigator, cache)

	if err := service.Run(context.Background(), search.ID.String()); err != nil {
		t.Fatalf("resumed run failed: %v", err)
	}

	progress, err := service.Progress(context.Background(), search.ID.String())
	if err != nil {
		t.Fatalf("progress failed: %v", err)
	}
	if progress.Status != domain.SearchStatusCompleted {
		t.Fatalf("expected COMPLETED after resume, got %s", progress.Status)
	}
	if progress.Recipes != 1 {
		t.Fatalf("expected 1 recipe after resume, got %d", progress.Recipes)
	}
}

func TestRunRejectsTerminalSearch(t *testing.T) {
	db := setupTestDB(t)
	service := newTestService(db, &fakeSearchProvider{}, &fakeInvestigator{}, &fakeCache{})
	ctx := context.Background()

	search := &entities.SearchHistory{
		ID:     uuid.New(),
		Query:  "done already",
		Status: domain.SearchStatusCompleted,
	}
	if err := db.Create(search).Error; err != nil {
		t.Fatalf("seed search failed: %v", err)
	}

	err := service.Run(ctx, search.ID.String())
	var conflict *domain.StateConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected state conflict for a terminal search, got %v", err)
	}
}

func TestCancel(t *testing.T) {
	db := setupTestDB(t)
	service := newTestService(db, &fakeSearchProvider{}, &fakeInvestigator{}, &fakeCache{})
	ctx := context.Background()

	submitted, err := service.Submit(ctx, domain.SubmitSearchRequest{Query: "slow query"})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if err := service.Cancel(ctx, submitted.ID); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	progress, err := service.Progress(ctx, submitted.ID)
	if err != nil {
		t.Fatalf("progress failed: %v", err)
	}
	if progress.Status != domain.SearchStatusFailed {
		t.Fatalf("expected FAILED after cancel, got %s", progress.Status)
	}

	// FAILED is absorbing: neither a second cancel nor a run may move it.
	err = service.Cancel(ctx, submitted.ID)
	var conflict *domain.StateConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected state conflict on double cancel, got %v", err)
	}
	err = service.Run(ctx, submitted.ID)
	if !errors.As(err, &conflict) {
		t.Fatalf("expected state conflict running a cancelled search, got %v", err)
	}
}

func TestCancelDuringInvestigationStopsWorker(t *testing.T) {
	db := setupTestDB(t)
	searchProvider := &fakeSearchProvider{urls: []string{"https://food.example.com/aglio-e-olio"}}
	investigator := &hookInvestigator{page: pastaPage()}
	cache := &fakeCache{answers: map[string]uuid.UUID{
		"500g spaghetti":  uuid.New(),
		"4 cloves garlic": uuid.New(),
	}}
	service := newTestService(db, searchProvider, investigator, cache)
	ctx := context.Background()

	submitted, err := service.Submit(ctx, domain.SubmitSearchRequest{Query: "quick pasta"})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	// The job is cancelled while the worker awaits the page analysis.
	investigator.hook = func() {
		if err := service.Cancel(ctx, submitted.ID); err != nil {
			t.Errorf("cancel failed: %v", err)
		}
	}

	if err := service.Run(ctx, submitted.ID); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	progress, err := service.Progress(ctx, submitted.ID)
	if err != nil {
		t.Fatalf("progress failed: %v", err)
	}
	if progress.Status != domain.SearchStatusFailed {
		t.Fatalf("expected FAILED after mid-run cancel, got %s", progress.Status)
	}
	if progress.Recipes != 0 {
		t.Fatalf("cancelled job must not materialize recipes, got %d", progress.Recipes)
	}

	// The worker observed the terminal job at its next check and left the
	// candidate where the investigation had moved it.
	var candidate entities.CandidateURL
	if err := db.First(&candidate).Error; err != nil {
		t.Fatalf("candidate fetch failed: %v", err)
	}
	if candidate.Status != domain.CandidateStatusInvestigating {
		t.Fatalf("expected candidate left INVESTIGATING, got %s", candidate.Status)
	}
}

func TestCancelUnknownSearch(t *testing.T) {
	db := setupTestDB(t)
	service := newTestService(db, &fakeSearchProvider{}, &fakeInvestigator{}, &fakeCache{})

	if err := service.Cancel(context.Background(), uuid.New().String()); !errors.Is(err, domain.ErrSearchNotFound) {
		t.Fatalf("expected ErrSearchNotFound, got %v", err)
	}
	if err := service.Cancel(context.Background(), "not-a-uuid"); !errors.Is(err, domain.ErrParseUUID) {
		t.Fatalf("expected ErrParseUUID, got %v", err)
	}
}

func TestNeedingAttention(t *testing.T) {
	db := setupTestDB(t)
	service := newTestService(db, &fakeSearchProvider{}, &fakeInvestigator{}, &fakeCache{})
	ctx := context.Background()

	for _, status := range []domain.SearchStatus{
		domain.SearchStatusInitial,
		domain.SearchStatusOngoing,
		domain.SearchStatusCompleted,
		domain.SearchStatusFailed,
	} {
		search := &entities.SearchHistory{ID: uuid.New(), Query: string(status), Status: status}
		if err := db.Create(search).Error; err != nil {
			t.Fatalf("seed search failed: %v", err)
		}
	}

	unfinished, err := service.NeedingAttention(ctx)
	if err != nil {
		t.Fatalf("needing attention failed: %v", err)
	}
	if len(unfinished) != 2 {
		t.Fatalf("expected 2 unfinished searches, got %d", len(unfinished))
	}
	for _, search := range unfinished {
		if search.Status.Terminal() {
			t.Fatalf("terminal search %s must not need attention", search.ID)
		}
	}
}

func TestUpdateCandidateStatusCAS(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSearchRepository(db)
	ctx := context.Background()

	search := &entities.SearchHistory{ID: uuid.New(), Query: "q", Status: domain.SearchStatusOngoing}
	if err := db.Create(search).Error; err != nil {
		t.Fatalf("seed search failed: %v", err)
	}
	candidate := &entities.CandidateURL{
		ID:              uuid.New(),
		URL:             "https://food.example.com/x",
		SearchHistoryID: search.ID,
		Status:          domain.CandidateStatusInitial,
	}
	if err := db.Create(candidate).Error; err != nil {
		t.Fatalf("seed candidate failed: %v", err)
	}

	if err := repo.UpdateCandidateStatus(ctx, candidate.ID, domain.CandidateStatusInitial, domain.CandidateStatusInvestigating); err != nil {
		t.Fatalf("claim failed: %v", err)
	}

	// Losing a claim race surfaces as a conflict, not a silent no-op.
	err := repo.UpdateCandidateStatus(ctx, candidate.ID, domain.CandidateStatusInitial, domain.CandidateStatusInvestigating)
	var conflict *domain.StateConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected state conflict on second claim, got %v", err)
	}

	// Transitions outside the table are refused before touching the row.
	err = repo.UpdateCandidateStatus(ctx, candidate.ID, domain.CandidateStatusInvestigating, domain.CandidateStatusCreated)
	if !errors.As(err, &conflict) {
		t.Fatalf("expected state conflict for an illegal transition, got %v", err)
	}
}
