package ingredientcache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"recipe-radar/entities"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeResolver struct {
	mu      sync.Mutex
	answers map[string]uuid.UUID
	err     error
	calls   int
}

func (f *fakeResolver) Resolve(ctx context.Context, description string) (uuid.UUID, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return uuid.Nil, false, f.err
	}
	id, ok := f.answers[description]
	if !ok {
		return uuid.Nil, false, nil
	}
	return id, true, nil
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
	if err := db.AutoMigrate(&entities.IngredientCache{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestResolveMissThenHit(t *testing.T) {
	db := setupTestDB(t)
	productID := uuid.New()
	resolver := &fakeResolver{answers: map[string]uuid.UUID{"500g spaghetti": productID}}
	service := NewCacheService(NewCacheRepository(db), resolver, zap.NewNop())
	ctx := context.Background()

	got, err := service.Resolve(ctx, "500g spaghetti")
	if err != nil {
		t.Fatalf("first resolve failed: %v", err)
	}
	if got != productID {
		t.Fatalf("resolved wrong product: got %s, want %s", got, productID)
	}
	if resolver.calls != 1 {
		t.Fatalf("expected one resolver call, got %d", resolver.calls)
	}

	// Second identical description must be served from the cache.
	got, err = service.Resolve(ctx, "500g spaghetti")
	if err != nil {
		t.Fatalf("second resolve failed: %v", err)
	}
	if got != productID {
		t.Fatalf("cache returned wrong product: got %s, want %s", got, productID)
	}
	if resolver.calls != 1 {
		t.Fatalf("cache hit must not call the resolver, got %d calls", resolver.calls)
	}
}

func TestResolveNoMatch(t *testing.T) {
	db := setupTestDB(t)
	resolver := &fakeResolver{answers: map[string]uuid.UUID{}}
	service := NewCacheService(NewCacheRepository(db), resolver, zap.NewNop())

	_, err := service.Resolve(context.Background(), "unicorn tears")
	if !errors.Is(err, ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch, got %v", err)
	}

	// A miss must not be cached: the resolver is consulted again.
	_, err = service.Resolve(context.Background(), "unicorn tears")
	if !errors.Is(err, ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch on retry, got %v", err)
	}
	if resolver.calls != 2 {
		t.Fatalf("expected resolver to be consulted per miss, got %d calls", resolver.calls)
	}
}

func TestResolveResolverError(t *testing.T) {
	db := setupTestDB(t)
	resolver := &fakeResolver{err: errors.New("upstream down")}
	service := NewCacheService(NewCacheRepository(db), resolver, zap.NewNop())

	_, err := service.Resolve(context.Background(), "2 eggs")
	if err == nil {
		t.Fatalf("expected resolver error to propagate")
	}
	if errors.Is(err, ErrNoMatch) {
		t.Fatalf("a resolver failure is not a miss")
	}
}

func TestLookupDuplicatesOldestWins(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCacheRepository(db)
	ctx := context.Background()

	older := uuid.New()
	newer := uuid.New()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	first := &entities.IngredientCache{ID: uuid.New(), Description: "1 onion", ProductID: older}
	first.CreatedAt = base
	second := &entities.IngredientCache{ID: uuid.New(), Description: "1 onion", ProductID: newer}
	second.CreatedAt = base.Add(time.Minute)
	if err := repo.Insert(ctx, first); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if err := repo.Insert(ctx, second); err != nil {
		t.Fatalf("duplicate insert must be allowed: %v", err)
	}

	for i := 0; i < 5; i++ {
		got, hit, err := repo.Lookup(ctx, "1 onion")
		if err != nil {
			t.Fatalf("lookup failed: %v", err)
		}
		if !hit {
			t.Fatalf("expected a hit")
		}
		if got != older {
			t.Fatalf("lookup must return the oldest entry: got %s, want %s", got, older)
		}
	}
}

func TestResolveConcurrentSameDescription(t *testing.T) {
	db := setupTestDB(t)
	productID := uuid.New()
	resolver := &fakeResolver{answers: map[string]uuid.UUID{"250g butter": productID}}
	service := NewCacheService(NewCacheRepository(db), resolver, zap.NewNop())

	var wg sync.WaitGroup
	results := make([]uuid.UUID, 8)
	errs := make([]error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = service.Resolve(context.Background(), "250g butter")
		}(i)
	}
	wg.Wait()

	for i := 0; i < 8; i++ {
		if errs[i] != nil {
			t.Fatalf("concurrent resolve %d failed: %v", i, errs[i])
		}
		if results[i] != productID {
			t.Fatalf("concurrent resolve %d returned %s, want %s", i, results[i], productID)
		}
	}

	// Racing resolutions may each insert a row; later lookups must still
	// agree on one product.
	got, err := service.Resolve(context.Background(), "250g butter")
	if err != nil {
		t.Fatalf("post-race resolve failed: %v", err)
	}
	if got != productID {
		t.Fatalf("post-race resolve returned %s, want %s", got, productID)
	}
}
