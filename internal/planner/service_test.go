package planner

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craftplan/craftplan/internal/domain"
)

func newTestService() *service {
	return NewService(DefaultCacheSize, DefaultCacheTTL).(*service)
}

func TestServicePlan(t *testing.T) {
	svc := newTestService()
	book := mustBook(t, def("stick", 4, stack("plank", 2)))

	plan, err := svc.Plan(context.Background(), book, Request{
		Targets: []domain.Stack{stack("stick", 10)},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), entryFor(t, plan, "stick").CraftCount)
	assert.Equal(t, int64(6), entryFor(t, plan, "plank").Required)
}

func TestServicePlanCacheReuse(t *testing.T) {
	svc := newTestService()
	book := mustBook(t, def("stick", 4, stack("plank", 2)))
	ctx := context.Background()

	first, err := svc.Plan(ctx, book, Request{Targets: []domain.Stack{stack("stick", 10)}})
	require.NoError(t, err)

	// Equivalent request, differently spelled: normalization must land on the
	// same cache entry.
	second, err := svc.Plan(ctx, book, Request{
		Targets: []domain.Stack{stack("Stick", 4), stack("stick", 6)},
	})
	require.NoError(t, err)
	assert.Same(t, first, second, "normalized-equivalent requests share one cached plan")
}

func TestServicePlanCacheKeyedByBookContent(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	req := Request{Targets: []domain.Stack{stack("stick", 10)}}

	bookA := mustBook(t, def("stick", 4, stack("plank", 2)))
	planA, err := svc.Plan(ctx, bookA, req)
	require.NoError(t, err)

	// Same request against a changed book must not hit bookA's entry.
	bookB := mustBook(t, def("stick", 2, stack("plank", 2)))
	planB, err := svc.Plan(ctx, bookB, req)
	require.NoError(t, err)

	assert.NotSame(t, planA, planB)
	assert.Equal(t, int64(3), entryFor(t, planA, "stick").CraftCount)
	assert.Equal(t, int64(5), entryFor(t, planB, "stick").CraftCount)
}

func TestServicePlanErrorsNotCached(t *testing.T) {
	svc := newTestService()
	book := mustBook(t,
		def("a", 1, stack("b", 1)),
		def("b", 1, stack("a", 1)),
	)

	_, err := svc.Plan(context.Background(), book, Request{Targets: []domain.Stack{stack("a", 1)}})
	assert.ErrorIs(t, err, domain.ErrCyclicRecipe)

	_, err = svc.Plan(context.Background(), book, Request{Targets: []domain.Stack{stack("a", 1)}})
	assert.ErrorIs(t, err, domain.ErrCyclicRecipe, "error repeats, nothing poisoned the cache")
}

func TestServicePlanInvalidRequest(t *testing.T) {
	svc := newTestService()
	book := mustBook(t, def("stick", 4, stack("plank", 2)))

	_, err := svc.Plan(context.Background(), book, Request{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Plan(context.Background(), book, Request{
		Targets: []domain.Stack{stack("stick", -1)},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestServicePlanScript(t *testing.T) {
	svc := newTestService()

	script := `
need:
- 3 diamond shovel

have:
- 2 stick

recipes:
- 1 diamond shovel = 2 stick + 1 diamond
- 4 stick = 2 plank
`
	plan, err := svc.PlanScript(context.Background(), script)
	require.NoError(t, err)

	shovel := entryFor(t, plan, "diamond shovel")
	assert.Equal(t, int64(3), shovel.Required)
	assert.Equal(t, int64(3), shovel.CraftCount)

	sticks := entryFor(t, plan, "stick")
	assert.Equal(t, int64(6), sticks.Required)
	assert.Equal(t, int64(2), sticks.FromStock)
	assert.Equal(t, int64(1), sticks.CraftCount, "ceil(4/4)")

	assert.Equal(t, int64(2), entryFor(t, plan, "plank").Required)
	assert.Equal(t, int64(3), entryFor(t, plan, "diamond").Required)
}

func TestServicePlanScriptErrors(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	t.Run("no need section", func(t *testing.T) {
		_, err := svc.PlanScript(ctx, "recipes:\n- 4 stick = 2 plank\n")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("malformed line", func(t *testing.T) {
		_, err := svc.PlanScript(ctx, "need:\n- one stick\n")
		assert.ErrorIs(t, err, domain.ErrParseFailed)
	})

	t.Run("duplicate recipe", func(t *testing.T) {
		script := "need:\n- 1 plank\nrecipes:\n- 4 plank = 1 log\n- 2 plank = 1 log\n"
		_, err := svc.PlanScript(ctx, script)
		assert.ErrorIs(t, err, domain.ErrDuplicateRecipe)
	})
}

func TestPlanCacheVersionInvalidation(t *testing.T) {
	cache := newPlanCache(8, time.Minute)
	plan := &domain.Plan{}

	cache.Set("k", plan)
	got, ok := cache.Get("k")
	require.True(t, ok)
	assert.Same(t, plan, got)

	// Entries written under an older schema version must be dropped on read.
	cache.lru.Add("stale", &cachedPlanEntry{Version: "0.9", Plan: plan})
	_, ok = cache.Get("stale")
	assert.False(t, ok)
	_, found := cache.lru.Get("stale")
	assert.False(t, found, "stale entry removed, not just skipped")
}

func TestPlanCachePurge(t *testing.T) {
	cache := newPlanCache(8, time.Minute)
	cache.Set("k", &domain.Plan{})
	cache.Purge()
	_, ok := cache.Get("k")
	assert.False(t, ok)
}

func TestCacheKeyStability(t *testing.T) {
	targets := []domain.Stack{stack("stick", 10)}
	stock := []domain.Stack{stack("plank", 2)}

	a := cacheKey("fp", targets, stock)
	b := cacheKey("fp", targets, stock)
	assert.Equal(t, a, b)

	assert.NotEqual(t, a, cacheKey("other", targets, stock))
	assert.NotEqual(t, a, cacheKey("fp", targets, nil))
}
