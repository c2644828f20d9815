package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craftplan/craftplan/internal/domain"
	"github.com/craftplan/craftplan/internal/recipe"
)

func stack(item string, qty int64) domain.Stack {
	return domain.Stack{Item: item, Quantity: qty}
}

func def(output string, yield int64, inputs ...domain.Stack) domain.RecipeDef {
	return domain.RecipeDef{
		Outputs: []domain.Stack{{Item: output, Quantity: yield}},
		Inputs:  inputs,
	}
}

func mustBook(t *testing.T, defs ...domain.RecipeDef) *recipe.Book {
	t.Helper()
	book, err := recipe.NewBook(defs)
	require.NoError(t, err)
	return book
}

func entryFor(t *testing.T, plan *domain.Plan, item string) domain.PlanEntry {
	t.Helper()
	for _, e := range plan.Entries {
		if e.Item == item {
			return e
		}
	}
	t.Fatalf("no entry for item %q in plan", item)
	return domain.PlanEntry{}
}

func TestResolveBaseTarget(t *testing.T) {
	// A target no recipe produces resolves to exactly one base entry.
	book := mustBook(t, def("torch", 4, stack("stick", 1), stack("coal", 1)))

	plan, err := resolve(book, []domain.Stack{stack("dirt", 7)}, nil)
	require.NoError(t, err)

	require.Len(t, plan.Entries, 1)
	e := plan.Entries[0]
	assert.Equal(t, "dirt", e.Item)
	assert.Equal(t, int64(7), e.Required)
	assert.Equal(t, int64(7), e.Missing)
	assert.True(t, e.IsBase)
	assert.Zero(t, e.CraftCount)
}

func TestResolveSingleRecipe(t *testing.T) {
	book := mustBook(t, def("stick", 4, stack("plank", 2)))

	plan, err := resolve(book, []domain.Stack{stack("stick", 10)}, nil)
	require.NoError(t, err)

	sticks := entryFor(t, plan, "stick")
	assert.Equal(t, int64(10), sticks.Required)
	assert.Equal(t, int64(3), sticks.CraftCount, "ceil(10/4) crafts")
	assert.False(t, sticks.IsBase)

	planks := entryFor(t, plan, "plank")
	assert.Equal(t, int64(6), planks.Required, "3 crafts x 2 planks")
	assert.True(t, planks.IsBase)
}

func TestResolveYieldScaling(t *testing.T) {
	// Yield 4, consumes 1 y per craft: 10 x wants 3 crafts and 3 y.
	book := mustBook(t, def("x", 4, stack("y", 1)))

	plan, err := resolve(book, []domain.Stack{stack("x", 10)}, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(3), entryFor(t, plan, "x").CraftCount)
	assert.Equal(t, int64(3), entryFor(t, plan, "y").Required)
}

func TestResolveDiamondAggregation(t *testing.T) {
	// t needs 2xa and 3xb; a and b each need 1xc per craft (yield 1).
	// Global demand for c must be 5, accumulated before any rounding.
	book := mustBook(t,
		def("t", 1, stack("a", 2), stack("b", 3)),
		def("a", 1, stack("c", 1)),
		def("b", 1, stack("c", 1)),
	)

	plan, err := resolve(book, []domain.Stack{stack("t", 1)}, nil)
	require.NoError(t, err)

	c := entryFor(t, plan, "c")
	assert.Equal(t, int64(5), c.Required)
	assert.True(t, c.IsBase)

	assert.Equal(t, int64(2), entryFor(t, plan, "a").CraftCount)
	assert.Equal(t, int64(3), entryFor(t, plan, "b").CraftCount)
}

func TestResolveDiamondNoDoubleRounding(t *testing.T) {
	// Both consumers demand 1xc, c has yield 2. Naive per-branch expansion
	// would craft c twice (once per branch); global aggregation crafts once.
	book := mustBook(t,
		def("t", 1, stack("a", 1), stack("b", 1)),
		def("a", 1, stack("c", 1)),
		def("b", 1, stack("c", 1)),
		def("c", 2, stack("ore", 1)),
	)

	plan, err := resolve(book, []domain.Stack{stack("t", 1)}, nil)
	require.NoError(t, err)

	c := entryFor(t, plan, "c")
	assert.Equal(t, int64(2), c.Required)
	assert.Equal(t, int64(1), c.CraftCount, "one craft of yield 2 covers both consumers")
	assert.Equal(t, int64(1), entryFor(t, plan, "ore").Required)
}

func TestResolveDeepChainScaling(t *testing.T) {
	// diamond shovel = 2 stick + 1 diamond; 4 stick = 2 plank; 4 plank = 1 log
	book := mustBook(t,
		def("diamond shovel", 1, stack("stick", 2), stack("diamond", 1)),
		def("stick", 4, stack("plank", 2)),
		def("plank", 4, stack("log", 1)),
	)

	plan, err := resolve(book, []domain.Stack{stack("diamond shovel", 3)}, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(3), entryFor(t, plan, "diamond shovel").CraftCount)
	assert.Equal(t, int64(3), entryFor(t, plan, "diamond").Required)

	sticks := entryFor(t, plan, "stick")
	assert.Equal(t, int64(6), sticks.Required)
	assert.Equal(t, int64(2), sticks.CraftCount, "ceil(6/4)")

	planks := entryFor(t, plan, "plank")
	assert.Equal(t, int64(4), planks.Required, "2 stick crafts x 2 planks")
	assert.Equal(t, int64(1), planks.CraftCount, "ceil(4/4)")

	assert.Equal(t, int64(1), entryFor(t, plan, "log").Required)
}

func TestResolveRoundTripConsistency(t *testing.T) {
	// Recomputing every item's demand bottom-up from the returned craft
	// counts must reproduce the reported Required values exactly.
	book := mustBook(t,
		def("sword", 1, stack("blade", 1), stack("hilt", 1)),
		def("blade", 2, stack("ingot", 3)),
		def("hilt", 1, stack("ingot", 1), stack("leather", 2)),
		def("ingot", 1, stack("ore", 2)),
	)
	targets := []domain.Stack{stack("sword", 5)}

	plan, err := resolve(book, targets, nil)
	require.NoError(t, err)

	recomputed := make(map[string]int64)
	for _, tgt := range targets {
		recomputed[tgt.Item] += tgt.Quantity
	}
	for _, e := range plan.Entries {
		if e.IsBase {
			continue
		}
		r, ok := book.Recipe(e.Item)
		require.True(t, ok)
		for _, in := range r.Inputs {
			recomputed[in.Item] += e.CraftCount * in.Quantity
		}
	}

	for _, e := range plan.Entries {
		assert.Equal(t, recomputed[e.Item], e.Required, "item %s", e.Item)
	}
}

func TestResolveCycleDetected(t *testing.T) {
	book := mustBook(t,
		def("a", 1, stack("b", 1)),
		def("b", 1, stack("a", 1)),
	)

	for _, target := range []string{"a", "b"} {
		_, err := resolve(book, []domain.Stack{stack(target, 1)}, nil)
		require.Error(t, err, "target %s", target)
		assert.ErrorIs(t, err, domain.ErrCyclicRecipe)

		var cycleErr *CycleError
		require.ErrorAs(t, err, &cycleErr)
		assert.GreaterOrEqual(t, len(cycleErr.Path), 3)
		assert.Equal(t, cycleErr.Path[0], cycleErr.Path[len(cycleErr.Path)-1])
	}
}

func TestResolveCycleNotReachedIsFine(t *testing.T) {
	// The cycle sits outside the requested target's subgraph; validation is
	// scoped to what the target reaches.
	book := mustBook(t,
		def("stick", 4, stack("plank", 2)),
		def("a", 1, stack("b", 1)),
		def("b", 1, stack("a", 1)),
	)

	_, err := resolve(book, []domain.Stack{stack("stick", 1)}, nil)
	assert.NoError(t, err)
}

func TestResolveLongCyclePath(t *testing.T) {
	book := mustBook(t,
		def("a", 1, stack("b", 1)),
		def("b", 1, stack("c", 1)),
		def("c", 1, stack("a", 1)),
	)

	_, err := resolve(book, []domain.Stack{stack("a", 1)}, nil)
	var cycleErr *CycleError
	require.ErrorAs(t, err, &cycleErr)
	assert.Equal(t, []string{"a", "b", "c", "a"}, cycleErr.Path)
}

func TestResolveInvalidQuantities(t *testing.T) {
	book := mustBook(t, def("stick", 4, stack("plank", 2)))

	tests := []struct {
		name    string
		targets []domain.Stack
		stock   []domain.Stack
	}{
		{name: "zero target", targets: []domain.Stack{stack("stick", 0)}},
		{name: "negative target", targets: []domain.Stack{stack("stick", -2)}},
		{name: "negative stock", targets: []domain.Stack{stack("stick", 1)}, stock: []domain.Stack{stack("plank", -1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolve(book, tt.targets, tt.stock)
			assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
		})
	}
}

func TestResolveNoTargets(t *testing.T) {
	book := mustBook(t, def("stick", 4, stack("plank", 2)))

	_, err := resolve(book, nil, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestResolveZeroInputRecipe(t *testing.T) {
	// A "free" craftable item: craft count still computed from demand and
	// yield, no children.
	book := mustBook(t, domain.RecipeDef{
		Outputs: []domain.Stack{stack("water", 3)},
	})

	plan, err := resolve(book, []domain.Stack{stack("water", 7)}, nil)
	require.NoError(t, err)

	require.Len(t, plan.Entries, 1)
	e := plan.Entries[0]
	assert.False(t, e.IsBase)
	assert.Equal(t, int64(3), e.CraftCount, "ceil(7/3)")

	require.Len(t, plan.Tree, 1)
	assert.Empty(t, plan.Tree[0].Children)
}

func TestResolveStockCrediting(t *testing.T) {
	// 1 shovel = 2 stick + 1 diamond; having 1 stick reduces stick crafting.
	book := mustBook(t,
		def("diamond shovel", 1, stack("stick", 2), stack("diamond", 1)),
		def("stick", 4, stack("plank", 2)),
	)

	plan, err := resolve(book,
		[]domain.Stack{stack("diamond shovel", 1)},
		[]domain.Stack{stack("stick", 1)},
	)
	require.NoError(t, err)

	sticks := entryFor(t, plan, "stick")
	assert.Equal(t, int64(2), sticks.Required)
	assert.Equal(t, int64(1), sticks.FromStock)
	assert.Equal(t, int64(1), sticks.Missing)
	assert.Equal(t, int64(1), sticks.CraftCount, "ceil(1/4)")

	planks := entryFor(t, plan, "plank")
	assert.Equal(t, int64(2), planks.Required)
}

func TestResolveStockFullyCoversIntermediate(t *testing.T) {
	// Enough sticks on hand: no stick crafts, so planks never enter the plan.
	book := mustBook(t,
		def("diamond shovel", 1, stack("stick", 2), stack("diamond", 1)),
		def("stick", 4, stack("plank", 2)),
	)

	plan, err := resolve(book,
		[]domain.Stack{stack("diamond shovel", 1)},
		[]domain.Stack{stack("stick", 10)},
	)
	require.NoError(t, err)

	sticks := entryFor(t, plan, "stick")
	assert.Equal(t, int64(2), sticks.FromStock)
	assert.Zero(t, sticks.CraftCount)
	assert.Zero(t, sticks.Missing)

	for _, e := range plan.Entries {
		assert.NotEqual(t, "plank", e.Item, "plank demand should never materialize")
	}
}

func TestResolveStockOnTarget(t *testing.T) {
	book := mustBook(t, def("stick", 4, stack("plank", 2)))

	plan, err := resolve(book,
		[]domain.Stack{stack("stick", 10)},
		[]domain.Stack{stack("stick", 10)},
	)
	require.NoError(t, err)

	sticks := entryFor(t, plan, "stick")
	assert.Equal(t, int64(10), sticks.Required)
	assert.Equal(t, int64(10), sticks.FromStock)
	assert.Zero(t, sticks.CraftCount)
	assert.Len(t, plan.Entries, 1)
}

func TestResolveMultiTarget(t *testing.T) {
	// Demand from several targets is seeded before propagation, so shared
	// ingredients aggregate exactly like a diamond dependency.
	book := mustBook(t,
		def("a", 1, stack("c", 1)),
		def("b", 1, stack("c", 1)),
		def("c", 2, stack("ore", 1)),
	)

	plan, err := resolve(book,
		[]domain.Stack{stack("a", 1), stack("b", 1)},
		nil,
	)
	require.NoError(t, err)

	c := entryFor(t, plan, "c")
	assert.Equal(t, int64(2), c.Required)
	assert.Equal(t, int64(1), c.CraftCount)

	require.Len(t, plan.Tree, 2)
}

func TestResolveDuplicateTargetsMerge(t *testing.T) {
	book := mustBook(t, def("stick", 4, stack("plank", 2)))

	plan, err := resolve(book,
		[]domain.Stack{stack("stick", 3), stack("Stick", 7)},
		nil,
	)
	require.NoError(t, err)

	sticks := entryFor(t, plan, "stick")
	assert.Equal(t, int64(10), sticks.Required)
	assert.Equal(t, int64(3), sticks.CraftCount)
}

func TestResolveNameNormalization(t *testing.T) {
	book := mustBook(t, def("Diamond  Shovel", 1, stack("STICK", 2)))

	plan, err := resolve(book, []domain.Stack{stack("diamond shovel", 1)}, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(1), entryFor(t, plan, "diamond shovel").CraftCount)
	assert.Equal(t, int64(2), entryFor(t, plan, "stick").Required)
}

func TestResolveEntriesSorted(t *testing.T) {
	book := mustBook(t,
		def("zeta", 1, stack("alpha", 1), stack("mid", 1)),
		def("mid", 1, stack("beta", 1)),
	)

	plan, err := resolve(book, []domain.Stack{stack("zeta", 1)}, nil)
	require.NoError(t, err)

	for i := 1; i < len(plan.Entries); i++ {
		assert.Less(t, plan.Entries[i-1].Item, plan.Entries[i].Item)
	}
}

func TestResolveIdempotent(t *testing.T) {
	book := mustBook(t,
		def("t", 1, stack("a", 2), stack("b", 3)),
		def("a", 2, stack("c", 1)),
		def("b", 1, stack("c", 2)),
	)
	targets := []domain.Stack{stack("t", 4)}
	stock := []domain.Stack{stack("c", 3)}

	first, err := resolve(book, targets, stock)
	require.NoError(t, err)
	second, err := resolve(book, targets, stock)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestResolveTreeShape(t *testing.T) {
	book := mustBook(t,
		def("diamond shovel", 1, stack("stick", 2), stack("diamond", 1)),
		def("stick", 4, stack("plank", 2)),
	)

	plan, err := resolve(book, []domain.Stack{stack("diamond shovel", 1)}, nil)
	require.NoError(t, err)

	require.Len(t, plan.Tree, 1)
	root := plan.Tree[0]
	assert.Equal(t, "diamond shovel", root.Item)
	assert.Equal(t, int64(1), root.Quantity)
	require.Len(t, root.Children, 2)

	sticks := root.Children[0]
	assert.Equal(t, "stick", sticks.Item)
	assert.Equal(t, int64(2), sticks.Quantity, "consumed by 1 shovel craft")
	assert.Equal(t, int64(1), sticks.CraftCount)
	require.Len(t, sticks.Children, 1)

	planks := sticks.Children[0]
	assert.Equal(t, "plank", planks.Item)
	assert.Equal(t, int64(2), planks.Quantity, "1 stick craft x 2 planks")
	assert.True(t, planks.IsBase)
	assert.Empty(t, planks.Children)

	diamonds := root.Children[1]
	assert.Equal(t, "diamond", diamonds.Item)
	assert.True(t, diamonds.IsBase)
}

func TestPlanBaseEntries(t *testing.T) {
	book := mustBook(t, def("stick", 4, stack("plank", 2)))

	plan, err := resolve(book, []domain.Stack{stack("stick", 10)}, nil)
	require.NoError(t, err)

	base := plan.BaseEntries()
	require.Len(t, base, 1)
	assert.Equal(t, "plank", base[0].Item)
}
