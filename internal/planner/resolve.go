package planner

import (
	"fmt"
	"sort"

	"github.com/craftplan/craftplan/internal/domain"
	"github.com/craftplan/craftplan/internal/naming"
	"github.com/craftplan/craftplan/internal/recipe"
)

// resolution holds the per-item figures computed during a single resolve
// pass, all indexed by the graph's intern indices.
type resolution struct {
	graph      *graph
	demand     []int64 // gross demand in final-target units
	fromStock  []int64 // demand covered by stock on hand
	craftCount []int64 // recipe executions needed for the uncovered remainder
}

// resolve expands the targets against the book and produces the full plan.
//
// The algorithm is two-pass: a validation pass produces a consumers-first
// topological order (or a cycle error), then a single propagation pass walks
// that order. Because every consumer of an item is processed before the item
// itself, each item's gross demand is complete before its craft count is
// rounded up, so rounding waste never compounds across levels.
func resolve(book *recipe.Book, targets []domain.Stack, stock []domain.Stack) (*domain.Plan, error) {
	targets, err := normalizeStacks(targets, false)
	if err != nil {
		return nil, err
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("%w: no targets given", domain.ErrInvalidInput)
	}

	stock, err = normalizeStacks(stock, true)
	if err != nil {
		return nil, err
	}
	onHand := make(map[string]int64, len(stock))
	for _, s := range stock {
		onHand[s.Item] = s.Quantity
	}

	g := buildGraph(book, targets)
	order, cycleErr := g.validate()
	if cycleErr != nil {
		return nil, cycleErr
	}

	res := &resolution{
		graph:      g,
		demand:     make([]int64, len(g.items)),
		fromStock:  make([]int64, len(g.items)),
		craftCount: make([]int64, len(g.items)),
	}

	for _, t := range targets {
		res.demand[g.index[t.Item]] += t.Quantity
	}

	// Propagation pass: consumers first, so demand[idx] is final when the
	// item's own craft count is computed.
	for _, idx := range order {
		gross := res.demand[idx]
		if gross == 0 {
			// Reachable through a recipe whose craft count came out zero
			// (fully covered by stock); nothing to do.
			continue
		}

		credited := min(gross, onHand[g.items[idx]])
		res.fromStock[idx] = credited
		net := gross - credited

		if g.isBase[idx] || net == 0 {
			continue
		}

		r := g.recipes[idx]
		crafts := ceilDiv(net, r.Yield)
		res.craftCount[idx] = crafts

		for i, in := range r.Inputs {
			res.demand[g.inputs[idx][i]] += crafts * in.Quantity
		}
	}

	return res.plan(targets), nil
}

// plan converts the computed figures into the caller-facing shape: the sorted
// flat table plus the per-target breakdown trees.
func (r *resolution) plan(targets []domain.Stack) *domain.Plan {
	g := r.graph

	entries := make([]domain.PlanEntry, 0, len(g.items))
	for idx, item := range g.items {
		if r.demand[idx] == 0 {
			continue
		}
		entries = append(entries, domain.PlanEntry{
			Item:        item,
			DisplayName: naming.Display(item),
			Required:    r.demand[idx],
			FromStock:   r.fromStock[idx],
			Missing:     r.demand[idx] - r.fromStock[idx],
			CraftCount:  r.craftCount[idx],
			IsBase:      g.isBase[idx],
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Item < entries[j].Item })

	return &domain.Plan{
		Targets: targets,
		Entries: entries,
		Tree:    r.buildTree(targets),
	}
}

// normalizeStacks canonicalizes item names, merges repeated items and
// validates quantities. Stock entries may be zero (allowZero); targets and
// recipe quantities must be strictly positive.
func normalizeStacks(stacks []domain.Stack, allowZero bool) ([]domain.Stack, error) {
	merged := make([]domain.Stack, 0, len(stacks))
	index := make(map[string]int, len(stacks))

	for _, s := range stacks {
		key := naming.Key(s.Item)
		if key == "" {
			return nil, fmt.Errorf("%w: empty item name", domain.ErrInvalidInput)
		}
		if s.Quantity < 0 || (s.Quantity == 0 && !allowZero) {
			return nil, fmt.Errorf("%w: %q has quantity %d", domain.ErrInvalidQuantity, s.Item, s.Quantity)
		}
		if at, seen := index[key]; seen {
			merged[at].Quantity += s.Quantity
			continue
		}
		index[key] = len(merged)
		merged = append(merged, domain.Stack{Item: key, Quantity: s.Quantity})
	}

	return merged, nil
}

// ceilDiv returns ceil(a/b) for positive a and b. Partial crafts round up to
// whole executions; the leftover production is waste, not credit.
func ceilDiv(a, b int64) int64 {
	return (a + b - 1) / b
}
