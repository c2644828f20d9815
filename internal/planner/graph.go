package planner

import (
	"container/heap"

	"github.com/craftplan/craftplan/internal/domain"
	"github.com/craftplan/craftplan/internal/naming"
	"github.com/craftplan/craftplan/internal/recipe"
)

// graph is the dependency graph of items reachable from the requested
// targets. Items are interned to dense indices; edges run from a craftable
// item to each of its recipe inputs (consumer -> consumed). Base items have
// no outgoing edges.
type graph struct {
	items   []string        // index -> canonical item key
	index   map[string]int  // canonical item key -> index
	recipes []domain.Recipe // index -> recipe (zero value when base)
	isBase  []bool          // index -> item has no recipe
	inputs  [][]int         // index -> input item indices, in recipe input order
}

// buildGraph interns every item reachable from the targets using an explicit
// worklist, so arbitrarily deep user-authored books cannot exhaust the call
// stack.
func buildGraph(book *recipe.Book, targets []domain.Stack) *graph {
	g := &graph{index: make(map[string]int)}

	var work []int
	for _, t := range targets {
		work = append(work, g.intern(naming.Key(t.Item)))
	}

	for len(work) > 0 {
		idx := work[len(work)-1]
		work = work[:len(work)-1]
		if g.inputs[idx] != nil || g.isBase[idx] {
			continue // already expanded
		}

		r, ok := book.Recipe(g.items[idx])
		if !ok {
			g.isBase[idx] = true
			continue
		}

		g.recipes[idx] = r
		edges := make([]int, 0, len(r.Inputs))
		for _, in := range r.Inputs {
			child := g.intern(in.Item)
			edges = append(edges, child)
			work = append(work, child)
		}
		g.inputs[idx] = edges
	}

	return g
}

// intern returns the index for an item key, adding the node if new.
func (g *graph) intern(key string) int {
	if idx, ok := g.index[key]; ok {
		return idx
	}
	idx := len(g.items)
	g.index[key] = idx
	g.items = append(g.items, key)
	g.recipes = append(g.recipes, domain.Recipe{})
	g.isBase = append(g.isBase, false)
	g.inputs = append(g.inputs, nil)
	return idx
}

// validate checks the reachable subgraph for cycles. On success it returns a
// topological order in which every item appears after all of its consumers,
// which is exactly the order demand propagation needs.
func (g *graph) validate() ([]int, *CycleError) {
	order := g.topoOrder()
	if len(order) == len(g.items) {
		return order, nil
	}
	return nil, &CycleError{Path: g.findCycle()}
}

type intMinHeap []int

func (h intMinHeap) Len() int           { return len(h) }
func (h intMinHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h intMinHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *intMinHeap) Push(x any)        { *h = append(*h, x.(int)) }
func (h *intMinHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// topoOrder returns a deterministic consumers-first ordering via Kahn's
// algorithm. If the graph has a cycle the order is shorter than the node
// count. Determinism: the ready queue is a min-heap by intern index, and
// intern order is itself deterministic (targets first, then recipe input
// order).
func (g *graph) topoOrder() []int {
	// indeg counts how many reachable consumers each item has.
	indeg := make([]int, len(g.items))
	for _, edges := range g.inputs {
		for _, child := range edges {
			indeg[child]++
		}
	}

	ready := &intMinHeap{}
	heap.Init(ready)
	for i := range indeg {
		if indeg[i] == 0 {
			heap.Push(ready, i)
		}
	}

	out := make([]int, 0, len(indeg))
	for ready.Len() > 0 {
		n := heap.Pop(ready).(int)
		out = append(out, n)
		for _, m := range g.inputs[n] {
			indeg[m]--
			if indeg[m] == 0 {
				heap.Push(ready, m)
			}
		}
	}
	return out
}

// findCycle extracts one cycle path as item keys, e.g. ["a", "b", "a"]. It
// runs a three-color depth-first search with an explicit frame stack and
// reconstructs the path through parent links when it meets an in-progress
// node. Only called after topoOrder proved a cycle exists.
func (g *graph) findCycle() []string {
	const (
		white = 0
		gray  = 1
		black = 2
	)

	color := make([]int, len(g.items))
	parent := make([]int, len(g.items))
	for i := range parent {
		parent[i] = -1
	}

	type frame struct {
		node int
		next int // next input edge to follow
	}

	for start := 0; start < len(g.items); start++ {
		if color[start] != white {
			continue
		}

		color[start] = gray
		stack := []frame{{node: start}}

		for len(stack) > 0 {
			f := &stack[len(stack)-1]

			if f.next >= len(g.inputs[f.node]) {
				color[f.node] = black
				stack = stack[:len(stack)-1]
				continue
			}

			child := g.inputs[f.node][f.next]
			f.next++

			switch color[child] {
			case white:
				color[child] = gray
				parent[child] = f.node
				stack = append(stack, frame{node: child})
			case gray:
				// Back-edge f.node -> child closes the cycle. Walk the
				// parent chain back from f.node to child, then normalize to
				// forward order with the closing repeat of child.
				cycle := []int{child}
				for cur := f.node; cur != -1 && cur != child; cur = parent[cur] {
					cycle = append(cycle, cur)
				}
				cycle = append(cycle, child)

				path := make([]string, len(cycle))
				for i := range cycle {
					path[i] = g.items[cycle[len(cycle)-1-i]]
				}
				return path
			}
		}
	}

	return nil
}
