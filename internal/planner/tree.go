package planner

import (
	"github.com/craftplan/craftplan/internal/domain"
)

// buildTree renders the resolved DAG as one breakdown tree per target. A node
// carries the quantity consumed on its edge plus the item's global figures;
// shared sub-items therefore appear once per consumer, each time showing the
// same globally-computed required/craft_count values. The graph is already
// proven acyclic, so the recursion is bounded by the item count.
func (r *resolution) buildTree(targets []domain.Stack) []*domain.PlanNode {
	roots := make([]*domain.PlanNode, 0, len(targets))
	for _, t := range targets {
		roots = append(roots, r.node(r.graph.index[t.Item], t.Quantity))
	}
	return roots
}

// node builds the subtree for one consumption edge: idx is the consumed item,
// edgeQty the quantity this particular consumer takes.
func (r *resolution) node(idx int, edgeQty int64) *domain.PlanNode {
	g := r.graph
	n := &domain.PlanNode{
		Item:       g.items[idx],
		Quantity:   edgeQty,
		Required:   r.demand[idx],
		FromStock:  r.fromStock[idx],
		CraftCount: r.craftCount[idx],
		IsBase:     g.isBase[idx],
	}

	// No crafts means no inputs consumed: base item, or demand fully covered
	// by stock.
	if r.craftCount[idx] == 0 {
		return n
	}

	inputs := g.recipes[idx].Inputs
	n.Children = make([]*domain.PlanNode, 0, len(inputs))
	for i, in := range inputs {
		childQty := r.craftCount[idx] * in.Quantity
		n.Children = append(n.Children, r.node(g.inputs[idx][i], childQty))
	}
	return n
}
