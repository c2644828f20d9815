package domain

// PlanEntry is one row of the flat "shopping list" view: the total demand for
// a single item across every consumer in the plan.
//
// Required is the gross demand in final-target units. FromStock is how much of
// it was covered by items already on hand. Missing is the remainder the user
// still has to craft (craftable items) or gather (base items). CraftCount is
// the number of recipe executions needed to cover Missing; it is zero for
// base items.
type PlanEntry struct {
	Item        string `json:"item"`
	DisplayName string `json:"display_name"`
	Required    int64  `json:"required"`
	FromStock   int64  `json:"from_stock,omitempty"`
	Missing     int64  `json:"missing"`
	CraftCount  int64  `json:"craft_count,omitempty"`
	IsBase      bool   `json:"is_base"`
}

// PlanNode is one node of the breakdown tree. Quantity is what the parent
// consumes from this node (for roots, the requested quantity); Required,
// FromStock and CraftCount repeat the item's global figures from the flat
// view, since craft counts are computed once per item, not per branch.
type PlanNode struct {
	Item       string      `json:"item"`
	Quantity   int64       `json:"quantity"`
	Required   int64       `json:"required"`
	FromStock  int64       `json:"from_stock,omitempty"`
	CraftCount int64       `json:"craft_count,omitempty"`
	IsBase     bool        `json:"is_base"`
	Children   []*PlanNode `json:"children,omitempty"`
}

// Plan is the result of resolving one or more targets against a recipe book.
// Entries are sorted by item name and cover every item with non-zero demand;
// Tree holds one root per requested target.
type Plan struct {
	Targets []Stack     `json:"targets"`
	Entries []PlanEntry `json:"entries"`
	Tree    []*PlanNode `json:"tree,omitempty"`
}

// BaseEntries returns the subset of entries that are base materials, in entry
// order. This is the raw gather list presentation layers usually lead with.
func (p *Plan) BaseEntries() []PlanEntry {
	var base []PlanEntry
	for _, e := range p.Entries {
		if e.IsBase {
			base = append(base, e)
		}
	}
	return base
}
