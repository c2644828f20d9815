package domain

// Stack is a quantity of a single item. Items are identified by their
// normalized name; a stack is the unit both recipe inputs and plan targets
// are expressed in.
type Stack struct {
	Item     string `json:"item"`
	Quantity int64  `json:"quantity"`
}

// RecipeDef is a raw recipe definition as supplied by callers (JSON body,
// config file, or recipe script). It is unvalidated: outputs may be empty or
// list several items, quantities may be non-positive, and the same input item
// may appear twice. recipe.NewBook turns a list of these into a validated book.
type RecipeDef struct {
	Outputs []Stack `json:"outputs"`
	Inputs  []Stack `json:"inputs"`
}

// Recipe is a validated crafting recipe: one craft execution consumes Inputs
// and produces Yield units of Output. Inputs contain each item at most once
// with a positive quantity; Yield is positive.
type Recipe struct {
	Output string  `json:"output"`
	Yield  int64   `json:"yield"`
	Inputs []Stack `json:"inputs"`
}
