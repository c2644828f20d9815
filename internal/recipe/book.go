// Package recipe builds validated recipe books from user-supplied recipe
// definitions. Construction is the trust boundary: a Book that exists is
// well-formed (single output per recipe, positive quantities, merged inputs,
// at most one recipe per item), so the planner can assume a clean graph.
package recipe

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/craftplan/craftplan/internal/domain"
	"github.com/craftplan/craftplan/internal/naming"
)

// Book is an immutable mapping from item to its (single) recipe. Items absent
// from the book are base materials; looking them up is not an error.
type Book struct {
	recipes     map[string]domain.Recipe
	fingerprint string
}

// NewBook validates a list of raw recipe definitions and builds a Book.
//
// Per definition: exactly one distinct output item (repeated stacks of the
// same output are merged into the yield), positive yield and input
// quantities, and duplicate input items merged by summing. Across
// definitions: at most one recipe per output item.
func NewBook(defs []domain.RecipeDef) (*Book, error) {
	recipes := make(map[string]domain.Recipe, len(defs))

	for i, def := range defs {
		r, err := buildRecipe(i, def)
		if err != nil {
			return nil, err
		}

		if _, exists := recipes[r.Output]; exists {
			return nil, fmt.Errorf("%w: %q", domain.ErrDuplicateRecipe, r.Output)
		}
		recipes[r.Output] = r
	}

	return &Book{
		recipes:     recipes,
		fingerprint: fingerprint(recipes),
	}, nil
}

func buildRecipe(index int, def domain.RecipeDef) (domain.Recipe, error) {
	var zero domain.Recipe

	// Merge output stacks by item; more than one distinct output item is a
	// definition error, not something to silently pick a winner from.
	outputs := mergeStacks(def.Outputs)
	switch {
	case len(outputs) == 0:
		return zero, fmt.Errorf("recipe %d: %w", index, domain.ErrEmptyRecipe)
	case len(outputs) > 1:
		names := make([]string, len(outputs))
		for j, s := range outputs {
			names[j] = s.Item
		}
		return zero, fmt.Errorf("recipe %d: %w: %v", index, domain.ErrMultiOutputRecipe, names)
	}

	out := outputs[0]
	if out.Item == "" {
		return zero, fmt.Errorf("recipe %d: %w: empty output item name", index, domain.ErrInvalidInput)
	}
	if out.Quantity <= 0 {
		return zero, fmt.Errorf("recipe %d: %w: output %q yields %d", index, domain.ErrInvalidQuantity, out.Item, out.Quantity)
	}

	inputs := mergeStacks(def.Inputs)
	for _, in := range inputs {
		if in.Item == "" {
			return zero, fmt.Errorf("recipe %d: %w: empty input item name", index, domain.ErrInvalidInput)
		}
		if in.Quantity <= 0 {
			return zero, fmt.Errorf("recipe %d: %w: input %q has quantity %d", index, domain.ErrInvalidQuantity, in.Item, in.Quantity)
		}
		if in.Item == out.Item {
			return zero, fmt.Errorf("recipe %d: %w: %q consumes itself", index, domain.ErrCyclicRecipe, out.Item)
		}
	}

	return domain.Recipe{
		Output: out.Item,
		Yield:  out.Quantity,
		Inputs: inputs,
	}, nil
}

// mergeStacks normalizes item names and merges repeated items by summing
// quantities, preserving first-seen order.
func mergeStacks(stacks []domain.Stack) []domain.Stack {
	merged := make([]domain.Stack, 0, len(stacks))
	index := make(map[string]int, len(stacks))

	for _, s := range stacks {
		key := naming.Key(s.Item)
		if at, seen := index[key]; seen {
			merged[at].Quantity += s.Quantity
			continue
		}
		index[key] = len(merged)
		merged = append(merged, domain.Stack{Item: key, Quantity: s.Quantity})
	}

	return merged
}

// Recipe returns the recipe producing the given item, if any. Absence means
// the item is a base material.
func (b *Book) Recipe(item string) (domain.Recipe, bool) {
	r, ok := b.recipes[naming.Key(item)]
	return r, ok
}

// Has reports whether the book contains a recipe for the item.
func (b *Book) Has(item string) bool {
	_, ok := b.recipes[naming.Key(item)]
	return ok
}

// Len returns the number of recipes in the book.
func (b *Book) Len() int {
	return len(b.recipes)
}

// Items returns the craftable item keys in sorted order.
func (b *Book) Items() []string {
	items := make([]string, 0, len(b.recipes))
	for item := range b.recipes {
		items = append(items, item)
	}
	sort.Strings(items)
	return items
}

// Fingerprint returns a stable content hash of the book, suitable as a cache
// key component. Equal books (after normalization and merging) hash equally.
func (b *Book) Fingerprint() string {
	return b.fingerprint
}

func fingerprint(recipes map[string]domain.Recipe) string {
	keys := make([]string, 0, len(recipes))
	for k := range recipes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	ordered := make([]domain.Recipe, 0, len(keys))
	for _, k := range keys {
		ordered = append(ordered, recipes[k])
	}

	// Canonical form is the JSON of recipes in sorted output order; recipe
	// inputs keep their merge order, which NewBook makes deterministic.
	data, err := json.Marshal(ordered)
	if err != nil {
		// Marshaling plain structs of strings and ints cannot fail.
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
