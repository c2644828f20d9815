package planner

import (
	"fmt"
	"strings"

	"github.com/craftplan/craftplan/internal/domain"
)

// CycleError reports a dependency cycle in the recipe book, discovered while
// resolving a target that reaches it. Path holds the cycle as item keys with
// the first item repeated at the end, e.g. ["stick", "plank", "stick"].
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	if len(e.Path) == 0 {
		return domain.ErrMsgCyclicRecipe
	}
	return fmt.Sprintf("%s: %s", domain.ErrMsgCyclicRecipe, strings.Join(e.Path, " -> "))
}

func (e *CycleError) Unwrap() error { return domain.ErrCyclicRecipe }
