package recipe

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/craftplan/craftplan/internal/domain"
)

// Script is a parsed recipe script: the targets to plan for, the stock on
// hand, and the raw recipe definitions. Definitions are left unvalidated so
// NewBook remains the single validation point.
//
// The format is line-oriented with three headed sections, in any order:
//
//	need:
//	- 1 diamond shovel
//	have:
//	- 2 stick
//	recipes:
//	- 1 diamond shovel = 2 stick + 1 diamond
//	- 4 stick = 2 plank
//
// Item names may contain spaces; counts are integers. Blank lines are
// ignored. A section may be empty or repeated (entries accumulate).
type Script struct {
	Need        []domain.Stack
	Have        []domain.Stack
	Definitions []domain.RecipeDef
}

// Section header labels.
const (
	sectionNeed    = "need"
	sectionHave    = "have"
	sectionRecipes = "recipes"
)

// ParseScript parses a recipe script. Errors wrap domain.ErrParseFailed and
// name the offending line number.
func ParseScript(input string) (*Script, error) {
	script := &Script{}
	section := ""

	scanner := bufio.NewScanner(strings.NewReader(input))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if name, ok := sectionHeader(line); ok {
			section = name
			continue
		}

		body, ok := strings.CutPrefix(line, "-")
		if !ok {
			return nil, parseErr(lineNo, "expected a section header or a %q list entry", "- ")
		}
		body = strings.TrimSpace(body)

		switch section {
		case sectionNeed:
			stack, err := parseStack(lineNo, body)
			if err != nil {
				return nil, err
			}
			script.Need = append(script.Need, stack)
		case sectionHave:
			stack, err := parseStack(lineNo, body)
			if err != nil {
				return nil, err
			}
			script.Have = append(script.Have, stack)
		case sectionRecipes:
			def, err := parseRecipeLine(lineNo, body)
			if err != nil {
				return nil, err
			}
			script.Definitions = append(script.Definitions, def)
		default:
			return nil, parseErr(lineNo, "entry before any section header")
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrParseFailed, err)
	}

	return script, nil
}

func sectionHeader(line string) (string, bool) {
	name, ok := strings.CutSuffix(line, ":")
	if !ok {
		return "", false
	}
	switch strings.ToLower(strings.TrimSpace(name)) {
	case sectionNeed:
		return sectionNeed, true
	case sectionHave:
		return sectionHave, true
	case sectionRecipes:
		return sectionRecipes, true
	}
	return "", false
}

// parseStack parses "COUNT NAME", e.g. "10 diamond shovel".
func parseStack(lineNo int, s string) (domain.Stack, error) {
	countStr, name, found := strings.Cut(strings.TrimSpace(s), " ")
	if !found {
		return domain.Stack{}, parseErr(lineNo, "expected %q", "COUNT ITEM")
	}

	count, err := strconv.ParseInt(countStr, 10, 64)
	if err != nil {
		return domain.Stack{}, parseErr(lineNo, "bad count %q", countStr)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Stack{}, parseErr(lineNo, "missing item name")
	}

	return domain.Stack{Item: name, Quantity: count}, nil
}

// parseRecipeLine parses "OUT = IN + IN + ...". The output side also accepts
// a '+'-separated list so that multi-output definitions reach book
// construction and fail there with the proper error instead of a vague parse
// error here.
func parseRecipeLine(lineNo int, s string) (domain.RecipeDef, error) {
	outPart, inPart, found := strings.Cut(s, "=")
	if !found {
		return domain.RecipeDef{}, parseErr(lineNo, "expected %q", "OUTPUT = INPUT + INPUT")
	}

	outputs, err := parseStackList(lineNo, outPart)
	if err != nil {
		return domain.RecipeDef{}, err
	}

	inputs, err := parseStackList(lineNo, inPart)
	if err != nil {
		return domain.RecipeDef{}, err
	}

	return domain.RecipeDef{Outputs: outputs, Inputs: inputs}, nil
}

func parseStackList(lineNo int, s string) ([]domain.Stack, error) {
	parts := strings.Split(s, "+")
	stacks := make([]domain.Stack, 0, len(parts))
	for _, part := range parts {
		stack, err := parseStack(lineNo, part)
		if err != nil {
			return nil, err
		}
		stacks = append(stacks, stack)
	}
	return stacks, nil
}

func parseErr(lineNo int, format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", domain.ErrParseFailed, lineNo, fmt.Sprintf(format, args...))
}
