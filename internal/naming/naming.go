// Package naming defines item identity. Recipe books, stock maps and plan
// requests all refer to items by free-form user text ("Diamond  Shovel",
// "diamond shovel"); Key collapses those to one canonical identity so the
// engine only ever compares canonical keys.
package naming

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Key returns the canonical identity of an item name: trimmed, lowercased,
// with internal whitespace runs collapsed to single spaces. Key("") is "".
func Key(name string) string {
	fields := strings.Fields(strings.ToLower(name))
	return strings.Join(fields, " ")
}

// Display returns the user-facing form of a canonical key, e.g.
// "diamond shovel" -> "Diamond Shovel".
func Display(key string) string {
	// cases.Caser carries internal state and is not safe for concurrent use,
	// so build one per call.
	return cases.Title(language.English).String(key)
}
