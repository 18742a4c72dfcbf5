// Package recipes holds the static table of named recipes, each expanding
// to an ordered list of catalog item ids.
package recipes

import (
	"errors"
	"sort"
	"strings"
)

// ErrNotFound is returned when a dish name does not match any recipe.
var ErrNotFound = errors.New("recipe not found")

// Recipe is a named shortcut for a fixed set of catalog items.
type Recipe struct {
	Name        string   `json:"name"`
	Ingredients []string `json:"ingredients"`
}

// table maps normalized dish name to catalog ids, one unit each.
var table = map[string][]string{
	"peanut butter sandwich": {"bread_whole", "peanut_butter"},
	"pasta for two":          {"pasta_500g", "pasta_sauce", "butter"},
	"sandwich":               {"bread_whole", "butter", "jam"},
}

// Resolve normalizes name (trim, lowercase) and returns the ingredient ids
// for the matching recipe.
func Resolve(name string) ([]string, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	ids, ok := table[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]string, len(ids))
	copy(out, ids)
	return out, nil
}

// Names returns all recipe names in sorted order.
func Names() []string {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every recipe with its ingredients, sorted by name.
func All() []Recipe {
	names := Names()
	out := make([]Recipe, 0, len(names))
	for _, name := range names {
		ids, _ := Resolve(name)
		out = append(out, Recipe{Name: name, Ingredients: ids})
	}
	return out
}
