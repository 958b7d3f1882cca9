// Package family sorts a people tree by age and renders it as nested list markup.
package family

import (
	"slices"

	"github.com/aretw0/lineage/pkg/core"
)

// Sort returns a deep copy of people where every level is ordered by birthday,
// oldest first. Equal birthdays keep their input order. The input is never mutated.
func Sort(people []core.Person) []core.Person {
	if people == nil {
		return nil
	}

	out := make([]core.Person, len(people))
	for i, p := range people {
		out[i] = p.Clone()
	}
	sortLevel(out)
	return out
}

func sortLevel(level []core.Person) {
	slices.SortStableFunc(level, func(a, b core.Person) int {
		return a.Birthday.Compare(b.Birthday)
	})
	for i := range level {
		if len(level[i].Children) > 0 {
			sortLevel(level[i].Children)
		}
	}
}
