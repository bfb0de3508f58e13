package tabular

import (
	"sort"

	"golang.org/x/text/language"
)

// Pipeline composes the predicate set and the sort comparator over a raw
// record slice. Run is pure: given the same records, predicates, and
// criteria it yields the same output, and the input slice is never mutated.
type Pipeline[T any] struct {
	table      *Table[T]
	comparator *Comparator[T]
}

func NewPipeline[T any](table *Table[T], tag language.Tag) *Pipeline[T] {
	return &Pipeline[T]{
		table:      table,
		comparator: NewComparator(table, tag),
	}
}

func (p *Pipeline[T]) Table() *Table[T] {
	return p.table
}

// Run filters by the AND of all active predicates, then stable-sorts by the
// criteria list. Empty criteria preserve the filtered order as-is.
func (p *Pipeline[T]) Run(records []T, predicates []Predicate[T], criteria Criteria) []T {
	admit := And(predicates...)
	out := make([]T, 0, len(records))
	for _, record := range records {
		if admit == nil || admit(record) {
			out = append(out, record)
		}
	}
	if len(criteria) > 0 {
		sort.SliceStable(out, func(i, j int) bool {
			return p.comparator.Compare(out[i], out[j], criteria) < 0
		})
	}
	return out
}
