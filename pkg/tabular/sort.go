package tabular

import (
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Criterion is one sort key. Criteria order is priority order: index 0 is
// the primary key.
type Criterion struct {
	Key  string `json:"key"`
	Desc bool   `json:"desc"`
}

// Criteria holds a key at most once. All mutating operations return a new
// slice.
type Criteria []Criterion

// Index returns the position of key, or -1.
func (c Criteria) Index(key string) int {
	for i, crit := range c {
		if crit.Key == key {
			return i
		}
	}
	return -1
}

// Toggle implements header-click semantics. A plain click collapses the list
// to a single criterion on key: ascending when key was not sorted on, with
// flipped direction when it was. A modifier click appends key ascending as a
// lower-priority criterion, or flips its direction in place when already
// present.
func (c Criteria) Toggle(key string, extend bool) Criteria {
	if key == "" {
		return c
	}
	idx := c.Index(key)
	if !extend {
		if idx != -1 {
			return Criteria{{Key: key, Desc: !c[idx].Desc}}
		}
		return Criteria{{Key: key}}
	}
	out := make(Criteria, len(c))
	copy(out, c)
	if idx == -1 {
		return append(out, Criterion{Key: key})
	}
	out[idx].Desc = !out[idx].Desc
	return out
}

// Clear removes every criterion; the pipeline then preserves filter order.
func (c Criteria) Clear() Criteria {
	return nil
}

// ParseCriteria reads the wire form "status:asc,route:desc". Duplicate keys
// keep their first occurrence; blank entries are skipped.
func ParseCriteria(s string) Criteria {
	var out Criteria
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, dir, _ := strings.Cut(part, ":")
		key = strings.TrimSpace(key)
		if key == "" || out.Index(key) != -1 {
			continue
		}
		out = append(out, Criterion{
			Key:  key,
			Desc: strings.EqualFold(strings.TrimSpace(dir), "desc"),
		})
	}
	return out
}

// String renders the wire form accepted by ParseCriteria.
func (c Criteria) String() string {
	parts := make([]string, 0, len(c))
	for _, crit := range c {
		dir := "asc"
		if crit.Desc {
			dir = "desc"
		}
		parts = append(parts, crit.Key+":"+dir)
	}
	return strings.Join(parts, ",")
}

// Comparator orders records by a criteria list using locale-aware string
// comparison over the table's sort keys.
type Comparator[T any] struct {
	table    *Table[T]
	collator *collate.Collator
}

func NewComparator[T any](table *Table[T], tag language.Tag) *Comparator[T] {
	return &Comparator[T]{
		table:    table,
		collator: collate.New(tag),
	}
}

// Compare walks criteria in priority order and returns the first non-zero
// comparison, negated for descending criteria. Equal records return 0 so a
// stable host sort preserves their input order.
func (c *Comparator[T]) Compare(a, b T, criteria Criteria) int {
	for _, crit := range criteria {
		res := c.collator.CompareString(c.table.SortKeyOf(crit.Key, a), c.table.SortKeyOf(crit.Key, b))
		if crit.Desc {
			res = -res
		}
		if res != 0 {
			return res
		}
	}
	return 0
}
