package tabular

import (
	"fmt"
	"reflect"
)

// Descriptor declares one column of a list view: how to read, sort, and
// export a single field of a record. Adding a field to a screen means adding
// exactly one descriptor; the on-screen table, CSV, and workbook exports all
// resolve cells through it, so they cannot drift apart.
type Descriptor[T any] struct {
	Key      string
	Label    string
	Required bool

	// Value returns the raw field value.
	Value func(T) any
	// SortKey returns the comparable form of the field. Optional; defaults
	// to the formatted Value.
	SortKey func(T) string
	// Export returns the cell string for CSV/workbook/print output.
	// Optional; defaults to the formatted Value. Must never yield
	// "null"/"undefined" style artifacts.
	Export func(T) string
}

// Table is the closed descriptor set for one record type. Declaration order
// is the canonical column order.
type Table[T any] struct {
	order []string
	byKey map[string]Descriptor[T]
}

func NewTable[T any](descriptors ...Descriptor[T]) *Table[T] {
	t := &Table[T]{
		byKey: make(map[string]Descriptor[T], len(descriptors)),
	}
	for _, d := range descriptors {
		if d.Key == "" || d.Value == nil {
			continue
		}
		if _, exists := t.byKey[d.Key]; exists {
			continue
		}
		t.order = append(t.order, d.Key)
		t.byKey[d.Key] = d
	}
	return t
}

// Describe returns the descriptor for key. Unknown keys report ok=false and
// must be ignored by callers, never treated as an error.
func (t *Table[T]) Describe(key string) (Descriptor[T], bool) {
	d, ok := t.byKey[key]
	return d, ok
}

// Keys returns all declared column keys in declaration order.
func (t *Table[T]) Keys() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// RequiredKeys returns the keys that can never be hidden.
func (t *Table[T]) RequiredKeys() []string {
	var out []string
	for _, key := range t.order {
		if t.byKey[key].Required {
			out = append(out, key)
		}
	}
	return out
}

// Label returns the display label for key, or "" for unknown keys.
func (t *Table[T]) Label(key string) string {
	d, ok := t.byKey[key]
	if !ok {
		return ""
	}
	return d.Label
}

// ExportValue resolves the export cell string for one record and column.
// Unknown keys and nil values yield "".
func (t *Table[T]) ExportValue(key string, record T) string {
	d, ok := t.byKey[key]
	if !ok {
		return ""
	}
	if d.Export != nil {
		return d.Export(record)
	}
	return formatValue(d.Value(record))
}

// DisplayValue resolves the on-screen cell string, substituting placeholder
// for unknown keys and empty values.
func (t *Table[T]) DisplayValue(key string, record T, placeholder string) string {
	d, ok := t.byKey[key]
	if !ok {
		return placeholder
	}
	var s string
	if d.Export != nil {
		s = d.Export(record)
	} else {
		s = formatValue(d.Value(record))
	}
	if s == "" {
		return placeholder
	}
	return s
}

// SortKeyOf resolves the comparable key for one record and column. Missing
// descriptors and nil values normalize to "".
func (t *Table[T]) SortKeyOf(key string, record T) string {
	d, ok := t.byKey[key]
	if !ok {
		return ""
	}
	if d.SortKey != nil {
		return d.SortKey(record)
	}
	return formatValue(d.Value(record))
}

func formatValue(v any) string {
	if v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return ""
		}
		return formatValue(rv.Elem().Interface())
	}
	return fmt.Sprintf("%v", v)
}
