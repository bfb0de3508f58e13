package tabular

import (
	"encoding/json"
	"strings"
	"time"
)

// All is the sentinel a select filter holds when it should not constrain the
// result set. It always means "inactive", never the literal value "all".
const All = "all"

// None selects records whose code list is empty or absent.
const None = "none"

// Predicate admits or rejects a single record. A nil Predicate is inactive
// and vacuously true.
type Predicate[T any] func(T) bool

// IsActive reports whether a select-filter value constrains the result set.
func IsActive(value string) bool {
	v := strings.TrimSpace(value)
	return v != "" && !strings.EqualFold(v, All)
}

// And admits a record iff every active predicate admits it. Nil entries are
// skipped.
func And[T any](predicates ...Predicate[T]) Predicate[T] {
	active := make([]Predicate[T], 0, len(predicates))
	for _, p := range predicates {
		if p != nil {
			active = append(active, p)
		}
	}
	if len(active) == 0 {
		return nil
	}
	return func(record T) bool {
		for _, p := range active {
			if !p(record) {
				return false
			}
		}
		return true
	}
}

// Or admits a record if any active predicate admits it.
func Or[T any](predicates ...Predicate[T]) Predicate[T] {
	active := make([]Predicate[T], 0, len(predicates))
	for _, p := range predicates {
		if p != nil {
			active = append(active, p)
		}
	}
	if len(active) == 0 {
		return nil
	}
	return func(record T) bool {
		for _, p := range active {
			if p(record) {
				return true
			}
		}
		return false
	}
}

// Normalize folds a value for comparison. Ids are compared through this so
// numeric and string encodings of the same id match.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// SearchText admits records where any of the given fields contains the query,
// case-insensitively. Blank queries are inactive; unlike select filters, a
// literal "all" query is a real search.
func SearchText[T any](query string, fields ...func(T) string) Predicate[T] {
	q := Normalize(query)
	if q == "" {
		return nil
	}
	return func(record T) bool {
		for _, field := range fields {
			if strings.Contains(Normalize(field(record)), q) {
				return true
			}
		}
		return false
	}
}

// Equals is a string-normalized exact match.
func Equals[T any](want string, get func(T) string) Predicate[T] {
	if !IsActive(want) {
		return nil
	}
	w := Normalize(want)
	return func(record T) bool {
		return Normalize(get(record)) == w
	}
}

// Contains is a case-insensitive substring text filter.
func Contains[T any](want string, get func(T) string) Predicate[T] {
	if !IsActive(want) {
		return nil
	}
	w := Normalize(want)
	return func(record T) bool {
		return strings.Contains(Normalize(get(record)), w)
	}
}

// EqualsOneOf admits records whose field equals any of the candidate values.
// Used where a stored value has two representations, e.g. a meter type kept
// as either a product id or its legacy label.
func EqualsOneOf[T any](wants []string, get func(T) string) Predicate[T] {
	normalized := make(map[string]struct{}, len(wants))
	for _, w := range wants {
		if IsActive(w) {
			normalized[Normalize(w)] = struct{}{}
		}
	}
	if len(normalized) == 0 {
		return nil
	}
	return func(record T) bool {
		_, ok := normalized[Normalize(get(record))]
		return ok
	}
}

// EqualsWithFallback matches primarily on a stored id; rows predating the id
// column carry only a display name, which is compared against the label of
// the selected id.
func EqualsWithFallback[T any](want, wantLabel string, getID, getLabel func(T) string) Predicate[T] {
	if !IsActive(want) {
		return nil
	}
	w := Normalize(want)
	wl := Normalize(wantLabel)
	return func(record T) bool {
		if id := strings.TrimSpace(getID(record)); id != "" {
			return Normalize(id) == w
		}
		return wl != "" && Normalize(getLabel(record)) == wl
	}
}

const dateOnly = "2006-01-02"

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	dateOnly,
}

func parseTimestamp(raw string, loc *time.Location) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if ts, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// DateWithin constrains a date-as-string field to [from 00:00:00, to
// 23:59:59.999] in the given location. A record with a missing or
// unparseable date is rejected by an active bound, not vacuously admitted.
// Unparseable bounds are treated as unset.
func DateWithin[T any](from, to string, loc *time.Location, get func(T) string) Predicate[T] {
	if loc == nil {
		loc = time.Local
	}
	var lower, upper time.Time
	var hasLower, hasUpper bool
	if f := strings.TrimSpace(from); f != "" {
		if ts, err := time.ParseInLocation(dateOnly, f, loc); err == nil {
			lower, hasLower = ts, true
		}
	}
	if t := strings.TrimSpace(to); t != "" {
		if ts, err := time.ParseInLocation(dateOnly, t, loc); err == nil {
			upper, hasUpper = ts.Add(24*time.Hour-time.Millisecond), true
		}
	}
	if !hasLower && !hasUpper {
		return nil
	}
	return func(record T) bool {
		raw := strings.TrimSpace(get(record))
		if raw == "" {
			return false
		}
		ts, ok := parseTimestamp(raw, loc)
		if !ok {
			return false
		}
		if hasLower && ts.Before(lower) {
			return false
		}
		if hasUpper && ts.After(upper) {
			return false
		}
		return true
	}
}

// ParseCodeList normalizes the legacy encodings of a code-list field into a
// trimmed slice. Fallback order: empty-ish sentinels, JSON array, comma
// split. Malformed JSON degrades to the comma split, never to an error.
func ParseCodeList(raw string) []string {
	s := strings.TrimSpace(raw)
	if s == "" || s == "[]" || strings.EqualFold(s, "null") {
		return nil
	}
	if strings.HasPrefix(s, "[") {
		var parsed []any
		if err := json.Unmarshal([]byte(s), &parsed); err == nil {
			out := make([]string, 0, len(parsed))
			for _, v := range parsed {
				if code := strings.TrimSpace(formatValue(v)); code != "" {
					out = append(out, code)
				}
			}
			return out
		}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if code := strings.TrimSpace(p); code != "" {
			out = append(out, code)
		}
	}
	return out
}

// HasCode admits records whose code-list field contains the selected code by
// trimmed string equality. Selecting None matches records with no codes.
func HasCode[T any](selected string, get func(T) string) Predicate[T] {
	if !IsActive(selected) {
		return nil
	}
	if strings.EqualFold(strings.TrimSpace(selected), None) {
		return func(record T) bool {
			return len(ParseCodeList(get(record))) == 0
		}
	}
	want := strings.TrimSpace(selected)
	return func(record T) bool {
		for _, code := range ParseCodeList(get(record)) {
			if code == want {
				return true
			}
		}
		return false
	}
}
