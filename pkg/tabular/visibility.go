package tabular

import "context"

// Preference kinds persisted per user and table.
const (
	KindColumns = "columns"
	KindFilters = "filters"
)

// PreferenceStore persists the ordered visible-key list for a table, scoped
// to a user. The engine owns no preference state; hosts inject an
// implementation (postgres in production, an in-memory fake in tests).
type PreferenceStore interface {
	Get(ctx context.Context, userID int, tableID, kind string) ([]string, error)
	Set(ctx context.Context, userID int, tableID, kind string, keys []string) error
}

// Resolve turns a stored preference into the authoritative visible-key
// order. Stored order wins; unknown keys from stale preferences are dropped;
// required keys are forced in even when a stale preference omits them. An
// empty store yields exactly the required keys, never a wider default.
func Resolve[T any](stored []string, table *Table[T]) []string {
	return ResolveKeys(stored, table.Keys(), table.RequiredKeys())
}

// ResolveKeys is Resolve for key sets without a descriptor table, e.g. the
// visible-filter list of a screen.
func ResolveKeys(stored, declared, required []string) []string {
	known := make(map[string]struct{}, len(declared))
	for _, key := range declared {
		known[key] = struct{}{}
	}
	seen := make(map[string]struct{}, len(stored))
	out := make([]string, 0, len(stored))
	for _, key := range stored {
		if _, dup := seen[key]; dup {
			continue
		}
		if _, ok := known[key]; !ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	for _, key := range required {
		if _, ok := seen[key]; !ok {
			out = append(out, key)
		}
	}
	return out
}

// InMemoryPreferenceStore is a PreferenceStore for tests and local runs.
type InMemoryPreferenceStore struct {
	prefs map[[2]string]map[int][]string
}

func NewInMemoryPreferenceStore() *InMemoryPreferenceStore {
	return &InMemoryPreferenceStore{
		prefs: make(map[[2]string]map[int][]string),
	}
}

func (s *InMemoryPreferenceStore) Get(_ context.Context, userID int, tableID, kind string) ([]string, error) {
	byUser := s.prefs[[2]string{tableID, kind}]
	if byUser == nil {
		return nil, nil
	}
	keys := byUser[userID]
	out := make([]string, len(keys))
	copy(out, keys)
	return out, nil
}

func (s *InMemoryPreferenceStore) Set(_ context.Context, userID int, tableID, kind string, keys []string) error {
	id := [2]string{tableID, kind}
	if s.prefs[id] == nil {
		s.prefs[id] = make(map[int][]string)
	}
	stored := make([]string, len(keys))
	copy(stored, keys)
	s.prefs[id][userID] = stored
	return nil
}
