// internal/dedup/cache.go
// Package dedup holds the fragment-identifier set used by the result
// controller. Exactly one goroutine calls Seen, so implementations do
// not lock; check-then-insert is a single call to keep that discipline
// visible in the interface.
package dedup

// Cache is a monotonic set of fragment identifiers. Seen reports
// whether id was already present and inserts it if not. No eviction.
type Cache interface {
	Seen(id string) (bool, error)
	Len() int64
	Close() error
}

// Memory is the default map-backed cache.
type Memory struct {
	ids map[string]struct{}
}

func NewMemory() *Memory {
	return &Memory{ids: make(map[string]struct{}, 1<<14)}
}

func (m *Memory) Seen(id string) (bool, error) {
	if _, ok := m.ids[id]; ok {
		return true, nil
	}
	m.ids[id] = struct{}{}
	return false, nil
}

func (m *Memory) Len() int64 { return int64(len(m.ids)) }

func (m *Memory) Close() error { return nil }
