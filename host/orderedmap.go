package host

import "sort"

// mapEntry is one (key, value) pair of an OrderedMap, kept sorted by Key
// per RawVal.Compare.
type mapEntry struct {
	Key RawVal
	Val RawVal
}

// OrderedMap is a persistent, structurally-shared sorted map from RawVal
// to RawVal. "Persistent" here means clone is O(1): clones share the
// backing slice until one of them mutates, at which point the mutator
// copies (copy-on-write), preserving structural sharing for the common
// case of a contract reading a map it did not create.
type OrderedMap struct {
	entries []mapEntry
	shared  bool
}

// NewOrderedMap returns an empty map.
func NewOrderedMap() *OrderedMap {
	return &OrderedMap{}
}

// Clone returns an O(1) copy-on-write clone of m.
func (m *OrderedMap) Clone() *OrderedMap {
	m.shared = true
	return &OrderedMap{entries: m.entries, shared: true}
}

func (m *OrderedMap) ensureOwned() {
	if !m.shared {
		return
	}
	cp := make([]mapEntry, len(m.entries))
	copy(cp, m.entries)
	m.entries = cp
	m.shared = false
}

func (m *OrderedMap) find(key RawVal) (int, bool) {
	i := sort.Search(len(m.entries), func(i int) bool {
		return m.entries[i].Key.Compare(key) >= 0
	})
	if i < len(m.entries) && m.entries[i].Key.Compare(key) == 0 {
		return i, true
	}
	return i, false
}

// Len returns the number of entries.
func (m *OrderedMap) Len() int { return len(m.entries) }

// Get returns the value for key and whether it was present.
func (m *OrderedMap) Get(key RawVal) (RawVal, bool) {
	i, ok := m.find(key)
	if !ok {
		return 0, false
	}
	return m.entries[i].Val, true
}

// Has reports whether key is present.
func (m *OrderedMap) Has(key RawVal) bool {
	_, ok := m.find(key)
	return ok
}

// Put inserts or replaces the value at key, returning the new map (which
// may be m itself once made owned).
func (m *OrderedMap) Put(key, val RawVal) *OrderedMap {
	m.ensureOwned()
	i, ok := m.find(key)
	if ok {
		m.entries[i].Val = val
		return m
	}
	m.entries = append(m.entries, mapEntry{})
	copy(m.entries[i+1:], m.entries[i:])
	m.entries[i] = mapEntry{Key: key, Val: val}
	return m
}

// Del removes key if present, returning the new map and whether it was
// found.
func (m *OrderedMap) Del(key RawVal) (*OrderedMap, bool) {
	i, ok := m.find(key)
	if !ok {
		return m, false
	}
	m.ensureOwned()
	m.entries = append(m.entries[:i], m.entries[i+1:]...)
	return m, true
}

// PrevKey returns the greatest key strictly less than key, mirroring the
// Rust host's map_prev_key. Unlike host.rs (which returns the input key
// itself on BTreeMap cursor underflow, documented there as a bug), this
// returns CodeMapKeyNotFound when no such key exists, a concrete resolved
// behavior recorded in DESIGN.md.
func (m *OrderedMap) PrevKey(key RawVal) (RawVal, error) {
	i, _ := m.find(key)
	if i == 0 {
		return 0, newErr(DomainHostObjError, CodeMapKeyNotFound, "no key before the given key")
	}
	return m.entries[i-1].Key, nil
}

// NextKey returns the least key strictly greater than key.
func (m *OrderedMap) NextKey(key RawVal) (RawVal, error) {
	i, ok := m.find(key)
	if ok {
		i++
	}
	if i >= len(m.entries) {
		return 0, newErr(DomainHostObjError, CodeMapKeyNotFound, "no key after the given key")
	}
	return m.entries[i].Key, nil
}

// MinKey returns the smallest key in the map.
func (m *OrderedMap) MinKey() (RawVal, error) {
	if len(m.entries) == 0 {
		return 0, newErr(DomainHostObjError, CodeMapKeyNotFound, "map is empty")
	}
	return m.entries[0].Key, nil
}

// MaxKey returns the largest key in the map.
func (m *OrderedMap) MaxKey() (RawVal, error) {
	if len(m.entries) == 0 {
		return 0, newErr(DomainHostObjError, CodeMapKeyNotFound, "map is empty")
	}
	return m.entries[len(m.entries)-1].Key, nil
}

// Keys returns all keys in sorted order.
func (m *OrderedMap) Keys() []RawVal {
	out := make([]RawVal, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.Key
	}
	return out
}

// Values returns all values, ordered by their key.
func (m *OrderedMap) Values() []RawVal {
	out := make([]RawVal, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.Val
	}
	return out
}
