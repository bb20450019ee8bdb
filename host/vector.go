package host

// Vector is a persistent, copy-on-write indexed sequence of RawVal,
// mirroring OrderedMap's sharing discipline.
type Vector struct {
	items  []RawVal
	shared bool
}

// NewVector returns an empty vector.
func NewVector() *Vector { return &Vector{} }

// VectorFrom builds a Vector owning a copy of items.
func VectorFrom(items []RawVal) *Vector {
	cp := make([]RawVal, len(items))
	copy(cp, items)
	return &Vector{items: cp}
}

// Clone returns an O(1) copy-on-write clone.
func (v *Vector) Clone() *Vector {
	v.shared = true
	return &Vector{items: v.items, shared: true}
}

func (v *Vector) ensureOwned() {
	if !v.shared {
		return
	}
	cp := make([]RawVal, len(v.items))
	copy(cp, v.items)
	v.items = cp
	v.shared = false
}

// Len returns the number of elements.
func (v *Vector) Len() int { return len(v.items) }

func (v *Vector) checkIndex(i uint32) error {
	if uint64(i) >= uint64(len(v.items)) {
		return newErrf(DomainHostObjError, CodeVecIndexOutOfBound, "vector index %d out of bound (len %d)", i, len(v.items))
	}
	return nil
}

// Get returns the element at index i.
func (v *Vector) Get(i uint32) (RawVal, error) {
	if err := v.checkIndex(i); err != nil {
		return 0, err
	}
	return v.items[i], nil
}

// Put replaces the element at index i.
func (v *Vector) Put(i uint32, val RawVal) error {
	if err := v.checkIndex(i); err != nil {
		return err
	}
	v.ensureOwned()
	v.items[i] = val
	return nil
}

// Del removes the element at index i, shifting subsequent elements down.
func (v *Vector) Del(i uint32) error {
	if err := v.checkIndex(i); err != nil {
		return err
	}
	v.ensureOwned()
	v.items = append(v.items[:i], v.items[i+1:]...)
	return nil
}

// Push appends val to the end.
func (v *Vector) Push(val RawVal) {
	v.ensureOwned()
	v.items = append(v.items, val)
}

// Pop removes the last element.
func (v *Vector) Pop() error {
	if len(v.items) == 0 {
		return newErr(DomainHostObjError, CodeVecIndexOutOfBound, "pop from empty vector")
	}
	v.ensureOwned()
	v.items = v.items[:len(v.items)-1]
	return nil
}

// Front returns the first element.
func (v *Vector) Front() (RawVal, error) { return v.Get(0) }

// Back returns the last element.
func (v *Vector) Back() (RawVal, error) {
	if len(v.items) == 0 {
		return 0, newErr(DomainHostObjError, CodeVecIndexOutOfBound, "back of empty vector")
	}
	return v.items[len(v.items)-1], nil
}

// Insert inserts val at index i, shifting subsequent elements up. i may
// equal Len() to append.
func (v *Vector) Insert(i uint32, val RawVal) error {
	if uint64(i) > uint64(len(v.items)) {
		return newErrf(DomainHostObjError, CodeVecIndexOutOfBound, "vector insert index %d out of bound (len %d)", i, len(v.items))
	}
	v.ensureOwned()
	v.items = append(v.items, 0)
	copy(v.items[i+1:], v.items[i:])
	v.items[i] = val
	return nil
}

// Append concatenates other onto the end of v, returning a new Vector.
func (v *Vector) Append(other *Vector) *Vector {
	out := make([]RawVal, 0, len(v.items)+len(other.items))
	out = append(out, v.items...)
	out = append(out, other.items...)
	return &Vector{items: out}
}

// Slice returns a new Vector holding the half-open range [start, end).
func (v *Vector) Slice(start, end uint32) (*Vector, error) {
	if uint64(start) > uint64(end) || uint64(end) > uint64(len(v.items)) {
		return nil, newErrf(DomainHostObjError, CodeVecIndexOutOfBound, "vector slice [%d:%d) out of bound (len %d)", start, end, len(v.items))
	}
	return VectorFrom(v.items[start:end]), nil
}

// Items exposes the underlying elements for read-only iteration (e.g. by
// XDR conversion). Callers must not mutate the returned slice.
func (v *Vector) Items() []RawVal { return v.items }
