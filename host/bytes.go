package host

// Bytes is a persistent, copy-on-write mutable byte buffer, the backing
// store for an ObjBytes object.
type Bytes struct {
	data   []byte
	shared bool
}

// NewBytes returns an empty Bytes.
func NewBytes() *Bytes { return &Bytes{} }

// BytesFrom builds a Bytes owning a copy of data.
func BytesFrom(data []byte) *Bytes {
	cp := make([]byte, len(data))
	copy(cp, data)
	return &Bytes{data: cp}
}

func (b *Bytes) ensureOwned() {
	if !b.shared {
		return
	}
	cp := make([]byte, len(b.data))
	copy(cp, b.data)
	b.data = cp
	b.shared = false
}

// Len returns the number of bytes.
func (b *Bytes) Len() int { return len(b.data) }

// Bytes exposes the underlying data for read-only use.
func (b *Bytes) Bytes() []byte { return b.data }

func (h *Host) addBytesObject(data []byte) (RawVal, error) {
	if err := h.budget.Charge(HostObjAlloc, uint64(len(data))); err != nil {
		return 0, err
	}
	handle, err := h.objects.add(objVal{typ: ObjBytes, bytes: BytesFrom(data)})
	if err != nil {
		return 0, err
	}
	return FromObject(Object{Type: ObjBytes, Handle: handle}), nil
}

func (h *Host) visitBytes(v RawVal) (*Bytes, error) {
	obj, err := v.AsObject()
	if err != nil {
		return nil, err
	}
	ov, err := h.objects.visit(obj.Handle, ObjBytes)
	if err != nil {
		return nil, err
	}
	return ov.bytes, nil
}

// BytesNew allocates a new empty Bytes object.
func (h *Host) BytesNew() (RawVal, error) { return h.addBytesObject(nil) }

// NewBytesObject allocates a new Bytes object holding a copy of data,
// exposed for collaborators (e.g. nativecontract/token) that need to
// build storage keys out of raw bytes without going through the guest
// ABI's byte-at-a-time surface.
func (h *Host) NewBytesObject(data []byte) (RawVal, error) { return h.addBytesObject(data) }

// BytesLen returns the length of a Bytes object.
func (h *Host) BytesLen(v RawVal) (uint32, error) {
	b, err := h.visitBytes(v)
	if err != nil {
		return 0, err
	}
	return uint32(b.Len()), nil
}

// BytesGet returns the byte at index i.
func (h *Host) BytesGet(v RawVal, i uint32) (uint8, error) {
	b, err := h.visitBytes(v)
	if err != nil {
		return 0, err
	}
	if err := h.budget.Charge(HostBytesOp, uint64(b.Len())); err != nil {
		return 0, err
	}
	if uint64(i) >= uint64(b.Len()) {
		return 0, newErrf(DomainHostObjError, CodeVecIndexOutOfBound, "bytes index %d out of bound (len %d)", i, b.Len())
	}
	return b.data[i], nil
}

// BytesPut sets the byte at index i in place; the object keeps its
// handle.
func (h *Host) BytesPut(v RawVal, i uint32, val uint8) error {
	b, err := h.visitBytes(v)
	if err != nil {
		return err
	}
	if err := h.budget.Charge(HostBytesOp, uint64(b.Len())); err != nil {
		return err
	}
	if uint64(i) >= uint64(b.Len()) {
		return newErrf(DomainHostObjError, CodeVecIndexOutOfBound, "bytes index %d out of bound (len %d)", i, b.Len())
	}
	b.ensureOwned()
	b.data[i] = val
	return nil
}

// BytesDel removes the byte at index i.
func (h *Host) BytesDel(v RawVal, i uint32) error {
	b, err := h.visitBytes(v)
	if err != nil {
		return err
	}
	if err := h.budget.Charge(HostBytesOp, uint64(b.Len())); err != nil {
		return err
	}
	if uint64(i) >= uint64(b.Len()) {
		return newErrf(DomainHostObjError, CodeVecIndexOutOfBound, "bytes index %d out of bound (len %d)", i, b.Len())
	}
	b.ensureOwned()
	b.data = append(b.data[:i], b.data[i+1:]...)
	return nil
}

// BytesPush appends a byte.
func (h *Host) BytesPush(v RawVal, val uint8) error {
	b, err := h.visitBytes(v)
	if err != nil {
		return err
	}
	if err := h.budget.Charge(HostBytesOp, uint64(b.Len())); err != nil {
		return err
	}
	b.ensureOwned()
	b.data = append(b.data, val)
	return nil
}

// BytesPop removes the last byte.
func (h *Host) BytesPop(v RawVal) error {
	b, err := h.visitBytes(v)
	if err != nil {
		return err
	}
	if b.Len() == 0 {
		return newErr(DomainHostObjError, CodeVecIndexOutOfBound, "pop from empty bytes")
	}
	if err := h.budget.Charge(HostBytesOp, uint64(b.Len())); err != nil {
		return err
	}
	b.ensureOwned()
	b.data = b.data[:len(b.data)-1]
	return nil
}

// BytesSlice returns a new Bytes object holding the half-open range
// [start, end).
func (h *Host) BytesSlice(v RawVal, start, end uint32) (RawVal, error) {
	b, err := h.visitBytes(v)
	if err != nil {
		return 0, err
	}
	if uint64(start) > uint64(end) || uint64(end) > uint64(b.Len()) {
		return 0, newErrf(DomainHostObjError, CodeVecIndexOutOfBound, "bytes slice [%d:%d) out of bound (len %d)", start, end, b.Len())
	}
	if err := h.budget.Charge(HostBytesOp, uint64(end-start)); err != nil {
		return 0, err
	}
	return h.addBytesObject(b.data[start:end])
}

// BytesAppend concatenates rhs onto lhs, returning a new Bytes object.
func (h *Host) BytesAppend(lhs, rhs RawVal) (RawVal, error) {
	a, err := h.visitBytes(lhs)
	if err != nil {
		return 0, err
	}
	b, err := h.visitBytes(rhs)
	if err != nil {
		return 0, err
	}
	if err := h.budget.Charge(HostBytesOp, uint64(a.Len()+b.Len())); err != nil {
		return 0, err
	}
	out := make([]byte, 0, a.Len()+b.Len())
	out = append(out, a.data...)
	out = append(out, b.data...)
	return h.addBytesObject(out)
}

// BytesCopyToLinearMemory copies bytesPos..bytesPos+len from a Bytes
// object into guest linear memory starting at memPos.
func (h *Host) BytesCopyToLinearMemory(mem LinearMemory, v RawVal, bytesPos, memPos, length uint32) error {
	b, err := h.visitBytes(v)
	if err != nil {
		return err
	}
	if uint64(bytesPos)+uint64(length) > uint64(b.Len()) {
		return newErr(DomainHostObjError, CodeVecIndexOutOfBound, "bytes copy-out range exceeds Bytes length")
	}
	if err := h.budget.Charge(WasmMemAlloc, uint64(length)); err != nil {
		return err
	}
	return mem.Write(memPos, b.data[bytesPos:bytesPos+length])
}

// BytesCopyFromLinearMemory copies len bytes from guest linear memory at
// memPos into a Bytes object at bytesPos, growing it with zero padding if
// the write runs past the current length (documented host.rs behavior,
// kept intentionally: a contract that write-extends a Bytes object
// doesn't need a separate grow call).
func (h *Host) BytesCopyFromLinearMemory(mem LinearMemory, v RawVal, bytesPos, memPos, length uint32) error {
	b, err := h.visitBytes(v)
	if err != nil {
		return err
	}
	if err := h.budget.Charge(WasmMemAlloc, uint64(length)); err != nil {
		return err
	}
	buf, err := mem.Read(memPos, length)
	if err != nil {
		return err
	}
	b.ensureOwned()
	needed := int(bytesPos) + int(length)
	if needed > len(b.data) {
		grown := make([]byte, needed)
		copy(grown, b.data)
		b.data = grown
	}
	copy(b.data[bytesPos:], buf)
	return nil
}

// LinearMemory is the guest-memory access surface the engine package
// provides to Bytes<->memory bridge operations.
type LinearMemory interface {
	Read(pos, length uint32) ([]byte, error)
	Write(pos uint32, data []byte) error
	Grow(pages uint32) error
}
