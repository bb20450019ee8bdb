package host

import "math/big"

// objVal is the payload stored behind a single object table slot. Exactly
// one of the fields is meaningful, selected by the slot's ObjectType.
type objVal struct {
	typ     ObjectType
	vec     *Vector
	omap    *OrderedMap
	u64     uint64
	i64     int64
	bytes   *Bytes
	bigInt  *big.Int
	hash    [32]byte
	pubKey  [32]byte
	code    ContractCode
}

// ContractCode is the opaque payload of an ObjContractCode object: either
// WASM bytes or the marker for the built-in token contract.
type ContractCode struct {
	Wasm    []byte
	IsToken bool
}

// objectTable is the host's append-only, handle-indexed heap. On Frame
// rollback a RollbackPoint truncates the slice back to a prior length
// rather than punching holes in it, so handles allocated after that point
// are handed out again by later adds.
type objectTable struct {
	objects []objVal
}

func newObjectTable() *objectTable {
	return &objectTable{}
}

func (t *objectTable) len() uint32 { return uint32(len(t.objects)) }

// add appends a new object and returns its handle.
func (t *objectTable) add(v objVal) (uint32, error) {
	if uint64(len(t.objects)) >= 1<<32-1 {
		return 0, newErr(DomainHostObjError, CodeObjectCountExceedsU32Max, "object table full")
	}
	handle := uint32(len(t.objects))
	t.objects = append(t.objects, v)
	return handle, nil
}

// visit returns the object at handle, bounds-checked and variant-checked
// against want. A guest contract can construct any Object RawVal it likes
// (it is just a tagged i64 on the stack), so a handle whose stored type
// does not match the type the caller declared must be rejected here
// rather than trusted by whichever visitX helper dereferences the union
// field for want's variant.
func (t *objectTable) visit(handle uint32, want ObjectType) (*objVal, error) {
	ov, err := t.visitAny(handle)
	if err != nil {
		return nil, err
	}
	if ov.typ != want {
		return nil, newErrf(DomainHostObjError, CodeObjUnexpectedType, "object handle %d has type %s, want %s", handle, ov.typ, want)
	}
	return ov, nil
}

// visitAny returns the object at handle without checking its variant, for
// the few callers that only need a bounds check because they dispatch on
// the object's own recorded typ rather than assuming a field of the
// union is populated (it may still legitimately belong to a
// now-rolled-back frame's future, which the Storage/Frame layer is
// responsible for rejecting separately; objectTable itself only knows
// about allocation, not scope).
func (t *objectTable) visitAny(handle uint32) (*objVal, error) {
	if uint64(handle) >= uint64(len(t.objects)) {
		return nil, newErrf(DomainHostObjError, CodeUnknownReference, "unknown object handle %d", handle)
	}
	return &t.objects[handle], nil
}

// truncate drops every object allocated at or after length, used to unwind
// the table on Frame rollback.
func (t *objectTable) truncate(length uint32) {
	t.objects = t.objects[:length]
}
