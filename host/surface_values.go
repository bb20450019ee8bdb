package host

// ObjFromU64 wraps u in a new ObjU64 object.
func (h *Host) ObjFromU64(u uint64) (RawVal, error) {
	if err := h.budget.Charge(HostObjAlloc, 1); err != nil {
		return 0, err
	}
	handle, err := h.objects.add(objVal{typ: ObjU64, u64: u})
	if err != nil {
		return 0, err
	}
	return FromObject(Object{Type: ObjU64, Handle: handle}), nil
}

// ObjToU64 unwraps an ObjU64 object's value.
func (h *Host) ObjToU64(v RawVal) (uint64, error) {
	obj, err := v.AsObject()
	if err != nil {
		return 0, err
	}
	ov, err := h.objects.visit(obj.Handle, ObjU64)
	if err != nil {
		return 0, err
	}
	return ov.u64, nil
}

// ObjFromI64 wraps i in a new ObjI64 object.
func (h *Host) ObjFromI64(i int64) (RawVal, error) {
	if err := h.budget.Charge(HostObjAlloc, 1); err != nil {
		return 0, err
	}
	handle, err := h.objects.add(objVal{typ: ObjI64, i64: i})
	if err != nil {
		return 0, err
	}
	return FromObject(Object{Type: ObjI64, Handle: handle}), nil
}

// ObjToI64 unwraps an ObjI64 object's value.
func (h *Host) ObjToI64(v RawVal) (int64, error) {
	obj, err := v.AsObject()
	if err != nil {
		return 0, err
	}
	ov, err := h.objects.visit(obj.Handle, ObjI64)
	if err != nil {
		return 0, err
	}
	return ov.i64, nil
}

// ScConverter is the codec surface FromHostVal/ToHostVal delegate to; the
// xdr package's ScVal/ScObject implement it. Kept as an interface at the
// host/xdr boundary so host never imports xdr directly (xdr instead
// depends on host for the RawVal/Object shapes it converts to and from).
type ScConverter interface {
	FromHostVal(h *Host, v RawVal) (interface{}, error)
	ToHostVal(h *Host, sc interface{}) (RawVal, error)
}

// FromHostVal converts a RawVal to an external (XDR) representation via
// conv, charging ValXdrConv scaled by 1 plus, for Object-tagged values,
// the object's approximate size.
func (h *Host) FromHostVal(conv ScConverter, v RawVal) (interface{}, error) {
	size := uint64(1)
	if obj, err := v.AsObject(); err == nil {
		if ov, verr := h.objects.visitAny(obj.Handle); verr == nil {
			size += objApproxSize(ov)
		}
	}
	if err := h.budget.Charge(ValXdrConv, size); err != nil {
		return nil, err
	}
	return conv.FromHostVal(h, v)
}

// ToHostVal converts an external (XDR) representation into a RawVal via
// conv, charging ValXdrConv the same way FromHostVal does.
func (h *Host) ToHostVal(conv ScConverter, sc interface{}) (RawVal, error) {
	if err := h.budget.Charge(ValXdrConv, 1); err != nil {
		return 0, err
	}
	return conv.ToHostVal(h, sc)
}

func objApproxSize(ov *objVal) uint64 {
	switch ov.typ {
	case ObjVec:
		return uint64(ov.vec.Len())
	case ObjMap:
		return uint64(ov.omap.Len()) * 2
	case ObjBytes:
		return uint64(ov.bytes.Len())
	case ObjBigInt:
		return bigIntDigits(ov.bigInt)
	default:
		return 1
	}
}
