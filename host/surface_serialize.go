package host

import "encoding/binary"

// SerializeToBinary renders v as a self-describing byte string and
// returns it as a new Bytes object. Scalar RawVals serialize directly;
// Vec and Map objects recurse. Charging happens AFTER the work is done
// (an explicit exception, mirrored from host.rs, which accepts "an
// over-run of one object" here rather than pre-computing an exact size).
func (h *Host) SerializeToBinary(v RawVal) (RawVal, error) {
	data, err := h.serializeRawVal(v)
	if err != nil {
		return 0, err
	}
	out, err := h.addBytesObject(data)
	if chargeErr := h.budget.Charge(ValSer, uint64(len(data))); chargeErr != nil {
		return 0, chargeErr
	}
	return out, err
}

// DeserializeFromBinary parses a Bytes object previously produced by
// SerializeToBinary back into a RawVal.
func (h *Host) DeserializeFromBinary(v RawVal) (RawVal, error) {
	b, err := h.visitBytes(v)
	if err != nil {
		return 0, err
	}
	val, _, err := h.deserializeRawVal(b.Bytes())
	if err != nil {
		return 0, err
	}
	if chargeErr := h.budget.Charge(ValSer, uint64(b.Len())); chargeErr != nil {
		return 0, chargeErr
	}
	return val, nil
}

const (
	wireVoid uint8 = iota
	wireBool
	wireU32
	wireI32
	wireSymbol
	wireStatus
	wireU64
	wireI64
	wireBigInt
	wireBytes
	wireVec
	wireMap
)

func (h *Host) serializeRawVal(v RawVal) ([]byte, error) {
	switch v.Tag() {
	case TagVoid:
		return []byte{wireVoid}, nil
	case TagBool:
		b, _ := v.AsBool()
		if b {
			return []byte{wireBool, 1}, nil
		}
		return []byte{wireBool, 0}, nil
	case TagU32:
		u, _ := v.AsU32()
		buf := make([]byte, 5)
		buf[0] = wireU32
		binary.BigEndian.PutUint32(buf[1:], u)
		return buf, nil
	case TagI32:
		i, _ := v.AsI32()
		buf := make([]byte, 5)
		buf[0] = wireI32
		binary.BigEndian.PutUint32(buf[1:], uint32(i))
		return buf, nil
	case TagSymbol:
		s, _ := v.AsSymbol()
		buf := make([]byte, 2+len(s))
		buf[0] = wireSymbol
		buf[1] = uint8(len(s))
		copy(buf[2:], s)
		return buf, nil
	case TagStatus:
		st, _ := v.AsStatus()
		buf := make([]byte, 4)
		buf[0] = wireStatus
		buf[1] = uint8(st.Domain)
		binary.BigEndian.PutUint16(buf[2:], st.Code)
		return buf, nil
	case TagObject:
		return h.serializeObject(v)
	default:
		return nil, newErr(DomainHostValError, CodeUnexpectedType, "cannot serialize RawVal")
	}
}

func (h *Host) serializeObject(v RawVal) ([]byte, error) {
	obj, err := v.AsObject()
	if err != nil {
		return nil, err
	}
	ov, err := h.objects.visitAny(obj.Handle)
	if err != nil {
		return nil, err
	}
	switch ov.typ {
	case ObjU64:
		buf := make([]byte, 9)
		buf[0] = wireU64
		binary.BigEndian.PutUint64(buf[1:], ov.u64)
		return buf, nil
	case ObjI64:
		buf := make([]byte, 9)
		buf[0] = wireI64
		binary.BigEndian.PutUint64(buf[1:], uint64(ov.i64))
		return buf, nil
	case ObjBigInt:
		sign := ov.bigInt.Sign()
		mag := ov.bigInt.Bytes()
		buf := make([]byte, 0, 6+len(mag))
		buf = append(buf, wireBigInt)
		if sign < 0 {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}
		lenBuf := make([]byte, 4)
		binary.BigEndian.PutUint32(lenBuf, uint32(len(mag)))
		buf = append(buf, lenBuf...)
		buf = append(buf, mag...)
		return buf, nil
	case ObjBytes:
		data := ov.bytes.Bytes()
		buf := make([]byte, 0, 5+len(data))
		buf = append(buf, wireBytes)
		lenBuf := make([]byte, 4)
		binary.BigEndian.PutUint32(lenBuf, uint32(len(data)))
		buf = append(buf, lenBuf...)
		buf = append(buf, data...)
		return buf, nil
	case ObjVec:
		buf := []byte{wireVec}
		lenBuf := make([]byte, 4)
		binary.BigEndian.PutUint32(lenBuf, uint32(ov.vec.Len()))
		buf = append(buf, lenBuf...)
		for _, item := range ov.vec.Items() {
			enc, err := h.serializeRawVal(item)
			if err != nil {
				return nil, err
			}
			buf = append(buf, enc...)
		}
		return buf, nil
	case ObjMap:
		buf := []byte{wireMap}
		keys := ov.omap.Keys()
		lenBuf := make([]byte, 4)
		binary.BigEndian.PutUint32(lenBuf, uint32(len(keys)))
		buf = append(buf, lenBuf...)
		for _, k := range keys {
			val, _ := ov.omap.Get(k)
			ke, err := h.serializeRawVal(k)
			if err != nil {
				return nil, err
			}
			ve, err := h.serializeRawVal(val)
			if err != nil {
				return nil, err
			}
			buf = append(buf, ke...)
			buf = append(buf, ve...)
		}
		return buf, nil
	default:
		return nil, newErr(DomainHostValError, CodeUnexpectedType, "object type not serializable")
	}
}

func (h *Host) deserializeRawVal(data []byte) (RawVal, int, error) {
	if len(data) == 0 {
		return 0, 0, newErr(DomainUnknown, CodeXdr, "unexpected end of input")
	}
	switch data[0] {
	case wireVoid:
		return Void, 1, nil
	case wireBool:
		if len(data) < 2 {
			return 0, 0, errUnknown(errShortRead)
		}
		return FromBool(data[1] != 0), 2, nil
	case wireU32:
		if len(data) < 5 {
			return 0, 0, errUnknown(errShortRead)
		}
		return FromU32(binary.BigEndian.Uint32(data[1:5])), 5, nil
	case wireI32:
		if len(data) < 5 {
			return 0, 0, errUnknown(errShortRead)
		}
		return FromI32(int32(binary.BigEndian.Uint32(data[1:5]))), 5, nil
	case wireSymbol:
		if len(data) < 2 {
			return 0, 0, errUnknown(errShortRead)
		}
		n := int(data[1])
		if len(data) < 2+n {
			return 0, 0, errUnknown(errShortRead)
		}
		sym, err := FromSymbol(Symbol(data[2 : 2+n]))
		if err != nil {
			return 0, 0, err
		}
		return sym, 2 + n, nil
	case wireStatus:
		if len(data) < 4 {
			return 0, 0, errUnknown(errShortRead)
		}
		st := Status{Domain: Domain(data[1]), Code: binary.BigEndian.Uint16(data[2:4])}
		return FromStatus(st), 4, nil
	case wireU64:
		if len(data) < 9 {
			return 0, 0, errUnknown(errShortRead)
		}
		v, err := h.ObjFromU64(binary.BigEndian.Uint64(data[1:9]))
		return v, 9, err
	case wireI64:
		if len(data) < 9 {
			return 0, 0, errUnknown(errShortRead)
		}
		v, err := h.ObjFromI64(int64(binary.BigEndian.Uint64(data[1:9])))
		return v, 9, err
	case wireBigInt:
		return h.deserializeBigInt(data)
	case wireBytes:
		return h.deserializeBytes(data)
	case wireVec:
		return h.deserializeVec(data)
	case wireMap:
		return h.deserializeMap(data)
	default:
		return 0, 0, newErr(DomainUnknown, CodeXdr, "unknown wire tag")
	}
}

var errShortRead = newErr(DomainUnknown, CodeXdr, "short read")

func (h *Host) deserializeBigInt(data []byte) (RawVal, int, error) {
	if len(data) < 6 {
		return 0, 0, errUnknown(errShortRead)
	}
	neg := data[1] != 0
	n := int(binary.BigEndian.Uint32(data[2:6]))
	if len(data) < 6+n {
		return 0, 0, errUnknown(errShortRead)
	}
	v, err := h.BigIntFromU64(0)
	if err != nil {
		return 0, 0, err
	}
	obj, _ := v.AsObject()
	ov, _ := h.objects.visit(obj.Handle, ObjBigInt)
	ov.bigInt.SetBytes(data[6 : 6+n])
	if neg {
		ov.bigInt.Neg(ov.bigInt)
	}
	return v, 6 + n, nil
}

func (h *Host) deserializeBytes(data []byte) (RawVal, int, error) {
	if len(data) < 5 {
		return 0, 0, errUnknown(errShortRead)
	}
	n := int(binary.BigEndian.Uint32(data[1:5]))
	if len(data) < 5+n {
		return 0, 0, errUnknown(errShortRead)
	}
	v, err := h.addBytesObject(data[5 : 5+n])
	return v, 5 + n, err
}

func (h *Host) deserializeVec(data []byte) (RawVal, int, error) {
	if len(data) < 5 {
		return 0, 0, errUnknown(errShortRead)
	}
	n := int(binary.BigEndian.Uint32(data[1:5]))
	pos := 5
	items := make([]RawVal, 0, n)
	for i := 0; i < n; i++ {
		item, consumed, err := h.deserializeRawVal(data[pos:])
		if err != nil {
			return 0, 0, err
		}
		items = append(items, item)
		pos += consumed
	}
	v, err := h.addVecObject(VectorFrom(items))
	return v, pos, err
}

func (h *Host) deserializeMap(data []byte) (RawVal, int, error) {
	if len(data) < 5 {
		return 0, 0, errUnknown(errShortRead)
	}
	n := int(binary.BigEndian.Uint32(data[1:5]))
	pos := 5
	m := NewOrderedMap()
	for i := 0; i < n; i++ {
		k, consumed, err := h.deserializeRawVal(data[pos:])
		if err != nil {
			return 0, 0, err
		}
		pos += consumed
		val, consumed2, err := h.deserializeRawVal(data[pos:])
		if err != nil {
			return 0, 0, err
		}
		pos += consumed2
		m = m.Put(k, val)
	}
	v, err := h.addMapObject(m)
	return v, pos, err
}
