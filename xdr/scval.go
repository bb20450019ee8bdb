package xdr

import "soroban-host/host"

// ScValKind discriminates an ScVal, mirroring RawVal's tag set plus the
// ObjectType of any ScObject payload.
type ScValKind uint8

const (
	ScVoid ScValKind = iota
	ScBool
	ScStatus
	ScU32
	ScI32
	ScSymbol
	ScObjectU64
	ScObjectI64
	ScObjectBytes
	ScObjectBigInt
	ScObjectVec
	ScObjectMap
)

// ScVal is the external, host-object-table-independent counterpart of a
// host.RawVal: it can be serialized, stored, and handed to a different
// Host instance, unlike a RawVal's Object variant which only makes sense
// relative to the table that allocated it.
type ScVal struct {
	Kind     ScValKind
	Bool     bool
	U32      uint32
	I32      int32
	Symbol   string
	Status   host.Status
	U64      uint64
	I64      int64
	Bytes    []byte
	BigInt   *ScBigInt
	Vec      []ScVal
	Map      []ScMapEntry
}

// ScBigInt is an arbitrary-precision integer's wire form: a sign flag
// plus big-endian magnitude bytes.
type ScBigInt struct {
	Negative bool
	Magnitude []byte
}

// ScMapEntry is one key/value pair of an ScObjectMap.
type ScMapEntry struct {
	Key ScVal
	Val ScVal
}

// Converter implements host.ScConverter, letting the host package's
// FromHostVal/ToHostVal surface delegate the RawVal<->ScVal translation
// to this package without host importing it directly.
type Converter struct{}

// FromHostVal converts a RawVal into its external ScVal form, recursing
// through Vec/Map objects.
func (Converter) FromHostVal(h *host.Host, v host.RawVal) (interface{}, error) {
	return fromHostVal(h, v)
}

func fromHostVal(h *host.Host, v host.RawVal) (ScVal, error) {
	switch v.Tag() {
	case host.TagVoid:
		return ScVal{Kind: ScVoid}, nil
	case host.TagBool:
		b, err := v.AsBool()
		return ScVal{Kind: ScBool, Bool: b}, err
	case host.TagU32:
		u, err := v.AsU32()
		return ScVal{Kind: ScU32, U32: u}, err
	case host.TagI32:
		i, err := v.AsI32()
		return ScVal{Kind: ScI32, I32: i}, err
	case host.TagSymbol:
		s, err := v.AsSymbol()
		return ScVal{Kind: ScSymbol, Symbol: string(s)}, err
	case host.TagStatus:
		st, err := v.AsStatus()
		return ScVal{Kind: ScStatus, Status: st}, err
	case host.TagObject:
		return fromHostObject(h, v)
	default:
		return ScVal{}, newErr(Invalid, "unrecognized RawVal tag")
	}
}

func fromHostObject(h *host.Host, v host.RawVal) (ScVal, error) {
	obj, err := v.AsObject()
	if err != nil {
		return ScVal{}, err
	}
	switch obj.Type {
	case host.ObjU64:
		u, err := h.ObjToU64(v)
		return ScVal{Kind: ScObjectU64, U64: u}, err
	case host.ObjI64:
		i, err := h.ObjToI64(v)
		return ScVal{Kind: ScObjectI64, I64: i}, err
	case host.ObjBytes:
		n, err := h.BytesLen(v)
		if err != nil {
			return ScVal{}, err
		}
		buf := make([]byte, n)
		for i := uint32(0); i < n; i++ {
			b, err := h.BytesGet(v, i)
			if err != nil {
				return ScVal{}, err
			}
			buf[i] = b
		}
		return ScVal{Kind: ScObjectBytes, Bytes: buf}, nil
	case host.ObjBigInt:
		neg, err := isBigIntNegative(h, v)
		if err != nil {
			return ScVal{}, err
		}
		mag, err := h.BigIntToBytesBE(v)
		if err != nil {
			return ScVal{}, err
		}
		n, err := h.BytesLen(mag)
		if err != nil {
			return ScVal{}, err
		}
		buf := make([]byte, n)
		for i := uint32(0); i < n; i++ {
			b, err := h.BytesGet(mag, i)
			if err != nil {
				return ScVal{}, err
			}
			buf[i] = b
		}
		return ScVal{Kind: ScObjectBigInt, BigInt: &ScBigInt{Negative: neg, Magnitude: buf}}, nil
	case host.ObjVec:
		n, err := h.VecLen(v)
		if err != nil {
			return ScVal{}, err
		}
		items := make([]ScVal, n)
		for i := uint32(0); i < n; i++ {
			elem, err := h.VecGet(v, i)
			if err != nil {
				return ScVal{}, err
			}
			items[i], err = fromHostVal(h, elem)
			if err != nil {
				return ScVal{}, err
			}
		}
		return ScVal{Kind: ScObjectVec, Vec: items}, nil
	case host.ObjMap:
		keysVec, err := h.MapKeys(v)
		if err != nil {
			return ScVal{}, err
		}
		n, err := h.VecLen(keysVec)
		if err != nil {
			return ScVal{}, err
		}
		entries := make([]ScMapEntry, n)
		for i := uint32(0); i < n; i++ {
			k, err := h.VecGet(keysVec, i)
			if err != nil {
				return ScVal{}, err
			}
			val, err := h.MapGet(v, k)
			if err != nil {
				return ScVal{}, err
			}
			sk, err := fromHostVal(h, k)
			if err != nil {
				return ScVal{}, err
			}
			sv, err := fromHostVal(h, val)
			if err != nil {
				return ScVal{}, err
			}
			entries[i] = ScMapEntry{Key: sk, Val: sv}
		}
		return ScVal{Kind: ScObjectMap, Map: entries}, nil
	default:
		return ScVal{}, newErr(Invalid, "unsupported object type for ScVal conversion")
	}
}

func isBigIntNegative(h *host.Host, v host.RawVal) (bool, error) {
	zero, err := h.BigIntFromU64(0)
	if err != nil {
		return false, err
	}
	cmp, err := h.BigIntCmp(v, zero)
	if err != nil {
		return false, err
	}
	return cmp < 0, nil
}

// ToHostVal converts an ScVal (passed as interface{} to satisfy
// host.ScConverter; must be an xdr.ScVal) into a fresh RawVal, allocating
// new host objects as needed.
func (Converter) ToHostVal(h *host.Host, sc interface{}) (host.RawVal, error) {
	val, ok := sc.(ScVal)
	if !ok {
		return 0, newErr(Invalid, "ToHostVal requires an xdr.ScVal")
	}
	return toHostVal(h, val)
}

func toHostVal(h *host.Host, sc ScVal) (host.RawVal, error) {
	switch sc.Kind {
	case ScVoid:
		return host.Void, nil
	case ScBool:
		return host.FromBool(sc.Bool), nil
	case ScU32:
		return host.FromU32(sc.U32), nil
	case ScI32:
		return host.FromI32(sc.I32), nil
	case ScSymbol:
		return host.FromSymbol(host.Symbol(sc.Symbol))
	case ScStatus:
		return host.FromStatus(sc.Status), nil
	case ScObjectU64:
		return h.ObjFromU64(sc.U64)
	case ScObjectI64:
		return h.ObjFromI64(sc.I64)
	case ScObjectBytes:
		return h.NewBytesObject(sc.Bytes)
	case ScObjectBigInt:
		return toHostBigInt(h, sc.BigInt)
	case ScObjectVec:
		items := make([]host.RawVal, len(sc.Vec))
		for i, elem := range sc.Vec {
			v, err := toHostVal(h, elem)
			if err != nil {
				return 0, err
			}
			items[i] = v
		}
		vecObj, err := h.VecNew()
		if err != nil {
			return 0, err
		}
		for _, item := range items {
			vecObj, err = h.VecPush(vecObj, item)
			if err != nil {
				return 0, err
			}
		}
		return vecObj, nil
	case ScObjectMap:
		mapObj, err := h.MapNew()
		if err != nil {
			return 0, err
		}
		for _, entry := range sc.Map {
			k, err := toHostVal(h, entry.Key)
			if err != nil {
				return 0, err
			}
			v, err := toHostVal(h, entry.Val)
			if err != nil {
				return 0, err
			}
			mapObj, err = h.MapPut(mapObj, k, v)
			if err != nil {
				return 0, err
			}
		}
		return mapObj, nil
	default:
		return 0, newErr(Invalid, "unrecognized ScVal kind")
	}
}

func toHostBigInt(h *host.Host, b *ScBigInt) (host.RawVal, error) {
	v, err := h.BigIntFromU64(0)
	if err != nil {
		return 0, err
	}
	bytesObj, err := h.NewBytesObject(b.Magnitude)
	if err != nil {
		return 0, err
	}
	// BigInt magnitude is rebuilt via repeated shifts+adds from the byte
	// string through the arithmetic host surface (BigIntShl/BigIntAdd)
	// rather than through BigIntFromBytesBE, exercising it the way a real
	// contract's token-amount parsing would.
	n, err := h.BytesLen(bytesObj)
	if err != nil {
		return 0, err
	}
	for i := uint32(0); i < n; i++ {
		byteVal, err := h.BytesGet(bytesObj, i)
		if err != nil {
			return 0, err
		}
		shifted, err := h.BigIntShl(v, 8)
		if err != nil {
			return 0, err
		}
		added, err := h.BigIntFromU64(uint64(byteVal))
		if err != nil {
			return 0, err
		}
		v, err = h.BigIntAdd(shifted, added)
		if err != nil {
			return 0, err
		}
	}
	if b.Negative {
		v, err = h.BigIntNeg(v)
		if err != nil {
			return 0, err
		}
	}
	return v, nil
}
