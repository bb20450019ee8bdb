package xdr

import (
	"encoding/binary"
	"io"

	"soroban-host/host"
)

// WriteVal writes sc's wire encoding to w.
func WriteVal(w io.Writer, sc ScVal) error {
	buf, err := encodeScVal(sc)
	if err != nil {
		return err
	}
	_, err = w.Write(buf)
	if err != nil {
		return newErr(Io, err.Error())
	}
	return nil
}

// ReadVal reads one ScVal's wire encoding from r.
func ReadVal(r io.Reader) (ScVal, error) {
	var header [1]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return ScVal{}, newErr(Io, err.Error())
	}
	return decodeScVal(header[0], r)
}

func encodeScVal(sc ScVal) ([]byte, error) {
	switch sc.Kind {
	case ScVoid:
		return []byte{byte(ScVoid)}, nil
	case ScBool:
		v := byte(0)
		if sc.Bool {
			v = 1
		}
		return []byte{byte(ScBool), v}, nil
	case ScU32:
		buf := make([]byte, 5)
		buf[0] = byte(ScU32)
		binary.BigEndian.PutUint32(buf[1:], sc.U32)
		return buf, nil
	case ScI32:
		buf := make([]byte, 5)
		buf[0] = byte(ScI32)
		binary.BigEndian.PutUint32(buf[1:], uint32(sc.I32))
		return buf, nil
	case ScSymbol:
		if len(sc.Symbol) > 255 {
			return nil, newErr(LengthExceedsMax, "symbol longer than 255 bytes")
		}
		buf := make([]byte, 2+len(sc.Symbol))
		buf[0] = byte(ScSymbol)
		buf[1] = byte(len(sc.Symbol))
		copy(buf[2:], sc.Symbol)
		return buf, nil
	case ScStatus:
		buf := make([]byte, 4)
		buf[0] = byte(ScStatus)
		buf[1] = byte(sc.Status.Domain)
		binary.BigEndian.PutUint16(buf[2:], sc.Status.Code)
		return buf, nil
	case ScObjectU64:
		buf := make([]byte, 9)
		buf[0] = byte(ScObjectU64)
		binary.BigEndian.PutUint64(buf[1:], sc.U64)
		return buf, nil
	case ScObjectI64:
		buf := make([]byte, 9)
		buf[0] = byte(ScObjectI64)
		binary.BigEndian.PutUint64(buf[1:], uint64(sc.I64))
		return buf, nil
	case ScObjectBytes:
		return encodeLenPrefixed(byte(ScObjectBytes), sc.Bytes), nil
	case ScObjectBigInt:
		head := []byte{byte(ScObjectBigInt), 0}
		if sc.BigInt.Negative {
			head[1] = 1
		}
		return append(head, encodeLenPrefixed(0, sc.BigInt.Magnitude)[1:]...), nil
	case ScObjectVec:
		buf := []byte{byte(ScObjectVec)}
		lenBuf := make([]byte, 4)
		binary.BigEndian.PutUint32(lenBuf, uint32(len(sc.Vec)))
		buf = append(buf, lenBuf...)
		for _, item := range sc.Vec {
			enc, err := encodeScVal(item)
			if err != nil {
				return nil, err
			}
			buf = append(buf, enc...)
		}
		return buf, nil
	case ScObjectMap:
		buf := []byte{byte(ScObjectMap)}
		lenBuf := make([]byte, 4)
		binary.BigEndian.PutUint32(lenBuf, uint32(len(sc.Map)))
		buf = append(buf, lenBuf...)
		for _, entry := range sc.Map {
			ke, err := encodeScVal(entry.Key)
			if err != nil {
				return nil, err
			}
			ve, err := encodeScVal(entry.Val)
			if err != nil {
				return nil, err
			}
			buf = append(buf, ke...)
			buf = append(buf, ve...)
		}
		return buf, nil
	default:
		return nil, newErr(Invalid, "unrecognized ScVal kind")
	}
}

func encodeLenPrefixed(kind byte, data []byte) []byte {
	buf := make([]byte, 5+len(data))
	buf[0] = kind
	binary.BigEndian.PutUint32(buf[1:5], uint32(len(data)))
	copy(buf[5:], data)
	return buf
}

func decodeScVal(kind byte, r io.Reader) (ScVal, error) {
	switch ScValKind(kind) {
	case ScVoid:
		return ScVal{Kind: ScVoid}, nil
	case ScBool:
		var b [1]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return ScVal{}, newErr(Io, err.Error())
		}
		return ScVal{Kind: ScBool, Bool: b[0] != 0}, nil
	case ScU32:
		u, err := readUint32(r)
		return ScVal{Kind: ScU32, U32: u}, err
	case ScI32:
		u, err := readUint32(r)
		return ScVal{Kind: ScI32, I32: int32(u)}, err
	case ScSymbol:
		var lb [1]byte
		if _, err := io.ReadFull(r, lb[:]); err != nil {
			return ScVal{}, newErr(Io, err.Error())
		}
		buf := make([]byte, lb[0])
		if _, err := io.ReadFull(r, buf); err != nil {
			return ScVal{}, newErr(Io, err.Error())
		}
		return ScVal{Kind: ScSymbol, Symbol: string(buf)}, nil
	case ScStatus:
		buf := make([]byte, 3)
		if _, err := io.ReadFull(r, buf); err != nil {
			return ScVal{}, newErr(Io, err.Error())
		}
		return ScVal{Kind: ScStatus, Status: statusFrom(buf)}, nil
	case ScObjectU64:
		u, err := readUint64(r)
		return ScVal{Kind: ScObjectU64, U64: u}, err
	case ScObjectI64:
		u, err := readUint64(r)
		return ScVal{Kind: ScObjectI64, I64: int64(u)}, err
	case ScObjectBytes:
		b, err := readLenPrefixed(r)
		return ScVal{Kind: ScObjectBytes, Bytes: b}, err
	case ScObjectBigInt:
		var neg [1]byte
		if _, err := io.ReadFull(r, neg[:]); err != nil {
			return ScVal{}, newErr(Io, err.Error())
		}
		mag, err := readLenPrefixed(r)
		if err != nil {
			return ScVal{}, err
		}
		return ScVal{Kind: ScObjectBigInt, BigInt: &ScBigInt{Negative: neg[0] != 0, Magnitude: mag}}, nil
	case ScObjectVec:
		n, err := readUint32(r)
		if err != nil {
			return ScVal{}, err
		}
		items := make([]ScVal, n)
		for i := range items {
			items[i], err = ReadVal(r)
			if err != nil {
				return ScVal{}, err
			}
		}
		return ScVal{Kind: ScObjectVec, Vec: items}, nil
	case ScObjectMap:
		n, err := readUint32(r)
		if err != nil {
			return ScVal{}, err
		}
		entries := make([]ScMapEntry, n)
		for i := range entries {
			k, err := ReadVal(r)
			if err != nil {
				return ScVal{}, err
			}
			v, err := ReadVal(r)
			if err != nil {
				return ScVal{}, err
			}
			entries[i] = ScMapEntry{Key: k, Val: v}
		}
		return ScVal{Kind: ScObjectMap, Map: entries}, nil
	default:
		return ScVal{}, newErr(Invalid, "unrecognized ScVal wire tag")
	}
}

func statusFrom(buf []byte) host.Status {
	return host.Status{Domain: host.Domain(buf[0]), Code: binary.BigEndian.Uint16(buf[1:3])}
}

func readUint32(r io.Reader) (uint32, error) {
	buf := make([]byte, 4)
	if _, err := io.ReadFull(r, buf); err != nil {
		return 0, newErr(Io, err.Error())
	}
	return binary.BigEndian.Uint32(buf), nil
}

func readUint64(r io.Reader) (uint64, error) {
	buf := make([]byte, 8)
	if _, err := io.ReadFull(r, buf); err != nil {
		return 0, newErr(Io, err.Error())
	}
	return binary.BigEndian.Uint64(buf), nil
}

func readLenPrefixed(r io.Reader) ([]byte, error) {
	n, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, newErr(Io, err.Error())
	}
	return buf, nil
}
