package host

import "encoding/binary"

// contractDataKey derives the LedgerKey a contract's keyed storage entry
// lives under: the owning contract ID plus an encoding of key. Scalar
// RawVals (Void/Bool/U32/I32/Symbol/Status) already carry their value
// directly in their bit pattern, which is stable, but an Object RawVal's
// bits are just a handle into this Host's object table - two
// separately-allocated Bytes objects holding identical content get
// different handles, so a Bytes key is resolved through the object table
// and encoded by its content. Any other Object key is encoded by its raw
// handle bits.
func (h *Host) contractDataKey(contractID [32]byte, key RawVal) (LedgerKey, error) {
	buf := make([]byte, 0, 32+9)
	buf = append(buf, contractID[:]...)
	if obj, err := key.AsObject(); err == nil && obj.Type == ObjBytes {
		b, err := h.visitBytes(key)
		if err != nil {
			return "", err
		}
		buf = append(buf, 'B')
		buf = append(buf, b.Bytes()...)
		return LedgerKey(buf), nil
	}
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, uint64(key))
	buf = append(buf, 'S')
	buf = append(buf, raw...)
	return LedgerKey(buf), nil
}

// PutContractData stores val under key, scoped to the currently running
// contract.
func (h *Host) PutContractData(key, val RawVal) (RawVal, error) {
	cid, err := h.getCurrentContractID()
	if err != nil {
		return 0, err
	}
	size := uint64(1)
	if obj, oerr := val.AsObject(); oerr == nil {
		if ov, verr := h.objects.visitAny(obj.Handle); verr == nil {
			size = objApproxSize(ov)
		}
	}
	if err := h.budget.Charge(ValXdrConv, size); err != nil {
		return 0, err
	}
	entry, err := h.encodeStorageEntry(val)
	if err != nil {
		return 0, err
	}
	lk, err := h.contractDataKey(cid, key)
	if err != nil {
		return 0, err
	}
	if err := h.storage.Put(lk, entry); err != nil {
		return 0, err
	}
	return Void, nil
}

// HasContractData reports whether key has a live entry for the
// currently running contract.
func (h *Host) HasContractData(key RawVal) (bool, error) {
	cid, err := h.getCurrentContractID()
	if err != nil {
		return false, err
	}
	lk, err := h.contractDataKey(cid, key)
	if err != nil {
		return false, err
	}
	return h.storage.Has(lk)
}

// GetContractData returns the value stored under key for the currently
// running contract.
func (h *Host) GetContractData(key RawVal) (RawVal, error) {
	cid, err := h.getCurrentContractID()
	if err != nil {
		return 0, err
	}
	lk, err := h.contractDataKey(cid, key)
	if err != nil {
		return 0, err
	}
	entry, err := h.storage.Get(lk)
	if err != nil {
		return 0, newErr(DomainHostStorageError, CodeExpectContractData, "no contract data for key")
	}
	if err := h.budget.Charge(ValXdrConv, uint64(len(entry))); err != nil {
		return 0, err
	}
	return h.decodeStorageEntry(entry)
}

// DelContractData removes the entry under key for the currently running
// contract.
func (h *Host) DelContractData(key RawVal) (RawVal, error) {
	cid, err := h.getCurrentContractID()
	if err != nil {
		return 0, err
	}
	lk, err := h.contractDataKey(cid, key)
	if err != nil {
		return 0, err
	}
	if err := h.storage.Del(lk); err != nil {
		return 0, err
	}
	return Void, nil
}

// encodeStorageEntry/decodeStorageEntry serialize a RawVal to and from the
// LedgerEntry byte form Storage persists, using the wire format of
// SerializeToBinary/DeserializeFromBinary. Object-tagged values are only
// meaningful within one host's object table, so they are stored by
// content rather than by handle; decoding allocates fresh objects.
func (h *Host) encodeStorageEntry(v RawVal) (LedgerEntry, error) {
	data, err := h.serializeRawVal(v)
	if err != nil {
		return nil, err
	}
	return LedgerEntry(data), nil
}

func (h *Host) decodeStorageEntry(e LedgerEntry) (RawVal, error) {
	v, n, err := h.deserializeRawVal(e)
	if err != nil || n != len(e) {
		return 0, newErr(DomainHostStorageError, CodeExpectContractData, "corrupt contract data entry")
	}
	return v, nil
}
