package host

func (h *Host) addMapObject(m *OrderedMap) (RawVal, error) {
	if err := h.budget.Charge(HostObjAlloc, uint64(m.Len())); err != nil {
		return 0, err
	}
	handle, err := h.objects.add(objVal{typ: ObjMap, omap: m})
	if err != nil {
		return 0, err
	}
	return FromObject(Object{Type: ObjMap, Handle: handle}), nil
}

func (h *Host) visitMap(v RawVal) (uint32, *OrderedMap, error) {
	obj, err := v.AsObject()
	if err != nil {
		return 0, nil, err
	}
	ov, err := h.objects.visit(obj.Handle, ObjMap)
	if err != nil {
		return 0, nil, err
	}
	return obj.Handle, ov.omap, nil
}

// MapNew allocates a new empty map object.
func (h *Host) MapNew() (RawVal, error) { return h.addMapObject(NewOrderedMap()) }

// MapPut inserts or replaces key -> val in the map, in place (the handle
// is preserved; contracts observe map_put as mutating the object they
// hold a reference to, matching host.rs's semantics).
func (h *Host) MapPut(v RawVal, key, val RawVal) (RawVal, error) {
	handle, m, err := h.visitMap(v)
	if err != nil {
		return 0, err
	}
	if err := h.budget.Charge(HostMapOp, uint64(m.Len())); err != nil {
		return 0, err
	}
	m2 := m.Put(key, val)
	ov, _ := h.objects.visit(handle, ObjMap)
	ov.omap = m2
	return v, nil
}

// MapGet returns the value stored at key.
func (h *Host) MapGet(v RawVal, key RawVal) (RawVal, error) {
	_, m, err := h.visitMap(v)
	if err != nil {
		return 0, err
	}
	if err := h.budget.Charge(HostMapOp, uint64(m.Len())); err != nil {
		return 0, err
	}
	val, ok := m.Get(key)
	if !ok {
		return 0, newErr(DomainHostObjError, CodeMapKeyNotFound, "map key not found")
	}
	return val, nil
}

// MapDel removes key from the map.
func (h *Host) MapDel(v RawVal, key RawVal) (RawVal, error) {
	handle, m, err := h.visitMap(v)
	if err != nil {
		return 0, err
	}
	if err := h.budget.Charge(HostMapOp, uint64(m.Len())); err != nil {
		return 0, err
	}
	m2, ok := m.Del(key)
	if !ok {
		return 0, newErr(DomainHostObjError, CodeMapKeyNotFound, "map key not found")
	}
	ov, _ := h.objects.visit(handle, ObjMap)
	ov.omap = m2
	return v, nil
}

// MapLen returns the number of entries in the map.
func (h *Host) MapLen(v RawVal) (uint32, error) {
	_, m, err := h.visitMap(v)
	if err != nil {
		return 0, err
	}
	return uint32(m.Len()), nil
}

// MapHas reports whether key is present in the map.
func (h *Host) MapHas(v RawVal, key RawVal) (bool, error) {
	_, m, err := h.visitMap(v)
	if err != nil {
		return false, err
	}
	if err := h.budget.Charge(HostMapOp, uint64(m.Len())); err != nil {
		return false, err
	}
	return m.Has(key), nil
}

// MapPrevKey returns the greatest key strictly less than key.
func (h *Host) MapPrevKey(v RawVal, key RawVal) (RawVal, error) {
	_, m, err := h.visitMap(v)
	if err != nil {
		return 0, err
	}
	if err := h.budget.Charge(HostMapOp, uint64(m.Len())); err != nil {
		return 0, err
	}
	return m.PrevKey(key)
}

// MapNextKey returns the least key strictly greater than key.
func (h *Host) MapNextKey(v RawVal, key RawVal) (RawVal, error) {
	_, m, err := h.visitMap(v)
	if err != nil {
		return 0, err
	}
	if err := h.budget.Charge(HostMapOp, uint64(m.Len())); err != nil {
		return 0, err
	}
	return m.NextKey(key)
}

// MapMinKey returns the smallest key in the map.
func (h *Host) MapMinKey(v RawVal) (RawVal, error) {
	_, m, err := h.visitMap(v)
	if err != nil {
		return 0, err
	}
	return m.MinKey()
}

// MapMaxKey returns the largest key in the map.
func (h *Host) MapMaxKey(v RawVal) (RawVal, error) {
	_, m, err := h.visitMap(v)
	if err != nil {
		return 0, err
	}
	return m.MaxKey()
}

// MapKeys returns a new Vector object holding the map's keys in order.
func (h *Host) MapKeys(v RawVal) (RawVal, error) {
	_, m, err := h.visitMap(v)
	if err != nil {
		return 0, err
	}
	if err := h.budget.Charge(HostMapOp, uint64(m.Len())); err != nil {
		return 0, err
	}
	return h.addVecObject(VectorFrom(m.Keys()))
}

// MapValues returns a new Vector object holding the map's values, in key
// order.
func (h *Host) MapValues(v RawVal) (RawVal, error) {
	_, m, err := h.visitMap(v)
	if err != nil {
		return 0, err
	}
	if err := h.budget.Charge(HostMapOp, uint64(m.Len())); err != nil {
		return 0, err
	}
	return h.addVecObject(VectorFrom(m.Values()))
}
