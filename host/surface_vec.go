package host

func (h *Host) addVecObject(vec *Vector) (RawVal, error) {
	if err := h.budget.Charge(HostObjAlloc, uint64(vec.Len())); err != nil {
		return 0, err
	}
	handle, err := h.objects.add(objVal{typ: ObjVec, vec: vec})
	if err != nil {
		return 0, err
	}
	return FromObject(Object{Type: ObjVec, Handle: handle}), nil
}

func (h *Host) visitVec(v RawVal) (uint32, *Vector, error) {
	obj, err := v.AsObject()
	if err != nil {
		return 0, nil, err
	}
	ov, err := h.objects.visit(obj.Handle, ObjVec)
	if err != nil {
		return 0, nil, err
	}
	return obj.Handle, ov.vec, nil
}

// VecNew allocates a new empty vector object.
func (h *Host) VecNew() (RawVal, error) { return h.addVecObject(NewVector()) }

// VecPut replaces the element at index i, in place.
func (h *Host) VecPut(v RawVal, i uint32, val RawVal) (RawVal, error) {
	_, vec, err := h.visitVec(v)
	if err != nil {
		return 0, err
	}
	if err := h.budget.Charge(HostVecOp, uint64(vec.Len())); err != nil {
		return 0, err
	}
	if err := vec.Put(i, val); err != nil {
		return 0, err
	}
	return v, nil
}

// VecGet returns the element at index i.
func (h *Host) VecGet(v RawVal, i uint32) (RawVal, error) {
	_, vec, err := h.visitVec(v)
	if err != nil {
		return 0, err
	}
	if err := h.budget.Charge(HostVecOp, uint64(vec.Len())); err != nil {
		return 0, err
	}
	return vec.Get(i)
}

// VecDel removes the element at index i.
func (h *Host) VecDel(v RawVal, i uint32) (RawVal, error) {
	_, vec, err := h.visitVec(v)
	if err != nil {
		return 0, err
	}
	if err := h.budget.Charge(HostVecOp, uint64(vec.Len())); err != nil {
		return 0, err
	}
	if err := vec.Del(i); err != nil {
		return 0, err
	}
	return v, nil
}

// VecLen returns the number of elements in the vector.
func (h *Host) VecLen(v RawVal) (uint32, error) {
	_, vec, err := h.visitVec(v)
	if err != nil {
		return 0, err
	}
	return uint32(vec.Len()), nil
}

// VecPush appends val.
func (h *Host) VecPush(v RawVal, val RawVal) (RawVal, error) {
	_, vec, err := h.visitVec(v)
	if err != nil {
		return 0, err
	}
	if err := h.budget.Charge(HostVecOp, uint64(vec.Len())); err != nil {
		return 0, err
	}
	vec.Push(val)
	return v, nil
}

// VecPop removes the last element.
func (h *Host) VecPop(v RawVal) (RawVal, error) {
	_, vec, err := h.visitVec(v)
	if err != nil {
		return 0, err
	}
	if err := h.budget.Charge(HostVecOp, uint64(vec.Len())); err != nil {
		return 0, err
	}
	if err := vec.Pop(); err != nil {
		return 0, err
	}
	return v, nil
}

// VecFront returns the first element.
func (h *Host) VecFront(v RawVal) (RawVal, error) {
	_, vec, err := h.visitVec(v)
	if err != nil {
		return 0, err
	}
	return vec.Front()
}

// VecBack returns the last element.
func (h *Host) VecBack(v RawVal) (RawVal, error) {
	_, vec, err := h.visitVec(v)
	if err != nil {
		return 0, err
	}
	return vec.Back()
}

// VecInsert inserts val at index i, shifting subsequent elements up.
func (h *Host) VecInsert(v RawVal, i uint32, val RawVal) (RawVal, error) {
	_, vec, err := h.visitVec(v)
	if err != nil {
		return 0, err
	}
	if err := h.budget.Charge(HostVecOp, uint64(vec.Len())); err != nil {
		return 0, err
	}
	if err := vec.Insert(i, val); err != nil {
		return 0, err
	}
	return v, nil
}

// VecAppend concatenates rhs onto lhs, returning a new Vector object.
func (h *Host) VecAppend(lhs, rhs RawVal) (RawVal, error) {
	_, a, err := h.visitVec(lhs)
	if err != nil {
		return 0, err
	}
	_, b, err := h.visitVec(rhs)
	if err != nil {
		return 0, err
	}
	if err := h.budget.Charge(HostVecOp, uint64(a.Len()+b.Len())); err != nil {
		return 0, err
	}
	return h.addVecObject(a.Append(b))
}

// VecSlice returns a new Vector object holding [start, end).
func (h *Host) VecSlice(v RawVal, start, end uint32) (RawVal, error) {
	_, vec, err := h.visitVec(v)
	if err != nil {
		return 0, err
	}
	sliced, err := vec.Slice(start, end)
	if err != nil {
		return 0, err
	}
	if err := h.budget.Charge(HostVecOp, uint64(sliced.Len())); err != nil {
		return 0, err
	}
	return h.addVecObject(sliced)
}
