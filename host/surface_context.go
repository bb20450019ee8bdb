package host

// LogValue records msg plus one RawVal argument as a debug event, the
// host-side implementation of a contract's logging intrinsic.
func (h *Host) LogValue(msg string, v RawVal) (RawVal, error) {
	ev := &DebugEvent{Msg: msg}
	ev.WithArg(v)
	h.recordDebugEvent(ev)
	if err := h.budget.Charge(ValXdrConv, 1); err != nil {
		return 0, err
	}
	return Void, nil
}

// LogFmt records msg plus a variable number of RawVal arguments as a
// single debug event, the host-side implementation of a contract's
// formatted-logging intrinsic (guest SDKs expose this as a family of
// log_fmt_0/log_fmt_1/... functions by arity; the host side only needs
// one entry point taking the already-assembled argument list).
func (h *Host) LogFmt(msg string, args []RawVal) (RawVal, error) {
	ev := &DebugEvent{Msg: msg}
	for _, v := range args {
		ev.WithArg(v)
	}
	h.recordDebugEvent(ev)
	if err := h.budget.Charge(ValXdrConv, uint64(len(args))+1); err != nil {
		return 0, err
	}
	return Void, nil
}

// GetInvokingContract returns the contract ID of whoever called into the
// currently running contract.
func (h *Host) GetInvokingContract() ([32]byte, error) {
	return h.getInvokingContractID()
}

// GetCurrentContract returns the contract ID of the currently running
// contract.
func (h *Host) GetCurrentContract() ([32]byte, error) {
	return h.getCurrentContractID()
}

// ContractEvent raises a contract event with the given topics and data,
// scoped to the currently running contract.
func (h *Host) ContractEvent(topics []RawVal, data RawVal) (RawVal, error) {
	cid, err := h.getCurrentContractID()
	if err != nil {
		return 0, err
	}
	if err := h.recordContractEvent(ContractEvent{Type: EventTypeContract, ContractID: cid, Topics: topics, Data: data}); err != nil {
		return 0, err
	}
	if err := h.budget.Charge(ValXdrConv, uint64(len(topics))); err != nil {
		return 0, err
	}
	return Void, nil
}

// SystemEvent raises a host-originated event, distinct from a
// contract-raised ContractEvent in that it carries no particular
// contract's ID: it is the host recording something about an operation
// itself, not something the running contract's code chose to log. Topic
// count and per-topic byte length are validated the same way as
// ContractEvent.
func (h *Host) SystemEvent(topics []RawVal, data RawVal) (RawVal, error) {
	if err := h.recordContractEvent(ContractEvent{Type: EventTypeSystem, Topics: topics, Data: data}); err != nil {
		return 0, err
	}
	if err := h.budget.Charge(ValXdrConv, uint64(len(topics))); err != nil {
		return 0, err
	}
	return Void, nil
}

// ObjCmp compares two RawVals, resolving Object handles through the
// object table rather than comparing raw handle numbers (unlike
// RawVal.Compare's fast path). Variants are ordered first by tag, then
// (for equal tags) by payload; Vec/Map objects compare element-wise /
// entry-wise in order, BigInt compares numerically, Bytes compares
// lexicographically.
func (h *Host) ObjCmp(lhs, rhs RawVal) (int32, error) {
	if lhs.Tag() != rhs.Tag() {
		return int32(lhs.Tag().ordinal() - rhs.Tag().ordinal()), nil
	}
	if lhs.Tag() != TagObject {
		return int32(lhs.Compare(rhs)), nil
	}
	a, err := lhs.AsObject()
	if err != nil {
		return 0, err
	}
	b, err := rhs.AsObject()
	if err != nil {
		return 0, err
	}
	if a.Type != b.Type {
		return int32(a.Type) - int32(b.Type), nil
	}
	ova, err := h.objects.visit(a.Handle, a.Type)
	if err != nil {
		return 0, err
	}
	ovb, err := h.objects.visit(b.Handle, a.Type)
	if err != nil {
		return 0, err
	}
	if err := h.budget.Charge(ValXdrConv, 1); err != nil {
		return 0, err
	}
	switch a.Type {
	case ObjU64:
		return cmpUint64(ova.u64, ovb.u64), nil
	case ObjI64:
		return cmpInt64(ova.i64, ovb.i64), nil
	case ObjBigInt:
		return int32(ova.bigInt.Cmp(ovb.bigInt)), nil
	case ObjBytes, ObjHash, ObjPublicKey:
		return cmpBytesObj(a.Type, ova, ovb), nil
	case ObjVec:
		return cmpVec(ova.vec, ovb.vec), nil
	case ObjMap:
		return cmpMap(ova.omap, ovb.omap), nil
	case ObjContractCode:
		return cmpContractCode(ova.code, ovb.code), nil
	default:
		return 0, nil
	}
}

func cmpUint64(a, b uint64) int32 {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpInt64(a, b int64) int32 {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpBytesSlice(a, b []byte) int32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return cmpUint64(uint64(len(a)), uint64(len(b)))
}

func cmpBytesObj(t ObjectType, a, b *objVal) int32 {
	if t == ObjBytes {
		return cmpBytesSlice(a.bytes.Bytes(), b.bytes.Bytes())
	}
	return cmpBytesSlice(a.hash[:], b.hash[:])
}

func cmpVec(a, b *Vector) int32 {
	n := a.Len()
	if b.Len() < n {
		n = b.Len()
	}
	for i := 0; i < n; i++ {
		av, _ := a.Get(uint32(i))
		bv, _ := b.Get(uint32(i))
		if c := av.Compare(bv); c != 0 {
			return int32(c)
		}
	}
	return cmpUint64(uint64(a.Len()), uint64(b.Len()))
}

func cmpMap(a, b *OrderedMap) int32 {
	ak, bk := a.Keys(), b.Keys()
	n := len(ak)
	if len(bk) < n {
		n = len(bk)
	}
	for i := 0; i < n; i++ {
		if c := ak[i].Compare(bk[i]); c != 0 {
			return int32(c)
		}
		av, _ := a.Get(ak[i])
		bv, _ := b.Get(bk[i])
		if c := av.Compare(bv); c != 0 {
			return int32(c)
		}
	}
	return cmpUint64(uint64(len(ak)), uint64(len(bk)))
}

func cmpContractCode(a, b ContractCode) int32 {
	if a.IsToken != b.IsToken {
		if a.IsToken {
			return -1
		}
		return 1
	}
	return cmpBytesSlice(a.Wasm, b.Wasm)
}

// GetLedgerVersion returns the protocol version a host was constructed
// with.
func (h *Host) GetLedgerVersion() (uint32, error) { return h.ledgerInfo.ProtocolVersion, nil }

// GetLedgerSequence returns the ledger sequence number.
func (h *Host) GetLedgerSequence() (uint32, error) { return h.ledgerInfo.SequenceNumber, nil }

// GetLedgerTimestamp returns the ledger close timestamp.
func (h *Host) GetLedgerTimestamp() (uint64, error) { return h.ledgerInfo.Timestamp, nil }

// GetLedgerNetworkID returns the network passphrase digest a host was
// constructed with, as a new Bytes object.
func (h *Host) GetLedgerNetworkID() (RawVal, error) {
	return h.addBytesObject(h.ledgerInfo.NetworkID[:])
}
