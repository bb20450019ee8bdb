package host

// HostFunctionKind discriminates the two shapes of a top-level
// invocation a driver can submit to the host.
type HostFunctionKind uint8

const (
	// HostFunctionCall invokes an already-installed contract's exported
	// function.
	HostFunctionCall HostFunctionKind = iota
	// HostFunctionCreateContract installs new contract code (WASM or
	// the built-in token) and returns its derived contract ID.
	HostFunctionCreateContract
)

// HostFunction is one top-level operation a driver (cmd/hostctl,
// cmd/hostserver) submits to InvokeFunction.
type HostFunction struct {
	Kind HostFunctionKind

	// Call fields.
	ContractID [32]byte
	Function   Symbol
	Args       []RawVal

	// CreateContract fields.
	FromContract bool // false: ed25519-keyed preimage; true: contract-keyed
	Ed25519Key   [32]byte
	Salt         [32]byte
	WasmCode     []byte
	IsToken      bool
}

// InvocationResult is everything an InvokeFunction call produces:
// whatever the function returned (or the created contract's ID, encoded
// as Bytes), the event log, and final budget usage.
type InvocationResult struct {
	Value      RawVal
	Events     []HostEvent
	CPUUsed    uint64
	MemUsed    uint64
}

// InvokeFunction is the invocation driver: it pushes the outermost
// FrameHostFunction frame, dispatches Call or CreateContract, commits
// storage on success, and always returns the accumulated event log and
// budget usage regardless of outcome.
func (h *Host) InvokeFunction(fn HostFunction) (InvocationResult, error) {
	val, err := h.withFrame(Frame{Kind: FrameHostFunction}, func() (RawVal, error) {
		return h.invokeFunctionRaw(fn)
	})
	result := InvocationResult{
		Value:   val,
		Events:  h.events.All(),
		CPUUsed: h.budget.CPUUsed(),
		MemUsed: h.budget.MemUsed(),
	}
	if err != nil {
		return result, err
	}
	if cerr := h.storage.Commit(); cerr != nil {
		return result, cerr
	}
	return result, nil
}

func (h *Host) invokeFunctionRaw(fn HostFunction) (RawVal, error) {
	switch fn.Kind {
	case HostFunctionCall:
		return h.Call(fn.ContractID, fn.Function, fn.Args)
	case HostFunctionCreateContract:
		return h.invokeCreateContract(fn)
	default:
		return 0, newErr(DomainHostFnError, CodeUnknownFunction, "unknown HostFunction kind")
	}
}

func (h *Host) invokeCreateContract(fn HostFunction) (RawVal, error) {
	var id [32]byte
	var err error
	switch {
	case fn.IsToken && fn.FromContract:
		id, err = h.CreateTokenFromContract(fn.Salt)
	case fn.IsToken && !fn.FromContract:
		id, err = h.CreateTokenFromEd25519(fn.Ed25519Key, fn.Salt)
	case !fn.IsToken && fn.FromContract:
		id, err = h.CreateContractFromContract(fn.Salt, fn.WasmCode)
	default:
		id, err = h.CreateContractFromEd25519(fn.Ed25519Key, fn.Salt, fn.WasmCode)
	}
	if err != nil {
		return 0, err
	}
	return h.addBytesObject(id[:])
}

// wrapEngineError maps an error surfaced by the engine package (wasmer
// trap/instantiation/validation failures) onto the VmError status
// family, preserving the underlying message as the HostError's debug
// event, mirroring events.rs's From<wasmi::Error> table. If the engine
// error already wraps a HostError (a host import call failed and the
// engine propagated it through a trap), that status is preserved
// instead of being flattened to a generic VmError.
func (h *Host) wrapEngineError(err error) *HostError {
	if herr, ok := err.(*HostError); ok {
		return herr
	}
	if ve, ok := err.(interface{ VmCode() uint16 }); ok {
		return newErrf(DomainVmError, ve.VmCode(), "%v", err)
	}
	return newErrf(DomainVmError, CodeVmTrapUnreachable, "%v", err)
}

// Dispatch implements HostImports for the engine package: it maps a
// guest import call (module "env", a function name) onto the
// corresponding *Host method. Only the surface actually reachable from
// the engine's import table needs to be listed here; everything else on
// *Host is called directly by the token contract and by Go tests.
func (hi hostImports) Dispatch(module, name string, args []RawVal) (RawVal, error) {
	if module != "env" {
		return 0, newErrf(DomainHostFnError, CodeUnknownFunction, "unknown import module %q", module)
	}
	h := hi.h
	fn, ok := importTable[name]
	if !ok {
		return 0, newErrf(DomainHostFnError, CodeUnknownFunction, "unknown host function %q", name)
	}
	return fn(h, args)
}

type importFn func(h *Host, args []RawVal) (RawVal, error)

func want(args []RawVal, n int) error {
	if len(args) != n {
		return newErrf(DomainHostFnError, CodeInputArgsWrongLength, "expected %d arguments, got %d", n, len(args))
	}
	return nil
}

// id32FromBytesObj reads a Bytes object's content as a fixed 32-byte
// array, the guest-ABI encoding for any [32]byte host parameter
// (contract IDs, account IDs, ed25519 keys/salts): a WASM function
// signature has no native array type, so these travel as a Bytes object
// handle the same way a byte slice argument does.
func id32FromBytesObj(h *Host, v RawVal) ([32]byte, error) {
	var id [32]byte
	b, err := h.visitBytes(v)
	if err != nil {
		return id, err
	}
	if b.Len() != 32 {
		return id, newErrf(DomainHostFnError, CodeInputArgsInvalid, "expected a 32-byte object, got %d bytes", b.Len())
	}
	copy(id[:], b.Bytes())
	return id, nil
}

func id32ToBytesObj(h *Host, id [32]byte) (RawVal, error) {
	return h.addBytesObject(id[:])
}

// rawValsFromVecObj flattens a Vec object into a plain RawVal slice, the
// guest-ABI encoding for a variable-length RawVal argument list (used by
// call/try_call/contract_event/system_event): a WASM import has a fixed
// arity, so a contract passing a variable number of arguments through
// packs them into a Vec first.
func rawValsFromVecObj(h *Host, v RawVal) ([]RawVal, error) {
	_, vec, err := h.visitVec(v)
	if err != nil {
		return nil, err
	}
	return vec.Items(), nil
}

func stringFromBytesObj(h *Host, v RawVal) (string, error) {
	b, err := h.visitBytes(v)
	if err != nil {
		return "", err
	}
	return string(b.Bytes()), nil
}

// importTable lists the subset of the ~150-function host surface that
// is callable directly from guest WASM with a flat RawVal-in/RawVal-out
// signature. Account and contract ids travel as 32-byte Bytes objects
// (id32FromBytesObj). The linear-memory bridge ops are not in this table
// and the engine adapter has no other bindings, so guest code cannot
// reach them; they are called directly as *Host methods.
var importTable = map[string]importFn{
	"map_new": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 0); err != nil {
			return 0, err
		}
		return h.MapNew()
	},
	"map_put": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 3); err != nil {
			return 0, err
		}
		return h.MapPut(a[0], a[1], a[2])
	},
	"map_get": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 2); err != nil {
			return 0, err
		}
		return h.MapGet(a[0], a[1])
	},
	"map_del": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 2); err != nil {
			return 0, err
		}
		return h.MapDel(a[0], a[1])
	},
	"map_len": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 1); err != nil {
			return 0, err
		}
		n, err := h.MapLen(a[0])
		return FromU32(n), err
	},
	"vec_new": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 0); err != nil {
			return 0, err
		}
		return h.VecNew()
	},
	"vec_push": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 2); err != nil {
			return 0, err
		}
		return h.VecPush(a[0], a[1])
	},
	"vec_get": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 2); err != nil {
			return 0, err
		}
		i, err := a[1].AsU32()
		if err != nil {
			return 0, err
		}
		return h.VecGet(a[0], i)
	},
	"vec_len": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 1); err != nil {
			return 0, err
		}
		n, err := h.VecLen(a[0])
		return FromU32(n), err
	},
	"put_contract_data": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 2); err != nil {
			return 0, err
		}
		return h.PutContractData(a[0], a[1])
	},
	"get_contract_data": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 1); err != nil {
			return 0, err
		}
		return h.GetContractData(a[0])
	},
	"has_contract_data": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 1); err != nil {
			return 0, err
		}
		ok, err := h.HasContractData(a[0])
		return FromBool(ok), err
	},
	"del_contract_data": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 1); err != nil {
			return 0, err
		}
		return h.DelContractData(a[0])
	},
	"serialize_to_binary": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 1); err != nil {
			return 0, err
		}
		return h.SerializeToBinary(a[0])
	},
	"deserialize_from_binary": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 1); err != nil {
			return 0, err
		}
		return h.DeserializeFromBinary(a[0])
	},
	"compute_hash_sha256": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 1); err != nil {
			return 0, err
		}
		return h.ComputeHashSha256(a[0])
	},
	"obj_cmp": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 2); err != nil {
			return 0, err
		}
		c, err := h.ObjCmp(a[0], a[1])
		return FromI32(c), err
	},

	// Map: the remaining key-ordered query surface beyond new/put/get/del/len.
	"map_has": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 2); err != nil {
			return 0, err
		}
		ok, err := h.MapHas(a[0], a[1])
		return FromBool(ok), err
	},
	"map_prev_key": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 2); err != nil {
			return 0, err
		}
		return h.MapPrevKey(a[0], a[1])
	},
	"map_next_key": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 2); err != nil {
			return 0, err
		}
		return h.MapNextKey(a[0], a[1])
	},
	"map_min_key": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 1); err != nil {
			return 0, err
		}
		return h.MapMinKey(a[0])
	},
	"map_max_key": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 1); err != nil {
			return 0, err
		}
		return h.MapMaxKey(a[0])
	},
	"map_keys": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 1); err != nil {
			return 0, err
		}
		return h.MapKeys(a[0])
	},
	"map_values": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 1); err != nil {
			return 0, err
		}
		return h.MapValues(a[0])
	},

	// Vec: the remaining mutation/query surface beyond new/push/get/len.
	"vec_put": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 3); err != nil {
			return 0, err
		}
		i, err := a[1].AsU32()
		if err != nil {
			return 0, err
		}
		return h.VecPut(a[0], i, a[2])
	},
	"vec_del": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 2); err != nil {
			return 0, err
		}
		i, err := a[1].AsU32()
		if err != nil {
			return 0, err
		}
		return h.VecDel(a[0], i)
	},
	"vec_pop": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 1); err != nil {
			return 0, err
		}
		return h.VecPop(a[0])
	},
	"vec_front": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 1); err != nil {
			return 0, err
		}
		return h.VecFront(a[0])
	},
	"vec_back": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 1); err != nil {
			return 0, err
		}
		return h.VecBack(a[0])
	},
	"vec_insert": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 3); err != nil {
			return 0, err
		}
		i, err := a[1].AsU32()
		if err != nil {
			return 0, err
		}
		return h.VecInsert(a[0], i, a[2])
	},
	"vec_append": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 2); err != nil {
			return 0, err
		}
		return h.VecAppend(a[0], a[1])
	},
	"vec_slice": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 3); err != nil {
			return 0, err
		}
		start, err := a[1].AsU32()
		if err != nil {
			return 0, err
		}
		end, err := a[2].AsU32()
		if err != nil {
			return 0, err
		}
		return h.VecSlice(a[0], start, end)
	},

	// Bytes: the byte-at-a-time/slice surface. The linear-memory bridge
	// (BytesCopyToLinearMemory/FromLinearMemory) is not listed here and
	// is not exposed to guest code.
	"bytes_new": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 0); err != nil {
			return 0, err
		}
		return h.BytesNew()
	},
	"bytes_len": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 1); err != nil {
			return 0, err
		}
		n, err := h.BytesLen(a[0])
		return FromU32(n), err
	},
	"bytes_get": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 2); err != nil {
			return 0, err
		}
		i, err := a[1].AsU32()
		if err != nil {
			return 0, err
		}
		b, err := h.BytesGet(a[0], i)
		return FromU32(uint32(b)), err
	},
	"bytes_put": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 3); err != nil {
			return 0, err
		}
		i, err := a[1].AsU32()
		if err != nil {
			return 0, err
		}
		val, err := a[2].AsU32()
		if err != nil {
			return 0, err
		}
		if err := h.BytesPut(a[0], i, uint8(val)); err != nil {
			return 0, err
		}
		return a[0], nil
	},
	"bytes_del": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 2); err != nil {
			return 0, err
		}
		i, err := a[1].AsU32()
		if err != nil {
			return 0, err
		}
		if err := h.BytesDel(a[0], i); err != nil {
			return 0, err
		}
		return a[0], nil
	},
	"bytes_push": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 2); err != nil {
			return 0, err
		}
		val, err := a[1].AsU32()
		if err != nil {
			return 0, err
		}
		if err := h.BytesPush(a[0], uint8(val)); err != nil {
			return 0, err
		}
		return a[0], nil
	},
	"bytes_pop": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 1); err != nil {
			return 0, err
		}
		if err := h.BytesPop(a[0]); err != nil {
			return 0, err
		}
		return a[0], nil
	},
	"bytes_slice": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 3); err != nil {
			return 0, err
		}
		start, err := a[1].AsU32()
		if err != nil {
			return 0, err
		}
		end, err := a[2].AsU32()
		if err != nil {
			return 0, err
		}
		return h.BytesSlice(a[0], start, end)
	},
	"bytes_append": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 2); err != nil {
			return 0, err
		}
		return h.BytesAppend(a[0], a[1])
	},

	// BigInt: the full arbitrary-precision integer surface. from_u64/
	// from_i64 take, and to_u64/to_i64 return, their 64-bit scalar as a
	// U64/I64 Object (ObjToU64/ObjFromU64 and the I64 pair), since a
	// RawVal's immediate payload is only 32 bits wide.
	"bigint_from_u64": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 1); err != nil {
			return 0, err
		}
		u, err := h.ObjToU64(a[0])
		if err != nil {
			return 0, err
		}
		return h.BigIntFromU64(u)
	},
	"bigint_from_i64": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 1); err != nil {
			return 0, err
		}
		i, err := h.ObjToI64(a[0])
		if err != nil {
			return 0, err
		}
		return h.BigIntFromI64(i)
	},
	"bigint_to_u64": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 1); err != nil {
			return 0, err
		}
		u, err := h.BigIntToU64(a[0])
		if err != nil {
			return 0, err
		}
		return h.ObjFromU64(u)
	},
	"bigint_to_i64": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 1); err != nil {
			return 0, err
		}
		i, err := h.BigIntToI64(a[0])
		if err != nil {
			return 0, err
		}
		return h.ObjFromI64(i)
	},
	"bigint_add": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 2); err != nil {
			return 0, err
		}
		return h.BigIntAdd(a[0], a[1])
	},
	"bigint_sub": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 2); err != nil {
			return 0, err
		}
		return h.BigIntSub(a[0], a[1])
	},
	"bigint_mul": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 2); err != nil {
			return 0, err
		}
		return h.BigIntMul(a[0], a[1])
	},
	"bigint_div": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 2); err != nil {
			return 0, err
		}
		return h.BigIntDiv(a[0], a[1])
	},
	"bigint_rem": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 2); err != nil {
			return 0, err
		}
		return h.BigIntRem(a[0], a[1])
	},
	"bigint_and": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 2); err != nil {
			return 0, err
		}
		return h.BigIntAnd(a[0], a[1])
	},
	"bigint_or": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 2); err != nil {
			return 0, err
		}
		return h.BigIntOr(a[0], a[1])
	},
	"bigint_xor": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 2); err != nil {
			return 0, err
		}
		return h.BigIntXor(a[0], a[1])
	},
	"bigint_shl": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 2); err != nil {
			return 0, err
		}
		bits, err := a[1].AsU32()
		if err != nil {
			return 0, err
		}
		return h.BigIntShl(a[0], bits)
	},
	"bigint_shr": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 2); err != nil {
			return 0, err
		}
		bits, err := a[1].AsU32()
		if err != nil {
			return 0, err
		}
		return h.BigIntShr(a[0], bits)
	},
	"bigint_cmp": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 2); err != nil {
			return 0, err
		}
		c, err := h.BigIntCmp(a[0], a[1])
		return FromI32(c), err
	},
	"bigint_is_zero": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 1); err != nil {
			return 0, err
		}
		z, err := h.BigIntIsZero(a[0])
		return FromBool(z), err
	},
	"bigint_neg": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 1); err != nil {
			return 0, err
		}
		return h.BigIntNeg(a[0])
	},
	"bigint_not": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 1); err != nil {
			return 0, err
		}
		return h.BigIntNot(a[0])
	},
	"bigint_gcd": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 2); err != nil {
			return 0, err
		}
		return h.BigIntGcd(a[0], a[1])
	},
	"bigint_lcm": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 2); err != nil {
			return 0, err
		}
		return h.BigIntLcm(a[0], a[1])
	},
	"bigint_pow": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 2); err != nil {
			return 0, err
		}
		return h.BigIntPow(a[0], a[1])
	},
	"bigint_pow_mod": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 3); err != nil {
			return 0, err
		}
		return h.BigIntPowMod(a[0], a[1], a[2])
	},
	"bigint_sqrt": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 1); err != nil {
			return 0, err
		}
		return h.BigIntSqrt(a[0])
	},
	"bigint_bits": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 1); err != nil {
			return 0, err
		}
		n, err := h.BigIntBits(a[0])
		if err != nil {
			return 0, err
		}
		return h.ObjFromU64(n)
	},
	"bigint_to_bytes_be": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 1); err != nil {
			return 0, err
		}
		return h.BigIntToBytesBE(a[0])
	},
	"bigint_from_bytes_be": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 1); err != nil {
			return 0, err
		}
		return h.BigIntFromBytesBE(a[0])
	},
	"bigint_to_radix_be": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 2); err != nil {
			return 0, err
		}
		radix, err := a[1].AsU32()
		if err != nil {
			return 0, err
		}
		return h.BigIntToRadixBE(a[0], radix)
	},

	// Cross-contract invocation: args travel packed into a Vec object
	// since a WASM import has fixed arity and cannot take a variable
	// number of RawVal arguments directly.
	"call": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 3); err != nil {
			return 0, err
		}
		id, err := id32FromBytesObj(h, a[0])
		if err != nil {
			return 0, err
		}
		fn, err := a[1].AsSymbol()
		if err != nil {
			return 0, err
		}
		args, err := rawValsFromVecObj(h, a[2])
		if err != nil {
			return 0, err
		}
		return h.Call(id, fn, args)
	},
	"try_call": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 3); err != nil {
			return 0, err
		}
		id, err := id32FromBytesObj(h, a[0])
		if err != nil {
			return 0, err
		}
		fn, err := a[1].AsSymbol()
		if err != nil {
			return 0, err
		}
		args, err := rawValsFromVecObj(h, a[2])
		if err != nil {
			return 0, err
		}
		return h.TryCall(id, fn, args), nil
	},

	// Contract/token installation: ed25519 keys, salts, and wasm code all
	// travel as Bytes objects, the guest-ABI encoding for any fixed- or
	// variable-length byte payload.
	"create_contract_from_ed25519": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 3); err != nil {
			return 0, err
		}
		key, err := id32FromBytesObj(h, a[0])
		if err != nil {
			return 0, err
		}
		salt, err := id32FromBytesObj(h, a[1])
		if err != nil {
			return 0, err
		}
		wasm, err := h.visitBytes(a[2])
		if err != nil {
			return 0, err
		}
		id, err := h.CreateContractFromEd25519(key, salt, wasm.Bytes())
		if err != nil {
			return 0, err
		}
		return id32ToBytesObj(h, id)
	},
	"create_contract_from_contract": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 2); err != nil {
			return 0, err
		}
		salt, err := id32FromBytesObj(h, a[0])
		if err != nil {
			return 0, err
		}
		wasm, err := h.visitBytes(a[1])
		if err != nil {
			return 0, err
		}
		id, err := h.CreateContractFromContract(salt, wasm.Bytes())
		if err != nil {
			return 0, err
		}
		return id32ToBytesObj(h, id)
	},
	"create_token_from_ed25519": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 2); err != nil {
			return 0, err
		}
		key, err := id32FromBytesObj(h, a[0])
		if err != nil {
			return 0, err
		}
		salt, err := id32FromBytesObj(h, a[1])
		if err != nil {
			return 0, err
		}
		id, err := h.CreateTokenFromEd25519(key, salt)
		if err != nil {
			return 0, err
		}
		return id32ToBytesObj(h, id)
	},
	"create_token_from_contract": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 1); err != nil {
			return 0, err
		}
		salt, err := id32FromBytesObj(h, a[0])
		if err != nil {
			return 0, err
		}
		id, err := h.CreateTokenFromContract(salt)
		if err != nil {
			return 0, err
		}
		return id32ToBytesObj(h, id)
	},

	// Crypto.
	"verify_sig_ed25519": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 3); err != nil {
			return 0, err
		}
		return h.VerifySigEd25519(a[0], a[1], a[2])
	},

	// Accounts.
	"account_get_low_threshold": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 1); err != nil {
			return 0, err
		}
		id, err := id32FromBytesObj(h, a[0])
		if err != nil {
			return 0, err
		}
		n, err := h.AccountGetLowThreshold(id)
		return FromU32(n), err
	},
	"account_get_medium_threshold": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 1); err != nil {
			return 0, err
		}
		id, err := id32FromBytesObj(h, a[0])
		if err != nil {
			return 0, err
		}
		n, err := h.AccountGetMediumThreshold(id)
		return FromU32(n), err
	},
	"account_get_high_threshold": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 1); err != nil {
			return 0, err
		}
		id, err := id32FromBytesObj(h, a[0])
		if err != nil {
			return 0, err
		}
		n, err := h.AccountGetHighThreshold(id)
		return FromU32(n), err
	},
	"account_get_signer_weight": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 2); err != nil {
			return 0, err
		}
		id, err := id32FromBytesObj(h, a[0])
		if err != nil {
			return 0, err
		}
		signer, err := id32FromBytesObj(h, a[1])
		if err != nil {
			return 0, err
		}
		n, err := h.AccountGetSignerWeight(id, signer)
		return FromU32(n), err
	},

	// Context and logging.
	"log_value": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 1); err != nil {
			return 0, err
		}
		return h.LogValue("log", a[0])
	},
	"log_fmt": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 2); err != nil {
			return 0, err
		}
		msg, err := stringFromBytesObj(h, a[0])
		if err != nil {
			return 0, err
		}
		args, err := rawValsFromVecObj(h, a[1])
		if err != nil {
			return 0, err
		}
		return h.LogFmt(msg, args)
	},
	"get_invoking_contract": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 0); err != nil {
			return 0, err
		}
		id, err := h.GetInvokingContract()
		if err != nil {
			return 0, err
		}
		return id32ToBytesObj(h, id)
	},
	"get_current_contract": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 0); err != nil {
			return 0, err
		}
		id, err := h.GetCurrentContract()
		if err != nil {
			return 0, err
		}
		return id32ToBytesObj(h, id)
	},
	"contract_event": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 2); err != nil {
			return 0, err
		}
		topics, err := rawValsFromVecObj(h, a[0])
		if err != nil {
			return 0, err
		}
		return h.ContractEvent(topics, a[1])
	},
	"system_event": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 2); err != nil {
			return 0, err
		}
		topics, err := rawValsFromVecObj(h, a[0])
		if err != nil {
			return 0, err
		}
		return h.SystemEvent(topics, a[1])
	},
	"get_ledger_version": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 0); err != nil {
			return 0, err
		}
		n, err := h.GetLedgerVersion()
		return FromU32(n), err
	},
	"get_ledger_sequence": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 0); err != nil {
			return 0, err
		}
		n, err := h.GetLedgerSequence()
		return FromU32(n), err
	},
	"get_ledger_timestamp": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 0); err != nil {
			return 0, err
		}
		ts, err := h.GetLedgerTimestamp()
		if err != nil {
			return 0, err
		}
		return h.ObjFromU64(ts)
	},
	"get_ledger_network_id": func(h *Host, a []RawVal) (RawVal, error) {
		if err := want(a, 0); err != nil {
			return 0, err
		}
		return h.GetLedgerNetworkID()
	},
}
