package host

// CostType names a category of metered work. Costs are linear in an
// input size: charge = Const + Linear*input. Compared to the Rust host's
// much finer-grained enum (one variant per allocation site), this
// consolidates related per-container operations (map/vec get/put/del/...)
// into one CostType scaled by the container's size, since spec.md only
// requires charging to scale with size and category, not an exhaustive
// per-call-site tag. Allocation, serialization, bytes, crypto, and frame
// guard costs keep their own named types since spec.md calls those out
// individually.
type CostType uint8

const (
	// WasmInsnExec is the category for guest WASM instructions executed.
	// The wasmer adapter reports no instruction counts, so nothing
	// charges it.
	WasmInsnExec CostType = iota
	// WasmMemAlloc charges per byte of guest linear memory touched.
	WasmMemAlloc
	// HostObjAlloc charges for allocating a new object table cell, scaled
	// by the approximate byte size of the stored payload.
	HostObjAlloc
	// HostMapOp charges for OrderedMap operations, scaled by map size
	// (these are O(log n) but charged O(n) conservatively, matching the
	// Rust host's documented conservative-bound policy).
	HostMapOp
	// HostVecOp charges for Vector operations, scaled by vector size.
	HostVecOp
	// HostBytesOp charges for Bytes operations, scaled by buffer length.
	HostBytesOp
	// HostBigIntOp charges for BigInt operations, scaled by operand
	// digit-length in u64 words.
	HostBigIntOp
	// ValXdrConv charges for RawVal<->ScVal / Object<->ScObject
	// conversions, scaled by the serialized size of the value.
	ValXdrConv
	// ValSer charges for explicit serialize_to_binary/deserialize_from_binary.
	ValSer
	// ComputeSha256Hash charges for a SHA-256 hash, scaled by input length.
	ComputeSha256Hash
	// ComputeEd25519PubKeySig charges for an Ed25519 signature verification.
	ComputeEd25519PubKeySig
	// GuardFrame charges a small constant for each frame push; popping a
	// frame is not charged.
	GuardFrame

	numCostTypes
)

func (c CostType) String() string {
	switch c {
	case WasmInsnExec:
		return "WasmInsnExec"
	case WasmMemAlloc:
		return "WasmMemAlloc"
	case HostObjAlloc:
		return "HostObjAlloc"
	case HostMapOp:
		return "HostMapOp"
	case HostVecOp:
		return "HostVecOp"
	case HostBytesOp:
		return "HostBytesOp"
	case HostBigIntOp:
		return "HostBigIntOp"
	case ValXdrConv:
		return "ValXdrConv"
	case ValSer:
		return "ValSer"
	case ComputeSha256Hash:
		return "ComputeSha256Hash"
	case ComputeEd25519PubKeySig:
		return "ComputeEd25519PubKeySig"
	case GuardFrame:
		return "GuardFrame"
	default:
		return "Unknown"
	}
}

// CostModelParams is the linear cost model for a single CostType:
// charge(input) = Const + Linear*input.
type CostModelParams struct {
	Const  uint64
	Linear uint64
}

// CostModel maps each CostType to its linear coefficients, plus an
// overall CPU and memory limit.
type CostModel struct {
	Params    [numCostTypes]CostModelParams
	CPULimit  uint64
	MemLimit  uint64
}

// DefaultCostModel returns coefficients in the same spirit as the Rust
// host's shipped defaults: cheap constant-time ops, linear scaling for
// container and crypto operations, a generous but finite budget.
func DefaultCostModel() CostModel {
	var m CostModel
	m.Params[WasmInsnExec] = CostModelParams{Const: 0, Linear: 1}
	m.Params[WasmMemAlloc] = CostModelParams{Const: 0, Linear: 1}
	m.Params[HostObjAlloc] = CostModelParams{Const: 8, Linear: 1}
	m.Params[HostMapOp] = CostModelParams{Const: 4, Linear: 2}
	m.Params[HostVecOp] = CostModelParams{Const: 4, Linear: 1}
	m.Params[HostBytesOp] = CostModelParams{Const: 2, Linear: 1}
	m.Params[HostBigIntOp] = CostModelParams{Const: 4, Linear: 4}
	m.Params[ValXdrConv] = CostModelParams{Const: 10, Linear: 2}
	m.Params[ValSer] = CostModelParams{Const: 10, Linear: 2}
	m.Params[ComputeSha256Hash] = CostModelParams{Const: 20, Linear: 1}
	m.Params[ComputeEd25519PubKeySig] = CostModelParams{Const: 200, Linear: 1}
	m.Params[GuardFrame] = CostModelParams{Const: 2, Linear: 0}
	m.CPULimit = 100_000_000
	m.MemLimit = 100 * 1024 * 1024
	return m
}
