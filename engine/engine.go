// Package engine adapts github.com/wasmerio/wasmer-go/wasmer to the
// host package's WasmEngine/WasmInstance/LinearMemory interfaces, so the
// host core never imports a WASM runtime directly.
package engine

import (
	"fmt"

	"github.com/wasmerio/wasmer-go/wasmer"

	"soroban-host/host"
)

// importArity lists, for each "env" import the host surface exposes to
// guest code, how many i64 (RawVal) parameters it takes. wasmer-go needs
// a concrete wasmer.FunctionType per import, so the generic
// host.HostImports.Dispatch(module, name, args) call has to be wrapped
// once per distinct arity here rather than forwarded as one variadic
// trampoline.
var importArity = map[string]int{
	"map_new":                 0,
	"map_put":                 3,
	"map_get":                 2,
	"map_del":                 2,
	"map_len":                 1,
	"vec_new":                 0,
	"vec_push":                2,
	"vec_get":                 2,
	"vec_len":                 1,
	"put_contract_data":       2,
	"get_contract_data":       1,
	"has_contract_data":       1,
	"del_contract_data":       1,
	"serialize_to_binary":     1,
	"deserialize_from_binary": 1,
	"compute_hash_sha256":     1,
	"obj_cmp":                 2,

	"map_has":      2,
	"map_prev_key": 2,
	"map_next_key": 2,
	"map_min_key":  1,
	"map_max_key":  1,
	"map_keys":     1,
	"map_values":   1,

	"vec_put":    3,
	"vec_del":    2,
	"vec_pop":    1,
	"vec_front":  1,
	"vec_back":   1,
	"vec_insert": 3,
	"vec_append": 2,
	"vec_slice":  3,

	"bytes_new":    0,
	"bytes_len":    1,
	"bytes_get":    2,
	"bytes_put":    3,
	"bytes_del":    2,
	"bytes_push":   2,
	"bytes_pop":    1,
	"bytes_slice":  3,
	"bytes_append": 2,

	"bigint_from_u64":     1,
	"bigint_from_i64":     1,
	"bigint_to_u64":       1,
	"bigint_to_i64":       1,
	"bigint_add":          2,
	"bigint_sub":          2,
	"bigint_mul":          2,
	"bigint_div":          2,
	"bigint_rem":          2,
	"bigint_and":          2,
	"bigint_or":           2,
	"bigint_xor":          2,
	"bigint_shl":          2,
	"bigint_shr":          2,
	"bigint_cmp":          2,
	"bigint_is_zero":      1,
	"bigint_neg":          1,
	"bigint_not":          1,
	"bigint_gcd":          2,
	"bigint_lcm":          2,
	"bigint_pow":          2,
	"bigint_pow_mod":      3,
	"bigint_sqrt":         1,
	"bigint_bits":         1,
	"bigint_to_bytes_be":  1,
	"bigint_from_bytes_be": 1,
	"bigint_to_radix_be":  2,

	"call":     3,
	"try_call": 3,

	"create_contract_from_ed25519":  3,
	"create_contract_from_contract": 2,
	"create_token_from_ed25519":     2,
	"create_token_from_contract":    1,

	"verify_sig_ed25519": 3,

	"account_get_low_threshold":    1,
	"account_get_medium_threshold": 1,
	"account_get_high_threshold":   1,
	"account_get_signer_weight":    2,

	"log_value":             1,
	"log_fmt":                2,
	"get_invoking_contract":  0,
	"get_current_contract":   0,
	"contract_event":         2,
	"system_event":           2,
	"get_ledger_version":     0,
	"get_ledger_sequence":    0,
	"get_ledger_timestamp":   0,
	"get_ledger_network_id":  0,
}

// WasmerEngine is the host package's consumed WASM engine, implemented
// over wasmer-go. One WasmerEngine may instantiate many modules; each
// Instantiate call gets its own wasmer.Store so modules don't share
// engine-internal state.
type WasmerEngine struct{}

// NewWasmerEngine constructs an engine ready to instantiate guest
// modules.
func NewWasmerEngine() *WasmerEngine { return &WasmerEngine{} }

// Instantiate compiles code and links it against the host function
// surface reachable through imports, returning a ready-to-call instance.
func (e *WasmerEngine) Instantiate(code []byte, imports host.HostImports) (host.WasmInstance, error) {
	store := wasmer.NewStore(wasmer.NewEngine())
	module, err := wasmer.NewModule(store, code)
	if err != nil {
		return nil, &vmError{code: vmCodeValidation, cause: err}
	}

	importObject := wasmer.NewImportObject()
	envFns := map[string]wasmer.IntoExtern{}
	for name, arity := range importArity {
		envFns[name] = makeImportFunc(store, imports, name, arity)
	}
	importObject.Register("env", envFns)

	instance, err := wasmer.NewInstance(module, importObject)
	if err != nil {
		return nil, &vmError{code: vmCodeInstantiation, cause: err}
	}

	mem, err := instance.Exports.GetMemory("memory")
	if err != nil {
		// A module with no exported linear memory is valid (pure
		// computation contracts); Memory() on the returned instance
		// reports this by returning a nil LinearMemory.
		mem = nil
	}

	return &wasmerInstance{store: store, instance: instance, memory: mem}, nil
}

func makeImportFunc(store *wasmer.Store, imports host.HostImports, name string, arity int) *wasmer.Function {
	params := make([]wasmer.ValueKind, arity)
	for i := range params {
		params[i] = wasmer.I64
	}
	ty := wasmer.NewFunctionType(wasmer.NewValueTypes(params...), wasmer.NewValueTypes(wasmer.I64))
	return wasmer.NewFunction(store, ty, func(wargs []wasmer.Value) ([]wasmer.Value, error) {
		args := make([]host.RawVal, len(wargs))
		for i, w := range wargs {
			args[i] = host.RawVal(uint64(w.I64()))
		}
		res, err := imports.Dispatch("env", name, args)
		if err != nil {
			return nil, err
		}
		return []wasmer.Value{wasmer.NewI64(int64(uint64(res)))}, nil
	})
}

// vmCode enumerates the VmError subcodes this adapter maps wasmer
// failures onto. host.wrapEngineError uses VmCode() directly as the
// status code, so each value equals the numeric value of the matching
// host.CodeVm* constant (vmCodeTrap is CodeVmTrapUnreachable).
type vmCode = uint16

const (
	vmCodeValidation    vmCode = 0
	vmCodeInstantiation vmCode = 1
	vmCodeFunction      vmCode = 2
	vmCodeTrap          vmCode = 7
)

// vmError implements the small interface host.wrapEngineError looks for
// (VmCode() uint16) so engine failures map onto the VmError status
// family without the host package importing wasmer-go's error types.
type vmError struct {
	code  vmCode
	cause error
}

func (e *vmError) Error() string  { return fmt.Sprintf("engine: %v", e.cause) }
func (e *vmError) VmCode() uint16 { return e.code }

type wasmerInstance struct {
	store    *wasmer.Store
	instance *wasmer.Instance
	memory   *wasmer.Memory
}

// Invoke calls a guest export by name with the given RawVal arguments.
func (w *wasmerInstance) Invoke(fn string, args []host.RawVal) (host.RawVal, error) {
	export, err := w.instance.Exports.GetFunction(fn)
	if err != nil {
		return 0, &vmError{code: vmCodeFunction, cause: err}
	}
	wargs := make([]interface{}, len(args))
	for i, a := range args {
		wargs[i] = int64(uint64(a))
	}
	res, err := export(wargs...)
	if err != nil {
		return 0, &vmError{code: vmCodeTrap, cause: err}
	}
	switch v := res.(type) {
	case int64:
		return host.RawVal(uint64(v)), nil
	case int32:
		return host.RawVal(uint64(uint32(v))), nil
	default:
		return host.Void, nil
	}
}

// Memory returns the instance's exported linear memory, or nil if it
// declares none.
func (w *wasmerInstance) Memory() host.LinearMemory {
	if w.memory == nil {
		return nil
	}
	return &wasmerMemory{mem: w.memory}
}

// Close does nothing: the instance's wasmer store is not released
// explicitly.
func (w *wasmerInstance) Close() {}

type wasmerMemory struct {
	mem *wasmer.Memory
}

// Read copies length bytes starting at pos out of guest linear memory.
func (m *wasmerMemory) Read(pos, length uint32) ([]byte, error) {
	data := m.mem.Data()
	if uint64(pos)+uint64(length) > uint64(len(data)) {
		return nil, fmt.Errorf("engine: memory read [%d:%d) out of bound (len %d)", pos, pos+length, len(data))
	}
	out := make([]byte, length)
	copy(out, data[pos:pos+length])
	return out, nil
}

// Write copies data into guest linear memory starting at pos, growing
// the memory (zero-padding the grown region) if the write runs past the
// current size.
func (m *wasmerMemory) Write(pos uint32, data []byte) error {
	needed := uint64(pos) + uint64(len(data))
	if needed > uint64(len(m.mem.Data())) {
		pageSize := uint64(wasmer.WasmPageSize)
		currentPages := uint64(len(m.mem.Data())) / pageSize
		neededPages := (needed + pageSize - 1) / pageSize
		if neededPages > currentPages {
			if err := m.Grow(uint32(neededPages - currentPages)); err != nil {
				return err
			}
		}
	}
	copy(m.mem.Data()[pos:], data)
	return nil
}

// Grow extends the memory by the given number of 64KiB pages.
func (m *wasmerMemory) Grow(pages uint32) error {
	if !m.mem.Grow(wasmer.Pages(pages)) {
		return fmt.Errorf("engine: failed to grow memory by %d pages", pages)
	}
	return nil
}
