package host

import "crypto/sha256"

// contractCodeKey is the LedgerKey a contract's installed code is stored
// under.
func contractCodeKey(id [32]byte) LedgerKey {
	return LedgerKey(append([]byte("code/"), id[:]...))
}

func (h *Host) storeContractCode(id [32]byte, code ContractCode) error {
	entry, err := h.encodeContractCode(code)
	if err != nil {
		return err
	}
	return h.storage.Put(contractCodeKey(id), entry)
}

func (h *Host) loadContractCode(id [32]byte) (ContractCode, error) {
	entry, err := h.storage.Get(contractCodeKey(id))
	if err != nil {
		return ContractCode{}, newErrf(DomainHostStorageError, CodeMissingValue, "no contract installed at id %x", id)
	}
	return h.decodeContractCode(entry)
}

func (h *Host) encodeContractCode(code ContractCode) (LedgerEntry, error) {
	if code.IsToken {
		return LedgerEntry{1}, nil
	}
	return append(LedgerEntry{0}, code.Wasm...), nil
}

func (h *Host) decodeContractCode(e LedgerEntry) (ContractCode, error) {
	if len(e) == 0 {
		return ContractCode{}, newErr(DomainUnknown, CodeXdr, "empty contract code entry")
	}
	if e[0] == 1 {
		return ContractCode{IsToken: true}, nil
	}
	return ContractCode{Wasm: e[1:]}, nil
}

// deriveContractID computes a contract's deterministic address the way
// host.rs's create_contract_with_id_preimage does: sha256 over a
// discriminated preimage of the creator identity plus a salt/code hash,
// so two different preimage shapes (ed25519-keyed vs contract-keyed)
// never collide.
func deriveContractID(kind byte, a, b [32]byte) [32]byte {
	h := sha256.New()
	h.Write([]byte{kind})
	h.Write(a[:])
	h.Write(b[:])
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

const (
	preimageEd25519 byte = iota
	preimageContract
)

// createContractWithID installs code at the derived id, failing if an
// id collision occurs (extraordinarily unlikely for sha256, but checked
// since the invariant is "IDs are unique" not "IDs are probably unique").
func (h *Host) createContractWithID(id [32]byte, code ContractCode) error {
	if _, err := h.loadContractCode(id); err == nil {
		return newErrf(DomainHostStorageError, CodeMissingValue, "contract already exists at id %x", id)
	}
	return h.storeContractCode(id, code)
}

// ContractCodeFootprintKey returns the LedgerKey an installed contract's
// code entry lives under, letting a driver (cmd/hostctl, cmd/hostserver)
// pre-declare a footprint before submitting a CreateContract invocation,
// since the id is a pure function of the same preimage inputs the
// invocation itself will derive.
func ContractCodeFootprintKey(contractID [32]byte) LedgerKey {
	return contractCodeKey(contractID)
}

// DeriveEd25519ContractID computes the contract ID CreateContractFromEd25519
// or CreateTokenFromEd25519 would derive for the given key and salt,
// without installing anything.
func DeriveEd25519ContractID(key, salt [32]byte) [32]byte {
	return deriveContractID(preimageEd25519, key, salt)
}

// CreateContractFromEd25519 derives a contract ID from an ed25519 public
// key plus salt and installs wasmCode there.
func (h *Host) CreateContractFromEd25519(key [32]byte, salt [32]byte, wasmCode []byte) ([32]byte, error) {
	id := deriveContractID(preimageEd25519, key, salt)
	if err := h.budget.Charge(ComputeSha256Hash, uint64(len(wasmCode))); err != nil {
		return id, err
	}
	return id, h.createContractWithID(id, ContractCode{Wasm: wasmCode})
}

// CreateContractFromContract derives a contract ID from the currently
// running contract's ID plus salt and installs wasmCode there.
func (h *Host) CreateContractFromContract(salt [32]byte, wasmCode []byte) ([32]byte, error) {
	creator, err := h.getCurrentContractID()
	if err != nil {
		return [32]byte{}, err
	}
	id := deriveContractID(preimageContract, creator, salt)
	if err := h.budget.Charge(ComputeSha256Hash, uint64(len(wasmCode))); err != nil {
		return id, err
	}
	return id, h.createContractWithID(id, ContractCode{Wasm: wasmCode})
}

// CreateTokenFromEd25519 derives a contract ID from an ed25519 public
// key plus salt and installs the built-in token contract there.
func (h *Host) CreateTokenFromEd25519(key [32]byte, salt [32]byte) ([32]byte, error) {
	id := deriveContractID(preimageEd25519, key, salt)
	return id, h.createContractWithID(id, ContractCode{IsToken: true})
}

// CreateTokenFromContract derives a contract ID from the currently
// running contract's ID plus salt and installs the built-in token
// contract there.
func (h *Host) CreateTokenFromContract(salt [32]byte) ([32]byte, error) {
	creator, err := h.getCurrentContractID()
	if err != nil {
		return [32]byte{}, err
	}
	id := deriveContractID(preimageContract, creator, salt)
	return id, h.createContractWithID(id, ContractCode{IsToken: true})
}

// callContractFn is the shared core of Call/TryCall: push a frame for
// contractID, dispatch to the WASM engine or the in-process token
// contract depending on the installed ContractCode, and run within
// withFrame so a failure rolls back every side effect the call made.
func (h *Host) callContractFn(contractID [32]byte, fn Symbol, args []RawVal) (RawVal, error) {
	code, err := h.loadContractCode(contractID)
	if err != nil {
		return 0, err
	}
	return h.withFrame(Frame{Kind: frameKindFor(code), ContractID: contractID}, func() (RawVal, error) {
		if code.IsToken {
			if h.token == nil {
				return 0, newErr(DomainHostContextError, CodeNoContractRunning, "no token contract implementation configured")
			}
			return h.token.Invoke(h, fn, args)
		}
		if h.engine == nil {
			return 0, newErr(DomainVmError, CodeVmInstantiation, "no WASM engine configured")
		}
		inst, err := h.engine.Instantiate(code.Wasm, hostImports{h})
		if err != nil {
			return 0, h.wrapEngineError(err)
		}
		defer inst.Close()
		res, err := inst.Invoke(string(fn), args)
		if err != nil {
			return 0, h.wrapEngineError(err)
		}
		return res, nil
	})
}

func frameKindFor(code ContractCode) FrameKind {
	if code.IsToken {
		return FrameToken
	}
	return FrameContractVM
}

// Call invokes fn on contractID, propagating any error (including a
// budget exhaustion) to the caller.
func (h *Host) Call(contractID [32]byte, fn Symbol, args []RawVal) (RawVal, error) {
	return h.callContractFn(contractID, fn, args)
}

// TryCall invokes fn on contractID the same way Call does, but catches
// every error (including BudgetExceeded) and returns it as a
// Status-tagged RawVal rather than propagating it. This is a diagnostic
// convenience, not a recovery mechanism: the frame's side effects are
// still rolled back on failure exactly as with Call, a contract merely
// gets to inspect the failure status value instead of aborting.
func (h *Host) TryCall(contractID [32]byte, fn Symbol, args []RawVal) RawVal {
	res, err := h.callContractFn(contractID, fn, args)
	if err != nil {
		herr, ok := err.(*HostError)
		if !ok {
			herr = errUnknown(err)
		}
		h.recordDebugEvent(&DebugEvent{Msg: "try_call failed", Args: []DebugArg{{Str: herr.Error()}}})
		return FromStatus(herr.Status)
	}
	return res
}

// hostImports adapts *Host to the engine package's HostImports surface;
// its Dispatch method is implemented in driver.go alongside the rest of
// the invocation plumbing.
type hostImports struct{ h *Host }
