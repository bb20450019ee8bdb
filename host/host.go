// Package host implements the smart-contract host environment: tagged
// values, an object table, a budget meter, transactional storage, a
// frame stack, and the host-function surface contracts call into.
package host

// LedgerInfo carries the small set of chain facts host functions may
// read but never mutate.
type LedgerInfo struct {
	ProtocolVersion uint32
	SequenceNumber  uint32
	Timestamp       uint64
	NetworkID       [32]byte
}

// Host is the single-threaded interpreter core. It owns everything a
// contract invocation can observe or mutate: the object table, the
// budget, the storage overlay, the event log and the frame stack. A Host
// is not safe for concurrent use; nothing here spawns goroutines, and
// callers must not share one Host across concurrent invocations.
type Host struct {
	objects    *objectTable
	budget     *Budget
	storage    *Storage
	events     *Events
	frames     []Frame
	ledgerInfo LedgerInfo
	engine     WasmEngine
	token      TokenContract
	accounts   AccountProvider
}

// WasmEngine is the subset of the engine package's surface the host
// driver needs to instantiate and call into guest WASM code.
type WasmEngine interface {
	Instantiate(code []byte, imports HostImports) (WasmInstance, error)
}

// WasmInstance is one instantiated guest module ready to be invoked.
type WasmInstance interface {
	Invoke(fn string, args []RawVal) (RawVal, error)
	Memory() LinearMemory
	Close()
}

// HostImports is what the engine must make callable from inside the
// guest module: the full host-function surface, namespaced the way the
// guest ABI expects ("env" module, function-per-import).
type HostImports interface {
	Dispatch(module, name string, args []RawVal) (RawVal, error)
}

// TokenContract is the built-in asset contract, dispatched in-process
// under a FrameToken frame instead of through the WASM engine.
type TokenContract interface {
	Invoke(h *Host, fn Symbol, args []RawVal) (RawVal, error)
}

// New constructs a Host ready to run invocations against the given
// storage backing and ledger facts. The budget uses DefaultCostModel
// unless overridden with WithCostModel.
func New(backing BackingStore, footprint Footprint, info LedgerInfo) *Host {
	return &Host{
		objects:    newObjectTable(),
		budget:     NewBudget(DefaultCostModel()),
		storage:    NewStorage(backing, footprint),
		events:     &Events{},
		ledgerInfo: info,
	}
}

// NewForFootprintDiscovery constructs a Host whose storage enforces no
// footprint and instead records every key touched, letting a driver run
// an invocation against a scratch backing store purely to learn what
// footprint a real submission against the real backing store needs to
// declare. The discovery host's side effects (including any committed
// storage writes) are meant to be discarded, not reused.
func NewForFootprintDiscovery(backing BackingStore, info LedgerInfo) *Host {
	return &Host{
		objects:    newObjectTable(),
		budget:     NewBudget(DefaultCostModel()),
		storage:    NewDiscoveryStorage(backing),
		events:     &Events{},
		ledgerInfo: info,
	}
}

// DiscoveredFootprint returns the footprint a discovery Host's
// invocation touched, ready to pass to New for a real submission.
func (h *Host) DiscoveredFootprint() Footprint { return h.storage.Accessed() }

// WithCostModel overrides the host's budget cost model. Must be called
// before any invocation.
func (h *Host) WithCostModel(m CostModel) *Host {
	h.budget = NewBudget(m)
	return h
}

// WithEngine wires a WASM engine adapter (e.g. engine.WasmerEngine) into
// the host, used to run FrameContractVM frames.
func (h *Host) WithEngine(e WasmEngine) *Host {
	h.engine = e
	return h
}

// WithTokenContract wires the built-in token contract implementation
// (nativecontract/token.Contract), used to run FrameToken frames.
func (h *Host) WithTokenContract(t TokenContract) *Host {
	h.token = t
	return h
}

// WithAccountProvider wires the account lookup collaborator used by the
// AccountGet*/AccountGetSignerWeight host functions.
func (h *Host) WithAccountProvider(a AccountProvider) *Host {
	h.accounts = a
	return h
}

// Budget exposes the host's budget meter, mainly for tests and
// diagnostics that want to inspect or pre-charge it.
func (h *Host) Budget() *Budget { return h.budget }

// Events exposes the host's event log.
func (h *Host) Events() *Events { return h.events }

// Storage exposes the host's storage overlay, e.g. so a driver can call
// Commit once an invocation finishes successfully.
func (h *Host) Storage() *Storage { return h.storage }

// LedgerInfo returns the ledger facts the host was constructed with.
func (h *Host) LedgerInfo() LedgerInfo { return h.ledgerInfo }

// recordDebugEvent appends ev to the event log. Matching host.rs, the
// caller charges ValXdrConv-equivalent cost (if any) for the event's
// contents AFTER this call, so a breadcrumb survives even when that
// charge is what trips the budget.
func (h *Host) recordDebugEvent(ev *DebugEvent) {
	h.events.recordDebugEvent(ev)
}

// recordContractEvent appends a contract-raised event to the log,
// enforcing the topic count and per-topic byte length limits.
func (h *Host) recordContractEvent(ev ContractEvent) error {
	if len(ev.Topics) > ContractEventTopicsLimit {
		return newErrf(DomainHostFnError, CodeInputArgsInvalid, "contract event has %d topics, limit is %d", len(ev.Topics), ContractEventTopicsLimit)
	}
	for _, t := range ev.Topics {
		if obj, err := t.AsObject(); err == nil && obj.Type == ObjBytes {
			b, berr := h.visitBytes(t)
			if berr == nil && b.Len() > TopicBytesLengthLimit {
				return newErrf(DomainHostFnError, CodeInputArgsInvalid, "topic bytes length %d exceeds limit %d", b.Len(), TopicBytesLengthLimit)
			}
		}
	}
	h.events.recordContractEvent(ev)
	return nil
}
