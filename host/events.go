package host

// ContractEventTopicsLimit bounds the number of topics a contract event
// may carry.
const ContractEventTopicsLimit = 4

// TopicBytesLengthLimit bounds the byte length of a Bytes-typed topic.
const TopicBytesLengthLimit = 32

// DebugArg is one argument attached to a DebugEvent: either a free-form
// string or a RawVal snapshot.
type DebugArg struct {
	Str string
	Val *RawVal
}

// DebugEvent is a diagnostic breadcrumb recorded alongside (or instead
// of) a returned error, giving a human-readable trail of what the host
// was doing when something went wrong.
type DebugEvent struct {
	Msg  string
	Args []DebugArg
}

// WithArg appends a RawVal argument and returns the event for chaining,
// mirroring the Rust builder's .arg() method.
func (e *DebugEvent) WithArg(v RawVal) *DebugEvent {
	e.Args = append(e.Args, DebugArg{Val: &v})
	return e
}

// WithStrArg appends a string argument.
func (e *DebugEvent) WithStrArg(s string) *DebugEvent {
	e.Args = append(e.Args, DebugArg{Str: s})
	return e
}

// ContractEventType distinguishes an event a contract explicitly raised
// from one the host itself raised on the contract's behalf (e.g. the
// asset-transfer-style events real deployments emit around a native
// operation, independent of anything the running contract's code does).
type ContractEventType uint8

const (
	EventTypeContract ContractEventType = iota
	EventTypeSystem
)

// ContractEvent is a structured log emitted by a contract via
// contract_event (scoped to the contract that raised it) or by
// system_event (Type EventTypeSystem, with a zero ContractID).
type ContractEvent struct {
	Type       ContractEventType
	ContractID [32]byte
	Topics     []RawVal
	Data       RawVal
}

// HostEvent is one entry of the host's event log: either a contract
// event or an internal debug breadcrumb.
type HostEvent struct {
	Contract *ContractEvent
	Debug    *DebugEvent
}

// Events is the host's append-only event log for the current invocation.
type Events struct {
	log []HostEvent
}

// Len returns the number of recorded events.
func (e *Events) Len() int { return len(e.log) }

// All returns the recorded events in order.
func (e *Events) All() []HostEvent { return e.log }

// recordDebugEvent appends ev to the log unconditionally. Charging for
// the event (if any) happens in the caller AFTER this call returns, so a
// debug breadcrumb survives even when the charge that follows trips the
// budget: host.rs makes the same trade explicitly, on the grounds that an
// error without its explanatory breadcrumb is nearly useless.
func (e *Events) recordDebugEvent(ev *DebugEvent) {
	e.log = append(e.log, HostEvent{Debug: ev})
}

func (e *Events) recordContractEvent(ev ContractEvent) {
	e.log = append(e.log, HostEvent{Contract: &ev})
}
