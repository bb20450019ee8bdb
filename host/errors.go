package host

import "fmt"

// HostError is the error type returned by every fallible host operation.
// It carries a stable Status plus, where available, the DebugEvent that
// was recorded alongside it in the host's event log.
type HostError struct {
	Status Status
	Event  *DebugEvent
}

func (e *HostError) Error() string {
	if e.Event != nil && e.Event.Msg != "" {
		return fmt.Sprintf("%s: %s", e.Status, e.Event.Msg)
	}
	return e.Status.String()
}

// Is lets errors.Is match on Status alone, ignoring the attached event.
func (e *HostError) Is(target error) bool {
	other, ok := target.(*HostError)
	if !ok {
		return false
	}
	return e.Status == other.Status
}

func newErr(d Domain, c uint16, msg string) *HostError {
	return &HostError{
		Status: stVal(d, c),
		Event:  &DebugEvent{Msg: msg},
	}
}

func newErrf(d Domain, c uint16, format string, args ...interface{}) *HostError {
	return newErr(d, c, fmt.Sprintf(format, args...))
}

// errUnknown wraps an error from an external dependency (XDR codec, WASM
// engine) whose cause doesn't map onto a more specific Status.
func errUnknown(cause error) *HostError {
	return newErrf(DomainUnknown, CodeGeneral, "%v", cause)
}

// errBudgetExceeded is returned by Budget.Charge once the overall CPU
// limit has been crossed (naming the CostType whose charge crossed it),
// and by Budget.ChargeMem once the memory limit has been crossed.
func errBudgetExceeded(ct CostType) *HostError {
	return newErrf(DomainUnknown, CodeBudgetExceeded, "budget exceeded for cost type %s", ct)
}

// errXdr wraps a codec error, mirroring events.rs's From<xdr::Error>.
func errXdr(cause error) *HostError {
	return newErrf(DomainUnknown, CodeXdr, "xdr: %v", cause)
}

// NewContractError lets a native contract (e.g. nativecontract/token)
// raise a ContractError-domain HostError carrying its own opaque code,
// the same status family a WASM contract's trap would surface as.
func NewContractError(code uint16, msg string) error {
	return newErr(DomainContractError, code, msg)
}
