package host

import "fmt"

// Domain groups related Status codes, mirroring the domain enums a
// reimplementation of the host's error model is expected to carry
// (HostValError, HostObjError, ...).
type Domain uint8

const (
	DomainOK Domain = iota
	DomainHostValError
	DomainHostObjError
	DomainHostFnError
	DomainHostStorageError
	DomainHostContextError
	DomainVmError
	DomainContractError
	DomainUnknown
)

func (d Domain) String() string {
	switch d {
	case DomainOK:
		return "OK"
	case DomainHostValError:
		return "HostValError"
	case DomainHostObjError:
		return "HostObjError"
	case DomainHostFnError:
		return "HostFnError"
	case DomainHostStorageError:
		return "HostStorageError"
	case DomainHostContextError:
		return "HostContextError"
	case DomainVmError:
		return "VmError"
	case DomainContractError:
		return "ContractError"
	default:
		return "Unknown"
	}
}

// Status is a small stable (domain, code) pair carried both inside a
// Status-tagged RawVal and as the concrete type backing HostError.
type Status struct {
	Domain Domain
	Code   uint16
}

func (s Status) String() string {
	return fmt.Sprintf("%s(%d)", s.Domain, s.Code)
}

// IsOK reports whether the status represents success.
func (s Status) IsOK() bool { return s.Domain == DomainOK }

// Well-known codes. Each domain numbers its own codes starting at 0;
// only the (domain, code) pair needs to be stable, not the code alone.
const (
	// HostValError
	CodeUnknownError uint16 = iota
	CodeUnexpectedType
	CodeValueConversion
)

const (
	// HostObjError
	CodeUnknownReference uint16 = iota
	CodeObjUnexpectedType
	CodeObjectCountExceedsU32Max
	CodeVecIndexOutOfBound
	CodeMapKeyNotFound
)

const (
	// HostFnError
	CodeInputArgsWrongLength uint16 = iota
	CodeInputArgsInvalid
	CodeUnknownFunction
)

const (
	// HostStorageError
	CodeMissingValue uint16 = iota
	CodeExpectContractData
	CodeAccessToUnknownEntry
	CodeReadwriteAccessToReadonlyEntry
)

const (
	// HostContextError
	CodeNoContractRunning uint16 = iota
	CodeNoInvokingContract
)

const (
	// VmError
	CodeVmValidation uint16 = iota
	CodeVmInstantiation
	CodeVmFunction
	CodeVmTable
	CodeVmMemory
	CodeVmGlobal
	CodeVmValue
	CodeVmTrapUnreachable
	CodeVmTrapDivisionByZero
	CodeVmTrapIntegerOverflow
	CodeVmTrapStackOverflow
	CodeVmTrapMemLimitExceeded
	CodeVmTrapCpuLimitExceeded
)

const (
	// ContractError: contract-supplied status codes are opaque user values.
	_ uint16 = iota
)

const (
	// Unknown
	CodeGeneral uint16 = iota
	CodeXdr
	CodeBudgetExceeded
)

// StOK is the canonical success status, returned as a RawVal by host
// functions whose only observable effect is success/failure.
var StOK = Status{Domain: DomainOK, Code: 0}

func stVal(d Domain, c uint16) Status { return Status{Domain: d, Code: c} }
