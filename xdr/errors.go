// Package xdr implements the wire codec contracts are serialized
// through: ScVal (the external counterpart of host.RawVal) and the
// ledger types a driver needs to build a Footprint and HostFunction
// invocation. The encoding here is a compact self-describing binary
// format rather than Stellar's actual XDR grammar, since the
// specification treats the codec's wire format as outside the host
// core's invariants — only the conversion contract (ReadVal/WriteVal,
// the Error enum) is load-bearing.
package xdr

import "fmt"

// ErrorKind enumerates the ways a codec operation can fail, mirroring
// the Rust host's xdr::Error variants that events.rs's
// From<xdr::Error> table maps onto Unknown::Xdr status codes.
type ErrorKind uint8

const (
	Invalid ErrorKind = iota
	LengthExceedsMax
	LengthMismatch
	NonZeroPadding
	Utf8
	Io
)

func (k ErrorKind) String() string {
	switch k {
	case Invalid:
		return "Invalid"
	case LengthExceedsMax:
		return "LengthExceedsMax"
	case LengthMismatch:
		return "LengthMismatch"
	case NonZeroPadding:
		return "NonZeroPadding"
	case Utf8:
		return "Utf8"
	case Io:
		return "Io"
	default:
		return "Unknown"
	}
}

// Error is the codec's error type.
type Error struct {
	Kind ErrorKind
	Msg  string
}

func (e *Error) Error() string { return fmt.Sprintf("xdr: %s: %s", e.Kind, e.Msg) }

func newErr(k ErrorKind, msg string) *Error { return &Error{Kind: k, Msg: msg} }
