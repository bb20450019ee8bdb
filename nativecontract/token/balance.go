// Package token implements the built-in asset contract dispatched
// in-process under a host.FrameToken frame, rather than through the
// WASM engine. It is grounded directly on the original Rust host's
// native_contract/token/balance.rs module.
package token

import "soroban-host/host"

// Identifier names a balance/state holder: either an ed25519 public key
// or another contract's ID. Both shapes are just 32 bytes from the
// host's point of view; which one a given Identifier holds only matters
// to callers outside this package.
type Identifier [32]byte

// dataKeyBalance/dataKeyState mirror DataKey::Balance(id)/DataKey::State(id):
// distinct storage key namespaces so a balance and a freeze flag for the
// same identifier never collide.
const (
	dataKeyBalance uint8 = iota
	dataKeyState
)

// newDataKeyObject packs a (kind, identifier) pair into a single Bytes
// object key: 1 discriminant byte followed by the 32 identifier bytes.
func newDataKeyObject(h *host.Host, kind uint8, id Identifier) (host.RawVal, error) {
	buf := make([]byte, 1+len(id))
	buf[0] = kind
	copy(buf[1:], id[:])
	return h.NewBytesObject(buf)
}

// ReadBalance returns id's current balance, as a BigInt RawVal, or zero
// if no balance has ever been written.
func ReadBalance(h *host.Host, id Identifier) (host.RawVal, error) {
	key, err := newDataKeyObject(h, dataKeyBalance, id)
	if err != nil {
		return 0, err
	}
	val, err := h.GetContractData(key)
	if err != nil {
		return h.BigIntFromU64(0)
	}
	return val, nil
}

func writeBalance(h *host.Host, id Identifier, amount host.RawVal) error {
	key, err := newDataKeyObject(h, dataKeyBalance, id)
	if err != nil {
		return err
	}
	_, err = h.PutContractData(key, amount)
	return err
}

// ReceiveBalance credits amount to id's balance, failing with
// ErrContractFrozen if id's account is currently frozen.
func ReceiveBalance(h *host.Host, id Identifier, amount host.RawVal) error {
	balance, err := ReadBalance(h, id)
	if err != nil {
		return err
	}
	frozen, err := ReadState(h, id)
	if err != nil {
		return err
	}
	if frozen {
		return ErrContractFrozen
	}
	sum, err := h.BigIntAdd(balance, amount)
	if err != nil {
		return err
	}
	return writeBalance(h, id, sum)
}

// SpendBalance debits amount from id's balance, failing with
// ErrContractFrozen if frozen or ErrInsufficientBalance if the balance
// is less than amount.
func SpendBalance(h *host.Host, id Identifier, amount host.RawVal) error {
	balance, err := ReadBalance(h, id)
	if err != nil {
		return err
	}
	frozen, err := ReadState(h, id)
	if err != nil {
		return err
	}
	if frozen {
		return ErrContractFrozen
	}
	cmp, err := h.BigIntCmp(balance, amount)
	if err != nil {
		return err
	}
	if cmp < 0 {
		return ErrInsufficientBalance
	}
	diff, err := h.BigIntSub(balance, amount)
	if err != nil {
		return err
	}
	return writeBalance(h, id, diff)
}

// ReadState reports whether id's account is currently frozen.
func ReadState(h *host.Host, id Identifier) (bool, error) {
	key, err := newDataKeyObject(h, dataKeyState, id)
	if err != nil {
		return false, err
	}
	val, err := h.GetContractData(key)
	if err != nil {
		return false, nil
	}
	return val.AsBool()
}

// WriteState sets id's frozen flag.
func WriteState(h *host.Host, id Identifier, frozen bool) error {
	key, err := newDataKeyObject(h, dataKeyState, id)
	if err != nil {
		return err
	}
	_, err = h.PutContractData(key, host.FromBool(frozen))
	return err
}
