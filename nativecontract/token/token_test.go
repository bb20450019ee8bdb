package token

import (
	"testing"

	"soroban-host/host"
	"soroban-host/ledgerstore"
)

// tokenOp is one step of a deterministic invocation script: build fresh
// args against whatever Host is running, invoke fn through host.Call
// (so the right frame is pushed/popped around it), and optionally
// assert on the result.
type tokenOp struct {
	fn    host.Symbol
	args  func(t *testing.T, h *host.Host) []host.RawVal
	check func(t *testing.T, h *host.Host, result host.RawVal, err error)
}

// runTokenScript installs the native token contract and replays ops
// twice: once against a scratch backing store in footprint-discovery
// mode to learn which storage keys the script touches, then for real
// against a fresh backing store using the discovered footprint. This
// mirrors how a real submission declares its footprint up front, and
// is exactly the path that exposed the original handle-addressed
// contractDataKey bug: every op below builds a brand new Identifier
// Bytes object on every call, the same way nativecontract/token's own
// newDataKeyObject does.
func runTokenScript(t *testing.T, ops []tokenOp) (*host.Host, [32]byte) {
	t.Helper()

	var edKey, salt [32]byte
	edKey[0] = 0xAA

	discovery := discoveryHost()
	dID, err := discovery.CreateTokenFromEd25519(edKey, salt)
	if err != nil {
		t.Fatal(err)
	}
	for _, op := range ops {
		args := op.args(t, discovery)
		_, _ = discovery.Call(dID, op.fn, args)
	}

	h := host.New(ledgerstore.NewMemStore(), discovery.DiscoveredFootprint(), host.LedgerInfo{ProtocolVersion: 1})
	h.WithTokenContract(Contract{})
	id, err := h.CreateTokenFromEd25519(edKey, salt)
	if err != nil {
		t.Fatal(err)
	}
	if id != dID {
		t.Fatalf("contract id mismatch between discovery and real host: %x vs %x", dID, id)
	}

	for _, op := range ops {
		args := op.args(t, h)
		result, err := h.Call(id, op.fn, args)
		if op.check != nil {
			op.check(t, h, result, err)
		}
	}
	return h, id
}

func discoveryHost() *host.Host {
	h := host.NewForFootprintDiscovery(ledgerstore.NewMemStore(), host.LedgerInfo{ProtocolVersion: 1})
	h.WithTokenContract(Contract{})
	return h
}

func identifierObj(t *testing.T, h *host.Host, id Identifier) host.RawVal {
	t.Helper()
	v, err := h.NewBytesObject(id[:])
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func bigIntU64(t *testing.T, h *host.Host, u uint64) host.RawVal {
	t.Helper()
	v, err := h.BigIntFromU64(u)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func mustU64(t *testing.T, h *host.Host, v host.RawVal) uint64 {
	t.Helper()
	u, err := h.BigIntToU64(v)
	if err != nil {
		t.Fatal(err)
	}
	return u
}

func TestTokenBalanceDefaultsToZero(t *testing.T) {
	holder := Identifier{1}

	h, id := runTokenScript(t, []tokenOp{
		{
			fn:   "balance",
			args: func(t *testing.T, h *host.Host) []host.RawVal { return []host.RawVal{identifierObj(t, h, holder)} },
			check: func(t *testing.T, h *host.Host, result host.RawVal, err error) {
				if err != nil {
					t.Fatal(err)
				}
				if got := mustU64(t, h, result); got != 0 {
					t.Fatalf("balance = %d, want 0", got)
				}
			},
		},
	})

	bal, err := h.Call(id, "balance", []host.RawVal{identifierObj(t, h, holder)})
	if err != nil {
		t.Fatal(err)
	}
	if got := mustU64(t, h, bal); got != 0 {
		t.Fatalf("balance after script = %d, want 0", got)
	}
}

func TestTokenMintIncreasesBalance(t *testing.T) {
	holder := Identifier{2}

	h, id := runTokenScript(t, []tokenOp{
		{
			fn: "mint",
			args: func(t *testing.T, h *host.Host) []host.RawVal {
				return []host.RawVal{identifierObj(t, h, holder), bigIntU64(t, h, 500)}
			},
			check: func(t *testing.T, h *host.Host, _ host.RawVal, err error) {
				if err != nil {
					t.Fatal(err)
				}
			},
		},
	})

	bal, err := h.Call(id, "balance", []host.RawVal{identifierObj(t, h, holder)})
	if err != nil {
		t.Fatal(err)
	}
	if got := mustU64(t, h, bal); got != 500 {
		t.Fatalf("balance after mint 500 = %d, want 500", got)
	}
}

// TestTokenTransferDebitsAndCreditsAcrossCalls is the direct regression
// test for the contractDataKey fix: sender and receiver balance keys
// are resolved as fresh Bytes objects on every single host.Call, so a
// handle-addressed storage key would make the transfer's own SpendBalance
// invisible to the mint that preceded it, or the ReceiveBalance that
// follows it.
func TestTokenTransferDebitsAndCreditsAcrossCalls(t *testing.T) {
	from := Identifier{3}
	to := Identifier{4}

	h, id := runTokenScript(t, []tokenOp{
		{
			fn: "mint",
			args: func(t *testing.T, h *host.Host) []host.RawVal {
				return []host.RawVal{identifierObj(t, h, from), bigIntU64(t, h, 100)}
			},
		},
		{
			fn: "transfer",
			args: func(t *testing.T, h *host.Host) []host.RawVal {
				return []host.RawVal{identifierObj(t, h, from), identifierObj(t, h, to), bigIntU64(t, h, 30)}
			},
			check: func(t *testing.T, h *host.Host, _ host.RawVal, err error) {
				if err != nil {
					t.Fatal(err)
				}
			},
		},
	})

	fromBal, err := h.Call(id, "balance", []host.RawVal{identifierObj(t, h, from)})
	if err != nil {
		t.Fatal(err)
	}
	if got := mustU64(t, h, fromBal); got != 70 {
		t.Fatalf("sender balance after transfer = %d, want 70", got)
	}

	toBal, err := h.Call(id, "balance", []host.RawVal{identifierObj(t, h, to)})
	if err != nil {
		t.Fatal(err)
	}
	if got := mustU64(t, h, toBal); got != 30 {
		t.Fatalf("receiver balance after transfer = %d, want 30", got)
	}
}

func TestTokenTransferInsufficientBalanceRejectedAndRolledBack(t *testing.T) {
	from := Identifier{5}
	to := Identifier{6}

	h, id := runTokenScript(t, []tokenOp{
		{
			fn: "mint",
			args: func(t *testing.T, h *host.Host) []host.RawVal {
				return []host.RawVal{identifierObj(t, h, from), bigIntU64(t, h, 10)}
			},
		},
		{
			fn: "transfer",
			args: func(t *testing.T, h *host.Host) []host.RawVal {
				return []host.RawVal{identifierObj(t, h, from), identifierObj(t, h, to), bigIntU64(t, h, 999)}
			},
		},
	})

	fromBal, err := h.Call(id, "balance", []host.RawVal{identifierObj(t, h, from)})
	if err != nil {
		t.Fatal(err)
	}
	if got := mustU64(t, h, fromBal); got != 10 {
		t.Fatalf("sender balance after rejected transfer = %d, want unchanged 10", got)
	}

	toBal, err := h.Call(id, "balance", []host.RawVal{identifierObj(t, h, to)})
	if err != nil {
		t.Fatal(err)
	}
	if got := mustU64(t, h, toBal); got != 0 {
		t.Fatalf("receiver balance after rejected transfer = %d, want 0 (rolled back)", got)
	}
}

func TestTokenFreezeBlocksTransfer(t *testing.T) {
	from := Identifier{7}
	to := Identifier{8}

	h, id := runTokenScript(t, []tokenOp{
		{
			fn: "mint",
			args: func(t *testing.T, h *host.Host) []host.RawVal {
				return []host.RawVal{identifierObj(t, h, from), bigIntU64(t, h, 100)}
			},
		},
		{
			fn:   "freeze",
			args: func(t *testing.T, h *host.Host) []host.RawVal { return []host.RawVal{identifierObj(t, h, from)} },
		},
		{
			fn: "transfer",
			args: func(t *testing.T, h *host.Host) []host.RawVal {
				return []host.RawVal{identifierObj(t, h, from), identifierObj(t, h, to), bigIntU64(t, h, 10)}
			},
		},
	})

	frozen, err := h.Call(id, "is_frozen", []host.RawVal{identifierObj(t, h, from)})
	if err != nil {
		t.Fatal(err)
	}
	isFrozen, err := frozen.AsBool()
	if err != nil || !isFrozen {
		t.Fatalf("is_frozen = (%v, %v), want (true, nil)", isFrozen, err)
	}

	toBal, err := h.Call(id, "balance", []host.RawVal{identifierObj(t, h, to)})
	if err != nil {
		t.Fatal(err)
	}
	if got := mustU64(t, h, toBal); got != 0 {
		t.Fatalf("receiver balance after transfer from frozen sender = %d, want 0", got)
	}
}

func TestTokenUnfreezeRestoresTransfers(t *testing.T) {
	from := Identifier{9}
	to := Identifier{10}

	h, id := runTokenScript(t, []tokenOp{
		{
			fn: "mint",
			args: func(t *testing.T, h *host.Host) []host.RawVal {
				return []host.RawVal{identifierObj(t, h, from), bigIntU64(t, h, 100)}
			},
		},
		{
			fn:   "freeze",
			args: func(t *testing.T, h *host.Host) []host.RawVal { return []host.RawVal{identifierObj(t, h, from)} },
		},
		{
			fn:   "unfreeze",
			args: func(t *testing.T, h *host.Host) []host.RawVal { return []host.RawVal{identifierObj(t, h, from)} },
		},
		{
			fn: "transfer",
			args: func(t *testing.T, h *host.Host) []host.RawVal {
				return []host.RawVal{identifierObj(t, h, from), identifierObj(t, h, to), bigIntU64(t, h, 25)}
			},
			check: func(t *testing.T, h *host.Host, _ host.RawVal, err error) {
				if err != nil {
					t.Fatal(err)
				}
			},
		},
	})

	toBal, err := h.Call(id, "balance", []host.RawVal{identifierObj(t, h, to)})
	if err != nil {
		t.Fatal(err)
	}
	if got := mustU64(t, h, toBal); got != 25 {
		t.Fatalf("receiver balance after unfreeze+transfer = %d, want 25", got)
	}
}

func TestTokenBurnDecreasesBalance(t *testing.T) {
	holder := Identifier{11}

	h, id := runTokenScript(t, []tokenOp{
		{
			fn: "mint",
			args: func(t *testing.T, h *host.Host) []host.RawVal {
				return []host.RawVal{identifierObj(t, h, holder), bigIntU64(t, h, 80)}
			},
		},
		{
			fn: "burn",
			args: func(t *testing.T, h *host.Host) []host.RawVal {
				return []host.RawVal{identifierObj(t, h, holder), bigIntU64(t, h, 30)}
			},
			check: func(t *testing.T, h *host.Host, _ host.RawVal, err error) {
				if err != nil {
					t.Fatal(err)
				}
			},
		},
	})

	bal, err := h.Call(id, "balance", []host.RawVal{identifierObj(t, h, holder)})
	if err != nil {
		t.Fatal(err)
	}
	if got := mustU64(t, h, bal); got != 50 {
		t.Fatalf("balance after mint 80 burn 30 = %d, want 50", got)
	}
}

func TestTokenUnknownFunctionReturnsContractError(t *testing.T) {
	h, id := runTokenScript(t, nil)
	if _, err := h.Call(id, "no_such_fn", nil); err == nil {
		t.Fatal("expected error invoking an unknown token function")
	}
}
