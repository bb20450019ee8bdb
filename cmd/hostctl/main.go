// Command hostctl is a driver for invoking a contract function against a
// Host: it installs a wasm module (or the native token contract),
// decodes a JSON argument list into host.RawVal via the xdr package, and
// prints the result plus any debug events recorded during the call.
// Since a contract's storage footprint can only be declared up front, it
// runs the same install-then-call sequence twice: once against a cloned
// scratch store in footprint-discovery mode to learn which keys the
// call touches, then for real against the ledger state the caller
// actually wants committed. Without --state each invocation starts from
// an empty ledger; with it, ledger state round-trips through the given
// file so a later invocation sees an earlier one's writes.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"soroban-host/engine"
	"soroban-host/host"
	"soroban-host/ledgerstore"
	"soroban-host/nativecontract/token"
	"soroban-host/pkg/config"
	"soroban-host/xdr"
)

// loadStore reads a ledgerstore.MemStore snapshot from path (state
// persisted by a prior invocation), or returns an empty store if path is
// empty or does not yet exist. hostctl is otherwise a one-shot process:
// without --state, every invocation starts from an empty ledger and a
// mint in one run is invisible to a transfer in the next.
func loadStore(path string) (*ledgerstore.MemStore, error) {
	store := ledgerstore.NewMemStore()
	if path == "" {
		return store, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return store, nil
		}
		return nil, fmt.Errorf("read state: %w", err)
	}
	var snap map[string][]byte
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}
	store.LoadSnapshot(snap)
	return store, nil
}

// saveStore writes store's snapshot to path, a no-op if path is empty.
func saveStore(path string, store *ledgerstore.MemStore) error {
	if path == "" {
		return nil
	}
	enc, err := json.Marshal(store.Snapshot())
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if err := os.WriteFile(path, enc, 0o600); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return nil
}

func main() {
	_ = godotenv.Load(".env")

	rootCmd := &cobra.Command{Use: "hostctl"}
	rootCmd.AddCommand(invokeCmd())
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func invokeCmd() *cobra.Command {
	var (
		wasmPath  string
		fn        string
		argsJSON  string
		isToken   bool
		statePath string
	)

	cmd := &cobra.Command{
		Use:   "invoke",
		Short: "install a contract and invoke one of its functions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := config.LoadFromEnv(); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "config: using defaults:", err)
			}

			var argLiterals []json.RawMessage
			if argsJSON != "" {
				if err := json.Unmarshal([]byte(argsJSON), &argLiterals); err != nil {
					return fmt.Errorf("decode args: %w", err)
				}
			}

			var wasmCode []byte
			if !isToken {
				code, err := os.ReadFile(wasmPath)
				if err != nil {
					return fmt.Errorf("read wasm: %w", err)
				}
				wasmCode = code
			}

			store, err := loadStore(statePath)
			if err != nil {
				return err
			}

			// Discovery runs over a clone, not store itself: InvokeFunction
			// commits whatever storage it ran over, so sharing store here
			// would apply the call's writes twice (once for discovery,
			// again for the real submission below).
			discovery := newHost(host.NewForFootprintDiscovery(store.Clone(), host.LedgerInfo{ProtocolVersion: 1}), isToken)
			if _, err := installAndCall(discovery, isToken, wasmCode, fn, argLiterals); err != nil {
				return fmt.Errorf("footprint discovery: %w", err)
			}

			h := newHost(host.New(store, discovery.DiscoveredFootprint(), host.LedgerInfo{ProtocolVersion: 1}), isToken)
			result, err := installAndCall(h, isToken, wasmCode, fn, argLiterals)
			if err != nil {
				return err
			}
			if err := saveStore(statePath, store); err != nil {
				return err
			}

			out, err := h.FromHostVal(xdr.Converter{}, result.Value)
			if err != nil {
				return fmt.Errorf("result to sc val: %w", err)
			}
			enc, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(enc))

			for _, ev := range result.Events {
				if ev.Debug != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "debug: %s\n", ev.Debug.Msg)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cpu=%d mem=%d\n", result.CPUUsed, result.MemUsed)
			return nil
		},
	}

	cmd.Flags().StringVar(&wasmPath, "wasm", "", "path to the contract's wasm module")
	cmd.Flags().StringVar(&fn, "fn", "", "function symbol to invoke")
	cmd.Flags().StringVar(&argsJSON, "args", "[]", "JSON array of argument literals")
	cmd.Flags().BoolVar(&isToken, "token", false, "install the native token contract instead of a wasm module")
	cmd.Flags().StringVar(&statePath, "state", "", "path to a ledger state snapshot file, loaded before and saved after the call (omit for a one-shot invocation starting from an empty ledger)")
	_ = cmd.MarkFlagRequired("fn")
	return cmd
}

// newHost wires the collaborators every invocation needs, regardless of
// whether h is a real or footprint-discovery host.
func newHost(h *host.Host, isToken bool) *host.Host {
	h.WithTokenContract(token.Contract{}).WithAccountProvider(ledgerstore.NewAccounts())
	if !isToken {
		h.WithEngine(engine.NewWasmerEngine())
	}
	return h
}

// installAndCall installs wasmCode (or the native token contract) then
// invokes fn against the resulting contract ID, the shared core of both
// hostctl's discovery pass and its real submission.
func installAndCall(h *host.Host, isToken bool, wasmCode []byte, fn string, argLiterals []json.RawMessage) (host.InvocationResult, error) {
	create, err := h.InvokeFunction(host.HostFunction{
		Kind:     host.HostFunctionCreateContract,
		IsToken:  isToken,
		WasmCode: wasmCode,
	})
	if err != nil {
		return host.InvocationResult{}, fmt.Errorf("install contract: %w", err)
	}
	contractID, err := extractContractID(h, create.Value)
	if err != nil {
		return host.InvocationResult{}, err
	}

	conv := xdr.Converter{}
	scArgs := make([]host.RawVal, 0, len(argLiterals))
	for _, lit := range argLiterals {
		sc, err := decodeLiteral(lit)
		if err != nil {
			return host.InvocationResult{}, fmt.Errorf("decode arg: %w", err)
		}
		rv, err := h.ToHostVal(conv, sc)
		if err != nil {
			return host.InvocationResult{}, fmt.Errorf("arg to host val: %w", err)
		}
		scArgs = append(scArgs, rv)
	}

	return h.InvokeFunction(host.HostFunction{
		Kind:       host.HostFunctionCall,
		ContractID: contractID,
		Function:   host.Symbol(fn),
		Args:       scArgs,
	})
}

// extractContractID reads the 32 raw bytes a CreateContract invocation
// returned (wrapped as a Bytes object) back into a plain array.
func extractContractID(h *host.Host, v host.RawVal) ([32]byte, error) {
	idLen, err := h.BytesLen(v)
	if err != nil {
		return [32]byte{}, fmt.Errorf("read installed contract id: %w", err)
	}
	var id [32]byte
	for i := uint32(0); i < idLen && i < 32; i++ {
		b, err := h.BytesGet(v, i)
		if err != nil {
			return [32]byte{}, err
		}
		id[i] = b
	}
	return id, nil
}

// decodeLiteral turns one JSON argument literal into an xdr.ScVal. Only
// the scalar kinds a command-line invocation plausibly needs are
// supported; richer structures are out of scope for this driver.
func decodeLiteral(raw json.RawMessage) (xdr.ScVal, error) {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return xdr.ScVal{}, err
	}
	switch t := v.(type) {
	case float64:
		if t == float64(int64(t)) && t >= 0 {
			return xdr.ScVal{Kind: xdr.ScU32, U32: uint32(t)}, nil
		}
		return xdr.ScVal{Kind: xdr.ScI32, I32: int32(t)}, nil
	case string:
		return xdr.ScVal{Kind: xdr.ScSymbol, Symbol: t}, nil
	case bool:
		return xdr.ScVal{Kind: xdr.ScBool, Bool: t}, nil
	case nil:
		return xdr.ScVal{Kind: xdr.ScVoid}, nil
	default:
		return xdr.ScVal{}, fmt.Errorf("unsupported argument literal %v", raw)
	}
}
