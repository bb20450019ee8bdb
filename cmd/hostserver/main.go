// Command hostserver exposes a single POST /invoke endpoint: a driver
// for submitting a HostFunction invocation over HTTP instead of the
// command line, sharing hostctl's two-pass footprint-discovery-then-
// submit flow and argument decoding via the xdr package.
package main

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"soroban-host/engine"
	"soroban-host/host"
	"soroban-host/ledgerstore"
	"soroban-host/nativecontract/token"
	"soroban-host/pkg/config"
	"soroban-host/xdr"
)

// invokeRequest is the wire shape of a POST /invoke body.
type invokeRequest struct {
	WasmBase64 string            `json:"wasm_base64,omitempty"`
	IsToken    bool              `json:"is_token"`
	Function   string            `json:"function"`
	Args       []json.RawMessage `json:"args"`
}

// invokeResponse is what /invoke returns: the function's result,
// recorded debug messages, and final budget usage.
type invokeResponse struct {
	Result interface{} `json:"result"`
	Debug  []string    `json:"debug"`
	CPU    uint64      `json:"cpu_used"`
	Mem    uint64      `json:"mem_used"`
}

type server struct {
	store    *ledgerstore.MemStore
	accounts *ledgerstore.Accounts
	logger   *log.Logger
}

func main() {
	_ = godotenv.Load(".env")

	if _, err := config.LoadFromEnv(); err != nil {
		log.Warnf("config: using defaults: %v", err)
	}

	logger := log.StandardLogger()
	srv := &server{store: ledgerstore.NewMemStore(), accounts: ledgerstore.NewAccounts(), logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Post("/invoke", srv.handleInvoke)

	addr := config.AppConfig.Server.ListenAddr
	if addr == "" {
		addr = ":8787"
	}
	logger.Printf("hostserver listening on %s", addr)
	logger.Fatal(http.ListenAndServe(addr, r))
}

func (s *server) handleInvoke(w http.ResponseWriter, r *http.Request) {
	var req invokeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var wasmCode []byte
	if !req.IsToken {
		decoded, err := decodeWasm(req.WasmBase64)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		wasmCode = decoded
	}

	// The discovery pass runs against a snapshot clone of s.store, not
	// s.store itself: InvokeFunction commits whichever storage it ran
	// over on success, so sharing the live store here would apply every
	// mutation twice (once for discovery, again for the real submission
	// below). The clone still reflects everything earlier requests have
	// committed, so discovery learns the right footprint for an
	// operation (e.g. a transfer) whose entries a prior request (e.g. a
	// mint) created. The real pass below runs against s.store directly
	// so its effects persist for later requests.
	discovery := s.newHost(host.NewForFootprintDiscovery(s.store.Clone(), host.LedgerInfo{ProtocolVersion: 1}), req.IsToken)
	if _, err := installAndCall(discovery, req.IsToken, wasmCode, req.Function, req.Args); err != nil {
		s.logger.Errorf("footprint discovery: %v", err)
		http.Error(w, "footprint discovery: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	h := s.newHost(host.New(s.store, discovery.DiscoveredFootprint(), host.LedgerInfo{ProtocolVersion: 1}), req.IsToken)
	result, err := installAndCall(h, req.IsToken, wasmCode, req.Function, req.Args)
	if err != nil {
		s.logger.Errorf("invoke: %v", err)
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	out, err := h.FromHostVal(xdr.Converter{}, result.Value)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := invokeResponse{Result: out, CPU: result.CPUUsed, Mem: result.MemUsed}
	for _, ev := range result.Events {
		if ev.Debug != nil {
			resp.Debug = append(resp.Debug, ev.Debug.Msg)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// newHost wires the collaborators every invocation needs, regardless of
// whether h is a real or footprint-discovery host.
func (s *server) newHost(h *host.Host, isToken bool) *host.Host {
	h.WithTokenContract(token.Contract{}).WithAccountProvider(s.accounts)
	if !isToken {
		h.WithEngine(engine.NewWasmerEngine())
	}
	return h
}

// installAndCall installs wasmCode (or the native token contract) then
// invokes fn against the resulting contract ID, the shared core of both
// hostserver's discovery pass and its real submission.
func installAndCall(h *host.Host, isToken bool, wasmCode []byte, fn string, argLiterals []json.RawMessage) (host.InvocationResult, error) {
	create, err := h.InvokeFunction(host.HostFunction{
		Kind:     host.HostFunctionCreateContract,
		IsToken:  isToken,
		WasmCode: wasmCode,
	})
	if err != nil {
		return host.InvocationResult{}, err
	}
	contractID, err := extractContractID(h, create.Value)
	if err != nil {
		return host.InvocationResult{}, err
	}

	conv := xdr.Converter{}
	args := make([]host.RawVal, 0, len(argLiterals))
	for _, lit := range argLiterals {
		sc, err := decodeArgLiteral(lit)
		if err != nil {
			return host.InvocationResult{}, err
		}
		rv, err := h.ToHostVal(conv, sc)
		if err != nil {
			return host.InvocationResult{}, err
		}
		args = append(args, rv)
	}

	return h.InvokeFunction(host.HostFunction{
		Kind:       host.HostFunctionCall,
		ContractID: contractID,
		Function:   host.Symbol(fn),
		Args:       args,
	})
}

// extractContractID reads the 32 raw bytes a CreateContract invocation
// returned (wrapped as a Bytes object) back into a plain array.
func extractContractID(h *host.Host, v host.RawVal) ([32]byte, error) {
	idLen, err := h.BytesLen(v)
	if err != nil {
		return [32]byte{}, err
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

func decodeWasm(b64 string) ([]byte, error) {
	if b64 == "" {
		return nil, errEmptyWasm
	}
	return base64.StdEncoding.DecodeString(b64)
}

func decodeArgLiteral(raw json.RawMessage) (xdr.ScVal, error) {
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
		return xdr.ScVal{}, errUnsupportedLiteral
	}
}

var (
	errEmptyWasm          = httpErr("wasm_base64 is required when is_token is false")
	errUnsupportedLiteral = httpErr("unsupported argument literal")
)

type httpErr string

func (e httpErr) Error() string { return string(e) }
