package xdr

// LedgerKey is the wire-level counterpart of host.LedgerKey: its Encode
// renders the opaque byte string the host itself sees. There is no xdr
// counterpart of host.LedgerEntry; ledgerstore stores
// host.LedgerKey/host.LedgerEntry values directly.
type LedgerKeyKind uint8

const (
	LedgerKeyContractData LedgerKeyKind = iota
	LedgerKeyContractCode
)

// LedgerKey names one ledger entry a HostFunction invocation may touch.
type LedgerKey struct {
	Kind       LedgerKeyKind
	ContractID [32]byte
	DataKey    ScVal
}

// Encode renders k as the opaque byte string host.LedgerKey wraps.
func (k LedgerKey) Encode() ([]byte, error) {
	var buf []byte
	buf = append(buf, byte(k.Kind))
	buf = append(buf, k.ContractID[:]...)
	if k.Kind == LedgerKeyContractData {
		enc, err := encodeScVal(k.DataKey)
		if err != nil {
			return nil, err
		}
		buf = append(buf, enc...)
	}
	return buf, nil
}

// HostFunctionArgs is the wire shape of one HostFunction invocation
// request a driver builds from user input before handing it to
// host.Host.InvokeFunction.
type HostFunctionArgs struct {
	ContractID [32]byte
	Function   string
	Args       []ScVal
}
