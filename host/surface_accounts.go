package host

// Signer is one additional signing key on an Account, beyond its master
// key.
type Signer struct {
	Key    [32]byte
	Weight uint8
}

// Account is the subset of ledger account state the host's threshold
// queries read. Looked up through the BackingStore the same way
// contract data is, keyed by the account's master public key.
type Account struct {
	MasterWeight  uint8
	LowThreshold  uint8
	MedThreshold  uint8
	HighThreshold uint8
	Signers       []Signer
}

// AccountProvider resolves an account ID to its Account record. Wired in
// by the driver from whatever backing store holds accounts; kept
// separate from BackingStore since accounts are read-only from the
// host's perspective.
type AccountProvider interface {
	GetAccount(id [32]byte) (Account, bool, error)
}

func (h *Host) account(id [32]byte) (Account, error) {
	if h.accounts == nil {
		return Account{}, newErr(DomainHostStorageError, CodeMissingValue, "no account provider configured")
	}
	acc, ok, err := h.accounts.GetAccount(id)
	if err != nil {
		return Account{}, err
	}
	if !ok {
		return Account{}, newErr(DomainHostStorageError, CodeMissingValue, "unknown account")
	}
	return acc, nil
}

// AccountGetLowThreshold returns the account's low threshold.
func (h *Host) AccountGetLowThreshold(id [32]byte) (uint32, error) {
	acc, err := h.account(id)
	if err != nil {
		return 0, err
	}
	return uint32(acc.LowThreshold), nil
}

// AccountGetMediumThreshold returns the account's medium threshold.
func (h *Host) AccountGetMediumThreshold(id [32]byte) (uint32, error) {
	acc, err := h.account(id)
	if err != nil {
		return 0, err
	}
	return uint32(acc.MedThreshold), nil
}

// AccountGetHighThreshold returns the account's high threshold.
func (h *Host) AccountGetHighThreshold(id [32]byte) (uint32, error) {
	acc, err := h.account(id)
	if err != nil {
		return 0, err
	}
	return uint32(acc.HighThreshold), nil
}

// AccountGetSignerWeight returns the signing weight of signerKey on the
// account: the master weight if signerKey is the account's own master
// key, else the weight of a matching entry in Signers, else 0 (neither
// case is an error; an unknown signer simply carries no authority).
func (h *Host) AccountGetSignerWeight(id [32]byte, signerKey [32]byte) (uint32, error) {
	acc, err := h.account(id)
	if err != nil {
		return 0, err
	}
	if signerKey == id {
		return uint32(acc.MasterWeight), nil
	}
	for _, s := range acc.Signers {
		if s.Key == signerKey {
			return uint32(s.Weight), nil
		}
	}
	return 0, nil
}
