package host

import "testing"

type stubAccountProvider struct {
	accounts map[[32]byte]Account
}

func (s stubAccountProvider) GetAccount(id [32]byte) (Account, bool, error) {
	acc, ok := s.accounts[id]
	return acc, ok, nil
}

func TestAccountThresholdsAndSignerWeight(t *testing.T) {
	master := [32]byte{1}
	signer := [32]byte{2}
	stranger := [32]byte{3}

	h := newTestHost(nil)
	h.WithAccountProvider(stubAccountProvider{accounts: map[[32]byte]Account{
		master: {
			MasterWeight:  10,
			LowThreshold:  1,
			MedThreshold:  2,
			HighThreshold: 3,
			Signers:       []Signer{{Key: signer, Weight: 5}},
		},
	}})

	if got, err := h.AccountGetLowThreshold(master); err != nil || got != 1 {
		t.Fatalf("AccountGetLowThreshold = (%v, %v), want (1, nil)", got, err)
	}
	if got, err := h.AccountGetMediumThreshold(master); err != nil || got != 2 {
		t.Fatalf("AccountGetMediumThreshold = (%v, %v), want (2, nil)", got, err)
	}
	if got, err := h.AccountGetHighThreshold(master); err != nil || got != 3 {
		t.Fatalf("AccountGetHighThreshold = (%v, %v), want (3, nil)", got, err)
	}

	if got, err := h.AccountGetSignerWeight(master, master); err != nil || got != 10 {
		t.Fatalf("master signer weight = (%v, %v), want (10, nil)", got, err)
	}
	if got, err := h.AccountGetSignerWeight(master, signer); err != nil || got != 5 {
		t.Fatalf("extra signer weight = (%v, %v), want (5, nil)", got, err)
	}
	if got, err := h.AccountGetSignerWeight(master, stranger); err != nil || got != 0 {
		t.Fatalf("unknown signer weight = (%v, %v), want (0, nil)", got, err)
	}
}

func TestAccountLookupMissingAccountErrors(t *testing.T) {
	h := newTestHost(nil)
	h.WithAccountProvider(stubAccountProvider{accounts: map[[32]byte]Account{}})

	if _, err := h.AccountGetLowThreshold([32]byte{9}); err == nil {
		t.Fatal("expected error looking up an unknown account")
	}
}

func TestAccountLookupNoProviderConfiguredErrors(t *testing.T) {
	h := newTestHost(nil)
	if _, err := h.AccountGetLowThreshold([32]byte{1}); err == nil {
		t.Fatal("expected error when no AccountProvider is wired in")
	}
}
