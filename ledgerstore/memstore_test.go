package ledgerstore_test

import (
	"testing"

	"soroban-host/host"
	"soroban-host/ledgerstore"
)

func TestMemStoreRoundTrips(t *testing.T) {
	s := ledgerstore.NewMemStore()
	key := host.LedgerKey("k1")

	if _, ok, err := s.GetEntry(key); err != nil || ok {
		t.Fatalf("expected missing entry, got ok=%v err=%v", ok, err)
	}

	want := host.LedgerEntry("hello world")
	if err := s.PutEntry(key, want); err != nil {
		t.Fatal(err)
	}

	got, ok, err := s.GetEntry(key)
	if err != nil || !ok {
		t.Fatalf("expected entry, got ok=%v err=%v", ok, err)
	}
	if string(got) != string(want) {
		t.Fatalf("got %q, want %q", got, want)
	}

	if err := s.DelEntry(key); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := s.GetEntry(key); ok {
		t.Fatal("expected entry to be gone after delete")
	}
}

func TestAccountsLookup(t *testing.T) {
	accs := ledgerstore.NewAccounts()
	var id [32]byte
	id[0] = 1

	if _, ok, _ := accs.GetAccount(id); ok {
		t.Fatal("expected unknown account")
	}

	accs.Put(id, host.Account{MasterWeight: 200})
	acc, ok, err := accs.GetAccount(id)
	if err != nil || !ok {
		t.Fatalf("expected account, got ok=%v err=%v", ok, err)
	}
	if acc.MasterWeight != 200 {
		t.Fatalf("got weight %d, want 200", acc.MasterWeight)
	}
}
