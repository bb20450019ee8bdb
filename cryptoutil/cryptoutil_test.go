package cryptoutil

import "testing"

func TestSha256KnownVector(t *testing.T) {
	got := Sha256([]byte("abc"))
	want := [32]byte{
		0xba, 0x78, 0x16, 0xbf, 0x8f, 0x01, 0xcf, 0xea,
		0x41, 0x41, 0x40, 0xde, 0x5d, 0xae, 0x22, 0x23,
		0xb0, 0x03, 0x61, 0xa3, 0x96, 0x17, 0x7a, 0x9c,
		0xb4, 0x10, 0xff, 0x61, 0xf2, 0x00, 0x15, 0xad,
	}
	if got != want {
		t.Fatalf("Sha256(abc) = %x, want %x", got, want)
	}
}

func TestGenerateSignVerifyEd25519RoundTrip(t *testing.T) {
	pub, priv, err := GenerateEd25519()
	if err != nil {
		t.Fatal(err)
	}
	msg := []byte("a signed invocation request")
	sig := SignEd25519(priv, msg)

	if !VerifyEd25519(pub, msg, sig) {
		t.Fatal("expected signature to verify against the matching public key")
	}
}

func TestVerifyEd25519RejectsTamperedMessage(t *testing.T) {
	pub, priv, err := GenerateEd25519()
	if err != nil {
		t.Fatal(err)
	}
	sig := SignEd25519(priv, []byte("original"))
	if VerifyEd25519(pub, []byte("tampered"), sig) {
		t.Fatal("expected signature to fail verification against a different message")
	}
}

func TestVerifyEd25519RejectsWrongKey(t *testing.T) {
	_, priv, err := GenerateEd25519()
	if err != nil {
		t.Fatal(err)
	}
	otherPub, _, err := GenerateEd25519()
	if err != nil {
		t.Fatal(err)
	}
	msg := []byte("hello")
	sig := SignEd25519(priv, msg)
	if VerifyEd25519(otherPub, msg, sig) {
		t.Fatal("expected signature to fail verification against an unrelated public key")
	}
}
