package host

import (
	"crypto/ed25519"
	"testing"
)

func TestComputeHashSha256MatchesKnownDigest(t *testing.T) {
	h := newTestHost(nil)
	msg, err := h.NewBytesObject([]byte("abc"))
	if err != nil {
		t.Fatal(err)
	}
	digest, err := h.ComputeHashSha256(msg)
	if err != nil {
		t.Fatal(err)
	}
	obj, err := digest.AsObject()
	if err != nil || obj.Type != ObjHash {
		t.Fatalf("ComputeHashSha256 result = (%v, %v), want an ObjHash", obj, err)
	}
	ov, err := h.objects.visit(obj.Handle, ObjHash)
	if err != nil {
		t.Fatal(err)
	}
	want := [32]byte{
		0xba, 0x78, 0x16, 0xbf, 0x8f, 0x01, 0xcf, 0xea,
		0x41, 0x41, 0x40, 0xde, 0x5d, 0xae, 0x22, 0x23,
		0xb0, 0x03, 0x61, 0xa3, 0x96, 0x17, 0x7a, 0x9c,
		0xb4, 0x10, 0xff, 0x61, 0xf2, 0x00, 0x15, 0xad,
	}
	if ov.hash != want {
		t.Fatalf("digest = %x, want %x", ov.hash, want)
	}
}

func TestVerifySigEd25519AcceptsValidRejectsInvalid(t *testing.T) {
	h := newTestHost(nil)

	pub, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		t.Fatal(err)
	}
	var pubArr [32]byte
	copy(pubArr[:], pub)
	keyHandle, err := h.objects.add(objVal{typ: ObjPublicKey, pubKey: pubArr})
	if err != nil {
		t.Fatal(err)
	}
	keyObj := FromObject(Object{Type: ObjPublicKey, Handle: keyHandle})

	msgObj, err := h.NewBytesObject([]byte("hello contract"))
	if err != nil {
		t.Fatal(err)
	}
	sig := ed25519.Sign(priv, []byte("hello contract"))
	sigObj, err := h.NewBytesObject(sig)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := h.VerifySigEd25519(keyObj, msgObj, sigObj); err != nil {
		t.Fatalf("expected valid signature to verify, got %v", err)
	}

	badSigObj, err := h.NewBytesObject(append([]byte{}, sig...))
	if err != nil {
		t.Fatal(err)
	}
	tamperedMsg, err := h.NewBytesObject([]byte("tampered message"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := h.VerifySigEd25519(keyObj, tamperedMsg, badSigObj); err == nil {
		t.Fatal("expected verification of a tampered message to fail")
	}
}

func TestVerifySigEd25519RejectsNonPublicKeyObject(t *testing.T) {
	h := newTestHost(nil)
	notAKey, err := h.NewBytesObject([]byte("not a key"))
	if err != nil {
		t.Fatal(err)
	}
	msgObj, err := h.NewBytesObject([]byte("m"))
	if err != nil {
		t.Fatal(err)
	}
	sigObj, err := h.NewBytesObject([]byte("s"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := h.VerifySigEd25519(notAKey, msgObj, sigObj); err == nil {
		t.Fatal("expected error using a Bytes object where a PublicKey object is required")
	}
}
