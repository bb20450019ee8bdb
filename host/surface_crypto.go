package host

import (
	"crypto/ed25519"
	"crypto/sha256"
)

// ComputeHashSha256 hashes a Bytes object's contents and returns the
// digest as a new Hash-typed object.
func (h *Host) ComputeHashSha256(v RawVal) (RawVal, error) {
	b, err := h.visitBytes(v)
	if err != nil {
		return 0, err
	}
	if err := h.budget.Charge(ComputeSha256Hash, uint64(b.Len())); err != nil {
		return 0, err
	}
	digest := sha256.Sum256(b.Bytes())
	handle, err := h.objects.add(objVal{typ: ObjHash, hash: digest})
	if err != nil {
		return 0, err
	}
	return FromObject(Object{Type: ObjHash, Handle: handle}), nil
}

// VerifySigEd25519 verifies sig over msg under the given PublicKey
// object, returning Void on success or a VmError-domain error on
// failure (the contract observes this as a trapping host call, matching
// host.rs's treatment of signature verification as fatal rather than a
// returned boolean).
func (h *Host) VerifySigEd25519(key RawVal, msg RawVal, sig RawVal) (RawVal, error) {
	keyObj, err := key.AsObject()
	if err != nil {
		return 0, err
	}
	keyOv, err := h.objects.visit(keyObj.Handle, ObjPublicKey)
	if err != nil {
		return 0, err
	}
	msgBytes, err := h.visitBytes(msg)
	if err != nil {
		return 0, err
	}
	sigBytes, err := h.visitBytes(sig)
	if err != nil {
		return 0, err
	}
	if err := h.budget.Charge(ComputeEd25519PubKeySig, uint64(msgBytes.Len())); err != nil {
		return 0, err
	}
	if !ed25519.Verify(keyOv.pubKey[:], msgBytes.Bytes(), sigBytes.Bytes()) {
		return 0, newErr(DomainVmError, CodeVmValidation, "ed25519 signature verification failed")
	}
	return Void, nil
}
