// Package cryptoutil wraps the stdlib crypto primitives the host's
// crypto-domain host functions (ComputeHashSha256, VerifySigEd25519)
// build on. It exists as a seam: callers outside the host package (a
// driver validating a signed invocation request before it ever reaches
// host.Host) use the same primitives the host surface does, without
// reaching into package host directly.
package cryptoutil

import (
	"crypto/ed25519"
	"crypto/sha256"
)

// Sha256 returns the SHA-256 digest of data.
func Sha256(data []byte) [32]byte {
	return sha256.Sum256(data)
}

// VerifyEd25519 reports whether sig is a valid Ed25519 signature over
// msg under pubKey.
func VerifyEd25519(pubKey [32]byte, msg, sig []byte) bool {
	return ed25519.Verify(pubKey[:], msg, sig)
}

// GenerateEd25519 generates a fresh Ed25519 key pair, mainly for tests
// and the CLI driver's local signing helper.
func GenerateEd25519() (pub [32]byte, priv ed25519.PrivateKey, err error) {
	p, sk, err := ed25519.GenerateKey(nil)
	if err != nil {
		return pub, nil, err
	}
	copy(pub[:], p)
	return pub, sk, nil
}

// SignEd25519 signs msg with priv.
func SignEd25519(priv ed25519.PrivateKey, msg []byte) []byte {
	return ed25519.Sign(priv, msg)
}
