package secp256k1

import (
	"crypto/sha256"
	"fmt"

	secp "github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// SignatureBytes is the length of the primary fixed-size signature encoding:
// 32 bytes of big-endian r followed by 32 bytes of big-endian s, with no
// ASN.1 wrapping.
const SignatureBytes = 64

// Signature is an ECDSA signature: a pair (r, s) of scalars in [1, n-1].
// Signatures are transient values produced per signing operation; the
// primary wire form is the fixed 64-byte r || s encoding and a strict
// minimal-DER SEQUENCE form is available for interchange.
type Signature struct {
	r secp.ModNScalar
	s secp.ModNScalar
}

// ParseSignature decodes the fixed 64-byte r || s form. Any other length is
// rejected, as are r or s values outside [1, n-1].
func ParseSignature(sig []byte) (*Signature, error) {
	const op = "ParseSignature"
	if len(sig) != SignatureBytes {
		return nil, decodingError(op, fmt.Errorf("%w: got %d bytes, want %d",
			ErrInvalidSignatureEncoding, len(sig), SignatureBytes))
	}
	var r, s secp.ModNScalar
	if overflow := r.SetByteSlice(sig[:32]); overflow {
		return nil, decodingError(op, fmt.Errorf("%w: r is not below the group order",
			ErrInvalidSignatureEncoding))
	}
	if r.IsZero() {
		return nil, decodingError(op, fmt.Errorf("%w: r is zero", ErrInvalidSignatureEncoding))
	}
	if overflow := s.SetByteSlice(sig[32:]); overflow {
		return nil, decodingError(op, fmt.Errorf("%w: s is not below the group order",
			ErrInvalidSignatureEncoding))
	}
	if s.IsZero() {
		return nil, decodingError(op, fmt.Errorf("%w: s is zero", ErrInvalidSignatureEncoding))
	}
	return &Signature{r: r, s: s}, nil
}

// Serialize returns the fixed 64-byte r || s encoding.
func (sig *Signature) Serialize() []byte {
	var rBytes, sBytes [32]byte
	sig.r.PutBytes(&rBytes)
	sig.s.PutBytes(&sBytes)
	b := make([]byte, SignatureBytes)
	copy(b[:32], rBytes[:])
	copy(b[32:], sBytes[:])
	return b
}

// IsLowS reports whether s is in the canonical low half of the scalar range
// (s <= n/2). Only low-s signatures satisfy the strict verification policy.
func (sig *Signature) IsLowS() bool {
	return !sig.s.IsOverHalfOrder()
}

// IsEqual reports whether both signatures share the same r and s scalars.
func (sig *Signature) IsEqual(other *Signature) bool {
	return sig.r.Equals(&other.r) && sig.s.Equals(&other.s)
}

// SignMessage hashes message with SHA-256 and signs the digest. Signing is
// deterministic: repeated calls with the same key and message produce
// byte-identical 64-byte signatures. No randomness is consumed.
func (k *PrivateKey) SignMessage(message []byte) []byte {
	digest := sha256.Sum256(message)
	return k.SignDigest(digest[:])
}

// SignDigest signs a precomputed 32-byte digest. The nonce is derived from
// the private key and digest per RFC 6979 (HMAC-SHA256), so the operation is
// deterministic and bias-free. The s component is emitted exactly as
// computed; either root may appear, and low-s policy is left to verifiers.
func (k *PrivateKey) SignDigest(digest []byte) []byte {
	return signRFC6979(&k.key, digest).Serialize()
}

// signRFC6979 produces a deterministic ECDSA signature with the nonce drawn
// from RFC 6979:
//
//  1. k = RFC6979(d, H(m)) for the current iteration count
//  2. R = kG, r = R.x mod n; next iteration if r = 0
//  3. s = k^-1(e + rd) mod n; next iteration if s = 0
//  4. Return (r, s)
//
// The degenerate r = 0 / s = 0 cases have probability on the order of 2^-256
// but must retry with the next deterministically derived nonce rather than
// fail, so the loop is unbounded. Unlike BIP 62-style signers, s is not
// negated when it falls in the upper half of the range.
func signRFC6979(priv *secp.PrivateKey, digest []byte) *Signature {
	privBytes := priv.Serialize()
	defer ZeroizeBytes(privBytes)

	var e secp.ModNScalar
	e.SetByteSlice(digest)

	for iteration := uint32(0); ; iteration++ {
		k := secp.NonceRFC6979(privBytes, digest, nil, nil, iteration)

		var kG secp.JacobianPoint
		secp.ScalarBaseMultNonConst(k, &kG)
		kG.ToAffine()

		r, _ := fieldToModNScalar(&kG.X)
		if r.IsZero() {
			k.Zero()
			continue
		}

		kInv := new(secp.ModNScalar).InverseValNonConst(k)
		s := new(secp.ModNScalar).Mul2(&priv.Key, &r).Add(&e).Mul(kInv)
		k.Zero()
		kInv.Zero()
		if s.IsZero() {
			continue
		}

		return &Signature{r: r, s: *s}
	}
}
