package secp256k1

import (
	"crypto/sha256"

	secp "github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// verifyPolicy selects how the s component of a signature is judged. Both
// policies share the same comparison core; the policy only adds or removes
// the low-s constraint.
type verifyPolicy int

const (
	// rejectHighS admits only the canonical low root (s <= n/2).
	rejectHighS verifyPolicy = iota

	// acceptEitherRoot admits both s and n-s. Plain ECDSA verification has
	// this property inherently: (r, n-s) validates whenever (r, s) does.
	acceptEitherRoot
)

// orderAsFieldVal is the group order as a field value, used for the second
// r candidate during verification.
var orderAsFieldVal = func() *secp.FieldVal {
	var f secp.FieldVal
	f.SetByteSlice(secp.Params().N.Bytes())
	return &f
}()

// VerifySignature reports whether sig is a valid 64-byte r || s signature of
// message under p, with s required to be in canonical low form (s <= n/2).
// The high-s representation is rejected even though it is mathematically
// equivalent. Malformed signatures yield false, never an error.
func (p *PublicKey) VerifySignature(message, sig []byte) bool {
	digest := sha256.Sum256(message)
	return p.verifyDigest(digest[:], sig, rejectHighS)
}

// VerifySignatureWithMalleability is VerifySignature without the low-s
// constraint: both ECDSA roots of s are accepted for the same message and
// key. Use this when interoperating with signers that do not normalize s;
// callers that need replay protection must use VerifySignature.
func (p *PublicKey) VerifySignatureWithMalleability(message, sig []byte) bool {
	digest := sha256.Sum256(message)
	return p.verifyDigest(digest[:], sig, acceptEitherRoot)
}

// VerifyDigest is VerifySignature over a precomputed 32-byte digest.
func (p *PublicKey) VerifyDigest(digest, sig []byte) bool {
	return p.verifyDigest(digest, sig, rejectHighS)
}

// VerifyDigestWithMalleability is VerifySignatureWithMalleability over a
// precomputed 32-byte digest.
func (p *PublicKey) VerifyDigestWithMalleability(digest, sig []byte) bool {
	return p.verifyDigest(digest, sig, acceptEitherRoot)
}

func (p *PublicKey) verifyDigest(digest, sig []byte, policy verifyPolicy) bool {
	parsed, err := ParseSignature(sig)
	if err != nil {
		return false
	}
	if policy == rejectHighS && parsed.s.IsOverHalfOrder() {
		return false
	}
	return verifyECDSA(&p.key, digest, parsed)
}

// verifyECDSA implements ECDSA verification with the group operations kept in
// Jacobian projective space, avoiding the affine inversion of the textbook
// final step:
//
//	e = H(m), w = s^-1 mod n
//	u1 = e*w mod n, u2 = r*w mod n
//	X = u1*G + u2*Q; fail if X is the identity
//	valid iff r*X.z^2 == X.x (mod p), or, when r+n < p,
//	(r+n)*X.z^2 == X.x (mod p)
//
// The second candidate exists because r was reduced mod n from a coordinate
// that lives mod p and the curve cofactor is 1. Range validation of r and s
// already happened during signature parsing.
func verifyECDSA(pub *secp.PublicKey, digest []byte, sig *Signature) bool {
	var e secp.ModNScalar
	e.SetByteSlice(digest)

	w := new(secp.ModNScalar).InverseValNonConst(&sig.s)
	u1 := new(secp.ModNScalar).Mul2(&e, w)
	u2 := new(secp.ModNScalar).Mul2(&sig.r, w)

	var q, u1G, u2Q, x secp.JacobianPoint
	pub.AsJacobian(&q)
	secp.ScalarBaseMultNonConst(u1, &u1G)
	secp.ScalarMultNonConst(u2, &q, &u2Q)
	secp.AddNonConst(&u1G, &u2Q, &x)

	if (x.X.IsZero() && x.Y.IsZero()) || x.Z.IsZero() {
		return false
	}

	z := new(secp.FieldVal).SquareVal(&x.Z)
	rModP := modNScalarToField(&sig.r)
	result := new(secp.FieldVal).Mul2(&rModP, z).Normalize()
	if result.Equals(&x.X) {
		return true
	}

	if rModP.IsGtOrEqPrimeMinusOrder() {
		return false
	}
	rModP.Add(orderAsFieldVal)
	result.Mul2(&rModP, z).Normalize()
	return result.Equals(&x.X)
}

// fieldToModNScalar reduces a field value modulo the group order, reporting
// whether the reduction wrapped.
func fieldToModNScalar(v *secp.FieldVal) (secp.ModNScalar, uint32) {
	var buf [32]byte
	v.PutBytes(&buf)
	var s secp.ModNScalar
	overflow := s.SetBytes(&buf)
	zeroArray32(&buf)
	return s, overflow
}

// modNScalarToField converts a scalar modulo the group order to a field
// value.
func modNScalarToField(v *secp.ModNScalar) secp.FieldVal {
	var buf [32]byte
	v.PutBytes(&buf)
	var f secp.FieldVal
	f.SetBytes(&buf)
	return f
}
