package secp256k1

import (
	"crypto/sha256"
	"testing"

	secp "github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/require"
)

// flipSRoot returns the signature with s replaced by n-s, the other valid
// ECDSA root for the same message and key.
func flipSRoot(t *testing.T, sig []byte) []byte {
	t.Helper()
	parsed, err := ParseSignature(sig)
	require.NoError(t, err)
	flipped := &Signature{r: parsed.r, s: *new(secp.ModNScalar).NegateVal(&parsed.s)}
	return flipped.Serialize()
}

func TestVerificationPolicies(t *testing.T) {
	key := mustGenerateKey(t)
	pub := key.PublicKey()
	msg := []byte("malleability policy")

	sig := key.SignMessage(msg)
	parsed, err := ParseSignature(sig)
	require.NoError(t, err)

	canonical := sig
	highS := flipSRoot(t, sig)
	if !parsed.IsLowS() {
		canonical, highS = highS, canonical
	}

	// Both roots satisfy the tolerant policy.
	require.True(t, pub.VerifySignatureWithMalleability(msg, canonical))
	require.True(t, pub.VerifySignatureWithMalleability(msg, highS))

	// Only the low root satisfies the strict policy.
	require.True(t, pub.VerifySignature(msg, canonical))
	require.False(t, pub.VerifySignature(msg, highS))
}

func TestVerifyRejectsMismatches(t *testing.T) {
	key := mustGenerateKey(t)
	pub := key.PublicKey()
	otherPub := mustGenerateKey(t).PublicKey()

	msg := []byte("original message")
	sig := key.SignMessage(msg)

	require.False(t, pub.VerifySignature([]byte("another message"), sig))
	require.False(t, pub.VerifySignatureWithMalleability([]byte("another message"), sig))

	require.False(t, otherPub.VerifySignature(msg, sig))
	require.False(t, otherPub.VerifySignatureWithMalleability(msg, sig))

	tamperedR := append([]byte{}, sig...)
	tamperedR[5] ^= 0x40
	require.False(t, pub.VerifySignatureWithMalleability(msg, tamperedR))

	tamperedS := append([]byte{}, sig...)
	tamperedS[40] ^= 0x40
	require.False(t, pub.VerifySignatureWithMalleability(msg, tamperedS))
}

func TestVerifyReturnsFalseForMalformedSignatures(t *testing.T) {
	key := mustGenerateKey(t)
	pub := key.PublicKey()
	msg := []byte("malformed signatures are a false outcome, not an error")

	require.False(t, pub.VerifySignature(msg, nil))
	require.False(t, pub.VerifySignature(msg, make([]byte, 63)))
	require.False(t, pub.VerifySignature(msg, make([]byte, 64)))
	require.False(t, pub.VerifySignature(msg, make([]byte, 65)))

	// r and s must be below the group order even under the tolerant policy.
	overflow := make([]byte, 64)
	for i := range overflow {
		overflow[i] = 0xff
	}
	require.False(t, pub.VerifySignatureWithMalleability(msg, overflow))
}

func TestVerifyDigestMatchesVerifyMessage(t *testing.T) {
	key := mustGenerateKey(t)
	pub := key.PublicKey()
	msg := []byte("prehashed input")
	sig := key.SignMessage(msg)

	digest := sha256.Sum256(msg)
	require.Equal(t, pub.VerifySignature(msg, sig), pub.VerifyDigest(digest[:], sig))
	require.Equal(t,
		pub.VerifySignatureWithMalleability(msg, sig),
		pub.VerifyDigestWithMalleability(digest[:], sig))
}

func TestSignatureIsEqual(t *testing.T) {
	key := mustGenerateKey(t)

	sig1, err := ParseSignature(key.SignMessage([]byte("one")))
	require.NoError(t, err)
	sig2, err := ParseSignature(key.SignMessage([]byte("one")))
	require.NoError(t, err)
	sig3, err := ParseSignature(key.SignMessage([]byte("two")))
	require.NoError(t, err)

	require.True(t, sig1.IsEqual(sig2))
	require.False(t, sig1.IsEqual(sig3))
}
