// Package secp256k1 provides ECDSA key management over the secp256k1 curve:
// key generation, multi-format serialization of private and public keys,
// deterministic (RFC 6979) signature generation, and signature verification
// under both a strict low-s policy and a malleability-tolerant policy.
//
// The curve arithmetic itself is delegated to the decred secp256k1 primitives
// (github.com/decred/dcrd/dcrec/secp256k1/v4); this package supplies the
// policy and encoding layer on top:
//
//   - Private keys: raw 32-byte scalar, PKCS8 DER/PEM, and RFC 5915 DER/PEM
//     ("EC PRIVATE KEY") encodings, all converging on a single internal
//     scalar representation.
//   - Public keys: SEC1 compressed/uncompressed points and
//     SubjectPublicKeyInfo DER/PEM encodings.
//   - Signatures: fixed 64-byte big-endian r || s as the primary form, with a
//     strict minimal-DER SEQUENCE encoding for interchange.
//
// Signing is fully deterministic: the per-message nonce is derived with
// RFC 6979 (HMAC-SHA256), so identical key and message always produce
// byte-identical signatures and no randomness is consumed after key
// generation. The s component is emitted exactly as computed; low-s
// canonicalization is a verification-time policy, not a signing-time one.
// VerifySignature enforces the canonical low-s form while
// VerifySignatureWithMalleability accepts either root, which is required when
// interoperating with signers that do not normalize s.
//
// All decoders are strict. Inputs with the wrong length, malformed ASN.1 or
// PEM framing, a mismatched algorithm or curve identifier, an out-of-range
// scalar, or an invalid curve point are rejected with a KeyDecodingError.
// Verification failures are not errors; the verify methods simply return
// false.
//
// Key values are immutable after construction and safe for concurrent use by
// any number of readers. No operation in this package performs I/O or holds
// shared mutable state.
package secp256k1
