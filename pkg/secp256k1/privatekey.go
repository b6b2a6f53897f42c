package secp256k1

import (
	"crypto/subtle"
	"encoding/asn1"
	"fmt"
	"io"

	secp "github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// PrivateKeyBytes is the length of the raw big-endian scalar encoding of a
// private key.
const PrivateKeyBytes = 32

// PrivateKey is a secp256k1 private key: a single secret scalar in [1, n-1]
// where n is the group order. Values are immutable after construction and
// safe for concurrent use.
type PrivateKey struct {
	key secp.PrivateKey
}

// GeneratePrivateKey creates a new private key using entropy from rand. The
// caller owns the randomness source; this package never holds process-wide
// random state and randomness is consumed only here, never during signing.
func GeneratePrivateKey(rand io.Reader) (*PrivateKey, error) {
	key, err := secp.GeneratePrivateKeyFromRand(rand)
	if err != nil {
		return nil, fmt.Errorf("secp256k1: generate private key: %w", err)
	}
	return &PrivateKey{key: *key}, nil
}

// parseScalar validates and converts a raw 32-byte big-endian scalar.
func parseScalar(op string, raw []byte) (*secp.ModNScalar, error) {
	if len(raw) != PrivateKeyBytes {
		return nil, decodingError(op, fmt.Errorf("%w: got %d bytes, want %d",
			ErrInvalidKeyLength, len(raw), PrivateKeyBytes))
	}
	var s secp.ModNScalar
	if overflow := s.SetByteSlice(raw); overflow {
		return nil, decodingError(op, fmt.Errorf("%w: scalar is not below the group order",
			ErrScalarOutOfRange))
	}
	if s.IsZero() {
		return nil, decodingError(op, fmt.Errorf("%w: scalar is zero", ErrScalarOutOfRange))
	}
	return &s, nil
}

// ParsePrivateKeySEC1 decodes a private key from its raw SEC1 form: exactly
// 32 big-endian bytes encoding a scalar in [1, n-1].
func ParsePrivateKeySEC1(raw []byte) (*PrivateKey, error) {
	s, err := parseScalar("ParsePrivateKeySEC1", raw)
	if err != nil {
		return nil, err
	}
	return &PrivateKey{key: *secp.NewPrivateKey(s)}, nil
}

// parseECPrivateKeyDER decodes an RFC 5915 ECPrivateKey structure. When
// requireCurveOID is set the named curve identifier must be present, as it is
// in the standalone "EC PRIVATE KEY" form; inside PKCS8 it is optional since
// the outer algorithm identifier names the curve.
func parseECPrivateKeyDER(op string, der []byte, requireCurveOID bool) (*PrivateKey, error) {
	var ec ecPrivateKey
	if err := unmarshalDER(op, der, &ec); err != nil {
		return nil, err
	}
	if ec.Version != 1 {
		return nil, decodingError(op, fmt.Errorf("%w: ECPrivateKey version %d",
			ErrInvalidKeyEncoding, ec.Version))
	}
	if ec.NamedCurveOID == nil {
		if requireCurveOID {
			return nil, decodingError(op, fmt.Errorf("%w: missing named curve",
				ErrWrongAlgorithmID))
		}
	} else if !ec.NamedCurveOID.Equal(oidCurveSecp256k1) {
		return nil, decodingError(op, fmt.Errorf("%w: curve %v", ErrWrongAlgorithmID,
			ec.NamedCurveOID))
	}

	s, err := parseScalar(op, ec.PrivateKey)
	if err != nil {
		return nil, err
	}
	key := &PrivateKey{key: *secp.NewPrivateKey(s)}

	// An embedded public key that disagrees with the scalar indicates a
	// corrupted or tampered encoding.
	if ec.PublicKey.BitLength != 0 {
		if ec.PublicKey.BitLength%8 != 0 {
			return nil, decodingError(op, fmt.Errorf("%w: embedded public key is not octet aligned",
				ErrInvalidKeyEncoding))
		}
		embedded, err := ParsePublicKeySEC1(ec.PublicKey.RightAlign())
		if err != nil {
			return nil, decodingError(op, fmt.Errorf("%w: embedded public key: %v",
				ErrInvalidPoint, err))
		}
		if !embedded.Equal(key.PublicKey()) {
			return nil, decodingError(op, fmt.Errorf("%w: embedded public key does not match scalar",
				ErrInvalidPoint))
		}
	}
	return key, nil
}

// ParsePrivateKeyRFC5915DER decodes an RFC 5915 ECPrivateKey DER structure
// carrying the secp256k1 named curve.
func ParsePrivateKeyRFC5915DER(der []byte) (*PrivateKey, error) {
	return parseECPrivateKeyDER("ParsePrivateKeyRFC5915DER", der, true)
}

// ParsePrivateKeyRFC5915PEM decodes the legacy OpenSSL "EC PRIVATE KEY" PEM
// form (RFC 5915).
func ParsePrivateKeyRFC5915PEM(text string) (*PrivateKey, error) {
	const op = "ParsePrivateKeyRFC5915PEM"
	der, err := decodePEM(op, pemTypeECPrivate, text)
	if err != nil {
		return nil, err
	}
	return parseECPrivateKeyDER(op, der, true)
}

// parsePKCS8 validates the PKCS8 envelope and hands the payload to the
// RFC 5915 decoder.
func parsePKCS8(op string, der []byte) (*PrivateKey, error) {
	var p8 pkcs8PrivateKey
	if err := unmarshalDER(op, der, &p8); err != nil {
		return nil, err
	}
	if p8.Version != 0 {
		return nil, decodingError(op, fmt.Errorf("%w: PKCS8 version %d",
			ErrInvalidKeyEncoding, p8.Version))
	}
	if err := checkAlgorithm(op, p8.Algorithm); err != nil {
		return nil, err
	}
	return parseECPrivateKeyDER(op, p8.PrivateKey, false)
}

// ParsePrivateKeyPKCS8DER decodes a PKCS8 DER structure wrapping a secp256k1
// private key.
func ParsePrivateKeyPKCS8DER(der []byte) (*PrivateKey, error) {
	return parsePKCS8("ParsePrivateKeyPKCS8DER", der)
}

// ParsePrivateKeyPKCS8PEM decodes a PKCS8 "PRIVATE KEY" PEM block wrapping a
// secp256k1 private key.
func ParsePrivateKeyPKCS8PEM(text string) (*PrivateKey, error) {
	const op = "ParsePrivateKeyPKCS8PEM"
	der, err := decodePEM(op, pemTypePKCS8, text)
	if err != nil {
		return nil, err
	}
	return parsePKCS8(op, der)
}

// SerializeSEC1 returns the raw scalar as exactly 32 big-endian bytes,
// left-padded with zeros.
func (k *PrivateKey) SerializeSEC1() []byte {
	return k.key.Serialize()
}

// serializeECPrivateKey builds the RFC 5915 inner structure. The embedded
// public key is always included; the curve identifier only in the standalone
// form.
func (k *PrivateKey) serializeECPrivateKey(includeCurveOID bool) []byte {
	raw := k.key.Serialize()
	defer ZeroizeBytes(raw)

	point := k.PublicKey().SerializeSEC1(false)
	ec := ecPrivateKey{
		Version:    1,
		PrivateKey: raw,
		PublicKey:  asn1.BitString{Bytes: point, BitLength: len(point) * 8},
	}
	if includeCurveOID {
		ec.NamedCurveOID = oidCurveSecp256k1
	}
	return marshalDER(ec)
}

// SerializeRFC5915DER encodes the key as an RFC 5915 ECPrivateKey DER
// structure with the secp256k1 named curve and embedded public key,
// byte-compatible with OpenSSL output.
func (k *PrivateKey) SerializeRFC5915DER() []byte {
	return k.serializeECPrivateKey(true)
}

// SerializeRFC5915PEM encodes the key as an "EC PRIVATE KEY" PEM block.
func (k *PrivateKey) SerializeRFC5915PEM() string {
	return encodePEM(pemTypeECPrivate, k.SerializeRFC5915DER())
}

// SerializePKCS8DER encodes the key as a PKCS8 DER structure carrying the
// secp256k1 algorithm identifier.
func (k *PrivateKey) SerializePKCS8DER() []byte {
	inner := k.serializeECPrivateKey(false)
	defer ZeroizeBytes(inner)
	return marshalDER(pkcs8PrivateKey{
		Version:    0,
		Algorithm:  ecAlgorithmIdentifier(),
		PrivateKey: inner,
	})
}

// SerializePKCS8PEM encodes the key as a PKCS8 "PRIVATE KEY" PEM block.
func (k *PrivateKey) SerializePKCS8PEM() string {
	return encodePEM(pemTypePKCS8, k.SerializePKCS8DER())
}

// PublicKey derives the public key via scalar multiplication of the base
// point. The derivation is deterministic and one-way.
func (k *PrivateKey) PublicKey() *PublicKey {
	return &PublicKey{key: *k.key.PubKey()}
}

// Equal reports whether both keys hold the same scalar. The comparison runs
// in constant time.
func (k *PrivateKey) Equal(other *PrivateKey) bool {
	a := k.key.Serialize()
	defer ZeroizeBytes(a)
	b := other.key.Serialize()
	defer ZeroizeBytes(b)
	return subtle.ConstantTimeCompare(a, b) == 1
}

// Zeroize overwrites the key material. The key must not be used afterwards.
// This is best-effort hygiene; see ZeroizeBytes for the caveats.
func (k *PrivateKey) Zeroize() {
	k.key.Zero()
}

// String returns a redacted placeholder. The scalar is never printed;
// serialize explicitly if the raw key is needed.
func (k *PrivateKey) String() string {
	return "PrivateKey(secp256k1)[redacted]"
}
