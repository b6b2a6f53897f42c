package secp256k1

import (
	"encoding/asn1"
	"encoding/hex"
	"fmt"

	secp "github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Lengths of the SEC1 point encodings.
const (
	PublicKeyBytesCompressed   = 33
	PublicKeyBytesUncompressed = 65
)

// SEC1 point encoding prefixes. Hybrid prefixes (0x06/0x07) are deliberately
// not accepted.
const (
	sec1PrefixEvenY        = 0x02
	sec1PrefixOddY         = 0x03
	sec1PrefixUncompressed = 0x04
)

// PublicKey is a secp256k1 public key: a valid, non-identity point on the
// curve. Values are immutable after construction and safe for concurrent
// use. Two PublicKey values are equal iff their points are equal, regardless
// of which encoding produced them.
type PublicKey struct {
	key secp.PublicKey
}

// checkSEC1PointEncoding enforces the length/prefix pairings the SEC1 codec
// admits before the point itself is validated.
func checkSEC1PointEncoding(op string, b []byte) error {
	switch len(b) {
	case PublicKeyBytesCompressed:
		if b[0] != sec1PrefixEvenY && b[0] != sec1PrefixOddY {
			return decodingError(op, fmt.Errorf("%w: compressed prefix %#02x",
				ErrInvalidPoint, b[0]))
		}
	case PublicKeyBytesUncompressed:
		if b[0] != sec1PrefixUncompressed {
			return decodingError(op, fmt.Errorf("%w: uncompressed prefix %#02x",
				ErrInvalidPoint, b[0]))
		}
	default:
		return decodingError(op, fmt.Errorf("%w: got %d bytes, want %d or %d",
			ErrInvalidKeyLength, len(b), PublicKeyBytesCompressed,
			PublicKeyBytesUncompressed))
	}
	return nil
}

func parsePoint(op string, b []byte) (*PublicKey, error) {
	if err := checkSEC1PointEncoding(op, b); err != nil {
		return nil, err
	}
	// ParsePubKey checks the curve equation and, for uncompressed input, the
	// coordinate ranges. The identity cannot be expressed in either accepted
	// encoding.
	pub, err := secp.ParsePubKey(b)
	if err != nil {
		return nil, decodingError(op, fmt.Errorf("%w: %v", ErrInvalidPoint, err))
	}
	return &PublicKey{key: *pub}, nil
}

// ParsePublicKeySEC1 decodes a public key from its SEC1 point encoding,
// either compressed (33 bytes, prefix 0x02/0x03) or uncompressed (65 bytes,
// prefix 0x04).
func ParsePublicKeySEC1(b []byte) (*PublicKey, error) {
	return parsePoint("ParsePublicKeySEC1", b)
}

// ParsePublicKeyDER decodes a SubjectPublicKeyInfo DER structure carrying the
// secp256k1 identifiers and an embedded SEC1 point.
func ParsePublicKeyDER(der []byte) (*PublicKey, error) {
	return parseSubjectPublicKeyInfo("ParsePublicKeyDER", der)
}

// ParsePublicKeyPEM decodes a "PUBLIC KEY" PEM block wrapping a
// SubjectPublicKeyInfo structure.
func ParsePublicKeyPEM(text string) (*PublicKey, error) {
	const op = "ParsePublicKeyPEM"
	der, err := decodePEM(op, pemTypePublic, text)
	if err != nil {
		return nil, err
	}
	return parseSubjectPublicKeyInfo(op, der)
}

func parseSubjectPublicKeyInfo(op string, der []byte) (*PublicKey, error) {
	var spki subjectPublicKeyInfo
	if err := unmarshalDER(op, der, &spki); err != nil {
		return nil, err
	}
	if err := checkAlgorithm(op, spki.Algorithm); err != nil {
		return nil, err
	}
	if spki.PublicKey.BitLength%8 != 0 {
		return nil, decodingError(op, fmt.Errorf("%w: subject public key is not octet aligned",
			ErrInvalidKeyEncoding))
	}
	return parsePoint(op, spki.PublicKey.RightAlign())
}

// SerializeSEC1 encodes the point in SEC1 form: 33 bytes when compressed is
// true, 65 bytes otherwise.
func (p *PublicKey) SerializeSEC1(compressed bool) []byte {
	if compressed {
		return p.key.SerializeCompressed()
	}
	return p.key.SerializeUncompressed()
}

// SerializeDER encodes the key as a SubjectPublicKeyInfo DER structure with
// the uncompressed point as the bit-string payload.
func (p *PublicKey) SerializeDER() []byte {
	point := p.key.SerializeUncompressed()
	return marshalDER(subjectPublicKeyInfo{
		Algorithm: ecAlgorithmIdentifier(),
		PublicKey: asn1.BitString{Bytes: point, BitLength: len(point) * 8},
	})
}

// SerializePEM encodes the key as a "PUBLIC KEY" PEM block.
func (p *PublicKey) SerializePEM() string {
	return encodePEM(pemTypePublic, p.SerializeDER())
}

// Equal reports whether both keys describe the same curve point.
func (p *PublicKey) Equal(other *PublicKey) bool {
	return p.key.IsEqual(&other.key)
}

// String returns the hex of the compressed point. Public keys are not
// secret, so printing them is safe.
func (p *PublicKey) String() string {
	return hex.EncodeToString(p.key.SerializeCompressed())
}
