package secp256k1

import (
	"bytes"
	"encoding/asn1"
	"encoding/pem"
	"fmt"
)

// ASN.1 plumbing shared by the private and public key codecs. The structures
// follow RFC 5208 (PKCS8), RFC 5915 (elliptic curve private keys), and
// RFC 5480 (SubjectPublicKeyInfo). crypto/x509 cannot express secp256k1, so
// the fixed shapes are marshaled directly with encoding/asn1.

var (
	// id-ecPublicKey, RFC 5480 section 2.1.1.
	oidPublicKeyECDSA = asn1.ObjectIdentifier{1, 2, 840, 10045, 2, 1}

	// secp256k1 named curve, SEC 2 section 2.4.1.
	oidCurveSecp256k1 = asn1.ObjectIdentifier{1, 3, 132, 0, 10}
)

const (
	pemTypePKCS8     = "PRIVATE KEY"
	pemTypeECPrivate = "EC PRIVATE KEY"
	pemTypePublic    = "PUBLIC KEY"
)

type algorithmIdentifier struct {
	Algorithm  asn1.ObjectIdentifier
	Parameters asn1.ObjectIdentifier
}

type pkcs8PrivateKey struct {
	Version    int
	Algorithm  algorithmIdentifier
	PrivateKey []byte
}

// ecPrivateKey is the RFC 5915 ECPrivateKey structure. The curve identifier
// and embedded public key are optional: the PKCS8 form omits the identifier
// because the outer AlgorithmIdentifier already names the curve, while the
// standalone "EC PRIVATE KEY" form carries both, matching OpenSSL output.
type ecPrivateKey struct {
	Version       int
	PrivateKey    []byte
	NamedCurveOID asn1.ObjectIdentifier `asn1:"optional,explicit,tag:0"`
	PublicKey     asn1.BitString        `asn1:"optional,explicit,tag:1"`
}

type subjectPublicKeyInfo struct {
	Algorithm algorithmIdentifier
	PublicKey asn1.BitString
}

func ecAlgorithmIdentifier() algorithmIdentifier {
	return algorithmIdentifier{
		Algorithm:  oidPublicKeyECDSA,
		Parameters: oidCurveSecp256k1,
	}
}

func checkAlgorithm(op string, algo algorithmIdentifier) error {
	if !algo.Algorithm.Equal(oidPublicKeyECDSA) {
		return decodingError(op, fmt.Errorf("%w: algorithm %v", ErrWrongAlgorithmID,
			algo.Algorithm))
	}
	if !algo.Parameters.Equal(oidCurveSecp256k1) {
		return decodingError(op, fmt.Errorf("%w: curve %v", ErrWrongAlgorithmID,
			algo.Parameters))
	}
	return nil
}

// unmarshalDER decodes der into v and rejects trailing bytes. ASN.1 decoders
// that silently ignore trailing data accept an infinite family of encodings
// for the same key, which breaks the round-trip contract.
func unmarshalDER(op string, der []byte, v any) error {
	rest, err := asn1.Unmarshal(der, v)
	if err != nil {
		return decodingError(op, fmt.Errorf("%w: %v", ErrInvalidKeyEncoding, err))
	}
	if len(rest) != 0 {
		return decodingError(op, fmt.Errorf("%w: %d trailing bytes after DER structure",
			ErrInvalidKeyEncoding, len(rest)))
	}
	return nil
}

// marshalDER encodes one of the fixed structures above. The shapes are
// closed over package-controlled values, so a marshaling failure is a
// programming defect rather than a runtime condition.
func marshalDER(v any) []byte {
	der, err := asn1.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("secp256k1: ASN.1 marshal of fixed structure failed: %v", err))
	}
	return der
}

// decodePEM extracts the DER payload of a single PEM block of the expected
// type. Content outside the standard delimiters, other than whitespace, is
// rejected rather than skipped: pem.Decode tolerates leading garbage, which
// would let a corrupted file decode successfully.
func decodePEM(op, pemType, text string) ([]byte, error) {
	trimmed := bytes.TrimSpace([]byte(text))
	if !bytes.HasPrefix(trimmed, []byte("-----BEGIN ")) {
		return nil, decodingError(op, fmt.Errorf("%w: leading data before PEM block",
			ErrInvalidKeyEncoding))
	}
	block, rest := pem.Decode(trimmed)
	if block == nil {
		return nil, decodingError(op, fmt.Errorf("%w: no PEM block found",
			ErrInvalidKeyEncoding))
	}
	if block.Type != pemType {
		return nil, decodingError(op, fmt.Errorf("%w: PEM type %q, want %q",
			ErrInvalidKeyEncoding, block.Type, pemType))
	}
	if len(bytes.TrimSpace(rest)) != 0 {
		return nil, decodingError(op, fmt.Errorf("%w: trailing data after PEM block",
			ErrInvalidKeyEncoding))
	}
	return block.Bytes, nil
}

func encodePEM(pemType string, der []byte) string {
	return string(pem.EncodeToMemory(&pem.Block{Type: pemType, Bytes: der}))
}
