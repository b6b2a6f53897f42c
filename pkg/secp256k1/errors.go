package secp256k1

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidKeyLength indicates a key encoding whose byte length does not
	// match the exact expected size. No truncation or padding is tolerated.
	ErrInvalidKeyLength = errors.New("secp256k1: invalid key length")

	// ErrInvalidKeyEncoding indicates malformed ASN.1 or PEM structure,
	// including trailing data after an otherwise valid encoding.
	ErrInvalidKeyEncoding = errors.New("secp256k1: invalid key encoding")

	// ErrWrongAlgorithmID indicates an ASN.1 structure whose algorithm or
	// curve identifier is not the expected id-ecPublicKey/secp256k1 pair.
	ErrWrongAlgorithmID = errors.New("secp256k1: wrong algorithm or curve identifier")

	// ErrScalarOutOfRange indicates a private scalar outside [1, n-1] where n
	// is the group order.
	ErrScalarOutOfRange = errors.New("secp256k1: scalar out of range")

	// ErrInvalidPoint indicates a public key encoding that does not describe
	// a valid, non-identity point on the curve.
	ErrInvalidPoint = errors.New("secp256k1: invalid curve point")

	// ErrInvalidSignatureEncoding indicates a signature encoding that is not
	// the exact 64-byte r || s form, or a DER signature that violates the
	// strict minimal-encoding rules.
	ErrInvalidSignatureEncoding = errors.New("secp256k1: invalid signature encoding")
)

// KeyDecodingError is returned by every deserialization routine in this
// package. It carries the operation that failed and wraps one of the sentinel
// errors above, so callers can branch with errors.Is while still getting a
// descriptive message.
//
// Verification failures are never reported as errors; the verify methods
// return false instead.
type KeyDecodingError struct {
	Op  string // operation that failed, e.g. "ParsePrivateKeyPKCS8DER"
	Err error  // underlying cause, wraps a sentinel error
}

func (e *KeyDecodingError) Error() string {
	return fmt.Sprintf("secp256k1.%s: %v", e.Op, e.Err)
}

func (e *KeyDecodingError) Unwrap() error {
	return e.Err
}

// decodingError wraps err in a KeyDecodingError for the given operation.
func decodingError(op string, err error) error {
	return &KeyDecodingError{Op: op, Err: err}
}
