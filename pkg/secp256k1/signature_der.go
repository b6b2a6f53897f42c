package secp256k1

import (
	"fmt"

	secp "github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Alternate ASN.1 DER interchange encoding of signatures:
//
//	0x30 <total length> 0x02 <length of R> <R> 0x02 <length of S> <S>
//
// Lengths always fit a single byte for secp256k1, so long-form lengths are
// never produced or accepted. Parsing is deliberately strict: non-minimal
// integer encodings, out-of-range values, and any length outside the 8..72
// byte window are rejected even when the underlying (r, s) pair would be
// mathematically valid.

const (
	asn1SequenceID = 0x30
	asn1IntegerID  = 0x02

	// minDERSigLen is a sequence with 1-byte R and S integers; maxDERSigLen
	// has 33 bytes each (32 value bytes plus a sign byte).
	minDERSigLen = 8
	maxDERSigLen = 72
)

// SerializeDER returns the signature in strict DER form. The s component is
// encoded exactly as held; callers wanting the canonical low-s interchange
// form should check IsLowS first.
func (sig *Signature) SerializeDER() []byte {
	var rBytes, sBytes [32]byte
	sig.r.PutBytes(&rBytes)
	sig.s.PutBytes(&sBytes)

	// Trim leading zeros so each integer is minimal, keeping one zero byte
	// when needed to avoid flagging the value negative.
	var rBuf, sBuf [33]byte
	copy(rBuf[1:], rBytes[:])
	copy(sBuf[1:], sBytes[:])
	canonR, canonS := rBuf[:], sBuf[:]
	for len(canonR) > 1 && canonR[0] == 0x00 && canonR[1]&0x80 == 0 {
		canonR = canonR[1:]
	}
	for len(canonS) > 1 && canonS[0] == 0x00 && canonS[1]&0x80 == 0 {
		canonS = canonS[1:]
	}

	totalLen := 6 + len(canonR) + len(canonS)
	b := make([]byte, 0, totalLen)
	b = append(b, asn1SequenceID)
	b = append(b, byte(totalLen-2))
	b = append(b, asn1IntegerID)
	b = append(b, byte(len(canonR)))
	b = append(b, canonR...)
	b = append(b, asn1IntegerID)
	b = append(b, byte(len(canonS)))
	b = append(b, canonS...)
	return b
}

// ParseSignatureDER decodes a strict DER signature. See the package rules
// above; anything a conforming DER encoder would not emit is rejected.
func ParseSignatureDER(der []byte) (*Signature, error) {
	const op = "ParseSignatureDER"
	fail := func(format string, args ...any) error {
		return decodingError(op, fmt.Errorf("%w: "+format,
			append([]any{ErrInvalidSignatureEncoding}, args...)...))
	}

	sigLen := len(der)
	if sigLen < minDERSigLen {
		return nil, fail("too short: %d < %d", sigLen, minDERSigLen)
	}
	if sigLen > maxDERSigLen {
		return nil, fail("too long: %d > %d", sigLen, maxDERSigLen)
	}
	if der[0] != asn1SequenceID {
		return nil, fail("wrong sequence type %#02x", der[0])
	}
	if int(der[1]) != sigLen-2 {
		return nil, fail("bad sequence length: %d != %d", der[1], sigLen-2)
	}

	if der[2] != asn1IntegerID {
		return nil, fail("wrong R integer marker %#02x", der[2])
	}
	rLen := int(der[3])
	sTypeOffset := 4 + rLen
	sLenOffset := sTypeOffset + 1
	if sTypeOffset >= sigLen {
		return nil, fail("S type indicator missing")
	}
	if sLenOffset >= sigLen {
		return nil, fail("S length missing")
	}
	sOffset := sLenOffset + 1
	sLen := int(der[sLenOffset])
	if sOffset+sLen != sigLen {
		return nil, fail("invalid S length")
	}
	if der[sTypeOffset] != asn1IntegerID {
		return nil, fail("wrong S integer marker %#02x", der[sTypeOffset])
	}

	r, err := parseDERInteger(op, "R", der[4:4+rLen])
	if err != nil {
		return nil, err
	}
	s, err := parseDERInteger(op, "S", der[sOffset:sOffset+sLen])
	if err != nil {
		return nil, err
	}
	return &Signature{r: *r, s: *s}, nil
}

// parseDERInteger validates one minimally encoded positive integer in
// [1, n-1] and converts it to a scalar.
func parseDERInteger(op, name string, b []byte) (*secp.ModNScalar, error) {
	fail := func(format string, args ...any) error {
		return decodingError(op, fmt.Errorf("%w: "+format,
			append([]any{ErrInvalidSignatureEncoding}, args...)...))
	}

	if len(b) == 0 {
		return nil, fail("%s length is zero", name)
	}
	if b[0]&0x80 != 0 {
		return nil, fail("%s is negative", name)
	}
	if len(b) > 1 && b[0] == 0x00 && b[1]&0x80 == 0 {
		return nil, fail("%s has excessive padding", name)
	}
	// A value needing more than 32 bytes (plus one sign byte) necessarily
	// exceeds the group order.
	if len(b) > 33 || (len(b) == 33 && b[0] != 0x00) {
		return nil, fail("%s is not below the group order", name)
	}
	if len(b) == 33 {
		b = b[1:]
	}

	padded := make([]byte, 32)
	copy(padded[32-len(b):], b)
	var s secp.ModNScalar
	if overflow := s.SetByteSlice(padded); overflow {
		return nil, fail("%s is not below the group order", name)
	}
	if s.IsZero() {
		return nil, fail("%s is zero", name)
	}
	return &s, nil
}
