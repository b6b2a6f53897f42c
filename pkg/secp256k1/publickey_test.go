package secp256k1

import (
	"bytes"
	"encoding/asn1"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustBitString(b []byte) asn1.BitString {
	return asn1.BitString{Bytes: b, BitLength: len(b) * 8}
}

func TestPublicKeySerializationRoundTrips(t *testing.T) {
	for i := 0; i < 64; i++ {
		key := mustGenerateKey(t).PublicKey()

		require.Len(t, key.SerializeSEC1(true), PublicKeyBytesCompressed)
		expected := key.SerializeSEC1(false)
		require.Len(t, expected, PublicKeyBytesUncompressed)

		viaSEC1, err := ParsePublicKeySEC1(key.SerializeSEC1(false))
		require.NoError(t, err)
		require.Equal(t, expected, viaSEC1.SerializeSEC1(false))

		viaSEC1Compressed, err := ParsePublicKeySEC1(key.SerializeSEC1(true))
		require.NoError(t, err)
		require.Equal(t, expected, viaSEC1Compressed.SerializeSEC1(false))

		viaDER, err := ParsePublicKeyDER(key.SerializeDER())
		require.NoError(t, err)
		require.Equal(t, expected, viaDER.SerializeSEC1(false))

		viaPEM, err := ParsePublicKeyPEM(key.SerializePEM())
		require.NoError(t, err)
		require.Equal(t, expected, viaPEM.SerializeSEC1(false))
	}
}

func TestPublicKeyEqualAcrossEncodings(t *testing.T) {
	key := mustGenerateKey(t).PublicKey()

	fromCompressed, err := ParsePublicKeySEC1(key.SerializeSEC1(true))
	require.NoError(t, err)
	fromDER, err := ParsePublicKeyDER(key.SerializeDER())
	require.NoError(t, err)

	require.True(t, fromCompressed.Equal(fromDER))
	require.True(t, key.Equal(fromCompressed))

	other := mustGenerateKey(t).PublicKey()
	require.False(t, key.Equal(other))
}

func TestParsePublicKeySEC1RejectsBadEncodings(t *testing.T) {
	key := mustGenerateKey(t).PublicKey()
	compressed := key.SerializeSEC1(true)
	uncompressed := key.SerializeSEC1(false)

	hybrid := append([]byte{}, uncompressed...)
	hybrid[0] = 0x06 | (uncompressed[64] & 1)

	wrongParity := append([]byte{}, compressed...)
	wrongParity[0] = 0x05

	notOnCurve := append([]byte{}, uncompressed...)
	notOnCurve[64] ^= 0x01

	tests := []struct {
		name string
		b    []byte
		want error
	}{
		{"empty", nil, ErrInvalidKeyLength},
		{"too short", compressed[:32], ErrInvalidKeyLength},
		{"between sizes", uncompressed[:50], ErrInvalidKeyLength},
		{"too long", append(append([]byte{}, uncompressed...), 0x00), ErrInvalidKeyLength},
		{"bad compressed prefix", wrongParity, ErrInvalidPoint},
		{"hybrid prefix", hybrid, ErrInvalidPoint},
		{"not on curve", notOnCurve, ErrInvalidPoint},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePublicKeySEC1(tt.b)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParsePublicKeyDERRejectsWrongAlgorithm(t *testing.T) {
	key := mustGenerateKey(t).PublicKey()

	der := marshalDER(subjectPublicKeyInfo{
		Algorithm: algorithmIdentifier{
			// id-Ed25519 in place of id-ecPublicKey.
			Algorithm:  []int{1, 3, 101, 112},
			Parameters: oidCurveSecp256k1,
		},
		PublicKey: mustBitString(key.SerializeSEC1(false)),
	})
	_, err := ParsePublicKeyDER(der)
	require.ErrorIs(t, err, ErrWrongAlgorithmID)

	der = marshalDER(subjectPublicKeyInfo{
		Algorithm: algorithmIdentifier{
			Algorithm: oidPublicKeyECDSA,
			// secp256r1 in place of secp256k1.
			Parameters: []int{1, 2, 840, 10045, 3, 1, 7},
		},
		PublicKey: mustBitString(key.SerializeSEC1(false)),
	})
	_, err = ParsePublicKeyDER(der)
	require.ErrorIs(t, err, ErrWrongAlgorithmID)
}

func TestParsePublicKeyDERRejectsTrailingBytes(t *testing.T) {
	key := mustGenerateKey(t).PublicKey()
	der := append(key.SerializeDER(), 0x00)
	_, err := ParsePublicKeyDER(der)
	require.ErrorIs(t, err, ErrInvalidKeyEncoding)
}

func TestPublicKeyPEMBlockType(t *testing.T) {
	key := mustGenerateKey(t).PublicKey()
	require.True(t, strings.HasPrefix(key.SerializePEM(), "-----BEGIN PUBLIC KEY-----"))

	_, err := ParsePublicKeyPEM(strings.Replace(key.SerializePEM(),
		"PUBLIC KEY", "CERTIFICATE", 2))
	require.ErrorIs(t, err, ErrInvalidKeyEncoding)
}

func TestPublicKeyStringIsCompressedHex(t *testing.T) {
	key := mustGenerateKey(t).PublicKey()
	s := key.String()
	require.Len(t, s, 2*PublicKeyBytesCompressed)
	require.True(t, strings.HasPrefix(s, "02") || strings.HasPrefix(s, "03"))
}

func TestPublicKeyDerivationIsDeterministic(t *testing.T) {
	key := mustGenerateKey(t)
	require.True(t, key.PublicKey().Equal(key.PublicKey()))

	reparsed, err := ParsePrivateKeySEC1(key.SerializeSEC1())
	require.NoError(t, err)
	require.True(t, key.PublicKey().Equal(reparsed.PublicKey()))
	require.True(t, bytes.Equal(
		key.PublicKey().SerializeSEC1(false),
		reparsed.PublicKey().SerializeSEC1(false)))
}
