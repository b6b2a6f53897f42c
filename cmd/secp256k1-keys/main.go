// Command secp256k1-keys is a small utility around the key library: it
// generates keys, derives public keys, signs and verifies messages, and
// converts keys between the supported encodings.
//
// Key material is read from and written to files ("-" means stdin/stdout).
// Private keys never appear in log output.
package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hsiuhsiu/secp256k1-keys-go/pkg/secp256k1"
	"github.com/hsiuhsiu/secp256k1-keys-go/pkg/secp256k1/logging"
)

const usage = `usage: secp256k1-keys <command> [flags]

commands:
  keygen    generate a private key
  pubkey    derive the public key for a private key
  sign      sign a message with a private key
  verify    verify a signature against a public key
  convert   re-encode a private or public key
  version   print the library version

Run "secp256k1-keys <command> -h" for command flags.`

var logger = logging.New(nil)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch cmd := os.Args[1]; cmd {
	case "keygen":
		err = runKeygen(os.Args[2:])
	case "pubkey":
		err = runPubkey(os.Args[2:])
	case "sign":
		err = runSign(os.Args[2:])
	case "verify":
		err = runVerify(os.Args[2:])
	case "convert":
		err = runConvert(os.Args[2:])
	case "version":
		fmt.Println(secp256k1.LibraryVersion())
	case "-h", "--help", "help":
		fmt.Println(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n%s\n", cmd, usage)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "secp256k1-keys: %v\n", err)
		os.Exit(1)
	}
}

func runKeygen(args []string) error {
	fs := flag.NewFlagSet("keygen", flag.ExitOnError)
	out := fs.String("out", "-", "output file")
	format := fs.String("format", "pkcs8-pem", "output format: "+privateFormats)
	fs.Parse(args)

	key, err := secp256k1.GeneratePrivateKey(rand.Reader)
	if err != nil {
		return err
	}
	encoded, err := encodePrivateKey(key, *format)
	if err != nil {
		return err
	}
	logger.Info(context.Background(), "generated private key",
		"format", *format, logging.Redacted("scalar"))
	return writeOutput(*out, encoded)
}

func runPubkey(args []string) error {
	fs := flag.NewFlagSet("pubkey", flag.ExitOnError)
	in := fs.String("in", "-", "private key input file")
	inFormat := fs.String("in-format", "pkcs8-pem", "input format: "+privateFormats)
	out := fs.String("out", "-", "output file")
	format := fs.String("format", "spki-pem", "output format: "+publicFormats)
	fs.Parse(args)

	raw, err := readInput(*in)
	if err != nil {
		return err
	}
	key, err := decodePrivateKey(raw, *inFormat)
	if err != nil {
		return err
	}
	encoded, err := encodePublicKey(key.PublicKey(), *format)
	if err != nil {
		return err
	}
	return writeOutput(*out, encoded)
}

func runSign(args []string) error {
	fs := flag.NewFlagSet("sign", flag.ExitOnError)
	keyPath := fs.String("key", "", "private key file (required)")
	keyFormat := fs.String("key-format", "pkcs8-pem", "private key format: "+privateFormats)
	in := fs.String("in", "-", "message input file")
	out := fs.String("out", "-", "signature output file (hex)")
	der := fs.Bool("der", false, "emit an ASN.1 DER signature instead of r||s")
	fs.Parse(args)

	if *keyPath == "" {
		return fmt.Errorf("sign: -key is required")
	}
	rawKey, err := readInput(*keyPath)
	if err != nil {
		return err
	}
	key, err := decodePrivateKey(rawKey, *keyFormat)
	if err != nil {
		return err
	}
	msg, err := readInput(*in)
	if err != nil {
		return err
	}

	sig := key.SignMessage(msg)
	if *der {
		parsed, err := secp256k1.ParseSignature(sig)
		if err != nil {
			return err
		}
		sig = parsed.SerializeDER()
	}
	logger.Info(context.Background(), "signed message", "message_bytes", len(msg), "der", *der)
	return writeOutput(*out, []byte(hex.EncodeToString(sig)+"\n"))
}

func runVerify(args []string) error {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	keyPath := fs.String("key", "", "public key file (required)")
	keyFormat := fs.String("key-format", "spki-pem", "public key format: "+publicFormats)
	in := fs.String("in", "-", "message input file")
	sigPath := fs.String("sig", "", "signature file, hex encoded (required)")
	tolerant := fs.Bool("allow-malleable", false, "accept high-s signatures")
	fs.Parse(args)

	if *keyPath == "" || *sigPath == "" {
		return fmt.Errorf("verify: -key and -sig are required")
	}
	rawKey, err := readInput(*keyPath)
	if err != nil {
		return err
	}
	pub, err := decodePublicKey(rawKey, *keyFormat)
	if err != nil {
		return err
	}
	msg, err := readInput(*in)
	if err != nil {
		return err
	}
	sigHex, err := readInput(*sigPath)
	if err != nil {
		return err
	}
	sig, err := hex.DecodeString(strings.TrimSpace(string(sigHex)))
	if err != nil {
		return fmt.Errorf("verify: signature is not valid hex: %w", err)
	}
	if len(sig) != secp256k1.SignatureBytes {
		// Accept DER signatures as well by normalizing to r||s.
		parsed, err := secp256k1.ParseSignatureDER(sig)
		if err != nil {
			return err
		}
		sig = parsed.Serialize()
	}

	var ok bool
	if *tolerant {
		ok = pub.VerifySignatureWithMalleability(msg, sig)
	} else {
		ok = pub.VerifySignature(msg, sig)
	}
	if !ok {
		return fmt.Errorf("verify: signature is invalid")
	}
	fmt.Println("OK")
	return nil
}

func runConvert(args []string) error {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	in := fs.String("in", "-", "input file")
	out := fs.String("out", "-", "output file")
	inFormat := fs.String("in-format", "", "input format (required)")
	outFormat := fs.String("out-format", "", "output format (required)")
	fs.Parse(args)

	if *inFormat == "" || *outFormat == "" {
		return fmt.Errorf("convert: -in-format and -out-format are required\nprivate: %s\npublic:  %s",
			privateFormats, publicFormats)
	}
	raw, err := readInput(*in)
	if err != nil {
		return err
	}

	if isPrivateFormat(*inFormat) {
		if !isPrivateFormat(*outFormat) {
			return fmt.Errorf("convert: cannot convert a private key to public format %q; use pubkey", *outFormat)
		}
		key, err := decodePrivateKey(raw, *inFormat)
		if err != nil {
			return err
		}
		encoded, err := encodePrivateKey(key, *outFormat)
		if err != nil {
			return err
		}
		return writeOutput(*out, encoded)
	}

	pub, err := decodePublicKey(raw, *inFormat)
	if err != nil {
		return err
	}
	encoded, err := encodePublicKey(pub, *outFormat)
	if err != nil {
		return err
	}
	return writeOutput(*out, encoded)
}

const (
	privateFormats = "raw-hex, pkcs8-pem, pkcs8-der, sec1-pem, sec1-der"
	publicFormats  = "compressed-hex, uncompressed-hex, spki-pem, spki-der"
)

func isPrivateFormat(format string) bool {
	switch format {
	case "raw-hex", "pkcs8-pem", "pkcs8-der", "sec1-pem", "sec1-der":
		return true
	}
	return false
}

func decodePrivateKey(raw []byte, format string) (*secp256k1.PrivateKey, error) {
	switch format {
	case "raw-hex":
		scalar, err := hex.DecodeString(strings.TrimSpace(string(raw)))
		if err != nil {
			return nil, fmt.Errorf("decode raw-hex private key: %w", err)
		}
		defer secp256k1.ZeroizeBytes(scalar)
		return secp256k1.ParsePrivateKeySEC1(scalar)
	case "pkcs8-pem":
		return secp256k1.ParsePrivateKeyPKCS8PEM(string(raw))
	case "pkcs8-der":
		return secp256k1.ParsePrivateKeyPKCS8DER(raw)
	case "sec1-pem":
		return secp256k1.ParsePrivateKeyRFC5915PEM(string(raw))
	case "sec1-der":
		return secp256k1.ParsePrivateKeyRFC5915DER(raw)
	}
	return nil, fmt.Errorf("unknown private key format %q (want one of %s)", format, privateFormats)
}

func encodePrivateKey(key *secp256k1.PrivateKey, format string) ([]byte, error) {
	switch format {
	case "raw-hex":
		scalar := key.SerializeSEC1()
		defer secp256k1.ZeroizeBytes(scalar)
		return []byte(hex.EncodeToString(scalar) + "\n"), nil
	case "pkcs8-pem":
		return []byte(key.SerializePKCS8PEM()), nil
	case "pkcs8-der":
		return key.SerializePKCS8DER(), nil
	case "sec1-pem":
		return []byte(key.SerializeRFC5915PEM()), nil
	case "sec1-der":
		return key.SerializeRFC5915DER(), nil
	}
	return nil, fmt.Errorf("unknown private key format %q (want one of %s)", format, privateFormats)
}

func decodePublicKey(raw []byte, format string) (*secp256k1.PublicKey, error) {
	switch format {
	case "compressed-hex", "uncompressed-hex":
		point, err := hex.DecodeString(strings.TrimSpace(string(raw)))
		if err != nil {
			return nil, fmt.Errorf("decode %s public key: %w", format, err)
		}
		return secp256k1.ParsePublicKeySEC1(point)
	case "spki-pem":
		return secp256k1.ParsePublicKeyPEM(string(raw))
	case "spki-der":
		return secp256k1.ParsePublicKeyDER(raw)
	}
	return nil, fmt.Errorf("unknown public key format %q (want one of %s)", format, publicFormats)
}

func encodePublicKey(pub *secp256k1.PublicKey, format string) ([]byte, error) {
	switch format {
	case "compressed-hex":
		return []byte(hex.EncodeToString(pub.SerializeSEC1(true)) + "\n"), nil
	case "uncompressed-hex":
		return []byte(hex.EncodeToString(pub.SerializeSEC1(false)) + "\n"), nil
	case "spki-pem":
		return []byte(pub.SerializePEM()), nil
	case "spki-der":
		return pub.SerializeDER(), nil
	}
	return nil, fmt.Errorf("unknown public key format %q (want one of %s)", format, publicFormats)
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
