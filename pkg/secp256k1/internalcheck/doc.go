// Package internalcheck provides internal validation and testing utilities.
//
// This package contains static-analysis tests that enforce the library's
// secret-handling policies on the core secp256k1 package: byte sequences are
// never compared with == or != (constant-time comparison or scalar/point
// equality must be used instead), and secrets are never hex-formatted into
// log or error strings.
//
// # Internal Use Only
//
// This package is part of the internal implementation and should not be
// imported by applications using the library. Use the public API provided by
// pkg/secp256k1 instead.
package internalcheck
