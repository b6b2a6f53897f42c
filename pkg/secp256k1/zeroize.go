package secp256k1

import "runtime"

// ZeroizeBytes overwrites the provided slice with zeros and prevents compiler
// dead store elimination using runtime.KeepAlive.
//
// This follows the pattern recommended in golang/go#33325 and used by
// security-focused libraries. It cannot guarantee complete sanitization --
// Go's garbage collector may have copied the buffer -- but it is the current
// ecosystem practice for sensitive memory, and this package applies it to
// every intermediate private-scalar buffer it creates.
func ZeroizeBytes(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
	runtime.KeepAlive(buf)
}

func zeroArray32(buf *[32]byte) {
	for i := range buf {
		buf[i] = 0
	}
	runtime.KeepAlive(buf)
}
