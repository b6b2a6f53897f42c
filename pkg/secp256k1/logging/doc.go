// Package logging provides a minimal logging facade for the secp256k1 key
// tooling.
//
// This package defines a Logger interface that wraps a subset of the standard
// library's log/slog functionality. The interface is intentionally small to
// allow applications to provide custom implementations for testing,
// redaction, or integration with existing logging systems.
//
// # Logger Interface
//
// The Logger interface provides context-aware logging methods:
//
//	type Logger interface {
//	    Debug(ctx context.Context, msg string, args ...any)
//	    Info(ctx context.Context, msg string, args ...any)
//	    Warn(ctx context.Context, msg string, args ...any)
//	    Error(ctx context.Context, msg string, args ...any)
//	    With(args ...any) Logger
//	}
//
// # Default Implementation
//
// The package provides a default slog-backed implementation:
//
//	// Use default logger (slog.Default())
//	logger := logging.New(nil)
//
//	// Use custom slog.Logger
//	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})
//	customLogger := logging.New(slog.New(handler))
//
// # Redaction Support
//
// The core key and signature operations never log, but tools built on them
// do. Private scalars must never reach a log stream in any encoding:
//
//	// Mark an attribute as redacted
//	logger.Info(ctx, "private key loaded", logging.Redacted("key_bytes"))
//	// Logs: key_bytes="[redacted]"
//
// Public keys and signatures are not secret and may be logged normally,
// for example:
//
//	logger.Info(ctx, "signature verified",
//	    "public_key", pub.String(),
//	    "policy", "low-s",
//	)
//
// # Security Considerations
//
//   - Never log private keys in any serialization (raw, PKCS8, RFC 5915)
//   - Use logging.Redacted() to mark sensitive attributes
//   - Ensure log storage is secure and access-controlled
package logging
