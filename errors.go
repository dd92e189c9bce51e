package go_symcrypt

import (
	"errors"
	"fmt"

	"github.com/samber/oops"
)

// Standard symcrypt error types
//
// These errors follow Go 1.13+ error wrapping conventions and can be
// checked using errors.Is() and errors.As(). Validation failures carry
// extra context (sizes, algorithm names) attached with samber/oops, which
// keeps the sentinel reachable through Unwrap.

// Sentinel errors for argument, configuration and transform failures
var (
	// ErrArgumentNull indicates a required buffer or parameter was nil.
	ErrArgumentNull = errors.New("symcrypt: required argument is nil")

	// ErrArgumentRange indicates a negative offset or count, or an output
	// buffer too small to receive the transformed data.
	ErrArgumentRange = errors.New("symcrypt: argument out of range")

	// ErrArgumentOverflow indicates offset+count runs past the end of a buffer.
	ErrArgumentOverflow = errors.New("symcrypt: offset and count exceed buffer length")

	// ErrInvalidKeySize indicates a key length outside the algorithm's legal key sizes.
	ErrInvalidKeySize = errors.New("symcrypt: invalid key size")

	// ErrInvalidIVSize indicates an IV whose length differs from the block size.
	// A zero-length IV is always rejected, even for ECB.
	ErrInvalidIVSize = errors.New("symcrypt: invalid IV size")

	// ErrInvalidBlockSize indicates a block size outside the algorithm's legal block sizes.
	ErrInvalidBlockSize = errors.New("symcrypt: invalid block size")

	// ErrInvalidFeedbackSize indicates a feedback size larger than the block size
	// or not a whole number of bytes.
	ErrInvalidFeedbackSize = errors.New("symcrypt: invalid feedback size")

	// ErrWeakKey indicates a DES weak or semi-weak key, or a TripleDES key
	// whose components collapse it to single DES.
	ErrWeakKey = errors.New("symcrypt: weak key")

	// ErrInvalidKey indicates an explicit key handed to CreateEncryptorWith or
	// CreateDecryptorWith could not be used.
	ErrInvalidKey = errors.New("symcrypt: invalid key")

	// ErrInvalidMode indicates a cipher or padding mode that is unknown or
	// not supported by the algorithm.
	ErrInvalidMode = errors.New("symcrypt: unsupported mode")

	// ErrInvalidDataLength indicates input whose length is incompatible with the
	// padding and mode combination, e.g. unaligned data with PaddingNone.
	ErrInvalidDataLength = errors.New("symcrypt: invalid data length")

	// ErrInvalidInputLength indicates a TransformBlock call whose count is not a
	// multiple of the transform's InputBlockSize.
	ErrInvalidInputLength = errors.New("symcrypt: input length is not a multiple of the input block size")

	// ErrInvalidPadding indicates decrypted padding bytes failed validation.
	ErrInvalidPadding = errors.New("symcrypt: padding is invalid and cannot be removed")

	// ErrFeedbackSizeUnsupported indicates the feedback size is legal but not
	// implemented by the algorithm for the selected mode.
	ErrFeedbackSizeUnsupported = errors.New("symcrypt: feedback size not supported by algorithm")

	// ErrObjectDisposed indicates an operation on a finalized or cleared transform.
	ErrObjectDisposed = errors.New("symcrypt: transform has been finalized or cleared")

	// ErrOperationStarted indicates an attempt to change a key after hashing started.
	ErrOperationStarted = errors.New("symcrypt: key cannot be changed after the operation started")

	// ErrHashNotFinalized indicates Hash was read before TransformFinalBlock.
	ErrHashNotFinalized = errors.New("symcrypt: hash must be finalized before the hash value is retrieved")

	// ErrUnknownAlgorithm indicates Create was called with an unregistered name.
	ErrUnknownAlgorithm = errors.New("symcrypt: unknown algorithm")

	// ErrFinalBlockFlushed indicates a CryptoStream was flushed or written after
	// its final block was already produced.
	ErrFinalBlockFlushed = errors.New("symcrypt: final block already flushed")

	// ErrInvalidSalt indicates a PBKDF2 salt shorter than 8 bytes.
	ErrInvalidSalt = errors.New("symcrypt: salt must be at least 8 bytes")

	// ErrInvalidIterations indicates a PBKDF2 iteration count below 1.
	ErrInvalidIterations = errors.New("symcrypt: iteration count must be positive")

	// ErrInvalidBase64 indicates malformed base64 input to FromBase64Transform.
	ErrInvalidBase64 = errors.New("symcrypt: invalid base64 input")
)

// TransformError represents a failure inside a streaming transform call.
// It records which algorithm and operation failed.
type TransformError struct {
	Algorithm string // Algorithm name, e.g. "DES"
	Operation string // What operation failed (e.g., "TransformBlock")
	Err       error  // Underlying error
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("symcrypt: %s %s failed: %v", e.Algorithm, e.Operation, e.Err)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a TransformError with the given parameters.
//
// Example:
//
//	if err := checkArgs(in, off, n); err != nil {
//	    return 0, NewTransformError("DES", "TransformBlock", err)
//	}
func NewTransformError(algorithm, operation string, err error) error {
	return &TransformError{
		Algorithm: algorithm,
		Operation: operation,
		Err:       err,
	}
}

// sizeError wraps a sentinel with the offending size and the algorithm it was
// checked against.
func sizeError(sentinel error, algorithm string, bits int) error {
	return oops.
		In("symcrypt").
		With("algorithm", algorithm).
		With("bits", bits).
		Wrapf(sentinel, "%s: %d bits", algorithm, bits)
}

// argError wraps a sentinel with the argument name that triggered it.
func argError(sentinel error, name string) error {
	return oops.
		In("symcrypt").
		With("argument", name).
		Wrapf(sentinel, "%s", name)
}

// IsPaddingError reports whether err stems from malformed padding or an
// unaligned ciphertext. Decryption with the wrong key usually surfaces as one
// of these.
func IsPaddingError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrInvalidPadding) || errors.Is(err, ErrInvalidDataLength)
}

// IsDisposed reports whether err was caused by using a finalized or cleared object.
func IsDisposed(err error) bool {
	return err != nil && errors.Is(err, ErrObjectDisposed)
}
