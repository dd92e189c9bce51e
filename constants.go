package go_symcrypt

import "strings"

// CipherMode selects the block chaining mode. Values match the
// System.Security.Cryptography.CipherMode numbering.
type CipherMode int

const (
	ModeCBC CipherMode = 1
	ModeECB CipherMode = 2
	ModeOFB CipherMode = 3
	ModeCFB CipherMode = 4
)

func (m CipherMode) String() string {
	switch m {
	case ModeCBC:
		return "CBC"
	case ModeECB:
		return "ECB"
	case ModeOFB:
		return "OFB"
	case ModeCFB:
		return "CFB"
	default:
		return "Unknown"
	}
}

// usesIV reports whether the mode reads the IV.
func (m CipherMode) usesIV() bool {
	return m != ModeECB
}

// isStream reports whether the mode turns the block cipher into a
// segment-wise keystream (CFB, OFB).
func (m CipherMode) isStream() bool {
	return m == ModeCFB || m == ModeOFB
}

// ParseCipherMode converts a mode name such as "cbc" into a CipherMode.
func ParseCipherMode(name string) (CipherMode, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "CBC":
		return ModeCBC, nil
	case "ECB":
		return ModeECB, nil
	case "OFB":
		return ModeOFB, nil
	case "CFB":
		return ModeCFB, nil
	}
	return 0, argError(ErrInvalidMode, "mode "+name)
}

// PaddingMode selects how the final block is filled. Values match the
// System.Security.Cryptography.PaddingMode numbering.
type PaddingMode int

const (
	PaddingNone     PaddingMode = 1
	PaddingPKCS7    PaddingMode = 2
	PaddingZeros    PaddingMode = 3
	PaddingANSIX923 PaddingMode = 4
	PaddingISO10126 PaddingMode = 5
)

func (p PaddingMode) String() string {
	switch p {
	case PaddingNone:
		return "None"
	case PaddingPKCS7:
		return "PKCS7"
	case PaddingZeros:
		return "Zeros"
	case PaddingANSIX923:
		return "ANSIX923"
	case PaddingISO10126:
		return "ISO10126"
	default:
		return "Unknown"
	}
}

// removable reports whether decryption strips this padding. None and Zeros
// leave the plaintext at its padded length.
func (p PaddingMode) removable() bool {
	return p == PaddingPKCS7 || p == PaddingANSIX923 || p == PaddingISO10126
}

// ParsePaddingMode converts a padding name such as "pkcs7" into a PaddingMode.
func ParsePaddingMode(name string) (PaddingMode, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "NONE":
		return PaddingNone, nil
	case "PKCS7", "PKCS5":
		return PaddingPKCS7, nil
	case "ZEROS", "ZERO":
		return PaddingZeros, nil
	case "ANSIX923", "ANSI_X923", "X923":
		return PaddingANSIX923, nil
	case "ISO10126", "ISO_10126":
		return PaddingISO10126, nil
	}
	return 0, argError(ErrInvalidMode, "padding "+name)
}

// Direction of a transform
type Direction int

const (
	Encrypt Direction = iota
	Decrypt
)

func (d Direction) String() string {
	if d == Decrypt {
		return "decrypt"
	}
	return "encrypt"
}

// transformState tracks the lifecycle of a transform. Finalized and Cleared
// are terminal.
type transformState int

const (
	stateActive transformState = iota
	stateFinalized
	stateCleared
)
