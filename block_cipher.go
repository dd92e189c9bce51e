package go_symcrypt

import "crypto/cipher"

// Algorithm describes a block cipher family: its legal sizes, defaults, weak
// keys and how to key a single-block primitive. The mode engine and the
// streaming transform only ever see an Algorithm and the cipher.Block it
// produces, never a concrete cipher type.
type Algorithm interface {
	// Name returns the canonical algorithm name, e.g. "TripleDES".
	Name() string

	// LegalKeySizes returns the key size table in bits.
	LegalKeySizes() []KeySizes

	// LegalBlockSizes returns the block size table in bits.
	LegalBlockSizes() []KeySizes

	// DefaultKeySize is the key size in bits of a freshly created algorithm.
	DefaultKeySize() int

	// DefaultBlockSize is the block size in bits of a freshly created algorithm.
	DefaultBlockSize() int

	// DefaultFeedbackSize is the feedback size in bits of a freshly created algorithm.
	DefaultFeedbackSize() int

	// SegmentedFeedback reports whether CFB and OFB transforms consume input in
	// FeedbackSize/8 byte segments. When false the transform works on whole
	// blocks and runs the feedback register byte-wise inside each block.
	SegmentedFeedback() bool

	// SupportsFeedback reports whether the feedback size is implemented for mode.
	SupportsFeedback(mode CipherMode, feedbackBits, blockBits int) bool

	// IsWeakKey reports whether key must be refused.
	IsWeakKey(key []byte) bool

	// NewCipher keys a single-block primitive.
	NewCipher(key []byte, blockBits int) (cipher.Block, error)
}

// effectiveKeySizer is implemented by algorithms whose strength can be set
// independently of the key length (RC2).
type effectiveKeySizer interface {
	EffectiveKeySize() int
	SetEffectiveKeySize(bits int)
}

// providerFeedback is the feedback policy shared by DES, TripleDES and RC2:
// CFB only with 8-bit feedback, OFB with 8-bit or full-block feedback.
func providerFeedback(mode CipherMode, feedbackBits, blockBits int) bool {
	switch mode {
	case ModeCFB:
		return feedbackBits == 8
	case ModeOFB:
		return feedbackBits == 8 || feedbackBits == blockBits
	default:
		return true
	}
}
