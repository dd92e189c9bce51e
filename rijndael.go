package go_symcrypt

import (
	"crypto/cipher"

	"github.com/go-i2p/crypto/aes"
)

var (
	rijndaelKeySizes   = []KeySizes{{Min: 128, Max: 256, Skip: 64}}
	rijndaelBlockSizes = []KeySizes{{Min: 128, Max: 256, Skip: 64}}
	aesBlockSizes      = []KeySizes{{Min: 128, Max: 128, Skip: 0}}
)

// rijndaelAlgorithm covers both Rijndael (128/192/256-bit blocks) and AES,
// which is Rijndael pinned to 128-bit blocks.
type rijndaelAlgorithm struct {
	name     string
	blocks   []KeySizes
	feedback int
}

func (r rijndaelAlgorithm) Name() string { return r.name }
func (r rijndaelAlgorithm) LegalKeySizes() []KeySizes { return copySizes(rijndaelKeySizes) }
func (r rijndaelAlgorithm) LegalBlockSizes() []KeySizes { return copySizes(r.blocks) }
func (r rijndaelAlgorithm) DefaultKeySize() int { return 256 }
func (r rijndaelAlgorithm) DefaultBlockSize() int { return 128 }
func (r rijndaelAlgorithm) DefaultFeedbackSize() int { return r.feedback }
func (r rijndaelAlgorithm) SegmentedFeedback() bool { return true }
func (r rijndaelAlgorithm) IsWeakKey(key []byte) bool { return false }

// SupportsFeedback accepts every whole-byte feedback size up to the block size.
func (r rijndaelAlgorithm) SupportsFeedback(mode CipherMode, feedbackBits, blockBits int) bool {
	if !mode.isStream() {
		return true
	}
	return feedbackBits >= 8 && feedbackBits <= blockBits && feedbackBits%8 == 0
}

func (r rijndaelAlgorithm) NewCipher(key []byte, blockBits int) (cipher.Block, error) {
	if !IsLegalSize(blockBits, r.blocks) {
		return nil, sizeError(ErrInvalidBlockSize, r.name, blockBits)
	}
	if !IsLegalSize(len(key)*8, rijndaelKeySizes) {
		return nil, sizeError(ErrInvalidKeySize, r.name, len(key)*8)
	}
	if blockBits == 128 {
		return aes.NewCipher(key)
	}
	return newRijndaelBlock(key, blockBits)
}

// NewRijndael creates a Rijndael algorithm with a 256-bit key, 128-bit block,
// 128-bit feedback, CBC mode and PKCS7 padding.
func NewRijndael() *SymmetricAlgorithm {
	return newSymmetricAlgorithm(rijndaelAlgorithm{
		name:     "Rijndael",
		blocks:   rijndaelBlockSizes,
		feedback: 128,
	})
}

// NewAES creates an AES algorithm: Rijndael restricted to 128-bit blocks, with
// 8-bit default feedback.
func NewAES() *SymmetricAlgorithm {
	return newSymmetricAlgorithm(rijndaelAlgorithm{
		name:     "AES",
		blocks:   aesBlockSizes,
		feedback: 8,
	})
}
