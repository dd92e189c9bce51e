package go_symcrypt

import (
	"crypto/cipher"

	"github.com/dgryski/go-rc2"
)

var (
	rc2KeySizes   = []KeySizes{{Min: 40, Max: 128, Skip: 8}}
	rc2BlockSizes = []KeySizes{{Min: 64, Max: 64, Skip: 0}}
)

// rc2Algorithm carries the effective key size, so each SymmetricAlgorithm
// owns its own instance. Zero means "same as the key length".
type rc2Algorithm struct {
	effective int
}

func (*rc2Algorithm) Name() string { return "RC2" }
func (*rc2Algorithm) LegalKeySizes() []KeySizes { return copySizes(rc2KeySizes) }
func (*rc2Algorithm) LegalBlockSizes() []KeySizes { return copySizes(rc2BlockSizes) }
func (*rc2Algorithm) DefaultKeySize() int { return 128 }
func (*rc2Algorithm) DefaultBlockSize() int { return 64 }
func (*rc2Algorithm) DefaultFeedbackSize() int { return 8 }
func (*rc2Algorithm) SegmentedFeedback() bool { return false }
func (*rc2Algorithm) IsWeakKey(key []byte) bool { return false }
func (*rc2Algorithm) SupportsFeedback(mode CipherMode, feedbackBits, blockBits int) bool {
	return providerFeedback(mode, feedbackBits, blockBits)
}

func (a *rc2Algorithm) EffectiveKeySize() int { return a.effective }
func (a *rc2Algorithm) SetEffectiveKeySize(bits int) { a.effective = bits }

// NewCipher keys RC2 with the configured effective key bits, defaulting to
// the key length.
func (a *rc2Algorithm) NewCipher(key []byte, blockBits int) (cipher.Block, error) {
	if blockBits != 64 {
		return nil, sizeError(ErrInvalidBlockSize, "RC2", blockBits)
	}
	if !IsLegalSize(len(key)*8, rc2KeySizes) {
		return nil, sizeError(ErrInvalidKeySize, "RC2", len(key)*8)
	}
	t1 := a.effective
	if t1 == 0 {
		t1 = len(key) * 8
	}
	block, err := rc2.New(key, t1)
	if err != nil {
		return nil, err
	}
	return block, nil
}

// NewRC2 creates an RC2 algorithm with a random 128-bit key and IV, CBC mode
// and PKCS7 padding.
func NewRC2() *SymmetricAlgorithm {
	return newSymmetricAlgorithm(&rc2Algorithm{})
}
