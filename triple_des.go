package go_symcrypt

import (
	"crypto/cipher"
	"crypto/des"
	"encoding/binary"
)

type tripleDESAlgorithm struct{}

var (
	tripleDESKeySizes   = []KeySizes{{Min: 128, Max: 192, Skip: 64}}
	tripleDESBlockSizes = []KeySizes{{Min: 64, Max: 64, Skip: 0}}
)

// IsTripleDESWeakKey reports whether a 16 or 24 byte key degenerates to single
// DES: the first two components are equal, or for three-key TripleDES the
// last two are. Parity bits are ignored.
func IsTripleDESWeakKey(key []byte) bool {
	switch len(key) {
	case 16, 24:
	default:
		return false
	}
	k1 := binary.BigEndian.Uint64(key[0:8]) & parityMask
	k2 := binary.BigEndian.Uint64(key[8:16]) & parityMask
	if k1 == k2 {
		return true
	}
	if len(key) == 24 {
		k3 := binary.BigEndian.Uint64(key[16:24]) & parityMask
		return k2 == k3
	}
	return false
}

func (tripleDESAlgorithm) Name() string { return "TripleDES" }
func (tripleDESAlgorithm) LegalKeySizes() []KeySizes { return copySizes(tripleDESKeySizes) }
func (tripleDESAlgorithm) LegalBlockSizes() []KeySizes { return copySizes(tripleDESBlockSizes) }
func (tripleDESAlgorithm) DefaultKeySize() int { return 192 }
func (tripleDESAlgorithm) DefaultBlockSize() int { return 64 }
func (tripleDESAlgorithm) DefaultFeedbackSize() int { return 8 }
func (tripleDESAlgorithm) SegmentedFeedback() bool { return false }
func (tripleDESAlgorithm) IsWeakKey(key []byte) bool { return IsTripleDESWeakKey(key) }
func (tripleDESAlgorithm) SupportsFeedback(mode CipherMode, feedbackBits, blockBits int) bool {
	return providerFeedback(mode, feedbackBits, blockBits)
}

// NewCipher accepts two-key (K1 K2 K1) and three-key TripleDES keys.
func (tripleDESAlgorithm) NewCipher(key []byte, blockBits int) (cipher.Block, error) {
	if blockBits != 64 {
		return nil, sizeError(ErrInvalidBlockSize, "TripleDES", blockBits)
	}
	switch len(key) {
	case 16:
		ede := make([]byte, 24)
		copy(ede, key)
		copy(ede[16:], key[:8])
		block, err := des.NewTripleDESCipher(ede)
		clear(ede)
		return block, err
	case 24:
		return des.NewTripleDESCipher(key)
	}
	return nil, sizeError(ErrInvalidKeySize, "TripleDES", len(key)*8)
}

// NewTripleDES creates a TripleDES algorithm with a random 192-bit key and IV,
// CBC mode and PKCS7 padding.
func NewTripleDES() *SymmetricAlgorithm {
	return newSymmetricAlgorithm(tripleDESAlgorithm{})
}
