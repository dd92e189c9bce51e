package go_symcrypt

import (
	"crypto/cipher"
	"crypto/des"
	"encoding/binary"
)

// parityMask clears the low (parity) bit of every key byte. Weak key tables
// are compared with parity ignored.
const parityMask uint64 = 0xFEFEFEFEFEFEFEFE

// desWeakKeys are the four DES keys for which encryption is an involution.
var desWeakKeys = [...]uint64{
	0x0101010101010101,
	0xFEFEFEFEFEFEFEFE,
	0xE0E0E0E0F1F1F1F1,
	0x1F1F1F1F0E0E0E0E,
}

// desSemiWeakKeys are the six pairs of DES keys where one key decrypts what the
// other encrypts.
var desSemiWeakKeys = [...]uint64{
	0x01FE01FE01FE01FE, 0xFE01FE01FE01FE01,
	0x1FE01FE00EF10EF1, 0xE01FE01FF10EF10E,
	0x01E001E001F101F1, 0xE001E001F101F101,
	0x1FFE1FFE0EFE0EFE, 0xFE1FFE1FFE0EFE0E,
	0x011F011F010E010E, 0x1F011F010E010E01,
	0xE0FEE0FEF1FEF1FE, 0xFEE0FEE0FEF1FEF1,
}

// IsDESWeakKey reports whether the 8-byte key is one of the four DES weak keys.
func IsDESWeakKey(key []byte) bool {
	if len(key) != des.BlockSize {
		return false
	}
	k := binary.BigEndian.Uint64(key) & parityMask
	for _, w := range desWeakKeys {
		if k == w&parityMask {
			return true
		}
	}
	return false
}

// IsDESSemiWeakKey reports whether the 8-byte key is one of the twelve DES
// semi-weak keys.
func IsDESSemiWeakKey(key []byte) bool {
	if len(key) != des.BlockSize {
		return false
	}
	k := binary.BigEndian.Uint64(key) & parityMask
	for _, w := range desSemiWeakKeys {
		if k == w&parityMask {
			return true
		}
	}
	return false
}

type desAlgorithm struct{}

var (
	desKeySizes   = []KeySizes{{Min: 64, Max: 64, Skip: 0}}
	desBlockSizes = []KeySizes{{Min: 64, Max: 64, Skip: 0}}
)

func (desAlgorithm) Name() string { return "DES" }
func (desAlgorithm) LegalKeySizes() []KeySizes { return copySizes(desKeySizes) }
func (desAlgorithm) LegalBlockSizes() []KeySizes { return copySizes(desBlockSizes) }
func (desAlgorithm) DefaultKeySize() int { return 64 }
func (desAlgorithm) DefaultBlockSize() int { return 64 }
func (desAlgorithm) DefaultFeedbackSize() int { return 8 }
func (desAlgorithm) SegmentedFeedback() bool { return false }
func (desAlgorithm) IsWeakKey(key []byte) bool { return IsDESWeakKey(key) || IsDESSemiWeakKey(key) }
func (desAlgorithm) SupportsFeedback(mode CipherMode, feedbackBits, blockBits int) bool {
	return providerFeedback(mode, feedbackBits, blockBits)
}

func (desAlgorithm) NewCipher(key []byte, blockBits int) (cipher.Block, error) {
	if blockBits != 64 {
		return nil, sizeError(ErrInvalidBlockSize, "DES", blockBits)
	}
	if len(key) != des.BlockSize {
		return nil, sizeError(ErrInvalidKeySize, "DES", len(key)*8)
	}
	return des.NewCipher(key)
}

// NewDES creates a DES algorithm with a random 64-bit key and IV, CBC mode and
// PKCS7 padding.
func NewDES() *SymmetricAlgorithm {
	return newSymmetricAlgorithm(desAlgorithm{})
}
