package go_symcrypt

import (
	"io"
)

// SymmetricAlgorithm holds the configuration of a block cipher: key, IV,
// sizes, mode and padding. Every setter validates against the algorithm's
// legal size tables and leaves the object untouched when it fails.
//
// A SymmetricAlgorithm spawns any number of transforms; each takes its own
// copy of the key and IV. It is not safe for concurrent mutation.
type SymmetricAlgorithm struct {
	algorithm    Algorithm
	key          []byte
	iv           []byte
	keySize      int
	blockSize    int
	feedbackSize int
	mode         CipherMode
	padding      PaddingMode
	rng          *Crypto
	metrics      MetricsCollector
	disposed     bool
}

// transformConfig is the value snapshot handed to a new transform.
type transformConfig struct {
	algorithm    Algorithm
	dir          Direction
	key          []byte
	iv           []byte
	blockBits    int
	feedbackBits int
	mode         CipherMode
	padding      PaddingMode
	rng          *Crypto
	metrics      MetricsCollector
}

func newSymmetricAlgorithm(a Algorithm) *SymmetricAlgorithm {
	s := &SymmetricAlgorithm{
		algorithm:    a,
		keySize:      a.DefaultKeySize(),
		blockSize:    a.DefaultBlockSize(),
		feedbackSize: a.DefaultFeedbackSize(),
		mode:         ModeCBC,
		padding:      PaddingPKCS7,
		rng:          NewCrypto(),
	}
	return s
}

// Name returns the algorithm name, e.g. "DES".
func (s *SymmetricAlgorithm) Name() string { return s.algorithm.Name() }

// Key returns a copy of the current key, generating one on first use.
func (s *SymmetricAlgorithm) Key() ([]byte, error) {
	if err := s.checkDisposed(); err != nil {
		return nil, err
	}
	if s.key == nil {
		if err := s.GenerateKey(); err != nil {
			return nil, err
		}
	}
	return append([]byte(nil), s.key...), nil
}

// SetKey validates and stores a copy of key. KeySize follows the key length.
func (s *SymmetricAlgorithm) SetKey(key []byte) error {
	if err := s.checkDisposed(); err != nil {
		return err
	}
	if err := s.validateKey(key, argError(ErrArgumentNull, "key")); err != nil {
		return err
	}
	s.key = append([]byte(nil), key...)
	if len(key)*8 != s.keySize {
		s.resetEffectiveKeySize()
	}
	s.keySize = len(key) * 8
	return nil
}

// validateKey runs the size and weak key checks shared by SetKey and the
// explicit-key transform constructors. nilErr is returned for a nil key.
func (s *SymmetricAlgorithm) validateKey(key []byte, nilErr error) error {
	if key == nil {
		return nilErr
	}
	if !IsLegalSize(len(key)*8, s.algorithm.LegalKeySizes()) {
		return sizeError(ErrInvalidKeySize, s.Name(), len(key)*8)
	}
	if s.algorithm.IsWeakKey(key) {
		Warning("Rejected weak %s key", s.Name())
		return argError(ErrWeakKey, s.Name()+" key")
	}
	return nil
}

// KeySize returns the key size in bits.
func (s *SymmetricAlgorithm) KeySize() int { return s.keySize }

// SetKeySize validates bits and replaces the key with a fresh random key of
// that size, even when bits equals the current size.
func (s *SymmetricAlgorithm) SetKeySize(bits int) error {
	if err := s.checkDisposed(); err != nil {
		return err
	}
	if !s.ValidKeySize(bits) {
		return sizeError(ErrInvalidKeySize, s.Name(), bits)
	}
	key, err := s.randomKey(bits)
	if err != nil {
		return err
	}
	s.key = key
	s.keySize = bits
	s.resetEffectiveKeySize()
	return nil
}

// ValidKeySize reports whether bits is a legal key size for the algorithm.
func (s *SymmetricAlgorithm) ValidKeySize(bits int) bool {
	return IsLegalSize(bits, s.algorithm.LegalKeySizes())
}

// LegalKeySizes returns a copy of the key size table.
func (s *SymmetricAlgorithm) LegalKeySizes() []KeySizes { return s.algorithm.LegalKeySizes() }

// LegalBlockSizes returns a copy of the block size table.
func (s *SymmetricAlgorithm) LegalBlockSizes() []KeySizes { return s.algorithm.LegalBlockSizes() }

// IV returns a copy of the current IV, generating one on first use.
func (s *SymmetricAlgorithm) IV() ([]byte, error) {
	if err := s.checkDisposed(); err != nil {
		return nil, err
	}
	if s.iv == nil {
		if err := s.GenerateIV(); err != nil {
			return nil, err
		}
	}
	return append([]byte(nil), s.iv...), nil
}

// SetIV stores a copy of iv, which must be exactly BlockSize/8 bytes long.
func (s *SymmetricAlgorithm) SetIV(iv []byte) error {
	if err := s.checkDisposed(); err != nil {
		return err
	}
	if iv == nil {
		return argError(ErrArgumentNull, "iv")
	}
	if len(iv)*8 != s.blockSize {
		return sizeError(ErrInvalidIVSize, s.Name(), len(iv)*8)
	}
	s.iv = append([]byte(nil), iv...)
	return nil
}

// BlockSize returns the block size in bits.
func (s *SymmetricAlgorithm) BlockSize() int { return s.blockSize }

// SetBlockSize validates bits. Changing the size discards the IV; setting the
// current size keeps it.
func (s *SymmetricAlgorithm) SetBlockSize(bits int) error {
	if err := s.checkDisposed(); err != nil {
		return err
	}
	if !IsLegalSize(bits, s.algorithm.LegalBlockSizes()) {
		return sizeError(ErrInvalidBlockSize, s.Name(), bits)
	}
	if bits == s.blockSize {
		return nil
	}
	s.blockSize = bits
	s.iv = nil
	if s.feedbackSize > bits {
		s.feedbackSize = bits
	}
	return nil
}

// FeedbackSize returns the CFB/OFB feedback size in bits.
func (s *SymmetricAlgorithm) FeedbackSize() int { return s.feedbackSize }

// SetFeedbackSize accepts whole-byte sizes from 8 up to BlockSize. Whether the
// algorithm implements the size for the selected mode is only checked when a
// transform is created.
func (s *SymmetricAlgorithm) SetFeedbackSize(bits int) error {
	if err := s.checkDisposed(); err != nil {
		return err
	}
	if bits <= 0 || bits > s.blockSize || bits%8 != 0 {
		return sizeError(ErrInvalidFeedbackSize, s.Name(), bits)
	}
	s.feedbackSize = bits
	return nil
}

// Mode returns the cipher mode.
func (s *SymmetricAlgorithm) Mode() CipherMode { return s.mode }

// SetMode selects ECB, CBC, CFB or OFB.
func (s *SymmetricAlgorithm) SetMode(mode CipherMode) error {
	if err := s.checkDisposed(); err != nil {
		return err
	}
	if _, ok := modeFuncs[mode]; !ok {
		return argError(ErrInvalidMode, "mode "+mode.String())
	}
	s.mode = mode
	return nil
}

// Padding returns the padding mode.
func (s *SymmetricAlgorithm) Padding() PaddingMode { return s.padding }

// SetPadding selects the padding mode.
func (s *SymmetricAlgorithm) SetPadding(padding PaddingMode) error {
	if err := s.checkDisposed(); err != nil {
		return err
	}
	if padding < PaddingNone || padding > PaddingISO10126 {
		return argError(ErrInvalidMode, "padding "+padding.String())
	}
	s.padding = padding
	return nil
}

// EffectiveKeySize returns the RC2 effective key size in bits. For other
// algorithms, and for RC2 when unset, it equals KeySize.
func (s *SymmetricAlgorithm) EffectiveKeySize() int {
	if e, ok := s.algorithm.(effectiveKeySizer); ok && e.EffectiveKeySize() != 0 {
		return e.EffectiveKeySize()
	}
	return s.keySize
}

// SetEffectiveKeySize sets the RC2 effective key size. Other algorithms only
// accept their current KeySize.
func (s *SymmetricAlgorithm) SetEffectiveKeySize(bits int) error {
	e, ok := s.algorithm.(effectiveKeySizer)
	if !ok {
		if bits != s.keySize {
			return sizeError(ErrInvalidKeySize, s.Name(), bits)
		}
		return nil
	}
	if !s.ValidKeySize(bits) {
		return sizeError(ErrInvalidKeySize, s.Name(), bits)
	}
	e.SetEffectiveKeySize(bits)
	return nil
}

// resetEffectiveKeySize makes the effective key size follow KeySize again.
func (s *SymmetricAlgorithm) resetEffectiveKeySize() {
	if e, ok := s.algorithm.(effectiveKeySizer); ok {
		e.SetEffectiveKeySize(0)
	}
}

// SetRandomSource replaces the source used for generated keys, IVs and
// ISO10126 padding.
func (s *SymmetricAlgorithm) SetRandomSource(r io.Reader) {
	s.rng = NewCryptoWithReader(r)
}

// SetMetrics attaches a collector; transforms created afterwards report to it.
// A nil collector detaches metrics.
func (s *SymmetricAlgorithm) SetMetrics(m MetricsCollector) {
	if m == nil {
		m = noopMetrics{}
	}
	s.metrics = m
}

// GenerateKey replaces the key with a random, non-weak key of KeySize bits.
func (s *SymmetricAlgorithm) GenerateKey() error {
	key, err := s.randomKey(s.keySize)
	if err != nil {
		return err
	}
	s.key = key
	return nil
}

func (s *SymmetricAlgorithm) randomKey(bits int) ([]byte, error) {
	for {
		key, err := s.rng.RandomBytes(bits / 8)
		if err != nil {
			return nil, err
		}
		if !s.algorithm.IsWeakKey(key) {
			return key, nil
		}
		Debug("Discarding generated weak %s key", s.Name())
	}
}

// GenerateIV replaces the IV with BlockSize/8 random bytes.
func (s *SymmetricAlgorithm) GenerateIV() error {
	iv, err := s.rng.RandomBytes(s.blockSize / 8)
	if err != nil {
		return err
	}
	s.iv = iv
	return nil
}

// CreateEncryptor returns an encrypting transform keyed with the current Key and IV.
func (s *SymmetricAlgorithm) CreateEncryptor() (*SymmetricTransform, error) {
	return s.createTransform(Encrypt, nil, nil, false)
}

// CreateDecryptor returns a decrypting transform keyed with the current Key and IV.
func (s *SymmetricAlgorithm) CreateDecryptor() (*SymmetricTransform, error) {
	return s.createTransform(Decrypt, nil, nil, false)
}

// CreateEncryptorWith returns an encrypting transform for an explicit key and
// IV. The algorithm's own Key and IV are not modified. A nil key fails with
// ErrInvalidKey; a nil iv is only accepted in ECB mode.
func (s *SymmetricAlgorithm) CreateEncryptorWith(key, iv []byte) (*SymmetricTransform, error) {
	return s.createTransform(Encrypt, key, iv, true)
}

// CreateDecryptorWith is the decrypting counterpart of CreateEncryptorWith.
func (s *SymmetricAlgorithm) CreateDecryptorWith(key, iv []byte) (*SymmetricTransform, error) {
	return s.createTransform(Decrypt, key, iv, true)
}

func (s *SymmetricAlgorithm) createTransform(dir Direction, key, iv []byte, explicit bool) (*SymmetricTransform, error) {
	if err := s.checkDisposed(); err != nil {
		return nil, err
	}
	if !explicit {
		var err error
		if key, err = s.Key(); err != nil {
			return nil, err
		}
		if iv, err = s.IV(); err != nil {
			return nil, err
		}
	} else {
		if err := s.validateKey(key, argError(ErrInvalidKey, "key")); err != nil {
			return nil, err
		}
		switch {
		case iv == nil && s.mode.usesIV():
			return nil, argError(ErrInvalidIVSize, "iv")
		case iv != nil && len(iv)*8 != s.blockSize:
			return nil, sizeError(ErrInvalidIVSize, s.Name(), len(iv)*8)
		}
		key = append([]byte(nil), key...)
		iv = append([]byte(nil), iv...)
	}
	if s.mode.isStream() && !s.algorithm.SupportsFeedback(s.mode, s.feedbackSize, s.blockSize) {
		return nil, sizeError(ErrFeedbackSizeUnsupported, s.Name(), s.feedbackSize)
	}
	return newSymmetricTransform(transformConfig{
		algorithm:    s.algorithm,
		dir:          dir,
		key:          key,
		iv:           iv,
		blockBits:    s.blockSize,
		feedbackBits: s.feedbackSize,
		mode:         s.mode,
		padding:      s.padding,
		rng:          s.rng,
		metrics:      s.metrics,
	})
}

// Encrypt encrypts plaintext in one call with the current configuration.
func (s *SymmetricAlgorithm) Encrypt(plaintext []byte) ([]byte, error) {
	t, err := s.CreateEncryptor()
	if err != nil {
		return nil, err
	}
	return TransformBytes(t, plaintext)
}

// Decrypt decrypts ciphertext in one call with the current configuration.
func (s *SymmetricAlgorithm) Decrypt(ciphertext []byte) ([]byte, error) {
	t, err := s.CreateDecryptor()
	if err != nil {
		return nil, err
	}
	return TransformBytes(t, ciphertext)
}

// Clear wipes the key and IV. Every later call that needs them fails with
// ErrObjectDisposed.
func (s *SymmetricAlgorithm) Clear() {
	clear(s.key)
	clear(s.iv)
	s.key = nil
	s.iv = nil
	s.disposed = true
}

func (s *SymmetricAlgorithm) checkDisposed() error {
	if s.disposed {
		return argError(ErrObjectDisposed, s.Name())
	}
	return nil
}
