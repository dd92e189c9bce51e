package go_symcrypt

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlgorithmDefaults(t *testing.T) {
	tests := []struct {
		ctor     func() *SymmetricAlgorithm
		name     string
		key      int
		block    int
		feedback int
	}{
		{NewDES, "DES", 64, 64, 8},
		{NewTripleDES, "TripleDES", 192, 64, 8},
		{NewRC2, "RC2", 128, 64, 8},
		{NewRijndael, "Rijndael", 256, 128, 128},
		{NewAES, "AES", 256, 128, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alg := tt.ctor()
			assert.Equal(t, tt.name, alg.Name())
			assert.Equal(t, tt.key, alg.KeySize())
			assert.Equal(t, tt.block, alg.BlockSize())
			assert.Equal(t, tt.feedback, alg.FeedbackSize())
			assert.Equal(t, ModeCBC, alg.Mode())
			assert.Equal(t, PaddingPKCS7, alg.Padding())

			key, err := alg.Key()
			require.NoError(t, err)
			assert.Len(t, key, tt.key/8)
			iv, err := alg.IV()
			require.NoError(t, err)
			assert.Len(t, iv, tt.block/8)
		})
	}
}

func TestLegalSizes(t *testing.T) {
	tests := []struct {
		ctor   func() *SymmetricAlgorithm
		keys   []KeySizes
		blocks []KeySizes
	}{
		{NewDES, []KeySizes{{64, 64, 0}}, []KeySizes{{64, 64, 0}}},
		{NewTripleDES, []KeySizes{{128, 192, 64}}, []KeySizes{{64, 64, 0}}},
		{NewRC2, []KeySizes{{40, 128, 8}}, []KeySizes{{64, 64, 0}}},
		{NewRijndael, []KeySizes{{128, 256, 64}}, []KeySizes{{128, 256, 64}}},
		{NewAES, []KeySizes{{128, 256, 64}}, []KeySizes{{128, 128, 0}}},
	}
	for _, tt := range tests {
		alg := tt.ctor()
		t.Run(alg.Name(), func(t *testing.T) {
			assert.Equal(t, tt.keys, alg.LegalKeySizes())
			assert.Equal(t, tt.blocks, alg.LegalBlockSizes())

			// Returned tables are copies.
			sizes := alg.LegalKeySizes()
			sizes[0].Min = 1
			assert.Equal(t, tt.keys, alg.LegalKeySizes())
		})
	}
}

func TestValidKeySize(t *testing.T) {
	rc2 := NewRC2()
	assert.True(t, rc2.ValidKeySize(40))
	assert.True(t, rc2.ValidKeySize(48))
	assert.False(t, rc2.ValidKeySize(44))
	assert.False(t, rc2.ValidKeySize(136))

	tdes := NewTripleDES()
	assert.True(t, tdes.ValidKeySize(128))
	assert.False(t, tdes.ValidKeySize(160))
}

// TestSetKeySizeRegeneratesKey checks a new random key is produced even when
// the size does not change.
func TestSetKeySizeRegeneratesKey(t *testing.T) {
	alg := NewRijndael()
	before, err := alg.Key()
	require.NoError(t, err)

	require.NoError(t, alg.SetKeySize(256))
	after, err := alg.Key()
	require.NoError(t, err)
	assert.NotEqual(t, before, after)

	require.NoError(t, alg.SetKeySize(128))
	key, err := alg.Key()
	require.NoError(t, err)
	assert.Len(t, key, 16)

	err = alg.SetKeySize(100)
	assert.ErrorIs(t, err, ErrInvalidKeySize)
	assert.Equal(t, 128, alg.KeySize())
}

// TestSetBlockSizeKeepsIV verifies setting the same block size leaves the IV
// alone while a new size replaces it.
func TestSetBlockSizeKeepsIV(t *testing.T) {
	alg := NewRijndael()
	iv, err := alg.IV()
	require.NoError(t, err)

	require.NoError(t, alg.SetBlockSize(128))
	same, err := alg.IV()
	require.NoError(t, err)
	assert.Equal(t, iv, same)

	require.NoError(t, alg.SetBlockSize(256))
	wide, err := alg.IV()
	require.NoError(t, err)
	assert.Len(t, wide, 32)

	assert.ErrorIs(t, alg.SetBlockSize(160), ErrInvalidBlockSize)
	assert.Equal(t, 256, alg.BlockSize())
	assert.ErrorIs(t, NewAES().SetBlockSize(192), ErrInvalidBlockSize)
}

func TestSetBlockSizeClampsFeedback(t *testing.T) {
	alg := NewRijndael()
	require.NoError(t, alg.SetBlockSize(256))
	require.NoError(t, alg.SetFeedbackSize(256))
	require.NoError(t, alg.SetBlockSize(192))
	assert.Equal(t, 192, alg.FeedbackSize())
}

func TestSetFeedbackSize(t *testing.T) {
	alg := NewDES()
	assert.ErrorIs(t, alg.SetFeedbackSize(72), ErrInvalidFeedbackSize)
	assert.ErrorIs(t, alg.SetFeedbackSize(0), ErrInvalidFeedbackSize)
	assert.ErrorIs(t, alg.SetFeedbackSize(12), ErrInvalidFeedbackSize)
	assert.Equal(t, 8, alg.FeedbackSize())
	require.NoError(t, alg.SetFeedbackSize(64))
	assert.Equal(t, 64, alg.FeedbackSize())
}

func TestSetIV(t *testing.T) {
	alg := NewDES()
	assert.ErrorIs(t, alg.SetIV(nil), ErrArgumentNull)
	assert.ErrorIs(t, alg.SetIV(make([]byte, 7)), ErrInvalidIVSize)
	assert.ErrorIs(t, alg.SetIV([]byte{}), ErrInvalidIVSize)

	iv := seqBytes(8)
	require.NoError(t, alg.SetIV(iv))
	iv[0] = 0xFF
	got, err := alg.IV()
	require.NoError(t, err)
	assert.Equal(t, seqBytes(8), got, "SetIV must copy")
	got[1] = 0xFF
	again, err := alg.IV()
	require.NoError(t, err)
	assert.Equal(t, seqBytes(8), again, "IV must return a copy")
}

func TestSetKey(t *testing.T) {
	alg := NewTripleDES()
	assert.ErrorIs(t, alg.SetKey(nil), ErrArgumentNull)
	assert.ErrorIs(t, alg.SetKey(make([]byte, 20)), ErrInvalidKeySize)

	require.NoError(t, alg.SetKey(seqBytes(16)))
	assert.Equal(t, 128, alg.KeySize())
	require.NoError(t, alg.SetKey(seqBytes(24)))
	assert.Equal(t, 192, alg.KeySize())
}

func TestSetModeAndPadding(t *testing.T) {
	alg := NewAES()
	assert.ErrorIs(t, alg.SetMode(CipherMode(9)), ErrInvalidMode)
	assert.ErrorIs(t, alg.SetPadding(PaddingMode(0)), ErrInvalidMode)
	assert.Equal(t, ModeCBC, alg.Mode())
	assert.Equal(t, PaddingPKCS7, alg.Padding())
	require.NoError(t, alg.SetMode(ModeOFB))
	require.NoError(t, alg.SetPadding(PaddingISO10126))
	assert.Equal(t, ModeOFB, alg.Mode())
	assert.Equal(t, PaddingISO10126, alg.Padding())
}

func TestDESWeakKeys(t *testing.T) {
	weak := []string{
		"0101010101010101", "fefefefefefefefe", "e0e0e0e0f1f1f1f1", "1f1f1f1f0e0e0e0e",
		// parity bits ignored
		"0000000000000000", "ffffffffffffffff",
	}
	for _, k := range weak {
		assert.True(t, IsDESWeakKey(unhex(t, k)), k)
		assert.ErrorIs(t, NewDES().SetKey(unhex(t, k)), ErrWeakKey, k)
	}
	semiWeak := []string{"01fe01fe01fe01fe", "fe01fe01fe01fe01", "1fe01fe00ef10ef1", "e0fee0fef1fef1fe"}
	for _, k := range semiWeak {
		assert.True(t, IsDESSemiWeakKey(unhex(t, k)), k)
		assert.False(t, IsDESWeakKey(unhex(t, k)), k)
		assert.ErrorIs(t, NewDES().SetKey(unhex(t, k)), ErrWeakKey, k)
	}
	assert.False(t, IsDESWeakKey(unhex(t, "0001020304050607")))
	assert.False(t, IsDESWeakKey([]byte{1, 1, 1}))
}

func TestTripleDESWeakKeys(t *testing.T) {
	k1 := seqBytes(8)
	k2 := bytes.Repeat([]byte{0x40}, 8)
	k3 := bytes.Repeat([]byte{0x80}, 8)
	join := func(parts ...[]byte) []byte { return bytes.Join(parts, nil) }

	assert.True(t, IsTripleDESWeakKey(join(k1, k1)))
	assert.True(t, IsTripleDESWeakKey(join(k1, k1, k3)))
	assert.True(t, IsTripleDESWeakKey(join(k1, k2, k2)))
	assert.False(t, IsTripleDESWeakKey(join(k1, k2)))
	assert.False(t, IsTripleDESWeakKey(join(k1, k2, k1)))
	assert.False(t, IsTripleDESWeakKey(join(k1, k2, k3)))

	// Differences confined to parity bits still count as equal.
	k1p := append([]byte(nil), k1...)
	k1p[0] ^= 0x01
	assert.True(t, IsTripleDESWeakKey(join(k1, k1p)))

	assert.ErrorIs(t, NewTripleDES().SetKey(join(k1, k1, k3)), ErrWeakKey)
}

func TestGeneratedKeysAreNeverWeak(t *testing.T) {
	// The first 8 bytes form a weak key; the generator must skip them.
	src := bytes.NewReader(append(unhex(t, "0101010101010101"), seqBytes(8)...))
	alg := NewDES()
	alg.SetRandomSource(src)
	require.NoError(t, alg.GenerateKey())
	key, err := alg.Key()
	require.NoError(t, err)
	assert.Equal(t, seqBytes(8), key)
}

// TestTransformSnapshot checks transforms keep the configuration they were
// created with.
func TestTransformSnapshot(t *testing.T) {
	alg := NewAES()
	configure(t, alg, seqBytes(16), make([]byte, 16), ModeCBC, PaddingPKCS7, 0)
	enc, err := alg.CreateEncryptor()
	require.NoError(t, err)

	require.NoError(t, alg.SetKey(bytes.Repeat([]byte{0x77}, 32)))
	require.NoError(t, alg.SetIV(bytes.Repeat([]byte{0x11}, 16)))
	require.NoError(t, alg.SetMode(ModeECB))
	require.NoError(t, alg.SetPadding(PaddingZeros))

	ct, err := TransformBytes(enc, []byte("snapshot"))
	require.NoError(t, err)

	original := NewAES()
	configure(t, original, seqBytes(16), make([]byte, 16), ModeCBC, PaddingPKCS7, 0)
	want, err := original.Encrypt([]byte("snapshot"))
	require.NoError(t, err)
	assert.Equal(t, want, ct)
}

func TestCreateWithExplicitKey(t *testing.T) {
	alg := NewDES()
	key, err := alg.Key()
	require.NoError(t, err)

	_, err = alg.CreateEncryptorWith(nil, make([]byte, 8))
	assert.ErrorIs(t, err, ErrInvalidKey)
	_, err = alg.CreateEncryptorWith(make([]byte, 7), make([]byte, 8))
	assert.ErrorIs(t, err, ErrInvalidKeySize)
	_, err = alg.CreateEncryptorWith(unhex(t, "fefefefefefefefe"), make([]byte, 8))
	assert.ErrorIs(t, err, ErrWeakKey)
	_, err = alg.CreateDecryptorWith(seqBytes(8), make([]byte, 4))
	assert.ErrorIs(t, err, ErrInvalidIVSize)
	_, err = alg.CreateDecryptorWith(seqBytes(8), nil)
	assert.ErrorIs(t, err, ErrInvalidIVSize)

	enc, err := alg.CreateEncryptorWith(seqBytes(8), make([]byte, 8))
	require.NoError(t, err)
	dec, err := alg.CreateDecryptorWith(seqBytes(8), make([]byte, 8))
	require.NoError(t, err)
	ct, err := TransformBytes(enc, []byte("explicit"))
	require.NoError(t, err)
	pt, err := TransformBytes(dec, ct)
	require.NoError(t, err)
	assert.Equal(t, []byte("explicit"), pt)

	after, err := alg.Key()
	require.NoError(t, err)
	assert.Equal(t, key, after, "explicit key must not replace the algorithm key")

	require.NoError(t, alg.SetMode(ModeECB))
	_, err = alg.CreateEncryptorWith(seqBytes(8), nil)
	assert.NoError(t, err)
}

func TestClearedAlgorithm(t *testing.T) {
	alg := NewRC2()
	alg.Clear()
	_, err := alg.Key()
	assert.True(t, IsDisposed(err))
	_, err = alg.CreateEncryptor()
	assert.True(t, errors.Is(err, ErrObjectDisposed))
	assert.ErrorIs(t, alg.SetKeySize(64), ErrObjectDisposed)
	assert.ErrorIs(t, alg.SetMode(ModeECB), ErrObjectDisposed)
	assert.ErrorIs(t, alg.SetPadding(PaddingZeros), ErrObjectDisposed)
	assert.Equal(t, ModeCBC, alg.Mode())
	assert.Equal(t, PaddingPKCS7, alg.Padding())
}

func TestRC2EffectiveKeySizeFollowsKeySize(t *testing.T) {
	alg := NewRC2()
	require.NoError(t, alg.SetEffectiveKeySize(40))
	require.NoError(t, alg.SetKeySize(128))
	assert.Equal(t, 128, alg.EffectiveKeySize())

	require.NoError(t, alg.SetEffectiveKeySize(40))
	require.NoError(t, alg.SetKey(seqBytes(8)))
	assert.Equal(t, 64, alg.EffectiveKeySize())

	// A key of the same length keeps the explicit setting.
	require.NoError(t, alg.SetEffectiveKeySize(40))
	require.NoError(t, alg.SetKey(seqBytes(8)))
	assert.Equal(t, 40, alg.EffectiveKeySize())
}

func TestEffectiveKeySizeNonRC2(t *testing.T) {
	alg := NewAES()
	assert.Equal(t, alg.KeySize(), alg.EffectiveKeySize())
	assert.NoError(t, alg.SetEffectiveKeySize(alg.KeySize()))
	assert.ErrorIs(t, alg.SetEffectiveKeySize(128), ErrInvalidKeySize)

	rc2 := NewRC2()
	assert.Equal(t, 128, rc2.EffectiveKeySize())
	assert.ErrorIs(t, rc2.SetEffectiveKeySize(32), ErrInvalidKeySize)
}
