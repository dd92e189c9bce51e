package go_symcrypt

import (
	"github.com/samber/oops"
)

// paddingCodec adds and removes padding for one PaddingMode. The random
// source is only read for ISO10126.
type paddingCodec struct {
	mode PaddingMode
	rng  *Crypto
}

func newPaddingCodec(mode PaddingMode, rng *Crypto) paddingCodec {
	if rng == nil {
		rng = NewCrypto()
	}
	return paddingCodec{mode: mode, rng: rng}
}

// Pad extends data to a multiple of blockSize according to mode. The result
// never aliases data.
func Pad(mode PaddingMode, data []byte, blockSize int) ([]byte, error) {
	return newPaddingCodec(mode, nil).pad(data, blockSize)
}

// Unpad validates and strips the padding of a decrypted, block-aligned buffer.
// PaddingNone and PaddingZeros return data unchanged: zero padding cannot be
// told apart from trailing zero plaintext, so the caller must know the length.
func Unpad(mode PaddingMode, data []byte, blockSize int) ([]byte, error) {
	return newPaddingCodec(mode, nil).unpad(data, blockSize)
}

// padCount is the number of bytes PKCS7, ANSIX923 and ISO10126 append:
// always in [1, blockSize].
func padCount(length, blockSize int) int {
	return blockSize - length%blockSize
}

func (p paddingCodec) pad(data []byte, blockSize int) ([]byte, error) {
	switch p.mode {
	case PaddingNone:
		if len(data)%blockSize != 0 {
			return nil, p.lengthError(len(data), blockSize)
		}
		return append([]byte(nil), data...), nil
	case PaddingZeros:
		n := 0
		if rem := len(data) % blockSize; rem != 0 {
			n = blockSize - rem
		}
		out := make([]byte, len(data)+n)
		copy(out, data)
		return out, nil
	case PaddingPKCS7:
		n := padCount(len(data), blockSize)
		out := make([]byte, len(data)+n)
		copy(out, data)
		for i := len(data); i < len(out); i++ {
			out[i] = byte(n)
		}
		return out, nil
	case PaddingANSIX923:
		n := padCount(len(data), blockSize)
		out := make([]byte, len(data)+n)
		copy(out, data)
		out[len(out)-1] = byte(n)
		return out, nil
	case PaddingISO10126:
		n := padCount(len(data), blockSize)
		out := make([]byte, len(data)+n)
		copy(out, data)
		if err := p.rng.Fill(out[len(data) : len(out)-1]); err != nil {
			return nil, err
		}
		out[len(out)-1] = byte(n)
		return out, nil
	}
	return nil, argError(ErrInvalidMode, "padding "+p.mode.String())
}

func (p paddingCodec) unpad(data []byte, blockSize int) ([]byte, error) {
	switch p.mode {
	case PaddingNone, PaddingZeros:
		return data, nil
	case PaddingPKCS7, PaddingANSIX923, PaddingISO10126:
	default:
		return nil, argError(ErrInvalidMode, "padding "+p.mode.String())
	}

	if len(data)%blockSize != 0 {
		return nil, p.lengthError(len(data), blockSize)
	}
	n := 0
	if len(data) > 0 {
		n = int(data[len(data)-1])
	}
	if n == 0 || n > blockSize || n > len(data) {
		return nil, p.paddingError(n)
	}
	fill := data[len(data)-n : len(data)-1]
	switch p.mode {
	case PaddingPKCS7:
		for _, b := range fill {
			if int(b) != n {
				return nil, p.paddingError(n)
			}
		}
	case PaddingANSIX923:
		for _, b := range fill {
			if b != 0 {
				return nil, p.paddingError(n)
			}
		}
	}
	// ISO10126 fill bytes are random; only the count is checked.
	return data[:len(data)-n], nil
}

func (p paddingCodec) lengthError(length, blockSize int) error {
	return oops.
		In("padding").
		With("padding", p.mode.String()).
		With("length", length).
		With("block_size", blockSize).
		Wrapf(ErrInvalidDataLength, "%d bytes is not a multiple of %d", length, blockSize)
}

func (p paddingCodec) paddingError(count int) error {
	Warning("Rejected %s padding with count byte %d", p.mode, count)
	return oops.
		In("padding").
		With("padding", p.mode.String()).
		With("count", count).
		Wrapf(ErrInvalidPadding, "%s", p.mode)
}
