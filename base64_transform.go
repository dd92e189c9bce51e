package go_symcrypt

import (
	stdbase64 "encoding/base64"

	"github.com/go-i2p/common/base64"
	"github.com/samber/oops"
)

// base64Codec selects the alphabet used by the Base64 transforms.
type base64Codec struct {
	name   string
	encode func([]byte) string
	decode func(string) ([]byte, error)
}

var (
	standardBase64 = base64Codec{
		name:   "Base64",
		encode: stdbase64.StdEncoding.EncodeToString,
		decode: stdbase64.StdEncoding.DecodeString,
	}
	// i2pBase64 uses '-' and '~' in place of '+' and '/'.
	i2pBase64 = base64Codec{
		name:   "I2PBase64",
		encode: base64.EncodeToString,
		decode: base64.DecodeString,
	}
)

// ToBase64Transform encodes 3 input bytes into 4 output characters.
type ToBase64Transform struct {
	codec    base64Codec
	disposed bool
}

// NewToBase64Transform returns an encoder using the standard alphabet.
func NewToBase64Transform() *ToBase64Transform {
	return &ToBase64Transform{codec: standardBase64}
}

// NewToI2PBase64Transform returns an encoder using the I2P alphabet.
func NewToI2PBase64Transform() *ToBase64Transform {
	return &ToBase64Transform{codec: i2pBase64}
}

func (b *ToBase64Transform) InputBlockSize() int { return 3 }
func (b *ToBase64Transform) OutputBlockSize() int { return 4 }
func (b *ToBase64Transform) CanTransformMultipleBlocks() bool { return true }
func (b *ToBase64Transform) CanReuseTransform() bool { return true }

// TransformBlock encodes whole 3-byte groups.
func (b *ToBase64Transform) TransformBlock(input []byte, inputOffset, inputCount int, output []byte, outputOffset int) (int, error) {
	if b.disposed {
		return 0, argError(ErrObjectDisposed, b.codec.name)
	}
	if err := checkInput(input, inputOffset, inputCount); err != nil {
		return 0, err
	}
	if inputCount%3 != 0 {
		return 0, argError(ErrInvalidInputLength, "inputCount")
	}
	n := inputCount / 3 * 4
	if err := checkOutput(output, outputOffset, n); err != nil {
		return 0, err
	}
	if inputCount == 0 {
		return 0, nil
	}
	return copy(output[outputOffset:], b.codec.encode(input[inputOffset:inputOffset+inputCount])), nil
}

// TransformFinalBlock encodes the remaining bytes with '=' padding.
func (b *ToBase64Transform) TransformFinalBlock(input []byte, inputOffset, inputCount int) ([]byte, error) {
	if b.disposed {
		return nil, argError(ErrObjectDisposed, b.codec.name)
	}
	if err := checkInput(input, inputOffset, inputCount); err != nil {
		return nil, err
	}
	return []byte(b.codec.encode(input[inputOffset : inputOffset+inputCount])), nil
}

func (b *ToBase64Transform) Clear() { b.disposed = true }

// FromBase64Transform decodes Base64 text. Input is consumed one character at
// a time; characters are buffered until a complete 4-character group is
// available.
type FromBase64Transform struct {
	codec            base64Codec
	ignoreWhiteSpace bool
	pending          []byte
	disposed         bool
}

// NewFromBase64Transform returns a decoder using the standard alphabet. With
// ignoreWhiteSpace false, any whitespace in the input is an error.
func NewFromBase64Transform(ignoreWhiteSpace bool) *FromBase64Transform {
	return &FromBase64Transform{codec: standardBase64, ignoreWhiteSpace: ignoreWhiteSpace}
}

// NewFromI2PBase64Transform returns a decoder using the I2P alphabet.
func NewFromI2PBase64Transform(ignoreWhiteSpace bool) *FromBase64Transform {
	return &FromBase64Transform{codec: i2pBase64, ignoreWhiteSpace: ignoreWhiteSpace}
}

func (b *FromBase64Transform) InputBlockSize() int { return 1 }
func (b *FromBase64Transform) OutputBlockSize() int { return 3 }
func (b *FromBase64Transform) CanTransformMultipleBlocks() bool { return false }
func (b *FromBase64Transform) CanReuseTransform() bool { return true }

// TransformBlock decodes every complete group in the buffered input and
// returns the number of bytes written.
func (b *FromBase64Transform) TransformBlock(input []byte, inputOffset, inputCount int, output []byte, outputOffset int) (int, error) {
	if b.disposed {
		return 0, argError(ErrObjectDisposed, b.codec.name)
	}
	if err := checkInput(input, inputOffset, inputCount); err != nil {
		return 0, err
	}
	pending, err := b.accept(input[inputOffset : inputOffset+inputCount])
	if err != nil {
		return 0, err
	}
	whole := len(pending) - len(pending)%4
	decoded, err := b.decodeGroups(pending[:whole])
	if err != nil {
		return 0, err
	}
	if err := checkOutput(output, outputOffset, len(decoded)); err != nil {
		return 0, err
	}
	n := copy(output[outputOffset:], decoded)
	b.pending = append(b.pending[:0], pending[whole:]...)
	return n, nil
}

// TransformFinalBlock decodes the buffered and remaining input, which must
// form complete groups, and resets the transform.
func (b *FromBase64Transform) TransformFinalBlock(input []byte, inputOffset, inputCount int) ([]byte, error) {
	if b.disposed {
		return nil, argError(ErrObjectDisposed, b.codec.name)
	}
	if err := checkInput(input, inputOffset, inputCount); err != nil {
		return nil, err
	}
	pending, err := b.accept(input[inputOffset : inputOffset+inputCount])
	if err != nil {
		return nil, err
	}
	if len(pending)%4 != 0 {
		return nil, b.base64Error(len(pending), "incomplete group")
	}
	decoded, err := b.decodeGroups(pending)
	if err != nil {
		return nil, err
	}
	b.pending = b.pending[:0]
	return decoded, nil
}

// accept returns the buffered characters followed by the non-whitespace
// characters of in, without modifying the buffer.
func (b *FromBase64Transform) accept(in []byte) ([]byte, error) {
	out := make([]byte, len(b.pending), len(b.pending)+len(in))
	copy(out, b.pending)
	for _, c := range in {
		if isBase64Space(c) {
			if !b.ignoreWhiteSpace {
				return nil, b.base64Error(len(out), "whitespace")
			}
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (b *FromBase64Transform) decodeGroups(groups []byte) ([]byte, error) {
	if len(groups) == 0 {
		return []byte{}, nil
	}
	decoded, err := b.codec.decode(string(groups))
	if err != nil {
		return nil, oops.In("base64").With("codec", b.codec.name).Wrapf(ErrInvalidBase64, "%v", err)
	}
	return decoded, nil
}

func (b *FromBase64Transform) base64Error(position int, reason string) error {
	return oops.
		In("base64").
		With("codec", b.codec.name).
		With("position", position).
		Wrapf(ErrInvalidBase64, "%s", reason)
}

func (b *FromBase64Transform) Clear() {
	b.pending = nil
	b.disposed = true
}

func isBase64Space(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
