package go_symcrypt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToBase64Transform(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"f", "Zg=="},
		{"fo", "Zm8="},
		{"foo", "Zm9v"},
		{"foobar", "Zm9vYmFy"},
		{"foobarb", "Zm9vYmFyYg=="},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			enc := NewToBase64Transform()
			assert.Equal(t, 3, enc.InputBlockSize())
			assert.Equal(t, 4, enc.OutputBlockSize())
			assert.True(t, enc.CanReuseTransform())

			got, err := TransformBytes(enc, []byte(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))

			// Reusable after the final block.
			again, err := TransformBytes(enc, []byte(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(again))
		})
	}
}

func TestToBase64TransformUnaligned(t *testing.T) {
	enc := NewToBase64Transform()
	_, err := enc.TransformBlock([]byte("ab"), 0, 2, make([]byte, 4), 0)
	assert.ErrorIs(t, err, ErrInvalidInputLength)
	_, err = enc.TransformBlock([]byte("abc"), 0, 3, make([]byte, 3), 0)
	assert.ErrorIs(t, err, ErrArgumentOverflow)
}

func TestFromBase64Transform(t *testing.T) {
	dec := NewFromBase64Transform(true)
	got, err := TransformBytes(dec, []byte("Zm9v\r\nYmFy\n Yg=="))
	require.NoError(t, err)
	assert.Equal(t, "foobarb", string(got))

	strict := NewFromBase64Transform(false)
	_, err = TransformBytes(strict, []byte("Zm9v YmFy"))
	assert.ErrorIs(t, err, ErrInvalidBase64)
}

// TestFromBase64Incremental feeds one character at a time.
func TestFromBase64Incremental(t *testing.T) {
	dec := NewFromBase64Transform(true)
	text := []byte("Zm9vYmFyYg==")
	var out []byte
	buf := make([]byte, 3)
	for i := range text {
		n, err := dec.TransformBlock(text, i, 1, buf, 0)
		require.NoError(t, err)
		out = append(out, buf[:n]...)
	}
	final, err := dec.TransformFinalBlock(text, len(text), 0)
	require.NoError(t, err)
	out = append(out, final...)
	assert.Equal(t, "foobarb", string(out))
}

func TestFromBase64Invalid(t *testing.T) {
	for _, in := range []string{"Zm9", "Zm9v!!!!", "Zg==Zg=="} {
		t.Run(in, func(t *testing.T) {
			_, err := TransformBytes(NewFromBase64Transform(true), []byte(in))
			assert.ErrorIs(t, err, ErrInvalidBase64)
		})
	}
}

// TestI2PBase64RoundTrip uses bytes that map to the alphabet's two
// substituted characters.
func TestI2PBase64RoundTrip(t *testing.T) {
	data := []byte{0xfb, 0xff, 0xbf, 0xfe}
	text, err := TransformBytes(NewToI2PBase64Transform(), data)
	require.NoError(t, err)
	assert.NotContains(t, string(text), "+")
	assert.NotContains(t, string(text), "/")
	assert.Contains(t, string(text), "~")

	back, err := TransformBytes(NewFromI2PBase64Transform(false), text)
	require.NoError(t, err)
	assert.Equal(t, data, back)

	std, err := TransformBytes(NewToBase64Transform(), data)
	require.NoError(t, err)
	assert.NotEqual(t, std, text)
}

func TestBase64TransformCleared(t *testing.T) {
	enc := NewToBase64Transform()
	enc.Clear()
	_, err := enc.TransformFinalBlock([]byte("a"), 0, 1)
	assert.ErrorIs(t, err, ErrObjectDisposed)

	dec := NewFromBase64Transform(true)
	dec.Clear()
	_, err = dec.TransformFinalBlock([]byte("Zg=="), 0, 4)
	assert.ErrorIs(t, err, ErrObjectDisposed)
}
