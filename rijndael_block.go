package go_symcrypt

import (
	"crypto/cipher"
	"fmt"
)

// rijndaelBlock is a byte-oriented Rijndael implementation for any of the
// 128, 192 and 256 bit block and key sizes. crypto/aes is used instead
// whenever the block is 128 bits; this one exists for the wider blocks.
//
// The state is kept in input order: byte r+4c is row r of column c.
type rijndaelBlock struct {
	nb, nk, nr int
	w          []byte // expanded key, 4*nb*(nr+1) bytes
}

var (
	rijndaelSbox    [256]byte
	rijndaelInvSbox [256]byte
)

func init() {
	var inv [256]byte
	for a := 1; a < 256; a++ {
		for b := 1; b < 256; b++ {
			if gfMul(byte(a), byte(b)) == 1 {
				inv[a] = byte(b)
				break
			}
		}
	}
	for a := 0; a < 256; a++ {
		x := inv[a]
		s := x ^ rotl8(x, 1) ^ rotl8(x, 2) ^ rotl8(x, 3) ^ rotl8(x, 4) ^ 0x63
		rijndaelSbox[a] = s
		rijndaelInvSbox[s] = byte(a)
	}
}

func rotl8(x byte, n uint) byte {
	return x<<n | x>>(8-n)
}

// xtime multiplies by x (0x02) in GF(2^8) modulo x^8+x^4+x^3+x+1.
func xtime(a byte) byte {
	if a&0x80 != 0 {
		return a<<1 ^ 0x1b
	}
	return a << 1
}

func gfMul(a, b byte) byte {
	var p byte
	for b != 0 {
		if b&1 != 0 {
			p ^= a
		}
		a = xtime(a)
		b >>= 1
	}
	return p
}

func newRijndaelBlock(key []byte, blockBits int) (cipher.Block, error) {
	nb := blockBits / 32
	nk := len(key) / 4
	switch {
	case blockBits != 128 && blockBits != 192 && blockBits != 256:
		return nil, sizeError(ErrInvalidBlockSize, "Rijndael", blockBits)
	case len(key) != 16 && len(key) != 24 && len(key) != 32:
		return nil, sizeError(ErrInvalidKeySize, "Rijndael", len(key)*8)
	}
	nr := max(nb, nk) + 6
	r := &rijndaelBlock{nb: nb, nk: nk, nr: nr}
	r.expandKey(key)
	return r, nil
}

func (r *rijndaelBlock) BlockSize() int { return 4 * r.nb }

func (r *rijndaelBlock) expandKey(key []byte) {
	words := r.nb * (r.nr + 1)
	w := make([]byte, 4*words)
	copy(w, key)
	rcon := byte(1)
	var t [4]byte
	for i := r.nk; i < words; i++ {
		copy(t[:], w[4*(i-1):4*i])
		switch {
		case i%r.nk == 0:
			t[0], t[1], t[2], t[3] = rijndaelSbox[t[1]]^rcon, rijndaelSbox[t[2]], rijndaelSbox[t[3]], rijndaelSbox[t[0]]
			rcon = xtime(rcon)
		case r.nk > 6 && i%r.nk == 4:
			for j := range t {
				t[j] = rijndaelSbox[t[j]]
			}
		}
		for j := 0; j < 4; j++ {
			w[4*i+j] = w[4*(i-r.nk)+j] ^ t[j]
		}
	}
	r.w = w
}

// shift returns the left rotation applied to row row by ShiftRows.
func (r *rijndaelBlock) shift(row int) int {
	if r.nb == 8 && row >= 2 {
		return row + 1
	}
	return row
}

func (r *rijndaelBlock) addRoundKey(s []byte, round int) {
	rk := r.w[round*4*r.nb : (round+1)*4*r.nb]
	for i := range s {
		s[i] ^= rk[i]
	}
}

func (r *rijndaelBlock) shiftRows(s []byte, inverse bool) {
	var row [8]byte
	for i := 1; i < 4; i++ {
		n := r.shift(i)
		for c := 0; c < r.nb; c++ {
			src := (c + n) % r.nb
			if inverse {
				src = (c - n + r.nb) % r.nb
			}
			row[c] = s[i+4*src]
		}
		for c := 0; c < r.nb; c++ {
			s[i+4*c] = row[c]
		}
	}
}

func (r *rijndaelBlock) mixColumns(s []byte) {
	for c := 0; c < r.nb; c++ {
		a0, a1, a2, a3 := s[4*c], s[4*c+1], s[4*c+2], s[4*c+3]
		s[4*c] = xtime(a0) ^ xtime(a1) ^ a1 ^ a2 ^ a3
		s[4*c+1] = a0 ^ xtime(a1) ^ xtime(a2) ^ a2 ^ a3
		s[4*c+2] = a0 ^ a1 ^ xtime(a2) ^ xtime(a3) ^ a3
		s[4*c+3] = xtime(a0) ^ a0 ^ a1 ^ a2 ^ xtime(a3)
	}
}

func (r *rijndaelBlock) invMixColumns(s []byte) {
	for c := 0; c < r.nb; c++ {
		a0, a1, a2, a3 := s[4*c], s[4*c+1], s[4*c+2], s[4*c+3]
		s[4*c] = gfMul(a0, 14) ^ gfMul(a1, 11) ^ gfMul(a2, 13) ^ gfMul(a3, 9)
		s[4*c+1] = gfMul(a0, 9) ^ gfMul(a1, 14) ^ gfMul(a2, 11) ^ gfMul(a3, 13)
		s[4*c+2] = gfMul(a0, 13) ^ gfMul(a1, 9) ^ gfMul(a2, 14) ^ gfMul(a3, 11)
		s[4*c+3] = gfMul(a0, 11) ^ gfMul(a1, 13) ^ gfMul(a2, 9) ^ gfMul(a3, 14)
	}
}

func (r *rijndaelBlock) checkLengths(dst, src []byte) {
	bs := r.BlockSize()
	if len(src) < bs {
		panic(fmt.Sprintf("symcrypt: rijndael input not full block (%d < %d)", len(src), bs))
	}
	if len(dst) < bs {
		panic(fmt.Sprintf("symcrypt: rijndael output not full block (%d < %d)", len(dst), bs))
	}
}

func (r *rijndaelBlock) Encrypt(dst, src []byte) {
	r.checkLengths(dst, src)
	s := make([]byte, r.BlockSize())
	copy(s, src)
	r.addRoundKey(s, 0)
	for round := 1; round <= r.nr; round++ {
		for i := range s {
			s[i] = rijndaelSbox[s[i]]
		}
		r.shiftRows(s, false)
		if round != r.nr {
			r.mixColumns(s)
		}
		r.addRoundKey(s, round)
	}
	copy(dst, s)
}

func (r *rijndaelBlock) Decrypt(dst, src []byte) {
	r.checkLengths(dst, src)
	s := make([]byte, r.BlockSize())
	copy(s, src)
	r.addRoundKey(s, r.nr)
	for round := r.nr - 1; round >= 0; round-- {
		r.shiftRows(s, true)
		for i := range s {
			s[i] = rijndaelInvSbox[s[i]]
		}
		r.addRoundKey(s, round)
		if round != 0 {
			r.invMixColumns(s)
		}
	}
	copy(dst, s)
}
