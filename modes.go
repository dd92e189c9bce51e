package go_symcrypt

import (
	"crypto/cipher"
	"crypto/subtle"
)

// modeFunc runs one mode over src, whose length is a whole number of the
// engine's units, and writes the same number of bytes to dst. dst and src may
// overlap exactly.
type modeFunc func(e *modeEngine, dst, src []byte)

// modeFuncs is the stateless function pool, keyed by mode and direction.
var modeFuncs = map[CipherMode][2]modeFunc{
	ModeECB: {ecbEncrypt, ecbDecrypt},
	ModeCBC: {cbcEncrypt, cbcDecrypt},
	ModeCFB: {cfbEncrypt, cfbDecrypt},
	ModeOFB: {ofbCrypt, ofbCrypt},
}

// modeEngine holds the chaining state for one transform: the feedback
// register (CBC chain block, CFB/OFB shift register) and a keystream buffer.
type modeEngine struct {
	block    cipher.Block
	fn       modeFunc
	register []byte
	stream   []byte
	prev     []byte
	unit     int // bytes per CFB/OFB shift; block size for ECB/CBC
}

// newModeEngine binds mode to a keyed block. iv is copied; feedbackBytes is
// ignored for ECB and CBC.
func newModeEngine(block cipher.Block, mode CipherMode, dir Direction, iv []byte, feedbackBytes int) (*modeEngine, error) {
	fns, ok := modeFuncs[mode]
	if !ok {
		return nil, argError(ErrInvalidMode, "mode "+mode.String())
	}
	bs := block.BlockSize()
	e := &modeEngine{
		block:    block,
		fn:       fns[dir],
		register: make([]byte, bs),
		stream:   make([]byte, bs),
		prev:     make([]byte, bs),
		unit:     bs,
	}
	if mode.usesIV() {
		copy(e.register, iv)
	}
	if mode.isStream() {
		e.unit = feedbackBytes
	}
	return e, nil
}

func (e *modeEngine) process(dst, src []byte) {
	e.fn(e, dst, src)
}

// reset zeroes all chaining state.
func (e *modeEngine) reset() {
	clear(e.register)
	clear(e.stream)
	clear(e.prev)
}

func ecbEncrypt(e *modeEngine, dst, src []byte) {
	bs := e.block.BlockSize()
	for i := 0; i < len(src); i += bs {
		e.block.Encrypt(dst[i:i+bs], src[i:i+bs])
	}
}

func ecbDecrypt(e *modeEngine, dst, src []byte) {
	bs := e.block.BlockSize()
	for i := 0; i < len(src); i += bs {
		e.block.Decrypt(dst[i:i+bs], src[i:i+bs])
	}
}

// cbcEncrypt: out = E(in ^ chain); chain = out.
func cbcEncrypt(e *modeEngine, dst, src []byte) {
	bs := e.block.BlockSize()
	for i := 0; i < len(src); i += bs {
		subtle.XORBytes(e.stream, src[i:i+bs], e.register)
		e.block.Encrypt(dst[i:i+bs], e.stream)
		copy(e.register, dst[i:i+bs])
	}
}

// cbcDecrypt: out = D(in) ^ chain; chain = in.
func cbcDecrypt(e *modeEngine, dst, src []byte) {
	bs := e.block.BlockSize()
	for i := 0; i < len(src); i += bs {
		copy(e.prev, src[i:i+bs])
		e.block.Decrypt(e.stream, e.prev)
		subtle.XORBytes(dst[i:i+bs], e.stream, e.register)
		copy(e.register, e.prev)
	}
}

// shiftIn drops the leading len(seg) bytes of the register and appends seg.
func (e *modeEngine) shiftIn(seg []byte) {
	n := len(e.register) - len(seg)
	copy(e.register, e.register[len(seg):])
	copy(e.register[n:], seg)
}

// cfbEncrypt: mask = E(register)[:unit]; out = in ^ mask; register <<= out.
func cfbEncrypt(e *modeEngine, dst, src []byte) {
	u := e.unit
	for i := 0; i < len(src); i += u {
		e.block.Encrypt(e.stream, e.register)
		subtle.XORBytes(dst[i:i+u], src[i:i+u], e.stream[:u])
		e.shiftIn(dst[i : i+u])
	}
}

// cfbDecrypt: mask = E(register)[:unit]; out = in ^ mask; register <<= in.
func cfbDecrypt(e *modeEngine, dst, src []byte) {
	u := e.unit
	for i := 0; i < len(src); i += u {
		copy(e.prev[:u], src[i:i+u])
		e.block.Encrypt(e.stream, e.register)
		subtle.XORBytes(dst[i:i+u], e.prev[:u], e.stream[:u])
		e.shiftIn(e.prev[:u])
	}
}

// ofbCrypt: mask = E(register)[:unit]; register <<= mask. With full-block
// feedback the register becomes the whole keystream block.
func ofbCrypt(e *modeEngine, dst, src []byte) {
	u := e.unit
	for i := 0; i < len(src); i += u {
		e.block.Encrypt(e.stream, e.register)
		subtle.XORBytes(dst[i:i+u], src[i:i+u], e.stream[:u])
		e.shiftIn(e.stream[:u])
	}
}
