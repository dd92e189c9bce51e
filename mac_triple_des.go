package go_symcrypt

import (
	"crypto/cipher"
	"hash"
)

// cbcMAC is a hash.Hash computing a CBC-MAC with a zero IV and zero padding.
// The tag is the last cipher block.
type cbcMAC struct {
	engine  *modeEngine
	pending []byte
}

func newCBCMAC(block cipher.Block) *cbcMAC {
	engine, _ := newModeEngine(block, ModeCBC, Encrypt, nil, 0)
	return &cbcMAC{engine: engine}
}

func (m *cbcMAC) Write(p []byte) (int, error) {
	bs := m.BlockSize()
	m.pending = append(m.pending, p...)
	aligned := len(m.pending) - len(m.pending)%bs
	if aligned > 0 {
		m.engine.process(m.pending[:aligned], m.pending[:aligned])
		rest := copy(m.pending, m.pending[aligned:])
		m.pending = m.pending[:rest]
	}
	return len(p), nil
}

// Sum pads the buffered tail on a copy of the register, leaving m unchanged.
func (m *cbcMAC) Sum(b []byte) []byte {
	bs := m.BlockSize()
	tag := append([]byte(nil), m.engine.register...)
	if len(m.pending) > 0 {
		last := make([]byte, bs)
		copy(last, m.pending)
		for i := range last {
			last[i] ^= tag[i]
		}
		m.engine.block.Encrypt(tag, last)
	}
	return append(b, tag...)
}

func (m *cbcMAC) Reset() {
	m.engine.reset()
	clear(m.pending)
	m.pending = m.pending[:0]
}

func (m *cbcMAC) Size() int { return m.engine.block.BlockSize() }
func (m *cbcMAC) BlockSize() int { return m.engine.block.BlockSize() }

// NewMACTripleDES returns a keyed hash computing a TripleDES CBC-MAC with a
// zero IV and zero padding. key must be a 16 or 24 byte non-weak TripleDES
// key; a nil key is replaced with a random 24 byte key.
func NewMACTripleDES(key []byte) (*KeyedHashAlgorithm, error) {
	alg := tripleDESAlgorithm{}
	k := &KeyedHashAlgorithm{
		name:     "MACTripleDES",
		hashSize: 64,
		keySize:  24,
		newMAC: func(key []byte) (hash.Hash, error) {
			block, err := alg.NewCipher(key, 64)
			if err != nil {
				return nil, err
			}
			return newCBCMAC(block), nil
		},
		checkKey: func(key []byte) error {
			if !IsLegalSize(len(key)*8, tripleDESKeySizes) {
				return sizeError(ErrInvalidKeySize, "MACTripleDES", len(key)*8)
			}
			if alg.IsWeakKey(key) {
				return argError(ErrWeakKey, "MACTripleDES key")
			}
			return nil
		},
	}
	if err := k.init(key); err != nil {
		return nil, err
	}
	return k, nil
}
