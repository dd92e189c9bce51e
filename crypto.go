// Package go_symcrypt provides symmetric block-cipher transforms modelled on
// the System.Security.Cryptography SymmetricAlgorithm / ICryptoTransform API.
//
// Block primitives are thin adapters: DES and TripleDES delegate to
// crypto/des, AES-sized Rijndael to crypto/aes, RC2 to
// github.com/dgryski/go-rc2. This package owns everything above the single
// block: legal-size validation, weak-key checks, chaining modes, padding and
// the incremental TransformBlock / TransformFinalBlock state machine.
//
// See Also:
//   - symmetric.go - algorithm configuration and validation
//   - transform.go - streaming transform
//   - modes.go     - ECB, CBC, CFB and OFB
//   - padding.go   - padding codec
package go_symcrypt

import (
	"crypto/rand"
	"fmt"
	"io"
)

// Crypto wraps the random source used for key, IV and padding generation.
type Crypto struct {
	rng io.Reader
}

// NewCrypto creates a new Crypto instance backed by crypto/rand.
func NewCrypto() *Crypto {
	return &Crypto{
		rng: rand.Reader,
	}
}

// NewCryptoWithReader creates a Crypto that draws from r. Intended for
// reproducible tests; r must never be used for real keys unless it is a CSPRNG.
func NewCryptoWithReader(r io.Reader) *Crypto {
	if r == nil {
		return NewCrypto()
	}
	return &Crypto{rng: r}
}

// Fill overwrites b with random bytes.
func (c *Crypto) Fill(b []byte) error {
	if _, err := io.ReadFull(c.rng, b); err != nil {
		return fmt.Errorf("failed to read %d random bytes: %w", len(b), err)
	}
	return nil
}

// RandomBytes returns n fresh random bytes.
func (c *Crypto) RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if err := c.Fill(b); err != nil {
		return nil, err
	}
	return b, nil
}
