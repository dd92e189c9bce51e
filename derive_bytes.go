package go_symcrypt

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"hash"
	"strings"

	"github.com/samber/oops"
	"golang.org/x/crypto/pbkdf2"
)

// DefaultIterations is the PBKDF2 iteration count used when none is given.
const DefaultIterations = 1000

const minSaltSize = 8

// Rfc2898DeriveBytes derives key material from a password with PBKDF2
// (RFC 2898). Successive GetBytes calls continue the same output stream, so
// GetBytes(16) followed by GetBytes(8) yields the same 24 bytes as a single
// GetBytes(24).
type Rfc2898DeriveBytes struct {
	password   []byte
	salt       []byte
	iterations int
	hashName   string
	prf        func() hash.Hash
	derived    []byte
	offset     int
}

// NewRfc2898DeriveBytes creates a PBKDF2-HMAC-SHA1 generator. salt must be at
// least 8 bytes and iterations at least 1.
func NewRfc2898DeriveBytes(password, salt []byte, iterations int) (*Rfc2898DeriveBytes, error) {
	if password == nil {
		return nil, argError(ErrArgumentNull, "password")
	}
	d := &Rfc2898DeriveBytes{
		password: append([]byte(nil), password...),
		hashName: "SHA1",
		prf:      sha1.New,
	}
	if err := d.SetSalt(salt); err != nil {
		return nil, err
	}
	if err := d.SetIterationCount(iterations); err != nil {
		return nil, err
	}
	return d, nil
}

// NewRfc2898DeriveBytesRandomSalt creates a generator with a fresh random salt
// of saltSize bytes, readable through Salt.
func NewRfc2898DeriveBytesRandomSalt(password []byte, saltSize, iterations int) (*Rfc2898DeriveBytes, error) {
	if saltSize < minSaltSize {
		return nil, saltError(saltSize)
	}
	salt, err := NewCrypto().RandomBytes(saltSize)
	if err != nil {
		return nil, err
	}
	return NewRfc2898DeriveBytes(password, salt, iterations)
}

// Salt returns a copy of the salt.
func (d *Rfc2898DeriveBytes) Salt() []byte { return append([]byte(nil), d.salt...) }

// SetSalt replaces the salt and restarts the output stream.
func (d *Rfc2898DeriveBytes) SetSalt(salt []byte) error {
	if salt == nil {
		return argError(ErrArgumentNull, "salt")
	}
	if len(salt) < minSaltSize {
		return saltError(len(salt))
	}
	d.salt = append([]byte(nil), salt...)
	d.Reset()
	return nil
}

// IterationCount returns the PBKDF2 iteration count.
func (d *Rfc2898DeriveBytes) IterationCount() int { return d.iterations }

// SetIterationCount replaces the iteration count and restarts the output stream.
func (d *Rfc2898DeriveBytes) SetIterationCount(iterations int) error {
	if iterations < 1 {
		return iterationError(iterations)
	}
	d.iterations = iterations
	d.Reset()
	return nil
}

// HashAlgorithm returns the PRF hash name, "SHA1" unless changed.
func (d *Rfc2898DeriveBytes) HashAlgorithm() string { return d.hashName }

// SetHashAlgorithm selects SHA1, SHA256, SHA384 or SHA512 as the HMAC hash
// and restarts the output stream.
func (d *Rfc2898DeriveBytes) SetHashAlgorithm(name string) error {
	var prf func() hash.Hash
	switch strings.ToUpper(strings.ReplaceAll(name, "-", "")) {
	case "SHA1":
		prf = sha1.New
	case "SHA256":
		prf = sha256.New
	case "SHA384":
		prf = sha512.New384
	case "SHA512":
		prf = sha512.New
	default:
		return argError(ErrUnknownAlgorithm, name)
	}
	d.hashName = strings.ToUpper(strings.ReplaceAll(name, "-", ""))
	d.prf = prf
	d.Reset()
	return nil
}

// GetBytes returns the next n bytes of the derived stream.
func (d *Rfc2898DeriveBytes) GetBytes(n int) ([]byte, error) {
	if n <= 0 {
		return nil, argError(ErrArgumentRange, "n")
	}
	end := d.offset + n
	if end > len(d.derived) {
		size := d.prf().Size()
		blocks := (end + size - 1) / size
		clear(d.derived)
		d.derived = pbkdf2.Key(d.password, d.salt, d.iterations, blocks*size, d.prf)
	}
	out := append([]byte(nil), d.derived[d.offset:end]...)
	d.offset = end
	return out, nil
}

// Reset restarts the output stream from the first byte.
func (d *Rfc2898DeriveBytes) Reset() {
	clear(d.derived)
	d.derived = nil
	d.offset = 0
}

// Clear wipes the password and derived material.
func (d *Rfc2898DeriveBytes) Clear() {
	clear(d.password)
	d.Reset()
}

func iterationError(iterations int) error {
	return oops.
		In("pbkdf2").
		With("iterations", iterations).
		Wrapf(ErrInvalidIterations, "%d", iterations)
}

func saltError(size int) error {
	return oops.
		In("pbkdf2").
		With("salt_size", size).
		Wrapf(ErrInvalidSalt, "%d bytes", size)
}
