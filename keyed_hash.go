package go_symcrypt

import (
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"hash"
	"strings"

	"golang.org/x/crypto/ripemd160"
)

// KeyedHashAlgorithm computes a MAC incrementally through the CryptoTransform
// interface: TransformBlock feeds data and copies it through, and
// TransformFinalBlock finishes the MAC, which is then available from Hash.
//
// The key is fixed once hashing has started. SetKey fails with
// ErrOperationStarted between the first TransformBlock and the next
// TransformFinalBlock or Initialize.
type KeyedHashAlgorithm struct {
	name      string
	hashSize  int
	keySize   int
	key       []byte
	newMAC    func(key []byte) (hash.Hash, error)
	checkKey  func(key []byte) error
	mac       hash.Hash
	hashValue []byte
	started   bool
	disposed  bool
}

type hmacSpec struct {
	name string
	fn   func() hash.Hash
}

var hmacRegistry = map[string]hmacSpec{
	"md5":       {"HMACMD5", md5.New},
	"sha1":      {"HMACSHA1", sha1.New},
	"sha256":    {"HMACSHA256", sha256.New},
	"sha384":    {"HMACSHA384", sha512.New384},
	"sha512":    {"HMACSHA512", sha512.New},
	"ripemd160": {"HMACRIPEMD160", ripemd160.New},
}

// NewHMAC returns an HMAC keyed hash for name, one of MD5, SHA1, SHA256,
// SHA384, SHA512 or RIPEMD160, optionally prefixed with "HMAC". A nil key is
// replaced with a random key one hash block long.
func NewHMAC(name string, key []byte) (*KeyedHashAlgorithm, error) {
	id := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), frameworkPrefix)
	id = strings.TrimPrefix(id, "hmac")
	spec, ok := hmacRegistry[id]
	if !ok {
		return nil, argError(ErrUnknownAlgorithm, name)
	}
	probe := spec.fn()
	k := &KeyedHashAlgorithm{
		name:     spec.name,
		hashSize: probe.Size() * 8,
		keySize:  probe.BlockSize(),
		newMAC: func(key []byte) (hash.Hash, error) {
			return hmac.New(spec.fn, key), nil
		},
		checkKey: func([]byte) error { return nil },
	}
	if err := k.init(key); err != nil {
		return nil, err
	}
	return k, nil
}

func (k *KeyedHashAlgorithm) init(key []byte) error {
	if key == nil {
		var err error
		for key == nil || k.checkKey(key) != nil {
			if key, err = NewCrypto().RandomBytes(k.keySize); err != nil {
				return err
			}
		}
	} else {
		if err := k.checkKey(key); err != nil {
			return err
		}
		key = append([]byte(nil), key...)
	}
	mac, err := k.newMAC(key)
	if err != nil {
		return err
	}
	k.key = key
	k.mac = mac
	return nil
}

// Name returns the algorithm name, e.g. "HMACSHA256".
func (k *KeyedHashAlgorithm) Name() string { return k.name }

// HashSize returns the MAC length in bits.
func (k *KeyedHashAlgorithm) HashSize() int { return k.hashSize }

// Key returns a copy of the key.
func (k *KeyedHashAlgorithm) Key() []byte { return append([]byte(nil), k.key...) }

// SetKey replaces the key. Fails with ErrOperationStarted while a MAC is in
// progress.
func (k *KeyedHashAlgorithm) SetKey(key []byte) error {
	if err := k.checkDisposed(); err != nil {
		return err
	}
	if key == nil {
		return argError(ErrArgumentNull, "key")
	}
	if k.started {
		return argError(ErrOperationStarted, k.name)
	}
	old := k.key
	if err := k.init(key); err != nil {
		return err
	}
	clear(old)
	return nil
}

// Initialize discards any partial MAC so a new one can start.
func (k *KeyedHashAlgorithm) Initialize() {
	k.mac.Reset()
	k.started = false
}

func (k *KeyedHashAlgorithm) InputBlockSize() int { return 1 }
func (k *KeyedHashAlgorithm) OutputBlockSize() int { return 1 }
func (k *KeyedHashAlgorithm) CanTransformMultipleBlocks() bool { return true }
func (k *KeyedHashAlgorithm) CanReuseTransform() bool { return true }

// TransformBlock adds input to the MAC and copies it to output when output is
// not nil.
func (k *KeyedHashAlgorithm) TransformBlock(input []byte, inputOffset, inputCount int, output []byte, outputOffset int) (int, error) {
	if err := k.checkDisposed(); err != nil {
		return 0, err
	}
	if err := checkInput(input, inputOffset, inputCount); err != nil {
		return 0, err
	}
	if output != nil {
		if err := checkOutput(output, outputOffset, inputCount); err != nil {
			return 0, err
		}
	}
	src := input[inputOffset : inputOffset+inputCount]
	k.started = true
	k.hashValue = nil
	k.mac.Write(src)
	if output != nil {
		copy(output[outputOffset:], src)
	}
	return inputCount, nil
}

// TransformFinalBlock adds the last input, completes the MAC and returns a
// copy of the input. The instance is ready for a new MAC afterwards.
func (k *KeyedHashAlgorithm) TransformFinalBlock(input []byte, inputOffset, inputCount int) ([]byte, error) {
	if err := k.checkDisposed(); err != nil {
		return nil, err
	}
	if err := checkInput(input, inputOffset, inputCount); err != nil {
		return nil, err
	}
	src := input[inputOffset : inputOffset+inputCount]
	k.mac.Write(src)
	k.hashValue = k.mac.Sum(nil)
	k.Initialize()
	return append([]byte(nil), src...), nil
}

// Hash returns the MAC computed by the last TransformFinalBlock.
func (k *KeyedHashAlgorithm) Hash() ([]byte, error) {
	if k.hashValue == nil {
		return nil, argError(ErrHashNotFinalized, k.name)
	}
	return append([]byte(nil), k.hashValue...), nil
}

// ComputeHash returns the MAC of data in one call.
func (k *KeyedHashAlgorithm) ComputeHash(data []byte) ([]byte, error) {
	if data == nil {
		return nil, argError(ErrArgumentNull, "data")
	}
	k.Initialize()
	if _, err := k.TransformFinalBlock(data, 0, len(data)); err != nil {
		return nil, err
	}
	return k.Hash()
}

// Clear wipes the key and the MAC state.
func (k *KeyedHashAlgorithm) Clear() {
	clear(k.key)
	clear(k.hashValue)
	k.hashValue = nil
	k.disposed = true
}

func (k *KeyedHashAlgorithm) checkDisposed() error {
	if k.disposed {
		return argError(ErrObjectDisposed, k.name)
	}
	return nil
}
