package go_symcrypt

import "strings"

const frameworkPrefix = "system.security.cryptography."

// algorithmRegistry maps lower-cased names to constructors.
var algorithmRegistry = map[string]func() *SymmetricAlgorithm{
	"des":                            NewDES,
	"descryptoserviceprovider":       NewDES,
	"3des":                           NewTripleDES,
	"tripledes":                      NewTripleDES,
	"triple des":                     NewTripleDES,
	"tripledescryptoserviceprovider": NewTripleDES,
	"rc2":                            NewRC2,
	"rc2cryptoserviceprovider":       NewRC2,
	"rijndael":                       NewRijndael,
	"rijndaelmanaged":                NewRijndael,
	"aes":                            NewAES,
	"aesmanaged":                     NewAES,
	"aescryptoserviceprovider":       NewAES,
}

// Create returns a new algorithm by name. Names are case-insensitive and may
// carry the System.Security.Cryptography namespace, so "DES",
// "System.Security.Cryptography.TripleDES" and "3des" all resolve.
func Create(name string) (*SymmetricAlgorithm, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.TrimPrefix(key, frameworkPrefix)
	ctor, ok := algorithmRegistry[key]
	if !ok {
		return nil, argError(ErrUnknownAlgorithm, name)
	}
	return ctor(), nil
}

// AlgorithmNames lists the canonical names accepted by Create.
func AlgorithmNames() []string {
	return []string{"DES", "TripleDES", "RC2", "Rijndael", "AES"}
}
