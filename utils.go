package go_symcrypt

import (
	"bufio"
	"encoding/hex"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/samber/oops"
)

var configRegex = regexp.MustCompile("\\s*([\\w.]+)=\\s*(.+)\\s*;\\s*")

// Cipher profile keys understood by LoadProfile
const (
	ProfileAlgorithm        = "algorithm"
	ProfileMode             = "mode"
	ProfilePadding          = "padding"
	ProfileKeySize          = "keysize"
	ProfileBlockSize        = "blocksize"
	ProfileFeedbackSize     = "feedback"
	ProfileEffectiveKeySize = "effectivekeysize"
	ProfileKey              = "key"
	ProfileIV               = "iv"
)

// profileOrder is the order settings are applied in. Block size must precede
// the IV and feedback, key size must precede the key.
var profileOrder = []string{
	ProfileBlockSize,
	ProfileKeySize,
	ProfileFeedbackSize,
	ProfileMode,
	ProfilePadding,
	ProfileKey,
	ProfileEffectiveKeySize,
	ProfileIV,
}

// ParseConfig reads a configuration file of `name=value;` lines and calls cb
// for each pair. Lines that do not match are skipped.
func ParseConfig(path string, cb func(string, string)) error {
	file, err := os.Open(path)
	if err != nil {
		return oops.In("profile").With("path", path).Wrapf(err, "open config")
	}
	defer file.Close()
	Debug("Parsing config file '%s'", path)
	return parseConfigReader(file, cb)
}

func parseConfigReader(r io.Reader, cb func(string, string)) error {
	scan := bufio.NewScanner(r)
	for scan.Scan() {
		groups := configRegex.FindStringSubmatch(scan.Text())
		if len(groups) != 3 {
			continue
		}
		cb(strings.ToLower(groups[1]), strings.TrimSpace(groups[2]))
	}
	if err := scan.Err(); err != nil {
		Error("reading config: %s", err.Error())
		return err
	}
	return nil
}

// LoadProfile builds a SymmetricAlgorithm from a cipher profile file, e.g.
//
//	algorithm=TripleDES;
//	mode=CFB;
//	padding=PKCS7;
//	feedback=8;
//	key=000102030405060708090a0b0c0d0e0f1011121314151617;
//	iv=0000000000000000;
//
// Settings missing from the file keep the algorithm's defaults.
func LoadProfile(path string) (*SymmetricAlgorithm, error) {
	props := make(map[string]string)
	if err := ParseConfig(path, func(name, value string) { props[name] = value }); err != nil {
		return nil, err
	}
	return profileFromProperties(props)
}

// ReadProfile is LoadProfile for an already open reader.
func ReadProfile(r io.Reader) (*SymmetricAlgorithm, error) {
	props := make(map[string]string)
	if err := parseConfigReader(r, func(name, value string) { props[name] = value }); err != nil {
		return nil, err
	}
	return profileFromProperties(props)
}

func profileFromProperties(props map[string]string) (*SymmetricAlgorithm, error) {
	name, ok := props[ProfileAlgorithm]
	if !ok {
		return nil, argError(ErrUnknownAlgorithm, "profile has no "+ProfileAlgorithm)
	}
	alg, err := Create(name)
	if err != nil {
		return nil, err
	}
	for _, key := range profileOrder {
		value, ok := props[key]
		if !ok {
			continue
		}
		if err := applyProfileSetting(alg, key, value); err != nil {
			return nil, oops.In("profile").With("setting", key).Wrap(err)
		}
	}
	for key := range props {
		if !isProfileKey(key) {
			Warning("Ignoring unknown profile setting %s", key)
		}
	}
	return alg, nil
}

func applyProfileSetting(alg *SymmetricAlgorithm, key, value string) error {
	switch key {
	case ProfileMode:
		mode, err := ParseCipherMode(value)
		if err != nil {
			return err
		}
		return alg.SetMode(mode)
	case ProfilePadding:
		padding, err := ParsePaddingMode(value)
		if err != nil {
			return err
		}
		return alg.SetPadding(padding)
	case ProfileKey, ProfileIV:
		raw, err := hex.DecodeString(value)
		if err != nil {
			return argError(ErrArgumentRange, key+" is not hex")
		}
		if key == ProfileKey {
			return alg.SetKey(raw)
		}
		return alg.SetIV(raw)
	}

	bits, err := strconv.Atoi(value)
	if err != nil {
		return argError(ErrArgumentRange, key+"="+value)
	}
	switch key {
	case ProfileKeySize:
		return alg.SetKeySize(bits)
	case ProfileBlockSize:
		return alg.SetBlockSize(bits)
	case ProfileFeedbackSize:
		return alg.SetFeedbackSize(bits)
	case ProfileEffectiveKeySize:
		return alg.SetEffectiveKeySize(bits)
	}
	return nil
}

func isProfileKey(key string) bool {
	if key == ProfileAlgorithm {
		return true
	}
	for _, k := range profileOrder {
		if k == key {
			return true
		}
	}
	return false
}
