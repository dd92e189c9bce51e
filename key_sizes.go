package go_symcrypt

import "fmt"

// KeySizes is one entry of a legal size table, in bits. A size v is legal for
// the entry when Min <= v <= Max and (v-Min) is a multiple of Skip. An entry
// with Skip == 0 admits exactly Min, and requires Min == Max.
type KeySizes struct {
	Min  int
	Max  int
	Skip int
}

// Contains reports whether bits is legal for this entry.
func (k KeySizes) Contains(bits int) bool {
	if k.Skip == 0 {
		return bits == k.Min && k.Min == k.Max
	}
	if bits < k.Min || bits > k.Max {
		return false
	}
	return (bits-k.Min)%k.Skip == 0
}

func (k KeySizes) String() string {
	return fmt.Sprintf("{min: %d, max: %d, skip: %d}", k.Min, k.Max, k.Skip)
}

// IsLegalSize reports whether bits matches any entry of table.
func IsLegalSize(bits int, table []KeySizes) bool {
	for _, entry := range table {
		if entry.Contains(bits) {
			return true
		}
	}
	return false
}

// copySizes returns a copy so callers cannot edit an algorithm's tables.
func copySizes(table []KeySizes) []KeySizes {
	out := make([]KeySizes, len(table))
	copy(out, table)
	return out
}
