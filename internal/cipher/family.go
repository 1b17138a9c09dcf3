// Package cipher implements the inverse transforms for the classical cipher
// families gocipher can attack.
//
// Only decryption lives here. Keys are produced by the keyspace package and
// fed through Invert by the search orchestrator.
package cipher

import (
	"fmt"
	"strings"
)

// Family identifies a cipher family. The set is closed.
type Family int

const (
	Columnar Family = iota
	Periodic
	Vigenere
	Beaufort
)

var familyNames = map[Family]string{
	Columnar: "columnar",
	Periodic: "periodic",
	Vigenere: "vigenere",
	Beaufort: "beaufort",
}

// Families lists every supported family in declaration order.
func Families() []Family {
	return []Family{Columnar, Periodic, Vigenere, Beaufort}
}

func (f Family) String() string {
	if name, ok := familyNames[f]; ok {
		return name
	}
	return fmt.Sprintf("family(%d)", int(f))
}

// IsTransposition reports whether keys for f are permutations.
func (f Family) IsTransposition() bool {
	return f == Columnar || f == Periodic
}

// IsPolyalphabetic reports whether keys for f are shift vectors.
func (f Family) IsPolyalphabetic() bool {
	return f == Vigenere || f == Beaufort
}

// ParseFamily converts a user supplied name into a Family.
func ParseFamily(name string) (Family, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "columnar", "column":
		return Columnar, nil
	case "periodic", "period":
		return Periodic, nil
	case "vigenere", "vigenère":
		return Vigenere, nil
	case "beaufort":
		return Beaufort, nil
	default:
		return Columnar, fmt.Errorf("unknown cipher family %q", name)
	}
}

// Layout selects how columnar output is flattened.
type Layout int

const (
	// LayoutRows places each column block row-major (the usual grid read-back).
	LayoutRows Layout = iota
	// LayoutTranspose places each column block contiguously.
	LayoutTranspose
)

func (l Layout) String() string {
	if l == LayoutTranspose {
		return "transpose"
	}
	return "rows"
}
