package typesystem

import "fmt"

// Kind is a LOLCODE value category.
type Kind int

const (
	Noob Kind = iota
	Number
	Numbar
	Yarn
	Troof
)

var kindNames = map[Kind]string{
	Noob:   "NOOB",
	Number: "NUMBER",
	Numbar: "NUMBAR",
	Yarn:   "YARN",
	Troof:  "TROOF",
}

func (k Kind) String() string { return kindNames[k] }

// Type is a value type. Size is the number of heap cells of a YARN and is
// zero for every other kind.
type Type struct {
	Kind Kind
	Size int
}

var (
	TNoob   = Type{Kind: Noob}
	TNumber = Type{Kind: Number}
	TNumbar = Type{Kind: Numbar}
	TTroof  = Type{Kind: Troof}
)

// TYarn is a YARN of n cells.
func TYarn(n int) Type {
	return Type{Kind: Yarn, Size: n}
}

// Equals compares kinds only; two YARNs of different sizes are equal types.
func (t Type) Equals(other Type) bool {
	return t.Kind == other.Kind
}

func (t Type) Is(k Kind) bool {
	return t.Kind == k
}

// IsNumeric reports NUMBER or NUMBAR.
func (t Type) IsNumeric() bool {
	return t.Kind == Number || t.Kind == Numbar
}

func (t Type) String() string {
	return t.Kind.String()
}

// Describe includes the YARN size.
func (t Type) Describe() string {
	if t.Kind == Yarn {
		return fmt.Sprintf("YARN(%d)", t.Size)
	}
	return t.Kind.String()
}

// FromName maps a type word to its Type. Declared YARNs start with one cell.
func FromName(name string) (Type, bool) {
	switch name {
	case "NUMBER":
		return TNumber, true
	case "NUMBAR":
		return TNumbar, true
	case "YARN":
		return TYarn(1), true
	case "TROOF":
		return TTroof, true
	case "NOOB":
		return TNoob, true
	}
	return TNoob, false
}
