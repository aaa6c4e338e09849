package generators

import (
	"fmt"
	"math/rand"
	"strings"
)

// RandomSource abstracts the source of randomness.
type RandomSource interface {
	Intn(n int) int
	Float64() float64
}

// RandSource wraps math/rand.
type RandSource struct {
	*rand.Rand
}

// ByteSource uses a byte slice as a source of randomness.
type ByteSource struct {
	data []byte
	pos  int
}

func (s *ByteSource) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	if s.pos >= len(s.data) {
		return 0
	}
	v := int(s.data[s.pos])
	s.pos++
	return v % n
}

func (s *ByteSource) Float64() float64 {
	if s.pos >= len(s.data) {
		return 0.0
	}
	v := int(s.data[s.pos])
	s.pos++
	return float64(v) / 255.0
}

// Kind names a LOLCODE value type.
type Kind string

const (
	Number Kind = "NUMBER"
	Numbar Kind = "NUMBAR"
	Yarn   Kind = "YARN"
	Troof  Kind = "TROOF"
)

var kinds = []Kind{Number, Numbar, Yarn, Troof}

// Generator generates random, well-typed LOLCODE programs. Every program
// it produces lowers without diagnostics and runs without a machine
// fault: divisors are non-zero literals and nesting is bounded.
type Generator struct {
	src   RandomSource
	depth int
	vars  map[Kind][]string
	next  int
}

const (
	MaxDepth      = 3
	MaxStatements = 8
)

func New(seed int64) *Generator {
	return &Generator{
		src:  &RandSource{rand.New(rand.NewSource(seed))},
		vars: map[Kind][]string{},
	}
}

func NewFromData(data []byte) *Generator {
	return &Generator{
		src:  &ByteSource{data: data},
		vars: map[Kind][]string{},
	}
}

// Intn exposes the random source's Intn method.
func (g *Generator) Intn(n int) int {
	return g.src.Intn(n)
}

func (g *Generator) GenerateProgram() string {
	var sb strings.Builder
	sb.WriteString("HAI 1.2\n")
	count := g.src.Intn(MaxStatements) + 1
	for i := 0; i < count; i++ {
		sb.WriteString(g.GenerateStatement())
		sb.WriteString(g.terminator())
	}
	sb.WriteString("KTHXBYE\n")
	return sb.String()
}

// terminator is a newline most of the time, sometimes a comma or a
// comment.
func (g *Generator) terminator() string {
	switch g.src.Intn(8) {
	case 0:
		return ", "
	case 1:
		return " BTW noise\n"
	case 2:
		return "\n\n"
	}
	return "\n"
}

func (g *Generator) pickKind() Kind {
	return kinds[g.src.Intn(len(kinds))]
}

func (g *Generator) GenerateStatement() string {
	switch choice := g.src.Intn(10); {
	case choice < 3:
		return g.GenerateDeclaration()
	case choice < 5:
		if s, ok := g.GenerateAssignment(); ok {
			return s
		}
		return g.GenerateDeclaration()
	case choice < 8:
		return g.GenerateVisible()
	case choice < 9:
		if names := g.vars[Yarn]; len(names) > 0 {
			return "GIMMEH " + names[g.src.Intn(len(names))]
		}
		return g.GenerateVisible()
	default:
		return g.GenerateExpression(g.pickKind())
	}
}

func (g *Generator) GenerateDeclaration() string {
	k := g.pickKind()
	name := fmt.Sprintf("v%d", g.next)
	g.next++
	s := "I HAS A " + name + " ITZ " + string(k)
	if g.src.Intn(4) != 0 {
		s += " R " + g.GenerateExpression(k)
	}
	// Declared after the initializer so it cannot reference itself.
	g.vars[k] = append(g.vars[k], name)
	return s
}

func (g *Generator) GenerateAssignment() (string, bool) {
	k := g.pickKind()
	names := g.vars[k]
	if len(names) == 0 {
		return "", false
	}
	return names[g.src.Intn(len(names))] + " R " + g.GenerateExpression(k), true
}

func (g *Generator) GenerateVisible() string {
	n := g.src.Intn(3) + 1
	parts := make([]string, n)
	for i := range parts {
		parts[i] = g.GenerateExpression(g.pickKind())
	}
	sep := " AN "
	if g.src.Intn(2) == 0 {
		sep = " "
	}
	s := "VISIBLE " + strings.Join(parts, sep)
	if g.src.Intn(4) == 0 {
		s += "!"
	}
	return s
}

// GenerateExpression produces an expression of kind k.
func (g *Generator) GenerateExpression(k Kind) string {
	if g.depth >= MaxDepth {
		return g.leaf(k)
	}
	g.depth++
	defer func() { g.depth-- }()

	if g.src.Intn(3) == 0 {
		return g.leaf(k)
	}
	switch k {
	case Number:
		return g.number()
	case Numbar:
		return g.numbar()
	case Troof:
		return g.troof()
	}
	return g.yarn()
}

func (g *Generator) leaf(k Kind) string {
	if names := g.vars[k]; len(names) > 0 && g.src.Intn(2) == 0 {
		return names[g.src.Intn(len(names))]
	}
	return g.literal(k)
}

func (g *Generator) literal(k Kind) string {
	switch k {
	case Number:
		if g.src.Intn(5) == 0 {
			return fmt.Sprintf("-%d", g.src.Intn(50)+1)
		}
		return fmt.Sprintf("%d", g.src.Intn(100))
	case Numbar:
		return fmt.Sprintf("%d.%d", g.src.Intn(20), g.src.Intn(100))
	case Troof:
		if g.src.Intn(2) == 0 {
			return "WIN"
		}
		return "FAIL"
	}
	return g.yarnLiteral()
}

var yarnPieces = []string{"a", "b", "O HAI", " ", "kitteh", "42", "3.5", ":)", ":>", "::", ":\"", "WIN"}

func (g *Generator) yarnLiteral() string {
	var sb strings.Builder
	sb.WriteByte('"')
	n := g.src.Intn(4)
	for i := 0; i < n; i++ {
		sb.WriteString(yarnPieces[g.src.Intn(len(yarnPieces))])
	}
	sb.WriteByte('"')
	return sb.String()
}

func (g *Generator) nonZero(k Kind) string {
	if k == Number {
		return fmt.Sprintf("%d", g.src.Intn(9)+1)
	}
	return fmt.Sprintf("%d.5", g.src.Intn(9))
}

var numericOps = []string{"SUM OF", "DIFF OF", "PRODUKT OF", "BIGGR OF", "SMALLR OF"}

func (g *Generator) arithmetic(k Kind) string {
	switch g.src.Intn(7) {
	case 0:
		return "QUOSHUNT OF " + g.GenerateExpression(k) + " AN " + g.nonZero(k)
	case 1:
		if k == Number {
			return "MOD OF " + g.GenerateExpression(k) + " AN " + g.nonZero(k)
		}
	}
	op := numericOps[g.src.Intn(len(numericOps))]
	return op + " " + g.GenerateExpression(k) + " AN " + g.GenerateExpression(k)
}

func (g *Generator) maek(to Kind) string {
	from := g.pickKind()
	return "MAEK " + g.GenerateExpression(from) + " A " + string(to)
}

func (g *Generator) number() string {
	if g.src.Intn(4) == 0 {
		return g.maek(Number)
	}
	return g.arithmetic(Number)
}

func (g *Generator) numbar() string {
	if g.src.Intn(4) == 0 {
		return g.maek(Numbar)
	}
	return g.arithmetic(Numbar)
}

var connectives = []string{"BOTH OF", "EITHER OF", "WON OF"}

func (g *Generator) troof() string {
	switch g.src.Intn(6) {
	case 0:
		return "NOT " + g.GenerateExpression(Troof)
	case 1:
		op := "ALL OF"
		if g.src.Intn(2) == 0 {
			op = "ANY OF"
		}
		n := g.src.Intn(3) + 1
		parts := make([]string, n)
		for i := range parts {
			parts[i] = g.GenerateExpression(Troof)
		}
		return op + " " + strings.Join(parts, " AN ") + " MKAY"
	case 2:
		k := g.pickKind()
		op := "BOTH SAEM"
		if g.src.Intn(2) == 0 {
			op = "DIFFRINT"
		}
		return op + " " + g.GenerateExpression(k) + " AN " + g.GenerateExpression(k)
	case 3:
		return g.maek(Troof)
	}
	op := connectives[g.src.Intn(len(connectives))]
	return op + " " + g.GenerateExpression(Troof) + " AN " + g.GenerateExpression(Troof)
}

func (g *Generator) yarn() string {
	if g.src.Intn(2) == 0 {
		return g.maek(Yarn)
	}
	n := g.src.Intn(3) + 1
	parts := make([]string, n)
	for i := range parts {
		parts[i] = g.GenerateExpression(Yarn)
	}
	return "SMOOSH " + strings.Join(parts, " AN ") + " MKAY"
}
