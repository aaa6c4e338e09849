package token

import "fmt"

type TokenType string

const (
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	// Identifiers and literals
	IDENT  TokenType = "IDENT"
	NUMBER TokenType = "NUMBER" // 42
	NUMBAR TokenType = "NUMBAR" // 4.2
	YARN   TokenType = "YARN"   // "text"
	TROOF  TokenType = "TROOF"  // WIN / FAIL

	// Keyword words. Multi-word keywords ("I HAS A", "BOTH SAEM") are
	// sequences of WORD tokens matched by the parser.
	WORD TokenType = "WORD"

	COMMA    TokenType = ","
	NEWLINE  TokenType = "NEWLINE"
	QUESTION TokenType = "?"
	BANG     TokenType = "!"
)

// Token is a lexeme with its location. Start and End are byte offsets into
// the source (End exclusive), Index is the position in the token sequence.
type Token struct {
	Type    TokenType
	Literal string
	Start   int
	End     int
	Index   int
	Line    int
	Column  int
}

// Is reports whether the token is the keyword word w.
func (t Token) Is(w string) bool {
	return t.Type == WORD && t.Literal == w
}

func (t Token) String() string {
	if t.Type == NEWLINE {
		return "newline"
	}
	if t.Type == EOF {
		return "end of input"
	}
	return fmt.Sprintf("%q", t.Literal)
}

var keywords = map[string]bool{
	"HAI": true, "KTHXBYE": true,
	"I": true, "HAS": true, "A": true, "ITZ": true, "R": true,
	"IT": true,
	"VISIBLE": true, "GIMMEH": true,
	"SUM": true, "DIFF": true, "PRODUKT": true, "QUOSHUNT": true, "MOD": true,
	"BIGGR": true, "SMALLR": true, "OF": true, "AN": true,
	"BOTH": true, "EITHER": true, "WON": true, "NOT": true, "ALL": true, "ANY": true,
	"SAEM": true, "DIFFRINT": true, "SMOOSH": true, "MKAY": true, "MAEK": true,
	"NUMBER": true, "NUMBAR": true, "YARN": true, "TROOF": true, "NOOB": true,
	"O": true, "RLY": true, "YA": true, "MEBBE": true, "NO": true, "WAI": true, "OIC": true,
	"WTF": true, "OMG": true, "OMGWTF": true, "GTFO": true,
	"IM": true, "IN": true, "YR": true, "OUTTA": true, "UPPIN": true, "NERFIN": true,
	"TIL": true, "WILE": true,
	"HOW": true, "IZ": true, "IF": true, "U": true, "SAY": true, "SO": true, "FOUND": true,
}

// LookupIdent classifies a scanned word.
func LookupIdent(word string) TokenType {
	if word == "WIN" || word == "FAIL" {
		return TROOF
	}
	if keywords[word] {
		return WORD
	}
	return IDENT
}

// TypeNames are the words that name a LOLCODE type.
var TypeNames = []string{"NUMBER", "NUMBAR", "YARN", "TROOF", "NOOB"}
