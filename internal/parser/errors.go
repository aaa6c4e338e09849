package parser

import (
	"github.com/funvibe/lolc/internal/token"
)

// ParseError is a failed parse attempt. Level is the nesting depth of the
// nonterminal that failed.
type ParseError struct {
	Message string
	Token   token.Token
	Level   int
}

func (e *ParseError) Error() string {
	return e.Message
}

// FilterErrors keeps only the failures that explain the parse best. An
// error is dropped when another error at the same level got at least as
// far, or when the parser's final cursor moved past it.
func FilterErrors(errs []*ParseError, cursor int) []*ParseError {
	var filtered []*ParseError
	for i, e := range errs {
		dominated := cursor > e.Token.Index
		for j, other := range errs {
			if dominated {
				break
			}
			if i == j {
				continue
			}
			if other.Level == e.Level && other.Token.Index >= e.Token.Index {
				dominated = true
			}
		}
		if !dominated {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// furthest picks the failure with the highest token index, the deepest one
// among equals.
func furthest(errs []*ParseError) *ParseError {
	best := errs[0]
	for _, e := range errs[1:] {
		if e.Token.Index > best.Token.Index ||
			(e.Token.Index == best.Token.Index && e.Level >= best.Level) {
			best = e
		}
	}
	return best
}
