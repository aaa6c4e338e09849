package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/funvibe/lolc/internal/token"
)

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int  // current line number
	column       int  // current column number
	index        int  // index of the next emitted token
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = len(l.input)
		l.readPosition = len(l.input) + 1
		l.column++
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += w
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) atEnd() bool {
	return l.position >= len(l.input)
}

// NextToken scans one token. Comments and line continuations are skipped;
// an unrecoverable character sequence yields an ILLEGAL token whose literal
// is the error message.
func (l *Lexer) NextToken() token.Token {
	for {
		l.skipWhitespace()
		if l.atEnd() {
			return l.emit(token.EOF, "", l.position, l.position, l.line, l.column)
		}

		start, line, col := l.position, l.line, l.column

		switch {
		case l.ch == '\n':
			l.readChar()
			return l.emit(token.NEWLINE, "\n", start, start+1, line, col)
		case l.ch == ',':
			l.readChar()
			return l.emit(token.COMMA, ",", start, start+1, line, col)
		case l.ch == '?':
			l.readChar()
			return l.emit(token.QUESTION, "?", start, start+1, line, col)
		case l.ch == '!':
			l.readChar()
			return l.emit(token.BANG, "!", start, start+1, line, col)
		case l.ch == '"':
			value, ok, msg := l.readYarn()
			if !ok {
				return l.emit(token.ILLEGAL, msg, start, l.position, line, col)
			}
			return l.emit(token.YARN, value, start, l.position, line, col)
		case isDigit(l.ch) || (l.ch == '-' && isDigit(l.peekChar())):
			lit, isFloat := l.readNumber()
			if isFloat {
				return l.emit(token.NUMBAR, lit, start, l.position, line, col)
			}
			return l.emit(token.NUMBER, lit, start, l.position, line, col)
		case isLetter(l.ch):
			word := l.readWord()
			switch word {
			case "BTW":
				l.skipLine()
				continue
			case "OBTW":
				if !l.skipBlockComment() {
					return l.emit(token.ILLEGAL, "Unterminated OBTW comment", start, l.position, line, col)
				}
				continue
			}
			return l.emit(token.LookupIdent(word), word, start, l.position, line, col)
		case l.ch == '.' && strings.HasPrefix(l.input[l.position:], "..."):
			// line continuation
			l.readChar()
			l.readChar()
			l.readChar()
			l.skipWhitespace()
			if l.ch == '\n' {
				l.readChar()
			}
			continue
		case l.ch == '…':
			l.readChar()
			l.skipWhitespace()
			if l.ch == '\n' {
				l.readChar()
			}
			continue
		default:
			ch := l.ch
			l.readChar()
			return l.emit(token.ILLEGAL, "Unexpected character '"+string(ch)+"'", start, l.position, line, col)
		}
	}
}

func (l *Lexer) emit(t token.TokenType, lit string, start, end, line, col int) token.Token {
	tok := token.Token{Type: t, Literal: lit, Start: start, End: end, Index: l.index, Line: line, Column: col}
	l.index++
	return tok
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
		l.readChar()
	}
}

func (l *Lexer) skipLine() {
	for !l.atEnd() && l.ch != '\n' {
		l.readChar()
	}
}

// skipBlockComment consumes everything up to and including the next TLDR.
func (l *Lexer) skipBlockComment() bool {
	for !l.atEnd() {
		if isLetter(l.ch) {
			if l.readWord() == "TLDR" {
				return true
			}
			continue
		}
		l.readChar()
	}
	return false
}

func (l *Lexer) readWord() string {
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[position:l.position]
}

func (l *Lexer) readNumber() (string, bool) {
	position := l.position
	isFloat := false
	if l.ch == '-' {
		l.readChar()
	}
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		isFloat = true
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	return l.input[position:l.position], isFloat
}

// readYarn scans a string literal. ':' escapes the next character:
// :) newline, :> tab, :o bell, :" quote, :: colon.
func (l *Lexer) readYarn() (string, bool, string) {
	var sb strings.Builder
	l.readChar() // opening quote
	for {
		switch {
		case l.atEnd() || l.ch == '\n':
			return "", false, "Unterminated YARN literal"
		case l.ch == '"':
			l.readChar()
			return sb.String(), true, ""
		case l.ch == ':':
			l.readChar()
			switch l.ch {
			case ')':
				sb.WriteByte('\n')
			case '>':
				sb.WriteByte('\t')
			case 'o':
				sb.WriteByte('\a')
			case '"':
				sb.WriteByte('"')
			case ':':
				sb.WriteByte(':')
			default:
				return "", false, "Unknown escape sequence ':" + string(l.ch) + "'"
			}
			l.readChar()
		default:
			sb.WriteRune(l.ch)
			l.readChar()
		}
	}
}

func isLetter(ch rune) bool {
	return ch == '_' || (ch < utf8.RuneSelf && unicode.IsLetter(ch))
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

// Tokenize scans the whole input. It stops after the first ILLEGAL token,
// which is returned as the last element; otherwise the last token is EOF.
func Tokenize(input string) []token.Token {
	l := New(input)
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == token.EOF || tok.Type == token.ILLEGAL {
			return tokens
		}
	}
}
