package tape

import (
	"strings"
	"unicode"
)

// Lexer tokenizes .tape input.
type Lexer struct {
	input   string
	pos     int
	nextPos int
	ch      byte
	line    int
	column  int
}

// NewLexer creates a lexer for input.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input, line: 1}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.nextPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.nextPos]
	}
	l.pos = l.nextPos
	l.nextPos++
	l.column++
}

// skipWhitespace skips spaces and tabs but not newlines.
func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
		l.readChar()
	}
}

func (l *Lexer) skipComment() {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
}

// readString reads a single, double or backtick quoted string.
func (l *Lexer) readString(quote byte) string {
	var sb strings.Builder
	l.readChar()
	for l.ch != quote && l.ch != 0 && l.ch != '\n' {
		if l.ch == '\\' && quote != '`' {
			l.readChar()
			switch l.ch {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 0:
				return sb.String()
			default:
				sb.WriteByte(l.ch)
			}
		} else {
			sb.WriteByte(l.ch)
		}
		l.readChar()
	}
	if l.ch == quote {
		l.readChar()
	}
	return sb.String()
}

// readRegex reads /pattern/. Escapes are kept for the regexp package,
// except \/ which becomes a plain slash.
func (l *Lexer) readRegex() string {
	var sb strings.Builder
	l.readChar()
	for l.ch != '/' && l.ch != 0 && l.ch != '\n' {
		if l.ch == '\\' && l.peekChar() == '/' {
			l.readChar()
		}
		sb.WriteByte(l.ch)
		l.readChar()
	}
	if l.ch == '/' {
		l.readChar()
	}
	return sb.String()
}

func (l *Lexer) peekChar() byte {
	if l.nextPos >= len(l.input) {
		return 0
	}
	return l.input[l.nextPos]
}

func (l *Lexer) readWhile(ok func(byte) bool) string {
	start := l.pos
	for l.ch != 0 && ok(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

// NextToken returns the next token.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()
	if l.ch == '#' {
		l.skipComment()
	}

	tok := Token{Line: l.line, Column: l.column}
	switch l.ch {
	case 0:
		tok.Type = TokenEOF
	case '\n':
		tok.Type, tok.Literal = TokenNewline, "\n"
		l.readChar()
		l.line++
		l.column = 1
	case '+':
		tok.Type, tok.Literal = TokenPlus, "+"
		l.readChar()
	case '@':
		tok.Type, tok.Literal = TokenAt, "@"
		l.readChar()
	case '/':
		tok.Type, tok.Literal = TokenRegex, l.readRegex()
	case '"', '\'', '`':
		tok.Type, tok.Literal = TokenString, l.readString(l.ch)
	default:
		switch {
		case isDigit(l.ch):
			num := l.readWhile(func(c byte) bool { return isDigit(c) || c == '.' })
			if isLetter(l.ch) {
				tok.Type, tok.Literal = TokenDuration, num+l.readWhile(isLetter)
			} else {
				tok.Type, tok.Literal = TokenNumber, num
			}
		case isIdentifierStart(l.ch):
			tok.Literal = l.readWhile(isIdentifierChar)
			tok.Type = LookupKeyword(tok.Literal)
		default:
			tok.Type, tok.Literal = TokenIllegal, string(l.ch)
			l.readChar()
		}
	}
	return tok
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isLetter(ch byte) bool {
	return unicode.IsLetter(rune(ch))
}

func isIdentifierStart(ch byte) bool {
	return isLetter(ch) || ch == '_'
}

// isIdentifierChar allows the characters of app ids and post slugs.
func isIdentifierChar(ch byte) bool {
	return isLetter(ch) || isDigit(ch) || ch == '_' || ch == '-' || ch == ':' || ch == '.'
}

// Tokenize returns every token of input, ending with TokenEOF.
func Tokenize(input string) []Token {
	l := NewLexer(input)
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens
		}
	}
}
