package tape

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Parser turns tokens into commands, one command per line.
type Parser struct {
	lexer  *Lexer
	cur    Token
	peek   Token
	errors []error
}

// NewParser creates a parser reading from l.
func NewParser(l *Lexer) *Parser {
	p := &Parser{lexer: l}
	p.next()
	p.next()
	return p
}

// Parse parses a whole script. Every bad line is reported; the commands of
// the good lines are returned either way.
func Parse(input string) ([]Command, error) {
	return NewParser(NewLexer(input)).Parse()
}

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.lexer.NextToken()
}

func (p *Parser) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Errorf("line %d: %s", p.cur.Line, fmt.Sprintf(format, args...)))
}

// Parse parses every remaining line.
func (p *Parser) Parse() ([]Command, error) {
	var cmds []Command
	for p.cur.Type != TokenEOF {
		if p.cur.Type == TokenNewline {
			p.next()
			continue
		}
		before := len(p.errors)
		cmd, ok := p.parseCommand()
		if ok && len(p.errors) == before {
			if p.cur.Type != TokenNewline && p.cur.Type != TokenEOF {
				p.errorf("unexpected %q after %s", p.cur.Literal, cmd.Type)
			} else {
				cmds = append(cmds, cmd)
			}
		}
		p.skipLine()
	}
	return cmds, errors.Join(p.errors...)
}

func (p *Parser) skipLine() {
	for p.cur.Type != TokenNewline && p.cur.Type != TokenEOF {
		p.next()
	}
}

func (p *Parser) parseCommand() (Command, bool) {
	cmd := Command{Line: p.cur.Line}
	tok := p.cur

	if key, ok := keyTokens[tok.Type]; ok {
		cmd.Type, cmd.Args = CommandKey, []string{key}
		p.next()
		p.parseDelay(&cmd)
		if p.cur.Type == TokenNumber {
			cmd.Ints = []int{p.number()}
			p.parseDelay(&cmd)
		}
		return cmd, true
	}
	if tok.Type.IsModifier() {
		return p.parseCombo()
	}

	p.next()
	switch tok.Type {
	case TokenTypeText:
		cmd.Type = CommandText
		p.parseDelay(&cmd)
		s, ok := p.text()
		if !ok {
			p.errorf("Type needs a string")
			return cmd, false
		}
		cmd.Args = []string{s}
	case TokenClick, TokenDoubleClick:
		cmd.Type = CommandClick
		if tok.Type == TokenDoubleClick {
			cmd.Type = CommandDoubleClick
		}
		cmd.Ints = p.numbers(2, "x and y")
	case TokenDrag:
		cmd.Type = CommandDrag
		cmd.Ints = p.numbers(4, "from x, from y, to x and to y")
	case TokenResize:
		cmd.Type = CommandResize
		cmd.Ints = p.numbers(2, "width and height")
	case TokenOpen:
		cmd.Type = CommandOpen
		id, ok := p.name()
		if !ok {
			p.errorf("Open needs an app id")
			return cmd, false
		}
		cmd.Args = []string{id}
		if sel, ok := p.name(); ok {
			cmd.Args = append(cmd.Args, sel)
		}
	case TokenPost, TokenFocus, TokenLogin:
		cmd.Type = map[TokenType]CommandType{
			TokenPost:  CommandPost,
			TokenFocus: CommandFocus,
			TokenLogin: CommandLogin,
		}[tok.Type]
		arg, ok := p.name()
		if !ok {
			p.errorf("%s needs an argument", tok.Literal)
			return cmd, false
		}
		cmd.Args = []string{arg}
	case TokenClose, TokenMinimize, TokenMaximize, TokenScreenshot:
		cmd.Type = map[TokenType]CommandType{
			TokenClose:      CommandClose,
			TokenMinimize:   CommandMinimize,
			TokenMaximize:   CommandMaximize,
			TokenScreenshot: CommandScreenshot,
		}[tok.Type]
		if arg, ok := p.name(); ok {
			cmd.Args = []string{arg}
		}
	case TokenLogout:
		cmd.Type = CommandLogout
	case TokenReload:
		cmd.Type = CommandReload
	case TokenSleep:
		cmd.Type = CommandSleep
		if p.cur.Type != TokenDuration && p.cur.Type != TokenNumber {
			p.errorf("Sleep needs a duration")
			return cmd, false
		}
		cmd.Delay = p.duration()
	case TokenWait:
		cmd.Type = CommandWait
		p.parseDelay(&cmd)
		var pattern string
		switch p.cur.Type {
		case TokenRegex:
			pattern = p.cur.Literal
		case TokenString:
			pattern = regexp.QuoteMeta(p.cur.Literal)
		default:
			p.errorf("Wait needs /regex/ or a string")
			return cmd, false
		}
		if _, err := regexp.Compile(pattern); err != nil {
			p.errorf("bad pattern: %v", err)
			return cmd, false
		}
		cmd.Args = []string{pattern}
		p.next()
	case TokenSet:
		cmd.Type = CommandSet
		if p.cur.Type != TokenIdentifier {
			p.errorf("Set needs a setting name")
			return cmd, false
		}
		name := p.cur.Literal
		p.next()
		switch p.cur.Type {
		case TokenNumber, TokenDuration, TokenString, TokenIdentifier:
			cmd.Args = []string{name, p.cur.Literal}
			p.next()
		default:
			p.errorf("Set %s needs a value", name)
			return cmd, false
		}
	default:
		p.errorf("unknown command %q", tok.Literal)
		return cmd, false
	}
	return cmd, true
}

// parseCombo parses Ctrl+Alt+x style key combinations.
func (p *Parser) parseCombo() (Command, bool) {
	cmd := Command{Type: CommandKey, Line: p.cur.Line}
	var parts []string
	for p.cur.Type.IsModifier() {
		parts = append(parts, strings.ToLower(p.cur.Literal))
		p.next()
		if p.cur.Type != TokenPlus {
			p.errorf("expected + after %s", parts[len(parts)-1])
			return cmd, false
		}
		p.next()
	}

	switch {
	case keyTokens[p.cur.Type] != "":
		parts = append(parts, keyTokens[p.cur.Type])
	case p.cur.Type == TokenIdentifier || p.cur.Type == TokenNumber:
		parts = append(parts, strings.ToLower(p.cur.Literal))
	default:
		p.errorf("expected a key after %s+", parts[len(parts)-1])
		return cmd, false
	}
	p.next()
	cmd.Args = []string{strings.Join(parts, "+")}
	p.parseDelay(&cmd)
	return cmd, true
}

// parseDelay reads an optional @<duration>.
func (p *Parser) parseDelay(cmd *Command) {
	if p.cur.Type != TokenAt {
		return
	}
	p.next()
	if p.cur.Type != TokenDuration && p.cur.Type != TokenNumber {
		p.errorf("expected a duration after @")
		return
	}
	cmd.Delay = p.duration()
}

func (p *Parser) duration() time.Duration {
	d, err := ParseDuration(p.cur.Literal)
	if err != nil {
		p.errorf("%v", err)
	}
	p.next()
	return d
}

func (p *Parser) number() int {
	n, err := strconv.Atoi(p.cur.Literal)
	if err != nil {
		p.errorf("invalid number %q", p.cur.Literal)
	}
	p.next()
	return n
}

func (p *Parser) numbers(n int, what string) []int {
	out := make([]int, 0, n)
	for range n {
		if p.cur.Type != TokenNumber {
			p.errorf("expected %s", what)
			return out
		}
		out = append(out, p.number())
	}
	return out
}

// text reads a quoted string.
func (p *Parser) text() (string, bool) {
	if p.cur.Type != TokenString {
		return "", false
	}
	s := p.cur.Literal
	p.next()
	return s, true
}

// name reads an identifier or a quoted string.
func (p *Parser) name() (string, bool) {
	switch p.cur.Type {
	case TokenString, TokenIdentifier:
		s := p.cur.Literal
		p.next()
		return s, true
	}
	return "", false
}
