// Package tape parses and plays .tape scripts against a desktop. A script is
// a list of commands, one per line, that press keys, click, open windows and
// wait for text to show up:
//
//	Set Width 100
//	Open journal
//	Down 2 @100ms
//	Enter
//	Wait /Claim \+\d+ XP/
//	Ctrl+W
//	Screenshot
package tape

// TokenType is the kind of a lexical token.
type TokenType string

const (
	TokenEOF     TokenType = "EOF"
	TokenIllegal TokenType = "ILLEGAL"
	TokenNewline TokenType = "NEWLINE"

	TokenString     TokenType = "STRING"
	TokenNumber     TokenType = "NUMBER"
	TokenDuration   TokenType = "DURATION"
	TokenRegex      TokenType = "REGEX"
	TokenIdentifier TokenType = "IDENTIFIER"

	TokenPlus TokenType = "PLUS"
	TokenAt   TokenType = "AT"

	// Keys
	TokenTypeText  TokenType = "Type"
	TokenEnter     TokenType = "Enter"
	TokenSpace     TokenType = "Space"
	TokenBackspace TokenType = "Backspace"
	TokenTab       TokenType = "Tab"
	TokenEscape    TokenType = "Escape"
	TokenUp        TokenType = "Up"
	TokenDown      TokenType = "Down"
	TokenLeft      TokenType = "Left"
	TokenRight     TokenType = "Right"
	TokenHome      TokenType = "Home"
	TokenEnd       TokenType = "End"
	TokenPageUp    TokenType = "PageUp"
	TokenPageDown  TokenType = "PageDown"
	TokenCtrl      TokenType = "Ctrl"
	TokenAlt       TokenType = "Alt"
	TokenShift     TokenType = "Shift"

	// Mouse
	TokenClick       TokenType = "Click"
	TokenDoubleClick TokenType = "DoubleClick"
	TokenDrag        TokenType = "Drag"

	// Desktop
	TokenOpen     TokenType = "Open"
	TokenPost     TokenType = "Post"
	TokenClose    TokenType = "Close"
	TokenFocus    TokenType = "Focus"
	TokenMinimize TokenType = "Minimize"
	TokenMaximize TokenType = "Maximize"
	TokenResize   TokenType = "Resize"
	TokenLogin    TokenType = "Login"
	TokenLogout   TokenType = "Logout"
	TokenReload   TokenType = "Reload"

	// Control
	TokenSleep      TokenType = "Sleep"
	TokenWait       TokenType = "Wait"
	TokenScreenshot TokenType = "Screenshot"
	TokenSet        TokenType = "Set"
)

// Token is one lexical token with its position.
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

// keyTokens are the keys that take an optional repeat count.
var keyTokens = map[TokenType]string{
	TokenEnter:     "enter",
	TokenSpace:     "space",
	TokenBackspace: "backspace",
	TokenTab:       "tab",
	TokenEscape:    "esc",
	TokenUp:        "up",
	TokenDown:      "down",
	TokenLeft:      "left",
	TokenRight:     "right",
	TokenHome:      "home",
	TokenEnd:       "end",
	TokenPageUp:    "pgup",
	TokenPageDown:  "pgdown",
}

var keywords = map[string]TokenType{
	"Type":        TokenTypeText,
	"Enter":       TokenEnter,
	"Space":       TokenSpace,
	"Backspace":   TokenBackspace,
	"Tab":         TokenTab,
	"Escape":      TokenEscape,
	"Up":          TokenUp,
	"Down":        TokenDown,
	"Left":        TokenLeft,
	"Right":       TokenRight,
	"Home":        TokenHome,
	"End":         TokenEnd,
	"PageUp":      TokenPageUp,
	"PageDown":    TokenPageDown,
	"Ctrl":        TokenCtrl,
	"Alt":         TokenAlt,
	"Shift":       TokenShift,
	"Click":       TokenClick,
	"DoubleClick": TokenDoubleClick,
	"Drag":        TokenDrag,
	"Open":        TokenOpen,
	"Post":        TokenPost,
	"Close":       TokenClose,
	"Focus":       TokenFocus,
	"Minimize":    TokenMinimize,
	"Maximize":    TokenMaximize,
	"Resize":      TokenResize,
	"Login":       TokenLogin,
	"Logout":      TokenLogout,
	"Reload":      TokenReload,
	"Sleep":       TokenSleep,
	"Wait":        TokenWait,
	"Screenshot":  TokenScreenshot,
	"Set":         TokenSet,
}

// LookupKeyword returns the token type of a keyword, or TokenIdentifier.
func LookupKeyword(ident string) TokenType {
	if tt, ok := keywords[ident]; ok {
		return tt
	}
	return TokenIdentifier
}

// IsModifier reports whether the token starts a key combination.
func (tt TokenType) IsModifier() bool {
	return tt == TokenCtrl || tt == TokenAlt || tt == TokenShift
}
