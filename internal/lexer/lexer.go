package lexer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Error is a lexical error at a source position.
type Error struct {
	Pos Position
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Col, e.Msg)
}

type mode int

const (
	modeCode mode = iota
	modeTemplate
	modeTagHead
	modeTagContent
)

// frame is one entry of the mode stack. Code frames opened inside a
// template or a tag count braces so the closing "}" of the island is
// recognised.
type frame struct {
	mode    mode
	depth   int
	closing bool
	named   bool
}

type Lexer struct {
	src   string
	pos   int
	line  int
	col   int
	stack []frame
	last  TokenKind
	begun bool
}

func New(src string) *Lexer {
	return &Lexer{src: src, line: 1, col: 1, stack: []frame{{mode: modeCode}}}
}

// Tokenize lexes the whole source. The returned slice always ends with
// a TokenEOF token.
func Tokenize(src string) ([]Token, error) {
	l := New(src)
	var toks []Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == TokenEOF {
			return toks, nil
		}
	}
}

func (l *Lexer) Next() (Token, error) {
	if l.eof() {
		if len(l.stack) > 1 {
			return Token{}, l.errorf("unterminated %s", l.top().mode.describe())
		}
		p := l.position()
		return Token{Kind: TokenEOF, Pos: p, End: p}, nil
	}
	var (
		tok Token
		err error
	)
	switch l.top().mode {
	case modeTemplate:
		tok, err = l.nextTemplate()
	case modeTagHead:
		tok, err = l.nextTagHead()
	case modeTagContent:
		tok, err = l.nextTagContent()
	default:
		tok, err = l.nextCode()
	}
	if err != nil {
		return Token{}, err
	}
	if tok.Significant() {
		l.last = tok.Kind
		l.begun = true
	}
	return tok, nil
}

func (m mode) describe() string {
	switch m {
	case modeTemplate:
		return "template literal"
	case modeTagHead, modeTagContent:
		return "tag literal"
	default:
		return "expression"
	}
}

func (l *Lexer) nextCode() (Token, error) {
	start := l.position()
	ch := l.peek()
	if unicode.IsSpace(ch) {
		for !l.eof() && unicode.IsSpace(l.peek()) {
			l.advance()
		}
		return l.token(TokenSpace, start), nil
	}
	if ch == '/' && l.peekN(1) == '/' {
		for !l.eof() && l.peek() != '\n' {
			l.advance()
		}
		return l.token(TokenComment, start), nil
	}
	if ch == '/' && l.peekN(1) == '*' {
		l.advance()
		l.advance()
		for {
			if l.eof() {
				return Token{}, &Error{Pos: start, Msg: "unterminated comment"}
			}
			if l.peek() == '*' && l.peekN(1) == '/' {
				l.advance()
				l.advance()
				break
			}
			l.advance()
		}
		return l.token(TokenComment, start), nil
	}
	if isIdentStart(ch) {
		text := l.readIdent()
		// keywords are plain member names after "." and "?."
		memberName := l.begun && (l.last == TokenDot || l.last == TokenOptionalDot)
		if kind, ok := keywords[text]; ok && !memberName {
			return Token{Kind: kind, Text: text, Pos: start, End: l.position()}, nil
		}
		return Token{Kind: TokenIdent, Text: text, Pos: start, End: l.position()}, nil
	}
	if isDigit(ch) {
		if err := l.readNumber(); err != nil {
			return Token{}, err
		}
		return l.token(TokenNumber, start), nil
	}
	switch ch {
	case '"', '\'':
		text, err := l.readString(ch)
		if err != nil {
			return Token{}, err
		}
		return Token{Kind: TokenString, Text: text, Pos: start, End: l.position()}, nil
	case '`':
		l.advance()
		l.push(frame{mode: modeTemplate})
		return l.token(TokenTemplateStart, start), nil
	case '{':
		l.advance()
		l.top().depth++
		return l.token(TokenLBrace, start), nil
	case '}':
		l.advance()
		top := l.top()
		if top.depth > 0 {
			top.depth--
			return l.token(TokenRBrace, start), nil
		}
		if len(l.stack) > 1 {
			l.pop()
			if l.top().mode == modeTemplate {
				return l.token(TokenTemplateExprEnd, start), nil
			}
		}
		return l.token(TokenRBrace, start), nil
	case '(':
		l.advance()
		return l.token(TokenLParen, start), nil
	case ')':
		l.advance()
		return l.token(TokenRParen, start), nil
	case '[':
		l.advance()
		return l.token(TokenLBracket, start), nil
	case ']':
		l.advance()
		return l.token(TokenRBracket, start), nil
	case ',':
		l.advance()
		return l.token(TokenComma, start), nil
	case '.':
		l.advance()
		return l.token(TokenDot, start), nil
	case ':':
		l.advance()
		return l.token(TokenColon, start), nil
	case '?':
		if l.match("?.") {
			return l.token(TokenOptionalDot, start), nil
		}
		l.advance()
		return l.token(TokenQuestion, start), nil
	case '+':
		l.advance()
		return l.token(TokenPlus, start), nil
	case '-':
		if l.match("->") {
			return l.token(TokenMatchArrow, start), nil
		}
		l.advance()
		return l.token(TokenMinus, start), nil
	case '*':
		l.advance()
		return l.token(TokenStar, start), nil
	case '/':
		l.advance()
		return l.token(TokenSlash, start), nil
	case '%':
		l.advance()
		return l.token(TokenPercent, start), nil
	case '=':
		if l.match("===") {
			return l.token(TokenStrictEq, start), nil
		}
		if l.match("=>") {
			return l.token(TokenArrow, start), nil
		}
		l.advance()
		return l.token(TokenEq, start), nil
	case '!':
		if l.match("!==") {
			return l.token(TokenStrictNotEq, start), nil
		}
		l.advance()
		return l.token(TokenBang, start), nil
	case '<':
		if l.operandPosition() && (isIdentStart(l.peekN(1)) || l.peekN(1) == '>') {
			l.advance()
			l.push(frame{mode: modeTagHead})
			return l.token(TokenTagOpen, start), nil
		}
		if l.match("<=") {
			return l.token(TokenLTE, start), nil
		}
		l.advance()
		return l.token(TokenLT, start), nil
	case '>':
		if l.match(">=") {
			return l.token(TokenGTE, start), nil
		}
		l.advance()
		return l.token(TokenGT, start), nil
	case '&':
		if l.match("&&") {
			return l.token(TokenAndAnd, start), nil
		}
	case '|':
		if l.match("||") {
			return l.token(TokenOrOr, start), nil
		}
	}
	return Token{}, &Error{Pos: start, Msg: fmt.Sprintf("unexpected character %q", ch)}
}

// operandPosition reports whether the previous significant token leaves
// the lexer expecting an operand, which is where "<" opens a tag.
func (l *Lexer) operandPosition() bool {
	if !l.begun {
		return true
	}
	switch l.last {
	case TokenLParen, TokenLBracket, TokenLBrace, TokenComma, TokenQuestion, TokenColon,
		TokenArrow, TokenMatchArrow, TokenEq, TokenReturn, TokenTemplateExprStart,
		TokenPlus, TokenMinus, TokenStar, TokenSlash, TokenPercent,
		TokenStrictEq, TokenStrictNotEq, TokenLT, TokenLTE, TokenGT, TokenGTE,
		TokenAndAnd, TokenOrOr, TokenBang:
		return true
	default:
		return false
	}
}

func (l *Lexer) nextTemplate() (Token, error) {
	start := l.position()
	if l.peek() == '`' {
		l.advance()
		l.pop()
		return l.token(TokenTemplateEnd, start), nil
	}
	if l.peek() == '$' && l.peekN(1) == '{' {
		l.advance()
		l.advance()
		l.push(frame{mode: modeCode})
		return l.token(TokenTemplateExprStart, start), nil
	}
	var b strings.Builder
	for !l.eof() {
		if l.invalidUTF8() {
			return Token{}, l.errorf("invalid UTF-8 in template literal")
		}
		ch := l.peek()
		if ch == '`' || (ch == '$' && l.peekN(1) == '{') {
			break
		}
		if ch == '\\' {
			l.advance()
			if l.eof() {
				break
			}
			if err := l.readEscape(&b); err != nil {
				return Token{}, err
			}
			continue
		}
		b.WriteRune(ch)
		l.advance()
	}
	return Token{Kind: TokenTemplateString, Text: b.String(), Pos: start, End: l.position()}, nil
}

func (l *Lexer) nextTagHead() (Token, error) {
	start := l.position()
	ch := l.peek()
	top := l.top()
	if unicode.IsSpace(ch) {
		for !l.eof() && unicode.IsSpace(l.peek()) {
			l.advance()
		}
		return l.token(TokenSpace, start), nil
	}
	switch {
	case ch == '>':
		l.advance()
		closing := top.closing
		l.pop()
		if closing {
			// the element's content frame ends with its closing tag
			l.pop()
		} else {
			l.push(frame{mode: modeTagContent})
		}
		return l.token(TokenTagClose, start), nil
	case ch == '/' && l.peekN(1) == '>':
		l.advance()
		l.advance()
		l.pop()
		return l.token(TokenTagSelfClose, start), nil
	case ch == '=':
		l.advance()
		return l.token(TokenEq, start), nil
	case ch == '"' || ch == '\'':
		text, err := l.readString(ch)
		if err != nil {
			return Token{}, err
		}
		return Token{Kind: TokenString, Text: text, Pos: start, End: l.position()}, nil
	case ch == '{':
		l.advance()
		l.push(frame{mode: modeCode})
		return l.token(TokenLBrace, start), nil
	case isIdentStart(ch):
		text := l.readTagName()
		kind := TokenAttrName
		if !top.named {
			kind = TokenTagName
			top.named = true
		}
		return Token{Kind: kind, Text: text, Pos: start, End: l.position()}, nil
	}
	return Token{}, &Error{Pos: start, Msg: fmt.Sprintf("unexpected character %q in tag", ch)}
}

func (l *Lexer) nextTagContent() (Token, error) {
	start := l.position()
	switch l.peek() {
	case '<':
		if l.peekN(1) == '/' {
			l.advance()
			l.advance()
			l.push(frame{mode: modeTagHead, closing: true})
			return l.token(TokenTagEndOpen, start), nil
		}
		l.advance()
		l.push(frame{mode: modeTagHead})
		return l.token(TokenTagOpen, start), nil
	case '{':
		l.advance()
		l.push(frame{mode: modeCode})
		return l.token(TokenLBrace, start), nil
	}
	for !l.eof() && l.peek() != '<' && l.peek() != '{' {
		l.advance()
	}
	return l.token(TokenTagText, start), nil
}

func (l *Lexer) top() *frame {
	return &l.stack[len(l.stack)-1]
}

func (l *Lexer) push(f frame) {
	l.stack = append(l.stack, f)
}

func (l *Lexer) pop() {
	if len(l.stack) > 1 {
		l.stack = l.stack[:len(l.stack)-1]
	}
}

func (l *Lexer) token(kind TokenKind, start Position) Token {
	return Token{Kind: kind, Text: l.src[start.Offset:l.pos], Pos: start, End: l.position()}
}

func (l *Lexer) position() Position {
	return Position{Line: l.line, Col: l.col, Offset: l.pos}
}

func (l *Lexer) errorf(format string, args ...interface{}) error {
	return &Error{Pos: l.position(), Msg: fmt.Sprintf(format, args...)}
}

func (l *Lexer) readIdent() string {
	start := l.pos
	for !l.eof() && isIdentPart(l.peek()) {
		l.advance()
	}
	return l.src[start:l.pos]
}

// readTagName accepts the characters allowed in element and attribute
// names, e.g. "data-id" or "aria-label".
func (l *Lexer) readTagName() string {
	start := l.pos
	for !l.eof() {
		ch := l.peek()
		if !isIdentPart(ch) && ch != '-' && ch != ':' && ch != '.' {
			break
		}
		l.advance()
	}
	return l.src[start:l.pos]
}

func (l *Lexer) readNumber() error {
	if l.peek() == '0' {
		var digit func(rune) bool
		switch l.peekN(1) {
		case 'b', 'B':
			digit = func(ch rune) bool { return ch == '0' || ch == '1' }
		case 'o', 'O':
			digit = func(ch rune) bool { return ch >= '0' && ch <= '7' }
		case 'x', 'X':
			digit = isHexDigit
		}
		if digit != nil {
			start := l.position()
			l.advance()
			l.advance()
			if l.eof() || !digit(l.peek()) {
				return &Error{Pos: start, Msg: "malformed number literal"}
			}
			for !l.eof() && digit(l.peek()) {
				l.advance()
			}
			return nil
		}
	}
	for !l.eof() && isDigit(l.peek()) {
		l.advance()
	}
	if l.peek() == '.' && isDigit(l.peekN(1)) {
		l.advance()
		for !l.eof() && isDigit(l.peek()) {
			l.advance()
		}
	}
	if l.peek() == 'e' || l.peek() == 'E' {
		next := l.peekN(1)
		if isDigit(next) || ((next == '+' || next == '-') && isDigit(l.peekN(2))) {
			l.advance()
			if next == '+' || next == '-' {
				l.advance()
			}
			for !l.eof() && isDigit(l.peek()) {
				l.advance()
			}
		}
	}
	return nil
}

func (l *Lexer) readString(quote rune) (string, error) {
	start := l.position()
	l.advance()
	var b strings.Builder
	for {
		if l.eof() || l.peek() == '\n' {
			return "", &Error{Pos: start, Msg: "unterminated string literal"}
		}
		if l.invalidUTF8() {
			return "", l.errorf("invalid UTF-8 in string literal")
		}
		ch := l.peek()
		if ch == quote {
			l.advance()
			return b.String(), nil
		}
		if ch == '\\' {
			l.advance()
			if l.eof() {
				continue
			}
			if err := l.readEscape(&b); err != nil {
				return "", err
			}
			continue
		}
		b.WriteRune(ch)
		l.advance()
	}
}

func (l *Lexer) readEscape(b *strings.Builder) error {
	escPos := l.position()
	esc := l.peek()
	l.advance()
	switch esc {
	case 'n':
		b.WriteByte('\n')
	case 'r':
		b.WriteByte('\r')
	case 't':
		b.WriteByte('\t')
	case 'u':
		var hex strings.Builder
		for i := 0; i < 4 && !l.eof(); i++ {
			hex.WriteRune(l.peek())
			l.advance()
		}
		code, ok := parseHex(hex.String())
		if !ok || hex.Len() != 4 {
			return &Error{Pos: escPos, Msg: "malformed unicode escape"}
		}
		b.WriteRune(rune(code))
	default:
		b.WriteRune(esc)
	}
	return nil
}

func (l *Lexer) match(s string) bool {
	if strings.HasPrefix(l.src[l.pos:], s) {
		for range s {
			l.advance()
		}
		return true
	}
	return false
}

func (l *Lexer) advance() {
	if l.eof() {
		return
	}
	_, size := utf8.DecodeRuneInString(l.src[l.pos:])
	ch := l.src[l.pos : l.pos+size]
	l.pos += size
	if ch == "\n" {
		l.line++
		l.col = 1
		return
	}
	l.col++
}

func (l *Lexer) peek() rune {
	if l.eof() {
		return 0
	}
	ch, _ := utf8.DecodeRuneInString(l.src[l.pos:])
	return ch
}

func (l *Lexer) peekN(n int) rune {
	idx := l.pos
	for i := 0; i < n; i++ {
		if idx >= len(l.src) {
			return 0
		}
		_, size := utf8.DecodeRuneInString(l.src[idx:])
		idx += size
	}
	if idx >= len(l.src) {
		return 0
	}
	ch, _ := utf8.DecodeRuneInString(l.src[idx:])
	return ch
}

// invalidUTF8 reports whether the next byte does not start a valid rune.
func (l *Lexer) invalidUTF8() bool {
	ch, size := utf8.DecodeRuneInString(l.src[l.pos:])
	return ch == utf8.RuneError && size == 1
}

func (l *Lexer) eof() bool {
	return l.pos >= len(l.src)
}

func isIdentStart(ch rune) bool {
	return ch == '_' || ch == '$' || unicode.IsLetter(ch)
}

func isIdentPart(ch rune) bool {
	return isIdentStart(ch) || unicode.IsDigit(ch)
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch rune) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func parseHex(s string) (int64, bool) {
	var v int64
	for _, ch := range s {
		v <<= 4
		switch {
		case ch >= '0' && ch <= '9':
			v |= int64(ch - '0')
		case ch >= 'a' && ch <= 'f':
			v |= int64(ch-'a') + 10
		case ch >= 'A' && ch <= 'F':
			v |= int64(ch-'A') + 10
		default:
			return 0, false
		}
	}
	return v, true
}
