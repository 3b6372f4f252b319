package parser

import (
	"errors"
	"fmt"
	"strings"

	"componentengine/internal/ast"
	"componentengine/internal/lexer"
)

var (
	ErrUnexpectedToken  = errors.New("unexpected token")
	ErrUnexpectedEOF    = errors.New("unexpected end of input")
	ErrDuplicateDefault = errors.New("duplicate default arm")
	ErrDefaultNotLast   = errors.New("default arm must be the last arm")
)

// SyntaxError reports the first malformed token. Parsing never recovers
// from it.
type SyntaxError struct {
	Path     string
	Pos      lexer.Position
	Found    lexer.Token
	Expected []lexer.TokenKind
	Msg      string
	Err      error
}

func (e *SyntaxError) Error() string {
	var b strings.Builder
	if e.Path != "" {
		b.WriteString(e.Path)
		b.WriteByte(':')
	}
	fmt.Fprintf(&b, "%d:%d: %s", e.Pos.Line, e.Pos.Col, e.Msg)
	if len(e.Expected) > 0 {
		names := make([]string, len(e.Expected))
		for i, k := range e.Expected {
			names[i] = k.String()
		}
		fmt.Fprintf(&b, " (expected %s)", strings.Join(names, ", "))
	}
	return b.String()
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

type Parser struct {
	s       *lexer.Stream
	path    string
	prevEnd lexer.Position
}

func New(path string, s *lexer.Stream) *Parser {
	return &Parser{s: s, path: path}
}

// ParseExpression parses one expression from s. On success the stream is
// positioned at the first significant token the expression does not own.
func ParseExpression(s *lexer.Stream) (ast.Expr, error) {
	return New("", s).ParseExpression()
}

// ParseExpressionString parses src as a single expression and requires
// the whole input to be consumed.
func ParseExpressionString(src string) (ast.Expr, error) {
	s, err := lexer.NewStreamFromSource(src)
	if err != nil {
		return nil, fromLexError("", err)
	}
	p := New("", s)
	expr, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Kind != lexer.TokenEOF {
		return nil, p.unexpected(tok, lexer.TokenEOF)
	}
	return expr, nil
}

// ParseTypeReferenceString parses a standalone type such as "?string[]".
func ParseTypeReferenceString(src string) (*ast.TypeReference, error) {
	s, err := lexer.NewStreamFromSource(src)
	if err != nil {
		return nil, fromLexError("", err)
	}
	p := New("", s)
	ref, err := p.parseTypeReference()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Kind != lexer.TokenEOF {
		return nil, p.unexpected(tok, lexer.TokenEOF)
	}
	return ref, nil
}

func (p *Parser) ParseExpression() (ast.Expr, error) {
	return p.parseExpression(PrecedenceSequence)
}

// peek skips insignificant tokens and returns the current token.
func (p *Parser) peek() lexer.Token {
	p.s.SkipInsignificant()
	return p.s.Current()
}

func (p *Parser) next() lexer.Token {
	tok := p.peek()
	p.prevEnd = tok.End
	p.s.Advance()
	return tok
}

func (p *Parser) at(kind lexer.TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) expect(kind lexer.TokenKind) (lexer.Token, error) {
	tok := p.peek()
	if tok.Kind != kind {
		return tok, p.unexpected(tok, kind)
	}
	return p.next(), nil
}

func (p *Parser) optional(kind lexer.TokenKind) bool {
	if p.at(kind) {
		p.next()
		return true
	}
	return false
}

func (p *Parser) unexpected(tok lexer.Token, expected ...lexer.TokenKind) error {
	if tok.Kind == lexer.TokenEOF {
		return &SyntaxError{Path: p.path, Pos: tok.Pos, Found: tok, Expected: expected, Msg: "unexpected end of input", Err: ErrUnexpectedEOF}
	}
	return &SyntaxError{
		Path:     p.path,
		Pos:      tok.Pos,
		Found:    tok,
		Expected: expected,
		Msg:      fmt.Sprintf("unexpected %s %q", tok.Kind, tok.Text),
		Err:      ErrUnexpectedToken,
	}
}

func (p *Parser) errorAt(tok lexer.Token, sentinel error, msg string) error {
	return &SyntaxError{Path: p.path, Pos: tok.Pos, Found: tok, Msg: msg, Err: sentinel}
}

// fromLexError turns a tokenizer failure into a SyntaxError so callers
// only have one error type to handle.
func fromLexError(path string, err error) error {
	var lexErr *lexer.Error
	if errors.As(err, &lexErr) {
		return &SyntaxError{Path: path, Pos: lexErr.Pos, Msg: lexErr.Msg, Err: ErrUnexpectedToken}
	}
	return err
}

func spanFrom(start lexer.Position, end lexer.Position) ast.Span {
	return ast.Span{Start: posFromLex(start), End: posFromLex(end)}
}

func spanFromPos(start ast.Position, end ast.Position) ast.Span {
	return ast.Span{Start: start, End: end}
}

func posFromLex(pos lexer.Position) ast.Position {
	return ast.Position{Line: pos.Line, Col: pos.Col}
}

// until returns a span from start to the end of the last consumed token.
func (p *Parser) until(start lexer.Position) ast.Span {
	return spanFrom(start, p.prevEnd)
}

func (p *Parser) extend(from ast.Expr) ast.Span {
	return spanFromPos(from.GetSpan().Start, posFromLex(p.prevEnd))
}
