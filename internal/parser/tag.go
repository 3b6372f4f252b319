package parser

import (
	"fmt"

	"componentengine/internal/ast"
	"componentengine/internal/lexer"
)

// parseTag parses a tag literal: <name attr="v" other={expr} flag>children</name>,
// <name />, or a fragment <>children</>.
func (p *Parser) parseTag() (ast.Expr, error) {
	return p.parseTagLiteral()
}

func (p *Parser) parseTagLiteral() (*ast.TagLiteral, error) {
	start, err := p.expect(lexer.TokenTagOpen)
	if err != nil {
		return nil, err
	}
	tag := &ast.TagLiteral{}
	if p.at(lexer.TokenTagName) {
		tag.Name = p.next().Text
		for p.at(lexer.TokenAttrName) {
			attr, err := p.parseTagAttribute()
			if err != nil {
				return nil, err
			}
			tag.Attributes = append(tag.Attributes, attr)
		}
		if p.optional(lexer.TokenTagSelfClose) {
			tag.SelfClosing = true
			tag.Span = p.until(start.Pos)
			return tag, nil
		}
	}
	if _, err := p.expect(lexer.TokenTagClose); err != nil {
		return nil, err
	}

	for !p.at(lexer.TokenTagEndOpen) {
		child, ok, err := p.parseTagChild()
		if err != nil {
			return nil, err
		}
		if ok {
			tag.Children = append(tag.Children, child)
		}
	}
	if _, err := p.expect(lexer.TokenTagEndOpen); err != nil {
		return nil, err
	}
	if tag.Name != "" {
		closing, err := p.expect(lexer.TokenTagName)
		if err != nil {
			return nil, err
		}
		if closing.Text != tag.Name {
			return nil, p.errorAt(closing, ErrUnexpectedToken, fmt.Sprintf("closing tag </%s> does not match <%s>", closing.Text, tag.Name))
		}
	}
	if _, err := p.expect(lexer.TokenTagClose); err != nil {
		return nil, err
	}
	tag.Span = p.until(start.Pos)
	return tag, nil
}

func (p *Parser) parseTagAttribute() (ast.TagAttribute, error) {
	name := p.next()
	attr := ast.TagAttribute{Name: name.Text}
	if p.optional(lexer.TokenEq) {
		tok := p.peek()
		switch tok.Kind {
		case lexer.TokenString:
			p.next()
			attr.Value = &ast.StringLiteral{Value: tok.Text, Span: spanFrom(tok.Pos, tok.End)}
		case lexer.TokenLBrace:
			p.next()
			value, err := p.parseExpression(PrecedenceSequence)
			if err != nil {
				return ast.TagAttribute{}, err
			}
			if _, err := p.expect(lexer.TokenRBrace); err != nil {
				return ast.TagAttribute{}, err
			}
			attr.Value = value
		default:
			return ast.TagAttribute{}, p.unexpected(tok, lexer.TokenString, lexer.TokenLBrace)
		}
	}
	attr.Span = p.until(name.Pos)
	return attr, nil
}

// parseTagChild returns ok == false for whitespace-only text.
func (p *Parser) parseTagChild() (ast.TagChild, bool, error) {
	tok := p.peek()
	switch tok.Kind {
	case lexer.TokenTagText:
		p.next()
		text := normalizeText(tok.Text)
		if text == "" {
			return ast.TagChild{}, false, nil
		}
		return ast.TagChild{Kind: ast.TagChildText, Text: text, Span: spanFrom(tok.Pos, tok.End)}, true, nil
	case lexer.TokenTagOpen:
		nested, err := p.parseTagLiteral()
		if err != nil {
			return ast.TagChild{}, false, err
		}
		return ast.TagChild{Kind: ast.TagChildTag, Tag: nested, Span: nested.Span}, true, nil
	case lexer.TokenLBrace:
		p.next()
		expr, err := p.parseExpression(PrecedenceSequence)
		if err != nil {
			return ast.TagChild{}, false, err
		}
		if _, err := p.expect(lexer.TokenRBrace); err != nil {
			return ast.TagChild{}, false, err
		}
		return ast.TagChild{Kind: ast.TagChildExpr, Expr: expr, Span: p.until(tok.Pos)}, true, nil
	default:
		return ast.TagChild{}, false, p.unexpected(tok, lexer.TokenTagText, lexer.TokenTagOpen, lexer.TokenLBrace, lexer.TokenTagEndOpen)
	}
}
