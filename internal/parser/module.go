package parser

import (
	"componentengine/internal/ast"
	"componentengine/internal/lexer"
)

// ParseModule parses a whole source file: imports first, then
// component, struct, interface and enum declarations.
func ParseModule(path, src string) (*ast.Module, error) {
	s, err := lexer.NewStreamFromSource(src)
	if err != nil {
		return nil, fromLexError(path, err)
	}
	return New(path, s).ParseModule()
}

func (p *Parser) ParseModule() (*ast.Module, error) {
	mod := &ast.Module{Path: p.path}
	for p.at(lexer.TokenFrom) {
		imp, err := p.parseImport()
		if err != nil {
			return nil, err
		}
		mod.Imports = append(mod.Imports, imp)
	}
	for !p.at(lexer.TokenEOF) {
		decl, err := p.parseDecl()
		if err != nil {
			return nil, err
		}
		mod.Decls = append(mod.Decls, decl)
	}
	return mod, nil
}

// parseImport parses: from "./Button.afx" import { Button, ButtonType }
func (p *Parser) parseImport() (ast.ImportDecl, error) {
	start, err := p.expect(lexer.TokenFrom)
	if err != nil {
		return ast.ImportDecl{}, err
	}
	from, err := p.expect(lexer.TokenString)
	if err != nil {
		return ast.ImportDecl{}, err
	}
	if _, err := p.expect(lexer.TokenImport); err != nil {
		return ast.ImportDecl{}, err
	}
	if _, err := p.expect(lexer.TokenLBrace); err != nil {
		return ast.ImportDecl{}, err
	}
	var names []ast.ImportName
	for {
		name, err := p.expect(lexer.TokenIdent)
		if err != nil {
			return ast.ImportDecl{}, err
		}
		names = append(names, ast.ImportName{Name: name.Text, Span: spanFrom(name.Pos, name.End)})
		if !p.optional(lexer.TokenComma) || p.at(lexer.TokenRBrace) {
			break
		}
	}
	if _, err := p.expect(lexer.TokenRBrace); err != nil {
		return ast.ImportDecl{}, err
	}
	return ast.ImportDecl{From: from.Text, Names: names, Span: p.until(start.Pos)}, nil
}

func (p *Parser) parseDecl() (ast.Decl, error) {
	start := p.peek().Pos
	export := p.optional(lexer.TokenExport)
	tok := p.peek()
	switch tok.Kind {
	case lexer.TokenComponent:
		return p.parseComponent(start, export)
	case lexer.TokenStruct:
		p.next()
		name, props, err := p.parseRecordBody()
		if err != nil {
			return nil, err
		}
		return &ast.StructDecl{Name: name, Export: export, Props: props, Span: p.until(start)}, nil
	case lexer.TokenInterface:
		p.next()
		name, props, err := p.parseRecordBody()
		if err != nil {
			return nil, err
		}
		return &ast.InterfaceDecl{Name: name, Export: export, Props: props, Span: p.until(start)}, nil
	case lexer.TokenEnum:
		return p.parseEnum(start, export)
	default:
		return nil, p.unexpected(tok, lexer.TokenComponent, lexer.TokenStruct, lexer.TokenInterface, lexer.TokenEnum)
	}
}

// parseComponent parses
//
//	component Card {
//	    title: string
//	    return <h1>{title}</h1>
//	}
func (p *Parser) parseComponent(start lexer.Position, export bool) (ast.Decl, error) {
	if _, err := p.expect(lexer.TokenComponent); err != nil {
		return nil, err
	}
	name, err := p.expect(lexer.TokenIdent)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenLBrace); err != nil {
		return nil, err
	}
	var props []ast.PropertyDecl
	for !p.at(lexer.TokenReturn) {
		prop, err := p.parseProperty()
		if err != nil {
			return nil, err
		}
		props = append(props, prop)
	}
	p.next()
	ret, err := p.parseExpression(PrecedenceSequence)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenRBrace); err != nil {
		return nil, err
	}
	return &ast.ComponentDecl{Name: name.Text, Export: export, Props: props, Return: ret, Span: p.until(start)}, nil
}

func (p *Parser) parseRecordBody() (string, []ast.PropertyDecl, error) {
	name, err := p.expect(lexer.TokenIdent)
	if err != nil {
		return "", nil, err
	}
	if _, err := p.expect(lexer.TokenLBrace); err != nil {
		return "", nil, err
	}
	var props []ast.PropertyDecl
	for !p.at(lexer.TokenRBrace) {
		prop, err := p.parseProperty()
		if err != nil {
			return "", nil, err
		}
		props = append(props, prop)
	}
	p.next()
	return name.Text, props, nil
}

// parseProperty parses "name: Type" with an optional trailing comma.
func (p *Parser) parseProperty() (ast.PropertyDecl, error) {
	name, err := p.expect(lexer.TokenIdent)
	if err != nil {
		return ast.PropertyDecl{}, err
	}
	if _, err := p.expect(lexer.TokenColon); err != nil {
		return ast.PropertyDecl{}, err
	}
	ref, err := p.parseTypeReference()
	if err != nil {
		return ast.PropertyDecl{}, err
	}
	prop := ast.PropertyDecl{Name: name.Text, Type: ref, Span: p.until(name.Pos)}
	p.optional(lexer.TokenComma)
	return prop, nil
}

// parseEnum parses: enum Level { H1(1) H2(2) } or enum Color { RED GREEN }
func (p *Parser) parseEnum(start lexer.Position, export bool) (ast.Decl, error) {
	if _, err := p.expect(lexer.TokenEnum); err != nil {
		return nil, err
	}
	name, err := p.expect(lexer.TokenIdent)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenLBrace); err != nil {
		return nil, err
	}
	var members []ast.EnumMember
	for !p.at(lexer.TokenRBrace) {
		memberTok, err := p.expect(lexer.TokenIdent)
		if err != nil {
			return nil, err
		}
		member := ast.EnumMember{Name: memberTok.Text}
		if p.optional(lexer.TokenLParen) {
			value, err := p.parseEnumValue()
			if err != nil {
				return nil, err
			}
			member.Value = value
			if _, err := p.expect(lexer.TokenRParen); err != nil {
				return nil, err
			}
		}
		member.Span = p.until(memberTok.Pos)
		members = append(members, member)
		p.optional(lexer.TokenComma)
	}
	p.next()
	return &ast.EnumDecl{Name: name.Text, Export: export, Members: members, Span: p.until(start)}, nil
}

func (p *Parser) parseEnumValue() (ast.Expr, error) {
	tok := p.peek()
	switch tok.Kind {
	case lexer.TokenNumber:
		return p.parseNumber()
	case lexer.TokenString:
		p.next()
		return &ast.StringLiteral{Value: tok.Text, Span: spanFrom(tok.Pos, tok.End)}, nil
	default:
		return nil, p.unexpected(tok, lexer.TokenNumber, lexer.TokenString)
	}
}
