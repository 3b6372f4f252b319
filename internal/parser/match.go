package parser

import (
	"componentengine/internal/ast"
	"componentengine/internal/lexer"
)

// parseMatch parses
//
//	match (subject) {
//	    A, B -> result
//	    default -> fallback
//	}
//
// Arms keep their source order because the first matching arm wins.
func (p *Parser) parseMatch() (ast.Expr, error) {
	start, err := p.expect(lexer.TokenMatch)
	if err != nil {
		return nil, err
	}
	subject, err := p.parseExpression(PrecedenceSequence)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenLBrace); err != nil {
		return nil, err
	}

	var arms []ast.MatchArm
	var defaultTok *lexer.Token
	for !p.at(lexer.TokenRBrace) {
		tok := p.peek()
		if defaultTok != nil {
			if tok.Kind == lexer.TokenDefault {
				return nil, p.errorAt(tok, ErrDuplicateDefault, "match expression has more than one default arm")
			}
			return nil, p.errorAt(*defaultTok, ErrDefaultNotLast, "default arm must be the last arm of a match expression")
		}
		arm, err := p.parseMatchArm()
		if err != nil {
			return nil, err
		}
		if arm.IsDefault() {
			defaultTok = &tok
		}
		arms = append(arms, arm)
	}
	if len(arms) == 0 {
		return nil, p.unexpected(p.peek(), lexer.TokenDefault, lexer.TokenIdent)
	}
	if _, err := p.expect(lexer.TokenRBrace); err != nil {
		return nil, err
	}
	return &ast.MatchExpression{Subject: subject, Arms: arms, Span: p.until(start.Pos)}, nil
}

func (p *Parser) parseMatchArm() (ast.MatchArm, error) {
	start := p.peek().Pos
	var conditions []ast.Expr
	if !p.optional(lexer.TokenDefault) {
		for {
			cond, err := p.parseExpression(PrecedenceSequence)
			if err != nil {
				return ast.MatchArm{}, err
			}
			conditions = append(conditions, cond)
			if !p.optional(lexer.TokenComma) {
				break
			}
		}
	}
	if _, err := p.expect(lexer.TokenMatchArrow); err != nil {
		return ast.MatchArm{}, err
	}
	result, err := p.parseExpression(PrecedenceSequence)
	if err != nil {
		return ast.MatchArm{}, err
	}
	return ast.MatchArm{Conditions: conditions, Result: result, Span: p.until(start)}, nil
}
