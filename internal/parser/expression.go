package parser

import (
	"strconv"
	"strings"

	"componentengine/internal/ast"
	"componentengine/internal/lexer"
)

// parseExpression is the precedence-climbing loop. It keeps folding
// trailing operators into the result while they bind at least as tightly
// as min.
func (p *Parser) parseExpression(min Precedence) (ast.Expr, error) {
	expr, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		prec := precedenceOf(tok.Kind)
		if prec == PrecedenceNone || prec < min {
			return expr, nil
		}
		switch tok.Kind {
		case lexer.TokenDot, lexer.TokenOptionalDot:
			p.next()
			access := ast.AccessMandatory
			if tok.Kind == lexer.TokenOptionalDot {
				access = ast.AccessOptional
			}
			key, err := p.expect(lexer.TokenIdent)
			if err != nil {
				return nil, err
			}
			expr = &ast.AccessChain{Parent: expr, Access: access, Key: key.Text, Span: p.extend(expr)}
		case lexer.TokenLParen:
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			expr = &ast.FunctionCall{Callee: expr, Args: args, Span: p.extend(expr)}
		case lexer.TokenLBracket:
			p.next()
			idx, err := p.parseExpression(PrecedenceSequence)
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.TokenRBracket); err != nil {
				return nil, err
			}
			expr = &ast.IndexAccess{Parent: expr, Index: idx, Span: p.extend(expr)}
		case lexer.TokenQuestion:
			p.next()
			thenExpr, err := p.parseExpression(PrecedenceSequence)
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.TokenColon); err != nil {
				return nil, err
			}
			// right-associative: the else branch may itself be a ternary
			elseExpr, err := p.parseExpression(PrecedenceTernary)
			if err != nil {
				return nil, err
			}
			expr = &ast.TernaryOperation{Condition: expr, Then: thenExpr, Else: elseExpr, Span: p.extend(expr)}
		default:
			op, ok := binaryOperator(tok.Kind)
			if !ok {
				return expr, nil
			}
			p.next()
			right, err := p.parseExpression(prec + 1)
			if err != nil {
				return nil, err
			}
			expr = &ast.BinaryOperation{Left: expr, Operator: op, Right: right, Span: p.extend(expr)}
		}
	}
}

func (p *Parser) parseAtom() (ast.Expr, error) {
	tok := p.peek()
	switch tok.Kind {
	case lexer.TokenNull:
		p.next()
		return &ast.NullLiteral{Span: spanFrom(tok.Pos, tok.End)}, nil
	case lexer.TokenTrue, lexer.TokenFalse:
		p.next()
		return &ast.BooleanLiteral{Value: tok.Kind == lexer.TokenTrue, Span: spanFrom(tok.Pos, tok.End)}, nil
	case lexer.TokenNumber:
		return p.parseNumber()
	case lexer.TokenString:
		p.next()
		return &ast.StringLiteral{Value: tok.Text, Span: spanFrom(tok.Pos, tok.End)}, nil
	case lexer.TokenTemplateStart:
		return p.parseTemplate()
	case lexer.TokenMatch:
		return p.parseMatch()
	case lexer.TokenTagOpen:
		return p.parseTag()
	case lexer.TokenBang:
		p.next()
		operand, err := p.parseExpression(PrecedenceUnary)
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOperation{Operator: ast.OpNot, Operand: operand, Span: p.until(tok.Pos)}, nil
	case lexer.TokenIdent:
		p.next()
		if p.at(lexer.TokenArrow) {
			param := ast.Param{Name: tok.Text, Span: spanFrom(tok.Pos, tok.End)}
			return p.parseArrowBody(tok.Pos, []ast.Param{param})
		}
		return &ast.ValueReference{Name: tok.Text, Span: spanFrom(tok.Pos, tok.End)}, nil
	case lexer.TokenLParen:
		return p.parseGroupOrArrow()
	default:
		return nil, p.unexpected(tok,
			lexer.TokenNull, lexer.TokenTrue, lexer.TokenFalse, lexer.TokenNumber, lexer.TokenString,
			lexer.TokenTemplateStart, lexer.TokenMatch, lexer.TokenTagOpen, lexer.TokenBang,
			lexer.TokenIdent, lexer.TokenLParen)
	}
}

func (p *Parser) parseNumber() (ast.Expr, error) {
	tok := p.next()
	text := tok.Text
	format := ast.NumberDecimal
	base := 0
	if len(text) > 1 && text[0] == '0' {
		switch text[1] {
		case 'b', 'B':
			format, base = ast.NumberBinary, 2
		case 'o', 'O':
			format, base = ast.NumberOctal, 8
		case 'x', 'X':
			format, base = ast.NumberHexadecimal, 16
		}
	}
	var value float64
	if base != 0 {
		v, err := strconv.ParseInt(text[2:], base, 64)
		if err != nil {
			return nil, p.errorAt(tok, ErrUnexpectedToken, "malformed number literal "+strconv.Quote(text))
		}
		value = float64(v)
	} else {
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, p.errorAt(tok, ErrUnexpectedToken, "malformed number literal "+strconv.Quote(text))
		}
		value = v
	}
	return &ast.NumberLiteral{Value: value, Text: text, Format: format, Span: spanFrom(tok.Pos, tok.End)}, nil
}

// parseGroupOrArrow decides between "(expr)" and "(a, b: T) => body". The
// arrow head is tried first; if it does not end in "=>" the cursor is
// restored to the "(" and the input is parsed as a group.
func (p *Parser) parseGroupOrArrow() (ast.Expr, error) {
	p.s.SkipInsignificant()
	start := p.s.Current().Pos
	mark := p.s.Mark()
	if params, ok := p.tryArrowHead(); ok {
		return p.parseArrowBody(start, params)
	}
	p.s.Restore(mark)

	p.next()
	expr, err := p.parseExpression(PrecedenceSequence)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenRParen); err != nil {
		return nil, err
	}
	return expr, nil
}

func (p *Parser) tryArrowHead() ([]ast.Param, bool) {
	if _, err := p.expect(lexer.TokenLParen); err != nil {
		return nil, false
	}
	var params []ast.Param
	if !p.at(lexer.TokenRParen) {
		for {
			name := p.peek()
			if name.Kind != lexer.TokenIdent {
				return nil, false
			}
			p.next()
			param := ast.Param{Name: name.Text}
			if p.optional(lexer.TokenColon) {
				ref, err := p.parseTypeReference()
				if err != nil {
					return nil, false
				}
				param.Type = ref
			}
			param.Span = p.until(name.Pos)
			params = append(params, param)
			if !p.optional(lexer.TokenComma) {
				break
			}
		}
	}
	if !p.optional(lexer.TokenRParen) {
		return nil, false
	}
	return params, p.at(lexer.TokenArrow)
}

func (p *Parser) parseArrowBody(start lexer.Position, params []ast.Param) (ast.Expr, error) {
	if _, err := p.expect(lexer.TokenArrow); err != nil {
		return nil, err
	}
	body, err := p.parseExpression(PrecedenceSequence)
	if err != nil {
		return nil, err
	}
	return &ast.ArrowFunction{Params: params, Body: body, Span: p.until(start)}, nil
}

func (p *Parser) parseArgs() ([]ast.Expr, error) {
	if _, err := p.expect(lexer.TokenLParen); err != nil {
		return nil, err
	}
	var args []ast.Expr
	if !p.at(lexer.TokenRParen) {
		for {
			arg, err := p.parseExpression(PrecedenceSequence)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.optional(lexer.TokenComma) {
				break
			}
		}
	}
	if _, err := p.expect(lexer.TokenRParen); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) parseTemplate() (ast.Expr, error) {
	start, err := p.expect(lexer.TokenTemplateStart)
	if err != nil {
		return nil, err
	}
	var segments []ast.TemplateSegment
	for {
		tok := p.peek()
		switch tok.Kind {
		case lexer.TokenTemplateEnd:
			p.next()
			return &ast.TemplateLiteral{Segments: segments, Span: p.until(start.Pos)}, nil
		case lexer.TokenTemplateString:
			p.next()
			if tok.Text != "" {
				segments = append(segments, ast.TemplateSegment{Text: tok.Text})
			}
		case lexer.TokenTemplateExprStart:
			p.next()
			expr, err := p.parseExpression(PrecedenceSequence)
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.TokenTemplateExprEnd); err != nil {
				return nil, err
			}
			segments = append(segments, ast.TemplateSegment{Expr: expr})
		default:
			return nil, p.unexpected(tok, lexer.TokenTemplateString, lexer.TokenTemplateExprStart, lexer.TokenTemplateEnd)
		}
	}
}

// parseTypeReference parses string, Item[] and ?Item.
func (p *Parser) parseTypeReference() (*ast.TypeReference, error) {
	start := p.peek().Pos
	optional := p.optional(lexer.TokenQuestion)
	name, err := p.expect(lexer.TokenIdent)
	if err != nil {
		return nil, err
	}
	ref := &ast.TypeReference{Name: name.Text, IsOptional: optional}
	if p.at(lexer.TokenLBracket) {
		p.next()
		if _, err := p.expect(lexer.TokenRBracket); err != nil {
			return nil, err
		}
		ref.IsArray = true
	}
	ref.Span = p.until(start)
	return ref, nil
}

// normalizeText collapses runs of whitespace in tag text. Whitespace that
// contains a line break at either edge is dropped entirely.
func normalizeText(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	out := strings.Join(fields, " ")
	lead := text[:len(text)-len(strings.TrimLeftFunc(text, isSpace))]
	trail := text[len(strings.TrimRightFunc(text, isSpace)):]
	if lead != "" && !strings.Contains(lead, "\n") {
		out = " " + out
	}
	if trail != "" && !strings.Contains(trail, "\n") {
		out += " "
	}
	return out
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
