package parser

import (
	"componentengine/internal/ast"
	"componentengine/internal/lexer"
)

// Precedence is the binding power of a trailing token. Higher values
// bind tighter.
type Precedence int

const (
	PrecedenceNone           Precedence = 0  // terminators and non-operators
	PrecedenceSequence       Precedence = 1  // lowest, used for whole expressions
	PrecedenceTernary        Precedence = 3  // "?" ":"
	PrecedenceOr             Precedence = 4  // "||"
	PrecedenceAnd            Precedence = 5  // "&&"
	PrecedenceEquality       Precedence = 9  // "===" "!=="
	PrecedenceRelational     Precedence = 10 // "<" "<=" ">" ">="
	PrecedenceAdditive       Precedence = 12 // "+" "-"
	PrecedenceMultiplicative Precedence = 13 // "*" "/" "%"
	PrecedenceUnary          Precedence = 15 // "!"
	PrecedenceAccess         Precedence = 18 // "." "?."
	PrecedenceGroup          Precedence = 19 // "(" call, "[" index
)

func precedenceOf(kind lexer.TokenKind) Precedence {
	switch kind {
	case lexer.TokenLParen, lexer.TokenLBracket:
		return PrecedenceGroup
	case lexer.TokenDot, lexer.TokenOptionalDot:
		return PrecedenceAccess
	case lexer.TokenStar, lexer.TokenSlash, lexer.TokenPercent:
		return PrecedenceMultiplicative
	case lexer.TokenPlus, lexer.TokenMinus:
		return PrecedenceAdditive
	case lexer.TokenLT, lexer.TokenLTE, lexer.TokenGT, lexer.TokenGTE:
		return PrecedenceRelational
	case lexer.TokenStrictEq, lexer.TokenStrictNotEq:
		return PrecedenceEquality
	case lexer.TokenAndAnd:
		return PrecedenceAnd
	case lexer.TokenOrOr:
		return PrecedenceOr
	case lexer.TokenQuestion:
		return PrecedenceTernary
	default:
		return PrecedenceNone
	}
}

func binaryOperator(kind lexer.TokenKind) (ast.BinaryOperator, bool) {
	switch kind {
	case lexer.TokenPlus:
		return ast.OpAdd, true
	case lexer.TokenMinus:
		return ast.OpSubtract, true
	case lexer.TokenStar:
		return ast.OpMultiply, true
	case lexer.TokenSlash:
		return ast.OpDivide, true
	case lexer.TokenPercent:
		return ast.OpModulo, true
	case lexer.TokenStrictEq:
		return ast.OpEqual, true
	case lexer.TokenStrictNotEq:
		return ast.OpNotEqual, true
	case lexer.TokenLT:
		return ast.OpLess, true
	case lexer.TokenLTE:
		return ast.OpLessEqual, true
	case lexer.TokenGT:
		return ast.OpGreater, true
	case lexer.TokenGTE:
		return ast.OpGreaterEqual, true
	case lexer.TokenAndAnd:
		return ast.OpAnd, true
	case lexer.TokenOrOr:
		return ast.OpOr, true
	default:
		return 0, false
	}
}

// PrecedenceOfOperator is the table entry for a binary operator, used by
// the formatter to decide where parentheses are required.
func PrecedenceOfOperator(op ast.BinaryOperator) Precedence {
	switch op {
	case ast.OpMultiply, ast.OpDivide, ast.OpModulo:
		return PrecedenceMultiplicative
	case ast.OpAdd, ast.OpSubtract:
		return PrecedenceAdditive
	case ast.OpLess, ast.OpLessEqual, ast.OpGreater, ast.OpGreaterEqual:
		return PrecedenceRelational
	case ast.OpEqual, ast.OpNotEqual:
		return PrecedenceEquality
	case ast.OpAnd:
		return PrecedenceAnd
	default:
		return PrecedenceOr
	}
}
