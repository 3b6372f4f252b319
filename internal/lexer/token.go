package lexer

import "fmt"

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenSpace
	TokenComment
	TokenIdent
	TokenNumber
	TokenString
	// keywords
	TokenMatch
	TokenDefault
	TokenTrue
	TokenFalse
	TokenNull
	TokenImport
	TokenFrom
	TokenExport
	TokenComponent
	TokenStruct
	TokenEnum
	TokenInterface
	TokenReturn
	// template literal: `a${b}c`
	TokenTemplateStart     // opening backtick
	TokenTemplateString    // literal fragment
	TokenTemplateExprStart // "${"
	TokenTemplateExprEnd   // "}" closing an embedded expression
	TokenTemplateEnd       // closing backtick
	// punctuation
	TokenDot         // "."
	TokenOptionalDot // "?."
	TokenComma
	TokenColon
	TokenQuestion
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenLBracket
	TokenRBracket
	TokenArrow      // "=>"
	TokenMatchArrow // "->"
	TokenEq         // "="
	// operators
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenPercent
	TokenStrictEq    // "==="
	TokenStrictNotEq // "!=="
	TokenLT
	TokenLTE
	TokenGT
	TokenGTE
	TokenAndAnd
	TokenOrOr
	TokenBang
	// tag literal
	TokenTagOpen      // "<" starting a tag
	TokenTagEndOpen   // "</"
	TokenTagClose     // ">" ending a tag head
	TokenTagSelfClose // "/>"
	TokenTagName      // element or component name
	TokenAttrName     // attribute name inside a tag head
	TokenTagText      // text between tags
)

type Position struct {
	Line   int
	Col    int
	Offset int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

type Token struct {
	Kind TokenKind
	Text string
	Pos  Position
	End  Position
}

// Significant reports whether the parser has to look at the token at all.
func (t Token) Significant() bool {
	return t.Kind != TokenSpace && t.Kind != TokenComment
}

func (k TokenKind) String() string {
	switch k {
	case TokenEOF:
		return "eof"
	case TokenSpace:
		return "space"
	case TokenComment:
		return "comment"
	case TokenIdent:
		return "identifier"
	case TokenNumber:
		return "number"
	case TokenString:
		return "string"
	case TokenMatch:
		return "match"
	case TokenDefault:
		return "default"
	case TokenTrue:
		return "true"
	case TokenFalse:
		return "false"
	case TokenNull:
		return "null"
	case TokenImport:
		return "import"
	case TokenFrom:
		return "from"
	case TokenExport:
		return "export"
	case TokenComponent:
		return "component"
	case TokenStruct:
		return "struct"
	case TokenEnum:
		return "enum"
	case TokenInterface:
		return "interface"
	case TokenReturn:
		return "return"
	case TokenTemplateStart:
		return "template_start"
	case TokenTemplateString:
		return "template_string"
	case TokenTemplateExprStart:
		return "${"
	case TokenTemplateExprEnd:
		return "template_expr_end"
	case TokenTemplateEnd:
		return "template_end"
	case TokenDot:
		return "."
	case TokenOptionalDot:
		return "?."
	case TokenComma:
		return ","
	case TokenColon:
		return ":"
	case TokenQuestion:
		return "?"
	case TokenLParen:
		return "("
	case TokenRParen:
		return ")"
	case TokenLBrace:
		return "{"
	case TokenRBrace:
		return "}"
	case TokenLBracket:
		return "["
	case TokenRBracket:
		return "]"
	case TokenArrow:
		return "=>"
	case TokenMatchArrow:
		return "->"
	case TokenEq:
		return "="
	case TokenPlus:
		return "+"
	case TokenMinus:
		return "-"
	case TokenStar:
		return "*"
	case TokenSlash:
		return "/"
	case TokenPercent:
		return "%"
	case TokenStrictEq:
		return "==="
	case TokenStrictNotEq:
		return "!=="
	case TokenLT:
		return "<"
	case TokenLTE:
		return "<="
	case TokenGT:
		return ">"
	case TokenGTE:
		return ">="
	case TokenAndAnd:
		return "&&"
	case TokenOrOr:
		return "||"
	case TokenBang:
		return "!"
	case TokenTagOpen:
		return "tag_open"
	case TokenTagEndOpen:
		return "tag_end_open"
	case TokenTagClose:
		return "tag_close"
	case TokenTagSelfClose:
		return "tag_self_close"
	case TokenTagName:
		return "tag_name"
	case TokenAttrName:
		return "attribute_name"
	case TokenTagText:
		return "tag_text"
	default:
		return fmt.Sprintf("token(%d)", int(k))
	}
}

var keywords = map[string]TokenKind{
	"match":     TokenMatch,
	"default":   TokenDefault,
	"true":      TokenTrue,
	"false":     TokenFalse,
	"null":      TokenNull,
	"import":    TokenImport,
	"from":      TokenFrom,
	"export":    TokenExport,
	"component": TokenComponent,
	"struct":    TokenStruct,
	"enum":      TokenEnum,
	"interface": TokenInterface,
	"return":    TokenReturn,
}

// IsKeyword reports whether name is reserved.
func IsKeyword(name string) bool {
	_, ok := keywords[name]
	return ok
}
